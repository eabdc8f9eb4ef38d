package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MedicineCatalogItem is a drug that doctors may prescribe.
type MedicineCatalogItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MedicineCatalogItem) TableName() string {
	return "medicine_catalog"
}

func (m *MedicineCatalogItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Medicine is a prescription written by a doctor for a patient.
type Medicine struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CatalogItemID uuid.UUID       `gorm:"type:uuid;not null;index" json:"catalog_item_id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	DosageAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"dosage_amount"`
	DosageUnit    string          `gorm:"type:varchar(20);not null" json:"dosage_unit"`
	Frequency     string          `gorm:"type:varchar(100)" json:"frequency,omitempty"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	DoctorID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	Unfiltered    bool            `gorm:"not null;default:false" json:"unfiltered"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	CatalogItem MedicineCatalogItem `gorm:"foreignKey:CatalogItemID" json:"-"`
	Doctor      DoctorProfile       `gorm:"foreignKey:DoctorID;references:UserID" json:"doctor,omitempty"`
	Patient     Patient             `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Nurses      []NurseProfile      `gorm:"many2many:medicine_nurses;joinForeignKey:MedicineID;joinReferences:NurseID" json:"nurses,omitempty"`
}

func (Medicine) TableName() string {
	return "medicines"
}

func (m *Medicine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *Medicine) GetID() uuid.UUID          { return m.ID }
func (m *Medicine) AuthorID() uuid.UUID       { return m.DoctorID }
func (m *Medicine) AuthorRole() Role          { return RoleDoctor }
func (m *Medicine) GetPatientID() uuid.UUID   { return m.PatientID }
func (m *Medicine) RecipientIDs() []uuid.UUID { return nurseIDs(m.Nurses) }
func (m *Medicine) IsUnfiltered() bool        { return m.Unfiltered }
func (m *Medicine) MarkUnfiltered()           { m.Unfiltered = true }
