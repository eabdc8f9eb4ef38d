package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ray is an X-ray order placed by a doctor.
type Ray struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	DoctorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID  uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Unfiltered bool      `gorm:"not null;default:false" json:"unfiltered"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID;references:UserID" json:"doctor,omitempty"`
	Patient Patient        `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Nurses  []NurseProfile `gorm:"many2many:ray_nurses;joinForeignKey:RayID;joinReferences:NurseID" json:"nurses,omitempty"`
}

func (Ray) TableName() string {
	return "rays"
}

func (r *Ray) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Ray) GetID() uuid.UUID          { return r.ID }
func (r *Ray) AuthorID() uuid.UUID       { return r.DoctorID }
func (r *Ray) AuthorRole() Role          { return RoleDoctor }
func (r *Ray) GetPatientID() uuid.UUID   { return r.PatientID }
func (r *Ray) RecipientIDs() []uuid.UUID { return nurseIDs(r.Nurses) }
func (r *Ray) IsUnfiltered() bool        { return r.Unfiltered }
func (r *Ray) MarkUnfiltered()           { r.Unfiltered = true }
