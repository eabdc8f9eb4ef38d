package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DoctorReport is written by a doctor and shared with nurses.
type DoctorReport struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	DoctorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID  uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Unfiltered bool      `gorm:"not null;default:false" json:"unfiltered"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID;references:UserID" json:"doctor,omitempty"`
	Patient Patient        `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Nurses  []NurseProfile `gorm:"many2many:doctor_report_nurses;joinForeignKey:ReportID;joinReferences:NurseID" json:"nurses,omitempty"`
}

func (DoctorReport) TableName() string {
	return "doctor_reports"
}

func (r *DoctorReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *DoctorReport) GetID() uuid.UUID          { return r.ID }
func (r *DoctorReport) AuthorID() uuid.UUID       { return r.DoctorID }
func (r *DoctorReport) AuthorRole() Role          { return RoleDoctor }
func (r *DoctorReport) GetPatientID() uuid.UUID   { return r.PatientID }
func (r *DoctorReport) RecipientIDs() []uuid.UUID { return nurseIDs(r.Nurses) }
func (r *DoctorReport) IsUnfiltered() bool        { return r.Unfiltered }
func (r *DoctorReport) MarkUnfiltered()           { r.Unfiltered = true }

// NurseReport is written by a nurse and shared with doctors.
type NurseReport struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	NurseID    uuid.UUID `gorm:"type:uuid;not null;index" json:"nurse_id"`
	PatientID  uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Unfiltered bool      `gorm:"not null;default:false" json:"unfiltered"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Nurse   NurseProfile    `gorm:"foreignKey:NurseID;references:UserID" json:"nurse,omitempty"`
	Patient Patient         `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctors []DoctorProfile `gorm:"many2many:nurse_report_doctors;joinForeignKey:ReportID;joinReferences:DoctorID" json:"doctors,omitempty"`
}

func (NurseReport) TableName() string {
	return "nurse_reports"
}

func (r *NurseReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *NurseReport) GetID() uuid.UUID          { return r.ID }
func (r *NurseReport) AuthorID() uuid.UUID       { return r.NurseID }
func (r *NurseReport) AuthorRole() Role          { return RoleNurse }
func (r *NurseReport) GetPatientID() uuid.UUID   { return r.PatientID }
func (r *NurseReport) RecipientIDs() []uuid.UUID { return doctorIDs(r.Doctors) }
func (r *NurseReport) IsUnfiltered() bool        { return r.Unfiltered }
func (r *NurseReport) MarkUnfiltered()           { r.Unfiltered = true }
