package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorNurse links a nurse to the doctor she or he is assigned to.
type DoctorNurse struct {
	DoctorID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"doctor_id"`
	NurseID   uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"nurse_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DoctorNurse) TableName() string {
	return "doctor_nurses"
}

// PatientDoctor links a treating doctor to a patient.
type PatientDoctor struct {
	PatientID uuid.UUID `gorm:"type:uuid;primaryKey" json:"patient_id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"doctor_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PatientDoctor) TableName() string {
	return "patient_doctors"
}

// PatientNurse links a treating nurse to a patient.
type PatientNurse struct {
	PatientID uuid.UUID `gorm:"type:uuid;primaryKey" json:"patient_id"`
	NurseID   uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"nurse_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PatientNurse) TableName() string {
	return "patient_nurses"
}
