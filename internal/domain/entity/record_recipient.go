package entity

import "github.com/google/uuid"

// DoctorReportNurse is one nurse recipient of a doctor report.
type DoctorReportNurse struct {
	ReportID uuid.UUID `gorm:"type:uuid;primaryKey" json:"report_id"`
	NurseID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"nurse_id"`
}

func (DoctorReportNurse) TableName() string {
	return "doctor_report_nurses"
}

// NurseReportDoctor is one doctor recipient of a nurse report.
type NurseReportDoctor struct {
	ReportID uuid.UUID `gorm:"type:uuid;primaryKey" json:"report_id"`
	DoctorID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"doctor_id"`
}

func (NurseReportDoctor) TableName() string {
	return "nurse_report_doctors"
}

// RayNurse is one nurse recipient of an X-ray order.
type RayNurse struct {
	RayID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"ray_id"`
	NurseID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"nurse_id"`
}

func (RayNurse) TableName() string {
	return "ray_nurses"
}

// MedicineNurse is one nurse recipient of a prescription.
type MedicineNurse struct {
	MedicineID uuid.UUID `gorm:"type:uuid;primaryKey" json:"medicine_id"`
	NurseID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"nurse_id"`
}

func (MedicineNurse) TableName() string {
	return "medicine_nurses"
}
