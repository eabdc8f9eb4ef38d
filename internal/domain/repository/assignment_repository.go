package repository

import (
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssignmentRepository manages the doctor-nurse and caregiver-patient links.
// Adds are idempotent; removes report whether a link existed.
type AssignmentRepository interface {
	AddDoctorNurses(db *gorm.DB, doctorID uuid.UUID, nurseIDs []uuid.UUID) error
	RemoveDoctorNurse(db *gorm.DB, doctorID, nurseID uuid.UUID) (bool, error)
	AddPatientCaregivers(db *gorm.DB, patientID uuid.UUID, role entity.Role, userIDs []uuid.UUID) error
	RemovePatientCaregiver(db *gorm.DB, patientID uuid.UUID, role entity.Role, userID uuid.UUID) (bool, error)
	FindNursesOfDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.NurseProfile, error)
	FindDoctorsOfNurse(db *gorm.DB, nurseID uuid.UUID) ([]entity.DoctorProfile, error)
	IsDoctorNurseLinked(db *gorm.DB, doctorID, nurseID uuid.UUID) (bool, error)
	DeleteUserLinks(db *gorm.DB, userID uuid.UUID) error
	DeletePatientLinks(db *gorm.DB, patientID uuid.UUID) error
}
