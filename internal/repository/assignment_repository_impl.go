package repository

import (
	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type assignmentRepository struct{}

func NewAssignmentRepository() domainRepo.AssignmentRepository {
	return &assignmentRepository{}
}

func (r *assignmentRepository) AddDoctorNurses(db *gorm.DB, doctorID uuid.UUID, nurseIDs []uuid.UUID) error {
	if len(nurseIDs) == 0 {
		return nil
	}
	links := make([]entity.DoctorNurse, 0, len(nurseIDs))
	for _, nurseID := range nurseIDs {
		links = append(links, entity.DoctorNurse{DoctorID: doctorID, NurseID: nurseID})
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func (r *assignmentRepository) RemoveDoctorNurse(db *gorm.DB, doctorID, nurseID uuid.UUID) (bool, error) {
	result := db.Where("doctor_id = ? AND nurse_id = ?", doctorID, nurseID).Delete(&entity.DoctorNurse{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *assignmentRepository) AddPatientCaregivers(db *gorm.DB, patientID uuid.UUID, role entity.Role, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	db = db.Clauses(clause.OnConflict{DoNothing: true})
	switch role {
	case entity.RoleDoctor:
		links := make([]entity.PatientDoctor, 0, len(userIDs))
		for _, id := range userIDs {
			links = append(links, entity.PatientDoctor{PatientID: patientID, DoctorID: id})
		}
		return db.Create(&links).Error
	case entity.RoleNurse:
		links := make([]entity.PatientNurse, 0, len(userIDs))
		for _, id := range userIDs {
			links = append(links, entity.PatientNurse{PatientID: patientID, NurseID: id})
		}
		return db.Create(&links).Error
	}
	return entity.ErrProfileMismatch
}

func (r *assignmentRepository) RemovePatientCaregiver(db *gorm.DB, patientID uuid.UUID, role entity.Role, userID uuid.UUID) (bool, error) {
	var result *gorm.DB
	switch role {
	case entity.RoleDoctor:
		result = db.Where("patient_id = ? AND doctor_id = ?", patientID, userID).Delete(&entity.PatientDoctor{})
	case entity.RoleNurse:
		result = db.Where("patient_id = ? AND nurse_id = ?", patientID, userID).Delete(&entity.PatientNurse{})
	default:
		return false, entity.ErrProfileMismatch
	}
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *assignmentRepository) FindNursesOfDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.NurseProfile, error) {
	var nurses []entity.NurseProfile
	err := db.Preload("User").
		Where("user_id IN (SELECT nurse_id FROM doctor_nurses WHERE doctor_id = ?)", doctorID).
		Find(&nurses).Error
	if err != nil {
		return nil, err
	}
	return nurses, nil
}

func (r *assignmentRepository) FindDoctorsOfNurse(db *gorm.DB, nurseID uuid.UUID) ([]entity.DoctorProfile, error) {
	var doctors []entity.DoctorProfile
	err := db.Preload("User").
		Where("user_id IN (SELECT doctor_id FROM doctor_nurses WHERE nurse_id = ?)", nurseID).
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *assignmentRepository) IsDoctorNurseLinked(db *gorm.DB, doctorID, nurseID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&entity.DoctorNurse{}).Where("doctor_id = ? AND nurse_id = ?", doctorID, nurseID).Count(&count).Error
	return count > 0, err
}

func (r *assignmentRepository) DeleteUserLinks(db *gorm.DB, userID uuid.UUID) error {
	if err := db.Where("doctor_id = ? OR nurse_id = ?", userID, userID).Delete(&entity.DoctorNurse{}).Error; err != nil {
		return err
	}
	if err := db.Where("doctor_id = ?", userID).Delete(&entity.PatientDoctor{}).Error; err != nil {
		return err
	}
	return db.Where("nurse_id = ?", userID).Delete(&entity.PatientNurse{}).Error
}

func (r *assignmentRepository) DeletePatientLinks(db *gorm.DB, patientID uuid.UUID) error {
	if err := db.Where("patient_id = ?", patientID).Delete(&entity.PatientDoctor{}).Error; err != nil {
		return err
	}
	return db.Where("patient_id = ?", patientID).Delete(&entity.PatientNurse{}).Error
}
