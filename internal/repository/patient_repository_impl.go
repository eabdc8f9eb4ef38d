package repository

import (
	"errors"

	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Omit(clause.Associations).Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := withCaregivers(db).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(db *gorm.DB, filter entity.PatientFilter) ([]entity.Patient, error) {
	query := withCaregivers(db)
	if filter.CreatedByID != nil {
		query = query.Where("created_by_id = ?", *filter.CreatedByID)
	}
	if filter.DoctorID != nil {
		query = query.Where("id IN (SELECT patient_id FROM patient_doctors WHERE doctor_id = ?)", *filter.DoctorID)
	}
	if filter.NurseID != nil {
		query = query.Where("id IN (SELECT patient_id FROM patient_nurses WHERE nurse_id = ?)", *filter.NurseID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(disease_type) LIKE ? OR LOWER(room_number) LIKE ?)", pattern, pattern, pattern)
	}

	var patients []entity.Patient
	if err := query.Order("name ASC").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) ExistsBy(db *gorm.DB, column string, value interface{}, excludeID uuid.UUID) (bool, error) {
	return exists(db.Model(&entity.Patient{}), column, value, excludeID)
}

func (r *patientRepository) CountByCreator(db *gorm.DB, adminID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Patient{}).Where("created_by_id = ?", adminID).Count(&count).Error
	return count, err
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Omit(clause.Associations).Save(patient).Error
}

func (r *patientRepository) Delete(db *gorm.DB, id uuid.UUID) (bool, error) {
	result := db.Where("id = ?", id).Delete(&entity.Patient{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func withCaregivers(db *gorm.DB) *gorm.DB {
	return db.Preload("Doctors.User").Preload("Nurses.User")
}
