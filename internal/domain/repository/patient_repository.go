package repository

import (
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	// FindByID loads the patient with its doctors and nurses.
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindAll(db *gorm.DB, filter entity.PatientFilter) ([]entity.Patient, error)
	ExistsBy(db *gorm.DB, column string, value interface{}, excludeID uuid.UUID) (bool, error)
	CountByCreator(db *gorm.DB, adminID uuid.UUID) (int64, error)
	Update(db *gorm.DB, patient *entity.Patient) error
	Delete(db *gorm.DB, id uuid.UUID) (bool, error)
}
