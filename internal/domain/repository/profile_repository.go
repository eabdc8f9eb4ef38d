package repository

import (
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(db *gorm.DB, account entity.Account) error
	FindDoctor(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindNurse(db *gorm.DB, userID uuid.UUID) (*entity.NurseProfile, error)
	// ExistingIDs returns the subset of ids that have a profile of role.
	ExistingIDs(db *gorm.DB, role entity.Role, ids []uuid.UUID) ([]uuid.UUID, error)
	UpdateDoctor(db *gorm.DB, profile *entity.DoctorProfile) error
	Delete(db *gorm.DB, userID uuid.UUID, role entity.Role) error
}
