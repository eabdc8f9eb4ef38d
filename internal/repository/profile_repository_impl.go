package repository

import (
	"errors"

	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type profileRepository struct{}

func NewProfileRepository() domainRepo.ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) Create(db *gorm.DB, account entity.Account) error {
	db = db.Omit(clause.Associations)
	switch a := account.(type) {
	case entity.AdminAccount:
		a.Profile.UserID = a.User.ID
		return db.Create(a.Profile).Error
	case entity.DoctorAccount:
		a.Profile.UserID = a.User.ID
		return db.Create(a.Profile).Error
	case entity.NurseAccount:
		a.Profile.UserID = a.User.ID
		return db.Create(a.Profile).Error
	}
	return entity.ErrProfileMismatch
}

func (r *profileRepository) FindDoctor(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindNurse(db *gorm.DB, userID uuid.UUID) (*entity.NurseProfile, error) {
	var profile entity.NurseProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) ExistingIDs(db *gorm.DB, role entity.Role, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	model, err := profileModel(role)
	if err != nil {
		return nil, err
	}
	var found []uuid.UUID
	if err := db.Model(model).Where("user_id IN ?", ids).Pluck("user_id", &found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func (r *profileRepository) UpdateDoctor(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Model(&entity.DoctorProfile{}).Where("user_id = ?", profile.UserID).
		Update("specialization", profile.Specialization).Error
}

func (r *profileRepository) Delete(db *gorm.DB, userID uuid.UUID, role entity.Role) error {
	model, err := profileModel(role)
	if err != nil {
		return err
	}
	return db.Where("user_id = ?", userID).Delete(model).Error
}

func profileModel(role entity.Role) (interface{}, error) {
	switch role {
	case entity.RoleAdmin:
		return &entity.AdminProfile{}, nil
	case entity.RoleDoctor:
		return &entity.DoctorProfile{}, nil
	case entity.RoleNurse:
		return &entity.NurseProfile{}, nil
	}
	return nil, entity.ErrProfileMismatch
}
