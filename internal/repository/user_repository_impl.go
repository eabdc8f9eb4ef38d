package repository

import (
	"errors"
	"strings"

	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Omit(clause.Associations).Create(user).Error
}

func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.first(withProfiles(db).Where("id = ?", id))
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	return r.first(withProfiles(db).Where("LOWER(email) = ?", strings.ToLower(email)))
}

func (r *userRepository) FindByEmailForUpdate(db *gorm.DB, email string) (*entity.User, error) {
	return r.FindByEmail(db.Clauses(clause.Locking{Strength: "UPDATE"}), email)
}

func (r *userRepository) FindByLogin(db *gorm.DB, login string) (*entity.User, error) {
	return r.first(withProfiles(db).Where("LOWER(email) = ? OR username = ?", strings.ToLower(login), login))
}

func (r *userRepository) first(query *gorm.DB) (*entity.User, error) {
	var user entity.User
	err := query.First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(db *gorm.DB, filter entity.UserFilter) ([]entity.User, error) {
	query := withProfiles(db)
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.CreatedByID != nil {
		query = query.Where("created_by_id = ?", *filter.CreatedByID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(username) LIKE ?)", pattern, pattern, pattern)
	}

	var users []entity.User
	if err := query.Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ExistsBy(db *gorm.DB, column string, value interface{}, excludeID uuid.UUID) (bool, error) {
	return exists(db.Model(&entity.User{}), column, value, excludeID)
}

func (r *userRepository) Update(db *gorm.DB, user *entity.User) error {
	return db.Omit(clause.Associations).Save(user).Error
}

func (r *userRepository) ClearCreator(db *gorm.DB, creatorID uuid.UUID) error {
	return db.Model(&entity.User{}).Where("created_by_id = ?", creatorID).Update("created_by_id", nil).Error
}

func (r *userRepository) Delete(db *gorm.DB, id uuid.UUID) (bool, error) {
	result := db.Where("id = ?", id).Delete(&entity.User{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func withProfiles(db *gorm.DB) *gorm.DB {
	return db.Preload("AdminProfile").Preload("DoctorProfile").Preload("NurseProfile")
}

func exists(query *gorm.DB, column string, value interface{}, excludeID uuid.UUID) (bool, error) {
	query = query.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
