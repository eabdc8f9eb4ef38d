package repository

import (
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	// FindByEmailForUpdate locks the row until db's transaction ends.
	FindByEmailForUpdate(db *gorm.DB, email string) (*entity.User, error)
	// FindByLogin matches either the email or the username.
	FindByLogin(db *gorm.DB, login string) (*entity.User, error)
	FindAll(db *gorm.DB, filter entity.UserFilter) ([]entity.User, error)
	ExistsBy(db *gorm.DB, column string, value interface{}, excludeID uuid.UUID) (bool, error)
	Update(db *gorm.DB, user *entity.User) error
	ClearCreator(db *gorm.DB, creatorID uuid.UUID) error
	Delete(db *gorm.DB, id uuid.UUID) (bool, error)
}
