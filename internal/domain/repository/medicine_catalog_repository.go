package repository

import (
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicineCatalogRepository interface {
	Create(db *gorm.DB, item *entity.MedicineCatalogItem) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicineCatalogItem, error)
	FindAll(db *gorm.DB, search string) ([]entity.MedicineCatalogItem, error)
	ExistsByName(db *gorm.DB, name string) (bool, error)
}
