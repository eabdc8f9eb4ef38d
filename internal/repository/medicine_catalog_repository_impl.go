package repository

import (
	"errors"
	"strings"

	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicineCatalogRepository struct{}

func NewMedicineCatalogRepository() domainRepo.MedicineCatalogRepository {
	return &medicineCatalogRepository{}
}

func (r *medicineCatalogRepository) Create(db *gorm.DB, item *entity.MedicineCatalogItem) error {
	return db.Create(item).Error
}

func (r *medicineCatalogRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicineCatalogItem, error) {
	var item entity.MedicineCatalogItem
	err := db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *medicineCatalogRepository) FindAll(db *gorm.DB, search string) ([]entity.MedicineCatalogItem, error) {
	query := db.Model(&entity.MedicineCatalogItem{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(search))
	}
	var items []entity.MedicineCatalogItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *medicineCatalogRepository) ExistsByName(db *gorm.DB, name string) (bool, error) {
	var count int64
	err := db.Model(&entity.MedicineCatalogItem{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error
	return count > 0, err
}
