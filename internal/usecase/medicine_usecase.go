package usecase

import (
	"context"
	"strings"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MedicineUsecase handles prescriptions and the catalog they are written from.
type MedicineUsecase interface {
	RecordUsecase[dto.MedicineRequest, dto.UpdateMedicineRequest, dto.MedicineResponse]
	ListCatalog(ctx context.Context, search string) ([]dto.CatalogItemResponse, error)
	CreateCatalogItem(ctx context.Context, actor *policy.Principal, req *dto.CatalogItemRequest) (*dto.CatalogItemResponse, error)
}

type medicineUsecase struct {
	*recordUsecase[entity.Medicine, *entity.Medicine, dto.MedicineRequest, dto.UpdateMedicineRequest, dto.MedicineResponse]
	catalogRepo repository.MedicineCatalogRepository
}

func NewMedicineUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	repo repository.CareRecordRepository[entity.Medicine],
	catalogRepo repository.MedicineCatalogRepository,
	patientRepo repository.PatientRepository,
	profileRepo repository.ProfileRepository,
	auditService service.AuditService,
) MedicineUsecase {
	u := &medicineUsecase{catalogRepo: catalogRepo}
	u.recordUsecase = &recordUsecase[entity.Medicine, *entity.Medicine, dto.MedicineRequest, dto.UpdateMedicineRequest, dto.MedicineResponse]{
		db:           db,
		log:          log,
		repo:         repo,
		patientRepo:  patientRepo,
		profileRepo:  profileRepo,
		auditService: auditService,
		kind: recordKind[entity.Medicine, dto.MedicineRequest, dto.UpdateMedicineRequest, dto.MedicineResponse]{
			name:       "medicine",
			role:       entity.RoleDoctor,
			patientOf:  func(req *dto.MedicineRequest) uuid.UUID { return req.Patient },
			recipients: func(req *dto.MedicineRequest) []uuid.UUID { return req.Nurses },
			build:      u.buildMedicine,
			apply:      applyMedicineUpdate,
			toResponse: converter.MedicineToResponse,
		},
	}
	return u
}

// buildMedicine copies the drug name from the catalog item.
func (u *medicineUsecase) buildMedicine(tx *gorm.DB, authorID uuid.UUID, patient *entity.Patient, req *dto.MedicineRequest) (*entity.Medicine, error) {
	if err := validateDosage(req.DosageAmount); err != nil {
		return nil, err
	}

	item, err := u.catalogRepo.FindByID(tx, req.CatalogItemID)
	if err != nil {
		u.log.Warnf("Failed to find catalog item: %+v", err)
		return nil, err
	}
	if item == nil {
		return nil, ErrCatalogItemNotFound
	}

	return &entity.Medicine{
		CatalogItemID: item.ID,
		Name:          item.Name,
		DosageAmount:  req.DosageAmount,
		DosageUnit:    req.DosageUnit,
		Frequency:     req.Frequency,
		Notes:         req.Notes,
		DoctorID:      authorID,
		PatientID:     patient.ID,
	}, nil
}

func applyMedicineUpdate(_ *gorm.DB, medicine *entity.Medicine, req *dto.UpdateMedicineRequest) error {
	if req.DosageAmount != nil {
		if err := validateDosage(*req.DosageAmount); err != nil {
			return err
		}
		medicine.DosageAmount = *req.DosageAmount
	}
	if req.DosageUnit != nil {
		if *req.DosageUnit == "" {
			return invalidField("dosage_unit", "dosage_unit cannot be empty")
		}
		medicine.DosageUnit = *req.DosageUnit
	}
	if req.Frequency != nil {
		medicine.Frequency = *req.Frequency
	}
	if req.Notes != nil {
		medicine.Notes = *req.Notes
	}
	return nil
}

func validateDosage(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalidField("dosage_amount", "dosage_amount must be greater than 0")
	}
	return nil
}

func (u *medicineUsecase) ListCatalog(ctx context.Context, search string) ([]dto.CatalogItemResponse, error) {
	items, err := u.catalogRepo.FindAll(u.db.WithContext(ctx), search)
	if err != nil {
		u.log.Warnf("Failed to list medicine catalog: %+v", err)
		return nil, err
	}
	return converter.CatalogItemsToResponses(items), nil
}

func (u *medicineUsecase) CreateCatalogItem(ctx context.Context, actor *policy.Principal, req *dto.CatalogItemRequest) (*dto.CatalogItemResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidField("name", "name is required")
	}
	taken, err := u.catalogRepo.ExistsByName(tx, name)
	if err != nil {
		u.log.Warnf("Failed to check catalog name: %+v", err)
		return nil, err
	}
	if taken {
		return nil, conflictField("name", "name already exists")
	}

	item := &entity.MedicineCatalogItem{Name: name}
	if err := u.catalogRepo.Create(tx, item); err != nil {
		if dup := duplicateKeyError(err, "name"); dup != nil {
			return nil, dup
		}
		u.log.Warnf("Failed to create catalog item: %+v", err)
		return nil, err
	}

	resp := converter.CatalogItemToResponse(item)
	if err := u.auditService.LogCreate(tx, &actor.UserID, entity.AuditActionCatalogItemCreate, "medicine_catalog", item.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}
