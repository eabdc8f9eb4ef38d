package usecase

import (
	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RayUsecase interface {
	RecordUsecase[dto.RayRequest, dto.UpdateRayRequest, dto.RayResponse]
}

func NewRayUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	repo repository.CareRecordRepository[entity.Ray],
	patientRepo repository.PatientRepository,
	profileRepo repository.ProfileRepository,
	auditService service.AuditService,
) RayUsecase {
	return &recordUsecase[entity.Ray, *entity.Ray, dto.RayRequest, dto.UpdateRayRequest, dto.RayResponse]{
		db:           db,
		log:          log,
		repo:         repo,
		patientRepo:  patientRepo,
		profileRepo:  profileRepo,
		auditService: auditService,
		kind: recordKind[entity.Ray, dto.RayRequest, dto.UpdateRayRequest, dto.RayResponse]{
			name:       "ray",
			role:       entity.RoleDoctor,
			patientOf:  func(req *dto.RayRequest) uuid.UUID { return req.Patient },
			recipients: func(req *dto.RayRequest) []uuid.UUID { return req.Nurses },
			build: func(_ *gorm.DB, authorID uuid.UUID, patient *entity.Patient, req *dto.RayRequest) (*entity.Ray, error) {
				return &entity.Ray{Name: req.Name, DoctorID: authorID, PatientID: patient.ID}, nil
			},
			apply: func(_ *gorm.DB, ray *entity.Ray, req *dto.UpdateRayRequest) error {
				ray.Name = req.Name
				return nil
			},
			toResponse: converter.RayToResponse,
		},
	}
}
