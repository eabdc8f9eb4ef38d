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

type DoctorReportUsecase interface {
	RecordUsecase[dto.DoctorReportRequest, dto.UpdateReportRequest, dto.DoctorReportResponse]
}

type NurseReportUsecase interface {
	RecordUsecase[dto.NurseReportRequest, dto.UpdateReportRequest, dto.NurseReportResponse]
}

func NewDoctorReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	repo repository.CareRecordRepository[entity.DoctorReport],
	patientRepo repository.PatientRepository,
	profileRepo repository.ProfileRepository,
	auditService service.AuditService,
) DoctorReportUsecase {
	return &recordUsecase[entity.DoctorReport, *entity.DoctorReport, dto.DoctorReportRequest, dto.UpdateReportRequest, dto.DoctorReportResponse]{
		db:           db,
		log:          log,
		repo:         repo,
		patientRepo:  patientRepo,
		profileRepo:  profileRepo,
		auditService: auditService,
		kind: recordKind[entity.DoctorReport, dto.DoctorReportRequest, dto.UpdateReportRequest, dto.DoctorReportResponse]{
			name:       "doctor_report",
			role:       entity.RoleDoctor,
			patientOf:  func(req *dto.DoctorReportRequest) uuid.UUID { return req.Patient },
			recipients: func(req *dto.DoctorReportRequest) []uuid.UUID { return req.Nurses },
			build: func(_ *gorm.DB, authorID uuid.UUID, patient *entity.Patient, req *dto.DoctorReportRequest) (*entity.DoctorReport, error) {
				return &entity.DoctorReport{Title: req.Title, DoctorID: authorID, PatientID: patient.ID}, nil
			},
			apply: func(_ *gorm.DB, report *entity.DoctorReport, req *dto.UpdateReportRequest) error {
				report.Title = req.Title
				return nil
			},
			toResponse: converter.DoctorReportToResponse,
		},
	}
}

func NewNurseReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	repo repository.CareRecordRepository[entity.NurseReport],
	patientRepo repository.PatientRepository,
	profileRepo repository.ProfileRepository,
	auditService service.AuditService,
) NurseReportUsecase {
	return &recordUsecase[entity.NurseReport, *entity.NurseReport, dto.NurseReportRequest, dto.UpdateReportRequest, dto.NurseReportResponse]{
		db:           db,
		log:          log,
		repo:         repo,
		patientRepo:  patientRepo,
		profileRepo:  profileRepo,
		auditService: auditService,
		kind: recordKind[entity.NurseReport, dto.NurseReportRequest, dto.UpdateReportRequest, dto.NurseReportResponse]{
			name:       "nurse_report",
			role:       entity.RoleNurse,
			patientOf:  func(req *dto.NurseReportRequest) uuid.UUID { return req.Patient },
			recipients: func(req *dto.NurseReportRequest) []uuid.UUID { return req.Doctors },
			build: func(_ *gorm.DB, authorID uuid.UUID, patient *entity.Patient, req *dto.NurseReportRequest) (*entity.NurseReport, error) {
				return &entity.NurseReport{Title: req.Title, NurseID: authorID, PatientID: patient.ID}, nil
			},
			apply: func(_ *gorm.DB, report *entity.NurseReport, req *dto.UpdateReportRequest) error {
				report.Title = req.Title
				return nil
			},
			toResponse: converter.NurseReportToResponse,
		},
	}
}
