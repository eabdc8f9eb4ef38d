package usecase

import (
	"context"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AssignmentUsecase manages doctor-nurse links and the caregivers' read side of them.
type AssignmentUsecase interface {
	AddNursesToDoctor(ctx context.Context, actor *policy.Principal, req *dto.AssignNursesRequest) ([]dto.CaregiverResponse, error)
	RemoveNurseFromDoctor(ctx context.Context, actor *policy.Principal, req *dto.UnassignNurseRequest) error
	ListMyNurses(ctx context.Context, doctorID uuid.UUID) ([]dto.CaregiverResponse, error)
	GetMyNurse(ctx context.Context, doctorID, nurseID uuid.UUID) (*dto.CaregiverResponse, error)
	ListMyDoctors(ctx context.Context, nurseID uuid.UUID) ([]dto.CaregiverResponse, error)
	GetMyDoctor(ctx context.Context, nurseID, doctorID uuid.UUID) (*dto.CaregiverResponse, error)
}

type assignmentUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
	assignmentRepo repository.AssignmentRepository
	auditService   service.AuditService
}

func NewAssignmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	assignmentRepo repository.AssignmentRepository,
	auditService service.AuditService,
) AssignmentUsecase {
	return &assignmentUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		assignmentRepo: assignmentRepo,
		auditService:   auditService,
	}
}

// AddNursesToDoctor links nurses to a doctor. Existing links are kept as they are.
func (u *assignmentUsecase) AddNursesToDoctor(ctx context.Context, actor *policy.Principal, req *dto.AssignNursesRequest) ([]dto.CaregiverResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := requireManagedStaff(tx, u.userRepo, actor, entity.RoleDoctor, "doctor_id", []uuid.UUID{req.DoctorID}); err != nil {
		return nil, err
	}
	nurseIDs := dedupeIDs(req.NurseIDs)
	if len(nurseIDs) == 0 {
		return nil, invalidField("nurse_ids", "nurse_ids must contain at least one nurse")
	}
	if err := requireManagedStaff(tx, u.userRepo, actor, entity.RoleNurse, "nurse_ids", nurseIDs); err != nil {
		return nil, err
	}

	if err := u.assignmentRepo.AddDoctorNurses(tx, req.DoctorID, nurseIDs); err != nil {
		u.log.Warnf("Failed to assign nurses to doctor: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogEvent(tx, &actor.UserID, entity.AuditActionAssignmentAdd, entity.JSON{
		"doctor_id": req.DoctorID.String(),
		"nurse_ids": nurseIDs,
	}); err != nil {
		return nil, err
	}

	nurses, err := u.assignmentRepo.FindNursesOfDoctor(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find nurses of doctor: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.NursesToCaregivers(nurses), nil
}

func (u *assignmentUsecase) RemoveNurseFromDoctor(ctx context.Context, actor *policy.Principal, req *dto.UnassignNurseRequest) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := requireManagedStaff(tx, u.userRepo, actor, entity.RoleDoctor, "doctor_id", []uuid.UUID{req.DoctorID}); err != nil {
		return err
	}

	removed, err := u.assignmentRepo.RemoveDoctorNurse(tx, req.DoctorID, req.NurseID)
	if err != nil {
		u.log.Warnf("Failed to remove nurse from doctor: %+v", err)
		return err
	}
	if !removed {
		return ErrAssignmentNotFound
	}

	if err := u.auditService.LogEvent(tx, &actor.UserID, entity.AuditActionAssignmentRemove, entity.JSON{
		"doctor_id": req.DoctorID.String(),
		"nurse_id":  req.NurseID.String(),
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *assignmentUsecase) ListMyNurses(ctx context.Context, doctorID uuid.UUID) ([]dto.CaregiverResponse, error) {
	nurses, err := u.assignmentRepo.FindNursesOfDoctor(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find nurses of doctor: %+v", err)
		return nil, err
	}
	return converter.NursesToCaregivers(nurses), nil
}

func (u *assignmentUsecase) GetMyNurse(ctx context.Context, doctorID, nurseID uuid.UUID) (*dto.CaregiverResponse, error) {
	db := u.db.WithContext(ctx)
	linked, err := u.assignmentRepo.IsDoctorNurseLinked(db, doctorID, nurseID)
	if err != nil {
		u.log.Warnf("Failed to check doctor-nurse link: %+v", err)
		return nil, err
	}
	if !linked {
		return nil, ErrUserNotFound
	}

	nurse, err := u.profileRepo.FindNurse(db, nurseID)
	if err != nil {
		u.log.Warnf("Failed to find nurse: %+v", err)
		return nil, err
	}
	if nurse == nil {
		return nil, ErrUserNotFound
	}
	resp := converter.NurseToCaregiver(nurse)
	return &resp, nil
}

func (u *assignmentUsecase) ListMyDoctors(ctx context.Context, nurseID uuid.UUID) ([]dto.CaregiverResponse, error) {
	doctors, err := u.assignmentRepo.FindDoctorsOfNurse(u.db.WithContext(ctx), nurseID)
	if err != nil {
		u.log.Warnf("Failed to find doctors of nurse: %+v", err)
		return nil, err
	}
	return converter.DoctorsToCaregivers(doctors), nil
}

func (u *assignmentUsecase) GetMyDoctor(ctx context.Context, nurseID, doctorID uuid.UUID) (*dto.CaregiverResponse, error) {
	db := u.db.WithContext(ctx)
	linked, err := u.assignmentRepo.IsDoctorNurseLinked(db, doctorID, nurseID)
	if err != nil {
		u.log.Warnf("Failed to check doctor-nurse link: %+v", err)
		return nil, err
	}
	if !linked {
		return nil, ErrUserNotFound
	}

	doctor, err := u.profileRepo.FindDoctor(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrUserNotFound
	}
	resp := converter.DoctorToCaregiver(doctor)
	return &resp, nil
}
