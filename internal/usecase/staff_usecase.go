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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RecordCleaner is the part of a care record store needed when an account or a
// patient disappears.
type RecordCleaner interface {
	DeleteByAuthor(db *gorm.DB, authorID uuid.UUID) error
	DeleteByPatient(db *gorm.DB, patientID uuid.UUID) error
	RemoveRecipient(db *gorm.DB, userID uuid.UUID) error
}

// StaffUsecase lets admins manage the doctor and nurse accounts they created.
type StaffUsecase interface {
	CreateStaff(ctx context.Context, actor *policy.Principal, req *dto.StaffSignupRequest) (*dto.UserResponse, error)
	ListStaff(ctx context.Context, actor *policy.Principal, role entity.Role, search string) ([]dto.UserResponse, error)
	ListStaffNames(ctx context.Context, actor *policy.Principal, role entity.Role) ([]dto.UserNameResponse, error)
	GetAccount(ctx context.Context, actor *policy.Principal, id uuid.UUID) (*dto.UserResponse, error)
	UpdateAccount(ctx context.Context, actor *policy.Principal, id uuid.UUID, req *dto.UpdateAccountRequest) (*dto.UserResponse, error)
	DeleteAccount(ctx context.Context, actor *policy.Principal, id uuid.UUID) error
	ListRelatedUsers(ctx context.Context, actor *policy.Principal, id uuid.UUID) ([]dto.CaregiverResponse, error)
}

type staffUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
	assignmentRepo repository.AssignmentRepository
	recordCleaners []RecordCleaner
	tokenStore     service.TokenStore
	auditService   service.AuditService
}

func NewStaffUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	assignmentRepo repository.AssignmentRepository,
	recordCleaners []RecordCleaner,
	tokenStore service.TokenStore,
	auditService service.AuditService,
) StaffUsecase {
	return &staffUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		assignmentRepo: assignmentRepo,
		recordCleaners: recordCleaners,
		tokenStore:     tokenStore,
		auditService:   auditService,
	}
}

func (u *staffUsecase) CreateStaff(ctx context.Context, actor *policy.Principal, req *dto.StaffSignupRequest) (*dto.UserResponse, error) {
	role := entity.Role(req.Role)
	if !role.IsCaregiver() {
		return nil, invalidField("role", "role must be one of: doctor nurse")
	}
	if role == entity.RoleNurse && req.Specialization != "" {
		return nil, invalidField("specialization", "only doctors have a specialization")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	email := normalizeEmail(req.Email)
	if err := checkUnique(tx, u.userRepo.ExistsBy, uuid.Nil,
		uniqueField{column: "email", field: "email", value: email},
		uniqueField{column: "username", field: "username", value: req.Username},
		uniqueField{column: "phone", field: "phone", value: req.Phone},
		uniqueField{column: "national_id", field: "national_id", value: req.NationalID},
	); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	nationalID := req.NationalID
	creatorID := actor.UserID
	user := &entity.User{
		Email:       email,
		Username:    req.Username,
		Name:        req.Name,
		Phone:       req.Phone,
		NationalID:  &nationalID,
		Gender:      req.Gender,
		Age:         req.Age,
		Password:    string(hashedPassword),
		Role:        role,
		IsActive:    true,
		CreatedByID: &creatorID,
	}
	if err := createAccount(tx, u.userRepo, u.profileRepo, user, req.Specialization); err != nil {
		if dup := duplicateKeyError(err, "email", "username", "phone", "national_id"); dup != nil {
			return nil, dup
		}
		u.log.Warnf("Failed to create %s account: %+v", role, err)
		return nil, err
	}

	resp := converter.UserToResponse(user)
	if err := u.auditService.LogCreate(tx, &actor.UserID, entity.AuditActionAccountCreate, "user", user.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

// ListStaff lists the doctors or nurses created by the admin; superusers see all of them.
func (u *staffUsecase) ListStaff(ctx context.Context, actor *policy.Principal, role entity.Role, search string) ([]dto.UserResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx), u.staffFilter(actor, role, search))
	if err != nil {
		u.log.Warnf("Failed to list %s accounts: %+v", role, err)
		return nil, err
	}
	return converter.UsersToResponses(users), nil
}

func (u *staffUsecase) ListStaffNames(ctx context.Context, actor *policy.Principal, role entity.Role) ([]dto.UserNameResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx), u.staffFilter(actor, role, ""))
	if err != nil {
		u.log.Warnf("Failed to list %s names: %+v", role, err)
		return nil, err
	}
	return converter.UsersToNameResponses(users), nil
}

func (u *staffUsecase) staffFilter(actor *policy.Principal, role entity.Role, search string) entity.UserFilter {
	filter := entity.UserFilter{Role: role, Search: search}
	if !policy.IsSuperUser(actor) {
		creatorID := actor.UserID
		filter.CreatedByID = &creatorID
	}
	return filter
}

func (u *staffUsecase) GetAccount(ctx context.Context, actor *policy.Principal, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.findManaged(u.db.WithContext(ctx), actor, id)
	if err != nil {
		return nil, err
	}
	return converter.UserToResponse(user), nil
}

func (u *staffUsecase) UpdateAccount(ctx context.Context, actor *policy.Principal, id uuid.UUID, req *dto.UpdateAccountRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.findManaged(tx, actor, id)
	if err != nil {
		return nil, err
	}
	if req.Specialization != nil && user.Role != entity.RoleDoctor {
		return nil, invalidField("specialization", "only doctors have a specialization")
	}
	oldValue := converter.UserToResponse(user)

	if err := applyIdentityUpdate(tx, u.userRepo, user, identityUpdate{
		Email:      req.Email,
		Username:   req.Username,
		Name:       req.Name,
		Phone:      req.Phone,
		NationalID: req.NationalID,
		Gender:     req.Gender,
		Age:        req.Age,
	}); err != nil {
		return nil, err
	}
	deactivated := req.IsActive != nil && !*req.IsActive && user.IsActive
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := u.userRepo.Update(tx, user); err != nil {
		if dup := duplicateKeyError(err, "email", "username", "phone", "national_id"); dup != nil {
			return nil, dup
		}
		u.log.Warnf("Failed to update account: %+v", err)
		return nil, err
	}

	if req.Specialization != nil {
		user.DoctorProfile.Specialization = *req.Specialization
		if err := u.profileRepo.UpdateDoctor(tx, user.DoctorProfile); err != nil {
			u.log.Warnf("Failed to update doctor profile: %+v", err)
			return nil, err
		}
	}

	newValue := converter.UserToResponse(user)
	if err := u.auditService.LogUpdate(tx, &actor.UserID, entity.AuditActionAccountUpdate, "user", id.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if deactivated {
		if err := u.tokenStore.RevokeAll(ctx, id); err != nil {
			u.log.Warnf("Failed to revoke sessions of deactivated account: %+v", err)
		}
	}

	return newValue, nil
}

// DeleteAccount removes a doctor or nurse with its profile, its links, the records
// it authored and its place in other records' recipient sets.
func (u *staffUsecase) DeleteAccount(ctx context.Context, actor *policy.Principal, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.findManaged(tx, actor, id)
	if err != nil {
		return err
	}

	if err := u.assignmentRepo.DeleteUserLinks(tx, id); err != nil {
		u.log.Warnf("Failed to delete assignments: %+v", err)
		return err
	}
	for _, cleaner := range u.recordCleaners {
		if err := cleaner.DeleteByAuthor(tx, id); err != nil {
			u.log.Warnf("Failed to delete authored records: %+v", err)
			return err
		}
		if err := cleaner.RemoveRecipient(tx, id); err != nil {
			u.log.Warnf("Failed to remove record recipient: %+v", err)
			return err
		}
	}
	if err := u.profileRepo.Delete(tx, id, user.Role); err != nil {
		u.log.Warnf("Failed to delete profile: %+v", err)
		return err
	}
	if _, err := u.userRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete account: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(tx, &actor.UserID, entity.AuditActionAccountDelete, "user", id.String(), converter.UserToResponse(user)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.tokenStore.RevokeAll(ctx, id); err != nil {
		u.log.Warnf("Failed to revoke sessions of deleted account: %+v", err)
	}
	return nil
}

// ListRelatedUsers returns the nurses of a doctor or the doctors of a nurse.
func (u *staffUsecase) ListRelatedUsers(ctx context.Context, actor *policy.Principal, id uuid.UUID) ([]dto.CaregiverResponse, error) {
	db := u.db.WithContext(ctx)
	user, err := u.findManaged(db, actor, id)
	if err != nil {
		return nil, err
	}

	if user.Role == entity.RoleDoctor {
		nurses, err := u.assignmentRepo.FindNursesOfDoctor(db, id)
		if err != nil {
			u.log.Warnf("Failed to find nurses of doctor: %+v", err)
			return nil, err
		}
		return converter.NursesToCaregivers(nurses), nil
	}

	doctors, err := u.assignmentRepo.FindDoctorsOfNurse(db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctors of nurse: %+v", err)
		return nil, err
	}
	return converter.DoctorsToCaregivers(doctors), nil
}

// findManaged loads a doctor or nurse the actor is allowed to manage.
func (u *staffUsecase) findManaged(db *gorm.DB, actor *policy.Principal, id uuid.UUID) (*entity.User, error) {
	user, err := u.userRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil || !user.Role.IsCaregiver() {
		return nil, ErrUserNotFound
	}
	if _, err := user.Account(); err != nil {
		u.log.Warnf("Account %s has no matching profile: %+v", id, err)
		return nil, ErrProfileNotFound
	}
	if !policy.CanManageUser(actor, user) {
		return nil, ErrForbidden
	}
	return user, nil
}
