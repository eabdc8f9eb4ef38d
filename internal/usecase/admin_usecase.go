package usecase

import (
	"context"
	"fmt"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/infrastructure/mail"
	"hospital-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminUsecase covers the superuser workflow around admin accounts.
type AdminUsecase interface {
	ListAdmins(ctx context.Context, active bool) ([]dto.UserResponse, error)
	AcceptAdmin(ctx context.Context, actor *policy.Principal, req *dto.AcceptAdminRequest) (*dto.UserResponse, error)
	GetAdmin(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	DeleteAdmin(ctx context.Context, actor *policy.Principal, id uuid.UUID) error
	CreateSuperUser(ctx context.Context, req *dto.CreateSuperUserRequest) (*dto.UserResponse, error)
}

type adminUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	patientRepo  repository.PatientRepository
	tokenStore   service.TokenStore
	auditService service.AuditService
	mailer       mail.Mailer
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	patientRepo repository.PatientRepository,
	tokenStore service.TokenStore,
	auditService service.AuditService,
	mailer mail.Mailer,
) AdminUsecase {
	return &adminUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		patientRepo:  patientRepo,
		tokenStore:   tokenStore,
		auditService: auditService,
		mailer:       mailer,
	}
}

func (u *adminUsecase) ListAdmins(ctx context.Context, active bool) ([]dto.UserResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx), entity.UserFilter{
		Role:     entity.RoleAdmin,
		IsActive: &active,
	})
	if err != nil {
		u.log.Warnf("Failed to list admins: %+v", err)
		return nil, err
	}
	return converter.UsersToResponses(users), nil
}

// AcceptAdmin activates a pending admin and notifies it by email.
func (u *adminUsecase) AcceptAdmin(ctx context.Context, actor *policy.Principal, req *dto.AcceptAdminRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByEmail(tx, normalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil || user.Role != entity.RoleAdmin {
		return nil, ErrAdminNotFound
	}
	if user.IsActive {
		return nil, ErrAdminAlreadyActive
	}

	user.IsActive = true
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to activate admin: %+v", err)
		return nil, err
	}
	if err := u.auditService.LogEvent(tx, &actor.UserID, entity.AuditActionAdminActivate, entity.JSON{"admin_id": user.ID.String()}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	msg := mail.Message{
		To:      user.Email,
		Subject: "Your admin account is active",
		Body:    fmt.Sprintf("Hello %s,\n\nYour admin account has been approved. You can now sign in.\n", user.Name),
	}
	if err := u.mailer.Send(ctx, msg); err != nil {
		// The activation stands even when the notification cannot be delivered.
		u.log.Warnf("Failed to send activation email: %+v", err)
	}

	return converter.UserToResponse(user), nil
}

func (u *adminUsecase) GetAdmin(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.findAdmin(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.UserToResponse(user), nil
}

// DeleteAdmin removes an admin account. Admins that still own patients cannot be
// deleted; accounts they created are kept and detached.
func (u *adminUsecase) DeleteAdmin(ctx context.Context, actor *policy.Principal, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.findAdmin(tx, id)
	if err != nil {
		return err
	}
	if user.IsSuperUser {
		return ErrForbidden
	}

	count, err := u.patientRepo.CountByCreator(tx, id)
	if err != nil {
		u.log.Warnf("Failed to count patients of admin: %+v", err)
		return err
	}
	if count > 0 {
		return ErrAdminOwnsPatients
	}

	if err := u.userRepo.ClearCreator(tx, id); err != nil {
		u.log.Warnf("Failed to detach created accounts: %+v", err)
		return err
	}
	if err := u.profileRepo.Delete(tx, id, entity.RoleAdmin); err != nil {
		u.log.Warnf("Failed to delete admin profile: %+v", err)
		return err
	}
	if _, err := u.userRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete admin: %+v", err)
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
		u.log.Warnf("Failed to revoke sessions of deleted admin: %+v", err)
	}
	return nil
}

// CreateSuperUser creates an active superuser admin. It backs the createsuperuser command.
func (u *adminUsecase) CreateSuperUser(ctx context.Context, req *dto.CreateSuperUserRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	email := normalizeEmail(req.Email)
	if err := checkUnique(tx, u.userRepo.ExistsBy, uuid.Nil,
		uniqueField{column: "email", field: "email", value: email},
		uniqueField{column: "username", field: "username", value: req.Username},
		uniqueField{column: "phone", field: "phone", value: req.Phone},
	); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:       email,
		Username:    req.Username,
		Name:        req.Name,
		Phone:       req.Phone,
		Password:    string(hashedPassword),
		Role:        entity.RoleAdmin,
		IsActive:    true,
		IsSuperUser: true,
	}
	if err := createAccount(tx, u.userRepo, u.profileRepo, user, ""); err != nil {
		if dup := duplicateKeyError(err, "email", "username", "phone"); dup != nil {
			return nil, dup
		}
		u.log.Warnf("Failed to create superuser: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, nil, entity.AuditActionAccountCreate, "user", user.ID.String(), converter.UserToResponse(user)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *adminUsecase) findAdmin(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	user, err := u.userRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find admin by ID: %+v", err)
		return nil, err
	}
	if user == nil || user.Role != entity.RoleAdmin {
		return nil, ErrAdminNotFound
	}
	return user, nil
}
