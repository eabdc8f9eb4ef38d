package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"hospital-management-api/config"
	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/infrastructure/mail"
	"hospital-management-api/internal/service"
	"hospital-management-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	SignupAdmin(ctx context.Context, req *dto.AdminSignupRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateCurrentUser(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	RequestPasswordReset(ctx context.Context, req *dto.PasswordResetRequest) error
	VerifyPasswordReset(ctx context.Context, req *dto.PasswordResetVerifyRequest) error
	ConfirmPasswordReset(ctx context.Context, req *dto.PasswordResetConfirmRequest) error
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	jwtService   *jwt.JWTService
	tokenStore   service.TokenStore
	otpLimiter   service.OTPAttemptLimiter
	auditService service.AuditService
	mailer       mail.Mailer
	otpConfig    config.OTPConfig
	now          func() time.Time
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	jwtService *jwt.JWTService,
	tokenStore service.TokenStore,
	otpLimiter service.OTPAttemptLimiter,
	auditService service.AuditService,
	mailer mail.Mailer,
	otpConfig config.OTPConfig,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		jwtService:   jwtService,
		tokenStore:   tokenStore,
		otpLimiter:   otpLimiter,
		auditService: auditService,
		mailer:       mailer,
		otpConfig:    otpConfig,
		now:          time.Now,
	}
}

// SignupAdmin registers an admin that stays inactive until a superuser accepts it.
func (u *authUsecase) SignupAdmin(ctx context.Context, req *dto.AdminSignupRequest) (*dto.UserResponse, error) {
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
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:    email,
		Username: req.Username,
		Name:     req.Name,
		Phone:    req.Phone,
		Gender:   req.Gender,
		Age:      req.Age,
		Password: string(hashedPassword),
		Role:     entity.RoleAdmin,
		IsActive: false,
	}
	if err := createAccount(tx, u.userRepo, u.profileRepo, user, ""); err != nil {
		if dup := duplicateKeyError(err, "email", "username", "phone"); dup != nil {
			return nil, dup
		}
		u.log.Warnf("Failed to create admin: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, &user.ID, entity.AuditActionAdminRegister, "user", user.ID.String(), converter.UserToResponse(user)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	login := normalizeEmail(req.Email)
	if login == "" {
		login = strings.TrimSpace(req.Username)
	}

	// Read-only, no transaction needed
	user, err := u.userRepo.FindByLogin(u.db.WithContext(ctx), login)
	if err != nil {
		u.log.Warnf("Failed to find user by login: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogEvent(u.db.WithContext(ctx), &user.ID, entity.AuditActionUserLogin, entity.JSON{"role": user.Role}); err != nil {
		return nil, err
	}

	return tokens, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	sub := jwt.Subject{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role.String(),
		IsSuperUser: user.IsSuperUser,
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(sub)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(sub)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.SavePair(ctx, user.ID, accessTokenID, refreshTokenID, u.jwtService.GetAccessExpiry(), u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store tokens in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		User:         converter.UserToResponse(user),
	}, nil
}

// Logout revokes the current access token and, when given, the caller's refresh token.
func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshToken string) error {
	if _, err := u.tokenStore.Revoke(ctx, userID, jwt.AccessToken, accessTokenID); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	if refreshToken != "" {
		claims, err := u.jwtService.ValidateToken(refreshToken)
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == userID {
			if _, err := u.tokenStore.Revoke(ctx, userID, jwt.RefreshToken, claims.TokenID); err != nil {
				u.log.Warnf("Failed to delete refresh token: %+v", err)
				return err
			}
		}
	}

	return u.auditService.LogEvent(u.db.WithContext(ctx), &userID, entity.AuditActionUserLogout, nil)
}

// RefreshToken rotates the token pair. The old refresh token is single use.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	revoked, err := u.tokenStore.Revoke(ctx, claims.UserID, jwt.RefreshToken, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}
	if !revoked {
		return nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidToken
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) UpdateCurrentUser(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	oldValue := converter.UserToResponse(user)

	if err := applyIdentityUpdate(tx, u.userRepo, user, identityUpdate{
		Email:    req.Email,
		Username: req.Username,
		Name:     req.Name,
		Phone:    req.Phone,
		Gender:   req.Gender,
		Age:      req.Age,
	}); err != nil {
		return nil, err
	}

	if err := u.userRepo.Update(tx, user); err != nil {
		if dup := duplicateKeyError(err, "email", "username", "phone"); dup != nil {
			return nil, dup
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	newValue := converter.UserToResponse(user)
	if err := u.auditService.LogUpdate(tx, &userID, entity.AuditActionProfileUpdate, "user", userID.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

// RequestPasswordReset issues a fresh code and mails it. Unknown emails succeed
// silently so the endpoint does not reveal which accounts exist.
func (u *authUsecase) RequestPasswordReset(ctx context.Context, req *dto.PasswordResetRequest) error {
	db := u.db.WithContext(ctx)
	user, err := u.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if user == nil {
		return nil
	}

	code, err := generateOTP()
	if err != nil {
		u.log.Warnf("Failed to generate OTP: %+v", err)
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash OTP: %+v", err)
		return err
	}

	otpHash := string(hash)
	expiresAt := u.now().Add(u.otpConfig.TTL)
	user.OTPHash = &otpHash
	user.OTPExpiresAt = &expiresAt
	if err := u.userRepo.Update(db, user); err != nil {
		u.log.Warnf("Failed to store OTP: %+v", err)
		return err
	}

	if err := u.otpLimiter.Reset(ctx, user.ID); err != nil {
		u.log.Warnf("Failed to reset OTP attempts: %+v", err)
		return err
	}

	msg := mail.Message{
		To:      user.Email,
		Subject: "Password reset code",
		Body: fmt.Sprintf("Hello %s,\n\nYour password reset code is %s. It expires in %d minutes.\n",
			user.Name, code, int(u.otpConfig.TTL.Minutes())),
	}
	if err := u.mailer.Send(ctx, msg); err != nil {
		u.log.Warnf("Failed to send OTP email: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) VerifyPasswordReset(ctx context.Context, req *dto.PasswordResetVerifyRequest) error {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), normalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	return u.checkOTP(ctx, user, req.OTP)
}

// ConfirmPasswordReset sets the new password, consumes the code and ends every session.
// The user row stays locked from the code check until commit, so a code is used once.
func (u *authUsecase) ConfirmPasswordReset(ctx context.Context, req *dto.PasswordResetConfirmRequest) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByEmailForUpdate(tx, normalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if err := u.checkOTP(ctx, user, req.OTP); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}
	user.Password = string(hashedPassword)
	user.ClearOTP()

	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return err
	}
	if err := u.auditService.LogEvent(tx, &user.ID, entity.AuditActionPasswordReset, nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.otpLimiter.Reset(ctx, user.ID); err != nil {
		u.log.Warnf("Failed to reset OTP attempts: %+v", err)
	}
	if err := u.tokenStore.RevokeAll(ctx, user.ID); err != nil {
		u.log.Warnf("Failed to revoke sessions after password reset: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) checkOTP(ctx context.Context, user *entity.User, code string) error {
	if user == nil || !user.HasPendingOTP(u.now()) {
		return ErrInvalidOTP
	}

	attempts, err := u.otpLimiter.Hit(ctx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to count OTP attempt: %+v", err)
		return err
	}
	if attempts > int64(u.otpConfig.MaxAttempts) {
		return ErrTooManyOTPAttempts
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.OTPHash), []byte(code)); err != nil {
		return ErrInvalidOTP
	}
	return nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
