package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var otpPattern = regexp.MustCompile(`code is (\d{6})`)

func otpFrom(t *testing.T, env *testEnv) string {
	t.Helper()
	match := otpPattern.FindStringSubmatch(env.mailer.last(t).Body)
	require.Len(t, match, 2)
	return match[1]
}

func TestAuth_SignupAdminStaysInactiveUntilAccepted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.auth.SignupAdmin(ctx, &dto.AdminSignupRequest{
		Email:    "Alice@Hospital.test",
		Username: "alice",
		Name:     "Alice",
		Phone:    "0811111111",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@hospital.test", resp.Email)
	assert.Equal(t, "admin", resp.Role)
	assert.False(t, resp.IsActive)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "password123"})
	assert.ErrorIs(t, err, ErrAccountInactive)

	superUser, err := env.admins.CreateSuperUser(ctx, &dto.CreateSuperUserRequest{
		Email: "root@hospital.test", Username: "root", Name: "Root", Phone: "0899999999", Password: "password123",
	})
	require.NoError(t, err)
	assert.True(t, superUser.IsSuperUser)

	pending, err := env.admins.ListAdmins(ctx, false)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = env.admins.AcceptAdmin(ctx, principalOf(superUser), &dto.AcceptAdminRequest{Email: "alice@hospital.test"})
	require.NoError(t, err)
	assert.Equal(t, "alice@hospital.test", env.mailer.last(t).To)

	_, err = env.admins.AcceptAdmin(ctx, principalOf(superUser), &dto.AcceptAdminRequest{Email: "alice@hospital.test"})
	assert.ErrorIs(t, err, ErrAdminAlreadyActive)

	tokens, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "alice@hospital.test", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, int64(900), tokens.ExpiresIn)
}

func TestAuth_SignupAdminRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := &dto.AdminSignupRequest{Email: "a@hospital.test", Username: "a-admin", Name: "A", Phone: "0812345678", Password: "password123"}
	_, err := env.auth.SignupAdmin(ctx, req)
	require.NoError(t, err)

	_, err = env.auth.SignupAdmin(ctx, &dto.AdminSignupRequest{
		Email: "b@hospital.test", Username: "b-admin", Name: "B", Phone: "0812345678", Password: "password123",
	})
	var fieldErrs *FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, fieldErrs.Fields, "phone")
	assert.NotContains(t, fieldErrs.Fields, "email")
}

func TestAuth_LoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doctor := env.seedUser(t, entity.RoleDoctor, nil)
	user, err := env.auth.GetCurrentUser(ctx, doctor.UserID)
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Username: user.Username, Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_RefreshRotatesAndLogoutRevokes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	nurse := env.seedUser(t, entity.RoleNurse, nil)
	user, err := env.auth.GetCurrentUser(ctx, nurse.UserID)
	require.NoError(t, err)

	tokens, err := env.auth.Login(ctx, &dto.LoginRequest{Username: user.Username, Password: "password123"})
	require.NoError(t, err)

	claims, err := env.jwt.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "nurse", claims.Role)

	rotated, err := env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked, "a refresh token is single use")

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: rotated.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	rotatedClaims, err := env.jwt.ValidateToken(rotated.AccessToken)
	require.NoError(t, err)
	require.NoError(t, env.auth.Logout(ctx, nurse.UserID, rotatedClaims.TokenID, rotated.RefreshToken))

	valid, err := env.tokens.IsValid(ctx, nurse.UserID, jwt.AccessToken, rotatedClaims.TokenID)
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: rotated.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuth_UpdateCurrentUserChecksUniqueness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.seedUser(t, entity.RoleDoctor, nil)
	second := env.seedUser(t, entity.RoleDoctor, nil)
	other, err := env.auth.GetCurrentUser(ctx, second.UserID)
	require.NoError(t, err)

	_, err = env.auth.UpdateCurrentUser(ctx, first.UserID, &dto.UpdateProfileRequest{Username: &other.Username})
	assert.ErrorIs(t, err, ErrConflict)

	name := "Dr. Renamed"
	updated, err := env.auth.UpdateCurrentUser(ctx, first.UserID, &dto.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
}

func TestAuth_PasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doctor := env.seedUser(t, entity.RoleDoctor, nil)
	user, err := env.auth.GetCurrentUser(ctx, doctor.UserID)
	require.NoError(t, err)

	session, err := env.auth.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, env.auth.RequestPasswordReset(ctx, &dto.PasswordResetRequest{Email: user.Email}))
	firstCode := otpFrom(t, env)

	require.NoError(t, env.auth.RequestPasswordReset(ctx, &dto.PasswordResetRequest{Email: user.Email}))
	code := otpFrom(t, env)
	if firstCode != code {
		err = env.auth.VerifyPasswordReset(ctx, &dto.PasswordResetVerifyRequest{Email: user.Email, OTP: firstCode})
		assert.ErrorIs(t, err, ErrInvalidOTP, "only the latest code verifies")
	}

	require.NoError(t, env.auth.VerifyPasswordReset(ctx, &dto.PasswordResetVerifyRequest{Email: user.Email, OTP: code}))

	require.NoError(t, env.auth.ConfirmPasswordReset(ctx, &dto.PasswordResetConfirmRequest{
		Email: user.Email, OTP: code, Password: "new-password",
	}))

	err = env.auth.VerifyPasswordReset(ctx, &dto.PasswordResetVerifyRequest{Email: user.Email, OTP: code})
	assert.ErrorIs(t, err, ErrInvalidOTP, "a consumed code never verifies again")

	_, err = env.auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: session.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked, "sessions end on password reset")

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "new-password"})
	assert.NoError(t, err)
}

func TestAuth_ConfirmPasswordResetLocksUserRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	nurse := env.seedUser(t, entity.RoleNurse, nil)
	user, err := env.auth.GetCurrentUser(ctx, nurse.UserID)
	require.NoError(t, err)

	var locks []string
	require.NoError(t, env.db.Callback().Query().Before("gorm:query").Register("test:record_locks", func(tx *gorm.DB) {
		if c, ok := tx.Statement.Clauses["FOR"]; ok {
			if locking, ok := c.Expression.(clause.Locking); ok {
				locks = append(locks, locking.Strength)
			}
		}
	}))

	require.NoError(t, env.auth.RequestPasswordReset(ctx, &dto.PasswordResetRequest{Email: user.Email}))
	code := otpFrom(t, env)
	assert.Empty(t, locks)

	require.NoError(t, env.auth.ConfirmPasswordReset(ctx, &dto.PasswordResetConfirmRequest{
		Email: user.Email, OTP: code, Password: "first-password",
	}))
	assert.Equal(t, []string{"UPDATE"}, locks, "the code is checked on a locked row")

	err = env.auth.ConfirmPasswordReset(ctx, &dto.PasswordResetConfirmRequest{
		Email: user.Email, OTP: code, Password: "second-password",
	})
	assert.ErrorIs(t, err, ErrInvalidOTP)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "first-password"})
	assert.NoError(t, err)
}

func TestAuth_PasswordResetUnknownEmailIsSilent(t *testing.T) {
	env := newTestEnv(t)

	err := env.auth.RequestPasswordReset(context.Background(), &dto.PasswordResetRequest{Email: "ghost@hospital.test"})
	assert.NoError(t, err)
	assert.Empty(t, env.mailer.sent)
}

func TestAuth_PasswordResetExpiresAndLimitsAttempts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	nurse := env.seedUser(t, entity.RoleNurse, nil)
	user, err := env.auth.GetCurrentUser(ctx, nurse.UserID)
	require.NoError(t, err)

	require.NoError(t, env.auth.RequestPasswordReset(ctx, &dto.PasswordResetRequest{Email: user.Email}))
	code := otpFrom(t, env)

	for i := 0; i < 3; i++ {
		err := env.auth.VerifyPasswordReset(ctx, &dto.PasswordResetVerifyRequest{Email: user.Email, OTP: "000000"})
		if code == "000000" {
			require.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, ErrInvalidOTP)
		}
	}
	err = env.auth.VerifyPasswordReset(ctx, &dto.PasswordResetVerifyRequest{Email: user.Email, OTP: code})
	assert.ErrorIs(t, err, ErrTooManyOTPAttempts)

	require.NoError(t, env.auth.RequestPasswordReset(ctx, &dto.PasswordResetRequest{Email: user.Email}))
	code = otpFrom(t, env)
	env.auth.now = func() time.Time { return time.Now().Add(11 * time.Minute) }
	err = env.auth.VerifyPasswordReset(ctx, &dto.PasswordResetVerifyRequest{Email: user.Email, OTP: code})
	assert.ErrorIs(t, err, ErrInvalidOTP, "expired codes are refused")
}

func principalOf(u *dto.UserResponse) *policy.Principal {
	return &policy.Principal{UserID: u.ID, Role: entity.Role(u.Role), IsSuperUser: u.IsSuperUser}
}
