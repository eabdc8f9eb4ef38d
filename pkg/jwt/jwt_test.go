package jwt

import (
	"testing"
	"time"

	"hospital-management-api/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(secret string, access time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{Secret: secret, AccessExpiry: access, RefreshExpiry: time.Hour})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService("secret", time.Minute)
	sub := Subject{UserID: uuid.New(), Email: "doc@example.com", Role: "doctor"}

	token, tokenID, err := svc.GenerateAccessToken(sub)
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, sub, claims.Identity())
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)

	refresh, _, err := svc.GenerateRefreshToken(Subject{UserID: sub.UserID, Role: "admin", IsSuperUser: true})
	require.NoError(t, err)
	claims, err = svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
	assert.True(t, claims.IsSuperUser)
}

func TestValidateToken_Rejects(t *testing.T) {
	svc := newService("secret", time.Minute)
	token, _, err := svc.GenerateAccessToken(Subject{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = newService("other", time.Minute).ValidateToken(token)
	assert.Error(t, err, "wrong secret")

	expired, _, err := newService("secret", -time.Minute).GenerateAccessToken(Subject{UserID: uuid.New()})
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.Error(t, err, "expired")

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
