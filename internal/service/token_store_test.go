package service

import (
	"context"
	"testing"
	"time"

	"hospital-management-api/internal/testutil"
	"hospital-management-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore(t *testing.T) {
	client, mr := testutil.NewRedis(t)
	store := NewTokenStore(client)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.SavePair(ctx, userID, "a1", "r1", time.Minute, time.Hour))
	require.NoError(t, store.SavePair(ctx, userID, "a2", "r2", time.Minute, time.Hour))
	assert.True(t, mr.Exists("access_token:"+userID.String()+":a1"))

	ok, err := store.IsValid(ctx, userID, jwt.AccessToken, "a1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.IsValid(ctx, userID, jwt.RefreshToken, "a1")
	require.NoError(t, err)
	assert.False(t, ok, "token ids are scoped by type")

	revoked, err := store.Revoke(ctx, userID, jwt.AccessToken, "a1")
	require.NoError(t, err)
	assert.True(t, revoked)
	revoked, err = store.Revoke(ctx, userID, jwt.AccessToken, "a1")
	require.NoError(t, err)
	assert.False(t, revoked)

	other := uuid.New()
	require.NoError(t, store.SavePair(ctx, other, "a3", "r3", time.Minute, time.Hour))

	require.NoError(t, store.RevokeAll(ctx, userID))
	for _, id := range []string{"a2"} {
		ok, err := store.IsValid(ctx, userID, jwt.AccessToken, id)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	ok, err = store.IsValid(ctx, userID, jwt.RefreshToken, "r2")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.IsValid(ctx, other, jwt.AccessToken, "a3")
	require.NoError(t, err)
	assert.True(t, ok, "other users keep their sessions")

	mr.FastForward(2 * time.Minute)
	ok, err = store.IsValid(ctx, other, jwt.AccessToken, "a3")
	require.NoError(t, err)
	assert.False(t, ok, "access token expires with its ttl")
}

func TestOTPAttemptLimiter(t *testing.T) {
	client, mr := testutil.NewRedis(t)
	limiter := NewOTPAttemptLimiter(client, 10*time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	for want := int64(1); want <= 3; want++ {
		got, err := limiter.Hit(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 10*time.Minute, mr.TTL(otpAttemptsKeyPrefix+userID.String()))

	require.NoError(t, limiter.Reset(ctx, userID))
	got, err := limiter.Hit(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	mr.FastForward(11 * time.Minute)
	got, err = limiter.Hit(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got, "window restarts after expiry")
}
