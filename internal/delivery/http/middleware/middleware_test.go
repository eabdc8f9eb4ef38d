package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-management-api/config"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/internal/service"
	"hospital-management-api/internal/testutil"
	"hospital-management-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestAuthenticate(t *testing.T) {
	client, _ := testutil.NewRedis(t)
	store := service.NewTokenStore(client)
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "secret", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
	m := NewAuthMiddleware(jwtService, store)

	sub := jwt.Subject{UserID: uuid.New(), Email: "d@hospital.test", Role: "doctor"}
	access, accessID, err := jwtService.GenerateAccessToken(sub)
	require.NoError(t, err)
	refresh, refreshID, err := jwtService.GenerateRefreshToken(sub)
	require.NoError(t, err)
	require.NoError(t, store.SavePair(context.Background(), sub.UserID, accessID, refreshID, time.Minute, time.Hour))

	var seen *policy.Principal
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetPrincipalFromContext(r.Context())
		tokenID, _ := GetTokenIDFromContext(r.Context())
		assert.Equal(t, accessID, tokenID)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token " + access, http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid", "Bearer " + access, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	require.NotNil(t, seen)
	assert.Equal(t, sub.UserID, seen.UserID)
	assert.Equal(t, entity.RoleDoctor, seen.Role)

	_, err = store.Revoke(context.Background(), sub.UserID, jwt.AccessToken, accessID)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleMiddleware(t *testing.T) {
	admin := &policy.Principal{UserID: uuid.New(), Role: entity.RoleAdmin}
	superUser := &policy.Principal{UserID: uuid.New(), Role: entity.RoleAdmin, IsSuperUser: true}
	nurse := &policy.Principal{UserID: uuid.New(), Role: entity.RoleNurse}

	tests := []struct {
		name       string
		middleware func(http.Handler) http.Handler
		principal  *policy.Principal
		status     int
	}{
		{"admin allowed", RequireAdmin, admin, http.StatusNoContent},
		{"nurse refused by admin", RequireAdmin, nurse, http.StatusForbidden},
		{"nurse is caregiver", RequireCaregiver, nurse, http.StatusNoContent},
		{"admin is not caregiver", RequireCaregiver, admin, http.StatusForbidden},
		{"plain admin is not superuser", RequireSuperUser, admin, http.StatusForbidden},
		{"superuser", RequireSuperUser, superUser, http.StatusNoContent},
		{"nurse cannot prescribe", RequireAdminOrDoctor, nurse, http.StatusForbidden},
		{"anonymous", RequireDoctor, nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.principal != nil {
				req = req.WithContext(WithPrincipal(req.Context(), tt.principal))
			}
			rec := httptest.NewRecorder()
			tt.middleware(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := NewCORSMiddleware(nil).Handle(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/users/login", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowedOrigins(t *testing.T) {
	handler := NewCORSMiddleware([]string{"https://ward.example.com"}).Handle(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://ward.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "https://ward.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLoggingMiddlewareRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	handler := NewLoggingMiddleware(log).Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"path":"/api/v1/health"`)
}
