package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{usecase.ErrInvalidInput, http.StatusBadRequest},
		{usecase.ErrInvalidOTP, http.StatusBadRequest},
		{usecase.ErrCatalogItemNotFound, http.StatusBadRequest},
		{usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{usecase.ErrTokenRevoked, http.StatusUnauthorized},
		{usecase.ErrForbidden, http.StatusForbidden},
		{usecase.ErrAccountInactive, http.StatusForbidden},
		{usecase.ErrRecordNotFound, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", usecase.ErrAssignmentNotFound), http.StatusNotFound},
		{usecase.ErrAdminOwnsPatients, http.StatusConflict},
		{usecase.ErrTooManyOTPAttempts, http.StatusTooManyRequests},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err, "Failed")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestWriteErrorFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, &usecase.FieldErrors{Kind: usecase.ErrConflict, Fields: map[string]string{"phone": "phone already exists"}}, "Failed")

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "phone already exists", body.Errors["phone"])

	rec = httptest.NewRecorder()
	writeError(rec, &usecase.FieldErrors{Kind: usecase.ErrInvalidInput, Fields: map[string]string{"nurses": "unknown nurse"}}, "Failed")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecode(t *testing.T) {
	v := validator.NewValidator()
	var req struct {
		Title string `json:"title" validate:"required"`
	}

	rec := httptest.NewRecorder()
	ok := decode(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")), v, &req)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request body")

	rec = httptest.NewRecorder()
	ok = decode(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)), v, &req)
	assert.False(t, ok)
	assert.Contains(t, rec.Body.String(), "title is required")

	rec = httptest.NewRecorder()
	ok = decode(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x"}`)), v, &req)
	assert.True(t, ok)
	assert.Equal(t, "x", req.Title)
}

func TestPathID(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "nope"})
	rec := httptest.NewRecorder()

	_, ok := pathID(rec, r, "id", "patient")
	assert.False(t, ok)
	assert.Contains(t, rec.Body.String(), "Invalid patient ID")
}
