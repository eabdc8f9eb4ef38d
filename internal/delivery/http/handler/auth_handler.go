package handler

import (
	"encoding/json"
	"net/http"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// SignupAdmin handles admin self-registration
// @Summary Register an admin
// @Description Creates an inactive admin account awaiting superuser approval
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.AdminSignupRequest true "Admin Signup Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/signup/admin [post]
func (h *AuthHandler) SignupAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminSignupRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	user, err := h.authUsecase.SignupAdmin(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to register admin")
		return
	}

	response.Resource(w, http.StatusCreated, "Registration received, waiting for approval", "user", user)
}

// Login handles user login
// @Summary Login
// @Description Authenticate with email or username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	tokens, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to login")
		return
	}

	response.Resource(w, http.StatusOK, "Login successful", "tokens", tokens)
}

// Logout revokes the current access token and, when given, the refresh token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	tokenID, _ := middleware.GetTokenIDFromContext(r.Context())

	// the body is optional
	var req dto.LogoutRequest
	json.NewDecoder(r.Body).Decode(&req)

	if err := h.authUsecase.Logout(r.Context(), userID, tokenID, req.RefreshToken); err != nil {
		writeError(w, err, "Failed to logout")
		return
	}

	response.Message(w, http.StatusOK, "Logout successful")
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Description Get new access token using refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/refresh-token [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	tokens, err := h.authUsecase.RefreshToken(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to refresh token")
		return
	}

	response.Resource(w, http.StatusOK, "Token refreshed successfully", "tokens", tokens)
}

func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get user info")
		return
	}

	response.Resource(w, http.StatusOK, "User retrieved successfully", "user", user)
}

func (h *AuthHandler) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateProfileRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	user, err := h.authUsecase.UpdateCurrentUser(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to update profile")
		return
	}

	response.Resource(w, http.StatusOK, "Profile updated successfully", "user", user)
}

// RequestPasswordReset always answers 200 so the endpoint cannot be used to probe emails.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	if err := h.authUsecase.RequestPasswordReset(r.Context(), &req); err != nil {
		writeError(w, err, "Failed to request password reset")
		return
	}

	response.Message(w, http.StatusOK, "If the email is registered, a reset code has been sent")
}

func (h *AuthHandler) VerifyPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetVerifyRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	if err := h.authUsecase.VerifyPasswordReset(r.Context(), &req); err != nil {
		writeError(w, err, "Failed to verify reset code")
		return
	}

	response.Message(w, http.StatusOK, "Reset code is valid")
}

func (h *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetConfirmRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	if err := h.authUsecase.ConfirmPasswordReset(r.Context(), &req); err != nil {
		writeError(w, err, "Failed to reset password")
		return
	}

	response.Message(w, http.StatusOK, "Password has been reset")
}
