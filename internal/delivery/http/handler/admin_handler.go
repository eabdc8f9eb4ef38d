package handler

import (
	"net/http"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"
)

// AdminHandler serves the superuser endpoints that approve and remove admins.
type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
	}
}

func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *AdminHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *AdminHandler) list(w http.ResponseWriter, r *http.Request, active bool) {
	admins, err := h.adminUsecase.ListAdmins(r.Context(), active)
	if err != nil {
		writeError(w, err, "Failed to get admins")
		return
	}

	response.List(w, "admins", admins)
}

// Accept activates a pending admin and emails them.
// @Summary Accept admin
// @Tags Admins
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AcceptAdminRequest true "Accept Admin Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/admins/accept [post]
func (h *AdminHandler) Accept(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req dto.AcceptAdminRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	admin, err := h.adminUsecase.AcceptAdmin(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err, "Failed to accept admin")
		return
	}

	response.Resource(w, http.StatusOK, "Admin accepted successfully", "user", admin)
}

func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "admin")
	if !ok {
		return
	}

	admin, err := h.adminUsecase.GetAdmin(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get admin")
		return
	}

	response.Resource(w, http.StatusOK, "Admin retrieved successfully", "user", admin)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "admin")
	if !ok {
		return
	}

	if err := h.adminUsecase.DeleteAdmin(r.Context(), actor, id); err != nil {
		writeError(w, err, "Failed to delete admin")
		return
	}

	response.Message(w, http.StatusOK, "Admin deleted successfully")
}
