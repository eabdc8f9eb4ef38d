package handler

import (
	"net/http"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"
)

// StaffHandler lets an admin manage the doctors and nurses they created.
type StaffHandler struct {
	staffUsecase   usecase.StaffUsecase
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewStaffHandler(staffUsecase usecase.StaffUsecase, patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *StaffHandler {
	return &StaffHandler{
		staffUsecase:   staffUsecase,
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// Signup creates a doctor or nurse account owned by the calling admin.
// @Summary Create staff account
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.StaffSignupRequest true "Staff Signup Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/signup [post]
func (h *StaffHandler) Signup(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req dto.StaffSignupRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	user, err := h.staffUsecase.CreateStaff(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err, "Failed to create account")
		return
	}

	response.Resource(w, http.StatusCreated, "Account created successfully", "user", user)
}

func (h *StaffHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, entity.RoleDoctor, "doctors")
}

func (h *StaffHandler) ListNurses(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, entity.RoleNurse, "nurses")
}

func (h *StaffHandler) list(w http.ResponseWriter, r *http.Request, role entity.Role, key string) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	users, err := h.staffUsecase.ListStaff(r.Context(), actor, role, r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err, "Failed to get "+key)
		return
	}

	response.List(w, key, users)
}

func (h *StaffHandler) ListDoctorNames(w http.ResponseWriter, r *http.Request) {
	h.listNames(w, r, entity.RoleDoctor, "doctors")
}

func (h *StaffHandler) ListNurseNames(w http.ResponseWriter, r *http.Request) {
	h.listNames(w, r, entity.RoleNurse, "nurses")
}

func (h *StaffHandler) listNames(w http.ResponseWriter, r *http.Request, role entity.Role, key string) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	names, err := h.staffUsecase.ListStaffNames(r.Context(), actor, role)
	if err != nil {
		writeError(w, err, "Failed to get "+key)
		return
	}

	response.List(w, key, names)
}

func (h *StaffHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "account")
	if !ok {
		return
	}

	user, err := h.staffUsecase.GetAccount(r.Context(), actor, id)
	if err != nil {
		writeError(w, err, "Failed to get account")
		return
	}

	response.Resource(w, http.StatusOK, "Account retrieved successfully", "user", user)
}

func (h *StaffHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "account")
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	user, err := h.staffUsecase.UpdateAccount(r.Context(), actor, id, &req)
	if err != nil {
		writeError(w, err, "Failed to update account")
		return
	}

	response.Resource(w, http.StatusOK, "Account updated successfully", "user", user)
}

func (h *StaffHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "account")
	if !ok {
		return
	}

	if err := h.staffUsecase.DeleteAccount(r.Context(), actor, id); err != nil {
		writeError(w, err, "Failed to delete account")
		return
	}

	response.Message(w, http.StatusOK, "Account deleted successfully")
}

// ListAccountPatients lists the patients a doctor or nurse is treating.
func (h *StaffHandler) ListAccountPatients(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "account")
	if !ok {
		return
	}

	patients, err := h.patientUsecase.ListPatientsOfUser(r.Context(), actor, id)
	if err != nil {
		writeError(w, err, "Failed to get patients")
		return
	}

	response.List(w, "patients", patients)
}

// ListRelated lists the nurses of a doctor, or the doctors of a nurse.
func (h *StaffHandler) ListRelated(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "account")
	if !ok {
		return
	}

	users, err := h.staffUsecase.ListRelatedUsers(r.Context(), actor, id)
	if err != nil {
		writeError(w, err, "Failed to get related users")
		return
	}

	response.List(w, "users", users)
}
