package handler

import (
	"net/http"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"
)

type AssignmentHandler struct {
	assignmentUsecase usecase.AssignmentUsecase
	validator         *validator.CustomValidator
}

func NewAssignmentHandler(assignmentUsecase usecase.AssignmentUsecase, validator *validator.CustomValidator) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentUsecase: assignmentUsecase,
		validator:         validator,
	}
}

func (h *AssignmentHandler) AddNurses(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req dto.AssignNursesRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	nurses, err := h.assignmentUsecase.AddNursesToDoctor(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err, "Failed to assign nurses")
		return
	}

	response.Resource(w, http.StatusCreated, "Nurses assigned successfully", "nurses", nurses)
}

func (h *AssignmentHandler) RemoveNurse(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req dto.UnassignNurseRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	if err := h.assignmentUsecase.RemoveNurseFromDoctor(r.Context(), actor, &req); err != nil {
		writeError(w, err, "Failed to remove nurse")
		return
	}

	response.Message(w, http.StatusOK, "Nurse removed successfully")
}

func (h *AssignmentHandler) ListMyNurses(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	nurses, err := h.assignmentUsecase.ListMyNurses(r.Context(), actor.UserID)
	if err != nil {
		writeError(w, err, "Failed to get nurses")
		return
	}

	response.List(w, "nurses", nurses)
}

func (h *AssignmentHandler) GetMyNurse(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "nurse")
	if !ok {
		return
	}

	nurse, err := h.assignmentUsecase.GetMyNurse(r.Context(), actor.UserID, id)
	if err != nil {
		writeError(w, err, "Failed to get nurse")
		return
	}

	response.Resource(w, http.StatusOK, "Nurse retrieved successfully", "nurse", nurse)
}

func (h *AssignmentHandler) ListMyDoctors(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	doctors, err := h.assignmentUsecase.ListMyDoctors(r.Context(), actor.UserID)
	if err != nil {
		writeError(w, err, "Failed to get doctors")
		return
	}

	response.List(w, "doctors", doctors)
}

func (h *AssignmentHandler) GetMyDoctor(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	doctor, err := h.assignmentUsecase.GetMyDoctor(r.Context(), actor.UserID, id)
	if err != nil {
		writeError(w, err, "Failed to get doctor")
		return
	}

	response.Resource(w, http.StatusOK, "Doctor retrieved successfully", "doctor", doctor)
}
