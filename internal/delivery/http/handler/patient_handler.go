package handler

import (
	"net/http"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// Create registers a patient together with its initial caregivers.
// @Summary Create patient
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePatientRequest true "Create Patient Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/patients [post]
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req dto.CreatePatientRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.CreatePatient(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err, "Failed to create patient")
		return
	}

	response.Resource(w, http.StatusCreated, "Patient created successfully", "patient", patient)
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	patients, err := h.patientUsecase.ListPatients(r.Context(), actor, r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err, "Failed to get patients")
		return
	}

	response.List(w, "patients", patients)
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), actor, id)
	if err != nil {
		writeError(w, err, "Failed to get patient")
		return
	}

	response.Resource(w, http.StatusOK, "Patient retrieved successfully", "patient", patient)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	var req dto.UpdatePatientRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.UpdatePatient(r.Context(), actor, id, &req)
	if err != nil {
		writeError(w, err, "Failed to update patient")
		return
	}

	response.Resource(w, http.StatusOK, "Patient updated successfully", "patient", patient)
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	if err := h.patientUsecase.DeletePatient(r.Context(), actor, id); err != nil {
		writeError(w, err, "Failed to delete patient")
		return
	}

	response.Message(w, http.StatusOK, "Patient deleted successfully")
}

func (h *PatientHandler) AddCaregivers(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	var req dto.AddCaregiversRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.AddCaregivers(r.Context(), actor, id, &req)
	if err != nil {
		writeError(w, err, "Failed to assign caregivers")
		return
	}

	response.Resource(w, http.StatusOK, "Caregivers assigned successfully", "patient", patient)
}

func (h *PatientHandler) RemoveCaregiver(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId", "user")
	if !ok {
		return
	}

	if err := h.patientUsecase.RemoveCaregiver(r.Context(), actor, id, userID); err != nil {
		writeError(w, err, "Failed to remove caregiver")
		return
	}

	response.Message(w, http.StatusOK, "Caregiver removed successfully")
}

// ListMine lists the patients the calling doctor or nurse treats.
func (h *PatientHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	patients, err := h.patientUsecase.ListMyPatients(r.Context(), actor, r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err, "Failed to get patients")
		return
	}

	response.List(w, "patients", patients)
}

func (h *PatientHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	patient, err := h.patientUsecase.GetMyPatient(r.Context(), actor, id)
	if err != nil {
		writeError(w, err, "Failed to get patient")
		return
	}

	response.Resource(w, http.StatusOK, "Patient retrieved successfully", "patient", patient)
}
