package handler

import (
	"net/http"
	"strings"

	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"
)

// RecordHandler serves one kind of care record. The same handler backs the
// plain routes, the all-recipients route and the patient-scoped routes.
type RecordHandler[Req any, Upd any, R any] struct {
	usecase   usecase.RecordUsecase[Req, Upd, R]
	validator *validator.CustomValidator
	label     string
	singular  string
	plural    string
}

// NewRecordHandler builds a handler that answers with the given JSON keys,
// e.g. "ray" and "rays".
func NewRecordHandler[Req any, Upd any, R any](
	uc usecase.RecordUsecase[Req, Upd, R],
	validator *validator.CustomValidator,
	singular, plural string,
) *RecordHandler[Req, Upd, R] {
	label := strings.ReplaceAll(singular, "_", " ")
	return &RecordHandler[Req, Upd, R]{
		usecase:   uc,
		validator: validator,
		label:     strings.ToUpper(label[:1]) + label[1:],
		singular:  singular,
		plural:    plural,
	}
}

func (h *RecordHandler[Req, Upd, R]) Create(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, usecase.CreateOptions{})
}

// CreateForAll addresses the record to every counterpart caregiver of the patient.
func (h *RecordHandler[Req, Upd, R]) CreateForAll(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, usecase.CreateOptions{AllRecipients: true})
}

func (h *RecordHandler[Req, Upd, R]) CreateForPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "patientId", "patient")
	if !ok {
		return
	}
	h.create(w, r, usecase.CreateOptions{PatientID: &patientID})
}

func (h *RecordHandler[Req, Upd, R]) create(w http.ResponseWriter, r *http.Request, opts usecase.CreateOptions) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	req := new(Req)
	if !decode(w, r, h.validator, req) {
		return
	}

	record, err := h.usecase.Create(r.Context(), actor, req, opts)
	if err != nil {
		writeError(w, err, "Failed to create "+h.label)
		return
	}

	response.Resource(w, http.StatusCreated, h.label+" created successfully", h.singular, record)
}

func (h *RecordHandler[Req, Upd, R]) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	records, err := h.usecase.ListMine(r.Context(), actor, nil)
	if err != nil {
		writeError(w, err, "Failed to get "+h.plural)
		return
	}

	response.List(w, h.plural, records)
}

func (h *RecordHandler[Req, Upd, R]) ListMineForPatient(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	patientID, ok := pathID(w, r, "patientId", "patient")
	if !ok {
		return
	}

	records, err := h.usecase.ListMine(r.Context(), actor, &patientID)
	if err != nil {
		writeError(w, err, "Failed to get "+h.plural)
		return
	}

	response.List(w, h.plural, records)
}

// ListReceived lists records addressed to the caller, optionally narrowed by ?patient=.
func (h *RecordHandler[Req, Upd, R]) ListReceived(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	patientID, ok := queryID(w, r, "patient")
	if !ok {
		return
	}

	records, err := h.usecase.ListReceived(r.Context(), actor, patientID)
	if err != nil {
		writeError(w, err, "Failed to get "+h.plural)
		return
	}

	response.List(w, h.plural, records)
}

func (h *RecordHandler[Req, Upd, R]) ListForPatient(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	patientID, ok := pathID(w, r, "patientId", "patient")
	if !ok {
		return
	}

	records, err := h.usecase.ListForPatient(r.Context(), actor, patientID)
	if err != nil {
		writeError(w, err, "Failed to get "+h.plural)
		return
	}

	response.List(w, h.plural, records)
}

func (h *RecordHandler[Req, Upd, R]) Get(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, usecase.RecordScope{})
}

func (h *RecordHandler[Req, Upd, R]) GetReceived(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, usecase.RecordScope{Received: true})
}

func (h *RecordHandler[Req, Upd, R]) GetForPatient(w http.ResponseWriter, r *http.Request) {
	scope, ok := patientScope(w, r)
	if !ok {
		return
	}
	h.get(w, r, scope)
}

func (h *RecordHandler[Req, Upd, R]) get(w http.ResponseWriter, r *http.Request, scope usecase.RecordScope) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", strings.ToLower(h.label))
	if !ok {
		return
	}

	record, err := h.usecase.Get(r.Context(), actor, id, scope)
	if err != nil {
		writeError(w, err, "Failed to get "+h.label)
		return
	}

	response.Resource(w, http.StatusOK, h.label+" retrieved successfully", h.singular, record)
}

func (h *RecordHandler[Req, Upd, R]) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, usecase.RecordScope{})
}

func (h *RecordHandler[Req, Upd, R]) UpdateForPatient(w http.ResponseWriter, r *http.Request) {
	scope, ok := patientScope(w, r)
	if !ok {
		return
	}
	h.update(w, r, scope)
}

func (h *RecordHandler[Req, Upd, R]) update(w http.ResponseWriter, r *http.Request, scope usecase.RecordScope) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", strings.ToLower(h.label))
	if !ok {
		return
	}

	req := new(Upd)
	if !decode(w, r, h.validator, req) {
		return
	}

	record, err := h.usecase.Update(r.Context(), actor, id, scope, req)
	if err != nil {
		writeError(w, err, "Failed to update "+h.label)
		return
	}

	response.Resource(w, http.StatusOK, h.label+" updated successfully", h.singular, record)
}

func (h *RecordHandler[Req, Upd, R]) Delete(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, usecase.RecordScope{})
}

func (h *RecordHandler[Req, Upd, R]) DeleteForPatient(w http.ResponseWriter, r *http.Request) {
	scope, ok := patientScope(w, r)
	if !ok {
		return
	}
	h.delete(w, r, scope)
}

func (h *RecordHandler[Req, Upd, R]) delete(w http.ResponseWriter, r *http.Request, scope usecase.RecordScope) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", strings.ToLower(h.label))
	if !ok {
		return
	}

	if err := h.usecase.Delete(r.Context(), actor, id, scope); err != nil {
		writeError(w, err, "Failed to delete "+h.label)
		return
	}

	response.Message(w, http.StatusOK, h.label+" deleted successfully")
}

func patientScope(w http.ResponseWriter, r *http.Request) (usecase.RecordScope, bool) {
	patientID, ok := pathID(w, r, "patientId", "patient")
	if !ok {
		return usecase.RecordScope{}, false
	}
	return usecase.RecordScope{PatientID: &patientID}, true
}
