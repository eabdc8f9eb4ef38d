package handler

import (
	"net/http"
	"strconv"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	auditLogID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid audit log ID")
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		writeError(w, err, "Failed to get audit log")
		return
	}

	response.Resource(w, http.StatusOK, "Audit log retrieved successfully", "audit_log", auditLog)
}

// GetAllAuditLogs accepts the optional filters user_id, action and limit.
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryID(w, r, "user_id")
	if !ok {
		return
	}

	filter := entity.AuditLogFilter{
		UserID: userID,
		Action: r.URL.Query().Get("action"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			response.BadRequest(w, "Invalid limit")
			return
		}
		filter.Limit = limit
	}

	auditLogs, err := h.auditLogUsecase.GetAllAuditLogs(r.Context(), filter)
	if err != nil {
		writeError(w, err, "Failed to get audit logs")
		return
	}

	response.List(w, "audit_logs", auditLogs)
}
