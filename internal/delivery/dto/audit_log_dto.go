package dto

import (
	"time"

	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Response DTOs

type AuditLogResponse struct {
	ID        int64             `json:"id"`
	User      *UserNameResponse `json:"user,omitempty"`
	UserID    *uuid.UUID        `json:"user_id,omitempty"`
	Action    string            `json:"action"`
	Metadata  entity.JSON       `json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}
