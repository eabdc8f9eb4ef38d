package entity

import "github.com/google/uuid"

// UserFilter narrows account listings. Zero fields are ignored.
type UserFilter struct {
	Role        Role
	CreatedByID *uuid.UUID
	IsActive    *bool
	Search      string
}

// PatientFilter narrows patient listings. Search matches name, disease type or room number.
type PatientFilter struct {
	CreatedByID *uuid.UUID
	DoctorID    *uuid.UUID
	NurseID     *uuid.UUID
	Search      string
}

type AuditLogFilter struct {
	UserID *uuid.UUID
	Action string
	Limit  int
}
