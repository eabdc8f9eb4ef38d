package dto

import (
	"time"

	"github.com/google/uuid"
)

// StaffSignupRequest creates a doctor or nurse account on behalf of an admin.
type StaffSignupRequest struct {
	Email          string `json:"email" validate:"required,email,max=255"`
	Username       string `json:"username" validate:"required,min=3,max=150"`
	Name           string `json:"name" validate:"required,min=2,max=255"`
	Phone          string `json:"phone" validate:"required,numeric,min=7,max=20"`
	NationalID     string `json:"national_id" validate:"required,alphanum,min=5,max=32"`
	Gender         string `json:"gender" validate:"omitempty,oneof=male female"`
	Age            int    `json:"age" validate:"omitempty,gte=18,lte=120"`
	Role           string `json:"role" validate:"required,oneof=doctor nurse"`
	Specialization string `json:"specialization" validate:"omitempty,max=100"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
}

type UpdateAccountRequest struct {
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	Username       *string `json:"username" validate:"omitempty,min=3,max=150"`
	Name           *string `json:"name" validate:"omitempty,min=2,max=255"`
	Phone          *string `json:"phone" validate:"omitempty,numeric,min=7,max=20"`
	NationalID     *string `json:"national_id" validate:"omitempty,alphanum,min=5,max=32"`
	Gender         *string `json:"gender" validate:"omitempty,oneof=male female"`
	Age            *int    `json:"age" validate:"omitempty,gte=0,lte=120"`
	Specialization *string `json:"specialization" validate:"omitempty,max=100"`
	IsActive       *bool   `json:"is_active"`
}

type AcceptAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// CreateSuperUserRequest is used by the createsuperuser command.
type CreateSuperUserRequest struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=3,max=150"`
	Name     string `validate:"required"`
	Phone    string `validate:"required,numeric,min=7,max=20"`
	Password string `validate:"required,min=8,max=72"`
}

type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Username       string     `json:"username"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	NationalID     *string    `json:"national_id,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	Age            int        `json:"age,omitempty"`
	Role           string     `json:"role"`
	Specialization string     `json:"specialization,omitempty"`
	IsActive       bool       `json:"is_active"`
	IsSuperUser    bool       `json:"is_superuser"`
	CreatedByID    *uuid.UUID `json:"created_by_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type UserNameResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CaregiverResponse is the compact form of a doctor or nurse nested in other resources.
type CaregiverResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Specialization string    `json:"specialization,omitempty"`
}
