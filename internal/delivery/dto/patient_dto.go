package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	Name        string      `json:"name" validate:"required,min=2,max=255"`
	DiseaseType string      `json:"disease_type" validate:"omitempty,max=255"`
	RoomNumber  string      `json:"room_number" validate:"omitempty,max=20"`
	Address     string      `json:"address" validate:"omitempty,max=500"`
	NationalID  string      `json:"national_id" validate:"required,alphanum,min=5,max=32"`
	Phone       string      `json:"phone" validate:"required,numeric,min=7,max=20"`
	Gender      string      `json:"gender" validate:"omitempty,oneof=male female"`
	Age         int         `json:"age" validate:"omitempty,gte=0,lte=150"`
	Status      string      `json:"status" validate:"omitempty,max=50"`
	Doctors     []uuid.UUID `json:"doctors"`
	Nurses      []uuid.UUID `json:"nurses"`
}

type UpdatePatientRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=255"`
	DiseaseType *string `json:"disease_type" validate:"omitempty,max=255"`
	RoomNumber  *string `json:"room_number" validate:"omitempty,max=20"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
	NationalID  *string `json:"national_id" validate:"omitempty,alphanum,min=5,max=32"`
	Phone       *string `json:"phone" validate:"omitempty,numeric,min=7,max=20"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=male female"`
	Age         *int    `json:"age" validate:"omitempty,gte=0,lte=150"`
	Status      *string `json:"status" validate:"omitempty,max=50"`
}

type AddCaregiversRequest struct {
	Doctors []uuid.UUID `json:"doctors" validate:"required_without=Nurses"`
	Nurses  []uuid.UUID `json:"nurses" validate:"required_without=Doctors"`
}

// Response DTOs

type PatientResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	DiseaseType string              `json:"disease_type,omitempty"`
	RoomNumber  string              `json:"room_number,omitempty"`
	Address     string              `json:"address,omitempty"`
	NationalID  string              `json:"national_id"`
	Phone       string              `json:"phone"`
	Gender      string              `json:"gender,omitempty"`
	Age         int                 `json:"age,omitempty"`
	Status      string              `json:"status,omitempty"`
	CreatedByID uuid.UUID           `json:"created_by_id"`
	Doctors     []CaregiverResponse `json:"doctors"`
	Nurses      []CaregiverResponse `json:"nurses"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// PatientSummary is nested in records.
type PatientSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	RoomNumber string    `json:"room_number,omitempty"`
}
