package dto

import "github.com/google/uuid"

type AssignNursesRequest struct {
	DoctorID uuid.UUID   `json:"doctor_id" validate:"required"`
	NurseIDs []uuid.UUID `json:"nurse_ids" validate:"required,min=1"`
}

type UnassignNurseRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	NurseID  uuid.UUID `json:"nurse_id" validate:"required"`
}
