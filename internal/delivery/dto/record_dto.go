package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// DoctorReportRequest addresses the report to Nurses; an empty list leaves it
// unfiltered, visible to every nurse treating the patient.
type DoctorReportRequest struct {
	Title   string      `json:"title" validate:"required,max=255"`
	Patient uuid.UUID   `json:"patient" validate:"required"`
	Nurses  []uuid.UUID `json:"nurses"`
}

type NurseReportRequest struct {
	Title   string      `json:"title" validate:"required,max=255"`
	Patient uuid.UUID   `json:"patient" validate:"required"`
	Doctors []uuid.UUID `json:"doctors"`
}

type UpdateReportRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

type RayRequest struct {
	Name    string      `json:"name" validate:"required,max=255"`
	Patient uuid.UUID   `json:"patient" validate:"required"`
	Nurses  []uuid.UUID `json:"nurses"`
}

type UpdateRayRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type MedicineRequest struct {
	CatalogItemID uuid.UUID       `json:"catalog_item_id" validate:"required"`
	DosageAmount  decimal.Decimal `json:"dosage_amount"`
	DosageUnit    string          `json:"dosage_unit" validate:"required,max=20"`
	Frequency     string          `json:"frequency" validate:"omitempty,max=100"`
	Notes         string          `json:"notes" validate:"omitempty,max=1000"`
	Patient       uuid.UUID       `json:"patient" validate:"required"`
	Nurses        []uuid.UUID     `json:"nurses"`
}

type UpdateMedicineRequest struct {
	DosageAmount *decimal.Decimal `json:"dosage_amount"`
	DosageUnit   *string          `json:"dosage_unit" validate:"omitempty,max=20"`
	Frequency    *string          `json:"frequency" validate:"omitempty,max=100"`
	Notes        *string          `json:"notes" validate:"omitempty,max=1000"`
}

type CatalogItemRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// Response DTOs

type DoctorReportResponse struct {
	ID        uuid.UUID           `json:"id"`
	Title     string              `json:"title"`
	Doctor    CaregiverResponse   `json:"doctor"`
	Patient   PatientSummary      `json:"patient"`
	Nurses    []CaregiverResponse `json:"nurses"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type NurseReportResponse struct {
	ID        uuid.UUID           `json:"id"`
	Title     string              `json:"title"`
	Nurse     CaregiverResponse   `json:"nurse"`
	Patient   PatientSummary      `json:"patient"`
	Doctors   []CaregiverResponse `json:"doctors"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// PatientReportsResponse groups both report kinds written about one patient.
type PatientReportsResponse struct {
	Result        int                    `json:"result"`
	DoctorReports []DoctorReportResponse `json:"doctor_reports"`
	NurseReports  []NurseReportResponse  `json:"nurse_reports"`
}

type RayResponse struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Doctor    CaregiverResponse   `json:"doctor"`
	Patient   PatientSummary      `json:"patient"`
	Nurses    []CaregiverResponse `json:"nurses"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type MedicineResponse struct {
	ID            uuid.UUID           `json:"id"`
	CatalogItemID uuid.UUID           `json:"catalog_item_id"`
	Name          string              `json:"name"`
	DosageAmount  decimal.Decimal     `json:"dosage_amount"`
	DosageUnit    string              `json:"dosage_unit"`
	Frequency     string              `json:"frequency,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	Doctor        CaregiverResponse   `json:"doctor"`
	Patient       PatientSummary      `json:"patient"`
	Nurses        []CaregiverResponse `json:"nurses"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

type CatalogItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
