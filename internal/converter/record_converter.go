package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

func DoctorReportToResponse(report *entity.DoctorReport) *dto.DoctorReportResponse {
	if report == nil {
		return nil
	}
	return &dto.DoctorReportResponse{
		ID:        report.ID,
		Title:     report.Title,
		Doctor:    DoctorToCaregiver(&report.Doctor),
		Patient:   PatientToSummary(&report.Patient),
		Nurses:    NursesToCaregivers(report.Nurses),
		CreatedAt: report.CreatedAt,
		UpdatedAt: report.UpdatedAt,
	}
}

func NurseReportToResponse(report *entity.NurseReport) *dto.NurseReportResponse {
	if report == nil {
		return nil
	}
	return &dto.NurseReportResponse{
		ID:        report.ID,
		Title:     report.Title,
		Nurse:     NurseToCaregiver(&report.Nurse),
		Patient:   PatientToSummary(&report.Patient),
		Doctors:   DoctorsToCaregivers(report.Doctors),
		CreatedAt: report.CreatedAt,
		UpdatedAt: report.UpdatedAt,
	}
}

func RayToResponse(ray *entity.Ray) *dto.RayResponse {
	if ray == nil {
		return nil
	}
	return &dto.RayResponse{
		ID:        ray.ID,
		Name:      ray.Name,
		Doctor:    DoctorToCaregiver(&ray.Doctor),
		Patient:   PatientToSummary(&ray.Patient),
		Nurses:    NursesToCaregivers(ray.Nurses),
		CreatedAt: ray.CreatedAt,
		UpdatedAt: ray.UpdatedAt,
	}
}

func MedicineToResponse(medicine *entity.Medicine) *dto.MedicineResponse {
	if medicine == nil {
		return nil
	}
	return &dto.MedicineResponse{
		ID:            medicine.ID,
		CatalogItemID: medicine.CatalogItemID,
		Name:          medicine.Name,
		DosageAmount:  medicine.DosageAmount,
		DosageUnit:    medicine.DosageUnit,
		Frequency:     medicine.Frequency,
		Notes:         medicine.Notes,
		Doctor:        DoctorToCaregiver(&medicine.Doctor),
		Patient:       PatientToSummary(&medicine.Patient),
		Nurses:        NursesToCaregivers(medicine.Nurses),
		CreatedAt:     medicine.CreatedAt,
		UpdatedAt:     medicine.UpdatedAt,
	}
}

func CatalogItemToResponse(item *entity.MedicineCatalogItem) *dto.CatalogItemResponse {
	if item == nil {
		return nil
	}
	return &dto.CatalogItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		CreatedAt: item.CreatedAt,
	}
}

func CatalogItemsToResponses(items []entity.MedicineCatalogItem) []dto.CatalogItemResponse {
	responses := make([]dto.CatalogItemResponse, len(items))
	for i := range items {
		responses[i] = *CatalogItemToResponse(&items[i])
	}
	return responses
}

// Convert maps every record with fn; it is used for the list endpoints.
func Convert[T any, R any](records []T, fn func(*T) *R) []R {
	responses := make([]R, len(records))
	for i := range records {
		responses[i] = *fn(&records[i])
	}
	return responses
}
