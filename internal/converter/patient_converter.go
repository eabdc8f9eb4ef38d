package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:          patient.ID,
		Name:        patient.Name,
		DiseaseType: patient.DiseaseType,
		RoomNumber:  patient.RoomNumber,
		Address:     patient.Address,
		NationalID:  patient.NationalID,
		Phone:       patient.Phone,
		Gender:      patient.Gender,
		Age:         patient.Age,
		Status:      patient.Status,
		CreatedByID: patient.CreatedByID,
		Doctors:     DoctorsToCaregivers(patient.Doctors),
		Nurses:      NursesToCaregivers(patient.Nurses),
		CreatedAt:   patient.CreatedAt,
		UpdatedAt:   patient.UpdatedAt,
	}
}

func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}

func PatientToSummary(patient *entity.Patient) dto.PatientSummary {
	return dto.PatientSummary{
		ID:         patient.ID,
		Name:       patient.Name,
		RoomNumber: patient.RoomNumber,
	}
}
