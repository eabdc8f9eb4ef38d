package handler

import (
	"net/http"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"
)

type (
	DoctorReportHandler = RecordHandler[dto.DoctorReportRequest, dto.UpdateReportRequest, dto.DoctorReportResponse]
	NurseReportHandler  = RecordHandler[dto.NurseReportRequest, dto.UpdateReportRequest, dto.NurseReportResponse]
	RayHandler          = RecordHandler[dto.RayRequest, dto.UpdateRayRequest, dto.RayResponse]
)

// ReportHandler groups doctor and nurse reports, which share the patient view.
type ReportHandler struct {
	Doctor *DoctorReportHandler
	Nurse  *NurseReportHandler

	doctorReportUsecase usecase.DoctorReportUsecase
	nurseReportUsecase  usecase.NurseReportUsecase
}

func NewReportHandler(
	doctorReportUsecase usecase.DoctorReportUsecase,
	nurseReportUsecase usecase.NurseReportUsecase,
	validator *validator.CustomValidator,
) *ReportHandler {
	return &ReportHandler{
		Doctor:              NewRecordHandler[dto.DoctorReportRequest, dto.UpdateReportRequest, dto.DoctorReportResponse](doctorReportUsecase, validator, "doctor_report", "doctor_reports"),
		Nurse:               NewRecordHandler[dto.NurseReportRequest, dto.UpdateReportRequest, dto.NurseReportResponse](nurseReportUsecase, validator, "nurse_report", "nurse_reports"),
		doctorReportUsecase: doctorReportUsecase,
		nurseReportUsecase:  nurseReportUsecase,
	}
}

func NewRayHandler(rayUsecase usecase.RayUsecase, validator *validator.CustomValidator) *RayHandler {
	return NewRecordHandler[dto.RayRequest, dto.UpdateRayRequest, dto.RayResponse](rayUsecase, validator, "ray", "rays")
}

// ListForPatient returns both report kinds for a patient. Admins see all of
// them, caregivers only the ones they may view.
func (h *ReportHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	patientID, ok := pathID(w, r, "patientId", "patient")
	if !ok {
		return
	}

	doctorReports, err := h.doctorReportUsecase.ListForPatient(r.Context(), actor, patientID)
	if err != nil {
		writeError(w, err, "Failed to get reports")
		return
	}
	nurseReports, err := h.nurseReportUsecase.ListForPatient(r.Context(), actor, patientID)
	if err != nil {
		writeError(w, err, "Failed to get reports")
		return
	}

	if doctorReports == nil {
		doctorReports = []dto.DoctorReportResponse{}
	}
	if nurseReports == nil {
		nurseReports = []dto.NurseReportResponse{}
	}

	response.JSON(w, http.StatusOK, dto.PatientReportsResponse{
		Result:        len(doctorReports) + len(nurseReports),
		DoctorReports: doctorReports,
		NurseReports:  nurseReports,
	})
}
