package handler

import (
	"net/http"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"
)

// MedicineHandler serves prescriptions plus the catalog they reference.
type MedicineHandler struct {
	*RecordHandler[dto.MedicineRequest, dto.UpdateMedicineRequest, dto.MedicineResponse]

	medicineUsecase usecase.MedicineUsecase
	validator       *validator.CustomValidator
}

func NewMedicineHandler(medicineUsecase usecase.MedicineUsecase, validator *validator.CustomValidator) *MedicineHandler {
	return &MedicineHandler{
		RecordHandler:   NewRecordHandler[dto.MedicineRequest, dto.UpdateMedicineRequest, dto.MedicineResponse](medicineUsecase, validator, "medicine", "medicines"),
		medicineUsecase: medicineUsecase,
		validator:       validator,
	}
}

func (h *MedicineHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	items, err := h.medicineUsecase.ListCatalog(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err, "Failed to get catalog")
		return
	}

	response.List(w, "catalog", items)
}

func (h *MedicineHandler) CreateCatalogItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req dto.CatalogItemRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	item, err := h.medicineUsecase.CreateCatalogItem(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err, "Failed to create catalog item")
		return
	}

	response.Resource(w, http.StatusCreated, "Catalog item created successfully", "item", item)
}
