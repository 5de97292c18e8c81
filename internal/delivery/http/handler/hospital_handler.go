package handler

import (
	"encoding/json"
	"net/http"

	"blood-bank-api/internal/delivery/dto"
	"blood-bank-api/internal/usecase"
	"blood-bank-api/pkg/response"
	"blood-bank-api/pkg/validator"
)

type HospitalHandler struct {
	hospitalUsecase usecase.HospitalUsecase
	validator       *validator.CustomValidator
}

func NewHospitalHandler(hospitalUsecase usecase.HospitalUsecase, validator *validator.CustomValidator) *HospitalHandler {
	return &HospitalHandler{
		hospitalUsecase: hospitalUsecase,
		validator:       validator,
	}
}

func (h *HospitalHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	hospital, err := h.hospitalUsecase.GetProfile(r.Context())
	if err != nil {
		writeHospitalError(w, err, "Failed to get hospital profile")
		return
	}

	response.Success(w, http.StatusOK, "Hospital profile retrieved successfully", hospital)
}

func (h *HospitalHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertHospitalProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hospital, err := h.hospitalUsecase.UpsertProfile(r.Context(), &req)
	if err != nil {
		writeHospitalError(w, err, "Failed to save hospital profile")
		return
	}

	response.Success(w, http.StatusOK, "Hospital profile saved successfully", hospital)
}

// CreateRequest submits a PENDING blood request. Stock is only checked at approval.
func (h *HospitalHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBloodRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.hospitalUsecase.CreateRequest(r.Context(), &req)
	if err != nil {
		writeHospitalError(w, err, "Failed to create blood request")
		return
	}

	response.Success(w, http.StatusCreated, "Blood request created successfully", request)
}

func (h *HospitalHandler) GetRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.hospitalUsecase.GetRequests(r.Context())
	if err != nil {
		writeHospitalError(w, err, "Failed to get blood requests")
		return
	}

	response.Success(w, http.StatusOK, "Blood requests retrieved successfully", requests)
}

func (h *HospitalHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.hospitalUsecase.GetStats(r.Context())
	if err != nil {
		writeHospitalError(w, err, "Failed to get hospital stats")
		return
	}

	response.Success(w, http.StatusOK, "Hospital stats retrieved successfully", stats)
}

func writeHospitalError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrHospitalNotFound:
		response.NotFound(w, "Hospital profile not found")
	case usecase.ErrInvalidHospitalFields:
		response.BadRequest(w, "Invalid hospital profile")
	case usecase.ErrInvalidBloodRequest:
		response.BadRequest(w, "Invalid blood request")
	case usecase.ErrUnauthenticated:
		response.Unauthorized(w, "Invalid token")
	default:
		response.InternalServerError(w, fallback)
	}
}
