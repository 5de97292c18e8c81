package handler

import (
	"encoding/json"
	"net/http"

	"blood-bank-api/internal/delivery/dto"
	"blood-bank-api/internal/usecase"
	"blood-bank-api/pkg/response"
	"blood-bank-api/pkg/validator"
)

type DonorHandler struct {
	donorUsecase usecase.DonorUsecase
	validator    *validator.CustomValidator
}

func NewDonorHandler(donorUsecase usecase.DonorUsecase, validator *validator.CustomValidator) *DonorHandler {
	return &DonorHandler{
		donorUsecase: donorUsecase,
		validator:    validator,
	}
}

func (h *DonorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	donor, err := h.donorUsecase.GetProfile(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrDonorNotFound:
			response.NotFound(w, "Donor profile not found")
		case usecase.ErrUnauthenticated:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to get donor profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Donor profile retrieved successfully", donor)
}

func (h *DonorHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertDonorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	donor, err := h.donorUsecase.UpsertProfile(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDonorProfile:
			response.BadRequest(w, "Invalid donor profile")
		case usecase.ErrUnauthenticated:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to save donor profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Donor profile saved successfully", donor)
}

// Donate records a donation and credits the donated units to inventory
func (h *DonorHandler) Donate(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	donation, err := h.donorUsecase.RecordDonation(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidQuantity:
			response.BadRequest(w, "Invalid quantity")
		case usecase.ErrDonorNotFound:
			response.NotFound(w, "Donor profile not found")
		case usecase.ErrNotEligible:
			response.BadRequest(w, "Not eligible to donate")
		case usecase.ErrUnauthenticated:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to record donation")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Donation recorded successfully", donation)
}

func (h *DonorHandler) GetDonations(w http.ResponseWriter, r *http.Request) {
	donations, err := h.donorUsecase.GetDonations(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrDonorNotFound:
			response.NotFound(w, "Donor profile not found")
		case usecase.ErrUnauthenticated:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to get donations")
		}
		return
	}

	response.Success(w, http.StatusOK, "Donations retrieved successfully", donations)
}
