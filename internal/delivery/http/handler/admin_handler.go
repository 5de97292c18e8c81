package handler

import (
	"encoding/json"
	"net/http"

	"blood-bank-api/internal/delivery/dto"
	"blood-bank-api/internal/usecase"
	"blood-bank-api/pkg/response"
	"blood-bank-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AdminHandler struct {
	adminUsecase        usecase.AdminUsecase
	bloodRequestUsecase usecase.BloodRequestUsecase
	inventoryUsecase    usecase.InventoryUsecase
	validator           *validator.CustomValidator
}

func NewAdminHandler(
	adminUsecase usecase.AdminUsecase,
	bloodRequestUsecase usecase.BloodRequestUsecase,
	inventoryUsecase usecase.InventoryUsecase,
	validator *validator.CustomValidator,
) *AdminHandler {
	return &AdminHandler{
		adminUsecase:        adminUsecase,
		bloodRequestUsecase: bloodRequestUsecase,
		inventoryUsecase:    inventoryUsecase,
		validator:           validator,
	}
}

func (h *AdminHandler) GetDonors(w http.ResponseWriter, r *http.Request) {
	donors, err := h.adminUsecase.ListDonors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get donors")
		return
	}

	response.Success(w, http.StatusOK, "Donors retrieved successfully", donors)
}

func (h *AdminHandler) GetHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.adminUsecase.ListHospitals(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get hospitals")
		return
	}

	response.Success(w, http.StatusOK, "Hospitals retrieved successfully", hospitals)
}

// GetInventory is shared by admins and hospitals
func (h *AdminHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	inventory, err := h.inventoryUsecase.GetInventory(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get inventory")
		return
	}

	response.Success(w, http.StatusOK, "Inventory retrieved successfully", inventory)
}

func (h *AdminHandler) GetRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.bloodRequestUsecase.ListRequests(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		switch err {
		case usecase.ErrInvalidStatusFilter:
			response.BadRequest(w, "Invalid status filter")
		default:
			response.InternalServerError(w, "Failed to get blood requests")
		}
		return
	}

	response.Success(w, http.StatusOK, "Blood requests retrieved successfully", requests)
}

// DecideRequest approves or rejects a PENDING request
func (h *AdminHandler) DecideRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid request ID")
		return
	}

	var req dto.DecideBloodRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.bloodRequestUsecase.DecideRequest(r.Context(), requestID, &req)
	if err != nil {
		writeRequestTransitionError(w, err, "Failed to update blood request")
		return
	}

	response.Success(w, http.StatusOK, "Blood request updated successfully", request)
}

func (h *AdminHandler) CompleteRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid request ID")
		return
	}

	request, err := h.bloodRequestUsecase.CompleteRequest(r.Context(), requestID)
	if err != nil {
		writeRequestTransitionError(w, err, "Failed to complete blood request")
		return
	}

	response.Success(w, http.StatusOK, "Blood request completed successfully", request)
}

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminUsecase.GetStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get stats")
		return
	}

	response.Success(w, http.StatusOK, "Stats retrieved successfully", stats)
}

func writeRequestTransitionError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrRequestNotFound:
		response.NotFound(w, "Request not found")
	case usecase.ErrRequestAlreadyDecided:
		response.Conflict(w, "Request has already been decided")
	case usecase.ErrInsufficientStock:
		response.Conflict(w, "Insufficient stock")
	case usecase.ErrInvalidDecision:
		response.BadRequest(w, "Invalid status")
	case usecase.ErrUnauthenticated:
		response.Unauthorized(w, "Invalid token")
	default:
		response.InternalServerError(w, fallback)
	}
}
