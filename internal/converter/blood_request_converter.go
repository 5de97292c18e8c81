package converter

import (
	"blood-bank-api/internal/delivery/dto"
	"blood-bank-api/internal/domain/entity"

	"github.com/samber/lo"
)

// BloodRequestToResponse converts a BloodRequest entity to BloodRequestResponse DTO.
// HospitalName is set when the Hospital relation is preloaded.
func BloodRequestToResponse(request *entity.BloodRequest) *dto.BloodRequestResponse {
	if request == nil {
		return nil
	}

	return &dto.BloodRequestResponse{
		ID:           request.ID,
		HospitalID:   request.HospitalID,
		HospitalName: request.Hospital.Name,
		UserID:       request.UserID,
		BloodType:    string(request.BloodType),
		Quantity:     request.Quantity,
		Reason:       request.Reason,
		Status:       string(request.Status),
		DecidedAt:    request.DecidedAt,
		CreatedAt:    request.CreatedAt,
		UpdatedAt:    request.UpdatedAt,
	}
}

func BloodRequestsToResponses(requests []entity.BloodRequest) []dto.BloodRequestResponse {
	return lo.Map(requests, func(request entity.BloodRequest, _ int) dto.BloodRequestResponse {
		return *BloodRequestToResponse(&request)
	})
}
