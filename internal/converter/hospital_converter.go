package converter

import (
	"blood-bank-api/internal/delivery/dto"
	"blood-bank-api/internal/domain/entity"

	"github.com/samber/lo"
)

func HospitalToResponse(hospital *entity.Hospital) *dto.HospitalResponse {
	if hospital == nil {
		return nil
	}

	return &dto.HospitalResponse{
		ID:        hospital.ID,
		UserID:    hospital.UserID,
		Name:      hospital.Name,
		Address:   hospital.Address,
		Phone:     hospital.Phone,
		Email:     hospital.User.Email,
		CreatedAt: hospital.CreatedAt,
		UpdatedAt: hospital.UpdatedAt,
	}
}

func HospitalsToResponses(hospitals []entity.Hospital) []dto.HospitalResponse {
	return lo.Map(hospitals, func(hospital entity.Hospital, _ int) dto.HospitalResponse {
		return *HospitalToResponse(&hospital)
	})
}
