package converter

import (
	"blood-bank-api/internal/delivery/dto"
	"blood-bank-api/internal/domain/entity"

	"github.com/samber/lo"
)

// DonorToResponse converts a Donor entity to DonorResponse DTO.
// Name and email are filled only when the User relation is loaded.
func DonorToResponse(donor *entity.Donor) *dto.DonorResponse {
	if donor == nil {
		return nil
	}

	return &dto.DonorResponse{
		ID:               donor.ID,
		UserID:           donor.UserID,
		Name:             donor.User.Name,
		Email:            donor.User.Email,
		BloodType:        string(donor.BloodType),
		Age:              donor.Age,
		Weight:           donor.Weight,
		TotalDonations:   donor.TotalDonations,
		IsEligible:       donor.IsEligible,
		LastDonationDate: donor.LastDonationDate,
		CreatedAt:        donor.CreatedAt,
		UpdatedAt:        donor.UpdatedAt,
	}
}

func DonorsToResponses(donors []entity.Donor) []dto.DonorResponse {
	return lo.Map(donors, func(donor entity.Donor, _ int) dto.DonorResponse {
		return *DonorToResponse(&donor)
	})
}

func DonationToResponse(donation *entity.Donation) *dto.DonationResponse {
	if donation == nil {
		return nil
	}

	return &dto.DonationResponse{
		ID:        donation.ID,
		DonorID:   donation.DonorID,
		UserID:    donation.UserID,
		BloodType: string(donation.BloodType),
		Quantity:  donation.Quantity,
		Status:    string(donation.Status),
		CreatedAt: donation.CreatedAt,
	}
}

func DonationsToResponses(donations []entity.Donation) []dto.DonationResponse {
	return lo.Map(donations, func(donation entity.Donation, _ int) dto.DonationResponse {
		return *DonationToResponse(&donation)
	})
}
