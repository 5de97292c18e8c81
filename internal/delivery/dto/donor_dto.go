package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpsertDonorProfileRequest struct {
	BloodType string `json:"blood_type" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Age       int    `json:"age" validate:"required,gte=18,lte=65"`
	Weight    int    `json:"weight" validate:"required,gte=50"`
}

// Quantity is range-checked by the usecase so out-of-range values map to "Invalid quantity"
type RecordDonationRequest struct {
	Quantity int `json:"quantity"`
}

// Response DTOs

type DonorResponse struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	Name             string     `json:"name,omitempty"`
	Email            string     `json:"email,omitempty"`
	BloodType        string     `json:"blood_type"`
	Age              int        `json:"age"`
	Weight           int        `json:"weight"`
	TotalDonations   int        `json:"total_donations"`
	IsEligible       bool       `json:"is_eligible"`
	LastDonationDate *time.Time `json:"last_donation_date"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type DonorListResponse struct {
	Donors []DonorResponse `json:"donors"`
	Total  int             `json:"total"`
}

type DonationResponse struct {
	ID        uuid.UUID `json:"id"`
	DonorID   uuid.UUID `json:"donor_id"`
	UserID    uuid.UUID `json:"user_id"`
	BloodType string    `json:"blood_type"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type DonationListResponse struct {
	Donations []DonationResponse `json:"donations"`
	Total     int                `json:"total"`
}
