package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBloodRequestRequest struct {
	BloodType string  `json:"blood_type" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Reason    *string `json:"reason" validate:"omitempty,max=1000"`
}

type DecideBloodRequestRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

type BloodRequestFilter struct {
	Status string `validate:"omitempty,oneof=PENDING APPROVED REJECTED COMPLETED"`
}

// Response DTOs

type BloodRequestResponse struct {
	ID           uuid.UUID  `json:"id"`
	HospitalID   uuid.UUID  `json:"hospital_id"`
	HospitalName string     `json:"hospital_name,omitempty"`
	UserID       uuid.UUID  `json:"user_id"`
	BloodType    string     `json:"blood_type"`
	Quantity     int        `json:"quantity"`
	Reason       *string    `json:"reason,omitempty"`
	Status       string     `json:"status"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type BloodRequestListResponse struct {
	Requests []BloodRequestResponse `json:"requests"`
	Total    int                    `json:"total"`
}
