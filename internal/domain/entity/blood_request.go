package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestStatus represents the status of a blood request
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusApproved  RequestStatus = "APPROVED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCompleted RequestStatus = "COMPLETED"
)

// requestTransitions is the full lifecycle of a request. Anything not listed is refused.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:  {RequestStatusApproved, RequestStatusRejected},
	RequestStatusApproved: {RequestStatusCompleted},
}

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected, RequestStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a request in status s may move to next
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BloodRequest represents a hospital's ask for a quantity of one blood type
type BloodRequest struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	HospitalID uuid.UUID     `gorm:"type:uuid;not null;index" json:"hospital_id"`
	UserID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	BloodType  BloodType     `gorm:"type:varchar(3);not null;index" json:"blood_type"`
	Quantity   int           `gorm:"not null" json:"quantity"`
	Reason     *string       `gorm:"type:text" json:"reason,omitempty"`
	Status     RequestStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	DecidedAt  *time.Time    `json:"decided_at,omitempty"`
	CreatedAt  time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

func (BloodRequest) TableName() string {
	return "blood_requests"
}

func (r *BloodRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsPending checks if request is still awaiting a decision
func (r *BloodRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}
