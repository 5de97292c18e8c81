package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationStatus represents the status of a donation
type DonationStatus string

const (
	DonationStatusCompleted DonationStatus = "COMPLETED"
)

// Accepted volume per donation, in millilitres
const (
	DonationMinQuantity = 100
	DonationMaxQuantity = 500
)

// Donation is an append-only record of a completed donation
type Donation struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DonorID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"donor_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	BloodType BloodType      `gorm:"type:varchar(3);not null" json:"blood_type"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	Status    DonationStatus `gorm:"type:varchar(20);not null;default:'COMPLETED'" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Donation) TableName() string {
	return "donations"
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
