package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Donor eligibility bounds
const (
	DonorMinAge    = 18
	DonorMaxAge    = 65
	DonorMinWeight = 50
)

// Donor represents donor-specific profile data, one row per DONOR user
type Donor struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	BloodType        BloodType  `gorm:"type:varchar(3);not null;index" json:"blood_type"`
	Age              int        `gorm:"not null" json:"age"`
	Weight           int        `gorm:"not null" json:"weight"`
	TotalDonations   int        `gorm:"not null;default:0" json:"total_donations"`
	IsEligible       bool       `gorm:"not null;default:true" json:"is_eligible"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User      User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Donations []Donation `gorm:"foreignKey:DonorID" json:"donations,omitempty"`
}

func (Donor) TableName() string {
	return "donors"
}

func (d *Donor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
