package repository

import (
	"blood-bank-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonationRepository interface {
	Create(db *gorm.DB, donation *entity.Donation) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Donation, error)
	Count(db *gorm.DB) (int64, error)
}
