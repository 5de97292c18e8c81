package repository

import (
	"time"

	"blood-bank-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonorRepository interface {
	Create(db *gorm.DB, donor *entity.Donor) error
	Update(db *gorm.DB, donor *entity.Donor) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Donor, error)
	FindAll(db *gorm.DB) ([]entity.Donor, error)
	IncrementDonations(db *gorm.DB, donorID uuid.UUID, donatedAt time.Time) (int64, error)
	Count(db *gorm.DB) (int64, error)
}
