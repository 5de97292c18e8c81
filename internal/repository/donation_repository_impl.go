package repository

import (
	"blood-bank-api/internal/domain/entity"
	domainRepo "blood-bank-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type donationRepository struct{}

func NewDonationRepository() domainRepo.DonationRepository {
	return &donationRepository{}
}

func (r *donationRepository) Create(db *gorm.DB, donation *entity.Donation) error {
	return db.Create(donation).Error
}

func (r *donationRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Donation, error) {
	var donations []entity.Donation
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) Count(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&entity.Donation{}).Count(&total).Error
	return total, err
}
