package repository

import (
	"errors"
	"time"

	"blood-bank-api/internal/domain/entity"
	domainRepo "blood-bank-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type donorRepository struct{}

func NewDonorRepository() domainRepo.DonorRepository {
	return &donorRepository{}
}

func (r *donorRepository) Create(db *gorm.DB, donor *entity.Donor) error {
	return db.Omit("User").Create(donor).Error
}

// Update writes the editable profile fields only. Counters are owned by IncrementDonations.
func (r *donorRepository) Update(db *gorm.DB, donor *entity.Donor) error {
	return db.Model(donor).
		Select("blood_type", "age", "weight").
		Updates(donor).Error
}

func (r *donorRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Donor, error) {
	var donor entity.Donor
	err := db.Where("user_id = ?", userID).First(&donor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &donor, nil
}

func (r *donorRepository) FindAll(db *gorm.DB) ([]entity.Donor, error) {
	var donors []entity.Donor
	err := db.Preload("User").Order("created_at DESC").Find(&donors).Error
	if err != nil {
		return nil, err
	}
	return donors, nil
}

// IncrementDonations bumps the donation counter in a single statement so concurrent donations never lose an update.
func (r *donorRepository) IncrementDonations(db *gorm.DB, donorID uuid.UUID, donatedAt time.Time) (int64, error) {
	result := db.Model(&entity.Donor{}).
		Where("id = ?", donorID).
		Updates(map[string]interface{}{
			"total_donations":    gorm.Expr("total_donations + ?", 1),
			"last_donation_date": donatedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *donorRepository) Count(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&entity.Donor{}).Count(&total).Error
	return total, err
}
