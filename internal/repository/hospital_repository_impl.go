package repository

import (
	"errors"

	"blood-bank-api/internal/domain/entity"
	domainRepo "blood-bank-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type hospitalRepository struct{}

func NewHospitalRepository() domainRepo.HospitalRepository {
	return &hospitalRepository{}
}

func (r *hospitalRepository) Create(db *gorm.DB, hospital *entity.Hospital) error {
	return db.Omit("User").Create(hospital).Error
}

func (r *hospitalRepository) Update(db *gorm.DB, hospital *entity.Hospital) error {
	return db.Model(hospital).
		Select("name", "address", "phone").
		Updates(hospital).Error
}

func (r *hospitalRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Hospital, error) {
	var hospital entity.Hospital
	err := db.Where("user_id = ?", userID).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) FindAll(db *gorm.DB) ([]entity.Hospital, error) {
	var hospitals []entity.Hospital
	err := db.Preload("User").Order("created_at DESC").Find(&hospitals).Error
	if err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (r *hospitalRepository) Count(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&entity.Hospital{}).Count(&total).Error
	return total, err
}
