package repository

import (
	"blood-bank-api/internal/domain/entity"

	"gorm.io/gorm"
)

type BloodInventoryRepository interface {
	FindAll(db *gorm.DB) ([]entity.BloodInventory, error)
	FindByBloodType(db *gorm.DB, bloodType entity.BloodType) (*entity.BloodInventory, error)
	Increment(db *gorm.DB, bloodType entity.BloodType, quantity int) error
	DecrementIfAvailable(db *gorm.DB, bloodType entity.BloodType, quantity int) (int64, error)
	Seed(db *gorm.DB, bloodType entity.BloodType, quantity int) error
	TotalQuantity(db *gorm.DB) (int64, error)
}
