package repository

import (
	"blood-bank-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HospitalRepository interface {
	Create(db *gorm.DB, hospital *entity.Hospital) error
	Update(db *gorm.DB, hospital *entity.Hospital) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Hospital, error)
	FindAll(db *gorm.DB) ([]entity.Hospital, error)
	Count(db *gorm.DB) (int64, error)
}
