package repository

import (
	"time"

	"blood-bank-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BloodRequestRepository interface {
	Create(db *gorm.DB, request *entity.BloodRequest) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.BloodRequest, error)
	FindAll(db *gorm.DB, status entity.RequestStatus) ([]entity.BloodRequest, error)
	FindByHospitalID(db *gorm.DB, hospitalID uuid.UUID) ([]entity.BloodRequest, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.RequestStatus, decidedAt *time.Time) (int64, error)
	CountByStatus(db *gorm.DB, status entity.RequestStatus) (int64, error)
	CountByHospitalAndStatus(db *gorm.DB, hospitalID uuid.UUID, status entity.RequestStatus) (int64, error)
}
