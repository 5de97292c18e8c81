package repository

import (
	"errors"
	"time"

	"blood-bank-api/internal/domain/entity"
	domainRepo "blood-bank-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bloodRequestRepository struct{}

func NewBloodRequestRepository() domainRepo.BloodRequestRepository {
	return &bloodRequestRepository{}
}

func (r *bloodRequestRepository) Create(db *gorm.DB, request *entity.BloodRequest) error {
	return db.Omit("Hospital").Create(request).Error
}

func (r *bloodRequestRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.BloodRequest, error) {
	var request entity.BloodRequest
	err := db.Preload("Hospital").Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// FindAll returns every request, newest first. An empty status means no filter.
func (r *bloodRequestRepository) FindAll(db *gorm.DB, status entity.RequestStatus) ([]entity.BloodRequest, error) {
	var requests []entity.BloodRequest
	query := db.Preload("Hospital")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *bloodRequestRepository) FindByHospitalID(db *gorm.DB, hospitalID uuid.UUID) ([]entity.BloodRequest, error) {
	var requests []entity.BloodRequest
	err := db.Where("hospital_id = ?", hospitalID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatus atomically moves a request from one status to another.
// Returns affected rows: 1 = success, 0 = the request is no longer in status `from` (prevents double decisions).
// decidedAt is written only when non-nil.
func (r *bloodRequestRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.RequestStatus, decidedAt *time.Time) (int64, error) {
	values := map[string]interface{}{
		"status": to,
	}
	if decidedAt != nil {
		values["decided_at"] = *decidedAt
	}

	result := db.Model(&entity.BloodRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	return result.RowsAffected, result.Error
}

func (r *bloodRequestRepository) CountByStatus(db *gorm.DB, status entity.RequestStatus) (int64, error) {
	var total int64
	err := db.Model(&entity.BloodRequest{}).Where("status = ?", status).Count(&total).Error
	return total, err
}

func (r *bloodRequestRepository) CountByHospitalAndStatus(db *gorm.DB, hospitalID uuid.UUID, status entity.RequestStatus) (int64, error) {
	var total int64
	err := db.Model(&entity.BloodRequest{}).
		Where("hospital_id = ? AND status = ?", hospitalID, status).
		Count(&total).Error
	return total, err
}
