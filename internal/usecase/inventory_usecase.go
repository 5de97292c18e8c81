package usecase

import (
	"context"

	"blood-bank-api/internal/converter"
	"blood-bank-api/internal/delivery/dto"
	"blood-bank-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type InventoryUsecase interface {
	GetInventory(ctx context.Context) (*dto.InventoryListResponse, error)
}

type inventoryUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	inventoryRepo repository.BloodInventoryRepository
}

func NewInventoryUsecase(db *gorm.DB, log *logrus.Logger, inventoryRepo repository.BloodInventoryRepository) InventoryUsecase {
	return &inventoryUsecase{
		db:            db,
		log:           log,
		inventoryRepo: inventoryRepo,
	}
}

func (u *inventoryUsecase) GetInventory(ctx context.Context) (*dto.InventoryListResponse, error) {
	inventory, err := u.inventoryRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find inventory: %+v", err)
		return nil, err
	}

	return &dto.InventoryListResponse{
		Inventory: converter.InventoryToResponses(inventory),
		Total:     len(inventory),
	}, nil
}
