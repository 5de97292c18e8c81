package repository

import (
	"errors"
	"time"

	"blood-bank-api/internal/domain/entity"
	domainRepo "blood-bank-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bloodInventoryRepository struct{}

func NewBloodInventoryRepository() domainRepo.BloodInventoryRepository {
	return &bloodInventoryRepository{}
}

func (r *bloodInventoryRepository) FindAll(db *gorm.DB) ([]entity.BloodInventory, error) {
	var inventory []entity.BloodInventory
	err := db.Order("blood_type ASC").Find(&inventory).Error
	if err != nil {
		return nil, err
	}
	return inventory, nil
}

func (r *bloodInventoryRepository) FindByBloodType(db *gorm.DB, bloodType entity.BloodType) (*entity.BloodInventory, error) {
	var inventory entity.BloodInventory
	err := db.Where("blood_type = ?", bloodType).First(&inventory).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inventory, nil
}

// Increment adds quantity to the ledger row of bloodType, creating the row when it does not exist yet.
// The arithmetic happens inside the database so concurrent writers cannot overwrite each other.
func (r *bloodInventoryRepository) Increment(db *gorm.DB, bloodType entity.BloodType, quantity int) error {
	row := &entity.BloodInventory{
		BloodType: bloodType,
		Quantity:  quantity,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blood_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("blood_inventories.quantity + ?", quantity),
			"updated_at": time.Now(),
		}),
	}).Create(row).Error
}

// DecrementIfAvailable removes quantity from the ledger ONLY if enough stock is present.
// Returns affected rows: 1 = success, 0 = insufficient stock or no row for bloodType.
func (r *bloodInventoryRepository) DecrementIfAvailable(db *gorm.DB, bloodType entity.BloodType, quantity int) (int64, error) {
	result := db.Model(&entity.BloodInventory{}).
		Where("blood_type = ? AND quantity >= ?", bloodType, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	return result.RowsAffected, result.Error
}

// Seed creates the ledger row with an initial quantity and leaves existing rows untouched
func (r *bloodInventoryRepository) Seed(db *gorm.DB, bloodType entity.BloodType, quantity int) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blood_type"}},
		DoNothing: true,
	}).Create(&entity.BloodInventory{BloodType: bloodType, Quantity: quantity}).Error
}

func (r *bloodInventoryRepository) TotalQuantity(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&entity.BloodInventory{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}
