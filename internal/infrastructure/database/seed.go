package database

import (
	"fmt"

	"blood-bank-api/config"
	"blood-bank-api/internal/domain/entity"
	"blood-bank-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed makes sure every blood type has a ledger row and that an admin account exists.
// Existing rows are never modified, so Seed is safe to run on every start.
func Seed(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.SeedConfig,
	userRepo repository.UserRepository,
	inventoryRepo repository.BloodInventoryRepository,
) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, bloodType := range entity.AllBloodTypes {
			if err := inventoryRepo.Seed(tx, bloodType, cfg.InitialStock); err != nil {
				return fmt.Errorf("seed inventory %s: %w", bloodType, err)
			}
		}

		if cfg.AdminEmail == "" {
			return nil
		}

		existing, err := userRepo.FindByEmail(tx, cfg.AdminEmail)
		if err != nil {
			return fmt.Errorf("find admin user: %w", err)
		}
		if existing != nil {
			return nil
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}

		admin := &entity.User{
			Email:    cfg.AdminEmail,
			Password: string(hashedPassword),
			Name:     cfg.AdminName,
			Role:     entity.RoleAdmin,
		}
		if err := userRepo.Create(tx, admin); err != nil {
			return fmt.Errorf("create admin user: %w", err)
		}

		log.Infof("Seeded admin user %s", cfg.AdminEmail)
		return nil
	})
}
