package usecase

import (
	"context"
	"errors"
	"time"

	"blood-bank-api/internal/converter"
	"blood-bank-api/internal/delivery/dto"
	"blood-bank-api/internal/domain/entity"
	"blood-bank-api/internal/domain/repository"
	"blood-bank-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDonorNotFound       = errors.New("donor profile not found")
	ErrInvalidDonorProfile = errors.New("invalid donor profile")
	ErrNotEligible         = errors.New("not eligible to donate")
	ErrInvalidQuantity     = errors.New("invalid quantity")
)

type DonorUsecase interface {
	GetProfile(ctx context.Context) (*dto.DonorResponse, error)
	UpsertProfile(ctx context.Context, req *dto.UpsertDonorProfileRequest) (*dto.DonorResponse, error)
	RecordDonation(ctx context.Context, req *dto.RecordDonationRequest) (*dto.DonationResponse, error)
	GetDonations(ctx context.Context) (*dto.DonationListResponse, error)
}

type donorUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	donorRepo     repository.DonorRepository
	donationRepo  repository.DonationRepository
	inventoryRepo repository.BloodInventoryRepository
	auditService  service.AuditService
	publisher     service.EventPublisher
}

func NewDonorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	donorRepo repository.DonorRepository,
	donationRepo repository.DonationRepository,
	inventoryRepo repository.BloodInventoryRepository,
	auditService service.AuditService,
	publisher service.EventPublisher,
) DonorUsecase {
	return &donorUsecase{
		db:            db,
		log:           log,
		donorRepo:     donorRepo,
		donationRepo:  donationRepo,
		inventoryRepo: inventoryRepo,
		auditService:  auditService,
		publisher:     publisher,
	}
}

func (u *donorUsecase) GetProfile(ctx context.Context) (*dto.DonorResponse, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	donor, err := u.donorRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find donor for user %s: %+v", userID, err)
		return nil, err
	}
	if donor == nil {
		return nil, ErrDonorNotFound
	}

	return converter.DonorToResponse(donor), nil
}

// UpsertProfile creates the caller's donor record on first use and afterwards updates
// blood type, age and weight. Counters and eligibility are never touched here.
func (u *donorUsecase) UpsertProfile(ctx context.Context, req *dto.UpsertDonorProfileRequest) (*dto.DonorResponse, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	bloodType := entity.BloodType(req.BloodType)
	if !bloodType.IsValid() ||
		req.Age < entity.DonorMinAge || req.Age > entity.DonorMaxAge ||
		req.Weight < entity.DonorMinWeight {
		return nil, ErrInvalidDonorProfile
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	donor, err := u.donorRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find donor for user %s: %+v", userID, err)
		return nil, err
	}

	if donor == nil {
		donor = &entity.Donor{
			UserID:         userID,
			BloodType:      bloodType,
			Age:            req.Age,
			Weight:         req.Weight,
			TotalDonations: 0,
			IsEligible:     true,
		}
		if err := u.donorRepo.Create(tx, donor); err != nil {
			u.log.Warnf("Failed to create donor: %+v", err)
			return nil, err
		}

		if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionDonorProfile, "donor", donor.ID.String(), converter.DonorToResponse(donor)); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
	} else {
		oldValue := converter.DonorToResponse(donor)

		donor.BloodType = bloodType
		donor.Age = req.Age
		donor.Weight = req.Weight
		if err := u.donorRepo.Update(tx, donor); err != nil {
			u.log.Warnf("Failed to update donor %s: %+v", donor.ID, err)
			return nil, err
		}

		if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionDonorProfile, "donor", donor.ID.String(), oldValue, converter.DonorToResponse(donor)); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DonorToResponse(donor), nil
}

// RecordDonation logs a completed donation and credits the inventory and donor counter.
//
// Flow (single transaction):
// 1. Validate quantity and donor eligibility
// 2. Insert donation
// 3. Upsert inventory row: quantity = quantity + q
// 4. Increment donor counter and stamp last donation date
func (u *donorUsecase) RecordDonation(ctx context.Context, req *dto.RecordDonationRequest) (*dto.DonationResponse, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if req.Quantity < entity.DonationMinQuantity || req.Quantity > entity.DonationMaxQuantity {
		return nil, ErrInvalidQuantity
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	donor, err := u.donorRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find donor for user %s: %+v", userID, err)
		return nil, err
	}
	if donor == nil {
		return nil, ErrDonorNotFound
	}
	if !donor.IsEligible {
		return nil, ErrNotEligible
	}

	donation := &entity.Donation{
		DonorID:   donor.ID,
		UserID:    userID,
		BloodType: donor.BloodType,
		Quantity:  req.Quantity,
		Status:    entity.DonationStatusCompleted,
		CreatedAt: time.Now(),
	}
	if err := u.donationRepo.Create(tx, donation); err != nil {
		u.log.Warnf("Failed to create donation: %+v", err)
		return nil, err
	}

	if err := u.inventoryRepo.Increment(tx, donation.BloodType, donation.Quantity); err != nil {
		u.log.Warnf("Failed to increment inventory %s: %+v", donation.BloodType, err)
		return nil, err
	}

	affected, err := u.donorRepo.IncrementDonations(tx, donor.ID, donation.CreatedAt)
	if err != nil {
		u.log.Warnf("Failed to increment donations for donor %s: %+v", donor.ID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrDonorNotFound
	}

	response := converter.DonationToResponse(donation)
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionDonationRecord, "donation", donation.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.publisher.Publish(ctx, service.NewEvent(service.EventDonationRecorded, donation.ID.String(), response))

	return response, nil
}

func (u *donorUsecase) GetDonations(ctx context.Context) (*dto.DonationListResponse, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	donations, err := u.donationRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find donations for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.DonationListResponse{
		Donations: converter.DonationsToResponses(donations),
		Total:     len(donations),
	}, nil
}
