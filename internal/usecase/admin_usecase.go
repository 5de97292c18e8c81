package usecase

import (
	"context"

	"blood-bank-api/internal/converter"
	"blood-bank-api/internal/delivery/dto"
	"blood-bank-api/internal/domain/entity"
	"blood-bank-api/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var millilitresPerLitre = decimal.NewFromInt(1000)

type AdminUsecase interface {
	ListDonors(ctx context.Context) (*dto.DonorListResponse, error)
	ListHospitals(ctx context.Context) (*dto.HospitalListResponse, error)
	GetStats(ctx context.Context) (*dto.AdminStatsResponse, error)
}

type adminUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	donorRepo     repository.DonorRepository
	hospitalRepo  repository.HospitalRepository
	donationRepo  repository.DonationRepository
	requestRepo   repository.BloodRequestRepository
	inventoryRepo repository.BloodInventoryRepository
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	donorRepo repository.DonorRepository,
	hospitalRepo repository.HospitalRepository,
	donationRepo repository.DonationRepository,
	requestRepo repository.BloodRequestRepository,
	inventoryRepo repository.BloodInventoryRepository,
) AdminUsecase {
	return &adminUsecase{
		db:            db,
		log:           log,
		donorRepo:     donorRepo,
		hospitalRepo:  hospitalRepo,
		donationRepo:  donationRepo,
		requestRepo:   requestRepo,
		inventoryRepo: inventoryRepo,
	}
}

func (u *adminUsecase) ListDonors(ctx context.Context) (*dto.DonorListResponse, error) {
	donors, err := u.donorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find donors: %+v", err)
		return nil, err
	}

	return &dto.DonorListResponse{
		Donors: converter.DonorsToResponses(donors),
		Total:  len(donors),
	}, nil
}

func (u *adminUsecase) ListHospitals(ctx context.Context) (*dto.HospitalListResponse, error) {
	hospitals, err := u.hospitalRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find hospitals: %+v", err)
		return nil, err
	}

	return &dto.HospitalListResponse{
		Hospitals: converter.HospitalsToResponses(hospitals),
		Total:     len(hospitals),
	}, nil
}

// GetStats aggregates fresh counts on every call. The queries are independent and run concurrently.
func (u *adminUsecase) GetStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	stats := &dto.AdminStatsResponse{}
	g, gctx := errgroup.WithContext(ctx)

	run := func(dst *int64, query func(db *gorm.DB) (int64, error)) {
		g.Go(func() error {
			total, err := query(u.db.WithContext(gctx))
			if err != nil {
				return err
			}
			*dst = total
			return nil
		})
	}
	countStatus := func(status entity.RequestStatus) func(db *gorm.DB) (int64, error) {
		return func(db *gorm.DB) (int64, error) {
			return u.requestRepo.CountByStatus(db, status)
		}
	}

	run(&stats.TotalDonors, u.donorRepo.Count)
	run(&stats.TotalHospitals, u.hospitalRepo.Count)
	run(&stats.TotalDonations, u.donationRepo.Count)
	run(&stats.PendingRequests, countStatus(entity.RequestStatusPending))
	run(&stats.ApprovedRequests, countStatus(entity.RequestStatusApproved))
	run(&stats.RejectedRequests, countStatus(entity.RequestStatusRejected))
	run(&stats.CompletedRequests, countStatus(entity.RequestStatusCompleted))
	run(&stats.TotalBloodUnits, u.inventoryRepo.TotalQuantity)

	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to aggregate stats: %+v", err)
		return nil, err
	}

	stats.TotalBloodLiters = decimal.NewFromInt(stats.TotalBloodUnits).Div(millilitresPerLitre)

	return stats, nil
}
