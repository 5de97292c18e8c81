package usecase

import (
	"context"
	"errors"
	"strings"

	"blood-bank-api/internal/converter"
	"blood-bank-api/internal/delivery/dto"
	"blood-bank-api/internal/domain/entity"
	"blood-bank-api/internal/domain/repository"
	"blood-bank-api/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrHospitalNotFound      = errors.New("hospital profile not found")
	ErrInvalidBloodRequest   = errors.New("invalid blood request")
	ErrInvalidHospitalFields = errors.New("invalid hospital profile")
)

type HospitalUsecase interface {
	GetProfile(ctx context.Context) (*dto.HospitalResponse, error)
	UpsertProfile(ctx context.Context, req *dto.UpsertHospitalProfileRequest) (*dto.HospitalResponse, error)
	CreateRequest(ctx context.Context, req *dto.CreateBloodRequestRequest) (*dto.BloodRequestResponse, error)
	GetRequests(ctx context.Context) (*dto.BloodRequestListResponse, error)
	GetStats(ctx context.Context) (*dto.HospitalStatsResponse, error)
}

type hospitalUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	hospitalRepo repository.HospitalRepository
	requestRepo  repository.BloodRequestRepository
	auditService service.AuditService
	publisher    service.EventPublisher
}

func NewHospitalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	hospitalRepo repository.HospitalRepository,
	requestRepo repository.BloodRequestRepository,
	auditService service.AuditService,
	publisher service.EventPublisher,
) HospitalUsecase {
	return &hospitalUsecase{
		db:           db,
		log:          log,
		hospitalRepo: hospitalRepo,
		requestRepo:  requestRepo,
		auditService: auditService,
		publisher:    publisher,
	}
}

func (u *hospitalUsecase) findCallerHospital(ctx context.Context, db *gorm.DB) (*entity.Hospital, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	hospital, err := u.hospitalRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find hospital for user %s: %+v", userID, err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}
	return hospital, nil
}

func (u *hospitalUsecase) GetProfile(ctx context.Context) (*dto.HospitalResponse, error) {
	hospital, err := u.findCallerHospital(ctx, u.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) UpsertProfile(ctx context.Context, req *dto.UpsertHospitalProfileRequest) (*dto.HospitalResponse, error) {
	userID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	address := strings.TrimSpace(req.Address)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || address == "" || phone == "" {
		return nil, ErrInvalidHospitalFields
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hospital, err := u.hospitalRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find hospital for user %s: %+v", userID, err)
		return nil, err
	}

	if hospital == nil {
		hospital = &entity.Hospital{
			UserID:  userID,
			Name:    name,
			Address: address,
			Phone:   phone,
		}
		if err := u.hospitalRepo.Create(tx, hospital); err != nil {
			u.log.Warnf("Failed to create hospital: %+v", err)
			return nil, err
		}

		if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionHospitalProfile, "hospital", hospital.ID.String(), converter.HospitalToResponse(hospital)); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
	} else {
		oldValue := converter.HospitalToResponse(hospital)

		hospital.Name = name
		hospital.Address = address
		hospital.Phone = phone
		if err := u.hospitalRepo.Update(tx, hospital); err != nil {
			u.log.Warnf("Failed to update hospital %s: %+v", hospital.ID, err)
			return nil, err
		}

		if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionHospitalProfile, "hospital", hospital.ID.String(), oldValue, converter.HospitalToResponse(hospital)); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.HospitalToResponse(hospital), nil
}

// CreateRequest files a PENDING request for the caller's hospital. Stock is not checked until approval.
func (u *hospitalUsecase) CreateRequest(ctx context.Context, req *dto.CreateBloodRequestRequest) (*dto.BloodRequestResponse, error) {
	bloodType := entity.BloodType(req.BloodType)
	if !bloodType.IsValid() || req.Quantity <= 0 {
		return nil, ErrInvalidBloodRequest
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hospital, err := u.findCallerHospital(ctx, tx)
	if err != nil {
		return nil, err
	}

	request := &entity.BloodRequest{
		HospitalID: hospital.ID,
		UserID:     hospital.UserID,
		BloodType:  bloodType,
		Quantity:   req.Quantity,
		Reason:     req.Reason,
		Status:     entity.RequestStatusPending,
	}
	if err := u.requestRepo.Create(tx, request); err != nil {
		u.log.Warnf("Failed to create blood request: %+v", err)
		return nil, err
	}
	request.Hospital = *hospital

	response := converter.BloodRequestToResponse(request)
	if err := u.auditService.LogCreate(ctx, tx, &hospital.UserID, entity.AuditActionRequestCreate, "blood_request", request.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.publisher.Publish(ctx, service.NewEvent(service.EventRequestCreated, request.ID.String(), response))

	return response, nil
}

func (u *hospitalUsecase) GetRequests(ctx context.Context) (*dto.BloodRequestListResponse, error) {
	db := u.db.WithContext(ctx)
	hospital, err := u.findCallerHospital(ctx, db)
	if err != nil {
		return nil, err
	}

	requests, err := u.requestRepo.FindByHospitalID(db, hospital.ID)
	if err != nil {
		u.log.Warnf("Failed to find requests for hospital %s: %+v", hospital.ID, err)
		return nil, err
	}
	for i := range requests {
		requests[i].Hospital = *hospital
	}

	return &dto.BloodRequestListResponse{
		Requests: converter.BloodRequestsToResponses(requests),
		Total:    len(requests),
	}, nil
}

// GetStats counts the caller's requests per status, one query per status run concurrently
func (u *hospitalUsecase) GetStats(ctx context.Context) (*dto.HospitalStatsResponse, error) {
	hospital, err := u.findCallerHospital(ctx, u.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	stats := &dto.HospitalStatsResponse{}
	g, gctx := errgroup.WithContext(ctx)
	count := func(status entity.RequestStatus, dst *int64) {
		g.Go(func() error {
			total, err := u.requestRepo.CountByHospitalAndStatus(u.db.WithContext(gctx), hospital.ID, status)
			if err != nil {
				return err
			}
			*dst = total
			return nil
		})
	}
	count(entity.RequestStatusPending, &stats.Pending)
	count(entity.RequestStatusApproved, &stats.Approved)
	count(entity.RequestStatusCompleted, &stats.Completed)

	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to count requests for hospital %s: %+v", hospital.ID, err)
		return nil, err
	}

	return stats, nil
}
