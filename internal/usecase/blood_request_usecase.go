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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound       = errors.New("request not found")
	ErrRequestAlreadyDecided = errors.New("request has already been decided")
	ErrInvalidDecision       = errors.New("invalid decision status")
	ErrInvalidStatusFilter   = errors.New("invalid status filter")
	ErrInsufficientStock     = errors.New("insufficient stock")
)

type BloodRequestUsecase interface {
	ListRequests(ctx context.Context, status string) (*dto.BloodRequestListResponse, error)
	DecideRequest(ctx context.Context, requestID uuid.UUID, req *dto.DecideBloodRequestRequest) (*dto.BloodRequestResponse, error)
	CompleteRequest(ctx context.Context, requestID uuid.UUID) (*dto.BloodRequestResponse, error)
}

type bloodRequestUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	requestRepo   repository.BloodRequestRepository
	inventoryRepo repository.BloodInventoryRepository
	auditService  service.AuditService
	publisher     service.EventPublisher
}

func NewBloodRequestUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	requestRepo repository.BloodRequestRepository,
	inventoryRepo repository.BloodInventoryRepository,
	auditService service.AuditService,
	publisher service.EventPublisher,
) BloodRequestUsecase {
	return &bloodRequestUsecase{
		db:            db,
		log:           log,
		requestRepo:   requestRepo,
		inventoryRepo: inventoryRepo,
		auditService:  auditService,
		publisher:     publisher,
	}
}

// ListRequests returns all requests newest first, optionally filtered by status
func (u *bloodRequestUsecase) ListRequests(ctx context.Context, status string) (*dto.BloodRequestListResponse, error) {
	filter := entity.RequestStatus(status)
	if filter != "" && !filter.IsValid() {
		return nil, ErrInvalidStatusFilter
	}

	requests, err := u.requestRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find blood requests: %+v", err)
		return nil, err
	}

	return &dto.BloodRequestListResponse{
		Requests: converter.BloodRequestsToResponses(requests),
		Total:    len(requests),
	}, nil
}

// DecideRequest moves a PENDING request to APPROVED or REJECTED.
//
// Flow (single transaction):
// 1. Load request and check the transition table
// 2. Compare-and-set status from its current value (a concurrent decider gets 0 rows)
// 3. On APPROVED: guarded decrement of inventory; 0 rows means not enough stock,
//    the whole transaction rolls back and the request stays PENDING
func (u *bloodRequestUsecase) DecideRequest(ctx context.Context, requestID uuid.UUID, req *dto.DecideBloodRequestRequest) (*dto.BloodRequestResponse, error) {
	next := entity.RequestStatus(req.Status)
	if next != entity.RequestStatusApproved && next != entity.RequestStatusRejected {
		return nil, ErrInvalidDecision
	}

	response, err := u.transition(ctx, requestID, next, entity.AuditActionRequestDecide, func(tx *gorm.DB, request *entity.BloodRequest) error {
		if next != entity.RequestStatusApproved {
			return nil
		}
		affected, err := u.inventoryRepo.DecrementIfAvailable(tx, request.BloodType, request.Quantity)
		if err != nil {
			u.log.Warnf("Failed to decrement inventory %s: %+v", request.BloodType, err)
			return err
		}
		if affected == 0 {
			return ErrInsufficientStock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publisher.Publish(ctx, service.NewEvent(service.EventRequestDecided, response.ID.String(), response))

	return response, nil
}

// CompleteRequest marks an APPROVED request as fulfilled. Inventory was already taken at approval.
func (u *bloodRequestUsecase) CompleteRequest(ctx context.Context, requestID uuid.UUID) (*dto.BloodRequestResponse, error) {
	response, err := u.transition(ctx, requestID, entity.RequestStatusCompleted, entity.AuditActionRequestComplete, nil)
	if err != nil {
		return nil, err
	}

	u.publisher.Publish(ctx, service.NewEvent(service.EventRequestCompleted, response.ID.String(), response))

	return response, nil
}

func (u *bloodRequestUsecase) transition(
	ctx context.Context,
	requestID uuid.UUID,
	next entity.RequestStatus,
	auditAction string,
	effect func(tx *gorm.DB, request *entity.BloodRequest) error,
) (*dto.BloodRequestResponse, error) {
	adminID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	request, err := u.requestRepo.FindByID(tx, requestID)
	if err != nil {
		u.log.Warnf("Failed to find blood request %s: %+v", requestID, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if !request.Status.CanTransitionTo(next) {
		return nil, ErrRequestAlreadyDecided
	}

	oldValue := converter.BloodRequestToResponse(request)

	var decidedAt *time.Time
	if request.IsPending() {
		now := time.Now()
		decidedAt = &now
	}

	affected, err := u.requestRepo.UpdateStatus(tx, request.ID, request.Status, next, decidedAt)
	if err != nil {
		u.log.Warnf("Failed to update blood request %s: %+v", request.ID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrRequestAlreadyDecided
	}

	if effect != nil {
		if err := effect(tx, request); err != nil {
			return nil, err
		}
	}

	request.Status = next
	if decidedAt != nil {
		request.DecidedAt = decidedAt
	}
	response := converter.BloodRequestToResponse(request)

	if err := u.auditService.LogUpdate(ctx, tx, &adminID, auditAction, "blood_request", request.ID.String(), oldValue, response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}
