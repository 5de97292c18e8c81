package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"blood-bank-api/internal/delivery/dto"
	"blood-bank-api/internal/domain/entity"
	"blood-bank-api/internal/service"

	"github.com/google/uuid"
)

func createRequest(t *testing.T, env *testEnv, ctx context.Context, bloodType entity.BloodType, quantity int) *dto.BloodRequestResponse {
	t.Helper()

	request, err := env.hospital.CreateRequest(ctx, &dto.CreateBloodRequestRequest{
		BloodType: string(bloodType),
		Quantity:  quantity,
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	return request
}

func TestRequestApprovalAndDonationReconcileInventory(t *testing.T) {
	env := newTestEnv(t)
	hospitalCtx := env.newHospital(t, "hospital@example.com")
	donorCtx := env.newDonor(t, "donor@example.com", entity.BloodTypeOPos)
	adminCtx := env.adminContext(t)

	request := createRequest(t, env, hospitalCtx, entity.BloodTypeOPos, 500)
	if request.Status != string(entity.RequestStatusPending) {
		t.Fatalf("expected PENDING, got %s", request.Status)
	}
	if request.HospitalName != "City Hospital" {
		t.Fatalf("expected hospital name on response, got %q", request.HospitalName)
	}

	approved, err := env.requests.DecideRequest(adminCtx, request.ID, &dto.DecideBloodRequestRequest{Status: "APPROVED"})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != string(entity.RequestStatusApproved) || approved.DecidedAt == nil {
		t.Fatalf("expected APPROVED with decided_at, got %+v", approved)
	}
	if got := env.stock(t, entity.BloodTypeOPos); got != 1500 {
		t.Fatalf("expected 1500 after approval, got %d", got)
	}

	if _, err := env.donor.RecordDonation(donorCtx, &dto.RecordDonationRequest{Quantity: 300}); err != nil {
		t.Fatalf("record donation: %v", err)
	}
	if got := env.stock(t, entity.BloodTypeOPos); got != 1800 {
		t.Fatalf("expected 1800 after donation, got %d", got)
	}

	profile, err := env.donor.GetProfile(donorCtx)
	if err != nil {
		t.Fatalf("get donor profile: %v", err)
	}
	if profile.TotalDonations != 1 {
		t.Fatalf("expected 1 total donation, got %d", profile.TotalDonations)
	}
	if env.requestStatus(t, request.ID) != entity.RequestStatusApproved {
		t.Fatal("expected request to stay APPROVED")
	}
}

func TestApprovalWithInsufficientStockLeavesRequestPending(t *testing.T) {
	env := newTestEnv(t)
	hospitalCtx := env.newHospital(t, "hospital@example.com")
	adminCtx := env.adminContext(t)

	request := createRequest(t, env, hospitalCtx, entity.BloodTypeBPos, testInitialStock+1)

	_, err := env.requests.DecideRequest(adminCtx, request.ID, &dto.DecideBloodRequestRequest{Status: "APPROVED"})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if got := env.stock(t, entity.BloodTypeBPos); got != testInitialStock {
		t.Fatalf("expected stock unchanged at %d, got %d", testInitialStock, got)
	}
	if got := env.requestStatus(t, request.ID); got != entity.RequestStatusPending {
		t.Fatalf("expected request to remain PENDING, got %s", got)
	}

	// exact stock is enough
	exact := createRequest(t, env, hospitalCtx, entity.BloodTypeBPos, testInitialStock)
	if _, err := env.requests.DecideRequest(adminCtx, exact.ID, &dto.DecideBloodRequestRequest{Status: "APPROVED"}); err != nil {
		t.Fatalf("approve exact stock: %v", err)
	}
	if got := env.stock(t, entity.BloodTypeBPos); got != 0 {
		t.Fatalf("expected stock 0, got %d", got)
	}
}

func TestApprovalWithoutInventoryRowIsInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	hospitalCtx := env.newHospital(t, "hospital@example.com")
	adminCtx := env.adminContext(t)

	if err := env.db.Where("blood_type = ?", entity.BloodTypeANeg).Delete(&entity.BloodInventory{}).Error; err != nil {
		t.Fatalf("delete inventory row: %v", err)
	}
	request := createRequest(t, env, hospitalCtx, entity.BloodTypeANeg, 100)

	_, err := env.requests.DecideRequest(adminCtx, request.ID, &dto.DecideBloodRequestRequest{Status: "APPROVED"})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if got := env.requestStatus(t, request.ID); got != entity.RequestStatusPending {
		t.Fatalf("expected request to remain PENDING, got %s", got)
	}
}

func TestDecidedRequestCannotBeDecidedAgain(t *testing.T) {
	env := newTestEnv(t)
	hospitalCtx := env.newHospital(t, "hospital@example.com")
	adminCtx := env.adminContext(t)

	request := createRequest(t, env, hospitalCtx, entity.BloodTypeOPos, 450)
	if _, err := env.requests.DecideRequest(adminCtx, request.ID, &dto.DecideBloodRequestRequest{Status: "APPROVED"}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	for _, status := range []string{"REJECTED", "APPROVED"} {
		_, err := env.requests.DecideRequest(adminCtx, request.ID, &dto.DecideBloodRequestRequest{Status: status})
		if !errors.Is(err, ErrRequestAlreadyDecided) {
			t.Fatalf("re-decide %s: expected ErrRequestAlreadyDecided, got %v", status, err)
		}
	}
	if got := env.stock(t, entity.BloodTypeOPos); got != testInitialStock-450 {
		t.Fatalf("expected a single decrement, got stock %d", got)
	}
}

func TestRejectionLeavesInventoryUntouched(t *testing.T) {
	env := newTestEnv(t)
	hospitalCtx := env.newHospital(t, "hospital@example.com")
	adminCtx := env.adminContext(t)

	request := createRequest(t, env, hospitalCtx, entity.BloodTypeOPos, 450)
	rejected, err := env.requests.DecideRequest(adminCtx, request.ID, &dto.DecideBloodRequestRequest{Status: "REJECTED"})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != string(entity.RequestStatusRejected) {
		t.Fatalf("expected REJECTED, got %s", rejected.Status)
	}
	if got := env.stock(t, entity.BloodTypeOPos); got != testInitialStock {
		t.Fatalf("expected stock unchanged, got %d", got)
	}

	if _, err := env.requests.CompleteRequest(adminCtx, request.ID); !errors.Is(err, ErrRequestAlreadyDecided) {
		t.Fatalf("expected rejected request not to complete, got %v", err)
	}
}

func TestCompleteRequestOnlyAfterApproval(t *testing.T) {
	env := newTestEnv(t)
	hospitalCtx := env.newHospital(t, "hospital@example.com")
	adminCtx := env.adminContext(t)

	request := createRequest(t, env, hospitalCtx, entity.BloodTypeAPos, 200)
	if _, err := env.requests.CompleteRequest(adminCtx, request.ID); !errors.Is(err, ErrRequestAlreadyDecided) {
		t.Fatalf("expected pending request not to complete, got %v", err)
	}

	if _, err := env.requests.DecideRequest(adminCtx, request.ID, &dto.DecideBloodRequestRequest{Status: "APPROVED"}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	completed, err := env.requests.CompleteRequest(adminCtx, request.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != string(entity.RequestStatusCompleted) {
		t.Fatalf("expected COMPLETED, got %s", completed.Status)
	}
	if got := env.stock(t, entity.BloodTypeAPos); got != testInitialStock-200 {
		t.Fatalf("expected completion not to touch stock again, got %d", got)
	}

	want := []string{service.EventRequestCreated, service.EventRequestDecided, service.EventRequestCompleted}
	got := env.publisher.types()
	if len(got) != len(want) {
		t.Fatalf("expected events %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected events %v, got %v", want, got)
		}
	}
}

func TestDecideRequestValidatesInput(t *testing.T) {
	env := newTestEnv(t)
	adminCtx := env.adminContext(t)

	if _, err := env.requests.DecideRequest(adminCtx, uuid.New(), &dto.DecideBloodRequestRequest{Status: "APPROVED"}); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
	if _, err := env.requests.DecideRequest(adminCtx, uuid.New(), &dto.DecideBloodRequestRequest{Status: "COMPLETED"}); !errors.Is(err, ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
}

func TestConcurrentApprovalsDecrementOnce(t *testing.T) {
	env := newTestEnv(t)
	hospitalCtx := env.newHospital(t, "hospital@example.com")
	adminCtx := env.adminContext(t)

	request := createRequest(t, env, hospitalCtx, entity.BloodTypeOPos, 400)

	const deciders = 5
	var wg sync.WaitGroup
	results := make(chan error, deciders)
	for i := 0; i < deciders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.requests.DecideRequest(adminCtx, request.ID, &dto.DecideBloodRequestRequest{Status: "APPROVED"})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrRequestAlreadyDecided):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one successful approval, got %d", wins)
	}
	if got := env.stock(t, entity.BloodTypeOPos); got != testInitialStock-400 {
		t.Fatalf("expected single decrement to %d, got %d", testInitialStock-400, got)
	}
}

func TestCreateRequestRequiresHospitalProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := asUser(env.register(t, "hospital@example.com", entity.RoleHospital), entity.RoleHospital)

	_, err := env.hospital.CreateRequest(ctx, &dto.CreateBloodRequestRequest{BloodType: "O+", Quantity: 100})
	if !errors.Is(err, ErrHospitalNotFound) {
		t.Fatalf("expected ErrHospitalNotFound, got %v", err)
	}
}

func TestListRequestsFiltersByStatusNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	hospitalCtx := env.newHospital(t, "hospital@example.com")
	adminCtx := env.adminContext(t)

	first := createRequest(t, env, hospitalCtx, entity.BloodTypeOPos, 100)
	second := createRequest(t, env, hospitalCtx, entity.BloodTypeONeg, 100)
	if _, err := env.requests.DecideRequest(adminCtx, first.ID, &dto.DecideBloodRequestRequest{Status: "REJECTED"}); err != nil {
		t.Fatalf("reject: %v", err)
	}

	all, err := env.requests.ListRequests(adminCtx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if all.Total != 2 {
		t.Fatalf("expected 2 requests, got %d", all.Total)
	}
	if all.Requests[0].ID != second.ID {
		t.Fatal("expected newest request first")
	}

	pending, err := env.requests.ListRequests(adminCtx, "PENDING")
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if pending.Total != 1 || pending.Requests[0].ID != second.ID {
		t.Fatalf("expected only the second request, got %+v", pending.Requests)
	}

	if _, err := env.requests.ListRequests(adminCtx, "SHIPPED"); !errors.Is(err, ErrInvalidStatusFilter) {
		t.Fatalf("expected ErrInvalidStatusFilter, got %v", err)
	}

	own, err := env.hospital.GetRequests(hospitalCtx)
	if err != nil {
		t.Fatalf("hospital requests: %v", err)
	}
	if own.Total != 2 {
		t.Fatalf("expected hospital to see 2 requests, got %d", own.Total)
	}
}
