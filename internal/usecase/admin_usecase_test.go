package usecase

import (
	"errors"
	"testing"

	"blood-bank-api/internal/delivery/dto"
	"blood-bank-api/internal/domain/entity"

	"github.com/shopspring/decimal"
)

func TestAdminStatsReflectCurrentState(t *testing.T) {
	env := newTestEnv(t)
	hospitalCtx := env.newHospital(t, "hospital@example.com")
	donorCtx := env.newDonor(t, "donor@example.com", entity.BloodTypeOPos)
	env.newDonor(t, "donor2@example.com", entity.BloodTypeANeg)
	adminCtx := env.adminContext(t)

	if _, err := env.donor.RecordDonation(donorCtx, &dto.RecordDonationRequest{Quantity: 500}); err != nil {
		t.Fatalf("record donation: %v", err)
	}

	approved := createRequest(t, env, hospitalCtx, entity.BloodTypeOPos, 250)
	rejected := createRequest(t, env, hospitalCtx, entity.BloodTypeOPos, 100)
	createRequest(t, env, hospitalCtx, entity.BloodTypeOPos, 100)

	if _, err := env.requests.DecideRequest(adminCtx, approved.ID, &dto.DecideBloodRequestRequest{Status: "APPROVED"}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := env.requests.DecideRequest(adminCtx, rejected.ID, &dto.DecideBloodRequestRequest{Status: "REJECTED"}); err != nil {
		t.Fatalf("reject: %v", err)
	}

	stats, err := env.admin.GetStats(adminCtx)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}

	if stats.TotalDonors != 2 {
		t.Fatalf("expected 2 donors, got %d", stats.TotalDonors)
	}
	if stats.TotalHospitals != 1 {
		t.Fatalf("expected 1 hospital, got %d", stats.TotalHospitals)
	}
	if stats.TotalDonations != 1 {
		t.Fatalf("expected 1 donation, got %d", stats.TotalDonations)
	}
	if stats.PendingRequests != 1 || stats.ApprovedRequests != 1 || stats.RejectedRequests != 1 || stats.CompletedRequests != 0 {
		t.Fatalf("unexpected request counts: %+v", stats)
	}

	wantUnits := int64(len(entity.AllBloodTypes)*testInitialStock + 500 - 250)
	if stats.TotalBloodUnits != wantUnits {
		t.Fatalf("expected %d units, got %d", wantUnits, stats.TotalBloodUnits)
	}
	if !stats.TotalBloodLiters.Equal(decimal.NewFromInt(wantUnits).Div(decimal.NewFromInt(1000))) {
		t.Fatalf("expected %d ml as litres, got %s", wantUnits, stats.TotalBloodLiters)
	}

	hospitalStats, err := env.hospital.GetStats(hospitalCtx)
	if err != nil {
		t.Fatalf("hospital stats: %v", err)
	}
	if hospitalStats.Pending != 1 || hospitalStats.Approved != 1 || hospitalStats.Completed != 0 {
		t.Fatalf("unexpected hospital stats: %+v", hospitalStats)
	}
}

func TestHospitalStatsWithoutProfileIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := asUser(env.register(t, "hospital@example.com", entity.RoleHospital), entity.RoleHospital)

	if _, err := env.hospital.GetStats(ctx); !errors.Is(err, ErrHospitalNotFound) {
		t.Fatalf("expected ErrHospitalNotFound, got %v", err)
	}
}

func TestAdminListingsIncludeAccountDetails(t *testing.T) {
	env := newTestEnv(t)
	env.newHospital(t, "hospital@example.com")
	env.newDonor(t, "donor@example.com", entity.BloodTypeOPos)
	adminCtx := env.adminContext(t)

	donors, err := env.admin.ListDonors(adminCtx)
	if err != nil {
		t.Fatalf("list donors: %v", err)
	}
	if donors.Total != 1 || donors.Donors[0].Email != "donor@example.com" || donors.Donors[0].Name == "" {
		t.Fatalf("expected donor joined with user, got %+v", donors.Donors)
	}

	hospitals, err := env.admin.ListHospitals(adminCtx)
	if err != nil {
		t.Fatalf("list hospitals: %v", err)
	}
	if hospitals.Total != 1 || hospitals.Hospitals[0].Email != "hospital@example.com" {
		t.Fatalf("expected hospital joined with user, got %+v", hospitals.Hospitals)
	}

	inventory, err := env.inventory.GetInventory(adminCtx)
	if err != nil {
		t.Fatalf("get inventory: %v", err)
	}
	if inventory.Total != len(entity.AllBloodTypes) {
		t.Fatalf("expected %d inventory rows, got %d", len(entity.AllBloodTypes), inventory.Total)
	}
	for _, row := range inventory.Inventory {
		if row.Quantity != testInitialStock {
			t.Fatalf("expected seeded stock %d for %s, got %d", testInitialStock, row.BloodType, row.Quantity)
		}
	}
}
