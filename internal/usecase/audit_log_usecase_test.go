package usecase

import (
	"encoding/json"
	"errors"
	"testing"

	"blood-bank-api/internal/delivery/dto"
	"blood-bank-api/internal/domain/entity"
)

func TestStateChangesAreAudited(t *testing.T) {
	env := newTestEnv(t)
	hospitalCtx := env.newHospital(t, "hospital@example.com")
	adminCtx := env.adminContext(t)

	request := createRequest(t, env, hospitalCtx, entity.BloodTypeOPos, 300)
	if _, err := env.requests.DecideRequest(adminCtx, request.ID, &dto.DecideBloodRequestRequest{Status: "APPROVED"}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	logs, err := env.auditLogs.GetAllAuditLogs(adminCtx, 1, 50)
	if err != nil {
		t.Fatalf("get audit logs: %v", err)
	}

	actions := map[string]int{}
	for _, log := range logs.Logs {
		actions[log.Action]++
	}
	for _, action := range []string{
		entity.AuditActionUserRegister,
		entity.AuditActionHospitalProfile,
		entity.AuditActionRequestCreate,
		entity.AuditActionRequestDecide,
	} {
		if actions[action] != 1 {
			t.Fatalf("expected one %s entry, got %d (all: %v)", action, actions[action], actions)
		}
	}

	decide := logs.Logs[0]
	if decide.Action != entity.AuditActionRequestDecide {
		t.Fatalf("expected newest entry to be the decision, got %s", decide.Action)
	}
	var metadata struct {
		EntityID string `json:"entity_id"`
		OldValue struct {
			Status string `json:"status"`
		} `json:"old_value"`
		NewValue struct {
			Status string `json:"status"`
		} `json:"new_value"`
	}
	if err := json.Unmarshal(decide.Metadata, &metadata); err != nil {
		t.Fatalf("decode metadata: %v", err)
	}
	if metadata.EntityID != request.ID.String() || metadata.OldValue.Status != "PENDING" || metadata.NewValue.Status != "APPROVED" {
		t.Fatalf("unexpected decision metadata: %+v", metadata)
	}

	single, err := env.auditLogs.GetAuditLog(adminCtx, decide.ID)
	if err != nil {
		t.Fatalf("get audit log: %v", err)
	}
	if single.User == nil || single.User.Role != string(entity.RoleAdmin) {
		t.Fatalf("expected admin as actor, got %+v", single.User)
	}
}

func TestAuditLogPaginationAndNotFound(t *testing.T) {
	env := newTestEnv(t)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		env.register(t, email, entity.RoleDonor)
	}
	adminCtx := env.adminContext(t)

	page, err := env.auditLogs.GetAllAuditLogs(adminCtx, 2, 2)
	if err != nil {
		t.Fatalf("get audit logs: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected total 3, got %d", page.Total)
	}
	if len(page.Logs) != 1 {
		t.Fatalf("expected 1 entry on page 2, got %d", len(page.Logs))
	}

	if _, err := env.auditLogs.GetAuditLog(adminCtx, 9999); !errors.Is(err, ErrAuditLogNotFound) {
		t.Fatalf("expected ErrAuditLogNotFound, got %v", err)
	}
}
