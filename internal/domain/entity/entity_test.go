package entity

import "testing"

func TestRequestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to RequestStatus
		allowed  bool
	}{
		{RequestStatusPending, RequestStatusApproved, true},
		{RequestStatusPending, RequestStatusRejected, true},
		{RequestStatusPending, RequestStatusCompleted, false},
		{RequestStatusApproved, RequestStatusCompleted, true},
		{RequestStatusApproved, RequestStatusRejected, false},
		{RequestStatusApproved, RequestStatusApproved, false},
		{RequestStatusRejected, RequestStatusApproved, false},
		{RequestStatusRejected, RequestStatusPending, false},
		{RequestStatusCompleted, RequestStatusApproved, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestRoleSelfRegistration(t *testing.T) {
	if !RoleDonor.CanSelfRegister() || !RoleHospital.CanSelfRegister() {
		t.Fatal("donors and hospitals must be able to register")
	}
	if RoleAdmin.CanSelfRegister() {
		t.Fatal("admins must not self-register")
	}
	if Role("NURSE").IsValid() {
		t.Fatal("unknown role reported as valid")
	}
}

func TestBloodTypes(t *testing.T) {
	if len(AllBloodTypes) != 8 {
		t.Fatalf("expected 8 blood types, got %d", len(AllBloodTypes))
	}
	for _, bt := range AllBloodTypes {
		if !bt.IsValid() {
			t.Errorf("%s reported as invalid", bt)
		}
	}
	for _, raw := range []string{"", "O", "C+", "ab+"} {
		if BloodType(raw).IsValid() {
			t.Errorf("%q reported as valid", raw)
		}
	}
}
