package service

import (
	"context"
	"testing"
	"time"
)

func TestMemoryTokenRevokerExpiresEntries(t *testing.T) {
	revoker := NewMemoryTokenRevoker().(*memoryTokenRevoker)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	revoker.now = func() time.Time { return now }
	ctx := context.Background()

	if err := revoker.Revoke(ctx, "token-1", time.Hour); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	revoked, err := revoker.IsRevoked(ctx, "token-1")
	if err != nil || !revoked {
		t.Fatalf("expected token-1 revoked, got %v (err %v)", revoked, err)
	}

	revoked, _ = revoker.IsRevoked(ctx, "token-2")
	if revoked {
		t.Fatal("expected token-2 not revoked")
	}

	now = now.Add(2 * time.Hour)
	revoked, _ = revoker.IsRevoked(ctx, "token-1")
	if revoked {
		t.Fatal("expected revocation to lapse after ttl")
	}
}

func TestMemoryTokenRevokerIgnoresExpiredTokens(t *testing.T) {
	revoker := NewMemoryTokenRevoker()
	ctx := context.Background()

	if err := revoker.Revoke(ctx, "token-1", 0); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if revoked, _ := revoker.IsRevoked(ctx, "token-1"); revoked {
		t.Fatal("expected zero ttl to be a no-op")
	}
}
