package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const revokedTokenKeyPrefix = "revoked_token:"

// TokenRevoker keeps track of session tokens that were logged out before they expired
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisTokenRevoker struct {
	log    *logrus.Logger
	client *redis.Client
}

func NewRedisTokenRevoker(log *logrus.Logger, client *redis.Client) TokenRevoker {
	return &redisTokenRevoker{
		log:    log,
		client: client,
	}
}

func revokedTokenKey(tokenID string) string {
	return fmt.Sprintf("%s%s", revokedTokenKeyPrefix, tokenID)
}

// Revoke blacklists tokenID until the token would have expired anyway
func (s *redisTokenRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedTokenKey(tokenID), 1, ttl).Err(); err != nil {
		s.log.Warnf("Failed to revoke token %s: %+v", tokenID, err)
		return err
	}
	return nil
}

func (s *redisTokenRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := s.client.Exists(ctx, revokedTokenKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

type memoryTokenRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryTokenRevoker returns a process-local revoker, used when Redis is not configured
func NewMemoryTokenRevoker() TokenRevoker {
	return &memoryTokenRevoker{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *memoryTokenRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = s.now().Add(ttl)
	return nil
}

func (s *memoryTokenRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiresAt, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expiresAt) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
