package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amirphl/social-admin/utils"
	"github.com/redis/go-redis/v9"
)

// TokenBlacklist keeps revoked token ids until their tokens expire
type TokenBlacklist interface {
	Add(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisTokenBlacklist stores revoked token ids in Redis with a TTL
type RedisTokenBlacklist struct {
	client *redis.Client
	prefix string
}

func NewRedisTokenBlacklist(client *redis.Client, prefix string) TokenBlacklist {
	if prefix == "" {
		prefix = "blacklist:token:"
	}
	return &RedisTokenBlacklist{client: client, prefix: prefix}
}

func (b *RedisTokenBlacklist) Add(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := b.client.Set(ctx, b.prefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := b.client.Exists(ctx, b.prefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return exists > 0, nil
}

// MemoryTokenBlacklist is the in-process fallback used when Redis is not configured
type MemoryTokenBlacklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	clock   utils.Clock
}

func NewMemoryTokenBlacklist() *MemoryTokenBlacklist {
	return &MemoryTokenBlacklist{
		entries: make(map[string]time.Time),
		clock:   utils.SystemClock{},
	}
}

func (b *MemoryTokenBlacklist) Add(ctx context.Context, tokenID string, expiresAt time.Time) error {
	now := b.clock.Now()
	if !expiresAt.After(now) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for id, exp := range b.entries {
		if !exp.After(now) {
			delete(b.entries, id)
		}
	}
	b.entries[tokenID] = expiresAt
	return nil
}

func (b *MemoryTokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	exp, ok := b.entries[tokenID]
	if !ok {
		return false, nil
	}
	return exp.After(b.clock.Now()), nil
}
