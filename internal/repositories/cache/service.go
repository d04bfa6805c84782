// Package cache provides a redis-backed read cache for balances and
// statements. The ledger database is always the source of truth; the cache is
// invalidated on every committed movement.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"opal/internal/models"
	"opal/internal/money"
)

const (
	balanceKeyPrefix   = "account:balance:"
	statementKeyPrefix = "account:statement:"
)

// CacheService wraps the redis client with typed helpers for the wallet's
// read paths.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheService creates a cache service with the given default TTL.
func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

func balanceKey(accountID uint) string {
	return fmt.Sprintf("%s%d", balanceKeyPrefix, accountID)
}

func statementKey(accountID uint, limit int) string {
	return fmt.Sprintf("%s%d:%d", statementKeyPrefix, accountID, limit)
}

// GetBalance returns the cached balance; ok is false on a miss.
func (s *CacheService) GetBalance(ctx context.Context, accountID uint) (money.Amount, bool, error) {
	val, err := s.client.Get(ctx, balanceKey(accountID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get cached balance: %w", err)
	}
	return money.Amount(val), true, nil
}

// SetBalance caches the balance for the default TTL.
func (s *CacheService) SetBalance(ctx context.Context, accountID uint, balance money.Amount) error {
	return s.client.Set(ctx, balanceKey(accountID), int64(balance), s.ttl).Err()
}

// GetStatement returns the cached statement for (account, limit); ok is false
// on a miss.
func (s *CacheService) GetStatement(ctx context.Context, accountID uint, limit int) ([]models.LedgerEntry, bool, error) {
	data, err := s.client.Get(ctx, statementKey(accountID, limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached statement: %w", err)
	}

	var entries []models.LedgerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached statement: %w", err)
	}
	return entries, true, nil
}

// SetStatement caches a statement listing.
func (s *CacheService) SetStatement(ctx context.Context, accountID uint, limit int, entries []models.LedgerEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal statement: %w", err)
	}
	return s.client.Set(ctx, statementKey(accountID, limit), data, s.ttl).Err()
}

// InvalidateAccount drops every cached read for the account. Called after any
// committed movement touching it.
func (s *CacheService) InvalidateAccount(ctx context.Context, accountID uint) error {
	keys, err := s.client.Keys(ctx, fmt.Sprintf("%s%d:*", statementKeyPrefix, accountID)).Result()
	if err != nil {
		return err
	}
	keys = append(keys, balanceKey(accountID))
	return s.client.Del(ctx, keys...).Err()
}

// FlushAll clears the whole cache. Used on startup so stale balances never
// survive a deploy.
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// HealthCheck pings redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close releases the redis connection.
func (s *CacheService) Close() error {
	return s.client.Close()
}
