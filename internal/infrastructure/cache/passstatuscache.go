package cache

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"allaccess/internal/shared/logger"
)

// CachedPassStatus is the derived pass state shared across instances. The
// database stays the source of truth; this only short-circuits repeated
// derivations for hot customers.
type CachedPassStatus struct {
	Status     string
	CustomerID uint
}

// PassStatusCache defines the interface for derived pass status caching
type PassStatusCache interface {
	GetStatus(ctx context.Context, passID string) (*CachedPassStatus, error)
	SetStatus(ctx context.Context, passID string, status *CachedPassStatus) error
	Invalidate(ctx context.Context, passID string) error
}

const (
	passStatusKeyPrefix = "pass:status:"
	basePassStatusTTL   = 5 * time.Minute
	passStatusTTLJitter = 2 * time.Minute // TTL range: 5-7 min (anti-stampede)
	fieldPassStatus     = "status"
	fieldPassCustomerID = "customer_id"
)

// RedisPassStatusCache implements PassStatusCache using Redis Hash
type RedisPassStatusCache struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisPassStatusCache creates a new Redis-based pass status cache
func NewRedisPassStatusCache(client *redis.Client, logger logger.Interface) *RedisPassStatusCache {
	return &RedisPassStatusCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisPassStatusCache) key(passID string) string {
	return passStatusKeyPrefix + passID
}

// GetStatus retrieves a derived pass status from cache. Returns nil on miss.
func (c *RedisPassStatusCache) GetStatus(ctx context.Context, passID string) (*CachedPassStatus, error) {
	result, err := c.client.HGetAll(ctx, c.key(passID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get pass status from cache: %w", err)
	}

	if len(result) == 0 {
		return nil, nil // Cache miss
	}

	status := &CachedPassStatus{
		Status: result[fieldPassStatus],
	}
	if customerIDStr, ok := result[fieldPassCustomerID]; ok {
		customerID, _ := strconv.ParseUint(customerIDStr, 10, 64)
		status.CustomerID = uint(customerID)
	}

	return status, nil
}

// SetStatus stores a derived pass status in cache
func (c *RedisPassStatusCache) SetStatus(ctx context.Context, passID string, status *CachedPassStatus) error {
	key := c.key(passID)

	fields := map[string]interface{}{
		fieldPassStatus:     status.Status,
		fieldPassCustomerID: status.CustomerID,
	}

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, passStatusTTLWithJitter())

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set pass status in cache: %w", err)
	}

	c.logger.Debugw("pass status cached",
		"pass_id", passID,
		"status", status.Status,
	)

	return nil
}

// Invalidate removes a derived pass status from cache
func (c *RedisPassStatusCache) Invalidate(ctx context.Context, passID string) error {
	if err := c.client.Del(ctx, c.key(passID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate pass status cache: %w", err)
	}

	c.logger.Debugw("pass status cache invalidated", "pass_id", passID)
	return nil
}

// passStatusTTLWithJitter returns a randomized TTL to prevent cache stampede.
func passStatusTTLWithJitter() time.Duration {
	jitter := time.Duration(rand.Int64N(int64(passStatusTTLJitter)))
	return basePassStatusTTL + jitter
}
