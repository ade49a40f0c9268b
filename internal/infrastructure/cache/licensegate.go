package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"allaccess/internal/domain/pass"
	"allaccess/internal/shared/logger"
)

// disabledProductsKey is a Redis set of pass product ids whose licensing is
// switched off. Operations flip members on and off to disable grants in
// bulk without touching the registry.
const disabledProductsKey = "pass:disabled_products"

// RedisLicenseGate reports pass products disabled through the operational
// kill switch
type RedisLicenseGate struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisLicenseGate creates a new Redis-backed license gate
func NewRedisLicenseGate(client *redis.Client, logger logger.Interface) *RedisLicenseGate {
	return &RedisLicenseGate{
		client: client,
		logger: logger,
	}
}

// IsDisabled reports whether the pass's product is currently switched off
func (g *RedisLicenseGate) IsDisabled(ctx context.Context, p *pass.Pass) (bool, error) {
	member := fmt.Sprintf("%d", p.Key().ProductID)
	disabled, err := g.client.SIsMember(ctx, disabledProductsKey, member).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check disabled products: %w", err)
	}
	return disabled, nil
}

// DisableProduct switches off every grant from the given pass product
func (g *RedisLicenseGate) DisableProduct(ctx context.Context, productID uint) error {
	member := fmt.Sprintf("%d", productID)
	if err := g.client.SAdd(ctx, disabledProductsKey, member).Err(); err != nil {
		return fmt.Errorf("failed to disable product: %w", err)
	}

	g.logger.Infow("pass product disabled", "product_id", productID)
	return nil
}

// EnableProduct switches grants from the given pass product back on
func (g *RedisLicenseGate) EnableProduct(ctx context.Context, productID uint) error {
	member := fmt.Sprintf("%d", productID)
	if err := g.client.SRem(ctx, disabledProductsKey, member).Err(); err != nil {
		return fmt.Errorf("failed to enable product: %w", err)
	}

	g.logger.Infow("pass product enabled", "product_id", productID)
	return nil
}
