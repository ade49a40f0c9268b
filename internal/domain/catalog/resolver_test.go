package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allaccess/internal/domain/catalog"
	"allaccess/internal/domain/pass/testutil"
	vo "allaccess/internal/domain/pass/valueobjects"
)

func TestResolverDefaultsFor(t *testing.T) {
	cat := testutil.NewCatalog()
	cat.AddPassProduct(testutil.MonthlyPassConfig(10))
	resolver := catalog.NewResolver(cat)

	start := time.Date(2026, 3, 15, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	params, err := resolver.DefaultsFor(context.Background(), 10, start)
	require.NoError(t, err)

	assert.Equal(t, start.UTC(), params.StartTime)
	assert.Equal(t, time.UTC, params.StartTime.Location())
	assert.Equal(t, vo.UnitMonth, params.Duration.Unit)
	assert.Equal(t, 1, params.Duration.Number)
	assert.Equal(t, 5, params.Limit)
	assert.Equal(t, vo.PeriodDay, params.LimitPeriod)
	assert.Equal(t, vo.AllCategories(), params.Categories)
	assert.True(t, params.Variations.IsAll())
}

func TestResolverDefaultsForLifetimeProduct(t *testing.T) {
	cat := testutil.NewCatalog()
	cat.AddPassProduct(testutil.LifetimePassConfig(20))
	resolver := catalog.NewResolver(cat)

	params, err := resolver.DefaultsFor(context.Background(), 20, time.Now())
	require.NoError(t, err)

	assert.True(t, params.Duration.IsUnlimited())
	assert.Equal(t, 0, params.Limit)
}

func TestResolverDefaultsForOrdinaryProduct(t *testing.T) {
	cat := testutil.NewCatalog()
	cat.AddProduct(30, 1, 2)
	resolver := catalog.NewResolver(cat)

	_, err := resolver.DefaultsFor(context.Background(), 30, time.Now())
	assert.Error(t, err)
}

func TestResolverDefaultsForUnknownProduct(t *testing.T) {
	resolver := catalog.NewResolver(testutil.NewCatalog())

	_, err := resolver.DefaultsFor(context.Background(), 99, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestProductPassConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*catalog.ProductPassConfig)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(c *catalog.ProductPassConfig) {},
		},
		{
			name:    "missing product id",
			mutate:  func(c *catalog.ProductPassConfig) { c.ProductID = 0 },
			wantErr: true,
		},
		{
			name:    "negative limit",
			mutate:  func(c *catalog.ProductPassConfig) { c.Limit = -1 },
			wantErr: true,
		},
		{
			name:    "limit without valid period",
			mutate:  func(c *catalog.ProductPassConfig) { c.LimitPeriod = "weekly" },
			wantErr: true,
		},
		{
			name:   "unlimited ignores period",
			mutate: func(c *catalog.ProductPassConfig) { c.Limit = 0; c.LimitPeriod = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testutil.MonthlyPassConfig(10)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
