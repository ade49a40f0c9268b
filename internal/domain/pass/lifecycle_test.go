package pass_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allaccess/internal/domain/catalog"
	"allaccess/internal/domain/order"
	"allaccess/internal/domain/pass"
	"allaccess/internal/domain/pass/testutil"
	vo "allaccess/internal/domain/pass/valueobjects"
	"allaccess/internal/shared/logger"
)

const (
	customerID  = uint(42)
	passProduct = uint(12)
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	ctx        context.Context
	lifecycle  *pass.Lifecycle
	orders     *testutil.OrderStore
	registries *testutil.RegistryStore
	catalog    *testutil.Catalog
	events     *testutil.EventRecorder
	clock      *testutil.Clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:        context.Background(),
		orders:     testutil.NewOrderStore(),
		registries: testutil.NewRegistryStore(),
		catalog:    testutil.NewCatalog(),
		events:     testutil.NewEventRecorder(),
		clock:      testutil.NewClock(baseTime),
	}
	f.lifecycle = pass.NewLifecycle(
		f.orders,
		f.registries,
		f.catalog,
		catalog.NewResolver(f.catalog),
		f.events,
		logger.NewLogger(),
	)
	f.lifecycle.SetClock(f.clock.Now)
	return f
}

// thirtyDayPass registers a pass product valid 30 days with 5 downloads per
// day.
func (f *fixture) thirtyDayPass(t *testing.T, productID uint) {
	t.Helper()
	duration, err := vo.NewDuration(30, vo.UnitDay)
	require.NoError(t, err)
	f.catalog.AddPassProduct(catalog.ProductPassConfig{
		ProductID:   productID,
		Duration:    duration,
		Limit:       5,
		LimitPeriod: vo.PeriodDay,
		Categories:  vo.AllCategories(),
		Variations:  vo.AllVariations(),
	})
}

func (f *fixture) paidOrder(t *testing.T, orderID uint, at time.Time, items ...order.Item) {
	t.Helper()
	f.orders.AddOrder(orderID, customerID, order.StatusComplete, at, items...)
}

func mustID(t *testing.T, orderID, productID, priceID uint) vo.PassID {
	t.Helper()
	id, err := vo.NewPassID(orderID, productID, priceID)
	require.NoError(t, err)
	return id
}

func TestActivateFresh(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	id := mustID(t, 100, passProduct, 0)

	result, err := f.lifecycle.Activate(f.ctx, id)
	require.NoError(t, err)
	assert.True(t, result.Activated)
	assert.False(t, result.Queued)
	assert.False(t, result.Renewal)

	p, err := f.lifecycle.Load(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, p.Status())
	assert.Equal(t, baseTime, p.StartTime())
	assert.Equal(t, 0, p.DownloadsUsed())

	entry := p.Entry()
	require.NotNil(t, entry)
	assert.Equal(t, entry.ActivationParams, entry.CustomerParams,
		"activation snapshots both parameter sets identically")
	assert.False(t, entry.UseCustomerParams)

	registry, err := f.registries.Get(f.ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, 1, registry.Len())

	assert.Len(t, f.events.OfType("pass.activated"), 1)
}

func TestActivateIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	id := mustID(t, 100, passProduct, 0)

	_, err := f.lifecycle.Activate(f.ctx, id)
	require.NoError(t, err)

	_, err = f.lifecycle.Activate(f.ctx, id)
	assert.ErrorIs(t, err, pass.ErrAlreadyActive)

	registry, err := f.registries.Get(f.ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, 1, registry.Len(), "no duplicate registry entries")

	p, err := f.lifecycle.Load(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, p.Status())
}

func TestActivateRejections(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.catalog.AddProduct(77, 1)

	f.orders.AddOrder(200, customerID, order.StatusPending, baseTime, order.Item{ProductID: passProduct})
	f.paidOrder(t, 201, baseTime, order.Item{ProductID: 77})
	f.paidOrder(t, 202, baseTime, order.Item{ProductID: passProduct})

	tests := []struct {
		name    string
		id      vo.PassID
		wantErr error
	}{
		{name: "unpaid order", id: mustID(t, 200, passProduct, 0), wantErr: pass.ErrOrderNotPaid},
		{name: "not a pass product", id: mustID(t, 201, 77, 0), wantErr: pass.ErrNotEligible},
		{name: "pair not in order", id: mustID(t, 202, passProduct, 3), wantErr: pass.ErrNotEligible},
		{name: "missing order", id: mustID(t, 999, passProduct, 0), wantErr: order.ErrOrderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.lifecycle.Activate(f.ctx, tt.id)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpirationIsSticky(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	id := mustID(t, 100, passProduct, 0)

	_, err := f.lifecycle.Activate(f.ctx, id)
	require.NoError(t, err)

	f.clock.Advance(32 * 24 * time.Hour)
	p, err := f.lifecycle.Load(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusExpired, p.Status())

	require.NoError(t, f.lifecycle.MaybeExpire(f.ctx, p, pass.ExpireOptions{}))
	assert.Len(t, f.events.OfType("pass.expired"), 1)

	_, err = f.lifecycle.Activate(f.ctx, id)
	assert.ErrorIs(t, err, pass.ErrExpired, "same order can never reactivate")

	// Even a rolled-back clock cannot resurrect the grant.
	f.clock.Set(baseTime.Add(24 * time.Hour))
	p, err = f.lifecycle.Load(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusExpired, p.Status())
}

func TestMaybeExpireRequiresElapsedWindow(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	id := mustID(t, 100, passProduct, 0)

	_, err := f.lifecycle.Activate(f.ctx, id)
	require.NoError(t, err)

	p, err := f.lifecycle.Load(f.ctx, id)
	require.NoError(t, err)

	err = f.lifecycle.MaybeExpire(f.ctx, p, pass.ExpireOptions{})
	assert.ErrorIs(t, err, pass.ErrNotExpired)

	err = f.lifecycle.MaybeExpire(f.ctx, p, pass.ExpireOptions{OverrideTimeWindow: true})
	assert.NoError(t, err)
	assert.Equal(t, vo.StatusExpired, p.Status())
}

func TestRenewalChaining(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	idA := mustID(t, 100, passProduct, 0)

	_, err := f.lifecycle.Activate(f.ctx, idA)
	require.NoError(t, err)

	// Second order for the same key on day 10: queued behind the occupant.
	day10 := baseTime.Add(10 * 24 * time.Hour)
	f.clock.Set(day10)
	f.paidOrder(t, 101, day10, order.Item{ProductID: passProduct})
	idB := mustID(t, 101, passProduct, 0)

	result, err := f.lifecycle.Activate(f.ctx, idB)
	require.NoError(t, err)
	assert.True(t, result.Queued)
	assert.False(t, result.Activated)
	assert.Len(t, f.events.OfType("pass.renewal_queued"), 1)

	pB, err := f.lifecycle.Load(f.ctx, idB)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusUpcoming, pB.Status())

	registry, err := f.registries.Get(f.ctx, customerID)
	require.NoError(t, err)
	occupant := registry.Lookup(idA.Key())
	require.NotNil(t, occupant)
	assert.Equal(t, uint(100), occupant.OrderID)
	assert.Equal(t, []uint{101}, occupant.RenewalOrderIDs)

	// Window elapses; expiry hands the key to the queued order.
	f.clock.Set(baseTime.Add(31 * 24 * time.Hour))
	pA, err := f.lifecycle.Load(f.ctx, idA)
	require.NoError(t, err)
	require.NoError(t, f.lifecycle.MaybeExpire(f.ctx, pA, pass.ExpireOptions{}))

	pB, err = f.lifecycle.Load(f.ctx, idB)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, pB.Status())

	expirationA := baseTime.Add(30 * 24 * time.Hour)
	assert.Equal(t, expirationA, pB.StartTime(),
		"renewal starts at the old expiration, not the purchase time")

	pA, err = f.lifecycle.Load(f.ctx, idA)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusRenewed, pA.Status(), "old generation is stale")
}

func TestRenewalQueueSurvivesTakeover(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	idA := mustID(t, 100, passProduct, 0)
	_, err := f.lifecycle.Activate(f.ctx, idA)
	require.NoError(t, err)

	// Two renewal orders queue up behind the active occupant.
	day10 := baseTime.Add(10 * 24 * time.Hour)
	f.clock.Set(day10)
	f.paidOrder(t, 101, day10, order.Item{ProductID: passProduct})
	idB := mustID(t, 101, passProduct, 0)
	result, err := f.lifecycle.Activate(f.ctx, idB)
	require.NoError(t, err)
	require.True(t, result.Queued)

	day11 := baseTime.Add(11 * 24 * time.Hour)
	f.clock.Set(day11)
	f.paidOrder(t, 102, day11, order.Item{ProductID: passProduct})
	idC := mustID(t, 102, passProduct, 0)
	result, err = f.lifecycle.Activate(f.ctx, idC)
	require.NoError(t, err)
	require.True(t, result.Queued)

	registry, err := f.registries.Get(f.ctx, customerID)
	require.NoError(t, err)
	occupant := registry.Lookup(idA.Key())
	require.NotNil(t, occupant)
	require.Equal(t, []uint{101, 102}, occupant.RenewalOrderIDs)

	// First expiry hands the key to order 101; order 102 must stay queued.
	f.clock.Set(baseTime.Add(31 * 24 * time.Hour))
	pA, err := f.lifecycle.Load(f.ctx, idA)
	require.NoError(t, err)
	require.NoError(t, f.lifecycle.MaybeExpire(f.ctx, pA, pass.ExpireOptions{}))

	registry, err = f.registries.Get(f.ctx, customerID)
	require.NoError(t, err)
	occupant = registry.Lookup(idA.Key())
	require.NotNil(t, occupant)
	assert.Equal(t, uint(101), occupant.OrderID)
	assert.Equal(t, []uint{102}, occupant.RenewalOrderIDs,
		"remaining queue survives the takeover")

	// Second expiry hands the key to order 102.
	f.clock.Set(baseTime.Add(61 * 24 * time.Hour))
	pB, err := f.lifecycle.Load(f.ctx, idB)
	require.NoError(t, err)
	require.NoError(t, f.lifecycle.MaybeExpire(f.ctx, pB, pass.ExpireOptions{}))

	pC, err := f.lifecycle.Load(f.ctx, idC)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, pC.Status())
	assert.Equal(t, baseTime.Add(60*24*time.Hour), pC.StartTime(),
		"chained renewals keep window continuity")
}

func TestRenewalAfterExpiryStartsAtPurchaseTime(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	idA := mustID(t, 100, passProduct, 0)

	_, err := f.lifecycle.Activate(f.ctx, idA)
	require.NoError(t, err)

	// Customer lets the pass lapse, then buys again on day 45.
	day45 := baseTime.Add(45 * 24 * time.Hour)
	f.clock.Set(day45)
	pA, err := f.lifecycle.Load(f.ctx, idA)
	require.NoError(t, err)
	require.NoError(t, f.lifecycle.MaybeExpire(f.ctx, pA, pass.ExpireOptions{}))

	f.paidOrder(t, 101, day45, order.Item{ProductID: passProduct})
	idB := mustID(t, 101, passProduct, 0)

	result, err := f.lifecycle.Activate(f.ctx, idB)
	require.NoError(t, err)
	assert.True(t, result.Activated)
	assert.True(t, result.Renewal)

	pB, err := f.lifecycle.Load(f.ctx, idB)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, pB.Status())
	assert.Equal(t, day45, pB.StartTime(),
		"purchase after the old expiration starts at the purchase time")
}

func TestUpgradeInheritsStartTime(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.catalog.AddPassProduct(testutil.LifetimePassConfig(20))

	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	idA := mustID(t, 100, passProduct, 0)
	_, err := f.lifecycle.Activate(f.ctx, idA)
	require.NoError(t, err)

	day5 := baseTime.Add(5 * 24 * time.Hour)
	f.clock.Set(day5)
	f.paidOrder(t, 101, day5, order.Item{ProductID: 20})
	idB := mustID(t, 101, 20, 0)

	pA, err := f.lifecycle.Load(f.ctx, idA)
	require.NoError(t, err)

	pB, err := f.lifecycle.Upgrade(f.ctx, pA, idB)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, pB.Status())

	entryB := pB.Entry()
	require.NotNil(t, entryB)
	assert.Equal(t, baseTime, entryB.ActivationParams.StartTime, "inherits original start")
	assert.Equal(t, baseTime, entryB.CustomerParams.StartTime)
	assert.Equal(t, []string{idA.String()}, entryB.PriorPassIDs)

	assert.Equal(t, vo.StatusUpgraded, pA.Status())

	reloaded, err := f.lifecycle.Load(f.ctx, idA)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusUpgraded, reloaded.Status())
	entryA := reloaded.Entry()
	require.NotNil(t, entryA)
	assert.Equal(t, idB.String(), entryA.IsPriorOf)

	assert.Len(t, f.events.OfType("pass.upgraded"), 1)
}

func TestUpgradeRejections(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.catalog.AddPassProduct(testutil.LifetimePassConfig(20))
	f.catalog.AddPassProduct(testutil.LifetimePassConfig(30))

	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	f.paidOrder(t, 101, baseTime, order.Item{ProductID: 20})
	f.paidOrder(t, 102, baseTime, order.Item{ProductID: 30})
	idA := mustID(t, 100, passProduct, 0)
	idB := mustID(t, 101, 20, 0)
	idC := mustID(t, 102, 30, 0)

	_, err := f.lifecycle.Activate(f.ctx, idA)
	require.NoError(t, err)

	pA, err := f.lifecycle.Load(f.ctx, idA)
	require.NoError(t, err)

	_, err = f.lifecycle.Upgrade(f.ctx, pA, idB)
	require.NoError(t, err)

	// Already upgraded away: no double upgrades.
	pA, err = f.lifecycle.Load(f.ctx, idA)
	require.NoError(t, err)
	_, err = f.lifecycle.Upgrade(f.ctx, pA, idC)
	assert.ErrorIs(t, err, pass.ErrNotActive)

	// A target that already carries lineage cannot be upgraded to again.
	_, err = f.lifecycle.Activate(f.ctx, idC)
	require.NoError(t, err)
	pC, err := f.lifecycle.Load(f.ctx, idC)
	require.NoError(t, err)
	_, err = f.lifecycle.Upgrade(f.ctx, pC, idB)
	assert.ErrorIs(t, err, pass.ErrUpgradeTargetHasPriors)
}

func TestUpgradeOntoExpiredUpgradeTargetLeavesItUntouched(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.catalog.AddPassProduct(testutil.LifetimePassConfig(20))
	f.catalog.AddPassProduct(testutil.LifetimePassConfig(30))

	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	f.paidOrder(t, 101, baseTime, order.Item{ProductID: 20})
	f.paidOrder(t, 102, baseTime, order.Item{ProductID: 30})
	idA := mustID(t, 100, passProduct, 0)
	idB := mustID(t, 101, 20, 0)
	idC := mustID(t, 102, 30, 0)

	_, err := f.lifecycle.Activate(f.ctx, idA)
	require.NoError(t, err)
	pA, err := f.lifecycle.Load(f.ctx, idA)
	require.NoError(t, err)
	_, err = f.lifecycle.Upgrade(f.ctx, pA, idB)
	require.NoError(t, err)

	// The upgraded-to pass expires, keeping its lineage on record.
	pB, err := f.lifecycle.Load(f.ctx, idB)
	require.NoError(t, err)
	require.NoError(t, f.lifecycle.MaybeExpire(f.ctx, pB, pass.ExpireOptions{OverrideTimeWindow: true}))

	_, err = f.lifecycle.Activate(f.ctx, idC)
	require.NoError(t, err)
	pC, err := f.lifecycle.Load(f.ctx, idC)
	require.NoError(t, err)

	activatedBefore := len(f.events.OfType("pass.activated"))
	_, err = f.lifecycle.Upgrade(f.ctx, pC, idB)
	assert.ErrorIs(t, err, pass.ErrUpgradeTargetHasPriors)
	assert.Len(t, f.events.OfType("pass.activated"), activatedBefore,
		"rejected upgrade must not activate the target")

	registry, err := f.registries.Get(f.ctx, customerID)
	require.NoError(t, err)
	entryB := registry.Lookup(idB.Key())
	require.NotNil(t, entryB)
	assert.Equal(t, []string{idA.String()}, entryB.PriorPassIDs, "target lineage untouched")

	pC, err = f.lifecycle.Load(f.ctx, idC)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, pC.Status())
}

func TestQuotaRollover(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	id := mustID(t, 100, passProduct, 0)

	_, err := f.lifecycle.Activate(f.ctx, id)
	require.NoError(t, err)

	p, err := f.lifecycle.Load(f.ctx, id)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, f.lifecycle.RecordDownload(f.ctx, p))
	}
	assert.Equal(t, 5, p.DownloadsUsed())
	assert.False(t, p.HasQuotaLeft())

	// Evaluating 25 hours in resets the counter to the 24h boundary, not to
	// "now".
	f.clock.Set(baseTime.Add(25 * time.Hour))
	p, err = f.lifecycle.Load(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, p.Status())
	assert.Equal(t, 0, p.DownloadsUsed())

	entry := p.Entry()
	require.NotNil(t, entry)
	assert.Equal(t, baseTime.Add(24*time.Hour), entry.DownloadsUsedLastReset)
	assert.Len(t, f.events.OfType("pass.quota_reset"), 1)

	// A second evaluation within the same period does not reset again.
	f.clock.Set(baseTime.Add(26 * time.Hour))
	p, err = f.lifecycle.Load(f.ctx, id)
	require.NoError(t, err)
	require.NoError(t, f.lifecycle.RecordDownload(f.ctx, p))
	assert.Equal(t, 1, p.DownloadsUsed())
	assert.Len(t, f.events.OfType("pass.quota_reset"), 1)
}

func TestRecordDownloadRequiresActive(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	id := mustID(t, 100, passProduct, 0)

	_, err := f.lifecycle.Activate(f.ctx, id)
	require.NoError(t, err)

	f.clock.Advance(31 * 24 * time.Hour)
	p, err := f.lifecycle.Load(f.ctx, id)
	require.NoError(t, err)

	err = f.lifecycle.RecordDownload(f.ctx, p)
	assert.ErrorIs(t, err, pass.ErrNotActive)
}

func TestDownloadFilterSkipsIncrement(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	id := mustID(t, 100, passProduct, 0)

	f.lifecycle.SetDownloadFilter(func(*pass.Pass) bool { return false })

	_, err := f.lifecycle.Activate(f.ctx, id)
	require.NoError(t, err)
	p, err := f.lifecycle.Load(f.ctx, id)
	require.NoError(t, err)

	require.NoError(t, f.lifecycle.RecordDownload(f.ctx, p))
	assert.Equal(t, 0, p.DownloadsUsed())
}

func TestCustomerParamsRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	id := mustID(t, 100, passProduct, 0)

	_, err := f.lifecycle.Activate(f.ctx, id)
	require.NoError(t, err)
	p, err := f.lifecycle.Load(f.ctx, id)
	require.NoError(t, err)
	original := p.Entry().ActivationParams

	overrides := original
	overrides.Limit = 50
	overrides.LimitPeriod = vo.PeriodMonth

	require.NoError(t, f.lifecycle.SetCustomerParams(f.ctx, p, overrides))
	assert.Equal(t, overrides, p.Params(), "overrides are authoritative once set")

	require.NoError(t, f.lifecycle.UseActivationParams(f.ctx, p))
	assert.Equal(t, original, p.Params(), "snapshot recovered unchanged")
	assert.Equal(t, overrides, p.Entry().CustomerParams, "overrides kept in storage")
}

func TestOrderDeletedCascade(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	idA := mustID(t, 100, passProduct, 0)
	_, err := f.lifecycle.Activate(f.ctx, idA)
	require.NoError(t, err)

	day10 := baseTime.Add(10 * 24 * time.Hour)
	f.paidOrder(t, 101, day10, order.Item{ProductID: passProduct})
	idB := mustID(t, 101, passProduct, 0)
	_, err = f.lifecycle.Activate(f.ctx, idB)
	require.NoError(t, err)

	// Deleting the queued order prunes it from the renewal queue.
	f.orders.RemoveOrder(101)
	removed, err := f.lifecycle.HandleOrderDeleted(f.ctx, customerID, 101)
	require.NoError(t, err)
	assert.Empty(t, removed)

	registry, err := f.registries.Get(f.ctx, customerID)
	require.NoError(t, err)
	occupant := registry.Lookup(idA.Key())
	require.NotNil(t, occupant)
	assert.Empty(t, occupant.RenewalOrderIDs)

	// Deleting the occupant's order removes the registry entry entirely.
	f.orders.RemoveOrder(100)
	removed, err = f.lifecycle.HandleOrderDeleted(f.ctx, customerID, 100)
	require.NoError(t, err)
	assert.Equal(t, []vo.PassKey{idA.Key()}, removed)

	registry, err = f.registries.Get(f.ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, 0, registry.Len())
}

func TestRefreshReportsStatusChange(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	id := mustID(t, 100, passProduct, 0)

	_, err := f.lifecycle.Activate(f.ctx, id)
	require.NoError(t, err)
	p, err := f.lifecycle.Load(f.ctx, id)
	require.NoError(t, err)
	require.Equal(t, vo.StatusActive, p.Status())

	status, changed, err := f.lifecycle.Refresh(f.ctx, p)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, status)
	assert.False(t, changed)

	f.clock.Advance(31 * 24 * time.Hour)
	status, changed, err = f.lifecycle.Refresh(f.ctx, p)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusExpired, status)
	assert.True(t, changed)
	assert.NotEmpty(t, f.events.OfType("pass.status_changed"))
}

func TestOrphanedActiveFlagSelfHeals(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	id := mustID(t, 100, passProduct, 0)

	_, err := f.lifecycle.Activate(f.ctx, id)
	require.NoError(t, err)

	// Wipe the registry half, leaving the order flag orphaned.
	require.NoError(t, f.registries.Save(f.ctx, customerID, pass.NewRegistry()))

	p, err := f.lifecycle.Load(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusInvalid, p.Status())

	flags, err := f.orders.GetFlags(f.ctx, 100)
	require.NoError(t, err)
	assert.False(t, flags.IsActivated(id.Key()), "orphaned flag cleared")

	// With the flag cleared the grant can be activated again.
	result, err := f.lifecycle.Activate(f.ctx, id)
	require.NoError(t, err)
	assert.True(t, result.Activated)
}

func TestCustomerPassesOrderedNewestFirst(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.catalog.AddPassProduct(testutil.LifetimePassConfig(20))

	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	_, err := f.lifecycle.Activate(f.ctx, mustID(t, 100, passProduct, 0))
	require.NoError(t, err)

	later := baseTime.Add(time.Hour)
	f.clock.Set(later)
	f.paidOrder(t, 101, later, order.Item{ProductID: 20})
	_, err = f.lifecycle.Activate(f.ctx, mustID(t, 101, 20, 0))
	require.NoError(t, err)

	passes, err := f.lifecycle.CustomerPasses(f.ctx, customerID)
	require.NoError(t, err)
	require.Len(t, passes, 2)
	assert.Equal(t, uint(20), passes[0].ID().ProductID, "most recently activated first")
	assert.Equal(t, passProduct, passes[1].ID().ProductID)
}

func TestMissingOrderIsInvalid(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)

	p, err := f.lifecycle.Load(f.ctx, mustID(t, 999, passProduct, 0))
	require.NoError(t, err)
	assert.Equal(t, vo.StatusInvalid, p.Status())
	assert.Zero(t, p.CustomerID())
}

func TestRequestCacheMemoizesLoads(t *testing.T) {
	f := newFixture(t)
	f.thirtyDayPass(t, passProduct)
	f.paidOrder(t, 100, baseTime, order.Item{ProductID: passProduct})
	id := mustID(t, 100, passProduct, 0)

	_, err := f.lifecycle.Activate(f.ctx, id)
	require.NoError(t, err)

	ctx := pass.ContextWithCache(f.ctx, pass.NewRequestCache())
	p1, err := f.lifecycle.Load(ctx, id)
	require.NoError(t, err)
	p2, err := f.lifecycle.Load(ctx, id)
	require.NoError(t, err)
	assert.Same(t, p1, p2, "same request yields the same instance")

	p3, err := f.lifecycle.Load(f.ctx, id)
	require.NoError(t, err)
	assert.NotSame(t, p1, p3, "no cache on the context, fresh load")
}
