package pass

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "allaccess/internal/domain/pass/valueobjects"
)

func testEntry(orderID, productID, priceID uint) *RegistryEntry {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	params := vo.GrantParams{
		StartTime:   start,
		Duration:    vo.Duration{Number: 1, Unit: vo.UnitMonth},
		Limit:       5,
		LimitPeriod: vo.PeriodDay,
		Categories:  vo.AllCategories(),
		Variations:  vo.AllVariations(),
	}
	return &RegistryEntry{
		OrderID:                orderID,
		ProductID:              productID,
		PriceID:                priceID,
		ActivationParams:       params,
		CustomerParams:         params,
		DownloadsUsedLastReset: start,
	}
}

func TestRegistryPutReplacesOccupant(t *testing.T) {
	r := NewRegistry()
	r.Put(testEntry(100, 12, 0))
	r.Put(testEntry(200, 7, 0))
	r.Put(testEntry(300, 12, 0))

	assert.Equal(t, 2, r.Len(), "same key never has two occupants")
	occupant := r.Lookup(vo.PassKey{ProductID: 12, PriceID: 0})
	require.NotNil(t, occupant)
	assert.Equal(t, uint(300), occupant.OrderID)

	entries := r.Entries()
	assert.Equal(t, uint(300), entries[0].OrderID, "newest first")
}

func TestRegistryEncodeRoundTrip(t *testing.T) {
	r := NewRegistry()
	e := testEntry(100, 12, 3)
	e.UseCustomerParams = true
	e.DownloadsUsed = 4
	e.RenewalOrderIDs = []uint{101, 102}
	e.PriorPassIDs = []string{"90_12_3"}
	e.IsPriorOf = "110_20_0"
	r.Put(e)

	raw, err := r.Encode()
	require.NoError(t, err)

	restored, err := ReconstructRegistry(raw)
	require.NoError(t, err)
	require.Equal(t, 1, restored.Len())

	got := restored.Lookup(vo.PassKey{ProductID: 12, PriceID: 3})
	require.NotNil(t, got)
	assert.Equal(t, e, got)
}

func TestReconstructRegistryEmptyInput(t *testing.T) {
	r, err := ReconstructRegistry(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())

	_, err = ReconstructRegistry([]byte("{not json"))
	assert.Error(t, err)
}

func TestRegistryHashDetectsChanges(t *testing.T) {
	r := NewRegistry()
	r.Put(testEntry(100, 12, 0))
	before := r.Hash()

	assert.Equal(t, before, r.Hash(), "hash is stable")

	r.Lookup(vo.PassKey{ProductID: 12, PriceID: 0}).DownloadsUsed++
	assert.NotEqual(t, before, r.Hash())
}

func TestRegistryRemoveByOrder(t *testing.T) {
	r := NewRegistry()
	r.Put(testEntry(100, 12, 0))
	r.Put(testEntry(100, 20, 0))
	r.Put(testEntry(200, 7, 0))

	removed := r.RemoveByOrder(100)
	assert.ElementsMatch(t, []vo.PassKey{
		{ProductID: 12, PriceID: 0},
		{ProductID: 20, PriceID: 0},
	}, removed)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryPruneRenewalOrder(t *testing.T) {
	r := NewRegistry()
	e := testEntry(100, 12, 0)
	e.RenewalOrderIDs = []uint{101, 102, 103}
	r.Put(e)

	assert.True(t, r.PruneRenewalOrder(102))
	assert.Equal(t, []uint{101, 103}, e.RenewalOrderIDs)
	assert.False(t, r.PruneRenewalOrder(999))
}

func TestRegistryEntryRenewalQueue(t *testing.T) {
	e := testEntry(100, 12, 0)

	assert.True(t, e.QueueRenewalOrder(101))
	assert.False(t, e.QueueRenewalOrder(101), "duplicates ignored")
	assert.True(t, e.QueueRenewalOrder(102))

	id, ok := e.PopRenewalOrder()
	assert.True(t, ok)
	assert.Equal(t, uint(101), id, "oldest first")

	id, ok = e.PopRenewalOrder()
	assert.True(t, ok)
	assert.Equal(t, uint(102), id)

	_, ok = e.PopRenewalOrder()
	assert.False(t, ok)
}

func TestRegistryEntryParamsSelector(t *testing.T) {
	e := testEntry(100, 12, 0)
	e.CustomerParams.Limit = 99

	assert.Equal(t, 5, e.Params().Limit)
	e.UseCustomerParams = true
	assert.Equal(t, 99, e.Params().Limit)
}
