package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "allaccess/internal/domain/pass/valueobjects"
)

func TestPassFlagsActivateExpireCycle(t *testing.T) {
	key := vo.PassKey{ProductID: 12, PriceID: 1}
	f := NewPassFlags()

	assert.False(t, f.IsActivated(key))
	assert.True(t, f.FlagActivated(key))
	assert.True(t, f.IsActivated(key))
	assert.True(t, f.HasActive())

	f.FlagExpired(key)
	assert.False(t, f.IsActivated(key))
	assert.True(t, f.IsExpired(key))
	assert.False(t, f.HasActive())
}

func TestPassFlagsExpiredIsSticky(t *testing.T) {
	key := vo.PassKey{ProductID: 12, PriceID: 1}
	f := NewPassFlags()
	require.True(t, f.FlagActivated(key))
	f.FlagExpired(key)

	assert.False(t, f.FlagActivated(key), "expired key cannot be re-flagged active")
	assert.True(t, f.IsExpired(key))
	assert.False(t, f.IsActivated(key))
}

func TestPassFlagsRoundTrip(t *testing.T) {
	f := NewPassFlags()
	require.True(t, f.FlagActivated(vo.PassKey{ProductID: 12, PriceID: 1}))
	require.True(t, f.FlagActivated(vo.PassKey{ProductID: 7, PriceID: 0}))
	f.FlagExpired(vo.PassKey{ProductID: 7, PriceID: 0})

	restored := ReconstructPassFlags(f.ActivatedKeys(), f.ExpiredKeys())
	assert.Equal(t, f.ActivatedKeys(), restored.ActivatedKeys())
	assert.Equal(t, f.ExpiredKeys(), restored.ExpiredKeys())
}

func TestReconstructPassFlagsDropsMalformedKeys(t *testing.T) {
	f := ReconstructPassFlags([]string{"12_1", "garbage", ""}, []string{"x_y"})
	assert.Equal(t, []string{"12_1"}, f.ActivatedKeys())
	assert.Empty(t, f.ExpiredKeys())
}

func TestOrderStatusQualifies(t *testing.T) {
	assert.True(t, StatusComplete.Qualifies())
	assert.True(t, StatusPartiallyRefunded.Qualifies())
	assert.False(t, StatusPending.Qualifies())
	assert.False(t, StatusRefunded.Qualifies())
	assert.False(t, StatusAbandoned.Qualifies())
}
