package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassKeyRoundTrip(t *testing.T) {
	key, err := NewPassKey(12, 3)
	require.NoError(t, err)
	assert.Equal(t, "12_3", key.String())

	parsed, err := ParsePassKey("12_3")
	require.NoError(t, err)
	assert.Equal(t, key, parsed)
}

func TestParsePassKeyRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "12", "12_3_4", "a_b", "0_1"} {
		_, err := ParsePassKey(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestPassIDKeyAndString(t *testing.T) {
	id, err := NewPassID(100, 12, 3)
	require.NoError(t, err)
	assert.Equal(t, "100_12_3", id.String())
	assert.Equal(t, PassKey{ProductID: 12, PriceID: 3}, id.Key())

	parsed, err := ParsePassID("100_12_3")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestNewPassIDValidation(t *testing.T) {
	_, err := NewPassID(0, 12, 3)
	assert.Error(t, err)

	_, err = NewPassID(100, 0, 3)
	assert.Error(t, err)

	id, err := NewPassID(100, 12, 0)
	assert.NoError(t, err, "price 0 means non-variable")
	assert.False(t, id.IsZero())
}

func TestPassKeyAsMapKey(t *testing.T) {
	m := map[PassKey]int{}
	m[PassKey{ProductID: 1, PriceID: 2}] = 1
	m[PassKey{ProductID: 1, PriceID: 2}] = 2
	m[PassKey{ProductID: 1, PriceID: 3}] = 3
	assert.Len(t, m, 2)
	assert.Equal(t, 2, m[PassKey{ProductID: 1, PriceID: 2}])
}
