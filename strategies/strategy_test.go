package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "combined", (CanBuy | CanSell).String())
	assert.Equal(t, "buy-only", CanBuy.String())
	assert.Equal(t, "sell-only", CanSell.String())
	assert.Equal(t, "none", Capability(0).String())
}

func TestConfigAllocation(t *testing.T) {
	assert.InDelta(t, 0.4, Config{AllocationPct: 0.4, MaxPositions: 5}.Allocation(), 1e-9)
	assert.InDelta(t, 0.2, Config{MaxPositions: 5}.Allocation(), 1e-9)
	assert.InDelta(t, 0.95, Config{}.Allocation(), 1e-9)
	assert.Equal(t, 100, Config{}.Lot())
	assert.Equal(t, 200, Config{LotSize: 200}.Lot())
}

func TestAllocQuantity(t *testing.T) {
	assert.Equal(t, 2000, AllocQuantity(100_000, 10.0, 0.2, 100))
	assert.Equal(t, 600, AllocQuantity(100_000, 33.0, 0.2, 100))
	assert.Equal(t, 0, AllocQuantity(100_000, 25_000.0, 0.2, 100), "one lot unaffordable")
	assert.Equal(t, 0, AllocQuantity(0, 10.0, 0.2, 100))
	assert.Equal(t, 0, AllocQuantity(100_000, 0, 0.2, 100))
}

func TestNewBuildsEveryListedStrategy(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name, DefaultConfig(), 5, 20)
		require.NoError(t, err, name)
		require.NotNil(t, s, name)
		assert.NoError(t, s.Initialize(), name)
	}
}

func TestNewAliasesAndUnknown(t *testing.T) {
	s, err := New("MA-Cross", DefaultConfig(), 5, 20)
	require.NoError(t, err)
	assert.Equal(t, "simple-ma", s.Name())

	s, err = New("red3", DefaultConfig(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "red-three-soldiers", s.Name())

	_, err = New("momentum", DefaultConfig(), 0, 0)
	assert.Error(t, err)
}
