package epoch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandepoch/islandepoch-go/internal/domain/building"
)

func TestTracker_StartsAtFirstEpoch(t *testing.T) {
	tr := NewTracker()

	assert.Equal(t, 1, tr.Current())
	assert.Equal(t, "Epoch 1", tr.CurrentEpoch().Name)
}

func TestTracker_AdvanceStopsAtMax(t *testing.T) {
	tr := NewTracker()

	for i := 0; i < 20; i++ {
		tr.Advance()
	}

	assert.Equal(t, MaxEpoch, tr.Current())
	assert.False(t, tr.CanAdvance())
	assert.False(t, tr.Advance())
	assert.Equal(t, MaxEpoch, tr.Current())
}

func TestTracker_AvailableBlueprints(t *testing.T) {
	catalog := building.DefaultCatalog()
	tr := NewTracker()
	house, _ := catalog.Blueprint(building.House)
	farm, _ := catalog.Blueprint(building.Farm)

	assert.True(t, tr.IsBuildingAvailable(farm))
	assert.False(t, tr.IsBuildingAvailable(house))
	firstEpoch := len(tr.AvailableBlueprints(catalog))

	require.True(t, tr.Advance())

	assert.True(t, tr.IsBuildingAvailable(house))
	assert.Greater(t, len(tr.AvailableBlueprints(catalog)), firstEpoch)
}

func TestReconstructTracker_Bounds(t *testing.T) {
	_, err := ReconstructTracker(0)
	assert.Error(t, err)
	_, err = ReconstructTracker(11)
	assert.Error(t, err)

	tr, err := ReconstructTracker(4)
	require.NoError(t, err)
	assert.Equal(t, 4, tr.Current())
}
