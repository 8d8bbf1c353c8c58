package construction

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

func setup(t *testing.T, policy island.UnlockPolicy) (*Manager, *game.State) {
	t.Helper()
	catalog := building.DefaultCatalog()
	ids := shared.NewSequenceIDGenerator("construction")
	state, err := game.NewGame(ids, shared.NewMockClock(time.Time{}), catalog)
	require.NoError(t, err)
	return NewManager(catalog, ids, policy), state
}

func slot(i int) *int { return &i }

func TestBuild_DeductsGoldAndPlacesUnstaffedBuilding(t *testing.T) {
	m, state := setup(t, island.UnlockOpen)

	id, err := m.Build(state, building.Farm, 0, nil)

	require.NoError(t, err)
	assert.Equal(t, 450, state.Gold())
	main, _ := state.Island(0)
	idx, inst, ok := main.FindBuilding(id)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 0, inst.AssignedWorkers())
}

func TestBuild_ExplicitSlot(t *testing.T) {
	m, state := setup(t, island.UnlockOpen)

	id, err := m.Build(state, building.Forester, 0, slot(5))

	require.NoError(t, err)
	main, _ := state.Island(0)
	idx, _, _ := main.FindBuilding(id)
	assert.Equal(t, 5, idx)
}

func TestBuild_DoesNotRequireFreeWorkers(t *testing.T) {
	m, state := setup(t, island.UnlockOpen)

	for i := 0; i < 3; i++ {
		_, err := m.Build(state, building.Farm, 0, nil)
		require.NoError(t, err)
	}

	main, _ := state.Island(0)
	assert.Equal(t, 2, main.AvailableSlots())
}

func TestBuild_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		prepare   func(*Manager, *game.State)
		blueprint building.BlueprintID
		island    int
		slot      *int
		want      error
	}{
		{name: "island out of range", blueprint: building.Farm, island: 5, want: ErrBuildingNotFound},
		{name: "negative island", blueprint: building.Farm, island: -1, want: ErrBuildingNotFound},
		{name: "unknown blueprint", blueprint: "castle", island: 0, want: ErrUnknownBlueprint},
		{name: "epoch locked", blueprint: building.House, island: 0, want: ErrBlueprintLocked},
		{name: "terrain mismatch", blueprint: building.Mine, island: 0, want: ErrTerrainMismatch},
		{name: "occupied slot", blueprint: building.Farm, island: 0, slot: slot(0), want: ErrNoSlots},
		{name: "slot out of range", blueprint: building.Farm, island: 0, slot: slot(6), want: ErrInvalidSlot},
		{
			name: "insufficient gold",
			prepare: func(_ *Manager, s *game.State) {
				_ = s.DebitGold(470)
			},
			blueprint: building.Farm, island: 0, want: ErrInsufficientGold,
		},
		{
			name: "no free slot",
			prepare: func(m *Manager, s *game.State) {
				for i := 0; i < 3; i++ {
					_, _ = m.Build(s, building.Tent, 1, nil)
				}
			},
			blueprint: building.Tent, island: 1, want: ErrNoSlots,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, state := setup(t, island.UnlockOpen)
			if tt.prepare != nil {
				tt.prepare(m, state)
			}
			before := state.Snapshot()

			_, err := m.Build(state, tt.blueprint, tt.island, tt.slot)

			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, before, state.Snapshot())
		})
	}
}

func TestBuild_InsufficientGoldCarriesAmounts(t *testing.T) {
	m, state := setup(t, island.UnlockOpen)
	require.NoError(t, state.DebitGold(480))

	_, err := m.Build(state, building.Farm, 0, nil)

	var buildErr *BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.Equal(t, InsufficientGold, buildErr.Kind)
	assert.Equal(t, 50, buildErr.Required)
	assert.Equal(t, 20, buildErr.Available)
}

func TestBuild_GoldCheckedBeforeSlot(t *testing.T) {
	m, state := setup(t, island.UnlockOpen)
	require.NoError(t, state.DebitGold(500))

	_, err := m.Build(state, building.Farm, 0, slot(0))

	assert.True(t, errors.Is(err, ErrInsufficientGold))
}

func TestBuild_ResearchUnlockPolicy(t *testing.T) {
	m, state := setup(t, island.UnlockResearch)

	_, err := m.Build(state, building.Mine, 1, nil)
	assert.True(t, errors.Is(err, ErrIslandLocked))

	require.NoError(t, state.RecordResearch(game.CompletedResearch{ID: "r", ResearchID: "exploration"}))
	_, err = m.Build(state, building.Mine, 1, nil)
	assert.NoError(t, err)
}

func TestDemolish_RefundsHalfRoundedDownAndEmptiesSlot(t *testing.T) {
	m, state := setup(t, island.UnlockOpen)
	id, err := m.Build(state, building.Bakery, 0, slot(3))
	require.NoError(t, err)
	require.NoError(t, state.DebitGold(state.Gold()))

	refund, err := m.Demolish(state, id, 0)

	require.NoError(t, err)
	assert.Equal(t, 50, refund)
	assert.Equal(t, 50, state.Gold())
	main, _ := state.Island(0)
	s, _ := main.Slot(3)
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 6, main.MaxSlots())
}

func TestBuildThenDemolish_NetCost(t *testing.T) {
	for _, bp := range building.DefaultCatalog().Blueprints() {
		if bp.Epoch() > 1 || bp.IsHousing() {
			continue
		}
		t.Run(string(bp.ID()), func(t *testing.T) {
			m, state := setup(t, island.UnlockOpen)
			target := 0
			if f, required := bp.RequiredFertility(); required {
				main, _ := state.Island(0)
				if !main.HasFertility(f) {
					target = 1
				}
			}

			id, err := m.Build(state, bp.ID(), target, nil)
			require.NoError(t, err)
			_, err = m.Demolish(state, id, target)
			require.NoError(t, err)

			cost := bp.GoldCost()
			assert.Equal(t, game.StartingGold-(cost-cost/2), state.Gold())
		})
	}
}

func TestDemolish_DoesNotShiftOtherSlots(t *testing.T) {
	m, state := setup(t, island.UnlockOpen)
	a, _ := m.Build(state, building.Farm, 0, slot(1))
	b, _ := m.Build(state, building.Forester, 0, slot(2))
	c, _ := m.Build(state, building.BerryGatherer, 0, slot(3))

	_, err := m.Demolish(state, b, 0)
	require.NoError(t, err)

	main, _ := state.Island(0)
	idxA, _, _ := main.FindBuilding(a)
	idxC, _, _ := main.FindBuilding(c)
	assert.Equal(t, 1, idxA)
	assert.Equal(t, 3, idxC)
}

func TestDemolish_Rejections(t *testing.T) {
	m, state := setup(t, island.UnlockOpen)
	id, _ := m.Build(state, building.Farm, 0, nil)

	_, err := m.Demolish(state, id, 4)
	assert.True(t, errors.Is(err, ErrBuildingNotFound))

	_, err = m.Demolish(state, id, 1)
	assert.True(t, errors.Is(err, ErrBuildingNotFound))
}

func TestDemolish_HousingWithWorkersInUse(t *testing.T) {
	m, state := setup(t, island.UnlockOpen)
	main, _ := state.Island(0)
	tentSlot, _ := main.Slot(0)
	tent, _ := tentSlot.Building()
	farm, _ := m.Build(state, building.Farm, 0, nil)
	require.NoError(t, m.AssignWorker(state, farm, 0))
	goldBefore := state.Gold()

	_, err := m.Demolish(state, tent.ID(), 0)

	assert.True(t, errors.Is(err, ErrWorkersInUse))
	assert.Equal(t, goldBefore, state.Gold())

	require.NoError(t, m.UnassignWorker(state, farm, 0))
	_, err = m.Demolish(state, tent.ID(), 0)
	assert.NoError(t, err)
}

func TestAssignWorker_Bounds(t *testing.T) {
	m, state := setup(t, island.UnlockOpen)
	farm, _ := m.Build(state, building.Farm, 0, nil)
	main, _ := state.Island(0)

	require.NoError(t, m.AssignWorker(state, farm, 0))
	require.NoError(t, m.AssignWorker(state, farm, 0))
	err := m.AssignWorker(state, farm, 0)

	assert.True(t, errors.Is(err, ErrBuildingFull))
	_, inst, _ := main.FindBuilding(farm)
	assert.Equal(t, 2, inst.AssignedWorkers())

	require.NoError(t, m.UnassignWorker(state, farm, 0))
	require.NoError(t, m.UnassignWorker(state, farm, 0))
	err = m.UnassignWorker(state, farm, 0)
	assert.True(t, errors.Is(err, ErrNoWorkersAssigned))
	assert.Equal(t, 0, inst.AssignedWorkers())
}

func TestAssignWorker_NoWorkersAvailable(t *testing.T) {
	m, state := setup(t, island.UnlockOpen)
	first, _ := m.Build(state, building.Farm, 0, nil)
	second, _ := m.Build(state, building.Farm, 0, nil)
	third, _ := m.Build(state, building.BerryGatherer, 0, nil)
	for i := 0; i < 2; i++ {
		require.NoError(t, m.AssignWorker(state, first, 0))
		require.NoError(t, m.AssignWorker(state, second, 0))
	}

	err := m.AssignWorker(state, third, 0)

	assert.True(t, errors.Is(err, ErrNoWorkersAvailable))
	main, _ := state.Island(0)
	assert.Equal(t, 0, main.UnassignedWorkers(building.DefaultCatalog()))
}

func TestAssignWorker_LookupErrors(t *testing.T) {
	m, state := setup(t, island.UnlockOpen)
	farm, _ := m.Build(state, building.Farm, 0, nil)

	assert.True(t, errors.Is(m.AssignWorker(state, farm, 9), ErrInvalidIsland))
	assert.True(t, errors.Is(m.AssignWorker(state, farm, 1), ErrAssignBuildingMissing))
	assert.True(t, errors.Is(m.UnassignWorker(state, farm, -1), ErrInvalidIsland))
}

func TestAssignWorker_HousingIsAlwaysFull(t *testing.T) {
	m, state := setup(t, island.UnlockOpen)
	main, _ := state.Island(0)
	s, _ := main.Slot(0)
	tent, _ := s.Building()

	err := m.AssignWorker(state, tent.ID(), 0)

	assert.True(t, errors.Is(err, ErrBuildingFull))
}

func TestOptions(t *testing.T) {
	m, state := setup(t, island.UnlockOpen)

	options, err := m.Options(state, 0)

	require.NoError(t, err)
	byID := map[building.BlueprintID]BuildOption{}
	for _, o := range options {
		byID[o.Blueprint.ID()] = o
	}
	assert.True(t, byID[building.Farm].Buildable())
	assert.False(t, byID[building.Mine].TerrainMatches)
	assert.False(t, byID[building.House].EpochUnlocked)

	_, err = m.Options(state, 7)
	assert.Error(t, err)
}
