package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
	"github.com/islandepoch/islandepoch-go/internal/domain/terrain"
)

// GameStart is the wall-clock time every fixture game begins at
var GameStart = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// NewChainCatalog is the default catalog with a bakery that needs a single wheat per bread,
// which keeps farm-to-bakery chains easy to reason about in tests
func NewChainCatalog() (building.Catalog, error) {
	var bps []*building.Blueprint
	for _, bp := range building.DefaultCatalog().Blueprints() {
		if bp.ID() != building.Bakery {
			bps = append(bps, bp)
		}
	}
	bakery, err := building.NewBlueprint(building.BlueprintSpec{
		ID: building.Bakery, Name: "Bakery", GoldCost: 100, Workers: 1, Epoch: 1,
		Inputs:  map[resource.Kind]int{resource.Wheat: 1},
		Outputs: map[resource.Kind]int{resource.Bread: 1},
	})
	if err != nil {
		return nil, err
	}
	catalog, err := building.NewStaticCatalog(append(bps, bakery)...)
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// ChainCatalog is NewChainCatalog for plain tests
func ChainCatalog(t testing.TB) building.Catalog {
	t.Helper()
	catalog, err := NewChainCatalog()
	require.NoError(t, err)
	return catalog
}

// NewTestGame starts a deterministic game at GameStart
func NewTestGame(t testing.TB, catalog building.Catalog) (*game.State, *shared.SequenceIDGenerator, *shared.MockClock) {
	t.Helper()
	ids := shared.NewSequenceIDGenerator("test")
	clock := shared.NewMockClock(GameStart)
	state, err := game.NewGame(ids, clock, catalog)
	require.NoError(t, err)
	return state, ids, clock
}

// Stock adds amounts to an island's ledger
func Stock(t testing.TB, state *game.State, islandIndex int, amounts map[resource.Kind]int) {
	t.Helper()
	isl, ok := state.Island(islandIndex)
	require.True(t, ok, "island %d", islandIndex)
	for kind, qty := range amounts {
		require.NoError(t, isl.Ledger().Add(kind, qty))
	}
}

// IslandWithFertility returns the index of the first island that has f
func IslandWithFertility(t testing.TB, state *game.State, f terrain.Fertility) int {
	t.Helper()
	for i, isl := range state.Islands() {
		if isl.HasFertility(f) {
			return i
		}
	}
	t.Fatalf("no island has %s", f)
	return -1
}
