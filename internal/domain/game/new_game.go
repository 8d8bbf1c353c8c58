package game

import (
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/epoch"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
	"github.com/islandepoch/islandepoch-go/internal/domain/terrain"
)

// StartingGold is the balance of a new game
const StartingGold = 500

// StartingHousing is pre-placed in slot 0 of every starting island
const StartingHousing = building.Tent

// IslandSeed describes one starting island
type IslandSeed struct {
	Name               string
	MaxSlots           int
	Fertilities        []terrain.Fertility
	UnlockRequirements []string
}

// StartingIslands is the fixed world of a new game
func StartingIslands() []IslandSeed {
	return []IslandSeed{
		{
			Name:        "Main Isle",
			MaxSlots:    6,
			Fertilities: []terrain.Fertility{terrain.Grainland, terrain.Forest, terrain.Wildlife},
		},
		{
			Name:               "Ironcliff",
			MaxSlots:           4,
			Fertilities:        []terrain.Fertility{terrain.IronDeposits, terrain.Forest},
			UnlockRequirements: []string{"exploration"},
		},
	}
}

// NewGame creates the starting state. Given the same generator seed and clock the result is identical.
func NewGame(ids shared.IDGenerator, clock shared.Clock, catalog building.Catalog) (*State, error) {
	if _, ok := catalog.Blueprint(StartingHousing); !ok {
		return nil, fmt.Errorf("catalog has no %s blueprint for starting housing", StartingHousing)
	}

	now := clock.Now()
	state := &State{
		startTime:      now,
		lastUpdateTime: now,
		gold:           StartingGold,
		epoch:          epoch.NewTracker(),
	}

	for _, seed := range StartingIslands() {
		ledger := resource.NewLedger(resource.Wheat, resource.Wood, resource.IronOre)
		isl, err := island.NewIsland(island.NewID(ids.NewID()), seed.Name, seed.MaxSlots, ledger, seed.Fertilities, seed.UnlockRequirements)
		if err != nil {
			return nil, fmt.Errorf("failed to create island %s: %w", seed.Name, err)
		}
		housing := building.NewInstance(building.NewID(ids.NewID()), StartingHousing)
		if err := isl.Place(0, housing); err != nil {
			return nil, fmt.Errorf("failed to place starting housing on %s: %w", seed.Name, err)
		}
		state.islands = append(state.islands, isl)
	}

	return state, nil
}
