package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandepoch/islandepoch-go/internal/application/session"
	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/construction"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
	"github.com/islandepoch/islandepoch-go/internal/domain/production"
	"github.com/islandepoch/islandepoch-go/internal/domain/research"
	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

type fixture struct {
	t       *testing.T
	ctx     context.Context
	store   *session.Store
	catalog building.Catalog
	engine  *production.Engine
	manager *construction.Manager
	ids     *shared.SequenceIDGenerator
}

func newFixture(t *testing.T, policy island.UnlockPolicy) *fixture {
	t.Helper()
	catalog := building.DefaultCatalog()
	ids := shared.NewSequenceIDGenerator("queries")
	state, err := game.NewGame(ids, shared.NewMockClock(time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)), catalog)
	require.NoError(t, err)
	return &fixture{
		t:       t,
		ctx:     context.Background(),
		store:   session.NewStore(state),
		catalog: catalog,
		engine:  production.NewEngine(catalog, nil),
		manager: construction.NewManager(catalog, ids, policy),
		ids:     ids,
	}
}

// staffed builds blueprint on islandIndex and assigns workers
func (f *fixture) staffed(blueprint building.BlueprintID, islandIndex, workers int) building.ID {
	f.t.Helper()
	var id building.ID
	require.NoError(f.t, f.store.Update(func(state *game.State) error {
		var err error
		if id, err = f.manager.Build(state, blueprint, islandIndex, nil); err != nil {
			return err
		}
		for i := 0; i < workers; i++ {
			if err := f.manager.AssignWorker(state, id, islandIndex); err != nil {
				return err
			}
		}
		return nil
	}))
	return id
}

func TestGetGameState(t *testing.T) {
	f := newFixture(t, island.UnlockResearch)
	f.staffed(building.Farm, 0, 1)

	resp, err := NewGetGameStateHandler(f.store, f.catalog, island.UnlockResearch).Handle(f.ctx, &GetGameStateQuery{})

	require.NoError(t, err)
	view := resp.(*GetGameStateResponse).Game
	assert.Equal(t, 450, view.Gold)
	assert.Equal(t, 1, view.Epoch)
	assert.Equal(t, "Epoch 1", view.EpochName)
	require.Len(t, view.Islands, 2)

	main := view.Islands[0]
	assert.Equal(t, "Main Isle", main.Name)
	assert.True(t, main.Unlocked)
	assert.Equal(t, 2, main.UsedSlots)
	assert.Equal(t, 4, main.WorkersAvailable)
	assert.Equal(t, 1, main.WorkersAssigned)
	assert.Equal(t, 3, main.UnassignedWorkers)

	assert.False(t, view.Islands[1].Unlocked)
}

func TestGetGameState_ResearchSorted(t *testing.T) {
	f := newFixture(t, island.UnlockOpen)
	require.NoError(t, f.store.Update(func(state *game.State) error {
		if err := state.RecordResearch(game.CompletedResearch{ID: "a", ResearchID: "metalHatchets"}); err != nil {
			return err
		}
		return state.RecordResearch(game.CompletedResearch{ID: "b", ResearchID: "exploration"})
	}))

	resp, err := NewGetGameStateHandler(f.store, f.catalog, island.UnlockOpen).Handle(f.ctx, &GetGameStateQuery{})

	require.NoError(t, err)
	assert.Equal(t, []string{"exploration", "metalHatchets"}, resp.(*GetGameStateResponse).Game.CompletedResearch)
}

func TestGetIsland(t *testing.T) {
	f := newFixture(t, island.UnlockOpen)
	farm := f.staffed(building.Farm, 0, 1)

	resp, err := NewGetIslandHandler(f.store, f.catalog, f.engine, island.UnlockOpen).Handle(f.ctx, &GetIslandQuery{IslandIndex: 0})

	require.NoError(t, err)
	view := resp.(*GetIslandResponse).Island
	assert.Equal(t, []string{"Grainland", "Forest", "Wildlife"}, view.Fertilities)
	require.Len(t, view.Slots, 6)

	tent := view.Slots[0]
	assert.Equal(t, "tent", tent.BlueprintID)
	assert.Equal(t, 4, tent.ProvidesWorkers)
	assert.Equal(t, "100%", tent.Percent)

	slot := view.Slots[1]
	assert.Equal(t, farm.String(), slot.BuildingID)
	assert.Equal(t, "Farm", slot.BlueprintName)
	assert.Equal(t, 1, slot.AssignedWorkers)
	assert.Equal(t, 2, slot.Capacity)
	assert.Equal(t, 0.5, slot.Productivity)
	assert.Equal(t, "50%", slot.Percent)

	assert.True(t, view.Slots[2].Empty())
	assert.Equal(t, 1, view.Rates.Production[resource.Wheat])
	assert.Equal(t, 2, view.Rates.NominalProduction[resource.Wheat])
	assert.Equal(t, 0, view.CategoryTotals[resource.CategoryFood])
}

func TestGetIsland_OutOfRange(t *testing.T) {
	f := newFixture(t, island.UnlockOpen)

	_, err := NewGetIslandHandler(f.store, f.catalog, f.engine, island.UnlockOpen).Handle(f.ctx, &GetIslandQuery{IslandIndex: 4})

	assert.Error(t, err)
}

func TestGetProductionRates(t *testing.T) {
	f := newFixture(t, island.UnlockOpen)
	f.staffed(building.Farm, 0, 2)
	f.staffed(building.Mine, 1, 3)
	h := NewGetProductionRatesHandler(f.store, f.engine)

	resp, err := h.Handle(f.ctx, &GetProductionRatesQuery{})
	require.NoError(t, err)
	total := resp.(*GetProductionRatesResponse).Rates
	assert.Equal(t, 2, total.Production[resource.Wheat])
	assert.Equal(t, 1, total.Production[resource.IronOre])
	assert.Equal(t, game.PassiveGoldIncome, total.GoldIncome)

	one := 1
	resp, err = h.Handle(f.ctx, &GetProductionRatesQuery{IslandIndex: &one})
	require.NoError(t, err)
	iron := resp.(*GetProductionRatesResponse).Rates
	assert.Equal(t, 0, iron.Production[resource.Wheat])
	assert.Equal(t, 1, iron.Production[resource.IronOre])

	bad := 7
	_, err = h.Handle(f.ctx, &GetProductionRatesQuery{IslandIndex: &bad})
	assert.Error(t, err)
}

func TestGetBuildingProductivity(t *testing.T) {
	f := newFixture(t, island.UnlockOpen)
	mine := f.staffed(building.Mine, 1, 1)
	h := NewGetBuildingProductivityHandler(f.store, f.engine)

	resp, err := h.Handle(f.ctx, &GetBuildingProductivityQuery{BuildingID: mine.String(), IslandIndex: 1})

	require.NoError(t, err)
	result := resp.(*GetBuildingProductivityResponse)
	assert.InDelta(t, 1.0/3.0, result.Productivity, 1e-9)
	assert.Equal(t, "33%", result.Percent)

	_, err = h.Handle(f.ctx, &GetBuildingProductivityQuery{BuildingID: mine.String(), IslandIndex: 0})
	assert.True(t, errors.Is(err, construction.ErrAssignBuildingMissing))

	_, err = h.Handle(f.ctx, &GetBuildingProductivityQuery{BuildingID: mine.String(), IslandIndex: 5})
	assert.True(t, errors.Is(err, construction.ErrInvalidIsland))
}

func TestListBlueprints(t *testing.T) {
	f := newFixture(t, island.UnlockOpen)

	resp, err := NewListBlueprintsHandler(f.store, f.manager).Handle(f.ctx, &ListBlueprintsQuery{IslandIndex: 1})

	require.NoError(t, err)
	byID := map[building.BlueprintID]construction.BuildOption{}
	for _, o := range resp.(*ListBlueprintsResponse).Options {
		byID[o.Blueprint.ID()] = o
	}
	assert.True(t, byID[building.Mine].Buildable())
	assert.False(t, byID[building.Farm].TerrainMatches)
}

func TestListResearch(t *testing.T) {
	f := newFixture(t, island.UnlockOpen)
	service := research.NewService(research.DefaultCatalog(), f.ids, shared.NewMockClock(time.Time{}))

	resp, err := NewListResearchHandler(f.store, service).Handle(f.ctx, &ListResearchQuery{})

	require.NoError(t, err)
	statuses := resp.(*ListResearchResponse).Research
	require.Len(t, statuses, 2)
	assert.Equal(t, research.MetalHatchets, statuses[0].Definition.ID())
}
