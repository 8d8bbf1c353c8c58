package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandepoch/islandepoch-go/internal/adapters/persistence"
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

var start = time.Date(2025, 5, 10, 18, 0, 0, 0, time.UTC)

type fixture struct {
	t       *testing.T
	ctx     context.Context
	store   *session.Store
	catalog building.Catalog
	ids     *shared.SequenceIDGenerator
	clock   *shared.MockClock
	manager *construction.Manager
	repo    *persistence.MemorySaveRepository
	states  int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		t:       t,
		ctx:     context.Background(),
		store:   session.NewStore(nil),
		catalog: building.DefaultCatalog(),
		ids:     shared.NewSequenceIDGenerator("commands"),
		clock:   shared.NewMockClock(start),
		repo:    persistence.NewMemorySaveRepository(),
	}
	f.manager = construction.NewManager(f.catalog, f.ids, island.UnlockOpen)

	_, err := NewNewGameHandler(f.store, f.catalog, f.ids, f.clock).Handle(f.ctx, &NewGameCommand{})
	require.NoError(t, err)
	return f
}

// RecordState counts snapshot notifications
func (f *fixture) RecordState(*game.State) { f.states++ }

func (f *fixture) build(blueprint string, islandIndex int) *BuildResponse {
	f.t.Helper()
	resp, err := NewBuildHandler(f.store, f.manager, f).Handle(f.ctx, &BuildCommand{BlueprintID: blueprint, IslandIndex: islandIndex})
	require.NoError(f.t, err)
	return resp.(*BuildResponse)
}

func (f *fixture) snapshot() game.Snapshot {
	f.t.Helper()
	snap, err := f.store.Snapshot()
	require.NoError(f.t, err)
	return snap
}

func TestHandlers_RejectWrongRequestType(t *testing.T) {
	f := newFixture(t)

	_, err := NewBuildHandler(f.store, f.manager, nil).Handle(f.ctx, &DemolishCommand{})
	assert.ErrorContains(t, err, "invalid request type")

	_, err = NewWorkerAssignmentHandler(f.store, f.manager, f.catalog, nil).Handle(f.ctx, &BuildCommand{})
	assert.ErrorContains(t, err, "invalid request type")
}

func TestHandlers_NoActiveGame(t *testing.T) {
	store := session.NewStore(nil)
	manager := construction.NewManager(building.DefaultCatalog(), shared.NewSequenceIDGenerator("x"), island.UnlockOpen)

	_, err := NewBuildHandler(store, manager, nil).Handle(context.Background(), &BuildCommand{BlueprintID: "farm"})

	assert.True(t, errors.Is(err, session.ErrNoActiveGame))
}

func TestNewGame(t *testing.T) {
	f := newFixture(t)

	snap := f.snapshot()

	assert.Equal(t, game.StartingGold, snap.Gold)
	assert.Len(t, snap.Islands, 2)
	assert.Equal(t, start, snap.StartTime)
}

func TestBuild_ReturnsSlotAndRecordsState(t *testing.T) {
	f := newFixture(t)

	resp := f.build("farm", 0)

	assert.Equal(t, 1, resp.SlotIndex)
	assert.Equal(t, 450, resp.Gold)
	assert.NotEmpty(t, resp.BuildingID)
	assert.Equal(t, 1, f.states)
}

func TestBuild_RequiresBlueprint(t *testing.T) {
	f := newFixture(t)

	_, err := NewBuildHandler(f.store, f.manager, nil).Handle(f.ctx, &BuildCommand{})

	assert.Error(t, err)
}

func TestBuild_DomainRejectionPassesThrough(t *testing.T) {
	f := newFixture(t)

	_, err := NewBuildHandler(f.store, f.manager, f).Handle(f.ctx, &BuildCommand{BlueprintID: "mine", IslandIndex: 0})

	assert.True(t, errors.Is(err, construction.ErrTerrainMismatch))
	assert.Equal(t, 0, f.states)
}

func TestDemolish(t *testing.T) {
	f := newFixture(t)
	built := f.build("bakery", 0)

	resp, err := NewDemolishHandler(f.store, f.manager, f).Handle(f.ctx, &DemolishCommand{BuildingID: built.BuildingID, IslandIndex: 0})

	require.NoError(t, err)
	assert.Equal(t, 50, resp.(*DemolishResponse).Refund)
	assert.Equal(t, 450, resp.(*DemolishResponse).Gold)
}

func TestDemolish_InvalidBuildingID(t *testing.T) {
	f := newFixture(t)

	_, err := NewDemolishHandler(f.store, f.manager, nil).Handle(f.ctx, &DemolishCommand{BuildingID: "not-a-uuid"})

	assert.Error(t, err)
}

func TestWorkerAssignment_AssignThenUnassign(t *testing.T) {
	f := newFixture(t)
	built := f.build("farm", 0)
	h := NewWorkerAssignmentHandler(f.store, f.manager, f.catalog, f)

	resp, err := h.Handle(f.ctx, &AssignWorkerCommand{BuildingID: built.BuildingID})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.(*WorkerAssignmentResponse).AssignedWorkers)
	assert.Equal(t, 3, resp.(*WorkerAssignmentResponse).UnassignedWorkers)

	resp, err = h.Handle(f.ctx, &UnassignWorkerCommand{BuildingID: built.BuildingID})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.(*WorkerAssignmentResponse).AssignedWorkers)
	assert.Equal(t, 4, resp.(*WorkerAssignmentResponse).UnassignedWorkers)

	_, err = h.Handle(f.ctx, &UnassignWorkerCommand{BuildingID: built.BuildingID})
	assert.True(t, errors.Is(err, construction.ErrNoWorkersAssigned))
}

func TestAdvanceTick(t *testing.T) {
	f := newFixture(t)
	built := f.build("farm", 0)
	assign := NewWorkerAssignmentHandler(f.store, f.manager, f.catalog, nil)
	for i := 0; i < 2; i++ {
		_, err := assign.Handle(f.ctx, &AssignWorkerCommand{BuildingID: built.BuildingID})
		require.NoError(t, err)
	}
	recorder := &tickRecorder{}
	f.clock.Advance(time.Minute)

	resp, err := NewAdvanceTickHandler(f.store, production.NewEngine(f.catalog, nil), f.clock, recorder).
		Handle(f.ctx, &AdvanceTickCommand{Elapsed: time.Second, Count: 5})

	require.NoError(t, err)
	result := resp.(*AdvanceTickResponse)
	assert.Len(t, result.Reports, 5)
	assert.Equal(t, int64(5), result.Tick)
	assert.Equal(t, 455, result.Gold)
	assert.Equal(t, 5, recorder.ticks)

	snap := f.snapshot()
	assert.Equal(t, 10, snap.Islands[0].Inventory[resource.Wheat])
	assert.Equal(t, 5*time.Second, snap.Playtime)
	assert.Equal(t, start.Add(time.Minute), snap.LastUpdateTime)
}

func TestAdvanceTick_Validation(t *testing.T) {
	f := newFixture(t)
	h := NewAdvanceTickHandler(f.store, production.NewEngine(f.catalog, nil), f.clock, nil)

	resp, err := h.Handle(f.ctx, &AdvanceTickCommand{})
	require.NoError(t, err)
	assert.Len(t, resp.(*AdvanceTickResponse).Reports, 1)

	_, err = h.Handle(f.ctx, &AdvanceTickCommand{Count: -1})
	assert.Error(t, err)
	_, err = h.Handle(f.ctx, &AdvanceTickCommand{Elapsed: -time.Second})
	assert.Error(t, err)
}

type tickRecorder struct{ ticks int }

func (r *tickRecorder) RecordTick(production.TickReport, *game.State) { r.ticks++ }

func TestAdvanceEpoch(t *testing.T) {
	f := newFixture(t)
	h := NewAdvanceEpochHandler(f.store, f)

	for want := 2; want <= 10; want++ {
		resp, err := h.Handle(f.ctx, &AdvanceEpochCommand{})
		require.NoError(t, err)
		assert.True(t, resp.(*AdvanceEpochResponse).Advanced)
		assert.Equal(t, want, resp.(*AdvanceEpochResponse).Epoch)
	}

	resp, err := h.Handle(f.ctx, &AdvanceEpochCommand{})
	require.NoError(t, err)
	assert.False(t, resp.(*AdvanceEpochResponse).Advanced)
	assert.Equal(t, 10, resp.(*AdvanceEpochResponse).Epoch)
	assert.Equal(t, 9, f.states)
}

func TestCompleteResearch_DefaultAndExplicitIsland(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Update(func(state *game.State) error {
		iron, _ := state.Island(1)
		if err := iron.Ledger().Add(resource.Wood, 20); err != nil {
			return err
		}
		return iron.Ledger().Add(resource.Insight, 5)
	}))
	service := research.NewService(research.DefaultCatalog(), f.ids, f.clock)

	_, err := NewCompleteResearchHandler(f.store, service, 0, nil).Handle(f.ctx, &CompleteResearchCommand{ResearchID: "exploration"})
	assert.True(t, errors.Is(err, research.ErrInsufficientResources))

	_, err = NewCompleteResearchHandler(f.store, service, 1, nil).Handle(f.ctx, &CompleteResearchCommand{ResearchID: "exploration"})
	require.NoError(t, err)
	assert.True(t, f.snapshot().Islands[1].Inventory[resource.Wood] == 0)
}

func TestCompleteResearch_IslandOverride(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Update(func(state *game.State) error {
		main, _ := state.Island(0)
		if err := main.Ledger().Add(resource.Wood, 20); err != nil {
			return err
		}
		return main.Ledger().Add(resource.Insight, 5)
	}))
	service := research.NewService(research.DefaultCatalog(), f.ids, f.clock)
	zero := 0

	resp, err := NewCompleteResearchHandler(f.store, service, 1, f).Handle(f.ctx, &CompleteResearchCommand{ResearchID: "exploration", IslandIndex: &zero})

	require.NoError(t, err)
	record := resp.(*CompleteResearchResponse).Record
	assert.Equal(t, "exploration", record.ResearchID)
	assert.Equal(t, start, record.CompletedAt)
	assert.Equal(t, 1, f.states)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.build("farm", 0)
	f.clock.Advance(time.Hour)

	saved, err := NewSaveGameHandler(f.store, f.repo, f.clock).Handle(f.ctx, &SaveGameCommand{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), saved.(*SaveGameResponse).Tick)
	before := f.snapshot()

	f.store.Replace(nil)
	resp, err := NewLoadGameHandler(f.store, f.repo, f.catalog, f.ids, f.clock).Handle(f.ctx, &LoadGameCommand{})

	require.NoError(t, err)
	assert.False(t, resp.(*LoadGameResponse).Fresh)
	assert.Equal(t, before, f.snapshot())
	assert.Equal(t, start.Add(time.Hour), f.snapshot().LastUpdateTime)
}

type failingSaveRepository struct {
	game.SaveRepository
}

func (failingSaveRepository) Save(context.Context, game.Snapshot) error {
	return errors.New("disk full")
}

func TestSaveGame_FailureLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	f.clock.Advance(time.Hour)
	before := f.snapshot()

	_, err := NewSaveGameHandler(f.store, failingSaveRepository{f.repo}, f.clock).Handle(f.ctx, &SaveGameCommand{})

	require.Error(t, err)
	assert.Equal(t, before, f.snapshot())
	assert.Equal(t, start, f.snapshot().LastUpdateTime)
}

func TestLoad_NoSaveStartsFresh(t *testing.T) {
	f := newFixture(t)
	f.build("farm", 0)

	resp, err := NewLoadGameHandler(f.store, f.repo, f.catalog, f.ids, f.clock).Handle(f.ctx, &LoadGameCommand{})

	require.NoError(t, err)
	assert.True(t, resp.(*LoadGameResponse).Fresh)
	assert.Equal(t, game.StartingGold, f.snapshot().Gold)
}

func TestLoad_UnreadableSaveFails(t *testing.T) {
	f := newFixture(t)
	f.repo.Seed([]byte("{not json"))

	_, err := NewLoadGameHandler(f.store, f.repo, f.catalog, f.ids, f.clock).Handle(f.ctx, &LoadGameCommand{})

	assert.Error(t, err)
}

func TestDeleteSave(t *testing.T) {
	f := newFixture(t)
	f.build("farm", 0)
	_, err := NewSaveGameHandler(f.store, f.repo, f.clock).Handle(f.ctx, &SaveGameCommand{})
	require.NoError(t, err)

	_, err = NewDeleteSaveHandler(f.store, f.repo, f.catalog, f.ids, f.clock).Handle(f.ctx, &DeleteSaveCommand{})

	require.NoError(t, err)
	exists, err := f.repo.Exists(f.ctx)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, game.StartingGold, f.snapshot().Gold)
}
