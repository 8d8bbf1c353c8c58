package steps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/rs/zerolog"

	"github.com/islandepoch/islandepoch-go/internal/adapters/persistence"
	"github.com/islandepoch/islandepoch-go/internal/application/economy/commands"
	"github.com/islandepoch/islandepoch-go/internal/application/economy/queries"
	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/application/setup"
	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
	"github.com/islandepoch/islandepoch-go/internal/domain/production"
	"github.com/islandepoch/islandepoch-go/internal/domain/research"
	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
	"github.com/islandepoch/islandepoch-go/test/helpers"
)

const saveSlot = "bdd"

// placed remembers where a named building went
type placed struct {
	id     string
	island int
}

type economyContext struct {
	ctx       context.Context
	catalog   building.Catalog
	policy    island.UnlockPolicy
	clock     *shared.MockClock
	ids       *shared.SequenceIDGenerator
	repo      *persistence.GormSaveRepository
	registry  *setup.HandlerRegistry
	mediator  mediator.Mediator
	buildings map[string]placed
	lastTick  *commands.AdvanceTickResponse
	lastLoad  *commands.LoadGameResponse
	refund    int
	err       error
}

func (ec *economyContext) reset() error {
	ec.ctx = zerolog.Nop().WithContext(context.Background())
	ec.catalog = building.DefaultCatalog()
	ec.policy = island.UnlockOpen
	ec.clock = shared.NewMockClock(helpers.GameStart)
	ec.ids = shared.NewSequenceIDGenerator("bdd")
	ec.buildings = make(map[string]placed)
	ec.lastTick = nil
	ec.lastLoad = nil
	ec.refund = 0
	ec.err = nil

	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	ec.repo = persistence.NewGormSaveRepository(helpers.SharedTestDB, saveSlot, false, ec.clock)
	return ec.wire()
}

// wire builds a fresh session and mediator, the way a process start does
func (ec *economyContext) wire() error {
	ec.registry = setup.NewHandlerRegistry(setup.Dependencies{
		Blueprints: ec.catalog,
		Research:   research.DefaultCatalog(),
		Repository: ec.repo,
		IDs:        ec.ids,
		Clock:      ec.clock,
		Policy:     ec.policy,
	})
	m, err := ec.registry.CreateConfiguredMediator()
	if err != nil {
		return err
	}
	ec.mediator = m
	return nil
}

func (ec *economyContext) send(request mediator.Request) (mediator.Response, error) {
	return ec.mediator.Send(ec.ctx, request)
}

func (ec *economyContext) island(index int) (*island.Island, error) {
	var found *island.Island
	err := ec.registry.Store().View(func(state *game.State) error {
		isl, ok := state.Island(index)
		if !ok {
			return fmt.Errorf("island %d does not exist", index)
		}
		found = isl
		return nil
	})
	return found, err
}

func (ec *economyContext) lookup(name string) (placed, error) {
	p, ok := ec.buildings[name]
	if !ok {
		return placed{}, fmt.Errorf("no building named %q was built", name)
	}
	return p, nil
}

// Given steps

func (ec *economyContext) aNewGame() error {
	_, err := ec.send(&commands.NewGameCommand{})
	return err
}

func (ec *economyContext) aNewGameWithASingleWheatBakery() error {
	catalog, err := helpers.NewChainCatalog()
	if err != nil {
		return err
	}
	ec.catalog = catalog
	if err := ec.wire(); err != nil {
		return err
	}
	return ec.aNewGame()
}

func (ec *economyContext) islandsUnlockThroughResearch() error {
	ec.policy = island.UnlockResearch
	return ec.wire()
}

func (ec *economyContext) islandHolds(index int, table *godog.Table) error {
	amounts, err := parseAmounts(table)
	if err != nil {
		return err
	}
	return ec.registry.Store().Update(func(state *game.State) error {
		isl, ok := state.Island(index)
		if !ok {
			return fmt.Errorf("island %d does not exist", index)
		}
		for kind, qty := range amounts {
			if err := isl.Ledger().Add(kind, qty); err != nil {
				return err
			}
		}
		return nil
	})
}

func (ec *economyContext) thePlayerHasGold(gold int) error {
	return ec.registry.Store().Update(func(state *game.State) error {
		diff := gold - state.Gold()
		if diff >= 0 {
			return state.CreditGold(diff)
		}
		return state.DebitGold(-diff)
	})
}

// When steps

func (ec *economyContext) iBuildNamed(blueprint string, index int, name string) error {
	resp, err := ec.send(&commands.BuildCommand{BlueprintID: blueprint, IslandIndex: index})
	ec.err = err
	if err == nil {
		ec.buildings[name] = placed{id: resp.(*commands.BuildResponse).BuildingID, island: index}
	}
	return nil
}

func (ec *economyContext) iBuild(blueprint string, index int) error {
	name := blueprint
	if _, taken := ec.buildings[name]; taken {
		name = fmt.Sprintf("%s-%d", blueprint, len(ec.buildings))
	}
	return ec.iBuildNamed(blueprint, index, name)
}

func (ec *economyContext) iBuildInSlot(blueprint string, index, slot int) error {
	resp, err := ec.send(&commands.BuildCommand{BlueprintID: blueprint, IslandIndex: index, SlotIndex: &slot})
	ec.err = err
	if err == nil {
		ec.buildings[blueprint] = placed{id: resp.(*commands.BuildResponse).BuildingID, island: index}
	}
	return nil
}

func (ec *economyContext) iAssignWorkersTo(count int, name string) error {
	p, err := ec.lookup(name)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if _, ec.err = ec.send(&commands.AssignWorkerCommand{BuildingID: p.id, IslandIndex: p.island}); ec.err != nil {
			return nil
		}
	}
	return nil
}

func (ec *economyContext) iUnassignAWorkerFrom(name string) error {
	p, err := ec.lookup(name)
	if err != nil {
		return err
	}
	_, ec.err = ec.send(&commands.UnassignWorkerCommand{BuildingID: p.id, IslandIndex: p.island})
	return nil
}

func (ec *economyContext) iDemolish(name string) error {
	p, err := ec.lookup(name)
	if err != nil {
		return err
	}
	resp, err := ec.send(&commands.DemolishCommand{BuildingID: p.id, IslandIndex: p.island})
	ec.err = err
	if err == nil {
		ec.refund = resp.(*commands.DemolishResponse).Refund
		delete(ec.buildings, name)
	}
	return nil
}

func (ec *economyContext) iDemolishTheStartingTent(index int) error {
	isl, err := ec.island(index)
	if err != nil {
		return err
	}
	slot, ok := isl.Slot(0)
	if !ok {
		return fmt.Errorf("island %d has no slot 0", index)
	}
	tent, ok := slot.Building()
	if !ok {
		return fmt.Errorf("island %d slot 0 is empty", index)
	}
	ec.buildings["starting tent"] = placed{id: tent.ID().String(), island: index}
	return ec.iDemolish("starting tent")
}

func (ec *economyContext) ticksPass(count int) error {
	ec.clock.Advance(time.Duration(count) * time.Second)
	resp, err := ec.send(&commands.AdvanceTickCommand{Elapsed: time.Second, Count: count})
	if err != nil {
		return err
	}
	ec.lastTick = resp.(*commands.AdvanceTickResponse)
	return nil
}

func (ec *economyContext) iAdvanceTheEpoch(times int) error {
	for i := 0; i < times; i++ {
		if _, err := ec.send(&commands.AdvanceEpochCommand{}); err != nil {
			return err
		}
	}
	return nil
}

func (ec *economyContext) iAdvanceTheEpochOnce() error {
	return ec.iAdvanceTheEpoch(1)
}

func (ec *economyContext) iCompleteResearch(id string) error {
	_, ec.err = ec.send(&commands.CompleteResearchCommand{ResearchID: id})
	return nil
}

func (ec *economyContext) iCompleteResearchOnIsland(id string, index int) error {
	_, ec.err = ec.send(&commands.CompleteResearchCommand{ResearchID: id, IslandIndex: &index})
	return nil
}

// Then steps

func (ec *economyContext) theCommandShouldSucceed() error {
	if ec.err != nil {
		return fmt.Errorf("expected success, got %v", ec.err)
	}
	return nil
}

func (ec *economyContext) theCommandShouldFailWith(kind string) error {
	if ec.err == nil {
		return fmt.Errorf("expected %s, but the command succeeded", kind)
	}
	var k interface{ KindName() string }
	if !errors.As(ec.err, &k) {
		return fmt.Errorf("expected %s, got untyped error %v", kind, ec.err)
	}
	if k.KindName() != kind {
		return fmt.Errorf("expected %s, got %s (%v)", kind, k.KindName(), ec.err)
	}
	return nil
}

func (ec *economyContext) thePlayerShouldHaveGold(expected int) error {
	return ec.registry.Store().View(func(state *game.State) error {
		if state.Gold() != expected {
			return fmt.Errorf("expected %d gold, got %d", expected, state.Gold())
		}
		return nil
	})
}

func (ec *economyContext) theRefundShouldBe(expected int) error {
	if ec.refund != expected {
		return fmt.Errorf("expected refund %d, got %d", expected, ec.refund)
	}
	return nil
}

func (ec *economyContext) islandShouldHold(index int, table *godog.Table) error {
	expected, err := parseAmounts(table)
	if err != nil {
		return err
	}
	isl, err := ec.island(index)
	if err != nil {
		return err
	}
	return compareAmounts(isl.Ledger(), expected)
}

func (ec *economyContext) islandShouldHoldQuantity(index, expected int, kind string) error {
	k, err := resource.ParseKind(kind)
	if err != nil {
		return err
	}
	isl, err := ec.island(index)
	if err != nil {
		return err
	}
	if got := isl.Ledger().Quantity(k); got != expected {
		return fmt.Errorf("expected island %d to hold %d %s, got %d", index, expected, kind, got)
	}
	return nil
}

func (ec *economyContext) buildingShouldRunAt(name, percent string) error {
	p, err := ec.lookup(name)
	if err != nil {
		return err
	}
	resp, err := ec.send(&queries.GetBuildingProductivityQuery{BuildingID: p.id, IslandIndex: p.island})
	if err != nil {
		return err
	}
	if got := resp.(*queries.GetBuildingProductivityResponse).Percent; got != percent {
		return fmt.Errorf("expected %s to run at %s, got %s", name, percent, got)
	}
	return nil
}

func (ec *economyContext) islandShouldHaveUnassignedWorkers(index, expected int) error {
	resp, err := ec.send(&queries.GetIslandQuery{IslandIndex: index})
	if err != nil {
		return err
	}
	if got := resp.(*queries.GetIslandResponse).Island.UnassignedWorkers; got != expected {
		return fmt.Errorf("expected %d unassigned workers on island %d, got %d", expected, index, got)
	}
	return nil
}

func (ec *economyContext) islandShouldHaveFreeSlots(index, expected int) error {
	isl, err := ec.island(index)
	if err != nil {
		return err
	}
	if got := isl.AvailableSlots(); got != expected {
		return fmt.Errorf("expected %d free slots on island %d, got %d", expected, index, got)
	}
	return nil
}

func (ec *economyContext) theCurrentEpochShouldBe(expected int) error {
	resp, err := ec.send(&queries.GetGameStateQuery{})
	if err != nil {
		return err
	}
	if got := resp.(*queries.GetGameStateResponse).Game.Epoch; got != expected {
		return fmt.Errorf("expected epoch %d, got %d", expected, got)
	}
	return nil
}

func (ec *economyContext) blueprintShouldBeBuildableOn(blueprint string, index int) error {
	return ec.expectBuildable(blueprint, index, true)
}

func (ec *economyContext) blueprintShouldNotBeBuildableOn(blueprint string, index int) error {
	return ec.expectBuildable(blueprint, index, false)
}

func (ec *economyContext) expectBuildable(blueprint string, index int, want bool) error {
	resp, err := ec.send(&queries.ListBlueprintsQuery{IslandIndex: index})
	if err != nil {
		return err
	}
	for _, option := range resp.(*queries.ListBlueprintsResponse).Options {
		if option.Blueprint.ID().String() == blueprint {
			if option.Buildable() != want {
				return fmt.Errorf("expected %s buildable=%t on island %d", blueprint, want, index)
			}
			return nil
		}
	}
	return fmt.Errorf("blueprint %s not listed", blueprint)
}

func (ec *economyContext) researchShouldBeCompleted(id string) error {
	return ec.registry.Store().View(func(state *game.State) error {
		if !state.HasCompleted(id) {
			return fmt.Errorf("expected research %s to be completed", id)
		}
		return nil
	})
}

func (ec *economyContext) theLastTickShouldReportStarved(expected int) error {
	if ec.lastTick == nil {
		return fmt.Errorf("no tick has run")
	}
	starved := 0
	for _, report := range ec.lastTick.Reports {
		starved += report.Count(production.OutcomeStarved)
	}
	if starved != expected {
		return fmt.Errorf("expected %d starved runs, got %d", expected, starved)
	}
	return nil
}

func (ec *economyContext) theGameTickShouldBe(expected int64) error {
	return ec.registry.Store().View(func(state *game.State) error {
		if state.Tick() != expected {
			return fmt.Errorf("expected tick %d, got %d", expected, state.Tick())
		}
		return nil
	})
}

func InitializeEconomyScenario(ctx *godog.ScenarioContext) {
	ec := &economyContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, ec.reset()
	})

	// Given steps
	ctx.Step(`^a new game$`, ec.aNewGame)
	ctx.Step(`^a new game with a single-wheat bakery$`, ec.aNewGameWithASingleWheatBakery)
	ctx.Step(`^islands unlock through research$`, ec.islandsUnlockThroughResearch)
	ctx.Step(`^island (\d+) holds:$`, ec.islandHolds)
	ctx.Step(`^the player has (\d+) gold$`, ec.thePlayerHasGold)

	// When steps
	ctx.Step(`^I build a "([^"]*)" on island (\d+) as "([^"]*)"$`, ec.iBuildNamed)
	ctx.Step(`^I build a "([^"]*)" on island (\d+) in slot (\d+)$`, ec.iBuildInSlot)
	ctx.Step(`^I build a "([^"]*)" on island (\d+)$`, ec.iBuild)
	ctx.Step(`^I assign (\d+) workers? to "([^"]*)"$`, ec.iAssignWorkersTo)
	ctx.Step(`^I unassign a worker from "([^"]*)"$`, ec.iUnassignAWorkerFrom)
	ctx.Step(`^I demolish "([^"]*)"$`, ec.iDemolish)
	ctx.Step(`^I demolish the starting tent on island (\d+)$`, ec.iDemolishTheStartingTent)
	ctx.Step(`^(\d+) ticks? pass(?:es)?$`, ec.ticksPass)
	ctx.Step(`^I advance the epoch$`, ec.iAdvanceTheEpochOnce)
	ctx.Step(`^I advance the epoch (\d+) times$`, ec.iAdvanceTheEpoch)
	ctx.Step(`^I complete research "([^"]*)" on island (\d+)$`, ec.iCompleteResearchOnIsland)
	ctx.Step(`^I complete research "([^"]*)"$`, ec.iCompleteResearch)

	// Then steps
	ctx.Step(`^the command should succeed$`, ec.theCommandShouldSucceed)
	ctx.Step(`^the command should fail with "([^"]*)"$`, ec.theCommandShouldFailWith)
	ctx.Step(`^the player should have (\d+) gold$`, ec.thePlayerShouldHaveGold)
	ctx.Step(`^the refund should be (\d+) gold$`, ec.theRefundShouldBe)
	ctx.Step(`^island (\d+) should hold:$`, ec.islandShouldHold)
	ctx.Step(`^island (\d+) should hold (\d+) "([^"]*)"$`, ec.islandShouldHoldQuantity)
	ctx.Step(`^"([^"]*)" should run at "([^"]*)" productivity$`, ec.buildingShouldRunAt)
	ctx.Step(`^island (\d+) should have (\d+) unassigned workers?$`, ec.islandShouldHaveUnassignedWorkers)
	ctx.Step(`^island (\d+) should have (\d+) free slots?$`, ec.islandShouldHaveFreeSlots)
	ctx.Step(`^the current epoch should be (\d+)$`, ec.theCurrentEpochShouldBe)
	ctx.Step(`^"([^"]*)" should be buildable on island (\d+)$`, ec.blueprintShouldBeBuildableOn)
	ctx.Step(`^"([^"]*)" should not be buildable on island (\d+)$`, ec.blueprintShouldNotBeBuildableOn)
	ctx.Step(`^research "([^"]*)" should be completed$`, ec.researchShouldBeCompleted)
	ctx.Step(`^the game tick should be (\d+)$`, ec.theGameTickShouldBe)
	ctx.Step(`^the ticks should report (\d+) starved runs?$`, ec.theLastTickShouldReportStarved)

	ec.registerSaveSteps(ctx)
}
