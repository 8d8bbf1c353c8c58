package production

import (
	"time"

	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
	"github.com/islandepoch/islandepoch-go/internal/domain/productivity"
	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
)

// Outcome is what a building did during a tick
type Outcome string

const (
	OutcomeRan              Outcome = "ran"
	OutcomeIdle             Outcome = "idle"
	OutcomeStarved          Outcome = "starved"
	OutcomeUnknownBlueprint Outcome = "unknown_blueprint"
)

// BuildingRun reports one building's tick
type BuildingRun struct {
	IslandIndex  int
	SlotIndex    int
	BuildingID   building.ID
	BlueprintID  building.BlueprintID
	Productivity float64
	Outcome      Outcome
	Consumed     map[resource.Kind]int
	Produced     map[resource.Kind]int
}

// TickReport summarizes one call to AdvanceTick
type TickReport struct {
	Tick       int64
	Elapsed    time.Duration
	GoldIncome int
	Runs       []BuildingRun
}

// Count returns how many buildings ended with outcome
func (r TickReport) Count(outcome Outcome) int {
	n := 0
	for _, run := range r.Runs {
		if run.Outcome == outcome {
			n++
		}
	}
	return n
}

// Engine advances the economy one tick at a time
type Engine struct {
	catalog building.Catalog
	model   *productivity.Model
}

func NewEngine(catalog building.Catalog, model *productivity.Model) *Engine {
	if model == nil {
		model = productivity.NewModel()
	}
	return &Engine{catalog: catalog, model: model}
}

// AdvanceTick runs one simulation step on state.
//
// Each building is gated on its own inputs against the island ledger as consumption so far
// has left it. Output is held back until every building on the island has been visited,
// so nothing produced this tick can feed a consumer in the same tick.
func (e *Engine) AdvanceTick(state *game.State, elapsed time.Duration) TickReport {
	state.AdvanceClock(elapsed)
	_ = state.CreditGold(game.PassiveGoldIncome)

	report := TickReport{
		Tick:       state.Tick(),
		Elapsed:    elapsed,
		GoldIncome: game.PassiveGoldIncome,
	}

	for islandIndex, isl := range state.Islands() {
		report.Runs = append(report.Runs, e.runIsland(islandIndex, isl)...)
	}

	return report
}

func (e *Engine) runIsland(islandIndex int, isl *island.Island) []BuildingRun {
	ledger := isl.Ledger()
	pending := resource.NewLedger()
	var runs []BuildingRun

	for _, o := range isl.Occupants() {
		run := BuildingRun{
			IslandIndex: islandIndex,
			SlotIndex:   o.SlotIndex,
			BuildingID:  o.Building.ID(),
			BlueprintID: o.Building.BlueprintID(),
		}

		bp, ok := e.catalog.Blueprint(o.Building.BlueprintID())
		if !ok {
			run.Outcome = OutcomeUnknownBlueprint
			runs = append(runs, run)
			continue
		}

		run.Productivity = e.model.Compute(productivity.Input{Blueprint: bp, Building: o.Building, Island: isl})
		if run.Productivity <= 0 {
			run.Outcome = OutcomeIdle
			runs = append(runs, run)
			continue
		}

		consumption := productivity.Scale(bp.Inputs(), run.Productivity)
		if err := ledger.RemoveAll(consumption); err != nil {
			run.Outcome = OutcomeStarved
			runs = append(runs, run)
			continue
		}

		production := productivity.Scale(bp.Outputs(), run.Productivity)
		for k, q := range production {
			_ = pending.Add(k, q)
		}

		run.Outcome = OutcomeRan
		run.Consumed = consumption
		run.Produced = production
		runs = append(runs, run)
	}

	ledger.Merge(pending)
	return runs
}

// Productivity returns the current productivity of b on isl, zero if its blueprint is unknown
func (e *Engine) Productivity(isl *island.Island, b *building.Instance) float64 {
	bp, ok := e.catalog.Blueprint(b.BlueprintID())
	if !ok {
		return 0
	}
	return e.model.Compute(productivity.Input{Blueprint: bp, Building: b, Island: isl})
}
