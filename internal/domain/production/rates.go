package production

import (
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
	"github.com/islandepoch/islandepoch-go/internal/domain/productivity"
	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
)

// Rates are per-tick flows assuming every input is available.
// Nominal figures ignore staffing, actual figures apply productivity.
type Rates struct {
	NominalProduction  map[resource.Kind]int
	NominalConsumption map[resource.Kind]int
	Production         map[resource.Kind]int
	Consumption        map[resource.Kind]int
	GoldIncome         int
}

func newRates() Rates {
	return Rates{
		NominalProduction:  make(map[resource.Kind]int),
		NominalConsumption: make(map[resource.Kind]int),
		Production:         make(map[resource.Kind]int),
		Consumption:        make(map[resource.Kind]int),
	}
}

// Net is actual production minus actual consumption of kind
func (r Rates) Net(kind resource.Kind) int {
	return r.Production[kind] - r.Consumption[kind]
}

// NetByCategory sums Net over the kinds of category c
func (r Rates) NetByCategory(c resource.Category) int {
	total := 0
	for _, k := range c.Kinds() {
		total += r.Net(k)
	}
	return total
}

func (r Rates) add(other Rates) {
	for k, q := range other.NominalProduction {
		r.NominalProduction[k] += q
	}
	for k, q := range other.NominalConsumption {
		r.NominalConsumption[k] += q
	}
	for k, q := range other.Production {
		r.Production[k] += q
	}
	for k, q := range other.Consumption {
		r.Consumption[k] += q
	}
}

// IslandRates computes the flows of a single island
func (e *Engine) IslandRates(isl *island.Island) Rates {
	rates := newRates()
	for _, o := range isl.Occupants() {
		bp, ok := e.catalog.Blueprint(o.Building.BlueprintID())
		if !ok {
			continue
		}
		p := e.model.Compute(productivity.Input{Blueprint: bp, Building: o.Building, Island: isl})
		for k, q := range bp.Outputs() {
			rates.NominalProduction[k] += q
			rates.Production[k] += productivity.ActualAmount(q, p)
		}
		for k, q := range bp.Inputs() {
			rates.NominalConsumption[k] += q
			rates.Consumption[k] += productivity.ActualAmount(q, p)
		}
	}
	return rates
}

// GameRates sums IslandRates over every island and adds passive gold income
func (e *Engine) GameRates(state *game.State) Rates {
	rates := newRates()
	for _, isl := range state.Islands() {
		rates.add(e.IslandRates(isl))
	}
	rates.GoldIncome = game.PassiveGoldIncome
	return rates
}
