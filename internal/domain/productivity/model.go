package productivity

import (
	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
)

// Input is everything a term may look at
type Input struct {
	Blueprint *building.Blueprint
	Building  *building.Instance
	Island    *island.Island
}

// Term is one independent multiplier of a building's productivity
type Term func(in Input) float64

// Model multiplies its terms and clamps the product to [0, 1]
type Model struct {
	terms []Term
}

// NewModel builds a model from the default terms followed by extra
func NewModel(extra ...Term) *Model {
	terms := []Term{Staffing, ResearchBonus, LevelBonus, IslandTrait}
	return &Model{terms: append(terms, extra...)}
}

// Compute returns the productivity of a building in [0, 1]
func (m *Model) Compute(in Input) float64 {
	p := 1.0
	for _, term := range m.terms {
		p *= term(in)
	}
	return clamp(p)
}

func clamp(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Staffing is assigned over required workers. Buildings that need no workers run at full rate.
func Staffing(in Input) float64 {
	required := in.Blueprint.Workers()
	if required == 0 {
		return 1.0
	}
	return float64(in.Building.AssignedWorkers()) / float64(required)
}

// ResearchBonus is reserved for research multipliers
func ResearchBonus(Input) float64 {
	return 1.0
}

// LevelBonus is reserved for building upgrades
func LevelBonus(Input) float64 {
	return 1.0
}

// IslandTrait is reserved for island-wide modifiers
func IslandTrait(Input) float64 {
	return 1.0
}
