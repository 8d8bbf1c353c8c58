package building

import (
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
	"github.com/islandepoch/islandepoch-go/internal/domain/terrain"
)

// BlueprintID identifies a building type in the catalog
type BlueprintID string

func (id BlueprintID) String() string {
	return string(id)
}

// BlueprintSpec carries the raw values a Blueprint is built from
type BlueprintSpec struct {
	ID                BlueprintID
	Name              string
	GoldCost          int
	Workers           int
	ProvidesWorkers   int
	Inputs            map[resource.Kind]int
	Outputs           map[resource.Kind]int
	Epoch             int
	RequiredFertility terrain.Fertility
}

// Blueprint is the immutable definition of a building type.
// Quantities on Inputs and Outputs are per tick at full productivity.
type Blueprint struct {
	id                BlueprintID
	name              string
	goldCost          int
	workers           int
	providesWorkers   int
	inputs            map[resource.Kind]int
	outputs           map[resource.Kind]int
	epoch             int
	requiredFertility terrain.Fertility
}

// NewBlueprint validates spec and creates a Blueprint
func NewBlueprint(spec BlueprintSpec) (*Blueprint, error) {
	if spec.ID == "" {
		return nil, shared.NewValidationError("id", "blueprint id cannot be empty")
	}
	if spec.Name == "" {
		return nil, shared.NewValidationError("name", fmt.Sprintf("blueprint %s needs a name", spec.ID))
	}
	if spec.GoldCost < 0 {
		return nil, shared.NewValidationError("gold_cost", fmt.Sprintf("blueprint %s: cost cannot be negative", spec.ID))
	}
	if spec.Workers < 0 || spec.ProvidesWorkers < 0 {
		return nil, shared.NewValidationError("workers", fmt.Sprintf("blueprint %s: worker counts cannot be negative", spec.ID))
	}
	if spec.Workers > 0 && spec.ProvidesWorkers > 0 {
		return nil, shared.NewValidationError("workers", fmt.Sprintf("blueprint %s cannot both require and provide workers", spec.ID))
	}
	if spec.Epoch < 1 {
		return nil, shared.NewValidationError("epoch", fmt.Sprintf("blueprint %s: epoch must be at least 1", spec.ID))
	}
	if spec.RequiredFertility != "" && !spec.RequiredFertility.IsValid() {
		return nil, shared.NewValidationError("required_fertility", fmt.Sprintf("blueprint %s: unknown fertility %q", spec.ID, spec.RequiredFertility))
	}

	inputs, err := copyAmounts(spec.ID, "inputs", spec.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := copyAmounts(spec.ID, "outputs", spec.Outputs)
	if err != nil {
		return nil, err
	}

	return &Blueprint{
		id:                spec.ID,
		name:              spec.Name,
		goldCost:          spec.GoldCost,
		workers:           spec.Workers,
		providesWorkers:   spec.ProvidesWorkers,
		inputs:            inputs,
		outputs:           outputs,
		epoch:             spec.Epoch,
		requiredFertility: spec.RequiredFertility,
	}, nil
}

// MustNewBlueprint is NewBlueprint for static tables; it panics on invalid input
func MustNewBlueprint(spec BlueprintSpec) *Blueprint {
	bp, err := NewBlueprint(spec)
	if err != nil {
		panic(err)
	}
	return bp
}

func copyAmounts(id BlueprintID, field string, amounts map[resource.Kind]int) (map[resource.Kind]int, error) {
	out := make(map[resource.Kind]int, len(amounts))
	for k, q := range amounts {
		if !k.IsValid() {
			return nil, shared.NewValidationError(field, fmt.Sprintf("blueprint %s: unknown resource %q", id, k))
		}
		if q <= 0 {
			return nil, shared.NewValidationError(field, fmt.Sprintf("blueprint %s: %s amount must be positive", id, k))
		}
		out[k] = q
	}
	return out, nil
}

func (b *Blueprint) ID() BlueprintID {
	return b.id
}

func (b *Blueprint) Name() string {
	return b.name
}

func (b *Blueprint) GoldCost() int {
	return b.goldCost
}

// Workers is the staffing needed for full productivity
func (b *Blueprint) Workers() int {
	return b.workers
}

// ProvidesWorkers is the workforce a housing blueprint adds to its island
func (b *Blueprint) ProvidesWorkers() int {
	return b.providesWorkers
}

// IsHousing reports whether the blueprint supplies workforce
func (b *Blueprint) IsHousing() bool {
	return b.providesWorkers > 0
}

// Inputs returns a copy of the per-tick consumption
func (b *Blueprint) Inputs() map[resource.Kind]int {
	return cloneAmounts(b.inputs)
}

// Outputs returns a copy of the per-tick production
func (b *Blueprint) Outputs() map[resource.Kind]int {
	return cloneAmounts(b.outputs)
}

// Epoch is the epoch from which the blueprint can be built
func (b *Blueprint) Epoch() int {
	return b.epoch
}

// RequiredFertility returns the terrain tag the island must carry, if any
func (b *Blueprint) RequiredFertility() (terrain.Fertility, bool) {
	return b.requiredFertility, b.requiredFertility != ""
}

// Refund is the gold returned on demolition, half the cost rounded down
func (b *Blueprint) Refund() int {
	return b.goldCost / 2
}

func cloneAmounts(in map[resource.Kind]int) map[resource.Kind]int {
	out := make(map[resource.Kind]int, len(in))
	for k, q := range in {
		out[k] = q
	}
	return out
}
