package epoch

import (
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

const (
	MinEpoch = 1
	MaxEpoch = 10
)

// Epoch is one era of the game
type Epoch struct {
	Number int
	Name   string
}

// All returns every epoch in order
func All() []Epoch {
	out := make([]Epoch, 0, MaxEpoch)
	for n := MinEpoch; n <= MaxEpoch; n++ {
		out = append(out, Epoch{Number: n, Name: fmt.Sprintf("Epoch %d", n)})
	}
	return out
}

// Tracker holds the current epoch. It only moves forward.
type Tracker struct {
	current int
}

func NewTracker() *Tracker {
	return &Tracker{current: MinEpoch}
}

// ReconstructTracker restores a tracker at current
func ReconstructTracker(current int) (*Tracker, error) {
	if current < MinEpoch || current > MaxEpoch {
		return nil, shared.NewValidationError("epoch", fmt.Sprintf("must be within %d..%d, got %d", MinEpoch, MaxEpoch, current))
	}
	return &Tracker{current: current}, nil
}

func (t *Tracker) Current() int {
	return t.current
}

// CurrentEpoch returns the current epoch with its name
func (t *Tracker) CurrentEpoch() Epoch {
	return All()[t.current-MinEpoch]
}

// CanAdvance reports whether a later epoch exists
func (t *Tracker) CanAdvance() bool {
	return t.current < MaxEpoch
}

// Advance moves to the next epoch. At the last epoch it does nothing and returns false.
func (t *Tracker) Advance() bool {
	if !t.CanAdvance() {
		return false
	}
	t.current++
	return true
}

// IsBuildingAvailable reports whether bp is unlocked in the current epoch
func (t *Tracker) IsBuildingAvailable(bp *building.Blueprint) bool {
	return bp.Epoch() <= t.current
}

// AvailableBlueprints filters catalog to the unlocked blueprints, in catalog order
func (t *Tracker) AvailableBlueprints(catalog building.Catalog) []*building.Blueprint {
	var out []*building.Blueprint
	for _, bp := range catalog.Blueprints() {
		if t.IsBuildingAvailable(bp) {
			out = append(out, bp)
		}
	}
	return out
}

func (t *Tracker) Clone() *Tracker {
	return &Tracker{current: t.current}
}
