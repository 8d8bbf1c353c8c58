package island

import "github.com/islandepoch/islandepoch-go/internal/domain/building"

// SlotState tags whether a slot holds a building
type SlotState int

const (
	SlotEmpty SlotState = iota
	SlotOccupied
)

// Slot is one fixed position on an island: Empty, or Occupied by exactly one building.
// The zero value is an empty slot.
type Slot struct {
	state    SlotState
	building *building.Instance
}

// EmptySlot returns an empty slot
func EmptySlot() Slot {
	return Slot{state: SlotEmpty}
}

// OccupiedSlot returns a slot holding b
func OccupiedSlot(b *building.Instance) Slot {
	if b == nil {
		return EmptySlot()
	}
	return Slot{state: SlotOccupied, building: b}
}

func (s Slot) State() SlotState {
	return s.state
}

func (s Slot) IsEmpty() bool {
	return s.state == SlotEmpty
}

// Building returns the occupant and true, or nil and false for an empty slot
func (s Slot) Building() (*building.Instance, bool) {
	if s.state != SlotOccupied {
		return nil, false
	}
	return s.building, true
}

func (s Slot) clone() Slot {
	if s.state != SlotOccupied {
		return EmptySlot()
	}
	return OccupiedSlot(s.building.Clone())
}
