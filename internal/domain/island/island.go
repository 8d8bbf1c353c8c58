package island

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
	"github.com/islandepoch/islandepoch-go/internal/domain/terrain"
)

// ID identifies an island
type ID struct {
	value string
}

func NewID(id uuid.UUID) ID {
	return ID{value: id.String()}
}

// ParseID creates an ID from an existing UUID string
func ParseID(s string) (ID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("invalid island_id format: %w", err)
	}
	return ID{value: parsed.String()}, nil
}

func (i ID) String() string {
	return i.value
}

// Island owns a resource ledger and a fixed row of building slots
type Island struct {
	id                 ID
	name               string
	ledger             *resource.Ledger
	slots              []Slot
	fertilities        []terrain.Fertility
	unlockRequirements []string
}

// NewIsland creates an island with maxSlots empty slots
func NewIsland(id ID, name string, maxSlots int, ledger *resource.Ledger, fertilities []terrain.Fertility, unlockRequirements []string) (*Island, error) {
	if maxSlots < 1 {
		return nil, shared.NewValidationError("max_slots", fmt.Sprintf("must be at least 1, got %d", maxSlots))
	}
	return ReconstructIsland(id, name, ledger, make([]Slot, maxSlots), fertilities, unlockRequirements)
}

// ReconstructIsland rebuilds an island from persisted values. The slot count becomes maxSlots.
func ReconstructIsland(id ID, name string, ledger *resource.Ledger, slots []Slot, fertilities []terrain.Fertility, unlockRequirements []string) (*Island, error) {
	if name == "" {
		return nil, shared.NewValidationError("name", "island name cannot be empty")
	}
	if len(slots) == 0 {
		return nil, shared.NewValidationError("slots", fmt.Sprintf("island %s has no slots", name))
	}
	for _, f := range fertilities {
		if !f.IsValid() {
			return nil, shared.NewValidationError("fertilities", fmt.Sprintf("island %s: unknown fertility %q", name, f))
		}
	}
	if ledger == nil {
		ledger = resource.NewLedger()
	}

	seen := make(map[building.ID]bool)
	for _, s := range slots {
		if b, ok := s.Building(); ok {
			if seen[b.ID()] {
				return nil, shared.NewInvariantViolationError("island", fmt.Sprintf("%s holds building %s twice", name, b.ID()))
			}
			seen[b.ID()] = true
		}
	}

	return &Island{
		id:                 id,
		name:               name,
		ledger:             ledger,
		slots:              append([]Slot(nil), slots...),
		fertilities:        append([]terrain.Fertility(nil), fertilities...),
		unlockRequirements: append([]string(nil), unlockRequirements...),
	}, nil
}

func (i *Island) ID() ID {
	return i.id
}

func (i *Island) Name() string {
	return i.name
}

// Ledger returns the island inventory. Mutations through it are visible to the island.
func (i *Island) Ledger() *resource.Ledger {
	return i.ledger
}

// MaxSlots is the fixed slot count
func (i *Island) MaxSlots() int {
	return len(i.slots)
}

// Slots returns a copy of the slot row
func (i *Island) Slots() []Slot {
	return append([]Slot(nil), i.slots...)
}

// Slot returns the slot at index
func (i *Island) Slot(index int) (Slot, bool) {
	if !i.InRange(index) {
		return Slot{}, false
	}
	return i.slots[index], true
}

// InRange reports whether index addresses a slot
func (i *Island) InRange(index int) bool {
	return index >= 0 && index < len(i.slots)
}

func (i *Island) Fertilities() []terrain.Fertility {
	return append([]terrain.Fertility(nil), i.fertilities...)
}

func (i *Island) HasFertility(f terrain.Fertility) bool {
	for _, have := range i.fertilities {
		if have == f {
			return true
		}
	}
	return false
}

// UnlockRequirements lists research ids that open the island
func (i *Island) UnlockRequirements() []string {
	return append([]string(nil), i.unlockRequirements...)
}

// AvailableSlots counts empty slots
func (i *Island) AvailableSlots() int {
	n := 0
	for _, s := range i.slots {
		if s.IsEmpty() {
			n++
		}
	}
	return n
}

// FirstEmptySlot returns the lowest empty slot index
func (i *Island) FirstEmptySlot() (int, bool) {
	for idx, s := range i.slots {
		if s.IsEmpty() {
			return idx, true
		}
	}
	return -1, false
}

// Place puts b into an empty slot
func (i *Island) Place(index int, b *building.Instance) error {
	if !i.InRange(index) {
		return shared.NewValidationError("slot", fmt.Sprintf("slot %d out of range 0..%d", index, len(i.slots)-1))
	}
	if !i.slots[index].IsEmpty() {
		return shared.NewDomainError(fmt.Sprintf("slot %d on %s is occupied", index, i.name))
	}
	i.slots[index] = OccupiedSlot(b)
	return nil
}

// Clear empties the slot at index and returns its former occupant
func (i *Island) Clear(index int) (*building.Instance, bool) {
	if !i.InRange(index) {
		return nil, false
	}
	b, ok := i.slots[index].Building()
	if !ok {
		return nil, false
	}
	i.slots[index] = EmptySlot()
	return b, true
}

// FindBuilding returns the slot index and instance for id
func (i *Island) FindBuilding(id building.ID) (int, *building.Instance, bool) {
	for idx, s := range i.slots {
		if b, ok := s.Building(); ok && b.ID() == id {
			return idx, b, true
		}
	}
	return -1, nil, false
}

// Occupant pairs a building with the slot that holds it
type Occupant struct {
	SlotIndex int
	Building  *building.Instance
}

// Occupants returns the buildings in slot order
func (i *Island) Occupants() []Occupant {
	var out []Occupant
	for idx, s := range i.slots {
		if b, ok := s.Building(); ok {
			out = append(out, Occupant{SlotIndex: idx, Building: b})
		}
	}
	return out
}

// WorkersAvailable is the workforce supplied by housing on the island.
// Buildings whose blueprint is missing from the catalog supply nothing.
func (i *Island) WorkersAvailable(catalog building.Catalog) int {
	total := 0
	for _, o := range i.Occupants() {
		if bp, ok := catalog.Blueprint(o.Building.BlueprintID()); ok {
			total += bp.ProvidesWorkers()
		}
	}
	return total
}

// TotalWorkersAssigned sums assigned workers over all buildings
func (i *Island) TotalWorkersAssigned() int {
	total := 0
	for _, o := range i.Occupants() {
		total += o.Building.AssignedWorkers()
	}
	return total
}

// UnassignedWorkers is workforce not yet staffing a building
func (i *Island) UnassignedWorkers(catalog building.Catalog) int {
	return i.WorkersAvailable(catalog) - i.TotalWorkersAssigned()
}

func (i *Island) Clone() *Island {
	slots := make([]Slot, len(i.slots))
	for idx, s := range i.slots {
		slots[idx] = s.clone()
	}
	return &Island{
		id:                 i.id,
		name:               i.name,
		ledger:             i.ledger.Clone(),
		slots:              slots,
		fertilities:        i.Fertilities(),
		unlockRequirements: i.UnlockRequirements(),
	}
}
