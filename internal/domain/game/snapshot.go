package game

import (
	"fmt"
	"time"

	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/epoch"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
	"github.com/islandepoch/islandepoch-go/internal/domain/terrain"
)

// Snapshot is a plain copy of every field of a State, suitable for encoding
type Snapshot struct {
	Tick              int64
	Playtime          time.Duration
	StartTime         time.Time
	LastUpdateTime    time.Time
	Gold              int
	Epoch             int
	Islands           []IslandSnapshot
	CompletedResearch []CompletedResearch
}

// IslandSnapshot holds one island. Slots has one entry per slot; nil marks an empty slot.
type IslandSnapshot struct {
	ID                 string
	Name               string
	Inventory          map[resource.Kind]int
	Slots              []*BuildingSnapshot
	Fertilities        []terrain.Fertility
	UnlockRequirements []string
}

type BuildingSnapshot struct {
	ID              string
	BlueprintID     string
	AssignedWorkers int
	Level           int
}

// Snapshot copies the state into plain values
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:              s.tick,
		Playtime:          s.playtime,
		StartTime:         s.startTime,
		LastUpdateTime:    s.lastUpdateTime,
		Gold:              s.gold,
		Epoch:             s.epoch.Current(),
		Islands:           make([]IslandSnapshot, 0, len(s.islands)),
		CompletedResearch: s.CompletedResearch(),
	}

	for _, isl := range s.islands {
		is := IslandSnapshot{
			ID:                 isl.ID().String(),
			Name:               isl.Name(),
			Inventory:          isl.Ledger().Quantities(),
			Slots:              make([]*BuildingSnapshot, isl.MaxSlots()),
			Fertilities:        isl.Fertilities(),
			UnlockRequirements: isl.UnlockRequirements(),
		}
		for _, o := range isl.Occupants() {
			is.Slots[o.SlotIndex] = &BuildingSnapshot{
				ID:              o.Building.ID().String(),
				BlueprintID:     o.Building.BlueprintID().String(),
				AssignedWorkers: o.Building.AssignedWorkers(),
				Level:           o.Building.Level(),
			}
		}
		snap.Islands = append(snap.Islands, is)
	}

	return snap
}

// Restore rebuilds a State from a snapshot, checking every aggregate invariant against catalog
func Restore(snap Snapshot, catalog building.Catalog) (*State, error) {
	if snap.Tick < 0 {
		return nil, shared.NewValidationError("tick", fmt.Sprintf("cannot be negative, got %d", snap.Tick))
	}
	if snap.Playtime < 0 {
		return nil, shared.NewValidationError("playtime", "cannot be negative")
	}
	if snap.Gold < 0 {
		return nil, shared.NewValidationError("gold", fmt.Sprintf("cannot be negative, got %d", snap.Gold))
	}
	if len(snap.Islands) == 0 {
		return nil, shared.NewValidationError("islands", "a game needs at least one island")
	}

	tracker, err := epoch.ReconstructTracker(snap.Epoch)
	if err != nil {
		return nil, err
	}

	state := &State{
		tick:           snap.Tick,
		playtime:       snap.Playtime,
		startTime:      snap.StartTime,
		lastUpdateTime: snap.LastUpdateTime,
		gold:           snap.Gold,
		epoch:          tracker,
	}

	buildingIDs := make(map[building.ID]bool)
	for i, is := range snap.Islands {
		isl, err := restoreIsland(is, catalog, buildingIDs)
		if err != nil {
			return nil, fmt.Errorf("island %d: %w", i, err)
		}
		state.islands = append(state.islands, isl)
	}

	for _, rec := range snap.CompletedResearch {
		if err := state.RecordResearch(rec); err != nil {
			return nil, fmt.Errorf("completed research: %w", err)
		}
	}

	return state, nil
}

func restoreIsland(is IslandSnapshot, catalog building.Catalog, seen map[building.ID]bool) (*island.Island, error) {
	id, err := island.ParseID(is.ID)
	if err != nil {
		return nil, err
	}
	ledger, err := resource.ReconstructLedger(is.Inventory)
	if err != nil {
		return nil, err
	}

	slots := make([]island.Slot, len(is.Slots))
	for idx, bs := range is.Slots {
		if bs == nil {
			continue
		}
		b, err := restoreBuilding(*bs, catalog)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", idx, err)
		}
		if seen[b.ID()] {
			return nil, shared.NewInvariantViolationError("building", fmt.Sprintf("id %s appears more than once", b.ID()))
		}
		seen[b.ID()] = true
		slots[idx] = island.OccupiedSlot(b)
	}

	isl, err := island.ReconstructIsland(id, is.Name, ledger, slots, is.Fertilities, is.UnlockRequirements)
	if err != nil {
		return nil, err
	}
	if isl.UnassignedWorkers(catalog) < 0 {
		return nil, shared.NewInvariantViolationError("island", fmt.Sprintf("%s assigns %d workers but houses %d",
			isl.Name(), isl.TotalWorkersAssigned(), isl.WorkersAvailable(catalog)))
	}
	return isl, nil
}

func restoreBuilding(bs BuildingSnapshot, catalog building.Catalog) (*building.Instance, error) {
	id, err := building.ParseID(bs.ID)
	if err != nil {
		return nil, err
	}
	bp, ok := catalog.Blueprint(building.BlueprintID(bs.BlueprintID))
	if !ok {
		return nil, shared.NewValidationError("blueprint_id", fmt.Sprintf("unknown blueprint %q", bs.BlueprintID))
	}
	if bs.AssignedWorkers > bp.Workers() {
		return nil, shared.NewInvariantViolationError("building", fmt.Sprintf("%s has %d workers, capacity %d", id, bs.AssignedWorkers, bp.Workers()))
	}
	return building.ReconstructInstance(id, bp.ID(), bs.AssignedWorkers, bs.Level)
}

// Clone returns an independent deep copy
func (s *State) Clone() *State {
	islands := make([]*island.Island, len(s.islands))
	for i, isl := range s.islands {
		islands[i] = isl.Clone()
	}
	return &State{
		tick:              s.tick,
		playtime:          s.playtime,
		startTime:         s.startTime,
		lastUpdateTime:    s.lastUpdateTime,
		gold:              s.gold,
		islands:           islands,
		epoch:             s.epoch.Clone(),
		completedResearch: s.CompletedResearch(),
	}
}
