package construction

import (
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

// Manager validates and applies construction and staffing commands.
// It keeps no reference to any game state between calls.
type Manager struct {
	catalog building.Catalog
	ids     shared.IDGenerator
	policy  island.UnlockPolicy
}

func NewManager(catalog building.Catalog, ids shared.IDGenerator, policy island.UnlockPolicy) *Manager {
	if policy == "" {
		policy = island.UnlockOpen
	}
	return &Manager{catalog: catalog, ids: ids, policy: policy}
}

// Build places a new unstaffed building. With slotIndex nil the lowest empty slot is used.
//
// Checks run in a fixed order and the first failure is returned: island, blueprint,
// island lock, epoch, terrain, gold, slot. Nothing is mutated unless every check passes.
func (m *Manager) Build(state *game.State, blueprintID building.BlueprintID, islandIndex int, slotIndex *int) (building.ID, error) {
	isl, ok := state.Island(islandIndex)
	if !ok {
		return building.ID{}, newBuildError(BuildingNotFound, fmt.Sprintf("island %d does not exist", islandIndex))
	}

	bp, ok := m.catalog.Blueprint(blueprintID)
	if !ok {
		return building.ID{}, newBuildError(UnknownBlueprint, fmt.Sprintf("unknown blueprint %q", blueprintID))
	}

	if !m.policy.IsUnlocked(isl, state) {
		return building.ID{}, newBuildError(IslandLocked, fmt.Sprintf("%s is locked until %v is researched", isl.Name(), isl.UnlockRequirements()))
	}

	if !state.Epoch().IsBuildingAvailable(bp) {
		return building.ID{}, newBuildError(BlueprintLocked, fmt.Sprintf("%s unlocks in epoch %d, current epoch is %d", bp.Name(), bp.Epoch(), state.Epoch().Current()))
	}

	if fertility, required := bp.RequiredFertility(); required && !isl.HasFertility(fertility) {
		return building.ID{}, newBuildError(TerrainMismatch, fmt.Sprintf("%s needs %s terrain, which %s lacks", bp.Name(), fertility.DisplayName(), isl.Name()))
	}

	if state.Gold() < bp.GoldCost() {
		return building.ID{}, newInsufficientGoldError(bp.GoldCost(), state.Gold())
	}

	target, err := resolveSlot(isl, slotIndex)
	if err != nil {
		return building.ID{}, err
	}

	if err := state.DebitGold(bp.GoldCost()); err != nil {
		return building.ID{}, err
	}
	instance := building.NewInstance(building.NewID(m.ids.NewID()), bp.ID())
	if err := isl.Place(target, instance); err != nil {
		return building.ID{}, err
	}

	return instance.ID(), nil
}

func resolveSlot(isl *island.Island, slotIndex *int) (int, error) {
	if slotIndex == nil {
		idx, ok := isl.FirstEmptySlot()
		if !ok {
			return -1, newBuildError(NoSlots, fmt.Sprintf("%s has no free slot", isl.Name()))
		}
		return idx, nil
	}

	slot, ok := isl.Slot(*slotIndex)
	if !ok {
		return -1, newBuildError(InvalidSlot, fmt.Sprintf("slot %d out of range 0..%d", *slotIndex, isl.MaxSlots()-1))
	}
	if !slot.IsEmpty() {
		return -1, newBuildError(NoSlots, fmt.Sprintf("slot %d on %s is occupied", *slotIndex, isl.Name()))
	}
	return *slotIndex, nil
}

// Demolish empties the slot holding buildingID and refunds half the blueprint cost, rounded down.
// Housing cannot be removed while the remaining workforce would not cover assigned workers.
func (m *Manager) Demolish(state *game.State, buildingID building.ID, islandIndex int) (int, error) {
	isl, ok := state.Island(islandIndex)
	if !ok {
		return 0, newBuildError(BuildingNotFound, fmt.Sprintf("island %d does not exist", islandIndex))
	}

	slotIndex, instance, ok := isl.FindBuilding(buildingID)
	if !ok {
		return 0, newBuildError(BuildingNotFound, fmt.Sprintf("building %s not found on %s", buildingID, isl.Name()))
	}

	refund := 0
	if bp, known := m.catalog.Blueprint(instance.BlueprintID()); known {
		remainingWorkforce := isl.WorkersAvailable(m.catalog) - bp.ProvidesWorkers()
		remainingAssigned := isl.TotalWorkersAssigned() - instance.AssignedWorkers()
		if bp.IsHousing() && remainingWorkforce < remainingAssigned {
			return 0, newBuildError(WorkersInUse, fmt.Sprintf("removing %s leaves %d workers for %d assigned", bp.Name(), remainingWorkforce, remainingAssigned))
		}
		refund = bp.Refund()
	}

	isl.Clear(slotIndex)
	if err := state.CreditGold(refund); err != nil {
		return 0, err
	}
	return refund, nil
}

// AssignWorker moves one unassigned worker into buildingID
func (m *Manager) AssignWorker(state *game.State, buildingID building.ID, islandIndex int) error {
	isl, instance, bp, err := m.locate(state, buildingID, islandIndex)
	if err != nil {
		return err
	}

	if instance.AssignedWorkers() >= bp.Workers() {
		return newWorkerAssignmentError(BuildingFull, fmt.Sprintf("%s already has %d of %d workers", bp.Name(), instance.AssignedWorkers(), bp.Workers()))
	}
	if isl.UnassignedWorkers(m.catalog) <= 0 {
		return newWorkerAssignmentError(NoWorkersAvailable, fmt.Sprintf("%s has no unassigned workers", isl.Name()))
	}

	instance.AssignWorker(bp.Workers())
	return nil
}

// UnassignWorker returns one worker from buildingID to the island pool
func (m *Manager) UnassignWorker(state *game.State, buildingID building.ID, islandIndex int) error {
	_, instance, bp, err := m.locate(state, buildingID, islandIndex)
	if err != nil {
		return err
	}

	if !instance.UnassignWorker() {
		return newWorkerAssignmentError(NoWorkersAssigned, fmt.Sprintf("%s has no workers assigned", bp.Name()))
	}
	return nil
}

func (m *Manager) locate(state *game.State, buildingID building.ID, islandIndex int) (*island.Island, *building.Instance, *building.Blueprint, error) {
	isl, ok := state.Island(islandIndex)
	if !ok {
		return nil, nil, nil, newWorkerAssignmentError(InvalidIsland, fmt.Sprintf("island %d does not exist", islandIndex))
	}
	_, instance, ok := isl.FindBuilding(buildingID)
	if !ok {
		return nil, nil, nil, newWorkerAssignmentError(AssignBuildingMissing, fmt.Sprintf("building %s not found on %s", buildingID, isl.Name()))
	}
	bp, ok := m.catalog.Blueprint(instance.BlueprintID())
	if !ok {
		return nil, nil, nil, newWorkerAssignmentError(AssignBuildingMissing, fmt.Sprintf("building %s has unknown blueprint %q", buildingID, instance.BlueprintID()))
	}
	return isl, instance, bp, nil
}

// BuildOption describes whether a blueprint can go onto an island right now
type BuildOption struct {
	Blueprint      *building.Blueprint
	EpochUnlocked  bool
	TerrainMatches bool
	Affordable     bool
	IslandUnlocked bool
	HasFreeSlot    bool
}

// Buildable reports whether every check passes
func (o BuildOption) Buildable() bool {
	return o.EpochUnlocked && o.TerrainMatches && o.Affordable && o.IslandUnlocked && o.HasFreeSlot
}

// Options evaluates every catalog blueprint against an island
func (m *Manager) Options(state *game.State, islandIndex int) ([]BuildOption, error) {
	isl, ok := state.Island(islandIndex)
	if !ok {
		return nil, newBuildError(BuildingNotFound, fmt.Sprintf("island %d does not exist", islandIndex))
	}
	unlocked := m.policy.IsUnlocked(isl, state)
	free := isl.AvailableSlots() > 0

	var options []BuildOption
	for _, bp := range m.catalog.Blueprints() {
		fertility, required := bp.RequiredFertility()
		options = append(options, BuildOption{
			Blueprint:      bp,
			EpochUnlocked:  state.Epoch().IsBuildingAvailable(bp),
			TerrainMatches: !required || isl.HasFertility(fertility),
			Affordable:     state.Gold() >= bp.GoldCost(),
			IslandUnlocked: unlocked,
			HasFreeSlot:    free,
		})
	}
	return options, nil
}
