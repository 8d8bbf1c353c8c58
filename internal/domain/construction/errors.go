package construction

import (
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

// BuildErrorKind classifies a rejected build or demolish
type BuildErrorKind string

const (
	BuildingNotFound BuildErrorKind = "BUILDING_NOT_FOUND"
	InsufficientGold BuildErrorKind = "INSUFFICIENT_GOLD"
	NoSlots          BuildErrorKind = "NO_SLOTS"
	UnknownBlueprint BuildErrorKind = "UNKNOWN_BLUEPRINT"
	BlueprintLocked  BuildErrorKind = "BLUEPRINT_LOCKED"
	TerrainMismatch  BuildErrorKind = "TERRAIN_MISMATCH"
	IslandLocked     BuildErrorKind = "ISLAND_LOCKED"
	InvalidSlot      BuildErrorKind = "INVALID_SLOT"
	WorkersInUse     BuildErrorKind = "WORKERS_IN_USE"
)

// BuildError is returned by Build and Demolish. Required and Available are set for INSUFFICIENT_GOLD.
type BuildError struct {
	*shared.DomainError
	Kind      BuildErrorKind
	Required  int
	Available int
}

func newBuildError(kind BuildErrorKind, message string) *BuildError {
	return &BuildError{DomainError: shared.NewDomainError(message), Kind: kind}
}

func newInsufficientGoldError(required, available int) *BuildError {
	err := newBuildError(InsufficientGold, fmt.Sprintf("insufficient gold: need %d, have %d", required, available))
	err.Required = required
	err.Available = available
	return err
}

// KindName returns the kind as a string
func (e *BuildError) KindName() string {
	return string(e.Kind)
}

// Is matches any BuildError of the same kind, so errors.Is(err, ErrNoSlots) works
func (e *BuildError) Is(target error) bool {
	t, ok := target.(*BuildError)
	return ok && t.Kind == e.Kind
}

var (
	ErrBuildingNotFound = newBuildError(BuildingNotFound, "building not found")
	ErrInsufficientGold = newBuildError(InsufficientGold, "insufficient gold")
	ErrNoSlots          = newBuildError(NoSlots, "no free slot")
	ErrUnknownBlueprint = newBuildError(UnknownBlueprint, "unknown blueprint")
	ErrBlueprintLocked  = newBuildError(BlueprintLocked, "blueprint not available in this epoch")
	ErrTerrainMismatch  = newBuildError(TerrainMismatch, "island lacks the required terrain")
	ErrIslandLocked     = newBuildError(IslandLocked, "island is locked")
	ErrInvalidSlot      = newBuildError(InvalidSlot, "slot out of range")
	ErrWorkersInUse     = newBuildError(WorkersInUse, "workers housed here are still assigned")
)

// WorkerAssignmentErrorKind classifies a rejected staffing change
type WorkerAssignmentErrorKind string

const (
	InvalidIsland         WorkerAssignmentErrorKind = "INVALID_ISLAND"
	AssignBuildingMissing WorkerAssignmentErrorKind = "BUILDING_NOT_FOUND"
	BuildingFull          WorkerAssignmentErrorKind = "BUILDING_FULL"
	NoWorkersAvailable    WorkerAssignmentErrorKind = "NO_WORKERS_AVAILABLE"
	NoWorkersAssigned     WorkerAssignmentErrorKind = "NO_WORKERS_ASSIGNED"
)

type WorkerAssignmentError struct {
	*shared.DomainError
	Kind WorkerAssignmentErrorKind
}

func newWorkerAssignmentError(kind WorkerAssignmentErrorKind, message string) *WorkerAssignmentError {
	return &WorkerAssignmentError{DomainError: shared.NewDomainError(message), Kind: kind}
}

func (e *WorkerAssignmentError) KindName() string {
	return string(e.Kind)
}

func (e *WorkerAssignmentError) Is(target error) bool {
	t, ok := target.(*WorkerAssignmentError)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidIsland         = newWorkerAssignmentError(InvalidIsland, "invalid island")
	ErrAssignBuildingMissing = newWorkerAssignmentError(AssignBuildingMissing, "building not found")
	ErrBuildingFull          = newWorkerAssignmentError(BuildingFull, "building is fully staffed")
	ErrNoWorkersAvailable    = newWorkerAssignmentError(NoWorkersAvailable, "no unassigned workers on island")
	ErrNoWorkersAssigned     = newWorkerAssignmentError(NoWorkersAssigned, "building has no workers assigned")
)
