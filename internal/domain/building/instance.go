package building

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

// ID is the stable identity of a constructed building
type ID struct {
	value string
}

// NewID wraps a generated UUID
func NewID(id uuid.UUID) ID {
	return ID{value: id.String()}
}

// ParseID creates an ID from an existing UUID string
func ParseID(s string) (ID, error) {
	if s == "" {
		return ID{}, fmt.Errorf("building_id cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("invalid building_id format: %w", err)
	}
	return ID{value: parsed.String()}, nil
}

// MustParseID panics if s is not a valid building id
func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (i ID) String() string {
	return i.value
}

func (i ID) IsZero() bool {
	return i.value == ""
}

// DefaultLevel is the only level buildings currently reach
const DefaultLevel = 1

// Instance is a building standing in an island slot
type Instance struct {
	id              ID
	blueprintID     BlueprintID
	assignedWorkers int
	level           int
}

// NewInstance creates an unstaffed level one building
func NewInstance(id ID, blueprintID BlueprintID) *Instance {
	return &Instance{
		id:          id,
		blueprintID: blueprintID,
		level:       DefaultLevel,
	}
}

// ReconstructInstance rebuilds a building from persisted values
func ReconstructInstance(id ID, blueprintID BlueprintID, assignedWorkers, level int) (*Instance, error) {
	if id.IsZero() {
		return nil, shared.NewValidationError("building_id", "cannot be empty")
	}
	if blueprintID == "" {
		return nil, shared.NewValidationError("blueprint_id", "cannot be empty")
	}
	if assignedWorkers < 0 {
		return nil, shared.NewValidationError("assigned_workers", fmt.Sprintf("cannot be negative, got %d", assignedWorkers))
	}
	if level < 1 {
		return nil, shared.NewValidationError("level", fmt.Sprintf("must be at least 1, got %d", level))
	}
	return &Instance{
		id:              id,
		blueprintID:     blueprintID,
		assignedWorkers: assignedWorkers,
		level:           level,
	}, nil
}

func (b *Instance) ID() ID {
	return b.id
}

func (b *Instance) BlueprintID() BlueprintID {
	return b.blueprintID
}

func (b *Instance) AssignedWorkers() int {
	return b.assignedWorkers
}

func (b *Instance) Level() int {
	return b.level
}

// AssignWorker adds one worker unless capacity is reached
func (b *Instance) AssignWorker(capacity int) bool {
	if b.assignedWorkers >= capacity {
		return false
	}
	b.assignedWorkers++
	return true
}

// UnassignWorker removes one worker unless none are assigned
func (b *Instance) UnassignWorker() bool {
	if b.assignedWorkers == 0 {
		return false
	}
	b.assignedWorkers--
	return true
}

func (b *Instance) Clone() *Instance {
	c := *b
	return &c
}
