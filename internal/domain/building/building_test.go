package building

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
	"github.com/islandepoch/islandepoch-go/internal/domain/terrain"
)

func TestNewBlueprint_Validation(t *testing.T) {
	tests := []struct {
		name string
		spec BlueprintSpec
	}{
		{"missing id", BlueprintSpec{Name: "X", Epoch: 1}},
		{"missing name", BlueprintSpec{ID: "x", Epoch: 1}},
		{"negative cost", BlueprintSpec{ID: "x", Name: "X", GoldCost: -1, Epoch: 1}},
		{"requires and provides", BlueprintSpec{ID: "x", Name: "X", Workers: 1, ProvidesWorkers: 1, Epoch: 1}},
		{"epoch zero", BlueprintSpec{ID: "x", Name: "X"}},
		{"unknown fertility", BlueprintSpec{ID: "x", Name: "X", Epoch: 1, RequiredFertility: "swamp"}},
		{"unknown resource", BlueprintSpec{ID: "x", Name: "X", Epoch: 1, Outputs: map[resource.Kind]int{"gold": 1}}},
		{"zero output", BlueprintSpec{ID: "x", Name: "X", Epoch: 1, Outputs: map[resource.Kind]int{resource.Wheat: 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBlueprint(tt.spec)
			assert.Error(t, err)
		})
	}
}

func TestBlueprint_AmountsAreCopies(t *testing.T) {
	bp := MustNewBlueprint(BlueprintSpec{
		ID: "farm", Name: "Farm", Workers: 2, Epoch: 1,
		Outputs: map[resource.Kind]int{resource.Wheat: 2},
	})

	out := bp.Outputs()
	out[resource.Wheat] = 99

	assert.Equal(t, 2, bp.Outputs()[resource.Wheat])
}

func TestBlueprint_RefundRoundsDown(t *testing.T) {
	bp := MustNewBlueprint(BlueprintSpec{ID: "odd", Name: "Odd", GoldCost: 25, Epoch: 1})

	assert.Equal(t, 12, bp.Refund())
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	farm, ok := c.Blueprint(Farm)
	require.True(t, ok)
	assert.Equal(t, 50, farm.GoldCost())
	assert.Equal(t, 2, farm.Workers())
	fertility, required := farm.RequiredFertility()
	assert.True(t, required)
	assert.Equal(t, terrain.Grainland, fertility)

	tent, ok := c.Blueprint(Tent)
	require.True(t, ok)
	assert.True(t, tent.IsHousing())
	assert.Equal(t, 0, tent.Workers())

	_, ok = c.Blueprint("shipyard")
	assert.False(t, ok)
	assert.Len(t, c.Blueprints(), len(DefaultBlueprintSpecs()))
}

func TestNewStaticCatalog_RejectsDuplicates(t *testing.T) {
	bp := MustNewBlueprint(BlueprintSpec{ID: "a", Name: "A", Epoch: 1})

	_, err := NewStaticCatalog(bp, bp)

	assert.Error(t, err)
}

func TestInstance_WorkerBounds(t *testing.T) {
	inst := NewInstance(NewID(uuid.New()), Farm)
	assert.Equal(t, 0, inst.AssignedWorkers())
	assert.Equal(t, DefaultLevel, inst.Level())

	assert.False(t, inst.UnassignWorker())
	assert.True(t, inst.AssignWorker(2))
	assert.True(t, inst.AssignWorker(2))
	assert.False(t, inst.AssignWorker(2))
	assert.Equal(t, 2, inst.AssignedWorkers())
}

func TestParseID(t *testing.T) {
	raw := uuid.New()

	id, err := ParseID(raw.String())
	require.NoError(t, err)
	assert.Equal(t, raw.String(), id.String())

	_, err = ParseID("not-a-uuid")
	assert.Error(t, err)

	_, err = ParseID("")
	assert.Error(t, err)
}

func TestReconstructInstance_Validation(t *testing.T) {
	id := NewID(uuid.New())

	_, err := ReconstructInstance(id, Farm, -1, 1)
	assert.Error(t, err)

	_, err = ReconstructInstance(id, Farm, 0, 0)
	assert.Error(t, err)

	inst, err := ReconstructInstance(id, Farm, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, inst.AssignedWorkers())
}
