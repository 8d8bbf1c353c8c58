package snapshot

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/production"
	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
	"github.com/islandepoch/islandepoch-go/internal/domain/terrain"
)

func newState(t *testing.T) *game.State {
	t.Helper()
	clock := shared.NewMockClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	state, err := game.NewGame(shared.NewSequenceIDGenerator("codec"), clock, building.DefaultCatalog())
	require.NoError(t, err)
	return state
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	state := newState(t)
	engine := production.NewEngine(building.DefaultCatalog(), nil)
	engine.AdvanceTick(state, 1500*time.Millisecond)
	require.NoError(t, state.RecordResearch(game.CompletedResearch{
		ID: "r-1", ResearchID: "exploration", CompletedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
	}))

	data, err := Encode(state.Snapshot())
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, decoded.Version)
	assert.False(t, decoded.Migrated())
	restored, err := game.Restore(decoded.Snapshot, building.DefaultCatalog())
	require.NoError(t, err)
	assert.Equal(t, state.Snapshot(), restored.Snapshot())
}

func TestEncode_WritesNullForEmptySlots(t *testing.T) {
	data, err := Encode(newState(t).Snapshot())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, float64(CurrentVersion), doc["version"])
	islands := doc["islands"].([]any)
	slots := islands[0].(map[string]any)["slots"].([]any)
	require.Len(t, slots, 6)
	assert.NotNil(t, slots[0])
	assert.Nil(t, slots[1])
}

func TestDecode_CurrentWithShortSlotArrayIsCompacted(t *testing.T) {
	data, err := Encode(newState(t).Snapshot())
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	main := doc["islands"].([]any)[0].(map[string]any)
	main["slots"] = []any{nil, main["slots"].([]any)[0]}
	data, err = json.Marshal(doc)
	require.NoError(t, err)

	decoded, err := Decode(data)

	require.NoError(t, err)
	slots := decoded.Snapshot.Islands[0].Slots
	require.Len(t, slots, 6)
	require.NotNil(t, slots[0])
	assert.Equal(t, "tent", slots[0].BlueprintID)
	assert.Nil(t, slots[1])
}

func TestDecode_LegacyDenseBuildings(t *testing.T) {
	decoded, err := Decode(readFixture(t, "legacy_dense.json"))
	require.NoError(t, err)

	assert.True(t, decoded.Migrated())
	snap := decoded.Snapshot
	assert.Equal(t, int64(300), snap.Tick)
	assert.Equal(t, 300*time.Second, snap.Playtime)
	assert.Equal(t, 345, snap.Gold)
	assert.Equal(t, 1, snap.Epoch)
	require.Len(t, snap.Islands, 1)
	main := snap.Islands[0]
	assert.Equal(t, 14, main.Inventory[resource.Wheat])
	assert.Equal(t, 0, main.Inventory[resource.IronOre])
	require.Len(t, main.Slots, 6)
	assert.Equal(t, "farm", main.Slots[1].BlueprintID)
	assert.Equal(t, 0, main.Slots[1].AssignedWorkers)
	assert.Nil(t, main.Slots[3])
	assert.Empty(t, main.Fertilities)

	state, err := game.Restore(snap, building.DefaultCatalog())
	require.NoError(t, err)
	isl, _ := state.Island(0)
	assert.Equal(t, "1e2f3a4b-5c6d-4e7f-8a9b-0c1d2e3f4a5b", isl.ID().String())
	assert.Equal(t, 3, isl.AvailableSlots())
}

func TestDecode_LegacyOptionalSlotsWithMismatchedCount(t *testing.T) {
	decoded, err := Decode(readFixture(t, "legacy_optional_slots.json"))
	require.NoError(t, err)

	snap := decoded.Snapshot
	assert.Equal(t, 2, snap.Epoch)
	assert.Equal(t, 7200500*time.Millisecond, snap.Playtime)
	require.Len(t, snap.CompletedResearch, 1)
	assert.Equal(t, "exploration", snap.CompletedResearch[0].ResearchID)

	isl := snap.Islands[0]
	assert.Equal(t, []terrain.Fertility{terrain.IronDeposits, terrain.Forest}, isl.Fertilities)
	assert.Equal(t, []string{"exploration"}, isl.UnlockRequirements)
	require.Len(t, isl.Slots, 3)
	assert.Equal(t, "tent", isl.Slots[0].BlueprintID)
	assert.Equal(t, "mine", isl.Slots[1].BlueprintID)
	assert.Equal(t, 1, isl.Slots[1].AssignedWorkers)
	assert.Nil(t, isl.Slots[2])
	assert.Equal(t, 0, decoded.DroppedBuildings)

	_, err = game.Restore(snap, building.DefaultCatalog())
	assert.NoError(t, err)
}

func TestDecode_LegacyOverflowDropsTrailingBuildings(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(readFixture(t, "legacy_dense.json"), &doc))
	doc["islands"].([]any)[0].(map[string]any)["maxSlots"] = 2
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	decoded, err := Decode(data)

	require.NoError(t, err)
	assert.Len(t, decoded.Snapshot.Islands[0].Slots, 2)
	assert.Equal(t, 1, decoded.DroppedBuildings)
}

func TestDecode_LegacyInventoryForms(t *testing.T) {
	flat, err := decodeLegacyInventory(json.RawMessage(`["wheat", 3, "bread", 1]`))
	require.NoError(t, err)
	assert.Equal(t, map[resource.Kind]int{resource.Wheat: 3, resource.Bread: 1}, flat)

	keyed, err := decodeLegacyInventory(json.RawMessage(`{"wood": 2}`))
	require.NoError(t, err)
	assert.Equal(t, map[resource.Kind]int{resource.Wood: 2}, keyed)

	_, err = decodeLegacyInventory(json.RawMessage(`["wheat"]`))
	assert.Error(t, err)
	_, err = decodeLegacyInventory(json.RawMessage(`{"gems": 2}`))
	assert.Error(t, err)
}

func TestDecode_Rejections(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "not json", data: `{"tick":`, want: ErrUnreadable},
		{name: "empty object", data: `{}`, want: ErrUnreadable},
		{name: "future version", data: `{"version": 3}`, want: ErrUnsupportedVersion},
		{name: "current with unknown field", data: `{"version": 2, "tick": 0, "bonus": 1}`, want: ErrUnreadable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestDecode_CurrentSchemaRejectsNegativeGold(t *testing.T) {
	data, err := Encode(newState(t).Snapshot())
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	doc["gold"] = -5
	data, err = json.Marshal(doc)
	require.NoError(t, err)

	_, err = Decode(data)

	assert.True(t, errors.Is(err, ErrUnreadable))
}

func TestFitSlots(t *testing.T) {
	a := &game.BuildingSnapshot{ID: "a"}
	b := &game.BuildingSnapshot{ID: "b"}

	same, dropped := fitSlots([]*game.BuildingSnapshot{nil, a, b}, 3)
	assert.Equal(t, []*game.BuildingSnapshot{nil, a, b}, same)
	assert.Zero(t, dropped)

	grown, _ := fitSlots([]*game.BuildingSnapshot{nil, a}, 4)
	assert.Equal(t, []*game.BuildingSnapshot{a, nil, nil, nil}, grown)

	shrunk, dropped := fitSlots([]*game.BuildingSnapshot{a, nil, b, nil}, 1)
	assert.Equal(t, []*game.BuildingSnapshot{a}, shrunk)
	assert.Equal(t, 1, dropped)
}
