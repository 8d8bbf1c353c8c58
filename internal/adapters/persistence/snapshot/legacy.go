package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/islandepoch/islandepoch-go/internal/domain/epoch"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
	"github.com/islandepoch/islandepoch-go/internal/domain/terrain"
)

// LegacyVersion identifies saves written before the slot array and version field existed.
//
// Shape: top-level tick, totalGameTime (seconds), gameStartTime, lastUpdateTime, gold and
// islands are required; epochTracker.currentEpoch and completedResearches are optional.
// Each island carries id, name, inventory, maxSlots and buildings, where buildings is
// either a dense array or an array with nulls, and each building is
// {id, type: {id, ...} | "id", level?, assignedWorkers?}. Inventories may be objects or
// flat [kind, qty, kind, qty] arrays. fertilities and unlockRequirements are optional.
const LegacyVersion = 1

type legacyDocument struct {
	Tick                int64              `json:"tick"`
	TotalGameTime       float64            `json:"totalGameTime"`
	GameStartTime       time.Time          `json:"gameStartTime"`
	LastUpdateTime      time.Time          `json:"lastUpdateTime"`
	Gold                int                `json:"gold"`
	Islands             []legacyIsland     `json:"islands"`
	EpochTracker        *legacyEpoch       `json:"epochTracker"`
	CompletedResearches []researchDocument `json:"completedResearches"`
}

type legacyEpoch struct {
	CurrentEpoch int `json:"currentEpoch"`
}

type legacyIsland struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Inventory          json.RawMessage `json:"inventory"`
	MaxSlots           int             `json:"maxSlots"`
	Buildings          json.RawMessage `json:"buildings"`
	Fertilities        json.RawMessage `json:"fertilities"`
	UnlockRequirements json.RawMessage `json:"unlockRequirements"`
}

type legacyBuilding struct {
	ID              string          `json:"id"`
	Type            json.RawMessage `json:"type"`
	Level           *int            `json:"level"`
	AssignedWorkers *int            `json:"assignedWorkers"`
}

var legacyRequiredKeys = []string{"tick", "totalGameTime", "gameStartTime", "lastUpdateTime", "gold", "islands"}

var legacyIslandRequiredKeys = []string{"id", "name", "inventory", "maxSlots"}

func decodeLegacy(data []byte) (game.Snapshot, int, error) {
	if err := requireKeys(data, legacyRequiredKeys); err != nil {
		return game.Snapshot{}, 0, err
	}

	var doc legacyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return game.Snapshot{}, 0, err
	}

	snap := game.Snapshot{
		Tick:           doc.Tick,
		Playtime:       secondsToDuration(doc.TotalGameTime),
		StartTime:      doc.GameStartTime,
		LastUpdateTime: doc.LastUpdateTime,
		Gold:           doc.Gold,
		Epoch:          epoch.MinEpoch,
	}
	if doc.EpochTracker != nil && doc.EpochTracker.CurrentEpoch != 0 {
		snap.Epoch = doc.EpochTracker.CurrentEpoch
	}

	var raw struct {
		Islands []json.RawMessage `json:"islands"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return game.Snapshot{}, 0, err
	}

	dropped := 0
	for i, li := range doc.Islands {
		if err := requireKeys(raw.Islands[i], legacyIslandRequiredKeys); err != nil {
			return game.Snapshot{}, 0, fmt.Errorf("island %d: %w", i, err)
		}
		is, lost, err := li.migrate()
		if err != nil {
			return game.Snapshot{}, 0, fmt.Errorf("island %q: %w", li.Name, err)
		}
		dropped += lost
		snap.Islands = append(snap.Islands, is)
	}

	for _, r := range doc.CompletedResearches {
		snap.CompletedResearch = append(snap.CompletedResearch, game.CompletedResearch{
			ID:          r.ID,
			ResearchID:  r.ResearchID,
			CompletedAt: r.CompletedAt,
		})
	}

	return snap, dropped, nil
}

func (li legacyIsland) migrate() (game.IslandSnapshot, int, error) {
	inventory, err := decodeLegacyInventory(li.Inventory)
	if err != nil {
		return game.IslandSnapshot{}, 0, err
	}

	// unreadable optional fields fall back to empty
	var fertilityNames []string
	_ = json.Unmarshal(li.Fertilities, &fertilityNames)
	fertilities := make([]terrain.Fertility, 0, len(fertilityNames))
	for _, name := range fertilityNames {
		if f, err := terrain.ParseFertility(name); err == nil {
			fertilities = append(fertilities, f)
		}
	}
	var unlock []string
	_ = json.Unmarshal(li.UnlockRequirements, &unlock)

	var entries []*game.BuildingSnapshot
	var buildings []*legacyBuilding
	if err := json.Unmarshal(li.Buildings, &buildings); err == nil {
		for _, b := range buildings {
			if b == nil {
				entries = append(entries, nil)
				continue
			}
			bs, err := b.migrate()
			if err != nil {
				return game.IslandSnapshot{}, 0, err
			}
			entries = append(entries, bs)
		}
	}
	slots, dropped := fitSlots(entries, li.MaxSlots)

	return game.IslandSnapshot{
		ID:                 li.ID,
		Name:               li.Name,
		Inventory:          inventory,
		Slots:              slots,
		Fertilities:        fertilities,
		UnlockRequirements: unlock,
	}, dropped, nil
}

func (b legacyBuilding) migrate() (*game.BuildingSnapshot, error) {
	if b.ID == "" {
		return nil, errors.New("building without id")
	}

	var blueprintID string
	if err := json.Unmarshal(b.Type, &blueprintID); err != nil {
		var typ struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(b.Type, &typ); err != nil {
			return nil, fmt.Errorf("building %s: unreadable type: %w", b.ID, err)
		}
		blueprintID = typ.ID
	}
	if blueprintID == "" {
		return nil, fmt.Errorf("building %s: missing type id", b.ID)
	}

	bs := &game.BuildingSnapshot{ID: b.ID, BlueprintID: blueprintID, Level: 1}
	if b.Level != nil {
		bs.Level = *b.Level
	}
	if b.AssignedWorkers != nil {
		bs.AssignedWorkers = *b.AssignedWorkers
	}
	return bs, nil
}

// decodeLegacyInventory accepts {"wheat": 3} or the flat ["wheat", 3] form
func decodeLegacyInventory(raw json.RawMessage) (map[resource.Kind]int, error) {
	var asMap map[string]int
	if err := json.Unmarshal(raw, &asMap); err == nil {
		return parseInventory(asMap)
	}

	var flat []json.RawMessage
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("unreadable inventory: %w", err)
	}
	if len(flat)%2 != 0 {
		return nil, fmt.Errorf("inventory has odd length %d", len(flat))
	}
	asMap = make(map[string]int, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		var name string
		var qty int
		if err := json.Unmarshal(flat[i], &name); err != nil {
			return nil, fmt.Errorf("inventory key %d: %w", i/2, err)
		}
		if err := json.Unmarshal(flat[i+1], &qty); err != nil {
			return nil, fmt.Errorf("inventory quantity for %s: %w", name, err)
		}
		asMap[name] = qty
	}
	return parseInventory(asMap)
}

func requireKeys(data []byte, keys []string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			return fmt.Errorf("missing key %q", k)
		}
	}
	return nil
}
