package snapshot

import (
	"fmt"
	"time"

	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
	"github.com/islandepoch/islandepoch-go/internal/domain/terrain"
)

// saveDocument is the current on-disk shape. Empty slots are encoded as null.
type saveDocument struct {
	Version           int                `json:"version"`
	Tick              int64              `json:"tick"`
	PlaytimeSeconds   float64            `json:"playtimeSeconds"`
	StartTime         time.Time          `json:"startTime"`
	LastUpdateTime    time.Time          `json:"lastUpdateTime"`
	Gold              int                `json:"gold"`
	Epoch             int                `json:"epoch"`
	Islands           []islandDocument   `json:"islands"`
	CompletedResearch []researchDocument `json:"completedResearch"`
}

type islandDocument struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Inventory          map[string]int      `json:"inventory"`
	MaxSlots           int                 `json:"maxSlots"`
	Slots              []*buildingDocument `json:"slots"`
	Fertilities        []string            `json:"fertilities"`
	UnlockRequirements []string            `json:"unlockRequirements"`
}

type buildingDocument struct {
	ID              string `json:"id"`
	BlueprintID     string `json:"blueprintId"`
	AssignedWorkers int    `json:"assignedWorkers"`
	Level           int    `json:"level"`
}

type researchDocument struct {
	ID          string    `json:"id"`
	ResearchID  string    `json:"researchId"`
	CompletedAt time.Time `json:"completedAt"`
}

func fromSnapshot(snap game.Snapshot) saveDocument {
	doc := saveDocument{
		Version:           CurrentVersion,
		Tick:              snap.Tick,
		PlaytimeSeconds:   snap.Playtime.Seconds(),
		StartTime:         snap.StartTime.UTC(),
		LastUpdateTime:    snap.LastUpdateTime.UTC(),
		Gold:              snap.Gold,
		Epoch:             snap.Epoch,
		Islands:           make([]islandDocument, 0, len(snap.Islands)),
		CompletedResearch: make([]researchDocument, 0, len(snap.CompletedResearch)),
	}

	for _, is := range snap.Islands {
		id := islandDocument{
			ID:                 is.ID,
			Name:               is.Name,
			Inventory:          make(map[string]int, len(is.Inventory)),
			MaxSlots:           len(is.Slots),
			Slots:              make([]*buildingDocument, len(is.Slots)),
			Fertilities:        make([]string, 0, len(is.Fertilities)),
			UnlockRequirements: append([]string{}, is.UnlockRequirements...),
		}
		for k, q := range is.Inventory {
			id.Inventory[string(k)] = q
		}
		for i, b := range is.Slots {
			if b == nil {
				continue
			}
			id.Slots[i] = &buildingDocument{
				ID:              b.ID,
				BlueprintID:     b.BlueprintID,
				AssignedWorkers: b.AssignedWorkers,
				Level:           b.Level,
			}
		}
		for _, f := range is.Fertilities {
			id.Fertilities = append(id.Fertilities, string(f))
		}
		doc.Islands = append(doc.Islands, id)
	}

	for _, r := range snap.CompletedResearch {
		doc.CompletedResearch = append(doc.CompletedResearch, researchDocument{
			ID:          r.ID,
			ResearchID:  r.ResearchID,
			CompletedAt: r.CompletedAt.UTC(),
		})
	}

	return doc
}

func (d saveDocument) toSnapshot() (game.Snapshot, int, error) {
	snap := game.Snapshot{
		Tick:           d.Tick,
		Playtime:       secondsToDuration(d.PlaytimeSeconds),
		StartTime:      d.StartTime,
		LastUpdateTime: d.LastUpdateTime,
		Gold:           d.Gold,
		Epoch:          d.Epoch,
	}

	dropped := 0
	for _, is := range d.Islands {
		inventory, err := parseInventory(is.Inventory)
		if err != nil {
			return game.Snapshot{}, 0, fmt.Errorf("island %q: %w", is.Name, err)
		}
		fertilities, err := parseFertilities(is.Fertilities)
		if err != nil {
			return game.Snapshot{}, 0, fmt.Errorf("island %q: %w", is.Name, err)
		}

		entries := make([]*game.BuildingSnapshot, len(is.Slots))
		for i, b := range is.Slots {
			if b == nil {
				continue
			}
			entries[i] = &game.BuildingSnapshot{
				ID:              b.ID,
				BlueprintID:     b.BlueprintID,
				AssignedWorkers: b.AssignedWorkers,
				Level:           b.Level,
			}
		}
		slots, lost := fitSlots(entries, is.MaxSlots)
		dropped += lost

		snap.Islands = append(snap.Islands, game.IslandSnapshot{
			ID:                 is.ID,
			Name:               is.Name,
			Inventory:          inventory,
			Slots:              slots,
			Fertilities:        fertilities,
			UnlockRequirements: append([]string(nil), is.UnlockRequirements...),
		})
	}

	for _, r := range d.CompletedResearch {
		snap.CompletedResearch = append(snap.CompletedResearch, game.CompletedResearch{
			ID:          r.ID,
			ResearchID:  r.ResearchID,
			CompletedAt: r.CompletedAt,
		})
	}

	return snap, dropped, nil
}

// fitSlots returns entries unchanged when they already match maxSlots. Otherwise the
// non-empty entries are packed from slot 0 and any that do not fit are dropped.
func fitSlots(entries []*game.BuildingSnapshot, maxSlots int) ([]*game.BuildingSnapshot, int) {
	if len(entries) == maxSlots {
		return entries, 0
	}
	if maxSlots < 0 {
		maxSlots = 0
	}

	out := make([]*game.BuildingSnapshot, maxSlots)
	next, dropped := 0, 0
	for _, b := range entries {
		if b == nil {
			continue
		}
		if next >= maxSlots {
			dropped++
			continue
		}
		out[next] = b
		next++
	}
	return out, dropped
}

func parseInventory(raw map[string]int) (map[resource.Kind]int, error) {
	out := make(map[resource.Kind]int, len(raw))
	for name, q := range raw {
		kind, err := resource.ParseKind(name)
		if err != nil {
			return nil, err
		}
		out[kind] = q
	}
	return out, nil
}

func parseFertilities(raw []string) ([]terrain.Fertility, error) {
	out := make([]terrain.Fertility, 0, len(raw))
	for _, name := range raw {
		f, err := terrain.ParseFertility(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
