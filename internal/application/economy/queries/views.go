package queries

import (
	"sort"
	"time"

	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
	"github.com/islandepoch/islandepoch-go/internal/domain/production"
	"github.com/islandepoch/islandepoch-go/internal/domain/productivity"
	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
)

// IslandSummary is the one-line view of an island used in game overviews
type IslandSummary struct {
	Index             int
	Name              string
	Unlocked          bool
	MaxSlots          int
	UsedSlots         int
	WorkersAvailable  int
	WorkersAssigned   int
	UnassignedWorkers int
	Inventory         []resource.Entry
}

// SlotView describes one slot. BuildingID is empty for an empty slot.
type SlotView struct {
	Index           int
	BuildingID      string
	BlueprintID     string
	BlueprintName   string
	AssignedWorkers int
	Capacity        int
	ProvidesWorkers int
	Level           int
	Productivity    float64
	Percent         string
}

// Empty reports whether the slot holds no building
func (v SlotView) Empty() bool {
	return v.BuildingID == ""
}

// IslandView is the detailed view of one island
type IslandView struct {
	IslandSummary
	Fertilities        []string
	UnlockRequirements []string
	Slots              []SlotView
	CategoryTotals     map[resource.Category]int
	Rates              production.Rates
}

// GameView is the overview of the whole game
type GameView struct {
	Tick              int64
	Playtime          time.Duration
	StartTime         time.Time
	LastUpdateTime    time.Time
	Gold              int
	Epoch             int
	EpochName         string
	CompletedResearch []string
	Islands           []IslandSummary
}

func summarize(index int, isl *island.Island, catalog building.Catalog, unlocked bool) IslandSummary {
	return IslandSummary{
		Index:             index,
		Name:              isl.Name(),
		Unlocked:          unlocked,
		MaxSlots:          isl.MaxSlots(),
		UsedSlots:         isl.MaxSlots() - isl.AvailableSlots(),
		WorkersAvailable:  isl.WorkersAvailable(catalog),
		WorkersAssigned:   isl.TotalWorkersAssigned(),
		UnassignedWorkers: isl.UnassignedWorkers(catalog),
		Inventory:         isl.Ledger().Entries(),
	}
}

func slotView(index int, slot island.Slot, isl *island.Island, catalog building.Catalog, engine *production.Engine) SlotView {
	view := SlotView{Index: index}
	b, ok := slot.Building()
	if !ok {
		return view
	}
	view.BuildingID = b.ID().String()
	view.BlueprintID = b.BlueprintID().String()
	view.AssignedWorkers = b.AssignedWorkers()
	view.Level = b.Level()
	if bp, known := catalog.Blueprint(b.BlueprintID()); known {
		view.BlueprintName = bp.Name()
		view.Capacity = bp.Workers()
		view.ProvidesWorkers = bp.ProvidesWorkers()
	}
	view.Productivity = engine.Productivity(isl, b)
	view.Percent = productivity.Percent(view.Productivity)
	return view
}

func categoryTotals(ledger *resource.Ledger) map[resource.Category]int {
	totals := make(map[resource.Category]int, len(resource.AllCategories()))
	for _, c := range resource.AllCategories() {
		totals[c] = ledger.CategoryTotal(c)
	}
	return totals
}

func researchIDs(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}
