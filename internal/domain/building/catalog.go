package building

import (
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
	"github.com/islandepoch/islandepoch-go/internal/domain/terrain"
)

// Catalog looks up blueprints by id
type Catalog interface {
	Blueprint(id BlueprintID) (*Blueprint, bool)
	Blueprints() []*Blueprint
}

// StaticCatalog is an ordered, read-only set of blueprints
type StaticCatalog struct {
	order []*Blueprint
	byID  map[BlueprintID]*Blueprint
}

// NewStaticCatalog creates a catalog, rejecting duplicate ids
func NewStaticCatalog(blueprints ...*Blueprint) (*StaticCatalog, error) {
	c := &StaticCatalog{byID: make(map[BlueprintID]*Blueprint, len(blueprints))}
	for _, bp := range blueprints {
		if _, exists := c.byID[bp.ID()]; exists {
			return nil, fmt.Errorf("duplicate blueprint id %s", bp.ID())
		}
		c.byID[bp.ID()] = bp
		c.order = append(c.order, bp)
	}
	return c, nil
}

func (c *StaticCatalog) Blueprint(id BlueprintID) (*Blueprint, bool) {
	bp, ok := c.byID[id]
	return bp, ok
}

// Blueprints returns every blueprint in catalog order
func (c *StaticCatalog) Blueprints() []*Blueprint {
	out := make([]*Blueprint, len(c.order))
	copy(out, c.order)
	return out
}

const (
	Tent          BlueprintID = "tent"
	House         BlueprintID = "house"
	Farm          BlueprintID = "farm"
	Forester      BlueprintID = "forester"
	Mine          BlueprintID = "mine"
	BerryGatherer BlueprintID = "berryGatherer"
	Bakery        BlueprintID = "bakery"
	Scholar       BlueprintID = "scholar"
)

// DefaultBlueprintSpecs is the built-in building table
func DefaultBlueprintSpecs() []BlueprintSpec {
	return []BlueprintSpec{
		{ID: Tent, Name: "Tent", GoldCost: 25, ProvidesWorkers: 4, Epoch: 1},
		{ID: House, Name: "House", GoldCost: 120, ProvidesWorkers: 8, Epoch: 2},
		{
			ID: Farm, Name: "Farm", GoldCost: 50, Workers: 2, Epoch: 1,
			Outputs:           map[resource.Kind]int{resource.Wheat: 2},
			RequiredFertility: terrain.Grainland,
		},
		{
			ID: Forester, Name: "Forester", GoldCost: 40, Workers: 2, Epoch: 1,
			Outputs:           map[resource.Kind]int{resource.Wood: 2},
			RequiredFertility: terrain.Forest,
		},
		{
			ID: Mine, Name: "Mine", GoldCost: 80, Workers: 3, Epoch: 1,
			Outputs:           map[resource.Kind]int{resource.IronOre: 1},
			RequiredFertility: terrain.IronDeposits,
		},
		{
			ID: BerryGatherer, Name: "Berry Gatherer", GoldCost: 30, Workers: 1, Epoch: 1,
			Outputs:           map[resource.Kind]int{resource.Berries: 1},
			RequiredFertility: terrain.Wildlife,
		},
		{
			ID: Bakery, Name: "Bakery", GoldCost: 100, Workers: 2, Epoch: 1,
			Inputs:  map[resource.Kind]int{resource.Wheat: 2},
			Outputs: map[resource.Kind]int{resource.Bread: 1},
		},
		{
			ID: Scholar, Name: "Scholar", GoldCost: 150, Workers: 1, Epoch: 2,
			Inputs:  map[resource.Kind]int{resource.Bread: 1},
			Outputs: map[resource.Kind]int{resource.Insight: 1},
		},
	}
}

// DefaultCatalog returns the built-in building table
func DefaultCatalog() *StaticCatalog {
	specs := DefaultBlueprintSpecs()
	blueprints := make([]*Blueprint, 0, len(specs))
	for _, spec := range specs {
		blueprints = append(blueprints, MustNewBlueprint(spec))
	}
	c, err := NewStaticCatalog(blueprints...)
	if err != nil {
		panic(err)
	}
	return c
}
