package research

import (
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

// ID identifies a research definition
type ID string

func (id ID) String() string {
	return string(id)
}

const (
	MetalHatchets ID = "metalHatchets"
	Exploration   ID = "exploration"
)

// Definition is the static description of a research and its resource cost
type Definition struct {
	id          ID
	name        string
	description string
	cost        map[resource.Kind]int
}

func NewDefinition(id ID, name, description string, cost map[resource.Kind]int) (*Definition, error) {
	if id == "" {
		return nil, shared.NewValidationError("id", "research id cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("name", fmt.Sprintf("research %s needs a name", id))
	}
	copied := make(map[resource.Kind]int, len(cost))
	for k, q := range cost {
		if !k.IsValid() {
			return nil, shared.NewValidationError("cost", fmt.Sprintf("research %s: unknown resource %q", id, k))
		}
		if q <= 0 {
			return nil, shared.NewValidationError("cost", fmt.Sprintf("research %s: %s cost must be positive", id, k))
		}
		copied[k] = q
	}
	return &Definition{id: id, name: name, description: description, cost: copied}, nil
}

func MustNewDefinition(id ID, name, description string, cost map[resource.Kind]int) *Definition {
	d, err := NewDefinition(id, name, description, cost)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Definition) ID() ID {
	return d.id
}

func (d *Definition) Name() string {
	return d.name
}

func (d *Definition) Description() string {
	return d.description
}

// Cost returns a copy of the resources consumed on completion
func (d *Definition) Cost() map[resource.Kind]int {
	out := make(map[resource.Kind]int, len(d.cost))
	for k, q := range d.cost {
		out[k] = q
	}
	return out
}

// Catalog looks up research definitions
type Catalog interface {
	Definition(id ID) (*Definition, bool)
	Definitions() []*Definition
}

type StaticCatalog struct {
	order []*Definition
	byID  map[ID]*Definition
}

func NewStaticCatalog(defs ...*Definition) (*StaticCatalog, error) {
	c := &StaticCatalog{byID: make(map[ID]*Definition, len(defs))}
	for _, d := range defs {
		if _, exists := c.byID[d.ID()]; exists {
			return nil, fmt.Errorf("duplicate research id %s", d.ID())
		}
		c.byID[d.ID()] = d
		c.order = append(c.order, d)
	}
	return c, nil
}

func (c *StaticCatalog) Definition(id ID) (*Definition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

func (c *StaticCatalog) Definitions() []*Definition {
	return append([]*Definition(nil), c.order...)
}

// DefaultCatalog returns the built-in research table
func DefaultCatalog() *StaticCatalog {
	c, err := NewStaticCatalog(
		MustNewDefinition(MetalHatchets, "Metal Hatchets",
			"Equip foresters with metal tools. +15% wood production.",
			map[resource.Kind]int{resource.Bread: 50, resource.Wood: 45, resource.Insight: 10}),
		MustNewDefinition(Exploration, "Exploration",
			"Chart the waters beyond the main isle and open Ironcliff.",
			map[resource.Kind]int{resource.Wood: 20, resource.Insight: 5}),
	)
	if err != nil {
		panic(err)
	}
	return c
}
