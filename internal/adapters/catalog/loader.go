// Package catalog reads blueprint and research definitions from YAML.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/research"
	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
	"github.com/islandepoch/islandepoch-go/internal/domain/terrain"
)

// File is the YAML layout
type File struct {
	Blueprints []BlueprintEntry `yaml:"blueprints" validate:"required,min=1,dive"`
	Research   []ResearchEntry  `yaml:"research" validate:"dive"`
}

type BlueprintEntry struct {
	ID                string         `yaml:"id" validate:"required"`
	Name              string         `yaml:"name" validate:"required"`
	GoldCost          int            `yaml:"gold_cost" validate:"min=0"`
	Workers           int            `yaml:"workers" validate:"min=0"`
	ProvidesWorkers   int            `yaml:"provides_workers" validate:"min=0"`
	Inputs            map[string]int `yaml:"inputs" validate:"dive,keys,required,endkeys,min=1"`
	Outputs           map[string]int `yaml:"outputs" validate:"dive,keys,required,endkeys,min=1"`
	Epoch             int            `yaml:"epoch" validate:"omitempty,min=1,max=10"`
	RequiredFertility string         `yaml:"required_fertility"`
}

type ResearchEntry struct {
	ID          string         `yaml:"id" validate:"required"`
	Name        string         `yaml:"name" validate:"required"`
	Description string         `yaml:"description"`
	Cost        map[string]int `yaml:"cost" validate:"dive,keys,required,endkeys,min=1"`
}

// Catalogs holds both loaded catalogs
type Catalogs struct {
	Blueprints building.Catalog
	Research   research.Catalog
}

// Defaults returns the built-in catalogs
func Defaults() *Catalogs {
	return &Catalogs{Blueprints: building.DefaultCatalog(), Research: research.DefaultCatalog()}
}

// LoadOrDefault loads path, or returns the built-in catalogs when path is empty
func LoadOrDefault(path string) (*Catalogs, error) {
	if path == "" {
		return Defaults(), nil
	}
	return Load(path)
}

// Load reads a catalog file. An empty research list keeps the built-in research.
func Load(path string) (*Catalogs, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates YAML catalog data. Unknown fields are rejected.
func Parse(raw []byte) (*Catalogs, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("catalog yaml: %w", err)
	}
	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("catalog validation: %w", err)
	}

	blueprints, err := f.buildBlueprints()
	if err != nil {
		return nil, err
	}
	out := &Catalogs{Blueprints: blueprints, Research: research.DefaultCatalog()}
	if len(f.Research) > 0 {
		if out.Research, err = f.buildResearch(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (f File) buildBlueprints() (*building.StaticCatalog, error) {
	var bps []*building.Blueprint
	for _, e := range f.Blueprints {
		inputs, err := kinds(e.Inputs)
		if err != nil {
			return nil, fmt.Errorf("blueprint %s inputs: %w", e.ID, err)
		}
		outputs, err := kinds(e.Outputs)
		if err != nil {
			return nil, fmt.Errorf("blueprint %s outputs: %w", e.ID, err)
		}
		spec := building.BlueprintSpec{
			ID:              building.BlueprintID(e.ID),
			Name:            e.Name,
			GoldCost:        e.GoldCost,
			Workers:         e.Workers,
			ProvidesWorkers: e.ProvidesWorkers,
			Inputs:          inputs,
			Outputs:         outputs,
			Epoch:           e.Epoch,
		}
		if spec.Epoch == 0 {
			spec.Epoch = 1
		}
		if e.RequiredFertility != "" {
			fert, err := terrain.ParseFertility(e.RequiredFertility)
			if err != nil {
				return nil, fmt.Errorf("blueprint %s: %w", e.ID, err)
			}
			spec.RequiredFertility = fert
		}
		bp, err := building.NewBlueprint(spec)
		if err != nil {
			return nil, err
		}
		bps = append(bps, bp)
	}
	return building.NewStaticCatalog(bps...)
}

func (f File) buildResearch() (*research.StaticCatalog, error) {
	var defs []*research.Definition
	for _, e := range f.Research {
		cost, err := kinds(e.Cost)
		if err != nil {
			return nil, fmt.Errorf("research %s: %w", e.ID, err)
		}
		def, err := research.NewDefinition(research.ID(e.ID), e.Name, e.Description, cost)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return research.NewStaticCatalog(defs...)
}

func kinds(in map[string]int) (map[resource.Kind]int, error) {
	out := make(map[resource.Kind]int, len(in))
	for name, q := range in {
		k, err := resource.ParseKind(name)
		if err != nil {
			return nil, err
		}
		out[k] = q
	}
	return out, nil
}
