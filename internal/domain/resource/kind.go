package resource

import (
	"fmt"
	"sort"
)

// Kind identifies a resource that can be stored in an island ledger
type Kind string

const (
	Wheat   Kind = "wheat"
	Wood    Kind = "wood"
	IronOre Kind = "ironOre"
	Bread   Kind = "bread"
	Berries Kind = "berries"
	Insight Kind = "insight"
)

var kindCategories = map[Kind]Category{
	Wheat:   CategoryFood,
	Bread:   CategoryFood,
	Berries: CategoryFood,
	Wood:    CategoryMaterial,
	IronOre: CategoryOre,
	Insight: CategoryKnowledge,
}

var kindNames = map[Kind]string{
	Wheat:   "Wheat",
	Wood:    "Wood",
	IronOre: "Iron Ore",
	Bread:   "Bread",
	Berries: "Berries",
	Insight: "Insight",
}

// AllKinds returns every resource kind in display order
func AllKinds() []Kind {
	return []Kind{Wheat, Wood, IronOre, Bread, Berries, Insight}
}

func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the kind is part of the closed set
func (k Kind) IsValid() bool {
	_, ok := kindCategories[k]
	return ok
}

// Category returns the display category used for aggregation
func (k Kind) Category() Category {
	return kindCategories[k]
}

// DisplayName returns the human readable name
func (k Kind) DisplayName() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return string(k)
}

// ParseKind parses a string into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid resource kind: %s", s)
	}
	return k, nil
}

// SortedKinds returns the keys of a quantity map in display order, unknown kinds last
func SortedKinds(quantities map[Kind]int) []Kind {
	order := make(map[Kind]int, len(kindNames))
	for i, k := range AllKinds() {
		order[k] = i
	}

	kinds := make([]Kind, 0, len(quantities))
	for k := range quantities {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		oi, iKnown := order[kinds[i]]
		oj, jKnown := order[kinds[j]]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		default:
			return kinds[i] < kinds[j]
		}
	})
	return kinds
}
