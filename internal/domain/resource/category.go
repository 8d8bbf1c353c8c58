package resource

import "fmt"

// Category groups resource kinds for display totals. It carries no simulation meaning.
type Category string

const (
	CategoryFood      Category = "food"
	CategoryMaterial  Category = "material"
	CategoryOre       Category = "ore"
	CategoryKnowledge Category = "knowledge"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryFood,
		CategoryMaterial,
		CategoryOre,
		CategoryKnowledge,
	}
}

func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryMaterial, CategoryOre, CategoryKnowledge:
		return true
	default:
		return false
	}
}

// Kinds returns the resource kinds belonging to the category
func (c Category) Kinds() []Kind {
	var kinds []Kind
	for _, k := range AllKinds() {
		if k.Category() == c {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
