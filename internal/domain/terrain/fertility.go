package terrain

import "fmt"

// Fertility is a terrain tag that gates which blueprints can be placed on an island
type Fertility string

const (
	Grainland    Fertility = "grainland"
	Forest       Fertility = "forest"
	IronDeposits Fertility = "ironDeposits"
	Wildlife     Fertility = "wildlife"
)

// AllFertilities returns every terrain tag
func AllFertilities() []Fertility {
	return []Fertility{Grainland, Forest, IronDeposits, Wildlife}
}

func (f Fertility) String() string {
	return string(f)
}

// IsValid checks if the tag is known
func (f Fertility) IsValid() bool {
	switch f {
	case Grainland, Forest, IronDeposits, Wildlife:
		return true
	default:
		return false
	}
}

// DisplayName returns the human readable name
func (f Fertility) DisplayName() string {
	switch f {
	case Grainland:
		return "Grainland"
	case Forest:
		return "Forest"
	case IronDeposits:
		return "Iron Deposits"
	case Wildlife:
		return "Wildlife"
	default:
		return string(f)
	}
}

// Description returns a short flavour line
func (f Fertility) Description() string {
	switch f {
	case Grainland:
		return "Fertile soil suitable for growing crops"
	case Forest:
		return "Dense woodland for lumber harvesting"
	case IronDeposits:
		return "Rich mineral deposits for mining"
	case Wildlife:
		return "Natural habitat with abundant wildlife"
	default:
		return ""
	}
}

// ParseFertility parses a string into a Fertility
func ParseFertility(s string) (Fertility, error) {
	f := Fertility(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid fertility: %s", s)
	}
	return f, nil
}
