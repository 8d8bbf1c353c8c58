package island

import "fmt"

// ResearchRecord answers whether a research id has been completed
type ResearchRecord interface {
	HasCompleted(researchID string) bool
}

// UnlockPolicy decides whether an island accepts construction
type UnlockPolicy string

const (
	// UnlockOpen treats every island as unlocked
	UnlockOpen UnlockPolicy = "open"
	// UnlockResearch requires every unlock requirement to be completed research
	UnlockResearch UnlockPolicy = "research"
)

func (p UnlockPolicy) IsValid() bool {
	return p == UnlockOpen || p == UnlockResearch
}

// ParseUnlockPolicy parses a configured policy name. An empty name means open.
func ParseUnlockPolicy(s string) (UnlockPolicy, error) {
	if s == "" {
		return UnlockOpen, nil
	}
	p := UnlockPolicy(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid island unlock policy: %s", s)
	}
	return p, nil
}

// IsUnlocked applies the policy to island
func (p UnlockPolicy) IsUnlocked(island *Island, record ResearchRecord) bool {
	if p != UnlockResearch {
		return true
	}
	for _, req := range island.unlockRequirements {
		if !record.HasCompleted(req) {
			return false
		}
	}
	return true
}
