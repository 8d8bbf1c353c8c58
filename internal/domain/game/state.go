package game

import (
	"fmt"
	"time"

	"github.com/islandepoch/islandepoch-go/internal/domain/epoch"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

// PassiveGoldIncome is credited once per tick
const PassiveGoldIncome = 1

// CompletedResearch records a finished research. Records are never removed.
type CompletedResearch struct {
	ID          string
	ResearchID  string
	CompletedAt time.Time
}

// State is the aggregate root of a running game. It owns every island and building.
type State struct {
	tick              int64
	playtime          time.Duration
	startTime         time.Time
	lastUpdateTime    time.Time
	gold              int
	islands           []*island.Island
	epoch             *epoch.Tracker
	completedResearch []CompletedResearch
}

func (s *State) Tick() int64 {
	return s.tick
}

// Playtime is the accumulated simulated time
func (s *State) Playtime() time.Duration {
	return s.playtime
}

func (s *State) StartTime() time.Time {
	return s.startTime
}

func (s *State) LastUpdateTime() time.Time {
	return s.lastUpdateTime
}

func (s *State) Gold() int {
	return s.gold
}

// Islands returns the islands in order. The slice is a copy; the islands are live.
func (s *State) Islands() []*island.Island {
	return append([]*island.Island(nil), s.islands...)
}

func (s *State) IslandCount() int {
	return len(s.islands)
}

// Island returns the island at index
func (s *State) Island(index int) (*island.Island, bool) {
	if index < 0 || index >= len(s.islands) {
		return nil, false
	}
	return s.islands[index], true
}

func (s *State) Epoch() *epoch.Tracker {
	return s.epoch
}

// CompletedResearch returns the research records in completion order
func (s *State) CompletedResearch() []CompletedResearch {
	return append([]CompletedResearch(nil), s.completedResearch...)
}

// HasCompleted reports whether researchID has a completion record
func (s *State) HasCompleted(researchID string) bool {
	for _, r := range s.completedResearch {
		if r.ResearchID == researchID {
			return true
		}
	}
	return false
}

// AdvanceClock counts one tick and adds elapsed simulated time
func (s *State) AdvanceClock(elapsed time.Duration) {
	s.tick++
	if elapsed > 0 {
		s.playtime += elapsed
	}
}

// Touch records the wall-clock time of the last driver update
func (s *State) Touch(now time.Time) {
	s.lastUpdateTime = now
}

// CreditGold adds amount to the balance
func (s *State) CreditGold(amount int) error {
	if amount < 0 {
		return shared.NewValidationError("gold", fmt.Sprintf("cannot credit negative amount %d", amount))
	}
	s.gold += amount
	return nil
}

// DebitGold removes amount from the balance, leaving it untouched if it cannot cover it
func (s *State) DebitGold(amount int) error {
	if amount < 0 {
		return shared.NewValidationError("gold", fmt.Sprintf("cannot debit negative amount %d", amount))
	}
	if s.gold < amount {
		return shared.NewDomainError(fmt.Sprintf("insufficient gold: need %d, have %d", amount, s.gold))
	}
	s.gold -= amount
	return nil
}

// RecordResearch appends a completion record
func (s *State) RecordResearch(record CompletedResearch) error {
	if record.ResearchID == "" {
		return shared.NewValidationError("research_id", "cannot be empty")
	}
	if s.HasCompleted(record.ResearchID) {
		return shared.NewDomainError(fmt.Sprintf("research %s already recorded", record.ResearchID))
	}
	s.completedResearch = append(s.completedResearch, record)
	return nil
}
