package research

import (
	"errors"
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

// Service completes research against the resources of a designated island
type Service struct {
	catalog Catalog
	ids     shared.IDGenerator
	clock   shared.Clock
}

func NewService(catalog Catalog, ids shared.IDGenerator, clock shared.Clock) *Service {
	return &Service{catalog: catalog, ids: ids, clock: clock}
}

// Complete pays the research cost from the island at islandIndex and records completion.
// The cost is taken in full or not at all.
func (s *Service) Complete(state *game.State, id ID, islandIndex int) (game.CompletedResearch, error) {
	if state.HasCompleted(id.String()) {
		return game.CompletedResearch{}, newResearchError(AlreadyCompleted, fmt.Sprintf("research %s already completed", id))
	}

	def, ok := s.catalog.Definition(id)
	if !ok {
		return game.CompletedResearch{}, newResearchError(ResearchNotFound, fmt.Sprintf("research %s not found", id))
	}

	isl, ok := state.Island(islandIndex)
	if !ok {
		return game.CompletedResearch{}, newResearchError(InvalidIsland, fmt.Sprintf("island %d does not exist", islandIndex))
	}

	if err := isl.Ledger().RemoveAll(def.Cost()); err != nil {
		var short *resource.InsufficientResourceError
		if errors.As(err, &short) {
			return game.CompletedResearch{}, newResearchError(InsufficientResources,
				fmt.Sprintf("%s needs %d %s on %s, have %d", def.Name(), short.Required, short.Kind.DisplayName(), isl.Name(), short.Available))
		}
		return game.CompletedResearch{}, err
	}

	record := game.CompletedResearch{
		ID:          s.ids.NewID().String(),
		ResearchID:  id.String(),
		CompletedAt: s.clock.Now(),
	}
	if err := state.RecordResearch(record); err != nil {
		return game.CompletedResearch{}, err
	}
	return record, nil
}

// Status pairs a definition with its completion state
type Status struct {
	Definition *Definition
	Completed  bool
}

// List reports every research in catalog order
func (s *Service) List(state *game.State) []Status {
	var out []Status
	for _, d := range s.catalog.Definitions() {
		out = append(out, Status{Definition: d, Completed: state.HasCompleted(d.ID().String())})
	}
	return out
}
