package commands

import (
	"context"
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/application/common"
	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/application/session"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/research"
)

// CompleteResearchCommand pays for and records a research.
// IslandIndex nil pays from the handler's default research island.
type CompleteResearchCommand struct {
	ResearchID  string
	IslandIndex *int
}

type CompleteResearchResponse struct {
	Record game.CompletedResearch
}

// CompleteResearchHandler handles the CompleteResearch command
type CompleteResearchHandler struct {
	store         *session.Store
	service       *research.Service
	defaultIsland int
	recorder      common.SnapshotRecorder
}

func NewCompleteResearchHandler(store *session.Store, service *research.Service, defaultIsland int, recorder common.SnapshotRecorder) *CompleteResearchHandler {
	return &CompleteResearchHandler{store: store, service: service, defaultIsland: defaultIsland, recorder: recorder}
}

// Handle executes the CompleteResearch command
func (h *CompleteResearchHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CompleteResearchCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CompleteResearchCommand")
	}
	if cmd.ResearchID == "" {
		return nil, fmt.Errorf("research_id is required")
	}
	islandIndex := h.defaultIsland
	if cmd.IslandIndex != nil {
		islandIndex = *cmd.IslandIndex
	}

	var resp *CompleteResearchResponse
	err := h.store.Update(func(state *game.State) error {
		record, err := h.service.Complete(state, research.ID(cmd.ResearchID), islandIndex)
		if err != nil {
			return err
		}
		resp = &CompleteResearchResponse{Record: record}
		if h.recorder != nil {
			h.recorder.RecordState(state)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger := common.ComponentLogger(ctx, "research")
	logger.Info().Str("research", cmd.ResearchID).Int("island", islandIndex).Msg("research completed")

	return resp, nil
}
