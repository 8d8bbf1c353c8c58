package queries

import (
	"context"
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/application/session"
	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
)

// GetGameStateQuery returns the overview of the active game
type GetGameStateQuery struct{}

type GetGameStateResponse struct {
	Game     GameView
	Snapshot game.Snapshot
}

// GetGameStateHandler handles the GetGameState query
type GetGameStateHandler struct {
	store   *session.Store
	catalog building.Catalog
	policy  island.UnlockPolicy
}

func NewGetGameStateHandler(store *session.Store, catalog building.Catalog, policy island.UnlockPolicy) *GetGameStateHandler {
	return &GetGameStateHandler{store: store, catalog: catalog, policy: policy}
}

// Handle executes the GetGameState query
func (h *GetGameStateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetGameStateQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetGameStateQuery")
	}

	resp := &GetGameStateResponse{}
	err := h.store.View(func(state *game.State) error {
		var completed []string
		for _, r := range state.CompletedResearch() {
			completed = append(completed, r.ResearchID)
		}
		resp.Game = GameView{
			Tick:              state.Tick(),
			Playtime:          state.Playtime(),
			StartTime:         state.StartTime(),
			LastUpdateTime:    state.LastUpdateTime(),
			Gold:              state.Gold(),
			Epoch:             state.Epoch().Current(),
			EpochName:         state.Epoch().CurrentEpoch().Name,
			CompletedResearch: researchIDs(completed),
		}
		for i, isl := range state.Islands() {
			resp.Game.Islands = append(resp.Game.Islands, summarize(i, isl, h.catalog, h.policy.IsUnlocked(isl, state)))
		}
		resp.Snapshot = state.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
