package commands

import (
	"context"
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/application/common"
	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/application/session"
	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

// NewGameCommand discards the current state and starts over
type NewGameCommand struct{}

type NewGameResponse struct {
	Snapshot game.Snapshot
}

// NewGameHandler handles the NewGame command
type NewGameHandler struct {
	store   *session.Store
	catalog building.Catalog
	ids     shared.IDGenerator
	clock   shared.Clock
}

func NewNewGameHandler(store *session.Store, catalog building.Catalog, ids shared.IDGenerator, clock shared.Clock) *NewGameHandler {
	return &NewGameHandler{store: store, catalog: catalog, ids: ids, clock: clock}
}

// Handle executes the NewGame command
func (h *NewGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*NewGameCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *NewGameCommand")
	}

	state, err := game.NewGame(h.ids, h.clock, h.catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	h.store.Replace(state)

	logger := common.ComponentLogger(ctx, "game")
	logger.Info().Int("gold", state.Gold()).Int("islands", state.IslandCount()).Msg("new game started")

	return &NewGameResponse{Snapshot: state.Snapshot()}, nil
}
