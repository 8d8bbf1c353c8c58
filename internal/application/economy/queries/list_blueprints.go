package queries

import (
	"context"
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/application/session"
	"github.com/islandepoch/islandepoch-go/internal/domain/construction"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
)

// ListBlueprintsQuery evaluates every blueprint against an island
type ListBlueprintsQuery struct {
	IslandIndex int
}

type ListBlueprintsResponse struct {
	Options []construction.BuildOption
}

// ListBlueprintsHandler handles the ListBlueprints query
type ListBlueprintsHandler struct {
	store   *session.Store
	manager *construction.Manager
}

func NewListBlueprintsHandler(store *session.Store, manager *construction.Manager) *ListBlueprintsHandler {
	return &ListBlueprintsHandler{store: store, manager: manager}
}

// Handle executes the ListBlueprints query
func (h *ListBlueprintsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListBlueprintsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListBlueprintsQuery")
	}

	resp := &ListBlueprintsResponse{}
	err := h.store.View(func(state *game.State) error {
		options, err := h.manager.Options(state, query.IslandIndex)
		resp.Options = options
		return err
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
