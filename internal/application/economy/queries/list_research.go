package queries

import (
	"context"
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/application/session"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/research"
)

// ListResearchQuery lists every research with its completion state
type ListResearchQuery struct{}

type ListResearchResponse struct {
	Research []research.Status
}

// ListResearchHandler handles the ListResearch query
type ListResearchHandler struct {
	store   *session.Store
	service *research.Service
}

func NewListResearchHandler(store *session.Store, service *research.Service) *ListResearchHandler {
	return &ListResearchHandler{store: store, service: service}
}

// Handle executes the ListResearch query
func (h *ListResearchHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListResearchQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListResearchQuery")
	}

	resp := &ListResearchResponse{}
	err := h.store.View(func(state *game.State) error {
		resp.Research = h.service.List(state)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
