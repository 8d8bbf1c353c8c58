package queries

import (
	"context"
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/application/session"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/production"
)

// GetProductionRatesQuery returns per-tick rates for one island, or the whole game when IslandIndex is nil
type GetProductionRatesQuery struct {
	IslandIndex *int
}

type GetProductionRatesResponse struct {
	Rates production.Rates
}

// GetProductionRatesHandler handles the GetProductionRates query
type GetProductionRatesHandler struct {
	store  *session.Store
	engine *production.Engine
}

func NewGetProductionRatesHandler(store *session.Store, engine *production.Engine) *GetProductionRatesHandler {
	return &GetProductionRatesHandler{store: store, engine: engine}
}

// Handle executes the GetProductionRates query
func (h *GetProductionRatesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetProductionRatesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetProductionRatesQuery")
	}

	resp := &GetProductionRatesResponse{}
	err := h.store.View(func(state *game.State) error {
		if query.IslandIndex == nil {
			resp.Rates = h.engine.GameRates(state)
			return nil
		}
		isl, ok := state.Island(*query.IslandIndex)
		if !ok {
			return fmt.Errorf("island %d does not exist", *query.IslandIndex)
		}
		resp.Rates = h.engine.IslandRates(isl)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
