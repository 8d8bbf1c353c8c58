package queries

import (
	"context"
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/application/session"
	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
	"github.com/islandepoch/islandepoch-go/internal/domain/production"
)

// GetIslandQuery returns the detailed view of one island
type GetIslandQuery struct {
	IslandIndex int
}

type GetIslandResponse struct {
	Island IslandView
}

// GetIslandHandler handles the GetIsland query
type GetIslandHandler struct {
	store   *session.Store
	catalog building.Catalog
	engine  *production.Engine
	policy  island.UnlockPolicy
}

func NewGetIslandHandler(store *session.Store, catalog building.Catalog, engine *production.Engine, policy island.UnlockPolicy) *GetIslandHandler {
	return &GetIslandHandler{store: store, catalog: catalog, engine: engine, policy: policy}
}

// Handle executes the GetIsland query
func (h *GetIslandHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetIslandQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetIslandQuery")
	}

	resp := &GetIslandResponse{}
	err := h.store.View(func(state *game.State) error {
		isl, ok := state.Island(query.IslandIndex)
		if !ok {
			return fmt.Errorf("island %d does not exist", query.IslandIndex)
		}

		view := IslandView{
			IslandSummary:      summarize(query.IslandIndex, isl, h.catalog, h.policy.IsUnlocked(isl, state)),
			UnlockRequirements: isl.UnlockRequirements(),
			CategoryTotals:     categoryTotals(isl.Ledger()),
			Rates:              h.engine.IslandRates(isl),
		}
		for _, f := range isl.Fertilities() {
			view.Fertilities = append(view.Fertilities, f.DisplayName())
		}
		for i, slot := range isl.Slots() {
			view.Slots = append(view.Slots, slotView(i, slot, isl, h.catalog, h.engine))
		}
		resp.Island = view
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
