package queries

import (
	"context"
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/application/session"
	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/construction"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/production"
	"github.com/islandepoch/islandepoch-go/internal/domain/productivity"
)

// GetBuildingProductivityQuery returns the current productivity of one building
type GetBuildingProductivityQuery struct {
	BuildingID  string
	IslandIndex int
}

type GetBuildingProductivityResponse struct {
	Productivity float64
	Percent      string
}

// GetBuildingProductivityHandler handles the GetBuildingProductivity query
type GetBuildingProductivityHandler struct {
	store  *session.Store
	engine *production.Engine
}

func NewGetBuildingProductivityHandler(store *session.Store, engine *production.Engine) *GetBuildingProductivityHandler {
	return &GetBuildingProductivityHandler{store: store, engine: engine}
}

// Handle executes the GetBuildingProductivity query
func (h *GetBuildingProductivityHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetBuildingProductivityQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetBuildingProductivityQuery")
	}
	buildingID, err := building.ParseID(query.BuildingID)
	if err != nil {
		return nil, err
	}

	resp := &GetBuildingProductivityResponse{}
	err = h.store.View(func(state *game.State) error {
		isl, ok := state.Island(query.IslandIndex)
		if !ok {
			return construction.ErrInvalidIsland
		}
		_, instance, ok := isl.FindBuilding(buildingID)
		if !ok {
			return construction.ErrAssignBuildingMissing
		}
		resp.Productivity = h.engine.Productivity(isl, instance)
		resp.Percent = productivity.Percent(resp.Productivity)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
