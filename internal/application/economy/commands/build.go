package commands

import (
	"context"
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/application/common"
	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/application/session"
	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/construction"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
)

// BuildCommand places a blueprint on an island. SlotIndex nil picks the first empty slot.
type BuildCommand struct {
	BlueprintID string
	IslandIndex int
	SlotIndex   *int
}

type BuildResponse struct {
	BuildingID string
	SlotIndex  int
	Gold       int
}

// BuildHandler handles the Build command
type BuildHandler struct {
	store    *session.Store
	manager  *construction.Manager
	recorder common.SnapshotRecorder
}

func NewBuildHandler(store *session.Store, manager *construction.Manager, recorder common.SnapshotRecorder) *BuildHandler {
	return &BuildHandler{store: store, manager: manager, recorder: recorder}
}

// Handle executes the Build command
func (h *BuildHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*BuildCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuildCommand")
	}
	if cmd.BlueprintID == "" {
		return nil, fmt.Errorf("blueprint_id is required")
	}

	var resp *BuildResponse
	err := h.store.Update(func(state *game.State) error {
		id, err := h.manager.Build(state, building.BlueprintID(cmd.BlueprintID), cmd.IslandIndex, cmd.SlotIndex)
		if err != nil {
			return err
		}
		isl, _ := state.Island(cmd.IslandIndex)
		slotIndex, _, _ := isl.FindBuilding(id)
		resp = &BuildResponse{BuildingID: id.String(), SlotIndex: slotIndex, Gold: state.Gold()}
		if h.recorder != nil {
			h.recorder.RecordState(state)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger := common.ComponentLogger(ctx, "construction")
	logger.Info().
		Str("blueprint", cmd.BlueprintID).
		Int("island", cmd.IslandIndex).
		Int("slot", resp.SlotIndex).
		Int("gold", resp.Gold).
		Msg("building constructed")

	return resp, nil
}

// DemolishCommand removes a building and refunds half its cost
type DemolishCommand struct {
	BuildingID  string
	IslandIndex int
}

type DemolishResponse struct {
	Refund int
	Gold   int
}

// DemolishHandler handles the Demolish command
type DemolishHandler struct {
	store    *session.Store
	manager  *construction.Manager
	recorder common.SnapshotRecorder
}

func NewDemolishHandler(store *session.Store, manager *construction.Manager, recorder common.SnapshotRecorder) *DemolishHandler {
	return &DemolishHandler{store: store, manager: manager, recorder: recorder}
}

// Handle executes the Demolish command
func (h *DemolishHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DemolishCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DemolishCommand")
	}
	buildingID, err := building.ParseID(cmd.BuildingID)
	if err != nil {
		return nil, err
	}

	var resp *DemolishResponse
	err = h.store.Update(func(state *game.State) error {
		refund, err := h.manager.Demolish(state, buildingID, cmd.IslandIndex)
		if err != nil {
			return err
		}
		resp = &DemolishResponse{Refund: refund, Gold: state.Gold()}
		if h.recorder != nil {
			h.recorder.RecordState(state)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger := common.ComponentLogger(ctx, "construction")
	logger.Info().Str("building", cmd.BuildingID).Int("refund", resp.Refund).Msg("building demolished")

	return resp, nil
}
