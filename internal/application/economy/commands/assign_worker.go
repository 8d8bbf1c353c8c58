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

// AssignWorkerCommand moves one worker into a building
type AssignWorkerCommand struct {
	BuildingID  string
	IslandIndex int
}

// UnassignWorkerCommand moves one worker out of a building
type UnassignWorkerCommand struct {
	BuildingID  string
	IslandIndex int
}

type WorkerAssignmentResponse struct {
	AssignedWorkers   int
	UnassignedWorkers int
}

// WorkerAssignmentHandler handles both AssignWorker and UnassignWorker
type WorkerAssignmentHandler struct {
	store    *session.Store
	manager  *construction.Manager
	catalog  building.Catalog
	recorder common.SnapshotRecorder
}

func NewWorkerAssignmentHandler(store *session.Store, manager *construction.Manager, catalog building.Catalog, recorder common.SnapshotRecorder) *WorkerAssignmentHandler {
	return &WorkerAssignmentHandler{store: store, manager: manager, catalog: catalog, recorder: recorder}
}

// Handle executes an AssignWorker or UnassignWorker command
func (h *WorkerAssignmentHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	var (
		rawID       string
		islandIndex int
		assign      bool
	)
	switch cmd := request.(type) {
	case *AssignWorkerCommand:
		rawID, islandIndex, assign = cmd.BuildingID, cmd.IslandIndex, true
	case *UnassignWorkerCommand:
		rawID, islandIndex = cmd.BuildingID, cmd.IslandIndex
	default:
		return nil, fmt.Errorf("invalid request type: expected *AssignWorkerCommand or *UnassignWorkerCommand")
	}

	buildingID, err := building.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	var resp *WorkerAssignmentResponse
	err = h.store.Update(func(state *game.State) error {
		var err error
		if assign {
			err = h.manager.AssignWorker(state, buildingID, islandIndex)
		} else {
			err = h.manager.UnassignWorker(state, buildingID, islandIndex)
		}
		if err != nil {
			return err
		}
		isl, _ := state.Island(islandIndex)
		_, inst, _ := isl.FindBuilding(buildingID)
		resp = &WorkerAssignmentResponse{
			AssignedWorkers:   inst.AssignedWorkers(),
			UnassignedWorkers: isl.UnassignedWorkers(h.catalog),
		}
		if h.recorder != nil {
			h.recorder.RecordState(state)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger := common.ComponentLogger(ctx, "workforce")
	logger.Info().
		Str("building", rawID).
		Bool("assign", assign).
		Int("assigned", resp.AssignedWorkers).
		Int("unassigned", resp.UnassignedWorkers).
		Msg("staffing changed")

	return resp, nil
}
