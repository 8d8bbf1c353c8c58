package commands

import (
	"context"
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/application/common"
	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/application/session"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
)

// AdvanceEpochCommand moves the game to the next epoch. At the last epoch it is a no-op.
type AdvanceEpochCommand struct{}

type AdvanceEpochResponse struct {
	Epoch    int
	Advanced bool
}

// AdvanceEpochHandler handles the AdvanceEpoch command
type AdvanceEpochHandler struct {
	store    *session.Store
	recorder common.SnapshotRecorder
}

func NewAdvanceEpochHandler(store *session.Store, recorder common.SnapshotRecorder) *AdvanceEpochHandler {
	return &AdvanceEpochHandler{store: store, recorder: recorder}
}

// Handle executes the AdvanceEpoch command
func (h *AdvanceEpochHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*AdvanceEpochCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdvanceEpochCommand")
	}

	resp := &AdvanceEpochResponse{}
	err := h.store.Update(func(state *game.State) error {
		resp.Advanced = state.Epoch().Advance()
		resp.Epoch = state.Epoch().Current()
		if resp.Advanced && h.recorder != nil {
			h.recorder.RecordState(state)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger := common.ComponentLogger(ctx, "epoch")
	if resp.Advanced {
		logger.Info().Int("epoch", resp.Epoch).Msg("epoch advanced")
	} else {
		logger.Debug().Int("epoch", resp.Epoch).Msg("already at final epoch")
	}

	return resp, nil
}
