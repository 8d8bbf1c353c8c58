package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/islandepoch/islandepoch-go/internal/application/common"
	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/application/session"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/production"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

// AdvanceTickCommand runs Count ticks of Elapsed simulated time each. Count defaults to 1.
type AdvanceTickCommand struct {
	Elapsed time.Duration
	Count   int
}

type AdvanceTickResponse struct {
	Reports []production.TickReport
	Tick    int64
	Gold    int
}

// AdvanceTickHandler handles the AdvanceTick command
type AdvanceTickHandler struct {
	store    *session.Store
	engine   *production.Engine
	clock    shared.Clock
	recorder common.TickRecorder
}

// NewAdvanceTickHandler creates the handler. recorder may be nil.
func NewAdvanceTickHandler(store *session.Store, engine *production.Engine, clock shared.Clock, recorder common.TickRecorder) *AdvanceTickHandler {
	return &AdvanceTickHandler{store: store, engine: engine, clock: clock, recorder: recorder}
}

// Handle executes the AdvanceTick command
func (h *AdvanceTickHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AdvanceTickCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdvanceTickCommand")
	}
	if cmd.Elapsed < 0 {
		return nil, fmt.Errorf("elapsed cannot be negative")
	}
	count := cmd.Count
	if count == 0 {
		count = 1
	}
	if count < 0 {
		return nil, fmt.Errorf("count cannot be negative")
	}

	logger := common.ComponentLogger(ctx, "production")
	resp := &AdvanceTickResponse{Reports: make([]production.TickReport, 0, count)}

	err := h.store.Update(func(state *game.State) error {
		for i := 0; i < count; i++ {
			report := h.engine.AdvanceTick(state, cmd.Elapsed)
			if h.recorder != nil {
				h.recorder.RecordTick(report, state)
			}
			logger.Debug().
				Int64("tick", report.Tick).
				Int("ran", report.Count(production.OutcomeRan)).
				Int("starved", report.Count(production.OutcomeStarved)).
				Int("idle", report.Count(production.OutcomeIdle)).
				Msg("tick advanced")
			resp.Reports = append(resp.Reports, report)
		}
		state.Touch(h.clock.Now())
		resp.Tick = state.Tick()
		resp.Gold = state.Gold()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
