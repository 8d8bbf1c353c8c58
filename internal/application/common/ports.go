package common

import (
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/production"
)

// TickRecorder observes every completed tick. It is called with the session lock held
// and must not keep a reference to state.
type TickRecorder interface {
	RecordTick(report production.TickReport, state *game.State)
}

// SnapshotRecorder observes explicit state changes outside of ticks, such as builds and loads
type SnapshotRecorder interface {
	RecordState(state *game.State)
}
