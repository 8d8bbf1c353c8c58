package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/application/common"
	"github.com/islandepoch/islandepoch-go/internal/application/mediator"
	"github.com/islandepoch/islandepoch-go/internal/application/session"
	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

// SaveGameCommand persists the current state
type SaveGameCommand struct{}

type SaveGameResponse struct {
	Tick int64
}

// SaveGameHandler handles the SaveGame command
type SaveGameHandler struct {
	store *session.Store
	repo  game.SaveRepository
	clock shared.Clock
}

func NewSaveGameHandler(store *session.Store, repo game.SaveRepository, clock shared.Clock) *SaveGameHandler {
	return &SaveGameHandler{store: store, repo: repo, clock: clock}
}

// Handle executes the SaveGame command
func (h *SaveGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*SaveGameCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *SaveGameCommand")
	}

	now := h.clock.Now()
	var snap game.Snapshot
	err := h.store.View(func(state *game.State) error {
		snap = state.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}
	snap.LastUpdateTime = now

	if err := h.repo.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}
	// the live state only moves once the save is durable
	if err := h.store.Update(func(state *game.State) error {
		state.Touch(now)
		return nil
	}); err != nil {
		return nil, err
	}

	logger := common.ComponentLogger(ctx, "persistence")
	logger.Info().Int64("tick", snap.Tick).Msg("game saved")

	return &SaveGameResponse{Tick: snap.Tick}, nil
}

// LoadGameCommand restores the saved state, or starts a new game when no save exists
type LoadGameCommand struct{}

type LoadGameResponse struct {
	Snapshot game.Snapshot
	Fresh    bool
}

// LoadGameHandler handles the LoadGame command
type LoadGameHandler struct {
	store   *session.Store
	repo    game.SaveRepository
	catalog building.Catalog
	ids     shared.IDGenerator
	clock   shared.Clock
}

func NewLoadGameHandler(store *session.Store, repo game.SaveRepository, catalog building.Catalog, ids shared.IDGenerator, clock shared.Clock) *LoadGameHandler {
	return &LoadGameHandler{store: store, repo: repo, catalog: catalog, ids: ids, clock: clock}
}

// Handle executes the LoadGame command
func (h *LoadGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*LoadGameCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *LoadGameCommand")
	}
	logger := common.ComponentLogger(ctx, "persistence")

	snap, err := h.repo.Load(ctx)
	if errors.Is(err, game.ErrNoSave) {
		state, err := game.NewGame(h.ids, h.clock, h.catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}
		h.store.Replace(state)
		logger.Info().Msg("no save found, started new game")
		return &LoadGameResponse{Snapshot: state.Snapshot(), Fresh: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	state, err := game.Restore(*snap, h.catalog)
	if err != nil {
		return nil, fmt.Errorf("saved game is invalid: %w", err)
	}
	h.store.Replace(state)
	logger.Info().Int64("tick", state.Tick()).Int("gold", state.Gold()).Msg("game loaded")

	return &LoadGameResponse{Snapshot: state.Snapshot()}, nil
}

// DeleteSaveCommand removes the persisted save and starts a new game in memory
type DeleteSaveCommand struct{}

type DeleteSaveResponse struct {
	Snapshot game.Snapshot
}

// DeleteSaveHandler handles the DeleteSave command
type DeleteSaveHandler struct {
	store   *session.Store
	repo    game.SaveRepository
	catalog building.Catalog
	ids     shared.IDGenerator
	clock   shared.Clock
}

func NewDeleteSaveHandler(store *session.Store, repo game.SaveRepository, catalog building.Catalog, ids shared.IDGenerator, clock shared.Clock) *DeleteSaveHandler {
	return &DeleteSaveHandler{store: store, repo: repo, catalog: catalog, ids: ids, clock: clock}
}

// Handle executes the DeleteSave command
func (h *DeleteSaveHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*DeleteSaveCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeleteSaveCommand")
	}

	if err := h.repo.Delete(ctx); err != nil && !errors.Is(err, game.ErrNoSave) {
		return nil, fmt.Errorf("failed to delete save: %w", err)
	}
	state, err := game.NewGame(h.ids, h.clock, h.catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	h.store.Replace(state)

	logger := common.ComponentLogger(ctx, "persistence")
	logger.Info().Msg("save deleted, new game started")

	return &DeleteSaveResponse{Snapshot: state.Snapshot()}, nil
}
