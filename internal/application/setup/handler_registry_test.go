package setup_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandepoch/islandepoch-go/internal/adapters/persistence"
	"github.com/islandepoch/islandepoch-go/internal/application/economy/commands"
	"github.com/islandepoch/islandepoch-go/internal/application/economy/queries"
	"github.com/islandepoch/islandepoch-go/internal/application/session"
	"github.com/islandepoch/islandepoch-go/internal/application/setup"
	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/island"
	"github.com/islandepoch/islandepoch-go/internal/domain/research"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

func newRegistry(repo game.SaveRepository) *setup.HandlerRegistry {
	return setup.NewHandlerRegistry(setup.Dependencies{
		Blueprints: building.DefaultCatalog(),
		Research:   research.DefaultCatalog(),
		Repository: repo,
		IDs:        shared.NewSequenceIDGenerator("setup"),
		Clock:      shared.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		Policy:     island.UnlockOpen,
	})
}

func TestCreateConfiguredMediator_RoutesCommandsAndQueries(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewMemorySaveRepository()
	registry := newRegistry(repo)

	m, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)

	_, err = m.Send(ctx, &commands.NewGameCommand{})
	require.NoError(t, err)

	resp, err := m.Send(ctx, &commands.AdvanceTickCommand{Elapsed: time.Second, Count: 3})
	require.NoError(t, err)
	tick := resp.(*commands.AdvanceTickResponse)
	assert.Equal(t, int64(3), tick.Tick)
	assert.Equal(t, game.StartingGold+3, tick.Gold)

	_, err = m.Send(ctx, &commands.SaveGameCommand{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.SaveCount())

	view, err := m.Send(ctx, &queries.GetGameStateQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), view.(*queries.GetGameStateResponse).Game.Tick)
}

func TestCreateConfiguredMediator_WithoutRepositorySkipsSaveHandlers(t *testing.T) {
	m, err := newRegistry(nil).CreateConfiguredMediator()
	require.NoError(t, err)

	_, err = m.Send(context.Background(), &commands.SaveGameCommand{})

	assert.Error(t, err)
}

func TestNewHandlerRegistry_CommandsNeedAnActiveGame(t *testing.T) {
	registry := newRegistry(nil)
	m, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)

	_, err = m.Send(context.Background(), &commands.AdvanceTickCommand{Elapsed: time.Second})

	assert.True(t, errors.Is(err, session.ErrNoActiveGame))
	assert.False(t, registry.Store().Active())
}
