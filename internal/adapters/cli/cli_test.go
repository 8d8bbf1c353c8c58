package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandepoch/islandepoch-go/internal/adapters/persistence"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
	"github.com/islandepoch/islandepoch-go/internal/infrastructure/config"
)

type harness struct {
	t       *testing.T
	repo    *persistence.MemorySaveRepository
	config  string
	pidFile string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	pidFile := filepath.Join(dir, "daemon.pid")
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("daemon:\n  pid_file: %s\n", pidFile)), 0o644))

	repo := persistence.NewMemorySaveRepository()
	ids := shared.NewSequenceIDGenerator("cli")
	clock := shared.NewMockClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	logger := zerolog.Nop()

	original := newApp
	newApp = func(cfg *config.Config) (*App, error) {
		return NewApp(cfg, AppOptions{Repository: repo, IDs: ids, Clock: clock, Logger: &logger})
	}
	t.Cleanup(func() { newApp = original })

	return &harness{t: t, repo: repo, config: path, pidFile: pidFile}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", h.config}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestStatus_FreshGameIsNotSaved(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("status")

	require.NoError(t, err)
	assert.Contains(t, out, "Main Isle")
	assert.Contains(t, out, "Ironcliff")
	assert.Contains(t, out, "Gold 500")
	assert.Equal(t, 0, h.repo.SaveCount())
}

func TestBuild_PersistsAndShowsOnIsland(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("build", "farm", "--slot", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Built farm in slot 2")
	assert.Contains(t, out, "Gold left:   450")
	assert.Equal(t, 1, h.repo.SaveCount())

	out, err = h.run("island", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Farm")
	assert.Contains(t, out, "0/2")
}

func TestBuild_RejectionCarriesKind(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("build", "mine", "--island", "0")

	require.Error(t, err)
	assert.Contains(t, describeError(err), "TERRAIN_MISMATCH")
	assert.Equal(t, 0, h.repo.SaveCount())
}

func TestTick_AdvancesAndSaves(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("tick", "--count", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Advanced 3 tick(s) to tick 3, gold 503")

	out, err = h.run("status")
	require.NoError(t, err)
	assert.Contains(t, out, "Tick 3")
}

func TestTick_RejectsZeroCount(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("tick", "--count", "0")

	assert.Error(t, err)
}

func TestResearchList(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("research", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "metalHatchets")
	assert.Contains(t, out, "exploration")
}

func TestResearchComplete_InsufficientResources(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("research", "complete", "exploration")

	require.Error(t, err)
	assert.Contains(t, describeError(err), "INSUFFICIENT_RESOURCES")
}

func TestEpochAdvance(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("epoch", "advance")

	require.NoError(t, err)
	assert.Contains(t, out, "Advanced to epoch 2")
}

func TestBlueprints(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("blueprints")

	require.NoError(t, err)
	assert.Contains(t, out, "bakery")
	assert.Contains(t, out, "later epoch")
}

func TestChangingCommands_RefusedWhileDaemonRuns(t *testing.T) {
	h := newHarness(t)
	// the parent of the test binary stands in for a live daemon
	require.NoError(t, os.WriteFile(h.pidFile, []byte(fmt.Sprintf("%d\n", os.Getppid())), 0o644))

	for _, args := range [][]string{
		{"build", "farm"},
		{"tick"},
		{"epoch", "advance"},
		{"research", "complete", "exploration"},
		{"game", "new"},
		{"game", "delete"},
	} {
		_, err := h.run(args...)
		assert.True(t, errors.Is(err, ErrDaemonRunning), "%v: got %v", args, err)
	}
	assert.Equal(t, 0, h.repo.SaveCount())

	out, err := h.run("status")
	require.NoError(t, err)
	assert.Contains(t, out, "Gold 500")
}

func TestChangingCommands_IgnoreStalePIDFile(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.pidFile, []byte("not-a-pid\n"), 0o644))

	_, err := h.run("build", "farm")

	require.NoError(t, err)
	assert.Equal(t, 1, h.repo.SaveCount())
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgres://ie:****@db:5432/islands", maskPassword("postgres://ie:secret@db:5432/islands"))
	assert.Equal(t, "host=db password=**** dbname=x", maskPassword("host=db password=secret dbname=x"))
	assert.Equal(t, "islandepoch.db", maskPassword("islandepoch.db"))
}
