package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/islandepoch/islandepoch-go/internal/domain/game"
)

// FileSaveRepository implements game.SaveRepository with a single file on disk.
// Writes go to a temp file in the same directory and are renamed into place.
type FileSaveRepository struct {
	path     string
	compress bool
}

// NewFileSaveRepository creates a repository for dir/fileName. With compress set the
// file is a zstd frame; either form is read back.
func NewFileSaveRepository(dir, fileName string, compress bool) *FileSaveRepository {
	return &FileSaveRepository{path: filepath.Join(dir, fileName), compress: compress}
}

// Path returns the save file location
func (r *FileSaveRepository) Path() string {
	return r.path
}

func (r *FileSaveRepository) Load(ctx context.Context) (*game.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, game.ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "persistence").Str("path", r.path).Logger()
	snap, err := decodePayload(&logger, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.path, err)
	}
	return snap, nil
}

func (r *FileSaveRepository) Save(ctx context.Context, snap game.Snapshot) error {
	payload, _, err := encodePayload(snap, r.compress)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp save file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close save file: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("failed to replace save file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", r.path).Int("bytes", len(payload)).Msg("save written")
	return nil
}

func (r *FileSaveRepository) Delete(ctx context.Context) error {
	err := os.Remove(r.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete save file: %w", err)
	}
	return nil
}

func (r *FileSaveRepository) Exists(ctx context.Context) (bool, error) {
	_, err := os.Stat(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat save file: %w", err)
	}
	return true, nil
}
