package game

import (
	"context"
	"errors"
)

// ErrNoSave means there is no prior state and a fresh game should start
var ErrNoSave = errors.New("no saved game")

// SaveRepository persists snapshots of the running game
type SaveRepository interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
	Delete(ctx context.Context) error
	Exists(ctx context.Context) (bool, error)
}
