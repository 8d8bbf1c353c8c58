package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/islandepoch/islandepoch-go/internal/adapters/persistence/snapshot"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

// GormSaveRepository implements game.SaveRepository using GORM, one row per save slot
type GormSaveRepository struct {
	db       *gorm.DB
	slot     string
	compress bool
	clock    shared.Clock
}

// NewGormSaveRepository creates a new GORM save repository bound to slot
func NewGormSaveRepository(db *gorm.DB, slot string, compress bool, clock shared.Clock) *GormSaveRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormSaveRepository{db: db, slot: slot, compress: compress, clock: clock}
}

// Load retrieves the snapshot stored in the slot
func (r *GormSaveRepository) Load(ctx context.Context) (*game.Snapshot, error) {
	var model SaveGameModel
	result := r.db.WithContext(ctx).Where("slot = ?", r.slot).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, game.ErrNoSave
		}
		return nil, fmt.Errorf("failed to find save %s: %w", r.slot, result.Error)
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "persistence").Str("slot", r.slot).Logger()
	snap, err := decodePayload(&logger, model.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode save %s: %w", r.slot, err)
	}
	return snap, nil
}

// Save upserts the slot row
func (r *GormSaveRepository) Save(ctx context.Context, snap game.Snapshot) error {
	payload, encoding, err := encodePayload(snap, r.compress)
	if err != nil {
		return err
	}

	now := r.clock.Now()
	model := SaveGameModel{
		Slot:      r.slot,
		Version:   snapshot.CurrentVersion,
		Encoding:  encoding,
		Payload:   payload,
		Tick:      snap.Tick,
		Gold:      snap.Gold,
		Epoch:     snap.Epoch,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var existing SaveGameModel
	err = r.db.WithContext(ctx).Select("created_at").Where("slot = ?", r.slot).First(&existing).Error
	switch {
	case err == nil:
		model.CreatedAt = existing.CreatedAt
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to read save %s: %w", r.slot, err)
	}

	// Upsert: create or update
	if result := r.db.WithContext(ctx).Save(&model); result.Error != nil {
		return fmt.Errorf("failed to save game %s: %w", r.slot, result.Error)
	}
	return nil
}

// Delete removes the slot row. Deleting a missing save is not an error.
func (r *GormSaveRepository) Delete(ctx context.Context) error {
	result := r.db.WithContext(ctx).Where("slot = ?", r.slot).Delete(&SaveGameModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete save %s: %w", r.slot, result.Error)
	}
	return nil
}

// Exists reports whether the slot has a row
func (r *GormSaveRepository) Exists(ctx context.Context) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&SaveGameModel{}).Where("slot = ?", r.slot).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check save %s: %w", r.slot, result.Error)
	}
	return count > 0, nil
}
