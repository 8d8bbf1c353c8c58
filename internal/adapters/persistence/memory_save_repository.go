package persistence

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/islandepoch/islandepoch-go/internal/domain/game"
)

// MemorySaveRepository keeps the encoded save in memory. It runs the same codec as
// the durable repositories, so a load always goes through decoding.
type MemorySaveRepository struct {
	mu      sync.Mutex
	payload []byte
	saves   int
}

func NewMemorySaveRepository() *MemorySaveRepository {
	return &MemorySaveRepository{}
}

// Seed stores raw bytes as if they had been saved, such as a legacy document
func (r *MemorySaveRepository) Seed(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payload = append([]byte(nil), data...)
}

// SaveCount reports how many times Save succeeded
func (r *MemorySaveRepository) SaveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func (r *MemorySaveRepository) Load(ctx context.Context) (*game.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.payload == nil {
		return nil, game.ErrNoSave
	}
	return decodePayload(zerolog.Ctx(ctx), r.payload)
}

func (r *MemorySaveRepository) Save(ctx context.Context, snap game.Snapshot) error {
	payload, _, err := encodePayload(snap, false)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payload = payload
	r.saves++
	return nil
}

func (r *MemorySaveRepository) Delete(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payload = nil
	return nil
}

func (r *MemorySaveRepository) Exists(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.payload != nil, nil
}
