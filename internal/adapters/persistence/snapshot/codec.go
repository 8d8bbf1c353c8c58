// Package snapshot encodes game snapshots as versioned JSON documents and reads
// both the current and the legacy save layout.
package snapshot

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/islandepoch/islandepoch-go/internal/domain/game"
)

// CurrentVersion is written into every encoded document
const CurrentVersion = 2

const schemaURL = "save_v2.json"

//go:embed schema/save_v2.json
var currentSchemaJSON []byte

var (
	// ErrUnreadable means the data matched neither the current nor the legacy layout
	ErrUnreadable = errors.New("unreadable save")
	// ErrUnsupportedVersion means the save was written by a newer build
	ErrUnsupportedVersion = errors.New("unsupported save version")
)

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func currentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, bytes.NewReader(currentSchemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Decoded is the result of reading a save
type Decoded struct {
	Snapshot game.Snapshot
	// Version is the layout the data was read as
	Version int
	// DroppedBuildings counts buildings that did not fit into maxSlots
	DroppedBuildings int
}

// Migrated reports whether the data was read through the legacy path
func (d *Decoded) Migrated() bool {
	return d.Version != CurrentVersion
}

// Encode writes snap as a current-version document
func Encode(snap game.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(fromSnapshot(snap), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Decode reads data as the current layout and falls back to the legacy layout.
// The result has every island's slot array sized to its maxSlots.
func Decode(data []byte) (*Decoded, error) {
	var probe struct {
		Version json.RawMessage `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	var version int
	if len(probe.Version) > 0 && json.Unmarshal(probe.Version, &version) == nil && version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	snap, dropped, currentErr := decodeCurrent(data)
	if currentErr == nil {
		return &Decoded{Snapshot: snap, Version: CurrentVersion, DroppedBuildings: dropped}, nil
	}

	snap, dropped, legacyErr := decodeLegacy(data)
	if legacyErr == nil {
		return &Decoded{Snapshot: snap, Version: LegacyVersion, DroppedBuildings: dropped}, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrUnreadable, errors.Join(
		fmt.Errorf("version %d: %w", CurrentVersion, currentErr),
		fmt.Errorf("version %d: %w", LegacyVersion, legacyErr),
	))
}

func decodeCurrent(data []byte) (game.Snapshot, int, error) {
	s, err := currentSchema()
	if err != nil {
		return game.Snapshot{}, 0, fmt.Errorf("schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return game.Snapshot{}, 0, err
	}
	if err := s.Validate(v); err != nil {
		return game.Snapshot{}, 0, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc saveDocument
	if err := dec.Decode(&doc); err != nil {
		return game.Snapshot{}, 0, err
	}
	return doc.toSnapshot()
}
