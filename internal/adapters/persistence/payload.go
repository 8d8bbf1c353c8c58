package persistence

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"

	"github.com/islandepoch/islandepoch-go/internal/adapters/persistence/snapshot"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
)

const (
	encodingJSON     = "json"
	encodingJSONZstd = "json+zstd"
)

// maxSaveBytes caps a decompressed save
const maxSaveBytes = 32 << 20

// zstdMagic prefixes every zstd frame
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ErrSaveTooLarge is returned when a compressed save expands past the size cap
var ErrSaveTooLarge = errors.New("save exceeds size limit")

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte, limit int64) ([]byte, error) {
	zr, err := zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderMaxMemory(uint64(limit)))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	raw, err := io.ReadAll(io.LimitReader(zr, limit+1))
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
		return nil, fmt.Errorf("%w: %v", ErrSaveTooLarge, err)
	}
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrSaveTooLarge, limit)
	}
	return raw, nil
}

// encodePayload encodes snap and optionally compresses it, returning the bytes and their encoding name
func encodePayload(snap game.Snapshot, compressed bool) ([]byte, string, error) {
	data, err := snapshot.Encode(snap)
	if err != nil {
		return nil, "", err
	}
	if !compressed {
		return data, encodingJSON, nil
	}
	packed, err := compress(data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to compress snapshot: %w", err)
	}
	return packed, encodingJSONZstd, nil
}

// decodePayload sniffs the zstd frame magic so plain JSON saves stay readable
func decodePayload(logger *zerolog.Logger, data []byte) (*game.Snapshot, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		raw, err := decompress(data, maxSaveBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
		}
		data = raw
	}

	decoded, err := snapshot.Decode(data)
	if err != nil {
		return nil, err
	}
	if decoded.Migrated() {
		logger.Info().Int("from_version", decoded.Version).Int("to_version", snapshot.CurrentVersion).Msg("migrated legacy save")
	}
	if decoded.DroppedBuildings > 0 {
		logger.Warn().Int("dropped", decoded.DroppedBuildings).Msg("buildings beyond island slot count were dropped")
	}
	return &decoded.Snapshot, nil
}
