package persistence

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompress_WithinLimit(t *testing.T) {
	data := bytes.Repeat([]byte("wheat"), 2000)
	packed, err := compress(data)
	require.NoError(t, err)

	raw, err := decompress(packed, int64(len(data)))

	require.NoError(t, err)
	assert.Equal(t, data, raw)
}

func TestDecompress_RejectsOversizedFrame(t *testing.T) {
	packed, err := compress(make([]byte, 1<<20))
	require.NoError(t, err)
	require.Less(t, len(packed), 4096)

	_, err = decompress(packed, 64<<10)

	assert.True(t, errors.Is(err, ErrSaveTooLarge), "got %v", err)
}
