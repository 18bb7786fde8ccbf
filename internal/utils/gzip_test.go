package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzipRoundTrip(t *testing.T) {
	payload := []byte("{\"msys\":{}}\n{\"msys\":{}}\n")

	compressed, err := GzipCompress(payload)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1f, 0x8b}, compressed[:2])

	decompressed, err := GzipDecompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, decompressed)
}

func TestGzipDecompress_NotGzip(t *testing.T) {
	_, err := GzipDecompress([]byte("batch not found"))
	assert.Error(t, err)
}
