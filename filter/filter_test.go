package filter

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	filters := map[string]Filter{
		"gzip": Gzip{},
		"zstd": Zstd{},
		"lz4":  LZ4{},
	}

	// Sizes around the 1 KiB chunk boundary, including empty input.
	sizes := []int{0, 1, 1024, 5000}

	for name, f := range filters {
		for _, size := range sizes {
			t.Run(fmt.Sprintf("%s/%d", name, size), func(t *testing.T) {
				t.Parallel()

				rng := rand.New(rand.NewSource(int64(size)))
				payload := make([]byte, size)
				_, err := rng.Read(payload)
				require.NoError(t, err)

				compressed, err := f.Compress(payload)
				require.NoError(t, err)

				out, err := f.Decompress(compressed)
				require.NoError(t, err)
				if size == 0 {
					assert.Empty(t, out)
				} else {
					assert.Equal(t, payload, out)
				}
			})
		}
	}
}

func TestGzipCompressibleInput(t *testing.T) {
	t.Parallel()

	payload := make([]byte, 64*1024)
	for i := range payload {
		payload[i] = byte(i % 7)
	}

	g := Gzip{}
	compressed, err := g.Compress(payload)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(payload))

	out, err := g.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestGzipDecompressGarbage(t *testing.T) {
	t.Parallel()

	_, err := Gzip{}.Decompress([]byte("not gzip at all"))
	assert.Error(t, err)
}
