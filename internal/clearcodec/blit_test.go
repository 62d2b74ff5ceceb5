package clearcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcarmo/clearcodec/internal/pixelformat"
)

func TestBlitCopiesRectangle(t *testing.T) {
	src := make([]byte, 2*2*3)
	for i := range src {
		src[i] = byte(i + 1)
	}
	dst := make([]byte, 4*4*4)

	err := blit(dst, 4*4, pixelformat.BGRX32, 1, 1, 2, 2, 4, 4, src, 2*3, pixelformat.BGR24, nil)
	require.NoError(t, err)

	px := dst[(1*4+1)*4 : (1*4+1)*4+4]
	assert.Equal(t, byte(1), px[0])
	assert.Equal(t, byte(2), px[1])
	assert.Equal(t, byte(3), px[2])
}

func TestBlitClipsAgainstDestination(t *testing.T) {
	src := make([]byte, 4*4*3)
	dst := make([]byte, 2*2*4)

	err := blit(dst, 2*4, pixelformat.BGRX32, 0, 0, 4, 4, 2, 2, src, 4*3, pixelformat.BGR24, nil)
	require.NoError(t, err)
}

func TestBlitOutsideDestinationIsNoop(t *testing.T) {
	src := make([]byte, 3)
	dst := make([]byte, 2*2*4)

	err := blit(dst, 2*4, pixelformat.BGRX32, 5, 5, 1, 1, 2, 2, src, 3, pixelformat.BGR24, nil)
	require.NoError(t, err)
}
