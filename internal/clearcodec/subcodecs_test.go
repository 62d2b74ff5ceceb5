package clearcodec

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcarmo/clearcodec/internal/pixelformat"
)

func tileHeader(xStart, yStart, width, height uint16, byteCount uint32, subcodecID byte) []byte {
	h := make([]byte, 13)
	binary.LittleEndian.PutUint16(h[0:2], xStart)
	binary.LittleEndian.PutUint16(h[2:4], yStart)
	binary.LittleEndian.PutUint16(h[4:6], width)
	binary.LittleEndian.PutUint16(h[6:8], height)
	binary.LittleEndian.PutUint32(h[8:12], byteCount)
	h[12] = subcodecID
	return h
}

func TestDecodeSubcodecs_Uncompressed(t *testing.T) {
	c := NewContext(false)
	dst := make([]byte, 2*2*4)

	payload := []byte{
		1, 2, 3, // pixel (0,0) BGR
		4, 5, 6, // pixel (1,0)
		7, 8, 9, // pixel (0,1)
		10, 11, 12, // pixel (1,1)
	}
	data := append(tileHeader(0, 0, 2, 2, uint32(len(payload)), subcodecUncompressed), payload...)

	err := c.decodeSubcodecs(data, 2, 2, dst, 2*4, pixelformat.BGRX32, 0, 0, 2, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, byte(1), dst[0])
	assert.Equal(t, byte(2), dst[1])
	assert.Equal(t, byte(3), dst[2])
}

func TestDecodeSubcodecs_UncompressedWrongByteCountRejected(t *testing.T) {
	c := NewContext(false)
	dst := make([]byte, 2*2*4)
	payload := []byte{1, 2, 3}
	data := append(tileHeader(0, 0, 2, 2, uint32(len(payload)), subcodecUncompressed), payload...)

	err := c.decodeSubcodecs(data, 2, 2, dst, 2*4, pixelformat.BGRX32, 0, 0, 2, 2, nil)
	require.Error(t, err)
}

func TestDecodeSubcodecs_UnknownIDRejected(t *testing.T) {
	c := NewContext(false)
	dst := make([]byte, 2*2*4)
	data := tileHeader(0, 0, 1, 1, 0, 9)

	err := c.decodeSubcodecs(data, 2, 2, dst, 2*4, pixelformat.BGRX32, 0, 0, 2, 2, nil)
	require.Error(t, err)
}

func TestDecodeSubcodecs_TileExceedsFrameRejected(t *testing.T) {
	c := NewContext(false)
	dst := make([]byte, 2*2*4)
	data := tileHeader(0, 0, 10, 10, 0, subcodecUncompressed)

	err := c.decodeSubcodecs(data, 2, 2, dst, 2*4, pixelformat.BGRX32, 0, 0, 2, 2, nil)
	require.Error(t, err)
}

func TestDecodeSubcodecs_RLEXTile(t *testing.T) {
	c := NewContext(false)
	dst := make([]byte, 1*1*4)

	payload := []byte{
		1,
		0xAA, 0xBB, 0xCC, // palette[0]
		0x00,       // tmp: stopIndex=0 suiteDepth=0
		0,          // rlf=0: the one-entry suite supplies the only pixel
	}
	data := append(tileHeader(0, 0, 1, 1, uint32(len(payload)), subcodecRLEX), payload...)

	err := c.decodeSubcodecs(data, 1, 1, dst, 1*4, pixelformat.BGRX32, 0, 0, 1, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAA), dst[0])
	assert.Equal(t, byte(0xBB), dst[1])
	assert.Equal(t, byte(0xCC), dst[2])
}
