package pixelformat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesPerPixel(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		expected int
	}{
		{"BGR24", BGR24, 3},
		{"BGRX32", BGRX32, 4},
		{"BGRA32", BGRA32, 4},
		{"RGB24", RGB24, 3},
		{"RGBX32", RGBX32, 4},
		{"Index8", Index8, 1},
		{"unknown", Format(99), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BytesPerPixel(tt.format))
		})
	}
}

func TestGetColorRoundTrip(t *testing.T) {
	color := GetColor(BGRX32, 0x11, 0x22, 0x33, 0xFF)
	assert.Equal(t, uint32(0xFF112233), color)
}

func TestReadWriteColorBGR24(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03} // B, G, R
	color, err := ReadColor(buf, BGR24, nil)
	require.NoError(t, err)
	assert.Equal(t, GetColor(BGR24, 0x03, 0x02, 0x01, 0xFF), color)

	out := make([]byte, 3)
	require.NoError(t, WriteColor(out, BGR24, color))
	if diff := cmp.Diff(buf, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadWriteColorBGRA32PreservesAlpha(t *testing.T) {
	buf := []byte{0x10, 0x20, 0x30, 0x80}
	color, err := ReadColor(buf, BGRA32, nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x80), byte(color>>24))

	out := make([]byte, 4)
	require.NoError(t, WriteColor(out, BGRA32, color))
	assert.Equal(t, buf, out)
}

func TestReadColorShortBufferFails(t *testing.T) {
	_, err := ReadColor([]byte{0x01, 0x02}, BGR24, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestWriteColorShortBufferFails(t *testing.T) {
	err := WriteColor(make([]byte, 2), BGRX32, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestWriteColorIndex8NotWritable(t *testing.T) {
	err := WriteColor(make([]byte, 1), Index8, 0)
	require.Error(t, err)
}

func TestIndex8ReadUsesPalette(t *testing.T) {
	var palette Palette256
	palette.Set(5, GetColor(BGRX32, 0xAA, 0xBB, 0xCC, 0xFF))

	color, err := ReadColor([]byte{5}, Index8, &palette)
	require.NoError(t, err)
	assert.Equal(t, palette.At(5), color)
}

func TestIndex8ReadWithoutPaletteFails(t *testing.T) {
	_, err := ReadColor([]byte{5}, Index8, nil)
	require.Error(t, err)
}

func TestConvertColorIsIdentityForDirectFormats(t *testing.T) {
	color := GetColor(BGR24, 1, 2, 3, 0xFF)
	assert.Equal(t, color, ConvertColor(color, BGR24, BGRX32, nil))
}
