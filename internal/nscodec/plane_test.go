package nscodec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecompressPlane_RawData(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	result, err := decompressPlane(data, 4)
	require.NoError(t, err)
	require.Equal(t, data, result)
}

func TestDecompressPlane_TooLargeFails(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	_, err := decompressPlane(data, 4)
	require.Error(t, err)
}

func TestRLEDecompress_TooSmallFails(t *testing.T) {
	_, err := rleDecompress([]byte{0x01, 0x02}, 10)
	require.Error(t, err)
}

func TestRLEDecompress_RunSegment(t *testing.T) {
	data := []byte{
		0x83,       // run header: 0x80 | 3
		0xAA,       // run value
		0x00, 0x00, // EndData
		0x00, 0x00,
	}
	result, err := rleDecompress(data, 7)
	require.NoError(t, err)
	require.Equal(t, byte(0xAA), result[0])
	require.Equal(t, byte(0xAA), result[1])
	require.Equal(t, byte(0xAA), result[2])
}

func TestRLEDecompress_LiteralSegment(t *testing.T) {
	data := []byte{
		0x84,                   // run header: length 4
		0x11,                   // run value
		0x02,                   // literal length 2
		0x22, 0x33,             // literal bytes
		0xAA, 0xBB, 0xCC, 0xDD, // EndData
	}
	result, err := rleDecompress(data, 10)
	require.NoError(t, err)
	require.Equal(t, []byte{0x11, 0x11, 0x11, 0x11, 0x22, 0x33, 0xAA, 0xBB, 0xCC, 0xDD}, result)
}

func TestRLEDecompress_TruncatedLiteralFails(t *testing.T) {
	data := []byte{
		0x03,
		0x11, 0x22, // missing one literal byte
		0x00, 0x00, 0x00, 0x00,
	}
	_, err := rleDecompress(data, 10)
	require.Error(t, err)
}

func TestClampByte(t *testing.T) {
	require.Equal(t, byte(0), clampByte(-10))
	require.Equal(t, byte(255), clampByte(300))
	require.Equal(t, byte(128), clampByte(128))
}
