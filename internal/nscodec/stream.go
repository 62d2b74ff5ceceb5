package nscodec

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrInvalidStream covers every malformed-input condition NSCodec can hit:
// a truncated header, an out-of-range color loss level, a plane that
// overruns the stream, or a plane whose RLE encoding cannot be decompressed
// to its expected size.
var ErrInvalidStream = errors.New("nscodec: invalid bitmap stream")

// bitmapStream is the parsed NSCODEC_BITMAP_STREAM structure (MS-RDPNSC
// 2.2.1): four length-prefixed planes plus the two parameters controlling
// how they are recombined.
type bitmapStream struct {
	lumaPlane, orangePlane, greenPlane, alphaPlane []byte
	colorLossLevel                                 uint8
	chromaSubsamplingLevel                         uint8
}

func parseBitmapStream(data []byte) (*bitmapStream, error) {
	const headerSize = 20
	if len(data) < headerSize {
		return nil, errors.Wrapf(ErrInvalidStream, "header needs %d bytes, got %d", headerSize, len(data))
	}

	lumaLen := binary.LittleEndian.Uint32(data[0:4])
	orangeLen := binary.LittleEndian.Uint32(data[4:8])
	greenLen := binary.LittleEndian.Uint32(data[8:12])
	alphaLen := binary.LittleEndian.Uint32(data[12:16])
	colorLossLevel := data[16]
	chromaSubsamplingLevel := data[17]
	// data[18:20] reserved.

	if colorLossLevel < 1 || colorLossLevel > 7 {
		return nil, errors.Wrapf(ErrInvalidStream, "colorLossLevel %d out of [1,7]", colorLossLevel)
	}

	stream := &bitmapStream{
		colorLossLevel:         colorLossLevel,
		chromaSubsamplingLevel: chromaSubsamplingLevel,
	}

	offset := uint32(headerSize)
	dataLen := uint32(len(data))

	readPlane := func(n uint32) ([]byte, error) {
		if n == 0 {
			return nil, nil
		}
		if dataLen < offset+n {
			return nil, errors.Wrapf(ErrInvalidStream, "plane needs %d bytes at offset %d, have %d", n, offset, dataLen)
		}
		plane := data[offset : offset+n]
		offset += n
		return plane, nil
	}

	var err error
	if stream.lumaPlane, err = readPlane(lumaLen); err != nil {
		return nil, errors.Wrap(err, "luma plane")
	}
	if stream.orangePlane, err = readPlane(orangeLen); err != nil {
		return nil, errors.Wrap(err, "orange chroma plane")
	}
	if stream.greenPlane, err = readPlane(greenLen); err != nil {
		return nil, errors.Wrap(err, "green chroma plane")
	}
	if stream.alphaPlane, err = readPlane(alphaLen); err != nil {
		return nil, errors.Wrap(err, "alpha plane")
	}

	return stream, nil
}
