package nscodec

import "github.com/pkg/errors"

// decompressPlane returns data unchanged when it is already exactly
// expectedSize bytes (raw, uncompressed plane), or runs it through the
// NSCodec RLE scheme otherwise.
func decompressPlane(data []byte, expectedSize int) ([]byte, error) {
	if len(data) == expectedSize {
		return data, nil
	}
	if len(data) > expectedSize {
		return nil, errors.Wrapf(ErrInvalidStream, "plane %d bytes exceeds expected %d", len(data), expectedSize)
	}
	return rleDecompress(data, expectedSize)
}

// rleDecompress decompresses one NSCodec RLE-encoded plane. The format is a
// sequence of run segments (top bit set: repeat one byte runLength times)
// and literal segments (top bit clear: copy literalLength raw bytes), each
// length field escaping to an extra byte when it would otherwise encode 0,
// followed by 4 bytes of trailing "EndData" copied verbatim to the tail of
// the plane.
func rleDecompress(data []byte, expectedSize int) ([]byte, error) {
	if len(data) < 4 {
		return nil, errors.Wrapf(ErrInvalidStream, "RLE plane needs at least 4 bytes, got %d", len(data))
	}

	result := make([]byte, 0, expectedSize)
	offset := 0
	dataLen := len(data) - 4 // exclude EndData

	for offset < dataLen && len(result) < expectedSize-4 {
		header := data[offset]
		offset++

		if header&0x80 != 0 {
			runLength := int(header & 0x7F)
			if runLength == 0 {
				if offset >= dataLen {
					return nil, errors.Wrap(ErrInvalidStream, "RLE run: missing extended length byte")
				}
				runLength = int(data[offset]) + 128
				offset++
			}
			if offset >= dataLen {
				return nil, errors.Wrap(ErrInvalidStream, "RLE run: missing value byte")
			}
			runValue := data[offset]
			offset++

			for i := 0; i < runLength && len(result) < expectedSize-4; i++ {
				result = append(result, runValue)
			}
		} else {
			literalLength := int(header)
			if literalLength == 0 {
				if offset >= dataLen {
					return nil, errors.Wrap(ErrInvalidStream, "RLE literal: missing extended length byte")
				}
				literalLength = int(data[offset]) + 128
				offset++
			}

			if offset+literalLength > dataLen {
				return nil, errors.Wrapf(ErrInvalidStream, "RLE literal of %d bytes overruns plane at offset %d", literalLength, offset)
			}

			result = append(result, data[offset:offset+literalLength]...)
			offset += literalLength
		}
	}

	endData := data[len(data)-4:]
	for _, b := range endData {
		if len(result) < expectedSize {
			result = append(result, b)
		}
	}

	for len(result) < expectedSize {
		result = append(result, 0)
	}

	return result[:expectedSize], nil
}

// chromaSuperSample upsamples a 4:2:0-subsampled chroma plane back to luma
// resolution by nearest-neighbor replication.
func chromaSuperSample(plane []byte, srcWidth, srcHeight, dstWidth, dstHeight int) []byte {
	result := make([]byte, dstWidth*dstHeight)

	for y := 0; y < dstHeight; y++ {
		srcY := y / 2
		if srcY >= srcHeight {
			srcY = srcHeight - 1
		}

		for x := 0; x < dstWidth; x++ {
			srcX := x / 2
			if srcX >= srcWidth {
				srcX = srcWidth - 1
			}

			srcIdx := srcY*srcWidth + srcX
			dstIdx := y*dstWidth + x

			if srcIdx < len(plane) {
				result[dstIdx] = plane[srcIdx]
			}
		}
	}

	return result
}

// restoreColorLoss undoes the chroma quantization NSCodec applies above
// colorLossLevel 1 by left-shifting each sample back up, clamped to 255.
func restoreColorLoss(plane []byte, colorLossLevel uint8) []byte {
	if colorLossLevel <= 1 {
		return plane
	}

	shift := colorLossLevel - 1
	result := make([]byte, len(plane))

	for i, v := range plane {
		restored := int(v) << shift
		if restored > 255 {
			restored = 255
		}
		result[i] = byte(restored)
	}

	return result
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

func roundUpToMultiple(n, m int) int {
	if m == 0 {
		return n
	}
	if r := n % m; r != 0 {
		return n + m - r
	}
	return n
}
