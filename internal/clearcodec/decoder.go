package clearcodec

import "github.com/rcarmo/clearcodec/internal/pixelformat"

const (
	maxFrameDimension = 0xFFFF
)

// DecompressFrame implements L8, the frame driver: parse the frame header,
// validate and advance the sequence number, then fan out to the glyph,
// residual, bands, and subcodec payloads in that fixed order. src is the
// full ClearCodec-encoded frame; width/height are the frame's logical
// pixel dimensions; dst is the destination image buffer of dstStep bytes
// per row, written starting at (xDst, yDst), clipped to a logical size of
// dstW×dstH. palette is consulted only when dstFmt requires it (e.g.
// 8-bit indexed); pass nil otherwise.
//
// Returns nil on success. On failure the destination buffer may be
// partially written; callers must treat its contents as undefined. Use
// Code(err) to recover the historical negative return codes.
func (c *Context) DecompressFrame(src []byte, width, height int,
	dst []byte, dstFmt pixelformat.Format, dstStep, xDst, yDst, dstW, dstH int,
	palette *pixelformat.Palette256) error {

	if dst == nil {
		return ErrNilDestination
	}
	if dstW <= 0 || dstH <= 0 {
		return ErrInvalidDestSize
	}
	if width > maxFrameDimension || height > maxFrameDimension {
		return ErrDimensionTooLarge
	}
	if src == nil {
		return ErrStreamAlloc
	}

	r := newByteReader(src)
	glyphFlags, err := r.byte()
	if err != nil {
		return fail("frame header: %v", err)
	}
	seqNumber, err := r.byte()
	if err != nil {
		return fail("frame header: %v", err)
	}

	if c.seqNumber == 0 && seqNumber != 0 {
		c.seqNumber = int(seqNumber)
	}
	if int(seqNumber) != c.seqNumber {
		return fail("sequence mismatch: expected %d, got %d", c.seqNumber, seqNumber)
	}
	c.seqNumber = (int(seqNumber) + 1) % 256

	if glyphFlags&glyphFlagCacheReset != 0 {
		c.vbarCursor = 0
		c.shortVBarCursor = 0
	}

	glyphBytesRead, err := c.decodeGlyph(glyphFlags, src[r.pos:], width, height,
		dst, dstStep, dstFmt, xDst, yDst, dstW, dstH, palette)
	if err != nil {
		return err
	}
	r.pos += glyphBytesRead

	residualBC, bandsBC, subcodecBC, ok, err := readPayloadLengths(r)
	if err != nil {
		return err
	}
	if !ok {
		glyphOnly := glyphFlags&(glyphFlagHit|glyphFlagIndex) != 0
		if glyphOnly {
			return nil
		}
		return fail("short stream: missing payload length header")
	}

	if residualBC > 0 {
		data, err := r.bytes(int(residualBC))
		if err != nil {
			return err
		}
		if err := c.decodeResidual(data, width, height, dst, dstStep, dstFmt, xDst, yDst, dstW, dstH, palette); err != nil {
			return err
		}
	}

	if bandsBC > 0 {
		data, err := r.bytes(int(bandsBC))
		if err != nil {
			return err
		}
		if err := c.decodeBands(data, width, height, dst, dstStep, dstFmt, xDst, yDst, dstW, dstH, palette); err != nil {
			return err
		}
	}

	if subcodecBC > 0 {
		data, err := r.bytes(int(subcodecBC))
		if err != nil {
			return err
		}
		if err := c.decodeSubcodecs(data, width, height, dst, dstStep, dstFmt, xDst, yDst, dstW, dstH, palette); err != nil {
			return err
		}
	}

	return nil
}

// readPayloadLengths attempts to read the three u32 payload lengths
// (residual, bands, subcodec byte counts). ok is false when fewer than 12
// bytes remain, which the caller treats as a glyph-only short stream iff
// the frame's glyph flags have GLYPH_HIT or GLYPH_INDEX (or both) set.
func readPayloadLengths(r *byteReader) (residualBC, bandsBC, subcodecBC uint32, ok bool, err error) {
	if r.remaining() < 12 {
		return 0, 0, 0, false, nil
	}
	residualBC, err = r.uint32()
	if err != nil {
		return 0, 0, 0, false, err
	}
	bandsBC, err = r.uint32()
	if err != nil {
		return 0, 0, 0, false, err
	}
	subcodecBC, err = r.uint32()
	if err != nil {
		return 0, 0, 0, false, err
	}
	return residualBC, bandsBC, subcodecBC, true, nil
}

// Compress is unimplemented: the source codec's encoder path is not part
// of this decoder-only port (see spec scope — out of scope collaborator
// (c), the encoder).
func (c *Context) Compress([]byte, int, int) ([]byte, error) {
	return nil, fail("compress: unimplemented")
}
