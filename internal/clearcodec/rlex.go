package clearcodec

import "github.com/rcarmo/clearcodec/internal/pixelformat"

// rlexMask is the 9-entry table {0,1,3,7,15,31,63,127,255} indexed by
// number of bits, used to isolate the suite-depth and stop-index fields
// of an RLEX run+suite record.
var rlexMask = [9]byte{0, 1, 3, 7, 15, 31, 63, 127, 255}

// rlexNumBits returns floor(log2(paletteCount-1))+1, with the paletteCount
// == 1 special case forced to 1 bit.
func rlexNumBits(paletteCount int) int {
	if paletteCount <= 1 {
		return 1
	}
	n := paletteCount - 1
	bits := 0
	for n > 0 {
		n >>= 1
		bits++
	}
	return bits
}

// decodeRLEX implements L3: a palette-indexed run+suite RLE stream over a
// width*height pixel tile, decoded into the context's temp buffer in its
// working format.
func (c *Context) decodeRLEX(data []byte, width, height int) error {
	total := width * height
	bpp := pixelformat.BytesPerPixel(c.format)
	c.ensureTempCapacity(total * bpp)

	r := newByteReader(data)

	paletteCountByte, err := r.byte()
	if err != nil {
		return err
	}
	paletteCount := int(paletteCountByte)
	if paletteCount > 127 {
		return fail("rlex: palette count %d exceeds 127", paletteCount)
	}
	if paletteCount == 0 {
		return fail("rlex: palette count is zero")
	}

	palette := make([]uint32, paletteCount)
	for i := 0; i < paletteCount; i++ {
		triple, err := r.bytes(3)
		if err != nil {
			return err
		}
		b, g, rr := triple[0], triple[1], triple[2]
		palette[i] = pixelformat.GetColor(c.format, rr, g, b, 0xFF)
	}

	numBits := rlexNumBits(paletteCount)
	suiteMask := rlexMask[8-numBits]
	stopMask := rlexMask[numBits]

	pixelIndex := 0
	for r.remaining() > 0 {
		tmp, err := r.byte()
		if err != nil {
			return err
		}
		suiteDepth := int((tmp >> uint(numBits)) & suiteMask)
		stopIndex := int(tmp & stopMask)
		if suiteDepth > stopIndex {
			return fail("rlex: suiteDepth %d exceeds stopIndex %d", suiteDepth, stopIndex)
		}
		startIndex := stopIndex - suiteDepth

		if stopIndex >= paletteCount || startIndex >= paletteCount {
			return fail("rlex: index out of range (start=%d stop=%d count=%d)", startIndex, stopIndex, paletteCount)
		}

		rlf, err := r.readRunLength()
		if err != nil {
			return err
		}

		if pixelIndex+int(rlf) > total {
			return fail("rlex: run of %d at offset %d overflows tile of %d pixels", rlf, pixelIndex, total)
		}
		runColor := palette[startIndex]
		for i := uint32(0); i < rlf; i++ {
			if err := pixelformat.WriteColor(c.tempBuffer[pixelIndex*bpp:], c.format, runColor); err != nil {
				return err
			}
			pixelIndex++
		}

		suiteLen := suiteDepth + 1
		if pixelIndex+suiteLen > total {
			return fail("rlex: suite of %d at offset %d overflows tile of %d pixels", suiteLen, pixelIndex, total)
		}
		for idx := startIndex; idx <= stopIndex; idx++ {
			if err := pixelformat.WriteColor(c.tempBuffer[pixelIndex*bpp:], c.format, palette[idx]); err != nil {
				return err
			}
			pixelIndex++
		}
	}

	if pixelIndex != total {
		return fail("rlex: produced %d pixels, want %d", pixelIndex, total)
	}
	return nil
}
