package clearcodec

import "github.com/rcarmo/clearcodec/internal/pixelformat"

const (
	glyphFlagIndex = 0x01
	glyphFlagHit   = 0x02
	glyphFlagCacheReset = 0x20

	maxGlyphArea = 1024 * 1024
)

// decodeGlyph implements L7: resolve a glyph cache hit or record a new
// cache slot's size, reading the glyphIndex from data when glyphFlags
// requests it. Returns the number of bytes of data consumed (0 or 2).
func (c *Context) decodeGlyph(glyphFlags byte, data []byte, nWidth, nHeight int,
	dst []byte, dstStep int, dstFmt pixelformat.Format, xDst, yDst, dstW, dstH int, palette *pixelformat.Palette256) (int, error) {

	hit := glyphFlags&glyphFlagHit != 0
	index := glyphFlags&glyphFlagIndex != 0

	if hit && !index {
		return 0, fail("glyph: GLYPH_HIT set without GLYPH_INDEX")
	}
	if !index {
		return 0, nil
	}

	if nWidth*nHeight > maxGlyphArea {
		return 0, fail("glyph: area %d exceeds %d", nWidth*nHeight, maxGlyphArea)
	}

	r := newByteReader(data)
	glyphIndexWord, err := r.uint16()
	if err != nil {
		return 0, err
	}
	glyphIndex := int(glyphIndexWord)
	if glyphIndex >= glyphCacheSize {
		return 0, fail("glyph: index %d out of range", glyphIndex)
	}

	entry := &c.glyphCache[glyphIndex]
	count := nWidth * nHeight
	bpp := pixelformat.BytesPerPixel(c.format)

	if hit {
		if entry.Count < count || entry.Count == 0 {
			return 0, fail("glyph: cache hit on slot %d has %d pixels, need %d", glyphIndex, entry.Count, count)
		}
		err := blit(dst, dstStep, dstFmt, xDst, yDst, nWidth, nHeight, dstW, dstH,
			entry.Pixels, nWidth*bpp, c.format, palette)
		return r.pos, err
	}

	// GLYPH_INDEX only: grow the slot's capacity to the requested size and
	// blit from it immediately. The slot's pixels are whatever was there
	// from a prior cache cycle (or zero, on first growth) until a later
	// payload in this same frame populates the destination region; this
	// mirrors the source's literal behaviour rather than the
	// evidently-intended populate-after-render flow. See the design notes
	// on glyph insert. Count always tracks this insert's size even when
	// capacity (Size) doesn't grow, so a later GLYPH_HIT is checked
	// against the last-populated size, not the high-water capacity.
	if count > entry.Size {
		entry.Pixels = growGlyphPixels(entry.Pixels, count*bpp)
		entry.Size = count
	}
	entry.Count = count
	err = blit(dst, dstStep, dstFmt, xDst, yDst, nWidth, nHeight, dstW, dstH,
		entry.Pixels, nWidth*bpp, c.format, palette)
	return r.pos, err
}

func growGlyphPixels(existing []byte, size int) []byte {
	if len(existing) >= size {
		return existing
	}
	grown := make([]byte, size)
	copy(grown, existing)
	return grown
}
