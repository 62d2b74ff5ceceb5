package clearcodec

import "github.com/rcarmo/clearcodec/internal/pixelformat"

const maxVBarHeight = 52

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// decodeBands implements L5: the vertical-bar band layer, reconstructing
// one column at a time from the two cooperating ring caches and writing
// each resolved VBar to the destination rectangle.
func (c *Context) decodeBands(data []byte, nWidth, nHeight int,
	dst []byte, dstStep int, dstFmt pixelformat.Format, xDst, yDst, dstW, dstH int, palette *pixelformat.Palette256) error {

	r := newByteReader(data)
	bpp := pixelformat.BytesPerPixel(c.format)

	for r.remaining() > 0 {
		header, err := r.bytes(11)
		if err != nil {
			return err
		}
		xStart := int(uint16(header[0]) | uint16(header[1])<<8)
		xEnd := int(uint16(header[2]) | uint16(header[3])<<8)
		yStart := int(uint16(header[4]) | uint16(header[5])<<8)
		yEnd := int(uint16(header[6]) | uint16(header[7])<<8)
		b, g, rr := header[8], header[9], header[10]

		if xEnd < xStart {
			return fail("bands: xEnd %d < xStart %d", xEnd, xStart)
		}
		if yEnd < yStart {
			return fail("bands: yEnd %d < yStart %d", yEnd, yStart)
		}

		vBarHeight := yEnd - yStart + 1
		if vBarHeight > maxVBarHeight {
			return fail("bands: vBarHeight %d exceeds %d", vBarHeight, maxVBarHeight)
		}
		vBarCount := xEnd - xStart + 1
		colorBkg := pixelformat.GetColor(c.format, rr, g, b, 0xFF)

		for i := 0; i < vBarCount; i++ {
			vBarHeaderWord, err := r.uint16()
			if err != nil {
				return err
			}

			var vBarEntry *VBarEntry

			switch {
			case vBarHeaderWord&0x8000 == 0x8000: // VBAR_CACHE_HIT
				index := int(vBarHeaderWord & 0x7FFF)
				if index >= len(c.vbarStorage) {
					return fail("bands: vbar cache hit index %d out of range", index)
				}
				vBarEntry = &c.vbarStorage[index]
				if vBarEntry.Pixels == nil || vBarEntry.Count == 0 {
					return fail("bands: vbar cache hit on empty slot %d", index)
				}

			case vBarHeaderWord&0xC000 == 0x4000: // SHORT_VBAR_CACHE_HIT
				index := int(vBarHeaderWord & 0x3FFF)
				if index >= len(c.shortVBarStorage) {
					return fail("bands: short vbar cache hit index %d out of range", index)
				}
				shortEntry := &c.shortVBarStorage[index]
				if shortEntry.Pixels == nil || shortEntry.Count == 0 {
					return fail("bands: short vbar cache hit on empty slot %d", index)
				}
				vBarYOn, err := r.byte()
				if err != nil {
					return err
				}
				vBarEntry, err = c.rebuildVBar(int(vBarYOn), shortEntry.Count, shortEntry.Pixels, vBarHeight, colorBkg)
				if err != nil {
					return err
				}

			case vBarHeaderWord&0xC000 == 0x0000: // SHORT_VBAR_CACHE_MISS
				vBarYOn := int(vBarHeaderWord & 0xFF)
				vBarYOff := int((vBarHeaderWord >> 8) & 0x3F)
				if vBarYOff < vBarYOn {
					return fail("bands: short vbar yOff %d < yOn %d", vBarYOff, vBarYOn)
				}
				vBarShortPixelCount := vBarYOff - vBarYOn
				if vBarShortPixelCount > maxVBarHeight {
					return fail("bands: short vbar pixel count %d exceeds %d", vBarShortPixelCount, maxVBarHeight)
				}

				triples, err := r.bytes(vBarShortPixelCount * 3)
				if err != nil {
					return err
				}
				short := &c.shortVBarStorage[c.shortVBarCursor]
				resizeVBarEntry(short, vBarShortPixelCount, c.format)
				for p := 0; p < vBarShortPixelCount; p++ {
					pb, pg, pr := triples[p*3], triples[p*3+1], triples[p*3+2]
					color := pixelformat.GetColor(c.format, pr, pg, pb, 0xFF)
					if err := pixelformat.WriteColor(short.Pixels[p*bpp:], c.format, color); err != nil {
						return err
					}
				}
				short.Count = vBarShortPixelCount
				c.shortVBarCursor = (c.shortVBarCursor + 1) % shortVBarStorageSize

				vBarEntry, err = c.rebuildVBar(vBarYOn, vBarShortPixelCount, short.Pixels, vBarHeight, colorBkg)
				if err != nil {
					return err
				}

			default:
				return fail("bands: unreachable vbar header case 0x%04x", vBarHeaderWord)
			}

			if vBarEntry.Count != vBarHeight {
				return fail("bands: resolved vbar count %d != vBarHeight %d", vBarEntry.Count, vBarHeight)
			}

			// Write-out: the bound check below compares the column index i
			// against nWidth directly rather than xStart+i. Preserved from
			// the source; see the design notes on band write-out.
			if i < nWidth {
				destX := xDst + xStart + i
				destY := yDst + yStart
				rows := minInt(vBarEntry.Count, nHeight)
				if err := blit(dst, dstStep, dstFmt, destX, destY, 1, rows, dstW, dstH,
					vBarEntry.Pixels, bpp, c.format, palette); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// rebuildVBar constructs a new full-height VBar at VBarStorage[vbar_cursor]
// from three zones: background above the short range, the short range's
// pixels, and background below it, each clipped to vBarHeight.
func (c *Context) rebuildVBar(vBarYOn, vBarShortPixelCount int, shortPixels []byte, vBarHeight int, colorBkg uint32) (*VBarEntry, error) {
	bpp := pixelformat.BytesPerPixel(c.format)
	entry := &c.vbarStorage[c.vbarCursor]
	resizeVBarEntry(entry, vBarHeight, c.format)

	zone1End := maxInt(0, minInt(vBarYOn, vBarHeight))
	for row := 0; row < zone1End; row++ {
		if err := pixelformat.WriteColor(entry.Pixels[row*bpp:], c.format, colorBkg); err != nil {
			return nil, err
		}
	}

	zone2Start := maxInt(0, minInt(vBarYOn, vBarHeight))
	zone2End := maxInt(0, minInt(vBarYOn+vBarShortPixelCount, vBarHeight))
	for row := zone2Start; row < zone2End; row++ {
		srcIdx := row - vBarYOn
		if srcIdx < 0 || srcIdx >= vBarShortPixelCount {
			continue
		}
		color, err := pixelformat.ReadColor(shortPixels[srcIdx*bpp:], c.format, nil)
		if err != nil {
			return nil, err
		}
		if err := pixelformat.WriteColor(entry.Pixels[row*bpp:], c.format, color); err != nil {
			return nil, err
		}
	}

	zone3Start := maxInt(0, minInt(vBarYOn+vBarShortPixelCount, vBarHeight))
	for row := zone3Start; row < vBarHeight; row++ {
		if err := pixelformat.WriteColor(entry.Pixels[row*bpp:], c.format, colorBkg); err != nil {
			return nil, err
		}
	}

	entry.Count = vBarHeight
	c.vbarCursor = (c.vbarCursor + 1) % vbarStorageSize

	return entry, nil
}
