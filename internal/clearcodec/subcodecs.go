package clearcodec

import "github.com/rcarmo/clearcodec/internal/pixelformat"

const (
	subcodecUncompressed = 0
	subcodecNSCodec      = 1
	subcodecRLEX         = 2
)

// decodeSubcodecs implements L6: a sequence of tile records, each
// dispatched by its subcodecId to one of the three inner schemes.
func (c *Context) decodeSubcodecs(data []byte, nWidth, nHeight int,
	dst []byte, dstStep int, dstFmt pixelformat.Format, xDst, yDst, dstW, dstH int, palette *pixelformat.Palette256) error {

	r := newByteReader(data)

	for r.remaining() > 0 {
		header, err := r.bytes(13)
		if err != nil {
			return err
		}
		xStart := int(uint16(header[0]) | uint16(header[1])<<8)
		yStart := int(uint16(header[2]) | uint16(header[3])<<8)
		width := int(uint16(header[4]) | uint16(header[5])<<8)
		height := int(uint16(header[6]) | uint16(header[7])<<8)
		bitmapDataByteCount := int(uint32(header[8]) | uint32(header[9])<<8 | uint32(header[10])<<16 | uint32(header[11])<<24)
		subcodecID := header[12]

		if width > nWidth || height > nHeight {
			return fail("subcodecs: tile %dx%d exceeds frame %dx%d", width, height, nWidth, nHeight)
		}

		payload, err := r.bytes(bitmapDataByteCount)
		if err != nil {
			return err
		}

		tileXDst := xDst + xStart
		tileYDst := yDst + yStart

		bpp := pixelformat.BytesPerPixel(c.format)
		c.ensureTempCapacity(width * height * bpp)

		switch subcodecID {
		case subcodecUncompressed:
			if bitmapDataByteCount != width*height*3 {
				return fail("subcodecs: uncompressed tile expects %d bytes, got %d", width*height*3, bitmapDataByteCount)
			}
			if err := c.blitUncompressedBGR24(payload, width, height, dst, dstStep, dstFmt, tileXDst, tileYDst, dstW, dstH, palette); err != nil {
				return err
			}

		case subcodecNSCodec:
			if err := c.nsc.ProcessMessage(width, height, payload, dst, dstFmt, dstStep, tileXDst, tileYDst, dstW, dstH); err != nil {
				return fail("subcodecs: nscodec tile failed: %v", err)
			}

		case subcodecRLEX:
			if err := c.decodeRLEX(payload, width, height); err != nil {
				return err
			}
			if err := blit(dst, dstStep, dstFmt, tileXDst, tileYDst, width, height, dstW, dstH,
				c.tempBuffer, width*bpp, c.format, palette); err != nil {
				return err
			}

		default:
			return fail("subcodecs: unknown subcodec id %d", subcodecID)
		}
	}

	return nil
}

// blitUncompressedBGR24 converts a tightly-packed BGR24 tile straight from
// the input stream to the destination rectangle (subcodec 0).
func (c *Context) blitUncompressedBGR24(payload []byte, width, height int,
	dst []byte, dstStep int, dstFmt pixelformat.Format, xDst, yDst, dstW, dstH int, palette *pixelformat.Palette256) error {
	return blit(dst, dstStep, dstFmt, xDst, yDst, width, height, dstW, dstH,
		payload, width*3, pixelformat.BGR24, palette)
}
