package clearcodec

import "github.com/rcarmo/clearcodec/internal/pixelformat"

// decodeResidual implements L2: a full-frame BGR24 run-length stream that
// must produce exactly width*height pixels, decoded into the context's
// temp buffer in its working format and then blitted to the destination
// rectangle.
func (c *Context) decodeResidual(data []byte, width, height int,
	dst []byte, dstStep int, dstFmt pixelformat.Format, xDst, yDst, dstW, dstH int, palette *pixelformat.Palette256) error {

	total := width * height
	bpp := pixelformat.BytesPerPixel(c.format)
	c.ensureTempCapacity(total * bpp)

	r := newByteReader(data)

	produced := 0
	for r.remaining() > 0 {
		triple, err := r.bytes(3)
		if err != nil {
			return err
		}
		b, g, rr := triple[0], triple[1], triple[2]

		runLen, err := r.readRunLength()
		if err != nil {
			return err
		}

		if produced+int(runLen) > total {
			return fail("residual: run of %d pixels at offset %d overflows frame of %d pixels", runLen, produced, total)
		}

		color := pixelformat.GetColor(c.format, rr, g, b, 0xFF)
		for i := uint32(0); i < runLen; i++ {
			if err := pixelformat.WriteColor(c.tempBuffer[produced*bpp:], c.format, color); err != nil {
				return err
			}
			produced++
		}
	}

	if produced != total {
		return fail("residual: produced %d pixels, want %d", produced, total)
	}

	return blit(dst, dstStep, dstFmt, xDst, yDst, width, height, dstW, dstH,
		c.tempBuffer, width*bpp, c.format, palette)
}
