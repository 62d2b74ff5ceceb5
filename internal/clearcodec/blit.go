package clearcodec

import "github.com/rcarmo/clearcodec/internal/pixelformat"

// blit copies a w×h rectangle from src (in srcFmt, tightly packed at
// srcStride bytes per row) to offset (xDst, yDst) within dst (in dstFmt,
// dstStep bytes per row, logical size dstW×dstH), converting each pixel
// through the optional palette. Width/height are clipped against dstW/
// dstH before any pixel is touched.
func blit(dst []byte, dstStep int, dstFmt pixelformat.Format, xDst, yDst, w, h int, dstW, dstH int,
	src []byte, srcStride int, srcFmt pixelformat.Format, palette *pixelformat.Palette256) error {

	if xDst >= dstW || yDst >= dstH {
		return nil
	}
	if xDst+w > dstW {
		w = dstW - xDst
	}
	if yDst+h > dstH {
		h = dstH - yDst
	}
	if w <= 0 || h <= 0 {
		return nil
	}

	srcBpp := pixelformat.BytesPerPixel(srcFmt)
	dstBpp := pixelformat.BytesPerPixel(dstFmt)

	for row := 0; row < h; row++ {
		srcRow := src[row*srcStride:]
		dstRow := dst[(yDst+row)*dstStep+xDst*dstBpp:]

		for col := 0; col < w; col++ {
			color, err := pixelformat.ReadColor(srcRow[col*srcBpp:], srcFmt, palette)
			if err != nil {
				return err
			}
			color = pixelformat.ConvertColor(color, srcFmt, dstFmt, palette)
			if err := pixelformat.WriteColor(dstRow[col*dstBpp:], dstFmt, color); err != nil {
				return err
			}
		}
	}
	return nil
}
