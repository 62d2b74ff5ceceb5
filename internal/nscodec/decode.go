package nscodec

import (
	"github.com/pkg/errors"

	"github.com/rcarmo/clearcodec/internal/pixelformat"
)

// ProcessMessage decodes one NSCodec bitmap stream of the given width x
// height and blits the result into dst (stride nDstStep, format dstFmt) at
// (xDst, yDst), clipped to a logical destination size of dstW x dstH. This
// is the sole entry point ClearCodec's subcodec dispatcher (§4.6) uses.
func (c *Context) ProcessMessage(width, height int, input []byte,
	dst []byte, dstFmt pixelformat.Format, nDstStep, xDst, yDst, dstW, dstH int) error {
	stream, err := parseBitmapStream(input)
	if err != nil {
		return errors.Wrap(err, "nscodec: parse stream")
	}

	chromaSubsampling := stream.chromaSubsamplingLevel != 0

	var lumaWidth, lumaHeight, chromaWidth, chromaHeight int
	if chromaSubsampling {
		lumaWidth = roundUpToMultiple(width, 8)
		lumaHeight = height
		chromaWidth = lumaWidth / 2
		chromaHeight = roundUpToMultiple(height, 2) / 2
	} else {
		lumaWidth, lumaHeight = width, height
		chromaWidth, chromaHeight = width, height
	}

	lumaExpected := lumaWidth * lumaHeight
	chromaExpected := chromaWidth * chromaHeight

	luma, err := decompressPlane(stream.lumaPlane, lumaExpected)
	if err != nil {
		return errors.Wrap(err, "nscodec: luma plane")
	}

	orange, err := decompressPlane(stream.orangePlane, chromaExpected)
	if err != nil {
		return errors.Wrap(err, "nscodec: orange chroma plane")
	}

	green, err := decompressPlane(stream.greenPlane, chromaExpected)
	if err != nil {
		return errors.Wrap(err, "nscodec: green chroma plane")
	}

	var alpha []byte
	if len(stream.alphaPlane) > 0 {
		alpha, err = decompressPlane(stream.alphaPlane, width*height)
		if err != nil {
			return errors.Wrap(err, "nscodec: alpha plane")
		}
	}

	if chromaSubsampling {
		orange = chromaSuperSample(orange, chromaWidth, chromaHeight, lumaWidth, lumaHeight)
		green = chromaSuperSample(green, chromaWidth, chromaHeight, lumaWidth, lumaHeight)
	}

	if stream.colorLossLevel > 1 {
		orange = restoreColorLoss(orange, stream.colorLossLevel)
		green = restoreColorLoss(green, stream.colorLossLevel)
	}

	bpp := pixelformat.BytesPerPixel(c.format)
	plane := make([]byte, width*height*bpp)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			planeIdx := y*lumaWidth + x
			if planeIdx >= len(luma) || planeIdx >= len(orange) || planeIdx >= len(green) {
				continue
			}

			yVal := int(luma[planeIdx])
			co := int(orange[planeIdx]) - 128
			cg := int(green[planeIdx]) - 128

			t := yVal - cg
			r := clampByte(t + co)
			g := clampByte(yVal + cg)
			b := clampByte(t - co)

			a := byte(0xFF)
			if alpha != nil && planeIdx < len(alpha) {
				a = alpha[planeIdx]
			}

			color := pixelformat.GetColor(c.format, r, g, b, a)
			dstIdx := (y*width + x) * bpp
			if err := pixelformat.WriteColor(plane[dstIdx:], c.format, color); err != nil {
				return errors.Wrap(err, "nscodec: write decoded pixel")
			}
		}
	}

	return blitPlane(dst, nDstStep, dstFmt, xDst, yDst, width, height, plane, width*bpp, c.format, dstW, dstH)
}

// blitPlane copies the freshly-decoded plane into the caller's destination
// rectangle, clipping against dstW/dstH exactly as ClearCodec's own L1
// colour-conversion blit does.
func blitPlane(dst []byte, nDstStep int, dstFmt pixelformat.Format, xDst, yDst, width, height int,
	src []byte, nSrcStep int, srcFmt pixelformat.Format, dstW, dstH int) error {
	if xDst+width > dstW {
		width = dstW - xDst
	}
	if yDst+height > dstH {
		height = dstH - yDst
	}
	if width <= 0 || height <= 0 {
		return nil
	}

	srcBpp := pixelformat.BytesPerPixel(srcFmt)
	dstBpp := pixelformat.BytesPerPixel(dstFmt)

	for y := 0; y < height; y++ {
		srcLine := src[y*nSrcStep:]
		dstLine := dst[(yDst+y)*nDstStep:]

		for x := 0; x < width; x++ {
			color, err := pixelformat.ReadColor(srcLine[x*srcBpp:], srcFmt, nil)
			if err != nil {
				return errors.Wrapf(err, "nscodec blit: read (%d,%d)", x, y)
			}
			color = pixelformat.ConvertColor(color, srcFmt, dstFmt, nil)
			if err := pixelformat.WriteColor(dstLine[(xDst+x)*dstBpp:], dstFmt, color); err != nil {
				return errors.Wrapf(err, "nscodec blit: write (%d,%d)", xDst+x, yDst+y)
			}
		}
	}

	return nil
}
