package clearcodec

import "github.com/rcarmo/clearcodec/internal/pixelformat"

// resizeVBarEntry implements L4: grow e's pixel buffer to hold count
// pixels in format, zero-filling the newly appended tail and preserving
// the existing prefix. A no-op when count <= e.Size.
func resizeVBarEntry(e *VBarEntry, count int, format pixelformat.Format) {
	if count <= e.Size {
		return
	}
	bpp := pixelformat.BytesPerPixel(format)
	grown := make([]byte, count*bpp)
	copy(grown, e.Pixels)
	e.Pixels = grown
	e.Size = count
}
