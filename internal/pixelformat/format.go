// Package pixelformat provides the read/write/convert primitives the
// ClearCodec decoder needs to move pixels between wire formats and a
// destination image buffer, using one canonical 0xAARRGGBB colour value for
// every supported format.
package pixelformat

import "github.com/pkg/errors"

// Format identifies one of the pixel encodings this package understands.
type Format int

const (
	// BGR24 is 3 bytes per pixel, blue-green-red, no alpha.
	BGR24 Format = iota
	// BGRX32 is 4 bytes per pixel, blue-green-red-padding. This is the
	// ClearCodec decoder's internal working format.
	BGRX32
	// BGRA32 is 4 bytes per pixel, blue-green-red-alpha.
	BGRA32
	// RGB24 is 3 bytes per pixel, red-green-blue, no alpha. NSCodec emits
	// pixels in this format.
	RGB24
	// RGBX32 is 4 bytes per pixel, red-green-blue-padding.
	RGBX32
	// Index8 is 1 byte per pixel, an index into a Palette256.
	Index8
)

// ErrShortBuffer is returned when a buffer is too small to hold the pixel
// a read or write operation targets.
var ErrShortBuffer = errors.New("pixelformat: buffer too small for pixel")

// BytesPerPixel returns the number of bytes one pixel occupies in fmt.
func BytesPerPixel(f Format) int {
	switch f {
	case BGR24, RGB24:
		return 3
	case BGRX32, BGRA32, RGBX32:
		return 4
	case Index8:
		return 1
	default:
		return 0
	}
}

// GetColor packs an 8-bit rgba quadruple into the canonical 0xAARRGGBB
// representation ReadColor/WriteColor/ConvertColor operate on. The source
// format passed to GetColor is informational only (symmetry with the
// collaborator interface in spec §6); the canonical representation is
// format-independent.
func GetColor(_ Format, r, g, b, a byte) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// ReadColor reads one pixel at data[0:BytesPerPixel(f)] and returns it in
// the canonical 0xAARRGGBB representation. Index8 requires a non-nil
// palette; all other formats ignore it.
func ReadColor(data []byte, f Format, palette *Palette256) (uint32, error) {
	n := BytesPerPixel(f)
	if n == 0 || len(data) < n {
		return 0, errors.Wrapf(ErrShortBuffer, "read color format %d needs %d bytes, got %d", f, n, len(data))
	}

	switch f {
	case BGR24:
		b, g, r := data[0], data[1], data[2]
		return GetColor(f, r, g, b, 0xFF), nil
	case BGRX32:
		b, g, r := data[0], data[1], data[2]
		return GetColor(f, r, g, b, 0xFF), nil
	case BGRA32:
		b, g, r, a := data[0], data[1], data[2], data[3]
		return GetColor(f, r, g, b, a), nil
	case RGB24:
		r, g, b := data[0], data[1], data[2]
		return GetColor(f, r, g, b, 0xFF), nil
	case RGBX32:
		r, g, b := data[0], data[1], data[2]
		return GetColor(f, r, g, b, 0xFF), nil
	case Index8:
		if palette == nil {
			return 0, errors.New("pixelformat: Index8 read requires a palette")
		}
		return palette.At(data[0]), nil
	default:
		return 0, errors.Errorf("pixelformat: unknown format %d", f)
	}
}

// WriteColor encodes the canonical 0xAARRGGBB color into data[0:BytesPerPixel(f)].
// Index8 is not a writable target (there is no mapping from an arbitrary
// color back to a palette index) and always fails.
func WriteColor(data []byte, f Format, color uint32) error {
	n := BytesPerPixel(f)
	if n == 0 || len(data) < n {
		return errors.Wrapf(ErrShortBuffer, "write color format %d needs %d bytes, got %d", f, n, len(data))
	}

	a := byte(color >> 24)
	r := byte(color >> 16)
	g := byte(color >> 8)
	b := byte(color)

	switch f {
	case BGR24:
		data[0], data[1], data[2] = b, g, r
	case BGRX32:
		data[0], data[1], data[2], data[3] = b, g, r, 0
	case BGRA32:
		data[0], data[1], data[2], data[3] = b, g, r, a
	case RGB24:
		data[0], data[1], data[2] = r, g, b
	case RGBX32:
		data[0], data[1], data[2], data[3] = r, g, b, 0
	default:
		return errors.Errorf("pixelformat: format %d is not writable", f)
	}

	return nil
}

// ConvertColor re-expresses a color read under srcFmt so it can be written
// under dstFmt. Direct-color formats share one canonical representation, so
// this is the identity function for them; it exists as a named step because
// an indexed srcFmt would need the palette to resolve to a color first (the
// ClearCodec RLEX decoder resolves its own palette indices before ever
// calling into this package, so that path is never exercised here, but the
// signature matches spec §6's convert_color(color, srcFmt, dstFmt, palette)).
func ConvertColor(color uint32, _, _ Format, _ *Palette256) uint32 {
	return color
}
