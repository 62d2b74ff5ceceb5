// Package clearcodec implements the decoder for the ClearCodec bitmap
// compression format (MS-RDPEGFX's "Clear" codec): a tagged concatenation
// of a glyph cache lookup, a full-frame residual run-length payload, a
// vertical-bar band layer with two ring caches, and a tile-based subcodec
// payload (raw / NSCodec / palette RLE), all sharing one per-connection
// Context.
//
// Grounded on libfreerdp/codec/clear.c; package layout follows this
// repository's other codec packages (one file per concern, tests
// alongside).
package clearcodec

import (
	"github.com/rcarmo/clearcodec/internal/logging"
	"github.com/rcarmo/clearcodec/internal/nscodec"
	"github.com/rcarmo/clearcodec/internal/pixelformat"
)

const (
	glyphCacheSize    = 4000
	vbarStorageSize   = 32768
	shortVBarStorageSize = 16384
	initialTempSize   = 512 * 512 * 4
)

var log = logging.Target("codec.clear")

// GlyphEntry is one slot of the glyph cache: a reusable 32-bit-pixel
// buffer. Count is the number of valid pixels written by the most recent
// insert; Size is the allocated capacity in pixels, which only grows
// across a context's lifetime.
type GlyphEntry struct {
	Pixels []byte // 32-bit pixels in the context's working format
	Count  int    // valid pixel count as of the last insert
	Size   int    // capacity in pixels
}

// VBarEntry is one slot of either VBar ring cache: a reusable pixel buffer
// in the context's working format.
type VBarEntry struct {
	Pixels []byte
	Count  int // valid pixel count
	Size   int // capacity in pixels
}

// Context holds everything ClearCodec needs across frames for one RDP
// session direction: the expected sequence number, a scratch buffer for
// residual/subcodec tiles, the glyph cache, and the two VBar ring caches.
// A Context is not safe for concurrent use; separate contexts are fully
// independent (spec §5).
type Context struct {
	seqNumber int // expected sequence number of the next frame, mod 256
	format    pixelformat.Format
	nsc       *nscodec.Context

	tempBuffer []byte // scratch buffer for residual/subcodec tiles, grow-only within a frame

	glyphCache [glyphCacheSize]GlyphEntry

	vbarStorage []VBarEntry
	vbarCursor  int

	shortVBarStorage []VBarEntry
	shortVBarCursor  int
}

// NewContext creates a ClearCodec decoder context. compressor is accepted
// for API parity with the C constructor (clear_context_new(Compressor))
// but is otherwise ignored: this package implements the decoder only.
func NewContext(compressor bool) *Context {
	_ = compressor

	nsc := nscodec.NewContext()
	nsc.SetPixelFormat(pixelformat.RGB24)

	c := &Context{
		format:           pixelformat.BGRX32,
		nsc:              nsc,
		tempBuffer:       make([]byte, initialTempSize),
		vbarStorage:      make([]VBarEntry, vbarStorageSize),
		shortVBarStorage: make([]VBarEntry, shortVBarStorageSize),
	}
	return c
}

// Reset zeroes the sequence number and both VBar cursors. Cache payloads
// are not freed: later frames that reference stale slots by index will
// still find buffers there (just ones a CACHE_RESET-aware peer would not
// reference until they are rewritten).
func (c *Context) Reset() {
	c.seqNumber = 0
	c.vbarCursor = 0
	c.shortVBarCursor = 0
}

// Free releases cache payloads and the nested NSCodec context. Since Go
// buffers are garbage collected, this mainly exists for lifecycle parity
// with clear_context_free; it does drop references eagerly so a large
// context can be collected without waiting on the next GC cycle touching
// every slot lazily.
func (c *Context) Free() {
	for i := range c.glyphCache {
		c.glyphCache[i] = GlyphEntry{}
	}
	for i := range c.vbarStorage {
		c.vbarStorage[i] = VBarEntry{}
	}
	for i := range c.shortVBarStorage {
		c.shortVBarStorage[i] = VBarEntry{}
	}
	c.tempBuffer = nil
	c.nsc.Free()
}

// ensureTempCapacity grows the scratch buffer to at least n bytes. It never
// shrinks, matching the C implementation's realloc-on-growth-only scratch
// buffer.
func (c *Context) ensureTempCapacity(n int) {
	if len(c.tempBuffer) >= n {
		return
	}
	c.tempBuffer = make([]byte, n)
}
