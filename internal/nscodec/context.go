// Package nscodec implements the NSCodec bitmap decoder (MS-RDPNSC): a
// nested format ClearCodec dispatches to for subcodec ID 1. NSCodec splits
// an image into AYCoCg planes (luma, two chroma, optional alpha), each
// separately RLE-compressed, and recombines them into pixels.
//
// This package is consumed by the ClearCodec core only through Context and
// its ProcessMessage method, matching the opaque collaborator interface
// spec §6 describes for NSCodec.
package nscodec

import "github.com/rcarmo/clearcodec/internal/pixelformat"

// Context holds the configuration NSCodec needs across calls: the pixel
// format it should emit into a destination buffer. It carries no
// frame-to-frame cache state of its own (NSCodec, unlike ClearCodec, has no
// persistent glyph/VBar caches).
type Context struct {
	format pixelformat.Format
}

// NewContext creates an NSCodec context. The default output format is
// RGB24, matching how ClearCodec configures its nested NSC context.
func NewContext() *Context {
	return &Context{format: pixelformat.RGB24}
}

// SetPixelFormat changes the format planes are recombined into before
// being blitted to a caller's destination buffer.
func (c *Context) SetPixelFormat(f pixelformat.Format) {
	c.format = f
}

// Free releases any resources held by the context. NSCodec's Go
// implementation holds nothing beyond what the garbage collector already
// tracks; Free exists for lifecycle parity with the context_new/free
// pattern spec §6 describes for this collaborator.
func (c *Context) Free() {}
