package clearcodec

import "github.com/pkg/errors"

// ErrMalformedFrame is the single error kind for every in-frame decode
// failure: short stream, out-of-range index, pixel-count overflow, unknown
// subcodec, cache cursor out of range, invalid glyph flag combination, or
// sequence mismatch. All of these map to the historical return code -1;
// Code() recovers that value for callers that still expect it.
var ErrMalformedFrame = errors.New("clearcodec: malformed frame")

// Preflight errors carry their own historical negative codes distinct from
// -1, preserved for API compatibility with the original decompress_frame
// signature.
var (
	ErrNilDestination  = errors.New("clearcodec: destination buffer is nil")
	ErrInvalidDestSize = errors.New("clearcodec: destination width/height must be > 0")
	ErrDimensionTooLarge = errors.New("clearcodec: width/height exceeds 0xFFFF")
	ErrStreamAlloc     = errors.New("clearcodec: stream allocation failed")
)

// Code maps a decompress_frame error to the historical integer return code
// used by the original C API, for callers migrating from it. Returns 0 for
// a nil error.
func Code(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNilDestination):
		return -1002
	case errors.Is(err, ErrDimensionTooLarge):
		return -1004
	case errors.Is(err, ErrInvalidDestSize):
		return -1022
	case errors.Is(err, ErrStreamAlloc):
		return -2005
	default:
		return -1
	}
}

// fail wraps ErrMalformedFrame with a field-naming message and logs it
// under the codec.clear target, matching the source's diagnostic-on-every-
// failure-path design.
func fail(format string, args ...interface{}) error {
	log.Error(format, args...)
	return errors.Wrapf(ErrMalformedFrame, format, args...)
}
