package codec

import "errors"

// Errors returned by the RLE decompressor and compressor. Every failure
// collapses into one of these four causes; none of them is recoverable
// within the current tile.
var (
	// ErrTruncated is returned when an order requires more input bytes
	// than remain in the source buffer.
	ErrTruncated = errors.New("codec: truncated RLE input")

	// ErrOverflow is returned when an order would write past the end of
	// the current scanline or the destination buffer.
	ErrOverflow = errors.New("codec: RLE output overflow")

	// ErrUnsupportedGeometry is returned when requested tile dimensions
	// fall outside the codec's contract (width/height > 64, width not a
	// multiple of 4 for the compressor).
	ErrUnsupportedGeometry = errors.New("codec: unsupported tile geometry")

	// ErrUnsupportedDepth is returned when bpp is not one of 8, 15, 16, 24.
	ErrUnsupportedDepth = errors.New("codec: unsupported color depth")

	// ErrAllocationFailure is returned when the context's scratch buffer
	// could not be grown to the requested size.
	ErrAllocationFailure = errors.New("codec: scratch buffer allocation failed")
)
