package codec

import "fmt"

// MaxTileDimension is the largest width or height, in pixels, the codec
// accepts for a single tile.
const MaxTileDimension = 64

// decompressTile drives the scanline decoder across an entire tile: it
// iterates height scanlines top-to-bottom, threading the current
// foreground color across rows and flipping from the first-scanline code
// path to the subsequent-scanline path once row 0 completes. dest must be
// exactly width*height*BytesPerPixel bytes.
//
// Trailing bytes left in src once every scanline has been produced are
// accepted silently: the reference decoder this codec is bug-compatible
// with does not require exact input consumption (see the open question
// on trailing-input tolerance).
func decompressTile[T uint8 | uint16 | uint32](pf PixelFormat[T], src, dest []byte, width, height int) error {
	if width <= 0 || height <= 0 || width > MaxTileDimension || height > MaxTileDimension {
		return fmt.Errorf("%w: %dx%d", ErrUnsupportedGeometry, width, height)
	}

	rowBytes := width * pf.BytesPerPixel
	if len(dest) < rowBytes*height {
		return fmt.Errorf("%w: destination too small for %dx%d tile", ErrOverflow, width, height)
	}

	fg := pf.WhitePixel
	srcIdx := 0

	for row := 0; row < height; row++ {
		rowStart := row * rowBytes
		next, err := decodeScanline(pf, src, srcIdx, dest, rowStart, width, row == 0, &fg)
		if err != nil {
			return err
		}
		srcIdx = next
	}

	return nil
}

// Decompress8 decompresses an 8-bit (palette-indexed) RLE bitmap tile.
// dest must hold width*height bytes.
func Decompress8(src, dest []byte, width, height int) error {
	return decompressTile(Pixel8, src, dest, width, height)
}

// Decompress16 decompresses a 16-bit RLE bitmap tile (RGB565 wire
// arrangement; RGB555 uses the identical byte layout, see Decompress15).
// dest must hold width*height*2 bytes.
func Decompress16(src, dest []byte, width, height int) error {
	return decompressTile(Pixel16, src, dest, width, height)
}

// Decompress15 decompresses a 15-bit (RGB555) RLE bitmap tile. The order
// stream and scanline control flow are identical to 16-bit; only the
// downstream color interpretation differs, which is outside this codec's
// scope.
func Decompress15(src, dest []byte, width, height int) error {
	return Decompress16(src, dest, width, height)
}

// Decompress24 decompresses a 24-bit packed BGR RLE bitmap tile. dest
// must hold width*height*3 bytes.
func Decompress24(src, dest []byte, width, height int) error {
	return decompressTile(Pixel24, src, dest, width, height)
}

// DecompressDepth dispatches to the depth-specialized decompressor for
// bpp, returning ErrUnsupportedDepth for anything else.
func DecompressDepth(bpp int, src, dest []byte, width, height int) error {
	switch bpp {
	case 8:
		return Decompress8(src, dest, width, height)
	case 15:
		return Decompress15(src, dest, width, height)
	case 16:
		return Decompress16(src, dest, width, height)
	case 24:
		return Decompress24(src, dest, width, height)
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedDepth, bpp)
	}
}
