package codec

import "fmt"

// This file sketches the compressor side (C4) for symmetry with the
// decoder; MS-RDPBCGR does not pin down an order-selection heuristic; any
// encoder whose output the decoder in decoder.go/tile.go restores to the
// original pixels is conformant. This implementation always emits
// MEGA_MEGA orders (an explicit 16-bit length field rather than the
// packed 5/4-bit REGULAR/LITE fields), trading compression ratio for a
// simple, obviously-correct emitter: every run is either a background
// run against the previous scanline, a same-color run, or a literal
// color image, and none of those three depends on encoder/decoder
// foreground-register state, so the heuristic never needs to track one.

// compressScanline appends orders reproducing row (given the previous
// scanline prevRow, nil on the first scanline) to dst, returning the
// extended buffer.
func compressScanline[T uint8 | uint16 | uint32](pf PixelFormat[T], dst []byte, row, prevRow []byte, width int) []byte {
	bpp := pf.BytesPerPixel
	matchesPrev := func(i int) bool {
		return prevRow != nil && pf.ReadPixel(row, i*bpp) == pf.ReadPixel(prevRow, i*bpp)
	}
	sameRunLen := func(i int) int {
		p := pf.ReadPixel(row, i*bpp)
		n := 1
		for i+n < width && pf.ReadPixel(row, (i+n)*bpp) == p && !matchesPrev(i+n) {
			n++
		}
		return n
	}

	i := 0
	for i < width {
		if matchesPrev(i) {
			n := 1
			for i+n < width && matchesPrev(i+n) {
				n++
			}
			dst = appendMegaOrder(dst, MegaMegaBgRun, n, nil)
			i += n
			continue
		}

		if n := sameRunLen(i); n >= 3 {
			pixel := make([]byte, bpp)
			pf.WritePixel(pixel, 0, pf.ReadPixel(row, i*bpp))
			dst = appendMegaOrder(dst, MegaMegaColorRun, n, pixel)
			i += n
			continue
		}

		start := i
		for i < width {
			if matchesPrev(i) {
				break
			}
			if sameRunLen(i) >= 3 {
				break
			}
			i++
		}
		dst = appendMegaOrder(dst, MegaMegaColorImage, i-start, row[start*bpp:i*bpp])
	}

	return dst
}

// appendMegaOrder appends a single MEGA/MEGA order (opcode, 16-bit
// little-endian length, optional inline payload) to dst.
func appendMegaOrder(dst []byte, opcode byte, length int, payload []byte) []byte {
	dst = append(dst, opcode, byte(length), byte(length>>8))
	if payload != nil {
		dst = append(dst, payload...)
	}
	return dst
}

// compress compresses height scanlines of width pixels each (native
// pixel layout per pf, top row first) to an Interleaved RLE byte stream.
func compress[T uint8 | uint16 | uint32](pf PixelFormat[T], src []byte, width, height int) []byte {
	bpp := pf.BytesPerPixel
	rowBytes := width * bpp
	out := make([]byte, 0, rowBytes*height)

	var prevRow []byte
	for row := 0; row < height; row++ {
		start := row * rowBytes
		out = compressScanline(pf, out, src[start:start+rowBytes], prevRow, width)
		prevRow = src[start : start+rowBytes]
	}
	return out
}

// CompressGeometry validates the compressor's geometry contract: both
// dimensions at most MaxTileDimension, and width a multiple of 4.
func CompressGeometry(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxTileDimension || height > MaxTileDimension {
		return fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrUnsupportedGeometry, width, height, MaxTileDimension, MaxTileDimension)
	}
	if width%4 != 0 {
		return fmt.Errorf("%w: width %d not a multiple of 4", ErrUnsupportedGeometry, width)
	}
	return nil
}

// Compress8 compresses an 8-bit tile. src must hold width*height bytes.
func Compress8(src []byte, width, height int) ([]byte, error) {
	if err := CompressGeometry(width, height); err != nil {
		return nil, err
	}
	return compress(Pixel8, src, width, height), nil
}

// Compress16 compresses a 16-bit tile. src must hold width*height*2 bytes.
func Compress16(src []byte, width, height int) ([]byte, error) {
	if err := CompressGeometry(width, height); err != nil {
		return nil, err
	}
	return compress(Pixel16, src, width, height), nil
}

// Compress15 compresses a 15-bit tile; identical wire layout to 16-bit.
func Compress15(src []byte, width, height int) ([]byte, error) {
	return Compress16(src, width, height)
}

// Compress24 compresses a 24-bit tile. src must hold width*height*3 bytes.
func Compress24(src []byte, width, height int) ([]byte, error) {
	if err := CompressGeometry(width, height); err != nil {
		return nil, err
	}
	return compress(Pixel24, src, width, height), nil
}

// CompressDepth dispatches to the depth-specialized compressor for bpp.
func CompressDepth(bpp int, src []byte, width, height int) ([]byte, error) {
	switch bpp {
	case 8:
		return Compress8(src, width, height)
	case 15:
		return Compress15(src, width, height)
	case 16:
		return Compress16(src, width, height)
	case 24:
		return Compress24(src, width, height)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDepth, bpp)
	}
}
