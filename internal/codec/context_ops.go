package codec

import "fmt"

// DecompressTile decompresses a compressed tile using ctx's scratch
// buffer as the native-depth scanline destination, then flips it
// vertically and converts it to RGBA — the full external Decompress
// contract (§6), minus the destination-surface clipping/offset step,
// which callers compose on top of the returned RGBA buffer.
//
// palette is consulted only for bpp == 8; pass nil to use whatever
// palette was last installed on ctx with SetPalette (or the identity
// grayscale default, for a context that never had one installed or has
// been Reset since).
func (ctx *Context) DecompressTile(src []byte, width, height, bpp int, palette []byte) ([]byte, error) {
	if width <= 0 || height <= 0 || width > MaxTileDimension || height > MaxTileDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrUnsupportedGeometry, width, height)
	}

	bytesPerPixel := bpp / 8
	if bpp == 15 {
		bytesPerPixel = 2
	}
	if bytesPerPixel == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDepth, bpp)
	}

	size := width * height * bytesPerPixel
	if err := ctx.ensureScratch(size); err != nil {
		return nil, err
	}
	native := ctx.scratch[:size]

	if err := DecompressDepth(bpp, src, native, width, height); err != nil {
		return nil, err
	}

	if bpp == 8 && palette != nil {
		ctx.SetPalette(palette, len(palette)/3)
	}

	FlipVertical(native, width, height, bytesPerPixel)

	rgba := make([]byte, width*height*4)
	switch bpp {
	case 8:
		palette8ToRGBA(&ctx.palette, native, rgba)
	case 15:
		RGB555ToRGBA(native, rgba)
	case 16:
		RGB565ToRGBA(native, rgba)
	case 24:
		BGR24ToRGBA(native, rgba)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDepth, bpp)
	}

	return rgba, nil
}

// CompressTile compresses a native-depth, top-down tile to an
// Interleaved RLE byte stream, enforcing the compressor's geometry
// contract (width ≤ 64, height ≤ 64, width a multiple of 4).
func (ctx *Context) CompressTile(src []byte, width, height, bpp int) ([]byte, error) {
	if !ctx.Compressor {
		return nil, fmt.Errorf("%w: context not configured as a compressor", ErrUnsupportedGeometry)
	}
	return CompressDepth(bpp, src, width, height)
}
