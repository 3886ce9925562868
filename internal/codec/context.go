package codec

import "fmt"

// defaultScratchSize is the default scratch buffer size: a 64x64 tile at
// 4 bytes per pixel, which covers the largest supported tile at every
// supported depth (at most 3 bytes per pixel, for 24 bpp).
const defaultScratchSize = MaxTileDimension * MaxTileDimension * 4

// scratchAlignment is the byte alignment the scratch buffer is padded to,
// so that downstream vectorized surface copies can rely on it.
const scratchAlignment = 16

// Context holds the per-caller mutable state the codec needs across
// calls: a reusable, aligned scratch buffer for the decompressed tile
// and a flag recording whether this context will be used for the
// compressor path. A Context is not safe for concurrent use by multiple
// goroutines; distinct contexts on distinct tiles are fully independent.
// All per-call state (foreground color, scanline cursors) lives on the
// stack inside the decode/encode call itself — the context never holds
// it, so there is no cross-tile leakage to reason about.
type Context struct {
	Compressor bool

	scratch     []byte
	scratchSize int
	palette     palette256
}

// NewContext allocates a Context with a scratch buffer sized for the
// largest supported tile. compressor records whether this context will
// be used to drive the compressor (C4) instead of the decompressor. The
// context starts with the identity grayscale palette installed, same as
// a freshly loaded Color Table Cache entry would default to.
func NewContext(compressor bool) *Context {
	ctx := &Context{Compressor: compressor}
	ctx.scratch = alignedAlloc(defaultScratchSize, scratchAlignment)
	ctx.scratchSize = defaultScratchSize
	ctx.palette = grayscalePalette()
	return ctx
}

// SetPalette installs an RGB palette (3 bytes per entry) used by this
// context's subsequent 8-bit DecompressTile calls. Entries beyond 256
// are ignored. Each Context keeps its own palette so that concurrent
// decodes against distinct contexts never share mutable state.
func (ctx *Context) SetPalette(rgb []byte, count int) {
	setPalette(&ctx.palette, rgb, count)
}

// Reset re-initializes the context without freeing its scratch buffer,
// so that repeated decode/encode calls after Reset behave identically to
// a freshly constructed Context.
func (ctx *Context) Reset() {
	for i := range ctx.scratch {
		ctx.scratch[i] = 0
	}
	ctx.palette = grayscalePalette()
}

// Free releases the context's scratch buffer. It exists for lifecycle
// symmetry with the reference implementation's context_new/context_free
// pair; the garbage collector reclaims the memory once Free drops the
// last reference.
func (ctx *Context) Free() {
	ctx.scratch = nil
	ctx.scratchSize = 0
}

// ensureScratch grows the scratch buffer to at least size bytes,
// preserving 16-byte alignment, and returns ErrAllocationFailure if size
// is not representable.
func (ctx *Context) ensureScratch(size int) error {
	if size < 0 {
		return fmt.Errorf("%w: negative scratch size", ErrAllocationFailure)
	}
	if size <= ctx.scratchSize {
		return nil
	}
	ctx.scratch = alignedAlloc(size, scratchAlignment)
	ctx.scratchSize = size
	return nil
}

// alignedAlloc allocates a zeroed byte slice of at least size bytes whose
// backing array starts on an `align`-byte boundary, by over-allocating
// and slicing into the aligned region.
func alignedAlloc(size, align int) []byte {
	if size <= 0 {
		size = align
	}
	buf := make([]byte, size+align)
	addr := uintptrOf(buf)
	offset := (align - int(addr%uintptr(align))) % align
	return buf[offset : offset+size : offset+size]
}
