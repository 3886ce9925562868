package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewContext_ScratchIsAligned(t *testing.T) {
	ctx := NewContext(false)
	defer ctx.Free()

	require.Zero(t, uintptrOf(ctx.scratch)%scratchAlignment)
	require.GreaterOrEqual(t, len(ctx.scratch), defaultScratchSize)
}

func TestContextReset_IsIdempotentAndRepeatable(t *testing.T) {
	ctx := NewContext(false)
	defer ctx.Free()

	src := []byte{regularLead(RegularColorImage, 4), 0xAA, 0xBB, 0xCC, 0xDD}

	for i := 0; i < 3; i++ {
		ctx.Reset()
		rgba, err := ctx.DecompressTile(src, 4, 1, 8, nil)
		require.NoError(t, err)
		require.Len(t, rgba, 4*4)
	}
}

func TestContext_DecompressTile_RejectsOversizedGeometry(t *testing.T) {
	ctx := NewContext(false)
	defer ctx.Free()

	_, err := ctx.DecompressTile(nil, MaxTileDimension+1, 1, 8, nil)
	require.ErrorIs(t, err, ErrUnsupportedGeometry)
}

func TestContext_DecompressTile_UsesSuppliedPalette(t *testing.T) {
	ctx := NewContext(false)
	defer ctx.Free()

	src := []byte{regularLead(RegularColorImage, 1), 0x00}
	palette := []byte{0x10, 0x20, 0x30}

	rgba, err := ctx.DecompressTile(src, 1, 1, 8, palette)
	require.NoError(t, err)
	require.Equal(t, []byte{0x10, 0x20, 0x30, 0xFF}, rgba)
}

func TestContext_DistinctContextsKeepIndependentPalettes(t *testing.T) {
	// Two contexts installing different palettes for the same index must
	// not observe each other's palette: the palette lives on Context, not
	// behind a shared package-level variable.
	red := NewContext(false)
	defer red.Free()
	blue := NewContext(false)
	defer blue.Free()

	red.SetPalette([]byte{0xFF, 0x00, 0x00}, 1)
	blue.SetPalette([]byte{0x00, 0x00, 0xFF}, 1)

	src := []byte{regularLead(RegularColorImage, 1), 0x00}

	rgbaRed, err := red.DecompressTile(src, 1, 1, 8, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0x00, 0x00, 0xFF}, rgbaRed)

	rgbaBlue, err := blue.DecompressTile(src, 1, 1, 8, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x00, 0xFF, 0xFF}, rgbaBlue)

	// Order doesn't matter: re-decode on red after blue ran and confirm
	// red's palette wasn't clobbered.
	rgbaRed2, err := red.DecompressTile(src, 1, 1, 8, nil)
	require.NoError(t, err)
	require.Equal(t, rgbaRed, rgbaRed2)
}

func TestContext_CompressTile_RequiresCompressorFlag(t *testing.T) {
	ctx := NewContext(false)
	defer ctx.Free()

	_, err := ctx.CompressTile(make([]byte, 16), 4, 4, 8)
	require.Error(t, err)
}

func TestContext_CompressTile_RoundTripsThroughDecompress(t *testing.T) {
	enc := NewContext(true)
	defer enc.Free()
	dec := NewContext(false)
	defer dec.Free()

	src := []byte{
		0x01, 0x02, 0x03, 0x04,
		0x05, 0x06, 0x07, 0x08,
		0x09, 0x0A, 0x0B, 0x0C,
		0x0D, 0x0E, 0x0F, 0x10,
	}

	compressed, err := enc.CompressTile(src, 4, 4, 8)
	require.NoError(t, err)

	dest := make([]byte, len(src))
	require.NoError(t, Decompress8(compressed, dest, 4, 4))
	require.Equal(t, src, dest)
}
