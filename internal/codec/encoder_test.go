package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func pseudoRandomTile(seed, width, height, bytesPerPixel int) []byte {
	buf := make([]byte, width*height*bytesPerPixel)
	state := uint32(seed*2654435761 + 1)
	for i := range buf {
		state = state*1664525 + 1013904223
		buf[i] = byte(state >> 24)
	}
	return buf
}

func TestCompressDecompressRoundTrip_8bpp(t *testing.T) {
	for _, dims := range [][2]int{{4, 1}, {8, 4}, {64, 64}, {4, 64}} {
		width, height := dims[0], dims[1]
		src := pseudoRandomTile(width+height, width, height, 1)

		compressed, err := Compress8(src, width, height)
		require.NoError(t, err)

		dest := make([]byte, len(src))
		require.NoError(t, Decompress8(compressed, dest, width, height))
		require.Equal(t, src, dest)
	}
}

func TestCompressDecompressRoundTrip_16bpp(t *testing.T) {
	for _, dims := range [][2]int{{4, 1}, {8, 8}, {64, 16}} {
		width, height := dims[0], dims[1]
		src := pseudoRandomTile(width*31+height, width, height, 2)

		compressed, err := Compress16(src, width, height)
		require.NoError(t, err)

		dest := make([]byte, len(src))
		require.NoError(t, Decompress16(compressed, dest, width, height))
		require.Equal(t, src, dest)
	}
}

func TestCompressDecompressRoundTrip_24bpp(t *testing.T) {
	for _, dims := range [][2]int{{4, 1}, {8, 8}, {64, 4}} {
		width, height := dims[0], dims[1]
		src := pseudoRandomTile(width*17+height, width, height, 3)

		compressed, err := Compress24(src, width, height)
		require.NoError(t, err)

		dest := make([]byte, len(src))
		require.NoError(t, Decompress24(compressed, dest, width, height))
		require.Equal(t, src, dest)
	}
}

func TestCompressDecompressRoundTrip_UniformTile(t *testing.T) {
	// An all-identical tile should collapse to BG_RUN orders after the
	// first scanline and round-trip exactly.
	width, height := 8, 8
	src := make([]byte, width*height)
	for i := range src {
		src[i] = 0x2A
	}

	compressed, err := Compress8(src, width, height)
	require.NoError(t, err)

	dest := make([]byte, len(src))
	require.NoError(t, Decompress8(compressed, dest, width, height))
	if diff := cmp.Diff(src, dest); diff != "" {
		t.Errorf("uniform tile round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCompressGeometry_RejectsNonMultipleOfFourWidth(t *testing.T) {
	err := CompressGeometry(6, 4)
	require.ErrorIs(t, err, ErrUnsupportedGeometry)
}

func TestCompressGeometry_RejectsOversized(t *testing.T) {
	err := CompressGeometry(MaxTileDimension, MaxTileDimension+1)
	require.ErrorIs(t, err, ErrUnsupportedGeometry)
}

func TestCompressDepth_UnsupportedDepth(t *testing.T) {
	_, err := CompressDepth(12, nil, 4, 4)
	require.ErrorIs(t, err, ErrUnsupportedDepth)
}
