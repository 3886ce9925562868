// Command rdpbmp decodes a standalone Interleaved RLE bitmap tile to a
// PNG or BMP image, for inspecting captured RDP surface-bits orders
// offline.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/kulaginds/rdp-bitmap/internal/codec"
	"github.com/kulaginds/rdp-bitmap/internal/logging"
)

func main() {
	var (
		width    = flag.Int("width", 64, "tile width in pixels")
		height   = flag.Int("height", 64, "tile height in pixels")
		bpp      = flag.Int("bpp", 16, "color depth: 8, 15, 16, or 24")
		out      = flag.String("out", "out.png", "output path; .bmp extension writes BMP, anything else writes PNG")
		logLevel = flag.String("log-level", "info", "debug, info, warn, or error")
		logFile  = flag.String("log-file", "", "optional path to a rotating log file")
	)
	flag.Parse()

	logger := logging.Default()
	if *logFile != "" {
		logger = logging.NewFileLogger(*logFile, 10, 3, 28, logging.LevelInfo)
	}
	logger.SetLevelFromString(*logLevel)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rdpbmp [flags] <compressed-tile-file>")
		os.Exit(2)
	}

	if err := run(logger, flag.Arg(0), *width, *height, *bpp, *out); err != nil {
		logger.Error("decode failed: %v", err)
		os.Exit(1)
	}
}

func run(logger *logging.Logger, path string, width, height, bpp int, out string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read tile: %w", err)
	}

	ctx := codec.NewContext(false)
	defer ctx.Free()

	rgba, err := ctx.DecompressTile(src, width, height, bpp, nil)
	if err != nil {
		return fmt.Errorf("decompress tile: %w", err)
	}
	logger.Info("decoded %dx%d tile at %d bpp from %d compressed bytes", width, height, bpp, len(src))

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			o := (y*width + x) * 4
			img.SetNRGBA(x, y, color.NRGBA{R: rgba[o], G: rgba[o+1], B: rgba[o+2], A: rgba[o+3]})
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(out), ".bmp") {
		return bmp.Encode(f, img)
	}
	return png.Encode(f, img)
}
