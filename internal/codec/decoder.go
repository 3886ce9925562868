package codec

// decodeScanline executes RLE orders against one destination scanline,
// consuming from src starting at srcIdx and writing into dest[rowStart:].
// width is the scanline's pixel count; firstScanline selects the
// degenerate BLACK/foreground semantics used when there is no previous
// row to reference. dest must already contain the previous scanline
// (immediately preceding rowStart) when firstScanline is false.
//
// Every write is bounds-checked against the scanline's own end before it
// happens (not merely against the end of dest), so an order can never
// spill into the next row even when the destination buffer has room
// there. Every read of src is checked before it happens. A violation of
// either returns ErrOverflow or ErrTruncated and abandons the tile,
// per the decoder's bounds-check invariant.
func decodeScanline[T uint8 | uint16 | uint32](pf PixelFormat[T], src []byte, srcIdx int, dest []byte, rowStart, width int, firstScanline bool, fg *T) (nextSrcIdx int, err error) {
	bpp := pf.BytesPerPixel
	rowDelta := width * bpp
	end := rowStart + rowDelta
	destIdx := rowStart
	fInsertFgPel := false

	remaining := func() int { return (end - destIdx) / bpp }

	for destIdx < end {
		if srcIdx >= len(src) {
			return srcIdx, ErrTruncated
		}

		code := ExtractCodeID(src[srcIdx])

		switch {
		case code == RegularBgRun || code == MegaMegaBgRun:
			runLength, next, ok := ExtractRunLength(code, src, srcIdx)
			if !ok {
				return srcIdx, ErrTruncated
			}
			srcIdx = next

			if runLength > remaining() {
				return srcIdx, ErrOverflow
			}
			if fInsertFgPel {
				writeFgPixel(pf, dest, destIdx, rowDelta, firstScanline, *fg)
				destIdx += bpp
				runLength--
			}
			for ; runLength > 0; runLength-- {
				writeBgPixel(pf, dest, destIdx, rowDelta, firstScanline)
				destIdx += bpp
			}
			fInsertFgPel = true
			continue

		case code == RegularFgRun || code == MegaMegaFgRun ||
			code == LiteSetFgFgRun || code == MegaMegaSetFgRun:
			fInsertFgPel = false
			runLength, next, ok := ExtractRunLength(code, src, srcIdx)
			if !ok {
				return srcIdx, ErrTruncated
			}
			srcIdx = next

			if code == LiteSetFgFgRun || code == MegaMegaSetFgRun {
				if srcIdx+bpp > len(src) {
					return srcIdx, ErrTruncated
				}
				*fg = pf.ReadPixel(src, srcIdx)
				srcIdx += bpp
			}

			if runLength > remaining() {
				return srcIdx, ErrOverflow
			}
			for ; runLength > 0; runLength-- {
				writeFgPixel(pf, dest, destIdx, rowDelta, firstScanline, *fg)
				destIdx += bpp
			}
			continue

		case code == LiteDitheredRun || code == MegaMegaDitheredRun:
			fInsertFgPel = false
			runLength, next, ok := ExtractRunLength(code, src, srcIdx)
			if !ok {
				return srcIdx, ErrTruncated
			}
			srcIdx = next

			if srcIdx+2*bpp > len(src) {
				return srcIdx, ErrTruncated
			}
			pixelA := pf.ReadPixel(src, srcIdx)
			srcIdx += bpp
			pixelB := pf.ReadPixel(src, srcIdx)
			srcIdx += bpp

			if runLength*2 > remaining() {
				return srcIdx, ErrOverflow
			}
			for ; runLength > 0; runLength-- {
				pf.WritePixel(dest, destIdx, pixelA)
				destIdx += bpp
				pf.WritePixel(dest, destIdx, pixelB)
				destIdx += bpp
			}
			continue

		case code == RegularColorRun || code == MegaMegaColorRun:
			fInsertFgPel = false
			runLength, next, ok := ExtractRunLength(code, src, srcIdx)
			if !ok {
				return srcIdx, ErrTruncated
			}
			srcIdx = next

			if srcIdx+bpp > len(src) {
				return srcIdx, ErrTruncated
			}
			pixel := pf.ReadPixel(src, srcIdx)
			srcIdx += bpp

			if runLength > remaining() {
				return srcIdx, ErrOverflow
			}
			for ; runLength > 0; runLength-- {
				pf.WritePixel(dest, destIdx, pixel)
				destIdx += bpp
			}
			continue

		case code == RegularColorImage || code == MegaMegaColorImage:
			fInsertFgPel = false
			runLength, next, ok := ExtractRunLength(code, src, srcIdx)
			if !ok {
				return srcIdx, ErrTruncated
			}
			srcIdx = next

			if runLength > remaining() {
				return srcIdx, ErrOverflow
			}
			if srcIdx+runLength*bpp > len(src) {
				return srcIdx, ErrTruncated
			}
			for ; runLength > 0; runLength-- {
				pixel := pf.ReadPixel(src, srcIdx)
				srcIdx += bpp
				pf.WritePixel(dest, destIdx, pixel)
				destIdx += bpp
			}
			continue

		case code == RegularFgBgImage || code == MegaMegaFgBgImage ||
			code == LiteSetFgFgBgImage || code == MegaMegaSetFgBgImage:
			fInsertFgPel = false
			runLength, next, ok := ExtractRunLength(code, src, srcIdx)
			if !ok {
				return srcIdx, ErrTruncated
			}
			srcIdx = next

			if code == LiteSetFgFgBgImage || code == MegaMegaSetFgBgImage {
				if srcIdx+bpp > len(src) {
					return srcIdx, ErrTruncated
				}
				*fg = pf.ReadPixel(src, srcIdx)
				srcIdx += bpp
			}

			if runLength > remaining() {
				return srcIdx, ErrOverflow
			}

			for runLength > 0 {
				if srcIdx >= len(src) {
					return srcIdx, ErrTruncated
				}
				bitmask := src[srcIdx]
				srcIdx++
				cBits := 8
				if runLength < 8 {
					cBits = runLength
				}
				destIdx = writeFgBgImage(pf, dest, destIdx, rowDelta, bitmask, *fg, cBits, firstScanline)
				runLength -= cBits
			}
			continue

		case code == SpecialFgBg1 || code == SpecialFgBg2:
			fInsertFgPel = false
			bitmask := byte(maskSpecialFgBg1)
			if code == SpecialFgBg2 {
				bitmask = maskSpecialFgBg2
			}
			if 8 > remaining() {
				return srcIdx, ErrOverflow
			}
			destIdx = writeFgBgImage(pf, dest, destIdx, rowDelta, bitmask, *fg, 8, firstScanline)
			srcIdx++
			continue

		case code == White:
			fInsertFgPel = false
			if 1 > remaining() {
				return srcIdx, ErrOverflow
			}
			pf.WritePixel(dest, destIdx, pf.WhitePixel)
			destIdx += bpp
			srcIdx++
			continue

		case code == Black:
			fInsertFgPel = false
			if 1 > remaining() {
				return srcIdx, ErrOverflow
			}
			pf.WritePixel(dest, destIdx, pf.BlackPixel)
			destIdx += bpp
			srcIdx++
			continue

		default:
			// Reserved/unrecognized lead byte: not a valid order under
			// MS-RDPBCGR; consume the byte and let outer bookkeeping
			// eventually trip truncation or overflow on genuinely
			// malformed streams.
			fInsertFgPel = false
			srcIdx++
			continue
		}
	}

	return srcIdx, nil
}

// writeBgPixel writes one background-run pixel: BLACK on the first
// scanline, or the previous scanline's pixel unchanged on later
// scanlines (XOR against a background run never involves the
// foreground color).
func writeBgPixel[T uint8 | uint16 | uint32](pf PixelFormat[T], dest []byte, destIdx, rowDelta int, firstScanline bool) {
	if firstScanline {
		pf.WritePixel(dest, destIdx, pf.BlackPixel)
		return
	}
	prev := pf.ReadPixel(dest, destIdx-rowDelta)
	pf.WritePixel(dest, destIdx, prev)
}

// writeFgPixel writes one foreground-run pixel: the foreground color
// itself on the first scanline, or previous-pixel XOR foreground on
// later scanlines.
func writeFgPixel[T uint8 | uint16 | uint32](pf PixelFormat[T], dest []byte, destIdx, rowDelta int, firstScanline bool, fg T) {
	if firstScanline {
		pf.WritePixel(dest, destIdx, fg)
		return
	}
	prev := pf.ReadPixel(dest, destIdx-rowDelta)
	pf.WritePixel(dest, destIdx, prev^fg)
}

// writeFgBgImage writes up to 8 pixels of a foreground/background image
// order, selecting foreground (bit set) or background (bit clear) per
// bitmask bit i (LSB first). Background is BLACK on the first scanline
// or the previous scanline's pixel otherwise; foreground is always
// expressed as background XOR current-foreground, per MS-RDPBCGR's
// reference decoder (the XOR against BLACK on the first scanline is the
// identity, by design of the wire format).
func writeFgBgImage[T uint8 | uint16 | uint32](pf PixelFormat[T], dest []byte, destIdx, rowDelta int, bitmask byte, fgPel T, cBits int, firstScanline bool) int {
	for i := 0; i < cBits && i < 8; i++ {
		var bg T
		if firstScanline {
			bg = pf.BlackPixel
		} else {
			bg = pf.ReadPixel(dest, destIdx-rowDelta)
		}
		if bitmask&FgBgBitmasks[i] != 0 {
			pf.WritePixel(dest, destIdx, bg^fgPel)
		} else {
			pf.WritePixel(dest, destIdx, bg)
		}
		destIdx += pf.BytesPerPixel
	}
	return destIdx
}
