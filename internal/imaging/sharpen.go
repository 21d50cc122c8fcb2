package imaging

import "image"

// Sharpen applies an unsharp mask with a 4-neighbor box approximation of
// the low-frequency component: out = center + (center - neighborAvg) *
// amount, per R/G/B channel, clamped. The one-pixel border lacks all four
// neighbors and passes through unmodified. amount is 0..1; values outside
// that range are clamped. The source buffer is read as a snapshot.
func Sharpen(src *image.NRGBA, amount float64) *image.NRGBA {
	if amount <= 0 {
		return src
	}
	if amount > 1 {
		amount = 1
	}

	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(dst.Pix, src.Pix)

	if w < 3 || h < 3 {
		return dst
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			off := y*src.Stride + x*4
			for c := 0; c < 3; c++ {
				center := float64(src.Pix[off+c])
				up := float64(src.Pix[(y-1)*src.Stride+x*4+c])
				down := float64(src.Pix[(y+1)*src.Stride+x*4+c])
				left := float64(src.Pix[y*src.Stride+(x-1)*4+c])
				right := float64(src.Pix[y*src.Stride+(x+1)*4+c])

				avg := (up + down + left + right) / 4
				dst.Pix[y*dst.Stride+x*4+c] = clamp8(center + (center-avg)*amount)
			}
		}
	}

	return dst
}
