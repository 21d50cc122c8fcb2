package imaging

import (
	"image"
	"math"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
)

// Enhance applies the six-slider pipeline to src and returns a new buffer.
// The source is never mutated, so repeated calls with different settings
// always recompute from the pristine original instead of compounding.
//
// Stages run per pixel in a fixed order — brightness, contrast, saturation,
// warmth, vibrance — each consuming the previous stage's output as floats;
// channels are rounded and clamped to [0, 255] once after the last stage.
// Alpha passes through. Settings are not re-validated here; callers clamp
// them first (domain.EnhancementSettings.Clamped).
func Enhance(src *image.NRGBA, s domain.EnhancementSettings) *image.NRGBA {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	brightness := s.Brightness * 2.55
	contrast := (s.Contrast + 100) / 100
	saturation := (s.Saturation + 100) / 100

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			srcOff := y*src.Stride + x*4
			dstOff := y*dst.Stride + x*4

			r := float64(src.Pix[srcOff])
			g := float64(src.Pix[srcOff+1])
			b := float64(src.Pix[srcOff+2])

			r += brightness
			g += brightness
			b += brightness

			r = ((r/255-0.5)*contrast + 0.5) * 255
			g = ((g/255-0.5)*contrast + 0.5) * 255
			b = ((b/255-0.5)*contrast + 0.5) * 255

			// ITU-R 601 luma from the post-contrast channels.
			gray := 0.2989*r + 0.587*g + 0.114*b
			r = gray + saturation*(r-gray)
			g = gray + saturation*(g-gray)
			b = gray + saturation*(b-gray)

			r += s.Warmth * 1.5
			g += s.Warmth * 0.5
			b -= s.Warmth * 1.5

			// Vibrance boosts channels in proportion to how far the pixel
			// already sits from gray, unlike the uniform saturation stage.
			maxC := math.Max(r, math.Max(g, b))
			avg := (r + g + b) / 3
			amount := (maxC - avg) / 255 * (s.Vibrance / 100)
			r += (r - avg) * amount
			g += (g - avg) * amount
			b += (b - avg) * amount

			dst.Pix[dstOff] = clamp8(r)
			dst.Pix[dstOff+1] = clamp8(g)
			dst.Pix[dstOff+2] = clamp8(b)
			dst.Pix[dstOff+3] = src.Pix[srcOff+3]
		}
	}

	if s.Sharpness > 0 {
		return Sharpen(dst, s.Sharpness/100)
	}
	return dst
}
