package imaging

import (
	"image/color"
	"testing"
)

func TestSharpenZeroAmountIsIdentity(t *testing.T) {
	src := makeGradientImage(16, 16)
	out := Sharpen(src, 0)

	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("pixel byte %d changed with amount 0", i)
		}
	}
}

func TestSharpenBorderPassesThrough(t *testing.T) {
	src := makeGradientImage(10, 10)
	out := Sharpen(src, 1)

	for x := 0; x < 10; x++ {
		if pixelAt(out, x, 0) != pixelAt(src, x, 0) {
			t.Fatalf("top border modified at x=%d", x)
		}
		if pixelAt(out, x, 9) != pixelAt(src, x, 9) {
			t.Fatalf("bottom border modified at x=%d", x)
		}
	}
	for y := 0; y < 10; y++ {
		if pixelAt(out, 0, y) != pixelAt(src, 0, y) {
			t.Fatalf("left border modified at y=%d", y)
		}
		if pixelAt(out, 9, y) != pixelAt(src, 9, y) {
			t.Fatalf("right border modified at y=%d", y)
		}
	}
}

func TestSharpenInteriorUnsharpMask(t *testing.T) {
	// Uniform 100 background with a single 150-valued pixel at (2,2).
	src := makeSolidImage(5, 5, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	off := 2*src.Stride + 2*4
	src.Pix[off] = 150
	src.Pix[off+1] = 150
	src.Pix[off+2] = 150

	out := Sharpen(src, 0.5)

	// center: 150 + (150 - 100)*0.5 = 175
	if got := pixelAt(out, 2, 2); got != [4]uint8{175, 175, 175, 255} {
		t.Fatalf("center: expected (175,175,175,255), got %v", got)
	}
	// direct neighbor (2,1): avg = (100+150+100+100)/4 = 112.5,
	// 100 + (100-112.5)*0.5 = 93.75 -> 94
	if got := pixelAt(out, 2, 1); got != [4]uint8{94, 94, 94, 255} {
		t.Fatalf("neighbor: expected (94,94,94,255), got %v", got)
	}
}

func TestSharpenClampsOvershoot(t *testing.T) {
	src := makeSolidImage(5, 5, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	off := 2*src.Stride + 2*4
	src.Pix[off] = 250
	src.Pix[off+1] = 250
	src.Pix[off+2] = 250

	out := Sharpen(src, 1)

	// 250 + (250-10)*1 overshoots far past 255.
	if got := pixelAt(out, 2, 2); got != [4]uint8{255, 255, 255, 255} {
		t.Fatalf("expected clamp to 255, got %v", got)
	}
}

func TestSharpenTinyImageUntouched(t *testing.T) {
	src := makeSolidImage(2, 2, color.NRGBA{R: 50, G: 60, B: 70, A: 255})
	out := Sharpen(src, 1)

	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatal("2x2 image has no interior; must pass through")
		}
	}
}
