package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"strings"

	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
)

var fonts = map[domain.FontFamily]*truetype.Font{}

func init() {
	for family, ttf := range map[domain.FontFamily][]byte{
		domain.FontRegular: goregular.TTF,
		domain.FontBold:    gobold.TTF,
		domain.FontItalic:  goitalic.TTF,
		domain.FontMono:    gomono.TTF,
	} {
		f, err := truetype.Parse(ttf)
		if err != nil {
			continue
		}
		fonts[family] = f
	}
}

func fontFor(family domain.FontFamily) *truetype.Font {
	if f, ok := fonts[family]; ok {
		return f
	}
	return fonts[domain.FontRegular]
}

// Watermark draws src unmodified and overlays the spec's text on top,
// returning a new buffer. Text is split on "\n" into lines laid out at
// fontSize*1.3 line height; the block is placed by anchor with a fixed
// 30px edge padding, each line horizontally centered on the block axis.
// Rotation pivots the whole block around its vertical center. Opacity,
// color and a fixed drop shadow apply uniformly to all lines.
//
// Empty text composites to a plain copy; rejecting empty-text exports is
// the caller's job.
func Watermark(src *image.NRGBA, spec domain.WatermarkSpec) *image.NRGBA {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(dst.Pix, src.Pix)

	lines := strings.Split(spec.Text, "\n")
	face := truetype.NewFace(fontFor(spec.FontFamily), &truetype.Options{
		Size:    spec.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	lineHeight := spec.FontSize * domain.WatermarkLineHeight
	widths := make([]float64, len(lines))
	maxWidth := 0.0
	for i, line := range lines {
		widths[i] = float64(font.MeasureString(face, line)) / 64
		if widths[i] > maxWidth {
			maxWidth = widths[i]
		}
	}
	totalHeight := lineHeight * float64(len(lines))

	anchorX, baseY := blockLayout(spec.Anchor, w, h, spec.FontSize, maxWidth, totalHeight)

	alpha := clamp8(spec.Opacity / 100 * 255)
	textColor := parseHexColor(spec.Color, alpha)
	shadowColor := color.NRGBA{A: alpha / 2}

	overlay := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{Dst: overlay, Face: face}
	for i, line := range lines {
		x := anchorX - widths[i]/2
		y := baseY + float64(i)*lineHeight

		d.Src = image.NewUniform(shadowColor)
		d.Dot = fixedPoint(x+2, y+2)
		d.DrawString(line)

		d.Src = image.NewUniform(textColor)
		d.Dot = fixedPoint(x, y)
		d.DrawString(line)
	}

	if spec.Rotation != 0 {
		overlay = rotateAbout(overlay, anchorX, baseY-spec.FontSize+totalHeight/2, spec.Rotation)
	}

	draw.Draw(dst, dst.Bounds(), overlay, image.Point{}, draw.Over)
	return dst
}

// blockLayout places the text block for an anchor. anchorX is the
// horizontal center of the block; baseY is the baseline of the first line.
// Line i draws its baseline at baseY + i*lineHeight. Corner anchors keep a
// fixed 30px padding from the edges.
func blockLayout(anchor domain.WatermarkAnchor, w, h int, fontSize, maxWidth, totalHeight float64) (anchorX, baseY float64) {
	pad := float64(domain.WatermarkPadding)
	switch anchor {
	case domain.AnchorTopLeft:
		anchorX = pad + maxWidth/2
		baseY = pad + fontSize
	case domain.AnchorTopRight:
		anchorX = float64(w) - pad - maxWidth/2
		baseY = pad + fontSize
	case domain.AnchorBottomLeft:
		anchorX = pad + maxWidth/2
		baseY = float64(h) - pad - totalHeight + fontSize
	case domain.AnchorBottomRight:
		anchorX = float64(w) - pad - maxWidth/2
		baseY = float64(h) - pad - totalHeight + fontSize
	default:
		anchorX = float64(w) / 2
		baseY = float64(h)/2 - totalHeight/2 + fontSize
	}
	return anchorX, baseY
}

// rotateAbout rotates the overlay by deg degrees around (cx, cy).
func rotateAbout(overlay *image.NRGBA, cx, cy, deg float64) *image.NRGBA {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	m := f64.Aff3{
		cos, -sin, cx - cos*cx + sin*cy,
		sin, cos, cy - sin*cx - cos*cy,
	}
	rotated := image.NewNRGBA(overlay.Bounds())
	xdraw.BiLinear.Transform(rotated, m, overlay, overlay.Bounds(), xdraw.Over, nil)
	return rotated
}

func fixedPoint(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
}

// parseHexColor parses "#RRGGBB"; malformed values fall back to white.
func parseHexColor(s string, alpha uint8) color.NRGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: alpha}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: alpha}
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: alpha,
	}
}
