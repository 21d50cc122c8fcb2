package domain

type WatermarkAnchor string

const (
	AnchorTopLeft     WatermarkAnchor = "top-left"
	AnchorTopRight    WatermarkAnchor = "top-right"
	AnchorBottomLeft  WatermarkAnchor = "bottom-left"
	AnchorBottomRight WatermarkAnchor = "bottom-right"
	AnchorCenter      WatermarkAnchor = "center"
)

func ValidAnchor(a WatermarkAnchor) bool {
	switch a {
	case AnchorTopLeft, AnchorTopRight, AnchorBottomLeft, AnchorBottomRight, AnchorCenter:
		return true
	}
	return false
}

type FontFamily string

const (
	FontRegular FontFamily = "regular"
	FontBold    FontFamily = "bold"
	FontItalic  FontFamily = "italic"
	FontMono    FontFamily = "mono"
)

// WatermarkSpec describes one watermark overlay. Text may span multiple
// lines separated by "\n"; opacity is a 0-100 percentage; color is an
// "#RRGGBB" hex string; rotation is degrees in -45..45.
type WatermarkSpec struct {
	Text       string          `json:"text"`
	Anchor     WatermarkAnchor `json:"anchor"`
	FontSize   float64         `json:"font_size"`
	Opacity    float64         `json:"opacity"`
	Color      string          `json:"color"`
	FontFamily FontFamily      `json:"font_family"`
	Rotation   float64         `json:"rotation"`
}

const (
	WatermarkPadding    = 30
	WatermarkLineHeight = 1.3
	WatermarkRotateMin  = -45
	WatermarkRotateMax  = 45
)

func DefaultWatermarkSpec() WatermarkSpec {
	return WatermarkSpec{
		Text:       "© Selfie2Snap",
		Anchor:     AnchorBottomRight,
		FontSize:   36,
		Opacity:    70,
		Color:      "#FFFFFF",
		FontFamily: FontRegular,
		Rotation:   0,
	}
}

// Normalized returns a copy with out-of-range fields clamped and missing
// fields replaced by defaults. Text is left alone; empty text is rejected
// at the export boundary, not here.
func (s WatermarkSpec) Normalized() WatermarkSpec {
	out := s
	if !ValidAnchor(out.Anchor) {
		out.Anchor = AnchorBottomRight
	}
	if out.FontSize <= 0 {
		out.FontSize = 36
	}
	if out.Opacity < 0 {
		out.Opacity = 0
	}
	if out.Opacity > 100 {
		out.Opacity = 100
	}
	if out.Rotation < WatermarkRotateMin {
		out.Rotation = WatermarkRotateMin
	}
	if out.Rotation > WatermarkRotateMax {
		out.Rotation = WatermarkRotateMax
	}
	if out.FontFamily == "" {
		out.FontFamily = FontRegular
	}
	if out.Color == "" {
		out.Color = "#FFFFFF"
	}
	return out
}

type PresetKind string

const (
	PresetBuiltIn     PresetKind = "builtin"
	PresetUserDefined PresetKind = "user"
)

// WatermarkPreset is a complete named spec. Built-in presets are immutable
// and ship with the catalog; user presets are persisted and deletable.
type WatermarkPreset struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Kind PresetKind    `json:"kind"`
	Spec WatermarkSpec `json:"spec"`
}

// BuiltInWatermarkPresets is the fixed catalog. Order is presentation order.
func BuiltInWatermarkPresets() []WatermarkPreset {
	return []WatermarkPreset{
		{
			ID:   "builtin-classic",
			Name: "Classic",
			Kind: PresetBuiltIn,
			Spec: WatermarkSpec{
				Text: "© Selfie2Snap", Anchor: AnchorBottomRight,
				FontSize: 36, Opacity: 70, Color: "#FFFFFF",
				FontFamily: FontRegular, Rotation: 0,
			},
		},
		{
			ID:   "builtin-studio",
			Name: "Studio",
			Kind: PresetBuiltIn,
			Spec: WatermarkSpec{
				Text: "SELFIE2SNAP\nSTUDIO", Anchor: AnchorCenter,
				FontSize: 48, Opacity: 35, Color: "#FFFFFF",
				FontFamily: FontBold, Rotation: -30,
			},
		},
		{
			ID:   "builtin-subtle",
			Name: "Subtle",
			Kind: PresetBuiltIn,
			Spec: WatermarkSpec{
				Text: "selfie2snap.app", Anchor: AnchorBottomLeft,
				FontSize: 24, Opacity: 45, Color: "#E0E0E0",
				FontFamily: FontItalic, Rotation: 0,
			},
		},
		{
			ID:   "builtin-stamp",
			Name: "Stamp",
			Kind: PresetBuiltIn,
			Spec: WatermarkSpec{
				Text: "PREVIEW", Anchor: AnchorTopRight,
				FontSize: 42, Opacity: 60, Color: "#FF4040",
				FontFamily: FontMono, Rotation: 15,
			},
		},
	}
}

// WatermarkPreference is the persisted last-used watermark record. The
// schema version guards future field evolution of the stored JSON.
type WatermarkPreference struct {
	SchemaVersion int           `json:"schema_version"`
	Spec          WatermarkSpec `json:"spec"`
}

const WatermarkPreferenceSchemaVersion = 1

const PreferenceKeyWatermark = "watermark.last_used"
