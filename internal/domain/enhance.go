package domain

// EnhancementSettings is the six-slider vector applied by the enhancement
// pipeline. Zero values are the identity transform.
type EnhancementSettings struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
	Sharpness  float64 `json:"sharpness"`
	Warmth     float64 `json:"warmth"`
	Vibrance   float64 `json:"vibrance"`
}

const (
	EnhanceSliderMin = -50
	EnhanceSliderMax = 50
	SharpnessMin     = 0
	SharpnessMax     = 100
	WarmthMin        = -30
	WarmthMax        = 30
)

// Clamped returns a copy with every slider forced into its valid range.
// The pixel pipeline itself does not re-validate; callers clamp first.
func (s EnhancementSettings) Clamped() EnhancementSettings {
	return EnhancementSettings{
		Brightness: clampRange(s.Brightness, EnhanceSliderMin, EnhanceSliderMax),
		Contrast:   clampRange(s.Contrast, EnhanceSliderMin, EnhanceSliderMax),
		Saturation: clampRange(s.Saturation, EnhanceSliderMin, EnhanceSliderMax),
		Sharpness:  clampRange(s.Sharpness, SharpnessMin, SharpnessMax),
		Warmth:     clampRange(s.Warmth, WarmthMin, WarmthMax),
		Vibrance:   clampRange(s.Vibrance, EnhanceSliderMin, EnhanceSliderMax),
	}
}

// IsNeutral reports whether the settings describe the identity transform.
func (s EnhancementSettings) IsNeutral() bool {
	return s == EnhancementSettings{}
}

func clampRange(v, min, max float64) float64 {
	if v != v { // NaN
		return 0
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
