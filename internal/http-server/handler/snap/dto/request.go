package dto

type GenerateRequest struct {
	SourceA string `json:"source_a" validate:"required"`
	SourceB string `json:"source_b"`
	Style   string `json:"style" validate:"required"`
	Frames  int    `json:"frames" validate:"gte=0,lte=8"`
}

type EnhanceRequest struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
	Warmth     float64 `json:"warmth"`
	Sharpness  float64 `json:"sharpness"`
	Vibrance   float64 `json:"vibrance"`
}

type WatermarkRequest struct {
	Text       string  `json:"text" validate:"required"`
	Anchor     string  `json:"anchor"`
	FontSize   float64 `json:"font_size"`
	Opacity    float64 `json:"opacity"`
	Color      string  `json:"color" validate:"omitempty,hexcolor"`
	FontFamily string  `json:"font_family"`
	Rotation   float64 `json:"rotation"`
}

type ArchiveRequest struct {
	SnapIDs []string `json:"snap_ids" validate:"required,min=1"`
	Label   string   `json:"label"`
}
