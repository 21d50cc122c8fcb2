package dto

type SpecResponse struct {
	Text       string  `json:"text"`
	Anchor     string  `json:"anchor"`
	FontSize   float64 `json:"font_size"`
	Opacity    float64 `json:"opacity"`
	Color      string  `json:"color"`
	FontFamily string  `json:"font_family"`
	Rotation   float64 `json:"rotation"`
}

type PresetResponse struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Kind string       `json:"kind"`
	Spec SpecResponse `json:"spec"`
}

type PreferenceResponse struct {
	Spec SpecResponse `json:"spec"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
