package dto

type SpecPayload struct {
	Text       string  `json:"text" validate:"required"`
	Anchor     string  `json:"anchor"`
	FontSize   float64 `json:"font_size"`
	Opacity    float64 `json:"opacity"`
	Color      string  `json:"color" validate:"omitempty,hexcolor"`
	FontFamily string  `json:"font_family"`
	Rotation   float64 `json:"rotation"`
}

type CreatePresetRequest struct {
	Name string      `json:"name" validate:"required"`
	Spec SpecPayload `json:"spec" validate:"required"`
}

type SavePreferenceRequest struct {
	Spec SpecPayload `json:"spec" validate:"required"`
}
