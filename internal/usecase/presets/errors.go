package presets

import "errors"

var (
	ErrBuiltInPreset = errors.New("built-in presets cannot be deleted")
	ErrNameRequired  = errors.New("preset name is required")
	ErrEmptyText     = errors.New("preset text is empty")
)
