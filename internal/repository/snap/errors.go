package snap

import "errors"

var (
	ErrSnapNotFound       = errors.New("snap not found")
	ErrPresetNotFound     = errors.New("preset not found")
	ErrPreferenceNotFound = errors.New("preference not found")
	ErrObjectNotFound     = errors.New("object not found")
)
