package snap

import "errors"

var (
	ErrUnknownStyle     = errors.New("unknown style")
	ErrTooManyFrames    = errors.New("too many frames requested")
	ErrMissingSource    = errors.New("missing source image")
	ErrNoFramesEnqueued = errors.New("no frames could be enqueued")
)
