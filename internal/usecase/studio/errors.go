package studio

import "errors"

var (
	ErrEmptyWatermarkText = errors.New("watermark text is empty")
	ErrSnapNotReady       = errors.New("snap has no generated frame yet")
	ErrNoSources          = errors.New("no snaps selected for archive")
	ErrAllSourcesFailed   = errors.New("no snap could be packaged")
)
