package domain

import "time"

type Snap struct {
	ID         string
	URL        string
	ObjectPath string
	Prompt     string
	Style      StyleID
	FrameIndex int
	FrameCount int
	Favorite   bool
	Status     SnapStatus
	Error      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type SnapStatus string

const (
	StatusPending    SnapStatus = "pending"
	StatusGenerating SnapStatus = "generating"
	StatusCompleted  SnapStatus = "completed"
	StatusFailed     SnapStatus = "failed"
	StatusDeleted    SnapStatus = "deleted"
)

type SnapFilter struct {
	Style        StyleID
	FavoriteOnly bool
	SortOldest   bool
}

type StyleID string

const (
	StyleRomantic   StyleID = "romantic"
	StyleCinematic  StyleID = "cinematic"
	StyleAnime      StyleID = "anime"
	StyleVintage    StyleID = "vintage"
	StyleFantasy    StyleID = "fantasy"
	StyleWatercolor StyleID = "watercolor"
	StylePopArt     StyleID = "popart"
	StyleCyberpunk  StyleID = "cyberpunk"
)

const (
	BucketSnaps = "snaps"

	PathPrefixFrames  = "frames/"
	PathPrefixExports = "exports/"
)

const (
	AppPrefix = "selfie2snap"

	DefaultArchiveLabel = "snaps"
	MaxFramesPerBatch   = 8
)
