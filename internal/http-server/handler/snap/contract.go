package snap

import (
	"context"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
	"github.com/Nurash908/Selfie2Snap/internal/usecase/studio"
)

type snapUsecase interface {
	GenerateBatch(ctx context.Context, sourceA, sourceB string, styleID domain.StyleID, frames int) ([]domain.Snap, error)
	GetSnap(ctx context.Context, id string) (*domain.Snap, error)
	ListSnaps(ctx context.Context, filter domain.SnapFilter) ([]domain.Snap, error)
	ToggleFavorite(ctx context.Context, id string) (bool, error)
	DeleteSnap(ctx context.Context, id string) error
}

type studioUsecase interface {
	Enhance(ctx context.Context, snapID string, settings domain.EnhancementSettings) (*studio.Export, error)
	Watermark(ctx context.Context, snapID string, spec domain.WatermarkSpec) (*studio.Export, error)
	Archive(ctx context.Context, snapIDs []string, label string) (*studio.ArchiveExport, error)
}
