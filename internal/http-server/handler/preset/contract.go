package preset

import (
	"context"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
)

type presetsUsecase interface {
	List(ctx context.Context) ([]domain.WatermarkPreset, error)
	Create(ctx context.Context, name string, spec domain.WatermarkSpec) (*domain.WatermarkPreset, error)
	Delete(ctx context.Context, id string) error
	Apply(ctx context.Context, id string) (domain.WatermarkSpec, error)
	SaveLastUsed(ctx context.Context, spec domain.WatermarkSpec) error
	LastUsed(ctx context.Context) (domain.WatermarkSpec, error)
}
