package presets

import (
	"context"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
)

type presetsRepository interface {
	SavePreset(ctx context.Context, p *domain.WatermarkPreset) error
	GetPreset(ctx context.Context, id string) (*domain.WatermarkPreset, error)
	ListPresets(ctx context.Context) ([]domain.WatermarkPreset, error)
	DeletePreset(ctx context.Context, id string) error
	SavePreference(ctx context.Context, key string, value []byte) error
	GetPreference(ctx context.Context, key string) ([]byte, error)
}
