package presets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
	snaprepo "github.com/Nurash908/Selfie2Snap/internal/repository/snap"
)

type PresetsUsecase struct {
	repo   presetsRepository
	logger *zlog.Zerolog
}

func NewPresetsUsecase(repo presetsRepository, logger *zlog.Zerolog) *PresetsUsecase {
	return &PresetsUsecase{
		repo:   repo,
		logger: logger,
	}
}

// List returns the built-in catalog followed by user presets in
// creation order.
func (u *PresetsUsecase) List(ctx context.Context) ([]domain.WatermarkPreset, error) {
	all := domain.BuiltInWatermarkPresets()

	user, err := u.repo.ListPresets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}

	return append(all, user...), nil
}

func (u *PresetsUsecase) Create(ctx context.Context, name string, spec domain.WatermarkSpec) (*domain.WatermarkPreset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(spec.Text) == "" {
		return nil, ErrEmptyText
	}

	p := &domain.WatermarkPreset{
		ID:   uuid.New().String(),
		Name: name,
		Kind: domain.PresetUserDefined,
		Spec: spec.Normalized(),
	}

	if err := u.repo.SavePreset(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save preset: %w", err)
	}

	u.logger.Info().Str("preset_id", p.ID).Str("name", name).Msg("Preset created")
	return p, nil
}

func (u *PresetsUsecase) Delete(ctx context.Context, id string) error {
	if _, ok := builtInByID(id); ok {
		return ErrBuiltInPreset
	}

	if err := u.repo.DeletePreset(ctx, id); err != nil {
		return err
	}

	u.logger.Info().Str("preset_id", id).Msg("Preset deleted")
	return nil
}

// Apply resolves a preset and returns a copy of its full spec. The
// caller overwrites its working settings with the copy in one step, so
// applying the same preset twice is a no-op.
func (u *PresetsUsecase) Apply(ctx context.Context, id string) (domain.WatermarkSpec, error) {
	if p, ok := builtInByID(id); ok {
		return p.Spec, nil
	}

	p, err := u.repo.GetPreset(ctx, id)
	if err != nil {
		return domain.WatermarkSpec{}, err
	}

	return p.Spec, nil
}

// MatchingPreset reports which preset, if any, a working spec currently
// equals. Any manual edit breaks the match.
func MatchingPreset(spec domain.WatermarkSpec, all []domain.WatermarkPreset) string {
	for _, p := range all {
		if p.Spec == spec {
			return p.ID
		}
	}
	return ""
}

// SaveLastUsed persists the working spec so the next session starts
// from it.
func (u *PresetsUsecase) SaveLastUsed(ctx context.Context, spec domain.WatermarkSpec) error {
	pref := domain.WatermarkPreference{
		SchemaVersion: domain.WatermarkPreferenceSchemaVersion,
		Spec:          spec.Normalized(),
	}

	value, err := json.Marshal(pref)
	if err != nil {
		return fmt.Errorf("failed to marshal preference: %w", err)
	}

	if err := u.repo.SavePreference(ctx, domain.PreferenceKeyWatermark, value); err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}

	return nil
}

// LastUsed returns the persisted watermark settings. A missing,
// unreadable, or incompatible record falls back to the defaults rather
// than failing the session.
func (u *PresetsUsecase) LastUsed(ctx context.Context) (domain.WatermarkSpec, error) {
	value, err := u.repo.GetPreference(ctx, domain.PreferenceKeyWatermark)
	if errors.Is(err, snaprepo.ErrPreferenceNotFound) {
		return domain.DefaultWatermarkSpec(), nil
	}
	if err != nil {
		return domain.WatermarkSpec{}, fmt.Errorf("failed to load preference: %w", err)
	}

	var pref domain.WatermarkPreference
	if err := json.Unmarshal(value, &pref); err != nil {
		u.logger.Error().Err(err).Msg("Failed to decode watermark preference")
		return domain.DefaultWatermarkSpec(), nil
	}

	if pref.SchemaVersion != domain.WatermarkPreferenceSchemaVersion {
		return domain.DefaultWatermarkSpec(), nil
	}

	return pref.Spec.Normalized(), nil
}

func builtInByID(id string) (domain.WatermarkPreset, bool) {
	for _, p := range domain.BuiltInWatermarkPresets() {
		if p.ID == id {
			return p, true
		}
	}
	return domain.WatermarkPreset{}, false
}
