package presets

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/wb-go/wbf/zlog"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
	snaprepo "github.com/Nurash908/Selfie2Snap/internal/repository/snap"
)

type fakePresetsRepo struct {
	presets     map[string]domain.WatermarkPreset
	order       []string
	preferences map[string][]byte
}

func newFakePresetsRepo() *fakePresetsRepo {
	return &fakePresetsRepo{
		presets:     make(map[string]domain.WatermarkPreset),
		preferences: make(map[string][]byte),
	}
}

func (f *fakePresetsRepo) SavePreset(_ context.Context, p *domain.WatermarkPreset) error {
	f.presets[p.ID] = *p
	f.order = append(f.order, p.ID)
	return nil
}

func (f *fakePresetsRepo) GetPreset(_ context.Context, id string) (*domain.WatermarkPreset, error) {
	p, ok := f.presets[id]
	if !ok {
		return nil, snaprepo.ErrPresetNotFound
	}
	return &p, nil
}

func (f *fakePresetsRepo) ListPresets(_ context.Context) ([]domain.WatermarkPreset, error) {
	out := make([]domain.WatermarkPreset, 0, len(f.order))
	for _, id := range f.order {
		if p, ok := f.presets[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePresetsRepo) DeletePreset(_ context.Context, id string) error {
	if _, ok := f.presets[id]; !ok {
		return snaprepo.ErrPresetNotFound
	}
	delete(f.presets, id)
	return nil
}

func (f *fakePresetsRepo) SavePreference(_ context.Context, key string, value []byte) error {
	f.preferences[key] = value
	return nil
}

func (f *fakePresetsRepo) GetPreference(_ context.Context, key string) ([]byte, error) {
	v, ok := f.preferences[key]
	if !ok {
		return nil, snaprepo.ErrPreferenceNotFound
	}
	return v, nil
}

func newTestUsecase() (*PresetsUsecase, *fakePresetsRepo) {
	zlog.Init()
	repo := newFakePresetsRepo()
	return NewPresetsUsecase(repo, &zlog.Logger), repo
}

func TestListStartsWithBuiltIns(t *testing.T) {
	uc, _ := newTestUsecase()

	all, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	builtins := domain.BuiltInWatermarkPresets()
	if len(all) != len(builtins) {
		t.Fatalf("expected %d presets, got %d", len(builtins), len(all))
	}
	for i, p := range builtins {
		if all[i].ID != p.ID {
			t.Errorf("preset %d: expected %s, got %s", i, p.ID, all[i].ID)
		}
		if all[i].Kind != domain.PresetBuiltIn {
			t.Errorf("preset %s: expected builtin kind, got %s", all[i].ID, all[i].Kind)
		}
	}
}

func TestCreateAppendsAfterBuiltIns(t *testing.T) {
	uc, _ := newTestUsecase()
	ctx := context.Background()

	spec := domain.DefaultWatermarkSpec()
	spec.Text = "My Brand"

	created, err := uc.Create(ctx, "Brand", spec)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Kind != domain.PresetUserDefined {
		t.Fatalf("expected user kind, got %s", created.Kind)
	}

	all, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	last := all[len(all)-1]
	if last.ID != created.ID {
		t.Fatalf("expected user preset last, got %s", last.ID)
	}
	if last.Spec.Text != "My Brand" {
		t.Fatalf("unexpected spec text %q", last.Spec.Text)
	}
}

func TestCreateValidation(t *testing.T) {
	uc, _ := newTestUsecase()
	ctx := context.Background()

	if _, err := uc.Create(ctx, "  ", domain.DefaultWatermarkSpec()); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}

	spec := domain.DefaultWatermarkSpec()
	spec.Text = "   "
	if _, err := uc.Create(ctx, "Empty", spec); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestDeleteBuiltInRefused(t *testing.T) {
	uc, _ := newTestUsecase()

	err := uc.Delete(context.Background(), domain.BuiltInWatermarkPresets()[0].ID)
	if !errors.Is(err, ErrBuiltInPreset) {
		t.Fatalf("expected ErrBuiltInPreset, got %v", err)
	}
}

func TestDeleteUserPreset(t *testing.T) {
	uc, _ := newTestUsecase()
	ctx := context.Background()

	spec := domain.DefaultWatermarkSpec()
	created, err := uc.Create(ctx, "Temp", spec)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := uc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if err := uc.Delete(ctx, created.ID); !errors.Is(err, snaprepo.ErrPresetNotFound) {
		t.Fatalf("expected ErrPresetNotFound, got %v", err)
	}
}

func TestApplyReturnsFullSpecCopy(t *testing.T) {
	uc, _ := newTestUsecase()
	ctx := context.Background()

	builtin := domain.BuiltInWatermarkPresets()[1]

	got, err := uc.Apply(ctx, builtin.ID)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != builtin.Spec {
		t.Fatalf("expected %+v, got %+v", builtin.Spec, got)
	}

	// Applying again yields the identical spec.
	again, err := uc.Apply(ctx, builtin.ID)
	if err != nil {
		t.Fatalf("Apply again: %v", err)
	}
	if again != got {
		t.Fatalf("apply is not idempotent: %+v vs %+v", again, got)
	}
}

func TestMatchingPreset(t *testing.T) {
	all := domain.BuiltInWatermarkPresets()
	spec := all[0].Spec

	if id := MatchingPreset(spec, all); id != all[0].ID {
		t.Fatalf("expected match %s, got %q", all[0].ID, id)
	}

	spec.Opacity += 1
	if id := MatchingPreset(spec, all); id != "" {
		t.Fatalf("expected no match after edit, got %q", id)
	}
}

func TestLastUsedRoundTrip(t *testing.T) {
	uc, _ := newTestUsecase()
	ctx := context.Background()

	spec := domain.DefaultWatermarkSpec()
	spec.Text = "session text"
	spec.Rotation = 12

	if err := uc.SaveLastUsed(ctx, spec); err != nil {
		t.Fatalf("SaveLastUsed: %v", err)
	}

	got, err := uc.LastUsed(ctx)
	if err != nil {
		t.Fatalf("LastUsed: %v", err)
	}
	if got != spec {
		t.Fatalf("expected %+v, got %+v", spec, got)
	}
}

func TestLastUsedDefaultsWhenMissing(t *testing.T) {
	uc, _ := newTestUsecase()

	got, err := uc.LastUsed(context.Background())
	if err != nil {
		t.Fatalf("LastUsed: %v", err)
	}
	if got != domain.DefaultWatermarkSpec() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestLastUsedDefaultsOnCorruptRecord(t *testing.T) {
	uc, repo := newTestUsecase()
	ctx := context.Background()

	repo.preferences[domain.PreferenceKeyWatermark] = []byte("{not json")

	got, err := uc.LastUsed(ctx)
	if err != nil {
		t.Fatalf("LastUsed: %v", err)
	}
	if got != domain.DefaultWatermarkSpec() {
		t.Fatalf("expected defaults on corrupt record, got %+v", got)
	}
}

func TestLastUsedDefaultsOnSchemaMismatch(t *testing.T) {
	uc, repo := newTestUsecase()
	ctx := context.Background()

	pref := domain.WatermarkPreference{
		SchemaVersion: domain.WatermarkPreferenceSchemaVersion + 1,
		Spec:          domain.BuiltInWatermarkPresets()[1].Spec,
	}
	raw, _ := json.Marshal(pref)
	repo.preferences[domain.PreferenceKeyWatermark] = raw

	got, err := uc.LastUsed(ctx)
	if err != nil {
		t.Fatalf("LastUsed: %v", err)
	}
	if got != domain.DefaultWatermarkSpec() {
		t.Fatalf("expected defaults on schema mismatch, got %+v", got)
	}
}
