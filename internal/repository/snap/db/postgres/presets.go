package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
	"github.com/Nurash908/Selfie2Snap/internal/repository/snap"
)

// PresetsRepository persists user-created watermark presets and the
// last-used preference record. Built-in presets never touch the database.
type PresetsRepository struct {
	db      *dbpg.DB
	retries retry.Strategy
}

func NewPresetsRepository(db *dbpg.DB, retries retry.Strategy) *PresetsRepository {
	return &PresetsRepository{
		db:      db,
		retries: retries,
	}
}

func (r *PresetsRepository) SavePreset(ctx context.Context, p *domain.WatermarkPreset) error {
	spec, err := json.Marshal(p.Spec)
	if err != nil {
		return fmt.Errorf("failed to marshal preset spec: %w", err)
	}

	query := `INSERT INTO watermark_presets (id, name, spec, created_at) VALUES ($1, $2, $3, $4)`

	_, err = r.db.ExecWithRetry(ctx, r.retries, query, p.ID, p.Name, spec, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save preset: %w", err)
	}

	return nil
}

func (r *PresetsRepository) GetPreset(ctx context.Context, id string) (*domain.WatermarkPreset, error) {
	query := `SELECT id, name, spec FROM watermark_presets WHERE id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.retries, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query preset: %w", err)
	}

	var (
		p    domain.WatermarkPreset
		spec []byte
	)
	err = row.Scan(&p.ID, &p.Name, &spec)
	if err == sql.ErrNoRows {
		return nil, snap.ErrPresetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan preset: %w", err)
	}

	if err := json.Unmarshal(spec, &p.Spec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preset spec: %w", err)
	}
	p.Kind = domain.PresetUserDefined

	return &p, nil
}

func (r *PresetsRepository) ListPresets(ctx context.Context) ([]domain.WatermarkPreset, error) {
	query := `SELECT id, name, spec FROM watermark_presets ORDER BY created_at ASC`

	rows, err := r.db.QueryWithRetry(ctx, r.retries, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query presets: %w", err)
	}
	defer rows.Close()

	var presets []domain.WatermarkPreset
	for rows.Next() {
		var (
			p    domain.WatermarkPreset
			spec []byte
		)
		if err := rows.Scan(&p.ID, &p.Name, &spec); err != nil {
			return nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		if err := json.Unmarshal(spec, &p.Spec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal preset spec: %w", err)
		}
		p.Kind = domain.PresetUserDefined
		presets = append(presets, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating presets: %w", err)
	}

	return presets, nil
}

func (r *PresetsRepository) DeletePreset(ctx context.Context, id string) error {
	query := `DELETE FROM watermark_presets WHERE id = $1`

	result, err := r.db.ExecWithRetry(ctx, r.retries, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return snap.ErrPresetNotFound
	}

	return nil
}

func (r *PresetsRepository) SavePreference(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO preferences (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = $3
	`

	_, err := r.db.ExecWithRetry(ctx, r.retries, query, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}

	return nil
}

func (r *PresetsRepository) GetPreference(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM preferences WHERE key = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.retries, query, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query preference: %w", err)
	}

	var value []byte
	err = row.Scan(&value)
	if err == sql.ErrNoRows {
		return nil, snap.ErrPreferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan preference: %w", err)
	}

	return value, nil
}
