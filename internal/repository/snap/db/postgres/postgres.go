package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
	"github.com/Nurash908/Selfie2Snap/internal/repository/snap"
)

type SnapsRepository struct {
	db      *dbpg.DB
	retries retry.Strategy
}

func NewSnapsRepository(db *dbpg.DB, retries retry.Strategy) *SnapsRepository {
	return &SnapsRepository{
		db:      db,
		retries: retries,
	}
}

func (r *SnapsRepository) Save(ctx context.Context, s *domain.Snap) error {
	query := `
		INSERT INTO snaps (
			id, url, object_path, prompt, style, frame_index, frame_count,
			favorite, status, error, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecWithRetry(ctx, r.retries, query,
		s.ID,
		s.URL,
		s.ObjectPath,
		s.Prompt,
		s.Style,
		s.FrameIndex,
		s.FrameCount,
		s.Favorite,
		s.Status,
		s.Error,
		s.CreatedAt,
		s.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save snap: %w", err)
	}

	return nil
}

func (r *SnapsRepository) GetByID(ctx context.Context, id string) (*domain.Snap, error) {
	query := `
		SELECT id, url, object_path, prompt, style, frame_index, frame_count,
		       favorite, status, error, created_at, updated_at
		FROM snaps
		WHERE id = $1 AND status != $2
	`

	row, err := r.db.QueryRowWithRetry(ctx, r.retries, query, id, domain.StatusDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to query snap: %w", err)
	}

	var s domain.Snap
	err = row.Scan(
		&s.ID,
		&s.URL,
		&s.ObjectPath,
		&s.Prompt,
		&s.Style,
		&s.FrameIndex,
		&s.FrameCount,
		&s.Favorite,
		&s.Status,
		&s.Error,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, snap.ErrSnapNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snap: %w", err)
	}

	return &s, nil
}

func (r *SnapsRepository) List(ctx context.Context, filter domain.SnapFilter) ([]domain.Snap, error) {
	query := `
		SELECT id, url, object_path, prompt, style, frame_index, frame_count,
		       favorite, status, error, created_at, updated_at
		FROM snaps
		WHERE status != $1
	`

	args := []interface{}{domain.StatusDeleted}
	if filter.Style != "" {
		args = append(args, filter.Style)
		query += fmt.Sprintf(" AND style = $%d", len(args))
	}
	if filter.FavoriteOnly {
		query += " AND favorite = TRUE"
	}
	if filter.SortOldest {
		query += " ORDER BY created_at ASC"
	} else {
		query += " ORDER BY created_at DESC"
	}

	rows, err := r.db.QueryWithRetry(ctx, r.retries, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snaps: %w", err)
	}
	defer rows.Close()

	var snaps []domain.Snap
	for rows.Next() {
		var s domain.Snap
		err := rows.Scan(
			&s.ID,
			&s.URL,
			&s.ObjectPath,
			&s.Prompt,
			&s.Style,
			&s.FrameIndex,
			&s.FrameCount,
			&s.Favorite,
			&s.Status,
			&s.Error,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snap: %w", err)
		}
		snaps = append(snaps, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snaps: %w", err)
	}

	return snaps, nil
}

func (r *SnapsRepository) UpdateStatus(ctx context.Context, id string, status domain.SnapStatus) error {
	query := `UPDATE snaps SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecWithRetry(ctx, r.retries, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	return checkAffected(result)
}

// Complete records the generated frame's locator and storage path and
// flips the snap to completed.
func (r *SnapsRepository) Complete(ctx context.Context, id, url, objectPath string) error {
	query := `
		UPDATE snaps
		SET url = $1, object_path = $2, status = $3, error = '', updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.ExecWithRetry(ctx, r.retries, query, url, objectPath, domain.StatusCompleted, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to complete snap: %w", err)
	}

	return checkAffected(result)
}

func (r *SnapsRepository) Fail(ctx context.Context, id, errMsg string) error {
	query := `UPDATE snaps SET status = $1, error = $2, updated_at = $3 WHERE id = $4`

	result, err := r.db.ExecWithRetry(ctx, r.retries, query, domain.StatusFailed, errMsg, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark snap failed: %w", err)
	}

	return checkAffected(result)
}

func (r *SnapsRepository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	query := `UPDATE snaps SET favorite = $1, updated_at = $2 WHERE id = $3 AND status != $4`

	result, err := r.db.ExecWithRetry(ctx, r.retries, query, favorite, time.Now(), id, domain.StatusDeleted)
	if err != nil {
		return fmt.Errorf("failed to set favorite: %w", err)
	}

	return checkAffected(result)
}

func (r *SnapsRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE snaps SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecWithRetry(ctx, r.retries, query, domain.StatusDeleted, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete snap: %w", err)
	}

	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return snap.ErrSnapNotFound
	}

	return nil
}
