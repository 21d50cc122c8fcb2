package snap

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
	"github.com/Nurash908/Selfie2Snap/internal/generation"
)

type SnapUsecase struct {
	repo     snapRepository
	fileRepo fileRepository
	producer taskProducer
	logger   *zlog.Zerolog
	retries  retry.Strategy
}

func NewSnapUsecase(repo snapRepository, fileRepo fileRepository, producer taskProducer, logger *zlog.Zerolog, retries retry.Strategy) *SnapUsecase {
	return &SnapUsecase{
		repo:     repo,
		fileRepo: fileRepo,
		producer: producer,
		logger:   logger,
		retries:  retries,
	}
}

// GenerateBatch creates one pending snap per frame and publishes a
// generation task for each. Frames are independent: a frame whose task
// cannot be published is marked failed and the rest still go out.
func (u *SnapUsecase) GenerateBatch(ctx context.Context, sourceA, sourceB string, styleID domain.StyleID, frames int) ([]domain.Snap, error) {
	if sourceA == "" {
		return nil, ErrMissingSource
	}

	style, ok := generation.StyleByID(styleID)
	if !ok {
		return nil, ErrUnknownStyle
	}

	if frames < 1 {
		frames = 1
	}
	if frames > domain.MaxFramesPerBatch {
		return nil, ErrTooManyFrames
	}

	snaps := make([]domain.Snap, 0, frames)
	enqueued := 0

	for i := 0; i < frames; i++ {
		now := time.Now()
		s := domain.Snap{
			ID:         uuid.New().String(),
			Prompt:     generation.BuildPrompt(style, i, frames),
			Style:      styleID,
			FrameIndex: i,
			FrameCount: frames,
			Status:     domain.StatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if err := u.repo.Save(ctx, &s); err != nil {
			return nil, fmt.Errorf("failed to save snap: %w", err)
		}

		task := domain.GenerationTask{
			ID:         uuid.New().String(),
			SnapID:     s.ID,
			SourceA:    sourceA,
			SourceB:    sourceB,
			Style:      styleID,
			Prompt:     s.Prompt,
			FrameIndex: i,
			FrameCount: frames,
		}

		payload, err := json.Marshal(task)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal generation task: %w", err)
		}

		if err := u.producer.Send(ctx, u.retries, []byte(s.ID), payload); err != nil {
			u.logger.Error().Err(err).Str("snap_id", s.ID).Msg("Failed to publish generation task")
			u.fail(ctx, s.ID, "failed to enqueue generation task")
			s.Status = domain.StatusFailed
			snaps = append(snaps, s)
			continue
		}

		if err := u.repo.UpdateStatus(ctx, s.ID, domain.StatusGenerating); err != nil {
			u.logger.Error().Err(err).Str("snap_id", s.ID).Msg("Failed to update status")
		} else {
			s.Status = domain.StatusGenerating
		}

		enqueued++
		snaps = append(snaps, s)
	}

	if enqueued == 0 {
		return snaps, ErrNoFramesEnqueued
	}

	u.logger.Info().Int("frames", enqueued).Str("style", string(styleID)).Msg("Generation batch enqueued")
	return snaps, nil
}

func (u *SnapUsecase) GetSnap(ctx context.Context, id string) (*domain.Snap, error) {
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get snap: %w", err)
	}
	return s, nil
}

func (u *SnapUsecase) ListSnaps(ctx context.Context, filter domain.SnapFilter) ([]domain.Snap, error) {
	snaps, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list snaps: %w", err)
	}
	return snaps, nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (u *SnapUsecase) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	next := !s.Favorite
	if err := u.repo.SetFavorite(ctx, id, next); err != nil {
		return false, fmt.Errorf("failed to set favorite: %w", err)
	}

	return next, nil
}

// DeleteSnap soft-deletes the record. The stored frame is removed best
// effort; a stale object never blocks the delete.
func (u *SnapUsecase) DeleteSnap(ctx context.Context, id string) error {
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.ObjectPath != "" {
		if err := u.fileRepo.DeleteObject(ctx, s.ObjectPath); err != nil {
			u.logger.Error().Err(err).Str("path", s.ObjectPath).Msg("Failed to delete frame object")
		}
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete snap: %w", err)
	}

	u.logger.Info().Str("snap_id", id).Msg("Snap deleted")
	return nil
}

func (u *SnapUsecase) fail(ctx context.Context, id, msg string) {
	if err := u.repo.Fail(ctx, id, msg); err != nil {
		u.logger.Error().Err(err).Str("snap_id", id).Msg("Failed to mark snap failed")
	}
}
