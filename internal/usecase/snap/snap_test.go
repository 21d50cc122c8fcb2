package snap

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
	snaprepo "github.com/Nurash908/Selfie2Snap/internal/repository/snap"
)

type fakeSnapRepo struct {
	snaps map[string]*domain.Snap
	order []string
}

func newFakeSnapRepo() *fakeSnapRepo {
	return &fakeSnapRepo{snaps: make(map[string]*domain.Snap)}
}

func (f *fakeSnapRepo) Save(_ context.Context, s *domain.Snap) error {
	copied := *s
	f.snaps[s.ID] = &copied
	f.order = append(f.order, s.ID)
	return nil
}

func (f *fakeSnapRepo) GetByID(_ context.Context, id string) (*domain.Snap, error) {
	s, ok := f.snaps[id]
	if !ok || s.Status == domain.StatusDeleted {
		return nil, snaprepo.ErrSnapNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSnapRepo) List(_ context.Context, filter domain.SnapFilter) ([]domain.Snap, error) {
	var out []domain.Snap
	for _, id := range f.order {
		s := f.snaps[id]
		if s.Status == domain.StatusDeleted {
			continue
		}
		if filter.Style != "" && s.Style != filter.Style {
			continue
		}
		if filter.FavoriteOnly && !s.Favorite {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSnapRepo) UpdateStatus(_ context.Context, id string, status domain.SnapStatus) error {
	s, ok := f.snaps[id]
	if !ok {
		return snaprepo.ErrSnapNotFound
	}
	s.Status = status
	return nil
}

func (f *fakeSnapRepo) Fail(_ context.Context, id, errMsg string) error {
	s, ok := f.snaps[id]
	if !ok {
		return snaprepo.ErrSnapNotFound
	}
	s.Status = domain.StatusFailed
	s.Error = errMsg
	return nil
}

func (f *fakeSnapRepo) SetFavorite(_ context.Context, id string, favorite bool) error {
	s, ok := f.snaps[id]
	if !ok || s.Status == domain.StatusDeleted {
		return snaprepo.ErrSnapNotFound
	}
	s.Favorite = favorite
	return nil
}

func (f *fakeSnapRepo) Delete(_ context.Context, id string) error {
	s, ok := f.snaps[id]
	if !ok {
		return snaprepo.ErrSnapNotFound
	}
	s.Status = domain.StatusDeleted
	return nil
}

type fakeFiles struct {
	deleted []string
}

func (f *fakeFiles) DeleteObject(_ context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

type fakeProducer struct {
	sent    [][]byte
	failOn  int
	sendErr error
}

func (f *fakeProducer) Send(_ context.Context, _ retry.Strategy, _, value []byte) error {
	if f.sendErr != nil && len(f.sent) == f.failOn {
		f.sent = append(f.sent, nil)
		return f.sendErr
	}
	f.sent = append(f.sent, value)
	return nil
}

func newTestUsecase() (*SnapUsecase, *fakeSnapRepo, *fakeFiles, *fakeProducer) {
	zlog.Init()
	repo := newFakeSnapRepo()
	files := &fakeFiles{}
	producer := &fakeProducer{}
	uc := NewSnapUsecase(repo, files, producer, &zlog.Logger, retry.Strategy{Attempts: 1})
	return uc, repo, files, producer
}

func TestGenerateBatchCreatesOneSnapPerFrame(t *testing.T) {
	uc, repo, _, producer := newTestUsecase()

	snaps, err := uc.GenerateBatch(context.Background(), "data:image/png;base64,AA==", "", domain.StyleAnime, 3)
	if err != nil {
		t.Fatalf("GenerateBatch: %v", err)
	}

	if len(snaps) != 3 {
		t.Fatalf("expected 3 snaps, got %d", len(snaps))
	}
	if len(producer.sent) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(producer.sent))
	}

	for i, s := range snaps {
		if s.FrameIndex != i || s.FrameCount != 3 {
			t.Errorf("snap %d: frame %d/%d", i, s.FrameIndex, s.FrameCount)
		}
		if s.Status != domain.StatusGenerating {
			t.Errorf("snap %d: expected generating, got %s", i, s.Status)
		}
		if _, ok := repo.snaps[s.ID]; !ok {
			t.Errorf("snap %d not persisted", i)
		}

		var task domain.GenerationTask
		if err := json.Unmarshal(producer.sent[i], &task); err != nil {
			t.Fatalf("task %d: %v", i, err)
		}
		if task.SnapID != s.ID {
			t.Errorf("task %d: snap id %s, want %s", i, task.SnapID, s.ID)
		}
		if task.Prompt != s.Prompt {
			t.Errorf("task %d: prompt mismatch", i)
		}
	}

	// Multi-frame prompts carry distinct frame hints.
	if snaps[0].Prompt == snaps[1].Prompt {
		t.Error("expected per-frame prompts to differ")
	}
}

func TestGenerateBatchValidation(t *testing.T) {
	uc, _, _, _ := newTestUsecase()
	ctx := context.Background()

	if _, err := uc.GenerateBatch(ctx, "", "", domain.StyleAnime, 1); !errors.Is(err, ErrMissingSource) {
		t.Fatalf("expected ErrMissingSource, got %v", err)
	}
	if _, err := uc.GenerateBatch(ctx, "src", "", "vaporwave", 1); !errors.Is(err, ErrUnknownStyle) {
		t.Fatalf("expected ErrUnknownStyle, got %v", err)
	}
	if _, err := uc.GenerateBatch(ctx, "src", "", domain.StyleAnime, domain.MaxFramesPerBatch+1); !errors.Is(err, ErrTooManyFrames) {
		t.Fatalf("expected ErrTooManyFrames, got %v", err)
	}
}

func TestGenerateBatchFrameFailureIsIsolated(t *testing.T) {
	uc, repo, _, producer := newTestUsecase()
	producer.sendErr = errors.New("broker down")
	producer.failOn = 1

	snaps, err := uc.GenerateBatch(context.Background(), "src", "", domain.StyleVintage, 3)
	if err != nil {
		t.Fatalf("GenerateBatch: %v", err)
	}

	if snaps[1].Status != domain.StatusFailed {
		t.Fatalf("expected frame 1 failed, got %s", snaps[1].Status)
	}
	if repo.snaps[snaps[1].ID].Status != domain.StatusFailed {
		t.Fatal("failed frame not persisted as failed")
	}
	if snaps[0].Status != domain.StatusGenerating || snaps[2].Status != domain.StatusGenerating {
		t.Fatal("healthy frames should still be enqueued")
	}
}

func TestToggleFavorite(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	ctx := context.Background()

	repo.Save(ctx, &domain.Snap{ID: "s1", Status: domain.StatusCompleted})

	fav, err := uc.ToggleFavorite(ctx, "s1")
	if err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if !fav {
		t.Fatal("expected favorite true after first toggle")
	}

	fav, err = uc.ToggleFavorite(ctx, "s1")
	if err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if fav {
		t.Fatal("expected favorite false after second toggle")
	}
}

func TestDeleteSnapRemovesObject(t *testing.T) {
	uc, repo, files, _ := newTestUsecase()
	ctx := context.Background()

	repo.Save(ctx, &domain.Snap{ID: "s1", ObjectPath: "frames/s1.png", Status: domain.StatusCompleted})

	if err := uc.DeleteSnap(ctx, "s1"); err != nil {
		t.Fatalf("DeleteSnap: %v", err)
	}

	if len(files.deleted) != 1 || files.deleted[0] != "frames/s1.png" {
		t.Fatalf("expected frame object deleted, got %v", files.deleted)
	}
	if repo.snaps["s1"].Status != domain.StatusDeleted {
		t.Fatal("expected soft delete")
	}

	if _, err := uc.GetSnap(ctx, "s1"); !errors.Is(err, snaprepo.ErrSnapNotFound) {
		t.Fatalf("deleted snap should be invisible, got %v", err)
	}
}

func TestListSnapsFilter(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	ctx := context.Background()

	repo.Save(ctx, &domain.Snap{ID: "a", Style: domain.StyleAnime, Favorite: true, Status: domain.StatusCompleted})
	repo.Save(ctx, &domain.Snap{ID: "b", Style: domain.StyleVintage, Status: domain.StatusCompleted})

	got, err := uc.ListSnaps(ctx, domain.SnapFilter{Style: domain.StyleAnime})
	if err != nil {
		t.Fatalf("ListSnaps: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("unexpected filter result: %+v", got)
	}

	got, err = uc.ListSnaps(ctx, domain.SnapFilter{FavoriteOnly: true})
	if err != nil {
		t.Fatalf("ListSnaps: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("unexpected favorite filter result: %+v", got)
	}
}
