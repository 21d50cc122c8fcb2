package snap

import (
	"context"

	"github.com/wb-go/wbf/retry"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
)

type snapRepository interface {
	Save(ctx context.Context, s *domain.Snap) error
	GetByID(ctx context.Context, id string) (*domain.Snap, error)
	List(ctx context.Context, filter domain.SnapFilter) ([]domain.Snap, error)
	UpdateStatus(ctx context.Context, id string, status domain.SnapStatus) error
	Fail(ctx context.Context, id, errMsg string) error
	SetFavorite(ctx context.Context, id string, favorite bool) error
	Delete(ctx context.Context, id string) error
}

type fileRepository interface {
	DeleteObject(ctx context.Context, path string) error
}

type taskProducer interface {
	Send(ctx context.Context, strategy retry.Strategy, key, value []byte) error
}
