package studio

import (
	"context"
	"io"
	"time"

	"github.com/Nurash908/Selfie2Snap/internal/archive"
	"github.com/Nurash908/Selfie2Snap/internal/domain"
)

type snapRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Snap, error)
}

type fileRepository interface {
	SaveObject(ctx context.Context, path string, data []byte, contentType string) error
	GetObject(ctx context.Context, path string) (io.ReadCloser, error)
	PresignedGetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type archiveBuilder interface {
	Build(ctx context.Context, sources []archive.Source, label string, onProgress archive.ProgressFunc) (*archive.Result, error)
}
