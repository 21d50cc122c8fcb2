package studio

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/Nurash908/Selfie2Snap/internal/archive"
	"github.com/Nurash908/Selfie2Snap/internal/domain"
	"github.com/Nurash908/Selfie2Snap/internal/imaging"
)

const presignExpiry = 15 * time.Minute

// Export is one rendered image ready for download. Data holds the PNG
// bytes; Path is where the export was stored.
type Export struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Data     []byte `json:"-"`
}

// ArchiveExport is a finished ZIP batch.
type ArchiveExport struct {
	Filename  string `json:"filename"`
	Succeeded int    `json:"succeeded"`
	Total     int    `json:"total"`
	Data      []byte `json:"-"`
}

type StudioUsecase struct {
	snaps   snapRepository
	files   fileRepository
	builder archiveBuilder
	client  *http.Client
	logger  *zlog.Zerolog
}

func NewStudioUsecase(snaps snapRepository, files fileRepository, builder archiveBuilder, logger *zlog.Zerolog) *StudioUsecase {
	return &StudioUsecase{
		snaps:   snaps,
		files:   files,
		builder: builder,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// Enhance renders the snap's pristine frame through the pixel pipeline.
// Settings always apply to the stored original, so repeated calls with
// the same settings produce the same output.
func (u *StudioUsecase) Enhance(ctx context.Context, snapID string, settings domain.EnhancementSettings) (*Export, error) {
	img, err := u.loadFrame(ctx, snapID)
	if err != nil {
		return nil, err
	}

	out := imaging.Enhance(img, settings.Clamped())

	return u.export(ctx, "enhanced", out)
}

// Watermark composites the text overlay onto the snap's pristine frame.
func (u *StudioUsecase) Watermark(ctx context.Context, snapID string, spec domain.WatermarkSpec) (*Export, error) {
	if strings.TrimSpace(spec.Text) == "" {
		return nil, ErrEmptyWatermarkText
	}

	img, err := u.loadFrame(ctx, snapID)
	if err != nil {
		return nil, err
	}

	out := imaging.Watermark(img, spec.Normalized())

	return u.export(ctx, "watermarked", out)
}

// Archive packages the selected snaps into one ZIP. Snaps that cannot
// be resolved or downloaded are skipped; the archive ships with whatever
// succeeded.
func (u *StudioUsecase) Archive(ctx context.Context, snapIDs []string, label string) (*ArchiveExport, error) {
	if len(snapIDs) == 0 {
		return nil, ErrNoSources
	}
	if label == "" {
		label = domain.DefaultArchiveLabel
	}

	sources := make([]archive.Source, 0, len(snapIDs))
	for _, id := range snapIDs {
		url, err := u.resolveLocator(ctx, id)
		if err != nil {
			u.logger.Error().Err(err).Str("snap_id", id).Msg("Skipping snap in archive")
			sources = append(sources, archive.Source{})
			continue
		}
		sources = append(sources, archive.Source{URL: url})
	}

	result, err := u.builder.Build(ctx, sources, label, func(completed, total int) {
		u.logger.Info().
			Int("completed", completed).
			Int("total", total).
			Int("percent", archive.Percent(completed, total)).
			Msg("Archive progress")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build archive: %w", err)
	}

	if result.Succeeded == 0 {
		return nil, ErrAllSourcesFailed
	}

	return &ArchiveExport{
		Filename:  fmt.Sprintf("%s-%d.zip", label, time.Now().UnixMilli()),
		Succeeded: result.Succeeded,
		Total:     result.Total,
		Data:      result.Data,
	}, nil
}

// loadFrame fetches and decodes the snap's stored frame. Edits always
// start from this pristine copy.
func (u *StudioUsecase) loadFrame(ctx context.Context, snapID string) (*image.NRGBA, error) {
	s, err := u.snaps.GetByID(ctx, snapID)
	if err != nil {
		return nil, err
	}

	if s.Status != domain.StatusCompleted {
		return nil, ErrSnapNotReady
	}

	raw, err := u.loadBytes(ctx, s)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}

	return img, nil
}

func (u *StudioUsecase) loadBytes(ctx context.Context, s *domain.Snap) ([]byte, error) {
	if s.ObjectPath != "" {
		obj, err := u.files.GetObject(ctx, s.ObjectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to get frame object: %w", err)
		}
		defer obj.Close()

		raw, err := io.ReadAll(obj)
		if err != nil {
			return nil, fmt.Errorf("failed to read frame object: %w", err)
		}
		return raw, nil
	}

	if s.URL == "" {
		return nil, ErrSnapNotReady
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build frame request: %w", err)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch frame: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected frame status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// resolveLocator returns a download URL for a snap's frame. Objects in
// the store are handed out as presigned URLs so the archive builder can
// fetch them like any other source.
func (u *StudioUsecase) resolveLocator(ctx context.Context, snapID string) (string, error) {
	s, err := u.snaps.GetByID(ctx, snapID)
	if err != nil {
		return "", err
	}

	if s.Status != domain.StatusCompleted {
		return "", ErrSnapNotReady
	}

	if s.ObjectPath != "" {
		return u.files.PresignedGetURL(ctx, s.ObjectPath, presignExpiry)
	}
	if s.URL != "" {
		return s.URL, nil
	}

	return "", ErrSnapNotReady
}

func (u *StudioUsecase) export(ctx context.Context, action string, img *image.NRGBA) (*Export, error) {
	data, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	filename := fmt.Sprintf("%s-%s-%d.png", domain.AppPrefix, action, time.Now().UnixMilli())
	path := domain.PathPrefixExports + filename

	if err := u.files.SaveObject(ctx, path, data, "image/png"); err != nil {
		return nil, fmt.Errorf("failed to store export: %w", err)
	}

	u.logger.Info().Str("path", path).Str("action", action).Msg("Export rendered")

	return &Export{
		Filename: filename,
		Path:     path,
		Data:     data,
	}, nil
}
