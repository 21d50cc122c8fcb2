package archive

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/wb-go/wbf/zlog"
)

// Source is one image to package: either a base64 data URI or a remote URL.
type Source struct {
	URL string
}

// ProgressFunc receives (completed, total) after every source, success or
// failure. Calls are monotonic and the last one reports completed == total.
type ProgressFunc func(completed, total int)

type Result struct {
	Data      []byte
	Succeeded int
	Total     int
}

type Builder struct {
	client *http.Client
	logger *zlog.Zerolog
}

func NewBuilder(client *http.Client, logger *zlog.Zerolog) *Builder {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Builder{
		client: client,
		logger: logger,
	}
}

// Build packages the sources into a single ZIP blob under one top-level
// folder, processing sources strictly in order. Entries are named
// label/label-{n}.png where n is the 1-based input position, so names never
// collide regardless of which sources fail. A source that cannot be loaded
// is logged and skipped without aborting the job; only a failure while
// writing the archive itself surfaces as an error.
func (b *Builder) Build(ctx context.Context, sources []Source, label string, onProgress ProgressFunc) (*Result, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	total := len(sources)
	completed := 0
	succeeded := 0

	for i, src := range sources {
		data, err := b.load(ctx, src.URL)
		if err != nil {
			b.logger.Warn().
				Err(err).
				Int("index", i).
				Int("total", total).
				Msg("Skipping archive source")
		} else {
			name := fmt.Sprintf("%s/%s-%d.png", label, label, i+1)
			entry, err := zw.Create(name)
			if err != nil {
				zw.Close()
				return nil, fmt.Errorf("failed to create archive entry %s: %w", name, err)
			}
			if _, err := entry.Write(data); err != nil {
				zw.Close()
				return nil, fmt.Errorf("failed to write archive entry %s: %w", name, err)
			}
			succeeded++
		}

		completed++
		if onProgress != nil {
			onProgress(completed, total)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return &Result{
		Data:      buf.Bytes(),
		Succeeded: succeeded,
		Total:     total,
	}, nil
}

func (b *Builder) load(ctx context.Context, url string) ([]byte, error) {
	if strings.HasPrefix(url, "data:") {
		return decodeDataURI(url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", url, err)
	}
	return data, nil
}

func decodeDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}
	if !strings.Contains(header, ";base64") {
		return nil, fmt.Errorf("unsupported data URI encoding: %s", header)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URI payload: %w", err)
	}
	return data, nil
}

// Percent converts a progress count to a rounded 0-100 percentage.
func Percent(completed, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
