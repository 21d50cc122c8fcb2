package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
)

// Upstream failure categories. Surfaced verbatim to callers; the core never
// retries generation automatically.
var (
	ErrRateLimited    = errors.New("generation rate limited")
	ErrQuotaExhausted = errors.New("generation quota exhausted")
	ErrGeneration     = errors.New("generation failed")
)

// Category maps a client error to its taxonomy label for user-facing
// messaging.
func Category(err error) string {
	switch {
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrQuotaExhausted):
		return "quota_exhausted"
	default:
		return "failed"
	}
}

// Client speaks to the external image composition service: two source
// portraits in, one composited frame locator out.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zlog.Zerolog
}

func NewClient(baseURL, apiKey string, client *http.Client, logger *zlog.Zerolog) *Client {
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		logger:  logger,
	}
}

type composeRequest struct {
	SourceA    string `json:"source_a"`
	SourceB    string `json:"source_b"`
	Style      string `json:"style"`
	Prompt     string `json:"prompt"`
	FrameIndex int    `json:"frame_index"`
	FrameCount int    `json:"frame_count"`
}

type composeResponse struct {
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

// Generate submits one frame of a batch and returns the composited image
// locator.
func (c *Client) Generate(ctx context.Context, task *domain.GenerationTask) (string, error) {
	payload, err := json.Marshal(composeRequest{
		SourceA:    task.SourceA,
		SourceB:    task.SourceB,
		Style:      string(task.Style),
		Prompt:     task.Prompt,
		FrameIndex: task.FrameIndex,
		FrameCount: task.FrameCount,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal compose request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/compose", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build compose request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrGeneration, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: %s", ErrRateLimited, upstreamMessage(body))
	case http.StatusPaymentRequired:
		return "", fmt.Errorf("%w: %s", ErrQuotaExhausted, upstreamMessage(body))
	default:
		return "", fmt.Errorf("%w: status %d: %s", ErrGeneration, resp.StatusCode, upstreamMessage(body))
	}

	var out composeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", ErrGeneration, err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("%w: empty result locator", ErrGeneration)
	}

	c.logger.Debug().
		Str("snap_id", task.SnapID).
		Str("style", string(task.Style)).
		Int("frame", task.FrameIndex).
		Msg("Frame composited")

	return out.URL, nil
}

// Fetch downloads a composited frame by its locator.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build fetch request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch frame: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching frame", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func upstreamMessage(body []byte) string {
	var out composeResponse
	if err := json.Unmarshal(body, &out); err == nil && out.Error != "" {
		return out.Error
	}
	return string(bytes.TrimSpace(body))
}
