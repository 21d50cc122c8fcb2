package generation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wb-go/wbf/zlog"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
)

func testTask() *domain.GenerationTask {
	return &domain.GenerationTask{
		ID:         "task-1",
		SnapID:     "snap-1",
		SourceA:    "data:image/png;base64,AAAA",
		SourceB:    "data:image/png;base64,BBBB",
		Style:      domain.StyleCinematic,
		Prompt:     "test prompt",
		FrameIndex: 0,
		FrameCount: 1,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	zlog.Init()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", srv.Client(), &zlog.Logger)
}

func TestGenerateSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/compose" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing auth header, got %q", got)
		}
		w.Write([]byte(`{"url":"https://cdn.example/frame-1.png"}`))
	})

	url, err := c.Generate(context.Background(), testTask())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if url != "https://cdn.example/frame-1.png" {
		t.Fatalf("unexpected locator %q", url)
	}
}

func TestGenerateErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantErr  error
		category string
	}{
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited, "rate_limited"},
		{"quota exhausted", http.StatusPaymentRequired, ErrQuotaExhausted, "quota_exhausted"},
		{"generic failure", http.StatusInternalServerError, ErrGeneration, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"error":"upstream says no"}`))
			})

			_, err := c.Generate(context.Background(), testTask())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if Category(err) != tt.category {
				t.Fatalf("expected category %s, got %s", tt.category, Category(err))
			}
			if !strings.Contains(err.Error(), "upstream says no") {
				t.Fatalf("upstream message not surfaced verbatim: %v", err)
			}
		})
	}
}

func TestGenerateEmptyLocator(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := c.Generate(context.Background(), testTask())
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestStyleCatalog(t *testing.T) {
	all := Styles()
	if len(all) != 8 {
		t.Fatalf("expected 8 styles, got %d", len(all))
	}

	s, ok := StyleByID(domain.StyleAnime)
	if !ok {
		t.Fatal("anime style missing from catalog")
	}
	if s.PromptFragment == "" {
		t.Fatal("style has no prompt fragment")
	}

	if _, ok := StyleByID("sketch"); ok {
		t.Fatal("unknown style must not resolve")
	}
}

func TestBuildPrompt(t *testing.T) {
	s, _ := StyleByID(domain.StyleVintage)

	single := BuildPrompt(s, 0, 1)
	if !strings.Contains(single, s.PromptFragment) {
		t.Fatal("prompt missing style fragment")
	}
	if strings.Contains(single, "Frame") {
		t.Fatal("single-frame prompt must not mention frame numbering")
	}

	multi := BuildPrompt(s, 2, 4)
	if !strings.Contains(multi, "Frame 3 of 4") {
		t.Fatalf("multi-frame prompt missing numbering: %q", multi)
	}
}
