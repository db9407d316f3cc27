package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/adforge/api/internal/config"
)

func sseReply(content string) string {
	var b strings.Builder
	for _, part := range strings.SplitAfter(content, " ") {
		if part == "" {
			continue
		}
		chunk := fmt.Sprintf(`{"choices":[{"delta":{"content":%q}}]}`, part)
		b.WriteString("data: " + chunk + "\n\n")
	}
	b.WriteString("data: [DONE]\n\n")
	return b.String()
}

func testClient(baseURL string) *OpenRouterClient {
	c := NewOpenRouterClient(&config.OpenRouterConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "test-model",
	}, zerolog.Nop())
	c.backoff = time.Millisecond
	return c
}

func TestGenerateJSON_StreamsAndParses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, sseReply(`{"ok": true}`))
	}))
	defer srv.Close()

	var chunks []string
	result, err := testClient(srv.URL).GenerateJSON(context.Background(), "prompt", GenerateOptions{
		OnChunk: func(text string) { chunks = append(chunks, text) },
	})
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if string(result.Parsed) != `{"ok": true}` {
		t.Errorf("unexpected parsed output %q", result.Parsed)
	}
	if len(chunks) == 0 {
		t.Error("expected OnChunk to receive fragments")
	}
	if strings.Join(chunks, "") != result.Raw {
		t.Errorf("chunks %q do not reassemble raw %q", strings.Join(chunks, ""), result.Raw)
	}
}

func TestGenerateJSON_RetriesTransientFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, sseReply(`[1, 2, 3]`))
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).GenerateJSON(context.Background(), "prompt", GenerateOptions{})
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if string(result.Parsed) != `[1, 2, 3]` {
		t.Errorf("unexpected parsed output %q", result.Parsed)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected 2 calls, got %d", got)
	}
}

func TestGenerateJSON_ExhaustsRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).GenerateJSON(context.Background(), "prompt", GenerateOptions{}); err == nil {
		t.Fatal("expected failure after exhausted retries")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestGenerateJSON_MalformedOutputNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, sseReply("this is not json at all"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GenerateJSON(context.Background(), "prompt", GenerateOptions{})
	if !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("malformed output should not be retried, got %d calls", got)
	}
}

func TestGenerateJSON_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).GenerateJSON(context.Background(), "prompt", GenerateOptions{}); err == nil {
		t.Fatal("expected error for 401")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("4xx should not be retried, got %d calls", got)
	}
}

func TestGenerateJSON_NotConfigured(t *testing.T) {
	c := NewOpenRouterClient(&config.OpenRouterConfig{}, zerolog.Nop())
	if _, err := c.GenerateJSON(context.Background(), "prompt", GenerateOptions{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestGenerateText_TrimsReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, sseReply("  an optimized prompt \n"))
	}))
	defer srv.Close()

	text, err := testClient(srv.URL).GenerateText(context.Background(), "prompt", GenerateOptions{})
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != "an optimized prompt" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"clean object", `{"a": 1}`, `{"a": 1}`},
		{"clean array", `[1, 2]`, `[1, 2]`},
		{"fenced json", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced no tag", "```\n[1]\n```", `[1]`},
		{"prose around object", `Here you go: {"a": 1} hope that helps`, `{"a": 1}`},
		{"prose around array", `Sure! [1, 2] done`, `[1, 2]`},
		{"array before object text", `[{"a": 1}]`, `[{"a": 1}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractJSON(tc.in)
			if got != tc.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
			// applying it again must not change the result
			if again := extractJSON(got); again != got {
				t.Errorf("extractJSON not idempotent: %q -> %q", got, again)
			}
		})
	}
}
