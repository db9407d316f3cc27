package client

import (
	"context"
	"encoding/json"
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
	"github.com/adforge/api/internal/model"
)

func testWaveSpeed(baseURL string) *WaveSpeedClient {
	c := NewWaveSpeedClient(&config.WaveSpeedConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
	}, zerolog.Nop())
	c.pollInterval = time.Millisecond
	c.maxPollAttempts = 5
	return c
}

func TestWaveSpeed_TextToVideoCompletes(t *testing.T) {
	var polls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			if !strings.Contains(r.URL.Path, wavespeedTextToVideoModel) {
				t.Errorf("unexpected submit path %q", r.URL.Path)
			}
			var req wavespeedSubmitRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Duration != 15 {
				t.Errorf("expected duration clamped to 15, got %d", req.Duration)
			}
			fmt.Fprint(w, `{"code": 200, "data": {"id": "task-1"}}`)
		case strings.HasSuffix(r.URL.Path, "/result"):
			if atomic.AddInt32(&polls, 1) < 3 {
				fmt.Fprint(w, `{"code": 200, "data": {"id": "task-1", "status": "processing"}}`)
				return
			}
			fmt.Fprint(w, `{"code": 200, "data": {"id": "task-1", "status": "completed", "outputs": ["https://cdn.example.com/v.mp4"]}}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	result, err := testWaveSpeed(srv.URL).SubmitTextToVideo(context.Background(), "a prompt", model.VideoSettings{Duration: 30})
	if err != nil {
		t.Fatalf("SubmitTextToVideo: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.VideoURL != "https://cdn.example.com/v.mp4" {
		t.Errorf("unexpected video url %q", result.VideoURL)
	}
	if result.TaskID != "task-1" {
		t.Errorf("unexpected task id %q", result.TaskID)
	}
	if got := atomic.LoadInt32(&polls); got != 3 {
		t.Errorf("expected 3 polls, got %d", got)
	}
}

func TestWaveSpeed_ProviderFailureIsResultNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, `{"code": 200, "data": {"id": "task-2"}}`)
			return
		}
		fmt.Fprint(w, `{"code": 200, "data": {"id": "task-2", "status": "failed", "error": "nsfw content"}}`)
	}))
	defer srv.Close()

	result, err := testWaveSpeed(srv.URL).SubmitTextToVideo(context.Background(), "a prompt", model.VideoSettings{})
	if err != nil {
		t.Fatalf("provider failure must not be a Go error: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure result")
	}
	if !strings.Contains(result.Error, "nsfw content") {
		t.Errorf("expected provider message in result, got %q", result.Error)
	}
}

func TestWaveSpeed_PollTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, `{"code": 200, "data": {"id": "task-3"}}`)
			return
		}
		fmt.Fprint(w, `{"code": 200, "data": {"id": "task-3", "status": "processing"}}`)
	}))
	defer srv.Close()

	result, err := testWaveSpeed(srv.URL).SubmitTextToVideo(context.Background(), "a prompt", model.VideoSettings{})
	if err != nil {
		t.Fatalf("timeout must not be a Go error: %v", err)
	}
	if result.Success {
		t.Fatal("expected timeout failure")
	}
	if !strings.Contains(result.Error, "timed out") {
		t.Errorf("expected timeout message, got %q", result.Error)
	}
}

func TestWaveSpeed_TransientPollErrorsSwallowed(t *testing.T) {
	var polls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, `{"code": 200, "data": {"id": "task-4"}}`)
			return
		}
		if atomic.AddInt32(&polls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"code": 200, "data": {"id": "task-4", "status": "completed", "outputs": ["https://cdn.example.com/v.mp4"]}}`)
	}))
	defer srv.Close()

	result, err := testWaveSpeed(srv.URL).SubmitTextToVideo(context.Background(), "a prompt", model.VideoSettings{})
	if err != nil {
		t.Fatalf("SubmitTextToVideo: %v", err)
	}
	if !result.Success {
		t.Fatalf("poll should survive one bad response, got %q", result.Error)
	}
}

func TestWaveSpeed_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			fmt.Fprint(w, `{"code": 200, "data": {"id": "task-5"}}`)
			return
		}
		fmt.Fprint(w, `{"code": 200, "data": {"id": "task-5", "status": "processing"}}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := testWaveSpeed(srv.URL).SubmitTextToVideo(ctx, "a prompt", model.VideoSettings{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWaveSpeed_NotConfigured(t *testing.T) {
	c := NewWaveSpeedClient(&config.WaveSpeedConfig{BaseURL: "http://localhost"}, zerolog.Nop())
	if _, err := c.SubmitTextToVideo(context.Background(), "a prompt", model.VideoSettings{}); err == nil {
		t.Fatal("expected ErrNotConfigured")
	}
}

func TestWaveSpeed_ImageToVideoUsesImageModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if !strings.Contains(r.URL.Path, wavespeedImageToVideoModel) {
				t.Errorf("unexpected submit path %q", r.URL.Path)
			}
			var req wavespeedSubmitRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Image != "https://example.com/product.jpg" {
				t.Errorf("unexpected image %q", req.Image)
			}
			fmt.Fprint(w, `{"code": 200, "data": {"id": "task-6"}}`)
			return
		}
		fmt.Fprint(w, `{"code": 200, "data": {"id": "task-6", "status": "completed", "outputs": ["https://cdn.example.com/v.mp4"]}}`)
	}))
	defer srv.Close()

	result, err := testWaveSpeed(srv.URL).SubmitImageToVideo(context.Background(), "https://example.com/product.jpg", "a prompt", model.VideoSettings{})
	if err != nil {
		t.Fatalf("SubmitImageToVideo: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
}
