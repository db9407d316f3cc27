package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/adforge/api/internal/config"
	"github.com/adforge/api/internal/model"
)

// WaveSpeed model endpoints
const (
	wavespeedTextToVideoModel  = "wavespeed-ai/wan-2.2/t2v-480p"
	wavespeedImageToVideoModel = "wavespeed-ai/wan-2.2/i2v-480p"
)

var wavespeedBounds = providerBounds{
	minDuration:       3,
	maxDuration:       15,
	aspectRatios:      []string{"16:9", "9:16", "1:1"},
	defaultAspect:     "9:16",
	defaultResolution: "480p",
}

// WaveSpeedClient implements VideoGenerator for the WaveSpeed API
type WaveSpeedClient struct {
	httpClient      *http.Client
	baseURL         string
	apiKey          string
	pollInterval    time.Duration
	maxPollAttempts int
	logger          zerolog.Logger
}

// NewWaveSpeedClient creates a new WaveSpeed API client. Production polling
// is every 5s for up to 60 attempts (~5 minutes).
func NewWaveSpeedClient(cfg *config.WaveSpeedConfig, logger zerolog.Logger) *WaveSpeedClient {
	return &WaveSpeedClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:         cfg.BaseURL,
		apiKey:          cfg.APIKey,
		pollInterval:    5 * time.Second,
		maxPollAttempts: 60,
		logger:          logger.With().Str("provider", model.ProviderWaveSpeed).Logger(),
	}
}

// Name returns the provider id
func (c *WaveSpeedClient) Name() string {
	return model.ProviderWaveSpeed
}

// IsConfigured returns true if the client has valid configuration
func (c *WaveSpeedClient) IsConfigured() bool {
	return c.apiKey != ""
}

type wavespeedSubmitRequest struct {
	Prompt      string `json:"prompt"`
	Image       string `json:"image,omitempty"`
	Duration    int    `json:"duration"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

type wavespeedSubmitResponse struct {
	Code int `json:"code"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
	Message string `json:"message"`
}

type wavespeedResultResponse struct {
	Code int `json:"code"`
	Data struct {
		ID      string   `json:"id"`
		Status  string   `json:"status"`
		Outputs []string `json:"outputs"`
		Error   string   `json:"error"`
	} `json:"data"`
}

// SubmitTextToVideo creates a text-to-video task and polls it to completion
func (c *WaveSpeedClient) SubmitTextToVideo(ctx context.Context, prompt string, settings model.VideoSettings) (*VideoResult, error) {
	m := settings.Model
	if m == "" {
		m = wavespeedTextToVideoModel
	}
	s := clampSettings(settings, wavespeedBounds)
	return c.submit(ctx, m, wavespeedSubmitRequest{
		Prompt:      prompt,
		Duration:    s.Duration,
		AspectRatio: s.AspectRatio,
	})
}

// SubmitImageToVideo creates an image-to-video task and polls it to completion
func (c *WaveSpeedClient) SubmitImageToVideo(ctx context.Context, imageURL, prompt string, settings model.VideoSettings) (*VideoResult, error) {
	m := settings.Model
	if m == "" {
		m = wavespeedImageToVideoModel
	}
	s := clampSettings(settings, wavespeedBounds)
	return c.submit(ctx, m, wavespeedSubmitRequest{
		Prompt:      prompt,
		Image:       imageURL,
		Duration:    s.Duration,
		AspectRatio: s.AspectRatio,
	})
}

func (c *WaveSpeedClient) submit(ctx context.Context, modelPath string, req wavespeedSubmitRequest) (*VideoResult, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("wavespeed: %w", ErrNotConfigured)
	}

	var created wavespeedSubmitResponse
	if err := c.post(ctx, "/api/v3/"+modelPath, req, &created); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return videoFailure("", "wavespeed submission failed: %v", err), nil
	}
	if created.Data.ID == "" {
		return videoFailure("", "wavespeed returned no task id: %s", created.Message), nil
	}

	c.logger.Info().Str("taskId", created.Data.ID).Msg("task created")
	return c.poll(ctx, created.Data.ID)
}

// poll checks the task status on a fixed interval until the provider reports
// a terminal state or attempts run out. Transient request errors are
// swallowed and retried on the next tick.
func (c *WaveSpeedClient) poll(ctx context.Context, taskID string) (*VideoResult, error) {
	for attempt := 1; attempt <= c.maxPollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		var result wavespeedResultResponse
		if err := c.get(ctx, fmt.Sprintf("/api/v3/predictions/%s/result", taskID), &result); err != nil {
			c.logger.Warn().Err(err).Str("taskId", taskID).Int("attempt", attempt).Msg("poll request failed")
			continue
		}

		switch result.Data.Status {
		case "completed":
			if len(result.Data.Outputs) == 0 {
				return videoFailure(taskID, "wavespeed completed with no outputs"), nil
			}
			return &VideoResult{Success: true, VideoURL: result.Data.Outputs[0], TaskID: taskID}, nil
		case "failed":
			return videoFailure(taskID, "wavespeed generation failed: %s", result.Data.Error), nil
		}
	}

	return videoFailure(taskID, "wavespeed generation timed out after %d attempts", c.maxPollAttempts), nil
}

// post sends a POST request with JSON body
func (c *WaveSpeedClient) post(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.doRequest(req, result)
}

// get sends a GET request and parses JSON response
func (c *WaveSpeedClient) get(ctx context.Context, endpoint string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.doRequest(req, result)
}

func (c *WaveSpeedClient) doRequest(req *http.Request, result interface{}) error {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("wavespeed API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
