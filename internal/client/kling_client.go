package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/adforge/api/internal/config"
	"github.com/adforge/api/internal/model"
)

const klingDefaultModel = "kling-v1-6"

var klingBounds = providerBounds{
	minDuration:       3,
	maxDuration:       15,
	aspectRatios:      []string{"16:9", "9:16", "1:1"},
	defaultAspect:     "9:16",
	defaultResolution: "720p",
}

// KlingClient implements VideoGenerator for the Kling API
type KlingClient struct {
	httpClient      *http.Client
	baseURL         string
	apiKey          string
	pollInterval    time.Duration
	maxPollAttempts int
	logger          zerolog.Logger
}

// NewKlingClient creates a new Kling API client. Kling renders take longer
// than WaveSpeed's, so production polling is every 5s for up to 120 attempts
// (~10 minutes).
func NewKlingClient(cfg *config.KlingConfig, logger zerolog.Logger) *KlingClient {
	return &KlingClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:         cfg.BaseURL,
		apiKey:          cfg.APIKey,
		pollInterval:    5 * time.Second,
		maxPollAttempts: 120,
		logger:          logger.With().Str("provider", model.ProviderKling).Logger(),
	}
}

// Name returns the provider id
func (c *KlingClient) Name() string {
	return model.ProviderKling
}

// IsConfigured returns true if the client has valid configuration
func (c *KlingClient) IsConfigured() bool {
	return c.apiKey != ""
}

type klingSubmitRequest struct {
	ModelName   string `json:"model_name"`
	Prompt      string `json:"prompt"`
	Image       string `json:"image,omitempty"`
	Duration    string `json:"duration"`
	AspectRatio string `json:"aspect_ratio"`
}

type klingSubmitResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		TaskID string `json:"task_id"`
	} `json:"data"`
}

type klingStatusResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		TaskID        string `json:"task_id"`
		TaskStatus    string `json:"task_status"`
		TaskStatusMsg string `json:"task_status_msg"`
		TaskResult    struct {
			Videos []struct {
				URL string `json:"url"`
			} `json:"videos"`
		} `json:"task_result"`
	} `json:"data"`
}

// SubmitTextToVideo creates a text-to-video task and polls it to completion
func (c *KlingClient) SubmitTextToVideo(ctx context.Context, prompt string, settings model.VideoSettings) (*VideoResult, error) {
	return c.submit(ctx, "/v1/videos/text2video", klingRequest(prompt, "", settings))
}

// SubmitImageToVideo creates an image-to-video task and polls it to completion
func (c *KlingClient) SubmitImageToVideo(ctx context.Context, imageURL, prompt string, settings model.VideoSettings) (*VideoResult, error) {
	return c.submit(ctx, "/v1/videos/image2video", klingRequest(prompt, imageURL, settings))
}

func klingRequest(prompt, imageURL string, settings model.VideoSettings) klingSubmitRequest {
	s := clampSettings(settings, klingBounds)
	m := s.Model
	if m == "" {
		m = klingDefaultModel
	}
	return klingSubmitRequest{
		ModelName:   m,
		Prompt:      prompt,
		Image:       imageURL,
		Duration:    strconv.Itoa(s.Duration),
		AspectRatio: s.AspectRatio,
	}
}

func (c *KlingClient) submit(ctx context.Context, endpoint string, req klingSubmitRequest) (*VideoResult, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("kling: %w", ErrNotConfigured)
	}

	var created klingSubmitResponse
	if err := c.post(ctx, endpoint, req, &created); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return videoFailure("", "kling submission failed: %v", err), nil
	}
	if created.Code != 0 {
		return videoFailure("", "kling rejected submission: %s", created.Message), nil
	}
	if created.Data.TaskID == "" {
		return videoFailure("", "kling returned no task id"), nil
	}

	c.logger.Info().Str("taskId", created.Data.TaskID).Str("endpoint", endpoint).Msg("task created")
	return c.poll(ctx, endpoint, created.Data.TaskID)
}

// poll checks the task status on a fixed interval until the provider reports
// a terminal state or attempts run out. Transient request errors are
// swallowed and retried on the next tick.
func (c *KlingClient) poll(ctx context.Context, endpoint, taskID string) (*VideoResult, error) {
	for attempt := 1; attempt <= c.maxPollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		var status klingStatusResponse
		if err := c.get(ctx, fmt.Sprintf("%s/%s", endpoint, taskID), &status); err != nil {
			c.logger.Warn().Err(err).Str("taskId", taskID).Int("attempt", attempt).Msg("poll request failed")
			continue
		}

		switch status.Data.TaskStatus {
		case "succeed":
			if len(status.Data.TaskResult.Videos) == 0 {
				return videoFailure(taskID, "kling succeeded with no videos"), nil
			}
			return &VideoResult{Success: true, VideoURL: status.Data.TaskResult.Videos[0].URL, TaskID: taskID}, nil
		case "failed":
			return videoFailure(taskID, "kling generation failed: %s", status.Data.TaskStatusMsg), nil
		}
	}

	return videoFailure(taskID, "kling generation timed out after %d attempts", c.maxPollAttempts), nil
}

// post sends a POST request with JSON body
func (c *KlingClient) post(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
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
func (c *KlingClient) get(ctx context.Context, endpoint string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.doRequest(req, result)
}

func (c *KlingClient) doRequest(req *http.Request, result interface{}) error {
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
		return fmt.Errorf("kling API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
