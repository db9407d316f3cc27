package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adforge/api/internal/config"
)

// ErrMalformedOutput marks a final model reply that failed JSON parsing or
// contract validation. It is a content error, never retried.
var ErrMalformedOutput = errors.New("model output is not valid JSON")

// ErrNotConfigured is returned when a client is used without an API key.
var ErrNotConfigured = errors.New("client is not configured")

// TextGenerator defines the interface for LLM text generation
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, opts GenerateOptions) (*GenerateResult, error)
	GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	IsConfigured() bool
}

// GenerateOptions tunes a single generation call. OnChunk, when set, receives
// every incremental text fragment before the final result is returned.
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
	OnChunk     func(text string)
}

// GenerateResult is the outcome of a JSON-mode generation
type GenerateResult struct {
	Parsed json.RawMessage
	Raw    string
}

// OpenRouterClient streams chat completions from an OpenAI-compatible API
type OpenRouterClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	backoff    time.Duration
	logger     zerolog.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatCompletionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// NewOpenRouterClient creates a new streaming completion client
func NewOpenRouterClient(cfg *config.OpenRouterConfig, logger zerolog.Logger) *OpenRouterClient {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &OpenRouterClient{
		httpClient: &http.Client{
			Timeout: 300 * time.Second,
		},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxRetries: maxRetries,
		backoff:    time.Second,
		logger:     logger.With().Str("component", "openrouter").Logger(),
	}
}

// IsConfigured returns true if the client has valid configuration
func (c *OpenRouterClient) IsConfigured() bool {
	return c.apiKey != ""
}

// GenerateJSON runs a JSON-mode generation: the full streamed reply is
// stripped of code fences and parsed. A parse failure returns
// ErrMalformedOutput without retry; transient transport failures are retried
// with exponential backoff.
func (c *OpenRouterClient) GenerateJSON(ctx context.Context, prompt string, opts GenerateOptions) (*GenerateResult, error) {
	raw, err := c.generateWithRetry(ctx, SystemPromptJSON, prompt, opts)
	if err != nil {
		return nil, err
	}

	cleaned := extractJSON(raw)
	if !json.Valid([]byte(cleaned)) {
		c.logger.Warn().Str("raw", truncate(raw, 500)).Msg("model reply failed JSON parse")
		return nil, fmt.Errorf("%w: reply begins %q", ErrMalformedOutput, truncate(cleaned, 120))
	}

	return &GenerateResult{
		Parsed: json.RawMessage(cleaned),
		Raw:    raw,
	}, nil
}

// GenerateText runs a plain-text generation (used by the prompt optimizer).
func (c *OpenRouterClient) GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	raw, err := c.generateWithRetry(ctx, SystemPromptText, prompt, opts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// System prompts per mode
const (
	SystemPromptJSON = "You are a precise assistant. Respond with valid JSON only, no prose outside the JSON."
	SystemPromptText = "You are a precise assistant. Respond with plain text only."
)

func (c *OpenRouterClient) generateWithRetry(ctx context.Context, system, prompt string, opts GenerateOptions) (string, error) {
	if !c.IsConfigured() {
		return "", fmt.Errorf("openrouter: %w", ErrNotConfigured)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff << (attempt - 1)
			c.logger.Warn().Err(lastErr).Int("attempt", attempt).Dur("delay", delay).Msg("retrying generation")
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		raw, err := c.streamCompletion(ctx, system, prompt, opts)
		if err == nil {
			return raw, nil
		}
		if !isTransient(err) {
			return "", err
		}
		lastErr = err
	}

	return "", fmt.Errorf("generation failed after %d attempts: %w", c.maxRetries, lastErr)
}

// transientError wraps failures worth another attempt.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

func (c *OpenRouterClient) streamCompletion(ctx context.Context, system, prompt string, opts GenerateOptions) (string, error) {
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}

	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Stream:      true,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &transientError{fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("openrouter API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 300))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return "", &transientError{err}
		}
		return "", err
	}

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}

		var chunk chatCompletionChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue
		}
		for _, choice := range chunk.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			full.WriteString(choice.Delta.Content)
			if opts.OnChunk != nil {
				opts.OnChunk(choice.Delta.Content)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", &transientError{fmt.Errorf("stream read failed: %w", err)}
	}

	if full.Len() == 0 {
		return "", &transientError{fmt.Errorf("empty completion stream")}
	}

	return full.String(), nil
}

// extractJSON strips Markdown code fences and surrounding prose from a model
// reply, leaving the outermost JSON value. Already-clean input passes through
// unchanged, so the operation is idempotent.
func extractJSON(s string) string {
	s = stripCodeFences(s)

	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")
	start := objStart
	end := strings.LastIndex(s, "}")
	if arrStart != -1 && (objStart == -1 || arrStart < objStart) {
		start = arrStart
		end = strings.LastIndex(s, "]")
	}

	if start != -1 && end != -1 && end > start {
		return s[start : end+1]
	}
	return strings.TrimSpace(s)
}

// stripCodeFences removes a ```json ... ``` (or plain ```) wrapper.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx != -1 {
		// drop the language tag line (e.g. "json")
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
