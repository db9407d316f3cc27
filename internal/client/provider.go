package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/adforge/api/internal/model"
)

// ErrUnknownProvider is returned by the registry for an unregistered id.
var ErrUnknownProvider = errors.New("unknown video provider")

// VideoGenerator defines the contract every video provider implements.
// Submissions create a remote job, poll it to a terminal state, and return a
// normalized result. Config errors (missing API key) and context cancellation
// surface as errors; provider-side failures are normalized into the result.
type VideoGenerator interface {
	SubmitTextToVideo(ctx context.Context, prompt string, settings model.VideoSettings) (*VideoResult, error)
	SubmitImageToVideo(ctx context.Context, imageURL, prompt string, settings model.VideoSettings) (*VideoResult, error)
	Name() string
	IsConfigured() bool
}

// VideoResult is the normalized terminal outcome of a provider job
type VideoResult struct {
	Success  bool   `json:"success"`
	VideoURL string `json:"videoUrl,omitempty"`
	TaskID   string `json:"taskId,omitempty"`
	Error    string `json:"error,omitempty"`
}

func videoFailure(taskID, format string, args ...interface{}) *VideoResult {
	return &VideoResult{
		Success: false,
		TaskID:  taskID,
		Error:   fmt.Sprintf(format, args...),
	}
}

// providerBounds are the per-provider setting limits applied before
// submission.
type providerBounds struct {
	minDuration       int
	maxDuration       int
	aspectRatios      []string
	defaultAspect     string
	defaultResolution string
}

// clampSettings forces settings into the provider's supported bounds.
func clampSettings(s model.VideoSettings, b providerBounds) model.VideoSettings {
	if s.Duration < b.minDuration {
		s.Duration = b.minDuration
	}
	if s.Duration > b.maxDuration {
		s.Duration = b.maxDuration
	}

	supported := false
	for _, ar := range b.aspectRatios {
		if s.AspectRatio == ar {
			supported = true
			break
		}
	}
	if !supported {
		s.AspectRatio = b.defaultAspect
	}

	if s.Resolution == "" {
		s.Resolution = b.defaultResolution
	}
	return s
}

// ProviderRegistry maps provider ids to implementations so call sites never
// branch on provider names.
type ProviderRegistry struct {
	providers   map[string]VideoGenerator
	defaultName string
}

// NewProviderRegistry creates a registry with the given default provider id
func NewProviderRegistry(defaultName string) *ProviderRegistry {
	return &ProviderRegistry{
		providers:   make(map[string]VideoGenerator),
		defaultName: defaultName,
	}
}

// Register adds a provider under its own name
func (r *ProviderRegistry) Register(g VideoGenerator) {
	r.providers[g.Name()] = g
}

// Get resolves a provider id; the empty id resolves to the default.
func (r *ProviderRegistry) Get(name string) (VideoGenerator, error) {
	if name == "" {
		name = r.defaultName
	}
	g, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return g, nil
}

// DefaultName returns the configured default provider id
func (r *ProviderRegistry) DefaultName() string {
	return r.defaultName
}

// Names lists the registered provider ids
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
