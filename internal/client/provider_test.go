package client

import (
	"context"
	"errors"
	"testing"

	"github.com/adforge/api/internal/model"
)

type fakeGenerator struct {
	name       string
	configured bool
}

func (f *fakeGenerator) SubmitTextToVideo(ctx context.Context, prompt string, settings model.VideoSettings) (*VideoResult, error) {
	return &VideoResult{Success: true}, nil
}

func (f *fakeGenerator) SubmitImageToVideo(ctx context.Context, imageURL, prompt string, settings model.VideoSettings) (*VideoResult, error) {
	return &VideoResult{Success: true}, nil
}

func (f *fakeGenerator) Name() string       { return f.name }
func (f *fakeGenerator) IsConfigured() bool { return f.configured }

func TestProviderRegistry(t *testing.T) {
	r := NewProviderRegistry(model.ProviderWaveSpeed)
	r.Register(&fakeGenerator{name: model.ProviderWaveSpeed, configured: true})
	r.Register(&fakeGenerator{name: model.ProviderKling, configured: true})

	g, err := r.Get("")
	if err != nil {
		t.Fatalf("Get(\"\"): %v", err)
	}
	if g.Name() != model.ProviderWaveSpeed {
		t.Errorf("empty id should resolve to default, got %q", g.Name())
	}

	g, err = r.Get(model.ProviderKling)
	if err != nil {
		t.Fatalf("Get(kling): %v", err)
	}
	if g.Name() != model.ProviderKling {
		t.Errorf("expected kling, got %q", g.Name())
	}

	if _, err := r.Get("sora"); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}

	if len(r.Names()) != 2 {
		t.Errorf("expected 2 registered providers, got %d", len(r.Names()))
	}
}

func TestClampSettings(t *testing.T) {
	bounds := providerBounds{
		minDuration:       3,
		maxDuration:       15,
		aspectRatios:      []string{"16:9", "9:16", "1:1"},
		defaultAspect:     "9:16",
		defaultResolution: "480p",
	}

	cases := []struct {
		name string
		in   model.VideoSettings
		want model.VideoSettings
	}{
		{
			"within bounds",
			model.VideoSettings{Duration: 5, AspectRatio: "16:9", Resolution: "480p"},
			model.VideoSettings{Duration: 5, AspectRatio: "16:9", Resolution: "480p"},
		},
		{
			"too long",
			model.VideoSettings{Duration: 60, AspectRatio: "1:1", Resolution: "480p"},
			model.VideoSettings{Duration: 15, AspectRatio: "1:1", Resolution: "480p"},
		},
		{
			"too short",
			model.VideoSettings{Duration: 1, AspectRatio: "9:16", Resolution: "480p"},
			model.VideoSettings{Duration: 3, AspectRatio: "9:16", Resolution: "480p"},
		},
		{
			"unsupported aspect",
			model.VideoSettings{Duration: 5, AspectRatio: "4:3", Resolution: "480p"},
			model.VideoSettings{Duration: 5, AspectRatio: "9:16", Resolution: "480p"},
		},
		{
			"zero values",
			model.VideoSettings{},
			model.VideoSettings{Duration: 3, AspectRatio: "9:16", Resolution: "480p"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := clampSettings(tc.in, bounds)
			if got != tc.want {
				t.Errorf("clampSettings(%+v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}
