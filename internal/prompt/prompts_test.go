package prompt

import (
	"strings"
	"testing"

	"github.com/adforge/api/internal/model"
)

var testProduct = model.ProductProfile{
	Name:           "Glow Serum",
	Description:    "A vitamin C brightening serum",
	Price:          "$29",
	TargetAudience: "skincare enthusiasts 18-35",
	Features:       []string{"vitamin C", "fragrance free"},
}

func TestBuildAnglesPrompt(t *testing.T) {
	p := BuildAnglesPrompt(testProduct, "")

	for _, want := range []string{"Glow Serum", "exactly 10", "angle_name", "estimated_strength", "SLEEPER HIT", "Problem-Agitate-Solve"} {
		if !strings.Contains(p, want) {
			t.Errorf("angles prompt missing %q", want)
		}
	}
	if strings.Contains(p, "Brand voice") {
		t.Error("brand voice block should be absent when not provided")
	}
}

func TestBuildHooksPrompt(t *testing.T) {
	p := BuildHooksPrompt(testProduct, "")

	for _, want := range []string{"exactly 50", "scroll_stop_rating", "pattern interrupt", "best_paired_with_angle"} {
		if !strings.Contains(p, want) {
			t.Errorf("hooks prompt missing %q", want)
		}
	}
}

func TestBrandVoiceAppended(t *testing.T) {
	p := BuildAnglesPrompt(testProduct, "Playful, never salesy. Gen Z slang welcome.")

	if !strings.Contains(p, "Brand voice guidelines") {
		t.Fatal("expected brand voice block")
	}
	if !strings.Contains(p, "Gen Z slang welcome") {
		t.Error("expected brand voice content verbatim")
	}
}

func TestBuildScriptPrompt(t *testing.T) {
	angle := model.Angle{
		AngleName: "The Morning Ritual",
		Framework: "Transformation Story",
		Hook:      "I replaced 5 products with one",
		Concept:   "A minimalist routine",
	}

	p := BuildScriptPrompt(testProduct, angle, ScriptConfig{Duration: 45, Platform: "reels"}, "")
	for _, want := range []string{"45-second", "reels", "The Morning Ritual", "spoken_words", "thumbnail_concept"} {
		if !strings.Contains(p, want) {
			t.Errorf("script prompt missing %q", want)
		}
	}

	// Defaults apply when config is zero
	p = BuildScriptPrompt(testProduct, angle, ScriptConfig{}, "")
	if !strings.Contains(p, "30-second") || !strings.Contains(p, "tiktok") {
		t.Error("expected default duration 30s and platform tiktok")
	}
}

func TestBuildStoryboardPrompt(t *testing.T) {
	script := model.Script{
		AngleName: "The Morning Ritual",
		Platform:  "tiktok",
		Segments: []model.ScriptSegment{
			{Timestamp: "0-3s", Section: "hook", SpokenWords: "I replaced 5 products", VisualDirection: "close-up on shelf"},
		},
	}

	p := BuildStoryboardPrompt(testProduct, script, "")
	for _, want := range []string{"I replaced 5 products", "ai_video_prompt", "self-contained", "scene_number", "total_scenes"} {
		if !strings.Contains(p, want) {
			t.Errorf("storyboard prompt missing %q", want)
		}
	}
}

func TestBuildUGCPrompt(t *testing.T) {
	scripts := []model.Script{
		{AngleName: "The Morning Ritual"},
		{AngleName: "Dermatologist Approved"},
	}

	p := BuildUGCPrompt(testProduct, scripts, "")
	for _, want := range []string{"The Morning Ritual", "Dermatologist Approved", "exactly 10", "creator_persona", "unboxing", "dont_list"} {
		if !strings.Contains(p, want) {
			t.Errorf("ugc prompt missing %q", want)
		}
	}
}

func TestBuildIterationPrompt(t *testing.T) {
	winners := []string{`{"angle_name": "The Morning Ritual"}`, `{"hook_text": "Stop scrolling"}`}

	p := BuildIterationPrompt(testProduct, winners, "")
	for _, want := range []string{"The Morning Ritual", "Stop scrolling", "what_changed", "hypothesis", "storyboard"} {
		if !strings.Contains(p, want) {
			t.Errorf("iteration prompt missing %q", want)
		}
	}
}

func TestBuildOptimizerPrompt(t *testing.T) {
	p := BuildOptimizerPrompt(testProduct, "The serum bottle on a marble counter at sunrise", model.ProviderKling)

	for _, want := range []string{"kling", "marble counter", "under 150 words", "style keywords"} {
		if !strings.Contains(p, want) {
			t.Errorf("optimizer prompt missing %q", want)
		}
	}
	if !strings.Contains(p, `Never mention the product name ("Glow Serum")`) {
		t.Error("optimizer must forbid the product name")
	}

	// Empty provider falls back to the default
	p = BuildOptimizerPrompt(testProduct, "scene", "")
	if !strings.Contains(p, model.ProviderWaveSpeed) {
		t.Error("expected default provider in prompt")
	}
}
