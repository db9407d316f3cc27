package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Generation is one persisted output of a single pipeline stage for a
// campaign. Multiple generations may exist per (campaign, stage); the latest
// by CreatedAt is the canonical current value, older ones are history.
type Generation struct {
	ID          string          `json:"id"`
	CampaignID  string          `json:"campaignId"`
	Stage       Stage           `json:"stage"`
	Output      json.RawMessage `json:"output"`
	RawResponse string          `json:"rawResponse"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Expected arities of the fixed-size stage contracts
const (
	AngleCount            = 10
	HookCount             = 50
	UGCBriefCount         = 10
	IterationVariantCount = 10
)

// Angle is one advertising angle from the angles stage.
type Angle struct {
	AngleName             string `json:"angle_name" validate:"required"`
	Framework             string `json:"framework" validate:"required"`
	TargetEmotion         string `json:"target_emotion" validate:"required"`
	Hook                  string `json:"hook" validate:"required"`
	Concept               string `json:"concept" validate:"required"`
	WhyItWorks            string `json:"why_it_works" validate:"required"`
	EstimatedStrength     string `json:"estimated_strength" validate:"required,oneof='HIGH' 'MEDIUM' 'SLEEPER HIT'"`
	TargetAudienceSegment string `json:"target_audience_segment" validate:"required"`
}

// Hook is one scroll-stopping opener from the hooks stage.
type Hook struct {
	HookText            string `json:"hook_text" validate:"required"`
	HookType            string `json:"hook_type" validate:"required"`
	VisualSuggestion    string `json:"visual_suggestion" validate:"required"`
	ScrollStopRating    int    `json:"scroll_stop_rating" validate:"required,min=1,max=10"`
	BestPairedWithAngle string `json:"best_paired_with_angle" validate:"required"`
}

// ScriptSegment is one timed section of a script.
type ScriptSegment struct {
	Timestamp       string `json:"timestamp" validate:"required"`
	Section         string `json:"section" validate:"required"`
	SpokenWords     string `json:"spoken_words" validate:"required"`
	VisualDirection string `json:"visual_direction" validate:"required"`
	TextOverlay     string `json:"text_overlay,omitempty"`
	MusicNote       string `json:"music_note,omitempty"`
	EditingNote     string `json:"editing_note,omitempty"`
}

// Script is one full ad script derived from a selected angle.
type Script struct {
	AngleName             string          `json:"angle_name" validate:"required"`
	TotalDuration         string          `json:"total_duration" validate:"required"`
	Platform              string          `json:"platform" validate:"required"`
	Segments              []ScriptSegment `json:"segments" validate:"required,min=1,dive"`
	ThumbnailConcept      string          `json:"thumbnail_concept" validate:"required"`
	HashtagSuggestions    []string        `json:"hashtag_suggestions" validate:"required,min=1"`
	EstimatedCTRReasoning string          `json:"estimated_ctr_reasoning" validate:"required"`
}

// TextOverlay is on-screen text for a storyboard scene.
type TextOverlay struct {
	Text     string `json:"text"`
	Position string `json:"position"`
	Style    string `json:"style"`
}

// StoryboardScene is one shot with a self-contained AI video prompt usable
// directly by a video-generation provider.
type StoryboardScene struct {
	SceneNumber       int          `json:"scene_number" validate:"required,min=1"`
	Timestamp         string       `json:"timestamp" validate:"required"`
	VisualDescription string       `json:"visual_description" validate:"required"`
	CameraDirection   string       `json:"camera_direction" validate:"required"`
	CameraMovement    string       `json:"camera_movement" validate:"required"`
	SubjectAction     string       `json:"subject_action" validate:"required"`
	TextOverlay       *TextOverlay `json:"text_overlay,omitempty"`
	TransitionToNext  string       `json:"transition_to_next,omitempty"`
	AIVideoPrompt     string       `json:"ai_video_prompt" validate:"required"`
	ReferenceStyle    string       `json:"reference_style,omitempty"`
	GenerationMethod  string       `json:"generation_method,omitempty" validate:"omitempty,oneof=text-to-video image-to-video"`
	SourceImageIndex  *int         `json:"source_image_index,omitempty"`
}

// Storyboard is the scene-by-scene breakdown of one script.
type Storyboard struct {
	Scenes        []StoryboardScene `json:"scenes" validate:"required,min=1,dive"`
	OverallPacing string            `json:"overall_pacing" validate:"required"`
	ColorGrade    string            `json:"color_grade" validate:"required"`
	AspectRatio   string            `json:"aspect_ratio" validate:"required"`
	TotalScenes   int               `json:"total_scenes" validate:"required,min=1"`
}

// CreatorPersona describes the fictional creator for a UGC brief.
type CreatorPersona struct {
	AgeRange            string   `json:"age_range" validate:"required"`
	Vibe                string   `json:"vibe" validate:"required"`
	Setting             string   `json:"setting" validate:"required"`
	AuthenticityMarkers []string `json:"authenticity_markers" validate:"required,min=1"`
}

// ScriptOutline is the three-beat outline inside a UGC brief.
type ScriptOutline struct {
	Opening string `json:"opening" validate:"required"`
	Middle  string `json:"middle" validate:"required"`
	Close   string `json:"close" validate:"required"`
}

// UGCBrief is one creator brief from the UGC stage.
type UGCBrief struct {
	Format                string         `json:"format" validate:"required"`
	CreatorPersona        CreatorPersona `json:"creator_persona"`
	ScriptOutline         ScriptOutline  `json:"script_outline"`
	SpokenTone            string         `json:"spoken_tone" validate:"required"`
	DoList                []string       `json:"do_list" validate:"required,min=1"`
	DontList              []string       `json:"dont_list" validate:"required,min=1"`
	VideoGenerationPrompt string         `json:"video_generation_prompt" validate:"required"`
}

// IterationVariant is one remix of a winning creative. It embeds a full
// script and storyboard rather than chaining the independent stages.
type IterationVariant struct {
	BasedOn     string     `json:"based_on" validate:"required"`
	WhatChanged string     `json:"what_changed" validate:"required"`
	Hypothesis  string     `json:"hypothesis" validate:"required"`
	Script      Script     `json:"script"`
	Storyboard  Storyboard `json:"storyboard"`
}

// DecodeStageOutput decodes and validates a stage's parsed model output
// against its contract. A validation failure is treated the same as a parse
// failure by callers: fatal for the stage, nothing persisted.
func DecodeStageOutput(v *validator.Validate, stage Stage, data json.RawMessage) (interface{}, error) {
	switch stage {
	case StageAngles:
		var out []Angle
		if err := decodeExact(v, data, &out, AngleCount); err != nil {
			return nil, fmt.Errorf("angles contract: %w", err)
		}
		return out, nil
	case StageHooks:
		var out []Hook
		if err := decodeExact(v, data, &out, HookCount); err != nil {
			return nil, fmt.Errorf("hooks contract: %w", err)
		}
		return out, nil
	case StageScripts:
		var out []Script
		if err := decodeAtLeastOne(v, data, &out); err != nil {
			return nil, fmt.Errorf("scripts contract: %w", err)
		}
		return out, nil
	case StageStoryboard:
		var out []Storyboard
		if err := decodeAtLeastOne(v, data, &out); err != nil {
			return nil, fmt.Errorf("storyboard contract: %w", err)
		}
		return out, nil
	case StageUGC:
		var out []UGCBrief
		if err := decodeExact(v, data, &out, UGCBriefCount); err != nil {
			return nil, fmt.Errorf("ugc contract: %w", err)
		}
		return out, nil
	case StageIteration:
		var out []IterationVariant
		if err := decodeExact(v, data, &out, IterationVariantCount); err != nil {
			return nil, fmt.Errorf("iteration contract: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown stage %q", stage)
	}
}

// ValidateSingle validates one contract struct (used for per-item loop
// outputs before they are bundled into a stage array).
func ValidateSingle(v *validator.Validate, item interface{}) error {
	return v.Struct(item)
}

func decodeExact[T any](v *validator.Validate, data json.RawMessage, out *[]T, want int) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if len(*out) != want {
		return fmt.Errorf("expected %d items, got %d", want, len(*out))
	}
	return validateAll(v, *out)
}

func decodeAtLeastOne[T any](v *validator.Validate, data json.RawMessage, out *[]T) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if len(*out) == 0 {
		return fmt.Errorf("expected at least one item")
	}
	return validateAll(v, *out)
}

func validateAll[T any](v *validator.Validate, items []T) error {
	for i := range items {
		if err := v.Struct(items[i]); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// Request/response DTOs for the generation routes

// GenerateStageRequest is shared by the angles and hooks stages.
type GenerateStageRequest struct {
	StreamID   string `json:"streamId" validate:"omitempty,max=64"`
	BrandVoice string `json:"brandVoice" validate:"omitempty,max=4000"`
}

// GenerateScriptsRequest represents the request body for script generation
type GenerateScriptsRequest struct {
	StreamID       string  `json:"streamId" validate:"omitempty,max=64"`
	BrandVoice     string  `json:"brandVoice" validate:"omitempty,max=4000"`
	SelectedAngles []Angle `json:"selectedAngles" validate:"required,min=1,dive"`
	Duration       int     `json:"duration" validate:"omitempty,min=10,max=180"`
	Platform       string  `json:"platform" validate:"omitempty,oneof=tiktok reels shorts youtube"`
}

// GenerateStoryboardRequest represents the request body for storyboard
// generation. Scripts may be omitted, in which case the latest persisted
// scripts generation is used.
type GenerateStoryboardRequest struct {
	StreamID   string   `json:"streamId" validate:"omitempty,max=64"`
	BrandVoice string   `json:"brandVoice" validate:"omitempty,max=4000"`
	Scripts    []Script `json:"scripts" validate:"omitempty,dive"`
}

// GenerateUGCRequest represents the request body for UGC brief generation
type GenerateUGCRequest struct {
	StreamID   string   `json:"streamId" validate:"omitempty,max=64"`
	BrandVoice string   `json:"brandVoice" validate:"omitempty,max=4000"`
	Scripts    []Script `json:"scripts" validate:"omitempty,dive"`
}

// GenerateIterationRequest represents the request body for the iteration
// stage. Winners carry the user-selected prior outputs verbatim.
type GenerateIterationRequest struct {
	StreamID   string            `json:"streamId" validate:"omitempty,max=64"`
	BrandVoice string            `json:"brandVoice" validate:"omitempty,max=4000"`
	Winners    []json.RawMessage `json:"winners" validate:"required,min=1"`
}

// OptimizePromptRequest represents the request body for the video prompt
// optimizer
type OptimizePromptRequest struct {
	SceneDescription string `json:"sceneDescription" validate:"required,min=1"`
	Provider         string `json:"provider" validate:"omitempty,oneof=wavespeed kling"`
}

// OptimizePromptResponse represents the optimizer's plain-text output
type OptimizePromptResponse struct {
	Prompt string `json:"prompt"`
}

// GenerationResultResponse is the terminal result of a stage run.
type GenerationResultResponse struct {
	GenerationID string          `json:"generationId"`
	Stage        Stage           `json:"stage"`
	Data         json.RawMessage `json:"data"`
	CreatedAt    time.Time       `json:"createdAt"`
}
