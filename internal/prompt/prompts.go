package prompt

import (
	"fmt"
	"strings"

	"github.com/adforge/api/internal/model"
)

// Builders in this package are pure: product profile plus stage inputs in,
// one prompt string out. Each prompt embeds the strict JSON contract the
// model must return; the orchestrator validates against the same contract
// after parsing.

// SystemPrompt is the shared system message for all JSON-mode stages.
const SystemPrompt = `You are a senior direct-response creative strategist who has produced hundreds of winning short-form video ads.
Always output your response as valid JSON in the exact format requested.
Do not include any text outside the JSON structure.`

var frameworks = []string{
	"Problem-Agitate-Solve",
	"Before-After-Bridge",
	"Us-vs-Them",
	"Social Proof",
	"Fear of Missing Out",
	"Curiosity Gap",
	"Transformation Story",
	"Authority/Expert",
}

var hookTypes = []string{
	"question",
	"bold claim",
	"pattern interrupt",
	"relatable pain",
	"curiosity tease",
}

var ugcFormats = []string{
	"testimonial",
	"unboxing",
	"day-in-the-life",
	"problem-solution demo",
	"duet/reaction",
}

func formatProduct(p model.ProductProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\nDescription: %s\n", p.Name, p.Description)
	if p.Price != "" {
		fmt.Fprintf(&b, "Price: %s\n", p.Price)
	}
	if p.TargetAudience != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", p.TargetAudience)
	}
	if len(p.Features) > 0 {
		fmt.Fprintf(&b, "Key features: %s\n", strings.Join(p.Features, "; "))
	}
	return b.String()
}

// appendBrandVoice appends the optional brand-context block.
func appendBrandVoice(prompt, brandVoice string) string {
	if brandVoice == "" {
		return prompt
	}
	return prompt + "\n\nBrand voice guidelines (follow these in all copy):\n" + brandVoice
}

// BuildAnglesPrompt asks for exactly 10 advertising angles.
func BuildAnglesPrompt(p model.ProductProfile, brandVoice string) string {
	prompt := fmt.Sprintf(`%s
Generate exactly %d distinct advertising angles for this product.
Each angle must use one of these psychological frameworks: %s.
Spread the angles across different frameworks and audience segments.

Output as a JSON array of exactly %d objects, each with these keys:
"angle_name", "framework", "target_emotion", "hook", "concept", "why_it_works",
"estimated_strength" (one of "HIGH", "MEDIUM", "SLEEPER HIT"),
"target_audience_segment"`,
		formatProduct(p), model.AngleCount, strings.Join(frameworks, ", "), model.AngleCount)
	return appendBrandVoice(prompt, brandVoice)
}

// BuildHooksPrompt asks for 50 hooks, 10 per hook type.
func BuildHooksPrompt(p model.ProductProfile, brandVoice string) string {
	prompt := fmt.Sprintf(`%s
Generate exactly %d scroll-stopping hooks for short-form video ads: 10 hooks
for each of these hook types: %s.

Output as a JSON array of exactly %d objects, each with these keys:
"hook_text", "hook_type", "visual_suggestion",
"scroll_stop_rating" (integer 1-10), "best_paired_with_angle"`,
		formatProduct(p), model.HookCount, strings.Join(hookTypes, ", "), model.HookCount)
	return appendBrandVoice(prompt, brandVoice)
}

// ScriptConfig carries the per-script generation knobs.
type ScriptConfig struct {
	Duration int
	Platform string
}

// BuildScriptPrompt asks for one full script for a single selected angle.
// The orchestrator invokes this once per angle and bundles the results.
func BuildScriptPrompt(p model.ProductProfile, angle model.Angle, cfg ScriptConfig, brandVoice string) string {
	duration := cfg.Duration
	if duration <= 0 {
		duration = 30
	}
	platform := cfg.Platform
	if platform == "" {
		platform = string(model.PlatformTikTok)
	}

	prompt := fmt.Sprintf(`%s
Write one complete %d-second video ad script for %s based on this angle:
Angle: %s
Framework: %s
Hook: %s
Concept: %s

Output as a single JSON object with these keys:
"angle_name", "total_duration", "platform",
"segments" (array of objects with "timestamp", "section", "spoken_words",
"visual_direction", and optionally "text_overlay", "music_note", "editing_note"),
"thumbnail_concept", "hashtag_suggestions" (array of strings),
"estimated_ctr_reasoning"`,
		formatProduct(p), duration, platform,
		angle.AngleName, angle.Framework, angle.Hook, angle.Concept)
	return appendBrandVoice(prompt, brandVoice)
}

// BuildStoryboardPrompt asks for a shot-by-shot storyboard of one script.
// Invoked once per script, looped by the orchestrator.
func BuildStoryboardPrompt(p model.ProductProfile, script model.Script, brandVoice string) string {
	var lines []string
	for _, seg := range script.Segments {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s / visuals: %s",
			seg.Timestamp, seg.Section, seg.SpokenWords, seg.VisualDirection))
	}

	prompt := fmt.Sprintf(`%s
Create a scene-by-scene storyboard for this %s script (angle: %s):
%s

Every scene's "ai_video_prompt" must be a fully self-contained prompt usable
directly by a text-to-video model: describe subject, setting, lighting, camera
and motion without referring to other scenes or to the product by name.

Output as a single JSON object with these keys:
"scenes" (array of objects with "scene_number", "timestamp",
"visual_description", "camera_direction", "camera_movement", "subject_action",
optional "text_overlay" {"text","position","style"}, "transition_to_next",
"ai_video_prompt", "reference_style"),
"overall_pacing", "color_grade", "aspect_ratio", "total_scenes"`,
		formatProduct(p), script.Platform, script.AngleName, strings.Join(lines, "\n"))
	return appendBrandVoice(prompt, brandVoice)
}

// BuildUGCPrompt asks for 10 creator briefs grounded in the campaign scripts.
func BuildUGCPrompt(p model.ProductProfile, scripts []model.Script, brandVoice string) string {
	var angles []string
	for _, s := range scripts {
		angles = append(angles, s.AngleName)
	}

	prompt := fmt.Sprintf(`%s
The campaign already has scripts for these angles: %s.
Generate exactly %d UGC creator briefs: 2 briefs for each of these formats: %s.

Output as a JSON array of exactly %d objects, each with these keys:
"format",
"creator_persona" {"age_range", "vibe", "setting", "authenticity_markers" (array)},
"script_outline" {"opening", "middle", "close"},
"spoken_tone", "do_list" (array), "dont_list" (array),
"video_generation_prompt"`,
		formatProduct(p), strings.Join(angles, ", "), model.UGCBriefCount,
		strings.Join(ugcFormats, ", "), model.UGCBriefCount)
	return appendBrandVoice(prompt, brandVoice)
}

// BuildIterationPrompt asks for 10 variants of the user-selected winners,
// each embedding a full script and storyboard in one call.
func BuildIterationPrompt(p model.ProductProfile, winners []string, brandVoice string) string {
	prompt := fmt.Sprintf(`%s
These creatives performed best and were selected as winners:
%s

Generate exactly %d iteration variants. Each variant changes one meaningful
variable (hook, pacing, framework, persona, visual style) and keeps the rest.

Output as a JSON array of exactly %d objects, each with these keys:
"based_on", "what_changed", "hypothesis",
"script" (same shape as the script stage output),
"storyboard" (same shape as the storyboard stage output)`,
		formatProduct(p), strings.Join(winners, "\n---\n"),
		model.IterationVariantCount, model.IterationVariantCount)
	return appendBrandVoice(prompt, brandVoice)
}

// BuildOptimizerPrompt rewrites a scene description into a visually literal
// video-generation prompt. Plain-text output, not JSON.
func BuildOptimizerPrompt(p model.ProductProfile, sceneDescription, provider string) string {
	if provider == "" {
		provider = model.ProviderWaveSpeed
	}
	return fmt.Sprintf(`Rewrite the following scene description as a single prompt for the %s
text-to-video model. Rules:
- Describe only what the camera sees: subject, setting, lighting, motion.
- Never mention the product name ("%s") or any brand.
- No instructions about on-screen text or captions.
- Keep it under 150 words.
- End with 3-5 comma-separated style keywords.

Scene description:
%s

Product context (for visual accuracy only):
%s
Respond with the rewritten prompt only, no preamble and no JSON.`,
		provider, p.Name, sceneDescription, formatProduct(p))
}
