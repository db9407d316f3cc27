package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/adforge/api/internal/client"
	"github.com/adforge/api/internal/model"
	"github.com/adforge/api/internal/store"
	"github.com/adforge/api/internal/websocket"
)

// fakeLLM replays scripted JSON replies in order.
type fakeLLM struct {
	replies []string
	calls   int
	prompts []string
	err     error
	text    string
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt string, opts client.GenerateOptions) (*client.GenerateResult, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	if f.calls >= len(f.replies) {
		return nil, fmt.Errorf("unscripted call %d", f.calls)
	}
	raw := f.replies[f.calls]
	f.calls++
	if opts.OnChunk != nil {
		opts.OnChunk(raw)
	}
	return &client.GenerateResult{Parsed: json.RawMessage(raw), Raw: raw}, nil
}

func (f *fakeLLM) GenerateText(ctx context.Context, prompt string, opts client.GenerateOptions) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeLLM) IsConfigured() bool { return true }

type pipelineEnv struct {
	svc         *GenerationService
	campaigns   *store.CampaignStore
	generations *store.GenerationStore
	hub         *websocket.Hub
	llm         *fakeLLM
	campaignID  string
}

func newPipelineEnv(t *testing.T, llm *fakeLLM) *pipelineEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	campaigns := store.NewCampaignStore(rdb)
	generations := store.NewGenerationStore(rdb)
	hub := websocket.NewHub(zerolog.Nop())
	go hub.Run()

	svc := NewGenerationService(llm, campaigns, generations, hub, validator.New(), zerolog.Nop())

	campaign := &model.Campaign{
		ID:          "c1",
		WorkspaceID: "ws1",
		ProductName: "Glow Serum",
		Product: model.ProductProfile{
			Name:           "Glow Serum",
			Description:    "A vitamin C brightening serum",
			TargetAudience: "skincare enthusiasts",
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := campaigns.Create(context.Background(), campaign); err != nil {
		t.Fatalf("seed campaign: %v", err)
	}

	return &pipelineEnv{svc: svc, campaigns: campaigns, generations: generations, hub: hub, llm: llm, campaignID: campaign.ID}
}

func validAngle(i int) model.Angle {
	return model.Angle{
		AngleName:             fmt.Sprintf("Angle %d", i),
		Framework:             "Problem-Agitate-Solve",
		TargetEmotion:         "curiosity",
		Hook:                  "Stop scrolling",
		Concept:               "A concept",
		WhyItWorks:            "Because",
		EstimatedStrength:     "HIGH",
		TargetAudienceSegment: "everyone",
	}
}

func validAngles(n int) []model.Angle {
	out := make([]model.Angle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, validAngle(i+1))
	}
	return out
}

func validScript(angleName string) model.Script {
	return model.Script{
		AngleName:     angleName,
		TotalDuration: "30s",
		Platform:      "tiktok",
		Segments: []model.ScriptSegment{
			{Timestamp: "0-3s", Section: "hook", SpokenWords: "Stop scrolling", VisualDirection: "close-up"},
			{Timestamp: "3-27s", Section: "body", SpokenWords: "Here is why", VisualDirection: "b-roll"},
		},
		ThumbnailConcept:      "bottle on marble",
		HashtagSuggestions:    []string{"#skincare"},
		EstimatedCTRReasoning: "strong hook",
	}
}

func validStoryboard() model.Storyboard {
	return model.Storyboard{
		Scenes: []model.StoryboardScene{
			{
				SceneNumber:       1,
				Timestamp:         "0-3s",
				VisualDescription: "bottle on counter",
				CameraDirection:   "eye level",
				CameraMovement:    "slow push in",
				SubjectAction:     "light hits the glass",
				AIVideoPrompt:     "a glass serum bottle on a marble counter, morning light, slow push in",
			},
		},
		OverallPacing: "fast",
		ColorGrade:    "warm",
		AspectRatio:   "9:16",
		TotalScenes:   1,
	}
}

func validUGCBriefs(n int) []model.UGCBrief {
	out := make([]model.UGCBrief, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.UGCBrief{
			Format: "testimonial",
			CreatorPersona: model.CreatorPersona{
				AgeRange:            "18-24",
				Vibe:                "casual",
				Setting:             "bathroom",
				AuthenticityMarkers: []string{"no makeup"},
			},
			ScriptOutline: model.ScriptOutline{
				Opening: "I was skeptical",
				Middle:  "then I tried it",
				Close:   "now I repurchase",
			},
			SpokenTone:            "conversational",
			DoList:                []string{"film handheld"},
			DontList:              []string{"no scripts"},
			VideoGenerationPrompt: fmt.Sprintf("a young woman talking to camera in a bathroom, take %d", i+1),
		})
	}
	return out
}

func validIterations(n int) []model.IterationVariant {
	out := make([]model.IterationVariant, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.IterationVariant{
			BasedOn:     "Angle 1",
			WhatChanged: fmt.Sprintf("variable %d", i+1),
			Hypothesis:  "stronger hook lifts CTR",
			Script:      validScript("Angle 1"),
			Storyboard:  validStoryboard(),
		})
	}
	return out
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return string(data)
}

func TestGenerateAngles_PersistsAndReturns(t *testing.T) {
	llm := &fakeLLM{}
	env := newPipelineEnv(t, llm)
	llm.replies = []string{mustJSON(t, validAngles(model.AngleCount))}

	result, err := env.svc.GenerateAngles(context.Background(), "ws1", env.campaignID, &model.GenerateStageRequest{})
	if err != nil {
		t.Fatalf("GenerateAngles: %v", err)
	}
	if result.Stage != model.StageAngles {
		t.Errorf("unexpected stage %q", result.Stage)
	}

	var angles []model.Angle
	if err := json.Unmarshal(result.Data, &angles); err != nil {
		t.Fatalf("result data: %v", err)
	}
	if len(angles) != model.AngleCount {
		t.Errorf("expected %d angles, got %d", model.AngleCount, len(angles))
	}

	latest, err := env.generations.LatestByStage(context.Background(), env.campaignID, model.StageAngles)
	if err != nil {
		t.Fatalf("generation not persisted: %v", err)
	}
	if latest.ID != result.GenerationID {
		t.Errorf("persisted id %s != response id %s", latest.ID, result.GenerationID)
	}
}

func TestGenerateAngles_WrongArityPersistsNothing(t *testing.T) {
	llm := &fakeLLM{}
	env := newPipelineEnv(t, llm)
	llm.replies = []string{mustJSON(t, validAngles(model.AngleCount-1))}

	_, err := env.svc.GenerateAngles(context.Background(), "ws1", env.campaignID, &model.GenerateStageRequest{})
	if !errors.Is(err, client.ErrMalformedOutput) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}

	if _, err := env.generations.LatestByStage(context.Background(), env.campaignID, model.StageAngles); !errors.Is(err, store.ErrNotFound) {
		t.Fatal("failed stage must persist nothing")
	}
}

func TestGenerateAngles_UnknownCampaign(t *testing.T) {
	env := newPipelineEnv(t, &fakeLLM{})

	_, err := env.svc.GenerateAngles(context.Background(), "ws1", "ghost", &model.GenerateStageRequest{})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerateAngles_UnknownCampaignStreamGetsTerminalError(t *testing.T) {
	env := newPipelineEnv(t, &fakeLLM{})

	sub := &websocket.Client{Topic: "s-err", Send: make(chan []byte, 4)}
	env.hub.Register(sub)
	defer env.hub.Unregister(sub)

	_, err := env.svc.GenerateAngles(context.Background(), "ws1", "ghost", &model.GenerateStageRequest{StreamID: "s-err"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	select {
	case msg := <-sub.Send:
		if !strings.Contains(string(msg), "NOT_FOUND") {
			t.Errorf("expected NOT_FOUND error event, got %s", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("stream subscriber never received a terminal error event")
	}
}

func TestGenerateHooks_ExactlyFifty(t *testing.T) {
	llm := &fakeLLM{}
	env := newPipelineEnv(t, llm)

	hooks := make([]model.Hook, 0, model.HookCount)
	for i := 0; i < model.HookCount; i++ {
		hooks = append(hooks, model.Hook{
			HookText:            fmt.Sprintf("Hook %d", i+1),
			HookType:            "question",
			VisualSuggestion:    "close-up",
			ScrollStopRating:    8,
			BestPairedWithAngle: "Angle 1",
		})
	}
	llm.replies = []string{mustJSON(t, hooks)}

	result, err := env.svc.GenerateHooks(context.Background(), "ws1", env.campaignID, &model.GenerateStageRequest{})
	if err != nil {
		t.Fatalf("GenerateHooks: %v", err)
	}

	var got []model.Hook
	json.Unmarshal(result.Data, &got)
	if len(got) != model.HookCount {
		t.Errorf("expected %d hooks, got %d", model.HookCount, len(got))
	}
}

func TestGenerateScripts_OneCallPerAngleInOrder(t *testing.T) {
	llm := &fakeLLM{}
	env := newPipelineEnv(t, llm)
	llm.replies = []string{
		mustJSON(t, validScript("Angle 1")),
		mustJSON(t, validScript("Angle 2")),
	}

	req := &model.GenerateScriptsRequest{SelectedAngles: []model.Angle{validAngle(1), validAngle(2)}}
	result, err := env.svc.GenerateScripts(context.Background(), "ws1", env.campaignID, req)
	if err != nil {
		t.Fatalf("GenerateScripts: %v", err)
	}

	if llm.calls != 2 {
		t.Errorf("expected one model call per angle, got %d", llm.calls)
	}

	var scripts []model.Script
	if err := json.Unmarshal(result.Data, &scripts); err != nil {
		t.Fatalf("result data: %v", err)
	}
	if len(scripts) != 2 {
		t.Fatalf("expected 2 scripts, got %d", len(scripts))
	}
	if scripts[0].AngleName != "Angle 1" || scripts[1].AngleName != "Angle 2" {
		t.Errorf("scripts out of input order: %s, %s", scripts[0].AngleName, scripts[1].AngleName)
	}
}

func TestGenerateScripts_AllOrNothing(t *testing.T) {
	llm := &fakeLLM{}
	env := newPipelineEnv(t, llm)
	llm.replies = []string{
		mustJSON(t, validScript("Angle 1")),
		`{"angle_name": "Angle 2"}`, // missing required fields
	}

	req := &model.GenerateScriptsRequest{SelectedAngles: []model.Angle{validAngle(1), validAngle(2)}}
	if _, err := env.svc.GenerateScripts(context.Background(), "ws1", env.campaignID, req); err == nil {
		t.Fatal("expected failure on second script")
	}

	if _, err := env.generations.LatestByStage(context.Background(), env.campaignID, model.StageScripts); !errors.Is(err, store.ErrNotFound) {
		t.Fatal("partial loop output must persist nothing")
	}
}

func TestGenerateStoryboard_FallsBackToPersistedScripts(t *testing.T) {
	llm := &fakeLLM{}
	env := newPipelineEnv(t, llm)

	// Seed a persisted scripts generation
	scripts := []model.Script{validScript("Angle 1")}
	env.generations.Insert(context.Background(), &model.Generation{
		ID:         "g-scripts",
		CampaignID: env.campaignID,
		Stage:      model.StageScripts,
		Output:     json.RawMessage(mustJSON(t, scripts)),
		CreatedAt:  time.Now(),
	})

	llm.replies = []string{mustJSON(t, validStoryboard())}

	result, err := env.svc.GenerateStoryboard(context.Background(), "ws1", env.campaignID, &model.GenerateStoryboardRequest{})
	if err != nil {
		t.Fatalf("GenerateStoryboard: %v", err)
	}

	var storyboards []model.Storyboard
	if err := json.Unmarshal(result.Data, &storyboards); err != nil {
		t.Fatalf("result data: %v", err)
	}
	if len(storyboards) != 1 {
		t.Fatalf("expected 1 storyboard, got %d", len(storyboards))
	}
	if storyboards[0].Scenes[0].AIVideoPrompt == "" {
		t.Error("expected self-contained video prompt on scene")
	}
}

func TestGenerateStoryboard_NoScriptsAnywhere(t *testing.T) {
	env := newPipelineEnv(t, &fakeLLM{})

	_, err := env.svc.GenerateStoryboard(context.Background(), "ws1", env.campaignID, &model.GenerateStoryboardRequest{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerateUGC_RequiresScripts(t *testing.T) {
	llm := &fakeLLM{}
	env := newPipelineEnv(t, llm)

	if _, err := env.svc.GenerateUGC(context.Background(), "ws1", env.campaignID, &model.GenerateUGCRequest{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without scripts, got %v", err)
	}

	llm.replies = []string{mustJSON(t, validUGCBriefs(model.UGCBriefCount))}
	req := &model.GenerateUGCRequest{Scripts: []model.Script{validScript("Angle 1")}}
	result, err := env.svc.GenerateUGC(context.Background(), "ws1", env.campaignID, req)
	if err != nil {
		t.Fatalf("GenerateUGC: %v", err)
	}

	var briefs []model.UGCBrief
	json.Unmarshal(result.Data, &briefs)
	if len(briefs) != model.UGCBriefCount {
		t.Errorf("expected %d briefs, got %d", model.UGCBriefCount, len(briefs))
	}
}

func TestGenerateIteration_WinnersRequired(t *testing.T) {
	llm := &fakeLLM{}
	env := newPipelineEnv(t, llm)

	req := &model.GenerateIterationRequest{}
	if _, err := env.svc.GenerateIteration(context.Background(), "ws1", env.campaignID, req); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without winners, got %v", err)
	}

	llm.replies = []string{mustJSON(t, validIterations(model.IterationVariantCount))}
	req = &model.GenerateIterationRequest{
		Winners: []json.RawMessage{json.RawMessage(mustJSON(t, validAngle(1)))},
	}
	result, err := env.svc.GenerateIteration(context.Background(), "ws1", env.campaignID, req)
	if err != nil {
		t.Fatalf("GenerateIteration: %v", err)
	}

	var variants []model.IterationVariant
	if err := json.Unmarshal(result.Data, &variants); err != nil {
		t.Fatalf("result data: %v", err)
	}
	if len(variants) != model.IterationVariantCount {
		t.Errorf("expected %d variants, got %d", model.IterationVariantCount, len(variants))
	}
}

func TestOptimizePrompt(t *testing.T) {
	llm := &fakeLLM{text: "a glass bottle on marble, golden hour, macro, cinematic"}
	env := newPipelineEnv(t, llm)

	prompt, err := env.svc.OptimizePrompt(context.Background(), "ws1", env.campaignID, &model.OptimizePromptRequest{
		SceneDescription: "show the serum on the counter",
	})
	if err != nil {
		t.Fatalf("OptimizePrompt: %v", err)
	}
	if prompt != llm.text {
		t.Errorf("unexpected prompt %q", prompt)
	}

	// No Generation record for the optimizer
	list, _ := env.generations.ListByCampaign(context.Background(), env.campaignID, "")
	if len(list) != 0 {
		t.Errorf("optimizer must not persist generations, found %d", len(list))
	}
}

func TestListGenerations_InvalidStage(t *testing.T) {
	env := newPipelineEnv(t, &fakeLLM{})

	if _, err := env.svc.ListGenerations(context.Background(), "ws1", env.campaignID, model.Stage("renders")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown stage, got %v", err)
	}
}

func TestPipeline_FullFlow(t *testing.T) {
	llm := &fakeLLM{}
	env := newPipelineEnv(t, llm)
	ctx := context.Background()

	llm.replies = []string{
		mustJSON(t, validAngles(model.AngleCount)),
		mustJSON(t, validScript("Angle 1")),
		mustJSON(t, validStoryboard()),
		mustJSON(t, validUGCBriefs(model.UGCBriefCount)),
	}

	if _, err := env.svc.GenerateAngles(ctx, "ws1", env.campaignID, &model.GenerateStageRequest{}); err != nil {
		t.Fatalf("angles: %v", err)
	}
	if _, err := env.svc.GenerateScripts(ctx, "ws1", env.campaignID, &model.GenerateScriptsRequest{
		SelectedAngles: []model.Angle{validAngle(1)},
	}); err != nil {
		t.Fatalf("scripts: %v", err)
	}
	// Storyboard and UGC both resolve scripts from the persisted stage output
	if _, err := env.svc.GenerateStoryboard(ctx, "ws1", env.campaignID, &model.GenerateStoryboardRequest{}); err != nil {
		t.Fatalf("storyboard: %v", err)
	}
	if _, err := env.svc.GenerateUGC(ctx, "ws1", env.campaignID, &model.GenerateUGCRequest{}); err != nil {
		t.Fatalf("ugc: %v", err)
	}

	all, err := env.generations.ListByCampaign(ctx, env.campaignID, "")
	if err != nil {
		t.Fatalf("ListByCampaign: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 persisted generations, got %d", len(all))
	}
}
