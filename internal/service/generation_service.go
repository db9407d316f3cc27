package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adforge/api/internal/client"
	"github.com/adforge/api/internal/model"
	"github.com/adforge/api/internal/prompt"
	"github.com/adforge/api/internal/store"
	"github.com/adforge/api/internal/websocket"
	"github.com/adforge/api/pkg/response"
)

// ErrInvalidInput marks a request rejected before any model call is made
// (e.g. requesting a storyboard with no scripts).
var ErrInvalidInput = errors.New("invalid input")

// GenerationService is the pipeline orchestrator. For each stage it builds
// the prompt, drives the text generator while forwarding chunks to the
// stream hub, validates the output contract, and persists exactly one
// Generation record on success. Loop stages are all-or-nothing: a failure
// partway through persists nothing.
type GenerationService struct {
	llm         client.TextGenerator
	campaigns   *store.CampaignStore
	generations *store.GenerationStore
	hub         *websocket.Hub
	validate    *validator.Validate
	logger      zerolog.Logger
}

func NewGenerationService(llm client.TextGenerator, campaigns *store.CampaignStore, generations *store.GenerationStore, hub *websocket.Hub, v *validator.Validate, logger zerolog.Logger) *GenerationService {
	return &GenerationService{
		llm:         llm,
		campaigns:   campaigns,
		generations: generations,
		hub:         hub,
		validate:    v,
		logger:      logger.With().Str("component", "pipeline").Logger(),
	}
}

// ListGenerations returns a campaign's generation history, newest first
func (s *GenerationService) ListGenerations(ctx context.Context, workspaceID, campaignID string, stage model.Stage) ([]*model.Generation, error) {
	if _, err := s.campaigns.Get(ctx, workspaceID, campaignID); err != nil {
		return nil, err
	}
	if stage != "" && !stage.Valid() {
		return nil, fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, stage)
	}
	return s.generations.ListByCampaign(ctx, campaignID, stage)
}

// GenerateAngles runs the angles stage: exactly 10 advertising angles.
func (s *GenerationService) GenerateAngles(ctx context.Context, workspaceID, campaignID string, req *model.GenerateStageRequest) (*model.GenerationResultResponse, error) {
	return s.runSingleCall(ctx, workspaceID, campaignID, model.StageAngles, req.StreamID, func(c *model.Campaign) string {
		return prompt.BuildAnglesPrompt(c.Product, req.BrandVoice)
	})
}

// GenerateHooks runs the hooks stage: exactly 50 hooks.
func (s *GenerationService) GenerateHooks(ctx context.Context, workspaceID, campaignID string, req *model.GenerateStageRequest) (*model.GenerationResultResponse, error) {
	return s.runSingleCall(ctx, workspaceID, campaignID, model.StageHooks, req.StreamID, func(c *model.Campaign) string {
		return prompt.BuildHooksPrompt(c.Product, req.BrandVoice)
	})
}

// GenerateScripts runs the scripts stage: one model call per selected angle,
// strictly in input order, bundled into a single Generation.
func (s *GenerationService) GenerateScripts(ctx context.Context, workspaceID, campaignID string, req *model.GenerateScriptsRequest) (*model.GenerationResultResponse, error) {
	campaign, err := s.lookupCampaign(ctx, workspaceID, campaignID, req.StreamID)
	if err != nil {
		return nil, err
	}
	if len(req.SelectedAngles) == 0 {
		return nil, s.inputError(req.StreamID, "at least one selected angle is required")
	}

	cfg := prompt.ScriptConfig{Duration: req.Duration, Platform: req.Platform}

	scripts := make([]model.Script, 0, len(req.SelectedAngles))
	var raws []string
	for i, angle := range req.SelectedAngles {
		p := prompt.BuildScriptPrompt(campaign.Product, angle, cfg, req.BrandVoice)
		result, err := s.generate(ctx, req.StreamID, p)
		if err != nil {
			return nil, s.stageError(req.StreamID, model.StageScripts, err)
		}

		var script model.Script
		if err := json.Unmarshal(result.Parsed, &script); err != nil {
			return nil, s.stageError(req.StreamID, model.StageScripts,
				fmt.Errorf("%w: script %d: %v", client.ErrMalformedOutput, i+1, err))
		}
		if err := model.ValidateSingle(s.validate, script); err != nil {
			return nil, s.stageError(req.StreamID, model.StageScripts,
				fmt.Errorf("%w: script %d: %v", client.ErrMalformedOutput, i+1, err))
		}

		scripts = append(scripts, script)
		raws = append(raws, result.Raw)
	}

	return s.persistAndNotify(ctx, campaignID, model.StageScripts, req.StreamID, scripts, strings.Join(raws, "\n\n---\n\n"))
}

// GenerateStoryboard runs the storyboard stage: one model call per script,
// strictly in input order, bundled into a single Generation. Scripts come
// from the request or fall back to the latest persisted scripts generation.
func (s *GenerationService) GenerateStoryboard(ctx context.Context, workspaceID, campaignID string, req *model.GenerateStoryboardRequest) (*model.GenerationResultResponse, error) {
	campaign, err := s.lookupCampaign(ctx, workspaceID, campaignID, req.StreamID)
	if err != nil {
		return nil, err
	}
	scripts, err := s.resolveScripts(ctx, campaignID, req.Scripts, req.StreamID)
	if err != nil {
		return nil, err
	}

	storyboards := make([]model.Storyboard, 0, len(scripts))
	var raws []string
	for i, script := range scripts {
		p := prompt.BuildStoryboardPrompt(campaign.Product, script, req.BrandVoice)
		result, err := s.generate(ctx, req.StreamID, p)
		if err != nil {
			return nil, s.stageError(req.StreamID, model.StageStoryboard, err)
		}

		var storyboard model.Storyboard
		if err := json.Unmarshal(result.Parsed, &storyboard); err != nil {
			return nil, s.stageError(req.StreamID, model.StageStoryboard,
				fmt.Errorf("%w: storyboard %d: %v", client.ErrMalformedOutput, i+1, err))
		}
		if err := model.ValidateSingle(s.validate, storyboard); err != nil {
			return nil, s.stageError(req.StreamID, model.StageStoryboard,
				fmt.Errorf("%w: storyboard %d: %v", client.ErrMalformedOutput, i+1, err))
		}

		storyboards = append(storyboards, storyboard)
		raws = append(raws, result.Raw)
	}

	return s.persistAndNotify(ctx, campaignID, model.StageStoryboard, req.StreamID, storyboards, strings.Join(raws, "\n\n---\n\n"))
}

// GenerateUGC runs the UGC stage: exactly 10 creator briefs grounded in the
// campaign's scripts.
func (s *GenerationService) GenerateUGC(ctx context.Context, workspaceID, campaignID string, req *model.GenerateUGCRequest) (*model.GenerationResultResponse, error) {
	campaign, err := s.lookupCampaign(ctx, workspaceID, campaignID, req.StreamID)
	if err != nil {
		return nil, err
	}
	scripts, err := s.resolveScripts(ctx, campaignID, req.Scripts, req.StreamID)
	if err != nil {
		return nil, err
	}

	p := prompt.BuildUGCPrompt(campaign.Product, scripts, req.BrandVoice)
	return s.runValidatedCall(ctx, campaignID, model.StageUGC, req.StreamID, p)
}

// GenerateIteration runs the iteration stage: 10 variants of user-selected
// winners, each embedding a full script and storyboard.
func (s *GenerationService) GenerateIteration(ctx context.Context, workspaceID, campaignID string, req *model.GenerateIterationRequest) (*model.GenerationResultResponse, error) {
	campaign, err := s.lookupCampaign(ctx, workspaceID, campaignID, req.StreamID)
	if err != nil {
		return nil, err
	}
	if len(req.Winners) == 0 {
		return nil, s.inputError(req.StreamID, "at least one winning creative is required")
	}

	winners := make([]string, 0, len(req.Winners))
	for _, w := range req.Winners {
		winners = append(winners, string(w))
	}

	p := prompt.BuildIterationPrompt(campaign.Product, winners, req.BrandVoice)
	return s.runValidatedCall(ctx, campaignID, model.StageIteration, req.StreamID, p)
}

// OptimizePrompt rewrites a scene description into a provider-ready video
// prompt. Plain text, no Generation record.
func (s *GenerationService) OptimizePrompt(ctx context.Context, workspaceID, campaignID string, req *model.OptimizePromptRequest) (string, error) {
	campaign, err := s.campaigns.Get(ctx, workspaceID, campaignID)
	if err != nil {
		return "", err
	}

	p := prompt.BuildOptimizerPrompt(campaign.Product, req.SceneDescription, req.Provider)
	text, err := s.llm.GenerateText(ctx, p, client.GenerateOptions{Temperature: 0.5})
	if err != nil {
		return "", err
	}
	return text, nil
}

// runSingleCall handles stages that are one prompt, one model call, one
// array contract (angles, hooks).
func (s *GenerationService) runSingleCall(ctx context.Context, workspaceID, campaignID string, stage model.Stage, streamID string, build func(*model.Campaign) string) (*model.GenerationResultResponse, error) {
	campaign, err := s.lookupCampaign(ctx, workspaceID, campaignID, streamID)
	if err != nil {
		return nil, err
	}
	return s.runValidatedCall(ctx, campaignID, stage, streamID, build(campaign))
}

// runValidatedCall drives one model call, validates the stage contract, and
// persists the parsed output verbatim.
func (s *GenerationService) runValidatedCall(ctx context.Context, campaignID string, stage model.Stage, streamID, p string) (*model.GenerationResultResponse, error) {
	result, err := s.generate(ctx, streamID, p)
	if err != nil {
		return nil, s.stageError(streamID, stage, err)
	}

	if _, err := model.DecodeStageOutput(s.validate, stage, result.Parsed); err != nil {
		return nil, s.stageError(streamID, stage, fmt.Errorf("%w: %v", client.ErrMalformedOutput, err))
	}

	return s.persistRaw(ctx, campaignID, stage, streamID, result.Parsed, result.Raw)
}

func (s *GenerationService) generate(ctx context.Context, streamID, p string) (*client.GenerateResult, error) {
	return s.llm.GenerateJSON(ctx, p, client.GenerateOptions{
		OnChunk: func(text string) {
			s.hub.BroadcastChunk(streamID, text)
		},
	})
}

// persistAndNotify marshals a bundled loop output and persists it as one
// Generation record.
func (s *GenerationService) persistAndNotify(ctx context.Context, campaignID string, stage model.Stage, streamID string, output interface{}, raw string) (*model.GenerationResultResponse, error) {
	data, err := json.Marshal(output)
	if err != nil {
		return nil, s.stageError(streamID, stage, err)
	}
	return s.persistRaw(ctx, campaignID, stage, streamID, data, raw)
}

func (s *GenerationService) persistRaw(ctx context.Context, campaignID string, stage model.Stage, streamID string, output json.RawMessage, raw string) (*model.GenerationResultResponse, error) {
	generation := &model.Generation{
		ID:          uuid.New().String(),
		CampaignID:  campaignID,
		Stage:       stage,
		Output:      output,
		RawResponse: raw,
		CreatedAt:   time.Now(),
	}

	if err := s.generations.Insert(ctx, generation); err != nil {
		return nil, s.stageError(streamID, stage, err)
	}

	s.logger.Info().Str("campaignId", campaignID).Str("stage", string(stage)).Str("generationId", generation.ID).Msg("stage completed")
	s.hub.BroadcastResult(streamID, generation.ID, output)

	return &model.GenerationResultResponse{
		GenerationID: generation.ID,
		Stage:        stage,
		Data:         output,
		CreatedAt:    generation.CreatedAt,
	}, nil
}

// resolveScripts takes request scripts or falls back to the latest persisted
// scripts generation; neither present is an input error.
func (s *GenerationService) resolveScripts(ctx context.Context, campaignID string, fromRequest []model.Script, streamID string) ([]model.Script, error) {
	if len(fromRequest) > 0 {
		return fromRequest, nil
	}

	latest, err := s.generations.LatestByStage(ctx, campaignID, model.StageScripts)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, s.inputError(streamID, "no scripts found; generate scripts first")
		}
		return nil, err
	}

	var scripts []model.Script
	if err := json.Unmarshal(latest.Output, &scripts); err != nil {
		return nil, fmt.Errorf("stored scripts are unreadable: %w", err)
	}
	if len(scripts) == 0 {
		return nil, s.inputError(streamID, "no scripts found; generate scripts first")
	}
	return scripts, nil
}

// lookupCampaign resolves the campaign for a stage run. A failed lookup is
// still a terminal event for an attached stream: subscribers get exactly one
// error before the HTTP response returns.
func (s *GenerationService) lookupCampaign(ctx context.Context, workspaceID, campaignID, streamID string) (*model.Campaign, error) {
	campaign, err := s.campaigns.Get(ctx, workspaceID, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.hub.BroadcastStreamError(streamID, response.CodeNotFound, "campaign not found")
		} else {
			s.hub.BroadcastStreamError(streamID, response.CodeServiceError, err.Error())
		}
		return nil, err
	}
	return campaign, nil
}

func (s *GenerationService) inputError(streamID, message string) error {
	err := fmt.Errorf("%w: %s", ErrInvalidInput, message)
	s.hub.BroadcastStreamError(streamID, response.CodeValidationError, message)
	return err
}

// stageError logs, broadcasts the terminal error event, and returns the
// failure. Nothing is persisted for the stage.
func (s *GenerationService) stageError(streamID string, stage model.Stage, err error) error {
	s.logger.Error().Err(err).Str("stage", string(stage)).Msg("stage failed")
	s.hub.BroadcastStreamError(streamID, response.CodeAIError, err.Error())
	return err
}
