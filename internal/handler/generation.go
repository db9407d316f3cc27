package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/adforge/api/internal/middleware"
	"github.com/adforge/api/internal/model"
	"github.com/adforge/api/internal/service"
	"github.com/adforge/api/internal/store"
	"github.com/adforge/api/pkg/response"
)

type GenerationHandler struct {
	service   *service.GenerationService
	validator *validator.Validate
}

func NewGenerationHandler(svc *service.GenerationService, v *validator.Validate) *GenerationHandler {
	return &GenerationHandler{
		service:   svc,
		validator: v,
	}
}

// stageError maps pipeline failures onto the error envelope
func stageError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return response.NotFound(c, "Campaign not found")
	case errors.Is(err, service.ErrInvalidInput):
		return response.ValidationError(c, err.Error(), nil)
	default:
		return response.AIError(c, err.Error())
	}
}

// Angles handles POST /api/campaigns/:id/generate/angles
// @Summary      Generate angles
// @Description  Generate 10 advertising angles for the campaign's product
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Param        request body model.GenerateStageRequest true "Stage request"
// @Success      200 {object} model.GenerationResultResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      502 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id}/generate/angles [post]
func (h *GenerationHandler) Angles(c *fiber.Ctx) error {
	var req model.GenerateStageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.GenerateAngles(c.Context(), middleware.GetWorkspaceID(c), c.Params("id"), &req)
	if err != nil {
		return stageError(c, err)
	}
	return response.OK(c, result)
}

// Hooks handles POST /api/campaigns/:id/generate/hooks
// @Summary      Generate hooks
// @Description  Generate 50 scroll-stopping hooks for the campaign's product
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Param        request body model.GenerateStageRequest true "Stage request"
// @Success      200 {object} model.GenerationResultResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      502 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id}/generate/hooks [post]
func (h *GenerationHandler) Hooks(c *fiber.Ctx) error {
	var req model.GenerateStageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.GenerateHooks(c.Context(), middleware.GetWorkspaceID(c), c.Params("id"), &req)
	if err != nil {
		return stageError(c, err)
	}
	return response.OK(c, result)
}

// Scripts handles POST /api/campaigns/:id/generate/scripts
// @Summary      Generate scripts
// @Description  Generate one full ad script per selected angle
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Param        request body model.GenerateScriptsRequest true "Scripts request"
// @Success      200 {object} model.GenerationResultResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      502 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id}/generate/scripts [post]
func (h *GenerationHandler) Scripts(c *fiber.Ctx) error {
	var req model.GenerateScriptsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.GenerateScripts(c.Context(), middleware.GetWorkspaceID(c), c.Params("id"), &req)
	if err != nil {
		return stageError(c, err)
	}
	return response.OK(c, result)
}

// Storyboard handles POST /api/campaigns/:id/generate/storyboard
// @Summary      Generate storyboard
// @Description  Generate a scene-by-scene storyboard per script, with AI video prompts
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Param        request body model.GenerateStoryboardRequest true "Storyboard request"
// @Success      200 {object} model.GenerationResultResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      502 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id}/generate/storyboard [post]
func (h *GenerationHandler) Storyboard(c *fiber.Ctx) error {
	var req model.GenerateStoryboardRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.GenerateStoryboard(c.Context(), middleware.GetWorkspaceID(c), c.Params("id"), &req)
	if err != nil {
		return stageError(c, err)
	}
	return response.OK(c, result)
}

// UGC handles POST /api/campaigns/:id/generate/ugc
// @Summary      Generate UGC briefs
// @Description  Generate 10 creator briefs grounded in the campaign's scripts
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Param        request body model.GenerateUGCRequest true "UGC request"
// @Success      200 {object} model.GenerationResultResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      502 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id}/generate/ugc [post]
func (h *GenerationHandler) UGC(c *fiber.Ctx) error {
	var req model.GenerateUGCRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.GenerateUGC(c.Context(), middleware.GetWorkspaceID(c), c.Params("id"), &req)
	if err != nil {
		return stageError(c, err)
	}
	return response.OK(c, result)
}

// Iteration handles POST /api/campaigns/:id/generate/iteration
// @Summary      Generate iteration variants
// @Description  Generate 10 variants of user-selected winning creatives
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Param        request body model.GenerateIterationRequest true "Iteration request"
// @Success      200 {object} model.GenerationResultResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      502 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id}/generate/iteration [post]
func (h *GenerationHandler) Iteration(c *fiber.Ctx) error {
	var req model.GenerateIterationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.GenerateIteration(c.Context(), middleware.GetWorkspaceID(c), c.Params("id"), &req)
	if err != nil {
		return stageError(c, err)
	}
	return response.OK(c, result)
}

// OptimizePrompt handles POST /api/campaigns/:id/optimize-prompt
// @Summary      Optimize video prompt
// @Description  Rewrite a scene description into a provider-ready video prompt
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Param        request body model.OptimizePromptRequest true "Optimizer request"
// @Success      200 {object} model.OptimizePromptResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      502 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id}/optimize-prompt [post]
func (h *GenerationHandler) OptimizePrompt(c *fiber.Ctx) error {
	var req model.OptimizePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	prompt, err := h.service.OptimizePrompt(c.Context(), middleware.GetWorkspaceID(c), c.Params("id"), &req)
	if err != nil {
		return stageError(c, err)
	}
	return response.OK(c, model.OptimizePromptResponse{Prompt: prompt})
}

// List handles GET /api/campaigns/:id/generations
// @Summary      List generations
// @Description  List a campaign's generation history, optionally filtered by stage
// @Tags         Generation
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Param        stage query string false "Stage filter"
// @Success      200 {array} model.Generation
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id}/generations [get]
func (h *GenerationHandler) List(c *fiber.Ctx) error {
	stage := model.Stage(c.Query("stage"))

	generations, err := h.service.ListGenerations(c.Context(), middleware.GetWorkspaceID(c), c.Params("id"), stage)
	if err != nil {
		return stageError(c, err)
	}
	return response.OK(c, generations)
}
