package handler

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/adforge/api/internal/client"
	"github.com/adforge/api/internal/middleware"
	"github.com/adforge/api/internal/model"
	"github.com/adforge/api/internal/service"
	"github.com/adforge/api/internal/store"
	"github.com/adforge/api/pkg/response"
)

type VideoHandler struct {
	service   *service.VideoService
	campaigns *service.CampaignService
	validator *validator.Validate
	videosDir string
}

func NewVideoHandler(svc *service.VideoService, campaigns *service.CampaignService, v *validator.Validate, videosDir string) *VideoHandler {
	return &VideoHandler{
		service:   svc,
		campaigns: campaigns,
		validator: v,
		videosDir: videosDir,
	}
}

// Generate handles POST /api/videos/generate
// @Summary      Render a scene
// @Description  Queue a single-scene video render; rendering happens in the background
// @Tags         Videos
// @Accept       json
// @Produce      json
// @Param        request body model.GenerateSceneRequest true "Scene request"
// @Success      202 {object} model.VideoJobStartResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/videos/generate [post]
func (h *VideoHandler) Generate(c *fiber.Ctx) error {
	var req model.GenerateSceneRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.StartScene(c.Context(), middleware.GetWorkspaceID(c), &req)
	if err != nil {
		if errors.Is(err, client.ErrUnknownProvider) || errors.Is(err, service.ErrMissingPrompt) {
			return response.ValidationError(c, err.Error(), nil)
		}
		return response.ServiceError(c, err.Error())
	}
	return response.Accepted(c, result)
}

// Batch handles POST /api/videos/batch
// @Summary      Render a batch of scenes
// @Description  Queue one job per scene; scenes render sequentially with pacing between submissions
// @Tags         Videos
// @Accept       json
// @Produce      json
// @Param        request body model.BatchGenerateRequest true "Batch request"
// @Success      202 {object} model.BatchStartResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/videos/batch [post]
func (h *VideoHandler) Batch(c *fiber.Ctx) error {
	var req model.BatchGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.StartBatch(c.Context(), middleware.GetWorkspaceID(c), &req)
	if err != nil {
		if errors.Is(err, client.ErrUnknownProvider) {
			return response.ValidationError(c, err.Error(), nil)
		}
		return response.ServiceError(c, err.Error())
	}
	return response.Accepted(c, result)
}

// GetJob handles GET /api/videos/jobs/:id
// @Summary      Get video job
// @Tags         Videos
// @Produce      json
// @Param        id path string true "Job ID"
// @Success      200 {object} model.VideoJob
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/videos/jobs/{id} [get]
func (h *VideoHandler) GetJob(c *fiber.Ctx) error {
	job, err := h.service.GetJob(c.Context(), middleware.GetWorkspaceID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "Job not found")
		}
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, job)
}

// ListCampaignVideos handles GET /api/campaigns/:id/videos
// @Summary      List campaign video jobs
// @Tags         Videos
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Success      200 {array} model.VideoJob
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id}/videos [get]
func (h *VideoHandler) ListCampaignVideos(c *fiber.Ctx) error {
	campaignID := c.Params("id")
	if _, err := h.campaigns.Get(c.Context(), middleware.GetWorkspaceID(c), campaignID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "Campaign not found")
		}
		return response.ServiceError(c, err.Error())
	}

	jobs, err := h.service.ListByCampaign(c.Context(), campaignID)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, jobs)
}

// Retry handles POST /api/videos/jobs/:id/retry
// @Summary      Retry failed job
// @Description  Create a fresh job from a failed one, optionally on another provider
// @Tags         Videos
// @Accept       json
// @Produce      json
// @Param        id path string true "Job ID"
// @Param        request body model.RetryJobRequest true "Retry request"
// @Success      202 {object} model.VideoJobStartResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/videos/jobs/{id}/retry [post]
func (h *VideoHandler) Retry(c *fiber.Ctx) error {
	var req model.RetryJobRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	result, err := h.service.RetryJob(c.Context(), middleware.GetWorkspaceID(c), c.Params("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return response.NotFound(c, "Job not found")
		case errors.Is(err, service.ErrJobNotRetryable), errors.Is(err, client.ErrUnknownProvider):
			return response.ValidationError(c, err.Error(), nil)
		default:
			return response.ServiceError(c, err.Error())
		}
	}
	return response.Accepted(c, result)
}

// DeleteJob handles DELETE /api/videos/jobs/:id
// @Summary      Delete video job
// @Description  Delete a job record and its downloaded video file
// @Tags         Videos
// @Param        id path string true "Job ID"
// @Success      204
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/videos/jobs/{id} [delete]
func (h *VideoHandler) DeleteJob(c *fiber.Ctx) error {
	if err := h.service.DeleteJob(c.Context(), middleware.GetWorkspaceID(c), c.Params("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "Job not found")
		}
		return response.ServiceError(c, err.Error())
	}
	return response.NoContent(c)
}

// ServeFile handles GET /api/videos/files/:filename
// @Summary      Serve video file
// @Description  Stream a downloaded video file from local storage
// @Tags         Videos
// @Produce      video/mp4
// @Param        filename path string true "File name"
// @Success      200
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/videos/files/{filename} [get]
func (h *VideoHandler) ServeFile(c *fiber.Ctx) error {
	fileName := c.Params("filename")

	// Reject any path that could escape the videos directory
	if fileName == "" || fileName != filepath.Base(fileName) || strings.Contains(fileName, "..") {
		return response.ValidationError(c, "Invalid file name", nil)
	}

	return c.SendFile(filepath.Join(h.videosDir, fileName))
}
