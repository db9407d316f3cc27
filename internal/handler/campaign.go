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

type CampaignHandler struct {
	service   *service.CampaignService
	validator *validator.Validate
}

func NewCampaignHandler(svc *service.CampaignService, v *validator.Validate) *CampaignHandler {
	return &CampaignHandler{
		service:   svc,
		validator: v,
	}
}

// Create handles POST /api/campaigns
// @Summary      Create campaign
// @Description  Create a new campaign around a product profile
// @Tags         Campaigns
// @Accept       json
// @Produce      json
// @Param        request body model.CreateCampaignRequest true "Campaign request"
// @Success      201 {object} model.Campaign
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns [post]
func (h *CampaignHandler) Create(c *fiber.Ctx) error {
	var req model.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	campaign, err := h.service.Create(c.Context(), middleware.GetWorkspaceID(c), &req)
	if err != nil {
		return response.ServiceError(c, err.Error())
	}

	return response.Created(c, campaign)
}

// List handles GET /api/campaigns
// @Summary      List campaigns
// @Description  List the workspace's campaigns, newest first
// @Tags         Campaigns
// @Produce      json
// @Success      200 {array} model.Campaign
// @Failure      401 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns [get]
func (h *CampaignHandler) List(c *fiber.Ctx) error {
	campaigns, err := h.service.List(c.Context(), middleware.GetWorkspaceID(c))
	if err != nil {
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, campaigns)
}

// Get handles GET /api/campaigns/:id
// @Summary      Get campaign
// @Tags         Campaigns
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Success      200 {object} model.Campaign
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id} [get]
func (h *CampaignHandler) Get(c *fiber.Ctx) error {
	campaign, err := h.service.Get(c.Context(), middleware.GetWorkspaceID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "Campaign not found")
		}
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, campaign)
}

// Update handles PUT /api/campaigns/:id
// @Summary      Update campaign
// @Description  Replace a campaign's product profile
// @Tags         Campaigns
// @Accept       json
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Param        request body model.UpdateCampaignRequest true "Update request"
// @Success      200 {object} model.Campaign
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id} [put]
func (h *CampaignHandler) Update(c *fiber.Ctx) error {
	var req model.UpdateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	if err := h.validator.Struct(&req); err != nil {
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	}

	campaign, err := h.service.Update(c.Context(), middleware.GetWorkspaceID(c), c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "Campaign not found")
		}
		return response.ServiceError(c, err.Error())
	}
	return response.OK(c, campaign)
}

// Delete handles DELETE /api/campaigns/:id
// @Summary      Delete campaign
// @Description  Delete a campaign with all its generations, video jobs, and downloaded files
// @Tags         Campaigns
// @Param        id path string true "Campaign ID"
// @Success      204
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), middleware.GetWorkspaceID(c), c.Params("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return response.NotFound(c, "Campaign not found")
		}
		return response.ServiceError(c, err.Error())
	}
	return response.NoContent(c)
}

// formatValidationErrors formats validator errors for response
func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	return nil
}
