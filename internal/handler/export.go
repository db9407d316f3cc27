package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/adforge/api/internal/middleware"
	"github.com/adforge/api/internal/model"
	"github.com/adforge/api/internal/service"
	"github.com/adforge/api/internal/store"
	"github.com/adforge/api/pkg/response"
)

type ExportHandler struct {
	service   *service.ExportService
	validator *validator.Validate
}

func NewExportHandler(svc *service.ExportService, v *validator.Validate) *ExportHandler {
	return &ExportHandler{
		service:   svc,
		validator: v,
	}
}

// Brief handles GET /api/campaigns/:id/export
// @Summary      Export campaign brief
// @Description  Export the campaign's latest stage outputs as a JSON, Markdown, or PDF document
// @Tags         Export
// @Produce      application/octet-stream
// @Param        id path string true "Campaign ID"
// @Param        format query string false "Export format: json, markdown, pdf" default(json)
// @Success      200
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id}/export [get]
func (h *ExportHandler) Brief(c *fiber.Ctx) error {
	format := model.ExportFormat(c.Query("format", string(model.ExportFormatJSON)))
	if !format.Valid() {
		return response.ValidationError(c, fmt.Sprintf("unsupported export format %q", format), nil)
	}

	brief, err := h.service.BuildBrief(c.Context(), middleware.GetWorkspaceID(c), c.Params("id"))
	if err != nil {
		return exportError(c, err)
	}

	name := fmt.Sprintf("campaign_%s_brief", c.Params("id"))
	switch format {
	case model.ExportFormatMarkdown:
		c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.md"`, name))
		return c.Send(h.service.RenderMarkdown(brief))
	case model.ExportFormatPDF:
		data, err := h.service.RenderPDF(brief)
		if err != nil {
			return response.ServiceError(c, err.Error())
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, name))
		return c.Send(data)
	default:
		data, err := h.service.RenderJSON(brief)
		if err != nil {
			return response.ServiceError(c, err.Error())
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.json"`, name))
		return c.Send(data)
	}
}

// Videos handles GET /api/campaigns/:id/export/videos
// @Summary      Export campaign videos
// @Description  Bundle the campaign's completed videos into a zip archive
// @Tags         Export
// @Produce      application/zip
// @Param        id path string true "Campaign ID"
// @Success      200
// @Failure      404 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id}/export/videos [get]
func (h *ExportHandler) Videos(c *fiber.Ctx) error {
	data, err := h.service.ZipVideos(c.Context(), middleware.GetWorkspaceID(c), c.Params("id"))
	if err != nil {
		return exportError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="campaign_%s_videos.zip"`, c.Params("id")))
	return c.Send(data)
}

func exportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return response.NotFound(c, "Campaign not found")
	case errors.Is(err, service.ErrNothingToExport):
		return response.NotFound(c, err.Error())
	default:
		return response.ServiceError(c, err.Error())
	}
}
