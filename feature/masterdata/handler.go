package masterdata

import (
	"store-ops/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for master data.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the master-data routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/masterdata")
	group.Get("/schema", h.HandleSchemaCheck)
}

// HandleSchemaCheck compares the models with the live database schema.
// @Summary Check Schema
// @Description Compares the expected tables and columns with the connected database.
// @Tags masterdata
// @Produce json
// @Success 200 {object} masterdata.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /masterdata/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema(c.UserContext())
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if !report.Matched {
		l.Warn("Schema drift detected", zap.Int("errors", len(report.Errors)))
	}

	return c.JSON(report)
}
