package imports

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"store-ops/core/logger"
	"store-ops/core/middleware/auth"
	"store-ops/core/middleware/rayid"
	"store-ops/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// rowNumberField is the optional JSON row attribute carrying the sheet line.
const rowNumberField = "row_number"

// Handler handles HTTP requests for imports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the import routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/imports")
	group.Get("/", h.HandleListEntities)
	group.Post("/:entity", h.HandleImport)
	group.Get("/:entity/archives", h.HandleListArchives)
}

// ImportRequest is the JSON form of an upload.
type ImportRequest struct {
	// Rows are cells keyed by column label. A numeric "row_number" attribute sets
	// the reported line; otherwise rows are numbered from 2.
	Rows []map[string]any `json:"rows"`
}

// HandleListEntities lists the importable entity types and their columns.
// @Summary List Import Types
// @Description Lists every importable entity type with its spreadsheet columns.
// @Tags imports
// @Produce json
// @Success 200 {array} imports.Entity "Entity types"
// @Router /imports [get]
func (h *Handler) HandleListEntities(c *fiber.Ctx) error {
	return c.JSON(h.service.Entities())
}

// HandleImport imports a spreadsheet or a JSON batch.
// @Summary Import Batch
// @Description Validates, deduplicates and upserts a batch of rows. Accepts a multipart "file" (xlsx, csv) or a JSON body.
// @Tags imports
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param entity path string true "Entity type (employee, store-employee, hurdle, rate, budget)"
// @Param batch_size query int false "Rows persisted per chunk"
// @Param file formData file false "Spreadsheet"
// @Param body body imports.ImportRequest false "Rows"
// @Success 200 {object} reconcile.BatchResult "Batch Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Unknown Entity"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /imports/{entity} [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	entity := c.Params("entity")
	l := logger.WithRayID(h.service.logger, c).With(zap.String("entity", entity))

	actor, ok := auth.ActorFrom(c)
	if !ok {
		return h.fail(c, l, ErrUnauthenticated)
	}

	opts, err := parseOptions(c)
	if err != nil {
		return badRequest(c, err)
	}

	var result *reconcile.BatchResult
	if isMultipart(c) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, fmt.Errorf("missing file: %w", err))
		}
		data, err := readFormFile(fileHeader)
		if err != nil {
			return badRequest(c, err)
		}
		result, err = h.service.ImportFile(c.UserContext(), entity, fileHeader.Filename, data, actor, opts, rayid.Get(c))
		if err != nil {
			return h.fail(c, l, err)
		}
	} else {
		rows, err := parseRows(c.Body())
		if err != nil {
			return badRequest(c, err)
		}
		result, err = h.service.RunBatchImport(c.UserContext(), entity, rows, actor, opts)
		if err != nil {
			return h.fail(c, l, err)
		}
	}

	return c.JSON(result)
}

// HandleListArchives lists the archived uploads of an entity.
// @Summary List Archived Uploads
// @Description Lists the spreadsheets stored for an entity type.
// @Tags imports
// @Produce json
// @Param entity path string true "Entity type"
// @Success 200 {array} storage.ArchivedObject "Archived uploads"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Unknown Entity or archive disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /imports/{entity}/archives [get]
func (h *Handler) HandleListArchives(c *fiber.Ctx) error {
	entity := c.Params("entity")
	l := logger.WithRayID(h.service.logger, c).With(zap.String("entity", entity))

	actor, ok := auth.ActorFrom(c)
	if !ok {
		return h.fail(c, l, ErrUnauthenticated)
	}

	objects, err := h.service.Archives(c.UserContext(), entity, actor)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(objects)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUnknownEntity), errors.Is(err, ErrArchiveDisabled):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrUnauthenticated):
		status = fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, ErrInvalidFile), errors.Is(err, reconcile.ErrNoRows):
		status = fiber.StatusBadRequest
	}

	if status == fiber.StatusInternalServerError {
		l.Error("Import failed", zap.Error(err))
	} else {
		l.Warn("Import refused", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func readFormFile(fh *multipart.FileHeader) (data []byte, err error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return io.ReadAll(file)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}

func parseOptions(c *fiber.Ctx) (reconcile.Options, error) {
	var opts reconcile.Options
	raw := c.Query("batch_size")
	if raw == "" {
		return opts, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return opts, fmt.Errorf("batch_size must be a positive integer, got %q", raw)
	}
	opts.BatchSize = n
	return opts, nil
}

// parseRows decodes a JSON batch. Numbers are kept as json.Number so cells
// convert the same way spreadsheet text does.
func parseRows(body []byte) ([]reconcile.Row, error) {
	var req ImportRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if len(req.Rows) == 0 {
		return nil, reconcile.ErrNoRows
	}

	rows := make([]reconcile.Row, len(req.Rows))
	seen := make(map[int]struct{}, len(req.Rows))
	for i, cells := range req.Rows {
		number := i + 2
		if v, ok := cells[rowNumberField]; ok {
			n, err := strconv.Atoi(fmt.Sprint(v))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("rows[%d]: %s must be a positive integer", i, rowNumberField)
			}
			number = n
			delete(cells, rowNumberField)
		}
		if _, dup := seen[number]; dup {
			return nil, fmt.Errorf("rows[%d]: %s %d is used twice", i, rowNumberField, number)
		}
		seen[number] = struct{}{}
		rows[i] = reconcile.NewRow(number, cells)
	}
	return rows, nil
}
