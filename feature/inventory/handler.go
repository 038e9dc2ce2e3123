package inventory

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"stock-reconciler/core/logger"
)

// Handler handles HTTP requests for the reconciliation views.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Get("/detail", h.HandleDetail)
	group.Get("/summary", h.HandleSummary)
	group.Get("/status", h.HandleStatus)
	group.Post("/reload", h.HandleReload)
}

// HandleDetail returns the per-serial detail view.
// @Summary Detail view
// @Description Per-serial status ledger, one row per unit record.
// @Tags inventory
// @Produce json
// @Success 200 {array} models.DetailRow "Detail rows"
// @Failure 422 {object} map[string]string "Required input missing"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/detail [get]
func (h *Handler) HandleDetail(c *fiber.Ctx) error {
	result, _, err := h.service.Run(c.Context())
	if err != nil {
		return h.fail(c, "detail view failed", err)
	}
	return c.JSON(result.Detail)
}

// HandleSummary returns the stock-variance summary view.
// @Summary Summary view
// @Description Per-(material, province) stock variance across the three sources.
// @Tags inventory
// @Produce json
// @Success 200 {array} models.SummaryRow "Summary rows"
// @Failure 422 {object} map[string]string "Required input missing"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/summary [get]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	result, _, err := h.service.Run(c.Context())
	if err != nil {
		return h.fail(c, "summary view failed", err)
	}
	return c.JSON(result.Summary)
}

// HandleStatus returns metadata of the most recent run.
// @Summary Last run status
// @Description Fingerprint, timing and row counts of the most recent pipeline run.
// @Tags inventory
// @Produce json
// @Success 200 {object} models.RunInfo "Last run"
// @Failure 404 {object} map[string]string "No run yet"
// @Router /inventory/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	info := h.service.LastRun()
	if info == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no run completed yet",
		})
	}
	return c.JSON(info)
}

// HandleReload invalidates the run cache and rebuilds both views.
// @Summary Reload
// @Description Drop cached results and rerun the pipeline from the current extracts.
// @Tags inventory
// @Produce json
// @Success 200 {object} models.RunInfo "Fresh run"
// @Failure 422 {object} map[string]string "Required input missing"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/reload [post]
func (h *Handler) HandleReload(c *fiber.Ctx) error {
	_, info, err := h.service.Reload(c.Context())
	if err != nil {
		return h.fail(c, "reload failed", err)
	}
	return c.JSON(info)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	l := logger.WithRayID(h.logger, c)
	l.Error(msg, zap.Error(err))
	code := fiber.StatusInternalServerError
	if errors.Is(err, ErrMissingInput) {
		code = fiber.StatusUnprocessableEntity
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
