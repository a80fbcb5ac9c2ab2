package reconciliation

import (
	"errors"
	"strconv"
	"time"

	"intake-reconciler/core/logger"
	"intake-reconciler/core/match"
	"intake-reconciler/core/report"
	"intake-reconciler/core/source"
	"intake-reconciler/feature/reconciliation/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the reconciliation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/reconcile", h.HandleReconcile)
	group := app.Group("/reconcile")
	group.Post("/sources", h.HandleReconcileSources)
	group.Get("/runs/:id", h.HandleGetRun)
}

// ReconcileRequest carries inline collections. Both collections are required;
// an empty array is a valid zero-record collection.
type ReconcileRequest struct {
	Primary   *[]match.PrimaryRecord   `json:"primary"`
	Secondary *[]match.SecondaryRecord `json:"secondary"`
	// DateWindow overrides the configured window, e.g. "72h".
	DateWindow string `json:"date_window,omitempty"`
	// Workers overrides the configured worker count.
	Workers *int `json:"workers,omitempty"`
}

// collections returns both collections or an InputShapeError naming the
// first one that is absent or null.
func (r ReconcileRequest) collections() ([]match.PrimaryRecord, []match.SecondaryRecord, error) {
	if r.Primary == nil {
		return nil, nil, &match.InputShapeError{Collection: source.CollectionPrimary, Reason: "missing"}
	}
	if r.Secondary == nil {
		return nil, nil, &match.InputShapeError{Collection: source.CollectionSecondary, Reason: "missing"}
	}
	return *r.Primary, *r.Secondary, nil
}

// SourcesResponse is the result of a run over the configured sources.
type SourcesResponse struct {
	RunID uint `json:"run_id,omitempty"`
	report.Document
	Published *report.Published `json:"published,omitempty"`
}

// RunResponse is a persisted run.
type RunResponse struct {
	models.Run
	Counts match.Summary `json:"counts"`
}

// HandleReconcile reconciles the collections in the request body.
// @Summary Reconcile inline collections
// @Description Match every primary record against the secondary collection with tiered strategies.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param request body ReconcileRequest true "Collections"
// @Success 200 {object} report.Document "Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Missing collection"
// @Router /reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}

	opts, err := h.options(req.DateWindow, req.Workers)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	primary, secondary, err := req.collections()
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	rep, _, err := h.service.Reconcile(c.UserContext(), OriginInline, opts, primary, secondary)
	if err != nil {
		l.Error("Inline reconciliation failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report.NewDocument(rep))
}

// HandleReconcileSources reconciles the configured source collections.
// @Summary Reconcile configured sources
// @Description Load the configured exports, reconcile them and persist the run.
// @Tags reconcile
// @Produce json
// @Param date_window query string false "Date window override (e.g. 72h)"
// @Param publish query bool false "Upload JSON and CSV artifacts to storage"
// @Param refresh query bool false "Reload sources instead of using the cached snapshot"
// @Success 200 {object} SourcesResponse "Run"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Malformed source document"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile/sources [post]
func (h *Handler) HandleReconcileSources(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	opts, err := h.options(c.Query("date_window"), nil)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if c.QueryBool("refresh") {
		h.service.RefreshSources()
	}

	out, err := h.service.ReconcileSources(c.UserContext(), OriginSources, opts, c.QueryBool("publish"))
	if err != nil {
		l.Error("Source reconciliation failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(SourcesResponse{
		RunID:     out.RunID,
		Document:  report.NewDocument(out.Report),
		Published: out.Published,
	})
}

// HandleGetRun returns a persisted run.
// @Summary Get run
// @Description Get the summary and per-primary results of a persisted run.
// @Tags reconcile
// @Produce json
// @Param id path int true "Run ID"
// @Success 200 {object} RunResponse "Run"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 503 {object} map[string]string "Persistence disabled"
// @Router /reconcile/runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid run id"})
	}

	run, err := h.service.GetRun(c.UserContext(), uint(id))
	if err != nil {
		if !errors.Is(err, ErrRunNotFound) {
			logger.WithRayID(h.service.logger, c).Error("Failed to load run", zap.Uint64("run_id", id), zap.Error(err))
		}
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(RunResponse{Run: *run, Counts: run.Summary()})
}

// options applies request overrides to the configured engine options.
func (h *Handler) options(window string, workers *int) (match.Options, error) {
	opts := h.service.Options()
	if window != "" {
		d, err := time.ParseDuration(window)
		if err != nil {
			return opts, &match.ConfigurationError{Field: "date_window", Value: window, Reason: "not a duration"}
		}
		opts.DateWindow = d
	}
	if workers != nil {
		opts.Workers = *workers
	}
	return opts, opts.Validate()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, match.ErrConfiguration):
		return fiber.StatusBadRequest
	case errors.Is(err, match.ErrInputShape):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrRunNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrPersistenceDisabled), errors.Is(err, ErrPublishDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
