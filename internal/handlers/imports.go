package handlers

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/internal/repositories/leaverequest"
	"github.com/Ramsey-B/fern/pkg/events"
	"github.com/Ramsey-B/fern/pkg/importer"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// ImportHandler handles calendar import preview and commit endpoints.
// The preview is computed, never stored; commit re-resolves the batch and
// applies the operator's selections in one pass.
type ImportHandler struct {
	preview   *importer.PreviewService
	leaveRepo *leaverequest.Repository
	emitter   *events.Emitter
	logger    ectologger.Logger
}

// NewImportHandler creates a new import handler
func NewImportHandler(
	preview *importer.PreviewService,
	leaveRepo *leaverequest.Repository,
	emitter *events.Emitter,
	logger ectologger.Logger,
) *ImportHandler {
	return &ImportHandler{
		preview:   preview,
		leaveRepo: leaveRepo,
		emitter:   emitter,
		logger:    logger,
	}
}

// PreviewRequest carries the parsed external records for one calendar.
type PreviewRequest struct {
	DivisionID *string                      `json:"division_id,omitempty"`
	Records    []models.ExternalLeaveRecord `json:"records" validate:"required,min=1,dive"`
}

// PreviewResponse is the ordered, index-addressable preview list.
type PreviewResponse struct {
	BatchID string               `json:"batch_id"`
	Items   []models.PreviewItem `json:"items"`
}

// CommitRequest carries the original records plus the operator's
// selections against the preview they reviewed.
type CommitRequest struct {
	DivisionID *string                      `json:"division_id,omitempty"`
	Records    []models.ExternalLeaveRecord `json:"records" validate:"required,min=1,dive"`
	Selections []importer.Selection         `json:"selections" validate:"required,min=1,dive"`
}

// CommitResponse reports how many records were written.
type CommitResponse struct {
	BatchID   string `json:"batch_id"`
	Requested int    `json:"requested"`
	Committed int    `json:"committed"`
}

// Register registers import routes
func (h *ImportHandler) Register(g *echo.Group) {
	g.POST("/:calendar_id/preview", h.Preview)
	g.POST("/:calendar_id/commit", h.Commit)
}

// Preview resolves every record against the roster and returns the
// reviewable preview list.
func (h *ImportHandler) Preview(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "ImportHandler.Preview")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	calendarID := c.Param("calendar_id")
	if calendarID == "" {
		return BadRequest("missing calendar_id")
	}

	var req PreviewRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := h.preview.Preview(ctx, calendarID, req.DivisionID, req.Records)

	// best-effort, failures are logged by the emitter
	_ = h.emitter.EmitImportPreviewed(ctx, calendarID, items)

	return SuccessResponse(c, PreviewResponse{
		BatchID: calendarID,
		Items:   items,
	})
}

// Commit re-resolves the batch, converts the selected items into leave
// requests, and persists them.
func (h *ImportHandler) Commit(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "ImportHandler.Commit")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	calendarID := c.Param("calendar_id")
	if calendarID == "" {
		return BadRequest("missing calendar_id")
	}

	var req CommitRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := h.preview.Preview(ctx, calendarID, req.DivisionID, req.Records)

	inserts, err := importer.BuildInsertRecords(calendarID, items, req.Selections)
	if err != nil {
		return BadRequest(err.Error())
	}

	written, err := h.leaveRepo.InsertBatch(ctx, inserts)
	if err != nil {
		return err
	}

	_ = h.emitter.EmitImportCommitted(ctx, calendarID, written)

	return CreatedResponse(c, CommitResponse{
		BatchID:   calendarID,
		Requested: len(inserts),
		Committed: written,
	})
}
