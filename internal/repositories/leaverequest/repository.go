// Package leaverequest persists leave requests produced by committed
// imports and answers the duplicate checks the preview runs.
package leaverequest

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Repository handles leave request persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new leave request repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// HasExistingRecord reports whether a leave request already exists for
// the identity, date, and import batch. Identity prefers the internal
// member id; the employee number is the fallback when the id is unknown.
// It satisfies the import pipeline's DuplicateChecker interface.
func (r *Repository) HasExistingRecord(ctx context.Context, ref models.MemberRef, eventDate time.Time, batchID string) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "leaverequest.Repository.HasExistingRecord")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("COUNT(1)")
	sb.From("leave_requests")
	sb.Where(
		sb.Equal("event_date", eventDate),
		sb.Equal("calendar_id", batchID),
	)
	if ref.MemberID != nil {
		sb.Where(sb.Equal("member_id", *ref.MemberID))
	} else {
		sb.Where(sb.Equal("employee_number", ref.EmployeeNumber))
	}

	query, args := sb.Build()
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"calendar_id":     batchID,
			"employee_number": ref.EmployeeNumber,
		}).Error("Failed to check for existing leave request")
		return false, httperror.NewHTTPError(http.StatusInternalServerError, "failed to check for existing leave request")
	}

	return count > 0, nil
}

// InsertBatch inserts committed leave requests in one statement. Rows
// colliding with the duplicate-check key are skipped, and the number of
// rows actually written is returned.
func (r *Repository) InsertBatch(ctx context.Context, inserts []models.LeaveRequestInsert) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "leaverequest.Repository.InsertBatch")
	defer span.End()

	if len(inserts) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("leave_requests")
	sb.Cols("id", "member_id", "employee_number", "calendar_id", "event_date", "leave_kind", "status", "requested_at", "source", "created_at")
	for _, insert := range inserts {
		sb.Values(
			uuid.New().String(),
			insert.MemberID,
			insert.EmployeeNumber,
			insert.CalendarID,
			insert.EventDate,
			insert.LeaveKind,
			insert.Status,
			insert.RequestedAt,
			insert.Source,
			now,
		)
	}

	query, args := sb.Build()
	query += " ON CONFLICT DO NOTHING"

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"count": len(inserts),
		}).Error("Failed to insert leave requests")
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to insert leave requests")
	}

	written, err := result.RowsAffected()
	if err != nil {
		// driver reported success; treat the whole batch as written
		written = int64(len(inserts))
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"requested": len(inserts),
		"written":   written,
	}).Debug("Inserted leave requests")

	return int(written), nil
}
