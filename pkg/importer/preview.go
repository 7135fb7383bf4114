// Package importer drives the calendar-import pipeline: it resolves each
// external record against the roster, flags likely duplicates, and builds
// the preview an operator reviews before anything is written.
package importer

import (
	"context"
	"sync"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/matching"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/names"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// DefaultWorkerCount bounds batch concurrency when no count is configured.
const DefaultWorkerCount = 4

// RosterSearcher is the narrow roster lookup the pipeline consumes.
type RosterSearcher interface {
	SearchMembers(ctx context.Context, givenFragment, familyFragment string, divisionID *string) ([]models.RosterMember, error)
}

// DuplicateChecker asks the leave-request store whether an equivalent
// record already exists for an identity, date, and import batch.
type DuplicateChecker interface {
	HasExistingRecord(ctx context.Context, ref models.MemberRef, eventDate time.Time, batchID string) (bool, error)
}

// PreviewService resolves a batch of external records into preview items.
type PreviewService struct {
	logger     ectologger.Logger
	roster     RosterSearcher
	duplicates DuplicateChecker
	classifier *matching.Classifier
	workers    int
}

// NewPreviewService creates a PreviewService. workerCount values below 1
// fall back to DefaultWorkerCount.
func NewPreviewService(
	logger ectologger.Logger,
	roster RosterSearcher,
	duplicates DuplicateChecker,
	classifier *matching.Classifier,
	workerCount int,
) *PreviewService {
	if workerCount < 1 {
		workerCount = DefaultWorkerCount
	}
	return &PreviewService{
		logger:     logger,
		roster:     roster,
		duplicates: duplicates,
		classifier: classifier,
		workers:    workerCount,
	}
}

// Preview resolves every record in the batch concurrently and returns one
// preview item per input record, in input order. Per-record failures
// degrade that item and are logged; the returned slice always has the
// same length as records.
func (s *PreviewService) Preview(ctx context.Context, batchID string, divisionID *string, records []models.ExternalLeaveRecord) []models.PreviewItem {
	ctx, span := tracing.StartSpan(ctx, "importer.PreviewService.Preview")
	defer span.End()

	log := s.logger.WithContext(ctx).WithFields(map[string]any{
		"batch_id":     batchID,
		"record_count": len(records),
	})
	log.Info("Building import preview")

	items := make([]models.PreviewItem, len(records))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i := range records {
		if ctx.Err() != nil {
			// operator aborted the import; degrade the rest without
			// touching the stores
			items[i] = s.degradedItem(batchID, records[i])
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			items[i] = s.previewOne(ctx, batchID, divisionID, records[i])
		}(i)
	}
	wg.Wait()

	log.Info("Import preview built")
	return items
}

// previewOne resolves a single record. It never returns an error: lookup
// failures degrade the item to its best-known outcome.
func (s *PreviewService) previewOne(ctx context.Context, batchID string, divisionID *string, record models.ExternalLeaveRecord) models.PreviewItem {
	ctx, span := tracing.StartSpan(ctx, "importer.PreviewService.previewOne")
	defer span.End()

	item := s.degradedItem(batchID, record)

	given := names.Normalize(record.GivenName)
	family := names.Normalize(record.FamilyName)
	if given == "" && family == "" {
		// no signal to match on; skip the roster entirely
		return item
	}

	candidates, err := s.roster.SearchMembers(ctx, record.GivenName, record.FamilyName, divisionID)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"batch_id":    batchID,
			"given_name":  record.GivenName,
			"family_name": record.FamilyName,
		}).Error("Roster search failed, marking record unmatched")
		return item
	}

	item.Outcome = s.classifier.Classify(record.GivenName, record.FamilyName, candidates)

	if item.Outcome.Status == models.MatchStatusMatched {
		item.IsPossibleDuplicate = s.checkDuplicate(ctx, batchID, item.Outcome.Member, record)
	}
	return item
}

// checkDuplicate is fail-open: a missed duplicate is reviewable later, an
// aborted import is not.
func (s *PreviewService) checkDuplicate(ctx context.Context, batchID string, member *models.RosterMember, record models.ExternalLeaveRecord) bool {
	exists, err := s.duplicates.HasExistingRecord(ctx, member.Ref(), record.EventDate, batchID)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"batch_id":        batchID,
			"employee_number": member.EmployeeNumber,
			"event_date":      record.EventDate,
		}).Error("Duplicate check failed, assuming no duplicate")
		return false
	}
	return exists
}

// degradedItem builds the item shell every record starts from: Unmatched,
// no duplicate flag, derived status and request time filled in.
func (s *PreviewService) degradedItem(batchID string, record models.ExternalLeaveRecord) models.PreviewItem {
	return models.PreviewItem{
		Record:            record,
		Outcome:           models.Unmatched(),
		TargetStatus:      targetStatus(record),
		TargetRequestedAt: targetRequestedAt(record),
		BatchID:           batchID,
	}
}

func targetStatus(record models.ExternalLeaveRecord) string {
	if record.IsWaitlisted {
		return models.RequestStatusWaitlisted
	}
	return models.RequestStatusApproved
}

// targetRequestedAt preserves the original request time for waitlisted
// records when the source kept it; waitlist position depends on it.
func targetRequestedAt(record models.ExternalLeaveRecord) time.Time {
	if record.IsWaitlisted && record.OriginalRequestDate != nil {
		return *record.OriginalRequestDate
	}
	return record.CreatedAt
}
