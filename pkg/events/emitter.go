// Package events emits import lifecycle events. Emission is best-effort:
// callers log failures and carry on, a lost notification never fails an
// import.
package events

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

const (
	EventTypeImportPreviewed = "import.previewed"
	EventTypeImportCommitted = "import.committed"
)

// Emitter publishes import lifecycle events.
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitImportPreviewed emits a summary of a freshly built preview.
func (e *Emitter) EmitImportPreviewed(ctx context.Context, batchID string, items []models.PreviewItem) error {
	if e.producer == nil {
		return nil
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitImportPreviewed")
	defer span.End()

	event := &kafka.ImportEvent{
		EventType:   EventTypeImportPreviewed,
		BatchID:     batchID,
		RecordCount: len(items),
	}
	for _, item := range items {
		switch item.Outcome.Status {
		case models.MatchStatusMatched:
			event.MatchedCount++
		case models.MatchStatusMultipleMatches:
			event.AmbiguousCount++
		default:
			event.UnmatchedCount++
		}
		if item.IsPossibleDuplicate {
			event.DuplicateCount++
		}
	}

	if err := e.producer.PublishImportEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit import.previewed event")
		return err
	}
	return nil
}

// EmitImportCommitted emits the final record count of a committed batch.
func (e *Emitter) EmitImportCommitted(ctx context.Context, batchID string, committed int) error {
	if e.producer == nil {
		return nil
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitImportCommitted")
	defer span.End()

	event := &kafka.ImportEvent{
		EventType:      EventTypeImportCommitted,
		BatchID:        batchID,
		RecordCount:    committed,
		CommittedCount: committed,
	}

	if err := e.producer.PublishImportEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit import.committed event")
		return err
	}
	return nil
}
