package importer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/matching"
	"github.com/Ramsey-B/fern/pkg/models"
)

type fakeRoster struct {
	mu      sync.Mutex
	members []models.RosterMember
	// family fragments that should fail the search
	failOn map[string]error
	calls  int
}

func (f *fakeRoster) SearchMembers(_ context.Context, _, familyFragment string, _ *string) ([]models.RosterMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err, ok := f.failOn[familyFragment]; ok {
		return nil, err
	}
	return f.members, nil
}

type fakeDuplicates struct {
	exists bool
	err    error
}

func (f *fakeDuplicates) HasExistingRecord(_ context.Context, _ models.MemberRef, _ time.Time, _ string) (bool, error) {
	return f.exists, f.err
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func newService(roster *fakeRoster, duplicates *fakeDuplicates) *PreviewService {
	classifier := matching.NewClassifier(matching.NewDefaultScorer())
	return NewPreviewService(testLogger(), roster, duplicates, classifier, 2)
}

func record(given, family string) models.ExternalLeaveRecord {
	return models.ExternalLeaveRecord{
		GivenName:  given,
		FamilyName: family,
		EventDate:  time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
		LeaveKind:  models.LeaveKindVacation,
		CreatedAt:  time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestPreviewService_Preview(t *testing.T) {
	roster := &fakeRoster{members: []models.RosterMember{
		{EmployeeNumber: 101, GivenName: "Wilbur", FamilyName: "Smith", Status: models.MemberStatusActive},
		{EmployeeNumber: 102, GivenName: "Greta", FamilyName: "Voss", Status: models.MemberStatusActive},
	}}

	t.Run("preview preserves input order and length", func(t *testing.T) {
		service := newService(roster, &fakeDuplicates{})
		records := []models.ExternalLeaveRecord{
			record("Wilbur", "Smith"),
			record("Greta", "Voss"),
			record("Nobody", "Known"),
		}

		items := service.Preview(context.Background(), "cal-1", nil, records)
		require.Len(t, items, 3)
		assert.Equal(t, "Wilbur", items[0].Record.GivenName)
		assert.Equal(t, models.MatchStatusMatched, items[0].Outcome.Status)
		assert.Equal(t, "Greta", items[1].Record.GivenName)
		assert.Equal(t, models.MatchStatusMatched, items[1].Outcome.Status)
		assert.Equal(t, models.MatchStatusUnmatched, items[2].Outcome.Status)
		for _, item := range items {
			assert.Equal(t, "cal-1", item.BatchID)
		}
	})

	t.Run("blank names short-circuit without a roster query", func(t *testing.T) {
		roster := &fakeRoster{}
		service := newService(roster, &fakeDuplicates{})

		items := service.Preview(context.Background(), "cal-1", nil, []models.ExternalLeaveRecord{
			record("", ""),
			record("  ", "--"),
		})
		require.Len(t, items, 2)
		assert.Equal(t, models.MatchStatusUnmatched, items[0].Outcome.Status)
		assert.Equal(t, models.MatchStatusUnmatched, items[1].Outcome.Status)
		assert.Equal(t, 0, roster.calls)
	})

	t.Run("roster failure degrades only the failing record", func(t *testing.T) {
		roster := &fakeRoster{
			members: []models.RosterMember{
				{EmployeeNumber: 101, GivenName: "Wilbur", FamilyName: "Smith", Status: models.MemberStatusActive},
			},
			failOn: map[string]error{"Voss": errors.New("connection reset")},
		}
		service := newService(roster, &fakeDuplicates{})

		items := service.Preview(context.Background(), "cal-1", nil, []models.ExternalLeaveRecord{
			record("Wilbur", "Smith"),
			record("Greta", "Voss"),
		})
		require.Len(t, items, 2)
		assert.Equal(t, models.MatchStatusMatched, items[0].Outcome.Status)
		assert.Equal(t, models.MatchStatusUnmatched, items[1].Outcome.Status)
	})

	t.Run("matched record gets a duplicate check", func(t *testing.T) {
		service := newService(roster, &fakeDuplicates{exists: true})

		items := service.Preview(context.Background(), "cal-1", nil, []models.ExternalLeaveRecord{
			record("Wilbur", "Smith"),
		})
		require.Len(t, items, 1)
		assert.True(t, items[0].IsPossibleDuplicate)
	})

	t.Run("duplicate check failure is fail-open", func(t *testing.T) {
		service := newService(roster, &fakeDuplicates{err: errors.New("timeout")})

		items := service.Preview(context.Background(), "cal-1", nil, []models.ExternalLeaveRecord{
			record("Wilbur", "Smith"),
		})
		require.Len(t, items, 1)
		assert.Equal(t, models.MatchStatusMatched, items[0].Outcome.Status)
		assert.False(t, items[0].IsPossibleDuplicate)
	})

	t.Run("unmatched records skip the duplicate check", func(t *testing.T) {
		service := newService(roster, &fakeDuplicates{exists: true})

		items := service.Preview(context.Background(), "cal-1", nil, []models.ExternalLeaveRecord{
			record("Nobody", "Known"),
		})
		require.Len(t, items, 1)
		assert.False(t, items[0].IsPossibleDuplicate)
	})

	t.Run("cancelled context still yields a full-length preview", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		service := newService(roster, &fakeDuplicates{})
		items := service.Preview(ctx, "cal-1", nil, []models.ExternalLeaveRecord{
			record("Wilbur", "Smith"),
			record("Greta", "Voss"),
		})
		require.Len(t, items, 2)
	})
}

func TestPreviewService_DerivedFields(t *testing.T) {
	service := newService(&fakeRoster{}, &fakeDuplicates{})
	originalRequest := time.Date(2025, 3, 2, 8, 30, 0, 0, time.UTC)

	t.Run("waitlisted record keeps its original request time", func(t *testing.T) {
		rec := record("Nobody", "Known")
		rec.IsWaitlisted = true
		rec.OriginalRequestDate = &originalRequest

		items := service.Preview(context.Background(), "cal-1", nil, []models.ExternalLeaveRecord{rec})
		require.Len(t, items, 1)
		assert.Equal(t, models.RequestStatusWaitlisted, items[0].TargetStatus)
		assert.Equal(t, originalRequest, items[0].TargetRequestedAt)
	})

	t.Run("approved record uses its created time", func(t *testing.T) {
		rec := record("Nobody", "Known")
		rec.OriginalRequestDate = &originalRequest // ignored when not waitlisted

		items := service.Preview(context.Background(), "cal-1", nil, []models.ExternalLeaveRecord{rec})
		require.Len(t, items, 1)
		assert.Equal(t, models.RequestStatusApproved, items[0].TargetStatus)
		assert.Equal(t, rec.CreatedAt, items[0].TargetRequestedAt)
	})
}
