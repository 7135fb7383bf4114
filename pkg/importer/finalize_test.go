package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
)

func previewItem(outcome models.MatchOutcome) models.PreviewItem {
	return models.PreviewItem{
		Record: models.ExternalLeaveRecord{
			GivenName:  "Wilbur",
			FamilyName: "Smith",
			EventDate:  time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
			LeaveKind:  models.LeaveKindPersonal,
		},
		Outcome:           outcome,
		TargetStatus:      models.RequestStatusApproved,
		TargetRequestedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		BatchID:           "cal-1",
	}
}

func TestBuildInsertRecords(t *testing.T) {
	memberID := "member-1"
	matched := models.RosterMember{
		ID:             &memberID,
		EmployeeNumber: 101,
		GivenName:      "Wilbur",
		FamilyName:     "Smith",
		Status:         models.MemberStatusActive,
	}

	t.Run("matched item converts directly", func(t *testing.T) {
		items := []models.PreviewItem{previewItem(models.Matched(matched))}

		inserts, err := BuildInsertRecords("cal-1", items, []Selection{{Index: 0}})
		require.NoError(t, err)
		require.Len(t, inserts, 1)
		assert.Equal(t, &memberID, inserts[0].MemberID)
		assert.Equal(t, 101, inserts[0].EmployeeNumber)
		assert.Equal(t, "cal-1", inserts[0].CalendarID)
		assert.Equal(t, models.LeaveKindPersonal, inserts[0].LeaveKind)
		assert.Equal(t, models.RequestStatusApproved, inserts[0].Status)
		assert.Equal(t, models.ImportSource, inserts[0].Source)
	})

	t.Run("ambiguous item uses the chosen candidate", func(t *testing.T) {
		other := models.RosterMember{EmployeeNumber: 102, GivenName: "Wilbert", FamilyName: "Smith"}
		items := []models.PreviewItem{previewItem(models.MultipleMatches([]models.MatchCandidate{
			{Member: matched, Confidence: 72},
			{Member: other, Confidence: 68},
		}))}

		inserts, err := BuildInsertRecords("cal-1", items, []Selection{{Index: 0, ChosenEmployeeNumber: 102}})
		require.NoError(t, err)
		require.Len(t, inserts, 1)
		assert.Equal(t, 102, inserts[0].EmployeeNumber)
		assert.Nil(t, inserts[0].MemberID)
	})

	t.Run("ambiguous item without a choice is rejected", func(t *testing.T) {
		items := []models.PreviewItem{previewItem(models.MultipleMatches([]models.MatchCandidate{
			{Member: matched, Confidence: 72},
		}))}

		_, err := BuildInsertRecords("cal-1", items, []Selection{{Index: 0}})
		assert.Error(t, err)
	})

	t.Run("chosen candidate must be in the list", func(t *testing.T) {
		items := []models.PreviewItem{previewItem(models.MultipleMatches([]models.MatchCandidate{
			{Member: matched, Confidence: 72},
		}))}

		_, err := BuildInsertRecords("cal-1", items, []Selection{{Index: 0, ChosenEmployeeNumber: 999}})
		assert.Error(t, err)
	})

	t.Run("unmatched item is rejected", func(t *testing.T) {
		items := []models.PreviewItem{previewItem(models.Unmatched())}

		_, err := BuildInsertRecords("cal-1", items, []Selection{{Index: 0}})
		assert.Error(t, err)
	})

	t.Run("index out of range", func(t *testing.T) {
		items := []models.PreviewItem{previewItem(models.Matched(matched))}

		_, err := BuildInsertRecords("cal-1", items, []Selection{{Index: 3}})
		assert.Error(t, err)
	})

	t.Run("empty leave kind defaults to vacation", func(t *testing.T) {
		item := previewItem(models.Matched(matched))
		item.Record.LeaveKind = ""

		inserts, err := BuildInsertRecords("cal-1", []models.PreviewItem{item}, []Selection{{Index: 0}})
		require.NoError(t, err)
		assert.Equal(t, models.LeaveKindVacation, inserts[0].LeaveKind)
	})
}
