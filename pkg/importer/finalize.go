package importer

import (
	"github.com/pkg/errors"

	"github.com/Ramsey-B/fern/pkg/models"
)

// Selection identifies one preview item the operator approved for import.
// ChosenEmployeeNumber is required for ambiguous items and picks the
// candidate; it is ignored for items that matched on their own.
type Selection struct {
	Index                int `json:"index" validate:"gte=0"`
	ChosenEmployeeNumber int `json:"chosen_employee_number,omitempty"`
}

// BuildInsertRecords converts approved preview items into
// persistence-ready leave requests. Unmatched items and ambiguous items
// without an operator choice are rejected; nothing about the preview is
// mutated.
func BuildInsertRecords(batchID string, items []models.PreviewItem, selections []Selection) ([]models.LeaveRequestInsert, error) {
	inserts := make([]models.LeaveRequestInsert, 0, len(selections))
	for _, selection := range selections {
		if selection.Index < 0 || selection.Index >= len(items) {
			return nil, errors.Errorf("selection index %d out of range for %d preview items", selection.Index, len(items))
		}
		item := items[selection.Index]

		member, err := resolveMember(item, selection)
		if err != nil {
			return nil, errors.Wrapf(err, "selection index %d", selection.Index)
		}

		leaveKind := item.Record.LeaveKind
		if leaveKind == "" {
			leaveKind = models.LeaveKindVacation
		}

		inserts = append(inserts, models.LeaveRequestInsert{
			MemberID:       member.ID,
			EmployeeNumber: member.EmployeeNumber,
			CalendarID:     batchID,
			EventDate:      item.Record.EventDate,
			LeaveKind:      leaveKind,
			Status:         item.TargetStatus,
			RequestedAt:    item.TargetRequestedAt,
			Source:         models.ImportSource,
		})
	}
	return inserts, nil
}

// resolveMember returns the member identity a selection commits to.
func resolveMember(item models.PreviewItem, selection Selection) (*models.RosterMember, error) {
	switch item.Outcome.Status {
	case models.MatchStatusMatched:
		return item.Outcome.Member, nil
	case models.MatchStatusMultipleMatches:
		if selection.ChosenEmployeeNumber == 0 {
			return nil, errors.New("ambiguous item selected without a chosen candidate")
		}
		for i := range item.Outcome.Candidates {
			if item.Outcome.Candidates[i].Member.EmployeeNumber == selection.ChosenEmployeeNumber {
				return &item.Outcome.Candidates[i].Member, nil
			}
		}
		return nil, errors.Errorf("chosen employee number %d is not a candidate", selection.ChosenEmployeeNumber)
	default:
		return nil, errors.New("unmatched item cannot be imported")
	}
}
