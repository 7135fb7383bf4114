package models

import "time"

// PreviewItem is the proposed, not-yet-committed result of matching one
// external record against the roster. The review UI surfaces these for
// operator confirmation; nothing is persisted until a commit.
type PreviewItem struct {
	Record              ExternalLeaveRecord `json:"record"`
	Outcome             MatchOutcome        `json:"outcome"`
	IsPossibleDuplicate bool                `json:"is_possible_duplicate"`
	TargetStatus        string              `json:"target_status"`
	TargetRequestedAt   time.Time           `json:"target_requested_at"`
	BatchID             string              `json:"batch_id"`
}
