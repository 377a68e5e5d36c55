package match

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("match not found")

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusArchived Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusArchived:
		return true
	}
	return false
}

// Match is the persisted record of a scored relationship between one job and
// one candidate. At most one match exists per (job, candidate) pair; score and
// rationale are written once at creation and never recomputed.
type Match struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	CandidateID uuid.UUID

	// FounderID is the job creator, resolved by joining the job at read time.
	FounderID uuid.UUID

	Score     int
	Status    Status
	Rationale string

	FounderNotes   *string
	CandidateNotes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m Match) IsParticipant(userID uuid.UUID) bool {
	return userID != uuid.Nil && (userID == m.FounderID || userID == m.CandidateID)
}

func (m Match) OtherParty(userID uuid.UUID) (uuid.UUID, bool) {
	if userID == m.FounderID {
		return m.CandidateID, true
	}
	if userID == m.CandidateID {
		return m.FounderID, true
	}
	return uuid.Nil, false
}
