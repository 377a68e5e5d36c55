package dto

import (
	"time"

	"founder-match/internal/domain/match"

	"github.com/google/uuid"
)

type MatchResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	FounderID   uuid.UUID `json:"founder_id"`
	Score       int       `json:"score"`
	Status      string    `json:"status"`
	Rationale   string    `json:"rationale"`

	FounderNotes   *string `json:"founder_notes,omitempty"`
	CandidateNotes *string `json:"candidate_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewMatchResponse(m match.Match) MatchResponse {
	return MatchResponse{
		ID:             m.ID,
		JobID:          m.JobID,
		CandidateID:    m.CandidateID,
		FounderID:      m.FounderID,
		Score:          m.Score,
		Status:         string(m.Status),
		Rationale:      m.Rationale,
		FounderNotes:   m.FounderNotes,
		CandidateNotes: m.CandidateNotes,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func NewMatchListResponse(ms []match.Match) []MatchResponse {
	out := make([]MatchResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewMatchResponse(m))
	}
	return out
}
