package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"founder-match/internal/database"
	"founder-match/internal/domain/match"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MatchCreate struct {
	JobID       uuid.UUID
	CandidateID uuid.UUID
	Score       int
	Rationale   string
}

// StatusUpdate applies a new status plus at most one party's note. A nil note
// leaves the stored note untouched.
type StatusUpdate struct {
	Status        match.Status
	FounderNote   *string
	CandidateNote *string
}

type MatchRepository interface {
	// InsertIfAbsent creates the match unless one already exists for the
	// (job, candidate) pair. Returns false when the pair was already present;
	// the unique constraint makes check-and-create race-free.
	InsertIfAbsent(ctx context.Context, m MatchCreate) (bool, error)

	ExistsByPair(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (match.Match, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]match.Match, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]match.Match, error)
	ListAcceptedByParticipant(ctx context.Context, userID uuid.UUID) ([]match.Match, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) error
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

const matchColumns = `m.id, m.job_id, m.candidate_id, j.creator_id, m.score, m.status,
	m.rationale, m.founder_notes, m.candidate_notes, m.created_at, m.updated_at`

func (r *PostgresMatchRepository) InsertIfAbsent(ctx context.Context, m MatchCreate) (bool, error) {
	if m.JobID == uuid.Nil || m.CandidateID == uuid.Nil {
		return false, errors.New("match requires job and candidate ids")
	}

	now := time.Now().UTC()
	affected, err := r.db.Exec(ctx,
		`INSERT INTO matches (id, job_id, candidate_id, score, status, rationale, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
		 ON CONFLICT (job_id, candidate_id) DO NOTHING`,
		uuid.New(),
		m.JobID,
		m.CandidateID,
		m.Score,
		string(match.StatusPending),
		m.Rationale,
		now,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresMatchRepository) ExistsByPair(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM matches WHERE job_id = $1 AND candidate_id = $2)`,
		jobID, candidateID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresMatchRepository) FindByID(ctx context.Context, id uuid.UUID) (match.Match, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchColumns+`
		 FROM matches m
		 JOIN jobs j ON j.id = m.job_id
		 WHERE m.id = $1`,
		id,
	)
	return scanMatch(row)
}

func (r *PostgresMatchRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]match.Match, error) {
	return r.list(ctx,
		`SELECT `+matchColumns+`
		 FROM matches m
		 JOIN jobs j ON j.id = m.job_id
		 WHERE m.job_id = $1
		 ORDER BY m.score DESC, m.created_at DESC`,
		jobID,
	)
}

func (r *PostgresMatchRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]match.Match, error) {
	return r.list(ctx,
		`SELECT `+matchColumns+`
		 FROM matches m
		 JOIN jobs j ON j.id = m.job_id
		 WHERE m.candidate_id = $1
		 ORDER BY m.score DESC, m.created_at DESC`,
		candidateID,
	)
}

func (r *PostgresMatchRepository) ListAcceptedByParticipant(ctx context.Context, userID uuid.UUID) ([]match.Match, error) {
	return r.list(ctx,
		`SELECT `+matchColumns+`
		 FROM matches m
		 JOIN jobs j ON j.id = m.job_id
		 WHERE m.status = $1 AND (m.candidate_id = $2 OR j.creator_id = $2)
		 ORDER BY m.created_at DESC`,
		string(match.StatusAccepted), userID,
	)
}

func (r *PostgresMatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE matches
		 SET status = $2,
			 founder_notes = COALESCE($3, founder_notes),
			 candidate_notes = COALESCE($4, candidate_notes),
			 updated_at = $5
		 WHERE id = $1`,
		id,
		string(upd.Status),
		upd.FounderNote,
		upd.CandidateNote,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return match.ErrNotFound
	}
	return nil
}

func (r *PostgresMatchRepository) list(ctx context.Context, query string, args ...any) ([]match.Match, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type matchRow interface {
	Scan(dest ...any) error
}

func scanMatch(row matchRow) (match.Match, error) {
	var m match.Match
	var status string
	err := row.Scan(
		&m.ID, &m.JobID, &m.CandidateID, &m.FounderID, &m.Score, &status,
		&m.Rationale, &m.FounderNotes, &m.CandidateNotes, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return match.Match{}, match.ErrNotFound
		}
		return match.Match{}, err
	}
	m.Status = match.Status(status)
	return m, nil
}
