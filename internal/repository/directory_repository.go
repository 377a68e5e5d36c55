package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"founder-match/internal/database"
	"founder-match/internal/domain/directory"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostgresDirectory is the read-only view of users and jobs the matching core
// works against.
type PostgresDirectory struct {
	db database.DB
}

func NewPostgresDirectory(db database.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

const directoryUserColumns = `id, name, email, role, profile_completed, skills,
	business_expertise, interests, professional_history, education, achievements, created_at`

const directoryJobColumns = `id, creator_id, title, description, company_name,
	company_stage, skills, industry, remote, active, created_at`

func (r *PostgresDirectory) FindUser(ctx context.Context, id uuid.UUID) (directory.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+directoryUserColumns+` FROM users WHERE id = $1`,
		id,
	)
	return scanDirectoryUser(row)
}

func (r *PostgresDirectory) FindJob(ctx context.Context, id uuid.UUID) (directory.Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+directoryJobColumns+` FROM jobs WHERE id = $1`,
		id,
	)
	return scanDirectoryJob(row)
}

func (r *PostgresDirectory) ListEligibleCandidates(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]directory.User, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+directoryUserColumns+`
		 FROM users
		 WHERE id <> $1
		   AND profile_completed = TRUE
		   AND role IN ('engineer', 'both')
		 ORDER BY created_at ASC
		 LIMIT $2`,
		excludeUserID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]directory.User, 0)
	for rows.Next() {
		u, err := scanDirectoryUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDirectory) ListActiveJobs(ctx context.Context, excludeCreatorID uuid.UUID, limit int) ([]directory.Job, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+directoryJobColumns+`
		 FROM jobs
		 WHERE creator_id <> $1 AND active = TRUE
		 ORDER BY created_at ASC
		 LIMIT $2`,
		excludeCreatorID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]directory.Job, 0)
	for rows.Next() {
		j, err := scanDirectoryJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type directoryRow interface {
	Scan(dest ...any) error
}

func scanDirectoryUser(row directoryRow) (directory.User, error) {
	var u directory.User
	var role string
	var history, education []byte

	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &role, &u.ProfileCompleted, &u.Skills,
		&u.BusinessExpertise, &u.Interests, &history, &education, &u.Achievements, &u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return directory.User{}, directory.ErrUserNotFound
		}
		return directory.User{}, err
	}

	u.Role = directory.Role(role)
	if len(history) > 0 {
		if err := json.Unmarshal(history, &u.ProfessionalHistory); err != nil {
			return directory.User{}, err
		}
	}
	if len(education) > 0 {
		if err := json.Unmarshal(education, &u.Education); err != nil {
			return directory.User{}, err
		}
	}
	return u, nil
}

func scanDirectoryJob(row directoryRow) (directory.Job, error) {
	var j directory.Job
	err := row.Scan(
		&j.ID, &j.CreatorID, &j.Title, &j.Description, &j.CompanyName,
		&j.CompanyStage, &j.Skills, &j.Industry, &j.Remote, &j.Active, &j.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return directory.Job{}, directory.ErrJobNotFound
		}
		return directory.Job{}, err
	}
	return j, nil
}
