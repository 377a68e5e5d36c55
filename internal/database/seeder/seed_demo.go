package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"founder-match/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DemoSeeder inserts a small set of demo accounts and one open role so a
// freshly migrated database has something to match against. Re-running is a
// no-op: users are keyed by email, the job by creator and title.
type DemoSeeder struct{}

func (DemoSeeder) Name() string { return "demo" }

type demoUser struct {
	Name      string
	Email     string
	Role      string
	Skills    []string
	Expertise []string
	Interests []string
	History   []map[string]string
}

func (DemoSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "role", "profile_completed"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "creator_id", "title", "active"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []demoUser{
		{
			Name:      "Dana Founder",
			Email:     "dana@demo.local",
			Role:      "founder",
			Expertise: []string{"Fundraising", "Product Strategy"},
			Interests: []string{"Developer Tools"},
		},
		{
			Name:   "Evan Engineer",
			Email:  "evan@demo.local",
			Role:   "engineer",
			Skills: []string{"Go", "PostgreSQL", "Kubernetes"},
			History: []map[string]string{
				{"company": "Streamline", "title": "Backend Engineer", "duration": "3 years"},
			},
		},
		{
			Name:   "Maya Builder",
			Email:  "maya@demo.local",
			Role:   "both",
			Skills: []string{"TypeScript", "React", "Product"},
			History: []map[string]string{
				{"company": "Nimbus Labs", "title": "Founding Engineer", "duration": "2 years"},
			},
		},
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, u := range users {
		history, err := json.Marshal(u.History)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			ctx,
			`INSERT INTO users (id, name, email, password_hash, role, profile_completed, skills, business_expertise, interests, professional_history)
			 VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7, $8, $9)
			 ON CONFLICT (email) DO NOTHING`,
			uuid.New(), u.Name, u.Email, string(hash), u.Role,
			emptyIfNil(u.Skills), emptyIfNil(u.Expertise), emptyIfNil(u.Interests), history,
		)
		if err != nil {
			return err
		}
	}

	var founderID uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, "dana@demo.local").Scan(&founderID); err != nil {
		return fmt.Errorf("demo founder lookup: %w", err)
	}

	const jobTitle = "Founding Backend Engineer"
	var exists bool
	if err := tx.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM jobs WHERE creator_id = $1 AND title = $2)`,
		founderID, jobTitle,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		_, err = tx.Exec(
			ctx,
			`INSERT INTO jobs (id, creator_id, title, description, company_name, company_stage, skills, industry, remote, active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, TRUE)`,
			uuid.New(), founderID, jobTitle,
			"Own the backend of a developer-tools platform from day one.",
			"Demo Forge", "pre-seed",
			[]string{"Go", "PostgreSQL"}, []string{"Developer Tools"},
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
