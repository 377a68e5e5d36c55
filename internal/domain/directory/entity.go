package directory

import (
	"time"

	"github.com/google/uuid"
)

// Role a user plays on the platform. Users with RoleEngineer or RoleBoth are
// matchable against job postings; founders post the jobs.
type Role string

const (
	RoleFounder  Role = "founder"
	RoleEngineer Role = "engineer"
	RoleBoth     Role = "both"
)

func (r Role) Matchable() bool {
	return r == RoleEngineer || r == RoleBoth
}

type ProfessionalEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartYear   int    `json:"start_year"`
	EndYear     int    `json:"end_year,omitempty"`
	Description string `json:"description,omitempty"`
}

type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Year        int    `json:"year,omitempty"`
}

type User struct {
	ID                  uuid.UUID
	Name                string
	Email               string
	Role                Role
	ProfileCompleted    bool
	Skills              []string
	BusinessExpertise   []string
	Interests           []string
	ProfessionalHistory []ProfessionalEntry
	Education           []EducationEntry
	Achievements        []string
	CreatedAt           time.Time
}

type Job struct {
	ID           uuid.UUID
	CreatorID    uuid.UUID
	Title        string
	Description  string
	CompanyName  string
	CompanyStage string
	Skills       []string
	Industry     []string
	Remote       bool
	Active       bool
	CreatedAt    time.Time
}
