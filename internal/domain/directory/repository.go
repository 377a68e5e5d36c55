package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrUserNotFound = errors.New("user not found")
)

// Directory is the read-only source of job and user records the matching core
// resolves identities against. Writes go through other parts of the system.
type Directory interface {
	FindJob(ctx context.Context, id uuid.UUID) (Job, error)
	FindUser(ctx context.Context, id uuid.UUID) (User, error)

	// ListEligibleCandidates returns profile-completed users with a matchable
	// role, excluding excludeUserID, up to limit.
	ListEligibleCandidates(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]User, error)

	// ListActiveJobs returns active jobs not created by excludeCreatorID, up to limit.
	ListActiveJobs(ctx context.Context, excludeCreatorID uuid.UUID, limit int) ([]Job, error)
}
