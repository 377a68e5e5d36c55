package oracle

import (
	"context"
	"errors"

	"founder-match/internal/domain/directory"
)

// ErrUnavailable signals a transient scoring failure. Batch match generation
// treats it as skip-this-candidate-and-continue.
var ErrUnavailable = errors.New("oracle unavailable")

type Result struct {
	Score     int
	Rationale string
}

// Oracle scores compatibility between a job and a candidate on a 0-100 scale
// with a short rationale. Its reasoning is opaque to the matching core.
type Oracle interface {
	Score(ctx context.Context, job directory.Job, candidate directory.User) (Result, error)
}
