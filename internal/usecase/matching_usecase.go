package usecase

import (
	"context"
	"errors"
	"log"

	"founder-match/internal/domain/directory"
	"founder-match/internal/oracle"
	"founder-match/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrUserNotFound = errors.New("user not found")
	ErrInternal     = errors.New("internal error")
)

// GenerationReport summarizes one batch run. Oracle failures are counted, not
// fatal; the run only aborts when the seed job/user itself is missing.
type GenerationReport struct {
	Evaluated      int `json:"evaluated"`
	Created        int `json:"created"`
	AlreadyMatched int `json:"already_matched"`
	BelowThreshold int `json:"below_threshold"`
	Failed         int `json:"failed"`
}

type MatchingUsecase interface {
	GenerateForJob(ctx context.Context, jobID uuid.UUID) (GenerationReport, error)
	GenerateForUser(ctx context.Context, userID uuid.UUID) (GenerationReport, error)
}

type Matching struct {
	dir     directory.Directory
	matches repository.MatchRepository
	oracle  oracle.Oracle
	logger  *log.Logger

	candidateLimit int
	scoreThreshold int
}

func NewMatchingUsecase(dir directory.Directory, matches repository.MatchRepository, o oracle.Oracle, logger *log.Logger, candidateLimit, scoreThreshold int) *Matching {
	if logger == nil {
		logger = log.Default()
	}
	if candidateLimit <= 0 {
		candidateLimit = 20
	}
	if scoreThreshold <= 0 {
		scoreThreshold = 40
	}
	return &Matching{
		dir:            dir,
		matches:        matches,
		oracle:         o,
		logger:         logger,
		candidateLimit: candidateLimit,
		scoreThreshold: scoreThreshold,
	}
}

func (u *Matching) GenerateForJob(ctx context.Context, jobID uuid.UUID) (GenerationReport, error) {
	if jobID == uuid.Nil {
		return GenerationReport{}, ErrJobNotFound
	}

	job, err := u.dir.FindJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, directory.ErrJobNotFound) {
			return GenerationReport{}, ErrJobNotFound
		}
		return GenerationReport{}, ErrInternal
	}

	candidates, err := u.dir.ListEligibleCandidates(ctx, job.CreatorID, u.candidateLimit)
	if err != nil {
		return GenerationReport{}, ErrInternal
	}

	var report GenerationReport
	for _, candidate := range candidates {
		u.evaluatePair(ctx, job, candidate, &report)
	}

	u.logger.Printf("[Matching] job=%s evaluated=%d created=%d existing=%d below=%d failed=%d",
		job.ID, report.Evaluated, report.Created, report.AlreadyMatched, report.BelowThreshold, report.Failed)
	return report, nil
}

func (u *Matching) GenerateForUser(ctx context.Context, userID uuid.UUID) (GenerationReport, error) {
	if userID == uuid.Nil {
		return GenerationReport{}, ErrUserNotFound
	}

	candidate, err := u.dir.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return GenerationReport{}, ErrUserNotFound
		}
		return GenerationReport{}, ErrInternal
	}

	jobs, err := u.dir.ListActiveJobs(ctx, candidate.ID, u.candidateLimit)
	if err != nil {
		return GenerationReport{}, ErrInternal
	}

	var report GenerationReport
	for _, job := range jobs {
		u.evaluatePair(ctx, job, candidate, &report)
	}

	u.logger.Printf("[Matching] user=%s evaluated=%d created=%d existing=%d below=%d failed=%d",
		candidate.ID, report.Evaluated, report.Created, report.AlreadyMatched, report.BelowThreshold, report.Failed)
	return report, nil
}

// evaluatePair runs the dedupe-score-create step for one (job, candidate)
// pair. Score and rationale are written once at creation; an existing match is
// never re-scored, and a score below threshold leaves no record at all.
func (u *Matching) evaluatePair(ctx context.Context, job directory.Job, candidate directory.User, report *GenerationReport) {
	report.Evaluated++

	exists, err := u.matches.ExistsByPair(ctx, job.ID, candidate.ID)
	if err != nil {
		u.logger.Printf("[Matching] dedupe check failed job=%s candidate=%s err=%v", job.ID, candidate.ID, err)
		report.Failed++
		return
	}
	if exists {
		report.AlreadyMatched++
		return
	}

	res, err := u.oracle.Score(ctx, job, candidate)
	if err != nil {
		u.logger.Printf("[Matching] oracle failed job=%s candidate=%s err=%v", job.ID, candidate.ID, err)
		report.Failed++
		return
	}

	if res.Score < u.scoreThreshold {
		report.BelowThreshold++
		return
	}

	created, err := u.matches.InsertIfAbsent(ctx, repository.MatchCreate{
		JobID:       job.ID,
		CandidateID: candidate.ID,
		Score:       res.Score,
		Rationale:   res.Rationale,
	})
	if err != nil {
		u.logger.Printf("[Matching] insert failed job=%s candidate=%s err=%v", job.ID, candidate.ID, err)
		report.Failed++
		return
	}
	if !created {
		// Lost the race to a concurrent run; the pair is matched either way.
		report.AlreadyMatched++
		return
	}
	report.Created++
}
