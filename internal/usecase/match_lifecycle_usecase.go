package usecase

import (
	"context"
	"errors"
	"strings"

	"founder-match/internal/domain/directory"
	"founder-match/internal/domain/match"
	"founder-match/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrNotParticipant = errors.New("not a match participant")
	ErrInvalidStatus  = errors.New("invalid match status")
)

// MatchNotifier pushes lifecycle events to connected clients. Implementations
// must not block.
type MatchNotifier interface {
	MatchUpdated(userID uuid.UUID, m match.Match)
}

type MatchLifecycleUsecase interface {
	GetMatch(ctx context.Context, matchID, actorID uuid.UUID) (match.Match, error)
	ListForJob(ctx context.Context, jobID, actorID uuid.UUID) ([]match.Match, error)
	ListForUser(ctx context.Context, actorID uuid.UUID) ([]match.Match, error)
	UpdateStatus(ctx context.Context, matchID, actorID uuid.UUID, newStatus string, note *string) (match.Match, error)
}

type MatchLifecycle struct {
	dir      directory.Directory
	matches  repository.MatchRepository
	notifier MatchNotifier
}

func NewMatchLifecycleUsecase(dir directory.Directory, matches repository.MatchRepository, notifier MatchNotifier) *MatchLifecycle {
	return &MatchLifecycle{dir: dir, matches: matches, notifier: notifier}
}

func (u *MatchLifecycle) GetMatch(ctx context.Context, matchID, actorID uuid.UUID) (match.Match, error) {
	m, err := u.findMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if !m.IsParticipant(actorID) {
		return match.Match{}, ErrNotParticipant
	}
	return m, nil
}

// ListForJob returns the job's matches sorted by score descending. Only the
// job's creator may list them.
func (u *MatchLifecycle) ListForJob(ctx context.Context, jobID, actorID uuid.UUID) ([]match.Match, error) {
	if jobID == uuid.Nil {
		return nil, ErrJobNotFound
	}

	job, err := u.dir.FindJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, directory.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}
	if job.CreatorID != actorID {
		return nil, ErrNotParticipant
	}

	matches, err := u.matches.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return matches, nil
}

func (u *MatchLifecycle) ListForUser(ctx context.Context, actorID uuid.UUID) ([]match.Match, error) {
	if actorID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	matches, err := u.matches.ListByCandidate(ctx, actorID)
	if err != nil {
		return nil, ErrInternal
	}
	return matches, nil
}

// UpdateStatus applies any valid status value; transitions are deliberately
// unrestricted (accepted can move back to pending). The note, when present,
// lands on the caller's own field only.
func (u *MatchLifecycle) UpdateStatus(ctx context.Context, matchID, actorID uuid.UUID, newStatus string, note *string) (match.Match, error) {
	status := match.Status(strings.TrimSpace(newStatus))
	if !status.Valid() {
		return match.Match{}, ErrInvalidStatus
	}

	m, err := u.findMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if !m.IsParticipant(actorID) {
		return match.Match{}, ErrNotParticipant
	}

	upd := repository.StatusUpdate{Status: status}
	if note != nil && strings.TrimSpace(*note) != "" {
		trimmed := strings.TrimSpace(*note)
		if actorID == m.FounderID {
			upd.FounderNote = &trimmed
		} else {
			upd.CandidateNote = &trimmed
		}
	}

	if err := u.matches.UpdateStatus(ctx, m.ID, upd); err != nil {
		if errors.Is(err, match.ErrNotFound) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, ErrInternal
	}

	updated, err := u.findMatch(ctx, m.ID)
	if err != nil {
		return match.Match{}, err
	}

	if u.notifier != nil {
		if other, ok := updated.OtherParty(actorID); ok {
			u.notifier.MatchUpdated(other, updated)
		}
	}
	return updated, nil
}

func (u *MatchLifecycle) findMatch(ctx context.Context, matchID uuid.UUID) (match.Match, error) {
	if matchID == uuid.Nil {
		return match.Match{}, ErrMatchNotFound
	}
	m, err := u.matches.FindByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, match.ErrNotFound) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, ErrInternal
	}
	return m, nil
}
