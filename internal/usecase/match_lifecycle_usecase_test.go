package usecase

import (
	"context"
	"errors"
	"testing"

	"founder-match/internal/domain/match"
	"founder-match/internal/repository"

	"github.com/google/uuid"
)

func seedMatch(t *testing.T, dir *memDirectory, repo *memMatchRepo, jobID, candidateID uuid.UUID) match.Match {
	t.Helper()
	created, err := repo.InsertIfAbsent(context.Background(), repository.MatchCreate{
		JobID:       jobID,
		CandidateID: candidateID,
		Score:       72,
		Rationale:   "strong overlap",
	})
	if err != nil || !created {
		t.Fatalf("seed match failed: created=%v err=%v", created, err)
	}
	ms, _ := repo.ListByJob(context.Background(), jobID)
	return ms[len(ms)-1]
}

func TestUpdateStatus_FounderNoteStaysOnFounderSide(t *testing.T) {
	dir, job, eng, _ := testDirectory()
	repo := newMemMatchRepo(dir)
	m := seedMatch(t, dir, repo, job.ID, eng.ID)

	uc := NewMatchLifecycleUsecase(dir, repo, nil)

	note := "promising profile"
	updated, err := uc.UpdateStatus(context.Background(), m.ID, job.CreatorID, "accepted", &note)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != match.StatusAccepted {
		t.Fatalf("expected accepted, got %s", updated.Status)
	}
	if updated.FounderNotes == nil || *updated.FounderNotes != note {
		t.Fatalf("expected founder note set")
	}
	if updated.CandidateNotes != nil {
		t.Fatalf("expected candidate note untouched")
	}
}

func TestUpdateStatus_CandidateNoteStaysOnCandidateSide(t *testing.T) {
	dir, job, eng, _ := testDirectory()
	repo := newMemMatchRepo(dir)
	m := seedMatch(t, dir, repo, job.ID, eng.ID)

	uc := NewMatchLifecycleUsecase(dir, repo, nil)

	note := "interested in the stack"
	updated, err := uc.UpdateStatus(context.Background(), m.ID, eng.ID, "rejected", &note)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.CandidateNotes == nil || *updated.CandidateNotes != note {
		t.Fatalf("expected candidate note set")
	}
	if updated.FounderNotes != nil {
		t.Fatalf("expected founder note untouched")
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	dir, job, eng, _ := testDirectory()
	repo := newMemMatchRepo(dir)
	m := seedMatch(t, dir, repo, job.ID, eng.ID)

	uc := NewMatchLifecycleUsecase(dir, repo, nil)

	for _, bad := range []string{"", "open", "ACCEPTED", "deleted"} {
		if _, err := uc.UpdateStatus(context.Background(), m.ID, eng.ID, bad, nil); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("status %q: expected ErrInvalidStatus, got %v", bad, err)
		}
	}
}

func TestUpdateStatus_NonParticipantRejectedForAllStatuses(t *testing.T) {
	dir, job, eng, _ := testDirectory()
	repo := newMemMatchRepo(dir)
	m := seedMatch(t, dir, repo, job.ID, eng.ID)

	uc := NewMatchLifecycleUsecase(dir, repo, nil)
	stranger := uuid.New()

	for _, status := range []string{"pending", "accepted", "rejected", "archived"} {
		if _, err := uc.UpdateStatus(context.Background(), m.ID, stranger, status, nil); !errors.Is(err, ErrNotParticipant) {
			t.Fatalf("status %q: expected ErrNotParticipant, got %v", status, err)
		}
	}
}

func TestUpdateStatus_PermissiveTransitions(t *testing.T) {
	dir, job, eng, _ := testDirectory()
	repo := newMemMatchRepo(dir)
	m := seedMatch(t, dir, repo, job.ID, eng.ID)

	uc := NewMatchLifecycleUsecase(dir, repo, nil)

	// accepted can move back to pending; no transition table is enforced.
	for _, status := range []string{"accepted", "pending", "archived", "rejected"} {
		updated, err := uc.UpdateStatus(context.Background(), m.ID, eng.ID, status, nil)
		if err != nil {
			t.Fatalf("transition to %q failed: %v", status, err)
		}
		if string(updated.Status) != status {
			t.Fatalf("expected %q, got %q", status, updated.Status)
		}
	}
}

func TestUpdateStatus_MatchNotFound(t *testing.T) {
	dir, _, eng, _ := testDirectory()
	repo := newMemMatchRepo(dir)
	uc := NewMatchLifecycleUsecase(dir, repo, nil)

	if _, err := uc.UpdateStatus(context.Background(), uuid.New(), eng.ID, "accepted", nil); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestGetMatch_ParticipantsOnly(t *testing.T) {
	dir, job, eng, _ := testDirectory()
	repo := newMemMatchRepo(dir)
	m := seedMatch(t, dir, repo, job.ID, eng.ID)

	uc := NewMatchLifecycleUsecase(dir, repo, nil)

	if _, err := uc.GetMatch(context.Background(), m.ID, job.CreatorID); err != nil {
		t.Fatalf("founder should see match: %v", err)
	}
	if _, err := uc.GetMatch(context.Background(), m.ID, eng.ID); err != nil {
		t.Fatalf("candidate should see match: %v", err)
	}
	if _, err := uc.GetMatch(context.Background(), m.ID, uuid.New()); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant for stranger, got %v", err)
	}
}

func TestListForJob_CreatorOnly(t *testing.T) {
	dir, job, eng, _ := testDirectory()
	repo := newMemMatchRepo(dir)
	seedMatch(t, dir, repo, job.ID, eng.ID)

	uc := NewMatchLifecycleUsecase(dir, repo, nil)

	ms, err := uc.ListForJob(context.Background(), job.ID, job.CreatorID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ms) != 1 {
		t.Fatalf("expected 1 match, got %d", len(ms))
	}

	if _, err := uc.ListForJob(context.Background(), job.ID, eng.ID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant for non-creator, got %v", err)
	}
	if _, err := uc.ListForJob(context.Background(), uuid.New(), job.CreatorID); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}
