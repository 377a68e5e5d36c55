package usecase

import (
	"context"
	"errors"
	"testing"

	"founder-match/internal/domain/directory"
	"founder-match/internal/oracle"

	"github.com/google/uuid"
)

func testDirectory() (*memDirectory, directory.Job, directory.User, directory.User) {
	founder := directory.User{ID: uuid.New(), Name: "Fiona Founder", Role: directory.RoleFounder, ProfileCompleted: true}
	eng1 := directory.User{ID: uuid.New(), Name: "Eva Engineer", Role: directory.RoleEngineer, ProfileCompleted: true, Skills: []string{"Go"}}
	eng2 := directory.User{ID: uuid.New(), Name: "Omar Both", Role: directory.RoleBoth, ProfileCompleted: true, Skills: []string{"Rust"}}
	job := directory.Job{ID: uuid.New(), CreatorID: founder.ID, Title: "Founding CTO", CompanyName: "Acme", Active: true}

	dir := &memDirectory{
		users: []directory.User{founder, eng1, eng2},
		jobs:  []directory.Job{job},
	}
	return dir, job, eng1, eng2
}

func fixedScore(score int) func(directory.Job, directory.User) (oracle.Result, error) {
	return func(directory.Job, directory.User) (oracle.Result, error) {
		return oracle.Result{Score: score, Rationale: "fits"}, nil
	}
}

func TestGenerateForJob_ThresholdBoundary(t *testing.T) {
	dir, job, eng1, eng2 := testDirectory()
	repo := newMemMatchRepo(dir)

	scores := map[uuid.UUID]int{eng1.ID: 39, eng2.ID: 40}
	o := &stubOracle{scoreFn: func(_ directory.Job, c directory.User) (oracle.Result, error) {
		return oracle.Result{Score: scores[c.ID], Rationale: "because"}, nil
	}}

	uc := NewMatchingUsecase(dir, repo, o, nil, 20, 40)
	report, err := uc.GenerateForJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if report.Created != 1 || report.BelowThreshold != 1 {
		t.Fatalf("expected 1 created and 1 below threshold, got %+v", report)
	}

	ms, _ := repo.ListByJob(context.Background(), job.ID)
	if len(ms) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(ms))
	}
	if ms[0].CandidateID != eng2.ID {
		t.Fatalf("expected match for the 40-score candidate")
	}
	if ms[0].Score != 40 {
		t.Fatalf("expected score persisted verbatim, got %d", ms[0].Score)
	}
	if ms[0].Rationale != "because" {
		t.Fatalf("expected rationale persisted, got %q", ms[0].Rationale)
	}
}

func TestGenerateForJob_IdempotentRerun(t *testing.T) {
	dir, job, _, _ := testDirectory()
	repo := newMemMatchRepo(dir)
	o := &stubOracle{scoreFn: fixedScore(80)}

	uc := NewMatchingUsecase(dir, repo, o, nil, 20, 40)

	first, err := uc.GenerateForJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.Created != 2 {
		t.Fatalf("expected 2 created on first run, got %+v", first)
	}

	// Second run scores differently; existing matches must stay untouched.
	o.scoreFn = fixedScore(95)
	second, err := uc.GenerateForJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if second.Created != 0 || second.AlreadyMatched != 2 {
		t.Fatalf("expected rerun to skip both, got %+v", second)
	}

	ms, _ := repo.ListByJob(context.Background(), job.ID)
	if len(ms) != 2 {
		t.Fatalf("expected 2 matches after rerun, got %d", len(ms))
	}
	for _, m := range ms {
		if m.Score != 80 {
			t.Fatalf("expected original score 80 preserved, got %d", m.Score)
		}
	}
}

func TestGenerateForJob_OracleFailureSkipsCandidate(t *testing.T) {
	dir, job, eng1, _ := testDirectory()
	repo := newMemMatchRepo(dir)

	o := &stubOracle{scoreFn: func(_ directory.Job, c directory.User) (oracle.Result, error) {
		if c.ID == eng1.ID {
			return oracle.Result{}, oracle.ErrUnavailable
		}
		return oracle.Result{Score: 65, Rationale: "solid"}, nil
	}}

	uc := NewMatchingUsecase(dir, repo, o, nil, 20, 40)
	report, err := uc.GenerateForJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("expected batch to survive oracle failure, got %v", err)
	}
	if report.Failed != 1 || report.Created != 1 {
		t.Fatalf("expected 1 failed and 1 created, got %+v", report)
	}

	ms, _ := repo.ListByJob(context.Background(), job.ID)
	if len(ms) != 1 {
		t.Fatalf("expected 1 match despite oracle failure, got %d", len(ms))
	}
	if ms[0].CandidateID == eng1.ID {
		t.Fatalf("expected no match for the failed candidate")
	}
}

func TestGenerateForJob_JobNotFound(t *testing.T) {
	dir, _, _, _ := testDirectory()
	repo := newMemMatchRepo(dir)
	o := &stubOracle{scoreFn: fixedScore(90)}

	uc := NewMatchingUsecase(dir, repo, o, nil, 20, 40)
	_, err := uc.GenerateForJob(context.Background(), uuid.New())
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if o.calls != 0 {
		t.Fatalf("expected no oracle calls for missing job")
	}
	if len(repo.matches) != 0 {
		t.Fatalf("expected no writes for missing job")
	}
}

func TestGenerateForJob_ExcludesCreatorAndIncomplete(t *testing.T) {
	founder := directory.User{ID: uuid.New(), Role: directory.RoleBoth, ProfileCompleted: true}
	incomplete := directory.User{ID: uuid.New(), Role: directory.RoleEngineer, ProfileCompleted: false}
	nonEngineer := directory.User{ID: uuid.New(), Role: directory.RoleFounder, ProfileCompleted: true}
	job := directory.Job{ID: uuid.New(), CreatorID: founder.ID, Active: true}

	dir := &memDirectory{users: []directory.User{founder, incomplete, nonEngineer}, jobs: []directory.Job{job}}
	repo := newMemMatchRepo(dir)
	o := &stubOracle{scoreFn: fixedScore(99)}

	uc := NewMatchingUsecase(dir, repo, o, nil, 20, 40)
	report, err := uc.GenerateForJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if report.Evaluated != 0 {
		t.Fatalf("expected no eligible candidates, got %+v", report)
	}
}

func TestGenerateForUser_MirroredSemantics(t *testing.T) {
	founder := directory.User{ID: uuid.New(), Role: directory.RoleFounder, ProfileCompleted: true}
	eng := directory.User{ID: uuid.New(), Role: directory.RoleEngineer, ProfileCompleted: true}
	active := directory.Job{ID: uuid.New(), CreatorID: founder.ID, Active: true}
	inactive := directory.Job{ID: uuid.New(), CreatorID: founder.ID, Active: false}
	ownJob := directory.Job{ID: uuid.New(), CreatorID: eng.ID, Active: true}

	dir := &memDirectory{users: []directory.User{founder, eng}, jobs: []directory.Job{active, inactive, ownJob}}
	repo := newMemMatchRepo(dir)
	o := &stubOracle{scoreFn: fixedScore(70)}

	uc := NewMatchingUsecase(dir, repo, o, nil, 20, 40)
	report, err := uc.GenerateForUser(context.Background(), eng.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if report.Created != 1 {
		t.Fatalf("expected 1 match against the active job only, got %+v", report)
	}

	ms, _ := repo.ListByCandidate(context.Background(), eng.ID)
	if len(ms) != 1 || ms[0].JobID != active.ID {
		t.Fatalf("expected match against the active foreign job")
	}
}

func TestGenerateForUser_UserNotFound(t *testing.T) {
	dir, _, _, _ := testDirectory()
	repo := newMemMatchRepo(dir)
	uc := NewMatchingUsecase(dir, repo, &stubOracle{scoreFn: fixedScore(90)}, nil, 20, 40)

	_, err := uc.GenerateForUser(context.Background(), uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
