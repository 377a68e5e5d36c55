package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"founder-match/internal/domain/directory"
	"founder-match/internal/domain/match"
	"founder-match/internal/domain/message"
	"founder-match/internal/oracle"
	"founder-match/internal/repository"

	"github.com/google/uuid"
)

type memDirectory struct {
	users []directory.User
	jobs  []directory.Job
}

func (d *memDirectory) FindUser(_ context.Context, id uuid.UUID) (directory.User, error) {
	for _, u := range d.users {
		if u.ID == id {
			return u, nil
		}
	}
	return directory.User{}, directory.ErrUserNotFound
}

func (d *memDirectory) FindJob(_ context.Context, id uuid.UUID) (directory.Job, error) {
	for _, j := range d.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return directory.Job{}, directory.ErrJobNotFound
}

func (d *memDirectory) ListEligibleCandidates(_ context.Context, excludeUserID uuid.UUID, limit int) ([]directory.User, error) {
	out := make([]directory.User, 0)
	for _, u := range d.users {
		if len(out) >= limit {
			break
		}
		if u.ID == excludeUserID || !u.ProfileCompleted || !u.Role.Matchable() {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (d *memDirectory) ListActiveJobs(_ context.Context, excludeCreatorID uuid.UUID, limit int) ([]directory.Job, error) {
	out := make([]directory.Job, 0)
	for _, j := range d.jobs {
		if len(out) >= limit {
			break
		}
		if j.CreatorID == excludeCreatorID || !j.Active {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

type memMatchRepo struct {
	mu      sync.Mutex
	matches []match.Match

	// founders maps job id to creator id so stored matches carry FounderID
	// the way the SQL join does.
	founders map[uuid.UUID]uuid.UUID
}

func newMemMatchRepo(dir *memDirectory) *memMatchRepo {
	founders := make(map[uuid.UUID]uuid.UUID)
	for _, j := range dir.jobs {
		founders[j.ID] = j.CreatorID
	}
	return &memMatchRepo{founders: founders}
}

func (r *memMatchRepo) InsertIfAbsent(_ context.Context, m repository.MatchCreate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.matches {
		if existing.JobID == m.JobID && existing.CandidateID == m.CandidateID {
			return false, nil
		}
	}
	r.matches = append(r.matches, match.Match{
		ID:          uuid.New(),
		JobID:       m.JobID,
		CandidateID: m.CandidateID,
		FounderID:   r.founders[m.JobID],
		Score:       m.Score,
		Status:      match.StatusPending,
		Rationale:   m.Rationale,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	})
	return true, nil
}

func (r *memMatchRepo) ExistsByPair(_ context.Context, jobID, candidateID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.JobID == jobID && m.CandidateID == candidateID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memMatchRepo) FindByID(_ context.Context, id uuid.UUID) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.ID == id {
			return m, nil
		}
	}
	return match.Match{}, match.ErrNotFound
}

func (r *memMatchRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]match.Match, 0)
	for _, m := range r.matches {
		if m.JobID == jobID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMatchRepo) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]match.Match, 0)
	for _, m := range r.matches {
		if m.CandidateID == candidateID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMatchRepo) ListAcceptedByParticipant(_ context.Context, userID uuid.UUID) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]match.Match, 0)
	for _, m := range r.matches {
		if m.Status == match.StatusAccepted && (m.CandidateID == userID || m.FounderID == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMatchRepo) UpdateStatus(_ context.Context, id uuid.UUID, upd repository.StatusUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.matches {
		if m.ID != id {
			continue
		}
		m.Status = upd.Status
		if upd.FounderNote != nil {
			m.FounderNotes = upd.FounderNote
		}
		if upd.CandidateNote != nil {
			m.CandidateNotes = upd.CandidateNote
		}
		m.UpdatedAt = time.Now().UTC()
		r.matches[i] = m
		return nil
	}
	return match.ErrNotFound
}

type memMessageRepo struct {
	mu   sync.Mutex
	msgs []message.Message
	now  time.Time
}

func (r *memMessageRepo) tick() time.Time {
	if r.now.IsZero() {
		r.now = time.Now().UTC()
	}
	r.now = r.now.Add(time.Second)
	return r.now
}

func (r *memMessageRepo) Insert(_ context.Context, m repository.MessageCreate) (message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg := message.Message{
		ID:          uuid.New(),
		MatchID:     m.MatchID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		CreatedAt:   r.tick(),
	}
	r.msgs = append(r.msgs, msg)
	return msg, nil
}

func (r *memMessageRepo) ListAndMarkRead(_ context.Context, matchID, readerID uuid.UUID) ([]message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]message.Message, 0)
	for i, m := range r.msgs {
		if m.MatchID != matchID {
			continue
		}
		out = append(out, m)
		if m.RecipientID == readerID && !m.Read {
			r.msgs[i].Read = true
		}
	}
	return out, nil
}

func (r *memMessageRepo) LatestByMatch(_ context.Context, matchID uuid.UUID) (*message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *message.Message
	for i := range r.msgs {
		m := r.msgs[i]
		if m.MatchID != matchID {
			continue
		}
		if latest == nil || m.CreatedAt.After(latest.CreatedAt) {
			cp := m
			latest = &cp
		}
	}
	return latest, nil
}

func (r *memMessageRepo) CountUnreadForUser(_ context.Context, userID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.msgs {
		if m.RecipientID == userID && !m.Read {
			n++
		}
	}
	return n, nil
}

func (r *memMessageRepo) CountUnreadForMatch(_ context.Context, matchID, userID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.msgs {
		if m.MatchID == matchID && m.RecipientID == userID && !m.Read {
			n++
		}
	}
	return n, nil
}

type stubOracle struct {
	scoreFn func(job directory.Job, candidate directory.User) (oracle.Result, error)
	calls   int
}

func (o *stubOracle) Score(_ context.Context, job directory.Job, candidate directory.User) (oracle.Result, error) {
	o.calls++
	return o.scoreFn(job, candidate)
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
	dels int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dels++
	delete(c.data, key)
	return nil
}
