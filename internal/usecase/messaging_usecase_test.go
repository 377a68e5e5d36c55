package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func acceptedMatchFixture(t *testing.T) (*memDirectory, *memMatchRepo, *memMessageRepo, uuid.UUID, uuid.UUID, uuid.UUID) {
	t.Helper()
	dir, job, eng, _ := testDirectory()
	matches := newMemMatchRepo(dir)
	messages := &memMessageRepo{}

	m := seedMatch(t, dir, matches, job.ID, eng.ID)
	lifecycle := NewMatchLifecycleUsecase(dir, matches, nil)
	if _, err := lifecycle.UpdateStatus(context.Background(), m.ID, eng.ID, "accepted", nil); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	return dir, matches, messages, m.ID, job.CreatorID, eng.ID
}

func TestSendMessage_RequiresAcceptedStatus(t *testing.T) {
	dir, job, eng, _ := testDirectory()
	matches := newMemMatchRepo(dir)
	messages := &memMessageRepo{}
	m := seedMatch(t, dir, matches, job.ID, eng.ID)

	uc := NewMessagingUsecase(matches, messages, nil, nil, nil)

	// pending match: blocked
	if _, err := uc.SendMessage(context.Background(), m.ID, eng.ID, "hello"); !errors.Is(err, ErrMatchNotAccepted) {
		t.Fatalf("expected ErrMatchNotAccepted on pending match, got %v", err)
	}

	lifecycle := NewMatchLifecycleUsecase(dir, matches, nil)
	if _, err := lifecycle.UpdateStatus(context.Background(), m.ID, eng.ID, "accepted", nil); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	msg, err := uc.SendMessage(context.Background(), m.ID, eng.ID, "Interested!")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if msg.SenderID != eng.ID || msg.RecipientID != job.CreatorID {
		t.Fatalf("expected recipient inferred as the other party")
	}
	if msg.Read {
		t.Fatalf("expected new message unread")
	}
}

func TestSendMessage_Validation(t *testing.T) {
	_, matches, messages, matchID, _, eng := acceptedMatchFixture(t)
	uc := NewMessagingUsecase(matches, messages, nil, nil, nil)

	if _, err := uc.SendMessage(context.Background(), matchID, eng, "   "); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	if _, err := uc.SendMessage(context.Background(), matchID, uuid.New(), "hi"); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if _, err := uc.SendMessage(context.Background(), uuid.New(), eng, "hi"); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestGetMessages_MarksReadIdempotently(t *testing.T) {
	_, matches, messages, matchID, founder, eng := acceptedMatchFixture(t)
	uc := NewMessagingUsecase(matches, messages, nil, nil, nil)

	for _, content := range []string{"first", "second", "third"} {
		if _, err := uc.SendMessage(context.Background(), matchID, eng, content); err != nil {
			t.Fatalf("send failed: %v", err)
		}
	}

	n, err := uc.UnreadCount(context.Background(), founder)
	if err != nil || n != 3 {
		t.Fatalf("expected 3 unread for founder, got %d err=%v", n, err)
	}

	first, err := uc.GetMessages(context.Background(), matchID, founder)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(first))
	}
	for i := 1; i < len(first); i++ {
		if first[i].CreatedAt.Before(first[i-1].CreatedAt) {
			t.Fatalf("expected ascending creation order")
		}
	}

	n, err = uc.UnreadCount(context.Background(), founder)
	if err != nil || n != 0 {
		t.Fatalf("expected unread to drop to 0, got %d err=%v", n, err)
	}

	second, err := uc.GetMessages(context.Background(), matchID, founder)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(second) != 3 {
		t.Fatalf("expected same list on second read, got %d", len(second))
	}
	for _, m := range second {
		if !m.Read {
			t.Fatalf("expected previously-unread messages now read")
		}
	}
}

func TestGetMessages_SenderSideLeavesUnreadAlone(t *testing.T) {
	_, matches, messages, matchID, founder, eng := acceptedMatchFixture(t)
	uc := NewMessagingUsecase(matches, messages, nil, nil, nil)

	if _, err := uc.SendMessage(context.Background(), matchID, eng, "ping"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	// The sender reading the thread does not consume the recipient's unread.
	if _, err := uc.GetMessages(context.Background(), matchID, eng); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	n, err := uc.UnreadCount(context.Background(), founder)
	if err != nil || n != 1 {
		t.Fatalf("expected founder unread still 1, got %d err=%v", n, err)
	}
}

func TestGetMessages_ParticipantsOnly(t *testing.T) {
	_, matches, messages, matchID, _, _ := acceptedMatchFixture(t)
	uc := NewMessagingUsecase(matches, messages, nil, nil, nil)

	if _, err := uc.GetMessages(context.Background(), matchID, uuid.New()); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if _, err := uc.GetMessages(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestUnreadCount_CacheInvalidation(t *testing.T) {
	_, matches, messages, matchID, founder, eng := acceptedMatchFixture(t)
	cache := newMemCache()
	uc := NewMessagingUsecase(matches, messages, cache, nil, nil)

	if _, err := uc.SendMessage(context.Background(), matchID, eng, "one"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	n, err := uc.UnreadCount(context.Background(), founder)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 unread, got %d err=%v", n, err)
	}
	if cache.sets == 0 {
		t.Fatalf("expected unread count cached")
	}

	// A second send must invalidate the cached count.
	if _, err := uc.SendMessage(context.Background(), matchID, eng, "two"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	n, err = uc.UnreadCount(context.Background(), founder)
	if err != nil || n != 2 {
		t.Fatalf("expected fresh count 2 after invalidation, got %d err=%v", n, err)
	}
}
