package usecase

import (
	"context"
	"testing"

	"founder-match/internal/domain/directory"
	"founder-match/internal/domain/match"

	"github.com/google/uuid"
)

func TestListConversations_AcceptedOnly(t *testing.T) {
	dir, job, eng1, eng2 := testDirectory()
	matches := newMemMatchRepo(dir)
	messages := &memMessageRepo{}

	m1 := seedMatch(t, dir, matches, job.ID, eng1.ID)
	seedMatch(t, dir, matches, job.ID, eng2.ID) // stays pending

	lifecycle := NewMatchLifecycleUsecase(dir, matches, nil)
	if _, err := lifecycle.UpdateStatus(context.Background(), m1.ID, eng1.ID, "accepted", nil); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	uc := NewConversationUsecase(dir, matches, messages, nil)
	convs, err := uc.ListConversations(context.Background(), job.CreatorID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(convs) != 1 {
		t.Fatalf("expected only the accepted match, got %d conversations", len(convs))
	}

	c := convs[0]
	if c.MatchID != m1.ID || c.MatchStatus != match.StatusAccepted {
		t.Fatalf("unexpected conversation match: %+v", c)
	}
	if c.OtherPartyID != eng1.ID || c.OtherPartyName != eng1.Name {
		t.Fatalf("expected other party resolved to %s, got %+v", eng1.Name, c)
	}
	if c.JobID != job.ID || c.JobTitle != job.Title {
		t.Fatalf("expected job context on conversation, got %+v", c)
	}
	if c.LatestMessage != nil || c.UnreadCount != 0 {
		t.Fatalf("expected empty thread, got latest=%v unread=%d", c.LatestMessage, c.UnreadCount)
	}
}

func TestListConversations_OrderedByLatestMessage(t *testing.T) {
	dir, job, eng1, eng2 := testDirectory()
	eng3 := directory.User{
		ID:               uuid.New(),
		Name:             "Carol",
		Role:             directory.RoleEngineer,
		ProfileCompleted: true,
	}
	dir.users = append(dir.users, eng3)

	matches := newMemMatchRepo(dir)
	messages := &memMessageRepo{}
	lifecycle := NewMatchLifecycleUsecase(dir, matches, nil)
	msging := NewMessagingUsecase(matches, messages, nil, nil, nil)

	var ids []uuid.UUID
	for _, eng := range []directory.User{eng1, eng2, eng3} {
		m := seedMatch(t, dir, matches, job.ID, eng.ID)
		if _, err := lifecycle.UpdateStatus(context.Background(), m.ID, eng.ID, "accepted", nil); err != nil {
			t.Fatalf("accept failed: %v", err)
		}
		ids = append(ids, m.ID)
	}

	// Oldest activity on match 0, newest on match 1; match 2 stays empty.
	if _, err := msging.SendMessage(context.Background(), ids[0], eng1.ID, "hello"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if _, err := msging.SendMessage(context.Background(), ids[1], eng2.ID, "hi there"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	uc := NewConversationUsecase(dir, matches, messages, nil)
	convs, err := uc.ListConversations(context.Background(), job.CreatorID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(convs) != 3 {
		t.Fatalf("expected 3 conversations, got %d", len(convs))
	}

	if convs[0].MatchID != ids[1] {
		t.Fatalf("expected most recent thread first, got %v", convs[0].MatchID)
	}
	if convs[1].MatchID != ids[0] {
		t.Fatalf("expected older thread second, got %v", convs[1].MatchID)
	}
	if convs[2].MatchID != ids[2] {
		t.Fatalf("expected empty thread last, got %v", convs[2].MatchID)
	}
	if convs[2].LatestMessage != nil {
		t.Fatalf("expected no latest message on empty thread")
	}
}

func TestListConversations_UnreadPerSide(t *testing.T) {
	_, matches, messages, matchID, founder, eng := acceptedMatchFixture(t)
	dir := &memDirectory{}
	msging := NewMessagingUsecase(matches, messages, nil, nil, nil)

	for _, content := range []string{"one", "two"} {
		if _, err := msging.SendMessage(context.Background(), matchID, eng, content); err != nil {
			t.Fatalf("send failed: %v", err)
		}
	}
	if _, err := msging.SendMessage(context.Background(), matchID, founder, "reply"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	uc := NewConversationUsecase(dir, matches, messages, nil)

	founderView, err := uc.ListConversations(context.Background(), founder)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(founderView) != 1 || founderView[0].UnreadCount != 2 {
		t.Fatalf("expected founder to see 2 unread, got %+v", founderView)
	}
	if founderView[0].LatestMessage == nil || founderView[0].LatestMessage.Content != "reply" {
		t.Fatalf("expected latest message to be the reply")
	}

	candidateView, err := uc.ListConversations(context.Background(), eng)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(candidateView) != 1 || candidateView[0].UnreadCount != 1 {
		t.Fatalf("expected candidate to see 1 unread, got %+v", candidateView)
	}
}

func TestListConversations_DirectoryLookupFailureDegrades(t *testing.T) {
	_, matches, messages, matchID, founder, _ := acceptedMatchFixture(t)

	// Empty directory: party and job lookups fail, the conversation survives.
	uc := NewConversationUsecase(&memDirectory{}, matches, messages, nil)
	convs, err := uc.ListConversations(context.Background(), founder)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(convs) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(convs))
	}
	if convs[0].MatchID != matchID || convs[0].OtherPartyName != "" || convs[0].JobTitle != "" {
		t.Fatalf("expected unnamed degraded entry, got %+v", convs[0])
	}
}
