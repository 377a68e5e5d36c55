package usecase

import (
	"context"
	"log"
	"sort"
	"time"

	"founder-match/internal/domain/directory"
	"founder-match/internal/domain/match"
	"founder-match/internal/domain/message"
	"founder-match/internal/repository"

	"github.com/google/uuid"
)

// Conversation is the per-user inbox view of one accepted match: the other
// party, the job it concerns, the latest message (nil when the thread is
// empty) and how many messages the user has not read yet.
type Conversation struct {
	MatchID        uuid.UUID
	MatchStatus    match.Status
	MatchCreatedAt time.Time

	OtherPartyID   uuid.UUID
	OtherPartyName string

	JobID       uuid.UUID
	JobTitle    string
	CompanyName string

	LatestMessage *message.Message
	UnreadCount   int
}

type ConversationUsecase interface {
	ListConversations(ctx context.Context, userID uuid.UUID) ([]Conversation, error)
}

type Conversations struct {
	dir      directory.Directory
	matches  repository.MatchRepository
	messages repository.MessageRepository
	logger   *log.Logger
}

func NewConversationUsecase(dir directory.Directory, matches repository.MatchRepository, messages repository.MessageRepository, logger *log.Logger) *Conversations {
	if logger == nil {
		logger = log.Default()
	}
	return &Conversations{dir: dir, matches: matches, messages: messages, logger: logger}
}

// ListConversations derives the inbox from accepted matches only. Pending,
// rejected and archived matches never appear, whatever messages they hold.
func (u *Conversations) ListConversations(ctx context.Context, userID uuid.UUID) ([]Conversation, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	accepted, err := u.matches.ListAcceptedByParticipant(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]Conversation, 0, len(accepted))
	for _, m := range accepted {
		conv, err := u.buildConversation(ctx, m, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, conv)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti := latestMessageTime(out[i])
		tj := latestMessageTime(out[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].MatchCreatedAt.After(out[j].MatchCreatedAt)
	})

	return out, nil
}

func (u *Conversations) buildConversation(ctx context.Context, m match.Match, userID uuid.UUID) (Conversation, error) {
	conv := Conversation{
		MatchID:        m.ID,
		MatchStatus:    m.Status,
		MatchCreatedAt: m.CreatedAt,
		JobID:          m.JobID,
	}

	otherID, ok := m.OtherParty(userID)
	if !ok {
		return Conversation{}, ErrInternal
	}
	conv.OtherPartyID = otherID

	other, err := u.dir.FindUser(ctx, otherID)
	if err != nil {
		// The party record should always exist; degrade to an unnamed entry
		// rather than dropping the conversation.
		u.logger.Printf("[Conversations] other party lookup failed user=%s err=%v", otherID, err)
	} else {
		conv.OtherPartyName = other.Name
	}

	job, err := u.dir.FindJob(ctx, m.JobID)
	if err != nil {
		u.logger.Printf("[Conversations] job lookup failed job=%s err=%v", m.JobID, err)
	} else {
		conv.JobTitle = job.Title
		conv.CompanyName = job.CompanyName
	}

	latest, err := u.messages.LatestByMatch(ctx, m.ID)
	if err != nil {
		return Conversation{}, ErrInternal
	}
	conv.LatestMessage = latest

	unread, err := u.messages.CountUnreadForMatch(ctx, m.ID, userID)
	if err != nil {
		return Conversation{}, ErrInternal
	}
	conv.UnreadCount = unread

	return conv, nil
}

func latestMessageTime(c Conversation) time.Time {
	if c.LatestMessage == nil {
		return time.Time{}
	}
	return c.LatestMessage.CreatedAt
}
