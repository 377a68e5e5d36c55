package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"founder-match/internal/domain/match"
	"founder-match/internal/domain/message"
	"founder-match/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmptyContent     = errors.New("message content is empty")
	ErrMatchNotAccepted = errors.New("match not accepted")
)

// MessageNotifier pushes a freshly sent message to its recipient.
// Implementations must not block.
type MessageNotifier interface {
	MessageReceived(recipientID uuid.UUID, msg message.Message)
}

type MessagingUsecase interface {
	SendMessage(ctx context.Context, matchID, senderID uuid.UUID, content string) (message.Message, error)
	GetMessages(ctx context.Context, matchID, requesterID uuid.UUID) ([]message.Message, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
}

type Messaging struct {
	matches  repository.MatchRepository
	messages repository.MessageRepository
	cache    InboxCache
	notifier MessageNotifier
	logger   *log.Logger
}

func NewMessagingUsecase(matches repository.MatchRepository, messages repository.MessageRepository, cache InboxCache, notifier MessageNotifier, logger *log.Logger) *Messaging {
	if logger == nil {
		logger = log.Default()
	}
	return &Messaging{matches: matches, messages: messages, cache: cache, notifier: notifier, logger: logger}
}

// SendMessage delivers content from one match party to the other. Sending
// requires the match to be accepted; the recipient is always the other party.
func (u *Messaging) SendMessage(ctx context.Context, matchID, senderID uuid.UUID, content string) (message.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return message.Message{}, ErrEmptyContent
	}

	m, err := u.findMatch(ctx, matchID)
	if err != nil {
		return message.Message{}, err
	}

	recipientID, ok := m.OtherParty(senderID)
	if !ok {
		return message.Message{}, ErrNotParticipant
	}

	if m.Status != match.StatusAccepted {
		return message.Message{}, ErrMatchNotAccepted
	}

	msg, err := u.messages.Insert(ctx, repository.MessageCreate{
		MatchID:     m.ID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	})
	if err != nil {
		return message.Message{}, ErrInternal
	}

	u.invalidateUnread(ctx, recipientID)
	if u.notifier != nil {
		u.notifier.MessageReceived(recipientID, msg)
	}
	return msg, nil
}

// GetMessages returns the match's thread in creation order and marks every
// unread message addressed to the requester as read.
func (u *Messaging) GetMessages(ctx context.Context, matchID, requesterID uuid.UUID) ([]message.Message, error) {
	m, err := u.findMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.IsParticipant(requesterID) {
		return nil, ErrNotParticipant
	}

	msgs, err := u.messages.ListAndMarkRead(ctx, m.ID, requesterID)
	if err != nil {
		return nil, ErrInternal
	}

	u.invalidateUnread(ctx, requesterID)
	return msgs, nil
}

func (u *Messaging) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, ErrUnauthorized
	}

	if u.cache != nil {
		var cached int
		if ok, err := u.cache.GetJSON(ctx, unreadCountKey(userID), &cached); err == nil && ok {
			return cached, nil
		}
	}

	n, err := u.messages.CountUnreadForUser(ctx, userID)
	if err != nil {
		return 0, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, unreadCountKey(userID), n, unreadCountTTL); err != nil {
			u.logger.Printf("[Messaging] unread cache set failed user=%s err=%v", userID, err)
		}
	}
	return n, nil
}

func (u *Messaging) invalidateUnread(ctx context.Context, userID uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, unreadCountKey(userID)); err != nil {
		u.logger.Printf("[Messaging] unread cache invalidate failed user=%s err=%v", userID, err)
	}
}

func (u *Messaging) findMatch(ctx context.Context, matchID uuid.UUID) (match.Match, error) {
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
