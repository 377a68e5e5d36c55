package ws

import (
	"encoding/json"
	"log"
	"time"

	"founder-match/internal/domain/match"
	"founder-match/internal/domain/message"

	"github.com/google/uuid"
)

// Notifier pushes match and message events to the affected user's sockets.
// It satisfies the usecase notifier interfaces; every call is fire-and-forget.
type Notifier struct {
	hub    *Hub
	logger *log.Logger
}

func NewNotifier(hub *Hub, logger *log.Logger) *Notifier {
	return &Notifier{hub: hub, logger: logger}
}

type matchUpdatedEvent struct {
	Type      string       `json:"type"`
	MatchID   uuid.UUID    `json:"match_id"`
	Status    match.Status `json:"status"`
	Timestamp string       `json:"timestamp"`
}

type messageReceivedEvent struct {
	Type      string    `json:"type"`
	MatchID   uuid.UUID `json:"match_id"`
	MessageID uuid.UUID `json:"message_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	Timestamp string    `json:"timestamp"`
}

func (n *Notifier) MatchUpdated(userID uuid.UUID, m match.Match) {
	if n == nil {
		return
	}
	n.send(userID, matchUpdatedEvent{
		Type:      "match_updated",
		MatchID:   m.ID,
		Status:    m.Status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *Notifier) MessageReceived(recipientID uuid.UUID, msg message.Message) {
	if n == nil {
		return
	}
	n.send(recipientID, messageReceivedEvent{
		Type:      "message_received",
		MatchID:   msg.MatchID,
		MessageID: msg.ID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		Timestamp: msg.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func (n *Notifier) send(userID uuid.UUID, event any) {
	b, err := json.Marshal(event)
	if err != nil {
		if n.logger != nil {
			n.logger.Printf("WS event marshal error | error=%v", err)
		}
		return
	}
	n.hub.SendToUser(userID, b)
}
