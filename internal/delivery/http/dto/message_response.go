package dto

import (
	"time"

	"founder-match/internal/domain/message"
	"founder-match/internal/usecase"

	"github.com/google/uuid"
)

type MessageResponse struct {
	ID          uuid.UUID `json:"id"`
	MatchID     uuid.UUID `json:"match_id"`
	SenderID    uuid.UUID `json:"sender_id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	Content     string    `json:"content"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewMessageResponse(m message.Message) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		MatchID:     m.MatchID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt,
	}
}

func NewMessageListResponse(ms []message.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewMessageResponse(m))
	}
	return out
}

type ConversationResponse struct {
	MatchID        uuid.UUID `json:"match_id"`
	MatchStatus    string    `json:"match_status"`
	MatchCreatedAt time.Time `json:"match_created_at"`

	OtherPartyID   uuid.UUID `json:"other_party_id"`
	OtherPartyName string    `json:"other_party_name"`

	JobID       uuid.UUID `json:"job_id"`
	JobTitle    string    `json:"job_title"`
	CompanyName string    `json:"company_name"`

	LatestMessage *MessageResponse `json:"latest_message"`
	UnreadCount   int              `json:"unread_count"`
}

func NewConversationResponse(c usecase.Conversation) ConversationResponse {
	resp := ConversationResponse{
		MatchID:        c.MatchID,
		MatchStatus:    string(c.MatchStatus),
		MatchCreatedAt: c.MatchCreatedAt,
		OtherPartyID:   c.OtherPartyID,
		OtherPartyName: c.OtherPartyName,
		JobID:          c.JobID,
		JobTitle:       c.JobTitle,
		CompanyName:    c.CompanyName,
		UnreadCount:    c.UnreadCount,
	}
	if c.LatestMessage != nil {
		msg := NewMessageResponse(*c.LatestMessage)
		resp.LatestMessage = &msg
	}
	return resp
}

func NewConversationListResponse(cs []usecase.Conversation) []ConversationResponse {
	out := make([]ConversationResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewConversationResponse(c))
	}
	return out
}
