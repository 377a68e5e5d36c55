package message

import (
	"time"

	"github.com/google/uuid"
)

// Message belongs to exactly one match; sender and recipient are always the
// match's two parties. Messages are append-only: the only mutation is flipping
// the read flag via the recipient's bulk mark-read.
type Message struct {
	ID          uuid.UUID
	MatchID     uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Content     string
	Read        bool
	CreatedAt   time.Time
}
