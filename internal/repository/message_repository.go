package repository

import (
	"context"
	"time"

	"founder-match/internal/database"
	"founder-match/internal/domain/message"

	"github.com/google/uuid"
)

type MessageCreate struct {
	MatchID     uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Content     string
}

type MessageRepository interface {
	Insert(ctx context.Context, m MessageCreate) (message.Message, error)

	// ListAndMarkRead returns the match's messages ordered by creation time
	// ascending and, in the same transaction, flips every unread message
	// addressed to readerID to read.
	ListAndMarkRead(ctx context.Context, matchID, readerID uuid.UUID) ([]message.Message, error)

	LatestByMatch(ctx context.Context, matchID uuid.UUID) (*message.Message, error)
	CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int, error)
	CountUnreadForMatch(ctx context.Context, matchID, userID uuid.UUID) (int, error)
}

type PostgresMessageRepository struct {
	db database.DB
}

func NewPostgresMessageRepository(db database.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

const messageColumns = `id, match_id, sender_id, recipient_id, content, read, created_at`

func (r *PostgresMessageRepository) Insert(ctx context.Context, m MessageCreate) (message.Message, error) {
	msg := message.Message{
		ID:          uuid.New(),
		MatchID:     m.MatchID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		Read:        false,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO messages (id, match_id, sender_id, recipient_id, content, read, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		msg.ID, msg.MatchID, msg.SenderID, msg.RecipientID, msg.Content, msg.Read, msg.CreatedAt,
	)
	if err != nil {
		return message.Message{}, err
	}
	return msg, nil
}

func (r *PostgresMessageRepository) ListAndMarkRead(ctx context.Context, matchID, readerID uuid.UUID) ([]message.Message, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx,
		`SELECT `+messageColumns+`
		 FROM messages
		 WHERE match_id = $1
		 ORDER BY created_at ASC`,
		matchID,
	)
	if err != nil {
		return nil, err
	}

	out := make([]message.Message, 0)
	for rows.Next() {
		var msg message.Message
		if err := rows.Scan(
			&msg.ID, &msg.MatchID, &msg.SenderID, &msg.RecipientID,
			&msg.Content, &msg.Read, &msg.CreatedAt,
		); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, msg)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE messages SET read = TRUE
		 WHERE match_id = $1 AND recipient_id = $2 AND read = FALSE`,
		matchID, readerID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMessageRepository) LatestByMatch(ctx context.Context, matchID uuid.UUID) (*message.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+messageColumns+`
		 FROM messages
		 WHERE match_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		matchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var msg message.Message
	if err := rows.Scan(
		&msg.ID, &msg.MatchID, &msg.SenderID, &msg.RecipientID,
		&msg.Content, &msg.Read, &msg.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *PostgresMessageRepository) CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE recipient_id = $1 AND read = FALSE`,
		userID,
	).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresMessageRepository) CountUnreadForMatch(ctx context.Context, matchID, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE match_id = $1 AND recipient_id = $2 AND read = FALSE`,
		matchID, userID,
	).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}
