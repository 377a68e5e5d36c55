package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const unreadCountTTL = 60 * time.Second

// InboxCache is the redis-backed side cache for derived messaging reads.
// Implementations bypass silently when the cache is unavailable.
type InboxCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func unreadCountKey(userID uuid.UUID) string {
	return "inbox:unread:" + userID.String()
}
