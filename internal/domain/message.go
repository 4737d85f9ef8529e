package domain

import (
	"context"
	"time"
)

// Message represents one directed text message between two users.
// Messages are immutable once stored.
type Message struct {
	ID       int64
	FromUser string
	ToUser   string
	Content  string
	SentAt   time.Time
}

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	// Conversation returns every message exchanged between the two users,
	// in either direction, oldest first. Ties on the send instant are
	// broken by insertion order.
	Conversation(ctx context.Context, userA, userB string) ([]Message, error)
}
