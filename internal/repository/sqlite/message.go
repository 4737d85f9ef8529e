package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msomdec/connectrandom/internal/domain"
)

// MessageRepository implements domain.MessageRepository using SQLite.
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new SQLite-backed MessageRepository.
func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db.SqlDB}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	// The send instant is assigned here rather than by the column default
	// so the caller sees the stored value without a re-read.
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (from_user, to_user, content, sent_at)
		 VALUES (?, ?, ?, ?)`,
		msg.FromUser, msg.ToUser, msg.Content, now,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	msg.ID = id
	msg.SentAt = now
	return nil
}

func (r *MessageRepository) Conversation(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	// message_id is the tiebreak: sent_at can collide within its resolution.
	rows, err := r.db.QueryContext(ctx,
		`SELECT message_id, from_user, to_user, content, sent_at
		 FROM messages
		 WHERE (from_user = ? AND to_user = ?) OR (from_user = ? AND to_user = ?)
		 ORDER BY sent_at ASC, message_id ASC`,
		userA, userB, userB, userA,
	)
	if err != nil {
		return nil, fmt.Errorf("query conversation: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.FromUser, &m.ToUser, &m.Content, &m.SentAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
