package service

import (
	"context"
	"fmt"

	"github.com/msomdec/connectrandom/internal/domain"
)

// MessagingService persists and retrieves direct messages.
type MessagingService struct {
	messages domain.MessageRepository
}

// NewMessagingService creates a new MessagingService.
func NewMessagingService(messages domain.MessageRepository) *MessagingService {
	return &MessagingService{messages: messages}
}

// Send stores one directed message. The id and send instant are assigned
// by the store. The sender is taken at the caller's word; it is not
// checked against the authenticated identity, and the recipient is not
// checked against the user table (see the handler for the flagged gap).
func (s *MessagingService) Send(ctx context.Context, from, to, content string) (*domain.Message, error) {
	if from == "" || to == "" || content == "" {
		return nil, fmt.Errorf("%w: from, to, and content are required", domain.ErrMissingField)
	}

	msg := &domain.Message{
		FromUser: from,
		ToUser:   to,
		Content:  content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return msg, nil
}

// Conversation returns every message between currentUser and otherUser in
// either direction, oldest first. currentUser is the session identity the
// caller resolved; an empty value means the request is not logged in.
func (s *MessagingService) Conversation(ctx context.Context, currentUser, otherUser string) ([]domain.Message, error) {
	if currentUser == "" {
		return nil, domain.ErrUnauthenticated
	}

	msgs, err := s.messages.Conversation(ctx, currentUser, otherUser)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	return msgs, nil
}
