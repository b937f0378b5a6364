package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jobive/backend/internal/models"
	"github.com/jobive/backend/internal/repositories"
	"go.uber.org/zap"
)

type MessageService struct {
	messages *repositories.MessageRepo
	users    *repositories.UserRepo
	log      *zap.Logger
}

func NewMessageService(messages *repositories.MessageRepo, users *repositories.UserRepo, log *zap.Logger) *MessageService {
	return &MessageService{messages: messages, users: users, log: log}
}

func (s *MessageService) Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*models.Message, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: message content required", ErrValidation)
	}
	if senderID == receiverID {
		return nil, fmt.Errorf("%w: cannot message yourself", ErrValidation)
	}
	if _, err := s.users.GetByID(ctx, receiverID); err != nil {
		return nil, fmt.Errorf("%w: receiver", ErrNotFound)
	}

	m := &models.Message{SenderID: senderID, ReceiverID: receiverID, Content: content}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MessageService) Conversation(ctx context.Context, userID, otherID uuid.UUID, limit int) ([]models.Message, error) {
	return s.messages.Conversation(ctx, userID, otherID, limit)
}

// Delete removes one of the caller's own sent messages.
func (s *MessageService) Delete(ctx context.Context, messageID, senderID uuid.UUID) error {
	removed, err := s.messages.Delete(ctx, messageID, senderID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: message", ErrNotFound)
	}
	return nil
}
