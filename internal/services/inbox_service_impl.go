package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"convodesk/internal/engine"
	apperrors "convodesk/internal/errors"
	"convodesk/internal/models"
	"convodesk/internal/realtime"
	"convodesk/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ===========================================================================
// Inbox Service Implementation
// ===========================================================================

type inboxService struct {
	conversations repositories.ConversationRepository
	messages      repositories.MessageRepository
	contacts      repositories.ContactRepository
	publisher     realtime.Publisher
	log           *zap.Logger
}

// NewInboxService builds the inbox service.
func NewInboxService(
	conversations repositories.ConversationRepository,
	messages repositories.MessageRepository,
	contacts repositories.ContactRepository,
	publisher realtime.Publisher,
	log *zap.Logger,
) InboxService {
	return &inboxService{
		conversations: conversations,
		messages:      messages,
		contacts:      contacts,
		publisher:     publisher,
		log:           log,
	}
}

func (s *inboxService) RecordInbound(ctx context.Context, accountID, contactID uuid.UUID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "message content is empty")
	}

	contact, err := s.contacts.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if contact.AccountID != accountID {
		return nil, apperrors.New(apperrors.ErrScopeDenied, "contact belongs to a different account")
	}

	conv, err := s.conversations.FindOpenByContact(ctx, contactID)
	switch {
	case err == nil:
		// reuse the running conversation
	case errors.Is(err, apperrors.ErrNotFound):
		// New traffic opens a fresh unassigned conversation.
		conv = &models.Conversation{
			AccountID: accountID,
			ContactID: contactID,
			Status:    models.StatusOpen,
			Priority:  models.PriorityNormal,
		}
		if err := s.conversations.Create(ctx, conv); err != nil {
			return nil, err
		}
		s.log.Info("conversation opened",
			zap.String("conversation_id", conv.ID.String()),
			zap.String("account_id", accountID.String()),
		)
	default:
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderKind:     models.SenderContact,
		Content:        content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	conv.UpdateLastMessage(content, time.Now())
	if err := s.conversations.Update(ctx, conv); err != nil {
		s.log.Error("update conversation preview failed",
			zap.Error(err),
			zap.String("conversation_id", conv.ID.String()),
		)
	}

	s.publisher.PublishMessageChange(ctx, conv.AccountID, conv.ID)
	s.publisher.PublishConversationChange(ctx, conv.AccountID, conv.ID)
	return msg, nil
}

func (s *inboxService) RecordOutbound(ctx context.Context, actor models.Actor, conversationID uuid.UUID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "message content is empty")
	}

	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	// Replying requires the same access as opening the conversation.
	if err := engine.CanOpen(actor, conv); err != nil {
		return nil, err
	}

	senderID := actor.ID
	msg := &models.Message{
		ConversationID: conv.ID,
		SenderKind:     models.SenderAgent,
		SenderID:       &senderID,
		Content:        content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	now := time.Now()
	conv.SetFirstResponse(now)
	conv.UpdateLastMessage(content, now)
	if err := s.conversations.Update(ctx, conv); err != nil {
		s.log.Error("update conversation preview failed",
			zap.Error(err),
			zap.String("conversation_id", conv.ID.String()),
		)
	}

	s.publisher.PublishMessageChange(ctx, conv.AccountID, conv.ID)
	s.publisher.PublishConversationChange(ctx, conv.AccountID, conv.ID)
	return msg, nil
}

func (s *inboxService) RecordSystemNote(ctx context.Context, conversationID uuid.UUID, content string) (*models.Message, error) {
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderKind:     models.SenderSystem,
		Content:        content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.publisher.PublishMessageChange(ctx, conv.AccountID, conv.ID)
	return msg, nil
}
