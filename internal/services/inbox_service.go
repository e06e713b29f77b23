package services

import (
	"context"

	"convodesk/internal/models"

	"github.com/google/uuid"
)

// ===========================================================================
// Inbox Service Interface
// Message intake: inbound customer messages, outbound agent replies and
// system notes. Messages are append-only; this is the only writer.
// ===========================================================================

// InboxService records traffic on conversations.
type InboxService interface {
	// RecordInbound stores a customer message, reusing the contact's
	// current non-resolved conversation or opening a fresh unassigned
	// one
	RecordInbound(ctx context.Context, accountID, contactID uuid.UUID, content string) (*models.Message, error)

	// RecordOutbound stores an agent reply under the same guards as
	// opening the conversation
	RecordOutbound(ctx context.Context, actor models.Actor, conversationID uuid.UUID, content string) (*models.Message, error)

	// RecordSystemNote appends a system-generated line to the transcript
	RecordSystemNote(ctx context.Context, conversationID uuid.UUID, content string) (*models.Message, error)
}
