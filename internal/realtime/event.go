package realtime

import (
	"context"

	"github.com/google/uuid"
)

// ===========================================================================
// Change events
// Events are trigger-to-refetch signals scoped by account. They never carry
// field values; the store stays the single source of truth.
// ===========================================================================

// Tables an event can refer to.
const (
	TableConversations = "conversations"
	TableMessages      = "messages"
)

// Event describes a change to an account's data.
type Event struct {
	// Table which entity changed
	Table string `json:"table"`

	// AccountID owning account
	AccountID uuid.UUID `json:"account_id"`

	// ConversationID affected conversation
	ConversationID uuid.UUID `json:"conversation_id"`
}

// Publisher emits change events after successful mutations.
type Publisher interface {
	// PublishConversationChange signals a status/assignment change
	PublishConversationChange(ctx context.Context, accountID, conversationID uuid.UUID) error

	// PublishMessageChange signals a new message
	PublishMessageChange(ctx context.Context, accountID, conversationID uuid.UUID) error
}

// Transport opens one event subscription per account. Implementations must
// not tie the subscription's lifetime to the Subscribe context; the context
// only bounds connection establishment.
type Transport interface {
	Subscribe(ctx context.Context, accountID uuid.UUID) (Subscription, error)
}

// Subscription is a live per-account event feed. Events preserves the order
// the transport received them in, and is closed when the subscription dies,
// whether through Close or a transport failure.
type Subscription interface {
	Events() <-chan Event
	Close() error
}

// ===========================================================================
// Noop Publisher (for when realtime is disabled)
// ===========================================================================

// NoopPublisher drops every event.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (n *NoopPublisher) PublishConversationChange(ctx context.Context, accountID, conversationID uuid.UUID) error {
	return nil
}

func (n *NoopPublisher) PublishMessageChange(ctx context.Context, accountID, conversationID uuid.UUID) error {
	return nil
}
