package models

import "github.com/google/uuid"

// ===========================================================================
// Message
// One entry in a conversation. Append-only: messages are never edited or
// deleted, and recording one advances the parent conversation's updated_at.
// ===========================================================================

// SenderKind enumerates message origins.
type SenderKind string

const (
	// SenderContact inbound from the customer
	SenderContact SenderKind = "contact"

	// SenderAgent outbound from an operator
	SenderAgent SenderKind = "agent"

	// SenderSystem generated by the system (status notes etc.)
	SenderSystem SenderKind = "system"
)

// Message represents a single message in a conversation.
type Message struct {
	BaseModel

	// ConversationID parent conversation
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversation_id"`

	// SenderKind contact, agent or system
	SenderKind SenderKind `gorm:"size:20;not null" json:"sender_kind"`

	// SenderID user ID when the sender is an agent (nullable)
	SenderID *uuid.UUID `gorm:"type:uuid" json:"sender_id,omitempty"`

	// Content message body
	Content string `gorm:"type:text;not null" json:"content"`

	// Relations
	Conversation Conversation `gorm:"foreignKey:ConversationID" json:"conversation,omitempty"`
	Sender       *User        `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

// TableName returns the table name.
func (Message) TableName() string {
	return "messages"
}

// IsInbound reports whether the message came from the contact.
func (m *Message) IsInbound() bool { return m.SenderKind == SenderContact }

// IsFromAgent reports whether an operator sent the message.
func (m *Message) IsFromAgent() bool { return m.SenderKind == SenderAgent }

// Preview returns a truncated view of the content.
func (m *Message) Preview(maxLen int) string {
	if len(m.Content) > maxLen {
		return m.Content[:maxLen-3] + "..."
	}
	return m.Content
}
