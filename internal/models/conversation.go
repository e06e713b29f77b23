package models

import (
	"time"

	"github.com/google/uuid"
)

// ===========================================================================
// Conversation
// The central tracked interaction between a Contact and the business.
// Created on a contact's first inbound message, mutated by status changes,
// reassignment and new messages. Never deleted by the engine.
// ===========================================================================

// ConversationStatus enumerates conversation states.
type ConversationStatus string

const (
	// StatusOpen being worked or awaiting triage
	StatusOpen ConversationStatus = "open"

	// StatusPending waiting on the contact or a third party
	StatusPending ConversationStatus = "pending"

	// StatusResolved closed; reopening requires an explicit status edit,
	// never a board drag
	StatusResolved ConversationStatus = "resolved"
)

// Valid reports whether s is one of the three known statuses.
func (s ConversationStatus) Valid() bool {
	return s == StatusOpen || s == StatusPending || s == StatusResolved
}

// Priority triage priority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Conversation represents one customer interaction thread.
type Conversation struct {
	BaseModel

	// AccountID owning account
	AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`

	// ContactID the customer this conversation belongs to
	ContactID uuid.UUID `gorm:"type:uuid;not null;index" json:"contact_id"`

	// AssigneeID agent or admin currently responsible (nullable).
	// Must belong to the same account as the conversation.
	AssigneeID *uuid.UUID `gorm:"type:uuid;index" json:"assignee_id,omitempty"`

	// Status open, pending or resolved
	Status ConversationStatus `gorm:"size:50;not null;default:'open';index" json:"status"`

	// Priority triage priority
	Priority Priority `gorm:"size:20;default:'normal'" json:"priority"`

	// KanbanStage board-column tag for triage visualization, distinct from
	// but constrained by Status (nullable)
	KanbanStage *string `gorm:"size:100;index" json:"kanban_stage,omitempty"`

	// LastMessageAt time of the latest message
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`

	// LastMessagePreview preview of the latest message (max 500 chars)
	LastMessagePreview *string `gorm:"size:500" json:"last_message_preview,omitempty"`

	// FirstResponseAt time of the first agent reply
	FirstResponseAt *time.Time `json:"first_response_at,omitempty"`

	// ResolvedAt time the conversation was resolved
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	// Relations
	Account  Account   `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Contact  Contact   `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Assignee *User     `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Messages []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

// TableName returns the table name.
func (Conversation) TableName() string {
	return "conversations"
}

// IsOpen reports whether the conversation is open.
func (c *Conversation) IsOpen() bool { return c.Status == StatusOpen }

// IsResolved reports whether the conversation is resolved.
func (c *Conversation) IsResolved() bool { return c.Status == StatusResolved }

// IsAssigned reports whether someone is responsible for the conversation.
func (c *Conversation) IsAssigned() bool { return c.AssigneeID != nil }

// Assign hands the conversation to a user. Status is untouched; status
// changes go through the transition validator.
func (c *Conversation) Assign(userID uuid.UUID) {
	c.AssigneeID = &userID
}

// Unassign clears the assignee.
func (c *Conversation) Unassign() {
	c.AssigneeID = nil
}

// Resolve marks the conversation resolved.
func (c *Conversation) Resolve() {
	c.Status = StatusResolved
	now := time.Now()
	c.ResolvedAt = &now
}

// Reopen reverses a resolution. Only the explicit edit path may call this.
func (c *Conversation) Reopen() {
	c.Status = StatusOpen
	c.ResolvedAt = nil
}

// UpdateLastMessage records the latest message metadata.
func (c *Conversation) UpdateLastMessage(content string, at time.Time) {
	c.LastMessageAt = &at
	if len(content) > 500 {
		preview := content[:497] + "..."
		c.LastMessagePreview = &preview
	} else {
		c.LastMessagePreview = &content
	}
}

// SetFirstResponse records the first agent reply time, once.
func (c *Conversation) SetFirstResponse(at time.Time) {
	if c.FirstResponseAt == nil {
		c.FirstResponseAt = &at
	}
}
