package repositories

import (
	"context"

	"convodesk/internal/models"

	"github.com/google/uuid"
)

// ===========================================================================
// Repository Interfaces
// One interface per entity; the GORM implementations live alongside. The
// engine and services depend on these, never on gorm directly.
// ===========================================================================

// AccountRepository is the data access interface for accounts.
type AccountRepository interface {
	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)

	// FindBySlug finds an account by slug
	FindBySlug(ctx context.Context, slug string) (*models.Account, error)

	// Create inserts a new account
	Create(ctx context.Context, account *models.Account) error

	// Update saves account changes
	Update(ctx context.Context, account *models.Account) error
}

// UserRepository is the data access interface for users. FindByID
// satisfies engine.AgentDirectory.
type UserRepository interface {
	// FindByID finds a user by ID; returns ErrNotFound for unknown ids
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindAgents lists users of an account that can hold conversations
	FindAgents(ctx context.Context, accountID uuid.UUID) ([]models.User, error)

	// Create inserts a new user
	Create(ctx context.Context, user *models.User) error

	// Update saves user changes
	Update(ctx context.Context, user *models.User) error
}

// ContactRepository is the data access interface for contacts.
type ContactRepository interface {
	// FindByID finds a contact by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)

	// FindByAccount lists an account's contacts
	FindByAccount(ctx context.Context, accountID uuid.UUID, opts FindOptions) ([]models.Contact, int64, error)

	// Create inserts a new contact
	Create(ctx context.Context, contact *models.Contact) error
}

// ConversationRepository is the data access interface for conversations.
// List queries partition by account at the query layer; callers still
// re-apply engine scoping to the results.
type ConversationRepository interface {
	// FindByID finds a conversation by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)

	// FindByAccount lists conversations of one account, with optional
	// status/assignee filters in opts
	FindByAccount(ctx context.Context, accountID uuid.UUID, opts FindOptions) ([]models.Conversation, int64, error)

	// FindAll lists conversations across accounts (superadmin path);
	// accountFilter narrows to one account when non-nil
	FindAll(ctx context.Context, accountFilter *uuid.UUID, opts FindOptions) ([]models.Conversation, int64, error)

	// FindOpenByContact finds the contact's current non-resolved
	// conversation, newest first
	FindOpenByContact(ctx context.Context, contactID uuid.UUID) (*models.Conversation, error)

	// Create inserts a new conversation
	Create(ctx context.Context, conv *models.Conversation) error

	// Update saves conversation changes
	Update(ctx context.Context, conv *models.Conversation) error

	// UpdateStatus applies a single validated status change
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ConversationStatus) error

	// UpdateAssignee applies a single validated assignment change;
	// nil clears the assignee
	UpdateAssignee(ctx context.Context, id uuid.UUID, assigneeID *uuid.UUID) error
}

// MessageRepository is the data access interface for messages. Messages
// are append-only; there is deliberately no update or delete.
type MessageRepository interface {
	// FindByConversation lists a conversation's messages oldest first
	FindByConversation(ctx context.Context, conversationID uuid.UUID, opts FindOptions) ([]models.Message, int64, error)

	// Create appends a message
	Create(ctx context.Context, message *models.Message) error
}
