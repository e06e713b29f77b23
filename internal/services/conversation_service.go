package services

import (
	"context"

	"convodesk/internal/models"

	"github.com/google/uuid"
)

// ===========================================================================
// Conversation Service Interface
// The write-side orchestration around the lifecycle engine: every mutation
// is validated locally first, applied through the store, then announced on
// the account's realtime channel. Known-invalid operations never reach the
// store.
// ===========================================================================

// ListFilter narrows a conversation listing.
type ListFilter struct {
	// AccountID explicit account filter; only meaningful for superadmins
	AccountID *uuid.UUID

	// Status optional status filter
	Status *models.ConversationStatus

	// AssigneeID optional assignee filter
	AssigneeID *uuid.UUID

	// Page / Limit pagination
	Page  int
	Limit int
}

// UpdateRequest is the explicit-edit dialog payload. It may batch a status
// change with an assignment change; nil fields stay untouched.
type UpdateRequest struct {
	// Status new status, validated on the edit path
	Status *models.ConversationStatus

	// AssigneeID raw candidate identifier for the assignment guard
	AssigneeID *string

	// Unassign clears the assignee; mutually exclusive with AssigneeID
	Unassign bool

	// Priority new priority
	Priority *models.Priority

	// KanbanStage new board placement tag
	KanbanStage *string
}

// ConversationService exposes every conversation operation the dashboard
// (or any headless client) performs.
type ConversationService interface {
	// List returns the conversations the actor may see, scoped and
	// paginated. Unknown roles get an empty result, never an error.
	List(ctx context.Context, actor models.Actor, filter ListFilter) ([]models.Conversation, int64, error)

	// Get opens one conversation, enforcing visibility and the
	// assignment-before-open rule for agents
	Get(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Conversation, error)

	// Messages lists a conversation's transcript under the same guards
	// as Get
	Messages(ctx context.Context, actor models.Actor, id uuid.UUID, page, limit int) ([]models.Message, int64, error)

	// Update is the explicit-edit path: all six status edges legal,
	// status and assignee may change together
	Update(ctx context.Context, actor models.Actor, id uuid.UUID, req UpdateRequest) (*models.Conversation, error)

	// Assign hands the conversation to a validated candidate; a
	// single-purpose mutation intent
	Assign(ctx context.Context, actor models.Actor, id uuid.UUID, candidate string) (*models.Conversation, error)

	// Unassign clears the assignee
	Unassign(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Conversation, error)

	// MoveCard translates a board drag into at most one status mutation.
	// Dropping a card back on its own column succeeds silently.
	MoveCard(ctx context.Context, actor models.Actor, id uuid.UUID, sourceColumn, targetColumn string) (*models.Conversation, error)

	// Agents lists the assignment candidates for an account
	Agents(ctx context.Context, actor models.Actor, accountID uuid.UUID) ([]models.User, error)
}
