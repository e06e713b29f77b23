package dto

// ===========================================================================
// Request DTOs
// Validation and parsing of request bodies / query strings. Assignee
// identifiers arrive as raw strings and stay that way: the assignment
// guard owns all candidate validation, including placeholder junk the
// frontend may serialize.
// ===========================================================================

// PaginationRequest pagination query for list endpoints
type PaginationRequest struct {
	// Page current page (starts at 1)
	Page int `form:"page" binding:"min=0"`

	// Limit records per page (max 100)
	Limit int `form:"limit" binding:"min=0,max=100"`
}

// SetDefaults fills default pagination values
func (p *PaginationRequest) SetDefaults() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
}

// Offset computes the database query offset
func (p *PaginationRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ===========================================================================
// Auth Requests
// ===========================================================================

// LoginRequest login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=1"`
}

// RefreshRequest token refresh body; the token may also ride in a cookie
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ===========================================================================
// Conversation Requests
// ===========================================================================

// ListConversationsRequest conversation listing query
type ListConversationsRequest struct {
	PaginationRequest

	// Status filter by status
	Status string `form:"status" binding:"omitempty,oneof=open pending resolved"`

	// AssigneeID filter by assigned agent
	AssigneeID string `form:"assignee_id"`

	// AccountID explicit account filter; superadmins only
	AccountID string `form:"account_id"`
}

// UpdateConversationRequest explicit-edit body. A nil field means "leave
// unchanged". AssigneeID is deliberately a plain string.
type UpdateConversationRequest struct {
	// Status new status (all transitions legal on this path)
	Status *string `json:"status" binding:"omitempty,oneof=open pending resolved"`

	// AssigneeID raw assignee candidate
	AssigneeID *string `json:"assignee_id"`

	// Unassign clears the assignee
	Unassign bool `json:"unassign"`

	// Priority triage priority
	Priority *string `json:"priority" binding:"omitempty,oneof=low normal high urgent"`

	// KanbanStage board placement tag
	KanbanStage *string `json:"kanban_stage" binding:"omitempty,max=100"`
}

// AssignConversationRequest single-purpose assignment body
type AssignConversationRequest struct {
	// AssigneeID raw assignee candidate
	AssigneeID string `json:"assignee_id" binding:"required"`
}

// MoveCardRequest board drag-and-drop body
type MoveCardRequest struct {
	// SourceColumn column the card was lifted from
	SourceColumn string `json:"source_column" binding:"required"`

	// TargetColumn column the card was dropped on
	TargetColumn string `json:"target_column" binding:"required"`
}

// ===========================================================================
// Message Requests
// ===========================================================================

// CreateMessageRequest agent reply body
type CreateMessageRequest struct {
	// Content message text (required, 1-5000 chars)
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// InboundMessageRequest customer message intake body (widget/webhook)
type InboundMessageRequest struct {
	// ContactID the sending contact
	ContactID string `json:"contact_id" binding:"required,uuid"`

	// Content message text
	Content string `json:"content" binding:"required,min=1,max=5000"`
}
