package services

import (
	"context"

	"convodesk/internal/engine"
	apperrors "convodesk/internal/errors"
	"convodesk/internal/models"
	"convodesk/internal/realtime"
	"convodesk/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ===========================================================================
// Conversation Service Implementation
// ===========================================================================

type conversationService struct {
	conversations repositories.ConversationRepository
	messages      repositories.MessageRepository
	users         repositories.UserRepository
	publisher     realtime.Publisher
	log           *zap.Logger
}

// NewConversationService builds the conversation service. Pass a
// realtime.NoopPublisher when no broker is configured.
func NewConversationService(
	conversations repositories.ConversationRepository,
	messages repositories.MessageRepository,
	users repositories.UserRepository,
	publisher realtime.Publisher,
	log *zap.Logger,
) ConversationService {
	return &conversationService{
		conversations: conversations,
		messages:      messages,
		users:         users,
		publisher:     publisher,
		log:           log,
	}
}

// ===========================================================================
// Reads
// ===========================================================================

func (s *conversationService) List(ctx context.Context, actor models.Actor, filter ListFilter) ([]models.Conversation, int64, error) {
	opts := repositories.FindOptions{
		Offset:  (max(filter.Page, 1) - 1) * clampLimit(filter.Limit),
		Limit:   clampLimit(filter.Limit),
		OrderBy: "last_message_at",
		Filters: map[string]interface{}{},
	}
	if filter.Status != nil {
		opts.Filters["status"] = *filter.Status
	}
	if filter.AssigneeID != nil {
		opts.Filters["assignee_id"] = *filter.AssigneeID
	}

	var (
		rows  []models.Conversation
		total int64
		err   error
	)
	switch actor.Role {
	case models.RoleSuperadmin:
		rows, total, err = s.conversations.FindAll(ctx, filter.AccountID, opts)
	case models.RoleAdmin, models.RoleAgent:
		if actor.AccountID == nil {
			return []models.Conversation{}, 0, nil
		}
		rows, total, err = s.conversations.FindByAccount(ctx, *actor.AccountID, opts)
	default:
		return []models.Conversation{}, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	// The store query already narrowed by account; the scoping pass still
	// runs so assignment rules for agents hold no matter what the query
	// returned.
	scoped := engine.Scope(actor, filter.AccountID, rows)
	if len(scoped) != len(rows) {
		total = int64(len(scoped))
	}
	return scoped, total, nil
}

func (s *conversationService) Get(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Conversation, error) {
	conv, err := s.conversations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := engine.CanOpen(actor, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *conversationService) Messages(ctx context.Context, actor models.Actor, id uuid.UUID, page, limit int) ([]models.Message, int64, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, 0, err
	}
	opts := repositories.FindOptions{
		Offset: (max(page, 1) - 1) * clampLimit(limit),
		Limit:  clampLimit(limit),
	}
	return s.messages.FindByConversation(ctx, id, opts)
}

// ===========================================================================
// Writes
// ===========================================================================

func (s *conversationService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, req UpdateRequest) (*models.Conversation, error) {
	conv, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	// Validate everything before touching the store: a batched edit is
	// all-or-nothing.
	if req.Status != nil {
		if err := engine.ValidateTransition(conv, *req.Status, engine.PathEdit); err != nil {
			return nil, err
		}
	}

	var assignee *models.User
	if req.AssigneeID != nil {
		assignee, err = engine.ValidateAssignee(ctx, *req.AssigneeID, conv, s.users)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case assignee != nil:
		conv.Assign(assignee.ID)
	case req.Unassign:
		conv.Unassign()
	}
	if req.Status != nil {
		switch *req.Status {
		case models.StatusResolved:
			conv.Resolve()
		default:
			if conv.IsResolved() {
				conv.Reopen()
			}
			conv.Status = *req.Status
		}
	}
	if req.Priority != nil {
		conv.Priority = *req.Priority
	}
	if req.KanbanStage != nil {
		conv.KanbanStage = req.KanbanStage
	}

	if err := s.conversations.Update(ctx, conv); err != nil {
		return nil, err
	}
	s.publisher.PublishConversationChange(ctx, conv.AccountID, conv.ID)
	return conv, nil
}

func (s *conversationService) Assign(ctx context.Context, actor models.Actor, id uuid.UUID, candidate string) (*models.Conversation, error) {
	conv, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	assignee, err := engine.ValidateAssignee(ctx, candidate, conv, s.users)
	if err != nil {
		return nil, err
	}
	// Last write wins on concurrent reassignment.
	if err := s.conversations.UpdateAssignee(ctx, conv.ID, &assignee.ID); err != nil {
		return nil, err
	}
	conv.Assign(assignee.ID)
	s.publisher.PublishConversationChange(ctx, conv.AccountID, conv.ID)
	return conv, nil
}

func (s *conversationService) Unassign(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Conversation, error) {
	conv, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.conversations.UpdateAssignee(ctx, conv.ID, nil); err != nil {
		return nil, err
	}
	conv.Unassign()
	s.publisher.PublishConversationChange(ctx, conv.AccountID, conv.ID)
	return conv, nil
}

func (s *conversationService) MoveCard(ctx context.Context, actor models.Actor, id uuid.UUID, sourceColumn, targetColumn string) (*models.Conversation, error) {
	conv, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	intent, err := engine.TranslateDrag(sourceColumn, targetColumn, conv)
	if err != nil {
		return nil, err
	}
	if intent == nil {
		// Dropping a card back where it came from is not a mutation.
		return conv, nil
	}

	if err := s.conversations.UpdateStatus(ctx, intent.ConversationID, intent.NewStatus); err != nil {
		return nil, err
	}
	conv.Status = intent.NewStatus
	if intent.NewStatus == models.StatusResolved {
		conv.Resolve()
	}
	s.publisher.PublishConversationChange(ctx, conv.AccountID, conv.ID)
	return conv, nil
}

func (s *conversationService) Agents(ctx context.Context, actor models.Actor, accountID uuid.UUID) ([]models.User, error) {
	if actor.Role != models.RoleSuperadmin && !actor.BelongsTo(accountID) {
		return nil, apperrors.New(apperrors.ErrScopeDenied, "cannot list agents of another account")
	}
	return s.users.FindAgents(ctx, accountID)
}

// ===========================================================================
// Helpers
// ===========================================================================

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
