package services

import (
	"context"
	"testing"

	apperrors "convodesk/internal/errors"
	"convodesk/internal/models"
	"convodesk/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ===========================================================================
// Fakes
// ===========================================================================

type fakeConversationRepo struct {
	findByID       func(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	findByAccount  func(ctx context.Context, accountID uuid.UUID, opts repositories.FindOptions) ([]models.Conversation, int64, error)
	findAll        func(ctx context.Context, accountFilter *uuid.UUID, opts repositories.FindOptions) ([]models.Conversation, int64, error)
	updateCalls    int
	statusCalls    int
	assigneeCalls  int
	lastNewStatus  models.ConversationStatus
	lastAssigneeID *uuid.UUID
}

func (f *fakeConversationRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	return f.findByID(ctx, id)
}

func (f *fakeConversationRepo) FindByAccount(ctx context.Context, accountID uuid.UUID, opts repositories.FindOptions) ([]models.Conversation, int64, error) {
	return f.findByAccount(ctx, accountID, opts)
}

func (f *fakeConversationRepo) FindAll(ctx context.Context, accountFilter *uuid.UUID, opts repositories.FindOptions) ([]models.Conversation, int64, error) {
	return f.findAll(ctx, accountFilter, opts)
}

func (f *fakeConversationRepo) FindOpenByContact(ctx context.Context, contactID uuid.UUID) (*models.Conversation, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeConversationRepo) Create(ctx context.Context, conv *models.Conversation) error {
	return nil
}

func (f *fakeConversationRepo) Update(ctx context.Context, conv *models.Conversation) error {
	f.updateCalls++
	return nil
}

func (f *fakeConversationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ConversationStatus) error {
	f.statusCalls++
	f.lastNewStatus = status
	return nil
}

func (f *fakeConversationRepo) UpdateAssignee(ctx context.Context, id uuid.UUID, assigneeID *uuid.UUID) error {
	f.assigneeCalls++
	f.lastAssigneeID = assigneeID
	return nil
}

type fakeUserRepo struct {
	findByID   func(ctx context.Context, id uuid.UUID) (*models.User, error)
	findAgents func(ctx context.Context, accountID uuid.UUID) ([]models.User, error)
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return f.findByID(ctx, id)
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) FindAgents(ctx context.Context, accountID uuid.UUID) ([]models.User, error) {
	if f.findAgents != nil {
		return f.findAgents(ctx, accountID)
	}
	return nil, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error { return nil }
func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error { return nil }

type fakeMessageRepo struct {
	created []*models.Message
}

func (f *fakeMessageRepo) FindByConversation(ctx context.Context, conversationID uuid.UUID, opts repositories.FindOptions) ([]models.Message, int64, error) {
	return nil, 0, nil
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *models.Message) error {
	f.created = append(f.created, message)
	return nil
}

type capturePublisher struct {
	conversationEvents int
	messageEvents      int
	lastAccountID      uuid.UUID
}

func (p *capturePublisher) PublishConversationChange(ctx context.Context, accountID, conversationID uuid.UUID) error {
	p.conversationEvents++
	p.lastAccountID = accountID
	return nil
}

func (p *capturePublisher) PublishMessageChange(ctx context.Context, accountID, conversationID uuid.UUID) error {
	p.messageEvents++
	p.lastAccountID = accountID
	return nil
}

// ===========================================================================
// Helpers
// ===========================================================================

func agentActor(accountID uuid.UUID) models.Actor {
	return models.Actor{ID: uuid.New(), Role: models.RoleAgent, AccountID: &accountID}
}

func adminActor(accountID uuid.UUID) models.Actor {
	return models.Actor{ID: uuid.New(), Role: models.RoleAdmin, AccountID: &accountID}
}

func storedConv(accountID uuid.UUID, status models.ConversationStatus, assignee *uuid.UUID) *models.Conversation {
	c := &models.Conversation{
		AccountID:  accountID,
		ContactID:  uuid.New(),
		Status:     status,
		AssigneeID: assignee,
		Priority:   models.PriorityNormal,
	}
	c.ID = uuid.New()
	return c
}

func newService(convRepo *fakeConversationRepo, userRepo *fakeUserRepo, pub *capturePublisher) ConversationService {
	return NewConversationService(convRepo, &fakeMessageRepo{}, userRepo, pub, zap.NewNop())
}

// ===========================================================================
// Tests
// ===========================================================================

func TestList_ReappliesScopingOverStoreResults(t *testing.T) {
	accountID := uuid.New()
	actor := agentActor(accountID)
	other := uuid.New()

	mine := storedConv(accountID, models.StatusOpen, &actor.ID)
	unassigned := storedConv(accountID, models.StatusOpen, nil)
	colleagues := storedConv(accountID, models.StatusOpen, &other)

	convRepo := &fakeConversationRepo{
		// The store hands back the whole account, including a
		// colleague's conversation; the service must still filter it.
		findByAccount: func(ctx context.Context, id uuid.UUID, opts repositories.FindOptions) ([]models.Conversation, int64, error) {
			return []models.Conversation{*mine, *unassigned, *colleagues}, 3, nil
		},
	}

	svc := newService(convRepo, &fakeUserRepo{}, &capturePublisher{})
	rows, total, err := svc.List(context.Background(), actor, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, int64(2), total)
	for _, row := range rows {
		if row.AssigneeID != nil {
			assert.Equal(t, actor.ID, *row.AssigneeID)
		}
	}
}

func TestList_UnknownRoleGetsNothing(t *testing.T) {
	accountID := uuid.New()
	actor := models.Actor{ID: uuid.New(), Role: "owner", AccountID: &accountID}

	svc := newService(&fakeConversationRepo{}, &fakeUserRepo{}, &capturePublisher{})
	rows, total, err := svc.List(context.Background(), actor, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, total)
}

func TestGet_AgentBlockedFromUnassigned(t *testing.T) {
	accountID := uuid.New()
	actor := agentActor(accountID)
	conv := storedConv(accountID, models.StatusOpen, nil)

	convRepo := &fakeConversationRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
			return conv, nil
		},
	}

	svc := newService(convRepo, &fakeUserRepo{}, &capturePublisher{})
	_, err := svc.Get(context.Background(), actor, conv.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}

func TestUpdate_RejectedTransitionNeverReachesStore(t *testing.T) {
	accountID := uuid.New()
	actor := adminActor(accountID)
	conv := storedConv(accountID, models.StatusOpen, nil)

	convRepo := &fakeConversationRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
			return conv, nil
		},
	}
	pub := &capturePublisher{}

	svc := newService(convRepo, &fakeUserRepo{}, pub)
	bogus := models.ConversationStatus("archived")
	_, err := svc.Update(context.Background(), actor, conv.ID, UpdateRequest{Status: &bogus})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Zero(t, convRepo.updateCalls)
	assert.Zero(t, pub.conversationEvents)
}

func TestUpdate_BatchedStatusAndAssignee(t *testing.T) {
	accountID := uuid.New()
	actor := adminActor(accountID)
	conv := storedConv(accountID, models.StatusOpen, nil)

	agent := &models.User{
		AccountID: &accountID,
		Role:      models.RoleAgent,
		IsActive:  true,
	}
	agent.ID = uuid.New()

	convRepo := &fakeConversationRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
			return conv, nil
		},
	}
	userRepo := &fakeUserRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			if id == agent.ID {
				return agent, nil
			}
			return nil, apperrors.ErrNotFound
		},
	}
	pub := &capturePublisher{}

	svc := newService(convRepo, userRepo, pub)
	pending := models.StatusPending
	candidate := agent.ID.String()
	updated, err := svc.Update(context.Background(), actor, conv.ID, UpdateRequest{
		Status:     &pending,
		AssigneeID: &candidate,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, agent.ID, *updated.AssigneeID)
	assert.Equal(t, 1, convRepo.updateCalls)
	assert.Equal(t, 1, pub.conversationEvents)
	assert.Equal(t, accountID, pub.lastAccountID)
}

func TestUpdate_EditPathReopensResolved(t *testing.T) {
	accountID := uuid.New()
	actor := adminActor(accountID)
	conv := storedConv(accountID, models.StatusResolved, nil)
	conv.Resolve()

	convRepo := &fakeConversationRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
			return conv, nil
		},
	}

	svc := newService(convRepo, &fakeUserRepo{}, &capturePublisher{})
	open := models.StatusOpen
	updated, err := svc.Update(context.Background(), actor, conv.ID, UpdateRequest{Status: &open})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, updated.Status)
	assert.Nil(t, updated.ResolvedAt)
}

func TestAssign_MalformedCandidateNeverHitsStore(t *testing.T) {
	accountID := uuid.New()
	actor := adminActor(accountID)
	conv := storedConv(accountID, models.StatusOpen, nil)

	convRepo := &fakeConversationRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
			return conv, nil
		},
	}
	userRepo := &fakeUserRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			t.Fatal("directory lookup must not happen for malformed candidates")
			return nil, nil
		},
	}

	svc := newService(convRepo, userRepo, &capturePublisher{})
	for _, candidate := range []string{"", "null", "undefined", "42"} {
		_, err := svc.Assign(context.Background(), actor, conv.ID, candidate)
		require.Error(t, err, "candidate %q", candidate)
		assert.True(t, apperrors.Is(err, apperrors.ErrAssignmentRejected))
	}
	assert.Zero(t, convRepo.assigneeCalls)
}

func TestAssign_LastWriteWins(t *testing.T) {
	accountID := uuid.New()
	actor := adminActor(accountID)
	first := uuid.New()
	conv := storedConv(accountID, models.StatusOpen, &first)

	second := &models.User{
		AccountID: &accountID,
		Role:      models.RoleAgent,
		IsActive:  true,
	}
	second.ID = uuid.New()

	convRepo := &fakeConversationRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
			return conv, nil
		},
	}
	userRepo := &fakeUserRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return second, nil
		},
	}

	svc := newService(convRepo, userRepo, &capturePublisher{})
	updated, err := svc.Assign(context.Background(), actor, conv.ID, second.ID.String())
	require.NoError(t, err)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, second.ID, *updated.AssigneeID)
	assert.Equal(t, 1, convRepo.assigneeCalls)
}

func TestMoveCard_SameColumnIsSilentNoop(t *testing.T) {
	accountID := uuid.New()
	actor := adminActor(accountID)
	assignee := uuid.New()
	conv := storedConv(accountID, models.StatusOpen, &assignee)

	convRepo := &fakeConversationRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
			return conv, nil
		},
	}
	pub := &capturePublisher{}

	svc := newService(convRepo, &fakeUserRepo{}, pub)
	result, err := svc.MoveCard(context.Background(), actor, conv.ID, "open", "open")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, result.Status)
	assert.Zero(t, convRepo.statusCalls)
	assert.Zero(t, pub.conversationEvents)
}

func TestMoveCard_ValidDragMutatesOnce(t *testing.T) {
	accountID := uuid.New()
	actor := adminActor(accountID)
	assignee := uuid.New()
	conv := storedConv(accountID, models.StatusOpen, &assignee)

	convRepo := &fakeConversationRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
			return conv, nil
		},
	}
	pub := &capturePublisher{}

	svc := newService(convRepo, &fakeUserRepo{}, pub)
	result, err := svc.MoveCard(context.Background(), actor, conv.ID, "open", "pending")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, result.Status)
	assert.Equal(t, 1, convRepo.statusCalls)
	assert.Equal(t, models.StatusPending, convRepo.lastNewStatus)
	assert.Equal(t, 1, pub.conversationEvents)
}

func TestMoveCard_UnassignedCardLocked(t *testing.T) {
	accountID := uuid.New()
	actor := adminActor(accountID)
	conv := storedConv(accountID, models.StatusOpen, nil)

	convRepo := &fakeConversationRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
			return conv, nil
		},
	}

	svc := newService(convRepo, &fakeUserRepo{}, &capturePublisher{})
	_, err := svc.MoveCard(context.Background(), actor, conv.ID, "open", "pending")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrTransitionRejected))
	assert.Zero(t, convRepo.statusCalls)
}

func TestAgents_CrossAccountDenied(t *testing.T) {
	accountID := uuid.New()
	actor := adminActor(accountID)

	svc := newService(&fakeConversationRepo{}, &fakeUserRepo{}, &capturePublisher{})
	_, err := svc.Agents(context.Background(), actor, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrScopeDenied))
}
