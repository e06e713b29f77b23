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

type fakeContactRepo struct {
	findByID func(ctx context.Context, id uuid.UUID) (*models.Contact, error)
}

func (f *fakeContactRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	return f.findByID(ctx, id)
}

func (f *fakeContactRepo) FindByAccount(ctx context.Context, accountID uuid.UUID, opts repositories.FindOptions) ([]models.Contact, int64, error) {
	return nil, 0, nil
}

func (f *fakeContactRepo) Create(ctx context.Context, contact *models.Contact) error { return nil }

type inboundConvRepo struct {
	fakeConversationRepo
	openByContact func(ctx context.Context, contactID uuid.UUID) (*models.Conversation, error)
	created       []*models.Conversation
}

func (f *inboundConvRepo) FindOpenByContact(ctx context.Context, contactID uuid.UUID) (*models.Conversation, error) {
	return f.openByContact(ctx, contactID)
}

func (f *inboundConvRepo) Create(ctx context.Context, conv *models.Conversation) error {
	conv.ID = uuid.New()
	f.created = append(f.created, conv)
	return nil
}

func seededContact(accountID uuid.UUID) *models.Contact {
	email := "jamie@example.com"
	c := &models.Contact{AccountID: accountID, Name: "Jamie", Email: &email}
	c.ID = uuid.New()
	return c
}

func TestRecordInbound_OpensFreshUnassignedConversation(t *testing.T) {
	accountID := uuid.New()
	contact := seededContact(accountID)

	convRepo := &inboundConvRepo{
		openByContact: func(ctx context.Context, contactID uuid.UUID) (*models.Conversation, error) {
			return nil, apperrors.ErrNotFound
		},
	}
	msgRepo := &fakeMessageRepo{}
	contactRepo := &fakeContactRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
			return contact, nil
		},
	}
	pub := &capturePublisher{}

	svc := NewInboxService(convRepo, msgRepo, contactRepo, pub, zap.NewNop())
	msg, err := svc.RecordInbound(context.Background(), accountID, contact.ID, "hello there")
	require.NoError(t, err)

	require.Len(t, convRepo.created, 1)
	created := convRepo.created[0]
	assert.Equal(t, models.StatusOpen, created.Status)
	assert.Nil(t, created.AssigneeID)
	assert.Equal(t, accountID, created.AccountID)

	assert.Equal(t, models.SenderContact, msg.SenderKind)
	assert.Nil(t, msg.SenderID)
	assert.Equal(t, 1, pub.messageEvents)
	assert.Equal(t, 1, pub.conversationEvents)
}

func TestRecordInbound_ReusesRunningConversation(t *testing.T) {
	accountID := uuid.New()
	contact := seededContact(accountID)
	existing := storedConv(accountID, models.StatusPending, nil)

	convRepo := &inboundConvRepo{
		openByContact: func(ctx context.Context, contactID uuid.UUID) (*models.Conversation, error) {
			return existing, nil
		},
	}
	msgRepo := &fakeMessageRepo{}
	contactRepo := &fakeContactRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
			return contact, nil
		},
	}

	svc := NewInboxService(convRepo, msgRepo, contactRepo, &capturePublisher{}, zap.NewNop())
	msg, err := svc.RecordInbound(context.Background(), accountID, contact.ID, "still broken")
	require.NoError(t, err)

	assert.Empty(t, convRepo.created)
	assert.Equal(t, existing.ID, msg.ConversationID)
}

func TestRecordInbound_CrossAccountContactDenied(t *testing.T) {
	accountID := uuid.New()
	contact := seededContact(uuid.New())

	convRepo := &inboundConvRepo{}
	contactRepo := &fakeContactRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
			return contact, nil
		},
	}

	svc := NewInboxService(convRepo, &fakeMessageRepo{}, contactRepo, &capturePublisher{}, zap.NewNop())
	_, err := svc.RecordInbound(context.Background(), accountID, contact.ID, "hello")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrScopeDenied))
}

func TestRecordOutbound_UnassignedLockHoldsForAgents(t *testing.T) {
	accountID := uuid.New()
	actor := agentActor(accountID)
	conv := storedConv(accountID, models.StatusOpen, nil)

	convRepo := &inboundConvRepo{}
	convRepo.findByID = func(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
		return conv, nil
	}
	msgRepo := &fakeMessageRepo{}

	svc := NewInboxService(convRepo, msgRepo, &fakeContactRepo{}, &capturePublisher{}, zap.NewNop())
	_, err := svc.RecordOutbound(context.Background(), actor, conv.ID, "on it")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
	assert.Empty(t, msgRepo.created)
}

func TestRecordOutbound_SetsFirstResponse(t *testing.T) {
	accountID := uuid.New()
	actor := agentActor(accountID)
	conv := storedConv(accountID, models.StatusOpen, &actor.ID)

	convRepo := &inboundConvRepo{}
	convRepo.findByID = func(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
		return conv, nil
	}
	msgRepo := &fakeMessageRepo{}
	pub := &capturePublisher{}

	svc := NewInboxService(convRepo, msgRepo, &fakeContactRepo{}, pub, zap.NewNop())
	msg, err := svc.RecordOutbound(context.Background(), actor, conv.ID, "looking into it")
	require.NoError(t, err)

	assert.Equal(t, models.SenderAgent, msg.SenderKind)
	require.NotNil(t, msg.SenderID)
	assert.Equal(t, actor.ID, *msg.SenderID)
	require.NotNil(t, conv.FirstResponseAt)
	assert.Equal(t, 1, pub.messageEvents)
}
