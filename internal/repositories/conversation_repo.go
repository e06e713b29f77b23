package repositories

import (
	"context"
	"errors"
	"time"

	apperrors "convodesk/internal/errors"
	"convodesk/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// Conversation Repository GORM Implementation
// ===========================================================================

type conversationRepo struct {
	db *gorm.DB
}

// NewConversationRepository builds a GORM-backed ConversationRepository.
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepo{db: db}
}

// FindByID finds a conversation by ID.
func (r *conversationRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.db.WithContext(ctx).
		Preload("Contact").
		Preload("Assignee").
		First(&conv, id).Error; err != nil {
		return nil, translate(err)
	}
	return &conv, nil
}

// FindByAccount lists conversations of one account.
func (r *conversationRepo) FindByAccount(ctx context.Context, accountID uuid.UUID, opts FindOptions) ([]models.Conversation, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("account_id = ?", accountID)
	return r.list(query, opts)
}

// FindAll lists conversations across accounts (superadmin path).
func (r *conversationRepo) FindAll(ctx context.Context, accountFilter *uuid.UUID, opts FindOptions) ([]models.Conversation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Conversation{})
	if accountFilter != nil {
		query = query.Where("account_id = ?", *accountFilter)
	}
	return r.list(query, opts)
}

func (r *conversationRepo) list(query *gorm.DB, opts FindOptions) ([]models.Conversation, int64, error) {
	opts.SetDefaults()

	if opts.Filters != nil {
		if status, ok := opts.Filters["status"]; ok {
			query = query.Where("status = ?", status)
		}
		if assigneeID, ok := opts.Filters["assignee_id"]; ok {
			query = query.Where("assignee_id = ?", assigneeID)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var conversations []models.Conversation
	err := query.
		Preload("Contact").
		Preload("Assignee").
		Order(opts.GetOrderClause()).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&conversations).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	return conversations, total, nil
}

// FindOpenByContact finds the contact's current non-resolved conversation.
func (r *conversationRepo) FindOpenByContact(ctx context.Context, contactID uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Where("status IN ?", []models.ConversationStatus{models.StatusOpen, models.StatusPending}).
		Order("created_at DESC").
		First(&conv).Error
	if err != nil {
		return nil, translate(err)
	}
	return &conv, nil
}

// Create inserts a new conversation.
func (r *conversationRepo) Create(ctx context.Context, conv *models.Conversation) error {
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Update saves conversation changes.
func (r *conversationRepo) Update(ctx context.Context, conv *models.Conversation) error {
	if err := r.db.WithContext(ctx).Save(conv).Error; err != nil {
		return translate(err)
	}
	return nil
}

// UpdateStatus applies a single validated status change.
func (r *conversationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ConversationStatus) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if status == models.StatusResolved {
		updates["resolved_at"] = time.Now()
	} else {
		updates["resolved_at"] = nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateAssignee applies a single validated assignment change.
func (r *conversationRepo) UpdateAssignee(ctx context.Context, id uuid.UUID, assigneeID *uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"assignee_id": assigneeID,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// translate maps GORM errors onto the application's sentinels so callers
// never import gorm.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.New(apperrors.ErrInvalidInput, "duplicate entry")
	default:
		return apperrors.New(apperrors.ErrStoreFailure, err.Error())
	}
}
