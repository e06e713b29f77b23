package repositories

import (
	"context"

	"convodesk/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// Message Repository GORM Implementation
// Append-only: no update, no delete.
// ===========================================================================

type messageRepo struct {
	db *gorm.DB
}

// NewMessageRepository builds a GORM-backed MessageRepository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

// FindByConversation lists a conversation's messages oldest first.
func (r *messageRepo) FindByConversation(ctx context.Context, conversationID uuid.UUID, opts FindOptions) ([]models.Message, int64, error) {
	opts.SetDefaults()
	if opts.OrderBy == "created_at" && opts.OrderDir == "desc" {
		// Chat transcripts read top to bottom.
		opts.OrderDir = "asc"
	}

	query := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ?", conversationID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var messages []models.Message
	err := query.
		Preload("Sender").
		Order(opts.GetOrderClause()).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	return messages, total, nil
}

// Create appends a message.
func (r *messageRepo) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return translate(err)
	}
	return nil
}
