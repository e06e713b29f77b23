package repositories

import (
	"context"

	"convodesk/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// Contact Repository GORM Implementation
// ===========================================================================

type contactRepo struct {
	db *gorm.DB
}

// NewContactRepository builds a GORM-backed ContactRepository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepo{db: db}
}

// FindByID finds a contact by ID.
func (r *contactRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.WithContext(ctx).First(&contact, id).Error; err != nil {
		return nil, translate(err)
	}
	return &contact, nil
}

// FindByAccount lists an account's contacts.
func (r *contactRepo) FindByAccount(ctx context.Context, accountID uuid.UUID, opts FindOptions) ([]models.Contact, int64, error) {
	opts.SetDefaults()

	query := r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("account_id = ?", accountID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var contacts []models.Contact
	err := query.
		Order(opts.GetOrderClause()).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&contacts).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	return contacts, total, nil
}

// Create inserts a new contact.
func (r *contactRepo) Create(ctx context.Context, contact *models.Contact) error {
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return translate(err)
	}
	return nil
}
