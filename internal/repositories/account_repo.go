package repositories

import (
	"context"

	"convodesk/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// Account Repository GORM Implementation
// ===========================================================================

type accountRepo struct {
	db *gorm.DB
}

// NewAccountRepository builds a GORM-backed AccountRepository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepo{db: db}
}

// FindByID finds an account by ID.
func (r *accountRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

// FindBySlug finds an account by slug.
func (r *accountRepo) FindBySlug(ctx context.Context, slug string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&account).Error
	if err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

// Create inserts a new account.
func (r *accountRepo) Create(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Update saves account changes.
func (r *accountRepo) Update(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Save(account).Error; err != nil {
		return translate(err)
	}
	return nil
}
