package repositories

import (
	"context"

	"convodesk/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// User Repository GORM Implementation
// FindByID doubles as the engine's AgentDirectory.
// ===========================================================================

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

// FindByID finds a user by ID.
func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindAgents lists an account's active agents and admins.
func (r *userRepo) FindAgents(ctx context.Context, accountID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Where("role IN ?", []models.UserRole{models.RoleAgent, models.RoleAdmin}).
		Where("is_active = ?", true).
		Order("name asc").
		Find(&users).Error
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// Create inserts a new user.
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Update saves user changes.
func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return translate(err)
	}
	return nil
}
