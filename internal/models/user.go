package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ===========================================================================
// User
// A dashboard operator: superadmin, admin or agent.
// NOT the customer (customers are Contacts).
// ===========================================================================

// UserRole enumerates operator roles.
type UserRole string

const (
	// RoleSuperadmin operates across all accounts, bound to none
	RoleSuperadmin UserRole = "superadmin"

	// RoleAdmin manages a single account: users, settings, every conversation
	RoleAdmin UserRole = "admin"

	// RoleAgent handles conversations assigned to them (or unassigned ones)
	RoleAgent UserRole = "agent"
)

// User represents a dashboard operator.
type User struct {
	BaseModel

	// AccountID owning account; nil only for superadmins
	AccountID *uuid.UUID `gorm:"type:uuid;index" json:"account_id,omitempty"`

	// Email login identifier
	Email string `gorm:"size:255;not null;uniqueIndex" json:"email"`

	// PasswordHash bcrypt hash, never serialized
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	// Name display name
	Name string `gorm:"size:255;not null" json:"name"`

	// Role superadmin, admin or agent
	Role UserRole `gorm:"size:50;not null;default:'agent'" json:"role"`

	// IsActive deactivated users cannot log in or be assigned
	IsActive bool `gorm:"default:true" json:"is_active"`

	// LastSeenAt last time the user was online
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`

	// RefreshTokenHash SHA256 of the active refresh token; nil when revoked
	RefreshTokenHash *string `gorm:"size:64" json:"-"`

	// Relations
	Account               *Account       `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	AssignedConversations []Conversation `gorm:"foreignKey:AssigneeID" json:"assigned_conversations,omitempty"`
}

// TableName returns the table name.
func (User) TableName() string {
	return "users"
}

// SetPassword hashes and stores the password with bcrypt.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// IsSuperadmin reports whether the user is account-agnostic.
func (u *User) IsSuperadmin() bool {
	return u.Role == RoleSuperadmin
}

// CanBeAssigned reports whether the user may hold conversations.
// Only active agents and admins qualify.
func (u *User) CanBeAssigned() bool {
	return u.IsActive && (u.Role == RoleAgent || u.Role == RoleAdmin)
}

// Actor derives the request-evaluation identity from the user record.
func (u *User) Actor() Actor {
	return Actor{
		ID:        u.ID,
		Role:      u.Role,
		AccountID: u.AccountID,
	}
}

// UpdateLastSeen records the latest online time.
func (u *User) UpdateLastSeen() {
	now := time.Now()
	u.LastSeenAt = &now
}
