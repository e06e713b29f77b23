package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// BaseModel
// Shared columns for every persisted entity: UUID primary key, timestamps,
// soft delete.
// ===========================================================================

// BaseModel holds the columns common to all models.
type BaseModel struct {
	// ID is a UUID primary key, generated when missing
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`

	// CreatedAt time the record was inserted
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`

	// UpdatedAt advances on every mutation
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`

	// DeletedAt soft delete marker
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate generates a UUID when the caller did not supply one.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// GetID returns the model's ID.
func (b *BaseModel) GetID() uuid.UUID {
	return b.ID
}

// IsDeleted reports whether the model was soft deleted.
func (b *BaseModel) IsDeleted() bool {
	return b.DeletedAt.Valid
}
