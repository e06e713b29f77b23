package models

import "github.com/google/uuid"

// ===========================================================================
// Contact
// The customer on the other side of a conversation.
// ===========================================================================

// Contact represents a customer of an account.
type Contact struct {
	BaseModel

	// AccountID owning account
	AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`

	// Name display name
	Name string `gorm:"size:255;not null" json:"name"`

	// Email optional contact email
	Email *string `gorm:"size:255;index" json:"email,omitempty"`

	// Phone optional phone number
	Phone *string `gorm:"size:50" json:"phone,omitempty"`

	// Relations
	Account       Account        `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Conversations []Conversation `gorm:"foreignKey:ContactID" json:"conversations,omitempty"`
}

// TableName returns the table name.
func (Contact) TableName() string {
	return "contacts"
}
