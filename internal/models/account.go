package models

// ===========================================================================
// Account
// Tenant boundary of the system. Every conversation, contact and user
// belongs to exactly one account; cross-account references are forbidden.
// ===========================================================================

// Account represents a tenant.
type Account struct {
	BaseModel

	// Name display name ("Acme Support")
	Name string `gorm:"size:255;not null" json:"name"`

	// Slug URL-friendly identifier ("acme-support")
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	// IsActive accounts are deactivated, never hard-deleted
	IsActive bool `gorm:"default:true" json:"is_active"`

	// Relations
	Users         []User         `gorm:"foreignKey:AccountID" json:"users,omitempty"`
	Contacts      []Contact      `gorm:"foreignKey:AccountID" json:"contacts,omitempty"`
	Conversations []Conversation `gorm:"foreignKey:AccountID" json:"conversations,omitempty"`
}

// TableName returns the table name.
func (Account) TableName() string {
	return "accounts"
}
