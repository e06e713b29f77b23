package models

import "github.com/google/uuid"

// ===========================================================================
// Actor
// The identity + role + account context a request is evaluated under.
// Derived from the authenticated session, never persisted.
// ===========================================================================

// Actor is the evaluation context for every engine decision.
type Actor struct {
	// ID identity of the operator
	ID uuid.UUID

	// Role superadmin, admin or agent
	Role UserRole

	// AccountID owning account; nil for superadmins
	AccountID *uuid.UUID
}

// IsPrivileged reports whether the actor may triage unassigned
// conversations (admins and superadmins).
func (a Actor) IsPrivileged() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperadmin
}

// BelongsTo reports whether the actor is bound to the given account.
// Superadmins belong to no account and always return false.
func (a Actor) BelongsTo(accountID uuid.UUID) bool {
	return a.AccountID != nil && *a.AccountID == accountID
}
