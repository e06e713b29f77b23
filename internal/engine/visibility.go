package engine

import (
	"convodesk/internal/models"

	"github.com/google/uuid"
)

// ===========================================================================
// Visibility Scoping Resolver
// Decides which conversations an actor is entitled to see. A pure filter:
// no side effects, idempotent, order-preserving. The query layer already
// partitions by account, but scoping is always re-applied here so a bad
// query can never leak rows across tenants.
// ===========================================================================

// Scope returns the subset of conversations the actor may see.
//
// Superadmins see everything, optionally narrowed by an explicit account
// filter (they are bound to no account). Admins see their account. Agents
// see their account's conversations that are unassigned or assigned to
// them. Any other role fails closed and sees nothing.
func Scope(actor models.Actor, accountFilter *uuid.UUID, conversations []models.Conversation) []models.Conversation {
	visible := make([]models.Conversation, 0, len(conversations))

	switch actor.Role {
	case models.RoleSuperadmin:
		for _, c := range conversations {
			if accountFilter != nil && c.AccountID != *accountFilter {
				continue
			}
			visible = append(visible, c)
		}

	case models.RoleAdmin:
		if actor.AccountID == nil {
			return visible
		}
		for _, c := range conversations {
			if c.AccountID == *actor.AccountID {
				visible = append(visible, c)
			}
		}

	case models.RoleAgent:
		if actor.AccountID == nil {
			return visible
		}
		for _, c := range conversations {
			if c.AccountID != *actor.AccountID {
				continue
			}
			if c.AssigneeID == nil || *c.AssigneeID == actor.ID {
				visible = append(visible, c)
			}
		}

	default:
		// Unknown role: empty set, never an error. Failing closed here
		// keeps list rendering resilient while leaking nothing.
	}

	return visible
}
