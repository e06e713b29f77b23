package engine

import (
	"context"
	"strings"

	apperrors "convodesk/internal/errors"
	"convodesk/internal/models"

	"github.com/google/uuid"
)

// ===========================================================================
// Assignment Guard
// Two checks that used to be duplicated across call sites: whether an actor
// may interact with a conversation at all, and whether a candidate assignee
// is legitimate for it.
// ===========================================================================

// minAssigneeLen is the shortest identifier accepted before parsing.
// A UUID without hyphens is 32 characters; anything shorter is upstream
// corruption, not a typo worth resolving.
const minAssigneeLen = 32

// AgentDirectory resolves candidate assignees to user records. Kept narrow
// so the guard is testable without a database. Implementations return an
// error wrapping apperrors.ErrNotFound for unknown identifiers.
type AgentDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// CanOpen decides whether the actor may open the conversation.
//
// Admins and superadmins are always allowed: they need to inspect
// unassigned conversations to triage them. Agents may never open a
// conversation with no assignee; that is a product rule against unmanaged
// access, not an incidental gap.
func CanOpen(actor models.Actor, conv *models.Conversation) error {
	switch actor.Role {
	case models.RoleSuperadmin:
		return nil

	case models.RoleAdmin:
		if !actor.BelongsTo(conv.AccountID) {
			return apperrors.New(apperrors.ErrScopeDenied,
				"conversation belongs to a different account")
		}
		return nil

	case models.RoleAgent:
		if !actor.BelongsTo(conv.AccountID) {
			return apperrors.New(apperrors.ErrScopeDenied,
				"conversation belongs to a different account")
		}
		if !conv.IsAssigned() {
			return apperrors.New(apperrors.ErrForbidden,
				"assign an agent before opening this conversation")
		}
		return nil

	default:
		return apperrors.New(apperrors.ErrScopeDenied, "unrecognized role")
	}
}

// ValidateAssignee checks that candidate names a real, active agent or
// admin of the conversation's account, and returns the resolved user.
//
// Placeholder values ("", "null", "undefined") and too-short identifiers
// are rejected before any lookup. Selection widgets have shipped those
// literals when rendering with an empty value, so the filtering is
// deliberate, not paranoia.
func ValidateAssignee(ctx context.Context, candidate string, conv *models.Conversation, directory AgentDirectory) (*models.User, error) {
	trimmed := strings.TrimSpace(candidate)

	if trimmed == "" || trimmed == "null" || trimmed == "undefined" {
		return nil, apperrors.New(apperrors.ErrAssignmentRejected,
			"assignee identifier is missing")
	}
	if len(trimmed) < minAssigneeLen {
		return nil, apperrors.New(apperrors.ErrAssignmentRejected,
			"assignee identifier is malformed")
	}

	id, err := uuid.Parse(trimmed)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrAssignmentRejected,
			"assignee identifier is malformed")
	}

	user, err := directory.FindByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrAssignmentRejected,
				"assignee does not exist")
		}
		return nil, apperrors.New(apperrors.ErrStoreFailure,
			"could not look up assignee")
	}
	if user == nil {
		return nil, apperrors.New(apperrors.ErrAssignmentRejected,
			"assignee does not exist")
	}

	if !user.CanBeAssigned() {
		return nil, apperrors.New(apperrors.ErrAssignmentRejected,
			"assignee must be an active agent or admin")
	}
	if user.AccountID == nil || *user.AccountID != conv.AccountID {
		return nil, apperrors.New(apperrors.ErrAssignmentRejected,
			"assignee belongs to a different account")
	}

	return user, nil
}
