package engine

import (
	apperrors "convodesk/internal/errors"
	"convodesk/internal/models"

	"github.com/google/uuid"
)

// ===========================================================================
// Drag-and-Drop Intent Translator
// Turns a board drag gesture into a single validated mutation intent, or a
// typed rejection with no partial effects. The translator is a pure
// decision function; executing the intent is the caller's job.
// ===========================================================================

// Board column identifiers. ColumnUnassigned is a triage bucket, not a
// status; the other columns map one-to-one onto statuses.
const (
	ColumnUnassigned = "unassigned"
	ColumnOpen       = "open"
	ColumnPending    = "pending"
	ColumnResolved   = "resolved"
)

// MutationIntent is a validated, ready-to-execute status change. The store
// collaborator executes it; the engine never applies it locally.
type MutationIntent struct {
	ConversationID uuid.UUID
	NewStatus      models.ConversationStatus
}

// columnStatus maps a column identifier onto a status.
func columnStatus(column string) (models.ConversationStatus, bool) {
	switch column {
	case ColumnOpen:
		return models.StatusOpen, true
	case ColumnPending:
		return models.StatusPending, true
	case ColumnResolved:
		return models.StatusResolved, true
	default:
		return "", false
	}
}

// TranslateDrag converts a drag from source to target into a mutation
// intent. A nil intent with a nil error is a no-op: nothing to mutate,
// nothing to report.
func TranslateDrag(source, target string, conv *models.Conversation) (*MutationIntent, error) {
	// Dropping a card back where it came from must always succeed
	// silently, whatever state the conversation is in.
	if source == target {
		return nil, nil
	}

	// The unassigned column is not a status. Dropping onto it is never
	// reinterpreted as an unassign mutation; that has to be an explicit
	// assignment action.
	if target == ColumnUnassigned {
		return nil, apperrors.New(apperrors.ErrInvalidInput,
			"cards cannot be dropped on the unassigned column; use the assign action instead")
	}

	status, ok := columnStatus(target)
	if !ok {
		return nil, apperrors.New(apperrors.ErrInvalidInput,
			"unknown board column "+target)
	}

	if status == conv.Status {
		return nil, nil
	}

	if err := ValidateTransition(conv, status, PathBoard); err != nil {
		return nil, err
	}

	return &MutationIntent{
		ConversationID: conv.ID,
		NewStatus:      status,
	}, nil
}
