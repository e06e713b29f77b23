package engine

import (
	apperrors "convodesk/internal/errors"
	"convodesk/internal/models"
)

// ===========================================================================
// Status Transition Validator
// The legal state graph for conversation status, declared once as a table
// instead of inline conditionals scattered through drag handlers. The
// validator only authorizes; it never mutates.
// ===========================================================================

// Path distinguishes how a transition was requested.
type Path int

const (
	// PathEdit the explicit edit dialog; any role with write access may
	// use every edge, including reopening resolved conversations
	PathEdit Path = iota

	// PathBoard a kanban drag; optimized for fast triage, so it must not
	// silently reopen closed work or move conversations nobody owns yet
	PathBoard
)

type edge struct {
	from, to models.ConversationStatus
}

// editEdges covers all six directed edges between the three statuses.
var editEdges = map[edge]bool{
	{models.StatusOpen, models.StatusPending}:     true,
	{models.StatusPending, models.StatusOpen}:     true,
	{models.StatusOpen, models.StatusResolved}:    true,
	{models.StatusResolved, models.StatusOpen}:    true,
	{models.StatusPending, models.StatusResolved}: true,
	{models.StatusResolved, models.StatusPending}: true,
}

// boardEdges excludes every edge out of resolved: resolved conversations
// are frozen on the board and reopen only through the edit path.
var boardEdges = map[edge]bool{
	{models.StatusOpen, models.StatusPending}:     true,
	{models.StatusPending, models.StatusOpen}:     true,
	{models.StatusOpen, models.StatusResolved}:    true,
	{models.StatusPending, models.StatusResolved}: true,
}

// Allowed reports whether the directed edge from -> to is legal on the
// given path. Same-status "transitions" are not edges and return false.
func Allowed(from, to models.ConversationStatus, path Path) bool {
	if path == PathBoard {
		return boardEdges[edge{from, to}]
	}
	return editEdges[edge{from, to}]
}

// ValidateTransition authorizes changing conv's status to target via the
// given path. A same-status target is a no-op and always passes.
func ValidateTransition(conv *models.Conversation, target models.ConversationStatus, path Path) error {
	if !target.Valid() {
		return apperrors.New(apperrors.ErrInvalidInput,
			"unknown conversation status "+string(target))
	}
	if conv.Status == target {
		return nil
	}

	if path == PathBoard {
		if !conv.IsAssigned() {
			return apperrors.New(apperrors.ErrTransitionRejected,
				"assign an agent before changing status")
		}
		if conv.IsResolved() {
			return apperrors.New(apperrors.ErrTransitionRejected,
				"resolved conversations cannot be moved on the board; reopen them from the conversation editor")
		}
	}

	if !Allowed(conv.Status, target, path) {
		return apperrors.New(apperrors.ErrTransitionRejected,
			"cannot change status from "+string(conv.Status)+" to "+string(target))
	}
	return nil
}
