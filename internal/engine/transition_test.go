package engine

import (
	"testing"

	apperrors "convodesk/internal/errors"
	"convodesk/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAllowedEditPath(t *testing.T) {
	statuses := []models.ConversationStatus{
		models.StatusOpen, models.StatusPending, models.StatusResolved,
	}

	// The edit dialog may use every directed edge, including reopening.
	for _, from := range statuses {
		for _, to := range statuses {
			want := from != to
			assert.Equal(t, want, Allowed(from, to, PathEdit), "%s -> %s", from, to)
		}
	}
}

func TestAllowedBoardPath(t *testing.T) {
	cases := []struct {
		from, to models.ConversationStatus
		allow    bool
	}{
		{models.StatusOpen, models.StatusPending, true},
		{models.StatusPending, models.StatusOpen, true},
		{models.StatusOpen, models.StatusResolved, true},
		{models.StatusPending, models.StatusResolved, true},
		// Resolved is frozen on the board.
		{models.StatusResolved, models.StatusOpen, false},
		{models.StatusResolved, models.StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allow, Allowed(tc.from, tc.to, PathBoard), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidateTransitionSameStatusIsNoOp(t *testing.T) {
	account := uuid.New()
	c := conv(1, account, nil)
	c.Status = models.StatusResolved

	// Even resolved and unassigned: no change requested, nothing to deny.
	assert.NoError(t, ValidateTransition(&c, models.StatusResolved, PathBoard))
	assert.NoError(t, ValidateTransition(&c, models.StatusResolved, PathEdit))
}

func TestValidateTransitionUnassignedLock(t *testing.T) {
	account := uuid.New()
	agent := uuid.New()

	unassigned := conv(1, account, nil)
	err := ValidateTransition(&unassigned, models.StatusPending, PathBoard)
	assert.ErrorIs(t, err, apperrors.ErrTransitionRejected)

	// The edit path is unaffected by the unassigned lock.
	assert.NoError(t, ValidateTransition(&unassigned, models.StatusPending, PathEdit))

	assigned := conv(2, account, &agent)
	assert.NoError(t, ValidateTransition(&assigned, models.StatusPending, PathBoard))
}

func TestValidateTransitionResolvedFreeze(t *testing.T) {
	account := uuid.New()
	agent := uuid.New()

	c := conv(1, account, &agent)
	c.Status = models.StatusResolved

	for _, target := range []models.ConversationStatus{models.StatusOpen, models.StatusPending} {
		err := ValidateTransition(&c, target, PathBoard)
		assert.ErrorIs(t, err, apperrors.ErrTransitionRejected, "resolved -> %s via board", target)
	}

	// Explicit reopen stays legal.
	assert.NoError(t, ValidateTransition(&c, models.StatusOpen, PathEdit))
}

func TestValidateTransitionUnknownStatus(t *testing.T) {
	account := uuid.New()
	agent := uuid.New()
	c := conv(1, account, &agent)

	err := ValidateTransition(&c, "archived", PathEdit)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
