package engine

import (
	"testing"

	apperrors "convodesk/internal/errors"
	"convodesk/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateDragSameColumnIsNoOp(t *testing.T) {
	account := uuid.New()

	// Whatever state the conversation is in, dropping a card back on its
	// own column must succeed silently.
	c := conv(1, account, nil)
	c.Status = models.StatusResolved

	for _, col := range []string{ColumnUnassigned, ColumnOpen, ColumnPending, ColumnResolved} {
		intent, err := TranslateDrag(col, col, &c)
		assert.NoError(t, err, "column %q", col)
		assert.Nil(t, intent, "column %q", col)
	}
}

func TestTranslateDragToUnassignedColumn(t *testing.T) {
	account := uuid.New()
	agent := uuid.New()
	c := conv(1, account, &agent)

	// Never reinterpreted as an unassign mutation.
	intent, err := TranslateDrag(ColumnOpen, ColumnUnassigned, &c)
	assert.Nil(t, intent)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "assign action")
}

func TestTranslateDragUnknownColumn(t *testing.T) {
	account := uuid.New()
	agent := uuid.New()
	c := conv(1, account, &agent)

	intent, err := TranslateDrag(ColumnOpen, "archived", &c)
	assert.Nil(t, intent)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestTranslateDragTargetMatchesCurrentStatus(t *testing.T) {
	account := uuid.New()
	c := conv(1, account, nil)
	c.Status = models.StatusPending

	// Different source column, but the target already matches the
	// conversation's status: nothing to mutate.
	intent, err := TranslateDrag(ColumnUnassigned, ColumnPending, &c)
	assert.NoError(t, err)
	assert.Nil(t, intent)
}

func TestTranslateDragResolvedFreeze(t *testing.T) {
	account := uuid.New()
	agent := uuid.New()

	c := conv(5, account, &agent)
	c.Status = models.StatusResolved

	for _, target := range []string{ColumnOpen, ColumnPending} {
		intent, err := TranslateDrag(ColumnResolved, target, &c)
		assert.Nil(t, intent)
		assert.ErrorIs(t, err, apperrors.ErrTransitionRejected, "target %q", target)
	}
}

func TestTranslateDragUnassignedLock(t *testing.T) {
	account := uuid.New()

	c := conv(6, account, nil)
	c.Status = models.StatusOpen

	// Unassigned conversations cannot change status from the board...
	intent, err := TranslateDrag(ColumnOpen, ColumnPending, &c)
	assert.Nil(t, intent)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTransitionRejected)
	assert.Contains(t, err.Error(), "assign an agent")

	// ...but a drop on the current column still succeeds silently.
	intent, err = TranslateDrag(ColumnOpen, ColumnOpen, &c)
	assert.NoError(t, err)
	assert.Nil(t, intent)
}

func TestTranslateDragEmitsSingleIntent(t *testing.T) {
	account := uuid.New()
	agent := uuid.New()

	c := conv(7, account, &agent)
	c.Status = models.StatusOpen

	intent, err := TranslateDrag(ColumnOpen, ColumnResolved, &c)
	require.NoError(t, err)
	require.NotNil(t, intent)
	assert.Equal(t, c.ID, intent.ConversationID)
	assert.Equal(t, models.StatusResolved, intent.NewStatus)

	// The translator authorizes; it never mutates.
	assert.Equal(t, models.StatusOpen, c.Status)
}
