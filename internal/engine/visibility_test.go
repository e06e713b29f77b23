package engine

import (
	"testing"

	"convodesk/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conv(id byte, accountID uuid.UUID, assignee *uuid.UUID) models.Conversation {
	c := models.Conversation{
		AccountID:  accountID,
		AssigneeID: assignee,
		Status:     models.StatusOpen,
	}
	c.ID = uuid.UUID{id}
	return c
}

func TestScopeAgent(t *testing.T) {
	account7 := uuid.New()
	account8 := uuid.New()
	agent := uuid.New()
	other := uuid.New()

	actor := models.Actor{ID: agent, Role: models.RoleAgent, AccountID: &account7}

	input := []models.Conversation{
		conv(1, account7, nil),    // unassigned, same account
		conv(2, account7, &agent), // assigned to the actor
		conv(3, account8, nil),    // different account
		conv(4, account7, &other), // assigned to someone else
	}

	visible := Scope(actor, nil, input)

	require.Len(t, visible, 2)
	assert.Equal(t, uuid.UUID{1}, visible[0].ID)
	assert.Equal(t, uuid.UUID{2}, visible[1].ID)
}

func TestScopeAdmin(t *testing.T) {
	account := uuid.New()
	foreign := uuid.New()
	agent := uuid.New()

	actor := models.Actor{ID: uuid.New(), Role: models.RoleAdmin, AccountID: &account}

	input := []models.Conversation{
		conv(1, account, nil),
		conv(2, account, &agent),
		conv(3, foreign, nil),
	}

	visible := Scope(actor, nil, input)

	// Admins see everything in their account, assigned or not.
	require.Len(t, visible, 2)
	assert.Equal(t, uuid.UUID{1}, visible[0].ID)
	assert.Equal(t, uuid.UUID{2}, visible[1].ID)
}

func TestScopeSuperadmin(t *testing.T) {
	account7 := uuid.New()
	account8 := uuid.New()

	actor := models.Actor{ID: uuid.New(), Role: models.RoleSuperadmin}

	input := []models.Conversation{
		conv(1, account7, nil),
		conv(2, account8, nil),
	}

	t.Run("unfiltered sees all accounts", func(t *testing.T) {
		visible := Scope(actor, nil, input)
		assert.Len(t, visible, 2)
	})

	t.Run("explicit account filter narrows", func(t *testing.T) {
		visible := Scope(actor, &account8, input)
		require.Len(t, visible, 1)
		assert.Equal(t, uuid.UUID{2}, visible[0].ID)
	})
}

func TestScopeFailsClosedOnUnknownRole(t *testing.T) {
	account := uuid.New()
	input := []models.Conversation{
		conv(1, account, nil),
		conv(2, account, nil),
	}

	for _, role := range []models.UserRole{"", "owner", "root", "AGENT"} {
		actor := models.Actor{ID: uuid.New(), Role: role, AccountID: &account}
		visible := Scope(actor, nil, input)
		assert.Empty(t, visible, "role %q must see nothing", role)
	}
}

func TestScopeActorWithoutAccount(t *testing.T) {
	account := uuid.New()
	input := []models.Conversation{conv(1, account, nil)}

	// Admins and agents are meaningless without an account; they must
	// fail closed rather than match everything.
	for _, role := range []models.UserRole{models.RoleAdmin, models.RoleAgent} {
		actor := models.Actor{ID: uuid.New(), Role: role}
		assert.Empty(t, Scope(actor, nil, input), "role %q without account", role)
	}
}

func TestScopeIsIdempotentAndOrderPreserving(t *testing.T) {
	account := uuid.New()
	agent := uuid.New()
	actor := models.Actor{ID: agent, Role: models.RoleAgent, AccountID: &account}

	input := []models.Conversation{
		conv(3, account, nil),
		conv(1, account, &agent),
		conv(2, account, nil),
	}

	once := Scope(actor, nil, input)
	twice := Scope(actor, nil, once)

	assert.Equal(t, once, twice)
	require.Len(t, once, 3)
	assert.Equal(t, uuid.UUID{3}, once[0].ID)
	assert.Equal(t, uuid.UUID{1}, once[1].ID)
	assert.Equal(t, uuid.UUID{2}, once[2].ID)
}
