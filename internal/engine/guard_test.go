package engine

import (
	"context"
	"errors"
	"testing"

	apperrors "convodesk/internal/errors"
	"convodesk/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDirectory is a func-field stand-in for the user repository.
type fakeDirectory struct {
	findByID func(ctx context.Context, id uuid.UUID) (*models.User, error)
}

func (f *fakeDirectory) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return f.findByID(ctx, id)
}

func TestCanOpen(t *testing.T) {
	account := uuid.New()
	foreign := uuid.New()
	agent := uuid.New()

	assigned := conv(1, account, &agent)
	unassigned := conv(2, account, nil)

	cases := []struct {
		name    string
		actor   models.Actor
		conv    models.Conversation
		wantErr error
	}{
		{
			name:  "superadmin opens anything",
			actor: models.Actor{ID: uuid.New(), Role: models.RoleSuperadmin},
			conv:  unassigned,
		},
		{
			name:  "admin opens unassigned in own account",
			actor: models.Actor{ID: uuid.New(), Role: models.RoleAdmin, AccountID: &account},
			conv:  unassigned,
		},
		{
			name:    "admin denied cross-account",
			actor:   models.Actor{ID: uuid.New(), Role: models.RoleAdmin, AccountID: &foreign},
			conv:    assigned,
			wantErr: apperrors.ErrScopeDenied,
		},
		{
			name:  "agent opens assigned conversation",
			actor: models.Actor{ID: agent, Role: models.RoleAgent, AccountID: &account},
			conv:  assigned,
		},
		{
			name:    "agent denied on unassigned conversation",
			actor:   models.Actor{ID: agent, Role: models.RoleAgent, AccountID: &account},
			conv:    unassigned,
			wantErr: apperrors.ErrForbidden,
		},
		{
			name:    "agent denied cross-account",
			actor:   models.Actor{ID: agent, Role: models.RoleAgent, AccountID: &foreign},
			conv:    assigned,
			wantErr: apperrors.ErrScopeDenied,
		},
		{
			name:    "unknown role denied",
			actor:   models.Actor{ID: uuid.New(), Role: "owner", AccountID: &account},
			conv:    assigned,
			wantErr: apperrors.ErrScopeDenied,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := tc.conv
			err := CanOpen(tc.actor, &c)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidateAssigneeRejectsPlaceholders(t *testing.T) {
	account := uuid.New()
	c := conv(1, account, nil)

	directory := &fakeDirectory{
		findByID: func(context.Context, uuid.UUID) (*models.User, error) {
			t.Fatal("lookup must not happen for malformed candidates")
			return nil, nil
		},
	}

	for _, candidate := range []string{"", "null", "undefined", "  ", "a9", "not-a-uuid-but-long-enough-to-pass-a"} {
		_, err := ValidateAssignee(context.Background(), candidate, &c, directory)
		assert.ErrorIs(t, err, apperrors.ErrAssignmentRejected, "candidate %q", candidate)
	}
}

func TestValidateAssignee(t *testing.T) {
	account := uuid.New()
	foreign := uuid.New()
	c := conv(1, account, nil)

	mkUser := func(role models.UserRole, accountID *uuid.UUID, active bool) *models.User {
		u := &models.User{Role: role, AccountID: accountID, IsActive: active}
		u.ID = uuid.New()
		return u
	}

	cases := []struct {
		name    string
		user    *models.User
		lookup  error
		wantErr error
	}{
		{
			name: "active agent of same account",
			user: mkUser(models.RoleAgent, &account, true),
		},
		{
			name: "active admin of same account",
			user: mkUser(models.RoleAdmin, &account, true),
		},
		{
			name:    "agent of another account",
			user:    mkUser(models.RoleAgent, &foreign, true),
			wantErr: apperrors.ErrAssignmentRejected,
		},
		{
			name:    "superadmin cannot hold conversations",
			user:    mkUser(models.RoleSuperadmin, nil, true),
			wantErr: apperrors.ErrAssignmentRejected,
		},
		{
			name:    "deactivated agent",
			user:    mkUser(models.RoleAgent, &account, false),
			wantErr: apperrors.ErrAssignmentRejected,
		},
		{
			name:    "unknown user",
			lookup:  apperrors.ErrNotFound,
			wantErr: apperrors.ErrAssignmentRejected,
		},
		{
			name:    "directory outage is a store failure, not a rejection",
			lookup:  errors.New("connection refused"),
			wantErr: apperrors.ErrStoreFailure,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			candidate := uuid.New()
			if tc.user != nil {
				candidate = tc.user.ID
			}
			directory := &fakeDirectory{
				findByID: func(_ context.Context, id uuid.UUID) (*models.User, error) {
					if tc.lookup != nil {
						return nil, tc.lookup
					}
					require.Equal(t, candidate, id)
					return tc.user, nil
				},
			}

			got, err := ValidateAssignee(context.Background(), candidate.String(), &c, directory)
			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tc.user, got)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)
			}
		})
	}
}
