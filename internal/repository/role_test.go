package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolesForUserExcludesReserved(t *testing.T) {
	_, _, roles, conn, ctx := setupRepos(t)

	seedRole(t, conn, "alice", "ROLE_X")
	seedRole(t, conn, "alice", "ADMIN")
	seedRole(t, conn, "alice", "GROUP_ADMIN")
	seedRole(t, conn, "alice", "ROLE_ADMINISTRATOR")
	seedRole(t, conn, "alice", "USER_ALICE")
	// No underscore after USER: not a per-user role, must survive the
	// escaped LIKE pattern.
	seedRole(t, conn, "alice", "USERS")
	seedRole(t, conn, "bob", "ROLE_Y")

	got, err := roles.RolesForUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_X", "USERS"}, got)
}

func TestRolesForUnknownUserIsEmpty(t *testing.T) {
	_, _, roles, _, ctx := setupRepos(t)

	got, err := roles.RolesForUser(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListRoleNamesDistinctAndFiltered(t *testing.T) {
	_, _, roles, conn, ctx := setupRepos(t)

	seedRole(t, conn, "alice", "ROLE_X")
	seedRole(t, conn, "bob", "ROLE_X")
	seedRole(t, conn, "bob", "ROLE_Y")
	seedRole(t, conn, "bob", "USER_BOB")
	seedRole(t, conn, "carol", "ADMIN")

	got, err := roles.ListRoleNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_X", "ROLE_Y"}, got)
}
