package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layman-go/internal/domain"
)

func TestPublicationCreateGetDelete(t *testing.T) {
	ws, pubs, _, _, ctx := setupRepos(t)

	mustPub(t, pubs, ws, ctx, domain.Publication{
		UUID:      "u-1",
		Workspace: "alice",
		Type:      domain.TypeLayer,
		Name:      "rivers",
		Title:     "Rivers",
		AccessRights: domain.AccessRights{
			Read:  []string{"EVERYONE"},
			Write: []string{"alice"},
		},
	})

	p, err := pubs.GetInfo(ctx, "alice", domain.TypeLayer, "rivers")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "u-1", p.UUID)
	assert.Equal(t, []string{"EVERYONE"}, p.AccessRights.Read)
	assert.Equal(t, []string{"alice"}, p.AccessRights.Write)

	byUUID, err := pubs.GetInfoByUUID(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, byUUID)
	assert.Equal(t, "rivers", byUUID.Name)

	require.NoError(t, pubs.Delete(ctx, "u-1"))
	p, err = pubs.GetInfo(ctx, "alice", domain.TypeLayer, "rivers")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPublicationGetMissingIsNil(t *testing.T) {
	_, pubs, _, _, ctx := setupRepos(t)

	p, err := pubs.GetInfo(ctx, "nobody", domain.TypeLayer, "nothing")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = pubs.GetInfoByUUID(ctx, "no-such-uuid")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPublicationDuplicateNameConflicts(t *testing.T) {
	ws, pubs, _, _, ctx := setupRepos(t)

	base := domain.Publication{
		UUID: "u-1", Workspace: "alice", Type: domain.TypeLayer, Name: "rivers",
		AccessRights: domain.AccessRights{Read: []string{"alice"}, Write: []string{"alice"}},
	}
	mustPub(t, pubs, ws, ctx, base)

	dup := base
	dup.UUID = "u-2"
	err := pubs.Create(ctx, &dup)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.CodeLayerExists, conflict.Code)

	// Same name as a map is fine; identity is (workspace, type, name).
	asMap := base
	asMap.UUID = "u-3"
	asMap.Type = domain.TypeMap
	require.NoError(t, pubs.Create(ctx, &asMap))
}

func TestUpdateAccessRightsReplaces(t *testing.T) {
	ws, pubs, _, _, ctx := setupRepos(t)

	mustPub(t, pubs, ws, ctx, domain.Publication{
		UUID: "u-1", Workspace: "alice", Type: domain.TypeMap, Name: "world",
		AccessRights: domain.AccessRights{Read: []string{"EVERYONE"}, Write: []string{"alice"}},
	})

	err := pubs.UpdateAccessRights(ctx, "u-1", domain.AccessRights{
		Read:  []string{"alice", "bob"},
		Write: []string{"alice"},
	})
	require.NoError(t, err)

	p, err := pubs.GetInfoByUUID(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []string{"alice", "bob"}, p.AccessRights.Read)
	assert.Equal(t, []string{"alice"}, p.AccessRights.Write)
}

func TestListScopedByWorkspaceAndType(t *testing.T) {
	ws, pubs, _, _, ctx := setupRepos(t)

	rights := domain.AccessRights{Read: []string{"EVERYONE"}, Write: []string{"alice"}}
	mustPub(t, pubs, ws, ctx, domain.Publication{UUID: "u-1", Workspace: "alice", Type: domain.TypeLayer, Name: "b_layer", AccessRights: rights})
	mustPub(t, pubs, ws, ctx, domain.Publication{UUID: "u-2", Workspace: "alice", Type: domain.TypeLayer, Name: "a_layer", AccessRights: rights})
	mustPub(t, pubs, ws, ctx, domain.Publication{UUID: "u-3", Workspace: "alice", Type: domain.TypeMap, Name: "a_map", AccessRights: rights})
	mustPub(t, pubs, ws, ctx, domain.Publication{UUID: "u-4", Workspace: "bob", Type: domain.TypeLayer, Name: "c_layer", AccessRights: rights})

	layers, err := pubs.List(ctx, "alice", domain.TypeLayer)
	require.NoError(t, err)
	require.Len(t, layers, 2)
	assert.Equal(t, "a_layer", layers[0].Name)
	assert.Equal(t, "b_layer", layers[1].Name)

	all, err := pubs.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	for _, p := range all {
		assert.NotEmpty(t, p.AccessRights.Read, "rights hydrated for %s", p.Name)
	}
}
