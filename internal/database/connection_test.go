package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rmorlok/connlifecycle/internal/util"
	"github.com/stretchr/testify/require"
)

func TestActors(t *testing.T) {
	_, db := MustApplyBlankTestDbConfig(t, nil)
	ctx := testContext()
	ws := uuid.New()

	def, v1 := seedDefinition(t, ctx, db, "acme/source-foo", "1.0.0")
	v2 := seedVersion(t, ctx, db, def, "2.0.0")

	a1 := seedActor(t, ctx, db, ws, v1)
	a2 := seedActor(t, ctx, db, uuid.New(), v1)
	seedActor(t, ctx, db, ws, v2)

	tombstoned := &Actor{
		Id:                uuid.New(),
		WorkspaceId:       ws,
		ActorDefinitionId: def.Id,
		ActorType:         ActorTypeSource,
		Name:              "deleted",
		VersionId:         v1.Id,
		Tombstone:         true,
	}
	require.NoError(t, db.CreateActor(ctx, tombstoned))

	loaded, err := db.GetActor(ctx, a1.Id)
	require.NoError(t, err)
	require.Equal(t, ws, loaded.WorkspaceId)
	require.Equal(t, v1.Id, loaded.VersionId)

	_, err = db.GetActor(ctx, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)

	actors, err := db.ListActorsWithVersionIds(ctx, []uuid.UUID{v1.Id})
	require.NoError(t, err)
	require.ElementsMatch(t, []uuid.UUID{a1.Id, a2.Id}, util.Map(actors, func(a Actor) uuid.UUID { return a.Id }))

	none, err := db.ListActorsWithVersionIds(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, none)

	require.ErrorIs(t, db.CreateActor(ctx, a1), ErrDuplicate)
	require.ErrorContains(t, db.CreateActor(ctx, &Actor{}), "actor id is required")
}

func TestConnections(t *testing.T) {
	t.Run("active connections are scoped to the workspace", func(t *testing.T) {
		_, db := MustApplyBlankTestDbConfig(t, nil)
		ctx := testContext()
		ws1 := uuid.New()
		ws2 := uuid.New()

		_, srcAdv := seedDefinition(t, ctx, db, "acme/source-foo", "1.0.0")
		_, dstAdv := seedDefinition(t, ctx, db, "acme/destination-bar", "1.0.0")

		src1 := seedActor(t, ctx, db, ws1, srcAdv)
		dst1 := seedActor(t, ctx, db, ws1, dstAdv)
		src2 := seedActor(t, ctx, db, ws2, srcAdv)
		dst2 := seedActor(t, ctx, db, ws2, dstAdv)

		active1 := seedConnection(t, ctx, db, src1, dst1, ConnectionStatusActive)
		seedConnection(t, ctx, db, src1, dst1, ConnectionStatusInactive)
		seedConnection(t, ctx, db, src2, dst2, ConnectionStatusActive)

		conns, err := db.ListActiveConnectionsForActors(ctx, ws1, []uuid.UUID{src1.Id, src2.Id})
		require.NoError(t, err)
		require.Len(t, conns, 1)
		require.Equal(t, active1.Id, conns[0].Id)

		byDestination, err := db.ListActiveConnectionsForActors(ctx, ws1, []uuid.UUID{dst1.Id})
		require.NoError(t, err)
		require.Len(t, byDestination, 1)

		none, err := db.ListActiveConnectionsForActors(ctx, ws1, nil)
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("set status", func(t *testing.T) {
		_, db := MustApplyBlankTestDbConfig(t, nil)
		ctx := testContext()
		ws := uuid.New()

		_, srcAdv := seedDefinition(t, ctx, db, "acme/source-foo", "1.0.0")
		_, dstAdv := seedDefinition(t, ctx, db, "acme/destination-bar", "1.0.0")
		c := seedConnection(t, ctx, db, seedActor(t, ctx, db, ws, srcAdv), seedActor(t, ctx, db, ws, dstAdv), ConnectionStatusActive)

		require.NoError(t, db.SetConnectionStatus(ctx, c.Id, ConnectionStatusInactive))

		loaded, err := db.GetConnection(ctx, c.Id)
		require.NoError(t, err)
		require.Equal(t, ConnectionStatusInactive, loaded.Status)

		require.ErrorIs(t, db.SetConnectionStatus(ctx, uuid.New(), ConnectionStatusInactive), ErrNotFound)
		require.Error(t, db.SetConnectionStatus(ctx, c.Id, "paused"))
		require.Error(t, db.SetConnectionStatus(ctx, uuid.Nil, ConnectionStatusInactive))

		_, err = db.GetConnection(ctx, uuid.New())
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestVersionOverrides(t *testing.T) {
	_, db := MustApplyBlankTestDbConfig(t, nil)
	ctx := testContext()
	ws := uuid.New()
	otherWs := uuid.New()

	def, v1 := seedDefinition(t, ctx, db, "acme/source-foo", "1.0.0")
	actorPinned := seedActor(t, ctx, db, ws, v1)
	actorFree := seedActor(t, ctx, db, ws, v1)
	actorOtherWs := seedActor(t, ctx, db, otherWs, v1)
	actorSystemPinned := seedActor(t, ctx, db, uuid.New(), v1)

	require.NoError(t, db.CreateVersionOverride(ctx, &VersionOverride{
		Id:                uuid.New(),
		ActorDefinitionId: def.Id,
		ScopeType:         OverrideScopeTypeActor,
		ScopeId:           actorPinned.Id,
		VersionId:         v1.Id,
		Origin:            OverrideOriginUser,
	}))
	require.NoError(t, db.CreateVersionOverride(ctx, &VersionOverride{
		Id:                uuid.New(),
		ActorDefinitionId: def.Id,
		ScopeType:         OverrideScopeTypeWorkspace,
		ScopeId:           otherWs,
		VersionId:         v1.Id,
		Origin:            OverrideOriginUser,
	}))
	require.NoError(t, db.CreateVersionOverride(ctx, &VersionOverride{
		Id:                uuid.New(),
		ActorDefinitionId: def.Id,
		ScopeType:         OverrideScopeTypeActor,
		ScopeId:           actorSystemPinned.Id,
		VersionId:         v1.Id,
		Origin:            OverrideOriginBreakingChange,
	}))

	tests := []struct {
		name  string
		actor *Actor
		want  bool
	}{
		{name: "actor scope", actor: actorPinned, want: true},
		{name: "no override", actor: actorFree, want: false},
		{name: "workspace scope", actor: actorOtherWs, want: true},
		{name: "system override ignored", actor: actorSystemPinned, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applied, err := db.IsOverrideApplied(ctx, def.Id, tt.actor.WorkspaceId, tt.actor.Id)
			require.NoError(t, err)
			require.Equal(t, tt.want, applied)
		})
	}

	t.Run("other definition", func(t *testing.T) {
		applied, err := db.IsOverrideApplied(ctx, uuid.New(), ws, actorPinned.Id)
		require.NoError(t, err)
		require.False(t, applied)
	})

	t.Run("duplicate scope", func(t *testing.T) {
		err := db.CreateVersionOverride(ctx, &VersionOverride{
			Id:                uuid.New(),
			ActorDefinitionId: def.Id,
			ScopeType:         OverrideScopeTypeActor,
			ScopeId:           actorPinned.Id,
			VersionId:         v1.Id,
			Origin:            OverrideOriginUser,
		})
		require.ErrorIs(t, err, ErrDuplicate)
	})
}
