package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rmorlok/connlifecycle/internal/util"
	"github.com/stretchr/testify/require"
)

func TestActorDefinitions(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		_, db := MustApplyBlankTestDbConfig(t, nil)
		ctx := testContext()

		def, adv := seedDefinition(t, ctx, db, "acme/source-foo", "1.0.0")
		require.Equal(t, "acme/source-foo", def.DockerRepository)
		require.Equal(t, "1.0.0", def.DockerImageTag)
		require.NotNil(t, def.DefaultVersionId)
		require.Equal(t, adv.Id, *def.DefaultVersionId)
		require.True(t, testNow.Equal(def.CreatedAt))

		_, err := db.GetActorDefinition(ctx, uuid.New())
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("upsert updates existing", func(t *testing.T) {
		_, db := MustApplyBlankTestDbConfig(t, nil)
		ctx := testContext()

		def, _ := seedDefinition(t, ctx, db, "acme/source-foo", "1.0.0")
		def.Name = "Foo"
		def.IconUrl = "https://example.com/foo.svg"
		require.NoError(t, db.UpsertActorDefinition(ctx, def))

		reloaded, err := db.GetActorDefinition(ctx, def.Id)
		require.NoError(t, err)
		require.Equal(t, "Foo", reloaded.Name)
		require.Equal(t, "https://example.com/foo.svg", reloaded.IconUrl)
		require.NotNil(t, reloaded.DefaultVersionId)
	})

	t.Run("validation", func(t *testing.T) {
		_, db := MustApplyBlankTestDbConfig(t, nil)
		ctx := testContext()

		err := db.UpsertActorDefinition(ctx, &ActorDefinition{Id: uuid.New(), ActorType: "sink"})
		require.ErrorContains(t, err, "name is required")
		require.ErrorContains(t, err, "invalid actor type")
		require.Error(t, db.UpsertActorDefinition(ctx, nil))
	})

	t.Run("list filters custom and tombstoned", func(t *testing.T) {
		_, db := MustApplyBlankTestDbConfig(t, nil)
		ctx := testContext()

		seedDefinition(t, ctx, db, "acme/source-a", "1.0.0")
		custom, _ := seedDefinition(t, ctx, db, "acme/source-custom", "0.1.0")
		custom.Custom = true
		require.NoError(t, db.UpsertActorDefinition(ctx, custom))

		dead, _ := seedDefinition(t, ctx, db, "acme/source-dead", "0.1.0")
		dead.Tombstone = true
		require.NoError(t, db.UpsertActorDefinition(ctx, dead))

		dest := &ActorDefinition{
			Id:               uuid.New(),
			Name:             "dest",
			ActorType:        ActorTypeDestination,
			DockerRepository: "acme/destination-b",
			DockerImageTag:   "2.0.0",
		}
		require.NoError(t, db.UpsertActorDefinition(ctx, dest))

		defs, err := db.ListActorDefinitions(ctx, ActorDefinitionFilter{})
		require.NoError(t, err)
		require.Equal(t, []string{"acme/destination-b", "acme/source-a"}, util.Map(defs, func(d ActorDefinition) string { return d.DockerRepository }))

		all, err := db.ListActorDefinitions(ctx, ActorDefinitionFilter{IncludeCustom: true, IncludeTombstoned: true})
		require.NoError(t, err)
		require.Len(t, all, 4)

		sources := ActorTypeSource
		onlySources, err := db.ListActorDefinitions(ctx, ActorDefinitionFilter{ActorType: &sources})
		require.NoError(t, err)
		require.Len(t, onlySources, 1)
		require.Equal(t, "acme/source-a", onlySources[0].DockerRepository)
	})

	t.Run("set default version", func(t *testing.T) {
		_, db := MustApplyBlankTestDbConfig(t, nil)
		ctx := testContext()

		def, _ := seedDefinition(t, ctx, db, "acme/source-foo", "1.0.0")
		next := seedVersion(t, ctx, db, def, "1.1.0")

		require.NoError(t, db.SetDefaultVersion(ctx, def.Id, next.Id))
		reloaded, err := db.GetActorDefinition(ctx, def.Id)
		require.NoError(t, err)
		require.Equal(t, next.Id, *reloaded.DefaultVersionId)
		require.Equal(t, "1.1.0", reloaded.DockerImageTag)

		other, otherAdv := seedDefinition(t, ctx, db, "acme/source-bar", "1.0.0")
		require.Error(t, db.SetDefaultVersion(ctx, def.Id, otherAdv.Id))
		require.ErrorIs(t, db.SetDefaultVersion(ctx, other.Id, uuid.New()), ErrNotFound)
	})

	t.Run("docker repositories in use", func(t *testing.T) {
		_, db := MustApplyBlankTestDbConfig(t, nil)
		ctx := testContext()
		ws := uuid.New()

		_, usedAdv := seedDefinition(t, ctx, db, "acme/source-used", "1.0.0")
		_, inactiveAdv := seedDefinition(t, ctx, db, "acme/source-inactive", "1.0.0")
		_, destAdv := seedDefinition(t, ctx, db, "acme/destination-used", "1.0.0")
		seedDefinition(t, ctx, db, "acme/source-idle", "1.0.0")

		used := seedActor(t, ctx, db, ws, usedAdv)
		inactive := seedActor(t, ctx, db, ws, inactiveAdv)
		dest := seedActor(t, ctx, db, ws, destAdv)

		seedConnection(t, ctx, db, used, dest, ConnectionStatusActive)
		seedConnection(t, ctx, db, inactive, dest, ConnectionStatusInactive)

		repos, err := db.ListDockerRepositoriesInUse(ctx)
		require.NoError(t, err)
		require.Equal(t, map[string]struct{}{
			"acme/source-used":      {},
			"acme/destination-used": {},
		}, repos)
	})
}
