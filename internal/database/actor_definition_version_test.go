package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rmorlok/connlifecycle/internal/apctx"
	"github.com/rmorlok/connlifecycle/internal/util"
	"github.com/stretchr/testify/require"
)

func TestActorDefinitionVersions(t *testing.T) {
	t.Run("insert mints id and defaults to supported", func(t *testing.T) {
		_, db := MustApplyBlankTestDbConfig(t, nil)
		id := uuid.MustParse("5c3bb6a4-5a7b-4ec8-9d43-0f0a3a6f1b11")
		ctx := apctx.WithUuidSequence(testContext(), id)

		def := &ActorDefinition{
			Id:               uuid.New(),
			Name:             "foo",
			ActorType:        ActorTypeSource,
			DockerRepository: "acme/source-foo",
			DockerImageTag:   "1.0.0",
		}
		require.NoError(t, db.UpsertActorDefinition(ctx, def))

		adv := seedVersion(t, ctx, db, def, "1.0.0")
		require.Equal(t, id, adv.Id)
		require.Equal(t, SupportStateSupported, adv.SupportState)

		loaded, err := db.GetActorDefinitionVersion(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "1.0.0", loaded.DockerImageTag)
		require.Equal(t, "0.2.0", loaded.ProtocolVersion)
		require.JSONEq(t, `{"connectionSpecification":{"type":"object"}}`, string(loaded.Spec))

		_, err = db.GetActorDefinitionVersion(ctx, uuid.New())
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("for tag returns nil when absent", func(t *testing.T) {
		_, db := MustApplyBlankTestDbConfig(t, nil)
		ctx := testContext()

		def, adv := seedDefinition(t, ctx, db, "acme/source-foo", "1.0.0")

		found, err := db.GetActorDefinitionVersionForTag(ctx, def.Id, "1.0.0")
		require.NoError(t, err)
		require.Equal(t, adv.Id, found.Id)

		missing, err := db.GetActorDefinitionVersionForTag(ctx, def.Id, "9.9.9")
		require.NoError(t, err)
		require.Nil(t, missing)
	})

	t.Run("upsert keeps identity and support state", func(t *testing.T) {
		_, db := MustApplyBlankTestDbConfig(t, nil)
		ctx := testContext()

		def, adv := seedDefinition(t, ctx, db, "acme/source-foo", "1.0.0")
		require.NoError(t, db.SetSupportStates(ctx, []uuid.UUID{adv.Id}, SupportStateDeprecated))

		updated, err := db.UpsertActorDefinitionVersion(ctx, &ActorDefinitionVersion{
			Id:                uuid.New(),
			ActorDefinitionId: def.Id,
			DockerRepository:  def.DockerRepository,
			DockerImageTag:    "1.0.0",
			Spec:              ConnectorSpec(`{"connectionSpecification":{"type":"object","required":["host"]}}`),
			ProtocolVersion:   "0.3.0",
			DocumentationUrl:  "https://docs.example.com/foo",
		})
		require.NoError(t, err)
		require.Equal(t, adv.Id, updated.Id)
		require.Equal(t, SupportStateDeprecated, updated.SupportState)
		require.Equal(t, "0.3.0", updated.ProtocolVersion)

		versions, err := db.ListVersionsForDefinition(ctx, def.Id)
		require.NoError(t, err)
		require.Len(t, versions, 1)
		require.Equal(t, "https://docs.example.com/foo", versions[0].DocumentationUrl)
	})

	t.Run("validation", func(t *testing.T) {
		_, db := MustApplyBlankTestDbConfig(t, nil)
		ctx := testContext()

		_, err := db.UpsertActorDefinitionVersion(ctx, &ActorDefinitionVersion{SupportState: "retired"})
		require.ErrorContains(t, err, "actor definition id is required")
		require.ErrorContains(t, err, "invalid support state 'retired'")

		_, err = db.UpsertActorDefinitionVersion(ctx, nil)
		require.Error(t, err)
	})

	t.Run("set support states", func(t *testing.T) {
		_, db := MustApplyBlankTestDbConfig(t, nil)
		ctx := testContext()

		def, v1 := seedDefinition(t, ctx, db, "acme/source-foo", "1.0.0")
		v2 := seedVersion(t, ctx, db, def, "2.0.0")
		v3 := seedVersion(t, ctx, db, def, "3.0.0")

		require.NoError(t, db.SetSupportStates(ctx, nil, SupportStateUnsupported))
		require.NoError(t, db.SetSupportStates(ctx, []uuid.UUID{v1.Id, v2.Id}, SupportStateUnsupported))
		require.Error(t, db.SetSupportStates(ctx, []uuid.UUID{v3.Id}, "retired"))

		versions, err := db.ListVersionsForDefinition(ctx, def.Id)
		require.NoError(t, err)

		states := make(map[string]SupportState)
		for _, v := range versions {
			states[v.DockerImageTag] = v.SupportState
		}
		require.Equal(t, map[string]SupportState{
			"1.0.0": SupportStateUnsupported,
			"2.0.0": SupportStateUnsupported,
			"3.0.0": SupportStateSupported,
		}, states)
	})

	t.Run("list is scoped to the definition", func(t *testing.T) {
		_, db := MustApplyBlankTestDbConfig(t, nil)
		ctx := testContext()

		foo, _ := seedDefinition(t, ctx, db, "acme/source-foo", "1.0.0")
		seedVersion(t, ctx, db, foo, "1.1.0")
		seedDefinition(t, ctx, db, "acme/source-bar", "5.0.0")

		versions, err := db.ListVersionsForDefinition(ctx, foo.Id)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"1.0.0", "1.1.0"}, util.Map(versions, func(v ActorDefinitionVersion) string { return v.DockerImageTag }))
	})
}

func TestConnectorSpec(t *testing.T) {
	var spec ConnectorSpec
	require.NoError(t, spec.Scan([]byte(`{"a":1}`)))
	require.JSONEq(t, `{"a":1}`, string(spec))

	require.NoError(t, spec.Scan(`{"b":2}`))
	require.JSONEq(t, `{"b":2}`, string(spec))

	require.Error(t, spec.Scan(42))
}
