package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rmorlok/connlifecycle/internal/apctx"
	"github.com/stretchr/testify/require"
	clock "k8s.io/utils/clock/testing"
)

var testNow = time.Date(2024, time.February, 1, 12, 0, 0, 0, time.UTC)

func testContext() context.Context {
	return apctx.NewBuilderBackground().WithClock(clock.NewFakeClock(testNow)).Build()
}

// seedDefinition creates a definition whose default version is the given tag.
func seedDefinition(t *testing.T, ctx context.Context, db DB, repo, tag string) (*ActorDefinition, *ActorDefinitionVersion) {
	t.Helper()

	def := &ActorDefinition{
		Id:               uuid.New(),
		Name:             repo,
		ActorType:        ActorTypeSource,
		DockerRepository: repo,
		DockerImageTag:   tag,
	}
	require.NoError(t, db.UpsertActorDefinition(ctx, def))

	adv := seedVersion(t, ctx, db, def, tag)
	require.NoError(t, db.SetDefaultVersion(ctx, def.Id, adv.Id))

	def, err := db.GetActorDefinition(ctx, def.Id)
	require.NoError(t, err)

	return def, adv
}

func seedVersion(t *testing.T, ctx context.Context, db DB, def *ActorDefinition, tag string) *ActorDefinitionVersion {
	t.Helper()

	adv, err := db.UpsertActorDefinitionVersion(ctx, &ActorDefinitionVersion{
		ActorDefinitionId: def.Id,
		DockerRepository:  def.DockerRepository,
		DockerImageTag:    tag,
		Spec:              ConnectorSpec(`{"connectionSpecification":{"type":"object"}}`),
		ProtocolVersion:   "0.2.0",
	})
	require.NoError(t, err)
	return adv
}

func seedActor(t *testing.T, ctx context.Context, db DB, workspaceId uuid.UUID, adv *ActorDefinitionVersion) *Actor {
	t.Helper()

	a := &Actor{
		Id:                uuid.New(),
		WorkspaceId:       workspaceId,
		ActorDefinitionId: adv.ActorDefinitionId,
		ActorType:         ActorTypeSource,
		Name:              "actor",
		VersionId:         adv.Id,
	}
	require.NoError(t, db.CreateActor(ctx, a))
	return a
}

func seedConnection(t *testing.T, ctx context.Context, db DB, source, destination *Actor, status ConnectionStatus) *Connection {
	t.Helper()

	c := &Connection{
		Id:            uuid.New(),
		Name:          "connection",
		SourceId:      source.Id,
		DestinationId: destination.Id,
		Status:        status,
	}
	require.NoError(t, db.CreateConnection(ctx, c))
	return c
}
