package core

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/rmorlok/connlifecycle/internal/apctx"
	mockLog "github.com/rmorlok/connlifecycle/internal/aplog/mock"
	"github.com/rmorlok/connlifecycle/internal/config"
	"github.com/rmorlok/connlifecycle/internal/database"
	"github.com/rmorlok/connlifecycle/internal/flags"
	"github.com/rmorlok/connlifecycle/internal/registry"
	mockRegistry "github.com/rmorlok/connlifecycle/internal/registry/mock"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
	"github.com/rmorlok/connlifecycle/internal/semver"
	"github.com/stretchr/testify/require"
	clock "k8s.io/utils/clock/testing"
)

var testNow = time.Date(2024, time.February, 1, 12, 0, 0, 0, time.UTC)

const testSpec = `{"connectionSpecification":{"type":"object","properties":{"api_key":{"type":"string"}}}}`

type testEnv struct {
	ctx      context.Context
	cfg      config.C
	db       database.DB
	rawDb    *sql.DB
	registry *mockRegistry.MockClient
	flags    map[string]bool
	logs     *mockLog.TestingHandler
	svc      *service
}

func cloudLifecycle() *sconfig.Lifecycle {
	return &sconfig.Lifecycle{DeploymentMode: sconfig.DeploymentModeCloud}
}

// newTestEnv builds a service over a blank sqlite database with a mocked registry and static flags that the
// test can flip through env.flags.
func newTestEnv(t *testing.T, lc *sconfig.Lifecycle) *testEnv {
	t.Helper()

	cfg := config.FromRoot(&sconfig.Root{Lifecycle: lc})
	cfg, db, rawDb := database.MustApplyBlankTestDbConfigRaw(t, cfg)

	ctrl := gomock.NewController(t)
	reg := mockRegistry.NewMockClient(ctrl)
	logger, logs := mockLog.NewTestLogger(t)

	env := &testEnv{
		ctx:      apctx.NewBuilderBackground().WithClock(clock.NewFakeClock(testNow)).Build(),
		cfg:      cfg,
		db:       db,
		rawDb:    rawDb,
		registry: reg,
		flags:    map[string]bool{},
		logs:     logs,
	}

	env.svc = NewLifecycleService(cfg, db, reg, flagFunc(env.isEnabled), nil, nil, logger).(*service)
	return env
}

func (e *testEnv) isEnabled(_ context.Context, flag string) (bool, error) {
	return e.flags[flag], nil
}

type flagFunc func(ctx context.Context, flag string) (bool, error)

func (f flagFunc) IsEnabled(ctx context.Context, flag string) (bool, error) {
	return f(ctx, flag)
}

var _ flags.Client = flagFunc(nil)

func (e *testEnv) at(t time.Time) context.Context {
	return apctx.WithClock(e.ctx, clock.NewFakeClock(t))
}

func testEntry(repo, tag string) registry.Entry {
	return registry.Entry{
		Name:             repo,
		ActorType:        database.ActorTypeSource,
		DockerRepository: repo,
		DockerImageTag:   tag,
		Spec:             json.RawMessage(testSpec),
	}
}

func (e *testEnv) seedDefinition(t *testing.T, repo, tag string) (*database.ActorDefinition, *database.ActorDefinitionVersion) {
	t.Helper()

	def := &database.ActorDefinition{
		Id:               uuid.New(),
		Name:             repo,
		ActorType:        database.ActorTypeSource,
		DockerRepository: repo,
		DockerImageTag:   tag,
	}
	require.NoError(t, e.db.UpsertActorDefinition(e.ctx, def))

	adv := e.seedVersion(t, def, tag)
	require.NoError(t, e.db.SetDefaultVersion(e.ctx, def.Id, adv.Id))

	def, err := e.db.GetActorDefinition(e.ctx, def.Id)
	require.NoError(t, err)
	return def, adv
}

func (e *testEnv) seedVersion(t *testing.T, def *database.ActorDefinition, tag string) *database.ActorDefinitionVersion {
	t.Helper()

	adv, err := e.db.UpsertActorDefinitionVersion(e.ctx, &database.ActorDefinitionVersion{
		ActorDefinitionId: def.Id,
		DockerRepository:  def.DockerRepository,
		DockerImageTag:    tag,
		Spec:              database.ConnectorSpec(testSpec),
		ProtocolVersion:   "0.2.0",
	})
	require.NoError(t, err)
	return adv
}

func (e *testEnv) seedBreakingChange(t *testing.T, def *database.ActorDefinition, version, deadline string) {
	t.Helper()

	require.NoError(t, e.db.UpsertBreakingChanges(e.ctx, []database.ActorDefinitionBreakingChange{{
		ActorDefinitionId: def.Id,
		Version:           semver.MustParse(version),
		UpgradeDeadline:   database.MustParseDate(deadline),
		Message:           "breaking change at " + version,
	}}))
}

func (e *testEnv) seedActor(t *testing.T, workspaceId uuid.UUID, adv *database.ActorDefinitionVersion) *database.Actor {
	t.Helper()

	a := &database.Actor{
		Id:                uuid.New(),
		WorkspaceId:       workspaceId,
		ActorDefinitionId: adv.ActorDefinitionId,
		ActorType:         database.ActorTypeSource,
		Name:              "actor",
		VersionId:         adv.Id,
	}
	require.NoError(t, e.db.CreateActor(e.ctx, a))
	return a
}

func (e *testEnv) seedConnection(t *testing.T, source, destination *database.Actor, status database.ConnectionStatus) *database.Connection {
	t.Helper()

	c := &database.Connection{
		Id:            uuid.New(),
		Name:          "connection",
		SourceId:      source.Id,
		DestinationId: destination.Id,
		Status:        status,
	}
	require.NoError(t, e.db.CreateConnection(e.ctx, c))
	return c
}

func (e *testEnv) supportState(t *testing.T, id uuid.UUID) database.SupportState {
	t.Helper()

	adv, err := e.db.GetActorDefinitionVersion(e.ctx, id)
	require.NoError(t, err)
	return adv.SupportState
}

func (e *testEnv) connectionStatus(t *testing.T, id uuid.UUID) database.ConnectionStatus {
	t.Helper()

	c, err := e.db.GetConnection(e.ctx, id)
	require.NoError(t, err)
	return c.Status
}

func (e *testEnv) definitionForRepository(t *testing.T, repo string) *database.ActorDefinition {
	t.Helper()

	defs, err := e.db.ListActorDefinitions(e.ctx, database.ActorDefinitionFilter{IncludeCustom: true, IncludeTombstoned: true})
	require.NoError(t, err)

	for i := range defs {
		if defs[i].DockerRepository == repo {
			return &defs[i]
		}
	}
	return nil
}

func (e *testEnv) warnings() []string {
	return e.logs.Messages(slog.LevelWarn)
}

// faults is shared by a faultyDB and the transaction-scoped copies it hands out.
type faults struct {
	failSupportStatesFor map[uuid.UUID]bool
	failWorkspaces       map[uuid.UUID]bool
	supportStateWrites   int
}

// faultyDB injects store failures for specific versions and workspaces and counts support state writes.
type faultyDB struct {
	database.DB
	f *faults
}

func (e *testEnv) useFaultyDB() *faults {
	f := &faults{
		failSupportStatesFor: map[uuid.UUID]bool{},
		failWorkspaces:       map[uuid.UUID]bool{},
	}
	e.svc.db = &faultyDB{DB: e.db, f: f}
	return f
}

func (d *faultyDB) Transaction(ctx context.Context, fn func(tx database.DB) error) error {
	return d.DB.Transaction(ctx, func(tx database.DB) error {
		return fn(&faultyDB{DB: tx, f: d.f})
	})
}

func (d *faultyDB) SetSupportStates(ctx context.Context, versionIds []uuid.UUID, state database.SupportState) error {
	d.f.supportStateWrites++
	for _, id := range versionIds {
		if d.f.failSupportStatesFor[id] {
			return errors.New("injected support state failure")
		}
	}
	return d.DB.SetSupportStates(ctx, versionIds, state)
}

func (d *faultyDB) ListActiveConnectionsForActors(ctx context.Context, workspaceId uuid.UUID, actorIds []uuid.UUID) ([]database.Connection, error) {
	if d.f.failWorkspaces[workspaceId] {
		return nil, errors.New("injected connection failure")
	}
	return d.DB.ListActiveConnectionsForActors(ctx, workspaceId, actorIds)
}
