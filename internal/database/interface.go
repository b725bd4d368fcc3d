package database

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=./interface.go -destination=./mock/db.go -package=mock
type DB interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) bool
	Close() error

	// Transaction runs fn against a DB scoped to a single transaction. The transaction commits if fn returns
	// nil and rolls back otherwise. Calling Transaction on a DB that is already scoped to a transaction reuses
	// that transaction.
	Transaction(ctx context.Context, fn func(tx DB) error) error

	/*
	 * Actor definitions
	 */

	GetActorDefinition(ctx context.Context, id uuid.UUID) (*ActorDefinition, error)
	ListActorDefinitions(ctx context.Context, filter ActorDefinitionFilter) ([]ActorDefinition, error)
	UpsertActorDefinition(ctx context.Context, def *ActorDefinition) error
	SetDefaultVersion(ctx context.Context, definitionId uuid.UUID, versionId uuid.UUID) error
	ListDockerRepositoriesInUse(ctx context.Context) (map[string]struct{}, error)

	/*
	 * Actor definition versions
	 */

	GetActorDefinitionVersion(ctx context.Context, id uuid.UUID) (*ActorDefinitionVersion, error)
	GetActorDefinitionVersionForTag(ctx context.Context, definitionId uuid.UUID, dockerImageTag string) (*ActorDefinitionVersion, error)
	UpsertActorDefinitionVersion(ctx context.Context, adv *ActorDefinitionVersion) (*ActorDefinitionVersion, error)
	ListVersionsForDefinition(ctx context.Context, definitionId uuid.UUID) ([]ActorDefinitionVersion, error)
	SetSupportStates(ctx context.Context, versionIds []uuid.UUID, state SupportState) error

	/*
	 * Breaking changes
	 */

	ListBreakingChanges(ctx context.Context) ([]ActorDefinitionBreakingChange, error)
	ListBreakingChangesForDefinition(ctx context.Context, definitionId uuid.UUID) ([]ActorDefinitionBreakingChange, error)
	UpsertBreakingChanges(ctx context.Context, changes []ActorDefinitionBreakingChange) error

	/*
	 * Actors
	 */

	CreateActor(ctx context.Context, actor *Actor) error
	GetActor(ctx context.Context, id uuid.UUID) (*Actor, error)
	ListActorsWithVersionIds(ctx context.Context, versionIds []uuid.UUID) ([]Actor, error)

	/*
	 * Version overrides
	 */

	CreateVersionOverride(ctx context.Context, o *VersionOverride) error
	IsOverrideApplied(ctx context.Context, definitionId uuid.UUID, workspaceId uuid.UUID, actorId uuid.UUID) (bool, error)

	/*
	 * Connections
	 */

	CreateConnection(ctx context.Context, c *Connection) error
	GetConnection(ctx context.Context, id uuid.UUID) (*Connection, error)
	ListActiveConnectionsForActors(ctx context.Context, workspaceId uuid.UUID, actorIds []uuid.UUID) ([]Connection, error)
	SetConnectionStatus(ctx context.Context, id uuid.UUID, status ConnectionStatus) error
}
