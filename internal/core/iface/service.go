package iface

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rmorlok/connlifecycle/internal/database"
	"github.com/rmorlok/connlifecycle/internal/registry"
)

// C is the interface for the connector definition lifecycle service
//
//go:generate mockgen -source=./service.go -destination=../mock/service.go -package=mock
type C interface {
	/*
	 * Version resolution
	 */

	// ResolveVersion returns the stored version of a definition for the tag, fetching it from the registry and
	// persisting it on a miss. Returns nil with no error when neither the store nor the registry knows the
	// version.
	ResolveVersion(ctx context.Context, definitionId uuid.UUID, actorType database.ActorType, dockerRepository, dockerImageTag string) (*database.ActorDefinitionVersion, error)

	/*
	 * Catalog reconciliation
	 */

	// ReconcileCatalog merges the catalog into the stored definitions in a single transaction. Custom
	// definitions are never touched. Major and minor upgrades of definitions in use by an actor are withheld.
	ReconcileCatalog(ctx context.Context, catalog *registry.Catalog) (*ReconcileResult, error)

	// ReconcileLatestCatalog fetches the latest catalog from the registry and reconciles it.
	ReconcileLatestCatalog(ctx context.Context) (*ReconcileResult, error)

	// AdvanceDefaultVersion moves the default version of a definition to the target tag unless doing so would
	// cross a breaking change. Returns whether the default moved.
	AdvanceDefaultVersion(ctx context.Context, definitionId uuid.UUID, targetTag string) (bool, error)

	/*
	 * Support states
	 */

	// UpdateSupportStates recomputes the support state of every version of every non-custom definition and,
	// when enabled, deactivates connections whose actors run unsupported versions.
	UpdateSupportStates(ctx context.Context) (*SupportStateRunResult, error)

	/*
	 * Task manager interface functions.
	 */

	// EnqueueReconcileCatalog queues a catalog reconciliation on the worker.
	EnqueueReconcileCatalog(ctx context.Context) (*asynq.TaskInfo, error)

	// EnqueueUpdateSupportStates queues a support-state run on the worker.
	EnqueueUpdateSupportStates(ctx context.Context) (*asynq.TaskInfo, error)

	RegisterTasks(mux *asynq.ServeMux)
	GetCronTasks() []*asynq.PeriodicTaskConfig
}
