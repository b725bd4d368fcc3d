package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/apasynq"
	"github.com/rmorlok/connlifecycle/internal/aplog"
	"github.com/rmorlok/connlifecycle/internal/apredis"
	"github.com/rmorlok/connlifecycle/internal/config"
	"github.com/rmorlok/connlifecycle/internal/core"
	coreIface "github.com/rmorlok/connlifecycle/internal/core/iface"
	"github.com/rmorlok/connlifecycle/internal/database"
	"github.com/rmorlok/connlifecycle/internal/flags"
	"github.com/rmorlok/connlifecycle/internal/registry"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
	"github.com/rmorlok/connlifecycle/internal/util"
)

const autoMigrationLockDuration = 5 * time.Minute

// DependencyManager lazily constructs the shared dependencies of a process. Construction failures panic; they
// only happen during startup.
type DependencyManager struct {
	serviceId   string
	cfg         config.C
	logBuilder  aplog.Builder
	logger      *slog.Logger
	r           apredis.Client
	db          database.DB
	registry    registry.Client
	flags       flags.Client
	asynqClient apasynq.Client
	c           coreIface.C
}

func NewDependencyManager(serviceId string, cfg config.C) *DependencyManager {
	return &DependencyManager{
		serviceId: serviceId,
		cfg:       cfg,
	}
}

func (dm *DependencyManager) GetConfig() config.C {
	return dm.cfg
}

func (dm *DependencyManager) GetConfigRoot() *sconfig.Root {
	return dm.cfg.GetRoot()
}

func (dm *DependencyManager) GetServiceId() string {
	return dm.serviceId
}

func (dm *DependencyManager) GetLogBuilder() aplog.Builder {
	if dm.logBuilder == nil {
		dm.logBuilder = aplog.NewBuilder(dm.cfg.GetRootLogger())
	}

	return dm.logBuilder
}

func (dm *DependencyManager) GetRootLogger() *slog.Logger {
	return dm.cfg.GetRootLogger()
}

func (dm *DependencyManager) GetLogger() *slog.Logger {
	if dm.logger == nil {
		dm.logger = dm.GetLogBuilder().WithService(dm.serviceId).Build()
	}

	return dm.logger
}

// HasRedis reports whether redis is configured. Without it the process can run one-shot operations but not
// the worker.
func (dm *DependencyManager) HasRedis() bool {
	root := dm.GetConfigRoot()
	return root != nil && root.Redis != nil && root.Redis.InnerVal != nil
}

// GetRedisClient returns nil when redis is not configured.
func (dm *DependencyManager) GetRedisClient() apredis.Client {
	if dm.r == nil && dm.HasRedis() {
		dm.r = util.Must(apredis.NewForRoot(context.Background(), dm.GetConfigRoot()))
	}

	return dm.r
}

func (dm *DependencyManager) GetDatabase() database.DB {
	if dm.db == nil {
		dm.db = util.Must(database.NewConnectionForRoot(dm.GetConfigRoot(), dm.GetLogger()))
	}

	return dm.db
}

// AutoMigrateDatabase migrates the database if the config asks for it. When redis is available the migration
// is serialized across replicas.
func (dm *DependencyManager) AutoMigrateDatabase() {
	if !dm.GetConfigRoot().Database.GetAutoMigrate() {
		return
	}

	ctx := context.Background()

	if r := dm.GetRedisClient(); r != nil {
		m := apredis.NewMutex(
			r,
			database.MigrateMutexKeyName,
			apredis.MutexOptionLockFor(autoMigrationLockDuration),
			apredis.MutexOptionRetryFor(autoMigrationLockDuration+1*time.Second),
			apredis.MutexOptionRetryExponentialBackoff(100*time.Millisecond, 5*time.Second),
			apredis.MutexOptionDetailedLockMetadata(),
		)
		if err := m.Lock(ctx); err != nil {
			panic(errors.Wrap(err, "failed to establish lock for database migration"))
		}
		defer m.Unlock(ctx)
	}

	util.MustNotError(dm.GetDatabase().Migrate(ctx))
}

func (dm *DependencyManager) GetRegistryClient() registry.Client {
	if dm.registry == nil {
		var err error
		dm.registry, err = registry.NewForRoot(context.Background(), dm.GetConfigRoot(), dm.GetLogBuilder().WithComponent("registry").Build())
		if err != nil {
			panic(err)
		}
	}

	return dm.registry
}

func (dm *DependencyManager) GetFlagsClient() flags.Client {
	if dm.flags == nil {
		var err error
		dm.flags, err = flags.NewForRoot(dm.GetConfigRoot(), dm.GetRedisClient())
		if err != nil {
			panic(err)
		}
	}

	return dm.flags
}

// GetAsyncClient returns nil when redis is not configured.
func (dm *DependencyManager) GetAsyncClient() apasynq.Client {
	if dm.asynqClient == nil && dm.HasRedis() {
		dm.asynqClient = asynq.NewClientFromRedisClient(dm.GetRedisClient())
	}

	return dm.asynqClient
}

func (dm *DependencyManager) GetCoreService() coreIface.C {
	if dm.c == nil {
		dm.c = core.NewLifecycleService(
			dm.GetConfig(),
			dm.GetDatabase(),
			dm.GetRegistryClient(),
			dm.GetFlagsClient(),
			dm.GetRedisClient(),
			dm.GetAsyncClient(),
			dm.GetLogger(),
		)
	}

	return dm.c
}

// Close releases the connections that were opened.
func (dm *DependencyManager) Close() {
	if dm.asynqClient != nil {
		if err := dm.asynqClient.Close(); err != nil {
			dm.GetLogger().Warn("failed to close asynq client", "error", err)
		}
	}

	if dm.db != nil {
		if err := dm.db.Close(); err != nil {
			dm.GetLogger().Warn("failed to close database", "error", err)
		}
	}

	if dm.r != nil {
		if err := dm.r.Close(); err != nil {
			dm.GetLogger().Warn("failed to close redis", "error", err)
		}
	}
}
