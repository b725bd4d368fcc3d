package core

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rmorlok/connlifecycle/internal/aplog"
	"github.com/rmorlok/connlifecycle/internal/apredis"
)

const taskTypeReconcileCatalog = "lifecycle:reconcile_catalog"

// CatalogReconcileMutexKeyName is the redis key locked while a replica reconciles the catalog.
const CatalogReconcileMutexKeyName = "catalog-reconcile-lock"

func newReconcileCatalogTask() *asynq.Task {
	return asynq.NewTask(taskTypeReconcileCatalog, nil)
}

func (s *service) reconcileCatalogTask(ctx context.Context, t *asynq.Task) error {
	logger := aplog.NewBuilder(s.logger).
		WithTask(t).
		WithCtx(ctx).
		Build()
	logger.Info("Reconcile catalog task started")
	defer logger.Info("Reconcile catalog task completed")

	if s.r != nil {
		m := apredis.NewMutex(
			s.r,
			CatalogReconcileMutexKeyName,
			apredis.MutexOptionLockFor(s.lifecycle().GetReconcileLockDurationOrDefault()),
			apredis.MutexOptionNoRetry(),
			apredis.MutexOptionDetailedLockMetadata(),
		)

		if err := m.Lock(ctx); err != nil {
			if apredis.MutexIsErrNotObtained(err) {
				logger.Info("catalog reconciliation already running on another replica")
				return nil
			}
			return err
		}
		defer func() {
			if err := m.Unlock(context.Background()); err != nil {
				logger.Warn("failed to release catalog reconcile lock", "error", err)
			}
		}()
	}

	_, err := s.ReconcileLatestCatalog(ctx)
	return err
}
