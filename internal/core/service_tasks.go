package core

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/aplog"
)

func (s *service) RegisterTasks(mux *asynq.ServeMux) {
	mux.HandleFunc(taskTypeReconcileCatalog, s.reconcileCatalogTask)
	mux.HandleFunc(taskTypeUpdateSupportStates, s.updateSupportStatesTask)
}

func (s *service) GetCronTasks() []*asynq.PeriodicTaskConfig {
	lc := s.lifecycle()

	return []*asynq.PeriodicTaskConfig{
		{
			Task:     newReconcileCatalogTask(),
			Cronspec: lc.GetReconcileCatalogCronOrDefault(),
			Opts:     []asynq.Option{asynq.Unique(lc.GetReconcileLockDurationOrDefault())},
		},
		{
			Task:     newUpdateSupportStatesTask(),
			Cronspec: lc.GetUpdateSupportStatesCronOrDefault(),
		},
	}
}

func (s *service) enqueue(ctx context.Context, t *asynq.Task) (*asynq.TaskInfo, error) {
	if s.ac == nil {
		return nil, errors.New("task queue is not configured")
	}

	logger := aplog.NewBuilder(s.logger).WithCtx(ctx).Build()

	info, err := s.ac.EnqueueContext(ctx, t)
	if err != nil {
		logger.Error("failed to enqueue task", "type", t.Type(), "error", err)
		return nil, errors.Wrapf(err, "failed to enqueue %s", t.Type())
	}

	logger.Info("enqueued task", "type", t.Type(), "id", info.ID, "queue", info.Queue)
	return info, nil
}

func (s *service) EnqueueReconcileCatalog(ctx context.Context) (*asynq.TaskInfo, error) {
	return s.enqueue(ctx, newReconcileCatalogTask())
}

func (s *service) EnqueueUpdateSupportStates(ctx context.Context) (*asynq.TaskInfo, error) {
	return s.enqueue(ctx, newUpdateSupportStatesTask())
}
