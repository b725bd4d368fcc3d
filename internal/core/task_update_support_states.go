package core

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rmorlok/connlifecycle/internal/aplog"
)

const taskTypeUpdateSupportStates = "lifecycle:update_support_states"

func newUpdateSupportStatesTask() *asynq.Task {
	return asynq.NewTask(taskTypeUpdateSupportStates, nil)
}

func (s *service) updateSupportStatesTask(ctx context.Context, t *asynq.Task) error {
	logger := aplog.NewBuilder(s.logger).
		WithTask(t).
		WithCtx(ctx).
		Build()
	logger.Info("Update support states task started")
	defer logger.Info("Update support states task completed")

	result, err := s.UpdateSupportStates(ctx)
	if err != nil {
		return err
	}

	if result.Failures != nil {
		logger.Warn("support state run finished with failures", "error", result.Failures)
	}

	return nil
}
