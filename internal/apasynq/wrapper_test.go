package apasynq

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	opts [][]asynq.Option
}

func (r *recordingClient) Close() error { return nil }
func (r *recordingClient) Ping() error  { return nil }

func (r *recordingClient) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	return r.EnqueueContext(context.Background(), task, opts...)
}

func (r *recordingClient) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	r.opts = append(r.opts, opts)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func TestWrapClientWithDefaultOptions(t *testing.T) {
	inner := &recordingClient{}
	c := WrapClientWithDefaultOptions(inner, []asynq.Option{asynq.Queue("lifecycle"), asynq.MaxRetry(1)})

	info, err := c.Enqueue(asynq.NewTask("lifecycle:reconcile_catalog", nil), asynq.Timeout(time.Minute))
	require.NoError(t, err)
	require.Equal(t, "lifecycle:reconcile_catalog", info.Type)

	_, err = c.EnqueueContext(context.Background(), asynq.NewTask("lifecycle:update_support_states", nil))
	require.NoError(t, err)

	require.Len(t, inner.opts, 2)
	require.Len(t, inner.opts[0], 3)
	require.Equal(t, asynq.QueueOpt, inner.opts[0][0].Type())
	require.Equal(t, asynq.TimeoutOpt, inner.opts[0][2].Type())
	require.Len(t, inner.opts[1], 2)

	require.NoError(t, c.Ping())
	require.NoError(t, c.Close())
}

func TestRetriable(t *testing.T) {
	require.False(t, IsRetriable(nil))
	require.True(t, IsRetriable(errors.New("transient")))
	require.False(t, IsRetriable(errors.Wrap(asynq.SkipRetry, "bad payload")))
	require.True(t, IsNonRetriable(errors.Wrap(asynq.SkipRetry, "bad payload")))
}
