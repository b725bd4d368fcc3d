package apasynq

import (
	"context"

	"github.com/hibiken/asynq"
)

type wrappedClient struct {
	inner    Client
	defaults []asynq.Option
}

func (w *wrappedClient) Close() error {
	return w.inner.Close()
}

func (w *wrappedClient) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	return w.inner.Enqueue(task, w.withDefaults(opts)...)
}

func (w *wrappedClient) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	return w.inner.EnqueueContext(ctx, task, w.withDefaults(opts)...)
}

func (w *wrappedClient) Ping() error {
	return w.inner.Ping()
}

// withDefaults puts the defaults first so that explicit options win.
func (w *wrappedClient) withDefaults(opts []asynq.Option) []asynq.Option {
	all := make([]asynq.Option, 0, len(w.defaults)+len(opts))
	all = append(all, w.defaults...)
	return append(all, opts...)
}

// WrapClientWithDefaultOptions returns a client that applies defaultOpts to every enqueued task.
func WrapClientWithDefaultOptions(c Client, defaultOpts []asynq.Option) Client {
	return &wrappedClient{
		inner:    c,
		defaults: defaultOpts,
	}
}
