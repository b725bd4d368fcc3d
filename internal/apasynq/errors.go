package apasynq

import (
	"errors"

	"github.com/hibiken/asynq"
)

// IsNonRetriable is true when a task handler returned an error wrapping asynq.SkipRetry.
func IsNonRetriable(err error) bool {
	return errors.Is(err, asynq.SkipRetry)
}

// IsRetriable is true for any handler error that asynq will retry.
func IsRetriable(err error) bool {
	return err != nil && !errors.Is(err, asynq.SkipRetry)
}
