package worker

import (
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

// asynqLogger routes asynq's printf-style logging into slog.
type asynqLogger struct {
	inner *slog.Logger
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.inner.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.inner.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.inner.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.inner.Error(fmt.Sprint(args...))
}

// Fatal is only called by asynq for unrecoverable broker failures.
func (l *asynqLogger) Fatal(args ...interface{}) {
	msg := fmt.Sprint(args...)
	l.inner.Error(msg, "fatal", true)
	panic(msg)
}

var _ asynq.Logger = (*asynqLogger)(nil)
