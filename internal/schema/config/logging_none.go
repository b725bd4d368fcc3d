package config

import (
	"log/slog"

	"github.com/rmorlok/connlifecycle/internal/aplog"
)

type LoggingConfigNone struct {
	Type LoggingConfigType `json:"type" yaml:"type"`
}

func (l *LoggingConfigNone) GetType() LoggingConfigType {
	return LoggingConfigTypeNone
}

func (l *LoggingConfigNone) GetRootLogger() *slog.Logger {
	return aplog.NewNoopLogger()
}
