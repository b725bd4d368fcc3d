package core

import (
	"log/slog"

	"github.com/rmorlok/connlifecycle/internal/apasynq"
	"github.com/rmorlok/connlifecycle/internal/apredis"
	"github.com/rmorlok/connlifecycle/internal/config"
	"github.com/rmorlok/connlifecycle/internal/core/iface"
	"github.com/rmorlok/connlifecycle/internal/database"
	"github.com/rmorlok/connlifecycle/internal/flags"
	"github.com/rmorlok/connlifecycle/internal/registry"
)

type service struct {
	cfg      config.C
	db       database.DB
	registry registry.Client
	flags    flags.Client
	r        apredis.Client
	ac       apasynq.Client
	logger   *slog.Logger
}

// NewLifecycleService creates a new lifecycle service. The redis client and the asynq client may be nil for
// one-shot use from the command line; reconciliation then runs without the cross-replica lock and tasks
// cannot be enqueued.
func NewLifecycleService(
	cfg config.C,
	db database.DB,
	reg registry.Client,
	fc flags.Client,
	r apredis.Client,
	ac apasynq.Client,
	logger *slog.Logger,
) iface.C {
	return &service{
		cfg:      cfg,
		db:       db,
		registry: reg,
		flags:    fc,
		r:        r,
		ac:       ac,
		logger:   logger,
	}
}

var _ iface.C = (*service)(nil)
