package core

import (
	"bytes"
	"context"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/aplog"
	"github.com/rmorlok/connlifecycle/internal/database"
	"github.com/rmorlok/connlifecycle/internal/flags"
	"github.com/rmorlok/connlifecycle/internal/util"
)

// CascadePolicy decides whether a support-state run may deactivate connections whose actors run unsupported
// versions. It is computed once per run.
type CascadePolicy struct {
	Enabled bool
}

// cascadePolicy is enabled only for cloud deployments with the pause flag on. Failing to read the flag
// disables it.
func (s *service) cascadePolicy(ctx context.Context, logger *slog.Logger) CascadePolicy {
	if !s.lifecycle().IsCloud() {
		return CascadePolicy{}
	}

	if s.flags == nil {
		return CascadePolicy{}
	}

	enabled, err := s.flags.IsEnabled(ctx, flags.PauseSyncsWithUnsupportedVersions)
	if err != nil {
		logger.Warn("failed to read feature flag; connections will not be paused",
			"flag", flags.PauseSyncsWithUnsupportedVersions,
			"error", err,
		)
		return CascadePolicy{}
	}

	return CascadePolicy{Enabled: enabled}
}

// disableSyncs deactivates the active connections of actors running one of the unsupported versions. Actors
// pinned by a user override are left alone. Each workspace is handled in its own transaction; failures are
// collected and the remaining workspaces still run.
func (s *service) disableSyncs(
	ctx context.Context,
	logger *slog.Logger,
	policy CascadePolicy,
	unsupportedVersionIds []uuid.UUID,
) ([]uuid.UUID, error) {
	if !policy.Enabled || len(unsupportedVersionIds) == 0 {
		return nil, nil
	}

	actors, err := s.db.ListActorsWithVersionIds(ctx, unsupportedVersionIds)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list actors on unsupported versions")
	}

	var failures *multierror.Error
	var affected []database.Actor

	for _, a := range actors {
		applied, err := s.db.IsOverrideApplied(ctx, a.ActorDefinitionId, a.WorkspaceId, a.Id)
		if err != nil {
			logger.Warn("failed to check version override; leaving actor alone", "actor_id", a.Id, "error", err)
			failures = multierror.Append(failures, errors.Wrapf(err, "actor %s", a.Id))
			continue
		}

		if applied {
			logger.Debug("actor has a version override; leaving its connections active", "actor_id", a.Id)
			continue
		}

		affected = append(affected, a)
	}

	byWorkspace := util.GroupBy(affected, func(a database.Actor) uuid.UUID {
		return a.WorkspaceId
	})

	workspaceIds := util.GetKeys(byWorkspace)
	slices.SortFunc(workspaceIds, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})

	var disabled []uuid.UUID
	for _, workspaceId := range workspaceIds {
		wsLogger := aplog.NewBuilder(logger).WithWorkspaceId(workspaceId).Build()
		actorIds := util.Map(byWorkspace[workspaceId], func(a database.Actor) uuid.UUID {
			return a.Id
		})

		ids, err := s.disableWorkspaceConnections(ctx, workspaceId, actorIds)
		if err != nil {
			wsLogger.Error("failed to pause connections", "error", err)
			failures = multierror.Append(failures, errors.Wrapf(err, "workspace %s", workspaceId))
			continue
		}

		if len(ids) > 0 {
			wsLogger.Info("paused connections using unsupported versions", "connections", len(ids))
		}
		disabled = append(disabled, ids...)
	}

	return disabled, failures.ErrorOrNil()
}

func (s *service) disableWorkspaceConnections(ctx context.Context, workspaceId uuid.UUID, actorIds []uuid.UUID) ([]uuid.UUID, error) {
	var disabled []uuid.UUID

	err := s.db.Transaction(ctx, func(tx database.DB) error {
		disabled = nil

		conns, err := tx.ListActiveConnectionsForActors(ctx, workspaceId, actorIds)
		if err != nil {
			return err
		}

		for _, c := range conns {
			if err := tx.SetConnectionStatus(ctx, c.Id, database.ConnectionStatusInactive); err != nil {
				return errors.Wrapf(err, "connection %s", c.Id)
			}
			disabled = append(disabled, c.Id)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return disabled, nil
}
