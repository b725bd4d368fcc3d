package core

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/apctx"
	"github.com/rmorlok/connlifecycle/internal/aplog"
	"github.com/rmorlok/connlifecycle/internal/core/iface"
	"github.com/rmorlok/connlifecycle/internal/database"
	"github.com/rmorlok/connlifecycle/internal/semver"
	"github.com/rmorlok/connlifecycle/internal/util"
)

// definitionSupportStates is the computed update for one definition together with the versions it was
// computed from.
type definitionSupportStates struct {
	definition database.ActorDefinition
	versions   []database.ActorDefinitionVersion
	update     SupportStateUpdate
}

func (s *service) UpdateSupportStates(ctx context.Context) (*iface.SupportStateRunResult, error) {
	logger := aplog.NewBuilder(s.logger).
		WithCtx(ctx).
		WithComponent("support-state-engine").
		Build()

	referenceDate := database.DateOf(apctx.GetClock(ctx).Now().UTC())
	policy := s.cascadePolicy(ctx, logger)

	logger.Info("updating support states", "reference_date", referenceDate.String(), "cascade_enabled", policy.Enabled)

	defs, err := s.db.ListActorDefinitions(ctx, database.ActorDefinitionFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list actor definitions")
	}

	allChanges, err := s.db.ListBreakingChanges(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list breaking changes")
	}

	changesByDefinition := util.GroupBy(allChanges, func(c database.ActorDefinitionBreakingChange) uuid.UUID {
		return c.ActorDefinitionId
	})

	var failures *multierror.Error
	var computed []definitionSupportStates

	for _, def := range defs {
		dss, err := s.computeDefinitionSupportStates(ctx, logger, def, changesByDefinition[def.Id], referenceDate)
		if err != nil {
			logger.Error("failed to compute support states", "actor_definition_id", def.Id, "error", err)
			failures = multierror.Append(failures, errors.Wrapf(err, "actor definition %s", def.Id))
			continue
		}

		if dss != nil {
			computed = append(computed, *dss)
		}
	}

	result := &iface.SupportStateRunResult{}
	failed := s.applySupportStateUpdates(ctx, logger, computed, result)
	for id, err := range failed {
		failures = multierror.Append(failures, errors.Wrapf(err, "actor definition %s", id))
	}

	if policy.Enabled {
		var unsupported []uuid.UUID
		for _, dss := range computed {
			if _, ok := failed[dss.definition.Id]; ok {
				continue
			}
			unsupported = append(unsupported, ResultingUnsupported(dss.versions, dss.update)...)
		}

		disabled, err := s.disableSyncs(ctx, logger, policy, unsupported)
		if err != nil {
			failures = multierror.Append(failures, err)
		}
		result.DisabledConnectionIds = disabled
	}

	result.Failures = failures.ErrorOrNil()

	failureCount := 0
	if failures != nil {
		failureCount = len(failures.Errors)
	}

	logger.Info("support states updated",
		"unsupported", result.UnsupportedCount,
		"deprecated", result.DeprecatedCount,
		"supported", result.SupportedCount,
		"disabled_connections", len(result.DisabledConnectionIds),
		"failures", failureCount,
	)

	return result, nil
}

// computeDefinitionSupportStates returns nil without error when the definition cannot be classified and should
// be left as it is.
func (s *service) computeDefinitionSupportStates(
	ctx context.Context,
	logger *slog.Logger,
	def database.ActorDefinition,
	changes []database.ActorDefinitionBreakingChange,
	referenceDate database.Date,
) (*definitionSupportStates, error) {
	logger = aplog.NewBuilder(logger).
		WithDefinitionId(def.Id).
		WithDockerRepository(def.DockerRepository).
		Build()

	if def.DefaultVersionId == nil {
		logger.Warn("definition has no default version; leaving support states unchanged")
		return nil, nil
	}

	defaultAdv, err := s.db.GetActorDefinitionVersion(ctx, *def.DefaultVersionId)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load default version")
	}

	defaultVersion, err := semver.Parse(defaultAdv.DockerImageTag)
	if err != nil && len(changes) > 0 {
		logger.Warn("default version tag is not a version; leaving support states unchanged", "error", err)
		return nil, nil
	}

	versions, err := s.db.ListVersionsForDefinition(ctx, def.Id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list versions")
	}

	update, err := ComputeSupportStateUpdate(defaultVersion, changes, versions, referenceDate)
	if err != nil {
		logger.Warn("some versions could not be classified", "error", err)
	}

	if update.IsEmpty() {
		logger.Debug("support states already current")
	}

	return &definitionSupportStates{
		definition: def,
		versions:   versions,
		update:     update,
	}, nil
}

// applySupportStateUpdates writes the combined update one state at a time. When a batch fails it is retried per
// definition. Definitions whose write still fails are returned.
func (s *service) applySupportStateUpdates(
	ctx context.Context,
	logger *slog.Logger,
	computed []definitionSupportStates,
	result *iface.SupportStateRunResult,
) map[uuid.UUID]error {
	failed := make(map[uuid.UUID]error)

	var combined SupportStateUpdate
	for _, dss := range computed {
		combined = combined.Union(dss.update)
	}

	for _, state := range supportStateOrder {
		ids := combined.IdsFor(state)
		if len(ids) == 0 {
			continue
		}

		err := s.db.SetSupportStates(ctx, ids, state)
		if err == nil {
			countSupportStates(result, state, len(ids))
			continue
		}

		logger.Warn("batched support state write failed; retrying per definition",
			"support_state", state,
			"versions", len(ids),
			"error", err,
		)

		for _, dss := range computed {
			defIds := dss.update.IdsFor(state)
			if len(defIds) == 0 {
				continue
			}

			if err := s.db.SetSupportStates(ctx, defIds, state); err != nil {
				logger.Error("failed to write support states",
					"actor_definition_id", dss.definition.Id,
					"support_state", state,
					"error", err,
				)
				failed[dss.definition.Id] = err
				continue
			}

			countSupportStates(result, state, len(defIds))
		}
	}

	return failed
}

func countSupportStates(result *iface.SupportStateRunResult, state database.SupportState, n int) {
	switch state {
	case database.SupportStateUnsupported:
		result.UnsupportedCount += n
	case database.SupportStateDeprecated:
		result.DeprecatedCount += n
	case database.SupportStateSupported:
		result.SupportedCount += n
	}
}
