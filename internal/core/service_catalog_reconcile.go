package core

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/apctx"
	"github.com/rmorlok/connlifecycle/internal/aplog"
	"github.com/rmorlok/connlifecycle/internal/core/iface"
	"github.com/rmorlok/connlifecycle/internal/database"
	"github.com/rmorlok/connlifecycle/internal/registry"
	"github.com/rmorlok/connlifecycle/internal/semver"
	"github.com/rmorlok/connlifecycle/internal/util"
)

type catalogOutcome int

const (
	catalogOutcomeSkipped catalogOutcome = iota
	catalogOutcomeNew
	catalogOutcomeUpdated
	catalogOutcomeRewritten
)

// storedDefinitions is the reconciler's view of the store at the start of a run.
type storedDefinitions struct {
	byRepository map[string]*database.ActorDefinition
	byId         map[uuid.UUID]*database.ActorDefinition
	customIds    map[uuid.UUID]struct{}
	inUse        map[string]struct{}
}

func (s *service) ReconcileLatestCatalog(ctx context.Context) (*iface.ReconcileResult, error) {
	catalog, err := s.registry.GetLatestCatalog(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch the latest catalog")
	}

	return s.ReconcileCatalog(ctx, catalog)
}

func (s *service) ReconcileCatalog(ctx context.Context, catalog *registry.Catalog) (*iface.ReconcileResult, error) {
	logger := aplog.NewBuilder(s.logger).
		WithCtx(ctx).
		WithComponent("catalog-reconciler").
		Build()

	entries := catalog.Entries()
	logger.Info("reconciling catalog", "entries", len(entries))

	var result iface.ReconcileResult
	err := s.db.Transaction(ctx, func(tx database.DB) error {
		result = iface.ReconcileResult{}

		stored, err := s.loadStoredDefinitions(ctx, tx, logger)
		if err != nil {
			return err
		}

		for i := range entries {
			outcome, err := s.reconcileEntry(ctx, tx, logger, stored, &entries[i])
			if err != nil {
				return err
			}

			switch outcome {
			case catalogOutcomeNew:
				result.NewCount++
			case catalogOutcomeUpdated:
				result.UpdatedCount++
			case catalogOutcomeSkipped:
				result.SkippedCount++
			}
		}

		return nil
	})
	if err != nil {
		logger.Error("catalog reconciliation rolled back", "error", err)
		return nil, errors.Wrap(err, "failed to reconcile catalog")
	}

	logger.Info("catalog reconciled",
		"new", result.NewCount,
		"updated", result.UpdatedCount,
		"skipped", result.SkippedCount,
	)

	return &result, nil
}

func (s *service) loadStoredDefinitions(ctx context.Context, tx database.DB, logger *slog.Logger) (*storedDefinitions, error) {
	defs, err := tx.ListActorDefinitions(ctx, database.ActorDefinitionFilter{
		IncludeCustom:     true,
		IncludeTombstoned: true,
	})
	if err != nil {
		return nil, err
	}

	inUse, err := tx.ListDockerRepositoriesInUse(ctx)
	if err != nil {
		return nil, err
	}

	stored := &storedDefinitions{
		byRepository: make(map[string]*database.ActorDefinition),
		byId:         make(map[uuid.UUID]*database.ActorDefinition),
		customIds:    make(map[uuid.UUID]struct{}),
		inUse:        inUse,
	}

	for i := range defs {
		def := &defs[i]
		if def.Custom {
			stored.customIds[def.Id] = struct{}{}
			continue
		}

		stored.byId[def.Id] = def

		other, ok := stored.byRepository[def.DockerRepository]
		if !ok {
			stored.byRepository[def.DockerRepository] = def
			continue
		}

		keep := other
		newer, err := semver.IsNewer(other.DockerImageTag, def.DockerImageTag)
		if err == nil && newer {
			keep = def
		}

		logger.Warn("multiple definitions share a docker repository",
			"docker_repository", def.DockerRepository,
			"kept_actor_definition_id", keep.Id,
			"kept_docker_image_tag", keep.DockerImageTag,
		)
		stored.byRepository[def.DockerRepository] = keep
	}

	return stored, nil
}

func (s *service) reconcileEntry(
	ctx context.Context,
	tx database.DB,
	logger *slog.Logger,
	stored *storedDefinitions,
	entry *registry.Entry,
) (catalogOutcome, error) {
	logger = aplog.NewBuilder(logger).
		WithDockerRepository(entry.DockerRepository).
		Build()

	if entry.DockerRepository == "" || entry.DockerImageTag == "" {
		logger.Warn("skipping catalog entry without a docker repository and tag", "name", entry.Name)
		return catalogOutcomeSkipped, nil
	}

	if !database.IsValidActorType(entry.ActorType) {
		logger.Warn("skipping catalog entry with unknown actor type", "actor_type", entry.ActorType)
		return catalogOutcomeSkipped, nil
	}

	if err := entry.ValidateSpec(); err != nil {
		logger.Warn("skipping catalog entry with invalid connector spec", "error", err)
		return catalogOutcomeSkipped, nil
	}

	if _, ok := stored.customIds[entry.DefinitionId]; ok {
		logger.Warn("skipping catalog entry that collides with a custom definition", "actor_definition_id", entry.DefinitionId)
		return catalogOutcomeSkipped, nil
	}

	current, ok := stored.byRepository[entry.DockerRepository]
	if !ok && entry.DefinitionId != uuid.Nil {
		// Same definition published under a new repository
		current = stored.byId[entry.DefinitionId]
	}

	if current == nil {
		def, err := s.writeCatalogEntry(ctx, tx, nil, entry)
		if err != nil {
			return catalogOutcomeSkipped, err
		}

		stored.byRepository[def.DockerRepository] = def
		stored.byId[def.Id] = def
		logger.Info("added definition from catalog", "actor_definition_id", def.Id, "docker_image_tag", def.DockerImageTag)
		return catalogOutcomeNew, nil
	}

	logger = aplog.NewBuilder(logger).WithDefinitionId(current.Id).Build()

	currentVersion, err := semver.Parse(current.DockerImageTag)
	if err != nil {
		logger.Warn("skipping catalog entry; stored tag is not a version", "error", err)
		return catalogOutcomeSkipped, nil
	}

	latestVersion, err := semver.Parse(entry.DockerImageTag)
	if err != nil {
		logger.Warn("skipping catalog entry; catalog tag is not a version", "error", err)
		return catalogOutcomeSkipped, nil
	}

	if !latestVersion.GreaterThan(currentVersion) {
		if _, err := s.writeCatalogEntry(ctx, tx, current, entry); err != nil {
			return catalogOutcomeSkipped, err
		}

		logger.Debug("refreshed definition without a version change", "docker_image_tag", entry.DockerImageTag)
		return catalogOutcomeRewritten, nil
	}

	_, inUse := stored.inUse[current.DockerRepository]
	if inUse && !latestVersion.IsPatchBumpOf(currentVersion) {
		logger.Info("withholding upgrade of definition in use",
			"current_docker_image_tag", current.DockerImageTag,
			"latest_docker_image_tag", entry.DockerImageTag,
		)

		backfilled, err := s.backfillMetadata(ctx, tx, current, entry)
		if err != nil {
			return catalogOutcomeSkipped, err
		}

		if err := tx.UpsertBreakingChanges(ctx, entry.ToBreakingChanges(current.Id)); err != nil {
			return catalogOutcomeSkipped, err
		}

		if backfilled {
			return catalogOutcomeUpdated, nil
		}
		return catalogOutcomeSkipped, nil
	}

	def, err := s.writeCatalogEntry(ctx, tx, current, entry)
	if err != nil {
		return catalogOutcomeSkipped, err
	}

	logger.Info("updated definition from catalog",
		"previous_docker_image_tag", current.DockerImageTag,
		"docker_image_tag", def.DockerImageTag,
	)

	stored.byRepository[def.DockerRepository] = def
	stored.byId[def.Id] = def
	return catalogOutcomeUpdated, nil
}

// writeCatalogEntry writes the entry as the definition's default version, together with its breaking changes.
func (s *service) writeCatalogEntry(
	ctx context.Context,
	tx database.DB,
	current *database.ActorDefinition,
	entry *registry.Entry,
) (*database.ActorDefinition, error) {
	def := &database.ActorDefinition{
		Name:             entry.Name,
		ActorType:        entry.ActorType,
		DockerRepository: entry.DockerRepository,
		DockerImageTag:   entry.DockerImageTag,
		DocumentationUrl: entry.DocumentationUrl,
		IconUrl:          entry.IconUrl,
	}

	if current != nil {
		def.Id = current.Id
		def.DefaultVersionId = current.DefaultVersionId
		def.Tombstone = current.Tombstone
		def.CreatedAt = current.CreatedAt
		if def.Name == "" {
			def.Name = current.Name
		}
		if def.DocumentationUrl == "" {
			def.DocumentationUrl = current.DocumentationUrl
		}
		if def.IconUrl == "" {
			def.IconUrl = current.IconUrl
		}
	} else {
		def.Id = entry.DefinitionId
		if def.Id == uuid.Nil {
			def.Id = apctx.GetUuidGenerator(ctx).New()
		}
	}

	if def.Name == "" {
		def.Name = entry.DockerRepository
	}

	if err := tx.UpsertActorDefinition(ctx, def); err != nil {
		return nil, errors.Wrapf(err, "failed to write definition for %s", entry.DockerRepository)
	}

	adv, err := tx.UpsertActorDefinitionVersion(ctx, s.versionFromEntry(def.Id, entry))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to write version %s of %s", entry.DockerImageTag, entry.DockerRepository)
	}

	if err := tx.SetDefaultVersion(ctx, def.Id, adv.Id); err != nil {
		return nil, errors.Wrapf(err, "failed to set default version of %s", entry.DockerRepository)
	}
	def.DefaultVersionId = util.ToPtr(adv.Id)

	if err := tx.UpsertBreakingChanges(ctx, entry.ToBreakingChanges(def.Id)); err != nil {
		return nil, errors.Wrapf(err, "failed to write breaking changes of %s", entry.DockerRepository)
	}

	return def, nil
}

// backfillMetadata fills documentation and icon urls the definition is missing, leaving its version alone.
func (s *service) backfillMetadata(
	ctx context.Context,
	tx database.DB,
	current *database.ActorDefinition,
	entry *registry.Entry,
) (bool, error) {
	updated := *current
	changed := false

	if updated.DocumentationUrl == "" && entry.DocumentationUrl != "" {
		updated.DocumentationUrl = entry.DocumentationUrl
		changed = true
	}

	if updated.IconUrl == "" && entry.IconUrl != "" {
		updated.IconUrl = entry.IconUrl
		changed = true
	}

	if !changed {
		return false, nil
	}

	if err := tx.UpsertActorDefinition(ctx, &updated); err != nil {
		return false, errors.Wrapf(err, "failed to backfill metadata of %s", current.DockerRepository)
	}

	*current = updated
	return true, nil
}
