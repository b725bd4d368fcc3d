package core

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/aplog"
	"github.com/rmorlok/connlifecycle/internal/database"
)

func (s *service) ResolveVersion(
	ctx context.Context,
	definitionId uuid.UUID,
	actorType database.ActorType,
	dockerRepository string,
	dockerImageTag string,
) (*database.ActorDefinitionVersion, error) {
	return s.resolveVersion(ctx, s.db, definitionId, actorType, dockerRepository, dockerImageTag)
}

// resolveVersion is ResolveVersion against an explicit store so it can run inside a caller's transaction.
func (s *service) resolveVersion(
	ctx context.Context,
	db database.DB,
	definitionId uuid.UUID,
	actorType database.ActorType,
	dockerRepository string,
	dockerImageTag string,
) (*database.ActorDefinitionVersion, error) {
	logger := aplog.NewBuilder(s.logger).
		WithCtx(ctx).
		WithDefinitionId(definitionId).
		WithDockerRepository(dockerRepository).
		Build()

	existing, err := db.GetActorDefinitionVersionForTag(ctx, definitionId, dockerImageTag)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up version %s of %s", dockerImageTag, dockerRepository)
	}

	if existing != nil {
		return existing, nil
	}

	entry, err := s.registry.GetDefinitionByVersion(ctx, dockerRepository, dockerImageTag, actorType)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s:%s from the registry", dockerRepository, dockerImageTag)
	}

	if entry == nil {
		logger.Info("version not found in the registry", "docker_image_tag", dockerImageTag)
		return nil, nil
	}

	if err := entry.ValidateSpec(); err != nil {
		logger.Warn("registry entry has an invalid connector spec", "docker_image_tag", dockerImageTag, "error", err)
		return nil, nil
	}

	adv, err := db.UpsertActorDefinitionVersion(ctx, s.versionFromEntry(definitionId, entry))
	if errors.Is(err, database.ErrDuplicate) {
		// Another resolver inserted the same tag first; its record is the one to use.
		adv, err = db.GetActorDefinitionVersionForTag(ctx, definitionId, dockerImageTag)
		if err == nil && adv == nil {
			err = database.ErrNotFound
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to reload concurrently persisted version %s of %s", dockerImageTag, dockerRepository)
		}

		logger.Info("version was persisted concurrently", "docker_image_tag", dockerImageTag, "actor_definition_version_id", adv.Id)
		return adv, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to persist version %s of %s", dockerImageTag, dockerRepository)
	}

	logger.Info("persisted version from the registry", "docker_image_tag", dockerImageTag, "actor_definition_version_id", adv.Id)

	return adv, nil
}
