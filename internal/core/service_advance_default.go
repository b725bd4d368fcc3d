package core

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/aplog"
	"github.com/rmorlok/connlifecycle/internal/breaking"
	"github.com/rmorlok/connlifecycle/internal/database"
)

func (s *service) AdvanceDefaultVersion(ctx context.Context, definitionId uuid.UUID, targetTag string) (bool, error) {
	logger := aplog.NewBuilder(s.logger).
		WithCtx(ctx).
		WithDefinitionId(definitionId).
		Build()

	advanced := false
	err := s.db.Transaction(ctx, func(tx database.DB) error {
		def, err := tx.GetActorDefinition(ctx, definitionId)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return ErrDefinitionNotFound
			}
			return err
		}

		if def.DockerImageTag == targetTag {
			return nil
		}

		changes, err := tx.ListBreakingChangesForDefinition(ctx, definitionId)
		if err != nil {
			return err
		}

		if !breaking.ShouldAdvanceDefault(logger, def.DockerImageTag, targetTag, changes) {
			logger.Info("default version not advanced",
				"current_docker_image_tag", def.DockerImageTag,
				"target_docker_image_tag", targetTag,
			)
			return nil
		}

		adv, err := s.resolveVersion(ctx, tx, def.Id, def.ActorType, def.DockerRepository, targetTag)
		if err != nil {
			return err
		}

		if adv == nil {
			logger.Warn("cannot advance default version to an unknown tag", "target_docker_image_tag", targetTag)
			return nil
		}

		if err := tx.SetDefaultVersion(ctx, def.Id, adv.Id); err != nil {
			return err
		}

		logger.Info("advanced default version",
			"previous_docker_image_tag", def.DockerImageTag,
			"docker_image_tag", adv.DockerImageTag,
		)
		advanced = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return advanced, nil
}
