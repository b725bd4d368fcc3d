package main

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/database"
	"github.com/spf13/cobra"
)

type versionJson struct {
	Id                uuid.UUID              `json:"id"`
	ActorDefinitionId uuid.UUID              `json:"actor_definition_id"`
	DockerRepository  string                 `json:"docker_repository"`
	DockerImageTag    string                 `json:"docker_image_tag"`
	ProtocolVersion   string                 `json:"protocol_version"`
	SupportState      database.SupportState  `json:"support_state"`
	ReleaseStage      string                 `json:"release_stage,omitempty"`
	DocumentationUrl  string                 `json:"documentation_url,omitempty"`
	Spec              database.ConnectorSpec `json:"spec"`
}

func newVersionJson(adv *database.ActorDefinitionVersion) versionJson {
	return versionJson{
		Id:                adv.Id,
		ActorDefinitionId: adv.ActorDefinitionId,
		DockerRepository:  adv.DockerRepository,
		DockerImageTag:    adv.DockerImageTag,
		ProtocolVersion:   adv.ProtocolVersion,
		SupportState:      adv.SupportState,
		ReleaseStage:      adv.ReleaseStage,
		DocumentationUrl:  adv.DocumentationUrl,
		Spec:              adv.Spec,
	}
}

func parseDefinitionId(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid definition id '%s'", s)
	}
	return id, nil
}

func cmdAdvanceDefault(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "advance-default <definition-id> <docker-image-tag>",
		Short: "Move the default version of a connector definition unless that would cross a breaking change",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			definitionId, err := parseDefinitionId(args[0])
			if err != nil {
				return err
			}

			dm := c.dependencies("advance-default")
			defer dm.Close()

			advanced, err := dm.GetCoreService().AdvanceDefaultVersion(cmd.Context(), definitionId, args[1])
			if err != nil {
				return err
			}

			return emit(cmd, struct {
				DefinitionId   uuid.UUID `json:"definition_id"`
				DockerImageTag string    `json:"docker_image_tag"`
				Advanced       bool      `json:"advanced"`
			}{
				DefinitionId:   definitionId,
				DockerImageTag: args[1],
				Advanced:       advanced,
			})
		},
	}
}

func cmdResolveVersion(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve-version <definition-id> <docker-image-tag>",
		Short: "Look up a connector version, fetching it from the registry if it is not stored",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			definitionId, err := parseDefinitionId(args[0])
			if err != nil {
				return err
			}

			dm := c.dependencies("resolve-version")
			defer dm.Close()

			def, err := dm.GetDatabase().GetActorDefinition(cmd.Context(), definitionId)
			if err != nil {
				if errors.Is(err, database.ErrNotFound) {
					return errors.Errorf("actor definition '%s' not found", definitionId)
				}
				return err
			}

			adv, err := dm.GetCoreService().ResolveVersion(cmd.Context(), def.Id, def.ActorType, def.DockerRepository, args[1])
			if err != nil {
				return err
			}

			if adv == nil {
				return errors.Errorf("version '%s' of '%s' is not known to the registry", args[1], def.DockerRepository)
			}

			return emit(cmd, newVersionJson(adv))
		},
	}
}
