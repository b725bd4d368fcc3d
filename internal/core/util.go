package core

import (
	"github.com/google/uuid"
	"github.com/rmorlok/connlifecycle/internal/database"
	"github.com/rmorlok/connlifecycle/internal/registry"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
)

func (s *service) lifecycle() *sconfig.Lifecycle {
	if s.cfg == nil {
		return &sconfig.Lifecycle{}
	}
	return s.cfg.GetLifecycle()
}

func (s *service) protocolVersionFor(e *registry.Entry) string {
	if e.ProtocolVersion != "" {
		return e.ProtocolVersion
	}
	return s.lifecycle().GetDefaultProtocolVersionOrDefault()
}

// versionFromEntry builds the stored form of a registry entry. The id is minted by the store.
func (s *service) versionFromEntry(definitionId uuid.UUID, e *registry.Entry) *database.ActorDefinitionVersion {
	return &database.ActorDefinitionVersion{
		ActorDefinitionId: definitionId,
		DockerRepository:  e.DockerRepository,
		DockerImageTag:    e.DockerImageTag,
		Spec:              database.ConnectorSpec(e.Spec),
		ProtocolVersion:   s.protocolVersionFor(e),
		SupportState:      database.SupportStateSupported,
		ReleaseStage:      e.ReleaseStage,
		DocumentationUrl:  e.DocumentationUrl,
	}
}
