// Package registry reads connector metadata published by the catalog maintainer, either from a remote catalog
// service or from a snapshot file bundled with the deployment.
package registry

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/database"
	"github.com/rmorlok/connlifecycle/internal/semver"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BreakingChange is a breaking change as published alongside a catalog entry.
type BreakingChange struct {
	Version                   semver.Version `json:"version"`
	UpgradeDeadline           database.Date  `json:"upgrade_deadline"`
	Message                   string         `json:"message,omitempty"`
	MigrationDocumentationUrl string         `json:"migration_documentation_url,omitempty"`
}

// Entry is the published definition of one connector at one version.
type Entry struct {
	DefinitionId     uuid.UUID          `json:"definition_id"`
	Name             string             `json:"name"`
	ActorType        database.ActorType `json:"actor_type"`
	DockerRepository string             `json:"docker_repository"`
	DockerImageTag   string             `json:"docker_image_tag"`
	DocumentationUrl string             `json:"documentation_url,omitempty"`
	IconUrl          string             `json:"icon_url,omitempty"`
	ReleaseStage     string             `json:"release_stage,omitempty"`
	ProtocolVersion  string             `json:"protocol_version,omitempty"`
	Spec             json.RawMessage    `json:"spec,omitempty"`
	BreakingChanges  []BreakingChange   `json:"breaking_changes,omitempty"`
}

// Catalog is the latest published entry of every connector.
type Catalog struct {
	Sources      []Entry `json:"sources"`
	Destinations []Entry `json:"destinations"`
}

// Entries returns sources then destinations, with the actor type filled in where the publisher omitted it.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}

	result := make([]Entry, 0, len(c.Sources)+len(c.Destinations))
	for _, e := range c.Sources {
		if e.ActorType == "" {
			e.ActorType = database.ActorTypeSource
		}
		result = append(result, e)
	}
	for _, e := range c.Destinations {
		if e.ActorType == "" {
			e.ActorType = database.ActorTypeDestination
		}
		result = append(result, e)
	}

	return result
}

// Find returns the entry for the exact version, or nil.
func (c *Catalog) Find(dockerRepository, dockerImageTag string, actorType database.ActorType) *Entry {
	for _, e := range c.Entries() {
		if e.ActorType == actorType && e.DockerRepository == dockerRepository && e.DockerImageTag == dockerImageTag {
			entry := e
			return &entry
		}
	}
	return nil
}

type connectorSpec struct {
	ConnectionSpecification json.RawMessage `json:"connectionSpecification"`
}

// ValidateSpec checks that the entry carries a connector spec whose connection specification compiles as a
// JSON schema.
func (e *Entry) ValidateSpec() error {
	if len(e.Spec) == 0 {
		return errors.Errorf("%s:%s has no connector spec", e.DockerRepository, e.DockerImageTag)
	}

	var spec connectorSpec
	if err := json.Unmarshal(e.Spec, &spec); err != nil {
		return errors.Wrapf(err, "%s:%s has a malformed connector spec", e.DockerRepository, e.DockerImageTag)
	}

	if len(spec.ConnectionSpecification) == 0 {
		return errors.Errorf("%s:%s connector spec has no connectionSpecification", e.DockerRepository, e.DockerImageTag)
	}

	const resource = "connection_specification.json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(resource, bytes.NewReader(spec.ConnectionSpecification)); err != nil {
		return errors.Wrapf(err, "%s:%s connection specification is not valid json", e.DockerRepository, e.DockerImageTag)
	}

	if _, err := c.Compile(resource); err != nil {
		return errors.Wrapf(err, "%s:%s connection specification is not a valid schema", e.DockerRepository, e.DockerImageTag)
	}

	return nil
}

// ToBreakingChanges converts the published breaking changes for storage under the definition.
func (e *Entry) ToBreakingChanges(definitionId uuid.UUID) []database.ActorDefinitionBreakingChange {
	result := make([]database.ActorDefinitionBreakingChange, 0, len(e.BreakingChanges))
	for _, bc := range e.BreakingChanges {
		result = append(result, database.ActorDefinitionBreakingChange{
			ActorDefinitionId:         definitionId,
			Version:                   bc.Version,
			UpgradeDeadline:           bc.UpgradeDeadline,
			Message:                   bc.Message,
			MigrationDocumentationUrl: bc.MigrationDocumentationUrl,
		})
	}
	return result
}
