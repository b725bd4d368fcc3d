package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/apctx"
)

type SupportState string

const (
	SupportStateSupported   SupportState = "supported"
	SupportStateDeprecated  SupportState = "deprecated"
	SupportStateUnsupported SupportState = "unsupported"
)

func IsValidSupportState[T string | SupportState](state T) bool {
	switch SupportState(state) {
	case SupportStateSupported, SupportStateDeprecated, SupportStateUnsupported:
		return true
	default:
		return false
	}
}

// Value implements the driver.Valuer interface for SupportState
func (s SupportState) Value() (driver.Value, error) {
	return string(s), nil
}

// Scan implements the sql.Scanner interface for SupportState
func (s *SupportState) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = SupportState(v)
	case []byte:
		*s = SupportState(v)
	default:
		return fmt.Errorf("cannot convert %T to SupportState", value)
	}
	return nil
}

// ConnectorSpec is the raw connector specification document (connection schema plus metadata).
type ConnectorSpec json.RawMessage

func (c ConnectorSpec) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	return json.RawMessage(c).MarshalJSON()
}

func (c *ConnectorSpec) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = nil
		return nil
	}
	*c = append((*c)[0:0], data...)
	return nil
}

// Value implements the driver.Valuer interface for ConnectorSpec
func (c ConnectorSpec) Value() (driver.Value, error) {
	if len(c) == 0 {
		return nil, nil
	}
	return string(c), nil
}

// Scan implements the sql.Scanner interface for ConnectorSpec
func (c *ConnectorSpec) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = nil
	case string:
		*c = ConnectorSpec(v)
	case []byte:
		*c = append(ConnectorSpec(nil), v...)
	default:
		return fmt.Errorf("cannot convert %T to ConnectorSpec", value)
	}
	return nil
}

const ActorDefinitionVersionsTable = "actor_definition_versions"

// ActorDefinitionVersion is the record of one concrete image of a definition. At most one exists per
// (ActorDefinitionId, DockerImageTag). After creation only SupportState changes.
type ActorDefinitionVersion struct {
	Id                uuid.UUID
	ActorDefinitionId uuid.UUID
	DockerRepository  string
	DockerImageTag    string
	Spec              ConnectorSpec
	ProtocolVersion   string
	SupportState      SupportState
	ReleaseStage      string
	DocumentationUrl  string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (v *ActorDefinitionVersion) cols() []string {
	return []string{
		"id",
		"actor_definition_id",
		"docker_repository",
		"docker_image_tag",
		"spec",
		"protocol_version",
		"support_state",
		"release_stage",
		"documentation_url",
		"created_at",
		"updated_at",
	}
}

func (v *ActorDefinitionVersion) fields() []any {
	return []any{
		&v.Id,
		&v.ActorDefinitionId,
		&v.DockerRepository,
		&v.DockerImageTag,
		&v.Spec,
		&v.ProtocolVersion,
		&v.SupportState,
		&v.ReleaseStage,
		&v.DocumentationUrl,
		&v.CreatedAt,
		&v.UpdatedAt,
	}
}

func (v *ActorDefinitionVersion) values() []any {
	return []any{
		v.Id,
		v.ActorDefinitionId,
		v.DockerRepository,
		v.DockerImageTag,
		v.Spec,
		v.ProtocolVersion,
		v.SupportState,
		v.ReleaseStage,
		v.DocumentationUrl,
		v.CreatedAt,
		v.UpdatedAt,
	}
}

func (v *ActorDefinitionVersion) Validate() error {
	result := &multierror.Error{}

	if v.ActorDefinitionId == uuid.Nil {
		result = multierror.Append(result, errors.New("actor definition id is required"))
	}

	if v.DockerRepository == "" {
		result = multierror.Append(result, errors.New("docker repository is required"))
	}

	if v.DockerImageTag == "" {
		result = multierror.Append(result, errors.New("docker image tag is required"))
	}

	if v.SupportState != "" && !IsValidSupportState(v.SupportState) {
		result = multierror.Append(result, fmt.Errorf("invalid support state '%s'", v.SupportState))
	}

	return result.ErrorOrNil()
}

func (s *service) GetActorDefinitionVersion(ctx context.Context, id uuid.UUID) (*ActorDefinitionVersion, error) {
	var result ActorDefinitionVersion
	err := s.sq.
		Select(result.cols()...).
		From(ActorDefinitionVersionsTable).
		Where(sq.Eq{"id": id}).
		RunWith(s.runner).
		QueryRow().
		Scan(result.fields()...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &result, nil
}

// GetActorDefinitionVersionForTag returns nil, nil when no version exists for the tag.
func (s *service) GetActorDefinitionVersionForTag(ctx context.Context, definitionId uuid.UUID, dockerImageTag string) (*ActorDefinitionVersion, error) {
	var result ActorDefinitionVersion
	err := s.sq.
		Select(result.cols()...).
		From(ActorDefinitionVersionsTable).
		Where(sq.Eq{
			"actor_definition_id": definitionId,
			"docker_image_tag":    dockerImageTag,
		}).
		RunWith(s.runner).
		QueryRow().
		Scan(result.fields()...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &result, nil
}

// UpsertActorDefinitionVersion writes the version keyed by (definition, tag). If a version already exists for
// the pair its id, support state and creation time are kept and the content fields are replaced. The persisted
// record is returned.
func (s *service) UpsertActorDefinitionVersion(ctx context.Context, adv *ActorDefinitionVersion) (*ActorDefinitionVersion, error) {
	if adv == nil {
		return nil, errors.New("actor definition version is nil")
	}

	if err := adv.Validate(); err != nil {
		return nil, err
	}

	var result *ActorDefinitionVersion
	err := s.transaction(ctx, func(tx *service) error {
		existing, err := tx.GetActorDefinitionVersionForTag(ctx, adv.ActorDefinitionId, adv.DockerImageTag)
		if err != nil {
			return err
		}

		now := apctx.GetClock(ctx).Now()

		if existing == nil {
			cpy := *adv
			if cpy.Id == uuid.Nil {
				cpy.Id = apctx.GetUuidGenerator(ctx).New()
			}
			if cpy.SupportState == "" {
				cpy.SupportState = SupportStateSupported
			}
			cpy.CreatedAt = now
			cpy.UpdatedAt = now

			_, err := tx.sq.
				Insert(ActorDefinitionVersionsTable).
				Columns(cpy.cols()...).
				Values(cpy.values()...).
				RunWith(tx.runner).
				Exec()
			if err != nil {
				if isUniqueViolation(err) {
					return ErrDuplicate
				}
				return errors.Wrap(err, "failed to insert actor definition version")
			}

			result = &cpy
			return nil
		}

		_, err = tx.sq.
			Update(ActorDefinitionVersionsTable).
			SetMap(map[string]interface{}{
				"docker_repository": adv.DockerRepository,
				"spec":              adv.Spec,
				"protocol_version":  adv.ProtocolVersion,
				"release_stage":     adv.ReleaseStage,
				"documentation_url": adv.DocumentationUrl,
				"updated_at":        now,
			}).
			Where(sq.Eq{"id": existing.Id}).
			RunWith(tx.runner).
			Exec()
		if err != nil {
			return errors.Wrap(err, "failed to update actor definition version")
		}

		updated := *existing
		updated.DockerRepository = adv.DockerRepository
		updated.Spec = adv.Spec
		updated.ProtocolVersion = adv.ProtocolVersion
		updated.ReleaseStage = adv.ReleaseStage
		updated.DocumentationUrl = adv.DocumentationUrl
		updated.UpdatedAt = now
		result = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *service) ListVersionsForDefinition(ctx context.Context, definitionId uuid.UUID) ([]ActorDefinitionVersion, error) {
	var v ActorDefinitionVersion
	rows, err := s.sq.
		Select(v.cols()...).
		From(ActorDefinitionVersionsTable).
		Where(sq.Eq{"actor_definition_id": definitionId}).
		OrderBy("created_at", "id").
		RunWith(s.runner).
		Query()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list actor definition versions")
	}
	defer rows.Close()

	var results []ActorDefinitionVersion
	for rows.Next() {
		var r ActorDefinitionVersion
		if err := rows.Scan(r.fields()...); err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// SetSupportStates moves every listed version to the state. An empty list is a no-op.
func (s *service) SetSupportStates(ctx context.Context, versionIds []uuid.UUID, state SupportState) error {
	if len(versionIds) == 0 {
		return nil
	}

	if !IsValidSupportState(state) {
		return fmt.Errorf("invalid support state '%s'", state)
	}

	_, err := s.sq.
		Update(ActorDefinitionVersionsTable).
		Set("support_state", state).
		Set("updated_at", apctx.GetClock(ctx).Now()).
		Where(sq.Eq{"id": versionIds}).
		RunWith(s.runner).
		Exec()
	if err != nil {
		return errors.Wrapf(err, "failed to set support state '%s'", state)
	}

	return nil
}
