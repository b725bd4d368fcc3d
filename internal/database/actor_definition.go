package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/apctx"
	"github.com/rmorlok/connlifecycle/internal/sqlh"
	"github.com/rmorlok/connlifecycle/internal/util"
)

type ActorType string

const (
	ActorTypeSource      ActorType = "source"
	ActorTypeDestination ActorType = "destination"
)

func IsValidActorType[T string | ActorType](t T) bool {
	switch ActorType(t) {
	case ActorTypeSource, ActorTypeDestination:
		return true
	default:
		return false
	}
}

// Value implements the driver.Valuer interface for ActorType
func (t ActorType) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan implements the sql.Scanner interface for ActorType
func (t *ActorType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = ActorType(v)
	case []byte:
		*t = ActorType(v)
	default:
		return fmt.Errorf("cannot convert %T to ActorType", value)
	}
	return nil
}

const ActorDefinitionsTable = "actor_definitions"

// ActorDefinition is one connector type. DockerRepository and DockerImageTag mirror the default version and are
// kept for readers that predate DefaultVersionId.
type ActorDefinition struct {
	Id               uuid.UUID
	Name             string
	ActorType        ActorType
	DockerRepository string
	DockerImageTag   string
	DefaultVersionId *uuid.UUID
	Custom           bool
	Tombstone        bool
	DocumentationUrl string
	IconUrl          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (d *ActorDefinition) cols() []string {
	return []string{
		"id",
		"name",
		"actor_type",
		"docker_repository",
		"docker_image_tag",
		"default_version_id",
		"custom",
		"tombstone",
		"documentation_url",
		"icon_url",
		"created_at",
		"updated_at",
	}
}

func (d *ActorDefinition) fields() []any {
	return []any{
		&d.Id,
		&d.Name,
		&d.ActorType,
		&d.DockerRepository,
		&d.DockerImageTag,
		&d.DefaultVersionId,
		&d.Custom,
		&d.Tombstone,
		&d.DocumentationUrl,
		&d.IconUrl,
		&d.CreatedAt,
		&d.UpdatedAt,
	}
}

func (d *ActorDefinition) values() []any {
	return []any{
		d.Id,
		d.Name,
		d.ActorType,
		d.DockerRepository,
		d.DockerImageTag,
		d.DefaultVersionId,
		d.Custom,
		d.Tombstone,
		d.DocumentationUrl,
		d.IconUrl,
		d.CreatedAt,
		d.UpdatedAt,
	}
}

func (d *ActorDefinition) Validate() error {
	result := &multierror.Error{}

	if d.Id == uuid.Nil {
		result = multierror.Append(result, errors.New("actor definition id is required"))
	}

	if d.Name == "" {
		result = multierror.Append(result, errors.New("actor definition name is required"))
	}

	if !IsValidActorType(d.ActorType) {
		result = multierror.Append(result, fmt.Errorf("invalid actor type '%s'", d.ActorType))
	}

	if d.DockerRepository == "" {
		result = multierror.Append(result, errors.New("actor definition docker repository is required"))
	}

	if d.DockerImageTag == "" {
		result = multierror.Append(result, errors.New("actor definition docker image tag is required"))
	}

	return result.ErrorOrNil()
}

func (s *service) GetActorDefinition(ctx context.Context, id uuid.UUID) (*ActorDefinition, error) {
	var result ActorDefinition
	err := s.sq.
		Select(result.cols()...).
		From(ActorDefinitionsTable).
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

// ActorDefinitionFilter narrows ListActorDefinitions. The zero value lists every non-custom, non-tombstoned
// definition.
type ActorDefinitionFilter struct {
	ActorType         *ActorType
	IncludeCustom     bool
	IncludeTombstoned bool
}

func (s *service) ListActorDefinitions(ctx context.Context, filter ActorDefinitionFilter) ([]ActorDefinition, error) {
	var d ActorDefinition
	q := s.sq.
		Select(d.cols()...).
		From(ActorDefinitionsTable).
		OrderBy("docker_repository", "id")

	if filter.ActorType != nil {
		q = q.Where(sq.Eq{"actor_type": *filter.ActorType})
	}

	if !filter.IncludeCustom {
		q = q.Where(sq.Eq{"custom": false})
	}

	if !filter.IncludeTombstoned {
		q = q.Where(sq.Eq{"tombstone": false})
	}

	rows, err := q.RunWith(s.runner).Query()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list actor definitions")
	}
	defer rows.Close()

	var results []ActorDefinition
	for rows.Next() {
		var r ActorDefinition
		if err := rows.Scan(r.fields()...); err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// UpsertActorDefinition inserts the definition or, if a definition with the same id exists, replaces its mutable
// fields. CreatedAt of an existing row is preserved.
func (s *service) UpsertActorDefinition(ctx context.Context, def *ActorDefinition) error {
	if def == nil {
		return errors.New("actor definition is nil")
	}

	if err := def.Validate(); err != nil {
		return err
	}

	return s.transaction(ctx, func(tx *service) error {
		exists, err := sqlh.Exists(tx.sq.
			Select("1").
			From(ActorDefinitionsTable).
			Where(sq.Eq{"id": def.Id}).
			RunWith(tx.runner).
			QueryRow())
		if err != nil {
			return err
		}

		now := apctx.GetClock(ctx).Now()

		if !exists {
			cpy := *def
			cpy.CreatedAt = now
			cpy.UpdatedAt = now

			_, err := tx.sq.
				Insert(ActorDefinitionsTable).
				Columns(cpy.cols()...).
				Values(cpy.values()...).
				RunWith(tx.runner).
				Exec()
			if err != nil {
				if isUniqueViolation(err) {
					return ErrDuplicate
				}
				return errors.Wrap(err, "failed to insert actor definition")
			}

			def.CreatedAt = now
			def.UpdatedAt = now
			return nil
		}

		_, err = tx.sq.
			Update(ActorDefinitionsTable).
			SetMap(map[string]interface{}{
				"name":               def.Name,
				"actor_type":         def.ActorType,
				"docker_repository":  def.DockerRepository,
				"docker_image_tag":   def.DockerImageTag,
				"default_version_id": def.DefaultVersionId,
				"custom":             def.Custom,
				"tombstone":          def.Tombstone,
				"documentation_url":  def.DocumentationUrl,
				"icon_url":           def.IconUrl,
				"updated_at":         now,
			}).
			Where(sq.Eq{"id": def.Id}).
			RunWith(tx.runner).
			Exec()
		if err != nil {
			return errors.Wrap(err, "failed to update actor definition")
		}

		def.UpdatedAt = now
		return nil
	})
}

// SetDefaultVersion points the definition at the version and updates the legacy repository/tag pointer to match.
func (s *service) SetDefaultVersion(ctx context.Context, definitionId uuid.UUID, versionId uuid.UUID) error {
	return s.transaction(ctx, func(tx *service) error {
		adv, err := tx.GetActorDefinitionVersion(ctx, versionId)
		if err != nil {
			return err
		}

		if adv.ActorDefinitionId != definitionId {
			return fmt.Errorf("version %s does not belong to actor definition %s", versionId, definitionId)
		}

		dbResult, err := tx.sq.
			Update(ActorDefinitionsTable).
			Set("default_version_id", versionId).
			Set("docker_repository", adv.DockerRepository).
			Set("docker_image_tag", adv.DockerImageTag).
			Set("updated_at", apctx.GetClock(ctx).Now()).
			Where(sq.Eq{"id": definitionId}).
			RunWith(tx.runner).
			Exec()
		if err != nil {
			return errors.Wrap(err, "failed to set default version")
		}

		affected, err := dbResult.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "failed to set default version")
		}

		if affected == 0 {
			return ErrNotFound
		}

		return nil
	})
}

// ListDockerRepositoriesInUse returns the repositories of definitions that have at least one non-tombstoned actor
// participating in an active connection.
func (s *service) ListDockerRepositoriesInUse(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.sq.
		Select("DISTINCT d.docker_repository").
		From(ActorDefinitionsTable + " d").
		Join(ActorsTable + " a ON a.actor_definition_id = d.id").
		Join(ConnectionsTable + " c ON (c.source_id = a.id OR c.destination_id = a.id)").
		Where(sq.Eq{
			"c.status":    ConnectionStatusActive,
			"a.tombstone": false,
		}).
		RunWith(s.runner).
		Query()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list docker repositories in use")
	}
	defer rows.Close()

	var repos []string
	for rows.Next() {
		var repo string
		if err := rows.Scan(&repo); err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return util.SetOf(repos), nil
}
