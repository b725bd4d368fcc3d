package database

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/apctx"
)

const ActorsTable = "actors"

// Actor is a configured instance of a source or destination in a workspace. VersionId is the definition version
// the instance runs.
type Actor struct {
	Id                uuid.UUID
	WorkspaceId       uuid.UUID
	ActorDefinitionId uuid.UUID
	ActorType         ActorType
	Name              string
	VersionId         uuid.UUID
	Tombstone         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (a *Actor) cols() []string {
	return []string{
		"id",
		"workspace_id",
		"actor_definition_id",
		"actor_type",
		"name",
		"version_id",
		"tombstone",
		"created_at",
		"updated_at",
	}
}

func (a *Actor) fields() []any {
	return []any{
		&a.Id,
		&a.WorkspaceId,
		&a.ActorDefinitionId,
		&a.ActorType,
		&a.Name,
		&a.VersionId,
		&a.Tombstone,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
}

func (a *Actor) values() []any {
	return []any{
		a.Id,
		a.WorkspaceId,
		a.ActorDefinitionId,
		a.ActorType,
		a.Name,
		a.VersionId,
		a.Tombstone,
		a.CreatedAt,
		a.UpdatedAt,
	}
}

func (a *Actor) Validate() error {
	result := &multierror.Error{}

	if a.Id == uuid.Nil {
		result = multierror.Append(result, errors.New("actor id is required"))
	}

	if a.WorkspaceId == uuid.Nil {
		result = multierror.Append(result, errors.New("actor workspace id is required"))
	}

	if a.ActorDefinitionId == uuid.Nil {
		result = multierror.Append(result, errors.New("actor definition id is required"))
	}

	if !IsValidActorType(a.ActorType) {
		result = multierror.Append(result, errors.New("invalid actor type"))
	}

	if a.VersionId == uuid.Nil {
		result = multierror.Append(result, errors.New("actor version id is required"))
	}

	return result.ErrorOrNil()
}

func (s *service) CreateActor(ctx context.Context, a *Actor) error {
	if a == nil {
		return errors.New("actor is nil")
	}

	if err := a.Validate(); err != nil {
		return err
	}

	cpy := *a
	now := apctx.GetClock(ctx).Now()
	cpy.CreatedAt = now
	cpy.UpdatedAt = now

	_, err := s.sq.
		Insert(ActorsTable).
		Columns(cpy.cols()...).
		Values(cpy.values()...).
		RunWith(s.runner).
		Exec()
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return errors.Wrap(err, "failed to create actor")
	}

	return nil
}

func (s *service) GetActor(ctx context.Context, id uuid.UUID) (*Actor, error) {
	var result Actor
	err := s.sq.
		Select(result.cols()...).
		From(ActorsTable).
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

// ListActorsWithVersionIds lists the non-tombstoned actors running any of the versions.
func (s *service) ListActorsWithVersionIds(ctx context.Context, versionIds []uuid.UUID) ([]Actor, error) {
	if len(versionIds) == 0 {
		return nil, nil
	}

	var a Actor
	rows, err := s.sq.
		Select(a.cols()...).
		From(ActorsTable).
		Where(sq.Eq{
			"version_id": versionIds,
			"tombstone":  false,
		}).
		OrderBy("workspace_id", "id").
		RunWith(s.runner).
		Query()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list actors for versions")
	}
	defer rows.Close()

	var results []Actor
	for rows.Next() {
		var r Actor
		if err := rows.Scan(r.fields()...); err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, rows.Err()
}
