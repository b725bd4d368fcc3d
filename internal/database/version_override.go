package database

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/apctx"
)

type OverrideScopeType string

const (
	OverrideScopeTypeWorkspace OverrideScopeType = "workspace"
	OverrideScopeTypeActor     OverrideScopeType = "actor"
)

func IsValidOverrideScopeType[T string | OverrideScopeType](t T) bool {
	switch OverrideScopeType(t) {
	case OverrideScopeTypeWorkspace, OverrideScopeTypeActor:
		return true
	default:
		return false
	}
}

// Value implements the driver.Valuer interface for OverrideScopeType
func (t OverrideScopeType) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan implements the sql.Scanner interface for OverrideScopeType
func (t *OverrideScopeType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = OverrideScopeType(v)
	case []byte:
		*t = OverrideScopeType(v)
	default:
		return fmt.Errorf("cannot convert %T to OverrideScopeType", value)
	}
	return nil
}

type OverrideOrigin string

const (
	// OverrideOriginUser is a pin chosen by a user.
	OverrideOriginUser OverrideOrigin = "user"

	// OverrideOriginBreakingChange is a pin applied by the system to hold an actor on its current version while a
	// breaking change rolls out.
	OverrideOriginBreakingChange OverrideOrigin = "breaking_change"
)

func IsValidOverrideOrigin[T string | OverrideOrigin](o T) bool {
	switch OverrideOrigin(o) {
	case OverrideOriginUser, OverrideOriginBreakingChange:
		return true
	default:
		return false
	}
}

// Value implements the driver.Valuer interface for OverrideOrigin
func (o OverrideOrigin) Value() (driver.Value, error) {
	return string(o), nil
}

// Scan implements the sql.Scanner interface for OverrideOrigin
func (o *OverrideOrigin) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*o = OverrideOrigin(v)
	case []byte:
		*o = OverrideOrigin(v)
	default:
		return fmt.Errorf("cannot convert %T to OverrideOrigin", value)
	}
	return nil
}

const VersionOverridesTable = "version_overrides"

// VersionOverride pins a definition to a specific version for a workspace or a single actor.
type VersionOverride struct {
	Id                uuid.UUID
	ActorDefinitionId uuid.UUID
	ScopeType         OverrideScopeType
	ScopeId           uuid.UUID
	VersionId         uuid.UUID
	Origin            OverrideOrigin
	Description       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (o *VersionOverride) cols() []string {
	return []string{
		"id",
		"actor_definition_id",
		"scope_type",
		"scope_id",
		"version_id",
		"origin",
		"description",
		"created_at",
		"updated_at",
	}
}

func (o *VersionOverride) values() []any {
	return []any{
		o.Id,
		o.ActorDefinitionId,
		o.ScopeType,
		o.ScopeId,
		o.VersionId,
		o.Origin,
		o.Description,
		o.CreatedAt,
		o.UpdatedAt,
	}
}

func (o *VersionOverride) Validate() error {
	result := &multierror.Error{}

	if o.Id == uuid.Nil {
		result = multierror.Append(result, errors.New("version override id is required"))
	}

	if o.ActorDefinitionId == uuid.Nil {
		result = multierror.Append(result, errors.New("version override actor definition id is required"))
	}

	if !IsValidOverrideScopeType(o.ScopeType) {
		result = multierror.Append(result, fmt.Errorf("invalid version override scope type '%s'", o.ScopeType))
	}

	if o.ScopeId == uuid.Nil {
		result = multierror.Append(result, errors.New("version override scope id is required"))
	}

	if o.VersionId == uuid.Nil {
		result = multierror.Append(result, errors.New("version override version id is required"))
	}

	if !IsValidOverrideOrigin(o.Origin) {
		result = multierror.Append(result, fmt.Errorf("invalid version override origin '%s'", o.Origin))
	}

	return result.ErrorOrNil()
}

func (s *service) CreateVersionOverride(ctx context.Context, o *VersionOverride) error {
	if o == nil {
		return errors.New("version override is nil")
	}

	if err := o.Validate(); err != nil {
		return err
	}

	cpy := *o
	now := apctx.GetClock(ctx).Now()
	cpy.CreatedAt = now
	cpy.UpdatedAt = now

	_, err := s.sq.
		Insert(VersionOverridesTable).
		Columns(cpy.cols()...).
		Values(cpy.values()...).
		RunWith(s.runner).
		Exec()
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return errors.Wrap(err, "failed to create version override")
	}

	return nil
}

// IsOverrideApplied reports whether a user has pinned the definition's version for the actor, either on the actor
// itself or on its workspace. Pins applied by the system for breaking change rollouts do not count.
func (s *service) IsOverrideApplied(ctx context.Context, definitionId uuid.UUID, workspaceId uuid.UUID, actorId uuid.UUID) (bool, error) {
	var count int64
	err := s.sq.
		Select("COUNT(*)").
		From(VersionOverridesTable).
		Where(sq.Eq{
			"actor_definition_id": definitionId,
			"origin":              OverrideOriginUser,
		}).
		Where(sq.Or{
			sq.Eq{"scope_type": OverrideScopeTypeActor, "scope_id": actorId},
			sq.Eq{"scope_type": OverrideScopeTypeWorkspace, "scope_id": workspaceId},
		}).
		RunWith(s.runner).
		QueryRow().
		Scan(&count)
	if err != nil {
		return false, errors.Wrap(err, "failed to check version overrides")
	}

	return count > 0, nil
}
