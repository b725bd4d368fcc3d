package database

import (
	"context"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/apctx"
	"github.com/rmorlok/connlifecycle/internal/semver"
)

const ActorDefinitionBreakingChangesTable = "actor_definition_breaking_changes"

// ActorDefinitionBreakingChange marks Version as the first version of a definition that is not backwards
// compatible. After UpgradeDeadline the change is enforced. Breaking changes are never edited once published.
type ActorDefinitionBreakingChange struct {
	ActorDefinitionId         uuid.UUID
	Version                   semver.Version
	UpgradeDeadline           Date
	Message                   string
	MigrationDocumentationUrl string
	CreatedAt                 time.Time
}

func (b *ActorDefinitionBreakingChange) cols() []string {
	return []string{
		"actor_definition_id",
		"version",
		"upgrade_deadline",
		"message",
		"migration_documentation_url",
		"created_at",
	}
}

func (b *ActorDefinitionBreakingChange) fields() []any {
	return []any{
		&b.ActorDefinitionId,
		&b.Version,
		&b.UpgradeDeadline,
		&b.Message,
		&b.MigrationDocumentationUrl,
		&b.CreatedAt,
	}
}

func (b *ActorDefinitionBreakingChange) values() []any {
	return []any{
		b.ActorDefinitionId,
		b.Version,
		b.UpgradeDeadline,
		b.Message,
		b.MigrationDocumentationUrl,
		b.CreatedAt,
	}
}

func (b *ActorDefinitionBreakingChange) Validate() error {
	result := &multierror.Error{}

	if b.ActorDefinitionId == uuid.Nil {
		result = multierror.Append(result, errors.New("breaking change actor definition id is required"))
	}

	if b.Version.IsZero() {
		result = multierror.Append(result, errors.New("breaking change version is required"))
	}

	if b.UpgradeDeadline.IsZero() {
		result = multierror.Append(result, errors.New("breaking change upgrade deadline is required"))
	}

	return result.ErrorOrNil()
}

func (s *service) listBreakingChanges(where interface{}) ([]ActorDefinitionBreakingChange, error) {
	var b ActorDefinitionBreakingChange
	q := s.sq.
		Select(b.cols()...).
		From(ActorDefinitionBreakingChangesTable)

	if where != nil {
		q = q.Where(where)
	}

	rows, err := q.RunWith(s.runner).Query()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list breaking changes")
	}
	defer rows.Close()

	var results []ActorDefinitionBreakingChange
	for rows.Next() {
		var r ActorDefinitionBreakingChange
		if err := rows.Scan(r.fields()...); err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Versions are stored as text, so order by semantic version here rather than in SQL
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].ActorDefinitionId != results[j].ActorDefinitionId {
			return results[i].ActorDefinitionId.String() < results[j].ActorDefinitionId.String()
		}
		return results[i].Version.LessThan(results[j].Version)
	})

	return results, nil
}

// ListBreakingChanges lists the breaking changes of all definitions, grouped by definition and ordered by version.
func (s *service) ListBreakingChanges(ctx context.Context) ([]ActorDefinitionBreakingChange, error) {
	return s.listBreakingChanges(nil)
}

// ListBreakingChangesForDefinition lists a definition's breaking changes ordered by version.
func (s *service) ListBreakingChangesForDefinition(ctx context.Context, definitionId uuid.UUID) ([]ActorDefinitionBreakingChange, error) {
	return s.listBreakingChanges(sq.Eq{"actor_definition_id": definitionId})
}

// UpsertBreakingChanges inserts any breaking changes not already recorded. Existing records are left unchanged.
func (s *service) UpsertBreakingChanges(ctx context.Context, changes []ActorDefinitionBreakingChange) error {
	if len(changes) == 0 {
		return nil
	}

	for i := range changes {
		if err := changes[i].Validate(); err != nil {
			return errors.Wrapf(err, "invalid breaking change %s", changes[i].Version)
		}
	}

	now := apctx.GetClock(ctx).Now()
	return s.transaction(ctx, func(tx *service) error {
		for _, c := range changes {
			cpy := c
			cpy.CreatedAt = now

			_, err := tx.sq.
				Insert(ActorDefinitionBreakingChangesTable).
				Columns(cpy.cols()...).
				Values(cpy.values()...).
				Suffix("ON CONFLICT (actor_definition_id, version) DO NOTHING").
				RunWith(tx.runner).
				Exec()
			if err != nil {
				return errors.Wrapf(err, "failed to write breaking change %s", c.Version)
			}
		}

		return nil
	})
}
