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
)

type ConnectionStatus string

const (
	ConnectionStatusActive     ConnectionStatus = "active"
	ConnectionStatusInactive   ConnectionStatus = "inactive"
	ConnectionStatusDeprecated ConnectionStatus = "deprecated"
)

func IsValidConnectionStatus[T string | ConnectionStatus](status T) bool {
	switch ConnectionStatus(status) {
	case ConnectionStatusActive,
		ConnectionStatusInactive,
		ConnectionStatusDeprecated:
		return true
	default:
		return false
	}
}

// Value implements the driver.Valuer interface for ConnectionStatus
func (s ConnectionStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Scan implements the sql.Scanner interface for ConnectionStatus
func (s *ConnectionStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = ConnectionStatus(v)
	case []byte:
		*s = ConnectionStatus(v)
	default:
		return fmt.Errorf("cannot convert %T to ConnectionStatus", value)
	}
	return nil
}

const ConnectionsTable = "connections"

// Connection syncs data from a source actor to a destination actor.
type Connection struct {
	Id            uuid.UUID
	Name          string
	SourceId      uuid.UUID
	DestinationId uuid.UUID
	Status        ConnectionStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c *Connection) cols() []string {
	return []string{
		"id",
		"name",
		"source_id",
		"destination_id",
		"status",
		"created_at",
		"updated_at",
	}
}

func (c *Connection) fields() []any {
	return []any{
		&c.Id,
		&c.Name,
		&c.SourceId,
		&c.DestinationId,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}

func (c *Connection) values() []any {
	return []any{
		c.Id,
		c.Name,
		c.SourceId,
		c.DestinationId,
		c.Status,
		c.CreatedAt,
		c.UpdatedAt,
	}
}

func (c *Connection) Validate() error {
	result := &multierror.Error{}

	if c.Id == uuid.Nil {
		result = multierror.Append(result, errors.New("connection id is required"))
	}

	if c.SourceId == uuid.Nil {
		result = multierror.Append(result, errors.New("connection source id is required"))
	}

	if c.DestinationId == uuid.Nil {
		result = multierror.Append(result, errors.New("connection destination id is required"))
	}

	if !IsValidConnectionStatus(c.Status) {
		result = multierror.Append(result, errors.New("invalid connection status"))
	}

	return result.ErrorOrNil()
}

func (s *service) CreateConnection(ctx context.Context, c *Connection) error {
	if c == nil {
		return errors.New("connection is required")
	}

	if err := c.Validate(); err != nil {
		return err
	}

	cpy := *c
	now := apctx.GetClock(ctx).Now()
	cpy.CreatedAt = now
	cpy.UpdatedAt = now

	result, err := s.sq.
		Insert(ConnectionsTable).
		Columns(cpy.cols()...).
		Values(cpy.values()...).
		RunWith(s.runner).
		Exec()
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return errors.New("failed to create connection; no rows inserted")
	}

	return nil
}

func (s *service) GetConnection(ctx context.Context, id uuid.UUID) (*Connection, error) {
	var result Connection
	err := s.sq.
		Select(result.cols()...).
		From(ConnectionsTable).
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

// ListActiveConnectionsForActors lists the active connections in the workspace that use any of the actors as
// their source or destination.
func (s *service) ListActiveConnectionsForActors(ctx context.Context, workspaceId uuid.UUID, actorIds []uuid.UUID) ([]Connection, error) {
	if len(actorIds) == 0 {
		return nil, nil
	}

	var c Connection
	rows, err := s.sq.
		Select(c.cols()...).
		From(ConnectionsTable).
		Where(sq.Eq{"status": ConnectionStatusActive}).
		Where(sq.Or{
			sq.Eq{"source_id": actorIds},
			sq.Eq{"destination_id": actorIds},
		}).
		Where(sq.Expr("source_id IN (SELECT id FROM "+ActorsTable+" WHERE workspace_id = ?)", workspaceId)).
		OrderBy("id").
		RunWith(s.runner).
		Query()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active connections")
	}
	defer rows.Close()

	var results []Connection
	for rows.Next() {
		var r Connection
		if err := rows.Scan(r.fields()...); err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

func (s *service) SetConnectionStatus(ctx context.Context, id uuid.UUID, status ConnectionStatus) error {
	if id == uuid.Nil {
		return errors.New("connection id is required")
	}

	if !IsValidConnectionStatus(status) {
		return errors.New("invalid connection status")
	}

	dbResult, err := s.sq.
		Update(ConnectionsTable).
		Set("updated_at", apctx.GetClock(ctx).Now()).
		Set("status", status).
		Where(sq.Eq{"id": id}).
		RunWith(s.runner).
		Exec()
	if err != nil {
		return errors.Wrap(err, "failed to set connection status")
	}

	affected, err := dbResult.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to set connection status")
	}

	if affected == 0 {
		return ErrNotFound
	}

	if affected > 1 {
		return errors.Wrap(ErrViolation, "multiple connections had status updated")
	}

	return nil
}
