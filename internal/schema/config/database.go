package config

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/invopop/jsonschema"
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

type DatabaseProvider string

const (
	DatabaseProviderSqlite   DatabaseProvider = "sqlite"
	DatabaseProviderPostgres DatabaseProvider = "postgres"
)

// DatabaseImpl is the interface implemented by concrete database configurations.
type DatabaseImpl interface {
	GetProvider() DatabaseProvider
	GetDriver() string
	GetAutoMigrate() bool
	GetUri() string
	GetDsn() string
	GetPlaceholderFormat() sq.PlaceholderFormat
	Validate(vc *common.ValidationContext) error
}

// Database is the holder for a DatabaseImpl instance.
type Database struct {
	InnerVal DatabaseImpl `json:"-" yaml:"-"`
}

func (Database) JSONSchema() *jsonschema.Schema {
	return discriminatedObjectSchema("provider", string(DatabaseProviderSqlite), string(DatabaseProviderPostgres))
}

func (d *Database) GetProvider() DatabaseProvider {
	if d == nil || d.InnerVal == nil {
		return ""
	}
	return d.InnerVal.GetProvider()
}

func (d *Database) GetDriver() string {
	if d == nil || d.InnerVal == nil {
		return ""
	}
	return d.InnerVal.GetDriver()
}

func (d *Database) GetAutoMigrate() bool {
	if d == nil || d.InnerVal == nil {
		return false
	}
	return d.InnerVal.GetAutoMigrate()
}

func (d *Database) GetUri() string {
	if d == nil || d.InnerVal == nil {
		return ""
	}
	return d.InnerVal.GetUri()
}

func (d *Database) GetDsn() string {
	if d == nil || d.InnerVal == nil {
		return ""
	}
	return d.InnerVal.GetDsn()
}

func (d *Database) GetPlaceholderFormat() sq.PlaceholderFormat {
	if d == nil || d.InnerVal == nil {
		return sq.Question
	}
	return d.InnerVal.GetPlaceholderFormat()
}

func (d *Database) Validate(vc *common.ValidationContext) error {
	if d == nil || d.InnerVal == nil {
		return vc.NewError("database must be specified")
	}

	return d.InnerVal.Validate(vc)
}

var _ DatabaseImpl = (*Database)(nil)
