package config

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/rmorlok/connlifecycle/internal/schema/common"
)

type DatabaseSqlite struct {
	Provider    DatabaseProvider `json:"provider" yaml:"provider"`
	Path        string           `json:"path" yaml:"path"`
	AutoMigrate bool             `json:"auto_migrate,omitempty" yaml:"auto_migrate,omitempty"`
}

func (d *DatabaseSqlite) GetProvider() DatabaseProvider {
	return DatabaseProviderSqlite
}

func (d *DatabaseSqlite) GetDriver() string {
	return "sqlite3"
}

func (d *DatabaseSqlite) GetAutoMigrate() bool {
	return d.AutoMigrate
}

func (d *DatabaseSqlite) GetUri() string {
	return fmt.Sprintf("sqlite3://%s?_foreign_keys=on&_journal_mode=WAL", d.Path)
}

// GetDsn gets the Data Source Name
func (d *DatabaseSqlite) GetDsn() string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", d.Path)
}

func (d *DatabaseSqlite) GetPlaceholderFormat() sq.PlaceholderFormat {
	return sq.Question
}

func (d *DatabaseSqlite) Validate(vc *common.ValidationContext) error {
	if d.Path == "" {
		return vc.NewErrorForField("path", "path must be specified")
	}

	return nil
}
