package database

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rmorlok/connlifecycle/internal/config"
	sconfig "github.com/rmorlok/connlifecycle/internal/schema/config"
)

// runner is satisfied by both *sql.DB and *sql.Tx.
type runner interface {
	sq.StdSqlCtx
}

// NewConnectionForRoot creates a new database connection from the specified configuration. The type of the database
// returned will be determined by the configuration.
func NewConnectionForRoot(root *sconfig.Root, logger *slog.Logger) (DB, error) {
	if root == nil || root.Database == nil || root.Database.InnerVal == nil {
		return nil, errors.New("database configuration is required")
	}

	switch dbConfig := root.Database.InnerVal.(type) {
	case *sconfig.DatabaseSqlite:
		return NewSqliteConnection(root.Database, dbConfig, logger)
	case *sconfig.DatabasePostgres:
		return NewPostgresConnection(root.Database, dbConfig, logger)
	default:
		return nil, errors.New("database type not supported")
	}
}

// NewConnection is NewConnectionForRoot for a loaded configuration.
func NewConnection(cfg config.C, logger *slog.Logger) (DB, error) {
	return NewConnectionForRoot(cfg.GetRoot(), logger)
}

// NewSqliteConnection creates a new database connection to a SQLite database, creating the file if it does not
// exist.
func NewSqliteConnection(holder *sconfig.Database, dbConfig *sconfig.DatabaseSqlite, l *slog.Logger) (DB, error) {
	path, err := homedir.Expand(dbConfig.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to expand sqlite database path '%s'", dbConfig.Path)
	}

	if _, err := os.Stat(path); err != nil {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrapf(err, "could not create directory for sqlite database path '%s'", path)
		}

		file, err := os.Create(path)
		if err != nil {
			return nil, errors.Wrapf(err, "could not load sqlite database path '%s'; failed to create", path)
		}
		_ = file.Close()
	}

	expanded := *dbConfig
	expanded.Path = path

	db, err := sql.Open(expanded.GetDriver(), expanded.GetDsn())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database '%s'", path)
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrapf(err, "failed to ping sqlite database '%s'", path)
	}

	return newService(holder, db, l), nil
}

// NewPostgresConnection creates a new database connection to a Postgres database.
func NewPostgresConnection(holder *sconfig.Database, dbConfig *sconfig.DatabasePostgres, l *slog.Logger) (DB, error) {
	db, err := sql.Open(dbConfig.GetDriver(), dbConfig.GetDsn())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open postgres database '%s'", dbConfig.Database)
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrapf(err, "failed to ping postgres database '%s'", dbConfig.Database)
	}

	return newService(holder, db, l), nil
}

func newService(cfg *sconfig.Database, db *sql.DB, l *slog.Logger) *service {
	return &service{
		cfg:    cfg,
		sq:     sq.StatementBuilder.PlaceholderFormat(cfg.GetPlaceholderFormat()),
		db:     db,
		runner: db,
		logger: l,
	}
}

type service struct {
	cfg    *sconfig.Database
	sq     sq.StatementBuilderType
	db     *sql.DB
	runner runner  // db, or tx when scoped to a transaction
	tx     *sql.Tx // non-nil when scoped to a transaction
	logger *slog.Logger
}

func (s *service) Ping(ctx context.Context) bool {
	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("failed to ping database", "error", err)
		return false
	}

	var one int
	if err := s.sq.Select("1").RunWith(s.runner).QueryRow().Scan(&one); err != nil {
		s.logger.Error("failed to ping database with query", "error", err)
		return false
	}

	return true
}

// Close closes the underlying connection pool. Only meaningful on the root service, not a transaction scope.
func (s *service) Close() error {
	return s.db.Close()
}

var _ DB = (*service)(nil)
