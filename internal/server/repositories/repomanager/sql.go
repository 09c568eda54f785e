package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/migrations"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

type sqlBackend struct {
	driverName   string
	gooseDialect string
	dialect      users.Dialect
}

var sqlBackends = map[string]sqlBackend{
	"postgres": {driverName: "pgx", gooseDialect: "pgx", dialect: users.Postgres},
	"sqlite":   {driverName: "sqlite", gooseDialect: "sqlite3", dialect: users.SQLite},
	"mysql":    {driverName: "mysql", gooseDialect: "mysql", dialect: users.MySQL},
}

// SQLRepositoryManager vends database/sql backed repositories for
// PostgreSQL, SQLite and MySQL.
type SQLRepositoryManager struct {
	db      *sql.DB
	backend sqlBackend
	logger  logging.Logger
}

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func NewSQLRepositoryManager(driver, dsn string, logger logging.Logger) (*SQLRepositoryManager, error) {
	b, ok := sqlBackends[driver]
	if !ok {
		return nil, fmt.Errorf("unknown sql driver %q", driver)
	}

	db, err := sqlOpen(b.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	// a single connection keeps ":memory:" databases shared and writes serialized
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	return NewSQLRepositoryManagerWithDB(db, driver, logger)
}

// NewSQLRepositoryManagerWithDB wraps an already opened database.
func NewSQLRepositoryManagerWithDB(db *sql.DB, driver string, logger logging.Logger) (*SQLRepositoryManager, error) {
	b, ok := sqlBackends[driver]
	if !ok {
		return nil, fmt.Errorf("unknown sql driver %q", driver)
	}
	return &SQLRepositoryManager{db: db, backend: b, logger: logger}, nil
}

func (m *SQLRepositoryManager) Users() users.Repository {
	return users.NewSQLRepository(m.db, m.backend.dialect)
}

// RunMigrations sets up goose with the embedded migrations of the current
// dialect and runs them.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(&gooseLogger{ctx: ctx, l: m.logger})
	if err := goose.SetDialect(m.backend.gooseDialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, m.backend.dialect.Name); err != nil {
		return err
	}
	return nil
}

func (m *SQLRepositoryManager) Close(ctx context.Context) error {
	return m.db.Close()
}

// gooseLogger routes goose output through the service logger.
type gooseLogger struct {
	ctx context.Context
	l   logging.Logger
}

func (g *gooseLogger) Printf(format string, v ...any) {
	g.l.Info(g.ctx, fmt.Sprintf(format, v...), "component", "migrations")
}

func (g *gooseLogger) Fatalf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	g.l.Error(g.ctx, msg, "component", "migrations")
	panic(msg)
}
