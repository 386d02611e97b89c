// Package sqlite is the SQLite adapter for the saved-search store. It
// expects a database/sql driver registered as "sqlite" (modernc.org/sqlite)
// unless another driver name is given.
package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/paperbot/paperbot/paperbot/store"
)

const ddl = `
CREATE TABLE IF NOT EXISTS saved_searches (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL UNIQUE,
	channel     TEXT NOT NULL DEFAULT '',
	input       TEXT NOT NULL,
	query       TEXT NOT NULL,
	max_results INTEGER NOT NULL,
	sort_by     TEXT NOT NULL,
	sort_order  TEXT NOT NULL,
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL,
	last_run_at INTEGER
);
CREATE INDEX IF NOT EXISTS idx_saved_searches_channel ON saved_searches(channel);
`

type Adapter struct {
	Path       string
	DriverName string
}

func New(path string) *Adapter {
	return &Adapter{Path: path, DriverName: "sqlite"}
}

func NewWithDriver(path, driver string) *Adapter {
	return &Adapter{Path: path, DriverName: driver}
}

func (a *Adapter) Backend() store.Backend {
	return store.BackendSQLite
}

func (a *Adapter) Rebind(query string) string {
	return query
}

func (a *Adapter) Connect(ctx context.Context) (*sql.DB, error) {
	dsn := a.Path
	if !strings.Contains(dsn, "?") {
		dsn = dsn + "?_busy_timeout=5000&_foreign_keys=on"
	} else {
		dsn = dsn + "&_busy_timeout=5000&_foreign_keys=on"
	}
	db, err := sql.Open(a.DriverName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) Init(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return err
	}
	_, _ = db.ExecContext(ctx, "PRAGMA journal_mode=WAL;")
	_, _ = db.ExecContext(ctx, "PRAGMA synchronous=NORMAL;")
	_, _ = db.ExecContext(ctx, "PRAGMA foreign_keys=ON;")
	return nil
}
