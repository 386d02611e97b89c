// Package postgres is the PostgreSQL adapter for the saved-search store,
// connecting through the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/paperbot/paperbot/paperbot/store"
)

const ddl = `
CREATE TABLE IF NOT EXISTS saved_searches (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	channel     TEXT NOT NULL DEFAULT '',
	input       TEXT NOT NULL,
	query       TEXT NOT NULL,
	max_results INTEGER NOT NULL,
	sort_by     TEXT NOT NULL,
	sort_order  TEXT NOT NULL,
	created_at  BIGINT NOT NULL,
	updated_at  BIGINT NOT NULL,
	last_run_at BIGINT
);
CREATE INDEX IF NOT EXISTS idx_saved_searches_channel ON saved_searches(channel);
`

type Adapter struct {
	DSN string
}

func New(dsn string) *Adapter {
	return &Adapter{DSN: dsn}
}

func (a *Adapter) Backend() store.Backend {
	return store.BackendPostgres
}

// Rebind numbers the '?' placeholders as $1..$n.
func (a *Adapter) Rebind(query string) string {
	var sb strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			fmt.Fprintf(&sb, "$%d", n)
			continue
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

func (a *Adapter) Connect(ctx context.Context) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(a.DSN)
	if err != nil {
		return nil, err
	}
	db := stdlib.OpenDB(*cfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) Init(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, ddl)
	return err
}
