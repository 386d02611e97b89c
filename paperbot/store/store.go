// Package store persists saved searches: the raw DSL input together with
// its compiled form, keyed by name, for the periodic runner and the CLI.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/paperbot/paperbot/paperbot"
	"github.com/paperbot/paperbot/paperbot/query"
)

// ErrNotFound is returned when no saved search has the requested name.
var ErrNotFound = errors.New("saved search not found")

// SavedSearch is one stored query. Input is the raw DSL text; the compiled
// fields are denormalized from it at save time.
type SavedSearch struct {
	ID         int64
	Name       string
	Channel    string
	Input      string
	Query      string
	MaxResults int
	SortBy     paperbot.SortCriterion
	SortOrder  paperbot.SortOrder
	CreatedAt  time.Time
	UpdatedAt  time.Time
	LastRunAt  time.Time // zero when never run
}

// Store is a saved-search repository over a backend adapter.
type Store struct {
	adapter Adapter
	db      *sql.DB
	parser  *paperbot.Parser
	log     *zap.Logger
}

// Open connects the adapter, applies the schema, and returns a ready Store.
func Open(ctx context.Context, adapter Adapter, parser *paperbot.Parser, log *zap.Logger) (*Store, error) {
	if parser == nil {
		parser = paperbot.New()
	}
	if log == nil {
		log = zap.NewNop()
	}

	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect %s store: %w", adapter.Backend(), err)
	}
	if err := adapter.Init(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init %s store: %w", adapter.Backend(), err)
	}

	log.Debug("saved-search store opened", zap.String("backend", string(adapter.Backend())))
	return &Store{adapter: adapter, db: db, parser: parser, log: log}, nil
}

func (s *Store) Close() error {
	err := s.db.Close()
	if cerr := s.adapter.Close(); err == nil {
		err = cerr
	}
	return err
}

// Save compiles the input and inserts or replaces the saved search with
// the given name. A query that does not compile rejects the save.
func (s *Store) Save(ctx context.Context, name, channel, input string) (*SavedSearch, error) {
	if name == "" {
		return nil, fmt.Errorf("saved search name must not be empty")
	}
	result, err := s.parser.Parse(input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	compiled := result.Query

	res, err := s.db.ExecContext(ctx, s.adapter.Rebind(`
		UPDATE saved_searches
		SET channel = ?, input = ?, query = ?, max_results = ?, sort_by = ?, sort_order = ?, updated_at = ?
		WHERE name = ?`),
		channel, input, compiled.Query, compiled.MaxResults,
		compiled.SortBy.Code(), compiled.SortOrder.Code(), now.UnixMilli(), name,
	)
	if err != nil {
		return nil, fmt.Errorf("update saved search: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		_, err = s.db.ExecContext(ctx, s.adapter.Rebind(`
			INSERT INTO saved_searches (name, channel, input, query, max_results, sort_by, sort_order, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			name, channel, input, compiled.Query, compiled.MaxResults,
			compiled.SortBy.Code(), compiled.SortOrder.Code(), now.UnixMilli(), now.UnixMilli(),
		)
		if err != nil {
			return nil, fmt.Errorf("insert saved search: %w", err)
		}
	}

	s.log.Info("saved search stored",
		zap.String("name", name),
		zap.String("query", compiled.Query),
	)
	return s.Get(ctx, name)
}

const selectColumns = `id, name, channel, input, query, max_results, sort_by, sort_order, created_at, updated_at, last_run_at`

// Get returns the saved search with the given name.
func (s *Store) Get(ctx context.Context, name string) (*SavedSearch, error) {
	row := s.db.QueryRowContext(ctx, s.adapter.Rebind(
		`SELECT `+selectColumns+` FROM saved_searches WHERE name = ?`), name)
	search, err := scanSavedSearch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return search, nil
}

// List returns all saved searches ordered by name.
func (s *Store) List(ctx context.Context) ([]SavedSearch, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM saved_searches ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SavedSearch
	for rows.Next() {
		search, err := scanSavedSearch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *search)
	}
	return out, rows.Err()
}

// Delete removes the saved search with the given name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, s.adapter.Rebind(
		`DELETE FROM saved_searches WHERE name = ?`), name)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Touch records that the saved search was run at the given time.
func (s *Store) Touch(ctx context.Context, name string, at time.Time) error {
	res, err := s.db.ExecContext(ctx, s.adapter.Rebind(
		`UPDATE saved_searches SET last_run_at = ? WHERE name = ?`),
		at.UTC().UnixMilli(), name)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSavedSearch(row rowScanner) (*SavedSearch, error) {
	var (
		search    SavedSearch
		sortBy    string
		sortOrder string
		createdMS int64
		updatedMS int64
		lastRunMS sql.NullInt64
	)
	err := row.Scan(
		&search.ID, &search.Name, &search.Channel, &search.Input, &search.Query,
		&search.MaxResults, &sortBy, &sortOrder, &createdMS, &updatedMS, &lastRunMS,
	)
	if err != nil {
		return nil, err
	}

	by, err := query.SortCriterionFromCode(sortBy)
	if err != nil {
		return nil, err
	}
	order, err := query.SortOrderFromCode(sortOrder)
	if err != nil {
		return nil, err
	}
	search.SortBy = by
	search.SortOrder = order
	search.CreatedAt = time.UnixMilli(createdMS).UTC()
	search.UpdatedAt = time.UnixMilli(updatedMS).UTC()
	if lastRunMS.Valid {
		search.LastRunAt = time.UnixMilli(lastRunMS.Int64).UTC()
	}
	return &search, nil
}
