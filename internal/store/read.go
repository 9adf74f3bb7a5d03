package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Get returns the query whose id is id or starts with id. Prefixes must be
// at least eight characters.
func (s *Store) Get(ctx context.Context, id string) (Query, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if len(id) < minPrefix {
		return Query{}, fmt.Errorf("get %q: id prefix must have at least %d characters", id, minPrefix)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, source, ast_json, seq
		FROM queries
		WHERE substr(id, 1, ?) = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
		LIMIT 2
	`, len(id), id)
	if err != nil {
		return Query{}, fmt.Errorf("get %q: %w", id, err)
	}
	defer rows.Close()

	matches, err := scanQueries(rows)
	if err != nil {
		return Query{}, fmt.Errorf("get %q: %w", id, err)
	}
	switch len(matches) {
	case 0:
		return Query{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return Query{}, fmt.Errorf("get %q: %w", id, ErrAmbiguous)
	}
}

// List returns all queries in the order they were first stored.
// It returns an empty slice, not nil, for an empty catalog.
func (s *Store) List(ctx context.Context) ([]Query, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, source, ast_json, seq
		FROM queries
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	defer rows.Close()

	queries, err := scanQueries(rows)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	return queries, nil
}

// Requests returns the requests logged for a query id.
func (s *Store) Requests(ctx context.Context, queryID string) ([]Request, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query_id, seq
		FROM requests
		WHERE query_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, queryID)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	requests := []Request{}
	for rows.Next() {
		var r Request
		if err := rows.Scan(&r.ID, &r.QueryID, &r.Seq); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return requests, nil
}

// Exists reports whether a query with exactly this id is stored.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM queries WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %q: %w", id, err)
	}
	return true, nil
}

func scanQueries(rows *sql.Rows) ([]Query, error) {
	queries := []Query{}
	for rows.Next() {
		var q Query
		if err := rows.Scan(&q.ID, &q.Text, &q.Source, &q.ASTJSON, &q.Seq); err != nil {
			return nil, fmt.Errorf("scan query: %w", err)
		}
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate queries: %w", err)
	}
	return queries, nil
}
