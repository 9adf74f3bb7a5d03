package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iris-hep/qastle/internal/dump"
	"github.com/iris-hep/qastle/internal/transform"
)

// Put stores the canonical form of text, which may be in any accepted
// spelling, and logs a request for it. Storing the same query twice keeps
// one query row and adds a second request.
func (s *Store) Put(ctx context.Context, text, source string) (Query, Request, error) {
	expr, err := transform.DecodeText(text)
	if err != nil {
		return Query{}, Request{}, fmt.Errorf("put: %w", err)
	}
	canonical, err := transform.Encode(expr)
	if err != nil {
		return Query{}, Request{}, fmt.Errorf("put: %w", err)
	}
	astJSON, err := dump.Expr(expr)
	if err != nil {
		return Query{}, Request{}, fmt.Errorf("put: %w", err)
	}

	q := Query{
		ID:      dump.RecordHash(canonical),
		Text:    canonical,
		Source:  source,
		ASTJSON: string(astJSON),
	}
	req := Request{ID: s.newID(), QueryID: q.ID}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(seq), 0) + 1 FROM requests`).Scan(&req.Seq); err != nil {
			return fmt.Errorf("next seq: %w", err)
		}

		// The first request's seq becomes the query's seq.
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO queries (id, text, source, ast_json, seq)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`, q.ID, q.Text, q.Source, q.ASTJSON, req.Seq); err != nil {
			return fmt.Errorf("insert query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO requests (id, query_id, seq) VALUES (?, ?, ?)
		`, req.ID, req.QueryID, req.Seq); err != nil {
			return fmt.Errorf("insert request: %w", err)
		}

		return tx.QueryRowContext(ctx, `
			SELECT source, seq FROM queries WHERE id = ?
		`, q.ID).Scan(&q.Source, &q.Seq)
	})
	if err != nil {
		return Query{}, Request{}, fmt.Errorf("put: %w", err)
	}

	s.logger.Info("query stored",
		"id", q.ID,
		"request", req.ID,
		"seq", req.Seq,
		"new", q.Seq == req.Seq,
	)
	return q, req, nil
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
