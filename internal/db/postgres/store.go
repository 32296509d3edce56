// Package postgres is a db.Store over PostgreSQL: one JSONB row per questionnaire,
// filters compiled to SQL.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kailas-cloud/facetdex/internal/db"
)

var _ db.Store = (*Store)(nil)

// Config holds pool parameters.
type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Store implements db.Store via pgxpool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a pool. Connections are opened lazily; use WaitForReady to block on one.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 10
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = 30 * time.Minute
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close closes the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Put upserts a document. created_at of an existing row is kept.
func (s *Store) Put(ctx context.Context, doc *db.Document) (bool, error) {
	scalars, err := encodeJSON(doc.Scalars)
	if err != nil {
		return false, err
	}
	lists, err := encodeJSON(doc.Lists)
	if err != nil {
		return false, err
	}

	var created bool
	err = s.pool.QueryRow(ctx, upsertSQL,
		doc.Type, doc.ID, scalars, lists, doc.CreatedAt, doc.UpdatedAt,
	).Scan(&created)
	if err != nil {
		return false, &db.Error{Op: db.OpUpsert, Err: err}
	}
	return created, nil
}

// Get loads one document.
func (s *Store) Get(ctx context.Context, docType, id string) (*db.Document, error) {
	d, err := scanDocument(s.pool.QueryRow(ctx, getSQL, docType, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return d, nil
}

// Delete removes one document.
func (s *Store) Delete(ctx context.Context, docType, id string) error {
	tag, err := s.pool.Exec(ctx, deleteSQL, docType, id)
	if err != nil {
		return &db.Error{Op: db.OpDelete, Err: err}
	}
	if tag.RowsAffected() == 0 {
		return db.ErrKeyNotFound
	}
	return nil
}

// Find counts the matches and reads one page. Unknown ordering keys sort as NULL.
func (s *Store) Find(ctx context.Context, q *db.FindQuery) (*db.FindResult, error) {
	countQuery, countArgs := countSQL(q)
	var total int
	if err := s.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: fmt.Errorf("count: %w", err)}
	}

	query, args := findSQL(q)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	defer rows.Close()

	docs := make([]*db.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, &db.Error{Op: db.OpSelect, Err: err}
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return &db.FindResult{Total: total, Documents: docs}, nil
}

// Distinct collects distinct field values over the matching rows.
func (s *Store) Distinct(ctx context.Context, q *db.DistinctQuery) ([]string, error) {
	out := make([]string, 0)
	query, args := distinctSQL(q)
	if query == "" {
		return out, nil
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, &db.Error{Op: db.OpSelect, Err: err}
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	db.SortValues(out)
	return out, nil
}

func scanDocument(row pgx.Row) (*db.Document, error) {
	var (
		d       db.Document
		scalars []byte
		lists   []byte
	)
	if err := row.Scan(&d.ID, &d.Type, &scalars, &lists, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(scalars, &d.Scalars); err != nil {
		return nil, &db.Error{Op: db.OpDecode, Err: err}
	}
	if err := json.Unmarshal(lists, &d.Lists); err != nil {
		return nil, &db.Error{Op: db.OpDecode, Err: err}
	}
	return &d, nil
}

func encodeJSON[T any](v map[string]T) (string, error) {
	if len(v) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", &db.Error{Op: db.OpEncode, Err: err}
	}
	return string(data), nil
}
