package db

import (
	"context"
	"time"
)

// Store is the record collection facade combining all sub-interfaces.
type Store interface {
	Pinger
	DocumentStore
	Finder
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DocumentStore provides per-document operations.
type DocumentStore interface {
	// Put inserts or replaces a document and reports whether it was new.
	Put(ctx context.Context, doc *Document) (created bool, err error)
	// Get returns ErrKeyNotFound when the document is missing.
	Get(ctx context.Context, docType, id string) (*Document, error)
	Delete(ctx context.Context, docType, id string) error
}

// Finder runs filtered reads over one document type.
type Finder interface {
	Find(ctx context.Context, q *FindQuery) (*FindResult, error)
	Distinct(ctx context.Context, q *DistinctQuery) ([]string, error)
}
