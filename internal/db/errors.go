package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound     = errors.New("db: key not found")
	ErrInvalidOrdering = errors.New("db: invalid ordering field")
)

// Op constants name the storage operation for error context.
// Redis ops use the command name, postgres ops the statement kind.
const (
	OpGet     = "GET"
	OpSet     = "SET"
	OpDel     = "DEL"
	OpScan    = "SCAN"
	OpSelect  = "SELECT"
	OpUpsert  = "UPSERT"
	OpDelete  = "DELETE"
	OpMigrate = "MIGRATE"
	OpEncode  = "ENCODE"
	OpDecode  = "DECODE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
