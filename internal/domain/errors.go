package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrRecordNotFound signals a missing questionnaire record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrUnknownEntityType signals an entity type outside the directory's four types.
	ErrUnknownEntityType = errors.New("unknown entity type")
	// ErrUnknownAttribute signals a lookup of an attribute the registry does not declare.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrInvalidRecord signals a record that fails validation.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrInvalidOrdering signals an ordering the storage layer refused.
	ErrInvalidOrdering = errors.New("invalid ordering")
	// ErrInvalidPagination signals a negative limit or offset.
	ErrInvalidPagination = errors.New("invalid pagination")
	// ErrForbidden signals an operation that requires staff access.
	ErrForbidden = errors.New("forbidden")
)
