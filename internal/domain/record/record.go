// Package record holds the stored questionnaire aggregate.
package record

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/facetdex/internal/domain"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
)

// Field names owned by the record itself rather than by the questionnaire payload.
const (
	FieldID         = "id"
	FieldCreatedAt  = "created_at"
	FieldUpdatedAt  = "updated_at"
	FieldModeration = "is_moderation"
	FieldDeleted    = "is_deleted"
)

var (
	idRegex        = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	fieldNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	reservedFields = map[string]bool{
		FieldID: true, FieldCreatedAt: true, FieldUpdatedAt: true,
		FieldModeration: true, FieldDeleted: true, "entity_type": true,
	}
)

// MaxFieldValueSize is the maximum size of one scalar value in bytes.
const MaxFieldValueSize = 65536

// Record is a questionnaire of one entity type.
type Record struct {
	id         string
	entityType entity.Type
	scalars    map[string]string
	lists      map[string][]string
	moderated  bool
	deleted    bool
	createdAt  time.Time
	updatedAt  time.Time
}

// New validates and creates a Record. An empty id gets a generated UUID.
// List values are trimmed and empty elements dropped.
func New(id string, t entity.Type, scalars map[string]string, lists map[string][]string) (Record, error) {
	if !t.IsValid() {
		return Record{}, fmt.Errorf("%q: %w", t, domain.ErrUnknownEntityType)
	}
	if id == "" {
		id = uuid.NewString()
	}
	if len(id) > 256 || !idRegex.MatchString(id) {
		return Record{}, fmt.Errorf("record ID %q must be 1-256 alphanumeric, '_' or '-': %w", id, domain.ErrInvalidRecord)
	}

	s := make(map[string]string, len(scalars))
	for k, v := range scalars {
		if err := validateFieldName(k); err != nil {
			return Record{}, err
		}
		if len(v) > MaxFieldValueSize {
			return Record{}, fmt.Errorf("field %q too large (max %d bytes): %w", k, MaxFieldValueSize, domain.ErrInvalidRecord)
		}
		s[k] = v
	}

	l := make(map[string][]string, len(lists))
	for k, vs := range lists {
		if err := validateFieldName(k); err != nil {
			return Record{}, err
		}
		if _, dup := s[k]; dup {
			return Record{}, fmt.Errorf("field %q is both scalar and list: %w", k, domain.ErrInvalidRecord)
		}
		clean := make([]string, 0, len(vs))
		for _, v := range vs {
			if v = strings.TrimSpace(v); v != "" {
				clean = append(clean, v)
			}
		}
		l[k] = clean
	}

	return Record{id: id, entityType: t, scalars: s, lists: l}, nil
}

func validateFieldName(name string) error {
	if !fieldNameRegex.MatchString(name) {
		return fmt.Errorf("field name %q must be snake_case: %w", name, domain.ErrInvalidRecord)
	}
	if reservedFields[name] {
		return fmt.Errorf("field name %q is reserved: %w", name, domain.ErrInvalidRecord)
	}
	return nil
}

// Reconstruct creates a Record without validation (storage hydration).
func Reconstruct(
	id string, t entity.Type,
	scalars map[string]string, lists map[string][]string,
	moderated, deleted bool, createdAt, updatedAt time.Time,
) Record {
	return Record{
		id: id, entityType: t, scalars: scalars, lists: lists,
		moderated: moderated, deleted: deleted, createdAt: createdAt, updatedAt: updatedAt,
	}
}

// ID returns the record identifier.
func (r *Record) ID() string { return r.id }

// EntityType returns the questionnaire type.
func (r *Record) EntityType() entity.Type { return r.entityType }

// Scalars returns the single-valued fields.
func (r *Record) Scalars() map[string]string { return r.scalars }

// Lists returns the multi-valued fields.
func (r *Record) Lists() map[string][]string { return r.lists }

// Moderated reports whether the record passed moderation.
func (r *Record) Moderated() bool { return r.moderated }

// Deleted reports whether the record is soft-deleted.
func (r *Record) Deleted() bool { return r.deleted }

// CreatedAt returns the creation time.
func (r *Record) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last modification time.
func (r *Record) UpdatedAt() time.Time { return r.updatedAt }

// SetModerated sets the moderation flag in place.
func (r *Record) SetModerated(v bool) { r.moderated = v }

// MarkDeleted soft-deletes the record in place.
func (r *Record) MarkDeleted() { r.deleted = true }

// Touch stamps modification time, and creation time when unset.
func (r *Record) Touch(now time.Time) {
	if r.createdAt.IsZero() {
		r.createdAt = now
	}
	r.updatedAt = now
}

// KeepCreated carries the creation time over from a previous version.
func (r *Record) KeepCreated(prev time.Time) {
	if !prev.IsZero() {
		r.createdAt = prev
	}
}
