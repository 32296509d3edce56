package record

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/facetdex/internal/domain"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
)

type view struct {
	scalars map[string]string
}

func (v view) Scalar(name string) (string, bool) {
	s, ok := v.scalars[name]
	return s, ok
}

func (v view) List(string) []string { return nil }

func TestNew_Valid(t *testing.T) {
	r, err := New("d-1", entity.Designer,
		map[string]string{"full_name": "Анна", "city": "Москва"},
		map[string][]string{"segments": {" horeca ", "", "premium"}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID() != "d-1" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.EntityType() != entity.Designer {
		t.Errorf("EntityType() = %q", r.EntityType())
	}
	if got := r.Lists()["segments"]; len(got) != 2 || got[0] != "horeca" {
		t.Errorf("Lists()[segments] = %v", got)
	}
	if r.Moderated() || r.Deleted() {
		t.Error("new records start unmoderated and not deleted")
	}
}

func TestNew_GeneratesID(t *testing.T) {
	r, err := New("", entity.Media, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.ID()) != 36 {
		t.Errorf("expected a UUID, got %q", r.ID())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		scalars map[string]string
		lists   map[string][]string
	}{
		{"bad id", "a b", nil, nil},
		{"reserved scalar", "x", map[string]string{"is_deleted": "false"}, nil},
		{"reserved list", "x", nil, map[string][]string{"id": {"1"}}},
		{"bad field name", "x", map[string]string{"Full Name": "a"}, nil},
		{"scalar and list", "x", map[string]string{"city": "a"}, map[string][]string{"city": {"a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, entity.Repair, tt.scalars, tt.lists)
			if !errors.Is(err, domain.ErrInvalidRecord) {
				t.Fatalf("expected ErrInvalidRecord, got %v", err)
			}
		})
	}
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New("x", "events", nil, nil)
	if !errors.Is(err, domain.ErrUnknownEntityType) {
		t.Fatalf("expected ErrUnknownEntityType, got %v", err)
	}
}

func TestTouch(t *testing.T) {
	r, _ := New("x", entity.Supplier, nil, nil)
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	r.Touch(t1)
	r.Touch(t2)
	if !r.CreatedAt().Equal(t1) || !r.UpdatedAt().Equal(t2) {
		t.Errorf("created=%v updated=%v", r.CreatedAt(), r.UpdatedAt())
	}

	r2, _ := New("x", entity.Supplier, nil, nil)
	r2.KeepCreated(t1)
	r2.Touch(t2)
	if !r2.CreatedAt().Equal(t1) {
		t.Errorf("KeepCreated lost: %v", r2.CreatedAt())
	}
}

func TestVisibilityClauses(t *testing.T) {
	published := view{scalars: map[string]string{FieldModeration: "true", FieldDeleted: "false"}}
	pending := view{scalars: map[string]string{FieldModeration: "false", FieldDeleted: "false"}}
	deleted := view{scalars: map[string]string{FieldModeration: "true", FieldDeleted: "true"}}

	tests := []struct {
		name     string
		t        entity.Type
		a        Audience
		v        view
		expected bool
	}{
		{"public sees published", entity.Designer, Public, published, true},
		{"public hides pending", entity.Designer, Public, pending, false},
		{"public hides deleted", entity.Designer, Public, deleted, false},
		{"staff sees pending", entity.Repair, Staff, pending, true},
		{"staff hides deleted", entity.Repair, Staff, deleted, false},
		{"staff sees deleted suppliers", entity.Supplier, Staff, deleted, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok := true
			for _, c := range VisibilityClauses(tt.t, tt.a) {
				ok = ok && c.Matches(tt.v)
			}
			if ok != tt.expected {
				t.Errorf("visible = %v, want %v", ok, tt.expected)
			}
		})
	}
}
