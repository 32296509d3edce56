package filter

import (
	"fmt"
	"strings"
)

// MaxConditionsPerClause caps a single OR group (a district expands to dozens of cities).
const MaxConditionsPerClause = 512

// Op is the test a condition applies to a field.
type Op string

const (
	// OpEquals tests a scalar field for equality.
	OpEquals Op = "equals"
	// OpContains tests a list field for an element equal to the value.
	OpContains Op = "contains"
	// OpSubstring tests a scalar, or any element of a list, for case-insensitive containment.
	OpSubstring Op = "substring"
)

// Fields is the record view conditions are evaluated against.
type Fields interface {
	Scalar(name string) (string, bool)
	List(name string) []string
}

// Expression is a conjunction of clauses. The zero value matches everything.
type Expression struct {
	clauses []Clause
}

// NewExpression creates an Expression from clauses.
func NewExpression(clauses ...Clause) Expression {
	return Expression{clauses: append([]Clause(nil), clauses...)}
}

// And returns a new expression with extra clauses appended.
func (e Expression) And(clauses ...Clause) Expression {
	out := make([]Clause, 0, len(e.clauses)+len(clauses))
	out = append(out, e.clauses...)
	out = append(out, clauses...)
	return Expression{clauses: out}
}

// Clauses returns the AND-ed clauses.
func (e Expression) Clauses() []Clause { return e.clauses }

// IsEmpty reports whether the expression has no clauses.
func (e Expression) IsEmpty() bool { return len(e.clauses) == 0 }

// Matches evaluates the expression in memory.
func (e Expression) Matches(f Fields) bool {
	for _, c := range e.clauses {
		if !c.Matches(f) {
			return false
		}
	}
	return true
}

// Clause is a disjunction of conditions.
type Clause struct {
	conditions []Condition
}

// NewClause validates and creates a Clause.
func NewClause(conds ...Condition) (Clause, error) {
	if len(conds) == 0 {
		return Clause{}, fmt.Errorf("clause needs at least one condition")
	}
	if len(conds) > MaxConditionsPerClause {
		return Clause{}, fmt.Errorf("too many conditions in clause (max %d)", MaxConditionsPerClause)
	}
	return Clause{conditions: append([]Condition(nil), conds...)}, nil
}

// Conditions returns the OR-ed conditions.
func (c Clause) Conditions() []Condition { return c.conditions }

// Matches reports whether any condition holds.
func (c Clause) Matches(f Fields) bool {
	for _, cond := range c.conditions {
		if cond.Matches(f) {
			return true
		}
	}
	return false
}

// Condition is a single field test.
type Condition struct {
	field string
	op    Op
	value string
}

// NewEquals creates a scalar equality condition.
func NewEquals(field, value string) (Condition, error) {
	return newCondition(field, OpEquals, value)
}

// NewContains creates a list membership condition.
func NewContains(field, value string) (Condition, error) {
	return newCondition(field, OpContains, value)
}

// NewSubstring creates a case-insensitive containment condition.
func NewSubstring(field, value string) (Condition, error) {
	return newCondition(field, OpSubstring, value)
}

func newCondition(field string, op Op, value string) (Condition, error) {
	if field == "" {
		return Condition{}, fmt.Errorf("filter field is required")
	}
	if value == "" {
		return Condition{}, fmt.Errorf("value is required for field %q", field)
	}
	return Condition{field: field, op: op, value: value}, nil
}

// Field returns the field name.
func (c Condition) Field() string { return c.field }

// Op returns the test applied.
func (c Condition) Op() Op { return c.op }

// Value returns the operand.
func (c Condition) Value() string { return c.value }

// Matches evaluates the condition in memory.
func (c Condition) Matches(f Fields) bool {
	switch c.op {
	case OpEquals:
		v, ok := f.Scalar(c.field)
		return ok && v == c.value
	case OpContains:
		for _, v := range f.List(c.field) {
			if v == c.value {
				return true
			}
		}
		return false
	case OpSubstring:
		needle := strings.ToLower(c.value)
		if v, ok := f.Scalar(c.field); ok && strings.Contains(strings.ToLower(v), needle) {
			return true
		}
		for _, v := range f.List(c.field) {
			if strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
		return false
	}
	return false
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %q", c.field, c.op, c.value)
}
