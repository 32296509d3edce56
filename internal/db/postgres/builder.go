package postgres

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/facetdex/internal/db"
	"github.com/kailas-cloud/facetdex/internal/domain/search/filter"
	"github.com/kailas-cloud/facetdex/internal/domain/search/request"
)

// sqlBuilder collects positional arguments while a statement is rendered.
type sqlBuilder struct {
	args []any
}

func newSQLBuilder() *sqlBuilder {
	return &sqlBuilder{args: make([]any, 0)}
}

func (b *sqlBuilder) addArg(value any) int {
	b.args = append(b.args, value)
	return len(b.args)
}

func (b *sqlBuilder) placeholder(value any) string {
	return fmt.Sprintf("$%d", b.addArg(value))
}

// text is a placeholder cast to text; the JSON operators are overloaded on text and int.
func (b *sqlBuilder) text(value string) string {
	return b.placeholder(value) + "::text"
}

// where renders the type constraint and the filter expression.
func (b *sqlBuilder) where(docType string, expr filter.Expression) string {
	parts := []string{"entity_type = " + b.text(docType)}
	for _, c := range expr.Clauses() {
		parts = append(parts, b.clause(c))
	}
	return strings.Join(parts, " AND ")
}

func (b *sqlBuilder) clause(c filter.Clause) string {
	conds := c.Conditions()
	out := make([]string, len(conds))
	for i, cond := range conds {
		out[i] = b.condition(cond)
	}
	if len(out) == 1 {
		return out[0]
	}
	return "(" + strings.Join(out, " OR ") + ")"
}

func (b *sqlBuilder) condition(c filter.Condition) string {
	if c.Field() == db.FieldID {
		v := b.text(c.Value())
		switch c.Op() {
		case filter.OpSubstring:
			return fmt.Sprintf("strpos(lower(id), lower(%s)) > 0", v)
		case filter.OpContains:
			return "FALSE"
		default:
			return fmt.Sprintf("id = %s", v)
		}
	}

	field := b.text(c.Field())
	v := b.text(c.Value())
	switch c.Op() {
	case filter.OpContains:
		return fmt.Sprintf("COALESCE(lists -> %s, '[]'::jsonb) @> jsonb_build_array(%s)", field, v)
	case filter.OpSubstring:
		return fmt.Sprintf(
			"(strpos(lower(scalars ->> %[1]s), lower(%[2]s)) > 0"+
				" OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(COALESCE(lists -> %[1]s, '[]'::jsonb)) AS e(v)"+
				" WHERE strpos(lower(e.v), lower(%[2]s)) > 0))",
			field, v)
	default:
		return fmt.Sprintf("scalars ->> %s = %s", field, v)
	}
}

// orderBy sorts by a built-in column or a scalar key; rows without the key go last.
func (b *sqlBuilder) orderBy(o request.Ordering) string {
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	switch o.Field {
	case "":
		return "id ASC"
	case db.FieldID:
		return "id " + dir
	case db.FieldCreatedAt, db.FieldUpdatedAt:
		return fmt.Sprintf("%s %s, id ASC", o.Field, dir)
	}
	return fmt.Sprintf("scalars ->> %s %s NULLS LAST, id ASC", b.text(o.Field), dir)
}

const columns = "id, entity_type, scalars, lists, created_at, updated_at"

func findSQL(q *db.FindQuery) (string, []any) {
	b := newSQLBuilder()
	sql := "SELECT " + columns + " FROM questionnaires WHERE " + b.where(q.Type, q.Filters) +
		" ORDER BY " + b.orderBy(q.Ordering)
	if q.Limit > 0 {
		sql += " LIMIT " + b.placeholder(q.Limit)
	}
	if q.Offset > 0 {
		sql += " OFFSET " + b.placeholder(q.Offset)
	}
	return sql, b.args
}

func countSQL(q *db.FindQuery) (string, []any) {
	b := newSQLBuilder()
	return "SELECT COUNT(*) FROM questionnaires WHERE " + b.where(q.Type, q.Filters), b.args
}

// distinctSQL unions scalar values and list elements of every requested field.
func distinctSQL(q *db.DistinctQuery) (string, []any) {
	b := newSQLBuilder()
	where := b.where(q.Type, q.Filters)
	parts := make([]string, 0, 2*len(q.Fields))
	for _, f := range q.Fields {
		p := b.text(f)
		parts = append(parts,
			fmt.Sprintf("SELECT btrim(scalars ->> %s) AS v FROM questionnaires WHERE %s", p, where),
			fmt.Sprintf("SELECT btrim(e.v) AS v FROM questionnaires,"+
				" jsonb_array_elements_text(COALESCE(lists -> %s, '[]'::jsonb)) AS e(v) WHERE %s", p, where),
		)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "SELECT DISTINCT v FROM (" + strings.Join(parts, " UNION ALL ") + ") AS d" +
		" WHERE v IS NOT NULL AND v <> ''", b.args
}

const upsertSQL = `
INSERT INTO questionnaires (entity_type, id, scalars, lists, created_at, updated_at)
VALUES ($1, $2, $3::jsonb, $4::jsonb, $5, $6)
ON CONFLICT (entity_type, id) DO UPDATE SET
    scalars    = EXCLUDED.scalars,
    lists      = EXCLUDED.lists,
    updated_at = EXCLUDED.updated_at
RETURNING (xmax = 0) AS created`

const getSQL = "SELECT " + columns + " FROM questionnaires WHERE entity_type = $1 AND id = $2"

const deleteSQL = "DELETE FROM questionnaires WHERE entity_type = $1 AND id = $2"
