// Package query builds parameterised Cloud Spanner statements.
package query

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

type ordering struct {
	column    string
	direction Direction
}

// Builder constructs SELECT and DELETE statements. Every method returns a new
// Builder, so a base query can be shared and refined.
type Builder struct {
	table   string
	columns []string
	where   []Condition
	orderBy []ordering
	limit   int64
	offset  int64
	delete  bool
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select appends columns to the select list.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.columns = append(nb.columns, columns...)
	return nb
}

// Where adds a condition. Multiple calls are combined with AND.
func (b *Builder) Where(condition Condition) *Builder {
	nb := b.clone()
	nb.where = append(nb.where, condition)
	return nb
}

// OrderBy appends a sort column. Earlier calls take precedence.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	nb := b.clone()
	nb.orderBy = append(nb.orderBy, ordering{column: column, direction: direction})
	return nb
}

func (b *Builder) Limit(limit int64) *Builder {
	nb := b.clone()
	nb.limit = limit
	return nb
}

func (b *Builder) Offset(offset int64) *Builder {
	nb := b.clone()
	nb.offset = offset
	return nb
}

// Count turns the query into SELECT COUNT(*) over the same WHERE clause.
func (b *Builder) Count() *Builder {
	nb := b.clone()
	nb.columns = []string{"COUNT(*)"}
	nb.orderBy = nil
	nb.limit = 0
	nb.offset = 0
	return nb
}

// Delete turns the query into a DML DELETE over the same WHERE clause. Spanner
// rejects DELETE without WHERE, so callers must add at least one condition.
func (b *Builder) Delete() *Builder {
	nb := b.Count()
	nb.columns = nil
	nb.delete = true
	return nb
}

// Build renders the statement.
func (b *Builder) Build() spanner.Statement {
	var sql strings.Builder
	params := newParams()

	if b.delete {
		sql.WriteString("DELETE FROM ")
		sql.WriteString(b.table)
	} else {
		sql.WriteString("SELECT ")
		if len(b.columns) == 0 {
			sql.WriteString("*")
		} else {
			sql.WriteString(strings.Join(b.columns, ", "))
		}
		sql.WriteString(" FROM ")
		sql.WriteString(b.table)
	}

	if len(b.where) > 0 {
		parts := make([]string, 0, len(b.where))
		for _, cond := range b.where {
			parts = append(parts, cond.SQL(params))
		}
		sql.WriteString(" WHERE ")
		sql.WriteString(strings.Join(parts, " AND "))
	}

	if len(b.orderBy) > 0 {
		parts := make([]string, 0, len(b.orderBy))
		for _, o := range b.orderBy {
			dir := "ASC"
			if o.direction == Desc {
				dir = "DESC"
			}
			parts = append(parts, o.column+" "+dir)
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(parts, ", "))
	}

	if b.limit > 0 {
		sql.WriteString(" LIMIT @limit")
		params.values["limit"] = b.limit
	}
	if b.offset > 0 {
		sql.WriteString(" OFFSET @offset")
		params.values["offset"] = b.offset
	}

	return spanner.Statement{
		SQL:    sql.String(),
		Params: params.values,
	}
}

func (b *Builder) clone() *Builder {
	nb := *b
	nb.columns = append([]string(nil), b.columns...)
	nb.where = append([]Condition(nil), b.where...)
	nb.orderBy = append([]ordering(nil), b.orderBy...)
	return &nb
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}
