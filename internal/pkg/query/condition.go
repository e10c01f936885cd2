package query

import (
	"fmt"
	"strings"
)

// Params collects the named parameters of a statement as it is rendered.
// Parameters are named @p0, @p1, ... in the order conditions ask for them.
type Params struct {
	values map[string]interface{}
	next   int
}

func newParams() *Params {
	return &Params{values: make(map[string]interface{})}
}

// Bind registers value and returns its placeholder.
func (p *Params) Bind(value interface{}) string {
	name := fmt.Sprintf("p%d", p.next)
	p.next++
	p.values[name] = value
	return "@" + name
}

// Condition is one boolean SQL expression.
type Condition interface {
	SQL(params *Params) string
}

type compareCondition struct {
	field string
	op    string
	value interface{}
}

func (c *compareCondition) SQL(params *Params) string {
	return fmt.Sprintf("%s %s %s", c.field, c.op, params.Bind(c.value))
}

// Eq generates "field = @pN".
func Eq(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "=", value: value}
}

// Lt generates "field < @pN".
func Lt(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "<", value: value}
}

// Lte generates "field <= @pN".
func Lte(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "<=", value: value}
}

// Gte generates "field >= @pN".
func Gte(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: ">=", value: value}
}

type nullCondition struct {
	field string
	not   bool
}

func (c *nullCondition) SQL(*Params) string {
	if c.not {
		return c.field + " IS NOT NULL"
	}
	return c.field + " IS NULL"
}

// IsNull generates "field IS NULL".
func IsNull(field string) Condition {
	return &nullCondition{field: field}
}

// IsNotNull generates "field IS NOT NULL".
func IsNotNull(field string) Condition {
	return &nullCondition{field: field, not: true}
}

type groupCondition struct {
	op    string
	conds []Condition
}

func (c *groupCondition) SQL(params *Params) string {
	parts := make([]string, 0, len(c.conds))
	for _, cond := range c.conds {
		parts = append(parts, cond.SQL(params))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " "+c.op+" ") + ")"
}

// And joins conditions with AND inside parentheses.
func And(conds ...Condition) Condition {
	return &groupCondition{op: "AND", conds: conds}
}

// Or joins conditions with OR inside parentheses.
func Or(conds ...Condition) Condition {
	return &groupCondition{op: "OR", conds: conds}
}
