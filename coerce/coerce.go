// Package coerce converts dynamically typed input values into the native representation of a column kind.
//
// Conversions are driven by an explicit table keyed by (source kind, target kind). A pair that is not in the
// table cannot be converted and yields an InvalidCoercion error, there is no fallback to reflection.
package coerce

import (
	"fmt"

	"github.com/squareup/colstore/common"
	"github.com/squareup/colstore/errors"
)

// Rule converts a value whose source kind is known into the native Go type of a target kind.
type Rule func(value interface{}) (interface{}, error)

type pair struct {
	src common.Kind
	dst common.Kind
}

// Table is a closed set of coercion rules. A Table is immutable once built, With returns a modified copy.
type Table struct {
	rules map[pair]Rule
}

func NewTable() *Table {
	return &Table{rules: make(map[pair]Rule)}
}

// With returns a copy of the table with the rule for src -> dst replaced.
func (t *Table) With(src common.Kind, dst common.Kind, rule Rule) *Table {
	cp := &Table{rules: make(map[pair]Rule, len(t.rules)+1)}
	for k, v := range t.rules {
		cp.rules[k] = v
	}
	cp.rules[pair{src: src, dst: dst}] = rule
	return cp
}

// Without returns a copy of the table with the rule for src -> dst removed.
func (t *Table) Without(src common.Kind, dst common.Kind) *Table {
	cp := t.With(src, dst, nil)
	delete(cp.rules, pair{src: src, dst: dst})
	return cp
}

// Supports returns true if there is a rule from src to dst.
func (t *Table) Supports(src common.Kind, dst common.Kind) bool {
	_, ok := t.rules[pair{src: src, dst: dst}]
	return ok
}

// Convert coerces value to the native type of dst. Null (and nil) pass through as common.Null.
func (t *Table) Convert(dst common.Kind, value interface{}) (interface{}, error) {
	if value == nil || common.IsNull(value) {
		return common.Null, nil
	}
	src, ok := common.KindOf(value)
	if !ok {
		return nil, errors.NewInvalidCoercionError(fmt.Sprintf("%T", value), dst.String(), "unsupported source type")
	}
	rule, ok := t.rules[pair{src: src, dst: dst}]
	if !ok {
		return nil, errors.NewInvalidCoercionError(fmt.Sprintf("%T", value), dst.String(), "")
	}
	return rule(value)
}

func (t *Table) register(src common.Kind, dst common.Kind, rule Rule) {
	t.rules[pair{src: src, dst: dst}] = rule
}

// Converter is implemented by anything that can coerce a value into a target kind. *Table is the standard one.
type Converter interface {
	Convert(dst common.Kind, value interface{}) (interface{}, error)
}

var defaultTable = buildDefaultTable()

// Default returns the standard, invariant culture, coercion table.
func Default() *Table {
	return defaultTable
}
