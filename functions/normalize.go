/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package functions

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/rulego/framesql/lang"
	"github.com/rulego/framesql/types"
)

const invalidFunc = "Invalid `func` argument for the aggregate function.\n"

// Pair 一个列到函数规格的映射项
type Pair struct {
	Key   interface{}
	Value interface{}
}

// Mapping is an ordered per-column specification. Go maps are accepted too and
// are ordered by the frame's column order.
type Mapping []Pair

// Universe 聚合规格可以引用的列
type Universe struct {
	columns   []string
	legal     []string
	broadcast []string
	grouping  map[string]bool
}

// PlainUniverse is the universe of an ungrouped frame
func PlainUniverse(columns []string) Universe {
	cols := append([]string(nil), columns...)
	return Universe{columns: cols, legal: cols, broadcast: cols, grouping: map[string]bool{}}
}

// GroupedUniverse is the universe of a grouped frame. A nil selection lets
// mapping keys name any column and broadcasts to the non-grouping columns.
func GroupedUniverse(columns, grouping, selected []string) Universe {
	u := Universe{columns: append([]string(nil), columns...), grouping: make(map[string]bool, len(grouping))}
	for _, g := range grouping {
		u.grouping[g] = true
	}
	if selected != nil {
		u.legal = append([]string(nil), selected...)
		u.broadcast = u.legal
		return u
	}
	u.legal = u.columns
	for _, c := range u.columns {
		if !u.grouping[c] {
			u.broadcast = append(u.broadcast, c)
		}
	}
	return u
}

// Legal returns the columns a mapping key may name
func (u Universe) Legal() []string { return append([]string(nil), u.legal...) }

// Broadcast returns the columns a non-mapping specification applies to
func (u Universe) Broadcast() []string { return append([]string(nil), u.broadcast...) }

func (u Universe) IsGrouping(column string) bool { return u.grouping[column] }

func (u Universe) isLegal(column string) bool {
	for _, c := range u.legal {
		if c == column {
			return true
		}
	}
	return false
}

func (u Universe) position(column string) int {
	for i, c := range u.columns {
		if c == column {
			return i
		}
	}
	return len(u.columns)
}

// Entry 规范化后的单个聚合：函数与输出列别名
type Entry struct {
	Func  Func
	Alias string
	op    lang.AggregateOp
}

// Op returns the canonical operation, ok is false for custom functions
func (e Entry) Op() (lang.AggregateOp, bool) {
	return e.op, e.op != 0
}

// Apply evaluates the aggregation over c
func (e Entry) Apply(c *lang.Collection) (lang.Primitive, error) {
	if e.op != 0 {
		return c.Aggregate(e.op)
	}
	var (
		p   lang.Primitive
		err error
	)
	if e.Func.kind == KindExpression {
		p, err = e.Func.evalExpression(c)
	} else {
		p, err = e.Func.fn(c)
	}
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Type().IsValid() {
		return nil, invalidResult(p)
	}
	return p, nil
}

// ColumnAggregation 一列上的全部聚合
type ColumnAggregation struct {
	Column  string
	Entries []Entry
}

// Normalize canonicalizes spec against u using the global registry
func Normalize(spec interface{}, u Universe) ([]ColumnAggregation, error) {
	return globalRegistry.Normalize(spec, u)
}

// Normalize canonicalizes spec into per-column entries with their aliases
func (r *Registry) Normalize(spec interface{}, u Universe) ([]ColumnAggregation, error) {
	if pairs, ok := mappingPairs(spec, u); ok {
		return r.normalizeMapping(pairs, u)
	}

	var (
		funcs []Func
		list  bool
	)
	if elems, ok := listElements(spec); ok {
		list = true
		for i, v := range elems {
			f, ok := asFunc(v)
			if !ok {
				return nil, types.NewTypeError(invalidFunc+
					"When a list is provided as the main argument, all elements must be a function name or a function.\n"+
					"But got element at index %d: %s (type: %T)\n", i, echo(v), v)
			}
			funcs = append(funcs, f)
		}
		if len(funcs) == 0 {
			return nil, types.NewValueError(invalidFunc + "The list of functions must not be empty.")
		}
	} else if f, ok := asFunc(spec); ok {
		funcs = []Func{f}
	} else {
		return nil, types.NewTypeError("Invalid `func` argument for the aggregate function. "+
			"Expected a function name, a function, a list containing these, "+
			"or a mapping of column name to these. But got: %s (type: %T)", echo(spec), spec)
	}

	if len(u.broadcast) == 0 {
		return nil, types.NewValueError(invalidFunc + "There are no columns to aggregate.")
	}
	result := make([]ColumnAggregation, 0, len(u.broadcast))
	for _, col := range u.broadcast {
		entries, err := r.entries(col, funcs, list)
		if err != nil {
			return nil, err
		}
		result = append(result, ColumnAggregation{Column: col, Entries: entries})
	}
	return result, nil
}

func (r *Registry) normalizeMapping(pairs []Pair, u Universe) ([]ColumnAggregation, error) {
	if len(pairs) == 0 {
		return nil, types.NewValueError(invalidFunc + "The mapping must name at least one column.")
	}
	seen := make(map[string]bool, len(pairs))
	result := make([]ColumnAggregation, 0, len(pairs))
	for _, pair := range pairs {
		key, ok := pair.Key.(string)
		if !ok {
			return nil, types.NewTypeError(invalidFunc+
				"When a dictionary is provided, all keys must be strings.\n"+
				"But got key: %s (type: %T)\n", echo(pair.Key), pair.Key)
		}
		if !u.isLegal(key) {
			legal := u.Legal()
			sort.Strings(legal)
			return nil, types.NewValueError(invalidFunc+
				"When a dictionary is provided, all keys must be column names.\n"+
				"Available columns are: %s\n"+
				"But got key: %s (type: %T)\n", quoteList(legal), echo(key), key)
		}
		if seen[key] {
			return nil, types.NewValueError(invalidFunc+"Column '%s' appears more than once.\n", key)
		}
		seen[key] = true

		var funcs []Func
		list := true
		if elems, ok := listElements(pair.Value); ok {
			for i, v := range elems {
				f, ok := asFunc(v)
				if !ok {
					return nil, types.NewTypeError(invalidFunc+
						"When a list is provided for a column, all elements must be a function name or a function.\n"+
						"But got element at index %d: %s (type: %T)\n", i, echo(v), v)
				}
				funcs = append(funcs, f)
			}
			if len(funcs) == 0 {
				return nil, types.NewValueError(invalidFunc+"The list of functions for column '%s' must not be empty.\n", key)
			}
		} else {
			f, ok := asFunc(pair.Value)
			if !ok {
				return nil, types.NewTypeError(invalidFunc+
					"When a dictionary is provided, the value must be a function name or a function "+
					"(or a list containing these).\n"+
					"But got value for key '%s': %s (type: %T)\n", key, echo(pair.Value), pair.Value)
			}
			funcs = []Func{f}
			// 分组键上的单个函数同样按列表处理
			list = u.IsGrouping(key)
		}

		entries, err := r.entries(key, funcs, list)
		if err != nil {
			return nil, err
		}
		result = append(result, ColumnAggregation{Column: key, Entries: entries})
	}
	return result, nil
}

func (r *Registry) entries(column string, funcs []Func, list bool) ([]Entry, error) {
	entries := make([]Entry, 0, len(funcs))
	lambdas := 0
	for _, f := range funcs {
		op, err := r.resolve(f)
		if err != nil {
			return nil, err
		}
		alias := column
		if list {
			if f.IsAnonymous() {
				lambdas++
				alias = fmt.Sprintf("lambda_%d(%s)", lambdas, column)
			} else {
				alias = fmt.Sprintf("%s(%s)", f.name, column)
			}
		}
		entries = append(entries, Entry{Func: f, Alias: alias, op: op})
	}
	return entries, nil
}

// resolve returns the canonical op of f, or 0 when f is evaluated as a
// custom function.
func (r *Registry) resolve(f Func) (lang.AggregateOp, error) {
	switch f.kind {
	case KindKeyword:
		if op, ok := r.Lookup(f.name); ok {
			return op, nil
		}
		return 0, types.NewNotImplementedError(invalidFunc+
			"The string '%s' does not correspond to any supported aggregation.\n"+
			"Available string functions are: %s", f.name, quoteList(r.Keywords()))
	case KindLibrary:
		if op, ok := r.Lookup(f.name); ok {
			return op, nil
		}
		return 0, types.NewNotImplementedError(invalidFunc+
			"The library function '%s' is not supported.\n"+
			"Supported aggregate functions are: %s", f.name, quoteList(r.Keywords()))
	case KindNamed:
		if op, ok := r.Lookup(f.name); ok && f.name != "" {
			return op, nil
		}
		if f.fn == nil {
			return 0, types.NewTypeError(invalidFunc+"The function '%s' has no implementation.", f.name)
		}
		return 0, nil
	case KindLambda:
		if f.fn == nil {
			return 0, types.NewTypeError(invalidFunc + "The anonymous function has no implementation.")
		}
		return 0, nil
	case KindExpression:
		if f.program == nil {
			return 0, types.NewTypeError(invalidFunc + "The expression has not been compiled.")
		}
		return 0, nil
	}
	return 0, types.NewTypeError(invalidFunc+"Unknown function kind: %d", int(f.kind))
}

func invalidResult(v interface{}) error {
	return types.NewTypeError("Custom aggregation function must return a Primitive.\n"+
		"But got type: %T\nValue: %s", v, echo(v))
}

// mappingPairs extracts the ordered pairs of a mapping value. ok is false when
// spec is not a mapping.
func mappingPairs(spec interface{}, u Universe) ([]Pair, bool) {
	switch m := spec.(type) {
	case Mapping:
		return m, true
	case []Pair:
		return m, true
	}
	if spec == nil {
		return nil, false
	}
	rv := reflect.ValueOf(spec)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	pairs := make([]Pair, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		pairs = append(pairs, Pair{Key: k.Interface(), Value: rv.MapIndex(k).Interface()})
	}
	// 字符串键按帧中列的顺序排列，其余键排在最后
	sort.SliceStable(pairs, func(i, j int) bool {
		ki, iok := pairs[i].Key.(string)
		kj, jok := pairs[j].Key.(string)
		switch {
		case iok && jok:
			pi, pj := u.position(ki), u.position(kj)
			if pi != pj {
				return pi < pj
			}
			return ki < kj
		case iok != jok:
			return iok
		default:
			return fmt.Sprint(pairs[i].Key) < fmt.Sprint(pairs[j].Key)
		}
	})
	return pairs, true
}

// listElements returns the elements of a slice or array value, strings excluded
func listElements(v interface{}) ([]interface{}, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	elems := make([]interface{}, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}
	return elems, true
}

func echo(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return "'" + x + "'"
	case Func:
		return x.String()
	}
	return fmt.Sprintf("%v", v)
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
