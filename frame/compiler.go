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

package frame

import (
	"strings"

	"github.com/rulego/framesql/functions"
	"github.com/rulego/framesql/lang"
	"github.com/rulego/framesql/pure"
	"github.com/rulego/framesql/rsql"
	"github.com/rulego/framesql/types"
	"github.com/rulego/framesql/window"
)

// 行、部分帧、窗口与集合在生成文本中的变量名
const (
	rowVar        = "r"
	partialVar    = "p"
	windowVar     = "w"
	collectionVar = "c"
)

// subQuery wraps q under the configured alias
func subQuery(q *rsql.QuerySpecification, cfg *types.Config) (*rsql.QuerySpecification, error) {
	s, err := rsql.CreateSubQuery(q, cfg.SQLDialect(), cfg.Naming.SubQueryAlias, nil)
	if err != nil {
		return nil, types.NewInternalError(err)
	}
	return s, nil
}

// withZeroColumn appends `0 AS zero` to base and wraps the result. A base
// with grouping, DISTINCT or pagination is wrapped before the column is added.
func withZeroColumn(base *rsql.QuerySpecification, cfg *types.Config, zero string) (*rsql.QuerySpecification, error) {
	q, err := zeroLevel(base, cfg, zero)
	if err != nil {
		return nil, err
	}
	return subQuery(q, cfg)
}

// zeroLevel is the level of withZeroColumn that projects the zero column
func zeroLevel(base *rsql.QuerySpecification, cfg *types.Config, zero string) (*rsql.QuerySpecification, error) {
	q := rsql.CopyQuery(base)
	if rsql.RequiresSubQuery(base) {
		var err error
		if q, err = subQuery(base, cfg); err != nil {
			return nil, err
		}
	}
	q.Select.SelectItems = append(q.Select.SelectItems, &rsql.SingleColumn{
		Alias:      cfg.Quote(zero),
		Expression: &rsql.IntegerLiteral{Value: 0},
	})
	return q, nil
}

// reproject selects the listed columns of q under their own names
func reproject(q *rsql.QuerySpecification, cfg *types.Config, columns []types.Column) ([]rsql.SelectItem, error) {
	items := make([]rsql.SelectItem, 0, len(columns))
	for _, c := range columns {
		alias := cfg.Quote(c.Name)
		e, err := rsql.FindColumnExpression(q, alias)
		if err != nil {
			return nil, types.NewInternalError(err)
		}
		items = append(items, &rsql.SingleColumn{Alias: alias, Expression: e})
	}
	return items, nil
}

// passThrough is reproject for a level q wrapping inner. A column inner reads
// straight from its source under the same lower-case name keeps inner's
// reference, e.g. "root".col1, since q's source exposes it under that name.
func passThrough(q, inner *rsql.QuerySpecification, cfg *types.Config, columns []types.Column) ([]rsql.SelectItem, error) {
	items, err := reproject(q, cfg, columns)
	if err != nil {
		return nil, err
	}
	alias := cfg.Quote(cfg.Naming.SubQueryAlias)
	for i, c := range columns {
		e, err := rsql.FindColumnExpression(inner, cfg.Quote(c.Name))
		if err != nil {
			return nil, types.NewInternalError(err)
		}
		ref, ok := e.(*rsql.QualifiedNameReference)
		if !ok || len(ref.Name.Parts) != 2 || ref.Name.Parts[0] != alias {
			continue
		}
		if ref.Name.Parts[1] == c.Name && strings.ToLower(c.Name) == c.Name {
			items[i] = &rsql.SingleColumn{Alias: cfg.Quote(c.Name), Expression: e}
		}
	}
	return items, nil
}

// windowed renders p against the row bound to q with w attached to its calls
func windowed(p lang.Primitive, q *rsql.QuerySpecification, w *window.Window, cfg *types.Config) (rsql.Expression, error) {
	node, err := w.ToSQL(q, cfg)
	if err != nil {
		return nil, err
	}
	e, err := p.ToSQL(lang.NewSQLContext(cfg).Bind(rowVar, q))
	if err != nil {
		return nil, err
	}
	return rsql.ApplyWindow(e, node), nil
}

func zeroExtend(cfg *types.Config, zero string) string {
	return cfg.Separator(1, false) + "->extend(" + pure.ColumnSpec(zero) + ":{r|0})"
}

// project renders ->project(~[alias:p|$p.<alias><suffix>, ...]). Multi-line
// lists put each column on its own line.
func project(cfg *types.Config, aliases []string, suffix string, multiline bool) string {
	items := make([]string, len(aliases))
	for i, a := range aliases {
		items[i] = pure.EscapeColumnName(a) + ":" + partialVar + "|" + pure.ColumnAccess(partialVar, a+suffix)
	}
	return cfg.Separator(1, false) + "->project(" + columnList(cfg, items, multiline) + ")"
}

func columnList(cfg *types.Config, items []string, multiline bool) string {
	if !multiline {
		return "~[" + strings.Join(items, ", ") + "]"
	}
	return "~[" + cfg.Separator(2, false) + strings.Join(items, ","+cfg.Separator(2, true)) + cfg.Separator(1, false) + "]"
}

// universe is the set of columns an aggregation specification may name
func (t target) universe() functions.Universe {
	all := types.ColumnNames(t.base.node.columns())
	if !t.grouped() && t.selection == nil {
		return functions.PlainUniverse(all)
	}
	return functions.GroupedUniverse(all, t.grouping, t.selection)
}

func (t target) partitions() []string {
	return append([]string(nil), t.grouping...)
}

// aggregation 一个规范化后的聚合输出列
type aggregation struct {
	alias  string
	source *lang.ColumnRef
	result lang.Primitive
}

// buildAggregations normalizes spec against t and applies every function
// to the collection of its column.
func buildAggregations(t target, spec interface{}) ([]aggregation, []types.Column, error) {
	normalized, err := functions.Normalize(spec, t.universe())
	if err != nil {
		return nil, nil, err
	}
	row := lang.NewRow(rowVar, t.base.node.columns())
	var (
		aggs  []aggregation
		cols  []types.Column
		names = make(map[string]bool)
	)
	for _, ca := range normalized {
		ref, err := row.Column(ca.Column)
		if err != nil {
			return nil, nil, err
		}
		coll := lang.NewCollection(ref, collectionVar)
		for _, e := range ca.Entries {
			if names[e.Alias] {
				return nil, nil, types.NewValueError("Duplicate output column: '%s'", e.Alias)
			}
			names[e.Alias] = true
			result, err := e.Apply(coll)
			if err != nil {
				return nil, nil, err
			}
			col, err := lang.InferColumn(e.Alias, result)
			if err != nil {
				return nil, nil, err
			}
			aggs = append(aggs, aggregation{alias: e.Alias, source: ref, result: result})
			cols = append(cols, col)
		}
	}
	return aggs, cols, nil
}

// aggregateLambdas renders alias:{params | $r.col}:{c | <agg>}
func (a aggregation) pure(cfg *types.Config, alias string, params ...string) (string, error) {
	src, err := a.source.ToPure(cfg)
	if err != nil {
		return "", err
	}
	agg, err := a.result.ToPure(cfg)
	if err != nil {
		return "", err
	}
	return pure.EscapeColumnName(alias) + ":" + pure.Lambda(src, params...) + ":" + pure.Lambda(agg, collectionVar), nil
}

func sortAscending(columns []string) []window.SortInfo {
	sorts := make([]window.SortInfo, len(columns))
	for i, c := range columns {
		sorts[i] = window.Asc(c)
	}
	return sorts
}

func noColumns(verb string) error {
	return types.NewValueError("The %s function has no columns to apply to", verb)
}
