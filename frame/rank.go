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

	"github.com/rulego/framesql/lang"
	"github.com/rulego/framesql/pure"
	"github.com/rulego/framesql/rsql"
	"github.com/rulego/framesql/types"
	"github.com/rulego/framesql/window"
)

var rankMethods = []string{"dense", "first", "min"}

var naOptions = []string{"bottom", "top"}

// rankFunction 每个源列一个窗口，按该列本身排序
type rankFunction struct {
	target    target
	method    string
	pct       bool
	ascending bool
	nulls     window.NullOrdering
	sources   []types.Column
	cols      []types.Column
}

func rank(t target, opts []Option) (*BaseFrame, error) {
	const verb = "rank"
	p := newParams(opts)
	if err := p.check(verb, "method", "pct", "ascending", "na_option", "axis"); err != nil {
		return nil, err
	}
	if v, ok := p.axis(); !ok {
		return nil, types.NewNotImplementedError(
			"The 'axis' argument of the %s function must be 0 or 'index', but got: axis=%s", verb, echo(v))
	}
	if err := p.extraKeywords(verb); err != nil {
		return nil, err
	}
	f := &rankFunction{target: t, method: "min", ascending: true, nulls: window.NullsLast}
	if v, ok := p.get("method"); ok {
		m, _ := v.(string)
		if !contains(rankMethods, m) {
			return nil, types.NewNotImplementedError(
				"The 'method' argument of the rank function is only supported for values %s, but got: method=%s",
				quotedList(rankMethods), echo(v))
		}
		f.method = m
	}
	if v, ok := p.get("na_option"); ok {
		o, _ := v.(string)
		if !contains(naOptions, o) {
			return nil, types.NewNotImplementedError(
				"The 'na_option' argument of the rank function is only supported for values %s, but got: na_option=%s",
				quotedList(naOptions), echo(v))
		}
		if o == "top" {
			f.nulls = window.NullsFirst
		}
	}
	if v, ok := p.get("pct"); ok {
		f.pct = v.(bool)
	}
	if v, ok := p.get("ascending"); ok {
		f.ascending = v.(bool)
	}
	if f.pct && f.method != "min" {
		return nil, types.NewNotImplementedError(
			"The 'pct' argument of the rank function is only supported with method='min', but got: method=%s", echo(f.method))
	}
	f.sources = t.sourceColumns()
	if len(f.sources) == 0 {
		return nil, noColumns(verb)
	}
	row := lang.NewRow(rowVar, t.base.node.columns())
	for _, c := range f.sources {
		col, err := lang.InferColumn(c.Name, f.rankValue(row))
		if err != nil {
			return nil, err
		}
		f.cols = append(f.cols, col)
	}
	log().Debug("validated rank(method=%s, pct=%v) over %d columns", f.method, f.pct, len(f.cols))
	return newFrame(f), nil
}

func (f *rankFunction) rankValue(r *lang.Row) lang.Primitive {
	partial, w := lang.NewPartialFrame(partialVar), lang.NewWindowRef(windowVar)
	switch {
	case f.pct:
		return partial.PercentRank(w, r)
	case f.method == "dense":
		return partial.DenseRank(w, r)
	case f.method == "first":
		return partial.RowNumber(r)
	default:
		return partial.Rank(w, r)
	}
}

func (f *rankFunction) window(column string) *window.Window {
	sort := window.Asc(column)
	if !f.ascending {
		sort = window.Desc(column)
	}
	sort.Nulls = f.nulls
	return window.New(f.target.partitions(), []window.SortInfo{sort}, nil)
}

func (f *rankFunction) columns() []types.Column {
	return f.cols
}

func (f *rankFunction) toSQL(cfg *types.Config) (*rsql.QuerySpecification, error) {
	base, err := f.target.base.node.toSQL(cfg)
	if err != nil {
		return nil, err
	}
	q, err := subQuery(base, cfg)
	if err != nil {
		return nil, err
	}
	row := lang.NewRow(rowVar, f.target.base.node.columns())
	items := make([]rsql.SelectItem, 0, len(f.sources))
	for _, c := range f.sources {
		e, err := windowed(f.rankValue(row), q, f.window(c.Name), cfg)
		if err != nil {
			return nil, err
		}
		items = append(items, &rsql.SingleColumn{Alias: cfg.Quote(c.Name), Expression: e})
	}
	q.Select.SelectItems = items
	return q, nil
}

func (f *rankFunction) toPure(cfg *types.Config) (string, error) {
	base, err := f.target.base.node.toPure(cfg)
	if err != nil {
		return "", err
	}
	row := lang.NewRow(rowVar, f.target.base.node.columns())
	body, err := f.rankValue(row).ToPure(cfg)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(base)
	aliases := make([]string, len(f.sources))
	for i, c := range f.sources {
		over := f.window(c.Name).ToPure()
		sb.WriteString(cfg.Separator(1, false) + "->extend(" + over + ", " +
			pure.ColumnSpec(c.Name+cfg.Naming.WindowSuffix) + ":" + pure.Lambda(body, partialVar, windowVar, rowVar) + ")")
		aliases[i] = c.Name
	}
	sb.WriteString(project(cfg, aliases, cfg.Naming.WindowSuffix, false))
	return sb.String(), nil
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func quotedList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
