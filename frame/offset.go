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

// combineFunc 由当前行的值与相对行的值得到输出值
type combineFunc func(cur, prev lang.Primitive) (lang.Primitive, error)

func shiftCombine(_, prev lang.Primitive) (lang.Primitive, error) {
	return prev, nil
}

func diffCombine(cur, prev lang.Primitive) (lang.Primitive, error) {
	return lang.Minus(cur, prev)
}

func pctChangeCombine(cur, prev lang.Primitive) (lang.Primitive, error) {
	delta, err := lang.Minus(cur, prev)
	if err != nil {
		return nil, err
	}
	return lang.Divide(delta, prev)
}

type offsetColumn struct {
	column types.Column
	// value 在原始行上的表达式，用于 Pure 与类型推导
	value lang.Primitive
}

// offsetFunction compiles shift, diff and pct_change: a lag (periods=1) or
// lead (periods=-1) over the zero column, combined with the current value.
type offsetFunction struct {
	verb    string
	target  target
	periods int
	combine combineFunc
	sources []offsetColumn
	cols    []types.Column
}

func newOffsetFunction(verb string, t target, combine combineFunc, numeric bool, p *params, known ...string) (*offsetFunction, error) {
	if err := p.check(verb, append([]string{"periods", "axis"}, known...)...); err != nil {
		return nil, err
	}
	periods, err := p.periods(verb)
	if err != nil {
		return nil, err
	}
	if v, ok := p.axis(); !ok {
		return nil, types.NewNotImplementedError(
			"The 'axis' argument of the %s function must be 0 or 'index', but got: axis=%s", verb, echo(v))
	}
	sources := t.sourceColumns()
	if len(sources) == 0 {
		return nil, noColumns(verb)
	}
	if numeric {
		if err := checkNumeric(verb, sources); err != nil {
			return nil, err
		}
	}
	o := &offsetFunction{verb: verb, target: t, periods: periods, combine: combine}
	row := lang.NewRow(rowVar, t.base.node.columns())
	prevRow, err := o.offsetRow(row)
	if err != nil {
		return nil, err
	}
	for _, c := range sources {
		cur, err := row.Column(c.Name)
		if err != nil {
			return nil, err
		}
		prev, err := prevRow.Column(c.Name)
		if err != nil {
			return nil, err
		}
		value, err := combine(cur, prev)
		if err != nil {
			return nil, err
		}
		col, err := lang.InferColumn(c.Name, value)
		if err != nil {
			return nil, err
		}
		o.sources = append(o.sources, offsetColumn{column: c, value: value})
		o.cols = append(o.cols, col)
	}
	log().Debug("validated %s(periods=%d) over %d columns", verb, periods, len(o.cols))
	return o, nil
}

func checkNumeric(verb string, cols []types.Column) error {
	var bad []string
	for _, c := range cols {
		if !c.Type.IsNumeric() {
			bad = append(bad, c.Name+" ("+c.Type.String()+")")
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return types.NewTypeError("The %s function is only supported for numeric columns (Integer, Float, Number), but got: %s",
		verb, strings.Join(bad, ", "))
}

func (o *offsetFunction) offsetRow(r *lang.Row) (*lang.OffsetRow, error) {
	partial := lang.NewPartialFrame(partialVar)
	if o.periods > 0 {
		return partial.Lag(r, o.periods)
	}
	return partial.Lead(r, -o.periods)
}

func (o *offsetFunction) window(cfg *types.Config) *window.Window {
	return window.New(o.target.partitions(), sortAscending([]string{cfg.Naming.OffsetColumn}), nil)
}

func (o *offsetFunction) columns() []types.Column {
	return o.cols
}

func (o *offsetFunction) toSQL(cfg *types.Config) (*rsql.QuerySpecification, error) {
	base, err := o.target.base.node.toSQL(cfg)
	if err != nil {
		return nil, err
	}
	zeroed, err := zeroLevel(base, cfg, cfg.Naming.OffsetColumn)
	if err != nil {
		return nil, err
	}
	inner, err := subQuery(zeroed, cfg)
	if err != nil {
		return nil, err
	}
	baseCols := o.target.base.node.columns()
	items, err := passThrough(inner, zeroed, cfg, baseCols)
	if err != nil {
		return nil, err
	}
	w := o.window(cfg)
	row := lang.NewRow(rowVar, baseCols)
	prevRow, err := o.offsetRow(row)
	if err != nil {
		return nil, err
	}
	suffixed := types.CopyColumns(baseCols)
	for _, s := range o.sources {
		prev, err := prevRow.Column(s.column.Name)
		if err != nil {
			return nil, err
		}
		e, err := windowed(prev, inner, w, cfg)
		if err != nil {
			return nil, err
		}
		name := s.column.Name + cfg.Naming.OffsetSuffix
		items = append(items, &rsql.SingleColumn{Alias: cfg.Quote(name), Expression: e})
		suffixed = append(suffixed, types.NewColumn(name, s.column.Type))
	}
	inner.Select.SelectItems = items

	outer, err := subQuery(inner, cfg)
	if err != nil {
		return nil, err
	}
	ctx := lang.NewSQLContext(cfg).Bind(rowVar, outer)
	shifted := lang.NewRow(rowVar, suffixed)
	final := make([]rsql.SelectItem, 0, len(o.sources))
	for _, s := range o.sources {
		cur, err := shifted.Column(s.column.Name)
		if err != nil {
			return nil, err
		}
		prev, err := shifted.Column(s.column.Name + cfg.Naming.OffsetSuffix)
		if err != nil {
			return nil, err
		}
		value, err := o.combine(cur, prev)
		if err != nil {
			return nil, err
		}
		e, err := value.ToSQL(ctx)
		if err != nil {
			return nil, err
		}
		final = append(final, &rsql.SingleColumn{Alias: cfg.Quote(s.column.Name), Expression: e})
	}
	outer.Select.SelectItems = final
	return outer, nil
}

func (o *offsetFunction) toPure(cfg *types.Config) (string, error) {
	base, err := o.target.base.node.toPure(cfg)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString(zeroExtend(cfg, cfg.Naming.OffsetColumn))
	over := o.window(cfg).ToPure()
	aliases := make([]string, len(o.sources))
	for i, s := range o.sources {
		body, err := s.value.ToPure(cfg)
		if err != nil {
			return "", err
		}
		sb.WriteString(cfg.Separator(1, false))
		sb.WriteString("->extend(" + over + ", " + pure.ColumnSpec(s.column.Name+cfg.Naming.OffsetSuffix) + ":" +
			pure.Lambda(body, partialVar, windowVar, rowVar) + ")")
		aliases[i] = s.column.Name
	}
	sb.WriteString(project(cfg, aliases, cfg.Naming.OffsetSuffix, false))
	return sb.String(), nil
}

func shift(t target, opts []Option) (*BaseFrame, error) {
	p := newParams(opts)
	o, err := newOffsetFunction("shift", t, shiftCombine, false, p)
	if err != nil {
		return nil, err
	}
	if err := p.extraKeywords("shift"); err != nil {
		return nil, err
	}
	return newFrame(o), nil
}

func diff(t target, opts []Option) (*BaseFrame, error) {
	p := newParams(opts)
	o, err := newOffsetFunction("diff", t, diffCombine, true, p)
	if err != nil {
		return nil, err
	}
	if err := p.extraKeywords("diff"); err != nil {
		return nil, err
	}
	return newFrame(o), nil
}

func pctChange(t target, opts []Option) (*BaseFrame, error) {
	const verb = "pct_change"
	p := newParams(opts)
	o, err := newOffsetFunction(verb, t, pctChangeCombine, true, p, "freq", "fill_method", "limit")
	if err != nil {
		return nil, err
	}
	for _, name := range []string{"freq", "fill_method", "limit"} {
		if v, ok := p.get(name); ok && v != nil {
			return nil, types.NewNotImplementedError(
				"The '%s' argument of the %s function is not supported, but got: %s=%s", name, verb, name, echo(v))
		}
	}
	if err := p.extraKeywords(verb); err != nil {
		return nil, err
	}
	return newFrame(o), nil
}
