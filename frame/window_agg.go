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

	"github.com/rulego/framesql/rsql"
	"github.com/rulego/framesql/types"
	"github.com/rulego/framesql/window"
)

// WindowSource 窗口聚合的来源，如 expanding 与 rolling
type WindowSource interface {
	// Base is the frame the window runs over
	Base() *BaseFrame
	// GroupingKeys partition the window, empty for an ungrouped frame
	GroupingKeys() []string
	// SelectedColumns narrows the aggregated columns, nil selects all
	// non-grouping columns
	SelectedColumns() []string
	// ConstructWindow builds the window ordered by sortColumns
	ConstructWindow(sortColumns []string) (*window.Window, error)
}

func sourceTarget(src WindowSource) target {
	return target{base: src.Base(), grouping: src.GroupingKeys(), selection: src.SelectedColumns()}
}

// Expanding 累积窗口：从分区第一行到当前行
type Expanding struct {
	t target
}

var _ WindowSource = (*Expanding)(nil)

func newExpanding(t target, opts []Option) (*Expanding, error) {
	const verb = "expanding"
	p := newParams(opts)
	if err := p.check(verb, "min_periods", "axis", "method"); err != nil {
		return nil, err
	}
	if err := minPeriods(verb, p); err != nil {
		return nil, err
	}
	if v, ok := p.axis(); !ok {
		return nil, types.NewNotImplementedError(
			`The expanding function is only supported for axis=0 or axis="index", but got: axis=%s`, echo(v))
	}
	if err := unsupported(verb, p, "method"); err != nil {
		return nil, err
	}
	return &Expanding{t: t}, nil
}

func minPeriods(verb string, p *params) error {
	v, ok := p.get("min_periods")
	if !ok || v == nil {
		return nil
	}
	if n, ok := integral(v); ok && n == 1 {
		return nil
	}
	return types.NewNotImplementedError("The %s function is only supported for min_periods=1, but got: min_periods=%s", verb, echo(v))
}

// unsupported rejects parameters that must be left unset
func unsupported(verb string, p *params, names ...string) error {
	for _, name := range names {
		if v, ok := p.get(name); ok && v != nil {
			return types.NewNotImplementedError(
				"The %s function does not support the '%s' parameter, but got: %s=%s", verb, name, name, echo(v))
		}
	}
	return nil
}

func (e *Expanding) Base() *BaseFrame          { return e.t.base }
func (e *Expanding) GroupingKeys() []string    { return e.t.partitions() }
func (e *Expanding) SelectedColumns() []string { return copyNames(e.t.selection) }

func (e *Expanding) ConstructWindow(sortColumns []string) (*window.Window, error) {
	return window.New(e.t.partitions(), sortAscending(sortColumns), window.CumulativeFrame()), nil
}

// Agg aggregates every row up to the current one
func (e *Expanding) Agg(spec interface{}, opts ...Option) (*BaseFrame, error) {
	return WindowAggregate(e, spec, opts...)
}

func (e *Expanding) Aggregate(spec interface{}, opts ...Option) (*BaseFrame, error) {
	return e.Agg(spec, opts...)
}

func (e *Expanding) Sum() (*BaseFrame, error)   { return e.Agg("sum") }
func (e *Expanding) Mean() (*BaseFrame, error)  { return e.Agg("mean") }
func (e *Expanding) Min() (*BaseFrame, error)   { return e.Agg("min") }
func (e *Expanding) Max() (*BaseFrame, error)   { return e.Agg("max") }
func (e *Expanding) Count() (*BaseFrame, error) { return e.Agg("count") }

// Rolling 固定行数的滑动窗口，包含当前行
type Rolling struct {
	t    target
	size int64
}

var _ WindowSource = (*Rolling)(nil)

func newRolling(t target, size interface{}, opts []Option) (*Rolling, error) {
	const verb = "rolling"
	n, ok := integral(size)
	if !ok || n < 1 {
		return nil, types.NewValueError("The 'window' argument of the rolling function must be a positive integer, but got: window=%s", echo(size))
	}
	p := newParams(opts)
	if err := p.check(verb, "min_periods", "center", "win_type", "on", "axis", "closed", "method"); err != nil {
		return nil, err
	}
	if err := minPeriods(verb, p); err != nil {
		return nil, err
	}
	if v, ok := p.get("center"); ok && v != false {
		return nil, types.NewNotImplementedError("The rolling function is only supported for center=False, but got: center=%s", echo(v))
	}
	if v, ok := p.axis(); !ok {
		return nil, types.NewNotImplementedError(
			`The rolling function is only supported for axis=0 or axis="index", but got: axis=%s`, echo(v))
	}
	if err := unsupported(verb, p, "win_type", "on", "closed", "method"); err != nil {
		return nil, err
	}
	return &Rolling{t: t, size: n}, nil
}

func (r *Rolling) Base() *BaseFrame          { return r.t.base }
func (r *Rolling) GroupingKeys() []string    { return r.t.partitions() }
func (r *Rolling) SelectedColumns() []string { return copyNames(r.t.selection) }

// Size is the number of rows in each window
func (r *Rolling) Size() int64 { return r.size }

func (r *Rolling) ConstructWindow(sortColumns []string) (*window.Window, error) {
	start := window.CurrentRowBound()
	if r.size > 1 {
		start = window.PrecedingBound(r.size - 1)
	}
	end := window.CurrentRowBound()
	frame, err := window.NewFrame(window.Rows, start, &end)
	if err != nil {
		return nil, err
	}
	return window.New(r.t.partitions(), sortAscending(sortColumns), frame), nil
}

// Agg aggregates the current row and the size-1 rows before it
func (r *Rolling) Agg(spec interface{}, opts ...Option) (*BaseFrame, error) {
	return WindowAggregate(r, spec, opts...)
}

func (r *Rolling) Aggregate(spec interface{}, opts ...Option) (*BaseFrame, error) {
	return r.Agg(spec, opts...)
}

func (r *Rolling) Sum() (*BaseFrame, error)   { return r.Agg("sum") }
func (r *Rolling) Mean() (*BaseFrame, error)  { return r.Agg("mean") }
func (r *Rolling) Min() (*BaseFrame, error)   { return r.Agg("min") }
func (r *Rolling) Max() (*BaseFrame, error)   { return r.Agg("max") }
func (r *Rolling) Count() (*BaseFrame, error) { return r.Agg("count") }

// checkAggregateOptions 聚合函数只接受 axis
func checkAggregateOptions(opts []Option) error {
	p := newParams(opts)
	if err := p.check("aggregate", "axis"); err != nil {
		return err
	}
	if v, ok := p.axis(); !ok {
		return types.NewNotImplementedError("The 'axis' parameter of the aggregate function must be 0 or 'index', but got: %v", v)
	}
	if len(p.args) > 0 || len(p.kwargs) > 0 {
		return types.NewNotImplementedError(
			"AggregateFunction currently does not support additional positional or keyword arguments. Please remove extra *args/**kwargs.")
	}
	return nil
}

type windowAggregateFunction struct {
	source WindowSource
	target target
	aggs   []aggregation
	cols   []types.Column
}

// WindowAggregate applies spec over the window of src. Every output column
// is named by its alias, grouping keys are not part of the output.
func WindowAggregate(src WindowSource, spec interface{}, opts ...Option) (*BaseFrame, error) {
	if err := checkAggregateOptions(opts); err != nil {
		return nil, err
	}
	t := sourceTarget(src)
	if _, err := src.ConstructWindow([]string{types.DefaultNaming().WindowColumn}); err != nil {
		return nil, err
	}
	aggs, cols, err := buildAggregations(t, spec)
	if err != nil {
		return nil, err
	}
	log().Debug("validated window aggregate with %d output columns", len(cols))
	return newFrame(&windowAggregateFunction{source: src, target: t, aggs: aggs, cols: cols}), nil
}

func (f *windowAggregateFunction) columns() []types.Column {
	return f.cols
}

func (f *windowAggregateFunction) toSQL(cfg *types.Config) (*rsql.QuerySpecification, error) {
	base, err := f.target.base.node.toSQL(cfg)
	if err != nil {
		return nil, err
	}
	q, err := withZeroColumn(base, cfg, cfg.Naming.WindowColumn)
	if err != nil {
		return nil, err
	}
	w, err := f.source.ConstructWindow([]string{cfg.Naming.WindowColumn})
	if err != nil {
		return nil, err
	}
	items := make([]rsql.SelectItem, 0, len(f.aggs))
	for _, a := range f.aggs {
		e, err := windowed(a.result, q, w, cfg)
		if err != nil {
			return nil, err
		}
		items = append(items, &rsql.SingleColumn{Alias: cfg.Quote(a.alias), Expression: e})
	}
	q.Select.SelectItems = items
	return q, nil
}

func (f *windowAggregateFunction) toPure(cfg *types.Config) (string, error) {
	base, err := f.target.base.node.toPure(cfg)
	if err != nil {
		return "", err
	}
	w, err := f.source.ConstructWindow([]string{cfg.Naming.WindowColumn})
	if err != nil {
		return "", err
	}
	items := make([]string, len(f.aggs))
	aliases := make([]string, len(f.aggs))
	for i, a := range f.aggs {
		if items[i], err = a.pure(cfg, a.alias+cfg.Naming.WindowSuffix, partialVar, windowVar, rowVar); err != nil {
			return "", err
		}
		aliases[i] = a.alias
	}
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString(zeroExtend(cfg, cfg.Naming.WindowColumn))
	sb.WriteString(cfg.Separator(1, false) + "->extend(" + w.ToPure() + ", " + columnList(cfg, items, true) + ")")
	sb.WriteString(project(cfg, aliases, cfg.Naming.WindowSuffix, true))
	return sb.String(), nil
}

func copyNames(names []string) []string {
	if names == nil {
		return nil
	}
	return append([]string(nil), names...)
}
