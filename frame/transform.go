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

type transformColumn struct {
	column types.Column
	op     lang.AggregateOp
}

// transformFunction 整个分区上的聚合值，逐行广播回原列
type transformFunction struct {
	target  target
	sources []transformColumn
	cols    []types.Column
}

func transform(t target, spec interface{}, opts []Option) (*BaseFrame, error) {
	const verb = "transform"
	p := newParams(opts)
	if err := p.check(verb, "axis"); err != nil {
		return nil, err
	}
	if v, ok := p.axis(); !ok {
		return nil, types.NewNotImplementedError(
			"The 'axis' argument of the %s function must be 0 or 'index', but got: axis=%s", verb, echo(v))
	}
	if err := p.extraKeywords(verb); err != nil {
		return nil, err
	}
	normalized, err := functions.Normalize(spec, t.universe())
	if err != nil {
		return nil, err
	}
	f := &transformFunction{target: t}
	row := lang.NewRow(rowVar, t.base.node.columns())
	for _, ca := range normalized {
		if len(ca.Entries) != 1 {
			return nil, types.NewNotImplementedError(
				"The transform function only supports a single aggregation per column, but got %d for column '%s'",
				len(ca.Entries), ca.Column)
		}
		e := ca.Entries[0]
		op, ok := e.Op()
		if !ok {
			return nil, types.NewNotImplementedError(
				"The transform function only supports aggregation keywords, but got: %s", e.Func)
		}
		ref, err := row.Column(ca.Column)
		if err != nil {
			return nil, err
		}
		value, err := f.value(ref, op)
		if err != nil {
			return nil, err
		}
		col, err := lang.InferColumn(ca.Column, value)
		if err != nil {
			return nil, err
		}
		f.sources = append(f.sources, transformColumn{column: types.NewColumn(ca.Column, ref.Type()), op: op})
		f.cols = append(f.cols, col)
	}
	log().Debug("validated transform over %d columns", len(f.cols))
	return newFrame(f), nil
}

func (f *transformFunction) value(ref *lang.ColumnRef, op lang.AggregateOp) (lang.Primitive, error) {
	return lang.NewPartialFrame(partialVar).Aggregate(op, lang.NewWindowRef(windowVar), ref)
}

func (f *transformFunction) window() *window.Window {
	return window.New(f.target.partitions(), nil, nil)
}

func (f *transformFunction) columns() []types.Column {
	return f.cols
}

func (f *transformFunction) eachValue(fn func(s transformColumn, value lang.Primitive) error) error {
	row := lang.NewRow(rowVar, f.target.base.node.columns())
	for _, s := range f.sources {
		ref, err := row.Column(s.column.Name)
		if err != nil {
			return err
		}
		value, err := f.value(ref, s.op)
		if err != nil {
			return err
		}
		if err := fn(s, value); err != nil {
			return err
		}
	}
	return nil
}

func (f *transformFunction) toSQL(cfg *types.Config) (*rsql.QuerySpecification, error) {
	base, err := f.target.base.node.toSQL(cfg)
	if err != nil {
		return nil, err
	}
	q, err := subQuery(base, cfg)
	if err != nil {
		return nil, err
	}
	w := f.window()
	items := make([]rsql.SelectItem, 0, len(f.sources))
	err = f.eachValue(func(s transformColumn, value lang.Primitive) error {
		e, err := windowed(value, q, w, cfg)
		if err != nil {
			return err
		}
		items = append(items, &rsql.SingleColumn{Alias: cfg.Quote(s.column.Name), Expression: e})
		return nil
	})
	if err != nil {
		return nil, err
	}
	q.Select.SelectItems = items
	return q, nil
}

func (f *transformFunction) toPure(cfg *types.Config) (string, error) {
	base, err := f.target.base.node.toPure(cfg)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(base)
	over := f.window().ToPure()
	var aliases []string
	err = f.eachValue(func(s transformColumn, value lang.Primitive) error {
		body, err := value.ToPure(cfg)
		if err != nil {
			return err
		}
		sb.WriteString(cfg.Separator(1, false) + "->extend(" + over + ", " +
			pure.ColumnSpec(s.column.Name+cfg.Naming.WindowSuffix) + ":" + pure.Lambda(body, partialVar, windowVar, rowVar) + ")")
		aliases = append(aliases, s.column.Name)
		return nil
	})
	if err != nil {
		return "", err
	}
	sb.WriteString(project(cfg, aliases, cfg.Naming.WindowSuffix, false))
	return sb.String(), nil
}
