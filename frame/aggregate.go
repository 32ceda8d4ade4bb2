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
)

// aggregateFunction 整表或分组聚合。分组键排在聚合列之前
type aggregateFunction struct {
	target target
	aggs   []aggregation
	cols   []types.Column
}

func aggregate(t target, spec interface{}, opts []Option) (*BaseFrame, error) {
	if err := checkAggregateOptions(opts); err != nil {
		return nil, err
	}
	aggs, aggCols, err := buildAggregations(t, spec)
	if err != nil {
		return nil, err
	}
	cols := make([]types.Column, 0, len(t.grouping)+len(aggCols))
	for _, g := range t.grouping {
		c, ok := types.FindColumn(t.base.node.columns(), g)
		if !ok {
			return nil, types.NewInternalErrorf("Cannot find grouping column: %s", g)
		}
		cols = append(cols, c)
	}
	for _, c := range aggCols {
		if _, clash := types.FindColumn(cols, c.Name); clash {
			return nil, types.NewValueError("Duplicate output column: '%s'", c.Name)
		}
		cols = append(cols, c)
	}
	log().Debug("validated aggregate with %d grouping keys and %d aggregations", len(t.grouping), len(aggs))
	return newFrame(&aggregateFunction{target: t, aggs: aggs, cols: cols}), nil
}

func (f *aggregateFunction) columns() []types.Column {
	return f.cols
}

func (f *aggregateFunction) toSQL(cfg *types.Config) (*rsql.QuerySpecification, error) {
	base, err := f.target.base.node.toSQL(cfg)
	if err != nil {
		return nil, err
	}
	q := rsql.CopyQuery(base)
	if rsql.RequiresSubQuery(base) {
		if q, err = subQuery(base, cfg); err != nil {
			return nil, err
		}
	}
	// 替换投影前先按列血缘求出全部表达式
	keys := make([]types.Column, 0, len(f.target.grouping))
	for _, g := range f.target.grouping {
		keys = append(keys, types.NewColumn(g, types.TypeString))
	}
	items, err := reproject(q, cfg, keys)
	if err != nil {
		return nil, err
	}
	groupBy := make([]rsql.Expression, len(items))
	for i, item := range items {
		groupBy[i] = item.(*rsql.SingleColumn).Expression
	}
	ctx := lang.NewSQLContext(cfg).Bind(rowVar, q)
	for _, a := range f.aggs {
		e, err := a.result.ToSQL(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, &rsql.SingleColumn{Alias: cfg.Quote(a.alias), Expression: e})
	}
	q.Select.SelectItems = items
	if len(groupBy) > 0 {
		q.GroupBy = groupBy
	}
	return q, nil
}

func (f *aggregateFunction) toPure(cfg *types.Config) (string, error) {
	base, err := f.target.base.node.toPure(cfg)
	if err != nil {
		return "", err
	}
	items := make([]string, len(f.aggs))
	for i, a := range f.aggs {
		if items[i], err = a.pure(cfg, a.alias, rowVar); err != nil {
			return "", err
		}
	}
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString(cfg.Separator(1, false))
	if f.target.grouped() {
		sb.WriteString("->groupBy(" + cfg.Separator(2, false) + pure.ColumnSpecList(f.target.grouping) + "," + cfg.Separator(2, true))
	} else {
		sb.WriteString("->aggregate(" + cfg.Separator(2, false))
	}
	sb.WriteString(columnList(cfg, items, false))
	sb.WriteString(cfg.Separator(1, false) + ")")
	return sb.String(), nil
}
