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

package window

import (
	"fmt"
	"strings"

	"github.com/rulego/framesql/pure"
	"github.com/rulego/framesql/rsql"
	"github.com/rulego/framesql/types"
)

// SortDirection 排序方向
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// NullOrdering 空值位置，NullsDefault 交给目标引擎决定
type NullOrdering int

const (
	NullsDefault NullOrdering = iota
	NullsFirst
	NullsLast
)

// SortInfo 一个窗口排序键。Column 指当前查询层已投影的列
type SortInfo struct {
	Column    string
	Direction SortDirection
	Nulls     NullOrdering
}

// Asc orders by column ascending
func Asc(column string) SortInfo {
	return SortInfo{Column: column, Direction: Ascending}
}

// Desc orders by column descending
func Desc(column string) SortInfo {
	return SortInfo{Column: column, Direction: Descending}
}

func (s SortInfo) toSQL(q *rsql.QuerySpecification, cfg *types.Config) (*rsql.SortItem, error) {
	key, err := rsql.FindColumnExpression(q, cfg.Quote(s.Column))
	if err != nil {
		return nil, types.NewInternalError(err)
	}
	item := &rsql.SortItem{SortKey: key, Ordering: rsql.Ascending}
	if s.Direction == Descending {
		item.Ordering = rsql.Descending
	}
	switch s.Nulls {
	case NullsFirst:
		item.NullOrdering = rsql.NullsFirst
	case NullsLast:
		item.NullOrdering = rsql.NullsLast
	}
	return item, nil
}

func (s SortInfo) toPure() string {
	fn := "ascending"
	if s.Direction == Descending {
		fn = "descending"
	}
	return fn + "(" + pure.ColumnSpec(s.Column) + ")"
}

// Window 分区、排序与可选的帧。构造后不可修改
type Window struct {
	partitionBy []string
	orderBy     []SortInfo
	frame       *Frame
}

// New builds a window; nil or empty slices mean no clause
func New(partitionBy []string, orderBy []SortInfo, frame *Frame) *Window {
	return &Window{
		partitionBy: append([]string(nil), partitionBy...),
		orderBy:     append([]SortInfo(nil), orderBy...),
		frame:       frame,
	}
}

func (w *Window) PartitionBy() []string {
	return append([]string(nil), w.partitionBy...)
}

func (w *Window) OrderBy() []SortInfo {
	return append([]SortInfo(nil), w.orderBy...)
}

func (w *Window) Frame() *Frame {
	return w.frame
}

// ToSQL renders the OVER clause against query level q. Partition and sort
// columns are bound to the expressions q projects under their aliases.
func (w *Window) ToSQL(q *rsql.QuerySpecification, cfg *types.Config) (*rsql.Window, error) {
	node := &rsql.Window{}
	for _, name := range w.partitionBy {
		e, err := rsql.FindColumnExpression(q, cfg.Quote(name))
		if err != nil {
			return nil, types.NewInternalError(err)
		}
		node.PartitionBy = append(node.PartitionBy, e)
	}
	for _, s := range w.orderBy {
		item, err := s.toSQL(q, cfg)
		if err != nil {
			return nil, err
		}
		node.OrderBy = append(node.OrderBy, item)
	}
	if w.frame != nil {
		node.Frame = w.frame.toSQL()
	}
	return node, nil
}

// ToPure renders over(~[partitions], [sorts], frame). The partition and
// frame segments are left out when absent.
func (w *Window) ToPure() string {
	var parts []string
	if len(w.partitionBy) > 0 {
		parts = append(parts, pure.ColumnSpecList(w.partitionBy))
	}
	sorts := make([]string, len(w.orderBy))
	for i, s := range w.orderBy {
		sorts[i] = s.toPure()
	}
	parts = append(parts, "["+strings.Join(sorts, ", ")+"]")
	if w.frame != nil {
		parts = append(parts, w.frame.toPure())
	}
	return "over(" + strings.Join(parts, ", ") + ")"
}

func (w *Window) String() string {
	return fmt.Sprintf("Window(partitionBy=%v, orderBy=%v, frame=%v)", w.partitionBy, w.orderBy, w.frame)
}
