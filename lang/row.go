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

package lang

import (
	"fmt"
	"strings"

	"github.com/rulego/framesql/pure"
	"github.com/rulego/framesql/rsql"
	"github.com/rulego/framesql/types"
)

// Row 行句柄，对应 Pure 中的 $r 以及 SQL 中绑定到名称 r 的查询层
type Row struct {
	name    string
	columns []types.Column
}

// NewRow creates a row handle over the columns of a frame
func NewRow(name string, columns []types.Column) *Row {
	return &Row{name: name, columns: types.CopyColumns(columns)}
}

func (r *Row) Name() string {
	return r.name
}

// Column projects a column of the frame
func (r *Row) Column(name string) (*ColumnRef, error) {
	c, ok := types.FindColumn(r.columns, name)
	if !ok {
		return nil, types.NewValueError("Column - '%s' doesn't exist in the current frame. Current frame columns: [%s]",
			name, strings.Join(types.ColumnNames(r.columns), ", "))
	}
	return &ColumnRef{row: r.name, column: c}, nil
}

// ColumnRef 某行变量上的一列
type ColumnRef struct {
	row    string
	column types.Column
}

func (c *ColumnRef) Type() types.PrimitiveType { return c.column.Type }

func (c *ColumnRef) Name() string { return c.column.Name }

func (c *ColumnRef) ToSQL(ctx *SQLContext) (rsql.Expression, error) {
	q, err := ctx.Query(c.row)
	if err != nil {
		return nil, err
	}
	e, err := rsql.FindColumnExpression(q, ctx.Config.Quote(c.column.Name))
	if err != nil {
		return nil, types.NewInternalError(err)
	}
	return e, nil
}

func (c *ColumnRef) ToPure(*types.Config) (string, error) {
	return pure.ColumnAccess(c.row, c.column.Name), nil
}

func (*ColumnRef) readsColumn() {}

// WindowRef 窗口句柄 $w，仅用于生成 Pure 文本
type WindowRef struct {
	name string
}

func NewWindowRef(name string) *WindowRef {
	return &WindowRef{name: name}
}

func (w *WindowRef) Name() string { return w.name }

// PartialFrame 部分帧句柄 $p，提供偏移与排名函数
type PartialFrame struct {
	name string
}

func NewPartialFrame(name string) *PartialFrame {
	return &PartialFrame{name: name}
}

func (p *PartialFrame) Name() string { return p.name }

// Lag returns the row n rows before r within its window
func (p *PartialFrame) Lag(r *Row, n int) (*OffsetRow, error) {
	return p.offset(r, "lag", n)
}

// Lead returns the row n rows after r within its window
func (p *PartialFrame) Lead(r *Row, n int) (*OffsetRow, error) {
	return p.offset(r, "lead", n)
}

func (p *PartialFrame) offset(r *Row, fn string, n int) (*OffsetRow, error) {
	if n < 1 {
		return nil, types.NewValueError("The %s offset must be a positive integer, but got: %d", fn, n)
	}
	return &OffsetRow{partial: p, row: r, fn: fn, offset: n}, nil
}

// RowNumber numbers the rows of the current partition
func (p *PartialFrame) RowNumber(r *Row) Primitive {
	return &rankCall{sqlName: "row_number", pureName: "rowNumber", partial: p, row: r, typ: types.TypeInteger}
}

func (p *PartialFrame) Rank(w *WindowRef, r *Row) Primitive {
	return &rankCall{sqlName: "rank", pureName: "rank", partial: p, window: w, row: r, typ: types.TypeInteger}
}

func (p *PartialFrame) DenseRank(w *WindowRef, r *Row) Primitive {
	return &rankCall{sqlName: "dense_rank", pureName: "denseRank", partial: p, window: w, row: r, typ: types.TypeInteger}
}

func (p *PartialFrame) PercentRank(w *WindowRef, r *Row) Primitive {
	return &rankCall{sqlName: "percent_rank", pureName: "percentRank", partial: p, window: w, row: r, typ: types.TypeFloat}
}

// Aggregate evaluates op over the window. The SQL call carries no window,
// the caller attaches it.
func (p *PartialFrame) Aggregate(op AggregateOp, w *WindowRef, column Primitive) (Primitive, error) {
	t, err := op.ResultType(column.Type())
	if err != nil {
		return nil, err
	}
	return &windowAggregate{op: op, partial: p, window: w, column: column, typ: t}, nil
}

func (p *PartialFrame) Sum(w *WindowRef, column Primitive) (Primitive, error) {
	return p.Aggregate(OpSum, w, column)
}

func (p *PartialFrame) Mean(w *WindowRef, column Primitive) (Primitive, error) {
	return p.Aggregate(OpAverage, w, column)
}

func (p *PartialFrame) Min(w *WindowRef, column Primitive) (Primitive, error) {
	return p.Aggregate(OpMin, w, column)
}

func (p *PartialFrame) Max(w *WindowRef, column Primitive) (Primitive, error) {
	return p.Aggregate(OpMax, w, column)
}

func (p *PartialFrame) Count(w *WindowRef, column Primitive) (Primitive, error) {
	return p.Aggregate(OpCount, w, column)
}

// OffsetRow 由 lag/lead 得到的相对行
type OffsetRow struct {
	partial *PartialFrame
	row     *Row
	fn      string
	offset  int
}

// Column projects a column of the offset row
func (o *OffsetRow) Column(name string) (*OffsetColumn, error) {
	ref, err := o.row.Column(name)
	if err != nil {
		return nil, err
	}
	return &OffsetColumn{source: o, ref: ref}, nil
}

func (o *OffsetRow) pure() string {
	args := pure.Var(o.row.name)
	if o.offset != 1 {
		args += fmt.Sprintf(", %d", o.offset)
	}
	return pure.Var(o.partial.name) + "->" + o.fn + "(" + args + ")"
}

// OffsetColumn 相对行上的一列：SQL 为 lag(col, n)，Pure 为 $p->lag($r).col
type OffsetColumn struct {
	source *OffsetRow
	ref    *ColumnRef
}

func (c *OffsetColumn) Type() types.PrimitiveType { return c.ref.Type() }

func (c *OffsetColumn) ToSQL(ctx *SQLContext) (rsql.Expression, error) {
	col, err := c.ref.ToSQL(ctx)
	if err != nil {
		return nil, err
	}
	return rsql.NewFunctionCall(c.source.fn, col, &rsql.IntegerLiteral{Value: int64(c.source.offset)}), nil
}

func (c *OffsetColumn) ToPure(*types.Config) (string, error) {
	return c.source.pure() + "." + pure.EscapeColumnName(c.ref.column.Name), nil
}

func (*OffsetColumn) readsColumn() {}

type rankCall struct {
	sqlName  string
	pureName string
	partial  *PartialFrame
	window   *WindowRef
	row      *Row
	typ      types.PrimitiveType
}

func (c *rankCall) Type() types.PrimitiveType { return c.typ }

func (c *rankCall) ToSQL(*SQLContext) (rsql.Expression, error) {
	return rsql.NewFunctionCall(c.sqlName), nil
}

func (c *rankCall) ToPure(*types.Config) (string, error) {
	args := pure.Var(c.row.name)
	if c.window != nil {
		args = pure.Var(c.window.name) + ", " + args
	}
	return pure.Var(c.partial.name) + "->" + c.pureName + "(" + args + ")", nil
}

type windowAggregate struct {
	op      AggregateOp
	partial *PartialFrame
	window  *WindowRef
	column  Primitive
	typ     types.PrimitiveType
}

func (a *windowAggregate) Type() types.PrimitiveType { return a.typ }

func (a *windowAggregate) ToSQL(ctx *SQLContext) (rsql.Expression, error) {
	col, err := a.column.ToSQL(ctx)
	if err != nil {
		return nil, err
	}
	return rsql.NewFunctionCall(a.op.SQLName(), col), nil
}

func (a *windowAggregate) ToPure(cfg *types.Config) (string, error) {
	col, err := a.column.ToPure(cfg)
	if err != nil {
		return "", err
	}
	return pure.Var(a.partial.name) + "->" + a.op.PureWindowName() + "(" + pure.Var(a.window.name) + ", " + col + ")", nil
}
