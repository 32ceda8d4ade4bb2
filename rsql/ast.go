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

// ast.go 定义了编译器输出的查询树节点

package rsql

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Node 是查询树的基础接口，所有节点都通过 Formatter 输出文本
type Node interface {
	Format(f *Formatter)
}

// Expression 标量表达式节点
type Expression interface {
	Node
	expressionNode()
}

// Relation FROM 子句中的关系节点
type Relation interface {
	Node
	relationNode()
}

// SelectItem 选择列表中的一项
type SelectItem interface {
	Node
	selectItemNode()
}

// QuerySpecification 一层 SELECT 查询
type QuerySpecification struct {
	Select  *Select
	From    []Relation
	Where   Expression
	GroupBy []Expression
	Having  Expression
	OrderBy []*SortItem
	Limit   Expression
	Offset  Expression
}

// Select 选择列表，可带 DISTINCT
type Select struct {
	Distinct    bool
	SelectItems []SelectItem
}

// SingleColumn 单列投影。Alias 已按方言引用
type SingleColumn struct {
	Alias      string
	Expression Expression
}

// AllColumns 表示 * 或 prefix.*
type AllColumns struct {
	Prefix string
}

// QualifiedName 多段名称，各段原样输出
type QualifiedName struct {
	Parts []string
}

// NewQualifiedName builds a name from already quoted parts
func NewQualifiedName(parts ...string) QualifiedName {
	return QualifiedName{Parts: parts}
}

func (n QualifiedName) String() string {
	return strings.Join(n.Parts, ".")
}

// Table 物理表
type Table struct {
	Name QualifiedName
}

// AliasedRelation 带别名的关系
type AliasedRelation struct {
	Relation Relation
	Alias    string
}

// TableSubquery 子查询关系
type TableSubquery struct {
	Query *QuerySpecification
}

// QualifiedNameReference 列引用，如 "root"."col1"
type QualifiedNameReference struct {
	Name QualifiedName
}

type IntegerLiteral struct {
	Value int64
}

// DecimalLiteral 精确小数字面量
type DecimalLiteral struct {
	Value decimal.Decimal
}

type StringLiteral struct {
	Value string
}

type BooleanLiteral struct {
	Value bool
}

type NullLiteral struct{}

// ArithmeticType 算术运算符
type ArithmeticType int

const (
	ArithmeticAdd ArithmeticType = iota
	ArithmeticSubtract
	ArithmeticMultiply
	ArithmeticDivide
	ArithmeticModulus
)

// Symbol returns the SQL operator
func (t ArithmeticType) Symbol() string {
	switch t {
	case ArithmeticAdd:
		return "+"
	case ArithmeticSubtract:
		return "-"
	case ArithmeticMultiply:
		return "*"
	case ArithmeticDivide:
		return "/"
	case ArithmeticModulus:
		return "%"
	default:
		return "?"
	}
}

// ArithmeticExpression 二元算术表达式，输出时总是带括号
type ArithmeticExpression struct {
	Type  ArithmeticType
	Left  Expression
	Right Expression
}

// FunctionCall 函数调用，Window 非空时输出 OVER 子句
type FunctionCall struct {
	Name      QualifiedName
	Distinct  bool
	Arguments []Expression
	Window    *Window
}

// NewFunctionCall creates a call of a single-part function name
func NewFunctionCall(name string, args ...Expression) *FunctionCall {
	return &FunctionCall{Name: NewQualifiedName(name), Arguments: args}
}

// WindowExpression 给任意表达式附加窗口
type WindowExpression struct {
	Nested Expression
	Window *Window
}

// Window OVER 子句内容
type Window struct {
	PartitionBy []Expression
	OrderBy     []*SortItem
	Frame       *WindowFrame
}

// FrameMode 窗口帧模式
type FrameMode int

const (
	FrameRows FrameMode = iota
	FrameRange
)

func (m FrameMode) String() string {
	if m == FrameRange {
		return "RANGE"
	}
	return "ROWS"
}

// WindowFrame 窗口帧，End 可为空
type WindowFrame struct {
	Mode  FrameMode
	Start *FrameBound
	End   *FrameBound
}

// FrameBoundType 帧边界类型
type FrameBoundType int

const (
	BoundUnboundedPreceding FrameBoundType = iota
	BoundPreceding
	BoundCurrentRow
	BoundFollowing
	BoundUnboundedFollowing
)

// FrameBound 帧边界，Value 只对 PRECEDING/FOLLOWING 有意义
type FrameBound struct {
	Type  FrameBoundType
	Value Expression
}

// SortOrdering 排序方向
type SortOrdering int

const (
	Ascending SortOrdering = iota
	Descending
)

// NullOrdering 空值排序
type NullOrdering int

const (
	NullsUndefined NullOrdering = iota
	NullsFirst
	NullsLast
)

// SortItem ORDER BY 项
type SortItem struct {
	SortKey      Expression
	Ordering     SortOrdering
	NullOrdering NullOrdering
}

func (*QualifiedNameReference) expressionNode() {}
func (*IntegerLiteral) expressionNode()         {}
func (*DecimalLiteral) expressionNode()         {}
func (*StringLiteral) expressionNode()          {}
func (*BooleanLiteral) expressionNode()         {}
func (*NullLiteral) expressionNode()            {}
func (*ArithmeticExpression) expressionNode()   {}
func (*FunctionCall) expressionNode()           {}
func (*WindowExpression) expressionNode()       {}

func (*Table) relationNode()           {}
func (*AliasedRelation) relationNode() {}
func (*TableSubquery) relationNode()   {}

func (*SingleColumn) selectItemNode() {}
func (*AllColumns) selectItemNode()   {}

// Format 输出一层查询；子句之间的换行与缩进由 Formatter 决定
func (q *QuerySpecification) Format(f *Formatter) {
	q.Select.Format(f)
	if len(q.From) > 0 {
		f.Newline()
		f.WriteString("FROM")
		f.Indented(func() {
			for i, rel := range q.From {
				if i > 0 {
					f.WriteString(",")
				}
				f.Newline()
				rel.Format(f)
			}
		})
	}
	if q.Where != nil {
		f.clause("WHERE", q.Where)
	}
	if len(q.GroupBy) > 0 {
		f.Newline()
		f.WriteString("GROUP BY")
		f.Indented(func() {
			for i, e := range q.GroupBy {
				if i > 0 {
					f.WriteString(",")
				}
				f.Newline()
				e.Format(f)
			}
		})
	}
	if q.Having != nil {
		f.clause("HAVING", q.Having)
	}
	if len(q.OrderBy) > 0 {
		f.Newline()
		f.WriteString("ORDER BY")
		f.Indented(func() {
			for i, item := range q.OrderBy {
				if i > 0 {
					f.WriteString(",")
				}
				f.Newline()
				item.Format(f)
			}
		})
	}
	q.formatPagination(f)
}

func (q *QuerySpecification) formatPagination(f *Formatter) {
	if f.dialect.OffsetFetch {
		if q.Offset == nil && q.Limit == nil {
			return
		}
		f.Newline()
		f.WriteString("OFFSET ")
		if q.Offset != nil {
			q.Offset.Format(f)
		} else {
			f.WriteString("0")
		}
		f.WriteString(" ROWS")
		if q.Limit != nil {
			f.Newline()
			f.WriteString("FETCH NEXT ")
			q.Limit.Format(f)
			f.WriteString(" ROWS ONLY")
		}
		return
	}
	if q.Limit != nil {
		f.Newline()
		f.WriteString("LIMIT ")
		q.Limit.Format(f)
	}
	if q.Offset != nil {
		f.Newline()
		f.WriteString("OFFSET ")
		q.Offset.Format(f)
	}
}

func (s *Select) Format(f *Formatter) {
	f.WriteString("SELECT")
	if s.Distinct {
		f.WriteString(" DISTINCT")
	}
	f.Indented(func() {
		for i, item := range s.SelectItems {
			if i > 0 {
				f.WriteString(",")
			}
			f.Newline()
			item.Format(f)
		}
	})
}

func (c *SingleColumn) Format(f *Formatter) {
	c.Expression.Format(f)
	if c.Alias != "" {
		f.WriteString(" AS ")
		f.WriteString(c.Alias)
	}
}

func (c *AllColumns) Format(f *Formatter) {
	if c.Prefix != "" {
		f.WriteString(c.Prefix)
		f.WriteString(".")
	}
	f.WriteString("*")
}

func (t *Table) Format(f *Formatter) {
	f.WriteString(t.Name.String())
}

func (r *AliasedRelation) Format(f *Formatter) {
	r.Relation.Format(f)
	f.WriteString(" AS ")
	f.WriteString(r.Alias)
}

func (s *TableSubquery) Format(f *Formatter) {
	f.WriteString("(")
	f.Indented(func() {
		f.Softline()
		s.Query.Format(f)
	})
	f.Softline()
	f.WriteString(")")
}

func (r *QualifiedNameReference) Format(f *Formatter) {
	f.WriteString(r.Name.String())
}

func (l *IntegerLiteral) Format(f *Formatter) {
	f.WriteString(strconv.FormatInt(l.Value, 10))
}

func (l *DecimalLiteral) Format(f *Formatter) {
	f.WriteString(FormatDecimal(l.Value))
}

// FormatDecimal keeps one fractional digit for integral values so the
// literal is never read back as an integer.
func FormatDecimal(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.StringFixed(1)
	}
	return d.String()
}

func (l *StringLiteral) Format(f *Formatter) {
	f.WriteString("'")
	f.WriteString(strings.ReplaceAll(l.Value, "'", "''"))
	f.WriteString("'")
}

func (l *BooleanLiteral) Format(f *Formatter) {
	if l.Value {
		f.WriteString("true")
	} else {
		f.WriteString("false")
	}
}

func (*NullLiteral) Format(f *Formatter) {
	f.WriteString("NULL")
}

func (e *ArithmeticExpression) Format(f *Formatter) {
	f.WriteString("(")
	e.Left.Format(f)
	f.WriteString(" ")
	f.WriteString(e.Type.Symbol())
	f.WriteString(" ")
	e.Right.Format(f)
	f.WriteString(")")
}

func (c *FunctionCall) Format(f *Formatter) {
	f.WriteString(c.Name.String())
	f.WriteString("(")
	if c.Distinct {
		f.WriteString("DISTINCT ")
	}
	for i, arg := range c.Arguments {
		if i > 0 {
			f.WriteString(", ")
		}
		arg.Format(f)
	}
	f.WriteString(")")
	if c.Window != nil {
		f.WriteString(" OVER ")
		c.Window.Format(f)
	}
}

func (e *WindowExpression) Format(f *Formatter) {
	e.Nested.Format(f)
	f.WriteString(" OVER ")
	e.Window.Format(f)
}

func (w *Window) Format(f *Formatter) {
	f.WriteString("(")
	written := false
	if len(w.PartitionBy) > 0 {
		f.WriteString("PARTITION BY ")
		for i, p := range w.PartitionBy {
			if i > 0 {
				f.WriteString(", ")
			}
			p.Format(f)
		}
		written = true
	}
	if len(w.OrderBy) > 0 {
		if written {
			f.WriteString(" ")
		}
		f.WriteString("ORDER BY ")
		for i, item := range w.OrderBy {
			if i > 0 {
				f.WriteString(", ")
			}
			item.Format(f)
		}
		written = true
	}
	if w.Frame != nil {
		if written {
			f.WriteString(" ")
		}
		w.Frame.Format(f)
	}
	f.WriteString(")")
}

func (w *WindowFrame) Format(f *Formatter) {
	f.WriteString(w.Mode.String())
	f.WriteString(" ")
	if w.End == nil {
		w.Start.Format(f)
		return
	}
	f.WriteString("BETWEEN ")
	w.Start.Format(f)
	f.WriteString(" AND ")
	w.End.Format(f)
}

func (b *FrameBound) Format(f *Formatter) {
	switch b.Type {
	case BoundUnboundedPreceding:
		f.WriteString("UNBOUNDED PRECEDING")
	case BoundUnboundedFollowing:
		f.WriteString("UNBOUNDED FOLLOWING")
	case BoundCurrentRow:
		f.WriteString("CURRENT ROW")
	case BoundPreceding, BoundFollowing:
		if b.Value != nil {
			b.Value.Format(f)
		} else {
			f.WriteString("0")
		}
		if b.Type == BoundPreceding {
			f.WriteString(" PRECEDING")
		} else {
			f.WriteString(" FOLLOWING")
		}
	}
}

func (s *SortItem) Format(f *Formatter) {
	s.SortKey.Format(f)
	if s.Ordering == Descending {
		f.WriteString(" DESC")
	}
	switch s.NullOrdering {
	case NullsFirst:
		f.WriteString(" NULLS FIRST")
	case NullsLast:
		f.WriteString(" NULLS LAST")
	}
}
