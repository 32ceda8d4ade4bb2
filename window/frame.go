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

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/rulego/framesql/rsql"
	"github.com/rulego/framesql/types"
)

// FrameMode 帧模式
type FrameMode int

const (
	Rows FrameMode = iota
	Range
)

func (m FrameMode) String() string {
	if m == Range {
		return "RANGE"
	}
	return "ROWS"
}

// BoundKind 帧边界类型
type BoundKind int

const (
	UnboundedPreceding BoundKind = iota
	Preceding
	CurrentRow
	Following
	UnboundedFollowing
)

func (k BoundKind) String() string {
	switch k {
	case UnboundedPreceding:
		return "UNBOUNDED PRECEDING"
	case Preceding:
		return "PRECEDING"
	case CurrentRow:
		return "CURRENT ROW"
	case Following:
		return "FOLLOWING"
	case UnboundedFollowing:
		return "UNBOUNDED FOLLOWING"
	default:
		return "UNKNOWN"
	}
}

func (k BoundKind) unbounded() bool {
	return k == UnboundedPreceding || k == UnboundedFollowing
}

// FrameBound 帧边界。无界边界不携带偏移量
type FrameBound struct {
	kind     BoundKind
	value    decimal.Decimal
	hasValue bool
}

// NewFrameBound validates a bound. value may be nil, any integer or float,
// a numeric string or a decimal.Decimal; it must not be negative.
func NewFrameBound(kind BoundKind, value interface{}) (FrameBound, error) {
	b := FrameBound{kind: kind}
	if value == nil {
		return b, nil
	}
	if kind.unbounded() {
		return b, types.NewValueError("A %s frame bound does not take an offset, but got: %v", kind, value)
	}
	d, err := toDecimal(value)
	if err != nil {
		return b, types.NewTypeError("Frame bound offset must be numeric, but got: %v (type: %T)", value, value)
	}
	if d.IsNegative() {
		return b, types.NewValueError("Frame bound offset must not be negative, but got: %s", d)
	}
	b.value = d
	b.hasValue = true
	return b, nil
}

func toDecimal(v interface{}) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case float32, float64:
		f, err := cast.ToFloat64E(x)
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromFloat(f), nil
	case string:
		return decimal.NewFromString(x)
	}
	i, err := cast.ToInt64E(v)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(i), nil
}

func UnboundedPrecedingBound() FrameBound { return FrameBound{kind: UnboundedPreceding} }
func UnboundedFollowingBound() FrameBound { return FrameBound{kind: UnboundedFollowing} }
func CurrentRowBound() FrameBound         { return FrameBound{kind: CurrentRow} }

// PrecedingBound is n rows (or range units) before the current row
func PrecedingBound(n int64) FrameBound {
	return FrameBound{kind: Preceding, value: decimal.NewFromInt(n), hasValue: true}
}

// FollowingBound is n rows (or range units) after the current row
func FollowingBound(n int64) FrameBound {
	return FrameBound{kind: Following, value: decimal.NewFromInt(n), hasValue: true}
}

func (b FrameBound) Kind() BoundKind {
	return b.kind
}

// Value returns the offset and whether one was given
func (b FrameBound) Value() (decimal.Decimal, bool) {
	return b.value, b.hasValue
}

func (b FrameBound) toSQL() *rsql.FrameBound {
	node := &rsql.FrameBound{}
	switch b.kind {
	case UnboundedPreceding:
		node.Type = rsql.BoundUnboundedPreceding
	case Preceding:
		node.Type = rsql.BoundPreceding
	case CurrentRow:
		node.Type = rsql.BoundCurrentRow
	case Following:
		node.Type = rsql.BoundFollowing
	case UnboundedFollowing:
		node.Type = rsql.BoundUnboundedFollowing
	}
	if b.hasValue {
		if b.value.IsInteger() {
			node.Value = &rsql.IntegerLiteral{Value: b.value.IntPart()}
		} else {
			node.Value = &rsql.DecimalLiteral{Value: b.value}
		}
	}
	return node
}

// toPure writes unbounded() for unbounded bounds and a signed offset for the
// others; bounds without an offset are 0. SQL has no offset for CURRENT ROW,
// Pure keeps it.
func (b FrameBound) toPure() string {
	if b.kind.unbounded() {
		return "unbounded()"
	}
	if !b.hasValue || b.value.IsZero() {
		return "0"
	}
	if b.kind == Preceding {
		return b.value.Neg().String()
	}
	return b.value.String()
}

func (b FrameBound) String() string {
	if b.hasValue && b.kind != CurrentRow {
		return fmt.Sprintf("%s %s", b.value, b.kind)
	}
	return b.kind.String()
}

// Frame 窗口帧；End 为空时 SQL 只写起点，终点是当前行
type Frame struct {
	mode  FrameMode
	start FrameBound
	end   *FrameBound
}

// NewFrame validates bound order and, for ROWS frames, integral offsets
func NewFrame(mode FrameMode, start FrameBound, end *FrameBound) (*Frame, error) {
	if start.kind == UnboundedFollowing {
		return nil, types.NewValueError("A window frame cannot start at UNBOUNDED FOLLOWING")
	}
	if end != nil && end.kind == UnboundedPreceding {
		return nil, types.NewValueError("A window frame cannot end at UNBOUNDED PRECEDING")
	}
	if end != nil && end.kind < start.kind {
		return nil, types.NewValueError("A window frame cannot end (%s) before it starts (%s)", end, start)
	}
	if mode == Rows {
		for _, b := range []*FrameBound{&start, end} {
			if b != nil && b.hasValue && !b.value.IsInteger() {
				return nil, types.NewValueError("A ROWS frame needs integral offsets, but got: %s", b.value)
			}
		}
	}
	f := &Frame{mode: mode, start: start}
	if end != nil {
		e := *end
		f.end = &e
	}
	return f, nil
}

// CumulativeFrame is ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW
func CumulativeFrame() *Frame {
	end := CurrentRowBound()
	return &Frame{mode: Rows, start: UnboundedPrecedingBound(), end: &end}
}

func (f *Frame) Mode() FrameMode {
	return f.mode
}

func (f *Frame) Start() FrameBound {
	return f.start
}

func (f *Frame) End() *FrameBound {
	return f.end
}

func (f *Frame) toSQL() *rsql.WindowFrame {
	node := &rsql.WindowFrame{Mode: rsql.FrameRows, Start: f.start.toSQL()}
	if f.mode == Range {
		node.Mode = rsql.FrameRange
	}
	if f.end != nil {
		node.End = f.end.toSQL()
	}
	return node
}

func (f *Frame) toPure() string {
	fn := "rows"
	if f.mode == Range {
		fn = "_range"
	}
	if f.end == nil {
		return fn + "(" + f.start.toPure() + ")"
	}
	return fn + "(" + f.start.toPure() + ", " + f.end.toPure() + ")"
}

func (f *Frame) String() string {
	if f.end == nil {
		return fmt.Sprintf("%s %s", f.mode, f.start)
	}
	return fmt.Sprintf("%s BETWEEN %s AND %s", f.mode, f.start, *f.end)
}
