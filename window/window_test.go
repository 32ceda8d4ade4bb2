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
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/framesql/rsql"
	"github.com/rulego/framesql/types"
)

func levelQuery(columns ...string) *rsql.QuerySpecification {
	q := &rsql.QuerySpecification{Select: &rsql.Select{}}
	for _, c := range columns {
		q.Select.SelectItems = append(q.Select.SelectItems, &rsql.SingleColumn{
			Alias:      `"` + c + `"`,
			Expression: &rsql.QualifiedNameReference{Name: rsql.NewQualifiedName(`"root"`, `"`+c+`"`)},
		})
	}
	return q
}

func TestWindow_ToPure(t *testing.T) {
	rows3, err := NewFrameBound(Preceding, 3)
	require.NoError(t, err)
	following, err := NewFrameBound(Following, "1.5")
	require.NoError(t, err)
	rangeFrame, err := NewFrame(Range, rows3, &following)
	require.NoError(t, err)

	tests := []struct {
		name     string
		window   *Window
		expected string
	}{
		{
			name:     "order only",
			window:   New(nil, []SortInfo{Asc("__z__")}, nil),
			expected: "over([ascending(~__z__)])",
		},
		{
			name:     "empty",
			window:   New(nil, nil, nil),
			expected: "over([])",
		},
		{
			name:     "partitions and cumulative frame",
			window:   New([]string{"grouping_col", "b c"}, []SortInfo{Asc("z"), Desc("v")}, CumulativeFrame()),
			expected: "over(~[grouping_col, 'b c'], [ascending(~z), descending(~v)], rows(unbounded(), 0))",
		},
		{
			name:     "partitions without sorts",
			window:   New([]string{"g"}, nil, CumulativeFrame()),
			expected: "over(~[g], [], rows(unbounded(), 0))",
		},
		{
			name:     "range with offsets",
			window:   New(nil, []SortInfo{Asc("z")}, rangeFrame),
			expected: "over([ascending(~z)], _range(-3, 1.5))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.window.ToPure())
		})
	}
}

func TestWindow_ToSQL(t *testing.T) {
	cfg := types.DefaultConfig()
	q := levelQuery("col1", "g", "z")
	gen := rsql.NewGenerator(nil)

	sort := SortInfo{Column: "z", Direction: Descending, Nulls: NullsLast}
	w := New([]string{"g"}, []SortInfo{sort, {Column: "col1", Nulls: NullsFirst}}, CumulativeFrame())
	node, err := w.ToSQL(q, cfg)
	require.NoError(t, err)
	assert.Equal(t,
		`(PARTITION BY "root"."g" ORDER BY "root"."z" DESC NULLS LAST, "root"."col1" NULLS FIRST ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)`,
		gen.GenerateNode(node))

	end := CurrentRowBound()
	frame, err := NewFrame(Rows, PrecedingBound(2), &end)
	require.NoError(t, err)
	node, err = New(nil, []SortInfo{Asc("z")}, frame).ToSQL(q, cfg)
	require.NoError(t, err)
	assert.Equal(t, `(ORDER BY "root"."z" ROWS BETWEEN 2 PRECEDING AND CURRENT ROW)`, gen.GenerateNode(node))
	assert.Equal(t, "over([ascending(~z)], rows(-2, 0))", New(nil, []SortInfo{Asc("z")}, frame).ToPure())
}

func TestWindow_ToSQLMissingColumn(t *testing.T) {
	cfg := types.DefaultConfig()
	q := levelQuery("col1")

	_, err := New([]string{"g"}, nil, nil).ToSQL(q, cfg)
	require.Error(t, err)
	assert.True(t, types.IsInternal(err))
	assert.EqualError(t, err, `Cannot find column: "g"`)

	_, err = New(nil, []SortInfo{Asc("zero")}, nil).ToSQL(q, cfg)
	assert.True(t, types.IsInternal(err))
}

func TestWindow_Immutable(t *testing.T) {
	parts := []string{"a"}
	w := New(parts, nil, nil)
	parts[0] = "b"
	assert.Equal(t, []string{"a"}, w.PartitionBy())

	got := w.PartitionBy()
	got[0] = "c"
	assert.Equal(t, []string{"a"}, w.PartitionBy())
}

func TestFrameBound_Validation(t *testing.T) {
	tests := []struct {
		name  string
		kind  BoundKind
		value interface{}
		check func(error) bool
	}{
		{"unbounded with value", UnboundedPreceding, 1, types.IsValueError},
		{"negative", Preceding, -1, types.IsValueError},
		{"not numeric", Following, []int{1}, types.IsTypeError},
		{"bad string", Following, "abc", types.IsTypeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFrameBound(tt.kind, tt.value)
			require.Error(t, err)
			assert.True(t, tt.check(err))
		})
	}

	b, err := NewFrameBound(Following, decimal.RequireFromString("2"))
	require.NoError(t, err)
	v, ok := b.Value()
	assert.True(t, ok)
	assert.Equal(t, "2", v.String())

	b, err = NewFrameBound(Preceding, int32(4))
	require.NoError(t, err)
	assert.Equal(t, "4 PRECEDING", b.String())

	// CURRENT ROW 也可以带偏移量，只体现在 Pure 中
	current, err := NewFrameBound(CurrentRow, 1)
	require.NoError(t, err)
	v, ok = current.Value()
	assert.True(t, ok)
	assert.Equal(t, "1", v.String())
	assert.Equal(t, "CURRENT ROW", current.String())
	assert.Equal(t, "1", current.toPure())
	f, err := NewFrame(Rows, UnboundedPrecedingBound(), &current)
	require.NoError(t, err)
	assert.Equal(t, "rows(unbounded(), 1)", f.toPure())
	assert.Equal(t, "(ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)",
		rsql.NewGenerator(nil).GenerateNode(&rsql.Window{Frame: f.toSQL()}))
}

func TestNewFrame_Validation(t *testing.T) {
	unboundedPreceding := UnboundedPrecedingBound()
	half, err := NewFrameBound(Following, 0.5)
	require.NoError(t, err)

	_, err = NewFrame(Rows, UnboundedFollowingBound(), nil)
	assert.True(t, types.IsValueError(err))

	_, err = NewFrame(Rows, CurrentRowBound(), &unboundedPreceding)
	assert.True(t, types.IsValueError(err))

	_, err = NewFrame(Rows, FollowingBound(1), &unboundedPreceding)
	assert.Error(t, err)

	_, err = NewFrame(Rows, CurrentRowBound(), &half)
	assert.EqualError(t, err, "A ROWS frame needs integral offsets, but got: 0.5")

	f, err := NewFrame(Range, CurrentRowBound(), &half)
	require.NoError(t, err)
	assert.Equal(t, "RANGE BETWEEN CURRENT ROW AND 0.5 FOLLOWING", f.String())
	assert.Equal(t, "_range(0, 0.5)", f.toPure())

	single, err := NewFrame(Rows, PrecedingBound(3), nil)
	require.NoError(t, err)
	assert.Equal(t, "rows(-3)", single.toPure())
	assert.Equal(t, "(ROWS 3 PRECEDING)", rsql.NewGenerator(nil).GenerateNode(&rsql.Window{Frame: single.toSQL()}))
}
