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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/framesql/types"
)

var testPath = []string{"test_schema", "test_table"}

func testTable() *BaseFrame {
	return MustTable(testPath, types.IntegerColumn("col1"), types.FloatColumn("col2"))
}

func groupedTable() *BaseFrame {
	return MustTable(testPath, types.StringColumn("grouping_col"), types.IntegerColumn("col1"), types.FloatColumn("col2"))
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// render returns the pretty SQL and Pure text of f
func render(t *testing.T, f *BaseFrame) (string, string) {
	t.Helper()
	cfg := types.DefaultConfig()
	sql, err := f.SQL(cfg)
	require.NoError(t, err)
	text, err := f.ToPure(cfg)
	require.NoError(t, err)
	return sql, text
}

func TestNewTable(t *testing.T) {
	f := testTable()
	sql, text := render(t, f)
	assert.Equal(t, `SELECT
    "root".col1 AS "col1",
    "root".col2 AS "col2"
FROM
    test_schema.test_table AS "root"`, sql)
	assert.Equal(t, "#Table(test_schema.test_table)#", text)
	assert.Equal(t, []string{"col1", "col2"}, f.ColumnNames())

	tests := []struct {
		name    string
		path    []string
		columns []types.Column
		err     string
	}{
		{"no path", nil, []types.Column{types.IntegerColumn("a")}, "A table path needs at least one element"},
		{"blank path", []string{"s", " "}, []types.Column{types.IntegerColumn("a")}, "Table path elements must not be empty, but got: [s,  ]"},
		{"no columns", testPath, nil, "Table test_schema.test_table needs at least one column"},
		{"empty name", testPath, []types.Column{types.IntegerColumn("")}, "Column names must not be empty"},
		{"bad type", testPath, []types.Column{{Name: "a"}}, "Column 'a' has an unknown type"},
		{"duplicate", testPath, []types.Column{types.IntegerColumn("a"), types.StringColumn("a")}, "Duplicate column name: 'a'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.path, tt.columns...)
			assert.EqualError(t, err, tt.err)
			assert.True(t, types.IsValueError(err))
		})
	}
	assert.Panics(t, func() { MustTable(nil) })
}

func TestGroupBy(t *testing.T) {
	f := groupedTable()
	g := must(f.GroupBy("grouping_col"))
	assert.Equal(t, []string{"grouping_col"}, g.Keys())
	assert.Nil(t, g.Selection())
	assert.Same(t, f, g.Base())
	assert.Equal(t, []string{"col1", "col2"}, types.ColumnNames(g.target().sourceColumns()))

	s := must(g.Select("col2"))
	assert.Equal(t, []string{"col2"}, s.Selection())
	assert.Equal(t, []string{"col2"}, types.ColumnNames(s.target().sourceColumns()))
	assert.Nil(t, g.Selection(), "Select returns a new frame")

	_, err := f.GroupBy()
	assert.True(t, types.IsValueError(err))
	_, err = f.GroupBy("missing")
	assert.EqualError(t, err,
		"Column - 'missing' in groupby doesn't exist in the current frame. Current frame columns: [grouping_col col1 col2]")
	_, err = f.GroupBy("col1", "col1")
	assert.EqualError(t, err, "Column 'col1' is given more than once in groupby")
	_, err = g.Select()
	assert.True(t, types.IsValueError(err))
	_, err = g.Select("nope")
	assert.True(t, types.IsValueError(err))
}

func TestParams(t *testing.T) {
	p := newParams([]Option{Periods(1), nil, Kwarg("fill_value", 0), Kwarg("suffix", "_sfx")})
	err := p.extraKeywords("pct_change")
	assert.EqualError(t, err,
		"Passing additional keyword arguments to the pct_change function is not supported, but got: fill_value=0, suffix='_sfx'")
	assert.True(t, types.IsNotImplemented(err))

	err = newParams([]Option{Args(1, "x")}).extraKeywords("diff")
	assert.EqualError(t, err, "Passing additional positional arguments to the diff function is not supported, but got: 1, 'x'")

	err = newParams([]Option{Freq("D"), Limit(1)}).check("diff", "periods")
	assert.EqualError(t, err, "The diff function got unexpected arguments: freq, limit")
	assert.True(t, types.IsTypeError(err))

	axisTests := []struct {
		value interface{}
		ok    bool
	}{
		{0, true}, {int64(0), true}, {0.0, true}, {"index", true},
		{1, false}, {"columns", false}, {0.5, false}, {false, false}, {nil, false},
	}
	for _, tt := range axisTests {
		_, ok := newParams([]Option{Axis(tt.value)}).axis()
		assert.Equal(t, tt.ok, ok, "axis=%v", tt.value)
	}

	periods, err := newParams(nil).periods("shift")
	require.NoError(t, err)
	assert.Equal(t, 1, periods)
	periods, err = newParams([]Option{Periods(-1.0)}).periods("shift")
	require.NoError(t, err)
	assert.Equal(t, -1, periods)

	assert.Equal(t, "None", echo(nil))
	assert.Equal(t, "True", echo(true))
	assert.Equal(t, "'D'", echo("D"))
	assert.Equal(t, "2.5", echo(2.5))
}
