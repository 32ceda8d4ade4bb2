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

const diffSQL = `SELECT
    ("root"."col1" - "root"."col1__pylegend_internal_column_name__") AS "col1",
    ("root"."col2" - "root"."col2__pylegend_internal_column_name__") AS "col2"
FROM
    (
        SELECT
            "root".col1 AS "col1",
            "root".col2 AS "col2",
            lag("root"."col1", 1) OVER (ORDER BY "root"."__pylegend_internal_column_name__") AS "col1__pylegend_internal_column_name__",
            lag("root"."col2", 1) OVER (ORDER BY "root"."__pylegend_internal_column_name__") AS "col2__pylegend_internal_column_name__"
        FROM
            (
                SELECT
                    "root".col1 AS "col1",
                    "root".col2 AS "col2",
                    0 AS "__pylegend_internal_column_name__"
                FROM
                    test_schema.test_table AS "root"
            ) AS "root"
    ) AS "root"`

const diffPure = `#Table(test_schema.test_table)#
  ->extend(~__pylegend_internal_column_name__:{r|0})
  ->extend(over([ascending(~__pylegend_internal_column_name__)]), ~col1__pylegend_internal_column_name__:{p,w,r | toOne($r.col1) - toOne($p->lag($r).col1)})
  ->extend(over([ascending(~__pylegend_internal_column_name__)]), ~col2__pylegend_internal_column_name__:{p,w,r | toOne($r.col2) - toOne($p->lag($r).col2)})
  ->project(~[col1:p|$p.col1__pylegend_internal_column_name__, col2:p|$p.col2__pylegend_internal_column_name__])`

func TestDiff(t *testing.T) {
	f := must(testTable().Diff())
	sql, text := render(t, f)
	assert.Equal(t, diffSQL, sql)
	assert.Equal(t, diffPure, text)
	assert.Equal(t, []types.Column{types.IntegerColumn("col1"), types.FloatColumn("col2")}, f.Columns())

	// 重复渲染结果一致
	again, againPure := render(t, f)
	assert.Equal(t, sql, again)
	assert.Equal(t, text, againPure)
}

func TestDiff_Lead(t *testing.T) {
	f := must(testTable().Diff(Periods(-1)))
	sql, text := render(t, f)
	assert.Contains(t, sql,
		`lead("root"."col1", 1) OVER (ORDER BY "root"."__pylegend_internal_column_name__") AS "col1__pylegend_internal_column_name__"`)
	assert.NotContains(t, sql, "lag(")
	assert.Contains(t, text, "{p,w,r | toOne($r.col1) - toOne($p->lead($r).col1)}")
}

func TestDiff_Grouped(t *testing.T) {
	g := must(groupedTable().GroupBy("grouping_col"))
	f := must(g.Diff())
	assert.Equal(t, []string{"col1", "col2"}, f.ColumnNames())

	sql, text := render(t, f)
	assert.Equal(t, `SELECT
    ("root"."col1" - "root"."col1__pylegend_internal_column_name__") AS "col1",
    ("root"."col2" - "root"."col2__pylegend_internal_column_name__") AS "col2"
FROM
    (
        SELECT
            "root".grouping_col AS "grouping_col",
            "root".col1 AS "col1",
            "root".col2 AS "col2",
            lag("root"."col1", 1) OVER (PARTITION BY "root"."grouping_col" ORDER BY "root"."__pylegend_internal_column_name__") AS "col1__pylegend_internal_column_name__",
            lag("root"."col2", 1) OVER (PARTITION BY "root"."grouping_col" ORDER BY "root"."__pylegend_internal_column_name__") AS "col2__pylegend_internal_column_name__"
        FROM
            (
                SELECT
                    "root".grouping_col AS "grouping_col",
                    "root".col1 AS "col1",
                    "root".col2 AS "col2",
                    0 AS "__pylegend_internal_column_name__"
                FROM
                    test_schema.test_table AS "root"
            ) AS "root"
    ) AS "root"`, sql)
	assert.Contains(t, text,
		"->extend(over(~[grouping_col], [ascending(~__pylegend_internal_column_name__)]), ~col1__pylegend_internal_column_name__:")

	selected := must(must(g.Select("col2")).Diff())
	assert.Equal(t, []string{"col2"}, selected.ColumnNames())
}

// 中间层直接沿用表扫描的列引用，无法沿用时按别名引用子查询
func TestDiff_PassThroughColumns(t *testing.T) {
	mixed := MustTable(testPath, types.IntegerColumn("Col1"), types.FloatColumn("col2"))
	sql, _ := render(t, must(mixed.Diff()))
	assert.Contains(t, sql, "\n            \"root\".\"Col1\" AS \"Col1\",")
	assert.Contains(t, sql, "\n            \"root\".col2 AS \"col2\",")
	assert.Contains(t, sql, "\n                    \"root\".Col1 AS \"Col1\",")

	sums := MustTable(testPath, types.IntegerColumn("grp"), types.IntegerColumn("col1"))
	agg := must(must(sums.GroupBy("grp")).Aggregate("sum"))
	sql, _ = render(t, must(agg.Diff()))
	assert.Contains(t, sql, "\n            \"root\".\"grp\" AS \"grp\",")
	assert.Contains(t, sql, "\n            \"root\".\"col1\" AS \"col1\",")
}

func TestPctChange(t *testing.T) {
	f := must(testTable().PctChange())
	assert.Equal(t, []types.Column{types.FloatColumn("col1"), types.FloatColumn("col2")}, f.Columns())

	sql, text := render(t, f)
	assert.Contains(t, sql,
		`((1.0 * ("root"."col1" - "root"."col1__pylegend_internal_column_name__")) / "root"."col1__pylegend_internal_column_name__") AS "col1"`)
	assert.Contains(t, text,
		"~col1__pylegend_internal_column_name__:{p,w,r | (toOne($r.col1) - toOne($p->lag($r).col1)) / toOne($p->lag($r).col1)}")

	_, err := testTable().PctChange(Freq(nil), FillMethod(nil), Limit(nil))
	assert.NoError(t, err)
}

func TestShift(t *testing.T) {
	f := must(MustTable(testPath, types.StringColumn("name"), types.DateColumn("day")).Shift())
	assert.Equal(t, []types.Column{types.StringColumn("name"), types.DateColumn("day")}, f.Columns())

	sql, text := render(t, f)
	assert.Contains(t, sql, `"root"."name__pylegend_internal_column_name__" AS "name",`)
	assert.Contains(t, text, "~name__pylegend_internal_column_name__:{p,w,r | $p->lag($r).name}")
}

func TestOffset_CompactAndNaming(t *testing.T) {
	f := must(testTable().Diff())
	cfg := types.CompactConfig()
	text, err := f.ToPure(cfg)
	require.NoError(t, err)
	assert.Equal(t, "#Table(test_schema.test_table)#"+
		"->extend(~__pylegend_internal_column_name__:{r|0})"+
		"->extend(over([ascending(~__pylegend_internal_column_name__)]), ~col1__pylegend_internal_column_name__:{p,w,r | toOne($r.col1) - toOne($p->lag($r).col1)})"+
		"->extend(over([ascending(~__pylegend_internal_column_name__)]), ~col2__pylegend_internal_column_name__:{p,w,r | toOne($r.col2) - toOne($p->lag($r).col2)})"+
		"->project(~[col1:p|$p.col1__pylegend_internal_column_name__, col2:p|$p.col2__pylegend_internal_column_name__])", text)

	sql, err := f.SQL(cfg)
	require.NoError(t, err)
	assert.Contains(t, sql, `FROM (SELECT "root".col1 AS "col1", "root".col2 AS "col2", lag(`)

	cfg.Naming.OffsetColumn = "zero"
	cfg.Naming.OffsetSuffix = "_prev"
	text, err = f.ToPure(cfg)
	require.NoError(t, err)
	assert.Contains(t, text, "->extend(~zero:{r|0})")
	assert.Contains(t, text, "->extend(over([ascending(~zero)]), ~col1_prev:")
	assert.Contains(t, text, "col2:p|$p.col2_prev]")
	sql, err = f.SQL(cfg)
	require.NoError(t, err)
	assert.Contains(t, sql, `("root"."col1" - "root"."col1_prev") AS "col1"`)
	assert.Contains(t, sql, `0 AS "zero"`)
}

func TestOffsetErrors(t *testing.T) {
	mixed := MustTable(testPath, types.IntegerColumn("col1"), types.StringColumn("name"), types.DateColumn("day"))
	tests := []struct {
		name  string
		call  func() (*BaseFrame, error)
		check func(error) bool
		err   string
	}{
		{
			name:  "diff axis",
			call:  func() (*BaseFrame, error) { return testTable().Diff(Axis(1)) },
			check: types.IsNotImplemented,
			err:   "The 'axis' argument of the diff function must be 0 or 'index', but got: axis=1",
		},
		{
			name:  "diff periods",
			call:  func() (*BaseFrame, error) { return testTable().Diff(Periods(0)) },
			check: types.IsNotImplemented,
			err:   "The 'periods' argument of the diff function is only supported for values [1, -1], but got: periods=0",
		},
		{
			name:  "pct_change axis",
			call:  func() (*BaseFrame, error) { return testTable().PctChange(Axis("columns")) },
			check: types.IsNotImplemented,
			err:   "The 'axis' argument of the pct_change function must be 0 or 'index', but got: axis='columns'",
		},
		{
			name:  "pct_change periods",
			call:  func() (*BaseFrame, error) { return testTable().PctChange(Periods(2)) },
			check: types.IsNotImplemented,
			err:   "The 'periods' argument of the pct_change function is only supported for values [1, -1], but got: periods=2",
		},
		{
			name:  "shift axis",
			call:  func() (*BaseFrame, error) { return testTable().Shift(Axis(1)) },
			check: types.IsNotImplemented,
			err:   "The 'axis' argument of the shift function must be 0 or 'index', but got: axis=1",
		},
		{
			name:  "shift periods",
			call:  func() (*BaseFrame, error) { return testTable().Shift(Periods("1")) },
			check: types.IsNotImplemented,
			err:   "The 'periods' argument of the shift function is only supported for values [1, -1], but got: periods='1'",
		},
		{
			name:  "pct_change freq",
			call:  func() (*BaseFrame, error) { return testTable().PctChange(Periods(1), Freq("D")) },
			check: types.IsNotImplemented,
			err:   "The 'freq' argument of the pct_change function is not supported, but got: freq='D'",
		},
		{
			name:  "pct_change fill_method",
			call:  func() (*BaseFrame, error) { return testTable().PctChange(FillMethod("pad")) },
			check: types.IsNotImplemented,
			err:   "The 'fill_method' argument of the pct_change function is not supported, but got: fill_method='pad'",
		},
		{
			name: "pct_change kwargs",
			call: func() (*BaseFrame, error) {
				return testTable().PctChange(Periods(1), Kwarg("fill_value", 0), Kwarg("suffix", "_sfx"))
			},
			check: types.IsNotImplemented,
			err:   "Passing additional keyword arguments to the pct_change function is not supported, but got: fill_value=0, suffix='_sfx'",
		},
		{
			name:  "diff unknown option",
			call:  func() (*BaseFrame, error) { return testTable().Diff(Freq("D")) },
			check: types.IsTypeError,
			err:   "The diff function got unexpected arguments: freq",
		},
		{
			name:  "diff non numeric",
			call:  func() (*BaseFrame, error) { return mixed.Diff() },
			check: types.IsTypeError,
			err:   "The diff function is only supported for numeric columns (Integer, Float, Number), but got: name (String), day (Date)",
		},
		{
			name: "diff grouping keys only",
			call: func() (*BaseFrame, error) {
				g, err := testTable().GroupBy("col1", "col2")
				if err != nil {
					return nil, err
				}
				return g.Diff()
			},
			check: types.IsValueError,
			err:   "The diff function has no columns to apply to",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.call()
			assert.Nil(t, f)
			assert.EqualError(t, err, tt.err)
			assert.True(t, tt.check(err))
		})
	}
}
