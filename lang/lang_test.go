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
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/framesql/rsql"
	"github.com/rulego/framesql/types"
)

var testColumns = []types.Column{
	types.IntegerColumn("col1"),
	types.FloatColumn("col2"),
	types.StringColumn("name"),
	types.DateColumn("day"),
	types.BooleanColumn("flag"),
	types.IntegerColumn("sum(col1)"),
}

// subQuery projects every test column as "root"."<name>"
func subQuery(cfg *types.Config) *rsql.QuerySpecification {
	q := &rsql.QuerySpecification{Select: &rsql.Select{}}
	for _, c := range testColumns {
		q.Select.SelectItems = append(q.Select.SelectItems, &rsql.SingleColumn{
			Alias:      cfg.Quote(c.Name),
			Expression: &rsql.QualifiedNameReference{Name: rsql.NewQualifiedName(cfg.Quote("root"), cfg.Quote(c.Name))},
		})
	}
	return q
}

type renderCase struct {
	name string
	make func(t *testing.T) Primitive
	sql  string
	pure string
	typ  types.PrimitiveType
}

func runRenderCases(t *testing.T, cases []renderCase) {
	cfg := types.DefaultConfig()
	ctx := NewSQLContext(cfg).Bind("r", subQuery(cfg))
	gen := cfg.SQLGenerator()
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.make(t)
			assert.Equal(t, tt.typ, p.Type())

			expr, err := p.ToSQL(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.sql, gen.GenerateNode(expr))

			text, err := p.ToPure(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.pure, text)
		})
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func TestWindowedBuilders(t *testing.T) {
	p := NewPartialFrame("p")
	w := NewWindowRef("w")
	r := NewRow("r", testColumns)

	runRenderCases(t, []renderCase{
		{
			name: "column",
			make: func(t *testing.T) Primitive { return must(r.Column("col1")) },
			sql:  `"root"."col1"`, pure: "$r.col1", typ: types.TypeInteger,
		},
		{
			name: "escaped column",
			make: func(t *testing.T) Primitive { return must(r.Column("sum(col1)")) },
			sql:  `"root"."sum(col1)"`, pure: "$r.'sum(col1)'", typ: types.TypeInteger,
		},
		{
			name: "lag",
			make: func(t *testing.T) Primitive {
				return must(must(p.Lag(r, 1)).Column("col1"))
			},
			sql: `lag("root"."col1", 1)`, pure: "$p->lag($r).col1", typ: types.TypeInteger,
		},
		{
			name: "lead by two",
			make: func(t *testing.T) Primitive {
				return must(must(p.Lead(r, 2)).Column("col2"))
			},
			sql: `lead("root"."col2", 2)`, pure: "$p->lead($r, 2).col2", typ: types.TypeFloat,
		},
		{
			name: "row number",
			make: func(t *testing.T) Primitive { return p.RowNumber(r) },
			sql:  "row_number()", pure: "$p->rowNumber($r)", typ: types.TypeInteger,
		},
		{
			name: "rank",
			make: func(t *testing.T) Primitive { return p.Rank(w, r) },
			sql:  "rank()", pure: "$p->rank($w, $r)", typ: types.TypeInteger,
		},
		{
			name: "dense rank",
			make: func(t *testing.T) Primitive { return p.DenseRank(w, r) },
			sql:  "dense_rank()", pure: "$p->denseRank($w, $r)", typ: types.TypeInteger,
		},
		{
			name: "percent rank",
			make: func(t *testing.T) Primitive { return p.PercentRank(w, r) },
			sql:  "percent_rank()", pure: "$p->percentRank($w, $r)", typ: types.TypeFloat,
		},
		{
			name: "windowed sum maps to plus",
			make: func(t *testing.T) Primitive { return must(p.Sum(w, must(r.Column("col1")))) },
			sql:  `SUM("root"."col1")`, pure: "$p->plus($w, $r.col1)", typ: types.TypeInteger,
		},
		{
			name: "windowed mean",
			make: func(t *testing.T) Primitive { return must(p.Mean(w, must(r.Column("col1")))) },
			sql:  `AVG("root"."col1")`, pure: "$p->average($w, $r.col1)", typ: types.TypeFloat,
		},
		{
			name: "windowed std dev",
			make: func(t *testing.T) Primitive {
				return must(p.Aggregate(OpStdDevSample, w, must(r.Column("col2"))))
			},
			sql: `STDDEV_SAMP("root"."col2")`, pure: "$p->stdDev($w, $r.col2)", typ: types.TypeFloat,
		},
		{
			name: "windowed min over strings",
			make: func(t *testing.T) Primitive { return must(p.Min(w, must(r.Column("name")))) },
			sql:  `MIN("root"."name")`, pure: "$p->min($w, $r.name)", typ: types.TypeString,
		},
		{
			name: "windowed count",
			make: func(t *testing.T) Primitive { return must(p.Count(w, must(r.Column("day")))) },
			sql:  `COUNT("root"."day")`, pure: "$p->count($w, $r.day)", typ: types.TypeInteger,
		},
		{
			name: "windowed max",
			make: func(t *testing.T) Primitive { return must(p.Max(w, must(r.Column("day")))) },
			sql:  `MAX("root"."day")`, pure: "$p->max($w, $r.day)", typ: types.TypeDate,
		},
	})
}

func TestCollectionAggregates(t *testing.T) {
	r := NewRow("r", testColumns)
	coll := func(t *testing.T, name string) *Collection {
		return NewCollection(must(r.Column(name)), "c")
	}
	runRenderCases(t, []renderCase{
		{
			name: "sum", make: func(t *testing.T) Primitive { return must(coll(t, "col1").Sum()) },
			sql: `SUM("root"."col1")`, pure: "$c->sum()", typ: types.TypeInteger,
		},
		{
			name: "count", make: func(t *testing.T) Primitive { return must(coll(t, "name").Count()) },
			sql: `COUNT("root"."name")`, pure: "$c->count()", typ: types.TypeInteger,
		},
		{
			name: "average", make: func(t *testing.T) Primitive { return must(coll(t, "col1").Mean()) },
			sql: `AVG("root"."col1")`, pure: "$c->average()", typ: types.TypeFloat,
		},
		{
			name: "std dev", make: func(t *testing.T) Primitive { return must(coll(t, "col2").StdDev()) },
			sql: `STDDEV_SAMP("root"."col2")`, pure: "$c->stdDevSample()", typ: types.TypeFloat,
		},
		{
			name: "variance", make: func(t *testing.T) Primitive { return must(coll(t, "col2").Variance()) },
			sql: `VAR_SAMP("root"."col2")`, pure: "$c->varianceSample()", typ: types.TypeFloat,
		},
		{
			name: "min date", make: func(t *testing.T) Primitive { return must(coll(t, "day").Min()) },
			sql: `MIN("root"."day")`, pure: "$c->min()", typ: types.TypeDate,
		},
		{
			name: "max minus min",
			make: func(t *testing.T) Primitive {
				c := coll(t, "col2")
				return must(Minus(must(c.Max()), must(c.Min())))
			},
			sql: `(MAX("root"."col2") - MIN("root"."col2"))`, pure: "$c->max() - $c->min()", typ: types.TypeFloat,
		},
	})
}

func TestAggregateOp_ResultType(t *testing.T) {
	tests := []struct {
		op      AggregateOp
		in      types.PrimitiveType
		out     types.PrimitiveType
		wantErr string
	}{
		{OpSum, types.TypeNumber, types.TypeNumber, ""},
		{OpSum, types.TypeString, 0, "The 'sum' aggregation is not supported for values of type String"},
		{OpAverage, types.TypeInteger, types.TypeFloat, ""},
		{OpVarianceSample, types.TypeDate, 0, "The 'variance_sample' aggregation is not supported for values of type Date"},
		{OpMax, types.TypeBoolean, 0, "The 'max' aggregation is not supported for values of type Boolean"},
		{OpMin, types.TypeStrictDate, types.TypeStrictDate, ""},
		{OpCount, types.TypeBoolean, types.TypeInteger, ""},
	}
	for _, tt := range tests {
		t.Run(tt.op.String()+"/"+tt.in.String(), func(t *testing.T) {
			got, err := tt.op.ResultType(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, types.IsTypeError(err))
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.out, got)
		})
	}

	_, err := AggregateOp(99).ResultType(types.TypeInteger)
	assert.True(t, types.IsInternal(err))
	assert.Len(t, AggregateOps(), 7)
}

func TestArithmetic(t *testing.T) {
	p := NewPartialFrame("p")
	r := NewRow("r", testColumns)

	runRenderCases(t, []renderCase{
		{
			name: "diff",
			make: func(t *testing.T) Primitive {
				cur := must(r.Column("col1"))
				prev := must(must(p.Lag(r, 1)).Column("col1"))
				return must(Minus(cur, prev))
			},
			sql:  `("root"."col1" - lag("root"."col1", 1))`,
			pure: "toOne($r.col1) - toOne($p->lag($r).col1)",
			typ:  types.TypeInteger,
		},
		{
			name: "percent change promotes integer division",
			make: func(t *testing.T) Primitive {
				cur := must(r.Column("col1"))
				prev := must(must(p.Lag(r, 1)).Column("col1"))
				return must(Divide(must(Minus(cur, prev)), prev))
			},
			sql:  `((1.0 * ("root"."col1" - lag("root"."col1", 1))) / lag("root"."col1", 1))`,
			pure: "(toOne($r.col1) - toOne($p->lag($r).col1)) / toOne($p->lag($r).col1)",
			typ:  types.TypeFloat,
		},
		{
			name: "mixed float",
			make: func(t *testing.T) Primitive {
				return must(Times(must(r.Column("col2")), must(Literal(2))))
			},
			sql: `("root"."col2" * 2)`, pure: "toOne($r.col2) * 2", typ: types.TypeFloat,
		},
		{
			name: "number",
			make: func(t *testing.T) Primitive {
				num := &literal{typ: types.TypeNumber, sql: &rsql.IntegerLiteral{Value: 3}, pure: "3"}
				return must(Plus(must(r.Column("col1")), num))
			},
			sql: `("root"."col1" + 3)`, pure: "toOne($r.col1) + 3", typ: types.TypeNumber,
		},
	})

	name := must(r.Column("name"))
	_, err := Minus(name, must(Literal(1)))
	assert.EqualError(t, err, "Arithmetic '-' needs numeric operands, but got: String and Integer")
	_, err = Plus(nil, name)
	assert.True(t, types.IsTypeError(err))
}

func TestLiteral(t *testing.T) {
	cfg := types.DefaultConfig()
	gen := cfg.SQLGenerator()
	tests := []struct {
		in   interface{}
		typ  types.PrimitiveType
		sql  string
		pure string
	}{
		{7, types.TypeInteger, "7", "7"},
		{int64(-2), types.TypeInteger, "-2", "-2"},
		{1.0, types.TypeFloat, "1.0", "1.0"},
		{decimal.RequireFromString("2.25"), types.TypeFloat, "2.25", "2.25"},
		{"it's", types.TypeString, "'it''s'", `'it\'s'`},
		{true, types.TypeBoolean, "true", "true"},
	}
	for _, tt := range tests {
		p, err := Literal(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.typ, p.Type())
		e, err := p.ToSQL(nil)
		require.NoError(t, err)
		assert.Equal(t, tt.sql, gen.GenerateNode(e))
		s, err := p.ToPure(cfg)
		require.NoError(t, err)
		assert.Equal(t, tt.pure, s)
	}

	_, err := Literal(nil)
	assert.True(t, types.IsTypeError(err))
	_, err = Literal(struct{}{})
	assert.EqualError(t, err, "Cannot use {} (type: struct {}) as a literal value")

	same, err := Literal(p0())
	require.NoError(t, err)
	assert.Equal(t, types.TypeInteger, same.Type())
}

func p0() Primitive {
	return &literal{typ: types.TypeInteger, sql: &rsql.IntegerLiteral{}, pure: "0"}
}

func TestRowAndContextErrors(t *testing.T) {
	cfg := types.DefaultConfig()
	r := NewRow("r", testColumns[:2])

	_, err := r.Column("zzz")
	require.Error(t, err)
	assert.True(t, types.IsValueError(err))
	assert.EqualError(t, err, "Column - 'zzz' doesn't exist in the current frame. Current frame columns: [col1, col2]")

	_, err = NewPartialFrame("p").Lag(r, 0)
	assert.EqualError(t, err, "The lag offset must be a positive integer, but got: 0")

	col := must(r.Column("col1"))
	_, err = col.ToSQL(NewSQLContext(cfg))
	assert.True(t, types.IsInternal(err))

	empty := &rsql.QuerySpecification{Select: &rsql.Select{}}
	_, err = col.ToSQL(NewSQLContext(cfg).Bind("r", empty))
	assert.True(t, types.IsInternal(err))
	assert.EqualError(t, err, `Cannot find column: "col1"`)
}

func TestInferColumn(t *testing.T) {
	c, err := InferColumn("total", p0())
	require.NoError(t, err)
	assert.Equal(t, types.IntegerColumn("total"), c)

	_, err = InferColumn("x", nil)
	assert.True(t, types.IsTypeError(err))
	assert.False(t, types.IsInternal(err))

	bad := &literal{typ: types.TypeUnknown}
	_, err = InferColumn("x", bad)
	assert.True(t, types.IsTypeError(err))
	assert.EqualError(t, err, "Could not infer column type for aggregation result type: *lang.literal")
}
