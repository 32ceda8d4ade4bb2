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
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/rulego/framesql/rsql"
	"github.com/rulego/framesql/types"
)

// Literal lifts a Go constant into a symbolic value. Primitives pass through.
func Literal(v interface{}) (Primitive, error) {
	switch x := v.(type) {
	case Primitive:
		return x, nil
	case bool:
		return &literal{typ: types.TypeBoolean, sql: &rsql.BooleanLiteral{Value: x}, pure: cast.ToString(x)}, nil
	case string:
		return &literal{
			typ:  types.TypeString,
			sql:  &rsql.StringLiteral{Value: x},
			pure: "'" + strings.ReplaceAll(x, "'", `\'`) + "'",
		}, nil
	case decimal.Decimal:
		return decimalLiteral(x), nil
	case float32, float64:
		return decimalLiteral(decimal.NewFromFloat(cast.ToFloat64(x))), nil
	}
	i, err := cast.ToInt64E(v)
	if err != nil || v == nil {
		return nil, types.NewTypeError("Cannot use %v (type: %T) as a literal value", v, v)
	}
	return &literal{typ: types.TypeInteger, sql: &rsql.IntegerLiteral{Value: i}, pure: cast.ToString(i)}, nil
}

func decimalLiteral(d decimal.Decimal) Primitive {
	return &literal{typ: types.TypeFloat, sql: &rsql.DecimalLiteral{Value: d}, pure: rsql.FormatDecimal(d)}
}

type literal struct {
	typ  types.PrimitiveType
	sql  rsql.Expression
	pure string
}

func (l *literal) Type() types.PrimitiveType { return l.typ }

func (l *literal) ToSQL(*SQLContext) (rsql.Expression, error) { return l.sql, nil }

func (l *literal) ToPure(*types.Config) (string, error) { return l.pure, nil }
