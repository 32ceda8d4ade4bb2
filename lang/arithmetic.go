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
	"github.com/shopspring/decimal"

	"github.com/rulego/framesql/rsql"
	"github.com/rulego/framesql/types"
)

// binary 数值二元运算
type binary struct {
	op    rsql.ArithmeticType
	left  Primitive
	right Primitive
	typ   types.PrimitiveType
}

func Plus(a, b Primitive) (Primitive, error)  { return newBinary(rsql.ArithmeticAdd, a, b) }
func Minus(a, b Primitive) (Primitive, error) { return newBinary(rsql.ArithmeticSubtract, a, b) }
func Times(a, b Primitive) (Primitive, error) { return newBinary(rsql.ArithmeticMultiply, a, b) }

// Divide always yields a Float
func Divide(a, b Primitive) (Primitive, error) { return newBinary(rsql.ArithmeticDivide, a, b) }

func newBinary(op rsql.ArithmeticType, a, b Primitive) (Primitive, error) {
	if a == nil || b == nil {
		return nil, types.NewTypeError("Arithmetic '%s' needs two operands", op.Symbol())
	}
	if !a.Type().IsNumeric() || !b.Type().IsNumeric() {
		return nil, types.NewTypeError("Arithmetic '%s' needs numeric operands, but got: %s and %s",
			op.Symbol(), a.Type(), b.Type())
	}
	return &binary{op: op, left: a, right: b, typ: arithmeticType(op, a.Type(), b.Type())}, nil
}

func arithmeticType(op rsql.ArithmeticType, a, b types.PrimitiveType) types.PrimitiveType {
	switch {
	case op == rsql.ArithmeticDivide:
		return types.TypeFloat
	case a == types.TypeInteger && b == types.TypeInteger:
		return types.TypeInteger
	case a == types.TypeNumber || b == types.TypeNumber:
		return types.TypeNumber
	default:
		return types.TypeFloat
	}
}

func (b *binary) Type() types.PrimitiveType { return b.typ }

func (b *binary) ToSQL(ctx *SQLContext) (rsql.Expression, error) {
	left, err := b.left.ToSQL(ctx)
	if err != nil {
		return nil, err
	}
	right, err := b.right.ToSQL(ctx)
	if err != nil {
		return nil, err
	}
	// 整数相除先提升为小数
	if b.op == rsql.ArithmeticDivide && b.left.Type() == types.TypeInteger && b.right.Type() == types.TypeInteger {
		left = &rsql.ArithmeticExpression{
			Type:  rsql.ArithmeticMultiply,
			Left:  &rsql.DecimalLiteral{Value: decimal.NewFromInt(1)},
			Right: left,
		}
	}
	return &rsql.ArithmeticExpression{Type: b.op, Left: left, Right: right}, nil
}

func (b *binary) ToPure(cfg *types.Config) (string, error) {
	left, err := pureOperand(b.left, cfg)
	if err != nil {
		return "", err
	}
	right, err := pureOperand(b.right, cfg)
	if err != nil {
		return "", err
	}
	return left + " " + b.op.Symbol() + " " + right, nil
}

func pureOperand(p Primitive, cfg *types.Config) (string, error) {
	s, err := p.ToPure(cfg)
	if err != nil {
		return "", err
	}
	switch p.(type) {
	case columnLike:
		return "toOne(" + s + ")", nil
	case *binary:
		return "(" + s + ")", nil
	}
	return s, nil
}
