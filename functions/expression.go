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

package functions

import (
	"errors"

	"github.com/expr-lang/expr"

	"github.com/rulego/framesql/lang"
	"github.com/rulego/framesql/types"
)

// Expression compiles a custom aggregation written in the expr language. The
// collection is bound to c and the arithmetic helpers plus, minus, times and
// divide combine results:
//
//	divide(minus(c.Max(), c.Min()), c.Count())
//
// Numeric constants are lifted to literals.
func Expression(source string) (Func, error) {
	program, err := expr.Compile(source, expressionOptions()...)
	if err != nil {
		return Func{}, types.NewValueError("Invalid aggregation expression '%s': %v", source, err)
	}
	return Func{kind: KindExpression, name: source, program: program}, nil
}

// MustExpression is like Expression but panics on error
func MustExpression(source string) Func {
	f, err := Expression(source)
	if err != nil {
		panic(err)
	}
	return f
}

func expressionOptions() []expr.Option {
	return []expr.Option{
		expr.Env(map[string]interface{}{"c": (*lang.Collection)(nil)}),
		expr.Function("plus", arithmetic(lang.Plus)),
		expr.Function("minus", arithmetic(lang.Minus)),
		expr.Function("times", arithmetic(lang.Times)),
		expr.Function("divide", arithmetic(lang.Divide)),
		expr.Function("lit", func(params ...interface{}) (interface{}, error) {
			if len(params) != 1 {
				return nil, types.NewTypeError("lit expects 1 argument, but got %d", len(params))
			}
			return lang.Literal(params[0])
		}),
	}
}

func arithmetic(op func(a, b lang.Primitive) (lang.Primitive, error)) func(params ...interface{}) (interface{}, error) {
	return func(params ...interface{}) (interface{}, error) {
		if len(params) != 2 {
			return nil, types.NewTypeError("Arithmetic helpers expect 2 arguments, but got %d", len(params))
		}
		left, err := lang.Literal(params[0])
		if err != nil {
			return nil, err
		}
		right, err := lang.Literal(params[1])
		if err != nil {
			return nil, err
		}
		return op(left, right)
	}
}

func (f Func) evalExpression(c *lang.Collection) (lang.Primitive, error) {
	out, err := expr.Run(f.program, map[string]interface{}{"c": c})
	if err != nil {
		var ce *types.CompileError
		if errors.As(err, &ce) {
			return nil, ce
		}
		return nil, types.NewValueError("Evaluating aggregation expression '%s' failed: %v", f.name, err)
	}
	p, ok := out.(lang.Primitive)
	if !ok {
		return nil, invalidResult(out)
	}
	return p, nil
}
