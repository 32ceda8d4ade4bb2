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
	"fmt"

	"github.com/expr-lang/expr/vm"

	"github.com/rulego/framesql/lang"
)

// Kind 函数规格的种类
type Kind int

const (
	// KindKeyword 聚合关键字，如 "sum"、"mean"
	KindKeyword Kind = iota + 1
	// KindLibrary 数值库中的通用函数，按函数名解析
	KindLibrary
	// KindNamed 具名的自定义函数
	KindNamed
	// KindLambda 匿名的自定义函数
	KindLambda
	// KindExpression 表达式字符串形式的自定义函数
	KindExpression
)

func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindLibrary:
		return "library"
	case KindNamed:
		return "named"
	case KindLambda:
		return "lambda"
	case KindExpression:
		return "expression"
	default:
		return "unknown"
	}
}

// CollectionFunc computes an aggregate over a collection of column values
type CollectionFunc func(c *lang.Collection) (lang.Primitive, error)

// Func 一个聚合函数规格
type Func struct {
	kind    Kind
	name    string
	fn      CollectionFunc
	program *vm.Program
}

// Keyword refers to an aggregation by keyword, case-insensitively
func Keyword(name string) Func {
	return Func{kind: KindKeyword, name: name}
}

// Library refers to a numeric library function such as nansum or amax
func Library(name string) Func {
	return Func{kind: KindLibrary, name: name}
}

// Named wraps a custom function under a name. A name that is a registered
// keyword resolves to that keyword's aggregation.
func Named(name string, fn CollectionFunc) Func {
	return Func{kind: KindNamed, name: name, fn: fn}
}

// Lambda wraps an anonymous custom function
func Lambda(fn CollectionFunc) Func {
	return Func{kind: KindLambda, fn: fn}
}

func (f Func) Kind() Kind { return f.kind }

// Name is the name used in generated aliases, empty for anonymous functions
func (f Func) Name() string { return f.name }

// IsAnonymous reports whether aliases use the lambda_<k> form
func (f Func) IsAnonymous() bool {
	return f.kind == KindLambda || f.kind == KindExpression || f.name == ""
}

func (f Func) String() string {
	switch f.kind {
	case KindKeyword:
		return fmt.Sprintf("'%s'", f.name)
	case KindExpression:
		return fmt.Sprintf("expression(%s)", f.name)
	case KindLambda:
		return "<lambda>"
	default:
		return fmt.Sprintf("%s(%s)", f.kind, f.name)
	}
}

// asFunc converts a function-like value. ok is false for anything else.
func asFunc(v interface{}) (Func, bool) {
	switch x := v.(type) {
	case Func:
		return x, x.kind != 0
	case *Func:
		if x == nil {
			return Func{}, false
		}
		return *x, x.kind != 0
	case string:
		return Keyword(x), true
	case CollectionFunc:
		return Lambda(x), x != nil
	case func(*lang.Collection) (lang.Primitive, error):
		return Lambda(x), x != nil
	case func(*lang.Collection) lang.Primitive:
		if x == nil {
			return Func{}, false
		}
		return Lambda(func(c *lang.Collection) (lang.Primitive, error) { return x(c), nil }), true
	case func(*lang.Collection) interface{}:
		if x == nil {
			return Func{}, false
		}
		return Lambda(func(c *lang.Collection) (lang.Primitive, error) {
			r := x(c)
			if p, ok := r.(lang.Primitive); ok {
				return p, nil
			}
			return nil, invalidResult(r)
		}), true
	}
	return Func{}, false
}
