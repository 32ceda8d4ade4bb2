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
	"github.com/rulego/framesql/rsql"
	"github.com/rulego/framesql/types"
)

// Primitive 带类型标签的符号值：一列，或尚未绑定到具体行变量的计算值。
// 类型在构造时确定，渲染对相同输入总是产生相同输出
type Primitive interface {
	Type() types.PrimitiveType
	ToSQL(ctx *SQLContext) (rsql.Expression, error)
	ToPure(cfg *types.Config) (string, error)
}

// SQLContext binds frame variable names (r, p, ...) to the query level their
// columns are read from.
type SQLContext struct {
	Config  *types.Config
	queries map[string]*rsql.QuerySpecification
}

func NewSQLContext(cfg *types.Config) *SQLContext {
	return &SQLContext{Config: cfg, queries: make(map[string]*rsql.QuerySpecification)}
}

// Bind makes variable name read from q
func (c *SQLContext) Bind(name string, q *rsql.QuerySpecification) *SQLContext {
	c.queries[name] = q
	return c
}

// Query returns the level bound to name
func (c *SQLContext) Query(name string) (*rsql.QuerySpecification, error) {
	q, ok := c.queries[name]
	if !ok {
		return nil, types.NewInternalErrorf("No query is bound to frame variable '%s'", name)
	}
	return q, nil
}

// InferColumn derives the declared type of a computed column from the tag of
// its value. A value without a known tag is a TypeError.
func InferColumn(name string, p Primitive) (types.Column, error) {
	if p == nil || !p.Type().IsValid() {
		return types.Column{}, types.NewTypeError(
			"Could not infer column type for aggregation result type: %T", p)
	}
	return types.NewColumn(name, p.Type()), nil
}

// columnLike marks values that read a possibly empty column and need toOne
// when used as Pure operands.
type columnLike interface {
	Primitive
	readsColumn()
}
