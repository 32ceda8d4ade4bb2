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
	"github.com/rulego/framesql/pure"
	"github.com/rulego/framesql/rsql"
	"github.com/rulego/framesql/types"
)

// AggregateOp 规范化后的聚合运算
type AggregateOp int

const (
	OpAverage AggregateOp = iota + 1
	OpSum
	OpMin
	OpMax
	OpStdDevSample
	OpVarianceSample
	OpCount
)

type opInfo struct {
	name string
	sql  string
	// collection 是 $c->x() 中的名称，window 是 $p->x($w, ...) 中的名称
	collection string
	window     string
}

var opInfos = map[AggregateOp]opInfo{
	OpAverage:        {name: "average", sql: "AVG", collection: "average", window: "average"},
	OpSum:            {name: "sum", sql: "SUM", collection: "sum", window: "plus"},
	OpMin:            {name: "min", sql: "MIN", collection: "min", window: "min"},
	OpMax:            {name: "max", sql: "MAX", collection: "max", window: "max"},
	OpStdDevSample:   {name: "std_dev_sample", sql: "STDDEV_SAMP", collection: "stdDevSample", window: "stdDev"},
	OpVarianceSample: {name: "variance_sample", sql: "VAR_SAMP", collection: "varianceSample", window: "variance"},
	OpCount:          {name: "count", sql: "COUNT", collection: "count", window: "count"},
}

// AggregateOps lists every canonical operation
func AggregateOps() []AggregateOp {
	return []AggregateOp{OpAverage, OpSum, OpMin, OpMax, OpStdDevSample, OpVarianceSample, OpCount}
}

func (o AggregateOp) String() string {
	if info, ok := opInfos[o]; ok {
		return info.name
	}
	return "unknown"
}

func (o AggregateOp) SQLName() string { return opInfos[o].sql }

// PureName is the collection function name, as in $c->sum()
func (o AggregateOp) PureName() string { return opInfos[o].collection }

// PureWindowName is the partial frame function name, as in $p->plus($w, $r.col)
func (o AggregateOp) PureWindowName() string { return opInfos[o].window }

// ResultType returns the type op yields over values of type in
func (o AggregateOp) ResultType(in types.PrimitiveType) (types.PrimitiveType, error) {
	switch o {
	case OpCount:
		return types.TypeInteger, nil
	case OpSum:
		if in.IsNumeric() {
			return in, nil
		}
	case OpAverage, OpStdDevSample, OpVarianceSample:
		if in.IsNumeric() {
			return types.TypeFloat, nil
		}
	case OpMin, OpMax:
		if in.IsValid() && in != types.TypeBoolean {
			return in, nil
		}
	default:
		return types.TypeUnknown, types.NewInternalErrorf("Unknown aggregate operation: %d", int(o))
	}
	return types.TypeUnknown, types.NewTypeError("The '%s' aggregation is not supported for values of type %s", o, in)
}

// Collection 一组待聚合的值。SQL 读取 source，Pure 通过变量 $name 引用
type Collection struct {
	source Primitive
	name   string
}

// NewCollection collects the values of source under Pure variable name
func NewCollection(source Primitive, name string) *Collection {
	return &Collection{source: source, name: name}
}

// Type is the element type
func (c *Collection) Type() types.PrimitiveType { return c.source.Type() }

func (c *Collection) Aggregate(op AggregateOp) (Primitive, error) {
	t, err := op.ResultType(c.source.Type())
	if err != nil {
		return nil, err
	}
	return &collectionAggregate{op: op, collection: c, typ: t}, nil
}

func (c *Collection) Sum() (Primitive, error)      { return c.Aggregate(OpSum) }
func (c *Collection) Count() (Primitive, error)    { return c.Aggregate(OpCount) }
func (c *Collection) Min() (Primitive, error)      { return c.Aggregate(OpMin) }
func (c *Collection) Max() (Primitive, error)      { return c.Aggregate(OpMax) }
func (c *Collection) Average() (Primitive, error)  { return c.Aggregate(OpAverage) }
func (c *Collection) Mean() (Primitive, error)     { return c.Aggregate(OpAverage) }
func (c *Collection) StdDev() (Primitive, error)   { return c.Aggregate(OpStdDevSample) }
func (c *Collection) Variance() (Primitive, error) { return c.Aggregate(OpVarianceSample) }

type collectionAggregate struct {
	op         AggregateOp
	collection *Collection
	typ        types.PrimitiveType
}

func (a *collectionAggregate) Type() types.PrimitiveType { return a.typ }

func (a *collectionAggregate) ToSQL(ctx *SQLContext) (rsql.Expression, error) {
	arg, err := a.collection.source.ToSQL(ctx)
	if err != nil {
		return nil, err
	}
	return rsql.NewFunctionCall(a.op.SQLName(), arg), nil
}

func (a *collectionAggregate) ToPure(*types.Config) (string, error) {
	return pure.Var(a.collection.name) + "->" + a.op.PureName() + "()", nil
}
