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

/*
Package framesql 将 pandas 风格的数据帧操作编译为 SQL 查询树与 Pure 程序。

输入帧引用一张物理表，动词在调用时即完成参数校验并返回新的帧；
同一个帧可以反复渲染，结果不变。

# 核心特性

• diff、pct_change、shift - 基于注入的零列排序的 lag/lead 窗口
• expanding、rolling - 累积窗口与固定行数窗口上的聚合
• aggregate、transform、rank - 整表或分组的聚合、广播与排名
• 聚合规格 - 关键字、库函数、自定义函数或 expr 表达式，支持按列映射
• 输入表结构 - 手工声明，或从 Parquet 与 Avro 文件读取

# 入门示例

	s := framesql.New(framesql.WithDiscardLog())

	f, _ := s.Table([]string{"test_schema", "test_table"},
		types.StringColumn("grouping_col"),
		types.IntegerColumn("col1"),
		types.FloatColumn("col2"))

	g, _ := f.GroupBy("grouping_col")
	e, _ := g.Expanding()
	sums, _ := e.Agg(functions.Mapping{
		{Key: "col1", Value: []interface{}{"sum", "max"}},
		{Key: "col2", Value: "mean"},
	})

	out, _ := s.Compile(sums)
	fmt.Println(out.SQL)
	fmt.Println(out.Pure)

# 配置

渲染配置见 types.Config：SQL 方言、是否多行输出、缩进以及内部列的命名约定。
配置也可以从 JSON 读取：

	cfg, err := types.LoadConfig([]byte(`{"dialect": "mysql", "prettySql": false}`))
	s := framesql.New(framesql.WithConfig(cfg))

# 错误

所有校验错误都是 *types.CompileError，按类别用 types.IsNotImplemented、
types.IsTypeError、types.IsValueError 与 types.IsInternal 判断。
*/
package framesql
