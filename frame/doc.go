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

// Package frame compiles pandas-style operations on relational frames into
// SQL query trees and Pure programs.
//
// A verb validates its arguments when it is called and returns a new frame;
// rendering never changes that frame and can be repeated:
//
//	f := frame.MustTable([]string{"test_schema", "test_table"},
//		types.StringColumn("grouping_col"), types.IntegerColumn("col1"))
//	g, _ := f.GroupBy("grouping_col")
//	e, _ := g.Expanding()
//	sums, _ := e.Agg("sum")
//	sql, _ := sums.SQL(types.DefaultConfig())
//	pure, _ := sums.ToPure(types.DefaultConfig())
//
// Shift, Diff and PctChange order by an injected zero column and project a
// lag or lead of each column. Expanding and Rolling windows aggregate with
// the functions package specifications, as do Aggregate and Transform.
package frame
