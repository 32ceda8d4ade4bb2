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
Package window is the window descriptor of framesql: partition columns,
sort keys with null ordering and an optional frame of two bounds.

A Window is built once per compilation and rendered twice. ToSQL binds every
partition and sort column to the expression the current query level projects
under that alias; ToPure writes the Pure window literal:

	w := window.New([]string{"grp"}, []window.SortInfo{window.Asc("ts")}, window.CumulativeFrame())
	w.ToPure() // over(~[grp], [ascending(~ts)], rows(unbounded(), 0))

Bounds other than the unbounded ones may carry a non-negative offset. Pure
writes preceding offsets negated and bounds without an offset as 0.
*/
package window
