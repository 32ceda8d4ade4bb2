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

package frame

func (f *BaseFrame) target() target {
	return target{base: f}
}

// Shift projects each column of the previous row (periods=1) or the next
// row (periods=-1).
func (f *BaseFrame) Shift(opts ...Option) (*BaseFrame, error) { return shift(f.target(), opts) }

// Diff subtracts the shifted value from the current one
func (f *BaseFrame) Diff(opts ...Option) (*BaseFrame, error) { return diff(f.target(), opts) }

// PctChange is Diff divided by the shifted value
func (f *BaseFrame) PctChange(opts ...Option) (*BaseFrame, error) { return pctChange(f.target(), opts) }

func (f *BaseFrame) Expanding(opts ...Option) (*Expanding, error) { return newExpanding(f.target(), opts) }

// Rolling windows the current row with the size-1 rows before it
func (f *BaseFrame) Rolling(size interface{}, opts ...Option) (*Rolling, error) {
	return newRolling(f.target(), size, opts)
}

// Aggregate collapses the frame to one row per spec output column
func (f *BaseFrame) Aggregate(spec interface{}, opts ...Option) (*BaseFrame, error) {
	return aggregate(f.target(), spec, opts)
}

func (f *BaseFrame) Agg(spec interface{}, opts ...Option) (*BaseFrame, error) {
	return f.Aggregate(spec, opts...)
}

// Rank ranks every column by its own values with Method, Pct, Ascending and
// NaOption. Unlike pandas, method defaults to 'min' ('average' has no window
// function) and na_option defaults to 'bottom': nulls are ranked last instead
// of getting a null rank, and 'keep' is rejected.
func (f *BaseFrame) Rank(opts ...Option) (*BaseFrame, error) { return rank(f.target(), opts) }

// Transform broadcasts a whole-frame aggregate back onto every row
func (f *BaseFrame) Transform(spec interface{}, opts ...Option) (*BaseFrame, error) {
	return transform(f.target(), spec, opts)
}

func (g *GroupByFrame) Shift(opts ...Option) (*BaseFrame, error) { return shift(g.target(), opts) }

func (g *GroupByFrame) Diff(opts ...Option) (*BaseFrame, error) { return diff(g.target(), opts) }

func (g *GroupByFrame) PctChange(opts ...Option) (*BaseFrame, error) { return pctChange(g.target(), opts) }

// Expanding windows are partitioned by the grouping keys
func (g *GroupByFrame) Expanding(opts ...Option) (*Expanding, error) {
	return newExpanding(g.target(), opts)
}

func (g *GroupByFrame) Rolling(size interface{}, opts ...Option) (*Rolling, error) {
	return newRolling(g.target(), size, opts)
}

// Aggregate produces one row per group, grouping keys first
func (g *GroupByFrame) Aggregate(spec interface{}, opts ...Option) (*BaseFrame, error) {
	return aggregate(g.target(), spec, opts)
}

func (g *GroupByFrame) Agg(spec interface{}, opts ...Option) (*BaseFrame, error) {
	return g.Aggregate(spec, opts...)
}

// Rank ranks within each group; options and defaults are those of
// BaseFrame.Rank.
func (g *GroupByFrame) Rank(opts ...Option) (*BaseFrame, error) { return rank(g.target(), opts) }

func (g *GroupByFrame) Transform(spec interface{}, opts ...Option) (*BaseFrame, error) {
	return transform(g.target(), spec, opts)
}
