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

import (
	"fmt"

	"github.com/rulego/framesql/types"
)

// GroupByFrame 按若干键分组的帧，可再选择要处理的列
type GroupByFrame struct {
	base      *BaseFrame
	keys      []string
	selection []string
}

// GroupBy groups f by keys. Every key must be a distinct column of f.
func (f *BaseFrame) GroupBy(keys ...string) (*GroupByFrame, error) {
	if len(keys) == 0 {
		return nil, types.NewValueError("The groupby function needs at least one grouping column")
	}
	if err := checkColumns(f, "groupby", keys); err != nil {
		return nil, err
	}
	return &GroupByFrame{base: f, keys: append([]string(nil), keys...)}, nil
}

// Select narrows the columns later verbs apply to
func (g *GroupByFrame) Select(columns ...string) (*GroupByFrame, error) {
	if len(columns) == 0 {
		return nil, types.NewValueError("Selecting from a grouped frame needs at least one column")
	}
	if err := checkColumns(g.base, "selection", columns); err != nil {
		return nil, err
	}
	return &GroupByFrame{base: g.base, keys: g.keys, selection: append([]string(nil), columns...)}, nil
}

func checkColumns(f *BaseFrame, what string, names []string) error {
	cols := f.node.columns()
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := types.FindColumn(cols, name); !ok {
			return types.NewValueError("Column - '%s' in %s doesn't exist in the current frame. Current frame columns: %v",
				name, what, types.ColumnNames(cols))
		}
		if seen[name] {
			return types.NewValueError("Column '%s' is given more than once in %s", name, what)
		}
		seen[name] = true
	}
	return nil
}

// Base returns the frame before grouping
func (g *GroupByFrame) Base() *BaseFrame { return g.base }

func (g *GroupByFrame) Keys() []string { return append([]string(nil), g.keys...) }

// Selection returns the selected columns, nil when nothing was selected
func (g *GroupByFrame) Selection() []string { return copyNames(g.selection) }

func (g *GroupByFrame) target() target {
	return target{base: g.base, grouping: g.keys, selection: g.selection}
}

func (g *GroupByFrame) String() string {
	return fmt.Sprintf("GroupByFrame(keys=%v, selection=%v)", g.keys, g.selection)
}
