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

	"github.com/rulego/framesql/logger"
	"github.com/rulego/framesql/rsql"
	"github.com/rulego/framesql/types"
)

// Frame 可编译为 SQL 查询树与 Pure 程序的数据帧
type Frame interface {
	// Columns returns the visible columns in order
	Columns() []types.Column
	// ToSQL builds a fresh query tree on every call
	ToSQL(cfg *types.Config) (*rsql.QuerySpecification, error)
	ToPure(cfg *types.Config) (string, error)
}

// node 帧的具体来源：输入表或已校验的函数编译器
type node interface {
	columns() []types.Column
	toSQL(cfg *types.Config) (*rsql.QuerySpecification, error)
	toPure(cfg *types.Config) (string, error)
}

// BaseFrame 未分组的帧
type BaseFrame struct {
	node node
}

var _ Frame = (*BaseFrame)(nil)

func newFrame(n node) *BaseFrame {
	return &BaseFrame{node: n}
}

func (f *BaseFrame) Columns() []types.Column {
	return types.CopyColumns(f.node.columns())
}

// ColumnNames returns the visible column names in order
func (f *BaseFrame) ColumnNames() []string {
	return types.ColumnNames(f.node.columns())
}

func (f *BaseFrame) ToSQL(cfg *types.Config) (*rsql.QuerySpecification, error) {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	q, err := f.node.toSQL(cfg)
	if err != nil {
		return nil, err
	}
	log().Debug("rendered query tree with %d columns", len(q.Select.SelectItems))
	return q, nil
}

func (f *BaseFrame) ToPure(cfg *types.Config) (string, error) {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	return f.node.toPure(cfg)
}

// SQL renders the query tree to text
func (f *BaseFrame) SQL(cfg *types.Config) (string, error) {
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	q, err := f.ToSQL(cfg)
	if err != nil {
		return "", err
	}
	return cfg.SQLGenerator().Generate(q), nil
}

func (f *BaseFrame) String() string {
	return fmt.Sprintf("Frame(%v)", f.node.columns())
}

// target 函数作用的帧：基础帧，加上分组键与可选的列选择
type target struct {
	base      *BaseFrame
	grouping  []string
	selection []string
}

func (t target) grouped() bool {
	return len(t.grouping) > 0
}

// sourceColumns are the columns a verb applies to: the selection if any,
// otherwise every non-grouping column.
func (t target) sourceColumns() []types.Column {
	all := t.base.node.columns()
	if t.selection != nil {
		cols := make([]types.Column, 0, len(t.selection))
		for _, name := range t.selection {
			if c, ok := types.FindColumn(all, name); ok {
				cols = append(cols, c)
			}
		}
		return cols
	}
	keys := make(map[string]bool, len(t.grouping))
	for _, g := range t.grouping {
		keys[g] = true
	}
	cols := make([]types.Column, 0, len(all))
	for _, c := range all {
		if !keys[c.Name] {
			cols = append(cols, c)
		}
	}
	return cols
}

func log() logger.Logger {
	return logger.Named("frame")
}
