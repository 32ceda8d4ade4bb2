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
	"strings"

	"github.com/rulego/framesql/pure"
	"github.com/rulego/framesql/rsql"
	"github.com/rulego/framesql/types"
)

// tableSpec 输入帧：按路径引用的物理表
type tableSpec struct {
	path []string
	cols []types.Column
}

// NewTable creates an input frame over the table at path, e.g.
// []string{"test_schema", "test_table"}.
func NewTable(path []string, columns ...types.Column) (*BaseFrame, error) {
	if len(path) == 0 {
		return nil, types.NewValueError("A table path needs at least one element")
	}
	for _, p := range path {
		if strings.TrimSpace(p) == "" {
			return nil, types.NewValueError("Table path elements must not be empty, but got: [%s]", strings.Join(path, ", "))
		}
	}
	if len(columns) == 0 {
		return nil, types.NewValueError("Table %s needs at least one column", strings.Join(path, "."))
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if c.Name == "" {
			return nil, types.NewValueError("Column names must not be empty")
		}
		if !c.Type.IsValid() {
			return nil, types.NewValueError("Column '%s' has an unknown type", c.Name)
		}
		if seen[c.Name] {
			return nil, types.NewValueError("Duplicate column name: '%s'", c.Name)
		}
		seen[c.Name] = true
	}
	log().Debug("table %s with %d columns", strings.Join(path, "."), len(columns))
	return newFrame(&tableSpec{path: append([]string(nil), path...), cols: types.CopyColumns(columns)}), nil
}

// MustTable is like NewTable but panics on error
func MustTable(path []string, columns ...types.Column) *BaseFrame {
	f, err := NewTable(path, columns...)
	if err != nil {
		panic(err)
	}
	return f
}

func (t *tableSpec) columns() []types.Column {
	return t.cols
}

func (t *tableSpec) toSQL(cfg *types.Config) (*rsql.QuerySpecification, error) {
	alias := cfg.Quote(cfg.Naming.SubQueryAlias)
	parts := make([]string, len(t.path))
	for i, p := range t.path {
		parts[i] = cfg.QuoteIfNeeded(p)
	}
	items := make([]rsql.SelectItem, len(t.cols))
	for i, c := range t.cols {
		items[i] = &rsql.SingleColumn{
			Alias:      cfg.Quote(c.Name),
			Expression: &rsql.QualifiedNameReference{Name: rsql.NewQualifiedName(alias, cfg.QuoteIfNeeded(c.Name))},
		}
	}
	return &rsql.QuerySpecification{
		Select: &rsql.Select{SelectItems: items},
		From: []rsql.Relation{&rsql.AliasedRelation{
			Relation: &rsql.Table{Name: rsql.NewQualifiedName(parts...)},
			Alias:    alias,
		}},
	}, nil
}

func (t *tableSpec) toPure(*types.Config) (string, error) {
	return pure.TableAccessor(t.path), nil
}
