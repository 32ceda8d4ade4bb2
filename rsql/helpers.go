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

package rsql

// RequiresSubQuery reports whether new projections on q would collide with
// its grouping, DISTINCT or pagination and q must be wrapped first.
func RequiresSubQuery(q *QuerySpecification) bool {
	return len(q.GroupBy) > 0 || q.Select.Distinct || q.Limit != nil || q.Offset != nil
}

// CopyQuery copies q deep enough that appending to or replacing any clause
// list of the copy leaves q untouched. Expressions are shared.
func CopyQuery(q *QuerySpecification) *QuerySpecification {
	c := *q
	c.Select = &Select{
		Distinct:    q.Select.Distinct,
		SelectItems: append([]SelectItem(nil), q.Select.SelectItems...),
	}
	c.From = append([]Relation(nil), q.From...)
	c.GroupBy = append([]Expression(nil), q.GroupBy...)
	c.OrderBy = append([]*SortItem(nil), q.OrderBy...)
	return &c
}

// CreateSubQuery wraps q as (q) AS alias and re-projects its columns as
// alias.column. A nil retain keeps every column; otherwise only the listed
// quoted aliases survive, in the order of q.
func CreateSubQuery(q *QuerySpecification, d *Dialect, alias string, retain []string) (*QuerySpecification, error) {
	if d == nil {
		d = DefaultDialect
	}
	quoted := d.QuoteIdentifier(alias)
	keep := make(map[string]bool, len(retain))
	for _, r := range retain {
		keep[r] = true
	}

	items := make([]SelectItem, 0, len(q.Select.SelectItems))
	for _, item := range q.Select.SelectItems {
		col, ok := item.(*SingleColumn)
		if !ok || col.Alias == "" {
			return nil, ErrUnsupportedSelectItem
		}
		if retain != nil && !keep[col.Alias] {
			continue
		}
		items = append(items, &SingleColumn{
			Alias:      col.Alias,
			Expression: &QualifiedNameReference{Name: NewQualifiedName(quoted, col.Alias)},
		})
	}
	return &QuerySpecification{
		Select: &Select{SelectItems: items},
		From: []Relation{&AliasedRelation{
			Relation: &TableSubquery{Query: q},
			Alias:    quoted,
		}},
	}, nil
}

// ApplyWindow attaches w to every function call of e. Arithmetic over
// aggregates gets the window on each aggregate operand.
func ApplyWindow(e Expression, w *Window) Expression {
	switch n := e.(type) {
	case *FunctionCall:
		return &WindowExpression{Nested: n, Window: w}
	case *ArithmeticExpression:
		return &ArithmeticExpression{
			Type:  n.Type,
			Left:  ApplyWindow(n.Left, w),
			Right: ApplyWindow(n.Right, w),
		}
	default:
		return e
	}
}
