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

// FindColumnExpression returns the expression projected under alias in the
// select list of q. The alias must already be quoted.
func FindColumnExpression(q *QuerySpecification, alias string) (Expression, error) {
	for _, item := range q.Select.SelectItems {
		if col, ok := item.(*SingleColumn); ok && col.Alias == alias {
			return col.Expression, nil
		}
	}
	return nil, &LineageError{Alias: alias, Available: SelectAliases(q)}
}

// SelectAliases lists the aliases of the single-column items of q, in order
func SelectAliases(q *QuerySpecification) []string {
	aliases := make([]string, 0, len(q.Select.SelectItems))
	for _, item := range q.Select.SelectItems {
		if col, ok := item.(*SingleColumn); ok && col.Alias != "" {
			aliases = append(aliases, col.Alias)
		}
	}
	return aliases
}
