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

// Package pure holds the lexical helpers of the Pure expression language:
// column name escaping, variables, lambdas and table accessors.
package pure

import (
	"regexp"
	"strings"
)

var simpleName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// EscapeColumnName returns name unchanged when it is a plain identifier and
// single-quoted otherwise.
func EscapeColumnName(name string) string {
	if simpleName.MatchString(name) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", `\'`) + "'"
}

// Var renders a variable reference: Var("r") is $r
func Var(name string) string {
	return "$" + name
}

// ColumnAccess renders $row.column
func ColumnAccess(row, column string) string {
	return Var(row) + "." + EscapeColumnName(column)
}

// ColumnSpec renders ~column
func ColumnSpec(column string) string {
	return "~" + EscapeColumnName(column)
}

// Lambda renders {params | body}
func Lambda(body string, params ...string) string {
	return "{" + strings.Join(params, ",") + " | " + body + "}"
}

// TableAccessor renders #Table(schema.table)#
func TableAccessor(path []string) string {
	return "#Table(" + strings.Join(path, ".") + ")#"
}

// ColumnSpecList renders ~[a, b]
func ColumnSpecList(columns []string) string {
	escaped := make([]string, len(columns))
	for i, c := range columns {
		escaped[i] = EscapeColumnName(c)
	}
	return "~[" + strings.Join(escaped, ", ") + "]"
}
