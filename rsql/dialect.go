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

import (
	"sort"
	"strings"
)

// Dialect 描述目标 SQL 方言的标识符引用规则和分页语法
type Dialect struct {
	Name string
	// IdentQuoteChar 标识符引用字符，0 表示不引用
	IdentQuoteChar byte
	// OffsetFetch 使用 OFFSET n ROWS FETCH NEXT m ROWS ONLY 代替 LIMIT/OFFSET
	OffsetFetch bool
}

var (
	// DialectPostgres is the default dialect
	DialectPostgres = &Dialect{Name: "postgres", IdentQuoteChar: '"'}
	DialectDuckDB   = &Dialect{Name: "duckdb", IdentQuoteChar: '"'}
	DialectSQLite   = &Dialect{Name: "sqlite", IdentQuoteChar: '"'}
	DialectMySQL    = &Dialect{Name: "mysql", IdentQuoteChar: '`'}
	DialectBigQuery = &Dialect{Name: "bigquery", IdentQuoteChar: '`'}
	DialectMSSQL    = &Dialect{Name: "mssql", IdentQuoteChar: '"', OffsetFetch: true}
)

// DefaultDialect 默认方言
var DefaultDialect = DialectPostgres

var dialectMap = map[string]*Dialect{
	"postgres":   DialectPostgres,
	"postgresql": DialectPostgres,
	"duckdb":     DialectDuckDB,
	"sqlite":     DialectSQLite,
	"mysql":      DialectMySQL,
	"bigquery":   DialectBigQuery,
	"mssql":      DialectMSSQL,
	"sqlserver":  DialectMSSQL,
}

// GetDialect looks a dialect up by name or alias, case-insensitively.
func GetDialect(name string) (*Dialect, bool) {
	d, ok := dialectMap[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// DialectNames returns the registered names and aliases, sorted
func DialectNames() []string {
	names := make([]string, 0, len(dialectMap))
	for name := range dialectMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// QuoteIdentifier always quotes name, doubling embedded quote characters.
// Aliases and sub-query labels are quoted this way.
func (d *Dialect) QuoteIdentifier(name string) string {
	q := d.IdentQuoteChar
	if q == 0 {
		return name
	}
	escaped := strings.ReplaceAll(name, string(q), string(q)+string(q))
	return string(q) + escaped + string(q)
}

// QuoteIdentifierIfNeeded quotes name only when it is not a plain identifier.
// Physical table and column names of a table scan are written this way.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if isSafeIdent(name) {
		return name
	}
	return d.QuoteIdentifier(name)
}

func isSafeIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
