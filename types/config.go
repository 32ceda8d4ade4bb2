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

package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rulego/framesql/rsql"
)

// Naming 编译器内部列的命名约定。同一次编译的所有步骤必须使用同一组名称
type Naming struct {
	// OffsetColumn shift/diff/pct_change 注入的零列
	OffsetColumn string `json:"offsetColumn"`
	// OffsetSuffix shift/diff/pct_change 中间列的后缀
	OffsetSuffix string `json:"offsetSuffix"`
	// WindowColumn expanding/rolling/rank/transform 注入的零列
	WindowColumn string `json:"windowColumn"`
	// WindowSuffix 窗口中间列的后缀
	WindowSuffix string `json:"windowSuffix"`
	// SubQueryAlias 子查询别名
	SubQueryAlias string `json:"subQueryAlias"`
}

// DefaultNaming returns the naming convention shared with the legend engine
func DefaultNaming() Naming {
	return Naming{
		OffsetColumn:  "__pylegend_internal_column_name__",
		OffsetSuffix:  "__pylegend_internal_column_name__",
		WindowColumn:  "__internal_pylegend_column__",
		WindowSuffix:  "__internal_pylegend_column__",
		SubQueryAlias: "root",
	}
}

// Config 渲染配置，每次 ToSQL/ToPure 调用都会传入
type Config struct {
	// Dialect SQL 方言名称，见 rsql.DialectNames
	Dialect    string `json:"dialect"`
	PrettySQL  bool   `json:"prettySql"`
	SQLIndent  int    `json:"sqlIndent"`
	PrettyPure bool   `json:"prettyPure"`
	PureIndent int    `json:"pureIndent"`
	Naming     Naming `json:"naming"`
}

// DefaultConfig pretty prints both targets
func DefaultConfig() *Config {
	return &Config{
		Dialect:    rsql.DefaultDialect.Name,
		PrettySQL:  true,
		SQLIndent:  4,
		PrettyPure: true,
		PureIndent: 2,
		Naming:     DefaultNaming(),
	}
}

// CompactConfig renders both targets on one line
func CompactConfig() *Config {
	c := DefaultConfig()
	c.PrettySQL = false
	c.PrettyPure = false
	return c
}

// LoadConfig reads a JSON document over the defaults and validates it
func LoadConfig(data []byte) (*Config, error) {
	c := DefaultConfig()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the dialect and the naming convention
func (c *Config) Validate() error {
	if _, ok := rsql.GetDialect(c.Dialect); !ok {
		return fmt.Errorf("unknown dialect %q, available: %s", c.Dialect, strings.Join(rsql.DialectNames(), ", "))
	}
	if c.SQLIndent < 0 || c.PureIndent < 0 {
		return fmt.Errorf("indent sizes must not be negative")
	}
	n := c.Naming
	for field, v := range map[string]string{
		"offsetColumn":  n.OffsetColumn,
		"offsetSuffix":  n.OffsetSuffix,
		"windowColumn":  n.WindowColumn,
		"windowSuffix":  n.WindowSuffix,
		"subQueryAlias": n.SubQueryAlias,
	} {
		if v == "" {
			return fmt.Errorf("naming.%s must not be empty", field)
		}
	}
	return nil
}

// SQLDialect resolves the configured dialect, falling back to the default
func (c *Config) SQLDialect() *rsql.Dialect {
	if d, ok := rsql.GetDialect(c.Dialect); ok {
		return d
	}
	return rsql.DefaultDialect
}

// Quote always quotes name for the configured dialect
func (c *Config) Quote(name string) string {
	return c.SQLDialect().QuoteIdentifier(name)
}

// QuoteIfNeeded quotes physical names only when necessary
func (c *Config) QuoteIfNeeded(name string) string {
	return c.SQLDialect().QuoteIdentifierIfNeeded(name)
}

// Separator separates Pure pipeline steps. Pretty output breaks the line and
// indents depth levels; compact output writes nothing, or a single space for
// list continuations.
func (c *Config) Separator(depth int, continuation bool) string {
	if c.PrettyPure {
		return "\n" + strings.Repeat(" ", c.PureIndent*depth)
	}
	if continuation {
		return " "
	}
	return ""
}

// SQLGenerator returns the SQL string generator for this configuration
func (c *Config) SQLGenerator() *rsql.Generator {
	return &rsql.Generator{Dialect: c.SQLDialect(), Pretty: c.PrettySQL, IndentSize: c.SQLIndent}
}
