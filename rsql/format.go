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
	"bytes"
	"strings"
)

// Formatter 收集查询树输出文本，负责换行和缩进
type Formatter struct {
	buf     bytes.Buffer
	dialect *Dialect
	pretty  bool
	indent  string
	depth   int
}

func (f *Formatter) WriteString(s string) {
	f.buf.WriteString(s)
}

// Newline breaks the line at the current depth, or writes a single space
// in compact mode.
func (f *Formatter) Newline() {
	if !f.pretty {
		f.buf.WriteString(" ")
		return
	}
	f.buf.WriteString("\n")
	f.buf.WriteString(strings.Repeat(f.indent, f.depth))
}

// Softline breaks the line in pretty mode and writes nothing otherwise
func (f *Formatter) Softline() {
	if f.pretty {
		f.Newline()
	}
}

// Indented runs fn one level deeper
func (f *Formatter) Indented(fn func()) {
	f.depth++
	fn()
	f.depth--
}

func (f *Formatter) clause(keyword string, e Expression) {
	f.Newline()
	f.WriteString(keyword)
	f.Indented(func() {
		f.Newline()
		e.Format(f)
	})
}

func (f *Formatter) String() string {
	return f.buf.String()
}

// Generator renders query trees to SQL text
type Generator struct {
	Dialect    *Dialect
	Pretty     bool
	IndentSize int
}

// NewGenerator creates a pretty generator with four-space indentation
func NewGenerator(d *Dialect) *Generator {
	if d == nil {
		d = DefaultDialect
	}
	return &Generator{Dialect: d, Pretty: true, IndentSize: 4}
}

// Generate renders a full query
func (g *Generator) Generate(q *QuerySpecification) string {
	f := g.formatter()
	q.Format(f)
	return f.String()
}

// GenerateNode renders any node inline, mostly useful for expressions
func (g *Generator) GenerateNode(n Node) string {
	f := g.formatter()
	n.Format(f)
	return f.String()
}

func (g *Generator) formatter() *Formatter {
	d := g.Dialect
	if d == nil {
		d = DefaultDialect
	}
	size := g.IndentSize
	if size <= 0 {
		size = 4
	}
	return &Formatter{dialect: d, pretty: g.Pretty, indent: strings.Repeat(" ", size)}
}
