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

package framesql

import (
	"fmt"
	"io"
	"os"

	"github.com/rulego/framesql/frame"
	"github.com/rulego/framesql/logger"
	"github.com/rulego/framesql/rsql"
	"github.com/rulego/framesql/schema"
	"github.com/rulego/framesql/types"
	"github.com/rulego/framesql/utils/table"
)

// Session 保存渲染配置，创建输入帧并编译帧
type Session struct {
	cfg *types.Config
}

// Compiled 一个帧的两种编译结果
type Compiled struct {
	SQL  string
	Pure string
}

// New 创建 Session。默认多行输出、postgres 方言
//
// 示例:
//
//	s := framesql.New(framesql.WithDialect("mysql"), framesql.WithDiscardLog())
func New(options ...Option) *Session {
	s := &Session{cfg: types.DefaultConfig()}
	for _, option := range options {
		if option != nil {
			option(s)
		}
	}
	return s
}

// Config returns a copy of the rendering configuration
func (s *Session) Config() types.Config {
	return *s.cfg
}

func (s *Session) config() (*types.Config, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}
	c := *s.cfg
	return &c, nil
}

// Table 声明一张输入表
func (s *Session) Table(path []string, columns ...types.Column) (*frame.BaseFrame, error) {
	return frame.NewTable(path, columns...)
}

// TableFromParquet 从 parquet 文件尾部读取列结构
func (s *Session) TableFromParquet(path []string, r io.ReaderAt, size int64) (*frame.BaseFrame, error) {
	cols, err := schema.FromParquet(r, size)
	if err != nil {
		return nil, err
	}
	return frame.NewTable(path, cols...)
}

// TableFromParquetFile is TableFromParquet over a file on disk
func (s *Session) TableFromParquetFile(path []string, filename string) (*frame.BaseFrame, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot stat %s: %w", filename, err)
	}
	return s.TableFromParquet(path, f, info.Size())
}

// TableFromAvroSchema 按 Avro record 的字段声明输入表
func (s *Session) TableFromAvroSchema(path []string, avroSchema string) (*frame.BaseFrame, error) {
	cols, err := schema.FromAvroSchema(avroSchema)
	if err != nil {
		return nil, err
	}
	return frame.NewTable(path, cols...)
}

// TableFromAvro 从 Avro OCF 文件头读取写入时的 schema
func (s *Session) TableFromAvro(path []string, r io.Reader) (*frame.BaseFrame, error) {
	cols, err := schema.FromAvroOCF(r)
	if err != nil {
		return nil, err
	}
	return frame.NewTable(path, cols...)
}

// ToSQL builds the query tree of f
func (s *Session) ToSQL(f frame.Frame) (*rsql.QuerySpecification, error) {
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}
	return f.ToSQL(cfg)
}

// SQLText renders f as SQL text in the session dialect
func (s *Session) SQLText(f frame.Frame) (string, error) {
	cfg, err := s.config()
	if err != nil {
		return "", err
	}
	q, err := f.ToSQL(cfg)
	if err != nil {
		return "", err
	}
	return cfg.SQLGenerator().Generate(q), nil
}

func (s *Session) ToPure(f frame.Frame) (string, error) {
	cfg, err := s.config()
	if err != nil {
		return "", err
	}
	return f.ToPure(cfg)
}

// Compile renders both targets
func (s *Session) Compile(f frame.Frame) (*Compiled, error) {
	sql, err := s.SQLText(f)
	if err != nil {
		return nil, err
	}
	text, err := s.ToPure(f)
	if err != nil {
		return nil, err
	}
	logger.Debug("compiled frame with %d columns", len(f.Columns()))
	return &Compiled{SQL: sql, Pure: text}, nil
}

// PrintSchema 打印帧的列结构到标准输出
//
// 示例输出:
//
//	+------+--------------+---------+
//	| #    | column       | type    |
//	+------+--------------+---------+
//	| 1    | grouping_col | String  |
//	| 2    | col1         | Integer |
//	+------+--------------+---------+
//	(2 columns)
func (s *Session) PrintSchema(f frame.Frame) {
	table.PrintColumns(f.Columns())
}

// FprintSchema writes the column schema of f to w
func (s *Session) FprintSchema(w io.Writer, f frame.Frame) {
	table.FprintColumns(w, f.Columns())
}
