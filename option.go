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
	"io"

	"github.com/rulego/framesql/logger"
	"github.com/rulego/framesql/types"
)

// Option 表示对 Session 默认行为的修改配置
type Option func(*Session)

// WithLogger 设置自定义日志记录器。
// 允许用户提供自己的日志实现，编译器在 DEBUG 级别记录校验与渲染步骤。
//
// 示例:
//
//	customLogger := logger.NewLogger(logger.DEBUG, os.Stderr)
//	s := framesql.New(WithLogger(customLogger))
func WithLogger(log logger.Logger) Option {
	return func(s *Session) {
		logger.SetDefault(log)
	}
}

// WithLogLevel 设置日志级别，使用默认的日志输出目标。
//
// 示例:
//
//	s := framesql.New(WithLogLevel(logger.DEBUG))
func WithLogLevel(level logger.Level) Option {
	return func(s *Session) {
		logger.GetDefault().SetLevel(level)
	}
}

// WithLogOutput 设置日志输出目标。
//
// 示例:
//
//	s := framesql.New(WithLogOutput(os.Stderr, logger.WARN))
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(s *Session) {
		logger.SetDefault(logger.NewLogger(level, output))
	}
}

// WithDiscardLog 禁用所有日志输出
func WithDiscardLog() Option {
	return func(s *Session) {
		logger.SetDefault(logger.NewDiscardLogger())
	}
}

// WithConfig 使用完整的渲染配置。后续选项在其副本上继续修改
func WithConfig(cfg *types.Config) Option {
	return func(s *Session) {
		if cfg != nil {
			c := *cfg
			s.cfg = &c
		}
	}
}

// WithDialect 选择 SQL 方言，如 "postgres"、"mysql"、"mssql"
func WithDialect(name string) Option {
	return func(s *Session) {
		s.cfg.Dialect = name
	}
}

// WithPretty 控制 SQL 与 Pure 是否多行输出
func WithPretty(sql, pure bool) Option {
	return func(s *Session) {
		s.cfg.PrettySQL = sql
		s.cfg.PrettyPure = pure
	}
}

// WithIndent 设置多行输出的缩进宽度
func WithIndent(sqlIndent, pureIndent int) Option {
	return func(s *Session) {
		s.cfg.SQLIndent = sqlIndent
		s.cfg.PureIndent = pureIndent
	}
}

// WithNaming 设置内部列的命名约定。
// 只有目标引擎要求不同的内部列名时才需要修改。
func WithNaming(naming types.Naming) Option {
	return func(s *Session) {
		s.cfg.Naming = naming
	}
}
