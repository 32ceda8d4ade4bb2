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

// Package logger provides leveled logging for framesql compilers.
// Compilers log their validation and rendering steps at DEBUG level through
// the package level helpers, which write to a replaceable global logger.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Level defines log levels
type Level int

const (
	// DEBUG shows every compilation step
	DEBUG Level = iota
	// INFO shows general information
	INFO
	// WARN shows warnings only
	WARN
	// ERROR shows errors only
	ERROR
	// OFF disables logging
	OFF
)

// String returns string representation of log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case OFF:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel 解析日志级别名称（大小写不敏感）
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "OFF", "NONE":
		return OFF, nil
	}
	return OFF, fmt.Errorf("unknown log level: %q", name)
}

// Logger interface defines basic methods for logging
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	// SetLevel sets the log level
	SetLevel(level Level)
	// Named returns a logger that prefixes every line with the component name
	Named(name string) Logger
}

type defaultLogger struct {
	mu     *sync.Mutex
	level  *Level
	name   string
	logger *log.Logger
}

// NewLogger creates a logger writing to output.
//
// Example:
//
//	log := NewLogger(DEBUG, os.Stderr)
//	log.Named("diff").Debug("columns %v", cols)
func NewLogger(level Level, output io.Writer) Logger {
	lvl := level
	return &defaultLogger{
		mu:     &sync.Mutex{},
		level:  &lvl,
		logger: log.New(output, "", 0),
	}
}

func (l *defaultLogger) Debug(format string, args ...interface{}) { l.log(DEBUG, format, args...) }
func (l *defaultLogger) Info(format string, args ...interface{})  { l.log(INFO, format, args...) }
func (l *defaultLogger) Warn(format string, args ...interface{})  { l.log(WARN, format, args...) }
func (l *defaultLogger) Error(format string, args ...interface{}) { l.log(ERROR, format, args...) }

// SetLevel 设置日志级别，对同源的Named日志器同样生效
func (l *defaultLogger) SetLevel(level Level) {
	l.mu.Lock()
	*l.level = level
	l.mu.Unlock()
}

func (l *defaultLogger) Named(name string) Logger {
	if l.name != "" {
		name = l.name + "." + name
	}
	return &defaultLogger{mu: l.mu, level: l.level, name: name, logger: l.logger}
}

func (l *defaultLogger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	current := *l.level
	l.mu.Unlock()
	if current == OFF || level < current {
		return
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	b.WriteString("] [")
	b.WriteString(level.String())
	b.WriteString("] ")
	if l.name != "" {
		b.WriteString("[")
		b.WriteString(l.name)
		b.WriteString("] ")
	}
	b.WriteString(fmt.Sprintf(format, args...))
	l.logger.Println(b.String())
}

type discardLogger struct{}

// NewDiscardLogger creates a logger that drops everything
func NewDiscardLogger() Logger {
	return discardLogger{}
}

func (discardLogger) Debug(format string, args ...interface{}) {}
func (discardLogger) Info(format string, args ...interface{})  {}
func (discardLogger) Warn(format string, args ...interface{})  {}
func (discardLogger) Error(format string, args ...interface{}) {}
func (discardLogger) SetLevel(level Level)                     {}
func (d discardLogger) Named(name string) Logger               { return d }

var (
	defaultMu       sync.RWMutex
	defaultInstance = NewLogger(WARN, os.Stderr)
)

// SetDefault replaces the global logger; nil restores a discarding logger
func SetDefault(logger Logger) {
	if logger == nil {
		logger = NewDiscardLogger()
	}
	defaultMu.Lock()
	defaultInstance = logger
	defaultMu.Unlock()
}

// GetDefault returns the global logger
func GetDefault() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultInstance
}

// Named returns a component logger derived from the global logger
func Named(name string) Logger {
	return GetDefault().Named(name)
}

func Debug(format string, args ...interface{}) { GetDefault().Debug(format, args...) }
func Info(format string, args ...interface{})  { GetDefault().Info(format, args...) }
func Warn(format string, args ...interface{})  { GetDefault().Warn(format, args...) }
func Error(format string, args ...interface{}) { GetDefault().Error(format, args...) }
