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
	"errors"
	"fmt"
)

// ErrorType 编译错误分类
type ErrorType int

const (
	// ErrorTypeNotImplemented 参数值可识别但尚不支持
	ErrorTypeNotImplemented ErrorType = iota
	// ErrorTypeType 函数说明或列类型不合法
	ErrorTypeType
	// ErrorTypeValue 参数值不合法，如未知列名
	ErrorTypeValue
	// ErrorTypeInternal 内部不变量被破坏，不应被调用方捕获后继续
	ErrorTypeInternal
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeNotImplemented:
		return "NOT_IMPLEMENTED"
	case ErrorTypeType:
		return "TYPE_ERROR"
	case ErrorTypeValue:
		return "VALUE_ERROR"
	case ErrorTypeInternal:
		return "INTERNAL_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// CompileError is returned by validation and rendering. Error() yields the
// message verbatim so callers can show it to users unchanged.
type CompileError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *CompileError) Error() string {
	return e.Message
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}

func NewNotImplementedError(format string, args ...interface{}) *CompileError {
	return &CompileError{Type: ErrorTypeNotImplemented, Message: fmt.Sprintf(format, args...)}
}

func NewTypeError(format string, args ...interface{}) *CompileError {
	return &CompileError{Type: ErrorTypeType, Message: fmt.Sprintf(format, args...)}
}

func NewValueError(format string, args ...interface{}) *CompileError {
	return &CompileError{Type: ErrorTypeValue, Message: fmt.Sprintf(format, args...)}
}

// NewInternalError wraps a broken-invariant failure from a lower layer
func NewInternalError(cause error) *CompileError {
	if ce, ok := cause.(*CompileError); ok && ce.Type == ErrorTypeInternal {
		return ce
	}
	return &CompileError{Type: ErrorTypeInternal, Message: cause.Error(), Cause: cause}
}

// NewInternalErrorf creates an internal error without a cause
func NewInternalErrorf(format string, args ...interface{}) *CompileError {
	return &CompileError{Type: ErrorTypeInternal, Message: fmt.Sprintf(format, args...)}
}

func errorTypeOf(err error) (ErrorType, bool) {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce.Type, true
	}
	return 0, false
}

func IsNotImplemented(err error) bool {
	t, ok := errorTypeOf(err)
	return ok && t == ErrorTypeNotImplemented
}

func IsTypeError(err error) bool {
	t, ok := errorTypeOf(err)
	return ok && t == ErrorTypeType
}

func IsValueError(err error) bool {
	t, ok := errorTypeOf(err)
	return ok && t == ErrorTypeValue
}

func IsInternal(err error) bool {
	t, ok := errorTypeOf(err)
	return ok && t == ErrorTypeInternal
}
