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
	"errors"
	"fmt"
)

// ErrUnsupportedSelectItem 查询层包含无法按别名引用的选择项（如 *）
var ErrUnsupportedSelectItem = errors.New("select items other than aliased single columns cannot be referenced")

// LineageError 按别名查找列失败。出现即说明之前的投影步骤漏掉了必需的列
type LineageError struct {
	Alias string
	// Available 当前查询层可见的别名
	Available []string
}

func (e *LineageError) Error() string {
	return fmt.Sprintf("Cannot find column: %s", e.Alias)
}
