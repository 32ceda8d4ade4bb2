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

package functions

import (
	"sort"
	"strings"
	"sync"

	"github.com/rulego/framesql/lang"
	"github.com/rulego/framesql/types"
)

// Registry 聚合关键字注册器，关键字不区分大小写
type Registry struct {
	mu  sync.RWMutex
	ops map[string]lang.AggregateOp
}

// 全局注册器实例，预置标准同义词
var globalRegistry = NewDefaultRegistry()

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]lang.AggregateOp)}
}

// NewDefaultRegistry creates a registry holding the standard synonyms
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, s := range defaultSynonyms {
		_ = r.Register(s.op, s.names...)
	}
	return r
}

var defaultSynonyms = []struct {
	op    lang.AggregateOp
	names []string
}{
	{lang.OpAverage, []string{"mean", "average", "nanmean"}},
	{lang.OpSum, []string{"sum", "nansum"}},
	{lang.OpMin, []string{"min", "amin", "minimum", "nanmin"}},
	{lang.OpMax, []string{"max", "amax", "maximum", "nanmax"}},
	{lang.OpStdDevSample, []string{"std", "std_dev", "nanstd"}},
	{lang.OpVarianceSample, []string{"var", "variance", "nanvar"}},
	{lang.OpCount, []string{"count", "size", "len", "length"}},
}

// Register binds names to op. Nothing is registered when any name is taken.
func (r *Registry) Register(op lang.AggregateOp, names ...string) error {
	if op.String() == "unknown" {
		return types.NewValueError("Cannot register keywords for unknown aggregate operation %d", int(op))
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range names {
		if _, exists := r.ops[strings.ToLower(name)]; exists {
			return types.NewValueError("Aggregate keyword '%s' already registered", name)
		}
	}
	for _, name := range names {
		r.ops[strings.ToLower(name)] = op
	}
	return nil
}

// Lookup resolves a keyword
func (r *Registry) Lookup(name string) (lang.AggregateOp, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, ok := r.ops[strings.ToLower(name)]
	return op, ok
}

// Keywords lists the registered keywords in sorted order
func (r *Registry) Keywords() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unregister 注销关键字
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	name = strings.ToLower(name)
	if _, exists := r.ops[name]; !exists {
		return false
	}
	delete(r.ops, name)
	return true
}

// 全局注册方法

func Register(op lang.AggregateOp, names ...string) error {
	return globalRegistry.Register(op, names...)
}

func Lookup(name string) (lang.AggregateOp, bool) {
	return globalRegistry.Lookup(name)
}

func Keywords() []string {
	return globalRegistry.Keywords()
}

func Unregister(name string) bool {
	return globalRegistry.Unregister(name)
}

// Default returns the global registry
func Default() *Registry {
	return globalRegistry
}
