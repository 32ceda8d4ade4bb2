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

package frame

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/rulego/framesql/types"
)

// Option 动词参数，未设置的参数取默认值
type Option func(*params)

type kwarg struct {
	name  string
	value interface{}
}

type params struct {
	named  map[string]interface{}
	kwargs []kwarg
	args   []interface{}
}

func newParams(opts []Option) *params {
	p := &params{named: make(map[string]interface{})}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func set(name string, v interface{}) Option {
	return func(p *params) { p.named[name] = v }
}

func Periods(v interface{}) Option    { return set("periods", v) }
func Axis(v interface{}) Option       { return set("axis", v) }
func Freq(v interface{}) Option       { return set("freq", v) }
func FillMethod(v interface{}) Option { return set("fill_method", v) }
func Limit(v interface{}) Option      { return set("limit", v) }
func MinPeriods(v interface{}) Option { return set("min_periods", v) }

// Method is the expanding/rolling method, or the rank method
func Method(v interface{}) Option  { return set("method", v) }
func Center(v interface{}) Option  { return set("center", v) }
func WinType(v interface{}) Option { return set("win_type", v) }
func On(v interface{}) Option      { return set("on", v) }
func Closed(v interface{}) Option  { return set("closed", v) }

func Pct(v bool) Option             { return set("pct", v) }
func Ascending(v bool) Option       { return set("ascending", v) }
func NaOption(v interface{}) Option { return set("na_option", v) }

// Kwarg passes an extra keyword argument. No verb accepts one, they are
// reported back in the error.
func Kwarg(name string, value interface{}) Option {
	return func(p *params) { p.kwargs = append(p.kwargs, kwarg{name: name, value: value}) }
}

// Args passes extra positional arguments
func Args(values ...interface{}) Option {
	return func(p *params) { p.args = append(p.args, values...) }
}

func (p *params) get(name string) (interface{}, bool) {
	v, ok := p.named[name]
	return v, ok
}

// check rejects parameters the verb does not know
func (p *params) check(verb string, known ...string) error {
	allowed := make(map[string]bool, len(known))
	for _, k := range known {
		allowed[k] = true
	}
	var unknown []string
	for name := range p.named {
		if !allowed[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return types.NewTypeError("The %s function got unexpected arguments: %s", verb, strings.Join(unknown, ", "))
}

// extraKeywords rejects Kwarg and Args options
func (p *params) extraKeywords(verb string) error {
	if len(p.args) > 0 {
		return types.NewNotImplementedError(
			"Passing additional positional arguments to the %s function is not supported, but got: %s",
			verb, echoList(p.args))
	}
	if len(p.kwargs) == 0 {
		return nil
	}
	pairs := make([]string, len(p.kwargs))
	for i, kw := range p.kwargs {
		pairs[i] = kw.name + "=" + echo(kw.value)
	}
	return types.NewNotImplementedError(
		"Passing additional keyword arguments to the %s function is not supported, but got: %s",
		verb, strings.Join(pairs, ", "))
}

// axis validates an axis argument, 0 and "index" are accepted
func (p *params) axis() (interface{}, bool) {
	v, ok := p.get("axis")
	if !ok {
		return 0, true
	}
	return v, isIndexAxis(v)
}

func isIndexAxis(v interface{}) bool {
	if s, ok := v.(string); ok {
		return s == "index"
	}
	n, ok := integral(v)
	return ok && n == 0
}

// periods validates a periods argument, 1 and -1 are accepted
func (p *params) periods(verb string) (int, error) {
	v, ok := p.get("periods")
	if !ok {
		return 1, nil
	}
	n, ok := integral(v)
	if !ok || (n != 1 && n != -1) {
		return 0, types.NewNotImplementedError(
			"The 'periods' argument of the %s function is only supported for values [1, -1], but got: periods=%s",
			verb, echo(v))
	}
	return int(n), nil
}

// integral converts whole numbers of any numeric type; strings and booleans
// are not numbers here.
func integral(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case nil, string, bool:
		return 0, false
	case float32:
		if float64(x) != math.Trunc(float64(x)) {
			return 0, false
		}
	case float64:
		if x != math.Trunc(x) {
			return 0, false
		}
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// echo renders a value the way error messages show it back
func echo(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case string:
		return "'" + x + "'"
	case bool:
		if x {
			return "True"
		}
		return "False"
	}
	return fmt.Sprintf("%v", v)
}

func echoList(values []interface{}) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = echo(v)
	}
	return strings.Join(out, ", ")
}
