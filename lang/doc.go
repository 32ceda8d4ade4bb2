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

/*
Package lang holds the symbolic values framesql compilers build before
rendering: typed column references, literals, arithmetic, lag/lead offset
rows, the rank family, windowed aggregates and aggregate collections.

Every value implements Primitive. Its type tag is stamped at construction, so
column type inference is a field read (InferColumn). Each value renders to
both targets:

	p, w, r := lang.NewPartialFrame("p"), lang.NewWindowRef("w"), lang.NewRow("r", cols)
	prev, _ := p.Lag(r, 1)
	before, _ := prev.Column("col1")
	cur, _ := r.Column("col1")
	diff, _ := lang.Minus(cur, before)
	diff.ToPure(cfg) // toOne($r.col1) - toOne($p->lag($r).col1)

SQL rendering resolves row variables through a SQLContext that binds each
variable name to a query level.
*/
package lang
