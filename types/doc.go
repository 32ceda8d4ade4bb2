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
Package types holds the shared vocabulary of framesql: columns and their
declared types, the rendering configuration passed to every compilation, and
the compile error taxonomy.

# Rendering Configuration

Config carries the identifier quoting policy (Quote, QuoteIfNeeded), the Pure
separator policy (Separator) and the internal naming convention (Naming):

	cfg := types.DefaultConfig()
	cfg.Dialect = "duckdb"
	cfg.Naming.SubQueryAlias = "t"

# Errors

Every user-facing failure is a *CompileError. Its Type tells unsupported
parameters (ErrorTypeNotImplemented), malformed input (ErrorTypeType,
ErrorTypeValue) and broken invariants (ErrorTypeInternal) apart.
*/
package types
