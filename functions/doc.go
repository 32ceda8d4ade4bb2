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
Package functions normalizes aggregation specifications.

A specification is a single function-like value, a list of them, or a mapping
from column name to either. Function-like values are keyword strings
("sum", "mean", ...), Func values built with Keyword, Library, Named, Lambda
or Expression, and Go closures over a *lang.Collection.

# Keywords

Keywords are case-insensitive synonyms of the canonical operations:

	average          mean, average, nanmean
	sum              sum, nansum
	min              min, amin, minimum, nanmin
	max              max, amax, maximum, nanmax
	std_dev_sample   std, std_dev, nanstd
	variance_sample  var, variance, nanvar
	count            count, size, len, length

More can be registered with Register.

# Aliases

A column aggregated by exactly one function keeps its name. Otherwise each
output is named "<func>(<col>)", or "lambda_<k>(<col>)" for anonymous functions
where k counts the anonymous functions of that column from 1. A single function
mapped to a grouping key is treated as a one-element list.

# Expressions

Expression compiles a custom aggregation with expr-lang:

	f, err := functions.Expression("divide(minus(c.Max(), c.Min()), 2)")
*/
package functions
