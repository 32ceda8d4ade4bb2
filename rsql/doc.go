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
Package rsql provides the relational query tree produced by framesql compilers
and the SQL string generator that renders it.

# Query Tree

A QuerySpecification is one SELECT level. Nesting happens through
TableSubquery relations, usually created with CreateSubQuery:

	SELECT
	    "root"."col1" AS "col1"
	FROM
	    (
	        SELECT
	            "root".col1 AS "col1"
	        FROM
	            test_schema.test_table AS "root"
	    ) AS "root"

Names inside the tree are stored already quoted. Callers quote aliases with
Dialect.QuoteIdentifier and physical table or column names with
Dialect.QuoteIdentifierIfNeeded.

# Column Lineage

FindColumnExpression resolves a quoted alias to the expression that produces
it in one query level. Window partitions, window ordering and aggregate
arguments are bound this way, so they always refer to columns that an earlier
projection step made visible.

# Rendering

	gen := rsql.NewGenerator(rsql.DialectPostgres)
	sql := gen.Generate(query)

Generator.Pretty=false renders the same tree on a single line.
*/
package rsql
