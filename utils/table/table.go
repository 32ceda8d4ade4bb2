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

package table

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rulego/framesql/types"
)

// FprintTable writes rows under header as a bordered text table
func FprintTable(w io.Writer, header []string, rows [][]string) {
	// Calculate maximum width for each column
	colWidths := make([]int, len(header))
	for i, col := range header {
		colWidths[i] = len(col)
		for _, row := range rows {
			if i < len(row) && len(row[i]) > colWidths[i] {
				colWidths[i] = len(row[i])
			}
		}
		// Minimum width is 4
		if colWidths[i] < 4 {
			colWidths[i] = 4
		}
	}

	FprintTableBorder(w, colWidths)
	fprintRow(w, colWidths, header)
	FprintTableBorder(w, colWidths)
	for _, row := range rows {
		fprintRow(w, colWidths, row)
	}
	FprintTableBorder(w, colWidths)
}

func fprintRow(w io.Writer, colWidths []int, row []string) {
	var sb strings.Builder
	sb.WriteString("|")
	for i, width := range colWidths {
		val := ""
		if i < len(row) {
			val = row[i]
		}
		fmt.Fprintf(&sb, " %-*s |", width, val)
	}
	sb.WriteString("\n")
	_, _ = io.WriteString(w, sb.String())
}

// FprintTableBorder writes a table border
func FprintTableBorder(w io.Writer, columnWidths []int) {
	var sb strings.Builder
	sb.WriteString("+")
	for _, width := range columnWidths {
		sb.WriteString(strings.Repeat("-", width+2))
		sb.WriteString("+")
	}
	sb.WriteString("\n")
	_, _ = io.WriteString(w, sb.String())
}

// FprintColumns writes the column schema of a frame, one column per row
func FprintColumns(w io.Writer, cols []types.Column) {
	rows := make([][]string, len(cols))
	for i, c := range cols {
		rows[i] = []string{strconv.Itoa(i + 1), c.Name, c.Type.String()}
	}
	FprintTable(w, []string{"#", "column", "type"}, rows)
	fmt.Fprintf(w, "(%d columns)\n", len(cols))
}

// PrintColumns prints the column schema to stdout
func PrintColumns(cols []types.Column) {
	FprintColumns(os.Stdout, cols)
}
