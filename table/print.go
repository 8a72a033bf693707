// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Fprint writes t to w as aligned text columns. Numeric columns are
// right-aligned, everything else left-aligned; missing cells print as
// blanks.
func Fprint(w io.Writer, t *Table) error {
	cells := make([][]string, len(t.Columns()))
	widths := make([]int, len(t.Columns()))
	numeric := make([]bool, len(t.Columns()))
	for c, name := range t.Columns() {
		col := t.Column(name)
		cells[c] = make([]string, t.Len()+1)
		cells[c][0] = name
		widths[c] = len(name)
		numeric[c] = true
		for i, v := range col {
			s := v.String()
			cells[c][i+1] = s
			if len(s) > widths[c] {
				widths[c] = len(s)
			}
			if _, ok := v.Num(); !ok && !v.Missing() {
				numeric[c] = false
			}
		}
	}

	var line strings.Builder
	for i := 0; i <= t.Len(); i++ {
		line.Reset()
		for c := range cells {
			if c > 0 {
				line.WriteString("  ")
			}
			s := cells[c][i]
			pad := widths[c] - len(s)
			if numeric[c] && i > 0 {
				line.WriteString(strings.Repeat(" ", pad))
				line.WriteString(s)
			} else if c == len(cells)-1 {
				line.WriteString(s)
			} else {
				line.WriteString(s)
				line.WriteString(strings.Repeat(" ", pad))
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

// Print writes t to standard output.
func Print(t *Table) error {
	return Fprint(os.Stdout, t)
}
