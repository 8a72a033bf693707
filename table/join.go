// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "strings"

// A JoinKey pairs a left-table column with the right-table column it
// must match.
type JoinKey struct {
	Left, Right string
}

// On builds JoinKeys for columns that have the same name in both
// tables.
func On(cols ...string) []JoinKey {
	keys := make([]JoinKey, len(cols))
	for i, c := range cols {
		keys[i] = JoinKey{c, c}
	}
	return keys
}

// LeftJoin merges right into left on the given keys with left outer
// join semantics. Every left row appears in the output, in order. A
// left row with no matching right row gets missing cells for the
// right-only columns. If several right rows match one left row, the
// join fans out: the left row is repeated once per match, so the
// output can be longer than left.
//
// Right non-key columns whose names collide with a left column are
// suffixed " (right)" rather than overwriting the left column.
func LeftJoin(left, right *Table, keys ...JoinKey) *Table {
	rowKey := func(t *Table, cols []string, i int) string {
		parts := make([]string, len(cols))
		for k, c := range cols {
			parts[k] = t.MustColumn(c)[i].key()
		}
		return strings.Join(parts, "\x00")
	}

	lcols := make([]string, len(keys))
	rcols := make([]string, len(keys))
	rkey := make(map[string]bool)
	for i, k := range keys {
		lcols[i] = k.Left
		rcols[i] = k.Right
		left.MustColumn(k.Left)
		right.MustColumn(k.Right)
		rkey[k.Right] = true
	}

	// Index the right table.
	index := make(map[string][]int)
	for i := 0; i < right.Len(); i++ {
		k := rowKey(right, rcols, i)
		index[k] = append(index[k], i)
	}

	// One output row per (left row, match) pair; unmatched left rows
	// produce a single row with match -1.
	var lrows, rrows []int
	for i := 0; i < left.Len(); i++ {
		matches := index[rowKey(left, lcols, i)]
		if len(matches) == 0 {
			lrows = append(lrows, i)
			rrows = append(rrows, -1)
			continue
		}
		for _, j := range matches {
			lrows = append(lrows, i)
			rrows = append(rrows, j)
		}
	}

	b := new(Builder)
	for _, name := range left.Columns() {
		src := left.Column(name)
		col := make([]Value, len(lrows))
		for o, i := range lrows {
			col[o] = src[i]
		}
		b.Add(name, col)
	}

	leftNames := make(map[string]bool)
	for _, name := range left.Columns() {
		leftNames[name] = true
	}
	for _, name := range right.Columns() {
		if rkey[name] {
			continue
		}
		src := right.Column(name)
		col := make([]Value, len(rrows))
		for o, j := range rrows {
			if j >= 0 {
				col[o] = src[j]
			}
		}
		out := name
		if leftNames[name] {
			out = name + " (right)"
		}
		b.Add(out, col)
	}
	return b.Done()
}
