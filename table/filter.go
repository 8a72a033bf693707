// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

// Filter returns a new table holding the rows of t for which pred is
// true, in their original order, along with the number of rows
// excluded. t itself is never modified.
func Filter(t *Table, pred func(Row) bool) (*Table, int) {
	var keep []int
	for i := 0; i < t.Len(); i++ {
		if pred(Row{t, i}) {
			keep = append(keep, i)
		}
	}
	if len(keep) == t.Len() {
		return t, 0
	}

	b := new(Builder)
	for _, name := range t.Columns() {
		src := t.Column(name)
		col := make([]Value, len(keep))
		for j, i := range keep {
			col[j] = src[i]
		}
		b.Add(name, col)
	}
	return b.Done(), t.Len() - len(keep)
}

// FilterEq filters t to the rows whose cell in the named column
// equals v.
func FilterEq(t *Table, col string, v Value) (*Table, int) {
	c := t.MustColumn(col)
	return Filter(t, func(r Row) bool {
		return c[r.Index()].Equal(v)
	})
}
