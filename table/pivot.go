// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "strings"

// Unpivot reshapes t from wide to long form. For each input row and
// each column in cols, it emits one output row carrying all of t's
// other columns unchanged, plus the column's name in a new column
// label and its cell in a new column value. The output hence has
// t.Len() * len(cols) rows.
//
// Unpivot panics if cols is empty or names an unknown column.
func Unpivot(t *Table, label, value string, cols ...string) *Table {
	if len(cols) == 0 {
		panic("Unpivot requires at least 1 column")
	}
	wide := make(map[string]bool)
	for _, c := range cols {
		t.MustColumn(c)
		wide[c] = true
	}

	n := t.Len() * len(cols)
	b := new(Builder)
	for _, id := range t.Columns() {
		if wide[id] {
			continue
		}
		src := t.Column(id)
		col := make([]Value, 0, n)
		for i := 0; i < t.Len(); i++ {
			for range cols {
				col = append(col, src[i])
			}
		}
		b.Add(id, col)
	}

	labelCol := make([]Value, 0, n)
	valueCol := make([]Value, 0, n)
	for i := 0; i < t.Len(); i++ {
		for _, c := range cols {
			labelCol = append(labelCol, Str(c))
			valueCol = append(valueCol, t.Column(c)[i])
		}
	}
	return b.Add(label, labelCol).Add(value, valueCol).Done()
}

// Pivot inverts Unpivot: it reshapes t from long to wide form,
// creating one column per distinct value of the label column, filled
// from the value column. All other columns are id columns; the output
// has one row per distinct combination of id values, in order of
// first appearance. A wide cell with no corresponding long row is
// missing.
//
// If two long rows map to the same wide cell, Pivot fails with an
// *AmbiguousReshapeError rather than collapsing them.
func Pivot(t *Table, label, value string) (*Table, error) {
	labels := t.MustColumn(label)
	values := t.MustColumn(value)

	var ids []string
	for _, c := range t.Columns() {
		if c != label && c != value {
			ids = append(ids, c)
		}
	}

	idKey := func(i int) string {
		parts := make([]string, len(ids))
		for k, id := range ids {
			parts[k] = t.Column(id)[i].key()
		}
		return strings.Join(parts, "\x00")
	}
	idRepr := func(i int) string {
		parts := make([]string, len(ids))
		for k, id := range ids {
			parts[k] = t.Column(id)[i].String()
		}
		return strings.Join(parts, ", ")
	}

	// Distinct ids and labels, in first-appearance order.
	var rowKeys []string
	rowOf := make(map[string]int)
	var wideCols []string
	colOf := make(map[string]int)
	for i := 0; i < t.Len(); i++ {
		k := idKey(i)
		if _, ok := rowOf[k]; !ok {
			rowOf[k] = len(rowKeys)
			rowKeys = append(rowKeys, k)
		}
		name := labels[i].String()
		if _, ok := colOf[name]; !ok {
			colOf[name] = len(wideCols)
			wideCols = append(wideCols, name)
		}
	}

	cells := make([][]Value, len(wideCols))
	filled := make([][]bool, len(wideCols))
	for c := range cells {
		cells[c] = make([]Value, len(rowKeys))
		filled[c] = make([]bool, len(rowKeys))
	}
	idCells := make([][]Value, len(ids))
	for k := range idCells {
		idCells[k] = make([]Value, len(rowKeys))
	}

	for i := 0; i < t.Len(); i++ {
		r := rowOf[idKey(i)]
		c := colOf[labels[i].String()]
		if filled[c][r] {
			return nil, &AmbiguousReshapeError{Name: labels[i].String(), ID: idRepr(i)}
		}
		filled[c][r] = true
		cells[c][r] = values[i]
		for k, id := range ids {
			idCells[k][r] = t.Column(id)[i]
		}
	}

	b := new(Builder)
	for k, id := range ids {
		b.Add(id, idCells[k])
	}
	for c, name := range wideCols {
		b.Add(name, cells[c])
	}
	return b.Done(), nil
}
