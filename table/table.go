// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table implements small in-memory data tables and the
// wrangling operations used by the synmet analysis commands: loading
// delimited files, deriving columns, reshaping between wide and long
// form, recoding ordered categorical levels, filtering, left joins,
// and group-wise summaries.
//
// A Table is an ordered set of named columns of equal length. Tables
// are immutable: every operation returns a new Table and never
// modifies its input, so re-running a pipeline stage with the same
// input always yields the same output.
//
// Cells are dynamically typed Values: a string, a float64, or
// missing. Operations propagate missing values rather than failing on
// them; only genuinely malformed input (unparseable files, category
// values outside a declared level set, ambiguous reshape keys) is
// reported as an error. Misuse of the API itself, such as asking for
// a column that does not exist, panics.
package table

import (
	"fmt"
	"strconv"
)

// A Value is a single table cell: a string, a float64, or missing.
// The zero Value is missing.
type Value struct {
	kind kind
	num  float64
	str  string
}

type kind uint8

const (
	kindMissing kind = iota
	kindNum
	kindStr
)

// Missing is the missing Value.
var Missing = Value{}

// Num returns a numeric Value.
func Num(x float64) Value {
	return Value{kind: kindNum, num: x}
}

// Str returns a string Value.
func Str(s string) Value {
	return Value{kind: kindStr, str: s}
}

// Num returns the numeric content of v. ok is false if v is missing
// or a string.
func (v Value) Num() (x float64, ok bool) {
	return v.num, v.kind == kindNum
}

// Str returns the string content of v. ok is false if v is missing or
// numeric.
func (v Value) Str() (s string, ok bool) {
	return v.str, v.kind == kindStr
}

// Missing reports whether v is missing.
func (v Value) Missing() bool {
	return v.kind == kindMissing
}

// Equal reports whether v and w have the same type and content. Two
// missing Values are equal.
func (v Value) Equal(w Value) bool {
	return v == w
}

// String formats v for display. Missing Values format as "".
func (v Value) String() string {
	switch v.kind {
	case kindNum:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case kindStr:
		return v.str
	}
	return ""
}

// key returns a representation of v suitable for use as a map key
// that distinguishes Str("1") from Num(1) and from Missing.
func (v Value) key() string {
	switch v.kind {
	case kindNum:
		return "n" + strconv.FormatFloat(v.num, 'b', -1, 64)
	case kindStr:
		return "s" + v.str
	}
	return "m"
}

// Nums returns a column of numeric Values.
func Nums(xs ...float64) []Value {
	col := make([]Value, len(xs))
	for i, x := range xs {
		col[i] = Num(x)
	}
	return col
}

// Strs returns a column of string Values.
func Strs(ss ...string) []Value {
	col := make([]Value, len(ss))
	for i, s := range ss {
		col[i] = Str(s)
	}
	return col
}

// A Table is an immutable, ordered collection of equal-length named
// columns. The zero Table has no columns and no rows.
type Table struct {
	cols []string
	data map[string][]Value
	rows int
}

// Len returns the number of rows in t.
func (t *Table) Len() int {
	return t.rows
}

// Columns returns the names of t's columns in order. The caller must
// not modify the returned slice.
func (t *Table) Columns() []string {
	return t.cols
}

// Column returns the named column, or nil if there is no such column.
// The caller must not modify the returned slice.
func (t *Table) Column(name string) []Value {
	return t.data[name]
}

// MustColumn is like Column, but panics if there is no such column.
func (t *Table) MustColumn(name string) []Value {
	col, ok := t.data[name]
	if !ok {
		panic(fmt.Sprintf("unknown column %q", name))
	}
	return col
}

// Row returns an accessor for row i of t.
func (t *Table) Row(i int) Row {
	if i < 0 || i >= t.rows {
		panic(fmt.Sprintf("row %d out of range [0, %d)", i, t.rows))
	}
	return Row{t, i}
}

// A Row provides access to the cells of a single table row.
type Row struct {
	t *Table
	i int
}

// Get returns the cell in the named column. It panics if there is no
// such column.
func (r Row) Get(name string) Value {
	return r.t.MustColumn(name)[r.i]
}

// Index returns the row's position in its table.
func (r Row) Index() int {
	return r.i
}

// A Builder constructs a Table incrementally. The zero Builder is an
// empty table.
//
// Adding a column that already exists replaces it in place; adding a
// nil column removes it. All columns must have the same length as the
// table or Add panics. The caller must not modify a column slice
// after passing it to Add.
type Builder struct {
	cols []string
	data map[string][]Value
}

// NewBuilder returns a Builder seeded with the columns of t. t may be
// nil, meaning an empty table.
func NewBuilder(t *Table) *Builder {
	b := new(Builder)
	if t != nil {
		for _, col := range t.cols {
			b.Add(col, t.data[col])
		}
	}
	return b
}

// Add adds column named name with cells col to the table being built
// and returns b for chaining. If name already exists, its cells are
// replaced but it keeps its position. If col is nil, the column is
// removed instead.
func (b *Builder) Add(name string, col []Value) *Builder {
	if b.data == nil {
		b.data = make(map[string][]Value)
	}

	if col == nil {
		if _, ok := b.data[name]; !ok {
			return b
		}
		delete(b.data, name)
		for i, c := range b.cols {
			if c == name {
				b.cols = append(b.cols[:i], b.cols[i+1:]...)
				break
			}
		}
		return b
	}

	if _, ok := b.data[name]; !ok {
		if rows, known := b.len(); known && len(col) != rows {
			panic(fmt.Sprintf("new column %q has %d rows, but table has %d rows", name, len(col), rows))
		}
		b.cols = append(b.cols, name)
	} else if rows, known := b.lenExcept(name); known && len(col) != rows {
		panic(fmt.Sprintf("new column %q has %d rows, but table has %d rows", name, len(col), rows))
	}
	b.data[name] = col
	return b
}

// AddConst adds a column named name in which every cell is v.
func (b *Builder) AddConst(name string, v Value) *Builder {
	rows, _ := b.len()
	col := make([]Value, rows)
	for i := range col {
		col[i] = v
	}
	return b.Add(name, col)
}

func (b *Builder) len() (int, bool) {
	return b.lenExcept("")
}

func (b *Builder) lenExcept(skip string) (int, bool) {
	for _, c := range b.cols {
		if c != skip {
			return len(b.data[c]), true
		}
	}
	return 0, false
}

// Done returns the constructed Table. The Builder must not be used
// after Done.
func (b *Builder) Done() *Table {
	t := &Table{cols: b.cols, data: b.data}
	if t.data == nil {
		t.data = make(map[string][]Value)
	}
	if len(t.cols) > 0 {
		t.rows = len(t.data[t.cols[0]])
	}
	return t
}
