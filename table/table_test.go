// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"reflect"
	"regexp"
	"testing"
)

func de(x, y interface{}) bool {
	return reflect.DeepEqual(x, y)
}

func shouldPanic(t *testing.T, re string, f func()) {
	t.Helper()
	r := regexp.MustCompile(re)
	defer func() {
		err := recover()
		if err == nil {
			t.Fatalf("want panic matching %q; got no panic", re)
		} else if !r.MatchString(fmt.Sprintf("%s", err)) {
			t.Fatalf("panic %q does not match %q", err, re)
		}
	}()
	f()
}

func TestValue(t *testing.T) {
	if !Missing.Missing() {
		t.Fatal("zero Value is not missing")
	}
	if x, ok := Num(1.5).Num(); !ok || x != 1.5 {
		t.Fatalf("Num(1.5).Num() = %v, %v", x, ok)
	}
	if _, ok := Num(1.5).Str(); ok {
		t.Fatal("Num(1.5).Str() ok")
	}
	if s, ok := Str("a").Str(); !ok || s != "a" {
		t.Fatalf("Str(\"a\").Str() = %q, %v", s, ok)
	}
	if Num(1).Equal(Str("1")) {
		t.Fatal("Num(1) equals Str(\"1\")")
	}
	if !Missing.Equal(Value{}) {
		t.Fatal("missing values are not equal")
	}
	if v := Num(0.25).String(); v != "0.25" {
		t.Fatalf("Num(0.25).String() = %q", v)
	}
	if v := Missing.String(); v != "" {
		t.Fatalf("Missing.String() = %q", v)
	}
}

func TestEmptyTable(t *testing.T) {
	tab := new(Table)
	if v := tab.Len(); v != 0 {
		t.Fatalf("Table{}.Len() should be 0; got %v", v)
	}
	if v := tab.Columns(); v != nil {
		t.Fatalf("Table{}.Columns() should be nil; got %v", v)
	}
	if v := tab.Column("x"); v != nil {
		t.Fatalf("Table{}.Column(\"x\") should be nil; got %v", v)
	}
	shouldPanic(t, "unknown column", func() {
		tab.MustColumn("x")
	})
}

func TestBuilder(t *testing.T) {
	if v := new(Builder).Done(); v.Len() != 0 || v.Columns() != nil {
		t.Fatalf("empty builder built %v", v)
	}

	tab := new(Builder).Add("x", Nums(1, 2)).Add("y", Strs("a", "b")).Done()
	if v := tab.Len(); v != 2 {
		t.Fatalf("Len() = %v", v)
	}
	if v, w := tab.Columns(), []string{"x", "y"}; !de(v, w) {
		t.Fatalf("Columns() = %v; want %v", v, w)
	}
	if v := tab.MustColumn("x"); !de(v, Nums(1, 2)) {
		t.Fatalf("Column(x) = %v", v)
	}

	shouldPanic(t, `new column "z" has 3 rows, but table has 2 rows`, func() {
		NewBuilder(tab).Add("z", Nums(1, 2, 3))
	})

	// Re-adding a column keeps its position.
	tab2 := NewBuilder(tab).Add("x", Nums(3, 4)).Done()
	if v, w := tab2.Columns(), []string{"x", "y"}; !de(v, w) {
		t.Fatalf("Columns() = %v; want %v", v, w)
	}
	if v := tab2.MustColumn("x"); !de(v, Nums(3, 4)) {
		t.Fatalf("Column(x) = %v", v)
	}
	// The original table is unchanged.
	if v := tab.MustColumn("x"); !de(v, Nums(1, 2)) {
		t.Fatalf("original Column(x) = %v", v)
	}

	// Adding nil removes a column.
	tab3 := NewBuilder(tab).Add("y", nil).Done()
	if v, w := tab3.Columns(), []string{"x"}; !de(v, w) {
		t.Fatalf("Columns() = %v; want %v", v, w)
	}

	// AddConst fills every row.
	tab4 := NewBuilder(tab).AddConst("k", Str("c")).Done()
	if v := tab4.MustColumn("k"); !de(v, Strs("c", "c")) {
		t.Fatalf("Column(k) = %v", v)
	}
}

func TestRow(t *testing.T) {
	tab := new(Builder).Add("x", Nums(1, 2)).Done()
	r := tab.Row(1)
	if v := r.Get("x"); !v.Equal(Num(2)) {
		t.Fatalf("Row(1).Get(x) = %v", v)
	}
	if v := r.Index(); v != 1 {
		t.Fatalf("Row(1).Index() = %v", v)
	}
	shouldPanic(t, "out of range", func() {
		tab.Row(2)
	})
	shouldPanic(t, "unknown column", func() {
		r.Get("y")
	})
}

func TestColumnOrder(t *testing.T) {
	cols := []string{"a", "b", "c", "d"}
	for iter := 0; iter < 10; iter++ {
		b := new(Builder)
		for _, col := range cols {
			b.Add(col, Nums())
		}
		tab := b.Done()
		if !de(cols, tab.Columns()) {
			t.Fatalf("want %v; got %v", cols, tab.Columns())
		}
	}
}
