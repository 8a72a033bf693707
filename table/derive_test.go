// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "testing"

func TestRatio(t *testing.T) {
	tab := new(Builder).
		Add("hierarchy_tokens_nots_novs", Nums(4, 9)).
		Add("total", Nums(20, 10)).
		Done()
	tab = Ratio(tab, "prop_red", "hierarchy_tokens_nots_novs", "total")
	if v := tab.MustColumn("prop_red"); !de(v, Nums(0.2, 0.9)) {
		t.Fatalf("prop_red = %v; want [0.2 0.9]", v)
	}
}

func TestRatioMissing(t *testing.T) {
	tab := new(Builder).
		Add("a", []Value{Num(1), Missing, Num(3), Str("x")}).
		Add("b", []Value{Num(0), Num(2), Missing, Num(2)}).
		Done()
	tab = Ratio(tab, "r", "a", "b")
	// Zero denominator, missing operands, and non-numeric operands
	// all yield missing, never an error.
	if v := tab.MustColumn("r"); !de(v, []Value{Missing, Missing, Missing, Missing}) {
		t.Fatalf("r = %v; want all missing", v)
	}
	if v := tab.Len(); v != 4 {
		t.Fatalf("Len() = %v", v)
	}
}

func TestRatioUnknownColumn(t *testing.T) {
	tab := new(Builder).Add("a", Nums(1)).Done()
	shouldPanic(t, "unknown column", func() {
		Ratio(tab, "r", "a", "nope")
	})
}
