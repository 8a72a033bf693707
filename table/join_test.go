// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "testing"

func TestLeftJoin(t *testing.T) {
	left := new(Builder).
		Add("item", Strs("i1", "i2", "i3")).
		Add("rating", Nums(4, 2, 6)).
		Done()
	right := new(Builder).
		Add("item", Strs("i2", "i1")).
		Add("pair", Strs("taste-sound", "touch-sight")).
		Done()

	got := LeftJoin(left, right, On("item")...)
	if v := got.Len(); v != left.Len() {
		t.Fatalf("Len() = %v; want %v", v, left.Len())
	}
	if v, w := got.Columns(), []string{"item", "rating", "pair"}; !de(v, w) {
		t.Fatalf("Columns() = %v; want %v", v, w)
	}
	// Left order is preserved; i3 has no match and gets missing fill.
	if v := got.MustColumn("pair"); !de(v, []Value{Str("touch-sight"), Str("taste-sound"), Missing}) {
		t.Fatalf("pair = %v", v)
	}
}

func TestLeftJoinFanOut(t *testing.T) {
	left := new(Builder).Add("k", Strs("a", "b")).Done()
	right := new(Builder).
		Add("k", Strs("a", "a")).
		Add("v", Nums(1, 2)).
		Done()

	got := LeftJoin(left, right, On("k")...)
	// Duplicate right keys fan out: one output row per match.
	if v := got.Len(); v != 3 {
		t.Fatalf("Len() = %v; want 3", v)
	}
	if v := got.MustColumn("k"); !de(v, Strs("a", "a", "b")) {
		t.Fatalf("k = %v", v)
	}
	if v := got.MustColumn("v"); !de(v, []Value{Num(1), Num(2), Missing}) {
		t.Fatalf("v = %v", v)
	}
}

func TestLeftJoinSuffix(t *testing.T) {
	left := new(Builder).
		Add("k", Strs("a")).
		Add("n", Nums(1)).
		Done()
	right := new(Builder).
		Add("k", Strs("a")).
		Add("n", Nums(2)).
		Done()

	got := LeftJoin(left, right, On("k")...)
	if v, w := got.Columns(), []string{"k", "n", "n (right)"}; !de(v, w) {
		t.Fatalf("Columns() = %v; want %v", v, w)
	}
	if v := got.MustColumn("n"); !de(v, Nums(1)) {
		t.Fatalf("n = %v", v)
	}
	if v := got.MustColumn("n (right)"); !de(v, Nums(2)) {
		t.Fatalf("n (right) = %v", v)
	}
}

func TestLeftJoinDifferentKeyNames(t *testing.T) {
	left := new(Builder).Add("stimulus", Strs("i1")).Done()
	right := new(Builder).
		Add("item", Strs("i1")).
		Add("pair", Strs("taste-sound")).
		Done()

	got := LeftJoin(left, right, JoinKey{"stimulus", "item"})
	if v, w := got.Columns(), []string{"stimulus", "pair"}; !de(v, w) {
		t.Fatalf("Columns() = %v; want %v", v, w)
	}
	if v := got.MustColumn("pair"); !de(v, Strs("taste-sound")) {
		t.Fatalf("pair = %v", v)
	}
}
