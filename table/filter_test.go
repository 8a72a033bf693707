// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "testing"

func TestFilter(t *testing.T) {
	tab := new(Builder).
		Add("p", Strs("p1", "p2", "p3")).
		Add("x", Nums(1, 2, 3)).
		Done()
	got, excluded := Filter(tab, func(r Row) bool {
		x, _ := r.Get("x").Num()
		return x >= 2
	})
	if excluded != 1 {
		t.Fatalf("excluded = %v; want 1", excluded)
	}
	if v := got.MustColumn("p"); !de(v, Strs("p2", "p3")) {
		t.Fatalf("p = %v", v)
	}
	// The input table is unchanged.
	if v := tab.Len(); v != 3 {
		t.Fatalf("input Len() = %v", v)
	}
}

func TestFilterEq(t *testing.T) {
	tab := new(Builder).Add("branch", Strs("master", "dev", "master")).Done()
	got, excluded := FilterEq(tab, "branch", Str("master"))
	if got.Len() != 2 || excluded != 1 {
		t.Fatalf("Len() = %v, excluded = %v", got.Len(), excluded)
	}
}

// TestFilterStraightliners exercises the compound exclusion workflow:
// count identical responses per participant, then drop participants
// whose top count reaches a threshold.
func TestFilterStraightliners(t *testing.T) {
	long := new(Builder).
		Add("participant", Strs("p1", "p1", "p1", "p2", "p2", "p2")).
		Add("response", Strs("a", "a", "a", "a", "b", "c")).
		Done()

	counts := Summarize(long, []string{"participant", "response"},
		Agg{Fn: AggCount, As: "n"})
	flagged := make(map[string]bool)
	bad, _ := Filter(counts, func(r Row) bool {
		n, _ := r.Get("n").Num()
		return n >= 3
	})
	for _, v := range bad.MustColumn("participant") {
		s, _ := v.Str()
		flagged[s] = true
	}

	kept, excluded := Filter(long, func(r Row) bool {
		s, _ := r.Get("participant").Str()
		return !flagged[s]
	})
	if excluded != 3 {
		t.Fatalf("excluded = %v; want 3", excluded)
	}
	if v := kept.MustColumn("participant"); !de(v, Strs("p2", "p2", "p2")) {
		t.Fatalf("participant = %v", v)
	}
}
