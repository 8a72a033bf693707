// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"errors"
	"testing"
)

var stateTemp = new(Builder).
	Add("state", Strs("Alabama", "Alaska")).
	Add("high", Nums(122, 100)).
	Add("low", Nums(-27, -80)).
	Done()

func TestUnpivot(t *testing.T) {
	long := Unpivot(stateTemp, "kind", "temperature", "high", "low")
	if v, w := long.Columns(), []string{"state", "kind", "temperature"}; !de(v, w) {
		t.Fatalf("Columns() = %v; want %v", v, w)
	}
	if v := long.Len(); v != 4 {
		t.Fatalf("Len() = %v; want 4", v)
	}
	if v := long.MustColumn("state"); !de(v, Strs("Alabama", "Alabama", "Alaska", "Alaska")) {
		t.Fatalf("state = %v", v)
	}
	if v := long.MustColumn("kind"); !de(v, Strs("high", "low", "high", "low")) {
		t.Fatalf("kind = %v", v)
	}
	if v := long.MustColumn("temperature"); !de(v, Nums(122, -27, 100, -80)) {
		t.Fatalf("temperature = %v", v)
	}

	shouldPanic(t, "at least 1 column", func() {
		Unpivot(stateTemp, "kind", "temperature")
	})
	shouldPanic(t, "unknown column", func() {
		Unpivot(stateTemp, "kind", "temperature", "nope")
	})
}

func TestPivotRoundTrip(t *testing.T) {
	long := Unpivot(stateTemp, "kind", "temperature", "high", "low")
	wide, err := Pivot(long, "kind", "temperature")
	if err != nil {
		t.Fatal(err)
	}
	if v, w := wide.Columns(), stateTemp.Columns(); !de(v, w) {
		t.Fatalf("Columns() = %v; want %v", v, w)
	}
	for _, col := range stateTemp.Columns() {
		if v, w := wide.MustColumn(col), stateTemp.MustColumn(col); !de(v, w) {
			t.Fatalf("column %q = %v; want %v", col, v, w)
		}
	}
}

func TestPivotAmbiguous(t *testing.T) {
	long := new(Builder).
		Add("id", Strs("a", "a")).
		Add("kind", Strs("x", "x")).
		Add("v", Nums(1, 2)).
		Done()
	_, err := Pivot(long, "kind", "v")
	var ae *AmbiguousReshapeError
	if !errors.As(err, &ae) {
		t.Fatalf("want *AmbiguousReshapeError; got %v", err)
	}
	if ae.Name != "x" || ae.ID != "a" {
		t.Fatalf("AmbiguousReshapeError = %+v", ae)
	}
}

func TestPivotMissingFill(t *testing.T) {
	// "b" has no "low" row, so the wide cell is missing.
	long := new(Builder).
		Add("id", Strs("a", "a", "b")).
		Add("kind", Strs("high", "low", "high")).
		Add("v", Nums(1, 2, 3)).
		Done()
	wide, err := Pivot(long, "kind", "v")
	if err != nil {
		t.Fatal(err)
	}
	if v := wide.Len(); v != 2 {
		t.Fatalf("Len() = %v; want 2", v)
	}
	if v := wide.MustColumn("low"); !de(v, []Value{Num(2), Missing}) {
		t.Fatalf("low = %v", v)
	}
}
