// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/lingstat/synmet/table"
)

// longTable builds a long-form response table from parallel
// participant/response slices; "" marks a skipped item.
func longTable(participants, responses []string) *table.Table {
	resp := make([]table.Value, len(responses))
	for i, r := range responses {
		if r != "" {
			resp[i] = table.Str(r)
		}
	}
	return new(table.Builder).
		Add("participant", table.Strs(participants...)).
		Add("response", resp).
		Done()
}

func TestExcludeStraightliners(t *testing.T) {
	long := longTable(
		[]string{"p1", "p1", "p1", "p1", "p1", "p2", "p2", "p2", "p2", "p2"},
		[]string{"a", "a", "a", "b", "c", "a", "b", "c", "d", "e"},
	)
	kept, excluded := excludeStraightliners(long, 40)
	if excluded != 1 {
		t.Fatalf("excluded = %d; want 1", excluded)
	}
	if kept.Len() != 5 {
		t.Fatalf("kept %d rows; want 5", kept.Len())
	}
	for i := 0; i < kept.Len(); i++ {
		if p, _ := kept.Row(i).Get("participant").Str(); p == "p1" {
			t.Fatalf("row %d: straightliner p1 not excluded", i)
		}
	}
}

func TestExcludeStraightlinersSkippedItems(t *testing.T) {
	// Six distinct answers and four skipped items: the skips must not
	// count as a repeated response, so nothing is excluded.
	long := longTable(
		[]string{"p1", "p1", "p1", "p1", "p1", "p1", "p1", "p1", "p1", "p1"},
		[]string{"a", "b", "c", "d", "e", "f", "", "", "", ""},
	)
	kept, excluded := excludeStraightliners(long, 40)
	if excluded != 0 {
		t.Fatalf("excluded = %d; want 0", excluded)
	}
	if kept.Len() != long.Len() {
		t.Fatalf("kept %d rows of %d", kept.Len(), long.Len())
	}
}

func TestExcludeStraightlinersAnsweredDenominator(t *testing.T) {
	// Three identical answers out of five answered items is 60%,
	// over threshold even though it is only 30% of all ten rows.
	long := longTable(
		[]string{"p1", "p1", "p1", "p1", "p1", "p1", "p1", "p1", "p1", "p1"},
		[]string{"a", "a", "a", "b", "c", "", "", "", "", ""},
	)
	_, excluded := excludeStraightliners(long, 40)
	if excluded != 1 {
		t.Fatalf("excluded = %d; want 1", excluded)
	}
}
