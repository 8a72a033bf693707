// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"strings"
)

// An AggFunc is a summary statistic computed per group.
type AggFunc int

const (
	// AggCount counts the rows of the group. It includes rows whose
	// source cell is missing; use a Filter first to count non-missing
	// cells only.
	AggCount AggFunc = iota

	// AggMean averages the numeric cells of the source column.
	// Missing and non-numeric cells contribute to neither the
	// numerator nor the denominator; a group with no numeric cells
	// gets a missing mean.
	AggMean
)

// An Agg names a source column, the statistic to compute over it, and
// the output column name. Col may be "" for AggCount, which needs no
// source.
type Agg struct {
	Col string
	Fn  AggFunc
	As  string
}

// Summarize groups t by the given columns and computes each Agg per
// group. The output has the group columns followed by one column per
// Agg, with one row per distinct combination of group values, in
// order of first appearance in t.
func Summarize(t *Table, by []string, aggs ...Agg) *Table {
	for _, c := range by {
		t.MustColumn(c)
	}
	for _, a := range aggs {
		if a.Col != "" {
			t.MustColumn(a.Col)
		} else if a.Fn != AggCount {
			panic(fmt.Sprintf("aggregation %q requires a source column", a.As))
		}
	}

	groupKey := func(i int) string {
		parts := make([]string, len(by))
		for k, c := range by {
			parts[k] = t.Column(c)[i].key()
		}
		return strings.Join(parts, "\x00")
	}

	var order []string
	groups := make(map[string][]int)
	for i := 0; i < t.Len(); i++ {
		k := groupKey(i)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	b := new(Builder)
	for _, c := range by {
		src := t.Column(c)
		col := make([]Value, len(order))
		for g, k := range order {
			col[g] = src[groups[k][0]]
		}
		b.Add(c, col)
	}

	for _, a := range aggs {
		col := make([]Value, len(order))
		for g, k := range order {
			col[g] = aggregate(t, a, groups[k])
		}
		b.Add(a.As, col)
	}
	return b.Done()
}

func aggregate(t *Table, a Agg, rows []int) Value {
	switch a.Fn {
	case AggCount:
		return Num(float64(len(rows)))
	case AggMean:
		src := t.Column(a.Col)
		sum, n := 0.0, 0
		for _, i := range rows {
			if x, ok := src[i].Num(); ok {
				sum += x
				n++
			}
		}
		if n == 0 {
			return Missing
		}
		return Num(sum / float64(n))
	}
	panic(fmt.Sprintf("unknown aggregation function %d", a.Fn))
}
