// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

// Ratio returns t with an appended column out holding num/den for
// each row. A row's ratio is missing when either operand is missing
// or non-numeric, or when the denominator is zero; bad rows never
// fail the whole table.
func Ratio(t *Table, out, num, den string) *Table {
	ncol, dcol := t.MustColumn(num), t.MustColumn(den)
	col := make([]Value, t.Len())
	for i := range col {
		n, nok := ncol[i].Num()
		d, dok := dcol[i].Num()
		if !nok || !dok || d == 0 {
			continue // missing
		}
		col[i] = Num(n / d)
	}
	return NewBuilder(t).Add(out, col).Done()
}
