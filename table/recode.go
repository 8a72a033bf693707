// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Levels is an explicit ordering of category labels for a categorical
// column. The first label has rank 1 and so on; a survey scale file
// lists them top to bottom.
type Levels []string

// ReadLevels reads a level ordering from a plain text file with one
// label per line, rank 1 first. Blank lines are skipped.
func ReadLevels(path string) (Levels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading levels: %w", err)
	}
	defer f.Close()

	var levels Levels
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		levels = append(levels, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading levels: %w", err)
	}
	if len(levels) == 0 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("no levels in file")}
	}
	return levels, nil
}

// Rank returns the 1-indexed position of label s, or ok=false if s is
// not a declared level.
func (l Levels) Rank(s string) (rank int, ok bool) {
	for i, lv := range l {
		if lv == s {
			return i + 1, true
		}
	}
	return 0, false
}

// Recode validates every value of column col against levels and
// returns t with an appended numeric column named col + " rank"
// holding each value's 1-indexed position in levels. Missing cells
// recode to missing ranks. Any other value outside levels fails with
// an *UnknownLevelError naming the value and its row.
func Recode(t *Table, col string, levels Levels) (*Table, error) {
	src := t.MustColumn(col)
	ranks := make([]Value, t.Len())
	for i, v := range src {
		if v.Missing() {
			continue
		}
		r, ok := levels.Rank(v.String())
		if !ok {
			return nil, &UnknownLevelError{Column: col, Row: i, Value: v.String()}
		}
		ranks[i] = Num(float64(r))
	}
	return NewBuilder(t).Add(col+" rank", ranks).Done(), nil
}
