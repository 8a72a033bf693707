// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadCSV reads a delimited text table from path. comma is the field
// delimiter; 0 means ','. The first record is the header row; column
// names are normalized to lower case with surrounding space removed.
//
// Cell types are inferred per column: if every non-empty cell in a
// column parses as a number, the column is numeric; otherwise it is a
// string column. Empty cells load as missing in either case.
//
// A missing or unreadable file is reported as a wrapped I/O error. A
// record with the wrong number of fields or a duplicate column name
// is reported as a *ParseError.
func ReadCSV(path string, comma rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	defer f.Close()

	t, err := readCSV(f, comma)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func readCSV(r io.Reader, comma rune) (*Table, error) {
	cr := csv.NewReader(r)
	if comma != 0 {
		cr.Comma = comma
	}

	records, err := cr.ReadAll()
	if err != nil {
		var ce *csv.ParseError
		if errors.As(err, &ce) {
			return nil, &ParseError{Line: ce.Line, Err: ce.Err}
		}
		return nil, err
	}
	if len(records) == 0 {
		return nil, &ParseError{Line: 1, Err: fmt.Errorf("missing header row")}
	}

	header := records[0]
	names := make([]string, len(header))
	seen := make(map[string]bool)
	for i, h := range header {
		name := normalizeName(h)
		if name == "" {
			return nil, &ParseError{Line: 1, Err: fmt.Errorf("empty column name in field %d", i+1)}
		}
		if seen[name] {
			return nil, &ParseError{Line: 1, Err: fmt.Errorf("duplicate column %q", name)}
		}
		seen[name] = true
		names[i] = name
	}

	rows := records[1:]
	b := new(Builder)
	for i, name := range names {
		raw := make([]string, len(rows))
		for j, rec := range rows {
			raw[j] = rec[i]
		}
		b.Add(name, inferColumn(raw))
	}
	return b.Done(), nil
}

// normalizeName canonicalizes a header field: it strips a leading
// byte-order mark, trims space, and lower-cases the name.
func normalizeName(h string) string {
	h = strings.TrimPrefix(h, "\uFEFF")
	return strings.ToLower(strings.TrimSpace(h))
}

// inferColumn converts raw cells to Values. In the manner of
// bench.ParseValues, the numeric interpretation is used only if it
// parses every non-empty cell; otherwise all cells fall back to
// strings.
func inferColumn(raw []string) []Value {
	numeric := false
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			numeric = false
			break
		}
		numeric = true
	}

	col := make([]Value, len(raw))
	for i, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue // missing
		}
		if numeric {
			x, _ := strconv.ParseFloat(s, 64)
			col[i] = Num(x)
		} else {
			col[i] = Str(s)
		}
	}
	return col
}
