// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "fmt"

// A ParseError reports a malformed input table, such as a row whose
// field count does not match the header.
type ParseError struct {
	Path string // input file
	Line int    // 1-based line number, 0 if unknown
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// An UnknownLevelError reports a categorical value that is not in the
// declared level ordering for its column.
type UnknownLevelError struct {
	Column string
	Row    int // 0-based row index
	Value  string
}

func (e *UnknownLevelError) Error() string {
	return fmt.Sprintf("column %q, row %d: value %q is not a declared level", e.Column, e.Row, e.Value)
}

// An AmbiguousReshapeError reports that a long-to-wide reshape found
// two rows with the same id columns and the same name value, so the
// wide cell they map to is not unique.
type AmbiguousReshapeError struct {
	Name string // value of the name column
	ID   string // formatted id column values
}

func (e *AmbiguousReshapeError) Error() string {
	return fmt.Sprintf("ambiguous reshape: duplicate rows for id (%s), name %q", e.ID, e.Name)
}
