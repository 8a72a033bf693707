// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coef loads pre-fit regression model summaries and prepares
// their fixed-effect estimates for plotting.
//
// A model summary is an opaque artifact produced by an external
// fitting run: an ordered list of coefficients, each with a point
// estimate and the bounds of its credible interval, on the model's
// native scale (log-odds for a binary model). This package never fits
// anything; it filters out nuisance terms, maps internal coefficient
// names to display labels, and optionally transforms the estimates to
// a probability scale.
package coef

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"

	"github.com/lingstat/synmet/table"
)

// An Estimate is one model coefficient: a point estimate and credible
// interval bounds on the model-native scale.
type Estimate struct {
	Term     string  `json:"term"`
	Estimate float64 `json:"estimate"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
}

// A Summary is the ordered coefficient table of a fitted model.
type Summary []Estimate

// ReadJSON loads a model summary from a JSON array of estimate
// objects, preserving coefficient order.
func ReadJSON(path string) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model summary: %w", err)
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// InvLogit maps a log-odds value to a probability: 1/(1+exp(-x)).
func InvLogit(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// An UnmappedCoefficientError reports a coefficient that survived
// extraction but has no display label, which would otherwise leak an
// internal model term name into a plot.
type UnmappedCoefficientError struct {
	Term string
}

func (e *UnmappedCoefficientError) Error() string {
	return fmt.Sprintf("coefficient %q has no display label", e.Term)
}

// ExtractOptions controls Extract.
type ExtractOptions struct {
	// Exclude lists regular expressions; a coefficient whose term
	// name matches any of them is dropped (intercepts, group-level
	// deviations, and other nuisance rows).
	Exclude []string

	// Rename maps surviving term names to display labels. Every
	// surviving term must have an entry.
	Rename map[string]string

	// Transform, if non-nil, is applied elementwise to the estimate
	// and both interval bounds, e.g. InvLogit to map log-odds to
	// probabilities.
	Transform func(float64) float64
}

// Extract filters, relabels, and optionally rescales s, returning a
// table with columns "term", "estimate", "lower", and "upper" in s's
// coefficient order. A surviving term with no Rename entry fails with
// an *UnmappedCoefficientError.
func (s Summary) Extract(opts ExtractOptions) (*table.Table, error) {
	excl := make([]*regexp.Regexp, len(opts.Exclude))
	for i, pat := range opts.Exclude {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("bad exclusion pattern %q: %w", pat, err)
		}
		excl[i] = re
	}

	id := func(x float64) float64 { return x }
	tr := opts.Transform
	if tr == nil {
		tr = id
	}

	terms, ests := []table.Value{}, []table.Value{}
	los, his := []table.Value{}, []table.Value{}
next:
	for _, e := range s {
		for _, re := range excl {
			if re.MatchString(e.Term) {
				continue next
			}
		}
		label, ok := opts.Rename[e.Term]
		if !ok {
			return nil, &UnmappedCoefficientError{Term: e.Term}
		}
		terms = append(terms, table.Str(label))
		ests = append(ests, table.Num(tr(e.Estimate)))
		los = append(los, table.Num(tr(e.Lower)))
		his = append(his, table.Num(tr(e.Upper)))
	}

	return new(table.Builder).
		Add("term", terms).
		Add("estimate", ests).
		Add("lower", los).
		Add("upper", his).
		Done(), nil
}
