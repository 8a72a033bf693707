// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot builds declarative, multi-layer statistical charts and
// renders them to image files.
//
// A Plot accumulates typed layers (density areas, ridge stacks,
// point/interval marks, reference lines, text annotations, repelled
// labels); z-order is insertion order. Axis ranges and ticks may be
// set explicitly or derived from the layers. Render compiles the
// accumulated layers once and writes every requested output file from
// the same compiled chart, so the raster and vector versions of a
// plot always agree.
//
// A Plot starts out mutable. Render finalizes it: adding layers to a
// rendered Plot (or rendering it again) fails with a
// *FinalizedError.
package plot

import (
	"fmt"
	"math"
)

// A Tick is one axis tick mark with its label.
type Tick struct {
	Value float64
	Label string
}

type axis struct {
	label    string
	min, max float64 // NaN means derive from the layers
	ticks    []Tick
}

// A Plot is an accumulator of chart layers.
type Plot struct {
	title    string
	x, y     axis
	layers   []Layer
	rendered bool
}

// New returns an empty Plot with automatic axes.
func New(title string) *Plot {
	nan := math.NaN()
	return &Plot{
		title: title,
		x:     axis{min: nan, max: nan},
		y:     axis{min: nan, max: nan},
	}
}

// SetX sets the X axis label and range. Pass NaN for min or max to
// derive that bound from the layers.
func (p *Plot) SetX(label string, min, max float64) *Plot {
	p.x.label, p.x.min, p.x.max = label, min, max
	return p
}

// SetY sets the Y axis label and range. Pass NaN for min or max to
// derive that bound from the layers.
func (p *Plot) SetY(label string, min, max float64) *Plot {
	p.y.label, p.y.min, p.y.max = label, min, max
	return p
}

// SetXTicks sets an explicit X tick sequence, overriding the
// automatic ticks.
func (p *Plot) SetXTicks(ticks []Tick) *Plot {
	p.x.ticks = ticks
	return p
}

// SetYTicks sets an explicit Y tick sequence, overriding the
// automatic ticks.
func (p *Plot) SetYTicks(ticks []Tick) *Plot {
	p.y.ticks = ticks
	return p
}

// Ticks builds an evenly labeled tick sequence from values, formatted
// with %g.
func Ticks(values ...float64) []Tick {
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{v, fmt.Sprintf("%g", v)}
	}
	return ticks
}

// A FinalizedError reports an attempt to modify or re-render a Plot
// that has already been rendered.
type FinalizedError struct {
	Title string
}

func (e *FinalizedError) Error() string {
	return fmt.Sprintf("plot %q is already rendered", e.Title)
}

// Add appends a layer to p. Layers draw in insertion order, so later
// layers draw on top of earlier ones. Add fails with a
// *FinalizedError if p has been rendered.
func (p *Plot) Add(l Layer) error {
	if p.rendered {
		return &FinalizedError{p.title}
	}
	p.layers = append(p.layers, l)
	return nil
}
