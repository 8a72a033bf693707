// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"math"

	"github.com/aclements/go-gg/palette"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// A Layer is one drawable component of a Plot.
type Layer interface {
	// extent reports the data range the layer occupies. Any bound
	// may be NaN when the layer adapts to whatever range the other
	// layers establish.
	extent() (xmin, xmax, ymin, ymax float64)

	// compile turns the layer into renderable chart series for the
	// resolved axis ranges.
	compile(f frame) ([]chart.Series, error)
}

// frame carries the resolved axis ranges to layer compilation.
type frame struct {
	xmin, xmax float64
	ymin, ymax float64
}

// Density draws a smoothed empirical density curve over Xs as a
// filled area with an outline.
type Density struct {
	// Xs are the sample values.
	Xs []float64

	// Fill is the area color. The zero color means a default blue.
	Fill drawing.Color

	// Opacity is the fill opacity in (0, 1]. 0 means a default of
	// 0.35.
	Opacity float64

	// Bandwidth is the kernel bandwidth. 0 means Scott's estimate.
	Bandwidth float64

	// N is the number of points the curve is sampled at. 0 means
	// 200.
	N int
}

func (l Density) extent() (xmin, xmax, ymin, ymax float64) {
	xs, ys := kdeCurve(l.Xs, l.Bandwidth, l.N)
	if len(xs) == 0 {
		nan := math.NaN()
		return nan, nan, nan, nan
	}
	return xs[0], xs[len(xs)-1], 0, maxOf(ys)
}

// A RidgeGroup is one category of a Ridge layer: a label and the
// sample values whose density is drawn on that category's row.
type RidgeGroup struct {
	Label string
	Xs    []float64
}

// Ridge draws one density curve per category, stacked along the Y
// axis: group i sits on the baseline y = i+1 and its curve is scaled
// to rise at most Height above it.
type Ridge struct {
	Groups []RidgeGroup

	// Height is the vertical span of each curve in category units.
	// Values above 1 overlap neighboring rows. 0 means 0.9.
	Height float64

	// Palette colors the curves by row. nil means a sequential blue
	// gradient (go-gg palette).
	Palette palette.Continuous

	// Bandwidth and N are as in Density. The bandwidth is shared by
	// all groups so their curves are comparable.
	Bandwidth float64
	N         int
}

func (l Ridge) height() float64 {
	if l.Height == 0 {
		return 0.9
	}
	return l.Height
}

func (l Ridge) extent() (xmin, xmax, ymin, ymax float64) {
	nan := math.NaN()
	xmin, xmax = nan, nan
	for _, g := range l.Groups {
		xs, _ := kdeCurve(g.Xs, l.Bandwidth, l.N)
		if len(xs) == 0 {
			continue
		}
		xmin = minNaN(xmin, xs[0])
		xmax = maxNaN(xmax, xs[len(xs)-1])
	}
	return xmin, xmax, 0.5, float64(len(l.Groups)) + l.height()
}

// Ticks returns a Y tick per group, for labeling the categorical
// axis of the ridge.
func (l Ridge) Ticks() []Tick {
	ticks := make([]Tick, len(l.Groups))
	for i, g := range l.Groups {
		ticks[i] = Tick{float64(i + 1), g.Label}
	}
	return ticks
}

// An IntervalPoint is one mark of an Interval layer: a point estimate
// at (X, Y) and an interval [Lo, Hi] along the layer's interval axis.
// Lo and Hi may be NaN to draw the point alone.
type IntervalPoint struct {
	X, Y   float64
	Lo, Hi float64
}

// Interval draws point estimates with credible-interval whiskers.
type Interval struct {
	Points []IntervalPoint

	// Horizontal lays the interval along the X axis at height Y;
	// otherwise it runs along the Y axis at position X.
	Horizontal bool

	// Color is the mark color. The zero color means a near-black
	// default.
	Color drawing.Color

	// Unclipped lets marks draw outside the plot area instead of
	// clipping to it.
	Unclipped bool
}

func (l Interval) extent() (xmin, xmax, ymin, ymax float64) {
	nan := math.NaN()
	xmin, xmax, ymin, ymax = nan, nan, nan, nan
	for _, pt := range l.Points {
		xmin, xmax = minNaN(xmin, pt.X), maxNaN(xmax, pt.X)
		ymin, ymax = minNaN(ymin, pt.Y), maxNaN(ymax, pt.Y)
		if l.Horizontal {
			xmin, xmax = minNaN(xmin, pt.Lo), maxNaN(xmax, pt.Hi)
		} else {
			ymin, ymax = minNaN(ymin, pt.Lo), maxNaN(ymax, pt.Hi)
		}
	}
	return
}

// RefLine draws a fixed reference line across the plot, such as a
// chance level.
type RefLine struct {
	// Vertical draws the line at X = At; otherwise at Y = At.
	Vertical bool
	At       float64

	// Color is the line color. The zero color means gray.
	Color drawing.Color

	// Dashed draws a dashed line.
	Dashed bool
}

func (l RefLine) extent() (xmin, xmax, ymin, ymax float64) {
	nan := math.NaN()
	return nan, nan, nan, nan
}

// Text draws a literal annotation anchored at a data coordinate. The
// Boxed variant draws a background box behind the text so it stays
// legible over dense marks; the plain variant does not.
type Text struct {
	X, Y float64
	Text string

	Boxed bool

	// Color is the text color. The zero color means near-black.
	Color drawing.Color

	// Size is the font size in points. 0 means 10.
	Size float64

	// Unclipped lets the text draw outside the plot area.
	Unclipped bool
}

func (l Text) extent() (xmin, xmax, ymin, ymax float64) {
	return l.X, l.X, l.Y, l.Y
}

// A LabelPoint is one labeled anchor of a RepelLabels layer.
type LabelPoint struct {
	X, Y  float64
	Label string
}

// RepelLabels draws point labels whose placement is iteratively
// adjusted to reduce overlap. Placement is deterministic for a given
// Seed, so repeated renders of the same plot lay labels out
// identically.
type RepelLabels struct {
	Points []LabelPoint

	// Seed seeds the placement jitter. Pass any fixed value for
	// reproducible output.
	Seed int64

	// Color is the label color. The zero color means near-black.
	Color drawing.Color

	// Size is the font size in points. 0 means 9.
	Size float64
}

func (l RepelLabels) extent() (xmin, xmax, ymin, ymax float64) {
	nan := math.NaN()
	xmin, xmax, ymin, ymax = nan, nan, nan, nan
	for _, pt := range l.Points {
		xmin, xmax = minNaN(xmin, pt.X), maxNaN(xmax, pt.X)
		ymin, ymax = minNaN(ymin, pt.Y), maxNaN(ymax, pt.Y)
	}
	return
}

func minNaN(a, b float64) float64 {
	if math.IsNaN(a) || b < a {
		return b
	}
	return a
}

func maxNaN(a, b float64) float64 {
	if math.IsNaN(a) || b > a {
		return b
	}
	return a
}

func maxOf(xs []float64) float64 {
	m := math.NaN()
	for _, x := range xs {
		m = maxNaN(m, x)
	}
	return m
}
