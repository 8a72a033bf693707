// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"math"
	"math/rand"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// labelBox is a label rectangle in pixel space. cx, cy is the box
// center; ax, ay is the data point the label belongs to.
type labelBox struct {
	cx, cy int
	w, h   int
	ax, ay int
}

func (b labelBox) overlaps(o labelBox) bool {
	return abs(b.cx-o.cx)*2 < b.w+o.w+2 && abs(b.cy-o.cy)*2 < b.h+o.h+2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Label extents are measured with a fixed bitmap face rather than
// the renderer's font so the layout is the same in every output
// format.
func labelExtent(s string) (w, h int) {
	return font.MeasureString(basicfont.Face7x13, s).Ceil(), basicfont.Face7x13.Height
}

// placeLabels nudges overlapping boxes apart, then clamps them to
// bounds. The relaxation is seeded, so a layout is reproducible.
func placeLabels(boxes []labelBox, seed int64, bounds chart.Box) {
	rng := rand.New(rand.NewSource(seed))

	const maxIter = 200
	for iter := 0; iter < maxIter; iter++ {
		moved := false
		for i := range boxes {
			for j := i + 1; j < len(boxes); j++ {
				if !boxes[i].overlaps(boxes[j]) {
					continue
				}
				moved = true
				// Push apart vertically, with a seeded jitter to
				// break ties between stacked labels.
				dir := 1
				if boxes[i].cy > boxes[j].cy {
					dir = -1
				} else if boxes[i].cy == boxes[j].cy && rng.Intn(2) == 0 {
					dir = -1
				}
				step := 2 + rng.Intn(2)
				boxes[i].cy -= dir * step
				boxes[j].cy += dir * step

				if boxes[i].cx == boxes[j].cx {
					dx := 1 + rng.Intn(2)
					boxes[i].cx -= dx
					boxes[j].cx += dx
				}
			}
		}
		if !moved {
			break
		}
	}

	for i := range boxes {
		b := &boxes[i]
		b.cx = clampInt(b.cx, bounds.Left+b.w/2, bounds.Right-b.w/2)
		b.cy = clampInt(b.cy, bounds.Top+b.h/2, bounds.Bottom-b.h/2)
	}
}

// repelSeries draws point labels that avoid overlapping each other,
// with leader lines back to displaced points.
type repelSeries struct {
	pts   []LabelPoint
	seed  int64
	color drawing.Color
	size  float64
}

func (s *repelSeries) GetName() string           { return "labels" }
func (s *repelSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s *repelSeries) GetStyle() chart.Style     { return chart.Style{} }
func (s *repelSeries) Validate() error           { return nil }

func (s *repelSeries) Render(r chart.Renderer, cb chart.Box, xr, yr chart.Range, _ chart.Style) {
	if len(s.pts) == 0 {
		return
	}
	pf := pixelFrame{cb, xr, yr, true}

	boxes := make([]labelBox, len(s.pts))
	for i, pt := range s.pts {
		w, h := labelExtent(pt.Label)
		x, y := pf.x(pt.X), pf.y(pt.Y)
		boxes[i] = labelBox{
			cx: x, cy: y - h, // start just above the point
			w: w + 4, h: h + 2,
			ax: x, ay: y,
		}
	}
	placeLabels(boxes, s.seed, cb)

	if f, err := chart.GetDefaultFont(); err == nil {
		r.SetFont(f)
	}
	r.SetFontColor(s.color)
	r.SetFontSize(s.size)

	for i, b := range boxes {
		// Leader line when the label landed away from its point.
		d2 := (b.cx-b.ax)*(b.cx-b.ax) + (b.cy-b.ay)*(b.cy-b.ay)
		if math.Sqrt(float64(d2)) > float64(b.h) {
			r.SetStrokeColor(colorGray)
			r.SetStrokeWidth(0.8)
			r.MoveTo(b.ax, b.ay)
			r.LineTo(b.cx, b.cy+b.h/2)
			r.Stroke()
		}
		tb := r.MeasureText(s.pts[i].Label)
		r.Text(s.pts[i].Label, b.cx-tb.Width()/2, b.cy+b.h/2-2)
	}
}
