// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// An Output names one image file to render: the format comes from
// the path extension (.png for raster, .svg for vector).
type Output struct {
	Path          string
	Width, Height int
}

// Render compiles the accumulated layers and writes every output
// file from the same compiled chart. It finalizes p: once rendered,
// a Plot cannot gain layers or render again.
//
// If a later output fails after earlier ones were written, the
// earlier files are kept; the returned error names the output that
// failed.
func (p *Plot) Render(outputs ...Output) error {
	if p.rendered {
		return &FinalizedError{p.title}
	}
	if len(p.layers) == 0 {
		return fmt.Errorf("plot %q has no layers", p.title)
	}
	if len(outputs) == 0 {
		return fmt.Errorf("plot %q has no outputs", p.title)
	}

	f := p.resolveFrame()
	var series []chart.Series
	for _, l := range p.layers {
		ss, err := l.compile(f)
		if err != nil {
			return err
		}
		series = append(series, ss...)
	}
	xticks, yticks := p.resolveTicks(f)
	p.rendered = true

	for _, out := range outputs {
		ch := chart.Chart{
			Title:  p.title,
			Width:  out.Width,
			Height: out.Height,
			DPI:    96,
			Background: chart.Style{
				Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16},
			},
			XAxis: chart.XAxis{
				Name:  p.x.label,
				Range: &chart.ContinuousRange{Min: f.xmin, Max: f.xmax},
				Ticks: xticks,
			},
			YAxis: chart.YAxis{
				Name:  p.y.label,
				Range: &chart.ContinuousRange{Min: f.ymin, Max: f.ymax},
				Ticks: yticks,
			},
			Series: series,
		}
		if err := writeChart(ch, out.Path); err != nil {
			return err
		}
	}
	return nil
}

func writeChart(ch chart.Chart, path string) error {
	var provider chart.RendererProvider
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		provider = chart.PNG
	case ".svg":
		provider = chart.SVG
	default:
		return fmt.Errorf("%s: unsupported image format (want .png or .svg)", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	if err := ch.Render(provider, f); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}

// resolveFrame combines the explicit axis ranges with the extents of
// the layers. Derived bounds are padded slightly so marks stay off
// the plot border.
func (p *Plot) resolveFrame() frame {
	nan := math.NaN()
	dx0, dx1, dy0, dy1 := nan, nan, nan, nan
	for _, l := range p.layers {
		x0, x1, y0, y1 := l.extent()
		dx0, dx1 = minNaN(dx0, x0), maxNaN(dx1, x1)
		dy0, dy1 = minNaN(dy0, y0), maxNaN(dy1, y1)
	}

	f := frame{
		xmin: p.x.min, xmax: p.x.max,
		ymin: p.y.min, ymax: p.y.max,
	}
	f.xmin, f.xmax = resolveRange(f.xmin, f.xmax, dx0, dx1)
	f.ymin, f.ymax = resolveRange(f.ymin, f.ymax, dy0, dy1)
	return f
}

func resolveRange(min, max, dataMin, dataMax float64) (float64, float64) {
	pad := 0.0
	if !math.IsNaN(dataMin) && !math.IsNaN(dataMax) {
		pad = 0.05 * (dataMax - dataMin)
	}
	if math.IsNaN(min) {
		min = dataMin - pad
	}
	if math.IsNaN(max) {
		max = dataMax + pad
	}
	if math.IsNaN(min) || math.IsNaN(max) {
		return 0, 1
	}
	if min == max {
		return min - 1, max + 1
	}
	return min, max
}

func (p *Plot) resolveTicks(f frame) (xticks, yticks []chart.Tick) {
	xt := p.x.ticks
	if xt == nil {
		xt = autoTicks(f.xmin, f.xmax)
	}
	yt := p.y.ticks
	if yt == nil {
		// A lone ridge layer labels the Y axis with its groups.
		for _, l := range p.layers {
			if r, ok := l.(Ridge); ok && yt == nil {
				yt = r.Ticks()
			}
		}
		if yt == nil {
			yt = autoTicks(f.ymin, f.ymax)
		}
	}
	return spanTicks(xt, f.xmin, f.xmax), spanTicks(yt, f.ymin, f.ymax)
}

// autoTicks derives a tick sequence for [min, max] from the
// go-moremath linear scale.
func autoTicks(min, max float64) []Tick {
	lin := scale.Linear{Min: min, Max: max}
	major, _ := lin.Ticks(scale.TickOptions{Max: 6})
	return Ticks(major...)
}

// spanTicks converts ticks for the chart backend, forcing them to
// cover exactly [min, max]: go-chart derives the axis range from the
// tick span, so ticks must neither fall outside the resolved range
// nor stop short of its endpoints. Synthesized endpoint ticks are
// unlabeled.
func spanTicks(ticks []Tick, min, max float64) []chart.Tick {
	var out []chart.Tick
	for _, t := range ticks {
		if t.Value < min || t.Value > max {
			continue
		}
		out = append(out, chart.Tick{Value: t.Value, Label: t.Label})
	}
	if len(out) == 0 || out[0].Value != min {
		out = append([]chart.Tick{{Value: min}}, out...)
	}
	if out[len(out)-1].Value != max {
		out = append(out, chart.Tick{Value: max})
	}
	return out
}

// Default mark colors.
var (
	colorBlue = drawing.Color{R: 0x33, G: 0x6d, B: 0xa5, A: 0xff}
	colorInk  = drawing.Color{R: 0x26, G: 0x26, B: 0x26, A: 0xff}
	colorGray = drawing.Color{R: 0x9b, G: 0x9b, B: 0x9b, A: 0xff}
)

// defaultRidgePalette is a sequential blue gradient.
var defaultRidgePalette = palette.RGBGradient{
	Colors: []color.RGBA{
		{R: 0xc6, G: 0xdb, B: 0xef, A: 0xff},
		{R: 0x21, G: 0x71, B: 0xb5, A: 0xff},
	},
}

func colorOr(c, def drawing.Color) drawing.Color {
	if c.IsZero() {
		return def
	}
	return c
}

func withAlpha(c drawing.Color, opacity float64) drawing.Color {
	c.A = uint8(opacity * 255)
	return c
}

func toDrawing(c color.Color) drawing.Color {
	r, g, b, a := c.RGBA()
	return drawing.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// Layer compilation.

func (l Density) compile(f frame) ([]chart.Series, error) {
	xs, ys := kdeCurve(l.Xs, l.Bandwidth, l.N)
	opacity := l.Opacity
	if opacity == 0 {
		opacity = 0.35
	}
	fill := colorOr(l.Fill, colorBlue)
	return []chart.Series{&areaSeries{
		name:   "density",
		xs:     xs,
		ys:     ys,
		base:   0,
		stroke: fill,
		fill:   withAlpha(fill, opacity),
	}}, nil
}

func (l Ridge) compile(f frame) ([]chart.Series, error) {
	if len(l.Groups) == 0 {
		return nil, fmt.Errorf("ridge layer has no groups")
	}

	// A shared bandwidth keeps the group curves comparable.
	bw := l.Bandwidth
	if bw == 0 {
		var pooled stats.Sample
		for _, g := range l.Groups {
			pooled.Xs = append(pooled.Xs, g.Xs...)
		}
		if len(pooled.Xs) == 0 {
			return nil, fmt.Errorf("ridge layer has no samples")
		}
		bw = stats.BandwidthScott(pooled)
	}

	curves := make([][2][]float64, len(l.Groups))
	peak := math.NaN()
	for i, g := range l.Groups {
		xs, ys := kdeCurve(g.Xs, bw, l.N)
		curves[i] = [2][]float64{xs, ys}
		peak = maxNaN(peak, maxOf(ys))
	}
	if math.IsNaN(peak) || peak == 0 {
		return nil, fmt.Errorf("ridge layer has no samples")
	}
	yscale := l.height() / peak

	pal := l.Palette
	if pal == nil {
		pal = defaultRidgePalette
	}

	// Rows draw back to front so each curve overlaps the tails of
	// the row above it.
	var series []chart.Series
	for i := len(l.Groups) - 1; i >= 0; i-- {
		xs, ys := curves[i][0], curves[i][1]
		base := float64(i + 1)
		lifted := make([]float64, len(ys))
		for k, y := range ys {
			lifted[k] = base + y*yscale
		}
		frac := 0.5
		if len(l.Groups) > 1 {
			frac = float64(i) / float64(len(l.Groups)-1)
		}
		c := toDrawing(pal.Map(frac))
		series = append(series, &areaSeries{
			name:   l.Groups[i].Label,
			xs:     xs,
			ys:     lifted,
			base:   base,
			stroke: colorInk,
			fill:   withAlpha(c, 0.9),
		})
	}
	return series, nil
}

func (l Interval) compile(f frame) ([]chart.Series, error) {
	return []chart.Series{&intervalSeries{
		pts:        l.Points,
		horizontal: l.Horizontal,
		color:      colorOr(l.Color, colorInk),
		clip:       !l.Unclipped,
	}}, nil
}

func (l RefLine) compile(f frame) ([]chart.Series, error) {
	return []chart.Series{&refLineSeries{
		vertical: l.Vertical,
		at:       l.At,
		color:    colorOr(l.Color, colorGray),
		dashed:   l.Dashed,
	}}, nil
}

func (l Text) compile(f frame) ([]chart.Series, error) {
	size := l.Size
	if size == 0 {
		size = 10
	}
	if l.Boxed {
		return []chart.Series{chart.AnnotationSeries{
			Annotations: []chart.Value2{{XValue: l.X, YValue: l.Y, Label: l.Text}},
			Style: chart.Style{
				FontSize:    size,
				FontColor:   colorOr(l.Color, colorInk),
				FillColor:   drawing.ColorWhite,
				StrokeColor: colorGray,
				StrokeWidth: 1,
			},
		}}, nil
	}
	return []chart.Series{&textSeries{
		x: l.X, y: l.Y,
		text:  l.Text,
		color: colorOr(l.Color, colorInk),
		size:  size,
		clip:  !l.Unclipped,
	}}, nil
}

func (l RepelLabels) compile(f frame) ([]chart.Series, error) {
	size := l.Size
	if size == 0 {
		size = 9
	}
	return []chart.Series{&repelSeries{
		pts:   l.Points,
		seed:  l.Seed,
		color: colorOr(l.Color, colorInk),
		size:  size,
	}}, nil
}

// pixelFrame maps data coordinates to canvas pixels, clipping to the
// plot box unless disabled.
type pixelFrame struct {
	cb     chart.Box
	xr, yr chart.Range
	clip   bool
}

func (f pixelFrame) x(v float64) int {
	x := f.cb.Left + f.xr.Translate(v)
	if f.clip {
		x = clampInt(x, f.cb.Left, f.cb.Right)
	}
	return x
}

func (f pixelFrame) y(v float64) int {
	y := f.cb.Bottom - f.yr.Translate(v)
	if f.clip {
		y = clampInt(y, f.cb.Top, f.cb.Bottom)
	}
	return y
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// areaSeries draws a curve with the area down to a baseline filled.
type areaSeries struct {
	name         string
	xs, ys       []float64
	base         float64
	stroke, fill drawing.Color
}

func (s *areaSeries) GetName() string           { return s.name }
func (s *areaSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s *areaSeries) GetStyle() chart.Style     { return chart.Style{} }
func (s *areaSeries) Validate() error           { return nil }

func (s *areaSeries) Render(r chart.Renderer, cb chart.Box, xr, yr chart.Range, _ chart.Style) {
	if len(s.xs) == 0 {
		return
	}
	pf := pixelFrame{cb, xr, yr, true}

	r.SetFillColor(s.fill)
	r.MoveTo(pf.x(s.xs[0]), pf.y(s.base))
	for i := range s.xs {
		r.LineTo(pf.x(s.xs[i]), pf.y(s.ys[i]))
	}
	r.LineTo(pf.x(s.xs[len(s.xs)-1]), pf.y(s.base))
	r.Close()
	r.Fill()

	r.SetStrokeColor(s.stroke)
	r.SetStrokeWidth(1.5)
	r.MoveTo(pf.x(s.xs[0]), pf.y(s.ys[0]))
	for i := 1; i < len(s.xs); i++ {
		r.LineTo(pf.x(s.xs[i]), pf.y(s.ys[i]))
	}
	r.Stroke()
}

// intervalSeries draws point estimates with interval whiskers.
type intervalSeries struct {
	pts        []IntervalPoint
	horizontal bool
	color      drawing.Color
	clip       bool
}

func (s *intervalSeries) GetName() string           { return "interval" }
func (s *intervalSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s *intervalSeries) GetStyle() chart.Style     { return chart.Style{} }
func (s *intervalSeries) Validate() error           { return nil }

const capLen = 4

func (s *intervalSeries) Render(r chart.Renderer, cb chart.Box, xr, yr chart.Range, _ chart.Style) {
	pf := pixelFrame{cb, xr, yr, s.clip}
	for _, pt := range s.pts {
		x, y := pf.x(pt.X), pf.y(pt.Y)

		if !math.IsNaN(pt.Lo) && !math.IsNaN(pt.Hi) {
			r.SetStrokeColor(s.color)
			r.SetStrokeWidth(2)
			if s.horizontal {
				lo, hi := pf.x(pt.Lo), pf.x(pt.Hi)
				r.MoveTo(lo, y)
				r.LineTo(hi, y)
				r.Stroke()
				r.MoveTo(lo, y-capLen)
				r.LineTo(lo, y+capLen)
				r.Stroke()
				r.MoveTo(hi, y-capLen)
				r.LineTo(hi, y+capLen)
				r.Stroke()
			} else {
				lo, hi := pf.y(pt.Lo), pf.y(pt.Hi)
				r.MoveTo(x, lo)
				r.LineTo(x, hi)
				r.Stroke()
				r.MoveTo(x-capLen, lo)
				r.LineTo(x+capLen, lo)
				r.Stroke()
				r.MoveTo(x-capLen, hi)
				r.LineTo(x+capLen, hi)
				r.Stroke()
			}
		}

		r.SetFillColor(s.color)
		r.Circle(3.5, x, y)
		r.Fill()
	}
}

// refLineSeries draws a reference line across the plot box.
type refLineSeries struct {
	vertical bool
	at       float64
	color    drawing.Color
	dashed   bool
}

func (s *refLineSeries) GetName() string           { return "reference" }
func (s *refLineSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s *refLineSeries) GetStyle() chart.Style     { return chart.Style{} }
func (s *refLineSeries) Validate() error           { return nil }

func (s *refLineSeries) Render(r chart.Renderer, cb chart.Box, xr, yr chart.Range, _ chart.Style) {
	pf := pixelFrame{cb, xr, yr, true}
	r.SetStrokeColor(s.color)
	r.SetStrokeWidth(1.2)
	if s.dashed {
		r.SetStrokeDashArray([]float64{5, 5})
	}
	if s.vertical {
		x := pf.x(s.at)
		r.MoveTo(x, cb.Top)
		r.LineTo(x, cb.Bottom)
	} else {
		y := pf.y(s.at)
		r.MoveTo(cb.Left, y)
		r.LineTo(cb.Right, y)
	}
	r.Stroke()
	if s.dashed {
		r.SetStrokeDashArray(nil)
	}
}

// textSeries draws a plain (unboxed) text annotation centered above
// its anchor.
type textSeries struct {
	x, y  float64
	text  string
	color drawing.Color
	size  float64
	clip  bool
}

func (s *textSeries) GetName() string           { return s.text }
func (s *textSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s *textSeries) GetStyle() chart.Style     { return chart.Style{} }
func (s *textSeries) Validate() error           { return nil }

func (s *textSeries) Render(r chart.Renderer, cb chart.Box, xr, yr chart.Range, _ chart.Style) {
	pf := pixelFrame{cb, xr, yr, s.clip}
	if f, err := chart.GetDefaultFont(); err == nil {
		r.SetFont(f)
	}
	r.SetFontColor(s.color)
	r.SetFontSize(s.size)
	x, y := pf.x(s.x), pf.y(s.y)
	tb := r.MeasureText(s.text)
	r.Text(s.text, x-tb.Width()/2, y-5)
}
