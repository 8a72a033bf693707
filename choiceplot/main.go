// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Choiceplot analyzes a forced-choice hierarchy experiment and
// renders its figures.
//
// The choices file is a CSV with one row per participant and
// condition, holding a "participant" column, a count of
// hierarchy-consistent choices ("hierarchy_tokens_nots_novs"), and
// the "total" number of choices. The model file is a pre-fit
// mixed-model coefficient artifact: a JSON array of
// {term, estimate, lower, upper} objects on the log-odds scale.
//
// Two charts are written to the output directory, each as both a PNG
// and an SVG: the density of per-participant hierarchy-consistent
// proportions with the chance level and the inverse-logit-transformed
// model intercept overlaid (choices-density.*), and a coefficient
// plot of the model's fixed effects on the log-odds scale
// (choices-coef.*). Every fixed effect beyond the intercept must be
// given a display name with -rename, or the coefficient plot fails
// rather than leak internal model term names.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/lingstat/synmet/coef"
	"github.com/lingstat/synmet/plot"
	"github.com/lingstat/synmet/table"
)

// renameFlag collects repeated -rename term=display pairs.
type renameFlag map[string]string

func (f renameFlag) String() string {
	var parts []string
	for k, v := range f {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (f renameFlag) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("malformed rename %q (want term=display)", s)
	}
	f[k] = v
	return nil
}

const (
	propCol  = "prop hierarchy"
	countCol = "hierarchy_tokens_nots_novs"
	totalCol = "total"
)

func main() {
	log.SetPrefix("choiceplot: ")
	log.SetFlags(0)

	rename := renameFlag{}
	var (
		choicesPath = flag.String("choices", "", "choice count CSV `file` (participant, hierarchy_tokens_noTS_noVS, total)")
		modelPath   = flag.String("model", "", "model coefficient JSON `file` (log-odds scale)")
		chance      = flag.Float64("chance", 0.5, "chance `level` for the reference line")
		outDir      = flag.String("o", ".", "output `directory`")
	)
	flag.Var(rename, "rename", "display name for a fixed effect, as `term=display` (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -choices choices.csv -model model.json\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *choicesPath == "" || *modelPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	choices, err := table.ReadCSV(*choicesPath, ',')
	if err != nil {
		log.Fatal(err)
	}
	model, err := coef.ReadJSON(*modelPath)
	if err != nil {
		log.Fatal(err)
	}

	choices = table.Ratio(choices, propCol, countCol, totalCol)
	perParticipant := table.Summarize(choices, []string{"participant"},
		table.Agg{Col: propCol, Fn: table.AggMean, As: propCol})

	var props []float64
	for _, v := range perParticipant.MustColumn(propCol) {
		if x, ok := v.Num(); ok {
			props = append(props, x)
		}
	}
	if len(props) == 0 {
		log.Fatalf("%s: no usable proportions", *choicesPath)
	}

	if err := densityChart(props, model, *chance, *outDir); err != nil {
		log.Fatal(err)
	}
	if err := coefChart(model, rename, *outDir); err != nil {
		log.Fatal(err)
	}
}

// densityChart draws the distribution of per-participant
// hierarchy-consistent proportions, the chance level, and the model
// intercept mapped back to the proportion scale.
func densityChart(props []float64, model coef.Summary, chance float64, outDir string) error {
	p := plot.New("Hierarchy-consistent choice proportions")
	p.SetX("proportion of hierarchy-consistent choices", 0, 1)
	p.SetXTicks(plot.Ticks(0, 0.25, 0.5, 0.75, 1))
	p.SetY("density", math.NaN(), math.NaN())

	layers := []plot.Layer{
		plot.RefLine{Vertical: true, At: chance, Dashed: true},
		plot.Density{Xs: props},
	}
	if intercept, ok := findIntercept(model); ok {
		layers = append(layers,
			plot.Interval{
				Points: []plot.IntervalPoint{{
					X:  coef.InvLogit(intercept.Estimate),
					Y:  0,
					Lo: coef.InvLogit(intercept.Lower),
					Hi: coef.InvLogit(intercept.Upper),
				}},
				Horizontal: true,
			},
			plot.Text{
				X:     coef.InvLogit(intercept.Estimate),
				Y:     0.4,
				Text:  "model intercept",
				Boxed: true,
			},
		)
	}
	for _, l := range layers {
		if err := p.Add(l); err != nil {
			return err
		}
	}
	return renderBoth(p, outDir, "choices-density")
}

// coefChart draws the model's fixed effects (minus the intercept) as
// horizontal intervals on the log-odds scale.
func coefChart(model coef.Summary, rename map[string]string, outDir string) error {
	// Every fixed effect must be given a display name with -rename;
	// raw model term names never reach the plot.
	effects, err := model.Extract(coef.ExtractOptions{
		Exclude: []string{`^\(?Intercept\)?$`},
		Rename:  rename,
	})
	if err != nil {
		return err
	}
	if effects.Len() == 0 {
		log.Print("model has no fixed effects beyond the intercept; skipping coefficient plot")
		return nil
	}

	pts := make([]plot.IntervalPoint, effects.Len())
	ticks := make([]plot.Tick, effects.Len())
	for i := 0; i < effects.Len(); i++ {
		r := effects.Row(i)
		term, _ := r.Get("term").Str()
		est, _ := r.Get("estimate").Num()
		lo, _ := r.Get("lower").Num()
		hi, _ := r.Get("upper").Num()
		y := float64(effects.Len() - i) // first term on top
		pts[i] = plot.IntervalPoint{X: est, Y: y, Lo: lo, Hi: hi}
		ticks[i] = plot.Tick{Value: y, Label: term}
	}

	p := plot.New("Fixed effects (log-odds)")
	p.SetX("estimate (log-odds)", math.NaN(), math.NaN())
	p.SetY("", 0.5, float64(effects.Len())+0.5)
	p.SetYTicks(ticks)
	for _, l := range []plot.Layer{
		plot.RefLine{Vertical: true, At: 0, Dashed: true},
		plot.Interval{Points: pts, Horizontal: true},
	} {
		if err := p.Add(l); err != nil {
			return err
		}
	}
	return renderBoth(p, outDir, "choices-coef")
}

// findIntercept returns the model intercept, under either its bare or
// parenthesized name.
func findIntercept(model coef.Summary) (coef.Estimate, bool) {
	for _, e := range model {
		if e.Term == "(Intercept)" || e.Term == "Intercept" {
			return e, true
		}
	}
	return coef.Estimate{}, false
}

// renderBoth writes name.png and name.svg under dir.
func renderBoth(p *plot.Plot, dir, name string) error {
	return p.Render(
		plot.Output{Path: filepath.Join(dir, name+".png"), Width: 800, Height: 600},
		plot.Output{Path: filepath.Join(dir, name+".svg"), Width: 800, Height: 600},
	)
}
