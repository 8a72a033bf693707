// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Ratingplot analyzes a metaphoricity-rating survey and renders its
// figures.
//
// The ratings file is a wide CSV with a "participant" column and one
// response column per stimulus item; responses are drawn from an
// ordered level set given one level per line in the levels file,
// least metaphoric first. The items file is a CSV with "item",
// "pair" (the modality pair of the item), and "cosine" (the
// distributional cosine similarity of the item's words) columns.
//
// Participants whose single most frequent response covers at least
// -straightline percent of their answered items are excluded as
// straightliners; the count of exclusions is logged.
//
// Two charts are written to the output directory, each as both a PNG
// and an SVG: a ridge plot of rating-rank distributions per modality
// pair (ratings-ridge.*), and a scatter of per-item mean rating
// against cosine similarity with repelled item labels
// (ratings-scatter.*).
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/lingstat/synmet/plot"
	"github.com/lingstat/synmet/table"
)

func main() {
	log.SetPrefix("ratingplot: ")
	log.SetFlags(0)

	var (
		ratingsPath  = flag.String("ratings", "", "wide rating CSV `file` (participant, one column per item)")
		levelsPath   = flag.String("levels", "", "rating level `file`, one level per line, least metaphoric first")
		itemsPath    = flag.String("items", "", "item metadata CSV `file` (item, pair, cosine)")
		straightline = flag.Float64("straightline", 40, "exclude participants whose modal response covers at least `percent` of their items")
		seed         = flag.Int64("seed", 1, "`seed` for label placement")
		outDir       = flag.String("o", ".", "output `directory`")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -ratings ratings.csv -levels levels.txt -items items.csv\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *ratingsPath == "" || *levelsPath == "" || *itemsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	ratings, err := table.ReadCSV(*ratingsPath, ',')
	if err != nil {
		log.Fatal(err)
	}
	levels, err := table.ReadLevels(*levelsPath)
	if err != nil {
		log.Fatal(err)
	}
	items, err := table.ReadCSV(*itemsPath, ',')
	if err != nil {
		log.Fatal(err)
	}

	// Wide to long: one row per (participant, item) response.
	var itemCols []string
	for _, c := range ratings.Columns() {
		if c != "participant" {
			itemCols = append(itemCols, c)
		}
	}
	long := table.Unpivot(ratings, "item", "response", itemCols...)

	long, err = table.Recode(long, "response", levels)
	if err != nil {
		log.Fatal(err)
	}

	long, excluded := excludeStraightliners(long, *straightline)
	log.Printf("excluded %d straightliner(s)", excluded)

	long = table.LeftJoin(long, items, table.On("item")...)

	means := table.Summarize(long, []string{"item", "pair", "cosine"},
		table.Agg{Col: "response rank", Fn: table.AggMean, As: "mean rank"})

	if err := ridgeChart(long, levels, *outDir); err != nil {
		log.Fatal(err)
	}
	if err := scatterChart(means, levels, *seed, *outDir); err != nil {
		log.Fatal(err)
	}
}

// excludeStraightliners drops every participant whose single most
// frequent response covers at least pct percent of their answered
// items. It returns the kept rows and the number of participants
// excluded.
func excludeStraightliners(long *table.Table, pct float64) (*table.Table, int) {
	// Skipped items say nothing about straightlining: both the modal
	// count and the denominator cover answered items only.
	answered, _ := table.Filter(long, func(r table.Row) bool {
		return !r.Get("response").Missing()
	})
	counts := table.Summarize(answered, []string{"participant", "response"},
		table.Agg{Fn: table.AggCount, As: "n"})
	totals := table.Summarize(answered, []string{"participant"},
		table.Agg{Fn: table.AggCount, As: "total"})
	counts = table.LeftJoin(counts, totals, table.On("participant")...)

	flagged := make(map[string]bool)
	for i := 0; i < counts.Len(); i++ {
		r := counts.Row(i)
		n, _ := r.Get("n").Num()
		total, _ := r.Get("total").Num()
		if total > 0 && n/total*100 >= pct {
			flagged[r.Get("participant").String()] = true
		}
	}
	if len(flagged) == 0 {
		return long, 0
	}

	kept, _ := table.Filter(long, func(r table.Row) bool {
		return !flagged[r.Get("participant").String()]
	})
	return kept, len(flagged)
}

// ridgeChart draws the distribution of rating ranks per modality
// pair.
func ridgeChart(long *table.Table, levels table.Levels, outDir string) error {
	var order []string
	byPair := make(map[string][]float64)
	for i := 0; i < long.Len(); i++ {
		r := long.Row(i)
		pair, ok := r.Get("pair").Str()
		if !ok {
			continue
		}
		rank, ok := r.Get("response rank").Num()
		if !ok {
			continue
		}
		if _, seen := byPair[pair]; !seen {
			order = append(order, pair)
		}
		byPair[pair] = append(byPair[pair], rank)
	}

	groups := make([]plot.RidgeGroup, len(order))
	for i, pair := range order {
		groups[i] = plot.RidgeGroup{Label: pair, Xs: byPair[pair]}
	}
	ridge := plot.Ridge{Groups: groups}

	p := plot.New("Metaphoricity ratings by modality pair")
	p.SetX("rating", 1, float64(len(levels)))
	p.SetXTicks(levelTicks(levels))
	p.SetY("", math.NaN(), math.NaN())
	p.SetYTicks(ridge.Ticks())
	if err := p.Add(ridge); err != nil {
		return err
	}
	return renderBoth(p, outDir, "ratings-ridge")
}

// scatterChart draws each item's mean rating against its cosine
// similarity, with repelled item labels and a mid-scale reference
// line.
func scatterChart(means *table.Table, levels table.Levels, seed int64, outDir string) error {
	var pts []plot.IntervalPoint
	var labels []plot.LabelPoint
	nan := math.NaN()
	for i := 0; i < means.Len(); i++ {
		r := means.Row(i)
		item, _ := r.Get("item").Str()
		cos, okx := r.Get("cosine").Num()
		mean, oky := r.Get("mean rank").Num()
		if !okx || !oky {
			continue
		}
		pts = append(pts, plot.IntervalPoint{X: cos, Y: mean, Lo: nan, Hi: nan})
		labels = append(labels, plot.LabelPoint{X: cos, Y: mean, Label: item})
	}

	mid := (1 + float64(len(levels))) / 2

	p := plot.New("Mean metaphoricity rating vs. cosine similarity")
	p.SetX("cosine similarity", math.NaN(), math.NaN())
	p.SetY("mean rating", 1, float64(len(levels)))
	for _, l := range []plot.Layer{
		plot.RefLine{At: mid, Dashed: true},
		plot.Interval{Points: pts},
		plot.RepelLabels{Points: labels, Seed: seed},
	} {
		if err := p.Add(l); err != nil {
			return err
		}
	}
	return renderBoth(p, outDir, "ratings-scatter")
}

func levelTicks(levels table.Levels) []plot.Tick {
	ticks := make([]plot.Tick, len(levels))
	for i, l := range levels {
		ticks[i] = plot.Tick{Value: float64(i + 1), Label: l}
	}
	return ticks
}

// renderBoth writes name.png and name.svg under dir.
func renderBoth(p *plot.Plot, dir, name string) error {
	return p.Render(
		plot.Output{Path: filepath.Join(dir, name+".png"), Width: 800, Height: 600},
		plot.Output{Path: filepath.Join(dir, name+".svg"), Width: 800, Height: 600},
	)
}
