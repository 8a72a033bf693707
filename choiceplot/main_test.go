// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lingstat/synmet/coef"
)

var testModel = coef.Summary{
	{Term: "(Intercept)", Estimate: 1.0, Lower: 0.5, Upper: 1.5},
	{Term: "z_cos", Estimate: -1.5, Lower: -2.0, Upper: -1.0},
}

func TestCoefChartRequiresRename(t *testing.T) {
	err := coefChart(testModel, renameFlag{}, t.TempDir())
	var uerr *coef.UnmappedCoefficientError
	if !errors.As(err, &uerr) {
		t.Fatalf("coefChart with no renames: got %v, want *coef.UnmappedCoefficientError", err)
	}
	if uerr.Term != "z_cos" {
		t.Errorf("Term = %q, want %q", uerr.Term, "z_cos")
	}
}

func TestCoefChartRendersRenamed(t *testing.T) {
	dir := t.TempDir()
	rename := renameFlag{"z_cos": "Cosine similarity"}
	if err := coefChart(testModel, rename, dir); err != nil {
		t.Fatalf("coefChart: %v", err)
	}
	for _, name := range []string{"choices-coef.png", "choices-coef.svg"} {
		fi, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("missing output: %v", err)
		}
		if fi.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestRenameFlag(t *testing.T) {
	f := renameFlag{}
	if err := f.Set("z_cos=Cosine similarity"); err != nil {
		t.Fatal(err)
	}
	if f["z_cos"] != "Cosine similarity" {
		t.Errorf("f = %v", f)
	}
	if err := f.Set("nonsense"); err == nil {
		t.Error("malformed rename accepted")
	}
}
