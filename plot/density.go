// Copyright 2025 The Synmet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// kdeWiden is how many bandwidths the sampled domain extends past the
// data range, so curves taper off instead of being cut at the extreme
// samples.
const kdeWiden = 3

// kdeCurve estimates a probability density from samples by kernel
// density estimation and samples it at n evenly spaced points. A zero
// bandwidth uses Scott's estimate; a zero n uses 200. Empty samples
// yield empty curves.
func kdeCurve(samples []float64, bandwidth float64, n int) (xs, ys []float64) {
	if len(samples) == 0 {
		return nil, nil
	}
	if n == 0 {
		n = 200
	}

	sample := stats.Sample{Xs: samples}
	if bandwidth == 0 {
		bandwidth = stats.BandwidthScott(sample)
	}
	kde := stats.KDE{Sample: sample, Bandwidth: bandwidth}

	min, max := sample.Bounds()
	min, max = min-kdeWiden*bandwidth, max+kdeWiden*bandwidth
	xs = vec.Linspace(min, max, n)
	ys = vec.Map(kde.PDF, xs)
	return xs, ys
}
