// Copyright 2023 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS-IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package buoyancy

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
)

// VerifyOptions configures Verify.
type VerifyOptions struct {
	random    int
	seed      int64
	tolerance float64
	workers   int
	blockSize int
}

// NewVerifyOptions returns the default options: one million random boxes,
// seed 1, tolerance 1e-4, one worker per CPU, blocks of 4096 boxes.
func NewVerifyOptions() *VerifyOptions {
	return &VerifyOptions{
		random:    1_000_000,
		seed:      1,
		tolerance: 1e-4,
		blockSize: 4096,
	}
}

// Random sets the number of random boxes checked after the canonical ones.
func (o *VerifyOptions) Random(n int) *VerifyOptions {
	o.random = max(n, 0)
	return o
}

// Seed sets the seed of the random boxes. Equal seeds and block sizes give
// equal boxes, whatever the number of workers.
func (o *VerifyOptions) Seed(s int64) *VerifyOptions {
	o.seed = s
	return o
}

// Tolerance sets the largest accepted per-component difference.
func (o *VerifyOptions) Tolerance(t float64) *VerifyOptions {
	o.tolerance = t
	return o
}

// Workers sets the number of goroutines; n <= 0 uses GOMAXPROCS.
func (o *VerifyOptions) Workers(n int) *VerifyOptions {
	o.workers = n
	return o
}

// BlockSize sets the number of random boxes drawn from each seeded source.
func (o *VerifyOptions) BlockSize(n int) *VerifyOptions {
	if n > 0 {
		o.blockSize = n
	}
	return o
}

// Report summarizes a Verify run. Box indices count the canonical boxes
// first, then the random ones.
type Report struct {
	Boxes    int
	Failures int
	// MaxError is the largest per-component difference of any integrator
	// from the reference.
	MaxError   float64
	WorstIndex int
	WorstBox   Box
	Elapsed    time.Duration
}

func (r Report) String() string {
	return fmt.Sprintf("%d boxes, %d failures, max error %g at box %d, %v",
		r.Boxes, r.Failures, r.MaxError, r.WorstIndex, r.Elapsed)
}

// merge folds o, which covers later boxes, into r. Ties keep the earlier box.
func (r *Report) merge(o Report) {
	r.Boxes += o.Boxes
	r.Failures += o.Failures
	if o.MaxError > r.MaxError {
		r.MaxError, r.WorstIndex, r.WorstBox = o.MaxError, o.WorstIndex, o.WorstBox
	}
}

// BoxError returns the largest per-component difference between the
// integrators and the reference for b: the closed form kernel on X, Y and
// volume, and the Z-lever variant on all four components.
func BoxError(b Box) float64 {
	return boxError(b, b.BuoyancyWithLeverZ())
}

func boxError(b Box, withZ Moment) float64 {
	ref := b.ReferenceBuoyancy()
	fast := b.Buoyancy()
	e := max(
		math.Abs(fast.Lever.X-ref.Lever.X),
		math.Abs(fast.Lever.Y-ref.Lever.Y),
		math.Abs(fast.Volume-ref.Volume),
	)
	d := withZ.Sub(ref)
	e = max(e, math.Abs(d.Lever.X), math.Abs(d.Lever.Y), math.Abs(d.Lever.Z), math.Abs(d.Volume))
	if math.IsNaN(e) {
		return math.Inf(1)
	}
	return e
}

// checkBoxes compares every box against the reference. The Z-lever results
// come from the batch kernel. first is the index of boxes[0].
func checkBoxes(boxes []Box, first int, tolerance float64) Report {
	r := Report{Boxes: len(boxes), WorstIndex: -1}
	mb := newBoxBatch(boxes).buoyancy()
	for i, b := range boxes {
		e := boxError(b, mb.moment(i))
		if !(e < tolerance) {
			r.Failures++
		}
		if e > r.MaxError || r.WorstIndex < 0 {
			r.MaxError, r.WorstIndex, r.WorstBox = e, first+i, b
		}
	}
	return r
}

// Verify cross-checks the closed form integrator, its Z-lever variant and
// the batch kernel against the pyramid-clip reference on the canonical boxes
// followed by random ones. It returns an error wrapping ErrToleranceExceeded
// if any component of any box differs by tolerance or more, or the context
// error if ctx is done before all boxes are checked. The report is valid in
// both cases.
func Verify(ctx context.Context, opts *VerifyOptions) (Report, error) {
	if opts == nil {
		opts = NewVerifyOptions()
	}
	start := time.Now()

	canonical := CanonicalBoxes()
	report := checkBoxes(canonical, 0, opts.tolerance)

	blocks := (opts.random + opts.blockSize - 1) / opts.blockSize
	results := make([]Report, blocks)
	done := make([]bool, blocks)

	pool := workerpool.New(opts.workers)
	defer pool.Close()
	pool.ParallelForAtomic(blocks, func(i int) {
		if ctx.Err() != nil {
			return
		}
		size := min(opts.blockSize, opts.random-i*opts.blockSize)
		boxes := RandomBlock(opts.seed, i, size)
		results[i] = checkBoxes(boxes, len(canonical)+i*opts.blockSize, opts.tolerance)
		done[i] = true
	})

	for i, r := range results {
		if done[i] {
			report.merge(r)
		}
	}
	report.Elapsed = time.Since(start)

	if err := ctx.Err(); err != nil {
		return report, err
	}
	if report.Failures > 0 {
		return report, fmt.Errorf("%w: %d of %d boxes, max error %g at box %d (%v)",
			ErrToleranceExceeded, report.Failures, report.Boxes, report.MaxError, report.WorstIndex, report.WorstBox)
	}
	return report, nil
}
