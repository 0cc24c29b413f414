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
	"fmt"
	"time"
)

// Timings holds the mean time per box of each integrator.
type Timings struct {
	Boxes     int
	Reference time.Duration
	Scalar    time.Duration
	Batch     time.Duration
	// Volume is the summed displaced volume, identical for all integrators up
	// to rounding.
	Volume float64
}

func (t Timings) String() string {
	return fmt.Sprintf("%d boxes: reference %v/box, scalar %v/box, batch %v/box, volume %g",
		t.Boxes, t.Reference, t.Scalar, t.Batch, t.Volume)
}

// Benchmark times the three integrators on n random boxes drawn for seed.
func Benchmark(n int, seed int64) Timings {
	t := Timings{Boxes: n}
	if n <= 0 {
		return t
	}
	boxes := RandomBlock(seed, 0, n)
	perBox := func(d time.Duration) time.Duration { return d / time.Duration(n) }

	var sum float64
	start := time.Now()
	for _, b := range boxes {
		sum += b.ReferenceBuoyancy().Volume
	}
	t.Reference = perBox(time.Since(start))

	start = time.Now()
	for _, b := range boxes {
		sum += b.Buoyancy().Volume
	}
	t.Scalar = perBox(time.Since(start))

	s := newBoxBatch(boxes)
	start = time.Now()
	sum += s.buoyancy().sum().Volume
	t.Batch = perBox(time.Since(start))

	t.Volume = sum / 3
	return t
}
