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
	"math"

	"github.com/akhenakh/hydro/r3"
)

// volumeEpsilon is the smallest |volume| that is divided by to obtain a
// centroid.
const volumeEpsilon = 1e-6

// Moment is the buoyancy integral of a region: its Volume and its first
// moment Lever, the centroid multiplied by Volume. Moments of disjoint regions
// add.
//
// When Volume is (near) zero, Lever holds whatever the partial sums produced
// and must not be divided by Volume; use Centroid.
type Moment struct {
	Lever  r3.Vector
	Volume float64
}

// Add returns the moment of the union of two disjoint regions.
func (m Moment) Add(o Moment) Moment {
	return Moment{m.Lever.Add(o.Lever), m.Volume + o.Volume}
}

// Sub returns m - o componentwise.
func (m Moment) Sub(o Moment) Moment {
	return Moment{m.Lever.Sub(o.Lever), m.Volume - o.Volume}
}

// Mul scales all four components by s.
func (m Moment) Mul(s float64) Moment {
	return Moment{m.Lever.Mul(s), m.Volume * s}
}

// Centroid returns Lever/Volume. ok is false, and the zero vector is returned,
// when |Volume| is too small to divide by.
func (m Moment) Centroid() (c r3.Vector, ok bool) {
	if math.Abs(m.Volume) <= volumeEpsilon {
		return r3.Vector{}, false
	}
	return m.Lever.Mul(1 / m.Volume), true
}

// ToCentroid converts the moment to its (centroid, volume) form.
func (m Moment) ToCentroid() Centroid {
	c, _ := m.Centroid()
	return Centroid{Center: c, Volume: m.Volume}
}

// Norm returns the Euclidean length of (Lever, Volume) as a 4-vector.
func (m Moment) Norm() float64 {
	return math.Sqrt(m.Lever.Norm2() + m.Volume*m.Volume)
}

// IsFinite reports whether no component is NaN or infinite.
func (m Moment) IsFinite() bool {
	return m.Lever.IsFinite() && !math.IsNaN(m.Volume) && !math.IsInf(m.Volume, 0)
}

func (m Moment) String() string {
	return fmt.Sprintf("(%g, %g, %g | %g)", m.Lever.X, m.Lever.Y, m.Lever.Z, m.Volume)
}

// Centroid is a region's center of volume together with its volume. Unlike a
// Moment, Center is already divided by Volume.
type Centroid struct {
	Center r3.Vector
	Volume float64
}

// Moment returns the moment form of c.
func (c Centroid) Moment() Moment {
	return Moment{c.Center.Mul(c.Volume), c.Volume}
}

// WeightedAverage merges two centroids: the volumes add and the center is the
// volume-weighted average of both centers. If the summed volume is within
// 1e-6 of zero the center is the zero vector.
func WeightedAverage(a, b Centroid) Centroid {
	w := a.Volume + b.Volume
	if math.Abs(w) <= volumeEpsilon {
		return Centroid{Volume: w}
	}
	return Centroid{
		Center: a.Center.Mul(a.Volume).Add(b.Center.Mul(b.Volume)).Mul(1 / w),
		Volume: w,
	}
}
