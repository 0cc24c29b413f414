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
	"math"

	"github.com/akhenakh/hydro/r3"
)

// boxBatch holds boxes as Structure of Arrays, the layout of the batch
// kernels.
type boxBatch struct {
	ax, ay, az []float64
	bx, by, bz []float64
	cx, cy, cz []float64
	px, py, pz []float64
}

func newBoxBatch(boxes []Box) *boxBatch {
	n := len(boxes)
	buf := make([]float64, 12*n)
	col := func(i int) []float64 { return buf[i*n : (i+1)*n : (i+1)*n] }
	s := &boxBatch{
		ax: col(0), ay: col(1), az: col(2),
		bx: col(3), by: col(4), bz: col(5),
		cx: col(6), cy: col(7), cz: col(8),
		px: col(9), py: col(10), pz: col(11),
	}
	for i, b := range boxes {
		s.ax[i], s.ay[i], s.az[i] = b.A.X, b.A.Y, b.A.Z
		s.bx[i], s.by[i], s.bz[i] = b.B.X, b.B.Y, b.B.Z
		s.cx[i], s.cy[i], s.cz[i] = b.C.X, b.C.Y, b.C.Z
		s.px[i], s.py[i], s.pz[i] = b.Center.X, b.Center.Y, b.Center.Z
	}
	return s
}

func (s *boxBatch) len() int { return len(s.ax) }

func (s *boxBatch) box(i int) Box {
	return Box{
		A:      r3.Vector{X: s.ax[i], Y: s.ay[i], Z: s.az[i]},
		B:      r3.Vector{X: s.bx[i], Y: s.by[i], Z: s.bz[i]},
		C:      r3.Vector{X: s.cx[i], Y: s.cy[i], Z: s.cz[i]},
		Center: r3.Vector{X: s.px[i], Y: s.py[i], Z: s.pz[i]},
	}
}

// toPlaneFrame rotates every box by rot and replaces the center heights with
// the signed distance to the plane normal·p = level. With rot taking normal
// to +Z the plane becomes z=0.
func (s *boxBatch) toPlaneFrame(rot r3.Matrix, normal r3.Vector, level float64) {
	heights := make([]float64, s.len())
	r3.BaseDotConstBatch(normal.X, normal.Y, normal.Z, level, s.px, s.py, s.pz, heights)

	r3.BaseMatrixMulBatch(rot, s.ax, s.ay, s.az, s.ax, s.ay, s.az)
	r3.BaseMatrixMulBatch(rot, s.bx, s.by, s.bz, s.bx, s.by, s.bz)
	r3.BaseMatrixMulBatch(rot, s.cx, s.cy, s.cz, s.cx, s.cy, s.cz)
	r3.BaseMatrixMulBatch(rot, s.px, s.py, s.pz, s.px, s.py, s.pz)
	copy(s.pz, heights)
}

// extents returns the height of the lowest and highest corner of every box.
func (s *boxBatch) extents() (bottoms, tops []float64) {
	n := s.len()
	bottoms, tops = make([]float64, n), make([]float64, n)
	for i := range n {
		h := math.Abs(s.az[i]) + math.Abs(s.bz[i]) + math.Abs(s.cz[i])
		bottoms[i], tops[i] = s.pz[i]-h, s.pz[i]+h
	}
	return bottoms, tops
}

// momentBatch is the output of the batch kernel, one moment per box.
type momentBatch struct {
	x, y, z, w []float64
}

func (s *boxBatch) buoyancy() momentBatch {
	n := s.len()
	buf := make([]float64, 4*n)
	out := momentBatch{x: buf[:n:n], y: buf[n : 2*n : 2*n], z: buf[2*n : 3*n : 3*n], w: buf[3*n:]}
	BaseBoxBuoyancyBatch(
		s.ax, s.ay, s.az,
		s.bx, s.by, s.bz,
		s.cx, s.cy, s.cz,
		s.px, s.py, s.pz,
		out.x, out.y, out.z, out.w,
	)
	return out
}

func (mb momentBatch) moment(i int) Moment {
	return Moment{Lever: r3.Vector{X: mb.x[i], Y: mb.y[i], Z: mb.z[i]}, Volume: mb.w[i]}
}

func (mb momentBatch) sum() Moment {
	x, y, z, w := BaseSumMoments(mb.x, mb.y, mb.z, mb.w)
	return Moment{Lever: r3.Vector{X: x, Y: y, Z: z}, Volume: w}
}

// BoxBuoyancyBatch computes the moment of every box with the SIMD kernel and
// writes it to the matching element of out. Only min(len(boxes), len(out))
// boxes are processed. Each result equals Box.BuoyancyWithLeverZ up to
// rounding.
func BoxBuoyancyBatch(boxes []Box, out []Moment) {
	n := min(len(boxes), len(out))
	if n == 0 {
		return
	}
	mb := newBoxBatch(boxes[:n]).buoyancy()
	for i := range n {
		out[i] = mb.moment(i)
	}
}
