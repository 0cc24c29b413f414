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
	"math/rand"

	"github.com/samber/lo"

	"github.com/akhenakh/hydro/r3"
)

// canonicalEdges lists the hand-picked test boxes as (a, b, center); the
// third edge is the unit normal of a and b.
func canonicalEdges() [][3]r3.Vector {
	v := func(x, y, z float64) r3.Vector { return r3.Vector{X: x, Y: y, Z: z} }
	// The unit cube standing on a vertex: the 45° yaw puts a vertex diagonal
	// in the XZ plane and this pitch makes it vertical.
	tilt := math.Atan(math.Sqrt2) * 180 / math.Pi
	vertexDown := func(z float64) [3]r3.Vector {
		return [3]r3.Vector{
			r3.RotateY(r3.RotateZ(v(1, 0, 0), 45), tilt),
			r3.RotateY(r3.RotateZ(v(0, 1, 0), 45), tilt),
			v(0, 0, z),
		}
	}
	return [][3]r3.Vector{
		{v(1, 0, 0), v(0, 0, 1), v(0, 0, 0)},
		{v(1, 0, 1), v(-1, 0, 1), v(0, 0, -0.5)},
		{v(0, 1, 1), v(0, -1, 1), v(0, 0, 0)},
		{v(0, 2, 2), v(0, -2, 2), v(0, 0, 0)},
		{v(5, 0, 5), v(-1, 0, 1), v(0, 0, 0)},
		{v(2, 0, 1), v(-1, 0, 2), v(0, 0, 0)},
		{r3.RotateZ(v(1, 0, 1), 45), r3.RotateZ(v(-1, 0, 1), 45), v(0, 0, 0)},
		{r3.RotateZ(v(1, 0, 1), 30), r3.RotateZ(v(-1, 0, 1), 30), v(0, 0, 0.5)},
		{r3.RotateZ(v(math.Sqrt(0.5), 0, math.Sqrt(0.5)), 45), r3.RotateZ(v(0, 1, 0), 45), v(0, 0, 0.5)},
		vertexDown(0),
		vertexDown(0.01),
		vertexDown(0.25),
		vertexDown(0.5),
		vertexDown(-0.25),
		vertexDown(-0.5),
		{v(2, 1, 1), v(-1, 1, 1), v(0, 0, 0)},
		{v(2, 1, 1), v(-1, 1, 1), v(0, 0, 0.5)},
		{v(0, 2, 1).Normalize(), v(1, -1, 2).Normalize(), v(0, 0, 0)},
		{v(-0.804987, 0.250343, -0.811212), v(0.474009, -0.625978, -0.663551).Normalize(), v(1, 0, 0)},
	}
}

// CanonicalBoxes returns a fixed set of boxes exercising the edge cases of
// the closed form integrator: axis aligned and horizontal faces, 45° and 30°
// rotations, a cube standing on a vertex at six heights, and skewed frames.
func CanonicalBoxes() []Box {
	return lo.Map(canonicalEdges(), func(e [3]r3.Vector, _ int) Box {
		return Box{A: e[0], B: e[1], C: e[0].Cross(e[1]).Normalize(), Center: e[2]}
	})
}

func randomVector(rng *rand.Rand, lo, hi float64) r3.Vector {
	u := func() float64 { return lo + (hi-lo)*rng.Float64() }
	return r3.Vector{X: u(), Y: u(), Z: u()}
}

// RandomBox returns a box with orthogonal edges: a uniform in [-1, 1]³, b
// orthogonal to it, c along a×b with length uniform in [0, 1.75], and the
// center uniform in [-2, 2]³. Edge lengths are unconstrained and may be
// (near) zero.
func RandomBox(rng *rand.Rand) Box {
	a := randomVector(rng, -1, 1)
	b := a.Cross(randomVector(rng, -1, 1))
	center := randomVector(rng, -2, 2)
	c := a.Cross(b).Normalize().Mul(1.75 * rng.Float64())
	return Box{A: a, B: b, C: c, Center: center}
}

// RandomBlock returns block number block of the random boxes drawn for seed.
// It draws the same values as size calls to RandomBox on a source seeded with
// seed + block, and builds the edge frames with batch cross products.
func RandomBlock(seed int64, block, size int) []Box {
	rng := rand.New(rand.NewSource(seed + int64(block)))
	buf := make([]float64, 13*size)
	col := func(i int) []float64 { return buf[i*size : (i+1)*size : (i+1)*size] }
	ax, ay, az := col(0), col(1), col(2)
	rx, ry, rz := col(3), col(4), col(5)
	bx, by, bz := col(6), col(7), col(8)
	cx, cy, cz := col(9), col(10), col(11)
	scale := col(12)
	centers := make([]r3.Vector, size)
	for i := range size {
		a, r := randomVector(rng, -1, 1), randomVector(rng, -1, 1)
		ax[i], ay[i], az[i] = a.X, a.Y, a.Z
		rx[i], ry[i], rz[i] = r.X, r.Y, r.Z
		centers[i] = randomVector(rng, -2, 2)
		scale[i] = 1.75 * rng.Float64()
	}

	r3.BaseCrossBatch(ax, ay, az, rx, ry, rz, bx, by, bz)
	r3.BaseCrossBatch(ax, ay, az, bx, by, bz, cx, cy, cz)

	boxes := make([]Box, size)
	for i := range boxes {
		c := r3.Vector{X: cx[i], Y: cy[i], Z: cz[i]}
		boxes[i] = Box{
			A:      r3.Vector{X: ax[i], Y: ay[i], Z: az[i]},
			B:      r3.Vector{X: bx[i], Y: by[i], Z: bz[i]},
			C:      c.Normalize().Mul(scale[i]),
			Center: centers[i],
		}
	}
	return boxes
}
