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

// clipResidual bounds |z| of an interpolated crossing point before it is
// snapped onto the surface.
const clipResidual = 1e-5

// clipBelowSurface clips the closed polygon verts against the half-space
// z <= 0 and writes the surviving polygon to out, returning its vertex count.
// Crossing points get z set to exactly 0.
func clipBelowSurface(verts []r3.Vector, out []r3.Vector) int {
	n := 0
	prev := verts[len(verts)-1]
	for _, v := range verts {
		if prev.Z*v.Z < 0 {
			f := prev.Z / (prev.Z - v.Z)
			p := prev.Mul(1 - f).Add(v.Mul(f))
			if debugChecks {
				assertf(math.Abs(p.Z) < clipResidual, "clip residual %g", p.Z)
			}
			p.Z = 0
			out[n] = p
			n++
		}
		out[n] = v
		n++
		prev = v
	}

	// The pass above keeps every input vertex; drop those above the surface.
	kept := 0
	for i := 0; i < n; i++ {
		if out[i].Z > 0 {
			continue
		}
		out[kept] = out[i]
		kept++
	}
	return kept
}

// PyramidBuoyancy returns the signed buoyancy moment contributed by one face
// of a box. The face is the parallelogram with corners pos+n±a±b, and the
// pyramid's apex is pos.
//
// The submerged part of the face is fan-triangulated and each triangle forms
// a tetrahedron with the origin, which lies on the surface, so the surface
// cap itself contributes nothing. The contribution is positive when the
// origin lies behind the face (on the side opposite to a×b) and negative
// otherwise; summing all faces of a closed box with a×b pointing outwards
// yields the displaced moment.
//
// a, b and n should be mutually perpendicular; this is not checked.
func PyramidBuoyancy(pos, a, b, n r3.Vector) Moment {
	base := pos.Add(n)
	verts := [4]r3.Vector{
		base.Add(a).Add(b),
		base.Add(a).Sub(b),
		base.Sub(a).Sub(b),
		base.Sub(a).Add(b),
	}
	var clipped [10]r3.Vector
	numClipped := clipBelowSurface(verts[:], clipped[:])

	normal := a.Cross(b)
	if debugChecks {
		assertf(normal.Dot(n) >= -1e-6, "face normal %v points against apex offset %v", normal, n)
	}
	sign := 1.0
	if base.Dot(normal) < 0 {
		sign = -1
	}

	var sum float64
	var center r3.Vector
	root := clipped[0]
	for i := 1; i+1 < numClipped; i++ {
		cur, next := clipped[i], clipped[i+1]
		vol := math.Abs(cur.Cross(root).Dot(next) / 6)
		sum += vol
		// Centroid of the tetrahedron (0, root, cur, next).
		center = center.Add(root.Add(cur).Add(next).Mul(0.25 * vol))
	}
	return Moment{Lever: center.Mul(sign), Volume: sum * sign}
}

// ReferenceBoxBuoyancy returns the displaced-volume moment of the box
// pos + s·a + t·b + u·c, s, t, u in [-1, 1], as the sum of its six face
// pyramids. (a, b, c) must be a right-handed orthogonal frame.
func ReferenceBoxBuoyancy(a, b, c, pos r3.Vector) Moment {
	return PyramidBuoyancy(pos, a, b, c).
		Add(PyramidBuoyancy(pos, b, a, c.Neg())).
		Add(PyramidBuoyancy(pos, c, a, b)).
		Add(PyramidBuoyancy(pos, a, c, b.Neg())).
		Add(PyramidBuoyancy(pos, b, c, a)).
		Add(PyramidBuoyancy(pos, c, b, a.Neg()))
}
