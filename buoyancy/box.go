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

// Box is an oriented box: the set Center + s·A + t·B + u·C for s, t, u in
// [-1, 1]. A, B and C are half extents. The integrators assume they are
// mutually orthogonal and, for the reference integrator, form a right-handed
// frame; neither is validated.
type Box struct {
	A, B, C r3.Vector
	Center  r3.Vector
}

// NewBox returns the box with half-extent edges a, b, c around center.
func NewBox(a, b, c, center r3.Vector) Box {
	return Box{A: a, B: b, C: c, Center: center}
}

// BoxFromFrame returns the box whose edges are the columns of m, the layout of
// a 3x4 transform whose fourth column is center.
func BoxFromFrame(m r3.Matrix, center r3.Vector) Box {
	return Box{A: m.Col(0), B: m.Col(1), C: m.Col(2), Center: center}
}

// Frame returns the matrix whose columns are the box edges.
func (b Box) Frame() r3.Matrix {
	return r3.MatrixFromColumns(b.A, b.B, b.C)
}

// Volume returns the full volume of the box, 8·|a·(b×c)|. For orthogonal
// edges this is 8·|a|·|b|·|c|.
func (b Box) Volume() float64 {
	return 8 * math.Abs(b.A.Dot(b.B.Cross(b.C)))
}

// Corner returns Center + sa·A + sb·B + sc·C.
func (b Box) Corner(sa, sb, sc float64) r3.Vector {
	return b.Center.Add(b.A.Mul(sa)).Add(b.B.Mul(sb)).Add(b.C.Mul(sc))
}

// Corners returns the eight vertices of the box.
func (b Box) Corners() [8]r3.Vector {
	var vs [8]r3.Vector
	for i := range vs {
		sa, sb, sc := 1.0, 1.0, 1.0
		if i&1 != 0 {
			sa = -1
		}
		if i&2 != 0 {
			sb = -1
		}
		if i&4 != 0 {
			sc = -1
		}
		vs[i] = b.Corner(sa, sb, sc)
	}
	return vs
}

// HalfHeight returns the vertical distance from the center to the highest
// corner, |a.z| + |b.z| + |c.z|.
func (b Box) HalfHeight() float64 {
	return math.Abs(b.A.Z) + math.Abs(b.B.Z) + math.Abs(b.C.Z)
}

// Extent returns the heights of the lowest and highest corners.
func (b Box) Extent() (bottom, top float64) {
	h := b.HalfHeight()
	return b.Center.Z - h, b.Center.Z + h
}

// Translate returns the box moved by d.
func (b Box) Translate(d r3.Vector) Box {
	b.Center = b.Center.Add(d)
	return b
}

// Transform returns the box with its edges and center mapped through m.
func (b Box) Transform(m r3.Matrix) Box {
	return BoxFromFrame(m.Mul(b.Frame()), m.Apply(b.Center))
}

// RightHanded returns the same box with C negated if needed so that
// (A, B, C) is a right-handed frame. The point set is unchanged.
func (b Box) RightHanded() Box {
	if b.A.Cross(b.B).Dot(b.C) < 0 {
		b.C = b.C.Neg()
	}
	return b
}

// IsDegenerate reports whether any edge has zero length or the box has no
// volume.
func (b Box) IsDegenerate() bool {
	return b.A.Norm2() == 0 || b.B.Norm2() == 0 || b.C.Norm2() == 0 || b.Volume() == 0
}

// Buoyancy returns the displaced-volume moment of the box using the closed
// form integrator. Lever.Z is always zero; see BuoyancyWithLeverZ.
func (b Box) Buoyancy() Moment {
	return boxBuoyancy(b, false)
}

// BuoyancyWithLeverZ is Buoyancy with the Z component of the moment
// integrated as well. The Z lever affects neither the buoyant force nor its
// torque about any point on the vertical through the centroid, which is why
// Buoyancy skips it.
func (b Box) BuoyancyWithLeverZ() Moment {
	return boxBuoyancy(b, true)
}

// ReferenceBuoyancy returns the displaced-volume moment computed by clipping
// the six face pyramids. It includes the Z lever. Left-handed edge frames are
// accepted.
func (b Box) ReferenceBuoyancy() Moment {
	r := b.RightHanded()
	return ReferenceBoxBuoyancy(r.A, r.B, r.C, r.Center)
}

func (b Box) String() string {
	return fmt.Sprintf("Box{A: %v, B: %v, C: %v, Center: %v}", b.A, b.B, b.C, b.Center)
}
