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

// The closed form integrator works on the surface of the box instead of its
// volume: the buoyant force is the integral of the hydrostatic pressure over
// the submerged faces. Opposite faces are integrated in pairs, one pair per
// choice of the edge orthogonal to them.
//
// Each face is the parallelogram spanned by two edges A and B with a.z >= b.z
// >= 0 (see sortEdges). A horizontal water line cuts it into at most three
// shapes, listed top to bottom: a top triangle at the highest corner, a
// central band, and a bottom triangle at the lowest corner. Positions along
// the face are measured in units of 2·a.z from the top corner:
//
//	            * (a+b)    0
//	           /|
//	          / |
//	(a-b)    *--+          cut
//	         |  |
//	         |  |
//	         +--* (b-a)    1
//	         | /
//	         |/
//	(-a-b)   *             1 + cut
//
// where cut = b.z / a.z. The level of the water on the face, water, uses the
// same units. When the water is in the top triangle the face integral is the
// full face minus the dry top triangle; otherwise it is the wet part of the
// central band plus the wet part of the bottom triangle.

// flatEpsilon is the smallest a.z (the steepest edge of a face) for which
// the face is not considered horizontal.
const flatEpsilon = 1e-6

// flatSlope replaces 1/(2·a.z) for horizontal faces. It pushes the water level
// of a dry horizontal face far below it and that of a wet face far above it.
const flatSlope = 1e24

// faceIntegral holds the pressure integral of a piece of a face: the X, Y
// and Z moments and the volume, each per unit of projected area.
type faceIntegral struct {
	x, y, z, w float64
}

func (f faceIntegral) add(o faceIntegral) faceIntegral {
	return faceIntegral{f.x + o.x, f.y + o.y, f.z + o.z, f.w + o.w}
}

func (f faceIntegral) sub(o faceIntegral) faceIntegral {
	return faceIntegral{f.x - o.x, f.y - o.y, f.z - o.z, f.w - o.w}
}

func (f faceIntegral) mul(s float64) faceIntegral {
	return faceIntegral{f.x * s, f.y * s, f.z * s, f.w * s}
}

// upward returns v or -v, whichever does not point down.
func upward(v r3.Vector) r3.Vector {
	if math.Signbit(v.Z) {
		return v.Neg()
	}
	return v
}

// sortEdges flips the box edges to point upwards and orders them by
// descending z. Flipping an edge does not change the box. The swap sequence
// is a↔c, a↔b, b↔c, where the last comparison uses b as it was before the
// second swap; ties between a and b swap.
func sortEdges(a, b, c r3.Vector) [3]r3.Vector {
	e := [3]r3.Vector{upward(a), upward(b), upward(c)}
	if e[0].Z < e[2].Z {
		e[0], e[2] = e[2], e[0]
	}
	bLessA := e[1].Z < e[0].Z
	bLessC := e[1].Z < e[2].Z
	if !bLessA {
		e[0], e[1] = e[1], e[0]
	}
	if bLessC {
		e[1], e[2] = e[2], e[1]
	}
	if debugChecks {
		assertf(e[0].Z >= e[1].Z && e[1].Z >= e[2].Z && e[2].Z >= 0, "edges not sorted: %v %v %v", e[0], e[1], e[2])
	}
	return e
}

// facePair integrates the two faces spanned by edges a and b that lie at +c
// and -c from the box center. X and Y are relative to the box center; Z is
// absolute.
type facePair struct {
	a, b, c  r3.Vector
	centerZ  float64
	flat     bool
	cut      float64
	rcp2Az   float64
	proj     float64
	m        r3.Vector
	// hasTips is set when b is not horizontal, so the face has a top and a
	// bottom triangle.
	hasTips bool
}

func newFacePair(a, b, c r3.Vector, centerZ float64) facePair {
	p := facePair{a: a, b: b, c: c, centerZ: centerZ}

	// If a.z is 0, b.z is 0 as well and the faces are horizontal.
	p.flat = a.Z < flatEpsilon
	var rcpAz float64
	if !p.flat {
		rcpAz = 1 / a.Z
	}
	p.cut = b.Z * rcpAz
	if debugChecks {
		assertf(p.cut >= -flatEpsilon && p.cut <= 1+flatEpsilon, "cut %g out of [0, 1]", p.cut)
	}
	p.rcp2Az = 0.5 * rcpAz
	if p.flat {
		p.rcp2Az = flatSlope
	}
	p.hasTips = p.cut > 0
	p.proj = math.Abs(a.CrossZ(b))
	// m = b - cut·a runs parallel to the surface.
	p.m = b.Sub(a.Mul(p.cut))
	return p
}

// alongB converts a position w in [-cut, cut] along a into the matching
// fraction of b, in [-1, 1].
func (p *facePair) alongB(w float64) float64 {
	if !p.hasTips {
		return 0
	}
	return w / p.cut
}

// full returns the integral over the whole face at side·c.
func (p *facePair) full(side float64) faceIntegral {
	a, b, c := p.a, p.b, p.c
	z0 := p.centerZ + side*c.Z
	return faceIntegral{
		x: 4 * (side*c.X*p.centerZ + c.X*c.Z + (a.X*a.Z+b.X*b.Z)/3),
		y: 4 * (side*c.Y*p.centerZ + c.Y*c.Z + (a.Y*a.Z+b.Y*b.Z)/3),
		z: 2*z0*z0 + 2.0/3.0*(a.Z*a.Z+b.Z*b.Z),
		w: 4 * z0,
	}
}

// center returns the integral over the wet part of the central band of the
// face at side·c, per unit of the full face's projected area, and the
// fraction of the band's span that is wet.
func (p *facePair) center(side, water float64) (faceIntegral, float64) {
	a, c, m := p.a, p.c, p.m
	topInCenter := math.Min(1, math.Max(p.cut, water))
	span := 1 - topInCenter
	originA := p.cut - topInCenter
	spanSqr := span * span

	x0 := side*c.X + originA*a.X
	y0 := side*c.Y + originA*a.Y
	z0 := p.centerZ + side*c.Z + originA*a.Z
	return faceIntegral{
		x: 4 * (x0*z0 + (a.X*a.Z*spanSqr+m.X*m.Z)/3),
		y: 4 * (y0*z0 + (a.Y*a.Z*spanSqr+m.Y*m.Z)/3),
		z: 2 * (z0*z0 + (a.Z*a.Z*spanSqr+m.Z*m.Z)/3),
		w: 4 * z0,
	}, span
}

// triangle integrates over the triangle with corner o spanned by o + 2·ta
// and o + 2·tb, per unit of the projected area of (ta, tb). o.X and o.Y are
// relative to the box center, o.Z is absolute.
func triangle(ta, tb, o r3.Vector) faceIntegral {
	s := ta.Z + tb.Z
	return faceIntegral{
		x: 2.0 / 3.0 * (ta.X*(2*(ta.Z-o.Z)+tb.Z) + tb.X*(ta.Z+2*(tb.Z-o.Z)) + o.X*(3*o.Z-2*s)),
		y: 2.0 / 3.0 * (ta.Y*(2*(ta.Z-o.Z)+tb.Z) + tb.Y*(ta.Z+2*(tb.Z-o.Z)) + o.Y*(3*o.Z-2*s)),
		z: (3*o.Z*o.Z - 4*o.Z*s + 2*(ta.Z*ta.Z+ta.Z*tb.Z+tb.Z*tb.Z)) / 3,
		w: 2.0 / 3.0 * (3*o.Z - 2*s),
	}
}

// face returns the integral over the submerged part of the face at side·c
// given the water level on it.
func (p *facePair) face(side, water float64) faceIntegral {
	a, b, c := p.a, p.b, p.c

	if p.hasTips && water <= p.cut {
		// Water in the top triangle: everything but the dry tip is wet.
		wTop := math.Max(0, math.Min(p.cut, water))
		ta := a.Mul(wTop)
		tb := b.Mul(p.alongB(wTop))
		top := a.Add(b).Add(c.Mul(side))
		top.Z += p.centerZ
		tri := triangle(ta, tb, top).mul(math.Abs(ta.CrossZ(tb)))
		return p.full(side).mul(p.proj).sub(tri)
	}

	// Signs are flipped so that the triangle is spanned from the bottom
	// corner upwards.
	wBot := math.Min(0, math.Max(-p.cut, water-(1+p.cut)))
	ba := a.Mul(wBot)
	bb := b.Mul(p.alongB(wBot))
	bottom := c.Mul(side).Sub(a).Sub(b)
	bottom.Z += p.centerZ
	tri := triangle(ba, bb, bottom).mul(math.Abs(ba.CrossZ(bb)))

	band, span := p.center(side, water)
	return tri.add(band.mul(p.proj * span))
}

// boxBuoyancy is the closed form integrator behind Box.Buoyancy.
func boxBuoyancy(box Box, withLeverZ bool) Moment {
	e := sortEdges(box.A, box.B, box.C)
	centerZ := box.Center.Z
	topRel := e[0].Z + e[1].Z + e[2].Z
	topZ, bottomZ := centerZ+topRel, centerZ-topRel

	var sum faceIntegral
	// Face pairs (a,b|c), (a,c|b), (b,c|a).
	for _, idx := range [3][3]int{{0, 1, 2}, {0, 2, 1}, {1, 2, 0}} {
		p := newFacePair(e[idx[0]], e[idx[1]], e[idx[2]], centerZ)
		waterPos := topZ * p.rcp2Az
		waterNeg := bottomZ*p.rcp2Az + p.cut + 1
		sum = sum.add(p.face(1, waterPos).sub(p.face(-1, waterNeg)))
	}

	m := Moment{
		Lever: r3.Vector{
			X: sum.x + sum.w*box.Center.X,
			Y: sum.y + sum.w*box.Center.Y,
		},
		Volume: sum.w,
	}
	if withLeverZ {
		m.Lever.Z = sum.z
	}
	return m
}

// BoxBuoyancy returns the displaced-volume moment of the box
// pos + s·a + t·b + u·c, s, t, u in [-1, 1], with the closed form integrator.
// The edges need not be sorted, point upwards or be right-handed. Lever.Z is
// zero.
func BoxBuoyancy(a, b, c, pos r3.Vector) Moment {
	return boxBuoyancy(Box{A: a, B: b, C: c, Center: pos}, false)
}
