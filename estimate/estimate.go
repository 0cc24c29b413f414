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

// Package estimate computes displaced-volume moments by sampling signed
// distance solids on a grid. It works for any solid sdfx can describe and is
// independent of both box integrators, which makes it a third opinion when
// checking them.
package estimate

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/akhenakh/hydro/buoyancy"
	"github.com/akhenakh/hydro/r3"
)

// orthogonalEpsilon bounds the cosine between two box edges.
const orthogonalEpsilon = 1e-9

// Solid returns the displaced-volume moment of s in water filling z < 0. The
// submerged part of the bounding box of s is split into cells³ cells and
// every cell whose midpoint lies inside s counts with its full volume.
func Solid(s sdf.SDF3, cells int) (buoyancy.Moment, error) {
	if cells < 1 {
		return buoyancy.Moment{}, fmt.Errorf("estimate: need at least one cell, got %d", cells)
	}
	bb := s.BoundingBox()
	lo, hi := bb.Min, bb.Max
	hi.Z = math.Min(hi.Z, 0)
	if lo.Z >= hi.Z {
		return buoyancy.Moment{}, nil
	}

	n := float64(cells)
	step := v3.Vec{X: (hi.X - lo.X) / n, Y: (hi.Y - lo.Y) / n, Z: (hi.Z - lo.Z) / n}
	dv := step.X * step.Y * step.Z

	var lever r3.Vector
	var count int
	for k := range cells {
		z := lo.Z + (float64(k)+0.5)*step.Z
		for j := range cells {
			y := lo.Y + (float64(j)+0.5)*step.Y
			for i := range cells {
				x := lo.X + (float64(i)+0.5)*step.X
				if s.Evaluate(v3.Vec{X: x, Y: y, Z: z}) < 0 {
					lever = lever.Add(r3.Vector{X: x, Y: y, Z: z})
					count++
				}
			}
		}
	}
	return buoyancy.Moment{Lever: lever.Mul(dv), Volume: float64(count) * dv}, nil
}

// BoxSDF returns b as an sdfx solid. The edges of b must be orthogonal.
func BoxSDF(b buoyancy.Box) (sdf.SDF3, error) {
	if b.IsDegenerate() {
		return nil, fmt.Errorf("%w: %v", buoyancy.ErrDegenerateBox, b)
	}
	b = b.RightHanded()
	la, lb, lc := b.A.Norm(), b.B.Norm(), b.C.Norm()
	if math.Abs(b.A.Dot(b.B)) > orthogonalEpsilon*la*lb ||
		math.Abs(b.A.Dot(b.C)) > orthogonalEpsilon*la*lc ||
		math.Abs(b.B.Dot(b.C)) > orthogonalEpsilon*lb*lc {
		return nil, fmt.Errorf("%w: edges of %v are not orthogonal", buoyancy.ErrDegenerateBox, b)
	}

	s, err := sdf.Box3D(v3.Vec{X: 2 * la, Y: 2 * lb, Z: 2 * lc}, 0)
	if err != nil {
		return nil, fmt.Errorf("estimate: box %v: %w", b, err)
	}
	yaw, pitch, roll := eulerZYX(r3.MatrixFromColumns(b.A.Mul(1/la), b.B.Mul(1/lb), b.C.Mul(1/lc)))
	m := sdf.Translate3d(v3.Vec{X: b.Center.X, Y: b.Center.Y, Z: b.Center.Z}).
		Mul(sdf.RotateZ(yaw).Mul(sdf.RotateY(pitch)).Mul(sdf.RotateX(roll)))
	return sdf.Transform3D(s, m), nil
}

// eulerZYX returns the angles, in radians, with r = Rz(yaw)·Ry(pitch)·Rx(roll)
// for a rotation matrix r. At gimbal lock yaw is zero.
func eulerZYX(r r3.Matrix) (yaw, pitch, roll float64) {
	sinPitch := math.Max(-1, math.Min(1, -r[2][0]))
	pitch = math.Asin(sinPitch)
	if math.Abs(sinPitch) < 1-1e-12 {
		return math.Atan2(r[1][0], r[0][0]), pitch, math.Atan2(r[2][1], r[2][2])
	}
	return 0, pitch, math.Atan2(-r[1][2], r[1][1])
}

// Box returns the sampled displaced-volume moment of b in water filling
// z < 0. It returns an error wrapping buoyancy.ErrDegenerateBox if b has a
// zero edge or its edges are not orthogonal.
func Box(b buoyancy.Box, cells int) (buoyancy.Moment, error) {
	s, err := BoxSDF(b)
	if err != nil {
		return buoyancy.Moment{}, err
	}
	return Solid(s, cells)
}
