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

// StandardGravity is the gravitational acceleration at sea level in m/s².
const StandardGravity = 9.80665

var zAxis = r3.Vector{Z: 1}

// Plane is the set of points p with Normal·p = Offset. Points with
// Normal·p < Offset are below it.
type Plane struct {
	Normal r3.Vector
	Offset float64
}

// NewPlane returns the plane through point with the given normal.
func NewPlane(normal, point r3.Vector) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, Offset: n.Dot(point)}
}

// unit returns the plane with a unit normal. A zero normal is taken to be +Z.
func (p Plane) unit() (normal r3.Vector, offset float64) {
	l := p.Normal.Norm()
	if l == 0 {
		return zAxis, p.Offset
	}
	return p.Normal.Mul(1 / l), p.Offset / l
}

// Height returns the signed distance of v above the plane.
func (p Plane) Height(v r3.Vector) float64 {
	n, off := p.unit()
	return n.Dot(v) - off
}

// Fluid is a body of liquid filling everything below its Surface.
type Fluid struct {
	// Density in kg/m³.
	Density float64
	// Gravity is the magnitude of the gravitational acceleration, pulling
	// against the surface normal.
	Gravity float64
	Surface Plane
}

// Water returns fresh water at standard gravity with its surface at z=0.
func Water() Fluid {
	return Fluid{Density: 1000, Gravity: StandardGravity, Surface: Plane{Normal: zAxis}}
}

// Validate returns an error wrapping ErrInvalidFluid if the fluid has a
// negative or NaN density or gravity, or a surface that is not a plane: a
// zero or non-finite normal, or a non-finite offset.
func (f Fluid) Validate() error {
	if !(f.Density >= 0) || !(f.Gravity >= 0) {
		return fmt.Errorf("%w: density %g and gravity %g must not be negative", ErrInvalidFluid, f.Density, f.Gravity)
	}
	n := f.Surface.Normal
	if !n.IsFinite() {
		return fmt.Errorf("%w: surface normal %v is not finite", ErrInvalidFluid, n)
	}
	if n.Norm2() == 0 {
		return fmt.Errorf("%w: surface normal is zero", ErrInvalidFluid)
	}
	if math.IsNaN(f.Surface.Offset) || math.IsInf(f.Surface.Offset, 0) {
		return fmt.Errorf("%w: surface offset %g is not finite", ErrInvalidFluid, f.Surface.Offset)
	}
	return nil
}

// frame returns the rotation taking the surface normal to +Z together with
// the unit normal and offset.
func (f Fluid) frame() (rot r3.Matrix, normal r3.Vector, level float64) {
	normal, level = f.Surface.unit()
	return r3.RotationBetween(normal, zAxis), normal, level
}

// ToWaterFrame maps b into the frame where the surface is the plane z=0 and
// the fluid lies below it, the frame the integrators work in.
func (f Fluid) ToWaterFrame(b Box) Box {
	rot, normal, level := f.frame()
	w := b.Transform(rot)
	w.Center.Z = normal.Dot(b.Center) - level
	return w
}

// FromWaterFrame maps a moment computed in the water frame back to world
// space. The moment must include its Z lever.
func (f Fluid) FromWaterFrame(m Moment) Moment {
	rot, _, level := f.frame()
	l := m.Lever
	l.Z += level * m.Volume
	return Moment{Lever: rot.Transpose().Apply(l), Volume: m.Volume}
}

// Wrench is a force together with its torque about a reference point.
type Wrench struct {
	Force  r3.Vector
	Torque r3.Vector
	// Displaced is the displaced-volume moment the wrench derives from, in
	// world space.
	Displaced Moment
}

func (w Wrench) String() string {
	return fmt.Sprintf("force %v torque %v", w.Force, w.Torque)
}

// wrench returns the buoyant force of the displaced moment m and its torque
// about origin. ok is false when the displaced volume is too small to have a
// centroid.
func (f Fluid) wrench(m Moment, origin r3.Vector) (Wrench, bool) {
	normal, _ := f.Surface.unit()
	weight := f.Density * f.Gravity
	up := normal.Mul(weight)
	// (centroid - origin) × (V·up), without dividing by V.
	arm := m.Lever.Sub(origin.Mul(m.Volume))
	w := Wrench{
		Force:     up.Mul(m.Volume),
		Torque:    arm.Cross(up),
		Displaced: m,
	}
	_, ok := m.Centroid()
	return w, ok
}

// Force returns the buoyant force on b and its torque about origin. ok is
// false when the box displaces (next to) no fluid; the wrench is then
// (near) zero.
func (f Fluid) Force(b Box, origin r3.Vector) (Wrench, bool) {
	m := f.FromWaterFrame(f.ToWaterFrame(b).BuoyancyWithLeverZ())
	return f.wrench(m, origin)
}
