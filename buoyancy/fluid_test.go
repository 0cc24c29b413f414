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
	"errors"
	"math"
	"testing"

	"github.com/akhenakh/hydro/r3"
	"github.com/google/go-cmp/cmp"
)

func TestPlane(t *testing.T) {
	p := NewPlane(r3.Vector{Z: 2}, r3.Vector{X: 7, Y: -1, Z: 3})
	if want := (Plane{Normal: r3.Vector{Z: 1}, Offset: 3}); p != want {
		t.Errorf("NewPlane() = %v, want %v", p, want)
	}
	tests := []struct {
		p    Plane
		v    r3.Vector
		want float64
	}{
		{p, r3.Vector{X: 1, Y: 1, Z: 5}, 2},
		{p, r3.Vector{Z: 1}, -2},
		// Unnormalized planes are scaled down before use.
		{Plane{Normal: r3.Vector{Z: 2}, Offset: 4}, r3.Vector{Z: 3}, 1},
		// The zero normal means the horizontal plane.
		{Plane{Offset: 1}, r3.Vector{X: 4, Z: 3}, 2},
		{Plane{Normal: r3.Vector{X: 1, Z: 1}}, r3.Vector{X: 1, Z: 1}, math.Sqrt2},
	}
	for _, test := range tests {
		if got := test.p.Height(test.v); math.Abs(got-test.want) > 1e-15 {
			t.Errorf("%v.Height(%v) = %v, want %v", test.p, test.v, got, test.want)
		}
	}
}

func TestFluidValidate(t *testing.T) {
	tests := []struct {
		f    Fluid
		want error
	}{
		{Water(), nil},
		{Fluid{Surface: Plane{Normal: r3.Vector{X: 0.3, Z: -2}, Offset: -4}}, nil},
		// The zero value has no surface normal.
		{Fluid{}, ErrInvalidFluid},
		{Fluid{Density: 1, Gravity: 1, Surface: Plane{Offset: 2}}, ErrInvalidFluid},
		{Fluid{Density: math.NaN(), Gravity: 1, Surface: Plane{Normal: r3.Vector{Z: 1}}}, ErrInvalidFluid},
		{Fluid{Density: 1, Gravity: 1, Surface: Plane{Normal: r3.Vector{Z: 1}, Offset: math.Inf(-1)}}, ErrInvalidFluid},
		{Fluid{Density: -1, Gravity: 1}, ErrInvalidFluid},
		{Fluid{Density: 1, Gravity: -StandardGravity}, ErrInvalidFluid},
		{Fluid{Density: 1, Gravity: 1, Surface: Plane{Normal: r3.Vector{Z: math.NaN()}}}, ErrInvalidFluid},
		{Fluid{Density: 1, Gravity: 1, Surface: Plane{Normal: r3.Vector{X: math.Inf(1)}}}, ErrInvalidFluid},
	}
	for _, test := range tests {
		if got := test.f.Validate(); !errors.Is(got, test.want) {
			t.Errorf("%+v.Validate() = %v, want %v", test.f, got, test.want)
		}
	}
}

func TestFluidForceHalfCube(t *testing.T) {
	f := Water()
	weight := f.Density * f.Gravity
	tests := []struct {
		origin     r3.Vector
		wantTorque r3.Vector
	}{
		{r3.Vector{}, r3.Vector{}},
		{r3.Vector{Z: 5}, r3.Vector{}},
		{r3.Vector{X: 1}, r3.Vector{Y: 4 * weight}},
		{r3.Vector{Y: 1}, r3.Vector{X: -4 * weight}},
	}
	for _, test := range tests {
		w, ok := f.Force(unitCube, test.origin)
		if !ok {
			t.Fatalf("Force(%v) reported no centroid", test.origin)
		}
		want := Wrench{
			Force:     r3.Vector{Z: 4 * weight},
			Torque:    test.wantTorque,
			Displaced: Moment{r3.Vector{Z: -2}, 4},
		}
		if diff := cmp.Diff(want, w, cmpApprox(1e-9)); diff != "" {
			t.Errorf("Force(%v) mismatch (-want +got):\n%s", test.origin, diff)
		}
	}
}

func TestFluidForceDry(t *testing.T) {
	w, ok := Water().Force(unitCube.Translate(r3.Vector{Z: 3}), r3.Vector{})
	if ok {
		t.Errorf("Force() of a dry box reported a centroid: %v", w)
	}
	if w.Force != (r3.Vector{}) || w.Torque != (r3.Vector{}) {
		t.Errorf("Force() of a dry box = %v, want zero", w)
	}
}

// A box and a surface rotated and shifted together displace the same volume
// as the unrotated pair, with the lever carried along.
func TestFluidForceTiltedSurface(t *testing.T) {
	water := Water()
	for _, angles := range [][3]float64{{0, 0, 0}, {30, 20, 10}, {-60, 135, 45}, {90, 0, 0}, {180, 0, 0}, {0, 0, -90}} {
		q := r3.AngleMatrix(angles[0], angles[1], angles[2])
		normal := q.Apply(r3.Vector{Z: 1})
		for _, offset := range []float64{0, 2.5, -1} {
			f := water
			f.Surface = Plane{Normal: normal, Offset: offset}
			shift := normal.Mul(offset)
			for i, b := range CanonicalBoxes() {
				want := b.BuoyancyWithLeverZ()
				want.Lever = q.Apply(want.Lever).Add(shift.Mul(want.Volume))

				w, _ := f.Force(b.Transform(q).Translate(shift), r3.Vector{})
				if diff := cmp.Diff(want, w.Displaced, cmpApprox(1e-9)); diff != "" {
					t.Errorf("angles %v offset %v box %d: displaced mismatch (-want +got):\n%s", angles, offset, i, diff)
				}
				if diff := cmp.Diff(normal.Mul(want.Volume*water.Density*water.Gravity), w.Force, cmpApprox(1e-6)); diff != "" {
					t.Errorf("angles %v offset %v box %d: force mismatch (-want +got):\n%s", angles, offset, i, diff)
				}
			}
		}
	}
}

func TestFluidWaterFrameRoundTrip(t *testing.T) {
	f := Water()
	f.Surface = NewPlane(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 0.5, Z: -1})
	b := CanonicalBoxes()[5].Translate(r3.Vector{X: 0.3, Y: 0.2, Z: 0.1})
	w := f.ToWaterFrame(b)
	if got, want := w.Center.Z, f.Surface.Height(b.Center); math.Abs(got-want) > 1e-12 {
		t.Errorf("ToWaterFrame(%v).Center.Z = %v, want %v", b, got, want)
	}
	if got, want := w.Volume(), b.Volume(); math.Abs(got-want) > 1e-12 {
		t.Errorf("ToWaterFrame(%v).Volume() = %v, want %v", b, got, want)
	}
}
