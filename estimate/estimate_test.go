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

package estimate

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/akhenakh/hydro/buoyancy"
	"github.com/akhenakh/hydro/r3"
)

var unitCube = buoyancy.NewBox(r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Z: 1}, r3.Vector{})

func TestBoxHalfCube(t *testing.T) {
	got, err := Box(unitCube, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := buoyancy.Moment{Lever: r3.Vector{Z: -2}, Volume: 4}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Box(unit cube, 10) mismatch (-want +got):\n%s", diff)
	}
}

func TestBoxSDF(t *testing.T) {
	checked := 0
	for i, b := range buoyancy.CanonicalBoxes() {
		s, err := BoxSDF(b)
		if errors.Is(err, buoyancy.ErrDegenerateBox) {
			// Some canonical edges are orthogonal to a few digits only.
			continue
		}
		if err != nil {
			t.Fatalf("box %d: BoxSDF() = %v", i, err)
		}
		checked++
		for _, c := range b.Corners() {
			if d := s.Evaluate(v3.Vec{X: c.X, Y: c.Y, Z: c.Z}); math.Abs(d) > 1e-9 {
				t.Errorf("box %d: distance at corner %v = %v, want 0", i, c, d)
			}
		}
		want := -min(b.A.Norm(), b.B.Norm(), b.C.Norm())
		if d := s.Evaluate(v3.Vec{X: b.Center.X, Y: b.Center.Y, Z: b.Center.Z}); math.Abs(d-want) > 1e-9 {
			t.Errorf("box %d: distance at center = %v, want %v", i, d, want)
		}
	}
	if checked < 15 {
		t.Errorf("only %d canonical boxes converted", checked)
	}
}

func TestBoxAgreesWithClosedForm(t *testing.T) {
	cells := 80
	if testing.Short() {
		cells = 40
	}
	for i, b := range buoyancy.CanonicalBoxes() {
		got, err := Box(b, cells)
		if errors.Is(err, buoyancy.ErrDegenerateBox) {
			continue
		}
		if err != nil {
			t.Fatalf("box %d: Box() = %v", i, err)
		}
		want := b.Buoyancy()
		if d := math.Abs(got.Volume - want.Volume); d > 0.02*b.Volume() {
			t.Errorf("box %d: sampled volume %v, closed form %v", i, got.Volume, want.Volume)
		}
	}
}

func TestErrors(t *testing.T) {
	if _, err := Box(buoyancy.Box{A: r3.Vector{X: 1}, B: r3.Vector{Y: 1}}, 10); !errors.Is(err, buoyancy.ErrDegenerateBox) {
		t.Errorf("Box(flat box) = %v, want %v", err, buoyancy.ErrDegenerateBox)
	}
	skew := buoyancy.NewBox(r3.Vector{X: 1}, r3.Vector{X: 1, Y: 1}, r3.Vector{Z: 1}, r3.Vector{})
	if _, err := Box(skew, 10); !errors.Is(err, buoyancy.ErrDegenerateBox) {
		t.Errorf("Box(skew box) = %v, want %v", err, buoyancy.ErrDegenerateBox)
	}
	if _, err := Box(unitCube, 0); err == nil {
		t.Errorf("Box(unit cube, 0) = nil error, want an error")
	}
	dry, err := Box(unitCube.Translate(r3.Vector{Z: 5}), 10)
	if err != nil || dry != (buoyancy.Moment{}) {
		t.Errorf("Box(dry cube) = %v, %v, want zero", dry, err)
	}
}

func TestEulerZYX(t *testing.T) {
	for _, angles := range [][3]float64{{0, 0, 0}, {30, 20, 10}, {-60, 135, 45}, {90, 0, 0}, {-90, 30, 0}, {0, 0, 180}} {
		r := r3.AngleMatrix(angles[0], angles[1], angles[2])
		yaw, pitch, roll := eulerZYX(r)
		sy, cy := math.Sincos(yaw)
		sp, cp := math.Sincos(pitch)
		sr, cr := math.Sincos(roll)
		rz := r3.Matrix{{cy, -sy, 0}, {sy, cy, 0}, {0, 0, 1}}
		ry := r3.Matrix{{cp, 0, sp}, {0, 1, 0}, {-sp, 0, cp}}
		rx := r3.Matrix{{1, 0, 0}, {0, cr, -sr}, {0, sr, cr}}
		got := rz.Mul(ry).Mul(rx)
		for i := range 3 {
			for j := range 3 {
				if math.Abs(got[i][j]-r[i][j]) > 1e-9 {
					t.Fatalf("angles %v: eulerZYX() = %v, %v, %v rebuilds %v, want %v", angles, yaw, pitch, roll, got, r)
				}
			}
		}
	}
}
