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
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"

	"github.com/akhenakh/hydro/r3"
)

func testBoxes(seed int64, random int) []Box {
	return append(CanonicalBoxes(), RandomBlock(seed, 0, random)...)
}

func TestBoxBuoyancyBatchMatchesScalar(t *testing.T) {
	// Lengths around multiples of the lane count exercise the scalar tail.
	for _, n := range []int{0, 1, 2, 3, 4, 5, 7, 8, 9, 15, 16, 17, 19, 1000} {
		boxes := testBoxes(int64(n), 1000)[:n]
		out := make([]Moment, n)
		BoxBuoyancyBatch(boxes, out)
		for i, b := range boxes {
			if diff := cmp.Diff(b.BuoyancyWithLeverZ(), out[i], cmpApprox(1e-9)); diff != "" {
				t.Fatalf("n=%d box %d %v: batch mismatch (-scalar +batch):\n%s", n, i, b, diff)
			}
		}
	}
}

func TestBoxBuoyancyBatchNearFlatEdge(t *testing.T) {
	var boxes []Box
	for _, b := range nearFlatBoxes() {
		for _, z := range depths {
			boxes = append(boxes, b.Translate(r3.Vector{Z: z - b.Center.Z}))
		}
	}
	// Repeat so that the boxes go through full vectors and the tail.
	boxes = append(boxes, boxes[1:]...)
	out := make([]Moment, len(boxes))
	BoxBuoyancyBatch(boxes, out)
	for i, b := range boxes {
		if diff := cmp.Diff(b.BuoyancyWithLeverZ(), out[i], cmpApprox(1e-8)); diff != "" {
			t.Errorf("box %d %v: batch mismatch (-scalar +batch):\n%s", i, b, diff)
		}
	}
}

func TestBoxBuoyancyBatchShortOutput(t *testing.T) {
	boxes := CanonicalBoxes()
	out := make([]Moment, 5)
	BoxBuoyancyBatch(boxes, out)
	for i := range out {
		if diff := cmp.Diff(boxes[i].BuoyancyWithLeverZ(), out[i], cmpApprox(1e-9)); diff != "" {
			t.Errorf("box %d: batch mismatch (-scalar +batch):\n%s", i, diff)
		}
	}
	BoxBuoyancyBatch(nil, out)
	BoxBuoyancyBatch(boxes, nil)
}

func TestBoxBuoyancyBatchDegenerate(t *testing.T) {
	boxes := make([]Box, 16)
	for i := range boxes {
		boxes[i] = Box{A: unitCube.A.Mul(float64(i % 2)), B: unitCube.B, C: unitCube.C.Mul(1e-9 * float64(i)), Center: unitCube.Center}
	}
	out := make([]Moment, len(boxes))
	BoxBuoyancyBatch(boxes, out)
	for i, m := range out {
		if !m.IsFinite() {
			t.Errorf("box %d %v: batch moment %v is not finite", i, boxes[i], m)
		}
	}
}

func TestBoxBuoyancyBatchFloat32(t *testing.T) {
	boxes := CanonicalBoxes()
	n := len(boxes)
	soa := make([][]float32, 16)
	for i := range soa {
		soa[i] = make([]float32, n)
	}
	for i, b := range boxes {
		for j, v := range []float64{
			b.A.X, b.A.Y, b.A.Z, b.B.X, b.B.Y, b.B.Z,
			b.C.X, b.C.Y, b.C.Z, b.Center.X, b.Center.Y, b.Center.Z,
		} {
			soa[j][i] = float32(v)
		}
	}
	BaseBoxBuoyancyBatch(
		soa[0], soa[1], soa[2], soa[3], soa[4], soa[5],
		soa[6], soa[7], soa[8], soa[9], soa[10], soa[11],
		soa[12], soa[13], soa[14], soa[15],
	)
	for i, b := range boxes {
		want := b.BuoyancyWithLeverZ()
		got := []float32{soa[12][i], soa[13][i], soa[14][i], soa[15][i]}
		for j, w := range []float64{want.Lever.X, want.Lever.Y, want.Lever.Z, want.Volume} {
			w32 := float32(w)
			if tol := 1e-3 * (1 + math32.Abs(w32) + float32(b.Volume())); math32.Abs(got[j]-w32) > tol {
				t.Errorf("box %d component %d: float32 batch = %v, want %v", i, j, got[j], w)
			}
		}
	}
}

func BenchmarkBoxBuoyancyBatch(b *testing.B) {
	boxes := RandomBlock(1, 0, 1024)
	s := newBoxBatch(boxes)
	for b.Loop() {
		s.buoyancy()
	}
	b.ReportMetric(float64(b.Elapsed().Nanoseconds())/float64(b.N*len(boxes)), "ns/box")
}

func TestSumMoments(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for _, n := range []int{0, 1, 3, 4, 5, 8, 13, 100} {
		var xs, ys, zs, ws []float64
		var want Moment
		for range n {
			m := Moment{randomVector(rng, -1, 1), rng.Float64()}
			xs, ys, zs, ws = append(xs, m.Lever.X), append(ys, m.Lever.Y), append(zs, m.Lever.Z), append(ws, m.Volume)
			want = want.Add(m)
		}
		x, y, z, w := BaseSumMoments(xs, ys, zs, ws)
		got := Moment{r3.Vector{X: x, Y: y, Z: z}, w}
		if diff := cmp.Diff(want, got, approx); diff != "" {
			t.Errorf("n=%d: BaseSumMoments mismatch (-want +got):\n%s", n, diff)
		}
	}
}

func TestMinMax(t *testing.T) {
	tests := []struct {
		data             []float64
		wantMin, wantMax float64
	}{
		{nil, 0, 0},
		{[]float64{3}, 3, 3},
		{[]float64{1, 2, 3, 4, 5, 6, 7, 8}, 1, 8},
		{[]float64{5, 5, 5, 5, 5, 5, 5, 5, 9}, 5, 9},
		{[]float64{5, 5, 5, 5, 5, 5, 5, 5, -9}, -9, 5},
		// Positive values only: the zeros of a masked tail must not win.
		{[]float64{2, 3, 4, 5, 6}, 2, 6},
		{[]float64{-2, -3, -4, -5, -6}, -6, -2},
	}
	for _, test := range tests {
		gotMin, gotMax := BaseMinMax(test.data)
		if gotMin != test.wantMin || gotMax != test.wantMax {
			t.Errorf("BaseMinMax(%v) = %v, %v, want %v, %v", test.data, gotMin, gotMax, test.wantMin, test.wantMax)
		}
	}
}
