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

package r3

import (
	"math/rand"
	"testing"
)

func randomSoA(rng *rand.Rand, n int) (x, y, z []float64) {
	x, y, z = make([]float64, n), make([]float64, n), make([]float64, n)
	for i := range n {
		x[i], y[i], z[i] = rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1
	}
	return x, y, z
}

// Sizes around the lane count exercise both the full and the tail path.
var batchSizes = []int{0, 1, 3, 4, 7, 8, 9, 16, 17, 100}

func TestCrossBatch(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range batchSizes {
		ax, ay, az := randomSoA(rng, n)
		bx, by, bz := randomSoA(rng, n)
		cx, cy, cz := make([]float64, n), make([]float64, n), make([]float64, n)
		BaseCrossBatch(ax, ay, az, bx, by, bz, cx, cy, cz)
		for i := range n {
			want := Vector{ax[i], ay[i], az[i]}.Cross(Vector{bx[i], by[i], bz[i]})
			if got := (Vector{cx[i], cy[i], cz[i]}); !got.ApproxEqualWithin(want, 1e-15) {
				t.Errorf("n=%d: BaseCrossBatch[%d] = %v, want %v", n, i, got, want)
			}
		}
	}
}

func TestDotConstBatch(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	normal := Vector{1, 2, 2}.Normalize()
	const level = 0.25
	for _, n := range batchSizes {
		x, y, z := randomSoA(rng, n)
		dst := make([]float64, n)
		BaseDotConstBatch(normal.X, normal.Y, normal.Z, level, x, y, z, dst)
		for i := range n {
			want := normal.Dot(Vector{x[i], y[i], z[i]}) - level
			if got := dst[i]; got-want > 1e-15 || want-got > 1e-15 {
				t.Errorf("n=%d: BaseDotConstBatch[%d] = %v, want %v", n, i, got, want)
			}
		}
	}
}

func TestMatrixMulBatchInPlace(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := RotationBetween(Vector{1, 0, 0}, Vector{0.2, -0.5, 0.8})
	for _, n := range batchSizes {
		x, y, z := randomSoA(rng, n)
		orig := make([]Vector, n)
		for i := range n {
			orig[i] = Vector{x[i], y[i], z[i]}
		}
		BaseMatrixMulBatch(m, x, y, z, x, y, z)
		for i := range n {
			want := m.Apply(orig[i])
			if got := (Vector{x[i], y[i], z[i]}); !got.ApproxEqualWithin(want, 1e-15) {
				t.Errorf("n=%d: BaseMatrixMulBatch[%d] = %v, want %v", n, i, got, want)
			}
		}
	}
}

func TestMatrixMulBatchFloat32(t *testing.T) {
	m := Matrix{{0, -1, 0}, {1, 0, 0}, {0, 0, 2}}
	x, y, z := []float32{1, 2, 3, 4, 5}, []float32{0, 0, 0, 0, 1}, []float32{1, 1, 1, 1, 1}
	dx, dy, dz := make([]float32, 5), make([]float32, 5), make([]float32, 5)
	BaseMatrixMulBatch(m, x, y, z, dx, dy, dz)
	for i := range x {
		if dx[i] != -y[i] || dy[i] != x[i] || dz[i] != 2*z[i] {
			t.Errorf("BaseMatrixMulBatch[float32][%d] = (%v, %v, %v), want (%v, %v, %v)",
				i, dx[i], dy[i], dz[i], -y[i], x[i], 2*z[i])
		}
	}
}
