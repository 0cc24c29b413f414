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

import "math"

// Matrix is a 3x3 matrix stored in row major order.
type Matrix [3][3]float64

// IdentityMatrix returns the 3x3 identity.
func IdentityMatrix() Matrix {
	return Matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// MatrixFromColumns returns the matrix whose columns are a, b and c, i.e. the
// linear map taking the canonical basis onto (a, b, c).
func MatrixFromColumns(a, b, c Vector) Matrix {
	return Matrix{
		{a.X, b.X, c.X},
		{a.Y, b.Y, c.Y},
		{a.Z, b.Z, c.Z},
	}
}

// Col returns column i.
func (m Matrix) Col(i int) Vector {
	return Vector{m[0][i], m[1][i], m[2][i]}
}

// Row returns row i.
func (m Matrix) Row(i int) Vector {
	return Vector{m[i][0], m[i][1], m[i][2]}
}

// Apply returns m·v.
func (m Matrix) Apply(v Vector) Vector {
	return Vector{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Mul returns the matrix product m·o.
func (m Matrix) Mul(o Matrix) Matrix {
	var r Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

// Transpose returns mᵀ. For rotations this is the inverse.
func (m Matrix) Transpose() Matrix {
	return Matrix{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// Det returns the determinant of m.
func (m Matrix) Det() float64 {
	return m.Col(0).Dot(m.Col(1).Cross(m.Col(2)))
}

// RotationBetween returns the rotation taking the direction of from onto the
// direction of to. Both need not be unit length but must be non-zero.
func RotationBetween(from, to Vector) Matrix {
	f, t := from.Normalize(), to.Normalize()
	v := f.Cross(t)
	c := f.Dot(t)
	if c < -1+1e-12 {
		// Antiparallel: half turn about any axis perpendicular to f.
		axis := f.Cross(Vector{1, 0, 0})
		if axis.Norm2() < 1e-12 {
			axis = f.Cross(Vector{0, 1, 0})
		}
		axis = axis.Normalize()
		return Matrix{
			{2*axis.X*axis.X - 1, 2 * axis.X * axis.Y, 2 * axis.X * axis.Z},
			{2 * axis.Y * axis.X, 2*axis.Y*axis.Y - 1, 2 * axis.Y * axis.Z},
			{2 * axis.Z * axis.X, 2 * axis.Z * axis.Y, 2*axis.Z*axis.Z - 1},
		}
	}
	k := 1 / (1 + c)
	skew := Matrix{
		{0, -v.Z, v.Y},
		{v.Z, 0, -v.X},
		{-v.Y, v.X, 0},
	}
	sq := skew.Mul(skew)
	r := IdentityMatrix()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] += skew[i][j] + sq[i][j]*k
		}
	}
	return r
}

// AngleMatrix returns the rotation for Euler angles given in degrees, using
// the pitch (about Y), yaw (about Z), roll (about X) convention of Quake
// derived engines. Its columns are the forward, left and up vectors.
func AngleMatrix(pitch, yaw, roll float64) Matrix {
	forward, right, up := AngleVectors(pitch, yaw, roll)
	return MatrixFromColumns(forward, right.Neg(), up)
}

// AngleVectors returns the forward, right and up vectors for the given angles
// in degrees.
func AngleVectors(pitch, yaw, roll float64) (forward, right, up Vector) {
	deg := math.Pi / 180
	sp, cp := math.Sincos(pitch * deg)
	sy, cy := math.Sincos(yaw * deg)
	sr, cr := math.Sincos(roll * deg)

	forward = Vector{cp * cy, cp * sy, -sp}
	right = Vector{
		-1*sr*sp*cy + -1*cr*-sy,
		-1*sr*sp*sy + -1*cr*cy,
		-1 * sr * cp,
	}
	up = Vector{
		cr*sp*cy + -sr*-sy,
		cr*sp*sy + -sr*cy,
		cr * cp,
	}
	return
}

// RotateZ rotates v by deg degrees of yaw, counterclockwise about +Z.
func RotateZ(v Vector, deg float64) Vector {
	return AngleMatrix(0, deg, 0).Apply(v)
}

// RotateY rotates v by deg degrees of pitch. Positive pitch tips +X towards -Z.
func RotateY(v Vector, deg float64) Vector {
	return AngleMatrix(deg, 0, 0).Apply(v)
}
