package r3

//go:generate hwygen -input $GOFILE -output . -targets avx2,fallback

import (
	"github.com/ajroetker/go-highway/hwy"
)

// Batch vector kernels over Structure of Arrays layouts. Boxes and edge
// frames are stored as separate X, Y, Z slices so that one SIMD lane holds
// one element of the batch.

// BaseCrossBatch computes c = a × b for every element of the batch.
// cx = ay*bz - az*by
// cy = az*bx - ax*bz
// cz = ax*by - ay*bx
func BaseCrossBatch[T hwy.Floats](
	ax, ay, az []T,
	bx, by, bz []T,
	cx, cy, cz []T,
) {
	size := min(len(ax), len(ay), len(az), len(bx), len(by), len(bz), len(cx), len(cy), len(cz))

	cross := func(vAx, vAy, vAz, vBx, vBy, vBz hwy.Vec[T]) (hwy.Vec[T], hwy.Vec[T], hwy.Vec[T]) {
		vCx := hwy.Sub(hwy.Mul(vAy, vBz), hwy.Mul(vAz, vBy))
		vCy := hwy.Sub(hwy.Mul(vAz, vBx), hwy.Mul(vAx, vBz))
		vCz := hwy.Sub(hwy.Mul(vAx, vBy), hwy.Mul(vAy, vBx))
		return vCx, vCy, vCz
	}

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			vCx, vCy, vCz := cross(
				hwy.Load(ax[offset:]), hwy.Load(ay[offset:]), hwy.Load(az[offset:]),
				hwy.Load(bx[offset:]), hwy.Load(by[offset:]), hwy.Load(bz[offset:]),
			)
			hwy.Store(vCx, cx[offset:])
			hwy.Store(vCy, cy[offset:])
			hwy.Store(vCz, cz[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			vCx, vCy, vCz := cross(
				hwy.MaskLoad(mask, ax[offset:]), hwy.MaskLoad(mask, ay[offset:]), hwy.MaskLoad(mask, az[offset:]),
				hwy.MaskLoad(mask, bx[offset:]), hwy.MaskLoad(mask, by[offset:]), hwy.MaskLoad(mask, bz[offset:]),
			)
			hwy.MaskStore(mask, vCx, cx[offset:])
			hwy.MaskStore(mask, vCy, cy[offset:])
			hwy.MaskStore(mask, vCz, cz[offset:])
		},
	)
}

// BaseDotConstBatch computes dst[i] = n·(x[i], y[i], z[i]) - level.
// With n a unit plane normal this is the signed height of each point above
// the plane n·p = level.
func BaseDotConstBatch[T hwy.Floats](
	nx, ny, nz, level T,
	x, y, z []T,
	dst []T,
) {
	size := min(len(x), len(y), len(z), len(dst))

	vNx := hwy.Set(nx)
	vNy := hwy.Set(ny)
	vNz := hwy.Set(nz)
	vOff := hwy.Set(level)

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			sum := hwy.Mul(vNx, hwy.Load(x[offset:]))
			sum = hwy.FMA(vNy, hwy.Load(y[offset:]), sum)
			sum = hwy.FMA(vNz, hwy.Load(z[offset:]), sum)
			hwy.Store(hwy.Sub(sum, vOff), dst[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			sum := hwy.Mul(vNx, hwy.MaskLoad(mask, x[offset:]))
			sum = hwy.FMA(vNy, hwy.MaskLoad(mask, y[offset:]), sum)
			sum = hwy.FMA(vNz, hwy.MaskLoad(mask, z[offset:]), sum)
			hwy.MaskStore(mask, hwy.Sub(sum, vOff), dst[offset:])
		},
	)
}

// BaseMatrixMulBatch applies the 3x3 matrix m to every vector of the batch.
// dst may alias src.
func BaseMatrixMulBatch[T hwy.Floats](
	m Matrix,
	srcX, srcY, srcZ []T,
	dstX, dstY, dstZ []T,
) {
	size := min(len(srcX), len(srcY), len(srcZ), len(dstX), len(dstY), len(dstZ))

	var vm [3][3]hwy.Vec[T]
	for i := range 3 {
		for j := range 3 {
			vm[i][j] = hwy.Set(T(m[i][j]))
		}
	}

	apply := func(x, y, z hwy.Vec[T]) (hwy.Vec[T], hwy.Vec[T], hwy.Vec[T]) {
		// Row i: x*m[i][0] + y*m[i][1] + z*m[i][2]
		var res [3]hwy.Vec[T]
		for i := range 3 {
			r := hwy.Mul(x, vm[i][0])
			r = hwy.FMA(y, vm[i][1], r)
			res[i] = hwy.FMA(z, vm[i][2], r)
		}
		return res[0], res[1], res[2]
	}

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			resX, resY, resZ := apply(hwy.Load(srcX[offset:]), hwy.Load(srcY[offset:]), hwy.Load(srcZ[offset:]))
			hwy.Store(resX, dstX[offset:])
			hwy.Store(resY, dstY[offset:])
			hwy.Store(resZ, dstZ[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			resX, resY, resZ := apply(
				hwy.MaskLoad(mask, srcX[offset:]),
				hwy.MaskLoad(mask, srcY[offset:]),
				hwy.MaskLoad(mask, srcZ[offset:]),
			)
			hwy.MaskStore(mask, resX, dstX[offset:])
			hwy.MaskStore(mask, resY, dstY[offset:])
			hwy.MaskStore(mask, resZ, dstZ[offset:])
		},
	)
}
