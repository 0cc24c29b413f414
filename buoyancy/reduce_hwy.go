package buoyancy

//go:generate hwygen -input $GOFILE -output . -targets avx2,fallback

import (
	"github.com/ajroetker/go-highway/hwy"
)

// BaseSumMoments sums a batch of moments stored as Structure of Arrays.
// Returns the summed lever X, Y, Z and the summed volume.
func BaseSumMoments[T hwy.Floats](xs, ys, zs, ws []T) (sumX, sumY, sumZ, sumW T) {
	size := min(len(xs), len(ys), len(zs), len(ws))

	vSumX := hwy.Zero[T]()
	vSumY := hwy.Zero[T]()
	vSumZ := hwy.Zero[T]()
	vSumW := hwy.Zero[T]()

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			vSumX = hwy.Add(vSumX, hwy.Load(xs[offset:]))
			vSumY = hwy.Add(vSumY, hwy.Load(ys[offset:]))
			vSumZ = hwy.Add(vSumZ, hwy.Load(zs[offset:]))
			vSumW = hwy.Add(vSumW, hwy.Load(ws[offset:]))
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			vSumX = hwy.Add(vSumX, hwy.MaskLoad(mask, xs[offset:]))
			vSumY = hwy.Add(vSumY, hwy.MaskLoad(mask, ys[offset:]))
			vSumZ = hwy.Add(vSumZ, hwy.MaskLoad(mask, zs[offset:]))
			vSumW = hwy.Add(vSumW, hwy.MaskLoad(mask, ws[offset:]))
		},
	)

	return hwy.ReduceSum(vSumX), hwy.ReduceSum(vSumY), hwy.ReduceSum(vSumZ), hwy.ReduceSum(vSumW)
}

// BaseMinMax returns the smallest and largest values of data, or 0, 0 when
// data is empty. Used for the lowest bottom and highest top of a set of
// boxes.
func BaseMinMax[T hwy.Floats](data []T) (minVal, maxVal T) {
	if len(data) == 0 {
		return 0, 0
	}

	// Seeded with a real element so the padding of a masked load never wins.
	vMin := hwy.Set(data[0])
	vMax := hwy.Set(data[0])

	hwy.ProcessWithTail[T](len(data),
		func(offset int) {
			v := hwy.Load(data[offset:])
			vMin = hwy.Min(vMin, v)
			vMax = hwy.Max(vMax, v)
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			v := hwy.MaskLoad(mask, data[offset:])
			vMin = hwy.Min(vMin, hwy.IfThenElse(mask, v, vMin))
			vMax = hwy.Max(vMax, hwy.IfThenElse(mask, v, vMax))
		},
	)

	return hwy.ReduceMin(vMin), hwy.ReduceMax(vMax)
}
