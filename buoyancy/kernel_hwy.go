package buoyancy

//go:generate hwygen -input $GOFILE -output . -targets avx2,fallback

import (
	"github.com/ajroetker/go-highway/hwy"
	"github.com/akhenakh/hydro/r3"
)

// Batch version of the closed form integrator. One SIMD lane holds one box;
// every branch of the scalar kernel is evaluated for all lanes and the
// results are selected with masks. Reciprocals are taken of a masked
// denominator so that no lane produces Inf or NaN.

// lanes3 is a batch of vectors, one per lane.
type lanes3[T hwy.Floats] struct {
	x, y, z hwy.Vec[T]
}

func (v lanes3[T]) add(o lanes3[T]) lanes3[T] {
	return lanes3[T]{hwy.Add(v.x, o.x), hwy.Add(v.y, o.y), hwy.Add(v.z, o.z)}
}

func (v lanes3[T]) sub(o lanes3[T]) lanes3[T] {
	return lanes3[T]{hwy.Sub(v.x, o.x), hwy.Sub(v.y, o.y), hwy.Sub(v.z, o.z)}
}

func (v lanes3[T]) scale(s hwy.Vec[T]) lanes3[T] {
	return lanes3[T]{hwy.Mul(v.x, s), hwy.Mul(v.y, s), hwy.Mul(v.z, s)}
}

func (v lanes3[T]) neg() lanes3[T] {
	return lanes3[T]{hwy.Neg(v.x), hwy.Neg(v.y), hwy.Neg(v.z)}
}

// crossZ is the Z component of v × o.
func (v lanes3[T]) crossZ(o lanes3[T]) hwy.Vec[T] {
	return hwy.Sub(hwy.Mul(v.x, o.y), hwy.Mul(v.y, o.x))
}

func selectLanes3[T hwy.Floats](m hwy.Mask[T], a, b lanes3[T]) lanes3[T] {
	return lanes3[T]{hwy.IfThenElse(m, a.x, b.x), hwy.IfThenElse(m, a.y, b.y), hwy.IfThenElse(m, a.z, b.z)}
}

// laneIntegral is a faceIntegral per lane.
type laneIntegral[T hwy.Floats] struct {
	x, y, z, w hwy.Vec[T]
}

func (f laneIntegral[T]) add(o laneIntegral[T]) laneIntegral[T] {
	return laneIntegral[T]{hwy.Add(f.x, o.x), hwy.Add(f.y, o.y), hwy.Add(f.z, o.z), hwy.Add(f.w, o.w)}
}

func (f laneIntegral[T]) sub(o laneIntegral[T]) laneIntegral[T] {
	return laneIntegral[T]{hwy.Sub(f.x, o.x), hwy.Sub(f.y, o.y), hwy.Sub(f.z, o.z), hwy.Sub(f.w, o.w)}
}

func (f laneIntegral[T]) scale(s hwy.Vec[T]) laneIntegral[T] {
	return laneIntegral[T]{hwy.Mul(f.x, s), hwy.Mul(f.y, s), hwy.Mul(f.z, s), hwy.Mul(f.w, s)}
}

func selectLaneIntegral[T hwy.Floats](m hwy.Mask[T], a, b laneIntegral[T]) laneIntegral[T] {
	return laneIntegral[T]{
		hwy.IfThenElse(m, a.x, b.x),
		hwy.IfThenElse(m, a.y, b.y),
		hwy.IfThenElse(m, a.z, b.z),
		hwy.IfThenElse(m, a.w, b.w),
	}
}

// laneConsts holds the broadcast constants of the kernel.
type laneConsts[T hwy.Floats] struct {
	zero, one, two, three, four hwy.Vec[T]
	half, third, twoThirds      hwy.Vec[T]
	minusOne                    hwy.Vec[T]
	flatEpsilon, flatSlope      hwy.Vec[T]
}

func newLaneConsts[T hwy.Floats]() *laneConsts[T] {
	return &laneConsts[T]{
		zero:        hwy.Zero[T](),
		one:         hwy.Set(T(1)),
		two:         hwy.Set(T(2)),
		three:       hwy.Set(T(3)),
		four:        hwy.Set(T(4)),
		half:        hwy.Set(T(0.5)),
		third:       hwy.Set(T(1.0 / 3.0)),
		twoThirds:   hwy.Set(T(2.0 / 3.0)),
		minusOne:    hwy.Set(T(-1)),
		flatEpsilon: hwy.Set(T(flatEpsilon)),
		flatSlope:   hwy.Set(T(flatSlope)),
	}
}

// reciprocal returns 1/x in the lanes of ok and 0 elsewhere.
func (k *laneConsts[T]) reciprocal(ok hwy.Mask[T], x hwy.Vec[T]) hwy.Vec[T] {
	return hwy.IfThenElse(ok, hwy.Div(k.one, hwy.IfThenElse(ok, x, k.one)), k.zero)
}

// sortLanes is sortEdges for every lane.
func sortLanes[T hwy.Floats](k *laneConsts[T], a, b, c lanes3[T]) (lanes3[T], lanes3[T], lanes3[T]) {
	a = selectLanes3(hwy.LessThan(a.z, k.zero), a.neg(), a)
	b = selectLanes3(hwy.LessThan(b.z, k.zero), b.neg(), b)
	c = selectLanes3(hwy.LessThan(c.z, k.zero), c.neg(), c)

	m := hwy.LessThan(a.z, c.z)
	a, c = selectLanes3(m, c, a), selectLanes3(m, a, c)

	bLessA := hwy.LessThan(b.z, a.z)
	bLessC := hwy.LessThan(b.z, c.z)
	a, b = selectLanes3(bLessA, a, b), selectLanes3(bLessA, b, a)
	b, c = selectLanes3(bLessC, c, b), selectLanes3(bLessC, b, c)
	return a, b, c
}

// lanePair is facePair for every lane.
type lanePair[T hwy.Floats] struct {
	k        *laneConsts[T]
	a, b, c  lanes3[T]
	centerZ  hwy.Vec[T]
	cut      hwy.Vec[T]
	rcp2Az   hwy.Vec[T]
	proj     hwy.Vec[T]
	m        lanes3[T]
	hasTips  hwy.Mask[T]
	safeCut  hwy.Vec[T]
}

func newLanePair[T hwy.Floats](k *laneConsts[T], a, b, c lanes3[T], centerZ hwy.Vec[T]) *lanePair[T] {
	p := &lanePair[T]{k: k, a: a, b: b, c: c, centerZ: centerZ}
	steep := hwy.MaskNot(hwy.LessThan(a.z, k.flatEpsilon))
	rcpAz := k.reciprocal(steep, a.z)
	p.cut = hwy.Mul(b.z, rcpAz)
	p.rcp2Az = hwy.IfThenElse(steep, hwy.Mul(k.half, rcpAz), k.flatSlope)
	p.hasTips = hwy.GreaterThan(p.cut, k.zero)
	p.safeCut = hwy.IfThenElse(p.hasTips, p.cut, k.one)
	p.proj = hwy.Abs(a.crossZ(b))
	p.m = b.sub(a.scale(p.cut))
	return p
}

// alongB is facePair.alongB for every lane.
func (p *lanePair[T]) alongB(w hwy.Vec[T]) hwy.Vec[T] {
	return hwy.IfThenElse(p.hasTips, hwy.Div(w, p.safeCut), p.k.zero)
}

func (p *lanePair[T]) full(side hwy.Vec[T]) laneIntegral[T] {
	k, a, b, c := p.k, p.a, p.b, p.c
	z0 := hwy.FMA(side, c.z, p.centerZ)
	sideCz := hwy.Mul(side, p.centerZ)
	ab := func(ac, bc hwy.Vec[T]) hwy.Vec[T] {
		return hwy.Mul(hwy.FMA(ac, a.z, hwy.Mul(bc, b.z)), k.third)
	}
	return laneIntegral[T]{
		x: hwy.Mul(k.four, hwy.Add(hwy.FMA(c.x, sideCz, hwy.Mul(c.x, c.z)), ab(a.x, b.x))),
		y: hwy.Mul(k.four, hwy.Add(hwy.FMA(c.y, sideCz, hwy.Mul(c.y, c.z)), ab(a.y, b.y))),
		z: hwy.FMA(hwy.Mul(k.two, z0), z0, hwy.Mul(k.twoThirds, hwy.FMA(a.z, a.z, hwy.Mul(b.z, b.z)))),
		w: hwy.Mul(k.four, z0),
	}
}

func (p *lanePair[T]) center(side, water hwy.Vec[T]) (laneIntegral[T], hwy.Vec[T]) {
	k, a, c, m := p.k, p.a, p.c, p.m
	topInCenter := hwy.Min(k.one, hwy.Max(p.cut, water))
	span := hwy.Sub(k.one, topInCenter)
	originA := hwy.Sub(p.cut, topInCenter)
	spanSqr := hwy.Mul(span, span)

	x0 := hwy.FMA(originA, a.x, hwy.Mul(side, c.x))
	y0 := hwy.FMA(originA, a.y, hwy.Mul(side, c.y))
	z0 := hwy.FMA(originA, a.z, hwy.FMA(side, c.z, p.centerZ))
	band := func(o, ac, mc hwy.Vec[T]) hwy.Vec[T] {
		return hwy.FMA(o, z0, hwy.Mul(hwy.FMA(hwy.Mul(ac, a.z), spanSqr, hwy.Mul(mc, m.z)), k.third))
	}
	return laneIntegral[T]{
		x: hwy.Mul(k.four, band(x0, a.x, m.x)),
		y: hwy.Mul(k.four, band(y0, a.y, m.y)),
		z: hwy.Mul(k.two, band(z0, a.z, m.z)),
		w: hwy.Mul(k.four, z0),
	}, span
}

func triangleLanes[T hwy.Floats](k *laneConsts[T], ta, tb, o lanes3[T]) laneIntegral[T] {
	s := hwy.Add(ta.z, tb.z)
	// 2·(ta.z-o.z)+tb.z and ta.z+2·(tb.z-o.z)
	wa := hwy.FMA(k.two, hwy.Sub(ta.z, o.z), tb.z)
	wb := hwy.FMA(k.two, hwy.Sub(tb.z, o.z), ta.z)
	wo := hwy.Sub(hwy.Mul(k.three, o.z), hwy.Mul(k.two, s))
	moment := func(tac, tbc, oc hwy.Vec[T]) hwy.Vec[T] {
		return hwy.Mul(k.twoThirds, hwy.FMA(tac, wa, hwy.FMA(tbc, wb, hwy.Mul(oc, wo))))
	}
	// 3·o.z² - 4·o.z·s + 2·(ta.z² + ta.z·tb.z + tb.z²)
	sq := hwy.FMA(ta.z, ta.z, hwy.FMA(ta.z, tb.z, hwy.Mul(tb.z, tb.z)))
	z := hwy.FMA(hwy.Mul(k.three, o.z), o.z, hwy.FMA(hwy.Mul(k.minusOne, hwy.Mul(k.four, o.z)), s, hwy.Mul(k.two, sq)))
	return laneIntegral[T]{
		x: moment(ta.x, tb.x, o.x),
		y: moment(ta.y, tb.y, o.y),
		z: hwy.Mul(z, k.third),
		w: hwy.Mul(k.twoThirds, wo),
	}
}

func (p *lanePair[T]) face(side, water hwy.Vec[T]) laneIntegral[T] {
	k, a, b, c := p.k, p.a, p.b, p.c
	sideC := c.scale(side)

	wTop := hwy.Max(k.zero, hwy.Min(p.cut, water))
	ta := a.scale(wTop)
	tb := b.scale(p.alongB(wTop))
	top := a.add(b).add(sideC)
	top.z = hwy.Add(top.z, p.centerZ)
	topTri := triangleLanes(k, ta, tb, top).scale(hwy.Abs(ta.crossZ(tb)))
	wetTop := p.full(side).scale(p.proj).sub(topTri)

	wBot := hwy.Min(k.zero, hwy.Max(hwy.Neg(p.cut), hwy.Sub(water, hwy.Add(k.one, p.cut))))
	ba := a.scale(wBot)
	bb := b.scale(p.alongB(wBot))
	bottom := sideC.sub(a).sub(b)
	bottom.z = hwy.Add(bottom.z, p.centerZ)
	botTri := triangleLanes(k, ba, bb, bottom).scale(hwy.Abs(ba.crossZ(bb)))
	band, span := p.center(side, water)
	wetBottom := botTri.add(band.scale(hwy.Mul(p.proj, span)))

	inTop := hwy.MaskAnd(p.hasTips, hwy.LessEqual(water, p.cut))
	return selectLaneIntegral(inTop, wetTop, wetBottom)
}

// boxLanes integrates one vector of boxes. The returned X and Y moments are
// relative to the box centers.
func boxLanes[T hwy.Floats](k *laneConsts[T], a, b, c lanes3[T], centerZ hwy.Vec[T]) laneIntegral[T] {
	a, b, c = sortLanes(k, a, b, c)
	topRel := hwy.Add(hwy.Add(a.z, b.z), c.z)
	topZ, bottomZ := hwy.Add(centerZ, topRel), hwy.Sub(centerZ, topRel)

	sum := laneIntegral[T]{k.zero, k.zero, k.zero, k.zero}
	for _, e := range [3][3]lanes3[T]{{a, b, c}, {a, c, b}, {b, c, a}} {
		p := newLanePair(k, e[0], e[1], e[2], centerZ)
		waterPos := hwy.Mul(topZ, p.rcp2Az)
		waterNeg := hwy.Add(hwy.FMA(bottomZ, p.rcp2Az, p.cut), k.one)
		sum = sum.add(p.face(k.one, waterPos).sub(p.face(k.minusOne, waterNeg)))
	}
	return sum
}

// BaseBoxBuoyancyBatch computes the displaced-volume moment of a batch of
// boxes stored as Structure of Arrays: box i has edges (ax[i], ay[i], az[i]),
// (bx[i], ...), (cx[i], ...) and center (px[i], py[i], pz[i]). Unlike
// BoxBuoyancy the Z moment is computed, as with Box.BuoyancyWithLeverZ.
// Elements that do not fill a whole vector go through the scalar kernel.
func BaseBoxBuoyancyBatch[T hwy.Floats](
	ax, ay, az []T,
	bx, by, bz []T,
	cx, cy, cz []T,
	px, py, pz []T,
	leverX, leverY, leverZ, volume []T,
) {
	size := min(len(ax), len(ay), len(az), len(bx), len(by), len(bz),
		len(cx), len(cy), len(cz), len(px), len(py), len(pz),
		len(leverX), len(leverY), len(leverZ), len(volume))

	k := newLaneConsts[T]()
	load := func(x, y, z []T, offset int) lanes3[T] {
		return lanes3[T]{hwy.Load(x[offset:]), hwy.Load(y[offset:]), hwy.Load(z[offset:])}
	}

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			sum := boxLanes(k,
				load(ax, ay, az, offset),
				load(bx, by, bz, offset),
				load(cx, cy, cz, offset),
				hwy.Load(pz[offset:]),
			)
			hwy.Store(hwy.FMA(sum.w, hwy.Load(px[offset:]), sum.x), leverX[offset:])
			hwy.Store(hwy.FMA(sum.w, hwy.Load(py[offset:]), sum.y), leverY[offset:])
			hwy.Store(sum.z, leverZ[offset:])
			hwy.Store(sum.w, volume[offset:])
		},
		func(offset, count int) {
			for i := offset; i < offset+count; i++ {
				box := Box{
					A:      r3.Vector{X: float64(ax[i]), Y: float64(ay[i]), Z: float64(az[i])},
					B:      r3.Vector{X: float64(bx[i]), Y: float64(by[i]), Z: float64(bz[i])},
					C:      r3.Vector{X: float64(cx[i]), Y: float64(cy[i]), Z: float64(cz[i])},
					Center: r3.Vector{X: float64(px[i]), Y: float64(py[i]), Z: float64(pz[i])},
				}
				m := boxBuoyancy(box, true)
				leverX[i] = T(m.Lever.X)
				leverY[i] = T(m.Lever.Y)
				leverZ[i] = T(m.Lever.Z)
				volume[i] = T(m.Volume)
			}
		},
	)
}
