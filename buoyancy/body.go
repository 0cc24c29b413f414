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

	"github.com/akhenakh/hydro/r3"
)

// Immersion classifies how a body sits relative to a fluid surface.
type Immersion int

const (
	// Surfaced bodies are entirely above the surface.
	Surfaced Immersion = iota
	// Crossing bodies straddle the surface.
	Crossing
	// Submerged bodies are entirely below the surface.
	Submerged
)

func (i Immersion) String() string {
	switch i {
	case Surfaced:
		return "surfaced"
	case Crossing:
		return "crossing"
	case Submerged:
		return "submerged"
	}
	return fmt.Sprintf("Immersion(%d)", int(i))
}

// Body is a rigid compound of boxes, such as the collision hull of a ship.
// Overlapping boxes are counted twice.
type Body struct {
	Boxes []Box
}

// NewBody returns a body made of boxes.
func NewBody(boxes ...Box) Body {
	return Body{Boxes: boxes}
}

func (b Body) waterFrame(f Fluid) *boxBatch {
	s := newBoxBatch(b.Boxes)
	rot, normal, level := f.frame()
	s.toPlaneFrame(rot, normal, level)
	return s
}

// Buoyancy returns the displaced-volume moment of the body in f, in world
// space and including the Z lever. The boxes are integrated with the batch
// kernel.
func (b Body) Buoyancy(f Fluid) Moment {
	if len(b.Boxes) == 0 {
		return Moment{}
	}
	return f.FromWaterFrame(b.waterFrame(f).buoyancy().sum())
}

// Force returns the buoyant force on the body and its torque about origin.
// ok is false when the body displaces (next to) no fluid.
func (b Body) Force(f Fluid, origin r3.Vector) (Wrench, bool) {
	return f.wrench(b.Buoyancy(f), origin)
}

// Extent returns the signed heights, relative to the surface of f, of the
// lowest and highest corners of the body, and how the body is immersed. An
// empty body is Surfaced with zero extent.
func (b Body) Extent(f Fluid) (bottom, top float64, immersion Immersion) {
	if len(b.Boxes) == 0 {
		return 0, 0, Surfaced
	}
	bottoms, tops := b.waterFrame(f).extents()
	bottom, _ = BaseMinMax(bottoms)
	_, top = BaseMinMax(tops)
	switch {
	case bottom >= 0:
		immersion = Surfaced
	case top <= 0:
		immersion = Submerged
	default:
		immersion = Crossing
	}
	return bottom, top, immersion
}
