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

// Package buoyancy computes Archimedes buoyancy integrals of oriented boxes
// cut by a fluid surface.
//
// The fluid occupies the half-space z < 0. For a box the package returns the
// displaced volume W together with its first moment (centroid·W), which is
// additive across boxes and pieces of boxes; callers divide once, at the end,
// guarding near-zero volumes.
//
// Two interchangeable integrators are provided:
//
//   - ReferenceBoxBuoyancy splits the box into six pyramids, one per face with
//     its apex at the box center, clips each face against the surface and sums
//     tetrahedra spanned with the origin.
//
//   - BoxBuoyancy integrates the pressure over the three pairs of opposite
//     faces in closed form. It is several times faster and agrees with the
//     reference to well within 1e-4, but does not compute the Z component of
//     the moment (see Box.BuoyancyWithLeverZ).
//
// BaseBoxBuoyancyBatch evaluates the closed form for many boxes at once, one
// box per SIMD lane. Fluid and Body turn moments into forces and torques, and
// Verify cross-validates the integrators against each other.
package buoyancy
