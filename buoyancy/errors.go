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

import "errors"

var (
	// ErrToleranceExceeded is returned by Verify when an integrator disagrees
	// with the reference by more than the tolerance.
	ErrToleranceExceeded = errors.New("buoyancy: tolerance exceeded")

	// ErrDegenerateBox is returned for boxes with a zero edge or no volume
	// where a full-dimensional solid is required.
	ErrDegenerateBox = errors.New("buoyancy: degenerate box")

	// ErrInvalidFluid is returned by Fluid.Validate.
	ErrInvalidFluid = errors.New("buoyancy: invalid fluid")
)
