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

import "fmt"

// assertf panics with the formatted message when debug checks are compiled
// in and cond is false. Callers guard the call with debugChecks so argument
// evaluation is compiled out as well.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("buoyancy: "+format, args...))
	}
}
