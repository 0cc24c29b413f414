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

// Command hydro evaluates and cross-checks the box buoyancy integrators.
//
// Usage:
//
//	hydro verify -n 1000000 --seed 1          # integrators vs reference on random boxes
//	hydro bench -n 100000                     # time per box of each integrator
//	hydro eval --a 1,0,0 --b 0,1,0 --center 0,0,0.5
//	hydro sample --a 1,0,0 --b 0,1,0 --c 0,0,2 --cells 100
package main

import (
	"log"

	"github.com/spf13/cobra"
)

var verbose bool

// logf logs only with -v.
func logf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hydro",
		Short:         "Buoyancy of oriented boxes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress")
	root.AddCommand(newVerifyCmd(), newBenchCmd(), newEvalCmd(), newSampleCmd())
	return root
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("hydro: ")
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
