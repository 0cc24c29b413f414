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

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/akhenakh/hydro/buoyancy"
)

func newBenchCmd() *cobra.Command {
	var (
		boxes int
		seed  int64
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the reference, scalar and batch integrators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if boxes <= 0 {
				return errors.Errorf("need a positive number of boxes, got %d", boxes)
			}
			logf("timing %d random boxes, seed %d", boxes, seed)
			fmt.Fprintln(cmd.OutOrStdout(), buoyancy.Benchmark(boxes, seed))
			return nil
		},
	}
	cmd.Flags().IntVarP(&boxes, "boxes", "n", 100_000, "number of random boxes")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}
