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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/akhenakh/hydro/buoyancy"
)

func newVerifyCmd() *cobra.Command {
	var (
		random    int
		seed      int64
		tolerance float64
		workers   int
		blockSize int
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the closed form and batch integrators against the pyramid-clip reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			runID := uuid.New()
			opts := buoyancy.NewVerifyOptions().
				Random(random).
				Seed(seed).
				Tolerance(tolerance).
				Workers(workers).
				BlockSize(blockSize)
			logf("run %s: %d canonical + %d random boxes, seed %d", runID, len(buoyancy.CanonicalBoxes()), random, seed)

			report, err := buoyancy.Verify(ctx, opts)
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %v\n", runID, report)
			if errors.Is(err, context.Canceled) {
				return errors.Wrapf(err, "run %s interrupted", runID)
			}
			if err != nil {
				logf("worst box: %v", report.WorstBox)
				return errors.Wrapf(err, "run %s", runID)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&random, "random", "n", 1_000_000, "number of random boxes")
	f.Int64Var(&seed, "seed", 1, "random seed")
	f.Float64Var(&tolerance, "tolerance", 1e-4, "largest accepted per-component error")
	f.IntVar(&workers, "workers", 0, "worker goroutines, 0 for one per CPU")
	f.IntVar(&blockSize, "block-size", 4096, "random boxes per seeded block")
	return cmd
}
