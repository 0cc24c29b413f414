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
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/akhenakh/hydro/buoyancy"
	"github.com/akhenakh/hydro/estimate"
	"github.com/akhenakh/hydro/r3"
)

// vectorValue is a pflag.Value parsing "x,y,z".
type vectorValue struct {
	v *r3.Vector
}

var _ pflag.Value = vectorValue{}

func (f vectorValue) String() string {
	if f.v == nil {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g", f.v.X, f.v.Y, f.v.Z)
}

func (f vectorValue) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return errors.Errorf("want x,y,z, got %q", s)
	}
	var xyz [3]float64
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return errors.Wrapf(err, "component %d of %q", i, s)
		}
		xyz[i] = x
	}
	*f.v = r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	return nil
}

func (vectorValue) Type() string { return "vector" }

// boxFlags registers the flags describing one box. An unset -c is the unit
// normal of a and b.
func boxFlags(f *pflag.FlagSet) func() buoyancy.Box {
	b := buoyancy.Box{A: r3.Vector{X: 1}, B: r3.Vector{Y: 1}}
	f.Var(vectorValue{&b.A}, "a", "first half-extent edge")
	f.Var(vectorValue{&b.B}, "b", "second half-extent edge")
	f.Var(vectorValue{&b.C}, "c", "third half-extent edge (default: unit normal of a and b)")
	f.Var(vectorValue{&b.Center}, "center", "box center")
	return func() buoyancy.Box {
		if !f.Changed("c") {
			b.C = b.A.Cross(b.B).Normalize()
		}
		return b
	}
}

func printMoment(w io.Writer, name string, m buoyancy.Moment) {
	c, ok := m.Centroid()
	if !ok {
		fmt.Fprintf(w, "%-10s %v  (dry)\n", name, m)
		return
	}
	fmt.Fprintf(w, "%-10s %v  centroid (%g, %g, %g)\n", name, m, c.X, c.Y, c.Z)
}

func newEvalCmd() *cobra.Command {
	var density, gravity float64
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Print the buoyancy of one box in water filling z < 0",
		Args:  cobra.NoArgs,
	}
	box := boxFlags(cmd.Flags())
	cmd.Flags().Float64Var(&density, "density", 1000, "fluid density in kg/m³")
	cmd.Flags().Float64Var(&gravity, "gravity", buoyancy.StandardGravity, "gravitational acceleration in m/s²")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		b := box()
		fluid := buoyancy.Water()
		fluid.Density, fluid.Gravity = density, gravity
		if err := fluid.Validate(); err != nil {
			return errors.Wrap(err, "eval")
		}
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, b)
		printMoment(w, "fast", b.Buoyancy())
		printMoment(w, "fast+z", b.BuoyancyWithLeverZ())
		printMoment(w, "reference", b.ReferenceBuoyancy())
		wrench, ok := fluid.Force(b, b.Center)
		if ok {
			fmt.Fprintf(w, "%-10s %v\n", "force", wrench)
		}
		logf("max error vs reference %g", buoyancy.BoxError(b))
		return nil
	}
	return cmd
}

func newSampleCmd() *cobra.Command {
	var cells int
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Compare the integrators with a grid-sampled estimate of one box",
		Args:  cobra.NoArgs,
	}
	box := boxFlags(cmd.Flags())
	cmd.Flags().IntVar(&cells, "cells", 100, "grid cells per axis")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		b := box()
		logf("sampling %v on %d³ cells", b, cells)
		est, err := estimate.Box(b, cells)
		if err != nil {
			return errors.Wrap(err, "sample")
		}
		w := cmd.OutOrStdout()
		printMoment(w, "sampled", est)
		printMoment(w, "fast+z", b.BuoyancyWithLeverZ())
		printMoment(w, "reference", b.ReferenceBuoyancy())
		fmt.Fprintf(w, "volume error %.3g%% of box\n", 100*(est.Volume-b.ReferenceBuoyancy().Volume)/b.Volume())
		return nil
	}
	return cmd
}
