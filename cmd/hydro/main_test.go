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
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/akhenakh/hydro/buoyancy"
)

func run(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"verify", "-n", "2000", "--seed", "3", "--workers", "2"}, []string{"2019 boxes, 0 failures"}},
		{[]string{"bench", "-n", "100"}, []string{"100 boxes: reference"}},
		{[]string{"eval"}, []string{"fast", "reference", "centroid", "force"}},
		{[]string{"eval", "--a", "1,0,1", "--b", "-1,0,1", "--center", "0,0,-0.5"}, []string{"| 11.5)"}},
		{[]string{"eval", "--center", "0, 0, 5"}, []string{"(dry)"}},
		{[]string{"sample", "--cells", "10"}, []string{"sampled", "volume error"}},
	}
	for _, test := range tests {
		out, err := run(test.args...)
		if err != nil {
			t.Errorf("hydro %v: %v", test.args, err)
			continue
		}
		for _, w := range test.want {
			if !strings.Contains(out, w) {
				t.Errorf("hydro %v output %q does not contain %q", test.args, out, w)
			}
		}
	}
}

func TestCommandErrors(t *testing.T) {
	tests := [][]string{
		{"bench", "-n", "0"},
		{"eval", "--a", "1,2"},
		{"eval", "--center", "0,x,0"},
		{"eval", "--density", "-1"},
		{"eval", "--gravity", "NaN"},
		{"sample", "--c", "0,0,0"},
		{"verify", "extra"},
	}
	for _, args := range tests {
		if _, err := run(args...); err == nil {
			t.Errorf("hydro %v succeeded, want an error", args)
		}
	}
}

func TestVerifyToleranceError(t *testing.T) {
	_, err := run("verify", "-n", "10", "--tolerance", "0")
	if !errors.Is(err, buoyancy.ErrToleranceExceeded) {
		t.Errorf("hydro verify --tolerance 0 = %v, want %v", err, buoyancy.ErrToleranceExceeded)
	}
}
