/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package geom

import (
	"math"
	"testing"
)

func TestRatioPixelRoundTrip(t *testing.T) {
	canvases := []Size{{800, 600}, {1920, 1080}, {333, 777}}
	points := []Pt{{0, 0}, {400, 300}, {799, 599}, {12.5, 98.25}}
	for _, c := range canvases {
		for _, p := range points {
			got := ToPixels(ToRatio(p, c.W, c.H), c.W, c.H)
			if math.Abs(float64(got.X-p.X)) > 1e-3 || math.Abs(float64(got.Y-p.Y)) > 1e-3 {
				t.Fatalf("round trip %v on %vx%v: got %v", p, c.W, c.H, got)
			}
		}
	}
}

func TestClampRatioKeepsMarkersOnBoard(t *testing.T) {
	cases := []struct {
		in   Pt
		want Pt
	}{
		{Pt{-0.5, 0.5}, Pt{ClampMin, 0.5}},
		{Pt{0.5, 1.2}, Pt{0.5, ClampMax}},
		{Pt{0.001, 0.999}, Pt{ClampMin, ClampMax}},
		{Pt{0.5, 0.5}, Pt{0.5, 0.5}},
	}
	for _, c := range cases {
		if got := ClampRatio(c.in); got != c.want {
			t.Fatalf("ClampRatio(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDist(t *testing.T) {
	if d := Dist(Pt{0, 0}, Pt{3, 4}); math.Abs(float64(d-5)) > 1e-6 {
		t.Fatalf("Dist = %v, want 5", d)
	}
	if d := Dist(Pt{1, 1}, Pt{1, 1}); d != 0 {
		t.Fatalf("Dist of identical points = %v, want 0", d)
	}
}
