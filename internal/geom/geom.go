/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package geom converts between device pixel coordinates and
// resolution-independent ratio coordinates in [0,1]x[0,1], so a scene survives
// any canvas resize or orientation change. Float values use float32 for
// compactness and to align with many UI libs.
package geom

import "math"

// Pt is a 2D point. Whether it holds pixels or ratios depends on context;
// conversion happens only through ToRatio/ToPixels.
type Pt struct{ X, Y float32 }

// Size is a width/height pair in pixels.
type Size struct{ W, H float32 }

// Drag-end positions are clamped into this band so a marker's visual
// footprint is never cropped entirely off the drawable area.
const (
	ClampMin = 0.02
	ClampMax = 0.98
)

// ToRatio converts a pixel point to ratio coordinates relative to the canvas.
// Callers must guard w > 0 and h > 0.
func ToRatio(p Pt, w, h float32) Pt {
	return Pt{X: p.X / w, Y: p.Y / h}
}

// ToPixels converts a ratio point back to pixel coordinates on the canvas.
func ToPixels(p Pt, w, h float32) Pt {
	return Pt{X: p.X * w, Y: p.Y * h}
}

// ClampRatio confines a ratio point to the drag-end band.
func ClampRatio(p Pt) Pt {
	return Pt{X: clamp(p.X), Y: clamp(p.Y)}
}

func clamp(v float32) float32 {
	if v < ClampMin {
		return ClampMin
	}
	if v > ClampMax {
		return ClampMax
	}
	return v
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Pt) float32 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return float32(math.Hypot(dx, dy))
}
