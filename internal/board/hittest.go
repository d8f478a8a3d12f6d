/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package board

import "playboard/internal/geom"

// HitTest resolves a pointer position to a marker id, deciding between
// "move a marker" and "begin a stroke" on pointer-down. It returns the first
// marker within radius pixels in marker order: ties go to the earlier-added
// marker, not the truly nearest one. That keeps resolution deterministic and
// cheap for the handful of markers a frame carries.
func HitTest(pointer geom.Pt, markers []Marker, w, h, radius float32) (string, bool) {
	for _, m := range markers {
		if geom.Dist(pointer, geom.ToPixels(m.Pos, w, h)) <= radius {
			return m.ID, true
		}
	}
	return "", false
}
