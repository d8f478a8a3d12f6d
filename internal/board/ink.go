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

// Freehand ink follows a per-gesture state machine: Idle -> Drawing -> Idle.
// Every transition commits straight into the current frame; there is no
// draft stroke that can be lost.

// Drawing reports whether a gesture is in progress.
func (s *Store) Drawing() bool { return s.drawing }

// BeginStroke starts a gesture at p: a new single-point path is appended to
// the current frame. Called when a pointer-down resolves to no marker.
func (s *Store) BeginStroke(color InkColor, p geom.Pt) {
	paths := append(append([]InkPath(nil), s.Current().Paths...),
		InkPath{Color: color, Points: []geom.Pt{p}})
	s.UpdateCurrent(FramePatch{Paths: &paths})
	s.drawing = true
}

// ExtendStroke appends one point to the active gesture's path. No-op when no
// gesture is in progress.
func (s *Store) ExtendStroke(p geom.Pt) {
	if !s.drawing {
		return
	}
	f := s.Current()
	if len(f.Paths) == 0 {
		return
	}
	paths := append([]InkPath(nil), f.Paths...)
	last := len(paths) - 1
	paths[last].Points = append(append([]geom.Pt(nil), paths[last].Points...), p)
	s.UpdateCurrent(FramePatch{Paths: &paths})
}

// EndStroke finishes the gesture on pointer-up or pointer-leave. The
// committed path remains.
func (s *Store) EndStroke() { s.drawing = false }

// UndoLastPath removes the most recently drawn path of the current frame.
// No-op on an empty path list.
func (s *Store) UndoLastPath() {
	f := s.Current()
	if len(f.Paths) == 0 {
		return
	}
	paths := append([]InkPath(nil), f.Paths[:len(f.Paths)-1]...)
	s.UpdateCurrent(FramePatch{Paths: &paths})
}

// ClearPaths wipes all ink from the current frame.
func (s *Store) ClearPaths() {
	paths := []InkPath{}
	s.UpdateCurrent(FramePatch{Paths: &paths})
}
