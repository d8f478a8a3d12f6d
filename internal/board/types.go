/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package board holds the frame-based scene state model of the tactics board:
// markers, ink strokes and background selection organized into an ordered
// sequence of editable frames. All positions are ratio coordinates in
// [0,1]x[0,1] relative to the court's drawable rectangle.
package board

import (
	"time"

	"playboard/internal/geom"
)

// Category classifies a marker by capability rather than by concrete type:
// roster markers carry a name and photo, slot markers carry a number and a
// fixed parking position.
type Category string

const (
	CategoryRoster       Category = "roster"
	CategoryHomeSlot     Category = "home-slot"
	CategoryOpponentSlot Category = "opponent-slot"
)

// HasPhoto reports whether markers of this category render a player photo.
func (c Category) HasPhoto() bool { return c == CategoryRoster }

// Numbered reports whether markers of this category render a slot number and
// own a fixed parking position.
func (c Category) Numbered() bool {
	return c == CategoryHomeSlot || c == CategoryOpponentSlot
}

// Marker is a placeable entity on the court.
type Marker struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Pos         geom.Pt  `json:"pos"`
	DisplayName string   `json:"displayName,omitempty"`
	PhotoRef    string   `json:"photoRef,omitempty"`
	SlotNumber  int      `json:"slotNumber,omitempty"`
}

// InkColor is one entry of the fixed stroke palette.
type InkColor string

const (
	InkBlack  InkColor = "black"
	InkRed    InkColor = "red"
	InkBlue   InkColor = "blue"
	InkGreen  InkColor = "green"
	InkOrange InkColor = "orange"
)

// Palette lists the selectable stroke colors in display order.
var Palette = []InkColor{InkBlack, InkRed, InkBlue, InkGreen, InkOrange}

// InkPath is one continuous freehand gesture. Points only grow by append
// while the gesture is active; a path disappears only as a whole
// (undo-last or clear-all).
type InkPath struct {
	Color  InkColor  `json:"color"`
	Points []geom.Pt `json:"points"`
}

// Background selects the court image a frame is drawn on.
type Background string

const (
	BackgroundHalfCourt Background = "half-court"
	BackgroundFullCourt Background = "full-court"
)

// Frame is one editable scene state: a complete, independently renderable
// snapshot. Frames never reference each other.
type Frame struct {
	Background Background `json:"background"`
	Markers    []Marker   `json:"markers"`
	Paths      []InkPath  `json:"paths"`
}

// Clone returns a deep copy of the frame. Mutating the copy never alters the
// original's markers or paths.
func (f Frame) Clone() Frame {
	c := Frame{Background: f.Background}
	c.Markers = append([]Marker(nil), f.Markers...)
	if f.Paths != nil {
		c.Paths = make([]InkPath, len(f.Paths))
		for i, p := range f.Paths {
			c.Paths[i] = InkPath{Color: p.Color, Points: append([]geom.Pt(nil), p.Points...)}
		}
	}
	return c
}

// Play is the full tactical diagram: a non-empty ordered sequence of frames
// plus the current-frame cursor.
type Play struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Frames    []Frame   `json:"frames"`
	Current   int       `json:"current"`
}

// Clone returns a deep copy of the play.
func (p Play) Clone() Play {
	c := p
	c.Frames = make([]Frame, len(p.Frames))
	for i, f := range p.Frames {
		c.Frames[i] = f.Clone()
	}
	return c
}
