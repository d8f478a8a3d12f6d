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

import (
	"fmt"
	"time"

	"playboard/internal/geom"
)

// Slot rails: numbered markers rest on two vertical rails just inside the
// board margins. Roster markers relayout along a horizontal row near the top.
const (
	SlotsPerSide = 5

	homeRailX     = float32(0.05)
	opponentRailX = float32(0.95)
	railTopY      = float32(0.15)
	railStepY     = float32(0.175)

	rosterRowY       = float32(0.08)
	rosterRowSpacing = float32(0.08)
)

// SlotPos returns the fixed parking position for a numbered marker.
// slot is 1-based.
func SlotPos(c Category, slot int) geom.Pt {
	x := homeRailX
	if c == CategoryOpponentSlot {
		x = opponentRailX
	}
	return geom.Pt{X: x, Y: railTopY + railStepY*float32(slot-1)}
}

// DefaultFrame builds the initial scene: all numbered markers parked on their
// rails, no roster markers, no ink.
func DefaultFrame() Frame {
	f := Frame{Background: BackgroundHalfCourt}
	for slot := 1; slot <= SlotsPerSide; slot++ {
		f.Markers = append(f.Markers, Marker{
			ID:         fmt.Sprintf("home-%d", slot),
			Category:   CategoryHomeSlot,
			SlotNumber: slot,
			Pos:        SlotPos(CategoryHomeSlot, slot),
		})
	}
	for slot := 1; slot <= SlotsPerSide; slot++ {
		f.Markers = append(f.Markers, Marker{
			ID:         fmt.Sprintf("opp-%d", slot),
			Category:   CategoryOpponentSlot,
			SlotNumber: slot,
			Pos:        SlotPos(CategoryOpponentSlot, slot),
		})
	}
	return f
}

// NewRosterMarker builds a marker for a roster entry. The id combines the
// entry id with the creation time, so the same player can be added, removed
// and re-added without id collisions.
func NewRosterMarker(entryID, displayName, photoRef string, now time.Time) Marker {
	return Marker{
		ID:          fmt.Sprintf("%s-%d", entryID, now.UnixNano()),
		Category:    CategoryRoster,
		DisplayName: displayName,
		PhotoRef:    photoRef,
		Pos:         geom.Pt{X: 0.5, Y: rosterRowY},
	}
}

// RelayoutRow recomputes evenly spaced positions for all markers of the given
// category along the fixed roster row, centered horizontally, preserving
// marker order. Markers of other categories are returned unchanged.
func RelayoutRow(markers []Marker, c Category) []Marker {
	n := 0
	for _, m := range markers {
		if m.Category == c {
			n++
		}
	}
	if n == 0 {
		return markers
	}
	startX := 0.5 - rosterRowSpacing*float32(n-1)/2
	i := 0
	for idx, m := range markers {
		if m.Category != c {
			continue
		}
		markers[idx].Pos = geom.Pt{X: startX + rosterRowSpacing*float32(i), Y: rosterRowY}
		i++
	}
	return markers
}

// hasRosterName reports whether a roster marker with the display name is
// already on the frame. This is the duplicate-prevention guard.
func (f Frame) hasRosterName(name string) bool {
	for _, m := range f.Markers {
		if m.Category == CategoryRoster && m.DisplayName == name {
			return true
		}
	}
	return false
}

// markerIndex returns the position of the marker with the id, or -1.
func (f Frame) markerIndex(id string) int {
	for i, m := range f.Markers {
		if m.ID == id {
			return i
		}
	}
	return -1
}
