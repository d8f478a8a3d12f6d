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
	"math"
	"testing"

	"playboard/internal/geom"
)

func rosterMarkers(f *Frame) []Marker {
	var out []Marker
	for _, m := range f.Markers {
		if m.Category == CategoryRoster {
			out = append(out, m)
		}
	}
	return out
}

// Scenario from the model: start with the default play (10 parked slot
// markers), add "Ana Silva", add her again, and check counts and layout.
func TestAddRosterEntryTwiceYieldsOneMarker(t *testing.T) {
	s := testStore(t)
	if n := len(s.Current().Markers); n != 10 {
		t.Fatalf("default marker count = %d, want 10", n)
	}

	s.AddRosterMarker("ana", "Ana Silva", "photos/ana.jpg")
	if n := len(s.Current().Markers); n != 11 {
		t.Fatalf("marker count after add = %d, want 11", n)
	}
	rm := rosterMarkers(s.Current())
	if len(rm) != 1 || rm[0].DisplayName != "Ana Silva" {
		t.Fatalf("unexpected roster markers: %+v", rm)
	}
	// single roster marker sits centered on the top row
	if math.Abs(float64(rm[0].Pos.X-0.5)) > 1e-6 {
		t.Fatalf("roster marker not centered: %v", rm[0].Pos)
	}

	s.AddRosterMarker("ana", "Ana Silva", "photos/ana.jpg")
	if n := len(s.Current().Markers); n != 11 {
		t.Fatalf("duplicate add changed marker count to %d", n)
	}
}

func TestRosterIDsStayUniqueAcrossReAdd(t *testing.T) {
	s := testStore(t)
	s.AddRosterMarker("ana", "Ana Silva", "")
	first := rosterMarkers(s.Current())[0].ID
	s.RemoveMarker(first)
	s.AddRosterMarker("ana", "Ana Silva", "")
	second := rosterMarkers(s.Current())[0].ID
	if first == second {
		t.Fatalf("re-added roster marker reused id %q", first)
	}
}

func TestRelayoutRecentersRow(t *testing.T) {
	s := testStore(t)
	s.AddRosterMarker("a", "Ana", "")
	s.AddRosterMarker("b", "Bea", "")
	s.AddRosterMarker("c", "Cris", "")
	rm := rosterMarkers(s.Current())
	if len(rm) != 3 {
		t.Fatalf("roster count = %d", len(rm))
	}
	// evenly spaced, centered: mean x == 0.5, constant spacing
	mean := (rm[0].Pos.X + rm[1].Pos.X + rm[2].Pos.X) / 3
	if math.Abs(float64(mean-0.5)) > 1e-5 {
		t.Fatalf("row not centered, mean x = %v", mean)
	}
	d1 := rm[1].Pos.X - rm[0].Pos.X
	d2 := rm[2].Pos.X - rm[1].Pos.X
	if math.Abs(float64(d1-d2)) > 1e-5 {
		t.Fatalf("uneven spacing: %v vs %v", d1, d2)
	}

	// removing the middle one closes the gap and recenters
	s.RemoveMarker(rm[1].ID)
	rm = rosterMarkers(s.Current())
	if len(rm) != 2 {
		t.Fatalf("roster count after remove = %d", len(rm))
	}
	mean = (rm[0].Pos.X + rm[1].Pos.X) / 2
	if math.Abs(float64(mean-0.5)) > 1e-5 {
		t.Fatalf("row not recentered after remove, mean x = %v", mean)
	}
}

func TestRemoveNumberedMarkerParksIt(t *testing.T) {
	s := testStore(t)
	s.DropMarker("opp-3", geom.Pt{X: 0.4, Y: 0.5})
	if got := s.Current().Markers[s.Current().markerIndex("opp-3")].Pos; got != (geom.Pt{X: 0.4, Y: 0.5}) {
		t.Fatalf("drag did not move marker: %v", got)
	}

	before := len(s.Current().Markers)
	s.RemoveMarker("opp-3")
	if len(s.Current().Markers) != before {
		t.Fatalf("numbered marker was deleted instead of parked")
	}
	got := s.Current().Markers[s.Current().markerIndex("opp-3")].Pos
	if got != SlotPos(CategoryOpponentSlot, 3) {
		t.Fatalf("marker parked at %v, want %v", got, SlotPos(CategoryOpponentSlot, 3))
	}
}

func TestDropMarkerClampsToBoard(t *testing.T) {
	s := testStore(t)
	s.DropMarker("home-1", geom.Pt{X: -0.2, Y: 1.4})
	got := s.Current().Markers[s.Current().markerIndex("home-1")].Pos
	if got != (geom.Pt{X: geom.ClampMin, Y: geom.ClampMax}) {
		t.Fatalf("drop not clamped: %v", got)
	}
}

func TestCategoryCapabilities(t *testing.T) {
	if !CategoryRoster.HasPhoto() || CategoryRoster.Numbered() {
		t.Fatalf("roster capabilities wrong")
	}
	if CategoryHomeSlot.HasPhoto() || !CategoryHomeSlot.Numbered() {
		t.Fatalf("home slot capabilities wrong")
	}
	if CategoryOpponentSlot.HasPhoto() || !CategoryOpponentSlot.Numbered() {
		t.Fatalf("opponent slot capabilities wrong")
	}
}
