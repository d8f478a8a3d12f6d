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
	"errors"
	"fmt"
	"testing"
	"time"

	"playboard/internal/geom"
)

// testStore builds a store with a deterministic clock and id generator.
func testStore(t *testing.T) *Store {
	t.Helper()
	tick := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	n := 0
	return NewStore("test play", Config{
		Clock: func() time.Time {
			tick = tick.Add(time.Second)
			return tick
		},
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
}

func TestNewStoreDefaults(t *testing.T) {
	s := testStore(t)
	if s.FrameCount() != 1 {
		t.Fatalf("new play has %d frames, want 1", s.FrameCount())
	}
	if s.CurrentIndex() != 0 {
		t.Fatalf("cursor = %d, want 0", s.CurrentIndex())
	}
	f := s.Current()
	if len(f.Markers) != 2*SlotsPerSide {
		t.Fatalf("default frame has %d markers, want %d", len(f.Markers), 2*SlotsPerSide)
	}
	for _, m := range f.Markers {
		if !m.Category.Numbered() {
			t.Fatalf("default frame contains non-slot marker %q", m.ID)
		}
		if m.Pos != SlotPos(m.Category, m.SlotNumber) {
			t.Fatalf("marker %q not parked: %v", m.ID, m.Pos)
		}
	}
	if f.Background != BackgroundHalfCourt {
		t.Fatalf("default background = %q", f.Background)
	}
}

func TestDuplicateGrowsByOneAndCopiesByValue(t *testing.T) {
	s := testStore(t)
	s.AddRosterMarker("p1", "Ana Silva", "")
	s.BeginStroke(InkRed, geom.Pt{X: 0.1, Y: 0.1})
	s.ExtendStroke(geom.Pt{X: 0.2, Y: 0.2})
	s.EndStroke()
	s.BeginStroke(InkBlue, geom.Pt{X: 0.3, Y: 0.3})
	s.EndStroke()

	orig := s.Current().Clone()

	for i := 0; i < 3; i++ {
		before := s.FrameCount()
		s.Duplicate()
		if s.FrameCount() != before+1 {
			t.Fatalf("duplicate %d: frame count %d, want %d", i, s.FrameCount(), before+1)
		}
		if s.CurrentIndex() != s.FrameCount()-1 {
			t.Fatalf("duplicate %d: cursor %d, want last", i, s.CurrentIndex())
		}
		if len(s.Current().Paths) != 0 {
			t.Fatalf("duplicate %d: ink carried forward", i)
		}
	}

	// Marker layout is preserved by value: moving a marker in the copy must
	// not alter the original frame.
	cur := s.Current()
	if len(cur.Markers) != len(orig.Markers) {
		t.Fatalf("marker count %d, want %d", len(cur.Markers), len(orig.Markers))
	}
	for i, m := range cur.Markers {
		if m.Pos != orig.Markers[i].Pos {
			t.Fatalf("marker %d position %v, want %v", i, m.Pos, orig.Markers[i].Pos)
		}
	}
	moved := cur.Markers[0].ID
	s.DropMarker(moved, geom.Pt{X: 0.7, Y: 0.7})
	first := s.play.Frames[0]
	if first.Markers[0].Pos != orig.Markers[0].Pos {
		t.Fatalf("mutating the duplicate changed the original frame")
	}
	if s.Current().Background != orig.Background {
		t.Fatalf("background not carried to duplicate")
	}
}

func TestNavigateBoundsAndSelectionClear(t *testing.T) {
	s := testStore(t)
	s.Duplicate()
	s.Duplicate() // 3 frames, cursor 2
	s.Select("home-1")

	s.Navigate(99)
	if s.CurrentIndex() != 2 {
		t.Fatalf("out-of-range navigate moved cursor to %d", s.CurrentIndex())
	}
	if s.Selection() != "home-1" {
		t.Fatalf("ignored navigate cleared selection")
	}

	s.Navigate(-1)
	if s.CurrentIndex() != 2 {
		t.Fatalf("negative navigate moved cursor")
	}

	s.Navigate(0)
	if s.CurrentIndex() != 0 {
		t.Fatalf("navigate(0) cursor = %d", s.CurrentIndex())
	}
	if s.Selection() != "" {
		t.Fatalf("navigate did not clear selection")
	}
}

func TestRemoveLastFrameRejected(t *testing.T) {
	s := testStore(t)
	if err := s.RequestRemove(0); !errors.Is(err, ErrLastFrame) {
		t.Fatalf("RequestRemove on 1-frame play: err = %v, want ErrLastFrame", err)
	}
	if s.FrameCount() != 1 {
		t.Fatalf("frame count changed to %d", s.FrameCount())
	}
	if s.Pending() != nil {
		t.Fatalf("rejected request left a pending confirmation")
	}
}

func TestRemoveThroughConfirmation(t *testing.T) {
	s := testStore(t)
	s.Duplicate()
	s.Duplicate() // 3 frames, cursor 2

	if err := s.RequestRemove(1); err != nil {
		t.Fatalf("RequestRemove: %v", err)
	}
	if s.FrameCount() != 3 {
		t.Fatalf("frame removed before confirmation")
	}

	// Declining leaves state unchanged.
	if err := s.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if s.FrameCount() != 3 || s.Pending() != nil {
		t.Fatalf("cancel did not restore idle state")
	}

	if err := s.RequestRemove(1); err != nil {
		t.Fatalf("RequestRemove: %v", err)
	}
	if err := s.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if s.FrameCount() != 2 {
		t.Fatalf("frame count = %d after confirmed remove, want 2", s.FrameCount())
	}
	// cursor = min(previousIndex, newLength-1)
	if s.CurrentIndex() != 1 {
		t.Fatalf("cursor = %d after remove, want 1", s.CurrentIndex())
	}

	if err := s.Confirm(); !errors.Is(err, ErrNoPending) {
		t.Fatalf("Confirm with nothing pending: err = %v", err)
	}
	if err := s.Cancel(); !errors.Is(err, ErrNoPending) {
		t.Fatalf("Cancel with nothing pending: err = %v", err)
	}
}

func TestLoadReplacesPlayAndResetsCursor(t *testing.T) {
	s := testStore(t)
	s.Duplicate()

	other := s.Play()
	other.Name = "loaded"
	other.Current = 1

	dst := testStore(t)
	if err := dst.Load(other); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if dst.Name() != "loaded" || dst.FrameCount() != 2 {
		t.Fatalf("load did not replace play: %q %d", dst.Name(), dst.FrameCount())
	}
	if dst.CurrentIndex() != 0 {
		t.Fatalf("load did not reset cursor: %d", dst.CurrentIndex())
	}

	if err := dst.Load(Play{Name: "empty"}); err == nil {
		t.Fatalf("loading a play without frames must fail")
	}
}

func TestUpdateCurrentMergesPatch(t *testing.T) {
	s := testStore(t)
	bg := BackgroundFullCourt
	s.UpdateCurrent(FramePatch{Background: &bg})
	if s.Current().Background != BackgroundFullCourt {
		t.Fatalf("background patch not applied")
	}
	// untouched fields stay
	if len(s.Current().Markers) != 2*SlotsPerSide {
		t.Fatalf("patch clobbered markers")
	}
}

func TestPlayReturnsDeepCopy(t *testing.T) {
	s := testStore(t)
	s.BeginStroke(InkBlack, geom.Pt{X: 0.4, Y: 0.4})
	s.EndStroke()
	p := s.Play()
	p.Frames[0].Markers[0].Pos = geom.Pt{X: 0.9, Y: 0.9}
	p.Frames[0].Paths[0].Points[0] = geom.Pt{X: 0.9, Y: 0.9}
	if s.Current().Markers[0].Pos == (geom.Pt{X: 0.9, Y: 0.9}) {
		t.Fatalf("Play() shares marker storage with the store")
	}
	if s.Current().Paths[0].Points[0] == (geom.Pt{X: 0.9, Y: 0.9}) {
		t.Fatalf("Play() shares path storage with the store")
	}
}
