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
	"time"

	"github.com/google/uuid"

	"playboard/internal/geom"
)

// ErrLastFrame rejects deleting the only remaining frame of a play.
var ErrLastFrame = errors.New("a play must keep at least one frame")

// ErrNoPending is returned when Confirm or Cancel is called with no
// confirmation outstanding.
var ErrNoPending = errors.New("no pending confirmation")

// Config injects the store's clock and id generator so it is constructible
// and testable without any rendering environment.
type Config struct {
	Clock func() time.Time
	NewID func() string
}

// Action identifies a destructive operation awaiting user confirmation.
type Action int

const (
	ActionRemoveFrame Action = iota + 1
)

// Confirmation is the explicit pending-confirmation state replacing blocking
// dialogs: the UI presents it and resolves it via Confirm or Cancel.
type Confirmation struct {
	Action Action
	Index  int
}

// FramePatch is a partial change merged into the current frame. Nil fields
// are left untouched.
type FramePatch struct {
	Markers    *[]Marker
	Paths      *[]InkPath
	Background *Background
}

// Store owns a Play and is the single write path for all scene mutations.
// It is not safe for concurrent use: all mutation happens synchronously on
// the thread that receives input events, which is the only serialization
// this model needs.
type Store struct {
	play    Play
	cfg     Config
	drawing bool
	selID   string
	pending *Confirmation
}

// NewStore creates a store holding a fresh play with one default frame.
func NewStore(name string, cfg Config) *Store {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	s := &Store{cfg: cfg}
	s.play = Play{
		ID:        cfg.NewID(),
		Name:      name,
		CreatedAt: cfg.Clock(),
		Frames:    []Frame{DefaultFrame()},
	}
	return s
}

// Play returns a deep copy of the sequence, suitable for serialization.
func (s *Store) Play() Play { return s.play.Clone() }

// Load replaces the in-memory play and resets the cursor to the first frame.
func (s *Store) Load(p Play) error {
	if len(p.Frames) == 0 {
		return errors.New("play has no frames")
	}
	s.play = p.Clone()
	s.play.Current = 0
	s.drawing = false
	s.selID = ""
	s.pending = nil
	return nil
}

// Name returns the play's display name.
func (s *Store) Name() string { return s.play.Name }

// Rename sets the play's display name.
func (s *Store) Rename(name string) { s.play.Name = name }

// CurrentIndex returns the cursor position.
func (s *Store) CurrentIndex() int { return s.play.Current }

// FrameCount returns the number of frames in the sequence.
func (s *Store) FrameCount() int { return len(s.play.Frames) }

// Current returns the frame under the cursor. The returned frame must be
// treated as read-only; all mutation goes through store operations.
func (s *Store) Current() *Frame { return &s.play.Frames[s.play.Current] }

// UpdateCurrent merges a partial change into the frame at the cursor. Every
// mutation flow funnels through here, so the sequence can never drift out of
// sync with the visible scene.
func (s *Store) UpdateCurrent(p FramePatch) {
	f := &s.play.Frames[s.play.Current]
	if p.Markers != nil {
		f.Markers = *p.Markers
	}
	if p.Paths != nil {
		f.Paths = *p.Paths
	}
	if p.Background != nil {
		f.Background = *p.Background
	}
}

// Duplicate appends a copy of the current frame with the same marker layout
// and background but no ink (each frame's drawing is a fresh annotation),
// and moves the cursor onto it.
func (s *Store) Duplicate() {
	c := s.Current().Clone()
	c.Paths = nil
	s.play.Frames = append(s.play.Frames, c)
	s.play.Current = len(s.play.Frames) - 1
}

// Navigate moves the cursor to index and clears any marker selection.
// Out-of-range indices are ignored, not errors.
func (s *Store) Navigate(index int) {
	if index < 0 || index >= len(s.play.Frames) {
		return
	}
	s.play.Current = index
	s.selID = ""
}

// RequestRemove records a pending confirmation for deleting the frame at
// index. The mutation is applied only by Confirm.
func (s *Store) RequestRemove(index int) error {
	if index < 0 || index >= len(s.play.Frames) {
		return errors.New("frame index out of range")
	}
	if len(s.play.Frames) == 1 {
		return ErrLastFrame
	}
	s.pending = &Confirmation{Action: ActionRemoveFrame, Index: index}
	return nil
}

// Pending returns the outstanding confirmation, if any.
func (s *Store) Pending() *Confirmation { return s.pending }

// Confirm applies the pending destructive action.
func (s *Store) Confirm() error {
	if s.pending == nil {
		return ErrNoPending
	}
	c := *s.pending
	s.pending = nil
	switch c.Action {
	case ActionRemoveFrame:
		return s.remove(c.Index)
	}
	return nil
}

// Cancel drops the pending confirmation leaving state unchanged.
func (s *Store) Cancel() error {
	if s.pending == nil {
		return ErrNoPending
	}
	s.pending = nil
	return nil
}

// remove deletes the frame at index. The new cursor becomes
// min(previousIndex, newLength-1).
func (s *Store) remove(index int) error {
	if len(s.play.Frames) == 1 {
		return ErrLastFrame
	}
	if index < 0 || index >= len(s.play.Frames) {
		return errors.New("frame index out of range")
	}
	s.play.Frames = append(s.play.Frames[:index], s.play.Frames[index+1:]...)
	if s.play.Current > len(s.play.Frames)-1 {
		s.play.Current = len(s.play.Frames) - 1
	}
	return nil
}

// SetBackground switches the current frame's court image.
func (s *Store) SetBackground(b Background) {
	s.UpdateCurrent(FramePatch{Background: &b})
}

// Select records the marker the UI currently highlights.
func (s *Store) Select(id string) { s.selID = id }

// Selection returns the highlighted marker id, or "".
func (s *Store) Selection() string { return s.selID }

// AddRosterMarker puts a roster entry on the current frame and recenters the
// roster row. Adding an entry whose display name is already on the frame is
// a silent no-op.
func (s *Store) AddRosterMarker(entryID, displayName, photoRef string) {
	f := s.Current()
	if f.hasRosterName(displayName) {
		return
	}
	markers := append(append([]Marker(nil), f.Markers...),
		NewRosterMarker(entryID, displayName, photoRef, s.cfg.Clock()))
	markers = RelayoutRow(markers, CategoryRoster)
	s.UpdateCurrent(FramePatch{Markers: &markers})
}

// RemoveMarker takes a marker off the scene. Roster markers are removed
// outright and the roster row recenters; numbered markers are permanent
// scene furniture and are parked back on their rail slot instead.
func (s *Store) RemoveMarker(id string) {
	f := s.Current()
	i := f.markerIndex(id)
	if i < 0 {
		return
	}
	markers := append([]Marker(nil), f.Markers...)
	if m := markers[i]; m.Category.Numbered() {
		markers[i].Pos = SlotPos(m.Category, m.SlotNumber)
	} else {
		markers = append(markers[:i], markers[i+1:]...)
		markers = RelayoutRow(markers, CategoryRoster)
	}
	if s.selID == id {
		s.selID = ""
	}
	s.UpdateCurrent(FramePatch{Markers: &markers})
}

// MoveMarker updates a marker's position during a live drag.
func (s *Store) MoveMarker(id string, p geom.Pt) {
	s.setMarkerPos(id, p)
}

// DropMarker ends a drag, clamping the position so the marker stays on the
// drawable area.
func (s *Store) DropMarker(id string, p geom.Pt) {
	s.setMarkerPos(id, geom.ClampRatio(p))
}

func (s *Store) setMarkerPos(id string, p geom.Pt) {
	f := s.Current()
	i := f.markerIndex(id)
	if i < 0 {
		return
	}
	markers := append([]Marker(nil), f.Markers...)
	markers[i].Pos = p
	s.UpdateCurrent(FramePatch{Markers: &markers})
}
