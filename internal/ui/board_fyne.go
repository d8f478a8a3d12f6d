//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"playboard/internal/board"
	"playboard/internal/court"
	"playboard/internal/geom"
)

// hitRadiusPx is the pointer slop around a marker center.
const hitRadiusPx = 24

const markerRadiusPx = 16

var inkColors = map[board.InkColor]color.Color{
	board.InkBlack:  color.RGBA{A: 0xFF},
	board.InkRed:    color.RGBA{R: 0xDC, G: 0x26, B: 0x26, A: 0xFF},
	board.InkBlue:   color.RGBA{R: 0x25, G: 0x63, B: 0xEB, A: 0xFF},
	board.InkGreen:  color.RGBA{R: 0x16, G: 0xA3, B: 0x4A, A: 0xFF},
	board.InkOrange: color.RGBA{R: 0xEA, G: 0x78, B: 0x14, A: 0xFF},
}

func inkColorOf(c board.InkColor) color.Color {
	if col, ok := inkColors[c]; ok {
		return col
	}
	return inkColors[board.InkBlack]
}

// dragMode tracks what the active pointer gesture is doing.
type dragMode int

const (
	dragNone dragMode = iota
	dragMarker
	dragInk
)

// BoardCanvas draws the current frame and translates pointer gestures into
// store operations: drag on a marker moves it, drag on empty court draws ink,
// tap selects or clears the selection.
type BoardCanvas struct {
	widget.BaseWidget

	store    *board.Store
	resolver *court.Resolver

	// Active ink color for new strokes.
	Color board.InkColor

	mode   dragMode
	dragID string

	// OnChange fires after any gesture that altered the scene.
	OnChange func()
}

func NewBoardCanvas(store *board.Store, resolver *court.Resolver) *BoardCanvas {
	bc := &BoardCanvas{store: store, resolver: resolver, Color: board.InkBlack}
	bc.ExtendBaseWidget(bc)
	return bc
}

func (b *BoardCanvas) changed() {
	if b.OnChange != nil {
		b.OnChange()
	}
	b.Refresh()
}

func (b *BoardCanvas) toRatio(pos fyne.Position) geom.Pt {
	sz := b.Size()
	if sz.Width <= 0 || sz.Height <= 0 {
		return geom.Pt{}
	}
	return geom.ToRatio(geom.Pt{X: pos.X, Y: pos.Y}, sz.Width, sz.Height)
}

// Tapped selects the marker under the pointer, or clears the selection.
func (b *BoardCanvas) Tapped(e *fyne.PointEvent) {
	sz := b.Size()
	id, ok := board.HitTest(geom.Pt{X: e.Position.X, Y: e.Position.Y},
		b.store.Current().Markers, sz.Width, sz.Height, hitRadiusPx)
	if ok {
		b.store.Select(id)
	} else {
		b.store.Select("")
	}
	b.changed()
}

func (b *BoardCanvas) Dragged(e *fyne.DragEvent) {
	if b.mode == dragNone {
		sz := b.Size()
		start := fyne.NewPos(e.Position.X-e.Dragged.DX, e.Position.Y-e.Dragged.DY)
		id, ok := board.HitTest(geom.Pt{X: start.X, Y: start.Y},
			b.store.Current().Markers, sz.Width, sz.Height, hitRadiusPx)
		if ok {
			b.mode = dragMarker
			b.dragID = id
			b.store.Select(id)
		} else {
			b.mode = dragInk
			b.store.BeginStroke(b.Color, b.toRatio(start))
		}
	}

	switch b.mode {
	case dragMarker:
		b.store.MoveMarker(b.dragID, b.toRatio(e.Position))
	case dragInk:
		b.store.ExtendStroke(b.toRatio(e.Position))
	}
	b.changed()
}

func (b *BoardCanvas) DragEnd() {
	switch b.mode {
	case dragMarker:
		cur := b.store.Current()
		for _, m := range cur.Markers {
			if m.ID == b.dragID {
				b.store.DropMarker(b.dragID, m.Pos)
				break
			}
		}
	case dragInk:
		b.store.EndStroke()
	}
	b.mode = dragNone
	b.dragID = ""
	b.changed()
}

func (b *BoardCanvas) PreferredSize() fyne.Size { return fyne.NewSize(900, 620) }

func (b *BoardCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.RGBA{R: 0xE8, G: 0xC8, B: 0x9C, A: 0xFF})
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillStretch
	return &boardRenderer{bc: b, bg: bg, img: img}
}

// boardRenderer rebuilds its object list on every refresh; the scene is
// small enough that this stays cheap.
type boardRenderer struct {
	bc      *BoardCanvas
	bg      *canvas.Rectangle
	img     *canvas.Image
	objects []fyne.CanvasObject
}

func (r *boardRenderer) Destroy()                     {}
func (r *boardRenderer) MinSize() fyne.Size           { return fyne.NewSize(400, 300) }
func (r *boardRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *boardRenderer) Refresh() {
	r.Layout(r.bc.Size())
	canvas.Refresh(r.bc)
}

func (r *boardRenderer) Layout(size fyne.Size) {
	w, h := size.Width, size.Height

	objs := make([]fyne.CanvasObject, 0, 64)

	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	objs = append(objs, r.bg)

	frame := r.bc.store.Current()

	if ci, ok := r.bc.resolver.Current(); ok && ci.Background == frame.Background {
		r.img.Image = ci.Img
		r.img.Resize(size)
		r.img.Move(fyne.NewPos(0, 0))
		objs = append(objs, r.img)
	}

	for _, path := range frame.Paths {
		col := inkColorOf(path.Color)
		for i := 1; i < len(path.Points); i++ {
			a := geom.ToPixels(path.Points[i-1], w, h)
			bpt := geom.ToPixels(path.Points[i], w, h)
			ln := canvas.NewLine(col)
			ln.StrokeWidth = 3
			ln.Position1 = fyne.NewPos(a.X, a.Y)
			ln.Position2 = fyne.NewPos(bpt.X, bpt.Y)
			objs = append(objs, ln)
		}
	}

	selected := r.bc.store.Selection()
	for _, m := range frame.Markers {
		objs = append(objs, markerObjects(m, m.ID == selected, w, h)...)
	}

	r.objects = objs
}

func markerObjects(m board.Marker, selected bool, w, h float32) []fyne.CanvasObject {
	c := geom.ToPixels(m.Pos, w, h)
	var fill color.Color
	switch m.Category {
	case board.CategoryHomeSlot:
		fill = color.RGBA{R: 0x25, G: 0x63, B: 0xEB, A: 0xFF}
	case board.CategoryOpponentSlot:
		fill = color.RGBA{R: 0x78, G: 0x78, B: 0x78, A: 0xFF}
	default:
		fill = color.RGBA{R: 0x16, G: 0xA3, B: 0x4A, A: 0xFF}
	}

	circle := canvas.NewCircle(fill)
	circle.StrokeColor = color.RGBA{A: 0xFF}
	circle.StrokeWidth = 1
	if selected {
		circle.StrokeColor = color.RGBA{R: 0xFF, G: 0xAA, A: 0xFF}
		circle.StrokeWidth = 3
	}
	circle.Resize(fyne.NewSize(2*markerRadiusPx, 2*markerRadiusPx))
	circle.Move(fyne.NewPos(c.X-markerRadiusPx, c.Y-markerRadiusPx))

	label := markerCaption(m)
	if label == "" {
		return []fyne.CanvasObject{circle}
	}
	txt := canvas.NewText(label, color.White)
	txt.TextSize = 11
	txt.TextStyle = fyne.TextStyle{Bold: true}
	txt.Alignment = fyne.TextAlignCenter
	txt.Resize(fyne.NewSize(2*markerRadiusPx, 14))
	txt.Move(fyne.NewPos(c.X-markerRadiusPx, c.Y-7))
	return []fyne.CanvasObject{circle, txt}
}

func markerCaption(m board.Marker) string {
	if m.Category.Numbered() {
		return strconv.Itoa(m.SlotNumber)
	}
	runes := []rune(m.DisplayName)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}
