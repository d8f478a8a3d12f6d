/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package court resolves and scales the background image a frame is drawn
// on. Resolutions may run asynchronously; every resolution carries a
// generation number and only the newest generation may install its result,
// so a slow load can never overwrite a later one.
package court

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"

	"playboard/internal/board"
)

// Image is a background scaled to a concrete canvas size.
type Image struct {
	Background board.Background
	Img        image.Image
	W, H       int
}

// Loader produces the source image for a background kind.
type Loader func(bg board.Background) (image.Image, error)

// Resolver tracks the current background image and the newest resolution
// generation.
type Resolver struct {
	mu   sync.Mutex
	load Loader
	gen  uint64
	img  *Image
}

func NewResolver(load Loader) *Resolver {
	if load == nil {
		load = DefaultLoader
	}
	return &Resolver{load: load}
}

// Begin registers a new resolution and returns its generation. Every
// resolution begun earlier is stale from this point on.
func (r *Resolver) Begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	return r.gen
}

// Install scales src to w by h pixels and makes it the current image, unless
// a newer resolution has begun since gen was issued. Reports whether the
// result was installed.
func (r *Resolver) Install(gen uint64, bg board.Background, src image.Image, w, h int) bool {
	scaled := scaleTo(src, w, h)
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return false
	}
	r.img = &Image{Background: bg, Img: scaled, W: w, H: h}
	return true
}

// Resolve loads and installs a background synchronously. A concurrent
// Resolve that began later wins.
func (r *Resolver) Resolve(bg board.Background, w, h int) error {
	gen := r.Begin()
	src, err := r.load(bg)
	if err != nil {
		return fmt.Errorf("load background %q: %w", bg, err)
	}
	r.Install(gen, bg, src, w, h)
	return nil
}

// Current returns the installed background image, if any.
func (r *Resolver) Current() (Image, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.img == nil {
		return Image{}, false
	}
	return *r.img, true
}

func scaleTo(src image.Image, w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return src
	}
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Court colors for the generated fallback backgrounds.
var (
	floorColor = color.RGBA{R: 0xE8, G: 0xC8, B: 0x9C, A: 0xFF}
	lineColor  = color.RGBA{R: 0x5A, G: 0x3A, B: 0x1E, A: 0xFF}
)

// DefaultLoader synthesizes a court when no image assets are configured:
// floor fill, boundary, and for the full court a halfway line.
func DefaultLoader(bg board.Background) (image.Image, error) {
	const w, h = 800, 600
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, floorColor)
		}
	}
	drawBorder(img, 20, 4)
	if bg == board.BackgroundFullCourt {
		drawVLine(img, w/2, 20, h-20, 4)
	}
	return img, nil
}

func drawBorder(img *image.RGBA, inset, thick int) {
	b := img.Bounds()
	for t := 0; t < thick; t++ {
		for x := inset; x < b.Dx()-inset; x++ {
			img.SetRGBA(x, inset+t, lineColor)
			img.SetRGBA(x, b.Dy()-inset-1-t, lineColor)
		}
		for y := inset; y < b.Dy()-inset; y++ {
			img.SetRGBA(inset+t, y, lineColor)
			img.SetRGBA(b.Dx()-inset-1-t, y, lineColor)
		}
	}
}

func drawVLine(img *image.RGBA, x, y0, y1, thick int) {
	for t := -thick / 2; t < thick/2; t++ {
		for y := y0; y < y1; y++ {
			img.SetRGBA(x+t, y, lineColor)
		}
	}
}
