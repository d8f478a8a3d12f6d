/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a play to shareable documents. One PDF page per
// frame, court outline plus markers plus ink, drawn as vectors.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"playboard/internal/board"
)

// PDFOptions controls PDF export. Units are points.
type PDFOptions struct {
	PageW, PageH float64 // landscape A4 when zero
	Margin       float64
	Frames       []int // if empty, export all frames
}

// Fixed palette mapped to RGB for drawing.
var inkRGB = map[board.InkColor][3]int{
	board.InkBlack:  {0, 0, 0},
	board.InkRed:    {220, 38, 38},
	board.InkBlue:   {37, 99, 235},
	board.InkGreen:  {22, 163, 74},
	board.InkOrange: {234, 120, 20},
}

const markerRadiusPt = 10.0

// WritePlayPDF renders the play to a multi-page PDF at outPath, one page
// per frame in frame order.
func WritePlayPDF(p board.Play, outPath string, opt PDFOptions) error {
	if len(p.Frames) == 0 {
		return fmt.Errorf("play %q has no frames", p.Name)
	}
	pageW, pageH := opt.PageW, opt.PageH
	if pageW <= 0 || pageH <= 0 {
		// A4 landscape in points.
		pageW, pageH = 842, 595
	}
	margin := opt.Margin
	if margin <= 0 {
		margin = 36
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageW, Ht: pageH},
		OrientationStr: "",
	})
	pdf.SetTitle(p.Name, false)
	pdf.SetAuthor("Playboard", false)
	pdf.SetFont("Helvetica", "", 12)

	// Board area: everything below the header line.
	bx := margin
	by := margin + 24
	bw := pageW - 2*margin
	bh := pageH - by - margin

	frames := frameIndexes(len(p.Frames), opt.Frames)
	for _, fi := range frames {
		if fi < 0 || fi >= len(p.Frames) {
			continue
		}
		f := p.Frames[fi]
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: pageW, Ht: pageH})

		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.Text(margin, margin+10, fmt.Sprintf("%s — frame %d/%d", p.Name, fi+1, len(p.Frames)))
		pdf.SetFont("Helvetica", "", 12)

		drawCourt(pdf, f.Background, bx, by, bw, bh)
		for _, path := range f.Paths {
			drawInkPath(pdf, path, bx, by, bw, bh)
		}
		for _, m := range f.Markers {
			drawMarker(pdf, m, bx, by, bw, bh)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func frameIndexes(total int, specific []int) []int {
	if len(specific) == 0 {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	return specific
}

// px maps a ratio coordinate into the board area.
func px(x float32, b0, bsize float64) float64 { return b0 + float64(x)*bsize }

func drawCourt(pdf *gofpdf.Fpdf, bg board.Background, bx, by, bw, bh float64) {
	pdf.SetDrawColor(90, 58, 30)
	pdf.SetFillColor(232, 200, 156)
	pdf.SetLineWidth(1.5)
	pdf.Rect(bx, by, bw, bh, "FD")
	if bg == board.BackgroundFullCourt {
		pdf.Line(bx+bw/2, by, bx+bw/2, by+bh)
	}
}

func drawInkPath(pdf *gofpdf.Fpdf, path board.InkPath, bx, by, bw, bh float64) {
	if len(path.Points) < 2 {
		return
	}
	rgb, ok := inkRGB[path.Color]
	if !ok {
		rgb = inkRGB[board.InkBlack]
	}
	pdf.SetDrawColor(rgb[0], rgb[1], rgb[2])
	pdf.SetLineWidth(2)
	prev := path.Points[0]
	for _, pt := range path.Points[1:] {
		pdf.Line(px(prev.X, bx, bw), px(prev.Y, by, bh), px(pt.X, bx, bw), px(pt.Y, by, bh))
		prev = pt
	}
}

func drawMarker(pdf *gofpdf.Fpdf, m board.Marker, bx, by, bw, bh float64) {
	cx := px(m.Pos.X, bx, bw)
	cy := px(m.Pos.Y, by, bh)

	switch m.Category {
	case board.CategoryOpponentSlot:
		pdf.SetFillColor(120, 120, 120)
	case board.CategoryHomeSlot:
		pdf.SetFillColor(37, 99, 235)
	default:
		pdf.SetFillColor(22, 163, 74)
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1)
	pdf.Circle(cx, cy, markerRadiusPt, "FD")

	label := markerLabel(m)
	if label == "" {
		return
	}
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8)
	w := pdf.GetStringWidth(label)
	pdf.Text(cx-w/2, cy+3, label)
	pdf.SetFont("Helvetica", "", 12)
}

func markerLabel(m board.Marker) string {
	if m.Category.Numbered() {
		return fmt.Sprintf("%d", m.SlotNumber)
	}
	if m.DisplayName == "" {
		return ""
	}
	runes := []rune(m.DisplayName)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}
