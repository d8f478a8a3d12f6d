/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"playboard/internal/board"
	"playboard/internal/geom"
)

func twoFramePlay() board.Play {
	f0 := board.DefaultFrame()
	f0.Paths = []board.InkPath{{
		Color:  board.InkBlue,
		Points: []geom.Pt{{X: 0.2, Y: 0.5}, {X: 0.4, Y: 0.4}, {X: 0.6, Y: 0.5}},
	}}
	f1 := f0.Clone()
	f1.Background = board.BackgroundFullCourt
	return board.Play{
		ID:        "exp-1",
		Name:      "Pick and roll",
		CreatedAt: time.Now(),
		Frames:    []board.Frame{f0, f1},
	}
}

func TestWritePlayPDFProducesOnePagePerFrame(t *testing.T) {
	out := filepath.Join(t.TempDir(), "play.pdf")
	if err := WritePlayPDF(twoFramePlay(), out, PDFOptions{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
	if !bytes.Contains(data, []byte("/Count 2")) {
		t.Fatal("page tree does not list 2 pages")
	}
}

func TestWritePlayPDFSelectedFrames(t *testing.T) {
	out := filepath.Join(t.TempDir(), "single.pdf")
	err := WritePlayPDF(twoFramePlay(), out, PDFOptions{Frames: []int{1, 99}})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Contains(data, []byte("/Count 1")) {
		t.Fatal("page tree does not list exactly 1 page")
	}
}

func TestWritePlayPDFRejectsEmptyPlay(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.pdf")
	if err := WritePlayPDF(board.Play{Name: "empty"}, out, PDFOptions{}); err == nil {
		t.Fatal("exporting a frameless play succeeded")
	}
}
