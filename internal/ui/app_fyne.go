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
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"playboard/internal/board"
	"playboard/internal/config"
	"playboard/internal/court"
	"playboard/internal/crash"
	"playboard/internal/export"
	applog "playboard/internal/log"
	"playboard/internal/roster"
	"playboard/internal/storage"
	"playboard/internal/telemetry"
	"playboard/internal/version"
)

// recoveryID is the reserved play ID the crash handler saves under.
const recoveryID = "recovery"

// emergencySaver snapshots the working play into the library when the
// process panics.
type emergencySaver struct {
	store *board.Store
	lib   *storage.Library
}

func (s *emergencySaver) EmergencySave() (string, error) {
	if s.store == nil || s.lib == nil {
		return "", fmt.Errorf("nothing to save")
	}
	p := s.store.Play()
	p.ID = recoveryID
	if p.Name == "" {
		p.Name = "Recovered play"
	}
	if err := s.lib.Save(p); err != nil {
		return "", err
	}
	return "kv:" + storage.Namespace + "/" + recoveryID, nil
}

// Run starts the Fyne-based board editor. playID, when non-empty, names a
// saved play to open immediately.
func Run(playID string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("version", version.String()))
	telemetry.InitDefault()

	cfg, dsn, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}

	kv, err := storage.OpenKV(filepath.Join(config.DataDir(), "plays.db"))
	if err != nil {
		return fmt.Errorf("open play database: %w", err)
	}
	defer kv.Close()
	lib := storage.NewLibrary(kv)

	var src roster.Source
	if dsn != "" {
		pg, err := roster.OpenPostgres(dsn, time.Duration(cfg.Roster.TimeoutMs)*time.Millisecond)
		if err != nil {
			l.Warn("roster db unavailable, using placeholder", slog.Any("err", err))
			src = roster.Placeholder()
		} else {
			defer pg.Close()
			src = pg
		}
	} else {
		src = roster.Placeholder()
	}

	store := board.NewStore("New play", board.Config{})
	saver := &emergencySaver{store: store, lib: lib}
	defer func() { crash.Recover(saver) }()

	if playID != "" {
		if p, ok, err := lib.Get(playID); err != nil {
			l.Warn("open play failed", slog.String("id", playID), slog.Any("err", err))
		} else if ok {
			if err := store.Load(p); err != nil {
				l.Warn("load play failed", slog.Any("err", err))
			}
		}
	}

	fyneApp := app.NewWithID("playboard")
	w := fyneApp.NewWindow("Playboard")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1100)
	winH := prefs.IntWithFallback("window.height", 760)
	if winW < 800 {
		winW = 800
	}
	if winH < 560 {
		winH = 560
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	resolver := court.NewResolver(nil)
	boardCanvas := NewBoardCanvas(store, resolver)
	status := widget.NewLabel("Ready")
	frameLabel := widget.NewLabel("")

	resolveBackground := func() {
		bg := store.Current().Background
		sz := boardCanvas.Size()
		wpx, hpx := int(sz.Width), int(sz.Height)
		if wpx <= 0 || hpx <= 0 {
			wpx, hpx = 900, 620
		}
		gen := resolver.Begin()
		go func() {
			img, err := court.DefaultLoader(bg)
			if err != nil {
				l.Warn("background load failed", slog.Any("err", err))
				return
			}
			if resolver.Install(gen, bg, img, wpx, hpx) {
				fyne.Do(boardCanvas.Refresh)
			}
		}()
	}

	refresh := func() {
		frameLabel.SetText(fmt.Sprintf("Frame %d/%d", store.CurrentIndex()+1, store.FrameCount()))
		boardCanvas.Refresh()
	}
	boardCanvas.OnChange = func() {
		frameLabel.SetText(fmt.Sprintf("Frame %d/%d", store.CurrentIndex()+1, store.FrameCount()))
	}

	// Frame strip.
	prevBtn := widget.NewButton("Prev", func() {
		store.Navigate(store.CurrentIndex() - 1)
		resolveBackground()
		refresh()
	})
	nextBtn := widget.NewButton("Next", func() {
		store.Navigate(store.CurrentIndex() + 1)
		resolveBackground()
		refresh()
	})
	dupBtn := widget.NewButton("Duplicate", func() {
		store.Duplicate()
		telemetry.Event("frame_duplicated", map[string]any{"frames": store.FrameCount()})
		refresh()
	})
	removeBtn := widget.NewButton("Remove", func() {
		idx := store.CurrentIndex()
		if err := store.RequestRemove(idx); err != nil {
			status.SetText(err.Error())
			return
		}
		dialog.ShowConfirm("Remove frame",
			fmt.Sprintf("Remove frame %d? This cannot be undone.", idx+1),
			func(yes bool) {
				if yes {
					_ = store.Confirm()
					resolveBackground()
				} else {
					_ = store.Cancel()
				}
				refresh()
			}, w)
	})

	// Background toggle.
	bgSelect := widget.NewSelect([]string{string(board.BackgroundHalfCourt), string(board.BackgroundFullCourt)}, func(s string) {
		store.SetBackground(board.Background(s))
		resolveBackground()
		refresh()
	})
	bgSelect.SetSelected(string(store.Current().Background))

	// Ink controls.
	colorNames := make([]string, 0, len(board.Palette))
	for _, c := range board.Palette {
		colorNames = append(colorNames, string(c))
	}
	colorSelect := widget.NewSelect(colorNames, func(s string) {
		boardCanvas.Color = board.InkColor(s)
	})
	colorSelect.SetSelected(string(board.InkBlack))
	undoInkBtn := widget.NewButton("Undo stroke", func() {
		store.UndoLastPath()
		refresh()
	})
	clearInkBtn := widget.NewButton("Clear ink", func() {
		store.ClearPaths()
		refresh()
	})
	removeMarkerBtn := widget.NewButton("Remove marker", func() {
		id := store.Selection()
		if id == "" {
			status.SetText("No marker selected")
			return
		}
		store.RemoveMarker(id)
		refresh()
	})

	// Roster row.
	rosterBox := container.NewHBox()
	loadRoster := func() {
		entries, err := src.Entries(context.Background())
		if err != nil {
			l.Warn("roster load failed", slog.Any("err", err))
			status.SetText("Roster unavailable")
			return
		}
		rosterBox.RemoveAll()
		for _, e := range entries {
			entry := e
			rosterBox.Add(widget.NewButton(entry.DisplayName, func() {
				store.AddRosterMarker(entry.ID, entry.DisplayName, entry.PhotoRef)
				refresh()
			}))
		}
		rosterBox.Refresh()
	}
	loadRoster()

	// Play name and persistence.
	nameEntry := widget.NewEntry()
	nameEntry.SetText(store.Name())
	nameEntry.OnChanged = func(s string) { store.Rename(s) }

	saveBtn := widget.NewButton("Save", func() {
		if err := lib.Save(store.Play()); err != nil {
			dialog.ShowError(err, w)
			return
		}
		telemetry.Event("play_saved", map[string]any{"frames": store.FrameCount()})
		status.SetText("Saved " + store.Name())
	})
	openBtn := widget.NewButton("Open...", func() {
		plays, err := lib.List()
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if len(plays) == 0 {
			status.SetText("No saved plays")
			return
		}
		names := make([]string, len(plays))
		for i, p := range plays {
			names[i] = fmt.Sprintf("%s (%s)", p.Name, p.CreatedAt.Format("2006-01-02 15:04"))
		}
		sel := widget.NewSelect(names, nil)
		sel.SetSelectedIndex(0)
		dialog.ShowCustomConfirm("Open play", "Open", "Cancel", sel, func(yes bool) {
			if !yes || sel.SelectedIndex() < 0 {
				return
			}
			if err := store.Load(plays[sel.SelectedIndex()]); err != nil {
				dialog.ShowError(err, w)
				return
			}
			nameEntry.SetText(store.Name())
			bgSelect.SetSelected(string(store.Current().Background))
			resolveBackground()
			refresh()
		}, w)
	})
	exportBtn := widget.NewButton("Export PDF...", func() {
		out := filepath.Join(config.DataDir(), "exports", store.Name()+".pdf")
		if err := export.WritePlayPDF(store.Play(), out, export.PDFOptions{}); err != nil {
			dialog.ShowError(err, w)
			return
		}
		status.SetText("Exported to " + out)
	})

	toolbar := container.NewHBox(
		widget.NewLabel("Play:"), nameEntry, saveBtn, openBtn, exportBtn,
		widget.NewSeparator(),
		widget.NewLabel("Court:"), bgSelect,
	)
	inkBar := container.NewHBox(
		widget.NewLabel("Ink:"), colorSelect, undoInkBtn, clearInkBtn,
		widget.NewSeparator(), removeMarkerBtn,
	)
	frameBar := container.NewHBox(prevBtn, frameLabel, nextBtn, widget.NewSeparator(), dupBtn, removeBtn)
	top := container.NewVBox(toolbar, inkBar, frameBar, rosterBox)
	bottom := container.NewHBox(status)

	w.SetContent(container.NewBorder(top, bottom, nil, nil, boardCanvas))
	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		telemetry.Event("ui_closed", nil)
	})

	resolveBackground()
	refresh()
	w.ShowAndRun()
	return nil
}
