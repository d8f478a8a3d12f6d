/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"playboard/internal/config"
	"playboard/internal/crash"
	"playboard/internal/export"
	applog "playboard/internal/log"
	"playboard/internal/storage"
	"playboard/internal/ui"
	"playboard/internal/version"
)

func usage() {
	fmt.Println("Playboard — interactive tactics board")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  playboard version|-v|--version   Show version")
	fmt.Println("  playboard plays                  List saved plays, newest first")
	fmt.Println("  playboard export <id> <out.pdf>  Export a saved play to PDF, one page per frame")
	fmt.Println("  playboard delete <id>            Delete a saved play")
	fmt.Println("  playboard ui [<id>]              Launch the board (build with -tags fyne for the full UI)")
}

func openLibrary(l *slog.Logger) (*storage.Library, *storage.SQLiteKV) {
	kv, err := storage.OpenKV(filepath.Join(config.DataDir(), "plays.db"))
	if err != nil {
		l.Error("open play database failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	return storage.NewLibrary(kv), kv
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	defer func() { crash.Recover(nil) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Playboard — interactive tactics board")
			fmt.Println(version.String())
			return
		case "plays":
			lib, kv := openLibrary(l)
			defer kv.Close()
			plays, err := lib.List()
			if err != nil {
				l.Error("list plays failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if len(plays) == 0 {
				fmt.Println("No saved plays.")
				return
			}
			for _, p := range plays {
				fmt.Printf("%-20s %-30s %s  (%d frames)\n",
					p.ID, p.Name, p.CreatedAt.Format("2006-01-02 15:04"), len(p.Frames))
			}
			return
		case "export":
			if len(args) < 4 {
				fmt.Println("export requires <id> and <out.pdf>")
				usage()
				os.Exit(2)
			}
			id, out := args[2], args[3]
			lib, kv := openLibrary(l)
			defer kv.Close()
			p, ok, err := lib.Get(id)
			if err != nil {
				l.Error("load play failed", slog.String("id", id), slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if !ok {
				fmt.Println("No play with ID", id)
				os.Exit(1)
			}
			abs, _ := filepath.Abs(out)
			if err := export.WritePlayPDF(p, abs, export.PDFOptions{}); err != nil {
				l.Error("export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Exported", p.Name, "to", abs)
			return
		case "delete":
			if len(args) < 3 {
				fmt.Println("delete requires <id>")
				usage()
				os.Exit(2)
			}
			id := args[2]
			lib, kv := openLibrary(l)
			defer kv.Close()
			if err := lib.Delete(id); err != nil {
				l.Error("delete failed", slog.String("id", id), slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Deleted", id)
			return
		case "ui":
			var id string
			if len(args) >= 3 {
				id = args[2]
			}
			if err := ui.Run(id); err != nil {
				l.Error("ui failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "help", "--help", "-h":
			usage()
			return
		default:
			fmt.Println("Unknown command:", args[1])
			usage()
			os.Exit(2)
		}
	}
	usage()
}
