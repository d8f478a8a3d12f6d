/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a report file plus a last-ditch save of
// the working play.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "playboard/internal/log"
	"playboard/internal/telemetry"
	"playboard/internal/version"
)

// Saver persists the working play when the process is about to die. It
// returns a human-readable location of the saved state.
type Saver interface {
	EmergencySave() (string, error)
}

// exitFn is swapped out in tests so Recover does not kill the test process.
var exitFn = os.Exit

// reportDir is where crash reports land. Overridable for tests.
var reportDir = os.TempDir

// Recover captures a panic, logs it with a stack trace, writes a report
// file, and asks the saver (if any) for an emergency save.
//
// Usage: defer func() { crash.Recover(saver) }()
func Recover(saver Saver) {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		reportPath, _ := writeReport(r, stack)
		if saver != nil {
			if loc, err := saver.EmergencySave(); err != nil {
				l.Error("emergency save failed", slog.Any("err", err))
			} else {
				l.Info("emergency save written", slog.String("location", loc))
			}
		}

		fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath)
		fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH)
		exitFn(2)
	}
}

func writeReport(panicVal any, stack []byte) (string, error) {
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(reportDir(), fmt.Sprintf("playboard-crash-%s.log", stamp))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Playboard Crash Report\n")
	fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "Version: %s\n", version.String())
	fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}

	// Anonymized upload is opt-in via env.
	telemetry.UploadCrash(buf.Bytes())
	return path, nil
}
