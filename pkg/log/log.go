// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides user-facing console output for photosort, kept
// separate from the structured zerolog stream.
package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🕐 timestampLayout is the prefix format for verbose progress lines
const timestampLayout = "2006-01-02 15:04:05"

// 🎯 UserLogger writes user-facing console lines. Verbose progress lines are
// timestamped and only emitted when verbose mode is on; summary and error
// output always shows. Every line is mirrored into the structured stream.
type UserLogger struct {
	mu      sync.Mutex
	console io.Writer
	zlog    zerolog.Logger
	verbose bool

	success *pterm.PrefixPrinter
	warning *pterm.PrefixPrinter
	errp    *pterm.PrefixPrinter
}

// 🏭 New creates a new user logger writing to console
func New(console io.Writer, zlog zerolog.Logger, verbose bool) *UserLogger {
	return &UserLogger{
		console: console,
		zlog:    zlog,
		verbose: verbose,
		success: pterm.Success.WithWriter(console),
		warning: pterm.Warning.WithWriter(console),
		errp:    pterm.Error.WithWriter(console),
	}
}

// 📝 Verbosef logs a timestamped progress line when verbose mode is on. The
// structured stream gets the line at debug level either way.
func (l *UserLogger) Verbosef(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.zlog.Debug().Msg(msg)

	if !l.verbose {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	ts := color.New(color.Faint).Sprintf("[%s]", time.Now().Format(timestampLayout))
	fmt.Fprintf(l.console, "%s %s\n", ts, msg)
}

// 📝 Successf logs a success message
func (l *UserLogger) Successf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.zlog.Info().Msg(msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.success.Println(msg)
}

// 📝 Warningf logs a warning message
func (l *UserLogger) Warningf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.zlog.Warn().Msg(msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.warning.Println(msg)
}

// 📝 Errorf logs an error message
func (l *UserLogger) Errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.zlog.Error().Msg(msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.errp.Println(msg)
}
