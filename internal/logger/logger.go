// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package logger configures structured logging for minefeed.
package logger

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logf is the basic logger type: a printf-like func. Like [log.Printf], the
// format need not end in a newline. Logf functions must be safe for
// concurrent use.
type Logf func(format string, args ...any)

// Write implements the [io.Writer] interface.
func (f Logf) Write(p []byte) (n int, err error) {
	f("%s", p)
	return len(p), nil
}

// Options configures a Logger.
type Options struct {
	// Out is the primary log destination. Defaults to os.Stderr.
	Out io.Writer
	// File, if set, duplicates log output to a size-rotated file.
	File string
	// Verbose lowers the initial log level to debug.
	Verbose bool
}

// Logger wraps a [slog.Logger] with an adjustable level.
type Logger struct {
	*slog.Logger

	// Level controls the minimum level of emitted records and can be
	// adjusted at runtime.
	Level *slog.LevelVar

	rotator *lumberjack.Logger
}

// New returns a Logger configured per opts.
func New(opts Options) *Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	l := &Logger{Level: new(slog.LevelVar)}
	if opts.Verbose {
		l.Level.Set(slog.LevelDebug)
	}

	if opts.File != "" {
		l.rotator = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		out = io.MultiWriter(out, l.rotator)
	}

	l.Logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: l.Level}))
	return l
}

// Close closes the rotating log file, if one was configured.
func (l *Logger) Close() error {
	if l.rotator == nil {
		return nil
	}
	return l.rotator.Close()
}
