// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin layer over the go-ethereum structured logger.
// Packages obtain a scoped logger with WithContext("pkg", name).
package log

import (
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

type Logger = ethlog.Logger

const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

func Root() Logger {
	return ethlog.Root()
}

// SetDefault routes every logger of this package, including ones created
// earlier, to the handler of l.
func SetDefault(l Logger) {
	root.set(l.Handler())
}

// WithContext returns a logger carrying the given key/value pairs.
func WithContext(ctx ...any) Logger {
	return ethlog.New(ctx...)
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return ethlog.NewLogger(ethlog.DiscardHandler())
}

// FromVerbosity maps the legacy 0 (crit) .. 5 (trace) verbosity scale onto slog levels.
func FromVerbosity(verbosity int) slog.Level {
	return ethlog.FromLegacyLevel(verbosity)
}

// NewTerminal returns a terminal logger writing to w, colored when w is a tty.
func NewTerminal(w io.Writer, lvl slog.Leveler) Logger {
	useColor := false
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return ethlog.NewLogger(ethlog.NewTerminalHandlerWithLevel(w, lvl, useColor))
}

// NewJSON returns a logger emitting one JSON object per record.
func NewJSON(w io.Writer, lvl slog.Leveler) Logger {
	return ethlog.NewLogger(ethlog.JSONHandlerWithLevel(w, lvl))
}

func Trace(msg string, ctx ...any) { ethlog.Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { ethlog.Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { ethlog.Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { ethlog.Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { ethlog.Root().Error(msg, ctx...) }
func Crit(msg string, ctx ...any)  { ethlog.Root().Crit(msg, ctx...) }
