// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log wires go-ethereum's slog based logger with a root handler that can be
// replaced at runtime, so package level loggers created before Init still follow it.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync/atomic"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// Logger is the logger used across the repo.
type Logger = ethlog.Logger

// Levels, same numbering as go-ethereum.
const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

// Legacy verbosity values accepted by the cli.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

var (
	current atomic.Pointer[slog.Handler]
	root    Logger
)

func init() {
	h := ethlog.DiscardHandler()
	current.Store(&h)
	root = ethlog.NewLogger(&swapHandler{})
	ethlog.SetDefault(root)
}

// SetHandler replaces the handler every logger forwards to.
func SetHandler(h slog.Handler) {
	current.Store(&h)
}

// Init installs a terminal (or JSON) handler writing to stderr at the given legacy verbosity.
func Init(verbosity int, jsonLogs bool) {
	SetHandler(NewHandler(os.Stderr, ethlog.FromLegacyLevel(verbosity), jsonLogs))
}

// NewHandler creates the handler used by Init.
func NewHandler(w io.Writer, level slog.Level, jsonLogs bool) slog.Handler {
	if jsonLogs {
		return ethlog.JSONHandlerWithLevel(w, level)
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return ethlog.NewTerminalHandlerWithLevel(w, level, useColor)
}

// Root returns the root logger.
func Root() Logger {
	return root
}

// WithContext returns a logger carrying the given key/value pairs.
func WithContext(ctx ...any) Logger {
	return root.With(ctx...)
}

func Trace(msg string, ctx ...any) { root.Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { root.Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { root.Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { root.Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { root.Error(msg, ctx...) }

// swapHandler forwards records to the handler installed by SetHandler.
type swapHandler struct {
	attrs []slog.Attr
}

func (s *swapHandler) handler() slog.Handler {
	h := *current.Load()
	if len(s.attrs) > 0 {
		h = h.WithAttrs(s.attrs)
	}
	return h
}

func (s *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return (*current.Load()).Enabled(ctx, level)
}

func (s *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.handler().Handle(ctx, r)
}

func (s *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &swapHandler{attrs: append(slices.Clone(s.attrs), attrs...)}
}

// WithGroup is not supported, groups are flattened.
func (s *swapHandler) WithGroup(string) slog.Handler {
	return s
}
