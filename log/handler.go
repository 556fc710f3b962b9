// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"sync/atomic"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// rootHandler forwards to the handler installed by SetDefault. Loggers derived
// from it before SetDefault follow the swap.
type rootHandler struct {
	current atomic.Pointer[slog.Handler]
}

var root = newRootHandler()

func newRootHandler() *rootHandler {
	r := &rootHandler{}
	r.set(ethlog.DiscardHandler())
	ethlog.SetDefault(ethlog.NewLogger(r))
	return r
}

func (r *rootHandler) set(h slog.Handler) { r.current.Store(&h) }
func (r *rootHandler) get() slog.Handler  { return *r.current.Load() }

func (r *rootHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return r.get().Enabled(ctx, level)
}

func (r *rootHandler) Handle(ctx context.Context, rec slog.Record) error {
	return r.get().Handle(ctx, rec)
}

func (r *rootHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &derivedHandler{root: r, ops: []func(slog.Handler) slog.Handler{withAttrs(attrs)}}
}

func (r *rootHandler) WithGroup(name string) slog.Handler {
	return &derivedHandler{root: r, ops: []func(slog.Handler) slog.Handler{withGroup(name)}}
}

// derivedHandler replays its attrs and groups on the current root handler.
type derivedHandler struct {
	root *rootHandler
	ops  []func(slog.Handler) slog.Handler
}

func (d *derivedHandler) resolve() slog.Handler {
	h := d.root.get()
	for _, op := range d.ops {
		h = op(h)
	}
	return h
}

func (d *derivedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return d.root.get().Enabled(ctx, level)
}

func (d *derivedHandler) Handle(ctx context.Context, rec slog.Record) error {
	return d.resolve().Handle(ctx, rec)
}

func (d *derivedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return d.extend(withAttrs(attrs))
}

func (d *derivedHandler) WithGroup(name string) slog.Handler {
	return d.extend(withGroup(name))
}

func (d *derivedHandler) extend(op func(slog.Handler) slog.Handler) slog.Handler {
	ops := make([]func(slog.Handler) slog.Handler, 0, len(d.ops)+1)
	ops = append(append(ops, d.ops...), op)
	return &derivedHandler{root: d.root, ops: ops}
}

func withAttrs(attrs []slog.Attr) func(slog.Handler) slog.Handler {
	return func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) }
}

func withGroup(name string) func(slog.Handler) slog.Handler {
	return func(h slog.Handler) slog.Handler { return h.WithGroup(name) }
}
