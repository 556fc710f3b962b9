// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/valpool/api/admin"
	"github.com/vechain/valpool/api/middleware"
	"github.com/vechain/valpool/api/pool"
	"github.com/vechain/valpool/api/subscriptions"
	"github.com/vechain/valpool/log"
	"github.com/vechain/valpool/node"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins     string
	EventsLimit        uint64
	EnableMetrics      bool
	EnableReqLogger    bool
	SlowQueryThreshold time.Duration
	// LogLevel enables the admin log level route when set.
	LogLevel *slog.LevelVar
}

// New return api router and a function closing the hijacked subscription conns.
func New(n *node.Node, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	pool.New(n, opts.EventsLimit).
		Mount(router, "/pool")
	subs := subscriptions.New(n, origins)
	subs.Mount(router, "/subscriptions")
	admin.NewHealth(n.Health()).
		Mount(router, "/admin/health")
	if opts.LogLevel != nil {
		admin.NewLogLevel(opts.LogLevel).
			Mount(router, "/admin/loglevel")
	}

	if opts.EnableMetrics {
		router.Use(middleware.Metrics)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut}),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger || opts.SlowQueryThreshold > 0 {
		handler = middleware.RequestLogger(logger, opts.SlowQueryThreshold)(handler)
	}

	return handler.ServeHTTP, subs.Close
}
