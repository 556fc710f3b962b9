// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/vechain/valpool/log"
)

// RequestLogger logs every request. Requests slower than slowThreshold are logged
// at warn level; zero disables the slow query warning.
func RequestLogger(logger log.Logger, slowThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body []byte
			if r.Body != nil {
				var err error
				if body, err = io.ReadAll(r.Body); err != nil {
					logger.Warn("unexpected body read error", "err", err)
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
			}

			start := time.Now()
			next.ServeHTTP(w, r)
			duration := time.Since(start)

			ctx := []any{
				"durationMs", duration.Milliseconds(),
				"uri", r.URL.String(),
				"method", r.Method,
				"body", string(body),
			}
			if slowThreshold > 0 && duration > slowThreshold {
				logger.Warn("slow API request", ctx...)
			} else {
				logger.Debug("API request", ctx...)
			}
		})
	}
}
