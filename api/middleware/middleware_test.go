// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/valpool/log"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewJSON(&buf, log.LevelDebug)

	var seen string
	handler := RequestLogger(logger, time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		seen = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pool/extrinsics", strings.NewReader(`{"call":"leave"}`)))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, `{"call":"leave"}`, seen, "body must still be readable downstream")
	assert.Contains(t, buf.String(), "API request")
	assert.Contains(t, buf.String(), "/pool/extrinsics")
}

func TestSlowRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewJSON(&buf, log.LevelWarn)

	handler := RequestLogger(logger, time.Nanosecond)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		time.Sleep(time.Millisecond)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pool/era", nil))

	assert.Contains(t, buf.String(), "slow API request")
}

func TestMetricsStatus(t *testing.T) {
	router := mux.NewRouter()
	router.Use(Metrics)
	router.Path("/teapot").Name("teapot").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	sw := &statusWriter{ResponseWriter: httptest.NewRecorder()}
	_, _, err := sw.Hijack()
	assert.Error(t, err)
}
