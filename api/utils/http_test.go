// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"bad request", BadRequest(errors.New("bad")), http.StatusBadRequest, "bad\n"},
		{"wrapped", errors.WithMessage(NotFound(errors.New("gone")), "ctx"), http.StatusNotFound, "gone\n"},
		{"no cause", &httpError{status: http.StatusForbidden}, http.StatusForbidden, ""},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "boom\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestParseJSON(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"a":1}`), &v))
	assert.Equal(t, 1, v.A)
	assert.Error(t, ParseJSON(strings.NewReader(`{"b":1}`), &v))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, M{"a": 1}))
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"a":1}`, rec.Body.String())
}

func TestAddressVar(t *testing.T) {
	router := mux.NewRouter()
	router.Path("/{address}").HandlerFunc(WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		addr, err := AddressVar(r, "address")
		if err != nil {
			return err
		}
		return WriteJSON(w, addr.String())
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/0x00000000000000000000000000000000000000ab", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"0x00000000000000000000000000000000000000ab"`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/zz", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
