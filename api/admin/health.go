// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/valpool/api/utils"
	"github.com/vechain/valpool/health"
)

type Health struct {
	health *health.Health
}

func NewHealth(h *health.Health) *Health {
	return &Health{health: h}
}

func (h *Health) handleGet(w http.ResponseWriter, _ *http.Request) error {
	status := h.health.Status()
	if !status.Healthy {
		w.Header().Set("Content-Type", utils.JSONContentType)
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	return utils.WriteJSON(w, status)
}

func (h *Health) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("admin_get_health").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGet))
}
