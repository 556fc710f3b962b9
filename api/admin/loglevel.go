// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package admin serves runtime controls of the node.
package admin

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/valpool/api/utils"
	"github.com/vechain/valpool/log"
)

type LogLevelRequest struct {
	Level string `json:"level"`
}

type LogLevelResponse struct {
	CurrentLevel string `json:"currentLevel"`
}

var levels = map[string]slog.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"crit":  log.LevelCrit,
}

type LogLevel struct {
	level *slog.LevelVar
}

func NewLogLevel(level *slog.LevelVar) *LogLevel {
	return &LogLevel{level: level}
}

func (l *LogLevel) current() LogLevelResponse {
	lvl := l.level.Level()
	for name, v := range levels {
		if v == lvl {
			return LogLevelResponse{CurrentLevel: name}
		}
	}
	return LogLevelResponse{CurrentLevel: lvl.String()}
}

func (l *LogLevel) handleGet(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, l.current())
}

func (l *LogLevel) handlePost(w http.ResponseWriter, req *http.Request) error {
	var body LogLevelRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "invalid request body"))
	}
	lvl, ok := levels[strings.ToLower(body.Level)]
	if !ok {
		return utils.BadRequest(errors.Errorf("invalid verbosity level %q", body.Level))
	}
	l.level.Set(lvl)
	return utils.WriteJSON(w, l.current())
}

func (l *LogLevel) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("admin_get_log_level").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGet))
	sub.Path("").
		Methods(http.MethodPost).
		Name("admin_post_log_level").
		HandlerFunc(utils.WrapHandlerFunc(l.handlePost))
}
