// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"

	"github.com/vechain/valpool/api/utils"
	"github.com/vechain/valpool/co"
	"github.com/vechain/valpool/log"
	"github.com/vechain/valpool/node"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 7 / 10
)

type Subscriptions struct {
	node     *node.Node
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup
	// conn read loops, each ends once its conn is closed
	readers co.Goes

	lock  sync.Mutex
	conns map[string]*websocket.Conn
}

func New(n *node.Node, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		node: n,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin || allowed == "*" {
						return true
					}
				}
				return false
			},
		},
		done:  make(chan struct{}),
		conns: make(map[string]*websocket.Conn),
	}
}

func (s *Subscriptions) track(id string, conn *websocket.Conn) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.conns[id] = conn
}

func (s *Subscriptions) untrack(id string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.conns, id)
}

// Sessions returns the number of open subscriptions.
func (s *Subscriptions) Sessions() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.conns)
}

func (s *Subscriptions) handleSubscribeEras(w http.ResponseWriter, req *http.Request) error {
	from := uint32(0)
	if head := s.node.Head(); head != nil {
		from = head.Number + 1
	}
	if v := req.URL.Query().Get("from"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "from"))
		}
		from = uint32(n)
	}

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader already replied
		logger.Debug("upgrade failed", "err", err)
		return nil
	}

	id := uuid.New()
	s.track(id, conn)
	s.wg.Add(1)
	defer func() {
		s.untrack(id)
		conn.Close()
		s.wg.Done()
	}()

	logger.Debug("subscription opened", "id", id, "from", from, "remote", req.RemoteAddr)
	err = s.pipe(req.Context(), conn, newEraReader(s.node, from))
	logger.Debug("subscription closed", "id", id, "err", err)

	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	}
	return nil
}

// pipe forwards messages of reader to conn until the peer or the server closes.
func (s *Subscriptions) pipe(ctx context.Context, conn *websocket.Conn, reader *eraReader) error {
	closed := make(chan error, 1)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	s.readers.Go(func() {
		// drain control frames; any data frame or error ends the session
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				closed <- err
				return
			}
		}
	})

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	waiter := s.node.NewWaiter()
	for {
		msgs, err := reader.Read(ctx)
		if err != nil {
			return err
		}
		for _, msg := range msgs {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil
		case err := <-closed:
			return err
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		case <-waiter.C():
		}
	}
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/eras").
		Methods(http.MethodGet).
		Name("subscriptions_eras").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEras))
}

// Close ends every session and waits for the handlers and their read loops to return.
func (s *Subscriptions) Close() {
	close(s.done)
	s.lock.Lock()
	for _, conn := range s.conns {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
	}
	s.lock.Unlock()
	s.wg.Wait()
	s.readers.Wait()
}
