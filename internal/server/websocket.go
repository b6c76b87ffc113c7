package server

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/glimpse/internal/debounce"
	"github.com/jonathan/glimpse/internal/types"
)

// wsQuery is one keystroke's worth of input from the popup
type wsQuery struct {
	Query string     `json:"query"`
	Mode  types.Mode `json:"mode"`
}

// wsResults answers the latest query. Error is set instead of Results
// when the input could not be searched.
type wsResults struct {
	Query   string               `json:"query"`
	Results []types.ScoredResult `json:"results"`
	Error   string               `json:"error,omitempty"`
}

// wsConn serializes writes to one WebSocket connection
type wsConn struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	logger *logrus.Entry
}

func (c *wsConn) send(msg wsResults) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		c.logger.WithError(err).Debug("failed to write websocket message")
	}
}

// handleWebSocket runs search-as-you-type over one connection. Input is
// debounced, and results are only sent while their input is still the latest.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		requestLogger(r, s.logger).WithError(err).Debug("websocket upgrade failed")
		return
	}
	defer conn.Close() //nolint:errcheck

	logger := requestLogger(r, s.logger)
	out := &wsConn{conn: conn, logger: logger}

	debouncer := debounce.New(s.debounceDelay)
	defer debouncer.Stop()

	// Searches outlive superseding input; only their results are dropped
	ctx := context.WithoutCancel(r.Context())

	for {
		var msg wsQuery
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WithError(err).Debug("websocket closed")
			}
			return
		}

		if strings.TrimSpace(msg.Query) == "" {
			debouncer.Supersede()
			out.send(wsResults{Query: msg.Query, Results: []types.ScoredResult{}})
			continue
		}

		req, err := s.newSearchRequest(ctx, types.SearchRequest{Query: msg.Query, Mode: msg.Mode})
		if err != nil {
			debouncer.Supersede()
			out.send(wsResults{Query: msg.Query, Results: []types.ScoredResult{}, Error: err.Error()})
			continue
		}

		query := msg.Query
		debouncer.Trigger(func(token debounce.Token) {
			results := s.engine.SearchAll(ctx, req)
			if !token.Current() {
				logger.WithField("query", query).Debug("discarding superseded results")
				return
			}
			out.send(wsResults{Query: query, Results: results})
		})
	}
}
