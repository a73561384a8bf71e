// internal/httpserver/ws.go
//
// WebSocket state stream. Reveal ticks and round advances happen on server
// timers, so the view cannot poll its way to a smooth game: every match
// transition is pushed to the player's subscribed sockets as a full
// MatchState snapshot (the view re-renders from state, it never diffs).
//
// One player may hold several sockets (tabs); each gets every snapshot.
// Slow consumers are dropped rather than allowed to stall the match.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/skyblue-will/letterdrop/internal/game"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 45 * time.Second
	wsSendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer for the REST surface; the
	// socket carries no intents, only state reads, so any origin may listen.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsClient is one subscribed socket.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// stateEvent is the single message type pushed to clients.
type stateEvent struct {
	Type  string          `json:"type"` // always "state"
	State game.MatchState `json:"state"`
}

// handleWS upgrades the connection and subscribes it to the player's match
// transitions. The current snapshot (if a match is live) is sent immediately.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	player := s.ensurePlayerID(w, r)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade")
		return
	}

	c := &wsClient{conn: conn, send: make(chan []byte, wsSendBuffer)}
	s.subscribe(player, c)

	if m, ok := s.liveMatch(player); ok {
		if raw, err := json.Marshal(stateEvent{Type: "state", State: m.State()}); err == nil {
			c.send <- raw
		}
	}

	go c.writePump(func() { s.unsubscribe(player, c) })
	go c.readPump()
}

// subscribe registers a socket for the player's snapshots.
func (s *Server) subscribe(player string, c *wsClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs[player] == nil {
		s.subs[player] = make(map[*wsClient]struct{})
	}
	s.subs[player][c] = struct{}{}
}

// unsubscribe removes a socket and closes its send channel.
func (s *Server) unsubscribe(player string, c *wsClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set, ok := s.subs[player]; ok {
		if _, ok := set[c]; ok {
			delete(set, c)
			close(c.send)
		}
		if len(set) == 0 {
			delete(s.subs, player)
		}
	}
}

// broadcast fans a snapshot out to the player's sockets. Full buffers mean a
// stalled consumer; those sockets are dropped so the match never blocks.
func (s *Server) broadcast(player string, snap game.MatchState) {
	raw, err := json.Marshal(stateEvent{Type: "state", State: snap})
	if err != nil {
		log.Warn().Err(err).Msg("encode state event")
		return
	}

	s.mu.Lock()
	var stalled []*wsClient
	for c := range s.subs[player] {
		select {
		case c.send <- raw:
		default:
			stalled = append(stalled, c)
		}
	}
	for _, c := range stalled {
		delete(s.subs[player], c)
		close(c.send)
	}
	if set, ok := s.subs[player]; ok && len(set) == 0 {
		delete(s.subs, player)
	}
	s.mu.Unlock()
}

// writePump drains the send channel onto the socket and keeps it alive with
// pings. Exits (and unsubscribes) on any write failure or channel close.
func (c *wsClient) writePump(cleanup func()) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		cleanup()
		_ = c.conn.Close()
	}()
	for {
		select {
		case raw, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames (the socket is read-only for clients) and
// refreshes the read deadline on pongs.
func (c *wsClient) readPump() {
	defer func() { _ = c.conn.Close() }()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
