package server

import (
	"encoding/json"
	"sync"
	"time"

	"punchline/internal/game"

	"github.com/gorilla/websocket"
)

// writeWait bounds every websocket write so a client that stops reading
// cannot stall the request that triggered the broadcast.
const writeWait = 10 * time.Second

type wsMessage struct {
	Type string   `json:"type"`
	Game Snapshot `json:"game"`
}

// wsClient serializes writes; gorilla connections allow one writer at a time.
type wsClient struct {
	conn     *websocket.Conn
	playerID string
	mu       sync.Mutex
}

func (c *wsClient) send(payload any, wait time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

type wsHub struct {
	mu        sync.Mutex
	groups    map[string]map[*wsClient]struct{}
	writeWait time.Duration
}

func newWSHub() *wsHub {
	return &wsHub{
		groups:    make(map[string]map[*wsClient]struct{}),
		writeWait: writeWait,
	}
}

func (h *wsHub) Add(code string, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[code]
	if group == nil {
		group = make(map[*wsClient]struct{})
		h.groups[code] = group
	}
	group[client] = struct{}{}
}

func (h *wsHub) Remove(code string, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[code]
	if group == nil {
		return
	}
	delete(group, client)
	_ = client.conn.Close()
	if len(group) == 0 {
		delete(h.groups, code)
	}
}

func (h *wsHub) clients(code string) []*wsClient {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[code]
	clients := make([]*wsClient, 0, len(group))
	for client := range group {
		clients = append(clients, client)
	}
	return clients
}

// Broadcast sends each client its own rendering of the payload.
func (h *wsHub) Broadcast(code string, render func(viewerID string) any) {
	for _, client := range h.clients(code) {
		if err := client.send(render(client.playerID), h.writeWait); err != nil {
			h.Remove(code, client)
		}
	}
}

func (s *Server) broadcastGameUpdate(g *game.Game, eventType string) {
	if s.ws == nil {
		return
	}
	s.ws.Broadcast(g.Code, func(viewerID string) any {
		return wsMessage{Type: eventType, Game: snapshot(g, viewerID)}
	})
}

func (s *Server) readWS(code string, client *wsClient) {
	defer s.ws.Remove(code, client)
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			s.logger.Debug("ws disconnected", "game_code", code, "player_id", client.playerID, "err", err)
			return
		}
	}
}
