package server

import (
	"encoding/json"
	"sync"
)

// Hub fans out game events to websocket clients. Clients subscribe to
// a single game; broadcasts go only to that game's room.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Client]struct{}
}

// Client is one websocket subscriber. Its send channel is drained by
// the connection's writer goroutine; slow clients drop messages.
type Client struct {
	hub    *Hub
	gameID string
	send   chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	room, ok := h.rooms[c.gameID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[c.gameID] = room
	}
	room[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if room, ok := h.rooms[c.gameID]; ok {
		if _, ok := room[c]; ok {
			delete(room, c)
			close(c.send)
		}
		if len(room) == 0 {
			delete(h.rooms, c.gameID)
		}
	}
	h.mu.Unlock()
}

// BroadcastState sends a full game snapshot to the game's room.
func (h *Hub) BroadcastState(gameID string, state gameResponse) {
	h.broadcast(gameID, wsMessage{Type: "state", Payload: mustMarshal(state)})
}

// BroadcastEngine streams one search progress report to the room.
func (h *Hub) BroadcastEngine(gameID string, p enginePayload) {
	h.broadcast(gameID, wsMessage{Type: "engine", Payload: mustMarshal(p)})
}

func (h *Hub) broadcast(gameID string, msg wsMessage) {
	h.mu.Lock()
	for client := range h.rooms[gameID] {
		client.sendJSON(msg)
	}
	h.mu.Unlock()
}

// HasClients reports whether anyone watches the given game.
func (h *Hub) HasClients(gameID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[gameID]) > 0
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
