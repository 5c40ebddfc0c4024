package ws_room

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

const EventSessionStarted = "session_started"

type Message struct {
	Event   string `json:"event"`
	Session any    `json:"session,omitempty"`
}

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	RoomCode string
}

// Hub keeps the per-room listener sets. Delivery is best-effort: a
// listener whose send buffer is full is dropped from the room rather
// than blocking the broadcast.
type Hub struct {
	mu sync.RWMutex

	rooms map[string]map[*Client]bool

	logger *slog.Logger
}

func New(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]bool),
		logger: logger,
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[client.RoomCode]; !ok {
		h.rooms[client.RoomCode] = make(map[*Client]bool)
	}
	h.rooms[client.RoomCode][client] = true

	h.logger.Info("client registered", "room_code", client.RoomCode)
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[client.RoomCode]; ok {
		if _, ok := room[client]; ok {
			delete(room, client)
			close(client.Send)
		}
		if len(room) == 0 {
			delete(h.rooms, client.RoomCode)
		}
	}
	h.logger.Info("client unregistered", "room_code", client.RoomCode)
}

func (h *Hub) BroadcastToRoom(roomCode string, message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	messageBytes, _ := json.Marshal(message)

	if clients, ok := h.rooms[roomCode]; ok {
		for client := range clients {
			select {
			case client.Send <- messageBytes:
			default:
				close(client.Send)
				delete(h.rooms[roomCode], client)
			}
		}
	}
}

func (h *Hub) StartClientReading(client *Client) {
	defer func() {
		h.RemoveClient(client)
		client.Conn.Close()
	}()

	for {
		_, _, err := client.Conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

func (h *Hub) StartClientWriting(client *Client) {
	defer client.Conn.Close()

	for message := range client.Send {
		err := client.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			break
		}
	}
}
