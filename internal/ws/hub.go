package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"go-pharmacy-stock/internal/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// EntryEvent is broadcast whenever a mutation log entry is created or
// revoked, so connected dashboards refresh without polling.
type EntryEvent struct {
	Type    string                  `json:"type"`
	Entry   *model.MutationLogEntry `json:"entry"`
	User    EventUser               `json:"user"`
	Message string                  `json:"message"`
}

// EventUser identifies the operator behind an event.
type EventUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

// PresenceEvent announces a user's online status.
type PresenceEvent struct {
	Type       string    `json:"type"`
	UserID     uuid.UUID `json:"user_id"`
	Status     string    `json:"status"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

// Emit marshals the event and queues it for every connected client in
// its own goroutine, so callers never block on slow consumers. Marshal
// failures drop the event rather than wedge the caller.
func (h *Hub) Emit(event interface{}) {
	go func() {
		msg, err := json.Marshal(event)
		if err != nil {
			return
		}
		h.Broadcast <- msg
	}()
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS Client Connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
