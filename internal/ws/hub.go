package ws

import (
	"encoding/json"
	"log"
	"sync"

	"go-boutique-ws/internal/model"

	"github.com/gofiber/contrib/websocket"
)

// Hub relays catalog change events to connected browser clients.
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

// BroadcastEvent marshals a change event and queues it for all clients.
func (h *Hub) BroadcastEvent(ev model.ChangeEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		log.Println("ws: failed to marshal change event:", err)
		return
	}
	h.Broadcast <- msg
}

// Relay feeds every event from a bus subscription into the hub until the
// channel is closed.
func (h *Hub) Relay(ch <-chan model.ChangeEvent) {
	for ev := range ch {
		h.BroadcastEvent(ev)
	}
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
