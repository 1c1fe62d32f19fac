package ws

import (
	"encoding/json"
	"sync"

	"go-dealer-stock/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Conn is the slice of the websocket connection the hub needs.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

var _ Conn = (*websocket.Conn)(nil)

// Client ties a connection to the dealer it authenticated as. Updates
// are only ever delivered to connections of the owning dealer.
type Client struct {
	Conn     Conn
	DealerID uuid.UUID
}

type envelope struct {
	dealerID uuid.UUID
	data     []byte
}

// Hub fans stock updates out to the connected dashboard clients of a
// single dealer.
type Hub struct {
	Clients    map[Conn]uuid.UUID
	Register   chan Client
	Unregister chan Conn
	broadcast  chan envelope
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[Conn]uuid.UUID),
		Register:   make(chan Client),
		Unregister: make(chan Conn),
		broadcast:  make(chan envelope),
	}
}

// BroadcastJSON marshals the payload and queues it for the given
// dealer's clients only. Marshal failures are logged and dropped; the
// feed is advisory.
func (h *Hub) BroadcastJSON(dealerID uuid.UUID, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		logger.L().Warn("ws broadcast marshal failed")
		return
	}
	h.broadcast <- envelope{dealerID: dealerID, data: msg}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mutex.Lock()
			h.Clients[client.Conn] = client.DealerID
			h.mutex.Unlock()
			logger.L().Info("ws client connected", zap.String("dealer_id", client.DealerID.String()))

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case e := <-h.broadcast:
			h.mutex.Lock()
			for conn, owner := range h.Clients {
				if owner != e.dealerID {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, e.data); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
