package ws

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, append([]byte(nil), data...))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) received() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

// sync sends a throwaway registration; once the hub accepts it, all
// previously queued work has been processed.
func (h *Hub) syncFor(t *testing.T) {
	t.Helper()
	h.Register <- Client{Conn: &fakeConn{}, DealerID: uuid.New()}
}

func TestHub_BroadcastScopedToOwningDealer(t *testing.T) {
	h := NewHub()
	go h.Run()

	dealerA := uuid.New()
	dealerB := uuid.New()
	connA1 := &fakeConn{}
	connA2 := &fakeConn{}
	connB := &fakeConn{}

	h.Register <- Client{Conn: connA1, DealerID: dealerA}
	h.Register <- Client{Conn: connA2, DealerID: dealerA}
	h.Register <- Client{Conn: connB, DealerID: dealerB}

	h.BroadcastJSON(dealerA, map[string]string{"type": "stock_update"})
	h.syncFor(t)

	if n := connA1.received(); n != 1 {
		t.Errorf("dealer A conn 1 received %d messages, want 1", n)
	}
	if n := connA2.received(); n != 1 {
		t.Errorf("dealer A conn 2 received %d messages, want 1", n)
	}
	if n := connB.received(); n != 0 {
		t.Errorf("dealer B received %d message(s) meant for another dealer", n)
	}
}

func TestHub_UnregisterClosesAndStopsDelivery(t *testing.T) {
	h := NewHub()
	go h.Run()

	dealerID := uuid.New()
	conn := &fakeConn{}
	h.Register <- Client{Conn: conn, DealerID: dealerID}
	h.Unregister <- conn

	h.BroadcastJSON(dealerID, map[string]string{"type": "stock_update"})
	h.syncFor(t)

	conn.mu.Lock()
	defer conn.mu.Unlock()
	if !conn.closed {
		t.Error("unregistered connection was not closed")
	}
	if len(conn.messages) != 0 {
		t.Errorf("unregistered connection received %d message(s)", len(conn.messages))
	}
}
