package web

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	// Registration finishes shortly after the handshake, so keep
	// broadcasting until the client sees a message.
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				hub.Broadcast(map[string]int{"step": 42})
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got map[string]int
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got["step"] != 42 {
		t.Errorf("received %v, want step 42", got)
	}
}

func TestHubDropsClosedClients(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	conn.Close()

	// Broadcasting to a closed client must not panic and must prune it.
	for i := 0; i < 10; i++ {
		hub.Broadcast(map[string]int{"step": i})
		time.Sleep(10 * time.Millisecond)
		hub.mu.Lock()
		n := len(hub.clients)
		hub.mu.Unlock()
		if n == 0 {
			return
		}
	}
	t.Error("closed client never dropped")
}

func TestBroadcastWithNoClients(t *testing.T) {
	hub := NewHub()
	hub.Broadcast(map[string]int{"step": 1}) // must not panic
}
