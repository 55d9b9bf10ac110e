package webserver

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"f1strategydashboard/pkg/pubsub"
)

var upgrader = websocket.Upgrader{} // use default options

type wsMessage struct {
	MessageType string `json:"type"`
}

// handleWebSocket pushes cache-reset events to the dashboard so it can
// re-run the current selection against fresh data.
func (m *Manager) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %s\n", err)
		return
	}
	defer c.Close()

	resetChan := m.resets.Subscribe(pubsub.TopicCacheReset)
	defer m.resets.Unsubscribe(pubsub.TopicCacheReset, resetChan)

	done := make(chan struct{})
	go func() {
		// the read loop only exists to notice the client going away
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case topic, ok := <-resetChan:
			if !ok {
				return
			}
			if err := c.WriteJSON(wsMessage{MessageType: topic}); err != nil {
				log.Printf("websocket write error: %s\n", err)
				return
			}
		}
	}
}
