// Package progress implements a phase-progress publisher for a running
// Primitive: a websocket Hub (gorilla/websocket, same client-registry
// and write-deadline shape leanlp-BTC-coinjoin's internal/api.Hub uses
// for its own dashboard feed) that broadcasts {phase, index} frames as
// primitive.Base.AdvancePhase moves through PhaseNames. It is a purely
// optional collaborator: core discovery and verification never import
// this package, and no core test depends on it.
package progress

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Frame is one progress update, broadcast as JSON to every subscriber.
type Frame struct {
	RunID string `json:"run_id"`
	Index int    `json:"index"`
	Phase string `json:"phase"`
}

// Streamer broadcasts Frames to subscribed websocket clients. It
// implements primitive.ProgressSink.
type Streamer struct {
	runID     string
	clients   map[*websocket.Conn]bool
	broadcast chan Frame
	mutex     sync.Mutex
}

// NewStreamer returns a Streamer tagging every Frame with runID, and
// starts its broadcast loop in a background goroutine.
func NewStreamer(runID string) *Streamer {
	s := &Streamer{
		runID:     runID,
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Frame, 256),
	}
	go s.run()
	return s
}

func (s *Streamer) run() {
	for frame := range s.broadcast {
		payload, err := json.Marshal(frame)
		if err != nil {
			log.Printf("progress: marshal frame: %v", err)
			continue
		}
		s.mutex.Lock()
		for client := range s.clients {
			_ = client.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := client.WriteMessage(websocket.TextMessage, payload); err != nil {
				client.Close()
				delete(s.clients, client)
			}
		}
		s.mutex.Unlock()
	}
}

// Advance implements primitive.ProgressSink: it publishes a Frame for
// the phase the Primitive just entered.
func (s *Streamer) Advance(phaseIndex int, phaseName string) {
	s.broadcast <- Frame{RunID: s.runID, Index: phaseIndex, Phase: phaseName}
}

// Subscribe upgrades an HTTP request to a websocket connection and
// registers it to receive future Frames.
func (s *Streamer) Subscribe(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	s.mutex.Lock()
	s.clients[conn] = true
	s.mutex.Unlock()

	go func() {
		defer func() {
			s.mutex.Lock()
			delete(s.clients, conn)
			s.mutex.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
	return nil
}

// Close stops the broadcast loop. Callers must not call Advance after Close.
func (s *Streamer) Close() {
	close(s.broadcast)
}
