// Package socket fans note and comment events out to clients watching a
// note. One room per note; clients are read-only listeners.
package socket

import (
	"database/sql"
	"encoding/json"
	"sync"

	"notetaker/pkg/logger"
)

const (
	CommentType       = "COMMENT"        // New comment on the note
	CommentUpdateType = "COMMENT_UPDATE" // Comment edited
	CommentDeleteType = "COMMENT_DELETE" // Comment deleted
	NoteUpdateType    = "NOTE_UPDATE"    // Title/content/visibility changed
	NoteSharedType    = "NOTE_SHARED"    // Share grant added
	NoteDeleteType    = "NOTE_DELETE"    // Note deleted, room closes
)

type Event struct {
	Type    string          `json:"type"`
	NoteID  string          `json:"noteId"`
	UserID  string          `json:"userId"`
	Payload json.RawMessage `json:"payload"`
}

type Hub struct {
	Rooms      map[string]map[*Client]bool
	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
	db         *sql.DB
	mu         sync.Mutex
}

func NewHub(db *sql.DB) *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Broadcast:  make(chan Event),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		db:         db,
	}
}

// Publish hands an event to the hub for fan-out. Safe to call from any
// request goroutine once Run is started.
func (h *Hub) Publish(evt Event) {
	h.Broadcast <- evt
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.Rooms[client.NoteID] == nil {
				h.Rooms[client.NoteID] = make(map[*Client]bool)
			}
			h.Rooms[client.NoteID][client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Rooms[client.NoteID][client]; ok {
				delete(h.Rooms[client.NoteID], client)
				close(client.Send)
				if len(h.Rooms[client.NoteID]) == 0 {
					delete(h.Rooms, client.NoteID)
				}
			}
			h.mu.Unlock()

		case evt := <-h.Broadcast:
			payload, err := json.Marshal(evt)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling event: %v", err)
				continue
			}

			// Copy the recipient list so no I/O happens under the lock.
			h.mu.Lock()
			clientsToSend := make([]*Client, 0, len(h.Rooms[evt.NoteID]))
			for client := range h.Rooms[evt.NoteID] {
				if client.UserID != evt.UserID {
					clientsToSend = append(clientsToSend, client)
				}
			}
			h.mu.Unlock()

			for _, client := range clientsToSend {
				select {
				case client.Send <- payload:
				default:
					// A full send buffer means the client is lagging.
					// Drop it rather than block the hub.
					logger.Sugar.Warnf("Client %s's send buffer is full. Unregistering.", client.UserID)
					go func(c *Client) { h.Unregister <- c }(client)
				}
			}
		}
	}
}

// CloseRoom notifies watchers that the note is gone and disconnects
// them. Called when a note is deleted via the API.
func (h *Hub) CloseRoom(noteID string) {
	payload, _ := json.Marshal(Event{Type: NoteDeleteType, NoteID: noteID})

	h.mu.Lock()
	clients, ok := h.Rooms[noteID]
	if ok {
		for client := range clients {
			select {
			case client.Send <- payload:
			default:
			}
			// Closing the connection makes readPump exit and
			// unregister the client safely.
			client.Conn.Close()
		}
		delete(h.Rooms, noteID)
	}
	h.mu.Unlock()
}
