package socket

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"notetaker/internal/note/query"
	"notetaker/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The frontend dev server runs on a different origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	NoteID string
	UserID string
	Send   chan []byte
}

// ServeWs upgrades the request and subscribes the user to the note's
// event room. The connection is rejected when the note is not visible
// to the user, indistinguishable from the note not existing.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, userID string) {
	noteID := r.URL.Query().Get("noteId")
	if noteID == "" {
		http.Error(w, "Missing noteId parameter", http.StatusBadRequest)
		return
	}

	var visible bool
	check := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM notes n WHERE n.id = $1 AND %s)`,
		query.VisiblePredicate("n", 2))
	if err := hub.db.QueryRow(check, noteID, userID).Scan(&visible); err != nil {
		logger.Sugar.Errorf("Database error checking note access: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if !visible {
		http.Error(w, "Note not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Sugar.Error(err)
		return
	}

	client := &Client{
		Hub:    hub,
		Conn:   conn,
		NoteID: noteID,
		UserID: userID,
		Send:   make(chan []byte, 256),
	}
	client.Hub.Register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection to detect closure. Inbound messages
// are discarded; clients only listen.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Sugar.Errorf("error: %v", err)
			}
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.Conn.WriteMessage(websocket.TextMessage, message)
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
