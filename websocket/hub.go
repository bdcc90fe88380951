package websocket

import (
	"log"
	"sync"

	"github.com/craftfolio/api/database"
	"github.com/craftfolio/api/models"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *models.Message)

// RunHub delivers persisted messages to whichever conversation participants
// are currently connected. Messages reach the store over HTTP first; the
// hub only pushes, it never writes.
func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case message := <-Broadcast:
			var conversation models.Conversation
			if err := database.DB.First(&conversation, "id = ?", message.ConversationID).Error; err != nil {
				log.Printf("Error loading conversation %s for push: %v", message.ConversationID, err)
				continue
			}

			recipientID := conversation.OtherParticipant(message.SenderID)

			clientsMu.RLock()
			conn, online := clients[recipientID]
			clientsMu.RUnlock()
			if !online {
				continue
			}

			if err := conn.WriteJSON(message); err != nil {
				log.Printf("Error pushing message to client %s: %v", recipientID, err)
				conn.Close()
				clientsMu.Lock()
				if current, ok := clients[recipientID]; ok && current == conn {
					delete(clients, recipientID)
				}
				clientsMu.Unlock()
			}
		}
	}
}
