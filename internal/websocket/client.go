package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/models"

	"github.com/gorilla/websocket"
	"github.com/jmoiron/sqlx"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// Client represents a WebSocket client connection
type Client struct {
	UserID   string
	UserName string
	UserRole string // "admin" (dashboard) or "agent" (backend process)
	conn     *websocket.Conn
	hub      *Hub
	send     chan []byte
	db       *sqlx.DB
}

// IncomingMessage represents a message from the client
type IncomingMessage struct {
	Type      string                 `json:"type"`
	Timestamp string                 `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// NewClient creates a new WebSocket client
func NewClient(userID, userName, userRole string, conn *websocket.Conn, hub *Hub, db *sqlx.DB) *Client {
	return &Client{
		UserID:   userID,
		UserName: userName,
		UserRole: userRole,
		conn:     conn,
		hub:      hub,
		send:     make(chan []byte, 256),
		db:       db,
	}
}

// ReadPump pumps messages from the WebSocket connection to the hub
func (c *Client) ReadPump() {
	defer func() {
		c.markAgentOffline()
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg IncomingMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Invalid message format: %v", err)
			continue
		}

		switch msg.Type {
		case "ping":
			response := map[string]interface{}{
				"type":      "pong",
				"timestamp": time.Now().Format(time.RFC3339),
			}
			responseData, _ := json.Marshal(response)
			c.send <- responseData

		case "bid_card_update":
			c.handleBidCardUpdate(msg.Data)

		case "agent_heartbeat":
			c.handleAgentHeartbeat(msg.Data)
		}
	}
}

// WritePump pumps messages from the hub to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleBidCardUpdate persists a bid-card change pushed by an agent and
// re-broadcasts the updated card to all connected admins. Payload fields
// go through alias normalization, so legacy agent builds keep working.
func (c *Client) handleBidCardUpdate(data map[string]interface{}) {
	if c.UserRole != "agent" {
		log.Printf("⚠️ Ignoring bid_card_update from non-agent client %s", c.UserID)
		return
	}

	bidCardID, ok := data["bid_card_id"].(string)
	if !ok || bidCardID == "" {
		log.Printf("❌ bid_card_update missing bid_card_id")
		return
	}

	update := models.NormalizeBidCardPayload(data)

	var card models.BidCard
	if err := c.db.Get(&card, `SELECT * FROM bid_cards WHERE id = $1`, bidCardID); err != nil {
		log.Printf("❌ bid_card_update for unknown card %s: %v", bidCardID, err)
		return
	}

	if update.UrgencyLevel != nil {
		card.UrgencyLevel = update.UrgencyLevel
	}
	if update.ContractorCountNeeded != nil {
		card.ContractorCountNeeded = *update.ContractorCountNeeded
	}
	if update.BidsReceived != nil {
		card.BidsReceived = *update.BidsReceived
	}
	if update.Status != nil {
		card.Status = *update.Status
	}

	now := time.Now().Unix()
	_, err := c.db.Exec(`
		UPDATE bid_cards
		SET urgency_level = $1,
		    contractor_count_needed = $2,
		    bids_received = $3,
		    status = $4,
		    updated_at = $5
		WHERE id = $6
	`, card.UrgencyLevel, card.ContractorCountNeeded, card.BidsReceived, card.Status, now, bidCardID)
	if err != nil {
		log.Printf("❌ Error saving bid card update: %v", err)
		return
	}
	card.UpdatedAt = now

	log.Printf("📤 [WEBSOCKET] Bid card %s updated by agent %s", card.CardNumber, c.UserName)

	c.hub.BroadcastToRole("admin", map[string]interface{}{
		"type": "bid_card_update",
		"data": card,
	})
	// Ack back to the pushing agent so it can stop retrying
	c.hub.BroadcastToUser(c.UserID, map[string]interface{}{
		"type": "bid_card_update_ack",
		"data": map[string]interface{}{
			"bid_card_id": bidCardID,
			"updated_at":  now,
		},
	})
	c.hub.notifyBidCardChange()
}

// handleAgentHeartbeat upserts the agent's health row
func (c *Client) handleAgentHeartbeat(data map[string]interface{}) {
	if c.UserRole != "agent" {
		return
	}

	agentName, ok := data["agent_name"].(string)
	if !ok || agentName == "" {
		agentName = c.UserName
	}

	status := "online"
	if s, ok := data["status"].(string); ok && s != "" {
		status = s
	}

	var version, lastError *string
	if v, ok := data["version"].(string); ok {
		version = &v
	}
	if e, ok := data["last_error"].(string); ok {
		lastError = &e
	}

	now := time.Now().Unix()
	_, err := c.db.Exec(`
		INSERT INTO agent_status (agent_name, status, version, last_heartbeat, last_error, updated_at)
		VALUES ($1, $2, $3, $4, $5, $4)
		ON CONFLICT (agent_name)
		DO UPDATE SET
			status = EXCLUDED.status,
			version = COALESCE(EXCLUDED.version, agent_status.version),
			last_heartbeat = EXCLUDED.last_heartbeat,
			last_error = EXCLUDED.last_error,
			updated_at = EXCLUDED.updated_at
	`, agentName, status, version, now, lastError)
	if err != nil {
		log.Printf("❌ Error saving agent heartbeat: %v", err)
	}
}

// markAgentOffline flips the agent's health row when its socket closes.
// The last heartbeat is preserved so the panel can show time since contact.
func (c *Client) markAgentOffline() {
	if c.UserRole != "agent" || c.db == nil {
		return
	}

	_, err := c.db.Exec(`
		UPDATE agent_status
		SET status = 'offline',
		    updated_at = EXTRACT(EPOCH FROM NOW())::BIGINT
		WHERE agent_name = $1
	`, c.UserName)
	if err != nil {
		log.Printf("❌ Error marking agent offline: %v", err)
		return
	}

	log.Printf("🔴 Agent %s marked offline", c.UserName)
}
