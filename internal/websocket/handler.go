package websocket

import (
	"log"
	"net/http"
	"os"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/jmoiron/sqlx"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Dashboard and agents connect from separate origins
		return true
	},
}

// HandleWebSocket upgrades the HTTP connection to a WebSocket. Browsers
// cannot set an Authorization header on the upgrade request, so the JWT
// is passed as a ?token= query parameter instead.
func HandleWebSocket(hub *Hub, db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		jwtSecret := os.Getenv("APP_JWT_SECRET")
		if jwtSecret == "" {
			log.Println("❌ JWT secret not configured")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			log.Printf("❌ Invalid token on WebSocket upgrade: %v", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		userClaims := middleware.ClaimsFromMap(claims)
		if userClaims.UserID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("❌ WebSocket upgrade failed: %v", err)
			return
		}

		if hub.IsUserConnected(userClaims.UserID) {
			log.Printf("⚠️ [WEBSOCKET] %s reconnected, replacing existing connection", userClaims.UserID)
		}

		client := NewClient(userClaims.UserID, userClaims.Name, userClaims.Role, conn, hub, db)
		hub.register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}
