package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/models"
	"github.com/Insta-Bids-System/instabids-v2-sub003/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// An agent silent for this long is flagged stale even if it never sent a
// clean shutdown
const staleAfter = 5 * time.Minute

// GetAgentHealth returns the health panel rows: every known agent with
// its last reported status plus a derived staleness flag
// GET /api/agents/health
func GetAgentHealth(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var agents []models.AgentStatus
		if err := db.Select(&agents, `SELECT * FROM agent_status ORDER BY agent_name ASC`); err != nil {
			log.Printf("❌ [AGENT-HEALTH] Database query failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch agent status")
			return
		}

		now := time.Now().Unix()
		health := make([]models.AgentHealthResponse, 0, len(agents))
		staleCount := 0

		for _, agent := range agents {
			sinceContact := now - agent.LastHeartbeat
			stale := agent.LastHeartbeat == 0 || sinceContact > int64(staleAfter.Seconds())
			if stale {
				staleCount++
			}
			health = append(health, models.AgentHealthResponse{
				AgentStatus:         agent,
				IsStale:             stale,
				SecondsSinceContact: sinceContact,
			})
		}

		utils.Success(w, map[string]interface{}{
			"agents":      health,
			"stale_count": staleCount,
			"checked_at":  now,
		})
	}
}
