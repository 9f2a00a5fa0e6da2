package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/models"
	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/timeline"
	"github.com/Insta-Bids-System/instabids-v2-sub003/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// GetAlerts derives timeline alerts over the current bid-card snapshot.
// The same derivation runs in the monitor loop every 60 seconds; this
// endpoint exists so the dashboard can pull fresh alerts on page load
// instead of waiting for the next broadcast.
// GET /api/alerts
func GetAlerts(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cards []models.BidCard
		if err := db.Select(&cards, `SELECT * FROM bid_cards ORDER BY created_at ASC`); err != nil {
			log.Printf("❌ [GET-ALERTS] Database query failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch bid cards")
			return
		}

		now := time.Now()
		alerts := timeline.DeriveAlerts(cards, now)

		utils.Success(w, map[string]interface{}{
			"alerts":       alerts,
			"count":        len(alerts),
			"evaluated_at": now.Unix(),
		})
	}
}
