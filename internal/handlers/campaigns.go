package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/models"
	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/services"
	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/websocket"
	"github.com/Insta-Bids-System/instabids-v2-sub003/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CampaignWithProgress extends Campaign with derived outreach progress
type CampaignWithProgress struct {
	models.Campaign
	ResponseRate   float64 `json:"response_rate"`
	TargetProgress float64 `json:"target_progress"`
}

func campaignProgress(c models.Campaign) CampaignWithProgress {
	target := 0.0
	if c.MaxContractors > 0 {
		target = 100 * float64(c.ContractorsTargeted) / float64(c.MaxContractors)
	}
	return CampaignWithProgress{
		Campaign:       c,
		ResponseRate:   c.ResponseRate(),
		TargetProgress: target,
	}
}

// GetCampaigns returns outreach campaigns with derived progress
// Query params:
//   - status: active, paused, escalated, completed, all (default: all)
//   - bid_card_id: filter to one card's campaigns
func GetCampaigns(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		bidCardID := r.URL.Query().Get("bid_card_id")

		query := `SELECT * FROM campaigns WHERE 1=1`
		args := []interface{}{}

		if status != "" && status != "all" {
			args = append(args, status)
			query += ` AND status = $` + strconv.Itoa(len(args))
		}
		if bidCardID != "" {
			args = append(args, bidCardID)
			query += ` AND bid_card_id = $` + strconv.Itoa(len(args))
		}
		query += ` ORDER BY created_at DESC`

		var campaigns []models.Campaign
		if err := db.Select(&campaigns, query, args...); err != nil {
			log.Printf("❌ [GET-CAMPAIGNS] Database query failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch campaigns")
			return
		}

		withProgress := make([]CampaignWithProgress, 0, len(campaigns))
		for _, c := range campaigns {
			withProgress = append(withProgress, campaignProgress(c))
		}

		utils.Success(w, withProgress)
	}
}

// GetCampaign returns a single campaign with derived progress
func GetCampaign(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var campaign models.Campaign
		if err := db.Get(&campaign, "SELECT * FROM campaigns WHERE id = $1", id); err != nil {
			if isNotFound(err) {
				utils.Error(w, http.StatusNotFound, "Campaign not found")
			} else {
				log.Printf("❌ [GET-CAMPAIGN] Query failed: %v", err)
				utils.Error(w, http.StatusInternalServerError, "Failed to fetch campaign")
			}
			return
		}

		utils.Success(w, campaignProgress(campaign))
	}
}

// CreateCampaign starts an outreach campaign for a bid card and moves the
// card from generated to collecting_bids
// POST /api/campaigns
func CreateCampaign(db *sqlx.DB, wsHub *websocket.Hub, monitor *services.TimelineMonitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.BidCardID == "" || req.Name == "" {
			utils.Error(w, http.StatusBadRequest, "bid_card_id and name are required")
			return
		}

		var card models.BidCard
		if err := db.Get(&card, "SELECT * FROM bid_cards WHERE id = $1", req.BidCardID); err != nil {
			if isNotFound(err) {
				utils.Error(w, http.StatusNotFound, "Bid card not found")
			} else {
				log.Printf("❌ [CREATE-CAMPAIGN] Card lookup failed: %v", err)
				utils.Error(w, http.StatusInternalServerError, "Failed to create campaign")
			}
			return
		}

		now := time.Now().Unix()
		campaign := models.Campaign{
			ID:             uuid.New().String(),
			BidCardID:      req.BidCardID,
			Name:           req.Name,
			Status:         "active",
			MaxContractors: req.MaxContractors,
			Notes:          req.Notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		tx, err := db.Beginx()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to create campaign")
			return
		}
		defer tx.Rollback()

		_, err = tx.NamedExec(`
			INSERT INTO campaigns (id, bid_card_id, name, status, max_contractors, contractors_targeted,
				responses_received, escalation_level, notes, created_at, updated_at)
			VALUES (:id, :bid_card_id, :name, :status, :max_contractors, :contractors_targeted,
				:responses_received, :escalation_level, :notes, :created_at, :updated_at)
		`, campaign)
		if err != nil {
			log.Printf("❌ [CREATE-CAMPAIGN] Insert failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create campaign")
			return
		}

		// A generated card starts collecting bids once its campaign exists
		if card.Status == models.StatusGenerated {
			_, err = tx.Exec(`
				UPDATE bid_cards
				SET status = $1, campaign_id = $2, updated_at = $3
				WHERE id = $4
			`, models.StatusCollectingBids, campaign.ID, now, card.ID)
		} else {
			_, err = tx.Exec(`
				UPDATE bid_cards SET campaign_id = $1, updated_at = $2 WHERE id = $3
			`, campaign.ID, now, card.ID)
		}
		if err != nil {
			log.Printf("❌ [CREATE-CAMPAIGN] Card update failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create campaign")
			return
		}

		if err := tx.Commit(); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to create campaign")
			return
		}

		log.Printf("✅ [CREATE-CAMPAIGN] %s started for card %s", campaign.Name, card.CardNumber)

		wsHub.BroadcastToRole("admin", map[string]interface{}{
			"type": "campaign_created",
			"data": campaignProgress(campaign),
		})
		monitor.Trigger()

		utils.JSON(w, http.StatusCreated, campaignProgress(campaign))
	}
}

// CampaignCheckIn records an orchestrator check-in on a campaign
// POST /api/campaigns/{id}/check-in
func CampaignCheckIn(db *sqlx.DB, wsHub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.CampaignCheckInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var campaign models.Campaign
		if err := db.Get(&campaign, "SELECT * FROM campaigns WHERE id = $1", id); err != nil {
			if isNotFound(err) {
				utils.Error(w, http.StatusNotFound, "Campaign not found")
			} else {
				log.Printf("❌ [CAMPAIGN-CHECK-IN] Query failed: %v", err)
				utils.Error(w, http.StatusInternalServerError, "Failed to record check-in")
			}
			return
		}

		if req.ContractorsTargeted != nil {
			campaign.ContractorsTargeted = *req.ContractorsTargeted
		}
		if req.ResponsesReceived != nil {
			campaign.ResponsesReceived = *req.ResponsesReceived
		}
		if req.EscalationLevel != nil {
			campaign.EscalationLevel = *req.EscalationLevel
			if campaign.EscalationLevel > 0 && campaign.Status == "active" {
				campaign.Status = "escalated"
			}
		}
		if req.NextCheckIn != nil {
			campaign.NextCheckIn = req.NextCheckIn
		}
		if req.Notes != nil {
			campaign.Notes = req.Notes
		}

		now := time.Now().Unix()
		campaign.LastCheckIn = &now
		campaign.UpdatedAt = now

		_, err := db.NamedExec(`
			UPDATE campaigns
			SET status = :status, contractors_targeted = :contractors_targeted,
			    responses_received = :responses_received, escalation_level = :escalation_level,
			    last_check_in = :last_check_in, next_check_in = :next_check_in,
			    notes = :notes, updated_at = :updated_at
			WHERE id = :id
		`, campaign)
		if err != nil {
			log.Printf("❌ [CAMPAIGN-CHECK-IN] Update failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to record check-in")
			return
		}

		log.Printf("✅ [CAMPAIGN-CHECK-IN] %s (escalation level %d)", campaign.Name, campaign.EscalationLevel)

		wsHub.BroadcastToRole("admin", map[string]interface{}{
			"type": "campaign_update",
			"data": campaignProgress(campaign),
		})

		utils.Success(w, campaignProgress(campaign))
	}
}

// UpdateCampaignStatus sets a campaign's status
// PUT /api/campaigns/{id}/status
func UpdateCampaignStatus(db *sqlx.DB, wsHub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		switch req.Status {
		case "active", "paused", "escalated", "completed":
		default:
			utils.Error(w, http.StatusBadRequest, "status must be active, paused, escalated or completed")
			return
		}

		result, err := db.Exec(`
			UPDATE campaigns
			SET status = $1, updated_at = EXTRACT(EPOCH FROM NOW())::BIGINT
			WHERE id = $2
		`, req.Status, id)
		if err != nil {
			log.Printf("❌ [CAMPAIGN-STATUS] Update failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to update campaign")
			return
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			utils.Error(w, http.StatusNotFound, "Campaign not found")
			return
		}

		wsHub.BroadcastToRole("admin", map[string]interface{}{
			"type": "campaign_status",
			"data": map[string]string{"id": id, "status": req.Status},
		})

		utils.Success(w, map[string]string{"id": id, "status": req.Status})
	}
}
