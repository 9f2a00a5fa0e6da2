package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/models"
	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/services"
	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/timeline"
	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/websocket"
	"github.com/Insta-Bids-System/instabids-v2-sub003/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TimelineBlock is the derived deadline state attached to each card in
// API responses. Recomputed on every request, never stored.
type TimelineBlock struct {
	Deadline           int64                `json:"deadline"`
	RemainingText      string               `json:"remaining_text"`
	IsOverdue          bool                 `json:"is_overdue"`
	PercentageElapsed  float64              `json:"percentage_elapsed"`
	ProgressPercentage float64              `json:"progress_percentage"`
	Performance        timeline.Performance `json:"performance"`
	BehindSchedule     bool                 `json:"behind_schedule"`
}

// BidCardWithTimeline extends BidCard with its computed timeline block
type BidCardWithTimeline struct {
	models.BidCard
	Timeline TimelineBlock `json:"timeline"`
}

// buildTimeline computes the full timeline block for one card at instant now
func buildTimeline(card models.BidCard, now time.Time) TimelineBlock {
	createdAt := card.CreatedTime()
	deadline := timeline.ResolveDeadline(createdAt, card.Urgency())
	countdown := timeline.EvaluateCountdown(createdAt, deadline, now)

	return TimelineBlock{
		Deadline:           deadline.Unix(),
		RemainingText:      countdown.RemainingText,
		IsOverdue:          countdown.IsOverdue,
		PercentageElapsed:  countdown.PercentageElapsed,
		ProgressPercentage: timeline.ProgressPercentage(card.BidsReceived, card.ContractorCountNeeded),
		Performance: timeline.ClassifyPerformance(card.BidsReceived, card.ContractorCountNeeded,
			countdown.PercentageElapsed, card.Status, countdown.IsOverdue),
		BehindSchedule: timeline.IsBehindSchedule(card.BidsReceived, card.ContractorCountNeeded,
			countdown.PercentageElapsed, card.Status),
	}
}

// GetBidCards returns bid cards with computed timeline blocks
// Query params:
//   - status: generated, collecting_bids, active, bids_complete, expired, all (default: all)
//   - urgency: emergency, urgent, week, month, flexible
//   - sort: pressure (default), created, progress
//   - limit: max results (default: 100)
func GetBidCards(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		if status == "" {
			status = "all"
		}
		urgency := r.URL.Query().Get("urgency")

		sortBy := r.URL.Query().Get("sort")
		if sortBy == "" {
			sortBy = "pressure"
		}

		limit := 100
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
				limit = l
			}
		}

		query := `SELECT * FROM bid_cards WHERE 1=1`
		args := []interface{}{}

		if status != "all" {
			args = append(args, status)
			query += ` AND status = $` + strconv.Itoa(len(args))
		}
		if urgency != "" {
			args = append(args, urgency)
			query += ` AND urgency_level = $` + strconv.Itoa(len(args))
		}
		query += ` ORDER BY created_at DESC`

		var cards []models.BidCard
		if err := db.Select(&cards, query, args...); err != nil {
			log.Printf("❌ [GET-BID-CARDS] Database query failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch bid cards")
			return
		}

		now := time.Now()
		withTimeline := make([]BidCardWithTimeline, 0, len(cards))
		for _, card := range cards {
			withTimeline = append(withTimeline, BidCardWithTimeline{
				BidCard:  card,
				Timeline: buildTimeline(card, now),
			})
		}

		switch sortBy {
		case "pressure":
			// Most time pressure first: overdue cards, then highest elapsed percentage
			sort.SliceStable(withTimeline, func(i, j int) bool {
				ti, tj := withTimeline[i].Timeline, withTimeline[j].Timeline
				if ti.IsOverdue != tj.IsOverdue {
					return ti.IsOverdue
				}
				return ti.PercentageElapsed > tj.PercentageElapsed
			})
		case "progress":
			sort.SliceStable(withTimeline, func(i, j int) bool {
				return withTimeline[i].Timeline.ProgressPercentage < withTimeline[j].Timeline.ProgressPercentage
			})
		case "created":
			// Already newest-first from the query
		}

		if limit > 0 && len(withTimeline) > limit {
			withTimeline = withTimeline[:limit]
		}

		log.Printf("✅ [GET-BID-CARDS] Returning %d cards (status=%s, sort=%s)", len(withTimeline), status, sortBy)
		utils.Success(w, withTimeline)
	}
}

// GetBidCard returns a single bid card with its timeline block
func GetBidCard(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var card models.BidCard
		if err := db.Get(&card, "SELECT * FROM bid_cards WHERE id = $1", id); err != nil {
			if isNotFound(err) {
				utils.Error(w, http.StatusNotFound, "Bid card not found")
			} else {
				log.Printf("❌ [GET-BID-CARD] Query failed: %v", err)
				utils.Error(w, http.StatusInternalServerError, "Failed to fetch bid card")
			}
			return
		}

		utils.Success(w, BidCardWithTimeline{
			BidCard:  card,
			Timeline: buildTimeline(card, time.Now()),
		})
	}
}

// CreateBidCard creates a new bid card
// POST /api/bid-cards
func CreateBidCard(db *sqlx.DB, wsHub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateBidCardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.HomeownerName == "" || req.ProjectType == "" {
			utils.Error(w, http.StatusBadRequest, "homeowner_name and project_type are required")
			return
		}
		if req.ContractorCountNeeded < 1 {
			req.ContractorCountNeeded = 1
		}

		cardNumber, err := nextCardNumber(db)
		if err != nil {
			log.Printf("❌ [CREATE-BID-CARD] Card number allocation failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create bid card")
			return
		}

		now := time.Now().Unix()
		card := models.BidCard{
			ID:                    uuid.New().String(),
			CardNumber:            cardNumber,
			HomeownerName:         req.HomeownerName,
			ProjectType:           req.ProjectType,
			Description:           req.Description,
			City:                  req.City,
			Zip:                   req.Zip,
			UrgencyLevel:          req.UrgencyLevel,
			ContractorCountNeeded: req.ContractorCountNeeded,
			BudgetMin:             req.BudgetMin,
			BudgetMax:             req.BudgetMax,
			Status:                models.StatusGenerated,
			CreatedAt:             now,
			UpdatedAt:             now,
		}

		_, err = db.NamedExec(`
			INSERT INTO bid_cards (id, card_number, homeowner_name, project_type, description, city, zip,
				urgency_level, contractor_count_needed, bids_received, budget_min, budget_max, status,
				created_at, updated_at)
			VALUES (:id, :card_number, :homeowner_name, :project_type, :description, :city, :zip,
				:urgency_level, :contractor_count_needed, :bids_received, :budget_min, :budget_max, :status,
				:created_at, :updated_at)
		`, card)
		if err != nil {
			log.Printf("❌ [CREATE-BID-CARD] Insert failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create bid card")
			return
		}

		log.Printf("✅ [CREATE-BID-CARD] Created %s for %s", card.CardNumber, card.HomeownerName)

		wsHub.BroadcastToRole("admin", map[string]interface{}{
			"type": "bid_card_created",
			"data": card,
		})

		utils.JSON(w, http.StatusCreated, BidCardWithTimeline{
			BidCard:  card,
			Timeline: buildTimeline(card, time.Now()),
		})
	}
}

// UpdateBidCard applies a partial update to a bid card. The body is
// normalized first, so legacy agent field names are accepted.
// PATCH /api/bid-cards/{id}
func UpdateBidCard(db *sqlx.DB, wsHub *websocket.Hub, monitor *services.TimelineMonitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		update := models.NormalizeBidCardPayload(payload)

		var card models.BidCard
		if err := db.Get(&card, "SELECT * FROM bid_cards WHERE id = $1", id); err != nil {
			if isNotFound(err) {
				utils.Error(w, http.StatusNotFound, "Bid card not found")
			} else {
				log.Printf("❌ [UPDATE-BID-CARD] Query failed: %v", err)
				utils.Error(w, http.StatusInternalServerError, "Failed to fetch bid card")
			}
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
		_, err := db.Exec(`
			UPDATE bid_cards
			SET urgency_level = $1,
			    contractor_count_needed = $2,
			    bids_received = $3,
			    status = $4,
			    updated_at = $5
			WHERE id = $6
		`, card.UrgencyLevel, card.ContractorCountNeeded, card.BidsReceived, card.Status, now, id)
		if err != nil {
			log.Printf("❌ [UPDATE-BID-CARD] Update failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to update bid card")
			return
		}
		card.UpdatedAt = now

		log.Printf("✅ [UPDATE-BID-CARD] Updated %s", card.CardNumber)

		wsHub.BroadcastToRole("admin", map[string]interface{}{
			"type": "bid_card_update",
			"data": card,
		})
		monitor.Trigger()

		utils.Success(w, BidCardWithTimeline{
			BidCard:  card,
			Timeline: buildTimeline(card, time.Now()),
		})
	}
}

// DeleteBidCard removes a bid card and everything attached to it
// DELETE /api/bid-cards/{id}
func DeleteBidCard(db *sqlx.DB, wsHub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		result, err := db.Exec("DELETE FROM bid_cards WHERE id = $1", id)
		if err != nil {
			log.Printf("❌ [DELETE-BID-CARD] Delete failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to delete bid card")
			return
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			utils.Error(w, http.StatusNotFound, "Bid card not found")
			return
		}

		wsHub.BroadcastToRole("admin", map[string]interface{}{
			"type": "bid_card_deleted",
			"data": map[string]string{"id": id},
		})

		utils.Success(w, map[string]string{"message": "Bid card deleted"})
	}
}

// GetBidCardLifecycle returns card counts per lifecycle status
// GET /api/bid-cards/lifecycle
func GetBidCardLifecycle(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type statusCount struct {
			Status string `json:"status" db:"status"`
			Count  int    `json:"count" db:"count"`
		}

		var counts []statusCount
		err := db.Select(&counts, `
			SELECT status, COUNT(*) AS count
			FROM bid_cards
			GROUP BY status
			ORDER BY count DESC
		`)
		if err != nil {
			log.Printf("❌ [BID-CARD-LIFECYCLE] Query failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch lifecycle counts")
			return
		}

		total := 0
		for _, c := range counts {
			total += c.Count
		}

		utils.Success(w, map[string]interface{}{
			"total":     total,
			"by_status": counts,
		})
	}
}

// nextCardNumber produces the next BC-#### label from the database
// sequence, so concurrent creates never collide. Display-only; the UUID
// is the real key.
func nextCardNumber(db *sqlx.DB) (string, error) {
	var n int64
	if err := db.Get(&n, "SELECT nextval('bid_card_numbers')"); err != nil {
		return "", err
	}
	return formatCardNumber(n), nil
}

func formatCardNumber(n int64) string {
	return "BC-" + strconv.FormatInt(n, 10)
}
