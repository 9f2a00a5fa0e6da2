package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/models"
	"github.com/Insta-Bids-System/instabids-v2-sub003/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GetConnectionFees returns connection fee records
// Query params:
//   - status: calculated, paid, all (default: all)
//   - contractor_id: filter to one contractor
func GetConnectionFees(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		contractorID := r.URL.Query().Get("contractor_id")

		query := `SELECT * FROM connection_fees WHERE 1=1`
		args := []interface{}{}

		if status != "" && status != "all" {
			args = append(args, status)
			query += ` AND status = $` + strconv.Itoa(len(args))
		}
		if contractorID != "" {
			args = append(args, contractorID)
			query += ` AND contractor_id = $` + strconv.Itoa(len(args))
		}
		query += ` ORDER BY calculated_at DESC`

		var fees []models.ConnectionFee
		if err := db.Select(&fees, query, args...); err != nil {
			log.Printf("❌ [GET-CONNECTION-FEES] Database query failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch connection fees")
			return
		}

		utils.Success(w, fees)
	}
}

// GetConnectionFeeSummary returns aggregate fee totals for the dashboard
// GET /api/connection-fees/summary
func GetConnectionFeeSummary(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var summary models.ConnectionFeeSummary
		err := db.Get(&summary, `
			SELECT
				COUNT(*) AS total_count,
				COUNT(*) FILTER (WHERE status = 'paid') AS paid_count,
				COALESCE(SUM(final_fee_cents), 0) AS total_cents,
				COALESCE(SUM(final_fee_cents) FILTER (WHERE status = 'paid'), 0) AS paid_cents,
				COALESCE(SUM(final_fee_cents) FILTER (WHERE status = 'calculated'), 0) AS outstanding_cents
			FROM connection_fees
		`)
		if err != nil {
			log.Printf("❌ [CONNECTION-FEE-SUMMARY] Query failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch fee summary")
			return
		}

		utils.Success(w, summary)
	}
}

// CreateConnectionFee records the fee charged to a winning contractor
// POST /api/connection-fees
func CreateConnectionFee(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateConnectionFeeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.BidCardID == "" || req.ContractorID == "" {
			utils.Error(w, http.StatusBadRequest, "bid_card_id and contractor_id are required")
			return
		}
		if req.BaseFeeCents <= 0 {
			utils.Error(w, http.StatusBadRequest, "base_fee_cents must be positive")
			return
		}

		now := time.Now().Unix()
		fee := models.ConnectionFee{
			ID:              uuid.New().String(),
			BidCardID:       req.BidCardID,
			ContractorID:    req.ContractorID,
			BaseFeeCents:    req.BaseFeeCents,
			AdjustmentCents: req.AdjustmentCents,
			FinalFeeCents:   req.BaseFeeCents + req.AdjustmentCents,
			Status:          "calculated",
			CalculatedAt:    now,
			Notes:           req.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		_, err := db.NamedExec(`
			INSERT INTO connection_fees (id, bid_card_id, contractor_id, base_fee_cents, adjustment_cents,
				final_fee_cents, status, calculated_at, notes, created_at, updated_at)
			VALUES (:id, :bid_card_id, :contractor_id, :base_fee_cents, :adjustment_cents,
				:final_fee_cents, :status, :calculated_at, :notes, :created_at, :updated_at)
		`, fee)
		if err != nil {
			log.Printf("❌ [CREATE-CONNECTION-FEE] Insert failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create connection fee")
			return
		}

		log.Printf("✅ [CREATE-CONNECTION-FEE] %d cents for contractor %s", fee.FinalFeeCents, fee.ContractorID)
		utils.JSON(w, http.StatusCreated, fee)
	}
}

// MarkConnectionFeePaid flips a calculated fee to paid
// PUT /api/connection-fees/{id}/mark-paid
func MarkConnectionFeePaid(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		now := time.Now().Unix()
		result, err := db.Exec(`
			UPDATE connection_fees
			SET status = 'paid', paid_at = $1, updated_at = $1
			WHERE id = $2 AND status = 'calculated'
		`, now, id)
		if err != nil {
			log.Printf("❌ [MARK-FEE-PAID] Update failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to mark fee paid")
			return
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			utils.Error(w, http.StatusNotFound, "Fee not found or already paid")
			return
		}

		utils.Success(w, map[string]interface{}{
			"id":      id,
			"status":  "paid",
			"paid_at": now,
		})
	}
}
