package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/models"
	"github.com/Insta-Bids-System/instabids-v2-sub003/pkg/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// RecordLLMUsage saves one LLM API call made by an agent
// POST /api/llm-costs
func RecordLLMUsage(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RecordLLMUsageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.AgentName == "" || req.Model == "" {
			utils.Error(w, http.StatusBadRequest, "agent_name and model are required")
			return
		}

		usage := models.LLMUsage{
			ID:               uuid.New().String(),
			AgentName:        req.AgentName,
			Model:            req.Model,
			PromptTokens:     req.PromptTokens,
			CompletionTokens: req.CompletionTokens,
			CostCents:        req.CostCents,
			BidCardID:        req.BidCardID,
			CreatedAt:        time.Now().Unix(),
		}

		_, err := db.NamedExec(`
			INSERT INTO llm_usage (id, agent_name, model, prompt_tokens, completion_tokens, cost_cents, bid_card_id, created_at)
			VALUES (:id, :agent_name, :model, :prompt_tokens, :completion_tokens, :cost_cents, :bid_card_id, :created_at)
		`, usage)
		if err != nil {
			log.Printf("❌ [RECORD-LLM-USAGE] Insert failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to record usage")
			return
		}

		utils.JSON(w, http.StatusCreated, usage)
	}
}

// GetLLMCostSummary aggregates LLM spend for the telemetry panel
// Query params:
//   - days: lookback window in days (default: 7)
//   - group: agent (default), model, day
//
// GET /api/llm-costs/summary
func GetLLMCostSummary(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 7
		if daysStr := r.URL.Query().Get("days"); daysStr != "" {
			if d, err := strconv.Atoi(daysStr); err == nil && d > 0 && d <= 90 {
				days = d
			}
		}

		group := r.URL.Query().Get("group")
		if group == "" {
			group = "agent"
		}

		since := time.Now().AddDate(0, 0, -days).Unix()

		type costRow struct {
			Key              string  `json:"key" db:"key"`
			CallCount        int     `json:"call_count" db:"call_count"`
			PromptTokens     int     `json:"prompt_tokens" db:"prompt_tokens"`
			CompletionTokens int     `json:"completion_tokens" db:"completion_tokens"`
			CostCents        float64 `json:"cost_cents" db:"cost_cents"`
		}

		var query string
		switch group {
		case "agent":
			query = `
				SELECT agent_name AS key,
					COUNT(*) AS call_count,
					COALESCE(SUM(prompt_tokens), 0) AS prompt_tokens,
					COALESCE(SUM(completion_tokens), 0) AS completion_tokens,
					COALESCE(SUM(cost_cents), 0) AS cost_cents
				FROM llm_usage
				WHERE created_at >= $1
				GROUP BY agent_name
				ORDER BY cost_cents DESC
			`
		case "model":
			query = `
				SELECT model AS key,
					COUNT(*) AS call_count,
					COALESCE(SUM(prompt_tokens), 0) AS prompt_tokens,
					COALESCE(SUM(completion_tokens), 0) AS completion_tokens,
					COALESCE(SUM(cost_cents), 0) AS cost_cents
				FROM llm_usage
				WHERE created_at >= $1
				GROUP BY model
				ORDER BY cost_cents DESC
			`
		case "day":
			query = `
				SELECT to_char(to_timestamp(created_at), 'YYYY-MM-DD') AS key,
					COUNT(*) AS call_count,
					COALESCE(SUM(prompt_tokens), 0) AS prompt_tokens,
					COALESCE(SUM(completion_tokens), 0) AS completion_tokens,
					COALESCE(SUM(cost_cents), 0) AS cost_cents
				FROM llm_usage
				WHERE created_at >= $1
				GROUP BY 1
				ORDER BY 1 DESC
			`
		default:
			utils.Error(w, http.StatusBadRequest, "group must be agent, model or day")
			return
		}

		var rows []costRow
		if err := db.Select(&rows, query, since); err != nil {
			log.Printf("❌ [LLM-COST-SUMMARY] Query failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch cost summary")
			return
		}

		totalCents := 0.0
		for _, row := range rows {
			totalCents += row.CostCents
		}

		utils.Success(w, map[string]interface{}{
			"group":       group,
			"days":        days,
			"total_cents": totalCents,
			"rows":        rows,
		})
	}
}
