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

// GetContractors returns the contractor roster
// Query params:
//   - tier: 1, 2, 3 (optional)
//   - status: active (default), inactive, all
//   - specialty: filter by specialty (optional)
func GetContractors(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		if status == "" {
			status = "active"
		}

		query := `SELECT * FROM contractors WHERE 1=1`
		args := []interface{}{}

		if status != "all" {
			args = append(args, status)
			query += ` AND status = $` + strconv.Itoa(len(args))
		}
		if tierStr := r.URL.Query().Get("tier"); tierStr != "" {
			if tier, err := strconv.Atoi(tierStr); err == nil {
				args = append(args, tier)
				query += ` AND tier = $` + strconv.Itoa(len(args))
			}
		}
		if specialty := r.URL.Query().Get("specialty"); specialty != "" {
			args = append(args, specialty)
			query += ` AND specialty = $` + strconv.Itoa(len(args))
		}
		query += ` ORDER BY tier ASC, company_name ASC`

		var contractors []models.Contractor
		if err := db.Select(&contractors, query, args...); err != nil {
			log.Printf("❌ [GET-CONTRACTORS] Database query failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to fetch contractors")
			return
		}

		utils.Success(w, contractors)
	}
}

// CreateContractor adds a contractor to the roster
// POST /api/contractors
func CreateContractor(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateContractorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.CompanyName == "" {
			utils.Error(w, http.StatusBadRequest, "company_name is required")
			return
		}
		if req.Tier < models.TierInternal || req.Tier > models.TierDiscovered {
			req.Tier = models.TierDiscovered
		}

		now := time.Now().Unix()
		contractor := models.Contractor{
			ID:          uuid.New().String(),
			CompanyName: req.CompanyName,
			ContactName: req.ContactName,
			Email:       req.Email,
			Phone:       req.Phone,
			Tier:        req.Tier,
			Specialty:   req.Specialty,
			City:        req.City,
			State:       req.State,
			Rating:      req.Rating,
			Status:      "active",
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		_, err := db.NamedExec(`
			INSERT INTO contractors (id, company_name, contact_name, email, phone, tier, specialty,
				city, state, rating, status, created_at, updated_at)
			VALUES (:id, :company_name, :contact_name, :email, :phone, :tier, :specialty,
				:city, :state, :rating, :status, :created_at, :updated_at)
		`, contractor)
		if err != nil {
			log.Printf("❌ [CREATE-CONTRACTOR] Insert failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create contractor")
			return
		}

		log.Printf("✅ [CREATE-CONTRACTOR] Added %s (tier %d)", contractor.CompanyName, contractor.Tier)
		utils.JSON(w, http.StatusCreated, contractor)
	}
}

// UpdateContractor applies a partial update to a contractor
// PATCH /api/contractors/{id}
func UpdateContractor(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.UpdateContractorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var contractor models.Contractor
		if err := db.Get(&contractor, "SELECT * FROM contractors WHERE id = $1", id); err != nil {
			if isNotFound(err) {
				utils.Error(w, http.StatusNotFound, "Contractor not found")
			} else {
				log.Printf("❌ [UPDATE-CONTRACTOR] Query failed: %v", err)
				utils.Error(w, http.StatusInternalServerError, "Failed to fetch contractor")
			}
			return
		}

		if req.CompanyName != nil {
			contractor.CompanyName = *req.CompanyName
		}
		if req.ContactName != nil {
			contractor.ContactName = req.ContactName
		}
		if req.Email != nil {
			contractor.Email = req.Email
		}
		if req.Phone != nil {
			contractor.Phone = req.Phone
		}
		if req.Tier != nil && *req.Tier >= models.TierInternal && *req.Tier <= models.TierDiscovered {
			contractor.Tier = *req.Tier
		}
		if req.Specialty != nil {
			contractor.Specialty = req.Specialty
		}
		if req.Rating != nil {
			contractor.Rating = req.Rating
		}
		if req.Status != nil && (*req.Status == "active" || *req.Status == "inactive") {
			contractor.Status = *req.Status
		}
		contractor.UpdatedAt = time.Now().Unix()

		_, err := db.NamedExec(`
			UPDATE contractors
			SET company_name = :company_name, contact_name = :contact_name, email = :email,
			    phone = :phone, tier = :tier, specialty = :specialty, rating = :rating,
			    status = :status, updated_at = :updated_at
			WHERE id = :id
		`, contractor)
		if err != nil {
			log.Printf("❌ [UPDATE-CONTRACTOR] Update failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to update contractor")
			return
		}

		utils.Success(w, contractor)
	}
}

// DeleteContractor removes a contractor from the roster
// DELETE /api/contractors/{id}
func DeleteContractor(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		result, err := db.Exec("DELETE FROM contractors WHERE id = $1", id)
		if err != nil {
			log.Printf("❌ [DELETE-CONTRACTOR] Delete failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to delete contractor")
			return
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			utils.Error(w, http.StatusNotFound, "Contractor not found")
			return
		}

		utils.Success(w, map[string]string{"message": "Contractor deleted"})
	}
}
