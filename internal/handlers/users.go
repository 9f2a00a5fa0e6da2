package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/models"
	"github.com/Insta-Bids-System/instabids-v2-sub003/pkg/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// CreateUser adds a dashboard admin or agent service account
// POST /api/users
func CreateUser(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Email == "" || req.Password == "" || req.Name == "" {
			utils.Error(w, http.StatusBadRequest, "email, password and name are required")
			return
		}
		if req.Role != "admin" && req.Role != "agent" {
			utils.Error(w, http.StatusBadRequest, "role must be admin or agent")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		now := time.Now().Unix()
		user := models.User{
			ID:        uuid.New().String(),
			Email:     req.Email,
			Password:  string(hashed),
			Name:      req.Name,
			Role:      req.Role,
			CreatedAt: now,
			UpdatedAt: now,
		}

		_, err = db.NamedExec(`
			INSERT INTO users (id, email, password, name, role, created_at, updated_at)
			VALUES (:id, :email, :password, :name, :role, :created_at, :updated_at)
		`, user)
		if err != nil {
			log.Printf("❌ [CREATE-USER] Insert failed: %v", err)
			utils.Error(w, http.StatusInternalServerError, "Failed to create user (email may already exist)")
			return
		}

		log.Printf("✅ [CREATE-USER] Created %s (%s)", user.Email, user.Role)
		utils.JSON(w, http.StatusCreated, user.ToUserResponse())
	}
}
