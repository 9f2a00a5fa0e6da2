package database

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// SeedUsers creates the default admin account and agent service accounts
// if the users table is empty
func SeedUsers(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Users already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding default users...")

	adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	agentPassword, err := bcrypt.GenerateFromPassword([]byte("agent123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	users := []struct {
		email, password, name, role string
	}{
		{"admin@instabids.com", string(adminPassword), "Dashboard Admin", "admin"},
		{"ops@instabids.com", string(adminPassword), "Ops Manager", "admin"},
		{"orchestrator@instabids.com", string(agentPassword), "Campaign Orchestrator", "agent"},
	}

	for _, u := range users {
		_, err := db.Exec(`
			INSERT INTO users (id, email, password, name, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
		`, uuid.New().String(), u.email, u.password, u.name, u.role, now)
		if err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d users", len(users))
	return nil
}

// SeedBidCards loads a handful of demo bid cards and contractors so a
// fresh install renders a working dashboard
func SeedBidCards(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM bid_cards"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Bid cards already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding demo bid cards...")

	now := time.Now().Unix()
	cards := []map[string]interface{}{
		{"card_number": "BC-1001", "homeowner_name": "Maria Lopez", "project_type": "kitchen_remodel", "urgency_level": "week", "contractor_count_needed": 5, "bids_received": 2, "status": "collecting_bids", "city": "Austin", "zip": "78701", "created_at": now - 24*3600},
		{"card_number": "BC-1002", "homeowner_name": "James Carter", "project_type": "roof_repair", "urgency_level": "emergency", "contractor_count_needed": 3, "bids_received": 0, "status": "collecting_bids", "city": "Austin", "zip": "78704", "created_at": now - 30*60},
		{"card_number": "BC-1003", "homeowner_name": "Priya Shah", "project_type": "bathroom_remodel", "urgency_level": "month", "contractor_count_needed": 4, "bids_received": 4, "status": "bids_complete", "city": "Round Rock", "zip": "78664", "created_at": now - 96*3600},
		{"card_number": "BC-1004", "homeowner_name": "Dan Whitfield", "project_type": "fence_installation", "urgency_level": "flexible", "contractor_count_needed": 3, "bids_received": 0, "status": "generated", "city": "Pflugerville", "zip": "78660", "created_at": now - 40*3600},
		{"card_number": "BC-1005", "homeowner_name": "Alice Nguyen", "project_type": "hvac_replacement", "urgency_level": "urgent", "contractor_count_needed": 4, "bids_received": 1, "status": "collecting_bids", "city": "Austin", "zip": "78745", "created_at": now - 10*3600},
	}

	for _, c := range cards {
		_, err := db.Exec(`
			INSERT INTO bid_cards (id, card_number, homeowner_name, project_type, city, zip, urgency_level,
				contractor_count_needed, bids_received, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		`, uuid.New().String(), c["card_number"], c["homeowner_name"], c["project_type"], c["city"], c["zip"],
			c["urgency_level"], c["contractor_count_needed"], c["bids_received"], c["status"], c["created_at"])
		if err != nil {
			return err
		}
	}

	// Advance the number sequence past the seeded labels
	if _, err := db.Exec(`SELECT setval('bid_card_numbers', 1005)`); err != nil {
		return err
	}

	contractors := []map[string]interface{}{
		{"company_name": "Hill Country Builders", "contact_name": "Rob Mercer", "tier": 1, "specialty": "kitchen_remodel", "city": "Austin", "state": "TX", "rating": 4.8},
		{"company_name": "Lone Star Roofing", "contact_name": "Kim Tran", "tier": 2, "specialty": "roof_repair", "city": "Austin", "state": "TX", "rating": 4.5},
		{"company_name": "Bluebonnet HVAC", "contact_name": "Sam Ellis", "tier": 3, "specialty": "hvac_replacement", "city": "Round Rock", "state": "TX", "rating": 4.1},
	}

	for _, c := range contractors {
		_, err := db.Exec(`
			INSERT INTO contractors (id, company_name, contact_name, tier, specialty, city, state, rating, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'active', $9, $9)
		`, uuid.New().String(), c["company_name"], c["contact_name"], c["tier"], c["specialty"], c["city"], c["state"], c["rating"], now)
		if err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d bid cards and %d contractors", len(cards), len(contractors))
	return nil
}
