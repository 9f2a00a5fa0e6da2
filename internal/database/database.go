package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Connect(dbURL string) (*sqlx.DB, error) {
	log.Println("🔌 Connecting to Postgres...")

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("✅ Database connection established")
	return db, nil
}

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent so the server can run them on every boot.
func Migrate(db *sqlx.DB) error {
	migrations := []string{
		// Create users table (dashboard admins + agent service accounts)
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('admin', 'agent')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create bid_cards table
		`CREATE TABLE IF NOT EXISTS bid_cards (
			id TEXT PRIMARY KEY,
			card_number TEXT NOT NULL UNIQUE,
			homeowner_name TEXT NOT NULL,
			project_type TEXT NOT NULL,
			description TEXT,
			city TEXT,
			zip TEXT,
			urgency_level TEXT CHECK(urgency_level IN ('emergency', 'urgent', 'week', 'month', 'flexible')),
			contractor_count_needed INT NOT NULL DEFAULT 1,
			bids_received INT NOT NULL DEFAULT 0,
			budget_min INT,
			budget_max INT,
			status TEXT NOT NULL DEFAULT 'generated' CHECK(status IN ('generated', 'collecting_bids', 'active', 'bids_complete', 'expired')),
			campaign_id TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create contractors table
		`CREATE TABLE IF NOT EXISTS contractors (
			id TEXT PRIMARY KEY,
			company_name TEXT NOT NULL,
			contact_name TEXT,
			email TEXT,
			phone TEXT,
			tier INT NOT NULL DEFAULT 3 CHECK(tier IN (1, 2, 3)),
			specialty TEXT,
			city TEXT,
			state TEXT,
			rating DOUBLE PRECISION,
			status TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active', 'inactive')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create campaigns table
		`CREATE TABLE IF NOT EXISTS campaigns (
			id TEXT PRIMARY KEY,
			bid_card_id TEXT NOT NULL,
			name TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active', 'paused', 'escalated', 'completed')),
			max_contractors INT NOT NULL DEFAULT 0,
			contractors_targeted INT NOT NULL DEFAULT 0,
			responses_received INT NOT NULL DEFAULT 0,
			escalation_level INT NOT NULL DEFAULT 0,
			last_check_in BIGINT,
			next_check_in BIGINT,
			notes TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (bid_card_id) REFERENCES bid_cards(id) ON DELETE CASCADE
		)`,

		// Create connection_fees table
		`CREATE TABLE IF NOT EXISTS connection_fees (
			id TEXT PRIMARY KEY,
			bid_card_id TEXT NOT NULL,
			contractor_id TEXT NOT NULL,
			base_fee_cents INT NOT NULL,
			adjustment_cents INT NOT NULL DEFAULT 0,
			final_fee_cents INT NOT NULL,
			status TEXT NOT NULL DEFAULT 'calculated' CHECK(status IN ('calculated', 'paid')),
			calculated_at BIGINT NOT NULL,
			paid_at BIGINT,
			notes TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (bid_card_id) REFERENCES bid_cards(id) ON DELETE CASCADE,
			FOREIGN KEY (contractor_id) REFERENCES contractors(id) ON DELETE CASCADE
		)`,

		// Create agent_status table
		`CREATE TABLE IF NOT EXISTS agent_status (
			agent_name TEXT PRIMARY KEY,
			status TEXT NOT NULL DEFAULT 'offline' CHECK(status IN ('online', 'offline', 'degraded')),
			version TEXT,
			last_heartbeat BIGINT NOT NULL DEFAULT 0,
			last_error TEXT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create llm_usage table
		`CREATE TABLE IF NOT EXISTS llm_usage (
			id TEXT PRIMARY KEY,
			agent_name TEXT NOT NULL,
			model TEXT NOT NULL,
			prompt_tokens INT NOT NULL DEFAULT 0,
			completion_tokens INT NOT NULL DEFAULT 0,
			cost_cents DOUBLE PRECISION NOT NULL DEFAULT 0,
			bid_card_id TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// BC-#### labels come from a sequence so concurrent creates never
		// mint the same number
		`CREATE SEQUENCE IF NOT EXISTS bid_card_numbers START 1001`,

		`CREATE INDEX IF NOT EXISTS idx_bid_cards_status ON bid_cards(status)`,
		`CREATE INDEX IF NOT EXISTS idx_campaigns_bid_card ON campaigns(bid_card_id)`,
		`CREATE INDEX IF NOT EXISTS idx_llm_usage_agent ON llm_usage(agent_name)`,
		`CREATE INDEX IF NOT EXISTS idx_llm_usage_created ON llm_usage(created_at)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Printf("✅ Ran %d migration statements", len(migrations))
	return nil
}
