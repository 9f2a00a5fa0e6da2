package main

import (
	"flag"
	"log"
	"os"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/database"

	"github.com/joho/godotenv"
)

// Standalone migration runner for deploys that apply schema changes
// before rolling the server
func main() {
	seed := flag.Bool("seed", false, "also seed default users and demo bid cards")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := database.Connect(dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if *seed {
		if err := database.SeedUsers(db); err != nil {
			log.Fatalf("User seeding failed: %v", err)
		}
		if err := database.SeedBidCards(db); err != nil {
			log.Fatalf("Bid card seeding failed: %v", err)
		}
	}

	log.Println("Migration completed successfully!")
}
