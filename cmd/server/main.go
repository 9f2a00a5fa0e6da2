package main

import (
	"log"
	"net/http"
	"os"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/database"
	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/handlers"
	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/middleware"
	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/services"
	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚀 INSTABIDS ADMIN BACKEND STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("❌ DATABASE_URL environment variable is required")
	}

	if os.Getenv("APP_JWT_SECRET") == "" {
		log.Fatal("❌ APP_JWT_SECRET environment variable is required")
	}

	// Connect to database
	db, err := database.Connect(dbURL)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Database migrations failed: %v", err)
	}

	// Seed database
	if err := database.SeedUsers(db); err != nil {
		log.Fatalf("❌ User seeding failed: %v", err)
	}
	if err := database.SeedBidCards(db); err != nil {
		log.Fatalf("❌ Bid card seeding failed: %v", err)
	}

	// Initialize WebSocket hub
	wsHub := websocket.NewHub()

	// Timeline monitor: re-derives alerts every 60s and after every pushed
	// bid-card change, broadcasting to connected admins
	monitor := services.NewTimelineMonitor(db, wsHub)
	wsHub.OnBidCardChange(monitor.Trigger)

	go wsHub.Run()
	go monitor.Run()
	log.Println("✅ WebSocket hub and timeline monitor started")

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Authentication routes (no auth required)
	r.Post("/api/auth/login", handlers.Login(db))

	// WebSocket endpoint (authentication handled in handler via query param)
	r.Get("/ws", websocket.HandleWebSocket(wsHub, db))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Diagnostic logging endpoint (no auth required for easier debugging)
		r.Post("/logs/diagnostic", handlers.ReceiveDiagnosticLog())

		// Authenticated routes (admins and agents)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			r.Get("/auth/status", handlers.GetAuthStatus(db))

			// Bid cards (register /lifecycle before /{id} - exact match first)
			r.Get("/bid-cards", handlers.GetBidCards(db))
			r.Get("/bid-cards/lifecycle", handlers.GetBidCardLifecycle(db))
			r.Get("/bid-cards/{id}", handlers.GetBidCard(db))
			r.Post("/bid-cards", handlers.CreateBidCard(db, wsHub))
			r.Patch("/bid-cards/{id}", handlers.UpdateBidCard(db, wsHub, monitor))

			// Timeline alerts
			r.Get("/alerts", handlers.GetAlerts(db))

			// Campaigns
			r.Get("/campaigns", handlers.GetCampaigns(db))
			r.Get("/campaigns/{id}", handlers.GetCampaign(db))
			r.Post("/campaigns", handlers.CreateCampaign(db, wsHub, monitor))
			r.Post("/campaigns/{id}/check-in", handlers.CampaignCheckIn(db, wsHub))

			// Contractors
			r.Get("/contractors", handlers.GetContractors(db))

			// LLM cost telemetry (agents record, admins read)
			r.Post("/llm-costs", handlers.RecordLLMUsage(db))
			r.Get("/llm-costs/summary", handlers.GetLLMCostSummary(db))

			// Agent health panel
			r.Get("/agents/health", handlers.GetAgentHealth(db))
		})

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(middleware.RequireRole("admin"))

			r.Delete("/bid-cards/{id}", handlers.DeleteBidCard(db, wsHub))
			r.Put("/campaigns/{id}/status", handlers.UpdateCampaignStatus(db, wsHub))

			// Contractor roster management
			r.Post("/contractors", handlers.CreateContractor(db))
			r.Patch("/contractors/{id}", handlers.UpdateContractor(db))
			r.Delete("/contractors/{id}", handlers.DeleteContractor(db))

			// Connection fee accounting
			r.Get("/connection-fees", handlers.GetConnectionFees(db))
			r.Get("/connection-fees/summary", handlers.GetConnectionFeeSummary(db))
			r.Post("/connection-fees", handlers.CreateConnectionFee(db))
			r.Put("/connection-fees/{id}/mark-paid", handlers.MarkConnectionFeePaid(db))

			// User management
			r.Post("/users", handlers.CreateUser(db))
		})
	})

	// Get port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("⚠️  PORT not set, using default: %s", port)
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("✅ ALL INITIALIZATION COMPLETE")
	log.Printf("🚀 Server starting on http://localhost:%s", port)
	log.Println("═══════════════════════════════════════════════════════════════════")

	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
