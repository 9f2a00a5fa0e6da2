package services

import (
	"log"
	"time"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/models"
	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/timeline"

	"github.com/jmoiron/sqlx"
)

// Broadcaster is the slice of the WebSocket hub the monitor needs
type Broadcaster interface {
	BroadcastToRole(role string, data interface{})
}

// TimelineMonitor re-derives bid-card alerts on a fixed cadence and after
// every pushed bid-card change, and broadcasts the result to connected
// admins. Each evaluation is a pure function of the current snapshot and
// clock reading; nothing survives between ticks, so a redundant run
// triggered by both the ticker and a change simply overwrites the last
// broadcast.
type TimelineMonitor struct {
	db       *sqlx.DB
	hub      Broadcaster
	interval time.Duration
	trigger  chan struct{}
}

// NewTimelineMonitor creates a monitor with the standard 60s cadence
func NewTimelineMonitor(db *sqlx.DB, hub Broadcaster) *TimelineMonitor {
	return &TimelineMonitor{
		db:       db,
		hub:      hub,
		interval: 60 * time.Second,
		trigger:  make(chan struct{}, 1),
	}
}

// Run starts the evaluation loop. Call in a goroutine.
func (m *TimelineMonitor) Run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// First evaluation right away so the dashboard is not empty for a minute
	m.Evaluate(time.Now())

	for {
		select {
		case <-ticker.C:
			m.Evaluate(time.Now())
		case <-m.trigger:
			m.Evaluate(time.Now())
		}
	}
}

// Trigger nudges the monitor to re-evaluate outside the fixed cadence.
// Non-blocking; coalesces with a pending nudge.
func (m *TimelineMonitor) Trigger() {
	select {
	case m.trigger <- struct{}{}:
	default:
	}
}

// Evaluate loads the bid-card snapshot, derives alerts at instant now and
// broadcasts them to all admins
func (m *TimelineMonitor) Evaluate(now time.Time) {
	var cards []models.BidCard
	err := m.db.Select(&cards, `SELECT * FROM bid_cards ORDER BY created_at ASC`)
	if err != nil {
		log.Printf("❌ [TIMELINE-MONITOR] Failed to load bid cards: %v", err)
		return
	}

	alerts := timeline.DeriveAlerts(cards, now)

	m.hub.BroadcastToRole("admin", map[string]interface{}{
		"type": "timeline_alerts",
		"data": map[string]interface{}{
			"alerts":       alerts,
			"count":        len(alerts),
			"evaluated_at": now.Unix(),
		},
	})

	if len(alerts) > 0 {
		log.Printf("🔔 [TIMELINE-MONITOR] %d alerts across %d cards", len(alerts), len(cards))
	}
}
