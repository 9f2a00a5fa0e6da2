package timeline

import (
	"testing"
	"time"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/models"
)

func strPtr(s string) *string { return &s }

func card(id, urgency string, createdAt time.Time, received, needed int, status string) models.BidCard {
	c := models.BidCard{
		ID:                    id,
		CardNumber:            id,
		ContractorCountNeeded: needed,
		BidsReceived:          received,
		Status:                status,
		CreatedAt:             createdAt.Unix(),
	}
	if urgency != "" {
		c.UrgencyLevel = strPtr(urgency)
	}
	return c
}

func TestDeriveAlertsOverdueCard(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// Urgent card (12h budget) created 13 hours ago with zero bids: both
	// the overdue rule and the no-bids rule match, only overdue may fire
	overdue := card("BC-1", "urgent", now.Add(-13*time.Hour), 0, 5, models.StatusCollectingBids)

	alerts := DeriveAlerts([]models.BidCard{overdue}, now)
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}
	if alerts[0].Kind != AlertOverdue {
		t.Errorf("Kind = %q, want %q", alerts[0].Kind, AlertOverdue)
	}
	if alerts[0].Severity != SeverityCritical {
		t.Errorf("Severity = %q, want %q", alerts[0].Severity, SeverityCritical)
	}
	if alerts[0].RecommendedAction != "Extend deadline or contact contractors directly" {
		t.Errorf("unexpected action %q", alerts[0].RecommendedAction)
	}
}

func TestDeriveAlertsFirstMatchWins(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// Generated card past its deadline satisfies overdue and idle rules
	both := card("BC-2", "emergency", now.Add(-2*time.Hour), 0, 3, models.StatusGenerated)

	alerts := DeriveAlerts([]models.BidCard{both}, now)
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want exactly 1", len(alerts))
	}
	if alerts[0].Kind != AlertOverdue {
		t.Errorf("Kind = %q, want overdue to win over idle_generated", alerts[0].Kind)
	}
}

func TestDeriveAlertsNoBidsNearDeadline(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// 96% of the urgent budget used, still collecting, zero bids
	noBids := card("BC-3", "urgent", now.Add(-(11*time.Hour + 32*time.Minute)), 0, 4, models.StatusCollectingBids)

	alerts := DeriveAlerts([]models.BidCard{noBids}, now)
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}
	if alerts[0].Kind != AlertUrgentNoBids {
		t.Errorf("Kind = %q, want %q", alerts[0].Kind, AlertUrgentNoBids)
	}
	if alerts[0].Severity != SeverityHigh {
		t.Errorf("Severity = %q, want %q", alerts[0].Severity, SeverityHigh)
	}
}

func TestDeriveAlertsBehindSchedule(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// 80% of the week budget used with 2 of 5 bids: behind, past the 75% gate
	behind := card("BC-4", "week", now.Add(-time.Duration(0.8*72*float64(time.Hour))), 2, 5, models.StatusCollectingBids)

	alerts := DeriveAlerts([]models.BidCard{behind}, now)
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}
	if alerts[0].Kind != AlertBehindSchedule {
		t.Errorf("Kind = %q, want %q", alerts[0].Kind, AlertBehindSchedule)
	}
	if alerts[0].RecommendedAction != "Escalate outreach or adjust timeline" {
		t.Errorf("unexpected action %q", alerts[0].RecommendedAction)
	}
}

func TestDeriveAlertsIdleGenerated(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// Generated card with 15% of the week budget gone and no campaign
	idle := card("BC-5", "week", now.Add(-time.Duration(0.15*72*float64(time.Hour))), 0, 3, models.StatusGenerated)

	alerts := DeriveAlerts([]models.BidCard{idle}, now)
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}
	if alerts[0].Kind != AlertIdleGenerated {
		t.Errorf("Kind = %q, want %q", alerts[0].Kind, AlertIdleGenerated)
	}
	if alerts[0].Severity != SeverityMedium {
		t.Errorf("Severity = %q, want %q", alerts[0].Severity, SeverityMedium)
	}
}

func TestDeriveAlertsQuietCards(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	cards := []models.BidCard{
		// Completed card past its deadline: terminal, no alert
		card("BC-6", "urgent", now.Add(-20*time.Hour), 4, 4, models.StatusBidsComplete),
		// Fresh card on track
		card("BC-7", "week", now.Add(-1*time.Hour), 1, 5, models.StatusCollectingBids),
		// Card with no usable creation timestamp is skipped
		{ID: "BC-8", Status: models.StatusCollectingBids, ContractorCountNeeded: 3},
	}

	alerts := DeriveAlerts(cards, now)
	if len(alerts) != 0 {
		t.Fatalf("got %d alerts, want none: %+v", len(alerts), alerts)
	}
}

func TestDeriveAlertsSeverityOrdering(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	cards := []models.BidCard{
		// medium: idle generated card
		card("BC-10", "week", now.Add(-20*time.Hour), 0, 3, models.StatusGenerated),
		// high: behind schedule at 80% elapsed
		card("BC-11", "week", now.Add(-time.Duration(0.8*72*float64(time.Hour))), 2, 5, models.StatusCollectingBids),
		// critical: overdue
		card("BC-12", "emergency", now.Add(-3*time.Hour), 0, 3, models.StatusCollectingBids),
		// second medium, after the first in input order
		card("BC-13", "week", now.Add(-21*time.Hour), 0, 3, models.StatusGenerated),
	}

	alerts := DeriveAlerts(cards, now)
	if len(alerts) != 4 {
		t.Fatalf("got %d alerts, want 4", len(alerts))
	}

	wantOrder := []string{"BC-12", "BC-11", "BC-10", "BC-13"}
	for i, want := range wantOrder {
		if alerts[i].BidCardID != want {
			t.Errorf("alerts[%d] = %s, want %s (severity %s)", i, alerts[i].BidCardID, want, alerts[i].Severity)
		}
	}
}
