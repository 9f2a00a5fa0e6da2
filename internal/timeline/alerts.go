package timeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/models"
)

type AlertKind string

const (
	AlertOverdue        AlertKind = "overdue"
	AlertUrgentNoBids   AlertKind = "urgent_no_bids"
	AlertBehindSchedule AlertKind = "behind_schedule"
	AlertIdleGenerated  AlertKind = "idle_generated"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)

// Alert is an actionable finding about one bid card at one evaluation
// instant. Alerts are never persisted; every tick derives them fresh.
type Alert struct {
	BidCardID         string    `json:"bid_card_id"`
	Kind              AlertKind `json:"kind"`
	Severity          Severity  `json:"severity"`
	Message           string    `json:"message"`
	RecommendedAction string    `json:"recommended_action"`
}

func severityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	default:
		return 2
	}
}

// DeriveAlerts scans cards at instant now and returns actionable alerts
// sorted critical-first. A card contributes at most one alert; the rules
// are checked in priority order and the first match wins. Cards without a
// usable creation timestamp are skipped. Never panics on malformed input.
func DeriveAlerts(cards []models.BidCard, now time.Time) []Alert {
	alerts := make([]Alert, 0)

	for _, card := range cards {
		if alert := deriveAlert(card, now); alert != nil {
			alerts = append(alerts, *alert)
		}
	}

	// Stable: ties keep original card order
	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank(alerts[i].Severity) < severityRank(alerts[j].Severity)
	})

	return alerts
}

func deriveAlert(card models.BidCard, now time.Time) *Alert {
	if card.CreatedAt <= 0 {
		return nil
	}

	createdAt := card.CreatedTime()
	deadline := ResolveDeadline(createdAt, card.Urgency())
	countdown := EvaluateCountdown(createdAt, deadline, now)
	label := cardLabel(card)

	switch {
	case countdown.IsOverdue && card.Status != models.StatusBidsComplete:
		return &Alert{
			BidCardID: card.ID,
			Kind:      AlertOverdue,
			Severity:  SeverityCritical,
			Message: fmt.Sprintf("%s passed its outreach deadline with %d of %d bids",
				label, card.BidsReceived, card.ContractorCountNeeded),
			RecommendedAction: "Extend deadline or contact contractors directly",
		}

	case countdown.PercentageElapsed > 95 && card.BidsReceived == 0 && card.Status == models.StatusCollectingBids:
		return &Alert{
			BidCardID: card.ID,
			Kind:      AlertUrgentNoBids,
			Severity:  SeverityHigh,
			Message: fmt.Sprintf("%s has no bids with %.0f%% of its time budget used",
				label, countdown.PercentageElapsed),
			RecommendedAction: "Expand contractor outreach or adjust requirements",
		}

	case ClassifyPerformance(card.BidsReceived, card.ContractorCountNeeded, countdown.PercentageElapsed, card.Status, countdown.IsOverdue) == PerformanceBehind &&
		countdown.PercentageElapsed > 75:
		return &Alert{
			BidCardID: card.ID,
			Kind:      AlertBehindSchedule,
			Severity:  SeverityHigh,
			Message: fmt.Sprintf("%s is behind schedule: %d of %d bids at %.0f%% elapsed",
				label, card.BidsReceived, card.ContractorCountNeeded, countdown.PercentageElapsed),
			RecommendedAction: "Escalate outreach or adjust timeline",
		}

	case card.Status == models.StatusGenerated && countdown.PercentageElapsed > 10:
		return &Alert{
			BidCardID: card.ID,
			Kind:      AlertIdleGenerated,
			Severity:  SeverityMedium,
			Message: fmt.Sprintf("%s was generated but no campaign has started (%.0f%% elapsed)",
				label, countdown.PercentageElapsed),
			RecommendedAction: "Start campaign or review requirements",
		}
	}

	return nil
}

func cardLabel(card models.BidCard) string {
	if card.CardNumber != "" {
		return "Bid card " + card.CardNumber
	}
	return "Bid card " + card.ID
}
