package timeline

import (
	"fmt"
	"time"
)

// Countdown is the live deadline state of a bid card at one evaluation
// instant. It carries no identity and is recomputed on every tick.
type Countdown struct {
	RemainingText     string  `json:"remaining_text"`
	IsOverdue         bool    `json:"is_overdue"`
	PercentageElapsed float64 `json:"percentage_elapsed"`
}

// EvaluateCountdown computes elapsed-time percentage and remaining-time
// text for a card at instant now. PercentageElapsed is clamped to [0,100]
// for display; the overdue flag comes from the unclamped comparison.
func EvaluateCountdown(createdAt, deadline, now time.Time) Countdown {
	overdue := now.After(deadline)

	total := deadline.Sub(createdAt)
	pct := 100.0
	if total > 0 {
		pct = 100 * float64(now.Sub(createdAt)) / float64(total)
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	return Countdown{
		RemainingText:     remainingText(deadline.Sub(now), overdue),
		IsOverdue:         overdue,
		PercentageElapsed: pct,
	}
}

func remainingText(remaining time.Duration, overdue bool) string {
	if overdue {
		return "DEADLINE PASSED"
	}

	totalHours := int(remaining.Hours())
	totalMinutes := int(remaining.Minutes())

	if totalHours >= 24 {
		return fmt.Sprintf("%dd %dh left", totalHours/24, totalHours%24)
	}
	if totalHours >= 1 {
		return fmt.Sprintf("%dh %dm left", totalHours, totalMinutes%60)
	}
	return fmt.Sprintf("%dm left", totalMinutes)
}
