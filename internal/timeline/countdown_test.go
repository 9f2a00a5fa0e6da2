package timeline

import (
	"testing"
	"time"
)

func TestEvaluateCountdown(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		deadline    time.Time
		now         time.Time
		wantText    string
		wantOverdue bool
		wantPct     float64
	}{
		{
			name:        "emergency card halfway through its hour",
			deadline:    createdAt.Add(1 * time.Hour),
			now:         createdAt.Add(30 * time.Minute),
			wantText:    "30m left",
			wantOverdue: false,
			wantPct:     50,
		},
		{
			name:        "hours and minutes remaining",
			deadline:    createdAt.Add(12 * time.Hour),
			now:         createdAt.Add(9*time.Hour + 30*time.Minute),
			wantText:    "2h 30m left",
			wantOverdue: false,
			wantPct:     79.166666666666657,
		},
		{
			name:        "days and hours remaining",
			deadline:    createdAt.Add(168 * time.Hour),
			now:         createdAt.Add(24 * time.Hour),
			wantText:    "6d 0h left",
			wantOverdue: false,
			wantPct:     100.0 / 7,
		},
		{
			name:        "past deadline",
			deadline:    createdAt.Add(12 * time.Hour),
			now:         createdAt.Add(13 * time.Hour),
			wantText:    "DEADLINE PASSED",
			wantOverdue: true,
			wantPct:     100,
		},
		{
			name:        "exactly at deadline is not overdue",
			deadline:    createdAt.Add(1 * time.Hour),
			now:         createdAt.Add(1 * time.Hour),
			wantText:    "0m left",
			wantOverdue: false,
			wantPct:     100,
		},
		{
			name:        "evaluation before creation clamps to zero",
			deadline:    createdAt.Add(1 * time.Hour),
			now:         createdAt.Add(-10 * time.Minute),
			wantText:    "1h 10m left",
			wantOverdue: false,
			wantPct:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateCountdown(createdAt, tt.deadline, tt.now)
			if got.RemainingText != tt.wantText {
				t.Errorf("RemainingText = %q, want %q", got.RemainingText, tt.wantText)
			}
			if got.IsOverdue != tt.wantOverdue {
				t.Errorf("IsOverdue = %v, want %v", got.IsOverdue, tt.wantOverdue)
			}
			if diff := got.PercentageElapsed - tt.wantPct; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("PercentageElapsed = %v, want %v", got.PercentageElapsed, tt.wantPct)
			}
		})
	}
}

func TestEvaluateCountdownIdempotent(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := createdAt.Add(72 * time.Hour)
	now := createdAt.Add(20 * time.Hour)

	first := EvaluateCountdown(createdAt, deadline, now)
	second := EvaluateCountdown(createdAt, deadline, now)

	if first != second {
		t.Errorf("repeated evaluation differs: %+v vs %+v", first, second)
	}
}

func TestEvaluateCountdownMonotonic(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := createdAt.Add(72 * time.Hour)

	prev := -1.0
	for minutes := 0; minutes <= 80*60; minutes += 17 {
		now := createdAt.Add(time.Duration(minutes) * time.Minute)
		got := EvaluateCountdown(createdAt, deadline, now)
		if got.PercentageElapsed < prev {
			t.Fatalf("PercentageElapsed decreased at +%dm: %v < %v", minutes, got.PercentageElapsed, prev)
		}
		prev = got.PercentageElapsed
	}
}
