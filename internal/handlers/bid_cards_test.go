package handlers

import (
	"testing"
	"time"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/models"
	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/timeline"
)

func TestBuildTimeline(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	urgency := "urgent"

	card := models.BidCard{
		ID:                    "test-card",
		CardNumber:            "BC-9001",
		UrgencyLevel:          &urgency,
		ContractorCountNeeded: 4,
		BidsReceived:          3,
		Status:                models.StatusCollectingBids,
		CreatedAt:             now.Add(-6 * time.Hour).Unix(),
	}

	block := buildTimeline(card, now)

	wantDeadline := now.Add(6 * time.Hour).Unix()
	if block.Deadline != wantDeadline {
		t.Errorf("Deadline = %d, want %d", block.Deadline, wantDeadline)
	}
	if block.IsOverdue {
		t.Error("IsOverdue = true, want false")
	}
	if block.RemainingText != "6h 0m left" {
		t.Errorf("RemainingText = %q, want %q", block.RemainingText, "6h 0m left")
	}
	if block.PercentageElapsed != 50 {
		t.Errorf("PercentageElapsed = %v, want 50", block.PercentageElapsed)
	}
	if block.ProgressPercentage != 75 {
		t.Errorf("ProgressPercentage = %v, want 75", block.ProgressPercentage)
	}
	// 75% progress at 50% elapsed clears the +10 ahead margin
	if block.Performance != timeline.PerformanceAhead {
		t.Errorf("Performance = %q, want %q", block.Performance, timeline.PerformanceAhead)
	}
	if block.BehindSchedule {
		t.Error("BehindSchedule = true, want false")
	}
}

func TestFormatCardNumber(t *testing.T) {
	tests := []struct {
		seq  int64
		want string
	}{
		{1001, "BC-1001"},
		{1006, "BC-1006"},
		{12345, "BC-12345"},
	}

	for _, tt := range tests {
		if got := formatCardNumber(tt.seq); got != tt.want {
			t.Errorf("formatCardNumber(%d) = %q, want %q", tt.seq, got, tt.want)
		}
	}
}

func TestBuildTimelineUnsetUrgency(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	card := models.BidCard{
		ID:                    "no-urgency",
		ContractorCountNeeded: 3,
		Status:                models.StatusGenerated,
		CreatedAt:             now.Add(-36 * time.Hour).Unix(),
	}

	block := buildTimeline(card, now)

	// Unset urgency gets the 72h default, so 36h in is 50% elapsed
	if block.PercentageElapsed != 50 {
		t.Errorf("PercentageElapsed = %v, want 50", block.PercentageElapsed)
	}
	if block.RemainingText != "1d 12h left" {
		t.Errorf("RemainingText = %q, want %q", block.RemainingText, "1d 12h left")
	}
}
