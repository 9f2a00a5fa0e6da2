package timeline

import (
	"testing"
	"time"
)

func TestDeadlineHours(t *testing.T) {
	tests := []struct {
		name    string
		urgency string
		want    int
	}{
		{"emergency", UrgencyEmergency, 1},
		{"urgent", UrgencyUrgent, 12},
		{"week", UrgencyWeek, 72},
		{"month", UrgencyMonth, 120},
		{"flexible", UrgencyFlexible, 168},
		{"unset falls back to week", "", 72},
		{"unknown falls back to week", "asap", 72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeadlineHours(tt.urgency); got != tt.want {
				t.Errorf("DeadlineHours(%q) = %d, want %d", tt.urgency, got, tt.want)
			}
		})
	}
}

func TestResolveDeadline(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		urgency string
		want    time.Time
	}{
		{"emergency is one hour", "emergency", createdAt.Add(1 * time.Hour)},
		{"urgent is twelve hours", "urgent", createdAt.Add(12 * time.Hour)},
		{"flexible is one week", "flexible", createdAt.Add(168 * time.Hour)},
		{"unknown gets the 72h default", "whenever", createdAt.Add(72 * time.Hour)},
		{"empty gets the 72h default", "", createdAt.Add(72 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDeadline(createdAt, tt.urgency); !got.Equal(tt.want) {
				t.Errorf("ResolveDeadline(%q) = %v, want %v", tt.urgency, got, tt.want)
			}
		})
	}
}
