package timeline

import (
	"testing"

	"github.com/Insta-Bids-System/instabids-v2-sub003/internal/models"
)

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name     string
		received int
		needed   int
		want     float64
	}{
		{"normal", 2, 5, 40},
		{"complete", 5, 5, 100},
		{"over target", 6, 5, 120},
		{"zero target treated as one", 3, 0, 300},
		{"nothing received", 0, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressPercentage(tt.received, tt.needed); got != tt.want {
				t.Errorf("ProgressPercentage(%d, %d) = %v, want %v", tt.received, tt.needed, got, tt.want)
			}
		})
	}
}

func TestClassifyPerformance(t *testing.T) {
	tests := []struct {
		name      string
		received  int
		needed    int
		elapsed   float64
		status    string
		isOverdue bool
		want      Performance
	}{
		{"completed overrides everything", 0, 5, 99, models.StatusBidsComplete, true, PerformanceCompleted},
		{"overdue is behind", 4, 5, 100, models.StatusCollectingBids, true, PerformanceBehind},
		{"well ahead", 3, 5, 40, models.StatusCollectingBids, false, PerformanceAhead},
		{"exactly at ahead margin", 3, 5, 50, models.StatusCollectingBids, false, PerformanceAhead},
		{"inside on-time band", 2, 5, 45, models.StatusCollectingBids, false, PerformanceOnTime},
		{"exactly at on-time floor", 2, 5, 55, models.StatusCollectingBids, false, PerformanceOnTime},
		{"just past on-time floor", 2, 5, 55.01, models.StatusCollectingBids, false, PerformanceBehind},
		{"far behind", 2, 5, 80, models.StatusCollectingBids, false, PerformanceBehind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyPerformance(tt.received, tt.needed, tt.elapsed, tt.status, tt.isOverdue)
			if got != tt.want {
				t.Errorf("ClassifyPerformance(%d, %d, %v, %q, %v) = %q, want %q",
					tt.received, tt.needed, tt.elapsed, tt.status, tt.isOverdue, got, tt.want)
			}
		})
	}
}

func TestIsBehindSchedule(t *testing.T) {
	tests := []struct {
		name     string
		received int
		needed   int
		elapsed  float64
		status   string
		want     bool
	}{
		{"well behind the 25-point margin", 1, 5, 60, models.StatusCollectingBids, true},
		{"exactly at the margin is not behind", 1, 5, 45, models.StatusCollectingBids, false},
		{"just past the margin", 1, 5, 45.01, models.StatusCollectingBids, true},
		{"completed cards never flag", 0, 5, 100, models.StatusBidsComplete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsBehindSchedule(tt.received, tt.needed, tt.elapsed, tt.status)
			if got != tt.want {
				t.Errorf("IsBehindSchedule(%d, %d, %v, %q) = %v, want %v",
					tt.received, tt.needed, tt.elapsed, tt.status, got, tt.want)
			}
		})
	}
}
