package timeline

import "github.com/Insta-Bids-System/instabids-v2-sub003/internal/models"

// Performance classifies bid collection against the elapsed time budget
type Performance string

const (
	PerformanceCompleted Performance = "completed"
	PerformanceAhead     Performance = "ahead"
	PerformanceOnTime    Performance = "on_time"
	PerformanceBehind    Performance = "behind"
)

// Fixed policy margins, in percentage points. The list-view badge uses a
// flat 25-point margin while the four-way classifier uses the +10/-15
// split; the two shipped separately and dashboards key off both, so they
// must not be unified.
const (
	aheadMargin          = 10.0
	onTimeMargin         = 15.0
	behindScheduleMargin = 25.0
)

// ProgressPercentage returns bids received as a percentage of the target.
// A zero target is treated as one to avoid dividing by zero.
func ProgressPercentage(bidsReceived, contractorCountNeeded int) float64 {
	needed := contractorCountNeeded
	if needed < 1 {
		needed = 1
	}
	return 100 * float64(bidsReceived) / float64(needed)
}

// ClassifyPerformance returns the four-way schedule classification for a
// card. A completed card is terminal regardless of any other signal.
func ClassifyPerformance(bidsReceived, contractorCountNeeded int, percentageElapsed float64, status string, isOverdue bool) Performance {
	if status == models.StatusBidsComplete {
		return PerformanceCompleted
	}
	if isOverdue {
		return PerformanceBehind
	}

	progress := ProgressPercentage(bidsReceived, contractorCountNeeded)
	if progress >= percentageElapsed+aheadMargin {
		return PerformanceAhead
	}
	if progress >= percentageElapsed-onTimeMargin {
		return PerformanceOnTime
	}
	return PerformanceBehind
}

// IsBehindSchedule is the coarse badge predicate for the bid-card table
func IsBehindSchedule(bidsReceived, contractorCountNeeded int, percentageElapsed float64, status string) bool {
	if status == models.StatusBidsComplete {
		return false
	}
	return percentageElapsed > ProgressPercentage(bidsReceived, contractorCountNeeded)+behindScheduleMargin
}
