package timeline

import "time"

// Urgency levels a homeowner can pick on a bid card
const (
	UrgencyEmergency = "emergency"
	UrgencyUrgent    = "urgent"
	UrgencyWeek      = "week"
	UrgencyMonth     = "month"
	UrgencyFlexible  = "flexible"
)

// DeadlineHours maps an urgency level to its contractor-outreach time
// budget in hours. Unknown or unset urgency falls back to the week budget
// so a malformed card is still tracked instead of dropped.
func DeadlineHours(urgencyLevel string) int {
	switch urgencyLevel {
	case UrgencyEmergency:
		return 1
	case UrgencyUrgent:
		return 12
	case UrgencyWeek:
		return 72
	case UrgencyMonth:
		return 120
	case UrgencyFlexible:
		return 168
	default:
		return 72
	}
}

// ResolveDeadline returns the outreach deadline for a card created at the
// given instant. Never fails.
func ResolveDeadline(createdAt time.Time, urgencyLevel string) time.Time {
	return createdAt.Add(time.Duration(DeadlineHours(urgencyLevel)) * time.Hour)
}
