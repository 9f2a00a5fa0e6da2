package models

import "testing"

func TestNormalizeBidCardPayload(t *testing.T) {
	tests := []struct {
		name        string
		payload     map[string]interface{}
		wantUrgency *string
		wantNeeded  *int
		wantBids    *int
		wantStatus  *string
	}{
		{
			name: "canonical field names",
			payload: map[string]interface{}{
				"urgency_level":           "urgent",
				"contractor_count_needed": float64(5),
				"bids_received":           float64(2),
				"status":                  "collecting_bids",
			},
			wantUrgency: strP("urgent"),
			wantNeeded:  intP(5),
			wantBids:    intP(2),
			wantStatus:  strP("collecting_bids"),
		},
		{
			name: "legacy aliases",
			payload: map[string]interface{}{
				"urgency":     "week",
				"target_bids": float64(4),
				"progress":    float64(3),
			},
			wantUrgency: strP("week"),
			wantNeeded:  intP(4),
			wantBids:    intP(3),
		},
		{
			name: "canonical wins over alias",
			payload: map[string]interface{}{
				"bids_received": float64(7),
				"progress":      float64(1),
			},
			wantBids: intP(7),
		},
		{
			name:    "empty payload leaves everything nil",
			payload: map[string]interface{}{},
		},
		{
			name: "wrong types are ignored",
			payload: map[string]interface{}{
				"urgency_level": 12,
				"bids_received": "three",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeBidCardPayload(tt.payload)

			checkStr(t, "UrgencyLevel", got.UrgencyLevel, tt.wantUrgency)
			checkInt(t, "ContractorCountNeeded", got.ContractorCountNeeded, tt.wantNeeded)
			checkInt(t, "BidsReceived", got.BidsReceived, tt.wantBids)
			checkStr(t, "Status", got.Status, tt.wantStatus)
		})
	}
}

func TestBidCardUrgency(t *testing.T) {
	unset := BidCard{}
	if got := unset.Urgency(); got != "" {
		t.Errorf("Urgency() on unset card = %q, want empty", got)
	}

	level := "emergency"
	set := BidCard{UrgencyLevel: &level}
	if got := set.Urgency(); got != "emergency" {
		t.Errorf("Urgency() = %q, want emergency", got)
	}
}

func strP(s string) *string { return &s }
func intP(n int) *int       { return &n }

func checkStr(t *testing.T, field string, got, want *string) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Errorf("%s = %v, want %v", field, got, want)
		return
	}
	if got != nil && *got != *want {
		t.Errorf("%s = %q, want %q", field, *got, *want)
	}
}

func checkInt(t *testing.T, field string, got, want *int) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Errorf("%s = %v, want %v", field, got, want)
		return
	}
	if got != nil && *got != *want {
		t.Errorf("%s = %d, want %d", field, *got, *want)
	}
}
