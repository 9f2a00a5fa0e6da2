package models

// Campaign represents a contractor-outreach campaign attached to a bid card
type Campaign struct {
	ID                  string  `json:"id" db:"id"`
	BidCardID           string  `json:"bid_card_id" db:"bid_card_id"`
	Name                string  `json:"name" db:"name"`
	Status              string  `json:"status" db:"status"` // "active", "paused", "escalated", "completed"
	MaxContractors      int     `json:"max_contractors" db:"max_contractors"`
	ContractorsTargeted int     `json:"contractors_targeted" db:"contractors_targeted"`
	ResponsesReceived   int     `json:"responses_received" db:"responses_received"`
	EscalationLevel     int     `json:"escalation_level" db:"escalation_level"`
	LastCheckIn         *int64  `json:"last_check_in,omitempty" db:"last_check_in"`
	NextCheckIn         *int64  `json:"next_check_in,omitempty" db:"next_check_in"`
	Notes               *string `json:"notes,omitempty" db:"notes"`
	CreatedAt           int64   `json:"created_at" db:"created_at"`
	UpdatedAt           int64   `json:"updated_at" db:"updated_at"`
}

// ResponseRate returns responses as a percentage of targeted contractors
func (c *Campaign) ResponseRate() float64 {
	if c.ContractorsTargeted <= 0 {
		return 0
	}
	return 100 * float64(c.ResponsesReceived) / float64(c.ContractorsTargeted)
}

// CreateCampaignRequest is the request body for POST /api/campaigns
type CreateCampaignRequest struct {
	BidCardID      string  `json:"bid_card_id"`
	Name           string  `json:"name"`
	MaxContractors int     `json:"max_contractors"`
	Notes          *string `json:"notes,omitempty"`
}

// CampaignCheckInRequest is the request body for POST /api/campaigns/{id}/check-in
type CampaignCheckInRequest struct {
	ContractorsTargeted *int    `json:"contractors_targeted,omitempty"`
	ResponsesReceived   *int    `json:"responses_received,omitempty"`
	EscalationLevel     *int    `json:"escalation_level,omitempty"`
	NextCheckIn         *int64  `json:"next_check_in,omitempty"`
	Notes               *string `json:"notes,omitempty"`
}
