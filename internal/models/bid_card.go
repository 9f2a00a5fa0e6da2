package models

import "time"

// Bid card lifecycle statuses
const (
	StatusGenerated      = "generated"
	StatusCollectingBids = "collecting_bids"
	StatusActive         = "active"
	StatusBidsComplete   = "bids_complete"
	StatusExpired        = "expired"
)

// BidCard represents a homeowner's project request seeking contractor bids
type BidCard struct {
	ID                    string  `json:"id" db:"id"`
	CardNumber            string  `json:"card_number" db:"card_number"`
	HomeownerName         string  `json:"homeowner_name" db:"homeowner_name"`
	ProjectType           string  `json:"project_type" db:"project_type"`
	Description           *string `json:"description,omitempty" db:"description"`
	City                  *string `json:"city,omitempty" db:"city"`
	Zip                   *string `json:"zip,omitempty" db:"zip"`
	UrgencyLevel          *string `json:"urgency_level,omitempty" db:"urgency_level"`
	ContractorCountNeeded int     `json:"contractor_count_needed" db:"contractor_count_needed"`
	BidsReceived          int     `json:"bids_received" db:"bids_received"`
	BudgetMin             *int    `json:"budget_min,omitempty" db:"budget_min"`
	BudgetMax             *int    `json:"budget_max,omitempty" db:"budget_max"`
	Status                string  `json:"status" db:"status"`
	CampaignID            *string `json:"campaign_id,omitempty" db:"campaign_id"`
	CreatedAt             int64   `json:"created_at" db:"created_at"` // Unix timestamp
	UpdatedAt             int64   `json:"updated_at" db:"updated_at"` // Unix timestamp
}

// CreatedTime returns the creation instant as a time.Time
func (b *BidCard) CreatedTime() time.Time {
	return time.Unix(b.CreatedAt, 0).UTC()
}

// Urgency returns the urgency level or "" when unset
func (b *BidCard) Urgency() string {
	if b.UrgencyLevel == nil {
		return ""
	}
	return *b.UrgencyLevel
}

// CreateBidCardRequest is the request body for POST /api/bid-cards
type CreateBidCardRequest struct {
	HomeownerName         string  `json:"homeowner_name"`
	ProjectType           string  `json:"project_type"`
	Description           *string `json:"description,omitempty"`
	City                  *string `json:"city,omitempty"`
	Zip                   *string `json:"zip,omitempty"`
	UrgencyLevel          *string `json:"urgency_level,omitempty"`
	ContractorCountNeeded int     `json:"contractor_count_needed"`
	BudgetMin             *int    `json:"budget_min,omitempty"`
	BudgetMax             *int    `json:"budget_max,omitempty"`
}

// BidCardUpdate is the normalized update shape applied to an existing card.
// Nil fields are left untouched.
type BidCardUpdate struct {
	UrgencyLevel          *string
	ContractorCountNeeded *int
	BidsReceived          *int
	Status                *string
}

// NormalizeBidCardPayload maps a loosely-typed update payload onto the
// canonical BidCardUpdate shape. Agent processes have shipped several
// generations of field names for the same concepts (bids_received vs
// progress, contractor_count_needed vs target_bids, urgency_level vs
// urgency), so all known aliases are resolved here and nowhere else.
// Canonical names win when both a canonical and a legacy alias are present.
func NormalizeBidCardPayload(data map[string]interface{}) BidCardUpdate {
	var update BidCardUpdate

	if s := stringField(data, "urgency_level", "urgency"); s != nil {
		update.UrgencyLevel = s
	}
	if n := intField(data, "contractor_count_needed", "target_bids"); n != nil {
		update.ContractorCountNeeded = n
	}
	if n := intField(data, "bids_received", "progress"); n != nil {
		update.BidsReceived = n
	}
	if s := stringField(data, "status"); s != nil {
		update.Status = s
	}

	return update
}

// stringField returns the first present string value among the given keys
func stringField(data map[string]interface{}, keys ...string) *string {
	for _, key := range keys {
		if s, ok := data[key].(string); ok {
			return &s
		}
	}
	return nil
}

// intField returns the first present numeric value among the given keys.
// JSON numbers decode as float64 through interface{} maps.
func intField(data map[string]interface{}, keys ...string) *int {
	for _, key := range keys {
		switch v := data[key].(type) {
		case float64:
			n := int(v)
			return &n
		case int:
			n := v
			return &n
		}
	}
	return nil
}
