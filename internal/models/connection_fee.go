package models

// ConnectionFee is the fee charged to a contractor after winning a project.
// Amounts are stored in cents to avoid float rounding in bookkeeping.
type ConnectionFee struct {
	ID              string  `json:"id" db:"id"`
	BidCardID       string  `json:"bid_card_id" db:"bid_card_id"`
	ContractorID    string  `json:"contractor_id" db:"contractor_id"`
	BaseFeeCents    int     `json:"base_fee_cents" db:"base_fee_cents"`
	AdjustmentCents int     `json:"adjustment_cents" db:"adjustment_cents"`
	FinalFeeCents   int     `json:"final_fee_cents" db:"final_fee_cents"`
	Status          string  `json:"status" db:"status"` // "calculated" or "paid"
	CalculatedAt    int64   `json:"calculated_at" db:"calculated_at"`
	PaidAt          *int64  `json:"paid_at,omitempty" db:"paid_at"`
	Notes           *string `json:"notes,omitempty" db:"notes"`
	CreatedAt       int64   `json:"created_at" db:"created_at"`
	UpdatedAt       int64   `json:"updated_at" db:"updated_at"`
}

// ConnectionFeeSummary aggregates fee totals for the dashboard header
type ConnectionFeeSummary struct {
	TotalCount       int `json:"total_count" db:"total_count"`
	PaidCount        int `json:"paid_count" db:"paid_count"`
	TotalCents       int `json:"total_cents" db:"total_cents"`
	PaidCents        int `json:"paid_cents" db:"paid_cents"`
	OutstandingCents int `json:"outstanding_cents" db:"outstanding_cents"`
}

// CreateConnectionFeeRequest is the request body for POST /api/connection-fees
type CreateConnectionFeeRequest struct {
	BidCardID       string  `json:"bid_card_id"`
	ContractorID    string  `json:"contractor_id"`
	BaseFeeCents    int     `json:"base_fee_cents"`
	AdjustmentCents int     `json:"adjustment_cents"`
	Notes           *string `json:"notes,omitempty"`
}
