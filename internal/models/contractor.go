package models

// Contractor tier buckets used for outreach prioritization
const (
	TierInternal   = 1 // internal/known contractor
	TierEngaged    = 2 // previously engaged through a campaign
	TierDiscovered = 3 // newly discovered, never contacted
)

type Contractor struct {
	ID          string   `json:"id" db:"id"`
	CompanyName string   `json:"company_name" db:"company_name"`
	ContactName *string  `json:"contact_name,omitempty" db:"contact_name"`
	Email       *string  `json:"email,omitempty" db:"email"`
	Phone       *string  `json:"phone,omitempty" db:"phone"`
	Tier        int      `json:"tier" db:"tier"`
	Specialty   *string  `json:"specialty,omitempty" db:"specialty"`
	City        *string  `json:"city,omitempty" db:"city"`
	State       *string  `json:"state,omitempty" db:"state"`
	Rating      *float64 `json:"rating,omitempty" db:"rating"`
	Status      string   `json:"status" db:"status"` // "active" or "inactive"
	CreatedAt   int64    `json:"created_at" db:"created_at"`
	UpdatedAt   int64    `json:"updated_at" db:"updated_at"`
}

// CreateContractorRequest is the request body for POST /api/contractors
type CreateContractorRequest struct {
	CompanyName string   `json:"company_name"`
	ContactName *string  `json:"contact_name,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Tier        int      `json:"tier"`
	Specialty   *string  `json:"specialty,omitempty"`
	City        *string  `json:"city,omitempty"`
	State       *string  `json:"state,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
}

// UpdateContractorRequest is the request body for PATCH /api/contractors/{id}
type UpdateContractorRequest struct {
	CompanyName *string  `json:"company_name,omitempty"`
	ContactName *string  `json:"contact_name,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Tier        *int     `json:"tier,omitempty"`
	Specialty   *string  `json:"specialty,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Status      *string  `json:"status,omitempty"`
}
