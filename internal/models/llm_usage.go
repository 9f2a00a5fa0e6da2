package models

// LLMUsage is a single recorded LLM API call made by an agent
type LLMUsage struct {
	ID               string  `json:"id" db:"id"`
	AgentName        string  `json:"agent_name" db:"agent_name"`
	Model            string  `json:"model" db:"model"`
	PromptTokens     int     `json:"prompt_tokens" db:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens" db:"completion_tokens"`
	CostCents        float64 `json:"cost_cents" db:"cost_cents"`
	BidCardID        *string `json:"bid_card_id,omitempty" db:"bid_card_id"`
	CreatedAt        int64   `json:"created_at" db:"created_at"`
}

// RecordLLMUsageRequest is the request body for POST /api/llm-costs
type RecordLLMUsageRequest struct {
	AgentName        string  `json:"agent_name"`
	Model            string  `json:"model"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	CostCents        float64 `json:"cost_cents"`
	BidCardID        *string `json:"bid_card_id,omitempty"`
}
