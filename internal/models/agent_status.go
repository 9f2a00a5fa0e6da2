package models

// AgentStatus tracks the health of a backend agent process.
// Agents report heartbeats over the WebSocket feed; the dashboard flags
// any agent silent for more than five minutes as stale.
type AgentStatus struct {
	AgentName     string  `json:"agent_name" db:"agent_name"`
	Status        string  `json:"status" db:"status"` // "online", "offline", "degraded"
	Version       *string `json:"version,omitempty" db:"version"`
	LastHeartbeat int64   `json:"last_heartbeat" db:"last_heartbeat"`
	LastError     *string `json:"last_error,omitempty" db:"last_error"`
	UpdatedAt     int64   `json:"updated_at" db:"updated_at"`
}

// AgentHealthResponse is AgentStatus plus derived staleness for the panel
type AgentHealthResponse struct {
	AgentStatus
	IsStale             bool  `json:"is_stale"`
	SecondsSinceContact int64 `json:"seconds_since_contact"`
}
