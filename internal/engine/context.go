package engine

import "time"

// Location is the raw position payload supplied by the caller. The engine
// stores it verbatim; it never interprets coordinates.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TrailEntry is one point of the bounded location trail.
type TrailEntry struct {
	Timestamp time.Time  `json:"timestamp"`
	Location  Location   `json:"location"`
	RiskScore float64    `json:"risk_score"`
	State     AgentState `json:"state"`
}

// maxTrailEntries caps the location history; oldest entries are evicted.
const maxTrailEntries = 100

// AgentContext is the durable, exclusively-owned state of one engine.
// It is mutated only by ProcessRiskUpdate and Reset, and written to the
// store as a whole after every update.
type AgentContext struct {
	CurrentState       AgentState   `json:"current_state"`
	CurrentRiskScore   float64      `json:"current_risk_score"`
	PreviousRiskScore  float64      `json:"previous_risk_score"`
	RiskVelocity       float64      `json:"risk_velocity"`
	TimeInCurrentState float64      `json:"time_in_current_state"`
	LastAlertTime      *time.Time   `json:"last_alert_time,omitempty"`
	AlertCount         int          `json:"alert_count"`
	LocationHistory    []TrailEntry `json:"location_history"`
}

// NewAgentContext returns the default context: Safe, zero scores, no history.
func NewAgentContext() *AgentContext {
	return &AgentContext{
		CurrentState:    StateSafe,
		LocationHistory: []TrailEntry{},
	}
}

// recordLocation appends a trail entry, evicting the oldest beyond the cap.
func (c *AgentContext) recordLocation(e TrailEntry) {
	c.LocationHistory = append(c.LocationHistory, e)
	if n := len(c.LocationHistory); n > maxTrailEntries {
		c.LocationHistory = c.LocationHistory[n-maxTrailEntries:]
	}
}

// Summary is the read-only view of the context exposed by the state query.
type Summary struct {
	CurrentState         AgentState `json:"current_state"`
	RiskScore            float64    `json:"risk_score"`
	RiskVelocity         float64    `json:"risk_velocity"`
	AlertCount           int        `json:"alert_count"`
	LocationHistoryCount int        `json:"location_history_count"`
}
