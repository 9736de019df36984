package engine

import "fmt"

// AgentState is the severity state of the decision engine.
// States are strictly ordered: Safe < Caution < ElevatedRisk < HighRisk.
type AgentState string

const (
	StateSafe         AgentState = "safe"
	StateCaution      AgentState = "caution"
	StateElevatedRisk AgentState = "elevated_risk"
	StateHighRisk     AgentState = "high_risk"
)

// Priority returns the intervention priority for a state:
// Safe=0, Caution=1, ElevatedRisk=2, HighRisk=3.
func (s AgentState) Priority() int {
	switch s {
	case StateSafe:
		return 0
	case StateCaution:
		return 1
	case StateElevatedRisk:
		return 2
	case StateHighRisk:
		return 3
	}
	return 0
}

// Valid reports whether s is one of the four enumerated states.
func (s AgentState) Valid() bool {
	switch s {
	case StateSafe, StateCaution, StateElevatedRisk, StateHighRisk:
		return true
	}
	return false
}

// ParseState converts a stored string into an AgentState.
func ParseState(raw string) (AgentState, error) {
	s := AgentState(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown agent state %q", raw)
	}
	return s, nil
}

// Action is the kind of intervention the engine recommends.
type Action string

const (
	ActionNone                Action = "none"
	ActionMonitor             Action = "monitor"
	ActionSuggestRoute        Action = "suggest_route"
	ActionSilentCheckin       Action = "silent_checkin"
	ActionRecommendEscalation Action = "recommend_escalation"
)
