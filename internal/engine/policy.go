package engine

// Decision is the engine's output for one risk update. It is returned to the
// caller and audited, never persisted as engine state.
type Decision struct {
	Action            Action     `json:"action"`
	State             AgentState `json:"state"`
	RiskScore         float64    `json:"risk_score"`
	Message           string     `json:"message"`
	Priority          int        `json:"priority"`
	SuggestedRoutes   []Route    `json:"suggested_routes,omitempty"`
	EscalationOptions []string   `json:"escalation_options,omitempty"`

	// Alerted is set by the engine when this decision consumed the alert
	// gate (action taken and cooldown elapsed). Not part of the wire form.
	Alerted bool `json:"-"`
}

// Route is a placeholder for an alternative route computed by an external
// route engine. The decision engine only reserves the slot.
type Route struct {
	Summary   string     `json:"summary,omitempty"`
	Waypoints []Location `json:"waypoints,omitempty"`
}

// escalationCatalogue is the fixed set of user-facing safety actions offered
// in the highest severity state.
var escalationCatalogue = []string{
	"Share location with trusted contact",
	"Find nearest safe place",
	"Call emergency contact",
}

// DecisionPolicy maps (state, velocity, gate outcome) to a concrete action.
type DecisionPolicy struct {
	velocity VelocityThresholds
}

// NewDecisionPolicy creates a policy using the given velocity scale.
func NewDecisionPolicy(velocity VelocityThresholds) *DecisionPolicy {
	return &DecisionPolicy{velocity: velocity}
}

// Decide produces the decision for the post-transition state. gateAllows is
// the alert gate's verdict for that state; it selects between the alerting
// action and its quieter fallback.
func (p *DecisionPolicy) Decide(state AgentState, score, velocity float64, gateAllows bool) Decision {
	switch state {
	case StateSafe:
		return Decision{
			Action:    ActionNone,
			State:     state,
			RiskScore: score,
			Message:   "Environment appears safe. Continue monitoring.",
			Priority:  state.Priority(),
		}

	case StateCaution:
		if velocity > p.velocity.Moderate {
			return Decision{
				Action:    ActionMonitor,
				State:     state,
				RiskScore: score,
				Message:   "Risk increasing. Monitoring situation.",
				Priority:  state.Priority(),
			}
		}
		return Decision{
			Action:    ActionNone,
			State:     state,
			RiskScore: score,
			Message:   "Slight caution advised. Remain aware.",
			Priority:  state.Priority(),
		}

	case StateElevatedRisk:
		if gateAllows {
			return Decision{
				Action:    ActionSuggestRoute,
				State:     state,
				RiskScore: score,
				Message:   "Consider taking a safer route. Alternative routes available.",
				Priority:  state.Priority(),
				// Populated by the external route engine.
				SuggestedRoutes: []Route{},
			}
		}
		return Decision{
			Action:    ActionMonitor,
			State:     state,
			RiskScore: score,
			Message:   "Elevated risk detected. Monitoring closely.",
			Priority:  state.Priority(),
		}

	case StateHighRisk:
		if gateAllows {
			return Decision{
				Action:            ActionRecommendEscalation,
				State:             state,
				RiskScore:         score,
				Message:           "High risk environment detected. Consider safety actions.",
				Priority:          state.Priority(),
				EscalationOptions: append([]string(nil), escalationCatalogue...),
			}
		}
		return Decision{
			Action:          ActionSuggestRoute,
			State:           state,
			RiskScore:       score,
			Message:         "High risk area. Safer route strongly recommended.",
			Priority:        state.Priority(),
			SuggestedRoutes: []Route{},
		}
	}

	// Unreachable for valid states; keep the zero decision explicit.
	return Decision{Action: ActionNone, State: state, RiskScore: score}
}
